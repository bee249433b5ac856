package handler

import (
	grantapp "github.com/community/backend/internal/application/accessgrant"
	"github.com/gin-gonic/gin"
)

// VerifyHandler handles the gate-side access code lookup
type VerifyHandler struct {
	BaseHandler
	service *grantapp.VerifyService
}

// NewVerifyHandler creates a new VerifyHandler
func NewVerifyHandler(service *grantapp.VerifyService) *VerifyHandler {
	return &VerifyHandler{service: service}
}

// RegisterRoutes registers gate routes on the given group
func (h *VerifyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/verify", h.Verify)
}

// VerifyRequest carries the scanned or typed access code
type VerifyRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// Verify resolves a 6-digit access code across all grant entities.
// Unknown, cancelled and expired codes all answer 404 so the gate cannot
// distinguish a code that never existed from one that lapsed.
func (h *VerifyHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.Verify(c.Request.Context(), req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

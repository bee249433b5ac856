package handler

import (
	grantapp "github.com/community/backend/internal/application/accessgrant"
	"github.com/gin-gonic/gin"
)

// GuestInviteHandler handles guest invite endpoints
type GuestInviteHandler struct {
	BaseHandler
	service *grantapp.GuestService
}

// NewGuestInviteHandler creates a new GuestInviteHandler
func NewGuestInviteHandler(service *grantapp.GuestService) *GuestInviteHandler {
	return &GuestInviteHandler{service: service}
}

// RegisterRoutes registers guest invite routes on the given group
func (h *GuestInviteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/invites", h.Create)
	rg.GET("/invites", h.List)
	rg.GET("/invites/summary", h.Summary)
	rg.GET("/invites/:id", h.GetByID)
	rg.POST("/invites/:id/cancel", h.Cancel)
}

// Create creates a guest invite with its OTP
func (h *GuestInviteHandler) Create(c *gin.Context) {
	var req grantapp.CreateGuestInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	grant, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, grant)
}

// GetByID retrieves a guest invite
func (h *GuestInviteHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid grant ID format")
		return
	}

	grant, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, grant)
}

// List lists guest invites with optional filtering
func (h *GuestInviteHandler) List(c *gin.Context) {
	var filter grantapp.GrantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	grants, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, grants)
}

// Cancel cancels a guest invite and retires its OTP
func (h *GuestInviteHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid grant ID format")
		return
	}

	grant, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, grant)
}

// Summary returns counts of guest invites by state
func (h *GuestInviteHandler) Summary(c *gin.Context) {
	summary, err := h.service.StateSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

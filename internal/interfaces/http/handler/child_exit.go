package handler

import (
	"context"

	grantapp "github.com/community/backend/internal/application/accessgrant"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChildExitHandler handles child exit permission endpoints, including the
// guard-side exit and return confirmations
type ChildExitHandler struct {
	BaseHandler
	service *grantapp.ChildExitService
}

// NewChildExitHandler creates a new ChildExitHandler
func NewChildExitHandler(service *grantapp.ChildExitService) *ChildExitHandler {
	return &ChildExitHandler{service: service}
}

// RegisterRoutes registers child exit permission routes on the given group
func (h *ChildExitHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/child-exits", h.Create)
	rg.GET("/child-exits", h.List)
	rg.GET("/child-exits/summary", h.Summary)
	rg.GET("/child-exits/:id", h.GetByID)
	rg.POST("/child-exits/:id/activate", h.Activate)
	rg.POST("/child-exits/:id/exit", h.MarkExited)
	rg.POST("/child-exits/:id/return", h.MarkReturned)
	rg.POST("/child-exits/:id/cancel", h.Cancel)
}

// Create creates a child exit permission
func (h *ChildExitHandler) Create(c *gin.Context) {
	var req grantapp.CreateChildExitRequest
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

// GetByID retrieves a child exit permission
func (h *ChildExitHandler) GetByID(c *gin.Context) {
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

// List lists child exit permissions with optional filtering
func (h *ChildExitHandler) List(c *gin.Context) {
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

// Activate activates a pending permission
func (h *ChildExitHandler) Activate(c *gin.Context) {
	h.transition(c, h.service.Activate)
}

// MarkExited records the child leaving through the gate
func (h *ChildExitHandler) MarkExited(c *gin.Context) {
	h.transition(c, h.service.MarkExited)
}

// MarkReturned records the child coming back
func (h *ChildExitHandler) MarkReturned(c *gin.Context) {
	h.transition(c, h.service.MarkReturned)
}

// Cancel cancels a permission and retires its access code
func (h *ChildExitHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

// transition runs one lifecycle action identified by the :id parameter
func (h *ChildExitHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*grantapp.GrantResponse, error)) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid grant ID format")
		return
	}

	grant, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, grant)
}

// Summary returns counts of child exit permissions by state
func (h *ChildExitHandler) Summary(c *gin.Context) {
	summary, err := h.service.StateSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

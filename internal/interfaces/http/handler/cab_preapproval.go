package handler

import (
	grantapp "github.com/community/backend/internal/application/accessgrant"
	"github.com/gin-gonic/gin"
)

// CabPreapprovalHandler handles cab pre-approval endpoints
type CabPreapprovalHandler struct {
	BaseHandler
	service *grantapp.CabService
}

// NewCabPreapprovalHandler creates a new CabPreapprovalHandler
func NewCabPreapprovalHandler(service *grantapp.CabService) *CabPreapprovalHandler {
	return &CabPreapprovalHandler{service: service}
}

// RegisterRoutes registers cab pre-approval routes on the given group
func (h *CabPreapprovalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cabs", h.Create)
	rg.GET("/cabs", h.List)
	rg.GET("/cabs/summary", h.Summary)
	rg.GET("/cabs/:id", h.GetByID)
	rg.POST("/cabs/:id/activate", h.Activate)
	rg.POST("/cabs/:id/cancel", h.Cancel)
}

// Create creates a cab pre-approval; ONCE mode activates immediately
func (h *CabPreapprovalHandler) Create(c *gin.Context) {
	var req grantapp.CreateCabPreapprovalRequest
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

// GetByID retrieves a cab pre-approval
func (h *CabPreapprovalHandler) GetByID(c *gin.Context) {
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

// List lists cab pre-approvals with optional filtering
func (h *CabPreapprovalHandler) List(c *gin.Context) {
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

// Activate activates a pending FREQUENT pre-approval
func (h *CabPreapprovalHandler) Activate(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid grant ID format")
		return
	}

	grant, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, grant)
}

// Cancel cancels a pre-approval and retires its access code
func (h *CabPreapprovalHandler) Cancel(c *gin.Context) {
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

// Summary returns counts of cab pre-approvals by state
func (h *CabPreapprovalHandler) Summary(c *gin.Context) {
	summary, err := h.service.StateSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

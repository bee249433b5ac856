package handler

import (
	grantapp "github.com/community/backend/internal/application/accessgrant"
	"github.com/gin-gonic/gin"
)

// DeliveryPassHandler handles delivery pass endpoints
type DeliveryPassHandler struct {
	BaseHandler
	service *grantapp.DeliveryService
}

// NewDeliveryPassHandler creates a new DeliveryPassHandler
func NewDeliveryPassHandler(service *grantapp.DeliveryService) *DeliveryPassHandler {
	return &DeliveryPassHandler{service: service}
}

// RegisterRoutes registers delivery pass routes on the given group
func (h *DeliveryPassHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/deliveries", h.Create)
	rg.GET("/deliveries", h.List)
	rg.GET("/deliveries/summary", h.Summary)
	rg.GET("/deliveries/:id", h.GetByID)
	rg.POST("/deliveries/:id/cancel", h.Cancel)
}

// Create creates a delivery pass
func (h *DeliveryPassHandler) Create(c *gin.Context) {
	var req grantapp.CreateDeliveryPassRequest
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

// GetByID retrieves a delivery pass
func (h *DeliveryPassHandler) GetByID(c *gin.Context) {
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

// List lists delivery passes with optional filtering
func (h *DeliveryPassHandler) List(c *gin.Context) {
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

// Cancel cancels a delivery pass and retires its access code
func (h *DeliveryPassHandler) Cancel(c *gin.Context) {
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

// Summary returns counts of delivery passes by state
func (h *DeliveryPassHandler) Summary(c *gin.Context) {
	summary, err := h.service.StateSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

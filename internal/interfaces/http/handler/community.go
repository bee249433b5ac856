package handler

import (
	communityapp "github.com/community/backend/internal/application/community"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CommunityHandler handles building and flat endpoints
type CommunityHandler struct {
	BaseHandler
	service *communityapp.Service
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(service *communityapp.Service) *CommunityHandler {
	return &CommunityHandler{service: service}
}

// RegisterRoutes registers community routes on the given group
func (h *CommunityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/buildings", h.CreateBuilding)
	rg.GET("/buildings", h.ListBuildings)
	rg.POST("/flats", h.CreateFlat)
	rg.GET("/flats", h.ListFlats)
	rg.GET("/flats/occupancy", h.OccupancySummary)
	rg.GET("/flats/by-tenant/:tenant_id", h.FindFlatByTenant)
	rg.GET("/flats/:id", h.GetFlat)
}

// CreateBuilding creates a new building
func (h *CommunityHandler) CreateBuilding(c *gin.Context) {
	var req communityapp.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	building, err := h.service.CreateBuilding(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, building)
}

// ListBuildings lists all buildings
func (h *CommunityHandler) ListBuildings(c *gin.Context) {
	buildings, err := h.service.ListBuildings(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, buildings)
}

// CreateFlat creates a new flat in a building
func (h *CommunityHandler) CreateFlat(c *gin.Context) {
	var req communityapp.CreateFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	flat, err := h.service.CreateFlat(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, flat)
}

// GetFlat retrieves a flat with its occupancy cache
func (h *CommunityHandler) GetFlat(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid flat ID format")
		return
	}

	flat, err := h.service.GetFlat(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flat)
}

// ListFlats lists flats with optional filtering
func (h *CommunityHandler) ListFlats(c *gin.Context) {
	var filter communityapp.FlatListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	flats, err := h.service.ListFlats(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flats)
}

// FindFlatByTenant returns the flat currently occupied by a tenant
func (h *CommunityHandler) FindFlatByTenant(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenant_id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	flat, err := h.service.FindFlatByTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flat)
}

// OccupancySummary returns flat counts by occupancy status
func (h *CommunityHandler) OccupancySummary(c *gin.Context) {
	summary, err := h.service.OccupancySummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

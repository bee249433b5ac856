package handler

import (
	"time"

	billingapp "github.com/community/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// BillingHandler handles maintenance record and corpus fund endpoints
type BillingHandler struct {
	BaseHandler
	maintenance *billingapp.MaintenanceService
	corpus      *billingapp.CorpusFundService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(maintenance *billingapp.MaintenanceService, corpus *billingapp.CorpusFundService) *BillingHandler {
	return &BillingHandler{maintenance: maintenance, corpus: corpus}
}

// RegisterRoutes registers billing routes on the given group
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/maintenance", h.CreateMaintenance)
	rg.GET("/maintenance/:id", h.GetMaintenance)
	rg.POST("/maintenance/:id/confirm", h.ConfirmMaintenance)
	rg.POST("/maintenance/:id/invoices", h.CreateMaintenanceInvoice)
	rg.POST("/corpus-funds", h.CreateCorpusFund)
	rg.GET("/corpus-funds/:id", h.GetCorpusFund)
	rg.POST("/corpus-funds/:id/invoice", h.CreateCorpusFundInvoice)
}

// CreateMaintenance creates a maintenance record in draft state
func (h *BillingHandler) CreateMaintenance(c *gin.Context) {
	var req billingapp.CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	rec, err := h.maintenance.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rec)
}

// GetMaintenance retrieves a maintenance record
func (h *BillingHandler) GetMaintenance(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid maintenance record ID format")
		return
	}

	rec, err := h.maintenance.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// ConfirmMaintenance confirms a draft maintenance record
func (h *BillingHandler) ConfirmMaintenance(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid maintenance record ID format")
		return
	}

	rec, err := h.maintenance.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// CreateMaintenanceInvoice raises a monthly invoice from a confirmed record
func (h *BillingHandler) CreateMaintenanceInvoice(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid maintenance record ID format")
		return
	}

	inv, err := h.maintenance.CreateInvoice(c.Request.Context(), id, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, inv)
}

// CreateCorpusFund creates a corpus fund contribution
func (h *BillingHandler) CreateCorpusFund(c *gin.Context) {
	var req billingapp.CreateCorpusFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	cf, err := h.corpus.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cf)
}

// GetCorpusFund retrieves a corpus fund contribution
func (h *BillingHandler) GetCorpusFund(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid corpus fund ID format")
		return
	}

	cf, err := h.corpus.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cf)
}

// CreateCorpusFundInvoice raises the one-time contribution invoice
func (h *BillingHandler) CreateCorpusFundInvoice(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid corpus fund ID format")
		return
	}

	inv, err := h.corpus.CreateInvoice(c.Request.Context(), id, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, inv)
}

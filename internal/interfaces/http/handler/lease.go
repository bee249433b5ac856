package handler

import (
	"context"
	"time"

	leaseapp "github.com/community/backend/internal/application/lease"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LeaseHandler handles lease transaction endpoints, including the
// invoicing actions raised against a confirmed lease
type LeaseHandler struct {
	BaseHandler
	service   *leaseapp.Service
	invoicing *leaseapp.InvoicingService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(service *leaseapp.Service, invoicing *leaseapp.InvoicingService) *LeaseHandler {
	return &LeaseHandler{service: service, invoicing: invoicing}
}

// RegisterRoutes registers lease routes on the given group
func (h *LeaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/transactions", h.Create)
	rg.GET("/transactions", h.List)
	rg.GET("/transactions/:id", h.GetByID)
	rg.POST("/transactions/:id/confirm", h.Confirm)
	rg.POST("/transactions/:id/terminate", h.Terminate)
	rg.POST("/transactions/:id/cancel", h.Cancel)
	rg.POST("/transactions/:id/reset-to-draft", h.ResetToDraft)
	rg.POST("/transactions/:id/invoices/rent", h.CreateRentInvoice)
	rg.POST("/transactions/:id/invoices/security-deposit", h.CreateSecurityDepositInvoice)
}

// Create creates a new lease transaction in draft state
func (h *LeaseHandler) Create(c *gin.Context) {
	var req leaseapp.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	tx, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// GetByID retrieves a lease transaction
func (h *LeaseHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	tx, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// List lists lease transactions with optional filtering
func (h *LeaseHandler) List(c *gin.Context) {
	var filter leaseapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	txs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txs)
}

// Confirm confirms a draft transaction and occupies the flat
func (h *LeaseHandler) Confirm(c *gin.Context) {
	h.transition(c, h.service.Confirm)
}

// Terminate ends a confirmed lease early and vacates the flat
func (h *LeaseHandler) Terminate(c *gin.Context) {
	h.transition(c, h.service.Terminate)
}

// Cancel cancels a transaction, vacating the flat if it was confirmed
func (h *LeaseHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

// ResetToDraft returns a cancelled transaction to draft for rework
func (h *LeaseHandler) ResetToDraft(c *gin.Context) {
	h.transition(c, h.service.ResetToDraft)
}

// CreateRentInvoice raises the rent invoice for the current month
func (h *LeaseHandler) CreateRentInvoice(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	inv, err := h.invoicing.CreateRentInvoice(c.Request.Context(), id, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, inv)
}

// CreateSecurityDepositInvoice raises the one-time security deposit invoice
func (h *LeaseHandler) CreateSecurityDepositInvoice(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	inv, err := h.invoicing.CreateSecurityDepositInvoice(c.Request.Context(), id, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, inv)
}

// transition runs one lifecycle action identified by the :id parameter
func (h *LeaseHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*leaseapp.TransactionResponse, error)) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	tx, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

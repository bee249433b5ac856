package billing

import (
	"time"

	"github.com/community/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaintenanceLineRequest is one typed charge
type MaintenanceLineRequest struct {
	Type   string          `json:"type" binding:"required"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreateMaintenanceRequest carries the inputs for a new maintenance record
type CreateMaintenanceRequest struct {
	FlatID         uuid.UUID                `json:"flat_id" binding:"required"`
	TenantID       uuid.UUID                `json:"tenant_id" binding:"required"`
	TenantName     string                   `json:"tenant_name"`
	Model          string                   `json:"model" binding:"required,oneof=STANDARD AREA_BASED"`
	StandardAmount decimal.Decimal          `json:"standard_amount"`
	RatePerArea    decimal.Decimal          `json:"rate_per_area"`
	Lines          []MaintenanceLineRequest `json:"lines"`
}

// CreateCorpusFundRequest carries the inputs for a corpus fund contribution
type CreateCorpusFundRequest struct {
	FlatID    uuid.UUID       `json:"flat_id" binding:"required"`
	OwnerID   uuid.UUID       `json:"owner_id" binding:"required"`
	OwnerName string          `json:"owner_name"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// MaintenanceResponse is the API shape of a maintenance record
type MaintenanceResponse struct {
	ID           uuid.UUID       `json:"id"`
	FlatID       uuid.UUID       `json:"flat_id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	TenantName   string          `json:"tenant_name"`
	Model        string          `json:"model"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	InvoiceCount int             `json:"invoice_count"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToMaintenanceResponse maps a maintenance record to its API shape
func ToMaintenanceResponse(rec *billing.MaintenanceRecord) *MaintenanceResponse {
	return &MaintenanceResponse{
		ID:           rec.ID,
		FlatID:       rec.FlatID,
		TenantID:     rec.TenantID,
		TenantName:   rec.TenantName,
		Model:        string(rec.Model),
		TotalAmount:  rec.TotalAmount,
		Status:       string(rec.Status),
		InvoiceCount: len(rec.InvoiceIDs),
		CreatedAt:    rec.CreatedAt,
	}
}

// CorpusFundResponse is the API shape of a corpus fund contribution
type CorpusFundResponse struct {
	ID        uuid.UUID       `json:"id"`
	FlatID    uuid.UUID       `json:"flat_id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	OwnerName string          `json:"owner_name"`
	Amount    decimal.Decimal `json:"amount"`
	InvoiceID *uuid.UUID      `json:"invoice_id,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToCorpusFundResponse maps a corpus fund contribution to its API shape
func ToCorpusFundResponse(cf *billing.CorpusFund) *CorpusFundResponse {
	return &CorpusFundResponse{
		ID:        cf.ID,
		FlatID:    cf.FlatID,
		OwnerID:   cf.OwnerID,
		OwnerName: cf.OwnerName,
		Amount:    cf.Amount,
		InvoiceID: cf.InvoiceID,
		Status:    string(cf.Status),
		CreatedAt: cf.CreatedAt,
	}
}

// InvoiceResponse is the API shape of an invoice raised by billing actions
type InvoiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	OriginType  string          `json:"origin_type"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	IssueDate   time.Time       `json:"issue_date"`
	DueDate     time.Time       `json:"due_date"`
}

// ToInvoiceResponse maps an invoice to its API shape
func ToInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:          inv.ID,
		Number:      inv.Number,
		OriginType:  string(inv.OriginType),
		TotalAmount: inv.TotalAmount.Amount(),
		Status:      string(inv.Status),
		IssueDate:   inv.IssueDate,
		DueDate:     inv.DueDate,
	}
}

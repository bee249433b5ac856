package lease

import (
	"time"

	"github.com/community/backend/internal/domain/lease"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest carries the inputs for a new lease transaction
type CreateTransactionRequest struct {
	BuildingID      uuid.UUID       `json:"building_id" binding:"required"`
	FloorID         uuid.UUID       `json:"floor_id"`
	FlatID          uuid.UUID       `json:"flat_id" binding:"required"`
	TenantID        uuid.UUID       `json:"tenant_id" binding:"required"`
	TenantName      string          `json:"tenant_name" binding:"required"`
	LeaseOwnerID    *uuid.UUID      `json:"lease_owner_id"`
	RentPrice       decimal.Decimal `json:"rent_price" binding:"required"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	LeaseStartDate  time.Time       `json:"lease_start_date" binding:"required"`
	LeaseEndDate    time.Time       `json:"lease_end_date" binding:"required"`
	Notes           string          `json:"notes"`
}

// TransactionListFilter carries list query parameters
type TransactionListFilter struct {
	Status   string `form:"status"`
	FlatID   string `form:"flat_id"`
	TenantID string `form:"tenant_id"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// TransactionResponse is the API shape of a lease transaction
type TransactionResponse struct {
	ID                      uuid.UUID       `json:"id"`
	BuildingID              uuid.UUID       `json:"building_id"`
	FloorID                 uuid.UUID       `json:"floor_id"`
	FlatID                  uuid.UUID       `json:"flat_id"`
	FlatName                string          `json:"flat_name"`
	TenantID                uuid.UUID       `json:"tenant_id"`
	TenantName              string          `json:"tenant_name"`
	LeaseOwnerID            *uuid.UUID      `json:"lease_owner_id,omitempty"`
	RentPrice               decimal.Decimal `json:"rent_price"`
	SecurityDeposit         decimal.Decimal `json:"security_deposit"`
	LeaseStartDate          time.Time       `json:"lease_start_date"`
	LeaseEndDate            time.Time       `json:"lease_end_date"`
	DurationMonths          int             `json:"duration_months"`
	Status                  string          `json:"status"`
	InvoicedMonths          string          `json:"invoiced_months"`
	SecurityDepositInvoiced bool            `json:"security_deposit_invoiced"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// ToTransactionResponse maps a domain transaction to its API shape
func ToTransactionResponse(tx *lease.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                      tx.ID,
		BuildingID:              tx.BuildingID,
		FloorID:                 tx.FloorID,
		FlatID:                  tx.FlatID,
		FlatName:                tx.FlatName,
		TenantID:                tx.TenantID,
		TenantName:              tx.TenantName,
		LeaseOwnerID:            tx.LeaseOwnerID,
		RentPrice:               tx.RentPrice,
		SecurityDeposit:         tx.SecurityDeposit,
		LeaseStartDate:          tx.LeaseStartDate,
		LeaseEndDate:            tx.LeaseEndDate,
		DurationMonths:          tx.DurationMonths(),
		Status:                  tx.Status.String(),
		InvoicedMonths:          tx.InvoicedMonths,
		SecurityDepositInvoiced: tx.SecurityDepositInvoiced,
		CreatedAt:               tx.CreatedAt,
		UpdatedAt:               tx.UpdatedAt,
	}
}

// ToTransactionListResponse maps a slice of transactions
func ToTransactionListResponse(txs []lease.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, *ToTransactionResponse(&txs[i]))
	}
	return out
}

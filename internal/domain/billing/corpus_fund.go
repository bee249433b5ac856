package billing

import (
	"fmt"

	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CorpusFundStatus represents the status of a corpus fund contribution
type CorpusFundStatus string

const (
	CorpusFundStatusDraft    CorpusFundStatus = "DRAFT"
	CorpusFundStatusInvoiced CorpusFundStatus = "INVOICED"
)

// CorpusFund is a one-time capital contribution owed by a flat owner.
// Strictly one invoice per record: once invoiced it never re-bills.
type CorpusFund struct {
	shared.BaseAggregateRoot
	FlatID    uuid.UUID
	OwnerID   uuid.UUID
	OwnerName string
	Amount    decimal.Decimal
	InvoiceID *uuid.UUID
	Status    CorpusFundStatus
}

// NewCorpusFund creates a draft corpus fund contribution
func NewCorpusFund(flatID, ownerID uuid.UUID, ownerName string, amount decimal.Decimal) (*CorpusFund, error) {
	if flatID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FLAT", "Flat is required for a corpus fund contribution")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner is required for a corpus fund contribution")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Corpus fund amount must be greater than zero")
	}

	return &CorpusFund{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FlatID:            flatID,
		OwnerID:           ownerID,
		OwnerName:         ownerName,
		Amount:            amount,
		Status:            CorpusFundStatusDraft,
	}, nil
}

// MarkInvoiced attaches the single invoice and closes the record
func (c *CorpusFund) MarkInvoiced(invoiceID uuid.UUID) error {
	if c.Status != CorpusFundStatusDraft || c.InvoiceID != nil {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Corpus fund contribution in %s status has already been invoiced", c.Status))
	}

	c.InvoiceID = &invoiceID
	c.Status = CorpusFundStatusInvoiced
	c.Touch()
	c.IncrementVersion()

	return nil
}

package billing

import (
	"fmt"
	"time"

	"github.com/community/backend/internal/domain/shared"
	"github.com/community/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceOrigin identifies which lifecycle raised an invoice
type InvoiceOrigin string

const (
	OriginRent            InvoiceOrigin = "RENT"
	OriginSecurityDeposit InvoiceOrigin = "SECURITY_DEPOSIT"
	OriginMaintenance     InvoiceOrigin = "MAINTENANCE"
	OriginCorpusFund      InvoiceOrigin = "CORPUS_FUND"
)

// IsValid checks if the origin is a valid InvoiceOrigin
func (o InvoiceOrigin) IsValid() bool {
	switch o {
	case OriginRent, OriginSecurityDeposit, OriginMaintenance, OriginCorpusFund:
		return true
	}
	return false
}

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusPosted    InvoiceStatus = "POSTED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPosted, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// InvoiceLine is one billed line on an invoice
type InvoiceLine struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// Invoice is a billing document raised against a resident for rent, deposit,
// maintenance or corpus fund. OriginType and OriginID point back at the
// record that raised it.
type Invoice struct {
	shared.BaseAggregateRoot
	Number       string
	CustomerID   uuid.UUID
	CustomerName string
	FlatID       uuid.UUID
	OriginType   InvoiceOrigin
	OriginID     uuid.UUID
	// PeriodKey is the YYYY-MM billing period for rent invoices, empty for
	// one-shot origins
	PeriodKey   string
	Lines       []InvoiceLine `gorm:"foreignKey:InvoiceID"`
	TotalAmount valueobject.Money
	IssueDate   time.Time
	DueDate     time.Time
	Status      InvoiceStatus
}

// NewInvoice creates a draft invoice with a generated number
func NewInvoice(customerID uuid.UUID, customerName string, flatID uuid.UUID, origin InvoiceOrigin, originID uuid.UUID, issueDate time.Time) (*Invoice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Invoice customer is required")
	}
	if !origin.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice origin is required")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		CustomerName:      customerName,
		FlatID:            flatID,
		OriginType:        origin,
		OriginID:          originID,
		TotalAmount:       valueobject.ZeroINR(),
		IssueDate:         issueDate,
		DueDate:           issueDate.AddDate(0, 0, 15),
		Status:            InvoiceStatusDraft,
	}
	inv.Number = fmt.Sprintf("INV-%s-%s", issueDate.Format("200601"), inv.ID.String()[:8])

	return inv, nil
}

// AddLine appends a billed line and recomputes the total
func (i *Invoice) AddLine(description string, quantity, unitPrice decimal.Decimal) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to a draft invoice")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_INPUT", "Invoice line description is required")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Invoice line quantity must be positive")
	}

	amount := quantity.Mul(unitPrice)
	i.Lines = append(i.Lines, InvoiceLine{
		BaseEntity:  shared.NewBaseEntity(),
		InvoiceID:   i.ID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      amount,
	})
	i.recomputeTotal()
	i.Touch()
	i.IncrementVersion()

	return nil
}

func (i *Invoice) recomputeTotal() {
	total := decimal.Zero
	for _, l := range i.Lines {
		total = total.Add(l.Amount)
	}
	i.TotalAmount = valueobject.NewMoneyINR(total)
}

// Post finalizes the invoice for sending
func (i *Invoice) Post() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot post invoice in %s status", i.Status))
	}
	if len(i.Lines) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot post an invoice without lines")
	}
	i.Status = InvoiceStatusPosted
	i.Touch()
	i.IncrementVersion()
	return nil
}

// MarkPaid records full payment
func (i *Invoice) MarkPaid() error {
	if i.Status != InvoiceStatusPosted {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay invoice in %s status", i.Status))
	}
	i.Status = InvoiceStatusPaid
	i.Touch()
	i.IncrementVersion()
	return nil
}

// Cancel voids an unpaid invoice
func (i *Invoice) Cancel() error {
	if i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", i.Status))
	}
	i.Status = InvoiceStatusCancelled
	i.Touch()
	i.IncrementVersion()
	return nil
}

package lease

import (
	"fmt"
	"strings"
	"time"

	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthKeyLayout is the year-month key format used by the invoicing ledger
const MonthKeyLayout = "2006-01"

// Status represents the status of a lease transaction
type Status string

const (
	StatusDraft      Status = "DRAFT"
	StatusConfirmed  Status = "CONFIRMED"
	StatusExpired    Status = "EXPIRED"
	StatusTerminated Status = "TERMINATED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid checks if the status is a valid lease Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusExpired, StatusTerminated, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// ResetToDraft is an administrative override handled separately and is not
// part of the forward transition table.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusExpired || target == StatusTerminated || target == StatusCancelled
	case StatusExpired, StatusTerminated, StatusCancelled:
		return false
	}
	return false
}

// Transaction represents one lease contract binding a tenant to a flat.
// The flat's occupancy cache mirrors whichever transaction is CONFIRMED;
// the transaction set is the authoritative record.
type Transaction struct {
	shared.BaseAggregateRoot
	BuildingID   uuid.UUID
	FloorID      uuid.UUID
	FlatID       uuid.UUID
	FlatName     string
	TenantID     uuid.UUID
	TenantName   string
	LeaseOwnerID *uuid.UUID // optional holder of lease rights; tenant still pays

	RentPrice       decimal.Decimal // monthly
	SecurityDeposit decimal.Decimal
	LeaseStartDate  time.Time
	LeaseEndDate    time.Time
	AgreementDate   time.Time
	Notes           string

	Status Status

	// InvoicedMonths is a comma-separated ledger of YYYY-MM keys already
	// billed for rent. At most one rent invoice per key.
	InvoicedMonths          string
	SecurityDepositInvoiced bool

	ConfirmedAt  *time.Time
	TerminatedAt *time.Time
	CancelledAt  *time.Time
	ExpiredAt    *time.Time
}

// NewTransaction creates a new lease transaction in draft status
func NewTransaction(buildingID, floorID, flatID uuid.UUID, flatName string, tenantID uuid.UUID, tenantName string, leaseOwnerID *uuid.UUID, rent, deposit decimal.Decimal, leaseStart, leaseEnd time.Time) (*Transaction, error) {
	if flatID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FLAT", "Flat is required for a lease transaction")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant is required for a lease transaction")
	}
	if !rent.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RENT", "Monthly rent must be greater than zero")
	}
	if deposit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DEPOSIT", "Security deposit cannot be negative")
	}
	if leaseStart.IsZero() || leaseEnd.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATES", "Lease start and end dates are required")
	}
	if !leaseEnd.After(leaseStart) {
		return nil, shared.NewDomainError("INVALID_DATES", "Lease end date must be after start date")
	}

	tx := &Transaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuildingID:        buildingID,
		FloorID:           floorID,
		FlatID:            flatID,
		FlatName:          flatName,
		TenantID:          tenantID,
		TenantName:        tenantName,
		LeaseOwnerID:      leaseOwnerID,
		RentPrice:         rent,
		SecurityDeposit:   deposit,
		LeaseStartDate:    leaseStart,
		LeaseEndDate:      leaseEnd,
		AgreementDate:     time.Now(),
		Status:            StatusDraft,
	}

	tx.AddDomainEvent(NewTransactionCreatedEvent(tx))

	return tx, nil
}

// DurationMonths returns the lease duration in whole months (30-day buckets)
func (t *Transaction) DurationMonths() int {
	return int(t.LeaseEndDate.Sub(t.LeaseStartDate).Hours() / 24 / 30)
}

// Confirm activates the lease. The caller (application service) is
// responsible for occupying the flat before saving; the partial unique index
// on confirmed transactions per flat backstops concurrent confirms.
func (t *Transaction) Confirm() error {
	if !t.Status.CanTransitionTo(StatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm lease in %s status", t.Status))
	}

	now := time.Now()
	t.Status = StatusConfirmed
	t.ConfirmedAt = &now
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTransactionConfirmedEvent(t))

	return nil
}

// Terminate ends the lease early. The flat is vacated by the application
// service, which verifies this transaction is the current occupant.
func (t *Transaction) Terminate() error {
	if t.Status != StatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot terminate lease in %s status", t.Status))
	}

	now := time.Now()
	t.Status = StatusTerminated
	t.TerminatedAt = &now
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTransactionTerminatedEvent(t))

	return nil
}

// Cancel cancels the lease from draft or confirmed status
func (t *Transaction) Cancel() error {
	if !t.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel lease in %s status", t.Status))
	}

	wasConfirmed := t.Status == StatusConfirmed
	now := time.Now()
	t.Status = StatusCancelled
	t.CancelledAt = &now
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTransactionCancelledEvent(t, wasConfirmed))

	return nil
}

// Expire marks a confirmed lease past its end date as expired.
// Called by the expiry sweep; idempotent at the service level because the
// sweep only selects CONFIRMED transactions.
func (t *Transaction) Expire(today time.Time) error {
	if t.Status != StatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire lease in %s status", t.Status))
	}
	if !t.LeaseEndDate.Before(today) {
		return shared.NewDomainError("INVALID_STATE", "Lease end date has not passed yet")
	}

	now := time.Now()
	t.Status = StatusExpired
	t.ExpiredAt = &now
	t.Touch()
	t.IncrementVersion()

	t.AddDomainEvent(NewTransactionExpiredEvent(t))

	return nil
}

// ResetToDraft is an administrative override back to draft from any status
func (t *Transaction) ResetToDraft() {
	if t.Status == StatusDraft {
		return
	}
	t.Status = StatusDraft
	t.ConfirmedAt = nil
	t.TerminatedAt = nil
	t.CancelledAt = nil
	t.ExpiredAt = nil
	t.Touch()
	t.IncrementVersion()
}

// IsConfirmed returns true if the lease is active
func (t *Transaction) IsConfirmed() bool {
	return t.Status == StatusConfirmed
}

// IsTerminal returns true if the lease is in a terminal state
func (t *Transaction) IsTerminal() bool {
	switch t.Status {
	case StatusExpired, StatusTerminated, StatusCancelled:
		return true
	}
	return false
}

// MonthKey returns the YYYY-MM ledger key for the given time
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// IsMonthInvoiced reports whether rent has already been billed for the key
func (t *Transaction) IsMonthInvoiced(monthKey string) bool {
	if t.InvoicedMonths == "" {
		return false
	}
	for _, k := range strings.Split(t.InvoicedMonths, ",") {
		if k == monthKey {
			return true
		}
	}
	return false
}

// MarkMonthInvoiced records the month key in the billing ledger.
// Fails when the month was already billed: rent is at most once per period.
func (t *Transaction) MarkMonthInvoiced(monthKey string) error {
	if t.IsMonthInvoiced(monthKey) {
		return shared.NewDomainError("MONTH_ALREADY_INVOICED",
			fmt.Sprintf("Rent invoice for %s has already been created", monthKey))
	}
	if t.InvoicedMonths == "" {
		t.InvoicedMonths = monthKey
	} else {
		t.InvoicedMonths = t.InvoicedMonths + "," + monthKey
	}
	t.Touch()
	t.IncrementVersion()
	return nil
}

// MarkSecurityDepositInvoiced records the one-shot deposit invoice
func (t *Transaction) MarkSecurityDepositInvoiced() error {
	if t.SecurityDepositInvoiced {
		return shared.NewDomainError("DEPOSIT_ALREADY_INVOICED",
			"Security deposit invoice has already been created for this lease")
	}
	if !t.SecurityDeposit.IsPositive() {
		return shared.NewDomainError("INVALID_DEPOSIT",
			"Security deposit amount must be greater than zero to create invoice")
	}
	t.SecurityDepositInvoiced = true
	t.Touch()
	t.IncrementVersion()
	return nil
}

package lease

import (
	"time"

	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for lease transactions
const (
	EventTransactionCreated    = "lease.transaction.created"
	EventTransactionConfirmed  = "lease.transaction.confirmed"
	EventTransactionTerminated = "lease.transaction.terminated"
	EventTransactionCancelled  = "lease.transaction.cancelled"
	EventTransactionExpired    = "lease.transaction.expired"
)

// TransactionCreatedEvent is raised when a lease transaction is created
type TransactionCreatedEvent struct {
	shared.BaseDomainEvent
	FlatID    uuid.UUID       `json:"flat_id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	RentPrice decimal.Decimal `json:"rent_price"`
}

// NewTransactionCreatedEvent creates a new TransactionCreatedEvent
func NewTransactionCreatedEvent(tx *Transaction) *TransactionCreatedEvent {
	return &TransactionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTransactionCreated, "Transaction", tx.ID),
		FlatID:          tx.FlatID,
		TenantID:        tx.TenantID,
		RentPrice:       tx.RentPrice,
	}
}

// TransactionConfirmedEvent is raised when a lease becomes active
type TransactionConfirmedEvent struct {
	shared.BaseDomainEvent
	FlatID         uuid.UUID `json:"flat_id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	LeaseStartDate time.Time `json:"lease_start_date"`
	LeaseEndDate   time.Time `json:"lease_end_date"`
}

// NewTransactionConfirmedEvent creates a new TransactionConfirmedEvent
func NewTransactionConfirmedEvent(tx *Transaction) *TransactionConfirmedEvent {
	return &TransactionConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTransactionConfirmed, "Transaction", tx.ID),
		FlatID:          tx.FlatID,
		TenantID:        tx.TenantID,
		LeaseStartDate:  tx.LeaseStartDate,
		LeaseEndDate:    tx.LeaseEndDate,
	}
}

// TransactionTerminatedEvent is raised when a lease ends early
type TransactionTerminatedEvent struct {
	shared.BaseDomainEvent
	FlatID   uuid.UUID `json:"flat_id"`
	TenantID uuid.UUID `json:"tenant_id"`
}

// NewTransactionTerminatedEvent creates a new TransactionTerminatedEvent
func NewTransactionTerminatedEvent(tx *Transaction) *TransactionTerminatedEvent {
	return &TransactionTerminatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTransactionTerminated, "Transaction", tx.ID),
		FlatID:          tx.FlatID,
		TenantID:        tx.TenantID,
	}
}

// TransactionCancelledEvent is raised when a lease is cancelled
type TransactionCancelledEvent struct {
	shared.BaseDomainEvent
	FlatID       uuid.UUID `json:"flat_id"`
	WasConfirmed bool      `json:"was_confirmed"`
}

// NewTransactionCancelledEvent creates a new TransactionCancelledEvent
func NewTransactionCancelledEvent(tx *Transaction, wasConfirmed bool) *TransactionCancelledEvent {
	return &TransactionCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTransactionCancelled, "Transaction", tx.ID),
		FlatID:          tx.FlatID,
		WasConfirmed:    wasConfirmed,
	}
}

// TransactionExpiredEvent is raised by the expiry sweep
type TransactionExpiredEvent struct {
	shared.BaseDomainEvent
	FlatID       uuid.UUID `json:"flat_id"`
	LeaseEndDate time.Time `json:"lease_end_date"`
}

// NewTransactionExpiredEvent creates a new TransactionExpiredEvent
func NewTransactionExpiredEvent(tx *Transaction) *TransactionExpiredEvent {
	return &TransactionExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTransactionExpired, "Transaction", tx.ID),
		FlatID:          tx.FlatID,
		LeaseEndDate:    tx.LeaseEndDate,
	}
}

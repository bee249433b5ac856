package lease

import (
	"context"
	"time"

	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransactionRepository provides access to lease transactions
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Transaction, error)
	FindByFlat(ctx context.Context, flatID uuid.UUID, filter shared.Filter) ([]Transaction, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Transaction, error)
	// FindConfirmedByFlat returns the single confirmed lease for the flat, if any
	FindConfirmedByFlat(ctx context.Context, flatID uuid.UUID) (*Transaction, error)
	// FindDueForExpiry returns confirmed leases whose end date is before today
	FindDueForExpiry(ctx context.Context, today time.Time, limit int) ([]Transaction, error)
	Save(ctx context.Context, tx *Transaction) error
	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status Status) (int64, error)
}

package persistence

import (
	"context"

	leaseapp "github.com/community/backend/internal/application/lease"
	"github.com/community/backend/internal/domain/community"
	"github.com/community/backend/internal/domain/lease"
	"gorm.io/gorm"
)

// GormLeaseTransactionScope implements the lease TransactionScope using GORM
// transactions, so a lease transition and its flat occupancy update commit or
// roll back together.
type GormLeaseTransactionScope struct {
	db *gorm.DB
}

// NewGormLeaseTransactionScope creates a new GormLeaseTransactionScope
func NewGormLeaseTransactionScope(db *gorm.DB) *GormLeaseTransactionScope {
	return &GormLeaseTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormLeaseTransactionScope) Execute(ctx context.Context, fn func(repos leaseapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLeaseTransactionalRepositories{tx: tx})
	})
}

// gormLeaseTransactionalRepositories exposes the lease and flat repositories
// bound to the current transaction.
type gormLeaseTransactionalRepositories struct {
	tx *gorm.DB
}

// TransactionRepo returns the lease transaction repository scoped to the current transaction
func (r *gormLeaseTransactionalRepositories) TransactionRepo() lease.TransactionRepository {
	return NewGormLeaseTransactionRepository(r.tx)
}

// FlatRepo returns the flat repository scoped to the current transaction
func (r *gormLeaseTransactionalRepositories) FlatRepo() community.FlatRepository {
	return NewGormFlatRepository(r.tx)
}

// Ensure GormLeaseTransactionScope implements TransactionScope
var _ leaseapp.TransactionScope = (*GormLeaseTransactionScope)(nil)

// Ensure gormLeaseTransactionalRepositories implements TransactionalRepositories
var _ leaseapp.TransactionalRepositories = (*gormLeaseTransactionalRepositories)(nil)

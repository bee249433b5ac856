package lease

import (
	"context"

	"github.com/community/backend/internal/domain/community"
	"github.com/community/backend/internal/domain/lease"
)

// TransactionScope provides transactional access to the lease and flat
// repositories. Lease transitions write two records, the transaction and the
// flat occupancy cache, and both must land or neither.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction. Both repositories share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// TransactionRepo returns the lease transaction repository scoped to the current transaction
	TransactionRepo() lease.TransactionRepository
	// FlatRepo returns the flat repository scoped to the current transaction
	FlatRepo() community.FlatRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	txRepo   lease.TransactionRepository
	flatRepo community.FlatRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(txRepo lease.TransactionRepository, flatRepo community.FlatRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{txRepo: txRepo, flatRepo: flatRepo}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// TransactionRepo returns the lease transaction repository.
func (s *NoOpTransactionScope) TransactionRepo() lease.TransactionRepository {
	return s.txRepo
}

// FlatRepo returns the flat repository.
func (s *NoOpTransactionScope) FlatRepo() community.FlatRepository {
	return s.flatRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

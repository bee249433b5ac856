package persistence

import (
	"context"
	"errors"
	"testing"

	leaseapp "github.com/community/backend/internal/application/lease"
	"github.com/community/backend/internal/domain/community"
	"github.com/community/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLeaseScopeTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.FlatModel{}, &models.LeaseTransactionModel{})
	require.NoError(t, err)

	return db
}

func TestGormLeaseTransactionScope_CommitsPairedWrites(t *testing.T) {
	db := setupLeaseScopeTestDB(t)
	scope := NewGormLeaseTransactionScope(db)
	ctx := context.Background()

	flat, err := community.NewFlat("A-101", uuid.New(), uuid.New(), "2BHK", decimal.NewFromInt(1050))
	require.NoError(t, err)
	require.NoError(t, NewGormFlatRepository(db).Save(ctx, flat))

	tx := newDraftTransaction(t, flat.ID, uuid.New())
	require.NoError(t, NewGormLeaseTransactionRepository(db).Save(ctx, tx))

	require.NoError(t, flat.Occupy(tx.ID, tx.TenantID, nil, tx.RentPrice, tx.LeaseStartDate, tx.LeaseEndDate))
	require.NoError(t, tx.Confirm())

	err = scope.Execute(ctx, func(repos leaseapp.TransactionalRepositories) error {
		if err := repos.FlatRepo().SaveWithLock(ctx, flat); err != nil {
			return err
		}
		return repos.TransactionRepo().SaveWithLock(ctx, tx)
	})
	require.NoError(t, err)

	foundFlat, err := NewGormFlatRepository(db).FindByID(ctx, flat.ID)
	require.NoError(t, err)
	assert.True(t, foundFlat.IsOccupied())

	foundTx, err := NewGormLeaseTransactionRepository(db).FindByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, foundTx.IsConfirmed())
}

func TestGormLeaseTransactionScope_RollsBackOnError(t *testing.T) {
	db := setupLeaseScopeTestDB(t)
	scope := NewGormLeaseTransactionScope(db)
	ctx := context.Background()

	flat, err := community.NewFlat("B-204", uuid.New(), uuid.New(), "3BHK", decimal.NewFromInt(1400))
	require.NoError(t, err)
	require.NoError(t, NewGormFlatRepository(db).Save(ctx, flat))

	tx := newDraftTransaction(t, flat.ID, uuid.New())
	require.NoError(t, NewGormLeaseTransactionRepository(db).Save(ctx, tx))

	require.NoError(t, flat.Occupy(tx.ID, tx.TenantID, nil, tx.RentPrice, tx.LeaseStartDate, tx.LeaseEndDate))
	require.NoError(t, tx.Confirm())

	boom := errors.New("transition aborted")
	err = scope.Execute(ctx, func(repos leaseapp.TransactionalRepositories) error {
		if err := repos.FlatRepo().SaveWithLock(ctx, flat); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// The flat write inside the scope was rolled back with it
	foundFlat, err := NewGormFlatRepository(db).FindByID(ctx, flat.ID)
	require.NoError(t, err)
	assert.False(t, foundFlat.IsOccupied())
	assert.Equal(t, 1, foundFlat.Version)
}

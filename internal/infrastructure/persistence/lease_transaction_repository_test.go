package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/community/backend/internal/domain/lease"
	"github.com/community/backend/internal/domain/shared"
	"github.com/community/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLeaseTransactionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.LeaseTransactionModel{})
	require.NoError(t, err)

	return db
}

func newDraftTransaction(t *testing.T, flatID, tenantID uuid.UUID) *lease.Transaction {
	start := time.Now().AddDate(0, 0, 1).Truncate(time.Hour)
	end := start.AddDate(1, 0, 0)

	tx, err := lease.NewTransaction(
		uuid.New(), uuid.New(), flatID, "A-101",
		tenantID, "Asha Rao", nil,
		decimal.NewFromInt(25000), decimal.NewFromInt(50000),
		start, end,
	)
	require.NoError(t, err)
	return tx
}

func TestGormLeaseTransactionRepository_SaveAndFind(t *testing.T) {
	db := setupLeaseTransactionTestDB(t)
	repo := NewGormLeaseTransactionRepository(db)
	ctx := context.Background()

	t.Run("saves and finds a draft transaction", func(t *testing.T) {
		tx := newDraftTransaction(t, uuid.New(), uuid.New())

		err := repo.Save(ctx, tx)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, tx.ID, found.ID)
		assert.Equal(t, lease.StatusDraft, found.Status)
		assert.Equal(t, "A-101", found.FlatName)
		assert.True(t, found.RentPrice.Equal(decimal.NewFromInt(25000)))
		assert.Equal(t, 1, found.Version)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormLeaseTransactionRepository_FindConfirmedByFlat(t *testing.T) {
	db := setupLeaseTransactionTestDB(t)
	repo := NewGormLeaseTransactionRepository(db)
	ctx := context.Background()

	flatID := uuid.New()

	draft := newDraftTransaction(t, flatID, uuid.New())
	require.NoError(t, repo.Save(ctx, draft))

	confirmed := newDraftTransaction(t, flatID, uuid.New())
	require.NoError(t, confirmed.Confirm())
	require.NoError(t, repo.Save(ctx, confirmed))

	t.Run("returns only the confirmed lease", func(t *testing.T) {
		found, err := repo.FindConfirmedByFlat(ctx, flatID)
		require.NoError(t, err)
		assert.Equal(t, confirmed.ID, found.ID)
		assert.Equal(t, lease.StatusConfirmed, found.Status)
	})

	t.Run("returns not found when flat has no confirmed lease", func(t *testing.T) {
		_, err := repo.FindConfirmedByFlat(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormLeaseTransactionRepository_SaveWithLock(t *testing.T) {
	db := setupLeaseTransactionTestDB(t)
	repo := NewGormLeaseTransactionRepository(db)
	ctx := context.Background()

	t.Run("persists a confirmed transition", func(t *testing.T) {
		tx := newDraftTransaction(t, uuid.New(), uuid.New())
		require.NoError(t, repo.Save(ctx, tx))

		require.NoError(t, tx.Confirm())
		err := repo.SaveWithLock(ctx, tx)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, lease.StatusConfirmed, found.Status)
		assert.Equal(t, 2, found.Version)
		assert.NotNil(t, found.ConfirmedAt)
	})

	t.Run("rejects a concurrent modification", func(t *testing.T) {
		tx := newDraftTransaction(t, uuid.New(), uuid.New())
		require.NoError(t, repo.Save(ctx, tx))

		first, err := repo.FindByID(ctx, tx.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, tx.ID)
		require.NoError(t, err)

		require.NoError(t, first.Confirm())
		require.NoError(t, repo.SaveWithLock(ctx, first))

		require.NoError(t, second.Cancel())
		err = repo.SaveWithLock(ctx, second)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)
	})
}

func TestGormLeaseTransactionRepository_FindDueForExpiry(t *testing.T) {
	db := setupLeaseTransactionTestDB(t)
	repo := NewGormLeaseTransactionRepository(db)
	ctx := context.Background()

	now := time.Now()
	flatID := uuid.New()

	// Confirmed lease that ended a month ago
	ended, err := lease.NewTransaction(
		uuid.New(), uuid.New(), flatID, "B-204",
		uuid.New(), "Vikram Shah", nil,
		decimal.NewFromInt(18000), decimal.NewFromInt(36000),
		now.AddDate(-1, 0, 0), now.AddDate(0, -1, 0),
	)
	require.NoError(t, err)
	require.NoError(t, ended.Confirm())
	require.NoError(t, repo.Save(ctx, ended))

	// Confirmed lease still running
	running := newDraftTransaction(t, uuid.New(), uuid.New())
	require.NoError(t, running.Confirm())
	require.NoError(t, repo.Save(ctx, running))

	// Draft lease with a past end date must not be swept
	staleDraft, err := lease.NewTransaction(
		uuid.New(), uuid.New(), uuid.New(), "C-002",
		uuid.New(), "Meera Iyer", nil,
		decimal.NewFromInt(12000), decimal.Zero,
		now.AddDate(-1, 0, 0), now.AddDate(0, -2, 0),
	)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, staleDraft))

	due, err := repo.FindDueForExpiry(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, ended.ID, due[0].ID)
}

func TestGormLeaseTransactionRepository_FindAll(t *testing.T) {
	db := setupLeaseTransactionTestDB(t)
	repo := NewGormLeaseTransactionRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	for i := 0; i < 3; i++ {
		tx := newDraftTransaction(t, uuid.New(), tenantID)
		require.NoError(t, repo.Save(ctx, tx))
	}
	confirmed := newDraftTransaction(t, uuid.New(), uuid.New())
	require.NoError(t, confirmed.Confirm())
	require.NoError(t, repo.Save(ctx, confirmed))

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters = map[string]interface{}{"status": string(lease.StatusConfirmed)}

		txs, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, confirmed.ID, txs[0].ID)
	})

	t.Run("filters by tenant", func(t *testing.T) {
		txs, err := repo.FindByTenant(ctx, tenantID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, txs, 3)
	})

	t.Run("paginates results", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Page = 1
		filter.PageSize = 2

		txs, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, txs, 2)
	})
}

func TestGormLeaseTransactionRepository_Delete(t *testing.T) {
	db := setupLeaseTransactionTestDB(t)
	repo := NewGormLeaseTransactionRepository(db)
	ctx := context.Background()

	tx := newDraftTransaction(t, uuid.New(), uuid.New())
	require.NoError(t, repo.Save(ctx, tx))

	require.NoError(t, repo.Delete(ctx, tx.ID))

	_, err := repo.FindByID(ctx, tx.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, tx.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

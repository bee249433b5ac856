package lease

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/community/backend/internal/domain/lease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExpirationService_Sweep(t *testing.T) {
	txRepo := new(MockTransactionRepository)
	flatRepo := new(MockFlatRepository)
	svc := NewExpirationService(txRepo, NewNoOpTransactionScope(txRepo, flatRepo), nil, zap.NewNop())

	flat := newAvailableFlat(t)
	tx := newDraftTransaction(t, flat.ID)
	require.NoError(t, flat.Occupy(tx.ID, tx.TenantID, nil, tx.RentPrice, tx.LeaseStartDate, tx.LeaseEndDate))
	require.NoError(t, tx.Confirm())
	tx.ClearDomainEvents()

	now := tx.LeaseEndDate.AddDate(0, 0, 1)
	txRepo.On("FindDueForExpiry", mock.Anything, now, expireBatchSize).Return([]lease.Transaction{*tx}, nil)
	flatRepo.On("FindByID", mock.Anything, flat.ID).Return(flat, nil)
	flatRepo.On("SaveWithLock", mock.Anything, flat).Return(nil)
	txRepo.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil)

	expired, err := svc.Sweep(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.False(t, flat.IsOccupied())
}

func TestExpirationService_Sweep_NothingDue(t *testing.T) {
	txRepo := new(MockTransactionRepository)
	flatRepo := new(MockFlatRepository)
	svc := NewExpirationService(txRepo, NewNoOpTransactionScope(txRepo, flatRepo), nil, zap.NewNop())

	now := time.Now()
	txRepo.On("FindDueForExpiry", mock.Anything, now, expireBatchSize).Return([]lease.Transaction{}, nil)

	expired, err := svc.Sweep(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 0, expired)
	flatRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestExpirationService_Sweep_SkipsFailingRecord(t *testing.T) {
	txRepo := new(MockTransactionRepository)
	flatRepo := new(MockFlatRepository)
	svc := NewExpirationService(txRepo, NewNoOpTransactionScope(txRepo, flatRepo), nil, zap.NewNop())

	flatA := newAvailableFlat(t)
	txA := newDraftTransaction(t, flatA.ID)
	require.NoError(t, txA.Confirm())

	flatB := newAvailableFlat(t)
	txB := newDraftTransaction(t, flatB.ID)
	require.NoError(t, txB.Confirm())

	now := txA.LeaseEndDate.AddDate(0, 0, 1)
	txRepo.On("FindDueForExpiry", mock.Anything, now, expireBatchSize).Return([]lease.Transaction{*txA, *txB}, nil)
	// First flat lookup fails, second record still processes
	flatRepo.On("FindByID", mock.Anything, flatA.ID).Return(nil, errors.New("connection reset"))
	flatRepo.On("FindByID", mock.Anything, flatB.ID).Return(flatB, nil)
	txRepo.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil)

	expired, err := svc.Sweep(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 1, expired)
}

package accessgrant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/community/backend/internal/domain/accessgrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newExpirationService(cab *MockCabRepository, delivery *MockDeliveryRepository, guest *MockGuestRepository, child *MockChildExitRepository) *ExpirationService {
	return NewExpirationService(cab, delivery, guest, child, nil, zap.NewNop())
}

func TestExpirationService_SweepCabs(t *testing.T) {
	cabRepo := new(MockCabRepository)
	svc := newExpirationService(cabRepo, new(MockDeliveryRepository), new(MockGuestRepository), new(MockChildExitRepository))

	now := time.Now().UTC()
	overdue := newActiveCab(t, now.AddDate(0, 0, -2), "482913")

	cabRepo.On("FindDueForExpiry", mock.Anything, now, expireBatchSize).Return([]accessgrant.CabPreapproval{*overdue}, nil)
	cabRepo.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil)

	expired, err := svc.SweepCabs(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	cabRepo.AssertExpectations(t)
}

func TestExpirationService_SweepCabs_NothingDue(t *testing.T) {
	cabRepo := new(MockCabRepository)
	svc := newExpirationService(cabRepo, new(MockDeliveryRepository), new(MockGuestRepository), new(MockChildExitRepository))

	now := time.Now().UTC()
	cabRepo.On("FindDueForExpiry", mock.Anything, now, expireBatchSize).Return([]accessgrant.CabPreapproval{}, nil)

	expired, err := svc.SweepCabs(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 0, expired)
	cabRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestExpirationService_SweepCabs_SkipsFailingRecord(t *testing.T) {
	cabRepo := new(MockCabRepository)
	svc := newExpirationService(cabRepo, new(MockDeliveryRepository), new(MockGuestRepository), new(MockChildExitRepository))

	now := time.Now().UTC()
	first := newActiveCab(t, now.AddDate(0, 0, -2), "482913")
	second := newActiveCab(t, now.AddDate(0, 0, -2), "591736")

	cabRepo.On("FindDueForExpiry", mock.Anything, now, expireBatchSize).Return([]accessgrant.CabPreapproval{*first, *second}, nil)
	// First write fails, second record still expires
	cabRepo.On("SaveWithLock", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()
	cabRepo.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil).Once()

	expired, err := svc.SweepCabs(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 1, expired)
}

func TestExpirationService_SweepCabs_WindowStillOpen(t *testing.T) {
	cabRepo := new(MockCabRepository)
	svc := newExpirationService(cabRepo, new(MockDeliveryRepository), new(MockGuestRepository), new(MockChildExitRepository))

	// A record the query returned although its window has not ended;
	// the domain guard rejects it and the sweep moves on
	now := time.Now().UTC()
	live := newActiveCab(t, now, "482913")

	cabRepo.On("FindDueForExpiry", mock.Anything, now, expireBatchSize).Return([]accessgrant.CabPreapproval{*live}, nil)

	expired, err := svc.SweepCabs(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 0, expired)
	cabRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

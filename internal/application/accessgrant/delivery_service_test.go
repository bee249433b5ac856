package accessgrant

import (
	"context"
	"testing"
	"time"

	"github.com/community/backend/internal/domain/accessgrant"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDeliveryService_Create_Once(t *testing.T) {
	repo := new(MockDeliveryRepository)
	svc := NewDeliveryService(repo, nil, zap.NewNop())

	var saved *accessgrant.DeliveryPass
	repo.On("CodeInUse", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*accessgrant.DeliveryPass)
	}).Return(nil)

	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	resp, err := svc.Create(context.Background(), CreateDeliveryPassRequest{
		ResidentID:    uuid.New(),
		ResidentName:  "Meera Iyer",
		FlatID:        uuid.New(),
		Courier:       "QuickShip",
		ParcelCount:   1,
		Mode:          "ONCE",
		OnceDate:      &date,
		OnceStartTime: "10:00",
		ValidFor:      "4",
	})

	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.State)
	assert.Len(t, resp.AccessCode, 6)
	require.NotNil(t, saved)
	// Leave-at-gate defaults to true when the request omits it
	assert.True(t, saved.AllowLeaveAtGate)
	assert.False(t, saved.IsSurprise)
	assert.Equal(t, time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC), saved.WindowStart)
	assert.Equal(t, time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC), saved.WindowEnd)
	repo.AssertExpectations(t)
}

func TestDeliveryService_Create_FrequentCarriesBounds(t *testing.T) {
	repo := new(MockDeliveryRepository)
	svc := NewDeliveryService(repo, nil, zap.NewNop())

	var saved *accessgrant.DeliveryPass
	repo.On("CodeInUse", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*accessgrant.DeliveryPass)
	}).Return(nil)

	leaveAtGate := false
	_, err := svc.Create(context.Background(), CreateDeliveryPassRequest{
		ResidentID:       uuid.New(),
		ResidentName:     "Meera Iyer",
		FlatID:           uuid.New(),
		Courier:          "DailyMilk",
		Mode:             "FREQUENT",
		IsSurprise:       true,
		AllowLeaveAtGate: &leaveAtGate,
		Validity:         "1W",
		FreqTimeFrom:     "06:00",
		FreqTimeTo:       "09:30",
		DaysOfWeek:       "mon,wed,fri",
		EntriesPerDay:    1,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.IsSurprise)
	assert.False(t, saved.AllowLeaveAtGate)
	assert.Equal(t, "mon,wed,fri", saved.DaysOfWeek)
	assert.Equal(t, 1, saved.EntriesPerDay)
	// The daily to-time bound anchors the window end on the valid-till date
	require.False(t, saved.FreqValidTill.IsZero())
	y, m, d := saved.FreqValidTill.Date()
	assert.Equal(t, time.Date(y, m, d, 9, 30, 0, 0, saved.FreqValidTill.Location()), saved.WindowEnd)
	repo.AssertExpectations(t)
}

func TestDeliveryService_Create_BadToTime(t *testing.T) {
	repo := new(MockDeliveryRepository)
	svc := NewDeliveryService(repo, nil, zap.NewNop())

	repo.On("CodeInUse", mock.Anything, mock.Anything).Return(false, nil)

	_, err := svc.Create(context.Background(), CreateDeliveryPassRequest{
		ResidentID: uuid.New(),
		Mode:       "FREQUENT",
		Validity:   "1W",
		FreqTimeTo: "27:80",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HH:MM")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

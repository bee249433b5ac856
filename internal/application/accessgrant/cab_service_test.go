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

func TestCabService_Create(t *testing.T) {
	repo := new(MockCabRepository)
	svc := NewCabService(repo, nil, zap.NewNop())

	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	resp, err := svc.Create(context.Background(), CreateCabPreapprovalRequest{
		ResidentID:     uuid.New(),
		ResidentName:   "Ravi Kumar",
		FlatID:         uuid.New(),
		CabCompany:     "Meru",
		VehicleNumber:  "KA-01-AB-1234",
		Mode:           "ONCE",
		OnceDate:       &date,
		OnceValidHours: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, "DRAFT", resp.State)
	assert.Empty(t, resp.AccessCode)
	repo.AssertExpectations(t)
}

func TestCabService_Create_BadStartTime(t *testing.T) {
	repo := new(MockCabRepository)
	svc := NewCabService(repo, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateCabPreapprovalRequest{
		ResidentID:    uuid.New(),
		ResidentName:  "Ravi Kumar",
		FlatID:        uuid.New(),
		CabCompany:    "Meru",
		VehicleNumber: "KA-01-AB-1234",
		Mode:          "ONCE",
		OnceStartTime: "25:99",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HH:MM")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCabService_Activate(t *testing.T) {
	repo := new(MockCabRepository)
	svc := NewCabService(repo, nil, zap.NewNop())

	c, err := accessgrant.NewCabPreapproval(uuid.New(), "Ravi Kumar", uuid.New(), "Meru", "KA-01-AB-1234", accessgrant.ModeOnce)
	require.NoError(t, err)
	c.OnceDate = time.Now().UTC().AddDate(0, 0, 1)
	c.OnceValidHours = 2
	c.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	repo.On("CodeInUse", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("SaveWithLock", mock.Anything, c).Return(nil)

	resp, err := svc.Activate(context.Background(), c.ID)

	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.State)
	assert.Len(t, resp.AccessCode, 6)
	assert.Equal(t, c.WindowStart.Add(2*time.Hour), c.WindowEnd)
	repo.AssertExpectations(t)
}

func TestCabService_Activate_MissingDate(t *testing.T) {
	repo := new(MockCabRepository)
	svc := NewCabService(repo, nil, zap.NewNop())

	c, err := accessgrant.NewCabPreapproval(uuid.New(), "Ravi Kumar", uuid.New(), "Meru", "KA-01-AB-1234", accessgrant.ModeOnce)
	require.NoError(t, err)
	c.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	repo.On("CodeInUse", mock.Anything, mock.Anything).Return(false, nil)

	_, err = svc.Activate(context.Background(), c.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "window cannot be computed")
	assert.Equal(t, accessgrant.StateDraft, c.State)
	repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestCabService_Cancel(t *testing.T) {
	repo := new(MockCabRepository)
	svc := NewCabService(repo, nil, zap.NewNop())

	now := time.Now().UTC()
	c := newActiveCab(t, now, "482913")

	repo.On("FindByID", mock.Anything, c.ID).Return(c, nil)
	repo.On("SaveWithLock", mock.Anything, c).Return(nil)

	resp, err := svc.Cancel(context.Background(), c.ID)

	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.State)
}

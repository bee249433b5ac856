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

func TestGuestService_Create_CarriesPrivateFlagAndNote(t *testing.T) {
	repo := new(MockGuestRepository)
	svc := NewGuestService(repo, nil, zap.NewNop())

	var saved *accessgrant.GuestInvite
	repo.On("CodeInUse", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*accessgrant.GuestInvite)
	}).Return(nil)

	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	resp, err := svc.Create(context.Background(), CreateGuestInviteRequest{
		HostID:     uuid.New(),
		HostName:   "Meera Iyer",
		FlatID:     uuid.New(),
		GuestName:  "Ravi Kumar",
		GuestCount: 2,
		Guests: []GuestLineRequest{
			{Name: "Ravi Kumar", Phone: "9800011122"},
			{Name: "Priya Kumar"},
		},
		Private:  true,
		Note:     "Family visit, park near block B",
		Mode:     "ONCE",
		OnceDate: &date,
	})

	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.State)
	assert.Len(t, resp.AccessCode, 6)
	require.NotNil(t, saved)
	assert.True(t, saved.Private)
	assert.Equal(t, "Family visit, park near block B", saved.Note)
	assert.Len(t, saved.Guests, 2)
	repo.AssertExpectations(t)
}

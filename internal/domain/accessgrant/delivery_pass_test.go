package accessgrant

import (
	"testing"
	"time"

	"github.com/community/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeliveryPass_ActiveImmediately(t *testing.T) {
	now := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)

	p, err := NewDeliveryPass(uuid.New(), "Meera Iyer", uuid.New(), "QuickShip", ModeOnce, "773201", now)

	require.NoError(t, err)
	assert.Equal(t, StateActive, p.State)
	assert.Equal(t, "773201", p.AccessCode)
	assert.True(t, p.AllowLeaveAtGate)
	assert.False(t, p.IsSurprise)

	_, err = NewDeliveryPass(uuid.New(), "", uuid.New(), "", ModeOnce, "", now)
	assert.Error(t, err)
}

func TestDeliveryPass_OnceWindowRequiresDateAndStartTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	p, err := NewDeliveryPass(uuid.New(), "Meera Iyer", uuid.New(), "QuickShip", ModeOnce, "773201", now)
	require.NoError(t, err)
	p.ValidFor = HourBucket4

	// Date without start time is not computable
	p.OnceDate = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	p.ComputeWindow(now)
	assert.True(t, p.Window().IsZero())
	assert.False(t, p.IsVerifiable(now))

	startTime, _ := valueobject.NewTimeOfDay(10, 0)
	p.OnceStartTime = startTime
	p.ComputeWindow(now)

	assert.Equal(t, time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC), p.WindowStart)
	assert.Equal(t, time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC), p.WindowEnd)
}

func TestDeliveryPass_FrequentWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	p, err := NewDeliveryPass(uuid.New(), "Meera Iyer", uuid.New(), "QuickShip", ModeFrequent, "773201", now)
	require.NoError(t, err)
	p.Validity = Validity15Days

	p.ComputeWindow(now)

	assert.Equal(t, now, p.WindowStart)
	assert.Equal(t, time.Date(2025, 3, 25, 23, 59, 0, 0, time.UTC), p.WindowEnd)
	assert.Equal(t, time.Date(2025, 3, 25, 11, 0, 0, 0, time.UTC), p.FreqValidTill)
	assert.True(t, p.IsVerifiable(now))
}

func TestDeliveryPass_FrequentWindowWithTimeBounds(t *testing.T) {
	now := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	p, err := NewDeliveryPass(uuid.New(), "Meera Iyer", uuid.New(), "QuickShip", ModeFrequent, "773201", now)
	require.NoError(t, err)
	p.Validity = Validity1Week
	p.FreqTimeFrom, _ = valueobject.NewTimeOfDay(8, 0)
	p.FreqTimeTo, _ = valueobject.NewTimeOfDay(18, 30)
	p.DaysOfWeek = "mon,wed,fri"
	p.EntriesPerDay = 2

	p.ComputeWindow(now)

	// The from-bound anchors the start to today, the to-bound anchors the
	// end to the valid-till date
	assert.Equal(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), p.WindowStart)
	assert.Equal(t, time.Date(2025, 3, 17, 18, 30, 0, 0, time.UTC), p.WindowEnd)
	assert.Equal(t, time.Date(2025, 3, 17, 11, 0, 0, 0, time.UTC), p.FreqValidTill)
}

func TestHourBucket(t *testing.T) {
	assert.Equal(t, 4.0, HourBucket4.Hours())
	assert.Equal(t, 24.0, HourBucket24.Hours())
	assert.Equal(t, 0.0, HourBucket("").Hours())
	assert.True(t, HourBucket12.IsValid())
	assert.False(t, HourBucket("3").IsValid())
}

func TestDeliveryPass_ExpireAndCancel(t *testing.T) {
	now := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	p, err := NewDeliveryPass(uuid.New(), "Meera Iyer", uuid.New(), "QuickShip", ModeFrequent, "773201", now)
	require.NoError(t, err)
	p.Validity = Validity1Week
	p.ComputeWindow(now)

	later := p.WindowEnd.Add(time.Hour)
	require.NoError(t, p.Expire(later))
	assert.Equal(t, StateExpired, p.State)
	assert.Error(t, p.Cancel(later))

	q, err := NewDeliveryPass(uuid.New(), "Meera Iyer", uuid.New(), "QuickShip", ModeOnce, "112233", now)
	require.NoError(t, err)
	require.NoError(t, q.Cancel(now))
	assert.Equal(t, StateCancelled, q.State)
}

package valueobject

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDay_FractionalEncoding(t *testing.T) {
	tod, err := NewTimeOfDay(22, 30)
	require.NoError(t, err)

	assert.InDelta(t, 22.5, float64(tod), 1e-9)
	assert.Equal(t, 22, tod.Hour())
	assert.Equal(t, 30, tod.Minute())
}

func TestTimeOfDay_Validation(t *testing.T) {
	_, err := NewTimeOfDay(24, 0)
	assert.Error(t, err)
	_, err = NewTimeOfDay(-1, 0)
	assert.Error(t, err)
	_, err = NewTimeOfDay(10, 60)
	assert.Error(t, err)
}

func TestTimeOfDay_RoundTrip(t *testing.T) {
	// "HH:MM" parsed to fractional hours and back is lossless to the minute
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 1, 15, 29, 30, 45, 59} {
			s := fmt.Sprintf("%02d:%02d", hour, minute)
			tod, err := ParseTimeOfDay(s)
			require.NoError(t, err)
			assert.Equal(t, s, tod.String())
		}
	}
}

func TestTimeOfDay_FloatNoise(t *testing.T) {
	// A value stored as double precision can land just under the hour;
	// rounding carries into the next hour instead of printing minute 60
	noisy := TimeOfDay(22.999999)
	assert.Equal(t, 23, noisy.Hour())
	assert.Equal(t, 0, noisy.Minute())
	assert.Equal(t, "23:00", noisy.String())

	// Noise past the last minute of the day clamps to 23:59
	late := TimeOfDay(23.999999)
	assert.Equal(t, "23:59", late.String())
	assert.Equal(t, 23*time.Hour+59*time.Minute, late.Duration())
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, s := range []string{"", "abc", "25:00", "10:75"} {
		_, err := ParseTimeOfDay(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestTimeOfDay_On(t *testing.T) {
	date := time.Date(2025, 3, 10, 17, 45, 12, 0, time.UTC)
	tod, _ := NewTimeOfDay(9, 30)

	// Anchors to midnight of the date regardless of its clock component
	assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), tod.On(date))
}

func TestEndOfDay(t *testing.T) {
	assert.Equal(t, 23, EndOfDay.Hour())
	assert.Equal(t, 59, EndOfDay.Minute())
	assert.Equal(t, "23:59", EndOfDay.String())
}

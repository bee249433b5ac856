package valueobject

import (
	"fmt"
	"math"
	"time"
)

// TimeOfDay is a wall-clock time expressed as fractional hours: the integer
// part is the hour (0-23) and the fractional part is minutes/60, so 22.5 is
// 22:30. Gate passes and visitor grants store their daily time bounds in this
// encoding, which round-trips losslessly with "HH:MM" form inputs.
type TimeOfDay float64

// EndOfDay is the last representable minute of a day (23:59).
const EndOfDay TimeOfDay = 23 + 59.0/60.0

// NewTimeOfDay builds a TimeOfDay from an hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour out of range: %d", hour)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute out of range: %d", minute)
	}
	return TimeOfDay(float64(hour) + float64(minute)/60.0), nil
}

// ParseTimeOfDay parses a "HH:MM" string into the fractional-hour encoding.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return NewTimeOfDay(hour, minute)
}

// totalMinutes rounds the fractional hours to whole minutes since midnight.
// Rounding can carry across the hour (22.9999 is 23:00); values past 23:59
// clamp to the last minute of the day.
func (t TimeOfDay) totalMinutes() int {
	m := int(math.Round(float64(t) * 60))
	if m > 23*60+59 {
		m = 23*60 + 59
	}
	return m
}

// Hour returns the hour component (0-23).
func (t TimeOfDay) Hour() int {
	return t.totalMinutes() / 60
}

// Minute returns the minute component (0-59), rounded to the nearest minute
// so float noise from form inputs does not shift the value.
func (t TimeOfDay) Minute() int {
	return t.totalMinutes() % 60
}

// IsValid reports whether the value encodes a real wall-clock time.
func (t TimeOfDay) IsValid() bool {
	return t >= 0 && t < 24
}

// Duration converts the time of day to an offset from midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t.totalMinutes()) * time.Minute
}

// On anchors the time of day to the given calendar date.
func (t TimeOfDay) On(date time.Time) time.Time {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return midnight.Add(t.Duration())
}

// String formats the value as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

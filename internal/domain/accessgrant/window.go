package accessgrant

import (
	"time"

	"github.com/community/backend/internal/domain/shared/valueobject"
)

// Mode distinguishes one-off grants from recurring ones
type Mode string

const (
	ModeOnce     Mode = "ONCE"
	ModeFrequent Mode = "FREQUENT"
)

// IsValid checks if the mode is a valid Mode
func (m Mode) IsValid() bool {
	return m == ModeOnce || m == ModeFrequent
}

// String returns the string representation of Mode
func (m Mode) String() string {
	return string(m)
}

// Validity is the recurring-grant duration enum, added to "today" to obtain
// the window end date
type Validity string

const (
	Validity1Week    Validity = "1W"
	Validity15Days   Validity = "15D"
	Validity1Month   Validity = "1M"
	Validity3Months  Validity = "3M"
	Validity6Months  Validity = "6M"
	Validity12Months Validity = "12M"
)

// IsValid checks if the validity is a valid Validity
func (v Validity) IsValid() bool {
	switch v {
	case Validity1Week, Validity15Days, Validity1Month, Validity3Months, Validity6Months, Validity12Months:
		return true
	}
	return false
}

// String returns the string representation of Validity
func (v Validity) String() string {
	return string(v)
}

// AddTo returns the end date obtained by adding the validity span to the
// given day. Month-denominated spans use calendar months, day-denominated
// spans use exact day counts.
func (v Validity) AddTo(day time.Time) time.Time {
	switch v {
	case Validity1Week:
		return day.AddDate(0, 0, 7)
	case Validity15Days:
		return day.AddDate(0, 0, 15)
	case Validity1Month:
		return day.AddDate(0, 1, 0)
	case Validity3Months:
		return day.AddDate(0, 3, 0)
	case Validity6Months:
		return day.AddDate(0, 6, 0)
	case Validity12Months:
		return day.AddDate(1, 0, 0)
	}
	return day
}

// Window is the (start, end) validity pair of a grant or lease.
// A zero Window means "not yet computable" and is never an error.
type Window struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the window has not been computed
func (w Window) IsZero() bool {
	return w.Start.IsZero() || w.End.IsZero()
}

// Contains reports whether the instant falls inside the window
func (w Window) Contains(t time.Time) bool {
	if w.IsZero() {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// EndedBefore reports whether the window closed before the instant
func (w Window) EndedBefore(t time.Time) bool {
	return !w.IsZero() && w.End.Before(t)
}

// Remaining returns the time left until the window closes, zero once closed
func (w Window) Remaining(now time.Time) time.Duration {
	if w.IsZero() || w.End.Before(now) {
		return 0
	}
	return w.End.Sub(now)
}

// HoursDuration converts fractional hours (2.5 = 2h30m) to a duration
func HoursDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}

// OnceWindow computes the window of a one-off grant: the start time of day
// anchored to the grant date, open for the given number of hours. Missing
// date or non-positive duration yields a zero window.
func OnceWindow(date time.Time, startTime valueobject.TimeOfDay, validHours float64) Window {
	if date.IsZero() || validHours <= 0 {
		return Window{}
	}
	start := startTime.On(date)
	return Window{Start: start, End: start.Add(HoursDuration(validHours))}
}

// FrequentWindow computes the window of a recurring grant: usable from now
// (or from the from-bound anchored to today) until the validity span past
// today, bounded by the to-bound or end of day. An unset validity yields a
// zero window.
func FrequentWindow(now time.Time, validity Validity, from, to valueobject.TimeOfDay) Window {
	if !validity.IsValid() {
		return Window{}
	}
	endDate := validity.AddTo(now)

	start := now
	if from > 0 {
		start = from.On(now)
	}
	end := valueobject.EndOfDay.On(endDate)
	if to > 0 {
		end = to.On(endDate)
	}
	return Window{Start: start, End: end}
}

// SpanWindow computes a window covering whole days from the start date at
// midnight through the end date at 23:59. Missing dates yield a zero window.
func SpanWindow(startDate, endDate time.Time) Window {
	if startDate.IsZero() || endDate.IsZero() {
		return Window{}
	}
	return Window{
		Start: valueobject.TimeOfDay(0).On(startDate),
		End:   valueobject.EndOfDay.On(endDate),
	}
}

package accessgrant

import (
	"fmt"
	"time"

	"github.com/community/backend/internal/domain/shared"
	"github.com/community/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AggregateGuestInvite is the aggregate type name for guest invites
const AggregateGuestInvite = "GuestInvite"

// Defaults applied when a once invite omits its time inputs
const (
	DefaultGuestStartTime  = valueobject.TimeOfDay(9)
	DefaultGuestValidHours = 8.0
)

// StayDuration is the frequent-invite length enum. Stays longer than a month
// are capped at three months.
type StayDuration string

const (
	Stay1Week      StayDuration = "1W"
	Stay1Month     StayDuration = "1M"
	StayOver1Month StayDuration = "GT1M"
)

// IsValid checks if the duration is a valid StayDuration
func (d StayDuration) IsValid() bool {
	switch d {
	case Stay1Week, Stay1Month, StayOver1Month:
		return true
	}
	return false
}

// EndDateFrom returns the stay end date counted from the start date
func (d StayDuration) EndDateFrom(start time.Time) time.Time {
	switch d {
	case Stay1Week:
		return start.AddDate(0, 0, 7)
	case Stay1Month:
		return start.AddDate(0, 1, 0)
	case StayOver1Month:
		return start.AddDate(0, 3, 0)
	}
	return start
}

// GuestLine is one named guest on an invite covering a group
type GuestLine struct {
	shared.BaseEntity
	InviteID uuid.UUID
	Name     string
	Phone    string
}

// GuestInvite lets a resident invite one or more guests. The OTP is always
// generated at creation and the invite goes straight to active with its
// window computed, so the code can be shared with the guest immediately.
type GuestInvite struct {
	shared.BaseAggregateRoot
	HostID     uuid.UUID
	HostName   string
	FlatID     uuid.UUID
	GuestName  string
	GuestCount int
	Guests     []GuestLine `gorm:"foreignKey:InviteID"`

	// Private invites are hidden from the community noticeboard; the note is
	// free text for the gate.
	Private bool
	Note    string

	Mode Mode

	// Once mode
	OnceDate       time.Time
	OnceStartTime  valueobject.TimeOfDay
	OnceValidHours float64

	// Frequent mode, whole-day span
	StayStartDate time.Time
	StayEndDate   time.Time
	StayDuration  StayDuration

	WindowStart time.Time
	WindowEnd   time.Time
	OTP         string
	State       State

	ExpiredAt   *time.Time
	CancelledAt *time.Time
}

// NewGuestInvite creates an active guest invite. The OTP must come from the
// live-code uniqueness check for this entity.
func NewGuestInvite(hostID uuid.UUID, hostName string, flatID uuid.UUID, guestName string, guestCount int, mode Mode, otp string) (*GuestInvite, error) {
	if hostID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Host resident is required for a guest invite")
	}
	if guestName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Guest name is required")
	}
	if guestCount <= 0 {
		guestCount = 1
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_MODE", "Invite mode must be once or frequent")
	}
	if otp == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "OTP is required for a guest invite")
	}

	g := &GuestInvite{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HostID:            hostID,
		HostName:          hostName,
		FlatID:            flatID,
		GuestName:         guestName,
		GuestCount:        guestCount,
		Mode:              mode,
		OnceStartTime:     DefaultGuestStartTime,
		OnceValidHours:    DefaultGuestValidHours,
		OTP:               otp,
		State:             StateActive,
	}

	g.AddDomainEvent(NewGrantCreatedEvent(AggregateGuestInvite, g.ID, hostID, mode))

	return g, nil
}

// AddGuest appends a named guest to the invite
func (g *GuestInvite) AddGuest(name, phone string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Guest name cannot be empty")
	}
	g.Guests = append(g.Guests, GuestLine{
		BaseEntity: shared.NewBaseEntity(),
		InviteID:   g.ID,
		Name:       name,
		Phone:      phone,
	})
	g.Touch()
	g.IncrementVersion()
	return nil
}

// ComputeWindow recomputes the validity window from the mode inputs.
// A frequent stay without an explicit end date derives it from the duration
// enum; missing inputs degrade to a zero window.
func (g *GuestInvite) ComputeWindow(now time.Time) {
	var w Window
	switch g.Mode {
	case ModeOnce:
		startTime := g.OnceStartTime
		if startTime <= 0 {
			startTime = DefaultGuestStartTime
		}
		hours := g.OnceValidHours
		if hours <= 0 {
			hours = DefaultGuestValidHours
		}
		w = OnceWindow(g.OnceDate, startTime, hours)
	case ModeFrequent:
		endDate := g.StayEndDate
		if endDate.IsZero() && !g.StayStartDate.IsZero() && g.StayDuration.IsValid() {
			endDate = g.StayDuration.EndDateFrom(g.StayStartDate)
		}
		w = SpanWindow(g.StayStartDate, endDate)
	}
	g.WindowStart = w.Start
	g.WindowEnd = w.End
}

// Window returns the computed validity window
func (g *GuestInvite) Window() Window {
	return Window{Start: g.WindowStart, End: g.WindowEnd}
}

// Expire moves an active invite past its window end to expired
func (g *GuestInvite) Expire(now time.Time) error {
	if g.State != StateActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire guest invite in %s state", g.State))
	}
	if !g.Window().EndedBefore(now) {
		return shared.NewDomainError("INVALID_STATE", "Invite window has not ended yet")
	}

	g.State = StateExpired
	g.ExpiredAt = &now
	g.Touch()
	g.IncrementVersion()

	g.AddDomainEvent(NewGrantExpiredEvent(AggregateGuestInvite, g.ID, g.WindowEnd))

	return nil
}

// Cancel is a manual terminal transition
func (g *GuestInvite) Cancel(now time.Time) error {
	if g.State.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel guest invite in %s state", g.State))
	}

	from := g.State
	g.State = StateCancelled
	g.CancelledAt = &now
	g.Touch()
	g.IncrementVersion()

	g.AddDomainEvent(NewGrantCancelledEvent(AggregateGuestInvite, g.ID, from))

	return nil
}

// IsVerifiable reports whether a gate scan of the OTP should admit
func (g *GuestInvite) IsVerifiable(now time.Time) bool {
	return g.State == StateActive && !g.Window().IsZero() && !g.Window().EndedBefore(now)
}

package accessgrant

import (
	"fmt"
	"strconv"
	"time"

	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateChildExitPermission is the aggregate type name for child exit
// permissions
const AggregateChildExitPermission = "ChildExitPermission"

// ExitDuration is how long the child may stay out, in hours
type ExitDuration string

const (
	ExitDuration1Hour   ExitDuration = "1"
	ExitDuration2Hours  ExitDuration = "2"
	ExitDuration4Hours  ExitDuration = "4"
	ExitDuration8Hours  ExitDuration = "8"
	ExitDuration12Hours ExitDuration = "12"
	ExitDuration24Hours ExitDuration = "24"
	ExitDurationCustom  ExitDuration = "CUSTOM"
)

// IsValid checks if the duration is a valid ExitDuration
func (d ExitDuration) IsValid() bool {
	switch d {
	case ExitDuration1Hour, ExitDuration2Hours, ExitDuration4Hours,
		ExitDuration8Hours, ExitDuration12Hours, ExitDuration24Hours,
		ExitDurationCustom:
		return true
	}
	return false
}

// Hours resolves the duration to fractional hours. The custom bucket reads
// the caller-supplied value.
func (d ExitDuration) Hours(custom float64) float64 {
	switch d {
	case ExitDurationCustom:
		return custom
	case ExitDuration1Hour, ExitDuration2Hours, ExitDuration4Hours,
		ExitDuration8Hours, ExitDuration12Hours, ExitDuration24Hours:
		h, err := strconv.ParseFloat(string(d), 64)
		if err != nil {
			return 0
		}
		return h
	}
	return 0
}

// ChildExitPermission lets a parent authorize their child to leave the
// community gate unaccompanied for a bounded time. Unlike the other grants it
// tracks the round trip: exit is recorded as the used sub-state, and the
// permission only settles to expired once the child returns or the window
// lapses.
type ChildExitPermission struct {
	shared.BaseAggregateRoot
	ParentID   uuid.UUID
	ParentName string
	FlatID     uuid.UUID
	ChildName  string
	ChildAge   int
	EscortName string
	Purpose    string

	AllowedExitTime time.Time
	Duration        ExitDuration
	CustomHours     float64
	ValidUntil      time.Time

	AccessCode string
	State      State

	ExitTime    *time.Time
	ReturnTime  *time.Time
	ActivatedAt *time.Time
	ExpiredAt   *time.Time
	CancelledAt *time.Time
}

// NewChildExitPermission creates a permission in draft state. The exit time
// must lie in the future, the purpose must be stated, and the access code
// must come from the live-code uniqueness check for this entity.
func NewChildExitPermission(parentID uuid.UUID, parentName string, flatID uuid.UUID, childName string, childAge int, purpose string, allowedExitTime time.Time, duration ExitDuration, customHours float64, code string, now time.Time) (*ChildExitPermission, error) {
	if parentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Parent is required for a child exit permission")
	}
	if childName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Child name is required")
	}
	if purpose == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purpose of the exit is required")
	}
	if allowedExitTime.Before(now) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Exit time cannot be in the past")
	}
	if !duration.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Exit duration is required")
	}
	hours := duration.Hours(customHours)
	if hours <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Duration must be positive")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Access code is required for a child exit permission")
	}

	p := &ChildExitPermission{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ParentID:          parentID,
		ParentName:        parentName,
		FlatID:            flatID,
		ChildName:         childName,
		ChildAge:          childAge,
		Purpose:           purpose,
		AllowedExitTime:   allowedExitTime,
		Duration:          duration,
		CustomHours:       customHours,
		ValidUntil:        allowedExitTime.Add(HoursDuration(hours)),
		AccessCode:        code,
		State:             StateDraft,
	}

	p.AddDomainEvent(NewGrantCreatedEvent(AggregateChildExitPermission, p.ID, parentID, ModeOnce))

	return p, nil
}

// Window returns the permission's validity window
func (p *ChildExitPermission) Window() Window {
	return Window{Start: p.AllowedExitTime, End: p.ValidUntil}
}

// Activate moves the permission to active so the gate will honor the code
func (p *ChildExitPermission) Activate(now time.Time) error {
	if !p.State.CanTransitionTo(StateActive) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot activate child exit permission in %s state", p.State))
	}

	p.State = StateActive
	p.ActivatedAt = &now
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewGrantActivatedEvent(AggregateChildExitPermission, p.ID, p.AccessCode, p.Window()))

	return nil
}

// MarkExited records the child leaving through the gate
func (p *ChildExitPermission) MarkExited(now time.Time) error {
	if p.State != StateActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record exit for permission in %s state", p.State))
	}

	p.State = StateUsed
	p.ExitTime = &now
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewChildExitedEvent(p.ID, p.ChildName, now))

	return nil
}

// MarkReturned records the child returning, settling the permission
func (p *ChildExitPermission) MarkReturned(now time.Time) error {
	if p.State != StateUsed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record return for permission in %s state", p.State))
	}

	p.State = StateExpired
	p.ReturnTime = &now
	p.ExpiredAt = &now
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewChildReturnedEvent(p.ID, p.ChildName, now))

	return nil
}

// Expire settles an active permission once the window has lapsed without the
// round trip completing
func (p *ChildExitPermission) Expire(now time.Time) error {
	if p.State != StateActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire child exit permission in %s state", p.State))
	}
	if !p.ValidUntil.Before(now) {
		return shared.NewDomainError("INVALID_STATE", "Permission window has not ended yet")
	}

	p.State = StateExpired
	p.ExpiredAt = &now
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewGrantExpiredEvent(AggregateChildExitPermission, p.ID, p.ValidUntil))

	return nil
}

// Cancel is a manual terminal transition from draft or active
func (p *ChildExitPermission) Cancel(now time.Time) error {
	if p.State != StateDraft && p.State != StateActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel child exit permission in %s state", p.State))
	}

	from := p.State
	p.State = StateCancelled
	p.CancelledAt = &now
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewGrantCancelledEvent(AggregateChildExitPermission, p.ID, from))

	return nil
}

// IsVerifiable reports whether a gate scan of the access code should admit
func (p *ChildExitPermission) IsVerifiable(now time.Time) bool {
	return p.State == StateActive && !p.ValidUntil.Before(now)
}

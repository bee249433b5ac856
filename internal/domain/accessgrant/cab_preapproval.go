package accessgrant

import (
	"fmt"
	"time"

	"github.com/community/backend/internal/domain/shared"
	"github.com/community/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AggregateCabPreapproval is the aggregate type name for cab pre-approvals
const AggregateCabPreapproval = "CabPreapproval"

// DefaultCabValidHours is the one-off window length when none is given
const DefaultCabValidHours = 1.0

// CabPreapproval lets a resident pre-approve a cab at the gate, either for a
// single ride or recurring over months. The day and time-of-day bounds on
// frequent approvals are stored for the guard's reference; window computation
// and code verification do not gate on them.
type CabPreapproval struct {
	shared.BaseAggregateRoot
	ResidentID    uuid.UUID
	ResidentName  string
	FlatID        uuid.UUID
	CabCompany    string
	VehicleNumber string
	DriverName    string
	DriverPhone   string

	Mode Mode

	// Once mode
	OnceDate       time.Time
	OnceStartTime  valueobject.TimeOfDay
	OnceValidHours float64

	// Frequent mode
	Validity      Validity
	FreqTimeFrom  valueobject.TimeOfDay
	FreqTimeTo    valueobject.TimeOfDay
	DaysOfWeek    string // comma-separated weekday names, informational
	EntriesPerDay int

	WindowStart time.Time
	WindowEnd   time.Time
	AccessCode  string
	State       State

	ActivatedAt *time.Time
	ExpiredAt   *time.Time
	CancelledAt *time.Time
}

// NewCabPreapproval creates a cab pre-approval in draft state
func NewCabPreapproval(residentID uuid.UUID, residentName string, flatID uuid.UUID, cabCompany, vehicleNumber string, mode Mode) (*CabPreapproval, error) {
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Resident is required for a cab pre-approval")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_MODE", "Approval mode must be once or frequent")
	}

	c := &CabPreapproval{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ResidentID:        residentID,
		ResidentName:      residentName,
		FlatID:            flatID,
		CabCompany:        cabCompany,
		VehicleNumber:     vehicleNumber,
		Mode:              mode,
		OnceValidHours:    DefaultCabValidHours,
		State:             StateDraft,
	}

	c.AddDomainEvent(NewGrantCreatedEvent(AggregateCabPreapproval, c.ID, residentID, mode))

	return c, nil
}

// ComputeWindow recomputes the validity window from the mode inputs.
// Incomplete inputs degrade to a zero window instead of failing.
func (c *CabPreapproval) ComputeWindow(now time.Time) {
	var w Window
	switch c.Mode {
	case ModeOnce:
		hours := c.OnceValidHours
		if hours <= 0 {
			hours = DefaultCabValidHours
		}
		w = OnceWindow(c.OnceDate, c.OnceStartTime, hours)
	case ModeFrequent:
		w = FrequentWindow(now, c.Validity, c.FreqTimeFrom, c.FreqTimeTo)
	}
	c.WindowStart = w.Start
	c.WindowEnd = w.End
}

// Window returns the computed validity window
func (c *CabPreapproval) Window() Window {
	return Window{Start: c.WindowStart, End: c.WindowEnd}
}

// Activate computes the window, attaches the access code and moves the
// approval to active. The code must be generated by the caller against the
// live-code uniqueness check for this entity.
func (c *CabPreapproval) Activate(now time.Time, code string) error {
	if !c.State.CanTransitionTo(StateActive) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot activate cab pre-approval in %s state", c.State))
	}

	c.ComputeWindow(now)
	if c.Window().IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Approval date or validity is missing, window cannot be computed")
	}
	if c.AccessCode == "" {
		if code == "" {
			return shared.NewDomainError("INVALID_INPUT", "Access code is required to activate")
		}
		c.AccessCode = code
	}

	c.State = StateActive
	c.ActivatedAt = &now
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewGrantActivatedEvent(AggregateCabPreapproval, c.ID, c.AccessCode, c.Window()))

	return nil
}

// Expire moves an active approval past its window end to expired
func (c *CabPreapproval) Expire(now time.Time) error {
	if c.State != StateActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire cab pre-approval in %s state", c.State))
	}
	if !c.Window().EndedBefore(now) {
		return shared.NewDomainError("INVALID_STATE", "Approval window has not ended yet")
	}

	c.State = StateExpired
	c.ExpiredAt = &now
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewGrantExpiredEvent(AggregateCabPreapproval, c.ID, c.WindowEnd))

	return nil
}

// Cancel is a manual terminal transition from any non-terminal state
func (c *CabPreapproval) Cancel(now time.Time) error {
	if c.State.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel cab pre-approval in %s state", c.State))
	}

	from := c.State
	c.State = StateCancelled
	c.CancelledAt = &now
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewGrantCancelledEvent(AggregateCabPreapproval, c.ID, from))

	return nil
}

// IsVerifiable reports whether a gate scan of the access code should admit
func (c *CabPreapproval) IsVerifiable(now time.Time) bool {
	return c.State == StateActive && !c.Window().EndedBefore(now)
}

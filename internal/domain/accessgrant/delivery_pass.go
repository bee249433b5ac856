package accessgrant

import (
	"fmt"
	"strconv"
	"time"

	"github.com/community/backend/internal/domain/shared"
	"github.com/community/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// AggregateDeliveryPass is the aggregate type name for delivery passes
const AggregateDeliveryPass = "DeliveryPass"

// HourBucket is the enumerated one-off pass length in hours
type HourBucket string

const (
	HourBucket1  HourBucket = "1"
	HourBucket2  HourBucket = "2"
	HourBucket4  HourBucket = "4"
	HourBucket8  HourBucket = "8"
	HourBucket12 HourBucket = "12"
	HourBucket24 HourBucket = "24"
)

// IsValid checks if the bucket is a valid HourBucket
func (b HourBucket) IsValid() bool {
	switch b {
	case HourBucket1, HourBucket2, HourBucket4, HourBucket8, HourBucket12, HourBucket24:
		return true
	}
	return false
}

// Hours returns the bucket length as fractional hours, zero when unset
func (b HourBucket) Hours() float64 {
	h, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0
	}
	return h
}

// DeliveryPass admits a courier at the gate. Unlike the other grants it has
// no draft stage: the pass is active from the moment it is created, with its
// code and window already attached. The days-of-week and entries-per-day
// bounds on frequent passes are stored for the guard's reference, like the
// ones on cab pre-approvals.
type DeliveryPass struct {
	shared.BaseAggregateRoot
	ResidentID   uuid.UUID
	ResidentName string
	FlatID       uuid.UUID
	Courier      string
	ParcelCount  int

	IsSurprise       bool
	AllowLeaveAtGate bool

	Mode Mode

	// Once mode, both inputs required for a window
	OnceDate      time.Time
	OnceStartTime valueobject.TimeOfDay
	ValidFor      HourBucket

	// Frequent mode
	Validity      Validity
	FreqTimeFrom  valueobject.TimeOfDay
	FreqTimeTo    valueobject.TimeOfDay
	FreqValidTill time.Time
	DaysOfWeek    string // comma-separated weekday names, informational
	EntriesPerDay int

	WindowStart time.Time
	WindowEnd   time.Time
	AccessCode  string
	State       State

	ExpiredAt   *time.Time
	CancelledAt *time.Time
}

// NewDeliveryPass creates an active delivery pass. The access code must come
// from the live-code uniqueness check for this entity.
func NewDeliveryPass(residentID uuid.UUID, residentName string, flatID uuid.UUID, courier string, mode Mode, code string, now time.Time) (*DeliveryPass, error) {
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESIDENT", "Resident is required for a delivery pass")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_MODE", "Pass mode must be once or frequent")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Access code is required for a delivery pass")
	}

	p := &DeliveryPass{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ResidentID:        residentID,
		ResidentName:      residentName,
		FlatID:            flatID,
		Courier:           courier,
		AllowLeaveAtGate:  true,
		Mode:              mode,
		AccessCode:        code,
		State:             StateActive,
	}

	p.AddDomainEvent(NewGrantCreatedEvent(AggregateDeliveryPass, p.ID, residentID, mode))

	return p, nil
}

// ComputeWindow recomputes the validity window from the mode inputs.
// A once pass needs both its date and start time; anything missing degrades
// to a zero window that verification treats as not yet usable. A frequent
// pass also fixes its valid-till date, which anchors the window end together
// with the daily to-time bound.
func (p *DeliveryPass) ComputeWindow(now time.Time) {
	var w Window
	switch p.Mode {
	case ModeOnce:
		if !p.OnceDate.IsZero() && p.OnceStartTime > 0 {
			w = OnceWindow(p.OnceDate, p.OnceStartTime, p.ValidFor.Hours())
		}
	case ModeFrequent:
		w = FrequentWindow(now, p.Validity, p.FreqTimeFrom, p.FreqTimeTo)
		p.FreqValidTill = time.Time{}
		if p.Validity.IsValid() {
			p.FreqValidTill = p.Validity.AddTo(now)
		}
	}
	p.WindowStart = w.Start
	p.WindowEnd = w.End
}

// Window returns the computed validity window
func (p *DeliveryPass) Window() Window {
	return Window{Start: p.WindowStart, End: p.WindowEnd}
}

// Expire moves an active pass past its window end to expired
func (p *DeliveryPass) Expire(now time.Time) error {
	if p.State != StateActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire delivery pass in %s state", p.State))
	}
	if !p.Window().EndedBefore(now) {
		return shared.NewDomainError("INVALID_STATE", "Pass window has not ended yet")
	}

	p.State = StateExpired
	p.ExpiredAt = &now
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewGrantExpiredEvent(AggregateDeliveryPass, p.ID, p.WindowEnd))

	return nil
}

// Cancel is a manual terminal transition
func (p *DeliveryPass) Cancel(now time.Time) error {
	if p.State.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel delivery pass in %s state", p.State))
	}

	from := p.State
	p.State = StateCancelled
	p.CancelledAt = &now
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewGrantCancelledEvent(AggregateDeliveryPass, p.ID, from))

	return nil
}

// IsVerifiable reports whether a gate scan of the access code should admit
func (p *DeliveryPass) IsVerifiable(now time.Time) bool {
	return p.State == StateActive && !p.Window().IsZero() && !p.Window().EndedBefore(now)
}

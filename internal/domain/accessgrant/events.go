package accessgrant

import (
	"time"

	"github.com/community/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types shared by the grant entities. The aggregate type on the event
// identifies which entity raised it.
const (
	EventGrantCreated   = "accessgrant.created"
	EventGrantActivated = "accessgrant.activated"
	EventGrantExpired   = "accessgrant.expired"
	EventGrantCancelled = "accessgrant.cancelled"
	EventChildExited    = "accessgrant.child.exited"
	EventChildReturned  = "accessgrant.child.returned"
)

// GrantCreatedEvent is raised when any grant entity is created
type GrantCreatedEvent struct {
	shared.BaseDomainEvent
	ResidentID uuid.UUID `json:"resident_id"`
	Mode       Mode      `json:"mode"`
}

// NewGrantCreatedEvent creates a new GrantCreatedEvent
func NewGrantCreatedEvent(aggType string, aggID, residentID uuid.UUID, mode Mode) *GrantCreatedEvent {
	return &GrantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventGrantCreated, aggType, aggID),
		ResidentID:      residentID,
		Mode:            mode,
	}
}

// GrantActivatedEvent is raised when a grant enters the active state
type GrantActivatedEvent struct {
	shared.BaseDomainEvent
	AccessCode  string    `json:"access_code"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

// NewGrantActivatedEvent creates a new GrantActivatedEvent
func NewGrantActivatedEvent(aggType string, aggID uuid.UUID, code string, w Window) *GrantActivatedEvent {
	return &GrantActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventGrantActivated, aggType, aggID),
		AccessCode:      code,
		WindowStart:     w.Start,
		WindowEnd:       w.End,
	}
}

// GrantExpiredEvent is raised by the expiry sweep
type GrantExpiredEvent struct {
	shared.BaseDomainEvent
	WindowEnd time.Time `json:"window_end"`
}

// NewGrantExpiredEvent creates a new GrantExpiredEvent
func NewGrantExpiredEvent(aggType string, aggID uuid.UUID, windowEnd time.Time) *GrantExpiredEvent {
	return &GrantExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventGrantExpired, aggType, aggID),
		WindowEnd:       windowEnd,
	}
}

// GrantCancelledEvent is raised on manual cancellation
type GrantCancelledEvent struct {
	shared.BaseDomainEvent
	FromState State `json:"from_state"`
}

// NewGrantCancelledEvent creates a new GrantCancelledEvent
func NewGrantCancelledEvent(aggType string, aggID uuid.UUID, from State) *GrantCancelledEvent {
	return &GrantCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventGrantCancelled, aggType, aggID),
		FromState:       from,
	}
}

// ChildExitedEvent is raised when a child exit is recorded at the gate
type ChildExitedEvent struct {
	shared.BaseDomainEvent
	ChildName string    `json:"child_name"`
	ExitTime  time.Time `json:"exit_time"`
}

// NewChildExitedEvent creates a new ChildExitedEvent
func NewChildExitedEvent(aggID uuid.UUID, childName string, exitTime time.Time) *ChildExitedEvent {
	return &ChildExitedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventChildExited, AggregateChildExitPermission, aggID),
		ChildName:       childName,
		ExitTime:        exitTime,
	}
}

// ChildReturnedEvent is raised when the child returns through the gate
type ChildReturnedEvent struct {
	shared.BaseDomainEvent
	ChildName  string    `json:"child_name"`
	ReturnTime time.Time `json:"return_time"`
}

// NewChildReturnedEvent creates a new ChildReturnedEvent
func NewChildReturnedEvent(aggID uuid.UUID, childName string, returnTime time.Time) *ChildReturnedEvent {
	return &ChildReturnedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventChildReturned, AggregateChildExitPermission, aggID),
		ChildName:       childName,
		ReturnTime:      returnTime,
	}
}

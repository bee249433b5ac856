package accessgrant

// State is the lifecycle state shared by all access grant entities.
// Only child exit permissions use StateUsed; the other entities never
// enter it.
type State string

const (
	StateDraft     State = "DRAFT"
	StateActive    State = "ACTIVE"
	StateUsed      State = "USED"
	StateExpired   State = "EXPIRED"
	StateCancelled State = "CANCELLED"
)

// IsValid checks if the state is a valid State
func (s State) IsValid() bool {
	switch s {
	case StateDraft, StateActive, StateUsed, StateExpired, StateCancelled:
		return true
	}
	return false
}

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// IsTerminal returns true for states that never advance again
func (s State) IsTerminal() bool {
	return s == StateExpired || s == StateCancelled
}

// IsLive returns true for states that hold a reserved access code.
// Cancelled grants release their code; expired ones keep it reserved so a
// stale code can never be reissued while guards might still see it.
func (s State) IsLive() bool {
	return s != StateCancelled
}

// CanTransitionTo checks if the state can advance to the target state.
// States only move forward; expiry is monotonic and cancel is terminal.
func (s State) CanTransitionTo(target State) bool {
	switch s {
	case StateDraft:
		return target == StateActive || target == StateCancelled
	case StateActive:
		return target == StateUsed || target == StateExpired || target == StateCancelled
	case StateUsed:
		return target == StateExpired
	case StateExpired, StateCancelled:
		return false
	}
	return false
}

package combat

// Phase is the combat state of an actor.
type Phase int

const (
	PhasePatrol Phase = iota
	PhaseEngaging
	PhaseAttacking
	PhaseCooling
	PhaseDead
)

func (p Phase) String() string {
	switch p {
	case PhasePatrol:
		return "patrol"
	case PhaseEngaging:
		return "engaging"
	case PhaseAttacking:
		return "attacking"
	case PhaseCooling:
		return "cooling"
	case PhaseDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Decision is what the machine asks of movement for the coming fixed tick.
type Decision struct {
	// Direction is the desired horizontal direction in [-1,1].
	Direction float64
	// Locked suppresses horizontal motion entirely.
	Locked bool
	// Jump is set when a jump was requested and allowed.
	Jump bool
	// Hold is set when no target could be resolved this tick.
	Hold bool
	// Walking reports horizontal intent, for animation.
	Walking bool
}

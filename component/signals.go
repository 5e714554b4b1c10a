package component

// Signal is the symbolic name of an animation parameter. Actors map each
// signal to a backend handle once, at construction.
type Signal string

const (
	SignalCanWalk     Signal = "can_walk"
	SignalAttack      Signal = "attack"
	SignalHurt        Signal = "hurt"
	SignalIsDead      Signal = "is_dead"
	SignalSpeed       Signal = "speed"
	SignalYVelocity   Signal = "y_velocity"
	SignalIsGrounded  Signal = "is_grounded"
	SignalIsAttacking Signal = "is_attacking"
)

// Signals lists every symbolic signal in a stable order.
var Signals = []Signal{
	SignalCanWalk,
	SignalAttack,
	SignalHurt,
	SignalIsDead,
	SignalSpeed,
	SignalYVelocity,
	SignalIsGrounded,
	SignalIsAttacking,
}

// SignalSink receives animation-state outputs by symbolic name.
type SignalSink interface {
	SetBool(s Signal, v bool)
	SetFloat(s Signal, v float64)
	Fire(s Signal)
}

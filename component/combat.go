package component

import "github.com/jakecoffman/cp"

// Layer identifies which side an actor fights for. Hit queries only return
// actors of the opposing layer.
type Layer int

const (
	LayerNone Layer = iota
	LayerPlayer
	LayerEnemy
)

func (l Layer) String() string {
	switch l {
	case LayerPlayer:
		return "player"
	case LayerEnemy:
		return "enemy"
	default:
		return "none"
	}
}

// Opposing returns the layer this layer attacks.
func (l Layer) Opposing() Layer {
	switch l {
	case LayerPlayer:
		return LayerEnemy
	case LayerEnemy:
		return LayerPlayer
	default:
		return LayerNone
	}
}

// Facing is the horizontal orientation of an actor.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// Sign returns +1 for right and -1 for left, for mirroring offsets.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

// Hittable is a reference to an actor that a hit query can return.
type Hittable interface {
	ID() string
	Layer() Layer
	Position() cp.Vector
	Dead() bool
	// TakeHit applies damage and the lethality check as one step. The bool is
	// false when the hit was ignored because the target is already dead.
	TakeHit(amount int) (DamageOutcome, bool)
}

// HitResult is the ephemeral product of a hit query: at most one target and
// the damage to apply to it.
type HitResult struct {
	Target Hittable
	Damage int
}

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventHit           CombatEventType = "hit"
	EventDamageApplied CombatEventType = "damage_applied"
	EventDeath         CombatEventType = "death"
	EventPhase         CombatEventType = "phase"
	EventRetarget      CombatEventType = "retarget"
)

// CombatEvent is emitted during combat resolution.
type CombatEvent struct {
	Type       CombatEventType
	AttackerID string
	TargetID   string
	Damage     int
	Remaining  int
	From       string
	To         string
	Tick       uint64
	Pos        cp.Vector
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter fans combat events out to handlers.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}

// Subscribe appends a handler.
func (e *CombatEventEmitter) Subscribe(h CombatEventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

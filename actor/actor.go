// Package actor binds health, movement, combat and animation for one
// character and exposes the per-tick entry points the scene calls.
package actor

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/CoolKrit/Ronin/anim"
	"github.com/CoolKrit/Ronin/combat"
	"github.com/CoolKrit/Ronin/component"
	"github.com/CoolKrit/Ronin/movement"
)

// Kind selects the decision profile.
type Kind int

const (
	KindEnemy Kind = iota
	KindPlayer
)

func (k Kind) String() string {
	if k == KindPlayer {
		return "player"
	}
	return "enemy"
}

// Body is the physics body an actor drives.
type Body interface {
	Position() cp.Vector
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	// Grounded reports a short downward cast under the body's feet.
	Grounded() bool
	// Disable removes the body from the simulation.
	Disable()
}

// Releasable is anything parented to an actor that must be let go when it
// dies.
type Releasable interface {
	Release()
}

// Config is the immutable per-actor tuning.
type Config struct {
	Name      string
	Kind      Kind
	MaxHealth int
	// StrictDamage rejects non-positive hits instead of ignoring them.
	StrictDamage bool
	Combat       combat.Config
	Movement     movement.Driver
	Signals      SignalTable
	AttackClip   string
	Facing       component.Facing
	// Left and Right are the patrol bounds; enemies only.
	Left, Right *combat.Bound
}

// Deps are the collaborators an actor is wired to.
type Deps struct {
	Body     Body
	Animator *anim.Animator
	Spatial  combat.Spatial
	// Input feeds the player profile. Nil means no intent.
	Input component.IntentSource
}

// Actor is one character in the scene.
type Actor struct {
	id     string
	cfg    Config
	body   Body
	anim   *anim.Animator
	input  component.IntentSource
	health *component.Health
	mach   *combat.Machine

	signals  *signalSink
	emitter  *component.CombatEventEmitter
	log      *zap.Logger
	decision combat.Decision
	intent   component.Intent
	children []Releasable
	dead     bool
}

// Option configures an Actor.
type Option func(*Actor)

// WithID overrides the generated id.
func WithID(id string) Option {
	return func(a *Actor) { a.id = id }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *Actor) {
		if l != nil {
			a.log = l
		}
	}
}

// WithEmitter publishes combat events to e.
func WithEmitter(e *component.CombatEventEmitter) Option {
	return func(a *Actor) { a.emitter = e }
}

// New validates cfg and wires the actor to deps.
func New(cfg Config, deps Deps, opts ...Option) (*Actor, error) {
	if deps.Body == nil {
		return nil, fmt.Errorf("actor %q: nil body: %w", cfg.Name, component.ErrConfiguration)
	}
	if deps.Spatial == nil {
		return nil, fmt.Errorf("actor %q: nil spatial probe: %w", cfg.Name, component.ErrConfiguration)
	}
	if err := cfg.Movement.Validate(); err != nil {
		return nil, fmt.Errorf("actor %q: %w", cfg.Name, err)
	}
	health, err := component.NewHealth(cfg.MaxHealth)
	if err != nil {
		return nil, fmt.Errorf("actor %q: %w", cfg.Name, err)
	}
	health.Strict = cfg.StrictDamage
	if cfg.AttackClip == "" {
		cfg.AttackClip = "attack"
	}
	if cfg.Signals == nil {
		cfg.Signals = EnemySignals
		if cfg.Kind == KindPlayer {
			cfg.Signals = PlayerSignals
		}
	}

	a := &Actor{
		id:     uuid.NewString(),
		cfg:    cfg,
		body:   deps.Body,
		anim:   deps.Animator,
		input:  deps.Input,
		health: health,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With(zap.String("actor", cfg.Name), zap.String("id", a.id))

	var params *anim.Params
	if a.anim != nil {
		params = a.anim.Params
	}
	if a.signals, err = resolveSignals(cfg.Signals, params); err != nil {
		return nil, fmt.Errorf("actor %q: %w", cfg.Name, err)
	}

	var profile combat.Profile
	switch cfg.Kind {
	case KindPlayer:
		cfg.Combat.Layer = component.LayerPlayer
		profile = &combat.PlayerProfile{}
	default:
		cfg.Combat.Layer = component.LayerEnemy
		profile = &combat.EnemyProfile{Left: cfg.Left, Right: cfg.Right}
	}
	a.cfg.Combat = cfg.Combat

	a.mach, err = combat.NewMachine(cfg.Combat, profile, a, deps.Spatial, a.signals,
		combat.WithID(a.id),
		combat.WithLogger(a.log),
		combat.WithFacing(cfg.Facing),
		combat.WithEvents(a.emit),
	)
	if err != nil {
		return nil, fmt.Errorf("actor %q: %w", cfg.Name, err)
	}

	health.OnDamage = func(h *component.Health, amount int) {
		a.signals.Fire(component.SignalHurt)
		a.emit(component.CombatEvent{
			Type:      component.EventDamageApplied,
			TargetID:  a.id,
			Damage:    amount,
			Remaining: h.CurrentHP(),
			Pos:       a.Position(),
		})
	}
	health.OnDeath = func(*component.Health) { a.die() }

	if a.anim != nil {
		prev := a.anim.OnFinished
		a.anim.OnFinished = func(clip string) {
			if prev != nil {
				prev(clip)
			}
			if clip == a.cfg.AttackClip {
				a.AttackFinished()
			}
		}
	}
	return a, nil
}

func (a *Actor) ID() string                 { return a.id }
func (a *Actor) Name() string               { return a.cfg.Name }
func (a *Actor) Kind() Kind                 { return a.cfg.Kind }
func (a *Actor) Layer() component.Layer     { return a.cfg.Combat.Layer }
func (a *Actor) Dead() bool                 { return a.dead }
func (a *Actor) Health() *component.Health  { return a.health }
func (a *Actor) Machine() *combat.Machine   { return a.mach }
func (a *Actor) Phase() combat.Phase        { return a.mach.Phase() }
func (a *Actor) Facing() component.Facing   { return a.mach.Facing() }
func (a *Actor) Animator() *anim.Animator   { return a.anim }
func (a *Actor) Decision() combat.Decision  { return a.decision }
func (a *Actor) Config() Config             { return a.cfg }
func (a *Actor) Position() cp.Vector        { return a.body.Position() }
func (a *Actor) Velocity() cp.Vector        { return a.body.Velocity() }
func (a *Actor) Grounded() bool             { return a.body.Grounded() }
func (a *Actor) AttackPlaying() bool        { return a.anim.IsPlaying(a.cfg.AttackClip) }
func (a *Actor) Intent() component.Intent   { return a.intent }
func (a *Actor) Children() []Releasable     { return a.children }

// Update runs the variable tick: poll intent, step the combat machine and
// apply an allowed jump.
func (a *Actor) Update(dt float64) {
	if a == nil || a.dead {
		return
	}
	a.intent = component.Intent{}
	if a.cfg.Kind == KindPlayer && a.input != nil {
		a.intent = a.input.Poll()
	}
	a.decision = a.mach.Update(dt, a.intent)
	if a.decision.Jump {
		a.body.SetVelocity(movement.Jump(a.body.Velocity(), a.cfg.Movement.JumpForce))
	}
	a.publishMotion()
}

// FixedUpdate applies the last decision to the body. A locked or holding
// actor keeps its vertical velocity and gets zero horizontal velocity.
func (a *Actor) FixedUpdate(dt float64) {
	if a == nil || a.dead {
		return
	}
	v := a.body.Velocity()
	if a.decision.Locked || a.decision.Hold {
		v = a.cfg.Movement.Stop(v.Y)
	} else {
		v = a.cfg.Movement.Horizontal(a.decision.Direction, v.Y)
	}
	v = a.cfg.Movement.Shape(v, a.intent.JumpHeld, a.body.Grounded(), dt)
	a.body.SetVelocity(v)
	a.publishMotion()
}

// publishMotion drives the locomotion signals. Speed is 0 or 1 and only
// changes on the ground outside an attack.
func (a *Actor) publishMotion() {
	grounded := a.body.Grounded()
	if grounded && !a.decision.Locked {
		speed := 0.0
		if a.decision.Walking {
			speed = 1
		}
		a.signals.SetFloat(component.SignalSpeed, speed)
	}
	a.signals.SetFloat(component.SignalYVelocity, a.body.Velocity().Y)
	a.signals.SetBool(component.SignalIsGrounded, grounded)
}

// TakeHit applies damage. It reports false when the actor was already dead
// or the hit was rejected.
func (a *Actor) TakeHit(amount int) (component.DamageOutcome, bool) {
	if a == nil || a.dead {
		return component.Lethal, false
	}
	out, err := a.health.ApplyDamage(amount)
	if err != nil {
		a.log.Warn("hit rejected", zap.Int("amount", amount), zap.Error(err))
		return out, false
	}
	if amount <= 0 {
		return out, false
	}
	return out, true
}

// OpponentEntered forwards an aggro-region entry to the combat machine.
func (a *Actor) OpponentEntered(h component.Hittable) {
	if a == nil || a.dead {
		return
	}
	a.mach.OpponentEntered(h)
}

// OpponentLeft forwards an aggro-region exit to the combat machine.
func (a *Actor) OpponentLeft(h component.Hittable) {
	if a == nil || a.dead {
		return
	}
	a.mach.OpponentLeft(h)
}

// AttackFinished is the attack motion's completion signal.
func (a *Actor) AttackFinished() {
	if a == nil || a.dead {
		return
	}
	a.mach.TriggerCooling()
}

// AddChild parents r to this actor. Children of a dead actor are released
// immediately.
func (a *Actor) AddChild(r Releasable) {
	if r == nil {
		return
	}
	if a.dead {
		r.Release()
		return
	}
	a.children = append(a.children, r)
}

func (a *Actor) die() {
	if a.dead {
		return
	}
	a.dead = true
	a.mach.Kill()
	a.body.Disable()
	for _, c := range a.children {
		c.Release()
	}
	a.children = nil
	a.log.Info("actor died", zap.Stringer("kind", a.cfg.Kind))
	a.emit(component.CombatEvent{Type: component.EventDeath, TargetID: a.id, Pos: a.Position()})
}

func (a *Actor) emit(evt component.CombatEvent) {
	if a.emitter == nil {
		return
	}
	if evt.AttackerID == "" && evt.Type != component.EventDamageApplied && evt.Type != component.EventDeath {
		evt.AttackerID = a.id
	}
	a.emitter.Emit(evt)
}

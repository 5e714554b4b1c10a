// Package combat drives an actor's patrol, engage, attack and cooldown cycle.
// The same Machine serves enemies and the player; a Profile decides what
// happens each tick.
package combat

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/CoolKrit/Ronin/component"
	"github.com/CoolKrit/Ronin/movement"
)

// Spatial is the part of probe.Probe the machine needs.
type Spatial interface {
	DistanceTo(a, b cp.Vector) float64
	IsWithinBounds(pos, left, right cp.Vector) bool
	HasGroundBelow(origin cp.Vector, maxDistance float64) bool
	QueryHitArea(origin, halfExtents cp.Vector, angle float64, layer component.Layer) []component.Hittable
}

// Self is the actor a machine belongs to.
type Self interface {
	Position() cp.Vector
	Grounded() bool
	// AttackPlaying reports whether the attack motion is still on screen.
	AttackPlaying() bool
}

// Machine is the per-actor combat state machine. It is not safe for
// concurrent use; every call happens on the simulation goroutine.
type Machine struct {
	id      string
	cfg     Config
	profile Profile
	self    Self
	spatial Spatial
	signals component.SignalSink
	log     *zap.Logger
	emit    func(component.CombatEvent)
	onPhase func(from, to Phase)

	phase     Phase
	timer     float64
	attacking bool
	cooling   bool
	inRange   bool
	target    *Bound
	opponent  component.Hittable
	facing    component.Facing
	tick      uint64
}

// Option configures a Machine.
type Option func(*Machine)

// WithID names the machine in events and logs.
func WithID(id string) Option {
	return func(m *Machine) { m.id = id }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// WithEvents routes combat events to fn.
func WithEvents(fn func(component.CombatEvent)) Option {
	return func(m *Machine) { m.emit = fn }
}

// WithTransitionHook observes every phase change.
func WithTransitionHook(fn func(from, to Phase)) Option {
	return func(m *Machine) { m.onPhase = fn }
}

// WithFacing sets the initial facing.
func WithFacing(f component.Facing) Option {
	return func(m *Machine) { m.facing = f }
}

// NewMachine validates the configuration and returns a machine in Patrol.
// Enemy profiles pick their first patrol target immediately.
func NewMachine(cfg Config, profile Profile, self Self, spatial Spatial, signals component.SignalSink, opts ...Option) (*Machine, error) {
	if profile == nil {
		return nil, fmt.Errorf("combat: nil profile: %w", component.ErrConfiguration)
	}
	if self == nil || spatial == nil {
		return nil, fmt.Errorf("combat: self and spatial are required: %w", component.ErrConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := profile.Validate(cfg); err != nil {
		return nil, err
	}
	m := &Machine{
		cfg:     cfg,
		profile: profile,
		self:    self,
		spatial: spatial,
		signals: signals,
		log:     zap.NewNop(),
		phase:   PhasePatrol,
		timer:   cfg.CooldownDuration,
		facing:  component.FacingRight,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(zap.String("actor", m.id), zap.Stringer("layer", cfg.Layer))
	profile.Start(m)
	return m, nil
}

func (m *Machine) ID() string                   { return m.id }
func (m *Machine) Phase() Phase                 { return m.phase }
func (m *Machine) Timer() float64               { return m.timer }
func (m *Machine) Target() *Bound               { return m.target }
func (m *Machine) Opponent() component.Hittable { return m.opponent }
func (m *Machine) Facing() component.Facing     { return m.facing }
func (m *Machine) InRange() bool                { return m.inRange }
func (m *Machine) Attacking() bool              { return m.attacking }
func (m *Machine) Cooling() bool                { return m.cooling }
func (m *Machine) Config() Config               { return m.cfg }

// Update runs one variable tick and returns the movement decision for the
// following fixed tick. Negative or NaN dt is treated as zero.
func (m *Machine) Update(dt float64, in component.Intent) Decision {
	if m == nil || m.phase == PhaseDead {
		return Decision{Locked: true}
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	m.tick++
	return m.profile.Tick(m, in, dt)
}

// SelectTarget points an enemy at whichever patrol bound is farther and turns
// to face it. Ties pick the right bound.
func (m *Machine) SelectTarget() error {
	p, ok := m.profile.(*EnemyProfile)
	if !ok || p.Left == nil || p.Right == nil {
		return fmt.Errorf("combat: %s has no patrol bounds: %w", m.id, component.ErrNullTarget)
	}
	pos := m.self.Position()
	next := p.Right
	if m.spatial.DistanceTo(pos, p.Left.Position) > m.spatial.DistanceTo(pos, p.Right.Position) {
		next = p.Left
	}
	if m.target != next {
		m.log.Debug("retarget", zap.String("bound", next.Name))
		m.publish(component.CombatEvent{Type: component.EventRetarget, To: next.Name, Pos: next.Position})
	}
	m.target = next
	m.Flip(next.Position.X)
	return nil
}

// Flip turns to face x. An x equal to the actor's own keeps the facing.
func (m *Machine) Flip(x float64) {
	m.facing = movement.Flip(m.facing, x-m.self.Position().X)
}

// Face turns by a raw horizontal direction, as player input does.
func (m *Machine) Face(direction float64) {
	m.facing = movement.Flip(m.facing, direction)
}

// OpponentEntered records an opposing actor inside the aggro region. An
// existing live opponent is kept.
func (m *Machine) OpponentEntered(h component.Hittable) {
	if m == nil || m.phase == PhaseDead || h == nil || h.Dead() {
		return
	}
	if h.Layer() != m.cfg.Layer.Opposing() {
		return
	}
	if m.opponent != nil && !m.opponent.Dead() {
		return
	}
	m.opponent = h
	m.inRange = true
	m.log.Debug("opponent entered", zap.String("opponent", h.ID()))
}

// OpponentLeft clears the opponent if h is the engaged one.
func (m *Machine) OpponentLeft(h component.Hittable) {
	if m == nil || m.phase == PhaseDead || h == nil || m.opponent == nil {
		return
	}
	if h.ID() != m.opponent.ID() {
		return
	}
	m.releaseOpponent()
	if m.phase == PhaseEngaging {
		m.transition(PhasePatrol)
	}
	if _, ok := m.profile.(*EnemyProfile); ok {
		_ = m.SelectTarget()
	}
}

// TriggerCooling is the attack motion's completion signal. It only has an
// effect while Attacking.
func (m *Machine) TriggerCooling() {
	if m == nil || m.phase != PhaseAttacking {
		return
	}
	m.cooling = true
	m.transition(PhaseCooling)
}

// StopAttack abandons the current attack and cooldown.
func (m *Machine) StopAttack() {
	if m == nil || m.phase == PhaseDead {
		return
	}
	wasActive := m.attacking || m.cooling
	m.attacking = false
	m.cooling = false
	m.timer = m.cfg.CooldownDuration
	m.setBool(m.profile.AttackSignal(), false)
	if wasActive {
		m.transition(m.neutral())
	}
}

// Kill moves the machine to Dead. It reports whether this call did so.
func (m *Machine) Kill() bool {
	if m == nil || m.phase == PhaseDead {
		return false
	}
	m.attacking = false
	m.cooling = false
	m.releaseOpponent()
	m.transition(PhaseDead)
	m.setBool(m.profile.AttackSignal(), false)
	m.setBool(component.SignalIsDead, true)
	return true
}

// beginAttack enters Attacking and resolves the single hit for this attack.
func (m *Machine) beginAttack() {
	m.attacking = true
	m.cooling = false
	m.timer = m.cfg.CooldownDuration
	m.transition(PhaseAttacking)
	m.setBool(component.SignalCanWalk, false)
	m.setBool(m.profile.AttackSignal(), true)
	m.resolveHit()
}

func (m *Machine) resolveHit() {
	origin, angle := m.hitOrigin()
	hits := m.spatial.QueryHitArea(origin, m.cfg.HitBox.HalfExtents(), angle, m.cfg.Layer.Opposing())
	target := m.profile.PickTarget(m.self.Position(), hits)
	if target == nil {
		return
	}
	outcome, applied := target.TakeHit(m.cfg.Damage)
	if !applied {
		return
	}
	m.log.Debug("hit",
		zap.String("target", target.ID()),
		zap.Int("damage", m.cfg.Damage),
		zap.Stringer("outcome", outcome),
	)
	m.publish(component.CombatEvent{
		Type:     component.EventHit,
		TargetID: target.ID(),
		Damage:   m.cfg.Damage,
		Pos:      target.Position(),
	})
	if outcome != component.Lethal {
		return
	}
	if m.opponent != nil && m.opponent.ID() == target.ID() {
		m.releaseOpponent()
	}
	m.attacking = false
	m.cooling = false
	m.timer = m.cfg.CooldownDuration
	m.setBool(m.profile.AttackSignal(), false)
	m.transition(m.neutral())
}

// hitOrigin mirrors the hit box offset and angle by facing.
func (m *Machine) hitOrigin() (cp.Vector, float64) {
	s := m.facing.Sign()
	off := m.cfg.HitBox.Offset
	return m.self.Position().Add(cp.Vector{X: off.X * s, Y: off.Y}), m.cfg.HitBox.Angle * s
}

// HitArea returns the hit box center and angle for the current facing.
func (m *Machine) HitArea() (cp.Vector, float64) { return m.hitOrigin() }

// groundProbe is the ledge ray origin for the current facing.
func (m *Machine) groundProbe() cp.Vector {
	off := m.cfg.GroundProbe
	return m.self.Position().Add(cp.Vector{X: off.X * m.facing.Sign(), Y: off.Y})
}

// tickCooldown counts the cooldown down while Cooling and resets it on
// expiry.
func (m *Machine) tickCooldown(dt float64) {
	if !m.cooling {
		return
	}
	m.setBool(m.profile.AttackSignal(), false)
	m.timer -= dt
	if m.timer > 0 {
		return
	}
	m.timer = m.cfg.CooldownDuration
	m.cooling = false
	m.attacking = false
	m.transition(m.neutral())
}

// validateOpponent drops an engaged opponent that disappeared or died. It
// reports false when the machine must hold this tick.
func (m *Machine) validateOpponent() bool {
	if !m.inRange {
		return true
	}
	if m.opponent != nil && !m.opponent.Dead() {
		return true
	}
	m.log.Debug("engaged opponent gone", zap.Error(component.ErrNullTarget))
	m.releaseOpponent()
	if m.phase == PhaseEngaging {
		m.transition(PhasePatrol)
	}
	return false
}

func (m *Machine) releaseOpponent() {
	m.opponent = nil
	m.inRange = false
}

func (m *Machine) neutral() Phase {
	if m.inRange {
		return PhaseEngaging
	}
	return PhasePatrol
}

func (m *Machine) transition(to Phase) {
	from := m.phase
	if from == to {
		return
	}
	m.phase = to
	m.log.Debug("phase", zap.Stringer("from", from), zap.Stringer("to", to))
	if m.onPhase != nil {
		m.onPhase(from, to)
	}
	m.publish(component.CombatEvent{Type: component.EventPhase, From: from.String(), To: to.String()})
}

func (m *Machine) publish(evt component.CombatEvent) {
	if m.emit == nil {
		return
	}
	evt.AttackerID = m.id
	evt.Tick = m.tick
	m.emit(evt)
}

func (m *Machine) setBool(s component.Signal, v bool) {
	if m.signals != nil && s != "" {
		m.signals.SetBool(s, v)
	}
}

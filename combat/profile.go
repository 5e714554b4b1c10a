package combat

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/CoolKrit/Ronin/common"
	"github.com/CoolKrit/Ronin/component"
)

// Profile is the per-actor decision policy plugged into a Machine.
type Profile interface {
	Validate(cfg Config) error
	// Start runs once when the machine is built.
	Start(m *Machine)
	// Tick runs one variable tick.
	Tick(m *Machine, in component.Intent, dt float64) Decision
	// PickTarget chooses which overlapped actor an attack strikes.
	PickTarget(self cp.Vector, hits []component.Hittable) component.Hittable
	// AttackSignal names the animation flag raised while attacking.
	AttackSignal() component.Signal
}

// EnemyProfile patrols between two bounds and attacks an opponent that
// enters its aggro region.
type EnemyProfile struct {
	Left  *Bound
	Right *Bound
}

func (p *EnemyProfile) Validate(cfg Config) error {
	if p.Left == nil || p.Right == nil {
		return fmt.Errorf("combat: enemy needs both patrol bounds: %w", component.ErrConfiguration)
	}
	if p.Left.Position.X >= p.Right.Position.X {
		return fmt.Errorf("combat: left bound %v must be left of right bound %v: %w",
			p.Left.Position.X, p.Right.Position.X, component.ErrConfiguration)
	}
	if cfg.AttackDistance <= 0 {
		return fmt.Errorf("combat: enemy attack distance must be positive: %w", component.ErrConfiguration)
	}
	if cfg.GroundCheckDistance <= 0 {
		return fmt.Errorf("combat: enemy ground check distance must be positive: %w", component.ErrConfiguration)
	}
	return nil
}

func (p *EnemyProfile) Start(m *Machine) {
	_ = m.SelectTarget()
}

func (p *EnemyProfile) AttackSignal() component.Signal { return component.SignalAttack }

// PickTarget strikes the first overlapped actor.
func (p *EnemyProfile) PickTarget(_ cp.Vector, hits []component.Hittable) component.Hittable {
	if len(hits) == 0 {
		return nil
	}
	return hits[0]
}

func (p *EnemyProfile) Tick(m *Machine, _ component.Intent, dt float64) Decision {
	pos := m.self.Position()

	grounded := m.spatial.HasGroundBelow(m.groundProbe(), m.cfg.GroundCheckDistance)
	inside := m.spatial.IsWithinBounds(pos, p.Left.Position, p.Right.Position)
	if !grounded || (!inside && !m.inRange && !m.self.AttackPlaying()) {
		_ = m.SelectTarget()
	}

	if !m.validateOpponent() {
		m.setBool(component.SignalCanWalk, false)
		return Decision{Hold: true, Locked: true}
	}

	if m.inRange {
		if m.phase == PhasePatrol {
			m.transition(PhaseEngaging)
		}
		if !m.attacking && !m.cooling {
			m.Flip(m.opponent.Position().X)
		}
		if m.spatial.DistanceTo(pos, m.opponent.Position()) > m.cfg.AttackDistance {
			m.StopAttack()
		} else if !m.attacking && !m.cooling {
			m.beginAttack()
		}
	}

	m.tickCooldown(dt)

	if m.attacking || m.cooling || m.self.AttackPlaying() {
		return Decision{Locked: true}
	}

	goal := m.target.Position
	if grounded && m.inRange && m.opponent != nil {
		goal = m.opponent.Position()
	}
	m.Flip(goal.X)
	m.setBool(component.SignalCanWalk, true)
	dir := 0.0
	if d := goal.Sub(pos); d.Length() > 0 {
		dir = d.Normalize().X
	}
	return Decision{Direction: dir, Walking: dir != 0}
}

// PlayerProfile turns player intent into movement and attacks.
type PlayerProfile struct{}

func (p *PlayerProfile) Validate(Config) error { return nil }

func (p *PlayerProfile) Start(*Machine) {}

func (p *PlayerProfile) AttackSignal() component.Signal { return component.SignalIsAttacking }

// PickTarget strikes the nearest overlapped actor. Ties keep backend order.
func (p *PlayerProfile) PickTarget(self cp.Vector, hits []component.Hittable) component.Hittable {
	var best component.Hittable
	bestDist := math.Inf(1)
	for _, h := range hits {
		if d := self.Distance(h.Position()); d < bestDist {
			best, bestDist = h, d
		}
	}
	return best
}

func (p *PlayerProfile) Tick(m *Machine, in component.Intent, dt float64) Decision {
	axis := common.Clamp(in.Axis, -1, 1)
	grounded := m.self.Grounded()
	walking := axis != 0

	m.validateOpponent()
	if m.inRange && m.phase == PhasePatrol {
		m.transition(PhaseEngaging)
	}

	jump := in.JumpPressed && grounded && !m.attacking
	jumping := jump || !grounded
	if in.AttackPressed && grounded && !walking && !jumping && !m.attacking && !m.cooling {
		m.beginAttack()
	}

	m.tickCooldown(dt)

	if m.attacking && !m.cooling {
		return Decision{Locked: true}
	}
	if walking {
		m.Face(axis)
	}
	return Decision{Direction: axis, Jump: jump, Walking: walking}
}

package combat

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"

	"github.com/CoolKrit/Ronin/component"
)

// Bound is a fixed patrol marker owned by the level.
type Bound struct {
	Name     string
	Position cp.Vector
}

// HitBox places the attack's oriented box relative to the actor. Offset.X is
// mirrored when the actor faces left; Angle is in degrees.
type HitBox struct {
	Offset cp.Vector
	Size   cp.Vector
	Angle  float64
}

// HalfExtents returns half of Size.
func (h HitBox) HalfExtents() cp.Vector {
	return h.Size.Mult(0.5)
}

// Config is the combat tuning supplied at construction. It is never mutated.
type Config struct {
	// Layer is the actor's own side; hit queries target the opposing layer.
	Layer            component.Layer
	AttackDistance   float64
	CooldownDuration float64
	Damage           int
	HitBox           HitBox
	// GroundProbe is where the ledge ray starts, relative to the actor, with
	// X mirrored by facing.
	GroundProbe         cp.Vector
	GroundCheckDistance float64
}

// Validate reports every violation at once.
func (c Config) Validate() error {
	var errs []string
	if c.Layer == component.LayerNone {
		errs = append(errs, "layer must be player or enemy")
	}
	if c.CooldownDuration <= 0 {
		errs = append(errs, fmt.Sprintf("cooldown must be positive, got %v", c.CooldownDuration))
	}
	if c.Damage <= 0 {
		errs = append(errs, fmt.Sprintf("damage must be positive, got %d", c.Damage))
	}
	if c.HitBox.Size.X <= 0 || c.HitBox.Size.Y <= 0 {
		errs = append(errs, fmt.Sprintf("hit box size must be positive, got %v", c.HitBox.Size))
	}
	if c.AttackDistance < 0 {
		errs = append(errs, fmt.Sprintf("attack distance must not be negative, got %v", c.AttackDistance))
	}
	if c.GroundCheckDistance < 0 {
		errs = append(errs, fmt.Sprintf("ground check distance must not be negative, got %v", c.GroundCheckDistance))
	}
	if len(errs) > 0 {
		return fmt.Errorf("combat: %s: %w", strings.Join(errs, "; "), component.ErrConfiguration)
	}
	return nil
}

// Package movement turns a desired direction into velocity, shapes gravity
// for jump feel and decides which way an actor faces.
package movement

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/CoolKrit/Ronin/common"
	"github.com/CoolKrit/Ronin/component"
)

// ComputeHorizontalVelocity returns (direction*speed, vy). direction is
// clamped to [-1,1] and a negative speed counts as zero; the vertical axis is
// passed through untouched.
func ComputeHorizontalVelocity(direction, speed, vy float64) cp.Vector {
	direction = common.Clamp(direction, -1, 1)
	if speed < 0 {
		speed = 0
	}
	return cp.Vector{X: direction * speed, Y: vy}
}

// ApplyGravityShaping adds extra gravity while falling, and while rising with
// the jump input released in the air. The falling check wins.
func ApplyGravityShaping(v cp.Vector, gravityY, fallMultiplier, lowJumpMultiplier float64, holdingJump, grounded bool, dt float64) cp.Vector {
	if v.Y < 0 {
		v.Y += gravityY * (fallMultiplier - 1) * dt
		return v
	}
	if v.Y > 0 && !holdingJump && !grounded {
		v.Y += gravityY * (lowJumpMultiplier - 1) * dt
	}
	return v
}

// Flip faces the actor toward a target at relX = target.x - self.x. A target
// straight above or below keeps the current facing.
func Flip(current component.Facing, relX float64) component.Facing {
	switch {
	case relX < 0:
		return component.FacingLeft
	case relX > 0:
		return component.FacingRight
	default:
		return current
	}
}

// Jump replaces the vertical velocity with force.
func Jump(v cp.Vector, force float64) cp.Vector {
	v.Y = force
	return v
}

// Driver carries the per-actor movement tuning.
type Driver struct {
	Speed             float64
	JumpForce         float64
	GravityY          float64
	FallMultiplier    float64
	LowJumpMultiplier float64
	// ShapeGravity enables ApplyGravityShaping in Shape.
	ShapeGravity bool
}

// Validate rejects tunings that would make movement meaningless.
func (d Driver) Validate() error {
	if d.Speed <= 0 {
		return fmt.Errorf("movement: speed must be positive, got %v: %w", d.Speed, component.ErrConfiguration)
	}
	if d.JumpForce < 0 {
		return fmt.Errorf("movement: jump force must not be negative, got %v: %w", d.JumpForce, component.ErrConfiguration)
	}
	if !d.ShapeGravity {
		return nil
	}
	if d.FallMultiplier <= 1 || d.LowJumpMultiplier <= 1 {
		return fmt.Errorf("movement: gravity multipliers must exceed 1, got fall=%v low=%v: %w",
			d.FallMultiplier, d.LowJumpMultiplier, component.ErrConfiguration)
	}
	return nil
}

// Horizontal applies the driver's speed to direction.
func (d Driver) Horizontal(direction, vy float64) cp.Vector {
	return ComputeHorizontalVelocity(direction, d.Speed, vy)
}

// Shape applies gravity shaping when enabled.
func (d Driver) Shape(v cp.Vector, holdingJump, grounded bool, dt float64) cp.Vector {
	if !d.ShapeGravity {
		return v
	}
	return ApplyGravityShaping(v, d.GravityY, d.FallMultiplier, d.LowJumpMultiplier, holdingJump, grounded, dt)
}

// Stop zeroes horizontal motion, keeping the vertical axis.
func (d Driver) Stop(vy float64) cp.Vector {
	return cp.Vector{X: 0, Y: vy}
}

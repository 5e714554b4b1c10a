package movement

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/CoolKrit/Ronin/component"
)

func TestComputeHorizontalVelocity(t *testing.T) {
	cases := []struct {
		name string
		dir  float64
		spd  float64
		vy   float64
		want cp.Vector
	}{
		{"right", 1, 5, -2, cp.Vector{X: 5, Y: -2}},
		{"left_half", -0.5, 4, 3, cp.Vector{X: -2, Y: 3}},
		{"clamped_axis", 3, 2, 0, cp.Vector{X: 2, Y: 0}},
		{"negative_speed", 1, -5, 1, cp.Vector{X: 0, Y: 1}},
		{"nan_axis", math.NaN(), 5, 0, cp.Vector{X: 0, Y: 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ComputeHorizontalVelocity(c.dir, c.spd, c.vy))
		})
	}
}

func TestGravityShapingFastFall(t *testing.T) {
	const dt = 1.0 / 60.0
	v := ApplyGravityShaping(cp.Vector{X: 1, Y: -1}, -9.8, 2.5, 2, false, false, dt)

	assert.InDelta(t, -1+(-9.8*1.5*dt), v.Y, 1e-12)
	assert.Equal(t, 1.0, v.X)
	assert.Greater(t, math.Abs(v.Y), 1.0, "falling speeds up")
}

func TestGravityShapingOrder(t *testing.T) {
	const dt = 0.02
	cases := []struct {
		name    string
		vy      float64
		holding bool
		ground  bool
		want    float64
	}{
		{"descending_wins_even_holding", -1, true, true, -1 + -9.8*1.5*dt},
		{"low_jump_cut", 2, false, false, 2 + -9.8*1*dt},
		{"holding_jump_keeps_height", 2, true, false, 2},
		{"grounded_rising_untouched", 2, false, true, 2},
		{"resting", 0, false, false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := ApplyGravityShaping(cp.Vector{Y: c.vy}, -9.8, 2.5, 2, c.holding, c.ground, dt)
			assert.InDelta(t, c.want, v.Y, 1e-12)
		})
	}
}

func TestFlipFacesTarget(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		self := rapid.Float64Range(-100, 100).Draw(t, "self")
		target := rapid.Float64Range(-100, 100).Draw(t, "target")
		current := component.Facing(rapid.IntRange(0, 1).Draw(t, "current"))

		got := Flip(current, target-self)
		switch {
		case target < self && got != component.FacingLeft:
			t.Fatalf("target left of self, facing %v", got)
		case target > self && got != component.FacingRight:
			t.Fatalf("target right of self, facing %v", got)
		case target == self && got != current:
			t.Fatalf("no horizontal offset must keep facing")
		}
	})
}

func TestJump(t *testing.T) {
	assert.Equal(t, cp.Vector{X: 3, Y: 10}, Jump(cp.Vector{X: 3, Y: -4}, 10))
}

func TestDriverValidate(t *testing.T) {
	ok := Driver{Speed: 5, JumpForce: 10, GravityY: -9.8, FallMultiplier: 2.5, LowJumpMultiplier: 2, ShapeGravity: true}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Speed = 0
	assert.True(t, errors.Is(bad.Validate(), component.ErrConfiguration))

	bad = ok
	bad.FallMultiplier = 1
	assert.True(t, errors.Is(bad.Validate(), component.ErrConfiguration))

	noShape := Driver{Speed: 2}
	assert.NoError(t, noShape.Validate())
	assert.Equal(t, cp.Vector{X: 0, Y: -3}, noShape.Shape(cp.Vector{Y: -3}, false, false, 1))
}

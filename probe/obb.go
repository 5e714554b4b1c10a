package probe

import (
	"math"

	"github.com/jakecoffman/cp"
)

// OBB is an oriented box: a center, half extents along its local axes and a
// rotation in radians.
type OBB struct {
	Center      cp.Vector
	HalfExtents cp.Vector
	Angle       float64
}

// NewOBB builds an oriented box from an angle given in degrees.
func NewOBB(center, halfExtents cp.Vector, angleDeg float64) OBB {
	return OBB{Center: center, HalfExtents: halfExtents, Angle: angleDeg * math.Pi / 180}
}

func (o OBB) axes() (cp.Vector, cp.Vector) {
	u := cp.ForAngle(o.Angle)
	return u, u.Perp()
}

// Corners returns the four corners counter-clockwise from bottom-left.
func (o OBB) Corners() [4]cp.Vector {
	u, v := o.axes()
	ux := u.Mult(o.HalfExtents.X)
	vy := v.Mult(o.HalfExtents.Y)
	return [4]cp.Vector{
		o.Center.Sub(ux).Sub(vy),
		o.Center.Add(ux).Sub(vy),
		o.Center.Add(ux).Add(vy),
		o.Center.Sub(ux).Add(vy),
	}
}

// BB returns the axis-aligned box that encloses the oriented box.
func (o OBB) BB() cp.BB {
	c := o.Corners()
	bb := cp.BB{L: c[0].X, B: c[0].Y, R: c[0].X, T: c[0].Y}
	for _, p := range c[1:] {
		bb.L = math.Min(bb.L, p.X)
		bb.R = math.Max(bb.R, p.X)
		bb.B = math.Min(bb.B, p.Y)
		bb.T = math.Max(bb.T, p.Y)
	}
	return bb
}

// IntersectsBB runs a separating-axis test against an axis-aligned box.
// Touching edges do not count as overlap.
func (o OBB) IntersectsBB(bb cp.BB) bool {
	if bb.R < bb.L || bb.T < bb.B {
		return false
	}
	u, v := o.axes()
	boxCorners := [4]cp.Vector{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
	}
	ownCorners := o.Corners()

	for _, axis := range [4]cp.Vector{{X: 1, Y: 0}, {X: 0, Y: 1}, u, v} {
		minA, maxA := project(ownCorners, axis)
		minB, maxB := project(boxCorners, axis)
		if maxA <= minB || maxB <= minA {
			return false
		}
	}
	return true
}

func project(points [4]cp.Vector, axis cp.Vector) (float64, float64) {
	lo := points[0].Dot(axis)
	hi := lo
	for _, p := range points[1:] {
		d := p.Dot(axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}

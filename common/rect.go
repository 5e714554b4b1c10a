package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned rectangle anchored at its bottom-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectFromCenter builds a Rect from a center point and half extents.
func RectFromCenter(center, half cp.Vector) Rect {
	return Rect{X: center.X - half.X, Y: center.Y - half.Y, Width: half.X * 2, Height: half.Y * 2}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// BB converts the rectangle to a chipmunk bounding box.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}

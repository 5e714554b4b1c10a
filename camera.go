package main

import (
	"github.com/jakecoffman/cp"

	"github.com/CoolKrit/Ronin/common"
)

// Camera maps y-up world units to screen pixels and follows a target.
type Camera struct {
	Pos cp.Vector

	screenW int
	screenH int
	ppu     float64
	// smoothing factor (0..1). higher -> faster follow.
	smooth float64
}

func NewCamera(screenW, screenH int, ppu float64) *Camera {
	if ppu <= 0 {
		ppu = common.PixelsPerUnit
	}
	return &Camera{screenW: screenW, screenH: screenH, ppu: ppu, smooth: 0.15}
}

// Snap centers the camera on target without smoothing.
func (c *Camera) Snap(target cp.Vector) {
	c.Pos = target
}

// Update moves the camera toward target. Call once per tick for consistent
// smoothing.
func (c *Camera) Update(target cp.Vector) {
	if c.smooth <= 0 {
		c.Pos = target
		return
	}
	c.Pos.X = common.Lerp(c.Pos.X, target.X, c.smooth)
	c.Pos.Y = common.Lerp(c.Pos.Y, target.Y, c.smooth)
}

// ToScreen converts a world point to screen pixels.
func (c *Camera) ToScreen(p cp.Vector) (float32, float32) {
	x := (p.X-c.Pos.X)*c.ppu + float64(c.screenW)/2
	y := float64(c.screenH)/2 - (p.Y-c.Pos.Y)*c.ppu
	return float32(x), float32(y)
}

// RectToScreen converts a world rectangle to a screen-space top-left and size.
func (c *Camera) RectToScreen(r common.Rect) (x, y, w, h float32) {
	x, y = c.ToScreen(cp.Vector{X: r.X, Y: r.Y + r.Height})
	return x, y, float32(r.Width * c.ppu), float32(r.Height * c.ppu)
}


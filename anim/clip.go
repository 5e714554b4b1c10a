package anim

import "math"

// Clip is a frame-counted motion. Frames advance at FPS; a non-looping clip
// holds its last frame once done.
type Clip struct {
	Name       string
	FrameCount int
	FPS        float64
	Loop       bool

	current int
	elapsed float64
	done    bool
}

// NewClip fills in defaults: at least one frame and 12 fps.
func NewClip(name string, frameCount int, fps float64, loop bool) *Clip {
	if frameCount <= 0 {
		frameCount = 1
	}
	if fps <= 0 {
		fps = 12
	}
	return &Clip{Name: name, FrameCount: frameCount, FPS: fps, Loop: loop}
}

// Duration is the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c == nil {
		return 0
	}
	return float64(c.FrameCount) / c.FPS
}

// Advance moves the clip forward by dt and reports whether a non-looping
// clip finished during this call.
func (c *Clip) Advance(dt float64) bool {
	if c == nil || c.done || dt <= 0 {
		return false
	}
	c.elapsed += dt
	frame := int(math.Floor(c.elapsed * c.FPS))
	if frame < c.FrameCount {
		c.current = frame
		return false
	}
	if c.Loop {
		c.elapsed = math.Mod(c.elapsed, c.Duration())
		c.current = int(math.Floor(c.elapsed*c.FPS)) % c.FrameCount
		return false
	}
	c.current = c.FrameCount - 1
	c.done = true
	return true
}

// Reset rewinds to the first frame.
func (c *Clip) Reset() {
	if c == nil {
		return
	}
	c.current = 0
	c.elapsed = 0
	c.done = false
}

// Frame is the current frame index.
func (c *Clip) Frame() int {
	if c == nil {
		return 0
	}
	return c.current
}

// Done reports whether a non-looping clip reached its end.
func (c *Clip) Done() bool {
	return c != nil && c.done
}

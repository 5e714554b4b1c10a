// Package probetest provides an in-memory probe.Backend for tests.
package probetest

import (
	"github.com/jakecoffman/cp"

	"github.com/CoolKrit/Ronin/common"
	"github.com/CoolKrit/Ronin/component"
	"github.com/CoolKrit/Ronin/probe"
)

type entry struct {
	actor component.Hittable
	half  cp.Vector
}

// World is a flat list of ground rectangles and actor colliders.
type World struct {
	Ground []common.Rect
	actors []entry
}

func NewWorld(ground ...common.Rect) *World {
	return &World{Ground: ground}
}

// AddActor registers an actor collider of the given half extents, centered on
// the actor's position at query time.
func (w *World) AddActor(h component.Hittable, half cp.Vector) {
	w.actors = append(w.actors, entry{actor: h, half: half})
}

func (w *World) CastDown(origin cp.Vector, maxDistance float64) bool {
	for _, g := range w.Ground {
		if origin.X < g.X || origin.X > g.X+g.Width {
			continue
		}
		top := g.Y + g.Height
		if top <= origin.Y && origin.Y-top <= maxDistance {
			return true
		}
	}
	return false
}

func (w *World) Overlapping(box probe.OBB, layer component.Layer) []component.Hittable {
	var out []component.Hittable
	for _, e := range w.actors {
		if e.actor.Layer() != layer {
			continue
		}
		r := common.RectFromCenter(e.actor.Position(), e.half)
		if box.IntersectsBB(r.BB()) {
			out = append(out, e.actor)
		}
	}
	return out
}

// Dummy is a stationary Hittable with its own health ledger.
type Dummy struct {
	Name   string
	Side   component.Layer
	Pos    cp.Vector
	Health *component.Health
	Hits   int
}

func NewDummy(name string, side component.Layer, pos cp.Vector, hp int) *Dummy {
	h, _ := component.NewHealth(hp)
	return &Dummy{Name: name, Side: side, Pos: pos, Health: h}
}

func (d *Dummy) ID() string                { return d.Name }
func (d *Dummy) Layer() component.Layer    { return d.Side }
func (d *Dummy) Position() cp.Vector       { return d.Pos }
func (d *Dummy) Dead() bool                { return !d.Health.IsAlive() }
func (d *Dummy) TakeHit(amount int) (component.DamageOutcome, bool) {
	if d.Dead() {
		return component.Lethal, false
	}
	d.Hits++
	out, _ := d.Health.ApplyDamage(amount)
	return out, true
}

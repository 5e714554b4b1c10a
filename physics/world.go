// Package physics owns the Chipmunk space the arena simulates in: static
// platforms, actor bodies and the aggro sensors that tell an actor an
// opponent is near. It also answers probe queries against that space.
package physics

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/CoolKrit/Ronin/common"
	"github.com/CoolKrit/Ronin/component"
	"github.com/CoolKrit/Ronin/probe"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeActor
	collisionTypeAggro
)

const (
	categoryGround uint = 1 << iota
	categoryActor
	categoryAggro
)

var (
	groundFilter = cp.NewShapeFilter(cp.NO_GROUP, categoryGround, cp.ALL_CATEGORIES)
	actorFilter  = cp.NewShapeFilter(cp.NO_GROUP, categoryActor, categoryGround|categoryAggro)
	aggroFilter  = cp.NewShapeFilter(cp.NO_GROUP, categoryAggro, categoryActor)
	groundQuery  = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryGround)
)

// World wraps the space and the shape-to-body lookups its handlers need.
type World struct {
	space         *cp.Space
	handlersReady bool
	log           *zap.Logger

	platforms    []common.Rect
	bodies       []*Body
	actorShapes  map[*cp.Shape]*Body
	sensorShapes map[*cp.Shape]*Body
}

// Option configures a World.
type Option func(*World)

func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWorld creates an empty space with the given gravity.
func NewWorld(gravity cp.Vector, opts ...Option) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(gravity)

	w := &World{
		space:        space,
		log:          zap.NewNop(),
		actorShapes:  make(map[*cp.Shape]*Body),
		sensorShapes: make(map[*cp.Shape]*Body),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddPlatform adds a static walkable rectangle.
func (w *World) AddPlatform(r common.Rect) {
	if w == nil || w.space == nil || r.Width <= 0 || r.Height <= 0 {
		return
	}
	shape := cp.NewBox2(w.space.StaticBody, r.BB(), 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(groundFilter)
	w.space.AddShape(shape)
	w.platforms = append(w.platforms, r)
}

// Platforms returns every platform added so far.
func (w *World) Platforms() []common.Rect {
	if w == nil {
		return nil
	}
	return w.platforms
}

// Bodies returns every body added so far, disabled ones included.
func (w *World) Bodies() []*Body {
	if w == nil {
		return nil
	}
	return w.bodies
}

// Step advances the simulation.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// CastDown reports whether a downward segment from origin hits a platform.
func (w *World) CastDown(origin cp.Vector, maxDistance float64) bool {
	if w == nil || w.space == nil || maxDistance <= 0 {
		return false
	}
	end := origin.Add(cp.Vector{X: 0, Y: -maxDistance})
	info := w.space.SegmentQueryFirst(origin, end, 0, groundQuery)
	return info.Shape != nil
}

// Overlapping returns live bodies of layer whose box intersects box, in the
// order they were added.
func (w *World) Overlapping(box probe.OBB, layer component.Layer) []component.Hittable {
	if w == nil {
		return nil
	}
	var out []component.Hittable
	for _, b := range w.bodies {
		if b.disabled || b.owner == nil || b.owner.Layer() != layer {
			continue
		}
		if box.IntersectsBB(b.Rect().BB()) {
			out = append(out, b.owner)
		}
	}
	return out
}

func (w *World) touchesGround(bb cp.BB) bool {
	hit := false
	w.space.BBQuery(bb, groundQuery, func(shape *cp.Shape, data interface{}) {
		hit = true
	}, nil)
	return hit
}

func (w *World) setupHandlers() {
	if w == nil || w.handlersReady || w.space == nil {
		return
	}

	aggroHandler := w.space.NewCollisionHandler(collisionTypeAggro, collisionTypeActor)
	aggroHandler.UserData = w
	aggroHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		sensor, other := world.resolvePair(arb)
		if sensor == nil || other == nil || sensor == other || sensor.owner == nil || other.owner == nil {
			return true
		}
		world.log.Debug("aggro enter",
			zap.String("watcher", sensor.owner.ID()),
			zap.String("opponent", other.owner.ID()),
		)
		sensor.owner.OpponentEntered(other.owner)
		return true
	}
	aggroHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return
		}
		sensor, other := world.resolvePair(arb)
		if sensor == nil || other == nil || sensor == other || sensor.owner == nil || other.owner == nil {
			return
		}
		world.log.Debug("aggro leave",
			zap.String("watcher", sensor.owner.ID()),
			zap.String("opponent", other.owner.ID()),
		)
		sensor.owner.OpponentLeft(other.owner)
	}

	w.handlersReady = true
}

// resolvePair maps an aggro/actor arbiter to (sensor body, actor body).
func (w *World) resolvePair(arb *cp.Arbiter) (*Body, *Body) {
	a, b := arb.Shapes()
	if s, ok := w.sensorShapes[a]; ok {
		return s, w.actorShapes[b]
	}
	if s, ok := w.sensorShapes[b]; ok {
		return s, w.actorShapes[a]
	}
	return nil, nil
}

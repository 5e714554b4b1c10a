package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/CoolKrit/Ronin/common"
	"github.com/CoolKrit/Ronin/component"
)

// Owner is the actor a Body reports to.
type Owner interface {
	component.Hittable
	OpponentEntered(h component.Hittable)
	OpponentLeft(h component.Hittable)
}

// BodySpec describes an actor body. Sizes are full extents.
type BodySpec struct {
	Position cp.Vector
	Size     cp.Vector
	// Aggro is the size of the detection region centered on the body. Zero
	// means no region.
	Aggro cp.Vector
	// GroundCast is how far below the feet Grounded looks.
	GroundCast float64
}

// Body is one rotation-locked actor body.
type Body struct {
	world      *World
	body       *cp.Body
	shape      *cp.Shape
	sensor     *cp.Shape
	half       cp.Vector
	groundCast float64
	owner      Owner
	disabled   bool
}

// AddBody creates a dynamic body with a box collider and optional aggro
// sensor.
func (w *World) AddBody(spec BodySpec) *Body {
	if w == nil || w.space == nil {
		return nil
	}
	size := spec.Size
	if size.X <= 0 {
		size.X = 1
	}
	if size.Y <= 0 {
		size.Y = 1
	}
	cast := spec.GroundCast
	if cast <= 0 {
		cast = 0.1
	}

	cpBody := cp.NewBody(1, math.Inf(1))
	cpBody.SetPosition(spec.Position)
	shape := cp.NewBox(cpBody, size.X, size.Y, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeActor)
	shape.SetFilter(actorFilter)
	w.space.AddBody(cpBody)
	w.space.AddShape(shape)

	b := &Body{
		world:      w,
		body:       cpBody,
		shape:      shape,
		half:       size.Mult(0.5),
		groundCast: cast,
	}
	w.actorShapes[shape] = b

	if spec.Aggro.X > 0 && spec.Aggro.Y > 0 {
		sensor := cp.NewBox(cpBody, spec.Aggro.X, spec.Aggro.Y, 0)
		sensor.SetSensor(true)
		sensor.SetCollisionType(collisionTypeAggro)
		sensor.SetFilter(aggroFilter)
		w.space.AddShape(sensor)
		w.sensorShapes[sensor] = b
		b.sensor = sensor
	}

	w.bodies = append(w.bodies, b)
	return b
}

// Bind attaches the actor the body reports to.
func (b *Body) Bind(owner Owner) {
	if b != nil {
		b.owner = owner
	}
}

func (b *Body) Owner() Owner {
	if b == nil {
		return nil
	}
	return b.owner
}

func (b *Body) Position() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Position()
}

func (b *Body) Velocity() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Velocity()
}

func (b *Body) SetVelocity(v cp.Vector) {
	if b == nil || b.body == nil || b.disabled {
		return
	}
	b.body.SetVelocityVector(v)
}

// Grounded box-casts the collider's footprint GroundCast below its feet.
func (b *Body) Grounded() bool {
	if b == nil || b.disabled {
		return false
	}
	pos := b.Position()
	feet := pos.Y - b.half.Y
	bb := cp.BB{L: pos.X - b.half.X, B: feet - b.groundCast, R: pos.X + b.half.X, T: feet}
	return b.world.touchesGround(bb)
}

// Rect is the collider's current axis-aligned box.
func (b *Body) Rect() common.Rect {
	return common.RectFromCenter(b.Position(), b.half)
}

// HalfExtents is half the collider size.
func (b *Body) HalfExtents() cp.Vector {
	if b == nil {
		return cp.Vector{}
	}
	return b.half
}

// Disabled reports whether the body left the simulation.
func (b *Body) Disabled() bool {
	return b == nil || b.disabled
}

// Disable removes the body and its shapes from the space. Later calls do
// nothing.
func (b *Body) Disable() {
	if b == nil || b.disabled || b.world == nil {
		return
	}
	b.disabled = true
	space := b.world.space
	if b.sensor != nil {
		space.RemoveShape(b.sensor)
		delete(b.world.sensorShapes, b.sensor)
	}
	space.RemoveShape(b.shape)
	delete(b.world.actorShapes, b.shape)
	space.RemoveBody(b.body)
}

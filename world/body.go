package world

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/rigid/diag"
	"github.com/milk9111/rigid/layer"
	"github.com/milk9111/rigid/shape"
)

// BodyID identifies a body for the lifetime of the world. IDs are never
// reused.
type BodyID uint32

// Motion says whether a body is integrated.
type Motion uint8

const (
	MotionStatic Motion = iota
	MotionDynamic
)

// BodySettings describes a body at creation time. Shape and Layer are
// required; Mass below or equal zero defaults to 1 for dynamic bodies.
type BodySettings struct {
	Shape       shape.Shape
	Layer       layer.ObjectLayer
	Motion      Motion
	Position    cp.Vector
	Velocity    cp.Vector
	Mass        float64
	Restitution float64
	Friction    float64
}

// Body is one simulated rigid body. The object layer is assigned at
// creation and immutable for the body's lifetime. Hosts may mutate position
// and velocity between steps only.
type Body struct {
	id     BodyID
	shape  shape.Shape
	layer  layer.ObjectLayer
	motion Motion

	pos cp.Vector
	vel cp.Vector
	bb  cp.BB

	invMass     float64
	restitution float64
	friction    float64
}

func (b *Body) ID() BodyID               { return b.id }
func (b *Body) Shape() shape.Shape       { return b.shape }
func (b *Body) Layer() layer.ObjectLayer { return b.layer }
func (b *Body) Motion() Motion           { return b.motion }
func (b *Body) Position() cp.Vector      { return b.pos }
func (b *Body) Velocity() cp.Vector      { return b.vel }
func (b *Body) BB() cp.BB                { return b.bb }

// SetPosition teleports the body. Host-side mutation between steps only.
func (b *Body) SetPosition(pos cp.Vector) {
	b.pos = pos
	b.bb = b.shape.BB(pos)
}

// SetVelocity overrides the body's velocity. Host-side mutation between
// steps only.
func (b *Body) SetVelocity(vel cp.Vector) {
	diag.Assertf(b.motion == MotionDynamic, "body.Motion == MotionDynamic",
		"velocity set on static body %d", b.id)
	b.vel = vel
}

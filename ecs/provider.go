package ecs

import "github.com/jakecoffman/cp"

// Provider is the rigid-body engine the sandbox runs on. It owns the canonical
// set of live bodies; everything else re-reads it.
type Provider interface {
	// CreateBody builds a body that is not yet part of the live set.
	CreateBody(pos cp.Vector, params BodyParams) *Body
	// Add inserts bodies into the live set. Bodies already live are ignored.
	Add(bodies ...*Body)
	// Remove takes a body out of the live set. Unknown bodies are ignored.
	Remove(b *Body)
	// Bodies lists every live body, and only live bodies.
	Bodies() []*Body
	Body(e Entity) (*Body, bool)
	Len() int
	// ApplyForce accumulates a force at the body's centre until the next Step.
	ApplyForce(b *Body, force cp.Vector)
	Step(dt float64)
}

// BodyParams configures a body. A positive Radius makes a circle, otherwise
// Width and Height make a box.
type BodyParams struct {
	Radius      float64
	Width       float64
	Height      float64
	Density     float64
	Restitution float64
	Friction    float64
	Static      bool
}

// Body is a handle to one provider body.
type Body struct {
	id     Entity
	body   *cp.Body
	shape  *cp.Shape
	params BodyParams
	pos    cp.Vector
	mass   float64
	live   bool
}

func (b *Body) Entity() Entity {
	if b == nil {
		return 0
	}
	return b.id
}

func (b *Body) Position() cp.Vector {
	if b == nil {
		return cp.Vector{}
	}
	if b.params.Static || b.body == nil {
		return b.pos
	}
	return b.body.Position()
}

func (b *Body) Velocity() cp.Vector {
	if b == nil || b.params.Static || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Velocity()
}

func (b *Body) SetVelocity(v cp.Vector) {
	if b == nil || b.params.Static || b.body == nil {
		return
	}
	b.body.SetVelocityVector(v)
}

// Force returns the force accumulated since the last step.
func (b *Body) Force() cp.Vector {
	if b == nil || b.params.Static || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Force()
}

func (b *Body) Static() bool {
	return b != nil && b.params.Static
}

func (b *Body) Params() BodyParams {
	if b == nil {
		return BodyParams{}
	}
	return b.params
}

func (b *Body) Mass() float64 {
	if b == nil {
		return 0
	}
	return b.mass
}

// Live reports whether the body is currently in its provider's live set.
func (b *Body) Live() bool {
	return b != nil && b.live
}

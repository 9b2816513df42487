package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
)

// PhysicsConfig is applied once when the Chipmunk space is created.
type PhysicsConfig struct {
	Gravity    float64
	Iterations int
}

// PhysicsWorld is the Chipmunk-backed Provider. It keeps live bodies in
// insertion order so enumeration is stable between ticks.
type PhysicsWorld struct {
	space  *cp.Space
	nextID Entity
	live   []*Body
	byID   map[Entity]*Body
}

var _ Provider = (*PhysicsWorld)(nil)

func NewPhysicsWorld(cfg PhysicsConfig) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = uint(max(cfg.Iterations, 1))
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	return &PhysicsWorld{
		space: space,
		byID:  make(map[Entity]*Body),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *PhysicsWorld) CreateBody(pos cp.Vector, params BodyParams) *Body {
	if pw == nil || pw.space == nil {
		panic("physics world: create body before init")
	}

	pw.nextID++
	b := &Body{id: pw.nextID, params: params, pos: pos}

	if params.Static {
		if params.Radius > 0 {
			b.shape = cp.NewCircle(pw.space.StaticBody, params.Radius, pos)
		} else {
			bb := cp.BB{
				L: pos.X - params.Width/2,
				B: pos.Y - params.Height/2,
				R: pos.X + params.Width/2,
				T: pos.Y + params.Height/2,
			}
			b.shape = cp.NewBox2(pw.space.StaticBody, bb, 0)
		}
		b.body = pw.space.StaticBody
		b.mass = math.Inf(1)
	} else {
		var area, moment float64
		if params.Radius > 0 {
			area = math.Pi * params.Radius * params.Radius
			b.mass = params.Density * area
			moment = cp.MomentForCircle(b.mass, 0, params.Radius, cp.Vector{})
		} else {
			area = params.Width * params.Height
			b.mass = params.Density * area
			moment = cp.MomentForBox(b.mass, params.Width, params.Height)
		}
		if b.mass <= 0 {
			b.mass = 1
			moment = math.Max(moment, 1)
		}

		body := cp.NewBody(b.mass, moment)
		body.SetPosition(pos)
		body.SetAngle(0)
		body.SetAngularVelocity(0)
		body.UserData = b

		if params.Radius > 0 {
			b.shape = cp.NewCircle(body, params.Radius, cp.Vector{})
		} else {
			b.shape = cp.NewBox(body, params.Width, params.Height, 0)
		}
		b.body = body
	}

	b.shape.SetElasticity(params.Restitution)
	b.shape.SetFriction(params.Friction)
	return b
}

func (pw *PhysicsWorld) Add(bodies ...*Body) {
	if pw == nil || pw.space == nil {
		return
	}
	for _, b := range bodies {
		if b == nil || b.live {
			continue
		}
		if !b.params.Static {
			pw.space.AddBody(b.body)
		}
		pw.space.AddShape(b.shape)
		b.live = true
		pw.live = append(pw.live, b)
		pw.byID[b.id] = b
	}
}

func (pw *PhysicsWorld) Remove(b *Body) {
	if pw == nil || pw.space == nil || b == nil || !b.live {
		return
	}
	if _, ok := pw.byID[b.id]; !ok {
		return
	}
	pw.space.RemoveShape(b.shape)
	if !b.params.Static {
		pw.space.RemoveBody(b.body)
	}
	b.live = false
	delete(pw.byID, b.id)
	for i, other := range pw.live {
		if other == b {
			pw.live = append(pw.live[:i], pw.live[i+1:]...)
			break
		}
	}
}

func (pw *PhysicsWorld) Bodies() []*Body {
	if pw == nil {
		return nil
	}
	out := make([]*Body, len(pw.live))
	copy(out, pw.live)
	return out
}

func (pw *PhysicsWorld) Body(e Entity) (*Body, bool) {
	if pw == nil {
		return nil, false
	}
	b, ok := pw.byID[e]
	return b, ok
}

func (pw *PhysicsWorld) Len() int {
	if pw == nil {
		return 0
	}
	return len(pw.live)
}

func (pw *PhysicsWorld) ApplyForce(b *Body, force cp.Vector) {
	if b == nil || !b.live || b.params.Static || b.body == nil {
		return
	}
	b.body.ApplyForceAtWorldPoint(force, b.body.Position())
}

// Step advances the simulation by dt frames.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}

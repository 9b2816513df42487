package system

import (
	"github.com/milk9111/weatherbox/ecs"
)

// PhysicsSystem advances the provider one step and culls bodies that have
// left the play area. Culled bodies simply vanish from the live set; marker
// sync notices their absence on the same tick.
type PhysicsSystem struct {
	DT         float64
	Width      float64
	Height     float64
	CullMargin float64

	culled int
}

func NewPhysicsSystem(width, height, cullMargin float64) *PhysicsSystem {
	return &PhysicsSystem{
		DT:         1.0,
		Width:      width,
		Height:     height,
		CullMargin: cullMargin,
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || w.Physics() == nil {
		return
	}

	p := w.Physics()
	p.Step(ps.DT)

	ps.culled = 0
	if ps.CullMargin <= 0 {
		return
	}
	for _, b := range p.Bodies() {
		if b.Static() || !ps.outOfBounds(b) {
			continue
		}
		p.Remove(b)
		ps.culled++
	}
}

// Culled returns how many bodies the last update removed.
func (ps *PhysicsSystem) Culled() int {
	if ps == nil {
		return 0
	}
	return ps.culled
}

// Bodies above the viewport are kept: rain starts there.
func (ps *PhysicsSystem) outOfBounds(b *ecs.Body) bool {
	pos := b.Position()
	return pos.Y > ps.Height+ps.CullMargin ||
		pos.X < -ps.CullMargin ||
		pos.X > ps.Width+ps.CullMargin
}

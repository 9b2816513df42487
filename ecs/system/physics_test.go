package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/weatherbox/ecs"
	"github.com/milk9111/weatherbox/material"
)

func TestPhysicsSystemCulls(t *testing.T) {
	cases := []struct {
		name string
		x, y float64
		cull bool
	}{
		{"inside", 640, 360, false},
		{"above_viewport", 640, -2000, false},
		{"below_margin", 640, 720 + 500, true},
		{"left_of_margin", -500, 360, true},
		{"right_of_margin", 1280 + 500, 360, true},
		{"within_side_margin", -100, 360, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, 600)
			b := h.spawn(t, c.x, c.y, material.Rubber)
			h.markers.Track(h.w, b.Entity())

			ps := NewPhysicsSystem(1280, 720, 400)
			ps.Update(h.w)
			h.markers.Update(h.w)

			if got := h.w.IsAlive(b.Entity()); got == c.cull {
				t.Fatalf("expected alive=%v, got %v", !c.cull, got)
			}
			want := 0
			if c.cull {
				want = 1
			}
			if ps.Culled() != want {
				t.Fatalf("expected %d culled, got %d", want, ps.Culled())
			}
			if h.markers.Has(b.Entity()) == c.cull {
				t.Fatalf("marker state does not follow culling")
			}
		})
	}
}

func TestPhysicsSystemKeepsStaticBodies(t *testing.T) {
	w := ecs.NewWorld(ecs.NewPhysicsWorld(ecs.PhysicsConfig{Gravity: 0.28, Iterations: 5}))
	pw := w.Physics()
	far := pw.CreateBody(cp.Vector{X: 5000, Y: 5000}, ecs.BodyParams{Width: 10, Height: 10, Static: true})
	pw.Add(far)

	NewPhysicsSystem(1280, 720, 400).Update(w)
	if !w.IsAlive(far.Entity()) {
		t.Fatalf("static bodies are never culled")
	}
}

func TestPhysicsSystemAppliesGravity(t *testing.T) {
	w := ecs.NewWorld(ecs.NewPhysicsWorld(ecs.PhysicsConfig{Gravity: 0.28, Iterations: 5}))
	pw := w.Physics()
	b := pw.CreateBody(cp.Vector{X: 100, Y: 100}, ecs.BodyParams{Radius: 10, Density: 0.001})
	pw.Add(b)

	ps := NewPhysicsSystem(1280, 720, 400)
	for i := 0; i < 10; i++ {
		ps.Update(w)
	}
	if v := b.Velocity(); v.Y <= 0 {
		t.Fatalf("expected downward velocity, got %v", v)
	}
	if p := b.Position(); p.Y <= 100 {
		t.Fatalf("expected the body to fall, got %v", p)
	}
}

func TestCapacityGovernor(t *testing.T) {
	cases := []struct {
		name      string
		max       int
		bodies    int
		saturated bool
		headroom  int
	}{
		{"empty", 3, 0, false, 3},
		{"at_ceiling", 3, 3, false, 0},
		{"over", 3, 4, true, 0},
		{"unlimited", 0, 10, false, int(^uint(0) >> 1)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, c.max)
			for i := 0; i < c.bodies; i++ {
				h.spawn(t, float64(i*50), 0, material.Rubber)
			}
			g := CapacityGovernor{MaxBodies: c.max}
			if got := g.Saturated(h.w); got != c.saturated {
				t.Fatalf("expected saturated=%v, got %v", c.saturated, got)
			}
			if got := g.Headroom(h.w); got != c.headroom {
				t.Fatalf("expected headroom %d, got %d", c.headroom, got)
			}
		})
	}
}

package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/weatherbox/ecs"
	"github.com/milk9111/weatherbox/material"
)

func TestGlassShatterThreshold(t *testing.T) {
	cases := []struct {
		name    string
		speed   float64
		shatter bool
	}{
		{"resting", 0, false},
		{"below", 7.9, false},
		{"at_threshold", 8, false},
		{"above", 8.1, true},
		{"fast", 30, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, 600)
			glass := h.spawn(t, 500, 300, material.Glass)
			glass.SetVelocity(cp.Vector{X: c.speed})
			h.markers.Track(h.w, glass.Entity())

			h.effects.Update(h.w)

			if got := h.w.IsAlive(glass.Entity()); got == c.shatter {
				t.Fatalf("expected alive=%v, got %v", !c.shatter, got)
			}
			wantFrags := 0
			if c.shatter {
				wantFrags = 6
			}
			if got := h.count(material.Fragment); got != wantFrags {
				t.Fatalf("expected %d fragments, got %d", wantFrags, got)
			}
			h.checkMarkers(t)
		})
	}
}

func TestShatterPlacesFragmentsAroundParent(t *testing.T) {
	h := newHarness(t, 600)
	glass := h.spawn(t, 500, 300, material.Glass)
	glass.SetVelocity(cp.Vector{X: 6, Y: 9})
	h.markers.Track(h.w, glass.Entity())

	h.effects.Update(h.w)

	report := h.effects.LastReport()
	if report.Shattered != 1 || report.Fragments != 6 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(h.sink.destroyed) != 1 || h.sink.destroyed[0] != glass.Entity() {
		t.Fatalf("expected the parent marker to be destroyed, got %v", h.sink.destroyed)
	}
	if h.count(material.Glass) != 0 {
		t.Fatalf("parent glass still live")
	}
	for _, b := range h.w.Bodies() {
		p := b.Position()
		if math.Abs(p.X-500) > 6 || math.Abs(p.Y-300) > 6 {
			t.Fatalf("fragment at %v is outside the spread box", p)
		}
		if b.Params().Radius != 5 {
			t.Fatalf("expected fragment radius 5, got %v", b.Params().Radius)
		}
	}

	h.markers.Update(h.w)
	if h.markers.Len() != 6 {
		t.Fatalf("expected fragment markers after sync, got %d", h.markers.Len())
	}
	h.checkMarkers(t)
}

func TestFragmentsNeverShatter(t *testing.T) {
	h := newHarness(t, 600)
	glass := h.spawn(t, 500, 300, material.Glass)
	glass.SetVelocity(cp.Vector{X: 20})
	h.effects.Update(h.w)

	for _, b := range h.w.Bodies() {
		b.SetVelocity(cp.Vector{X: 40, Y: -40})
	}
	h.effects.Update(h.w)

	if got := h.count(material.Fragment); got != 6 {
		t.Fatalf("expected fragments to survive, got %d", got)
	}
	if h.effects.LastReport().Shattered != 0 {
		t.Fatalf("fragments must not shatter")
	}
}

func TestSaturationSuppressesShatter(t *testing.T) {
	cases := []struct {
		name      string
		maxBodies int
		shatter   bool
	}{
		{"saturated", 3, false},
		{"at_ceiling", 4, true},
		{"roomy", 600, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, c.maxBodies)
			for i := 0; i < 3; i++ {
				h.spawn(t, float64(100+i*60), 100, material.Rubber)
			}
			glass := h.spawn(t, 600, 300, material.Glass)
			glass.SetVelocity(cp.Vector{Y: 12})

			h.effects.Update(h.w)

			if got := h.effects.LastReport().Saturated; got == c.shatter {
				t.Fatalf("expected saturated=%v", !c.shatter)
			}
			if got := h.w.IsAlive(glass.Entity()); got == c.shatter {
				t.Fatalf("expected glass alive=%v, got %v", !c.shatter, got)
			}
		})
	}
}

func TestMetalAttractionIsSymmetric(t *testing.T) {
	h := newHarness(t, 600)
	a := h.spawn(t, 100, 100, material.Metal)
	b := h.spawn(t, 200, 100, material.Metal)

	h.effects.Update(h.w)

	fa, fb := a.Force(), b.Force()
	want := h.spec.Effects.MetalStrength / 100
	if !nearlyEqual(fa.X, want) || !nearlyEqual(fa.Y, 0) {
		t.Fatalf("expected force (%v,0) on a, got %v", want, fa)
	}
	if !nearlyEqual(fa.X, -fb.X) || !nearlyEqual(fa.Y, -fb.Y) {
		t.Fatalf("forces not opposite: %v vs %v", fa, fb)
	}
	if r := h.effects.LastReport(); r.Pairs != 1 || r.Attracted != 1 {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestMetalAttractionSkipsDistances(t *testing.T) {
	cases := []struct {
		name string
		dx   float64
	}{
		{"beyond_cutoff", 300},
		{"coincident", 0.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, 600)
			a := h.spawn(t, 100, 100, material.Metal)
			b := h.spawn(t, 100+c.dx, 100, material.Metal)

			h.effects.Update(h.w)

			if f := a.Force(); f.X != 0 || f.Y != 0 {
				t.Fatalf("expected no force on a, got %v", f)
			}
			if f := b.Force(); f.X != 0 || f.Y != 0 {
				t.Fatalf("expected no force on b, got %v", f)
			}
		})
	}
}

func TestMetalPairCap(t *testing.T) {
	h := newHarness(t, 600)
	for i := 0; i < 10; i++ {
		h.spawn(t, float64(100+i*20), 100, material.Metal)
	}

	h.effects.Update(h.w)

	r := h.effects.LastReport()
	if r.Pairs != h.spec.Effects.MetalMaxPairs || r.Attracted != h.spec.Effects.MetalMaxPairs {
		t.Fatalf("expected %d pairs, got %+v", h.spec.Effects.MetalMaxPairs, r)
	}
}

func TestIceSlidesNearGround(t *testing.T) {
	h := newHarness(t, 600)
	groundY := h.spec.Viewport.Height - h.spec.Ground.Height
	low := h.spawn(t, 300, groundY-5, material.Ice)
	high := h.spawn(t, 600, groundY-200, material.Ice)

	h.effects.Update(h.w)

	f := low.Force()
	if math.Abs(f.X) != h.spec.Effects.IceSlide || f.Y != 0 {
		t.Fatalf("expected horizontal slide of %v, got %v", h.spec.Effects.IceSlide, f)
	}
	if f := high.Force(); f.X != 0 || f.Y != 0 {
		t.Fatalf("ice far from the ground must not slide, got %v", f)
	}
	if h.effects.LastReport().Slid != 1 {
		t.Fatalf("expected one slide, got %+v", h.effects.LastReport())
	}
}

func TestFireLiftsNeighbours(t *testing.T) {
	h := newHarness(t, 600)
	fire := h.spawn(t, 300, 300, material.Fire)
	near := h.spawn(t, 400, 300, material.Rubber)
	far := h.spawn(t, 600, 300, material.Rubber)

	h.effects.Update(h.w)

	lift := h.spec.Effects.FireLift
	if f := near.Force(); f.X != 0 || !nearlyEqual(f.Y, -lift) {
		t.Fatalf("expected lift on near body, got %v", f)
	}
	if f := far.Force(); f.X != 0 || f.Y != 0 {
		t.Fatalf("far body must not be lifted, got %v", f)
	}
	if f := fire.Force(); f.X != 0 || f.Y != 0 {
		t.Fatalf("fire must not lift itself, got %v", f)
	}
}

func TestFireSeesFreshFragments(t *testing.T) {
	h := newHarness(t, 600)
	h.spawn(t, 300, 300, material.Fire)
	glass := h.spawn(t, 300, 330, material.Glass)
	glass.SetVelocity(cp.Vector{X: 15})

	h.effects.Update(h.w)

	r := h.effects.LastReport()
	if r.Fragments != 6 || r.Lifted != 6 {
		t.Fatalf("expected all fragments lifted, got %+v", r)
	}
}

func TestFireSkipsStaticBodies(t *testing.T) {
	h := newHarness(t, 600)
	p := h.w.Physics()
	ground := p.CreateBody(cp.Vector{X: 300, Y: 360}, ecs.BodyParams{Width: 400, Height: 40, Static: true})
	p.Add(ground)
	h.spawn(t, 300, 300, material.Fire)

	h.effects.Update(h.w)

	if r := h.effects.LastReport(); r.Lifted != 0 {
		t.Fatalf("static ground must not count as lifted, got %+v", r)
	}
	if f := ground.Force(); f.X != 0 || f.Y != 0 {
		t.Fatalf("static ground received force %v", f)
	}
}

func TestIceDirectionIsRolledPerBodyAndTick(t *testing.T) {
	h := newHarness(t, 600)
	groundY := h.spec.Viewport.Height - h.spec.Ground.Height

	var bodies []*ecs.Body
	for i := 0; i < 16; i++ {
		bodies = append(bodies, h.spawn(t, float64(60+i*70), groundY-5, material.Ice))
	}

	left, right := 0, 0
	firstLeft, firstRight := 0, 0
	for tick := 0; tick < 16; tick++ {
		h.effects.Update(h.w)
		for i, b := range bodies {
			switch f := b.Force().X; {
			case f < 0:
				left++
				if i == 0 {
					firstLeft++
				}
			case f > 0:
				right++
				if i == 0 {
					firstRight++
				}
			default:
				t.Fatalf("tick %d: body %d did not slide", tick, i)
			}
		}
		h.w.Physics().Step(1)
	}

	if left == 0 || right == 0 {
		t.Fatalf("expected both directions across bodies, got left=%d right=%d", left, right)
	}
	if firstLeft == 0 || firstRight == 0 {
		t.Fatalf("expected one body to change direction between ticks, got left=%d right=%d", firstLeft, firstRight)
	}
}

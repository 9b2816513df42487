package system

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/weatherbox/ecs"
	"github.com/milk9111/weatherbox/material"
)

func TestMarkerTrackCreatesAtSpawnPosition(t *testing.T) {
	h := newHarness(t, 600)
	b := h.spawn(t, 120, 80, material.Rubber)

	if !h.markers.Track(h.w, b.Entity()) {
		t.Fatalf("expected marker to be created")
	}
	if h.markers.Track(h.w, b.Entity()) {
		t.Fatalf("second track must not create a duplicate")
	}

	m, ok := h.sink.markers[b.Entity()]
	if !ok {
		t.Fatalf("sink has no marker")
	}
	if m.token != h.factory.Registry().Lookup(material.Rubber).Token {
		t.Fatalf("unexpected token %q", m.token)
	}
	if m.x != 120 || m.y != 80 {
		t.Fatalf("expected marker at spawn position, got (%v,%v)", m.x, m.y)
	}
	h.checkMarkers(t)
}

func TestMarkerTrackRejectsUntrackable(t *testing.T) {
	h := newHarness(t, 600)
	pw := h.w.Physics()

	ground := pw.CreateBody(cp.Vector{X: 640, Y: 700}, ecs.BodyParams{Width: 1280, Height: 40, Static: true})
	pw.Add(ground)
	if h.markers.Track(h.w, ground.Entity()) {
		t.Fatalf("untagged bodies get no marker")
	}

	gone := h.spawn(t, 10, 10, material.Ice)
	pw.Remove(gone)
	if h.markers.Track(h.w, gone.Entity()) {
		t.Fatalf("dead entities get no marker")
	}

	h.markers.Update(h.w)
	if h.markers.Len() != 0 {
		t.Fatalf("expected no markers, got %d", h.markers.Len())
	}
}

func TestMarkerSyncFollowsBodies(t *testing.T) {
	h := newHarness(t, 600)
	b := h.spawn(t, 100, 100, material.Metal)
	h.markers.Track(h.w, b.Entity())

	b.SetVelocity(cp.Vector{X: 3, Y: -2})
	h.w.Physics().Step(1)
	h.markers.Update(h.w)

	pos := b.Position()
	m := h.sink.markers[b.Entity()]
	if m == nil || m.x != pos.X || m.y != pos.Y {
		t.Fatalf("marker %v does not mirror body at %v", m, pos)
	}
}

func TestMarkerSyncDestroysStaleMarkers(t *testing.T) {
	h := newHarness(t, 600)
	a := h.spawn(t, 100, 100, material.Fire)
	b := h.spawn(t, 200, 100, material.Ice)
	h.markers.Track(h.w, a.Entity())
	h.markers.Track(h.w, b.Entity())

	h.w.Physics().Remove(a)
	h.markers.Update(h.w)

	if h.markers.Has(a.Entity()) {
		t.Fatalf("stale marker survived reconciliation")
	}
	if !h.markers.Has(b.Entity()) {
		t.Fatalf("live marker was destroyed")
	}
	h.checkMarkers(t)
}

func TestMarkerSyncAutoCreatesForUntrackedEntities(t *testing.T) {
	h := newHarness(t, 600)
	b := h.spawn(t, 100, 100, material.Custom)

	h.markers.Update(h.w)
	if !h.markers.Has(b.Entity()) {
		t.Fatalf("expected sync to create a marker for a live tagged entity")
	}
	h.markers.Update(h.w)
	if h.sink.created != 1 {
		t.Fatalf("expected exactly one creation, got %d", h.sink.created)
	}
}

func TestMarkerReleaseAndClear(t *testing.T) {
	h := newHarness(t, 600)
	var bodies []*ecs.Body
	for i := 0; i < 4; i++ {
		b := h.spawn(t, float64(i*50), 0, material.Rubber)
		h.markers.Track(h.w, b.Entity())
		bodies = append(bodies, b)
	}

	h.markers.Release(bodies[0].Entity())
	h.markers.Release(bodies[0].Entity())
	if h.markers.Len() != 3 || len(h.sink.destroyed) != 1 {
		t.Fatalf("expected one release, tracker=%d destroyed=%d", h.markers.Len(), len(h.sink.destroyed))
	}

	h.markers.Clear()
	h.markers.Clear()
	if h.markers.Len() != 0 || len(h.sink.markers) != 0 {
		t.Fatalf("clear left markers behind: tracker=%d sink=%d", h.markers.Len(), len(h.sink.markers))
	}
	if h.sink.unknownDeletes != 0 {
		t.Fatalf("clear destroyed unknown markers")
	}
}

func TestMarkersStaySubsetOfLiveSet(t *testing.T) {
	h := newHarness(t, 600)
	rng := rand.New(rand.NewSource(99))
	ids := h.factory.Registry().Spawnable()

	for round := 0; round < 300; round++ {
		switch op := rng.Intn(5); {
		case op <= 1:
			id := ids[rng.Intn(len(ids))]
			b := h.spawn(t, rng.Float64()*1280, rng.Float64()*720, id)
			if rng.Intn(2) == 0 {
				h.markers.Track(h.w, b.Entity())
			}
		case op == 2:
			bodies := h.w.Bodies()
			if len(bodies) > 0 {
				h.w.Physics().Remove(bodies[rng.Intn(len(bodies))])
			}
		case op == 3:
			bodies := h.w.Bodies()
			if len(bodies) > 0 {
				bodies[rng.Intn(len(bodies))].SetVelocity(cp.Vector{X: 20})
			}
			h.effects.Update(h.w)
		default:
			h.w.Physics().Step(1)
		}

		h.markers.Update(h.w)
		h.checkMarkers(t)
		if got, want := h.markers.Len(), h.w.Count(); got != want {
			t.Fatalf("round %d: expected one marker per live tagged entity, got %d of %d", round, got, want)
		}
	}
}

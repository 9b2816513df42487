package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/weatherbox/common"
	"github.com/milk9111/weatherbox/ecs"
	"github.com/milk9111/weatherbox/ecs/component"
	"github.com/milk9111/weatherbox/ecs/entity"
	"github.com/milk9111/weatherbox/material"
	"github.com/milk9111/weatherbox/prefabs"
)

type recordedMarker struct {
	token string
	x, y  float64
}

// recordingSink is an in-memory MarkerSink that counts contract violations.
type recordingSink struct {
	markers        map[ecs.Entity]*recordedMarker
	created        int
	destroyed      []ecs.Entity
	duplicates     int
	unknownUpdates int
	unknownDeletes int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{markers: make(map[ecs.Entity]*recordedMarker)}
}

func (s *recordingSink) Create(e ecs.Entity, token string) {
	if _, ok := s.markers[e]; ok {
		s.duplicates++
	}
	s.markers[e] = &recordedMarker{token: token}
	s.created++
}

func (s *recordingSink) UpdatePosition(e ecs.Entity, x, y float64) {
	m, ok := s.markers[e]
	if !ok {
		s.unknownUpdates++
		return
	}
	m.x, m.y = x, y
}

func (s *recordingSink) Destroy(e ecs.Entity) {
	if _, ok := s.markers[e]; !ok {
		s.unknownDeletes++
		return
	}
	delete(s.markers, e)
	s.destroyed = append(s.destroyed, e)
}

type harness struct {
	w       *ecs.World
	factory *entity.Factory
	sink    *recordingSink
	markers *MarkerSyncSystem
	effects *EffectsSystem
	spec    *prefabs.SandboxSpec
}

func newHarness(t *testing.T, maxBodies int) *harness {
	t.Helper()
	spec, err := prefabs.LoadSandboxSpec()
	if err != nil {
		t.Fatalf("load sandbox spec: %v", err)
	}
	reg, err := material.Load()
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	w := ecs.NewWorld(ecs.NewPhysicsWorld(ecs.PhysicsConfig{Iterations: 5}))
	factory := entity.NewFactory(w, reg)
	sink := newRecordingSink()
	markers := NewMarkerSyncSystem(sink)
	cfg := EffectsConfig{
		EffectsSpec: spec.Effects,
		GroundY:     spec.Viewport.Height - spec.Ground.Height,
	}
	effects := NewEffectsSystem(cfg, CapacityGovernor{MaxBodies: maxBodies}, factory, markers, common.NewRandom(7))

	return &harness{
		w:       w,
		factory: factory,
		sink:    sink,
		markers: markers,
		effects: effects,
		spec:    spec,
	}
}

func (h *harness) spawn(t *testing.T, x, y float64, id material.ID) *ecs.Body {
	t.Helper()
	e := h.factory.Spawn(cp.Vector{X: x, Y: y}, id)
	b, ok := h.w.Body(e)
	if !ok {
		t.Fatalf("spawned %s is not live", id)
	}
	return b
}

func (h *harness) count(id material.ID) int {
	n := 0
	ecs.ForEach(h.w, component.MaterialComponent.Kind(), func(_ ecs.Entity, _ *ecs.Body, m *component.Material) {
		if m.ID == id {
			n++
		}
	})
	return n
}

// checkMarkers asserts that every marker belongs to a live entity and that
// the sink agrees with the tracking map.
func (h *harness) checkMarkers(t *testing.T) {
	t.Helper()
	for e := range h.sink.markers {
		if !h.w.IsAlive(e) {
			t.Fatalf("marker %v outlived its entity", e)
		}
		if !h.markers.Has(e) {
			t.Fatalf("sink holds untracked marker %v", e)
		}
	}
	if len(h.sink.markers) != h.markers.Len() {
		t.Fatalf("sink has %d markers, tracker has %d", len(h.sink.markers), h.markers.Len())
	}
	if h.sink.duplicates != 0 || h.sink.unknownUpdates != 0 || h.sink.unknownDeletes != 0 {
		t.Fatalf("sink contract violated: dup=%d update=%d delete=%d",
			h.sink.duplicates, h.sink.unknownUpdates, h.sink.unknownDeletes)
	}
}

func nearlyEqual(a, b float64) bool {
	const eps = 1e-12
	d := a - b
	return d < eps && d > -eps
}

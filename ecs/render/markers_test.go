package render

import (
	"testing"

	"github.com/milk9111/weatherbox/ecs"
)

func TestMarkerLayerBookkeeping(t *testing.T) {
	l := NewMarkerLayer(18)

	l.Create(1, "■")
	l.Create(2, "○")
	l.UpdatePosition(1, 10, 20)
	l.UpdatePosition(9, 1, 1)

	if l.Len() != 2 {
		t.Fatalf("expected 2 markers, got %d", l.Len())
	}
	if m := l.markers[1]; m == nil || m.x != 10 || m.y != 20 {
		t.Fatalf("unexpected marker %+v", m)
	}
	if _, ok := l.markers[9]; ok {
		t.Fatalf("updating an unknown marker must not create it")
	}

	l.Destroy(1)
	l.Destroy(1)
	if l.Len() != 1 {
		t.Fatalf("expected 1 marker, got %d", l.Len())
	}
}

func TestMarkerLayerZeroValue(t *testing.T) {
	var l MarkerLayer
	l.Create(ecs.Entity(3), "·")
	if l.Len() != 1 {
		t.Fatalf("zero layer should accept markers")
	}
}

func TestFaceIsCached(t *testing.T) {
	if Face(14) != Face(14) {
		t.Fatalf("expected the same face for the same size")
	}
	if Face(14) == Face(20) {
		t.Fatalf("expected distinct faces per size")
	}
}

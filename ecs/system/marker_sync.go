package system

import (
	"github.com/milk9111/weatherbox/ecs"
	"github.com/milk9111/weatherbox/ecs/component"
)

// MarkerSink is the presentation layer's marker surface.
type MarkerSink interface {
	Create(e ecs.Entity, token string)
	UpdatePosition(e ecs.Entity, x, y float64)
	Destroy(e ecs.Entity)
}

// MarkerSyncSystem keeps exactly one marker per live tagged entity and mirrors
// body positions onto them. Markers whose entity has left the live set are
// destroyed on the first pass that notices.
type MarkerSyncSystem struct {
	sink    MarkerSink
	tracked map[ecs.Entity]string
}

func NewMarkerSyncSystem(sink MarkerSink) *MarkerSyncSystem {
	return &MarkerSyncSystem{
		sink:    sink,
		tracked: make(map[ecs.Entity]string),
	}
}

// Track creates the marker for a freshly spawned entity right away, at the
// body's current position. It returns false if e is not live, is untagged or
// already has a marker.
func (s *MarkerSyncSystem) Track(w *ecs.World, e ecs.Entity) bool {
	if s == nil || s.sink == nil {
		return false
	}
	if _, ok := s.tracked[e]; ok {
		return false
	}
	body, ok := w.Body(e)
	if !ok {
		return false
	}
	tag, ok := ecs.Get(w, e, component.MaterialComponent.Kind())
	if !ok {
		return false
	}
	s.create(body, tag.Token)
	return true
}

// Release destroys the marker of e, if any.
func (s *MarkerSyncSystem) Release(e ecs.Entity) {
	if s == nil {
		return
	}
	if _, ok := s.tracked[e]; !ok {
		return
	}
	delete(s.tracked, e)
	if s.sink != nil {
		s.sink.Destroy(e)
	}
}

// Clear destroys every marker and empties the tracking map.
func (s *MarkerSyncSystem) Clear() {
	if s == nil {
		return
	}
	for e := range s.tracked {
		if s.sink != nil {
			s.sink.Destroy(e)
		}
	}
	clear(s.tracked)
}

// Len returns the number of tracked markers.
func (s *MarkerSyncSystem) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tracked)
}

func (s *MarkerSyncSystem) Has(e ecs.Entity) bool {
	if s == nil {
		return false
	}
	_, ok := s.tracked[e]
	return ok
}

func (s *MarkerSyncSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.sink == nil {
		return
	}

	bodies := w.Bodies()
	alive := make(map[ecs.Entity]struct{}, len(bodies))
	for _, b := range bodies {
		e := b.Entity()
		alive[e] = struct{}{}

		if _, ok := s.tracked[e]; ok {
			pos := b.Position()
			s.sink.UpdatePosition(e, pos.X, pos.Y)
			continue
		}
		if tag, ok := ecs.Get(w, e, component.MaterialComponent.Kind()); ok {
			s.create(b, tag.Token)
		}
	}

	for e := range s.tracked {
		if _, ok := alive[e]; ok {
			continue
		}
		s.sink.Destroy(e)
		delete(s.tracked, e)
	}
}

func (s *MarkerSyncSystem) create(b *ecs.Body, token string) {
	e := b.Entity()
	s.tracked[e] = token
	s.sink.Create(e, token)
	pos := b.Position()
	s.sink.UpdatePosition(e, pos.X, pos.Y)
}

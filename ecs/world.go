package ecs

import "github.com/milk9111/weatherbox/ecs/component"

// World pairs the provider's live body set with the side tables the sandbox
// keeps about those bodies. The provider decides what is alive; the world only
// remembers metadata keyed by Entity.
type World struct {
	physics Provider
	stores  map[component.ComponentID]store
}

// NewWorld creates an empty side-table world over a provider.
func NewWorld(p Provider) *World {
	return &World{
		physics: p,
		stores:  make(map[component.ComponentID]store),
	}
}

// Physics returns the provider this world reads from.
func (w *World) Physics() Provider {
	if w == nil {
		return nil
	}
	return w.physics
}

// Bodies re-reads the live body set from the provider.
func (w *World) Bodies() []*Body {
	if w == nil || w.physics == nil {
		return nil
	}
	return w.physics.Bodies()
}

// Count returns the number of live bodies.
func (w *World) Count() int {
	if w == nil || w.physics == nil {
		return 0
	}
	return w.physics.Len()
}

// IsAlive reports whether the provider still holds e.
func (w *World) IsAlive(e Entity) bool {
	if w == nil || w.physics == nil {
		return false
	}
	_, ok := w.physics.Body(e)
	return ok
}

// Body returns the live body for e.
func (w *World) Body(e Entity) (*Body, bool) {
	if w == nil || w.physics == nil {
		return nil, false
	}
	return w.physics.Body(e)
}

// Query returns the live entities that carry every given component kind,
// in provider order.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil {
		return nil
	}
	var out []Entity
	for _, b := range w.Bodies() {
		if w.hasAll(b.Entity(), kinds) {
			out = append(out, b.Entity())
		}
	}
	return out
}

// Prune drops side-table rows for entities the provider no longer holds and
// returns how many entities were forgotten.
func (w *World) Prune() int {
	if w == nil {
		return 0
	}
	dead := make(map[Entity]struct{})
	for _, s := range w.stores {
		for _, e := range s.entities() {
			if !w.IsAlive(e) {
				dead[e] = struct{}{}
			}
		}
	}
	for e := range dead {
		w.forget(e)
	}
	return len(dead)
}

// Forget drops every side-table row for e.
func (w *World) Forget(e Entity) {
	if w == nil {
		return
	}
	w.forget(e)
}

func (w *World) forget(e Entity) {
	for _, s := range w.stores {
		s.remove(e)
	}
}

func (w *World) hasAll(e Entity, kinds []component.Kind) bool {
	for _, kind := range kinds {
		if kind == nil {
			return false
		}
		s, ok := w.stores[kind.ID()]
		if !ok || !s.has(e) {
			return false
		}
	}
	return true
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *typedStore[T] {
	if w.stores == nil {
		if !create {
			return nil
		}
		w.stores = make(map[component.ComponentID]store)
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		typed := &typedStore[T]{}
		w.stores[kind.ID()] = typed
		return typed
	}
	typed, ok := s.(*typedStore[T])
	if !ok {
		return nil
	}
	return typed
}

package ecs

import "github.com/milk9111/weatherbox/ecs/component"

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !e.Valid() {
		return component.ErrInvalidEntity
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	s := storeFor(w, kind, true)
	if s == nil {
		return component.ErrInvalidComponentKind
	}
	s.set.Set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	v := s.set.Get(e)
	return v, v != nil
}

// ForEach visits live bodies carrying kind, in provider order.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(e Entity, b *Body, v *T)) {
	if w == nil || fn == nil {
		return
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return
	}
	for _, b := range w.Bodies() {
		if v := s.set.Get(b.Entity()); v != nil {
			fn(b.Entity(), b, v)
		}
	}
}

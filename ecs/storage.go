package ecs

// store is the type-erased view the world uses to prune side tables.
type store interface {
	has(e Entity) bool
	remove(e Entity) bool
	entities() []Entity
	len() int
}

type typedStore[T any] struct {
	set SparseSet[T]
}

func (s *typedStore[T]) has(e Entity) bool {
	return s.set.Has(e)
}

func (s *typedStore[T]) remove(e Entity) bool {
	return s.set.Remove(e)
}

func (s *typedStore[T]) entities() []Entity {
	return s.set.Entities()
}

func (s *typedStore[T]) len() int {
	return s.set.Len()
}

package ecs

// SparseSet is a cache-friendly storage for components keyed by Entity.
type SparseSet[T any] struct {
	denseEntities []Entity
	denseValues   []*T
	sparse        []int
}

// Has returns true if the entity exists in the set.
func (s *SparseSet[T]) Has(e Entity) bool {
	if s == nil || !e.Valid() || int(e)-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[e-1]
	return idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx] == e
}

// Get returns the component for e, or nil.
func (s *SparseSet[T]) Get(e Entity) *T {
	if !s.Has(e) {
		return nil
	}
	return s.denseValues[s.sparse[e-1]]
}

// Set inserts or updates a component for e.
func (s *SparseSet[T]) Set(e Entity, v *T) {
	if s == nil || !e.Valid() {
		return
	}
	for int(e)-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.Has(e) {
		s.denseValues[s.sparse[e-1]] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[e-1] = len(s.denseEntities) - 1
}

// Remove deletes the component for e if present.
func (s *SparseSet[T]) Remove(e Entity) bool {
	if s == nil || !s.Has(e) {
		return false
	}
	idx := s.sparse[e-1]
	last := len(s.denseEntities) - 1
	lastEntity := s.denseEntities[last]

	s.denseEntities[idx] = s.denseEntities[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastEntity-1] = idx

	s.denseEntities = s.denseEntities[:last]
	s.denseValues[last] = nil
	s.denseValues = s.denseValues[:last]
	s.sparse[e-1] = -1
	return true
}

// Entities returns the dense entity list.
func (s *SparseSet[T]) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.denseEntities
}

// Len returns the number of stored components.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

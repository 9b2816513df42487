package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrInvalidEntity        = errors.New("ecs: invalid entity")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// Kind is the type-erased form of ComponentKind, used by queries.
type Kind interface {
	ID() ComponentID
	Name() string
}

// ComponentKind identifies one side table keyed by body id. The zero value
// is invalid and rejected by the world.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// Name falls back to the Go type when the kind was registered without one.
func (k ComponentKind[T]) Name() string {
	if k.name != "" {
		return k.name
	}
	var zero T
	return fmt.Sprintf("%T", zero)
}

func (k ComponentKind[T]) String() string {
	return fmt.Sprintf("%s#%d", k.Name(), k.id)
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

// NewComponent registers a new side table. Names only show up in errors
// and debug output.
func NewComponent[T any](name ...string) ComponentHandle[T] {
	k := ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
	if len(name) > 0 {
		k.name = name[0]
	}
	return ComponentHandle[T]{kind: k}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

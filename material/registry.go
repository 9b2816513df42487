// Package material holds the fixed physical and visual profile of every ball
// type the sandbox can create.
package material

import (
	"fmt"
	"image/color"
	"slices"
	"sync"

	"github.com/milk9111/weatherbox/prefabs"
)

// ID names a material.
type ID string

const (
	Fire     ID = "fire"
	Ice      ID = "ice"
	Glass    ID = "glass"
	Rubber   ID = "rubber"
	Metal    ID = "metal"
	Custom   ID = "custom"
	Fragment ID = "glass_frag"
)

// spawnOrder is the order used by Spawnable and by random material picks.
var spawnOrder = []ID{Fire, Ice, Glass, Rubber, Metal, Custom}

// Definition is the immutable profile of one material.
type Definition struct {
	ID          ID
	Radius      float64
	Restitution float64
	Friction    float64
	Density     float64
	Token       string
	Fill        color.Color
	Stroke      color.Color
	LineWidth   float64
	Spawnable   bool
}

// Registry maps material ids to definitions. Lookups are safe while a reload
// swaps the table.
type Registry struct {
	mu   sync.RWMutex
	defs map[ID]Definition
}

// Load builds a registry from materials.yaml.
func Load() (*Registry, error) {
	spec, err := prefabs.LoadMaterialsSpec()
	if err != nil {
		return nil, err
	}
	return FromSpec(spec)
}

// FromSpec builds a registry from an already decoded material table.
func FromSpec(spec *prefabs.MaterialsSpec) (*Registry, error) {
	defs, err := buildDefinitions(spec)
	if err != nil {
		return nil, err
	}
	return &Registry{defs: defs}, nil
}

// Reload re-reads materials.yaml. On error the current table is kept.
func (r *Registry) Reload() error {
	spec, err := prefabs.LoadMaterialsSpec()
	if err != nil {
		return err
	}
	defs, err := buildDefinitions(spec)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.defs = defs
	r.mu.Unlock()
	return nil
}

// Lookup returns the definition for id. Unknown ids are a programming error.
func (r *Registry) Lookup(id ID) Definition {
	def, ok := r.Find(id)
	if !ok {
		panic(fmt.Sprintf("material: unknown material %q", id))
	}
	return def
}

func (r *Registry) Find(id ID) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	return def, ok
}

// IsSpawnable reports whether users and weather may create id directly.
func (r *Registry) IsSpawnable(id ID) bool {
	def, ok := r.Find(id)
	return ok && def.Spawnable
}

// Spawnable returns the user-spawnable ids in a stable order.
func (r *Registry) Spawnable() []ID {
	out := make([]ID, 0, len(spawnOrder))
	for _, id := range spawnOrder {
		if r.IsSpawnable(id) {
			out = append(out, id)
		}
	}
	return out
}

// IDs returns every known id, spawnable ones first, then the rest sorted.
func (r *Registry) IDs() []ID {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ID, 0, len(r.defs))
	seen := make(map[ID]struct{}, len(r.defs))
	for _, id := range spawnOrder {
		if _, ok := r.defs[id]; ok {
			out = append(out, id)
			seen[id] = struct{}{}
		}
	}
	rest := make([]ID, 0, len(r.defs)-len(out))
	for id := range r.defs {
		if _, ok := seen[id]; !ok {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}

func buildDefinitions(spec *prefabs.MaterialsSpec) (map[ID]Definition, error) {
	if spec == nil {
		return nil, fmt.Errorf("material: nil spec")
	}
	defs := make(map[ID]Definition, len(spec.Materials))
	for _, m := range spec.Materials {
		id := ID(m.ID)
		if _, dup := defs[id]; dup {
			return nil, fmt.Errorf("material: duplicate material %q", id)
		}
		if m.Radius <= 0 || m.Density <= 0 {
			return nil, fmt.Errorf("material: %q needs positive radius and density", id)
		}
		def := Definition{
			ID:          id,
			Radius:      m.Radius,
			Restitution: m.Restitution,
			Friction:    m.Friction,
			Density:     m.Density,
			Token:       m.Token,
			LineWidth:   m.LineWidth,
			Spawnable:   m.Spawnable,
		}
		if m.Fill != nil {
			def.Fill = m.Fill.Color
		}
		if m.Stroke != nil {
			def.Stroke = m.Stroke.Color
		}
		defs[id] = def
	}

	for _, id := range spawnOrder {
		def, ok := defs[id]
		if !ok {
			return nil, fmt.Errorf("material: missing material %q", id)
		}
		if !def.Spawnable {
			return nil, fmt.Errorf("material: %q must be spawnable", id)
		}
	}
	frag, ok := defs[Fragment]
	if !ok {
		return nil, fmt.Errorf("material: missing material %q", Fragment)
	}
	if frag.Spawnable {
		return nil, fmt.Errorf("material: %q cannot be spawnable", Fragment)
	}
	return defs, nil
}

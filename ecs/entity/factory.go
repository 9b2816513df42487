package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/weatherbox/ecs"
	"github.com/milk9111/weatherbox/ecs/component"
	"github.com/milk9111/weatherbox/material"
)

// Factory turns material ids into tagged provider bodies.
type Factory struct {
	world    *ecs.World
	registry *material.Registry
	clock    func() uint64
}

func NewFactory(w *ecs.World, reg *material.Registry) *Factory {
	return &Factory{world: w, registry: reg}
}

// SetClock sets the tick source recorded on spawned entities.
func (f *Factory) SetClock(clock func() uint64) {
	if f == nil {
		return
	}
	f.clock = clock
}

// Registry returns the material table the factory builds from.
func (f *Factory) Registry() *material.Registry {
	if f == nil {
		return nil
	}
	return f.registry
}

// Spawn creates a user-spawnable material at pos and inserts it into the
// live world. Unknown or synthetic materials panic.
func (f *Factory) Spawn(pos cp.Vector, id material.ID) ecs.Entity {
	return f.SpawnFrom(pos, id, component.SpawnUser)
}

// SpawnFrom is Spawn with an explicit origin.
func (f *Factory) SpawnFrom(pos cp.Vector, id material.ID, source component.SpawnSource) ecs.Entity {
	f.mustBeReady()
	def, ok := f.registry.Find(id)
	if !ok {
		panic(fmt.Sprintf("entity factory: unknown material %q", id))
	}
	if !def.Spawnable {
		panic(fmt.Sprintf("entity factory: material %q is not spawnable", id))
	}

	body := f.build(pos, def, source)
	f.world.Physics().Add(body)
	return body.Entity()
}

// Fragment builds a glass fragment at pos. The body is tagged but not yet
// live; callers add fragments to the provider in one batch.
func (f *Factory) Fragment(pos cp.Vector) *ecs.Body {
	f.mustBeReady()
	return f.build(pos, f.registry.Lookup(material.Fragment), component.SpawnFragment)
}

func (f *Factory) build(pos cp.Vector, def material.Definition, source component.SpawnSource) *ecs.Body {
	body := f.world.Physics().CreateBody(pos, Params(def))
	e := body.Entity()

	if err := ecs.Add(f.world, e, component.MaterialComponent.Kind(), &component.Material{ID: def.ID, Token: def.Token}); err != nil {
		panic("entity factory: tag material: " + err.Error())
	}
	spawn := &component.Spawn{Source: source}
	if f.clock != nil {
		spawn.Tick = f.clock()
	}
	if err := ecs.Add(f.world, e, component.SpawnComponent.Kind(), spawn); err != nil {
		panic("entity factory: tag spawn: " + err.Error())
	}
	return body
}

func (f *Factory) mustBeReady() {
	if f == nil || f.world == nil || f.world.Physics() == nil || f.registry == nil {
		panic("entity factory: spawn before the simulation is initialized")
	}
}

// Params converts a material definition into provider body parameters.
func Params(def material.Definition) ecs.BodyParams {
	return ecs.BodyParams{
		Radius:      def.Radius,
		Density:     def.Density,
		Restitution: def.Restitution,
		Friction:    def.Friction,
	}
}

package weather

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/weatherbox/common"
	"github.com/milk9111/weatherbox/ecs"
	"github.com/milk9111/weatherbox/ecs/component"
	"github.com/milk9111/weatherbox/ecs/system"
	"github.com/milk9111/weatherbox/material"
	"github.com/milk9111/weatherbox/prefabs"
)

// Spawner creates live, tagged bodies. *entity.Factory satisfies it.
type Spawner interface {
	SpawnFrom(pos cp.Vector, id material.ID, source component.SpawnSource) ecs.Entity
}

// Config is the weather tuning plus the viewport the events cover.
type Config struct {
	prefabs.WeatherSpec
	Width  float64
	Height float64
}

// Dispatcher executes weather events. It keeps no per-event state; the
// pending event lives in a Mailbox.
type Dispatcher struct {
	cfg      Config
	world    *ecs.World
	spawner  Spawner
	registry *material.Registry
	governor system.CapacityGovernor
	rng      common.Random
	scripts  *ScriptLibrary
}

func NewDispatcher(cfg Config, w *ecs.World, spawner Spawner, reg *material.Registry, governor system.CapacityGovernor, rng common.Random) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		world:    w,
		spawner:  spawner,
		registry: reg,
		governor: governor,
		rng:      rng,
	}
}

// SetScripts enables scripted presets.
func (d *Dispatcher) SetScripts(lib *ScriptLibrary) {
	if d == nil {
		return
	}
	d.scripts = lib
}

// Scripts returns the preset library, which may be nil.
func (d *Dispatcher) Scripts() *ScriptLibrary {
	if d == nil {
		return nil
	}
	return d.scripts
}

// Kinds lists every kind Trigger understands, built-ins first.
func (d *Dispatcher) Kinds() []Kind {
	kinds := Builtin()
	if d == nil || d.scripts == nil {
		return kinds
	}
	for _, name := range d.scripts.Names() {
		k := Kind(name)
		if !k.builtin() {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Trigger runs one event and returns how many bodies it spawned or pushed.
// Unknown kinds are ignored.
func (d *Dispatcher) Trigger(kind Kind) int {
	if d == nil || d.world == nil {
		return 0
	}

	switch kind {
	case None:
		return 0
	case FireRain:
		return d.rain(kind, material.Fire, d.cfg.FireRain.Count)
	case WaterRain:
		return d.rain(kind, material.Ice, d.cfg.WaterRain.Count)
	case RainbowSky:
		return d.rainbow()
	case Storm:
		return d.storm()
	}

	if d.scripts != nil && d.scripts.Has(string(kind)) {
		n, err := d.scripts.Run(string(kind), d)
		if err != nil {
			log.Printf("Weather: script %s: %v", kind, err)
		}
		return n
	}
	return 0
}

// rain drops count bodies of one material in the band above the viewport.
func (d *Dispatcher) rain(kind Kind, id material.ID, count int) int {
	d.warnCapacity(kind, count)
	for i := 0; i < count; i++ {
		pos := cp.Vector{
			X: common.Between(d.rng, 0, d.cfg.Width),
			Y: common.Between(d.rng, d.cfg.BandTop, d.cfg.BandBottom),
		}
		d.spawner.SpawnFrom(pos, id, component.SpawnWeather)
	}
	return count
}

// rainbow places random spawnable materials across the upper half of the view.
func (d *Dispatcher) rainbow() int {
	ids := d.registry.Spawnable()
	if len(ids) == 0 {
		return 0
	}
	count := d.cfg.RainbowSky.Count
	d.warnCapacity(RainbowSky, count)
	for i := 0; i < count; i++ {
		pos := cp.Vector{
			X: common.Between(d.rng, 0, d.cfg.Width),
			Y: common.Between(d.rng, 0, d.cfg.Height/2),
		}
		d.spawner.SpawnFrom(pos, ids[d.rng.Intn(len(ids))], component.SpawnWeather)
	}
	return count
}

// storm pushes every live body the same way. The direction is rolled once.
func (d *Dispatcher) storm() int {
	dir := common.Direction(d.rng)
	return d.pushAll(cp.Vector{X: dir * d.cfg.StormPush, Y: -d.cfg.StormLift})
}

func (d *Dispatcher) pushAll(force cp.Vector) int {
	p := d.world.Physics()
	if p == nil {
		return 0
	}
	pushed := 0
	for _, b := range p.Bodies() {
		if b.Static() {
			continue
		}
		p.ApplyForce(b, force)
		pushed++
	}
	return pushed
}

// warnCapacity logs when a spawning event will overrun the ceiling. Weather
// never shrinks its count; the effects engine degrades instead.
func (d *Dispatcher) warnCapacity(kind Kind, count int) bool {
	room := d.governor.Headroom(d.world)
	if count <= room {
		return false
	}
	log.Printf("Weather: %s spawns %d with room for %d (%d live, ceiling %d)",
		kind, count, room, d.world.Count(), d.governor.MaxBodies)
	return true
}

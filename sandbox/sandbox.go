// Package sandbox wires the physics provider, material rules, weather and
// marker sync into one tick loop.
package sandbox

import (
	"errors"
	"log"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/weatherbox/common"
	"github.com/milk9111/weatherbox/ecs"
	"github.com/milk9111/weatherbox/ecs/component"
	"github.com/milk9111/weatherbox/ecs/entity"
	"github.com/milk9111/weatherbox/ecs/system"
	"github.com/milk9111/weatherbox/material"
	"github.com/milk9111/weatherbox/prefabs"
	"github.com/milk9111/weatherbox/weather"
)

type options struct {
	seed      int64
	scripts   *weather.ScriptLibrary
	noScripts bool
}

type Option func(*options)

// WithSeed seeds the one random source every rule draws from. Zero picks a
// seed from the clock; Snapshot reports the seed in use.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithScripts replaces the default preset library.
func WithScripts(lib *weather.ScriptLibrary) Option {
	return func(o *options) { o.scripts = lib }
}

// WithoutScripts disables scripted weather presets.
func WithoutScripts() Option {
	return func(o *options) { o.noScripts = true }
}

// Stats is a snapshot of the sandbox after the last tick.
type Stats struct {
	Tick      uint64
	Live      int
	Markers   int
	Saturated bool
	Culled    int
	Effects   system.EffectsReport
}

type Sandbox struct {
	spec     *prefabs.SandboxSpec
	registry *material.Registry

	physics *ecs.PhysicsWorld
	world   *ecs.World
	ground  *ecs.Body
	factory *entity.Factory

	physicsSystem *system.PhysicsSystem
	effects       *system.EffectsSystem
	markers       *system.MarkerSyncSystem
	scheduler     *ecs.Scheduler
	governor      system.CapacityGovernor

	dispatcher *weather.Dispatcher
	mailbox    weather.Mailbox

	seed     int64
	tick     uint64
	stopped  bool
	tornDown bool
}

// New builds a sandbox: provider with gravity and ground, side tables,
// factory, systems and the weather dispatcher.
func New(spec *prefabs.SandboxSpec, reg *material.Registry, sink system.MarkerSink, opts ...Option) (*Sandbox, error) {
	if spec == nil {
		return nil, errors.New("sandbox: nil spec")
	}
	if reg == nil {
		return nil, errors.New("sandbox: nil material registry")
	}
	if spec.Viewport.Width <= 0 || spec.Viewport.Height <= 0 {
		return nil, errors.New("sandbox: viewport must be positive")
	}

	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := common.NewRandom(seed)

	s := &Sandbox{
		spec:     spec,
		registry: reg,
		seed:     seed,
		governor: system.CapacityGovernor{MaxBodies: spec.MaxBodies},
	}

	s.physics = ecs.NewPhysicsWorld(ecs.PhysicsConfig{
		Gravity:    spec.Physics.Gravity,
		Iterations: spec.Physics.Iterations,
	})
	s.world = ecs.NewWorld(s.physics)
	s.ground = s.addGround()

	s.factory = entity.NewFactory(s.world, reg)
	s.factory.SetClock(func() uint64 { return s.tick })

	s.markers = system.NewMarkerSyncSystem(sink)
	s.physicsSystem = system.NewPhysicsSystem(spec.Viewport.Width, spec.Viewport.Height, spec.Physics.CullMargin)
	s.effects = system.NewEffectsSystem(system.EffectsConfig{
		EffectsSpec: spec.Effects,
		GroundY:     s.GroundY(),
	}, s.governor, s.factory, s.markers, rng)

	// Order matters: effects read post-step velocities, markers mirror the
	// final positions.
	s.scheduler = ecs.NewScheduler(s.physicsSystem, s.effects, s.markers)

	s.dispatcher = weather.NewDispatcher(weather.Config{
		WeatherSpec: spec.Weather,
		Width:       spec.Viewport.Width,
		Height:      spec.Viewport.Height,
	}, s.world, s, reg, s.governor, rng)
	if !o.noScripts {
		lib := o.scripts
		if lib == nil {
			lib = weather.NewScriptLibrary()
		}
		s.dispatcher.SetScripts(lib)
	}

	return s, nil
}

func (s *Sandbox) addGround() *ecs.Body {
	g := s.spec.Ground
	vp := s.spec.Viewport
	if g.Height <= 0 {
		return nil
	}
	ground := s.physics.CreateBody(cp.Vector{X: vp.Width / 2, Y: vp.Height - g.Height/2}, ecs.BodyParams{
		Width:       vp.Width,
		Height:      g.Height,
		Friction:    g.Friction,
		Restitution: g.Elasticity,
		Static:      true,
	})
	s.physics.Add(ground)
	return ground
}

// Spawn creates a user ball and its marker at once. It returns 0 once the
// sandbox has stopped.
func (s *Sandbox) Spawn(pos cp.Vector, id material.ID) ecs.Entity {
	return s.SpawnFrom(pos, id, component.SpawnUser)
}

// SpawnFrom is Spawn with an explicit origin. The weather dispatcher spawns
// through it. Spawning on a nil sandbox panics.
func (s *Sandbox) SpawnFrom(pos cp.Vector, id material.ID, source component.SpawnSource) ecs.Entity {
	if s == nil {
		panic("sandbox: spawn before init")
	}
	if s.stopped {
		return 0
	}
	e := s.factory.SpawnFrom(pos, id, source)
	s.markers.Track(s.world, e)
	return e
}

// Post queues a weather event for the next tick. A later post replaces an
// earlier one.
func (s *Sandbox) Post(kind weather.Kind) {
	if s == nil || s.stopped {
		return
	}
	s.mailbox.Post(kind)
}

// Trigger runs a weather event right away.
func (s *Sandbox) Trigger(kind weather.Kind) int {
	if s == nil || s.stopped {
		return 0
	}
	return s.dispatcher.Trigger(kind)
}

// Tick consumes the pending weather event, then steps physics, applies the
// material rules and reconciles markers.
func (s *Sandbox) Tick() {
	if s == nil || s.stopped {
		return
	}
	s.tick++

	if kind := s.mailbox.Take(); kind != weather.None {
		s.dispatcher.Trigger(kind)
	}
	s.scheduler.Update(s.world)
	s.world.Prune()
}

// Stop halts ticking. Markers stay where they are.
func (s *Sandbox) Stop() {
	if s == nil {
		return
	}
	s.stopped = true
}

// Stopped reports whether ticks are ignored.
func (s *Sandbox) Stopped() bool {
	return s == nil || s.stopped
}

// Teardown stops ticking, destroys every marker and then runs detach, which
// should remove input listeners. Later calls do nothing.
func (s *Sandbox) Teardown(detach func()) {
	if s == nil || s.tornDown {
		return
	}
	s.tornDown = true
	s.Stop()
	s.markers.Clear()
	if detach != nil {
		detach()
	}
	log.Printf("Sandbox: torn down after %d ticks with %d live bodies", s.tick, s.world.Count())
}

func (s *Sandbox) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		Tick:      s.tick,
		Live:      s.world.Count(),
		Markers:   s.markers.Len(),
		Saturated: s.governor.Saturated(s.world),
		Culled:    s.physicsSystem.Culled(),
		Effects:   s.effects.LastReport(),
	}
}

// GroundY is the top edge of the ground.
func (s *Sandbox) GroundY() float64 {
	return s.spec.Viewport.Height - s.spec.Ground.Height
}

func (s *Sandbox) World() *ecs.World {
	return s.world
}

// Space exposes the Chipmunk space for debug drawing.
func (s *Sandbox) Space() *cp.Space {
	return s.physics.Space()
}

func (s *Sandbox) Ground() *ecs.Body {
	return s.ground
}

func (s *Sandbox) Registry() *material.Registry {
	return s.registry
}

func (s *Sandbox) Spec() *prefabs.SandboxSpec {
	return s.spec
}

func (s *Sandbox) Dispatcher() *weather.Dispatcher {
	return s.dispatcher
}

package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/weatherbox/common"
	"github.com/milk9111/weatherbox/ecs"
	"github.com/milk9111/weatherbox/ecs/component"
	"github.com/milk9111/weatherbox/material"
	"github.com/milk9111/weatherbox/prefabs"
)

// FragmentMaker builds tagged, not-yet-live glass fragments.
type FragmentMaker interface {
	Fragment(pos cp.Vector) *ecs.Body
}

// MarkerReleaser drops the visual marker of an entity the effects pass removed.
type MarkerReleaser interface {
	Release(e ecs.Entity)
}

// EffectsConfig is the effect tuning plus the ground line ice slides on.
type EffectsConfig struct {
	prefabs.EffectsSpec
	GroundY float64
}

// EffectsReport counts what the last pass did.
type EffectsReport struct {
	Live      int
	Saturated bool
	Shattered int
	Fragments int
	Pairs     int
	Attracted int
	Slid      int
	Lifted    int
}

// EffectsSystem derives material behaviour from the generic simulation state
// once per tick: glass shatters, metal attracts, ice slides and fire lifts.
type EffectsSystem struct {
	cfg       EffectsConfig
	governor  CapacityGovernor
	fragments FragmentMaker
	markers   MarkerReleaser
	rng       common.Random

	report EffectsReport
}

func NewEffectsSystem(cfg EffectsConfig, governor CapacityGovernor, fragments FragmentMaker, markers MarkerReleaser, rng common.Random) *EffectsSystem {
	return &EffectsSystem{
		cfg:       cfg,
		governor:  governor,
		fragments: fragments,
		markers:   markers,
		rng:       rng,
	}
}

// LastReport returns the counters of the most recent Update.
func (s *EffectsSystem) LastReport() EffectsReport {
	if s == nil {
		return EffectsReport{}
	}
	return s.report
}

func (s *EffectsSystem) Update(w *ecs.World) {
	if s == nil || w == nil || w.Physics() == nil {
		return
	}

	s.report = EffectsReport{
		Live:      w.Count(),
		Saturated: s.governor.Saturated(w),
	}

	var glass, metal, ice, fire []*ecs.Body
	ecs.ForEach(w, component.MaterialComponent.Kind(), func(_ ecs.Entity, b *ecs.Body, m *component.Material) {
		switch m.ID {
		case material.Glass:
			glass = append(glass, b)
		case material.Metal:
			metal = append(metal, b)
		case material.Ice:
			ice = append(ice, b)
		case material.Fire:
			fire = append(fire, b)
		}
	})

	if !s.report.Saturated {
		s.shatterGlass(w, glass)
	}
	s.attractMetal(w, metal)
	s.slideIce(w, ice)
	s.radiateFire(w, fire)
}

func (s *EffectsSystem) shatterGlass(w *ecs.World, glass []*ecs.Body) {
	if len(glass) == 0 || s.fragments == nil {
		return
	}

	var shattered, fragments []*ecs.Body
	for _, b := range glass {
		if b.Velocity().Length() <= s.cfg.ShatterSpeed {
			continue
		}
		shattered = append(shattered, b)
		origin := b.Position()
		for i := 0; i < s.cfg.FragmentCount; i++ {
			fragments = append(fragments, s.fragments.Fragment(common.Jitter(s.rng, origin, s.cfg.FragmentSpread)))
		}
	}
	if len(shattered) == 0 {
		return
	}

	p := w.Physics()
	for _, b := range shattered {
		p.Remove(b)
		if s.markers != nil {
			s.markers.Release(b.Entity())
		}
		w.Forget(b.Entity())
	}
	p.Add(fragments...)

	s.report.Shattered = len(shattered)
	s.report.Fragments = len(fragments)
}

func (s *EffectsSystem) attractMetal(w *ecs.World, metal []*ecs.Body) {
	p := w.Physics()
	cutoffSq := s.cfg.MetalCutoff * s.cfg.MetalCutoff

pairs:
	for i := 0; i < len(metal); i++ {
		for j := i + 1; j < len(metal); j++ {
			if s.cfg.MetalMaxPairs > 0 && s.report.Pairs >= s.cfg.MetalMaxPairs {
				break pairs
			}
			s.report.Pairs++

			a, b := metal[i], metal[j]
			delta := b.Position().Sub(a.Position())
			distSq := delta.LengthSq()
			if distSq <= 1 || distSq > cutoffSq {
				continue
			}
			dist := math.Sqrt(distSq)
			force := delta.Mult(s.cfg.MetalStrength / dist / dist)

			p.ApplyForce(a, force)
			p.ApplyForce(b, force.Neg())
			s.report.Attracted++
		}
	}
}

func (s *EffectsSystem) slideIce(w *ecs.World, ice []*ecs.Body) {
	p := w.Physics()
	threshold := s.cfg.GroundY - s.cfg.IceMargin
	for _, b := range ice {
		if b.Position().Y <= threshold {
			continue
		}
		p.ApplyForce(b, cp.Vector{X: common.Direction(s.rng) * s.cfg.IceSlide})
		s.report.Slid++
	}
}

func (s *EffectsSystem) radiateFire(w *ecs.World, fire []*ecs.Body) {
	if len(fire) == 0 {
		return
	}
	p := w.Physics()
	radiusSq := s.cfg.FireRadius * s.cfg.FireRadius
	lift := cp.Vector{Y: -s.cfg.FireLift}

	// Re-read: the glass pass may have changed the live set.
	bodies := p.Bodies()
	for _, f := range fire {
		if !f.Live() {
			continue
		}
		origin := f.Position()
		for _, b := range bodies {
			if b == f || b.Static() {
				continue
			}
			if b.Position().Sub(origin).LengthSq() > radiusSq {
				continue
			}
			p.ApplyForce(b, lift)
			s.report.Lifted++
		}
	}
}

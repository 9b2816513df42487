// Command soak drives a headless sandbox with random spawns and weather and
// reports how the population and the material rules behave over time.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/weatherbox/ecs"
	"github.com/milk9111/weatherbox/material"
	"github.com/milk9111/weatherbox/prefabs"
	"github.com/milk9111/weatherbox/sandbox"
)

// countingSink stands in for the screen overlay and checks the marker contract.
type countingSink struct {
	live      map[ecs.Entity]struct{}
	created   int
	destroyed int
	misuse    int
}

func (s *countingSink) Create(e ecs.Entity, token string) {
	if _, ok := s.live[e]; ok {
		s.misuse++
	}
	s.live[e] = struct{}{}
	s.created++
}

func (s *countingSink) UpdatePosition(e ecs.Entity, x, y float64) {
	if _, ok := s.live[e]; !ok {
		s.misuse++
	}
}

func (s *countingSink) Destroy(e ecs.Entity) {
	if _, ok := s.live[e]; !ok {
		s.misuse++
		return
	}
	delete(s.live, e)
	s.destroyed++
}

func main() {
	ticks := flag.Int("ticks", 3600, "number of ticks to simulate")
	seed := flag.Int64("seed", 1, "seed for the sandbox and the driver")
	spawnEvery := flag.Int("spawn-every", 4, "ticks between random user spawns")
	weatherEvery := flag.Int("weather-every", 300, "ticks between random weather events")
	reportEvery := flag.Int("report-every", 600, "ticks between progress reports")
	configPath := flag.String("config", "", "sandbox tuning YAML overlaid on the bundled sandbox.yaml")
	flag.Parse()

	spec, err := prefabs.LoadSandboxSpec()
	if *configPath != "" {
		spec, err = prefabs.LoadSandboxSpecFile(*configPath)
	}
	if err != nil {
		log.Fatal(err)
	}
	reg, err := material.Load()
	if err != nil {
		log.Fatal(err)
	}

	sink := &countingSink{live: make(map[ecs.Entity]struct{})}
	sb, err := sandbox.New(spec, reg, sink, sandbox.WithSeed(*seed))
	if err != nil {
		log.Fatal(err)
	}

	driver := rand.New(rand.NewSource(*seed + 1))
	ids := reg.Spawnable()
	kinds := sb.Dispatcher().Kinds()
	peak := 0
	saturatedTicks := 0
	shattered := 0

	for i := 1; i <= *ticks; i++ {
		if *spawnEvery > 0 && i%*spawnEvery == 0 {
			pos := cp.Vector{
				X: driver.Float64() * spec.Viewport.Width,
				Y: driver.Float64() * spec.Viewport.Height / 2,
			}
			sb.Spawn(pos, ids[driver.Intn(len(ids))])
		}
		if *weatherEvery > 0 && i%*weatherEvery == 0 {
			kind := kinds[driver.Intn(len(kinds))]
			sb.Post(kind)
			log.Printf("Soak: tick %d posting %s", i, kind)
		}

		sb.Tick()

		stats := sb.Stats()
		peak = max(peak, stats.Live)
		shattered += stats.Effects.Shattered
		if stats.Saturated {
			saturatedTicks++
		}
		if stats.Markers > stats.Live {
			log.Fatalf("Soak: tick %d has %d markers for %d live bodies", i, stats.Markers, stats.Live)
		}
		if *reportEvery > 0 && i%*reportEvery == 0 {
			log.Printf("Soak: tick %d live=%d markers=%d saturated=%v shattered=%d pairs=%d slid=%d lifted=%d culled=%d",
				i, stats.Live, stats.Markers, stats.Saturated, stats.Effects.Shattered, stats.Effects.Pairs,
				stats.Effects.Slid, stats.Effects.Lifted, stats.Culled)
		}
	}

	sb.Teardown(nil)
	sb.Teardown(nil)

	log.Printf("Soak: done ticks=%d peak=%d saturated_ticks=%d shattered=%d markers_created=%d markers_destroyed=%d",
		*ticks, peak, saturatedTicks, shattered, sink.created, sink.destroyed)

	if len(sink.live) != 0 || sink.misuse != 0 {
		log.Printf("Soak: marker contract violated: %d left over, %d misuses", len(sink.live), sink.misuse)
		os.Exit(1)
	}
}

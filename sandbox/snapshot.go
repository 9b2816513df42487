package sandbox

import (
	"fmt"

	"github.com/milk9111/weatherbox/ecs"
	"github.com/milk9111/weatherbox/ecs/component"
	"gopkg.in/yaml.v3"
)

// Snapshot is a shareable summary of a running sandbox. The seed plus the
// tick is enough to describe where a bug report came from.
type Snapshot struct {
	Seed      int64          `yaml:"seed"`
	Tick      uint64         `yaml:"tick"`
	Live      int            `yaml:"live"`
	Markers   int            `yaml:"markers"`
	Saturated bool           `yaml:"saturated"`
	Materials map[string]int `yaml:"materials"`
}

func (s *Sandbox) Snapshot() Snapshot {
	stats := s.Stats()
	snap := Snapshot{
		Seed:      s.seed,
		Tick:      stats.Tick,
		Live:      stats.Live,
		Markers:   stats.Markers,
		Saturated: stats.Saturated,
		Materials: make(map[string]int),
	}
	ecs.ForEach(s.world, component.MaterialComponent.Kind(), func(_ ecs.Entity, _ *ecs.Body, m *component.Material) {
		snap.Materials[string(m.ID)]++
	})
	return snap
}

func (s Snapshot) YAML() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("sandbox: marshal snapshot: %w", err)
	}
	return data, nil
}

package system

import "github.com/milk9111/weatherbox/ecs"

// CapacityGovernor is the population ceiling. It never rejects anything;
// callers use it to switch off population-growing behaviour.
type CapacityGovernor struct {
	MaxBodies int
}

// Saturated reports whether the live count is above the ceiling. A zero
// ceiling means unlimited.
func (g CapacityGovernor) Saturated(w *ecs.World) bool {
	return g.MaxBodies > 0 && w.Count() > g.MaxBodies
}

// Headroom returns how many bodies fit before the ceiling is reached.
func (g CapacityGovernor) Headroom(w *ecs.World) int {
	if g.MaxBodies <= 0 {
		return int(^uint(0) >> 1)
	}
	return max(g.MaxBodies-w.Count(), 0)
}

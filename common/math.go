package common

import "github.com/jakecoffman/cp"

// Direction maps a coin flip onto -1 or +1.
func Direction(r Random) float64 {
	if r.Float64() > 0.5 {
		return 1
	}
	return -1
}

// Between returns a uniform value in [lo, hi).
func Between(r Random, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Jitter offsets p by up to spread/2 on each axis.
func Jitter(r Random, p cp.Vector, spread float64) cp.Vector {
	return cp.Vector{
		X: p.X + (r.Float64()-0.5)*spread,
		Y: p.Y + (r.Float64()-0.5)*spread,
	}
}

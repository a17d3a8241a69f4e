// Package physics provides the bounce model for points moving inside the viewport.
package physics

import "math"

// Rand is the random source used by the bounce model.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Speed returns the magnitude of a velocity vector.
func Speed(vx, vy float64) float64 {
	return math.Hypot(vx, vy)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Reflect handles one axis of a boundary crossing. When pos lies outside
// [0, extent] it is clamped back onto the boundary, vel is negated and
// Reflect returns true.
func Reflect(pos, vel *float64, extent float64) bool {
	switch {
	case *pos < 0:
		*pos = 0
	case *pos > extent:
		*pos = extent
	default:
		return false
	}
	*vel = -*vel
	return true
}

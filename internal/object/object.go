// Package object holds the simulated entities: points, the point set that
// links them into a loop, and the status message queue.
package object

import "github.com/tomz197/lines/internal/physics"

// Rand is the random source used for point creation, motion and color walks.
type Rand = physics.Rand

// Screen is the viewport extent in canvas sub-pixels.
// Points move inside [0, Width] x [0, Height].
type Screen struct {
	Width  float64
	Height float64
}

// Contains reports whether (x, y) lies inside the viewport, edges included.
func (s Screen) Contains(x, y float64) bool {
	return x >= 0 && x <= s.Width && y >= 0 && y <= s.Height
}

// uniform returns a value drawn uniformly from [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

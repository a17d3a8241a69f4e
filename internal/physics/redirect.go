package physics

import (
	"fmt"
	"math"
)

// Quadrant is one of the four 90° velocity direction sectors.
// Screen coordinates are used: y grows downward, so "up" is vy < 0.
type Quadrant int

const (
	QuadrantNone Quadrant = iota
	Quadrant1             // vx > 0, vy <= 0
	Quadrant2             // vx <= 0, vy <= 0
	Quadrant3             // vx <= 0, vy > 0
	Quadrant4             // vx > 0, vy > 0
)

// Limits bounds the velocity produced by Redirect.
type Limits struct {
	VMin    float64 // minimum speed
	VMax    float64 // maximum speed
	VChange float64 // magnitude of the random speed change
}

// QuadrantOf classifies a non-zero velocity and returns its angle in [0, 2π),
// measured counterclockwise on screen from the +x axis.
func QuadrantOf(vx, vy float64) (Quadrant, float64) {
	v := Speed(vx, vy)
	raw := math.Acos(Clamp(vx/v, -1, 1)) // in [0, π], sign of vy is lost

	if vy > 0 {
		if vx > 0 {
			return Quadrant4, 2*math.Pi - raw
		}
		return Quadrant3, 2*math.Pi - raw
	}
	if vx > 0 {
		return Quadrant1, raw
	}
	return Quadrant2, raw
}

// RotationBounds returns the rotations that take angle onto the two edges of
// quadrant q. rMax - rMin is always π/2.
// An invalid quadrant is a programming error and panics.
func RotationBounds(q Quadrant, angle float64) (rMin, rMax float64) {
	const halfPi = math.Pi / 2

	switch q {
	case Quadrant1:
		return -angle, halfPi - angle
	case Quadrant2:
		return halfPi - angle, math.Pi - angle
	case Quadrant3:
		return math.Pi - angle, 3*halfPi - angle
	case Quadrant4:
		return 3*halfPi - angle, 2*math.Pi - angle
	default:
		panic(fmt.Sprintf("physics: quadrant of angle can not be %d", q))
	}
}

// Redirect randomizes a velocity that has just been reflected off a wall.
// The direction is rotated by a random amount that keeps it inside its current
// quadrant, so the point is never sent straight back into the wall, and the
// speed is multiplied by a random factor in [1/(1+VChange), 1+VChange].
// The resulting speed always lies in [VMin, VMax].
func Redirect(vx, vy float64, lim Limits, rng Rand) (float64, float64) {
	v := Speed(vx, vy)
	if v == 0 {
		sin, cos := math.Sincos(rng.Float64() * 2 * math.Pi)
		return lim.VMin * cos, -lim.VMin * sin
	}

	// Bring an out-of-range speed onto the nearest limit first; the
	// rescale below only stays in range for an in-range input.
	if c := Clamp(v, lim.VMin, lim.VMax); c != v {
		vx, vy = vx*c/v, vy*c/v
		v = c
	}

	q, angle := QuadrantOf(vx, vy)
	rMin, _ := RotationBounds(q, angle)

	scale := 1 + rng.Float64()*lim.VChange
	rotation := rMin + rng.Float64()*math.Pi/2
	if rng.Float64() > 0.5 {
		scale = 1 / scale
	}

	// Restrict scale so the resulting speed stays inside the limits.
	scale = math.Sqrt(Clamp(v*scale, lim.VMin, lim.VMax) / v)

	sin, cos := math.Sincos(rotation)
	return scale * (vx*cos + vy*sin), scale * (vy*cos - vx*sin)
}

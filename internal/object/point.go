package object

import (
	"math"

	"github.com/tomz197/lines/internal/physics"
	"github.com/tomz197/lines/internal/settings"
)

// Direction is the drift direction of one color channel.
type Direction int8

const (
	Decreasing Direction = -1
	Increasing Direction = 1
)

// Sign returns the direction as a multiplier.
func (d Direction) Sign() float64 {
	return float64(d)
}

func randomDirection(rng Rand) Direction {
	if rng.Float64() < 0.5 {
		return Decreasing
	}
	return Increasing
}

// Point is one vertex of the line loop.
type Point struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity per tick, before step scaling

	H, S, L          float64 // Hue [0,360], saturation %, lightness %
	HDir, SDir, LDir Direction
}

// NewPoint creates a point at a uniformly random position with a random
// velocity and color inside the configured bounds.
func NewPoint(screen Screen, s settings.Settings, rng Rand) *Point {
	speed := uniform(rng, s.VMin, s.VMax)
	sin, cos := math.Sincos(rng.Float64() * math.Pi / 2)
	vx, vy := speed*cos, speed*sin
	if rng.Float64() < 0.5 {
		vx = -vx
	}
	if rng.Float64() < 0.5 {
		vy = -vy
	}

	return &Point{
		X:    rng.Float64() * screen.Width,
		Y:    rng.Float64() * screen.Height,
		VX:   vx,
		VY:   vy,
		H:    uniform(rng, settings.HueBound.Min, settings.HueBound.Max),
		S:    uniform(rng, s.SMin, s.SMax),
		L:    uniform(rng, s.LMin, s.LMax),
		HDir: randomDirection(rng),
		SDir: randomDirection(rng),
		LDir: randomDirection(rng),
	}
}

// Move advances the point by one tick and bounces it off the viewport edges.
// Each axis that crosses an edge is clamped, its velocity component negated
// and the velocity redirected. Returns the number of bounces.
func (p *Point) Move(screen Screen, s settings.Settings, rng Rand) int {
	lim := limits(s)
	bounces := 0

	p.X += p.VX * s.StepSize
	p.Y += p.VY * s.StepSize

	if physics.Reflect(&p.X, &p.VX, screen.Width) {
		p.VX, p.VY = physics.Redirect(p.VX, p.VY, lim, rng)
		bounces++
	}
	if physics.Reflect(&p.Y, &p.VY, screen.Height) {
		p.VX, p.VY = physics.Redirect(p.VX, p.VY, lim, rng)
		bounces++
	}
	return bounces
}

// Conform pulls the point back inside the bounds of s after the settings
// changed: colors are clamped and the speed is rescaled into [VMin, VMax].
func (p *Point) Conform(s settings.Settings) {
	p.H = settings.HueBound.Clamp(p.H)
	p.S = settings.Bound[float64]{Min: s.SMin, Max: s.SMax}.Clamp(p.S)
	p.L = settings.Bound[float64]{Min: s.LMin, Max: s.LMax}.Clamp(p.L)

	v := physics.Speed(p.VX, p.VY)
	if v == 0 {
		p.VX = s.VMin
		return
	}
	if c := physics.Clamp(v, s.VMin, s.VMax); c != v {
		p.VX *= c / v
		p.VY *= c / v
	}
}

func limits(s settings.Settings) physics.Limits {
	return physics.Limits{VMin: s.VMin, VMax: s.VMax, VChange: s.VChange}
}

package object

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/lines/internal/settings"
)

// HSLA is a point color: hue in degrees, saturation and lightness in percent,
// alpha in [0,1].
type HSLA struct {
	H, S, L, A float64
}

// String formats the color the way a CSS canvas expects it.
func (c HSLA) String() string {
	return fmt.Sprintf("hsla(%d,%d%%,%d%%,%g)",
		int(math.Round(c.H)), int(math.Round(c.S)), int(math.Round(c.L)), c.A)
}

// RGB converts the color to RGB, ignoring alpha.
func (c HSLA) RGB() colorful.Color {
	return colorful.Hsl(c.H, c.S/100, c.L/100).Clamped()
}

// StepColor advances the hue, saturation and lightness of p by a bounded
// random walk and returns the new color. A channel that reaches one of its
// bounds turns around.
func (p *Point) StepColor(s settings.Settings, rng Rand) HSLA {
	p.H, p.HDir = walk(p.H, p.HDir, settings.HueBound, s.ColorSpeed, rng)
	p.S, p.SDir = walk(p.S, p.SDir, settings.Bound[float64]{Min: s.SMin, Max: s.SMax}, s.ColorSpeed, rng)
	p.L, p.LDir = walk(p.L, p.LDir, settings.Bound[float64]{Min: s.LMin, Max: s.LMax}, s.ColorSpeed, rng)
	return p.Color()
}

// Color returns the current color of p without advancing it.
func (p *Point) Color() HSLA {
	return HSLA{H: p.H, S: p.S, L: p.L, A: 1}
}

func walk(v float64, dir Direction, b settings.Bound[float64], speed float64, rng Rand) (float64, Direction) {
	v = b.Clamp(v + dir.Sign()*rng.Float64()*speed)
	switch {
	case v <= b.Min:
		dir = Increasing
	case v >= b.Max:
		dir = Decreasing
	}
	return v, dir
}

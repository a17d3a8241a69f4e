package object

import (
	"github.com/tomz197/lines/internal/draw"
	"github.com/tomz197/lines/internal/settings"
)

// PointSet is an ordered loop of points. The slice holds n points followed by
// the first point again, so drawing the n segments between neighbours closes
// the loop. The closing entry is the same *Point as entry 0.
type PointSet struct {
	points []*Point
}

// NewPointSet creates n random points, n clamped to settings.NumPointsBound.
func NewPointSet(n int, screen Screen, s settings.Settings, rng Rand) *PointSet {
	n = settings.NumPointsBound.Clamp(n)
	points := make([]*Point, 0, n+1)
	for i := 0; i < n; i++ {
		points = append(points, NewPoint(screen, s, rng))
	}
	points = append(points, points[0])
	return &PointSet{points: points}
}

// Len returns the number of distinct points.
func (ps *PointSet) Len() int {
	return len(ps.points) - 1
}

// Points returns all n+1 entries, closing entry included.
// The slice is owned by the set and only valid until the next Grow or Shrink.
func (ps *PointSet) Points() []*Point {
	return ps.points
}

// Grow inserts k new random points just before the closing entry, never
// exceeding settings.NumPointsBound.Max, and records the new count in s.
// Returns the number of points added.
func (ps *PointSet) Grow(k int, screen Screen, s *settings.Settings, rng Rand) int {
	n := ps.Len()
	k = min(k, settings.NumPointsBound.Max-n)
	if k <= 0 {
		return 0
	}
	first := ps.points[0]
	points := ps.points[:n]
	for i := 0; i < k; i++ {
		points = append(points, NewPoint(screen, *s, rng))
	}
	ps.points = append(points, first)
	s.NumPoints = ps.Len()
	return k
}

// Shrink removes the last k distinct points, never going below
// settings.NumPointsBound.Min, and records the new count in s.
// Returns the number of points removed.
func (ps *PointSet) Shrink(k int, s *settings.Settings) int {
	n := ps.Len()
	k = min(k, n-settings.NumPointsBound.Min)
	if k <= 0 {
		return 0
	}
	clear(ps.points[n-k : n+1])
	ps.points = append(ps.points[:n-k], ps.points[0])
	s.NumPoints = ps.Len()
	return k
}

// Resize grows or shrinks the set to n points. Returns the signed change.
func (ps *PointSet) Resize(n int, screen Screen, s *settings.Settings, rng Rand) int {
	n = settings.NumPointsBound.Clamp(n)
	switch {
	case n > ps.Len():
		return ps.Grow(n-ps.Len(), screen, s, rng)
	case n < ps.Len():
		return -ps.Shrink(ps.Len()-n, s)
	}
	s.NumPoints = n
	return 0
}

// Conform applies Point.Conform to every point.
func (ps *PointSet) Conform(s settings.Settings) {
	for _, p := range ps.points[:ps.Len()] {
		p.Conform(s)
	}
}

// Move advances every distinct point by one tick. Returns the number of bounces.
func (ps *PointSet) Move(screen Screen, s settings.Settings, rng Rand) int {
	bounces := 0
	for _, p := range ps.points[:ps.Len()] {
		bounces += p.Move(screen, s, rng)
	}
	return bounces
}

// StepColors advances the color of every distinct point once and returns
// n+1 colors, the last one repeating the first. dst is reused if large enough.
func (ps *PointSet) StepColors(s settings.Settings, rng Rand, dst []HSLA) []HSLA {
	n := ps.Len()
	dst = dst[:0]
	for _, p := range ps.points[:n] {
		dst = append(dst, p.StepColor(s, rng))
	}
	return append(dst, dst[0])
}

// Colors returns the current n+1 colors without advancing them.
func (ps *PointSet) Colors(dst []HSLA) []HSLA {
	dst = dst[:0]
	for _, p := range ps.points {
		dst = append(dst, p.Color())
	}
	return dst
}

// Positions returns the n+1 point positions. dst is reused if large enough.
func (ps *PointSet) Positions(dst []draw.Point) []draw.Point {
	dst = dst[:0]
	for _, p := range ps.points {
		dst = append(dst, draw.Point{X: p.X, Y: p.Y})
	}
	return dst
}

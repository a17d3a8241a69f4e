package settings

import "cmp"

// Bound is an inclusive [Min, Max] range for a numeric setting.
type Bound[T cmp.Ordered] struct {
	Min, Max T
}

// Clamp limits v to the bound.
func (b Bound[T]) Clamp(v T) T {
	return min(max(v, b.Min), b.Max)
}

// Contains reports whether v lies inside the bound.
func (b Bound[T]) Contains(v T) bool {
	return v >= b.Min && v <= b.Max
}

// set clamps v into b, stores the result in field and reports whether the
// stored value changed. Out-of-range input is never an error.
func set[T cmp.Ordered](field *T, v T, b Bound[T]) bool {
	old := *field
	*field = b.Clamp(v)
	return *field != old
}

// Documented ranges for the bounded settings.
var (
	SkipFramesBound = Bound[int]{Min: 0, Max: 10}
	FadeSpeedBound  = Bound[float64]{Min: 0.01, Max: 1}
	NumPointsBound  = Bound[int]{Min: 2, Max: 100}
	VMinBound       = Bound[float64]{Min: 0.1, Max: 10}
	VChangeBound    = Bound[float64]{Min: 0, Max: 2}
	PercentBound    = Bound[float64]{Min: 0, Max: 100}
	HueBound        = Bound[float64]{Min: 0, Max: 360}
)

// VMaxCeiling is the upper limit for VMax. Its lower limit is the current VMin.
const VMaxCeiling = 20.0

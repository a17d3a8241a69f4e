// Package settings holds the tunable configuration of a simulation and the
// clamping rules applied to every change.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrMalformed is returned when a persisted record cannot be decoded.
var ErrMalformed = errors.New("malformed settings record")

// Position is a point in canvas sub-pixel coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Settings is the flat configuration record. The JSON names are the persisted format.
type Settings struct {
	// Animation
	SkipFrames int     `json:"skipFrames"` // animate colors only every (n+1)th tick
	StepSize   float64 `json:"stepSize"`   // scale factor for point speeds
	FadeSpeed  float64 `json:"fadeSpeed"`  // trail fade per tick (0..1)
	NumPoints  int     `json:"numPoints"`
	VMin       float64 `json:"vMin"`
	VMax       float64 `json:"vMax"`
	VChange    float64 `json:"vChange"` // speed change magnitude on bounce

	// Colors
	SMin       float64 `json:"sMin"` // saturation %
	SMax       float64 `json:"sMax"`
	LMin       float64 `json:"lMin"` // lightness %
	LMax       float64 `json:"lMax"`
	ColorSpeed float64 `json:"colorSpeed"`

	// Messages
	MessagePos      Position `json:"messagePos"`
	MessageHeight   float64  `json:"messageHeight"`
	MessageColor    string   `json:"messageColor"`
	MessageDuration int      `json:"messageDuration"` // ticks
}

// Defaults returns the compiled-in configuration.
// Message layout is in canvas sub-pixels: one terminal row is two sub-pixels.
func Defaults() Settings {
	return Settings{
		SkipFrames: 4,
		StepSize:   1,
		FadeSpeed:  0.05,
		NumPoints:  8,
		VMin:       0.1,
		VMax:       3,
		VChange:    0.2,

		SMin:       55,
		SMax:       100,
		LMin:       45,
		LMax:       80,
		ColorSpeed: 10,

		MessagePos:      Position{X: 2, Y: 2},
		MessageHeight:   2,
		MessageColor:    "#AAAAAA",
		MessageDuration: 50,
	}
}

// SetSkipFrames clamps and stores the skip-frame count.
func (s *Settings) SetSkipFrames(v int) bool {
	return set(&s.SkipFrames, v, SkipFramesBound)
}

// SetFadeSpeed clamps and stores the fade rate.
func (s *Settings) SetFadeSpeed(v float64) bool {
	return set(&s.FadeSpeed, v, FadeSpeedBound)
}

// SetNumPoints clamps and stores the point count. Callers resize the point set to match.
func (s *Settings) SetNumPoints(v int) bool {
	return set(&s.NumPoints, v, NumPointsBound)
}

// SetVMin clamps the minimum speed into VMinBound and never above VMax.
func (s *Settings) SetVMin(v float64) bool {
	return set(&s.VMin, v, Bound[float64]{Min: VMinBound.Min, Max: min(VMinBound.Max, s.VMax)})
}

// SetVMax clamps the maximum speed into [VMin, VMaxCeiling].
func (s *Settings) SetVMax(v float64) bool {
	return set(&s.VMax, v, Bound[float64]{Min: s.VMin, Max: VMaxCeiling})
}

// ShiftSpeed moves both speed bounds by delta, keeping their distance.
// The shift shrinks as needed so both bounds stay in range.
func (s *Settings) ShiftSpeed(delta float64) bool {
	d := Bound[float64]{
		Min: VMinBound.Min - s.VMin,
		Max: min(VMinBound.Max-s.VMin, VMaxCeiling-s.VMax),
	}.Clamp(delta)
	if d == 0 {
		return false
	}
	s.VMin += d
	s.VMax += d
	return true
}

// SetVChange clamps and stores the speed change magnitude.
func (s *Settings) SetVChange(v float64) bool {
	return set(&s.VChange, v, VChangeBound)
}

// Sanitize clamps every bounded field into range and replaces unusable
// values with defaults. Applied to every record read from storage.
func (s *Settings) Sanitize() {
	d := Defaults()

	s.SkipFrames = SkipFramesBound.Clamp(s.SkipFrames)
	s.FadeSpeed = FadeSpeedBound.Clamp(s.FadeSpeed)
	s.NumPoints = NumPointsBound.Clamp(s.NumPoints)
	s.VMin = VMinBound.Clamp(s.VMin)
	s.VMax = Bound[float64]{Min: s.VMin, Max: VMaxCeiling}.Clamp(s.VMax)
	s.VChange = VChangeBound.Clamp(s.VChange)

	s.SMin, s.SMax = orderedPercent(s.SMin, s.SMax)
	s.LMin, s.LMax = orderedPercent(s.LMin, s.LMax)

	if s.StepSize <= 0 {
		s.StepSize = d.StepSize
	}
	if s.ColorSpeed < 0 {
		s.ColorSpeed = d.ColorSpeed
	}
	if s.MessageHeight <= 0 {
		s.MessageHeight = d.MessageHeight
	}
	if s.MessageDuration <= 0 {
		s.MessageDuration = d.MessageDuration
	}
	if _, err := colorful.Hex(s.MessageColor); err != nil {
		s.MessageColor = d.MessageColor
	}
}

func orderedPercent(lo, hi float64) (float64, float64) {
	lo, hi = PercentBound.Clamp(lo), PercentBound.Clamp(hi)
	if lo > hi {
		return hi, lo
	}
	return lo, hi
}

// Encode serializes the full record.
func (s Settings) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	return string(data), nil
}

// Decode merges a persisted record over Defaults, so fields missing from an
// older record keep their default value, then sanitizes the result.
func Decode(data string) (Settings, error) {
	s := Defaults()
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return Defaults(), fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	s.Sanitize()
	return s, nil
}

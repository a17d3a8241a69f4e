package loop

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lines/internal/config"
	"github.com/tomz197/lines/internal/draw"
	"github.com/tomz197/lines/internal/input"
	"github.com/tomz197/lines/internal/object"
	"github.com/tomz197/lines/internal/physics"
	"github.com/tomz197/lines/internal/settings"
	"github.com/tomz197/lines/internal/store"
)

// Adjustment steps applied by Dispatch.
const (
	pointStep       = 1
	fadeStep        = 0.01
	skipStep        = 1
	speedStep       = 0.2
	speedBoundStep  = 0.1
	speedChangeStep = 0.1
)

// Frame is the renderable result of one tick. Its slices are owned by the
// Simulation and stay valid until the next Step or Current call.
type Frame struct {
	Repaint  bool             // Lines are drawn only on repaint ticks
	Points   []draw.Point     // n+1 positions, the last closes the loop
	Colors   []object.HSLA    // n+1 colors matching Points; set on repaint ticks
	Messages []object.Message // Messages visible this tick
	Fade     float64          // Fraction of brightness removed this tick
}

// Options configures a Simulation.
type Options struct {
	Width, Height float64      // Viewport extent in canvas sub-pixels
	Store         store.Store  // Slot storage; in-memory when nil
	KeyPrefix     string       // Slot key prefix; config.StoragePrefix when empty
	Rand          physics.Rand // Random source; time-seeded when nil
	Logger        *log.Logger  // Store failures are logged here; discarded when nil
}

// Simulation owns all state of one running animation: settings, points,
// messages and the frame-skip counter. It is not safe for concurrent use.
type Simulation struct {
	settings    settings.Settings
	points      *object.PointSet
	messages    object.MessageQueue
	screen      object.Screen
	skipCounter int
	playing     bool

	store  store.Store
	prefix string
	rng    physics.Rand
	logger *log.Logger

	frame Frame
}

// NewSimulation creates a playing simulation with default settings.
func NewSimulation(opts Options) *Simulation {
	sim := &Simulation{
		settings: settings.Defaults(),
		screen:   object.Screen{Width: opts.Width, Height: opts.Height},
		playing:  true,
		store:    opts.Store,
		prefix:   opts.KeyPrefix,
		rng:      opts.Rand,
		logger:   opts.Logger,
	}
	if sim.store == nil {
		sim.store = store.NewMemory()
	}
	if sim.prefix == "" {
		sim.prefix = config.StoragePrefix
	}
	if sim.rng == nil {
		seed := uint64(time.Now().UnixNano())
		sim.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if sim.logger == nil {
		sim.logger = log.New(io.Discard)
	}

	sim.flash("restoring default settings")
	sim.points = object.NewPointSet(sim.settings.NumPoints, sim.screen, sim.settings, sim.rng)
	return sim
}

// Step runs one tick: points move, the frame-skip counter advances and
// colors change on repaint ticks, then messages age.
func (sim *Simulation) Step() Frame {
	sim.points.Move(sim.screen, sim.settings, sim.rng)

	f := &sim.frame
	f.Repaint = false
	f.Fade = sim.settings.FadeSpeed

	sim.skipCounter++
	if sim.skipCounter > sim.settings.SkipFrames {
		sim.skipCounter = 0
		f.Repaint = true
		f.Colors = sim.points.StepColors(sim.settings, sim.rng, f.Colors)
	}

	f.Points = sim.points.Positions(f.Points)
	f.Messages = sim.messages.Age(f.Messages)
	return *f
}

// Current returns the state without advancing it, for drawing while paused.
// Nothing fades and no lines are drawn.
func (sim *Simulation) Current() Frame {
	f := &sim.frame
	f.Repaint = false
	f.Fade = 0
	f.Points = sim.points.Positions(f.Points)
	f.Colors = sim.points.Colors(f.Colors)
	f.Messages = sim.messages.Visible(f.Messages)
	return *f
}

// Settings returns a copy of the active settings.
func (sim *Simulation) Settings() settings.Settings {
	return sim.settings
}

// Playing reports whether ticks are currently being run.
func (sim *Simulation) Playing() bool {
	return sim.playing
}

// Resize sets the viewport extent. Points outside bounce back on the next tick.
func (sim *Simulation) Resize(width, height float64) {
	sim.screen = object.Screen{Width: width, Height: height}
}

// FlashMessage queues a status message. duration <= 0 uses the default.
func (sim *Simulation) FlashMessage(text string, duration int) {
	sim.messages.Flash(text, duration, sim.screen, sim.settings)
}

func (sim *Simulation) flash(format string, args ...any) {
	sim.FlashMessage(fmt.Sprintf(format, args...), 0)
}

// AdjustPointCount adds or removes points. Reports whether the count changed.
func (sim *Simulation) AdjustPointCount(delta int) bool {
	switch {
	case delta > 0:
		added := sim.points.Grow(delta, sim.screen, &sim.settings, sim.rng)
		if added == 0 {
			return false
		}
		if added == 1 {
			sim.flash("point added (now %d)", sim.settings.NumPoints)
		} else {
			sim.flash("%d points added (now %d)", added, sim.settings.NumPoints)
		}
		return true
	case delta < 0:
		removed := sim.points.Shrink(-delta, &sim.settings)
		if removed == 0 {
			return false
		}
		if removed == 1 {
			sim.flash("point removed (%d remain)", sim.settings.NumPoints)
		} else {
			sim.flash("%d points removed (%d remain)", removed, sim.settings.NumPoints)
		}
		return true
	}
	return false
}

// AdjustFadeSpeed changes the fade rate by delta.
func (sim *Simulation) AdjustFadeSpeed(delta float64) bool {
	if !sim.settings.SetFadeSpeed(sim.settings.FadeSpeed + delta) {
		return false
	}
	sim.flash("%s fade speed to %g", verb(delta), math.Round(sim.settings.FadeSpeed*1000)/10)
	return true
}

// AdjustSkipFrames changes how many ticks pass between repaints.
func (sim *Simulation) AdjustSkipFrames(delta int) bool {
	if !sim.settings.SetSkipFrames(sim.settings.SkipFrames + delta) {
		return false
	}
	sim.flash("%s skip frames to %d", verb(float64(delta)), sim.settings.SkipFrames)
	return true
}

// AdjustSpeed shifts both speed bounds by delta.
func (sim *Simulation) AdjustSpeed(delta float64) bool {
	if !sim.settings.ShiftSpeed(delta) {
		return false
	}
	sim.points.Conform(sim.settings)
	sim.flash("%s speed to [%.1f, %.1f]", verb(delta), sim.settings.VMin, sim.settings.VMax)
	return true
}

// AdjustVelocityMin changes the minimum speed, never above the maximum.
func (sim *Simulation) AdjustVelocityMin(delta float64) bool {
	if !sim.settings.SetVMin(sim.settings.VMin + delta) {
		return false
	}
	sim.points.Conform(sim.settings)
	sim.flash("%s minimum speed to %.1f", verb(delta), sim.settings.VMin)
	return true
}

// AdjustVelocityMax changes the maximum speed, never below the minimum.
func (sim *Simulation) AdjustVelocityMax(delta float64) bool {
	if !sim.settings.SetVMax(sim.settings.VMax + delta) {
		return false
	}
	sim.points.Conform(sim.settings)
	sim.flash("%s maximum speed to %.1f", verb(delta), sim.settings.VMax)
	return true
}

// AdjustVelocityChange changes how much a bounce may alter the speed.
func (sim *Simulation) AdjustVelocityChange(delta float64) bool {
	if !sim.settings.SetVChange(sim.settings.VChange + delta) {
		return false
	}
	sim.flash("%s speed change to %.1f", verb(delta), sim.settings.VChange)
	return true
}

// SaveSettings writes the active settings to slot.
func (sim *Simulation) SaveSettings(slot string) error {
	if slot == "" {
		slot = settings.DefaultSlot
	}
	if err := settings.Save(sim.store, settings.Key(sim.prefix, slot), sim.settings); err != nil {
		sim.logger.Error("Failed to save settings", "slot", slot, "err", err)
		sim.flash("could not save settings (%s)", slot)
		return err
	}
	sim.flash("saved settings (%s)", slot)
	return nil
}

// LoadSettings replaces the active settings with the record in slot and
// recreates the points. A missing or unreadable record changes nothing.
func (sim *Simulation) LoadSettings(slot string) error {
	if slot == "" {
		slot = settings.DefaultSlot
	}
	s, err := settings.Load(sim.store, settings.Key(sim.prefix, slot))
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, settings.ErrMalformed):
		sim.flash("no saved settings")
		return err
	case err != nil:
		sim.logger.Error("Failed to load settings", "slot", slot, "err", err)
		sim.flash("could not load settings (%s)", slot)
		return err
	}

	sim.settings = s
	sim.points = object.NewPointSet(s.NumPoints, sim.screen, sim.settings, sim.rng)
	sim.skipCounter = 0
	sim.flash("restoring settings from storage (%s)", slot)
	return nil
}

// LoadDefaults restores the compiled-in settings.
func (sim *Simulation) LoadDefaults() {
	sim.settings = settings.Defaults()
	sim.points.Resize(sim.settings.NumPoints, sim.screen, &sim.settings, sim.rng)
	sim.points.Conform(sim.settings)
	sim.flash("restoring default settings")
}

// TogglePlayPause starts or stops ticking. Pausing drops pending messages.
func (sim *Simulation) TogglePlayPause() {
	sim.playing = !sim.playing
	if sim.playing {
		sim.flash("playing")
		return
	}
	sim.messages.Clear()
	sim.flash("paused")
}

// Dispatch applies a key action. Quit and None are left to the caller.
func (sim *Simulation) Dispatch(a input.Action) {
	switch a {
	case input.ActionNone, input.ActionQuit:
	case input.ActionAddPoint:
		sim.AdjustPointCount(pointStep)
	case input.ActionRemovePoint:
		sim.AdjustPointCount(-pointStep)
	case input.ActionFadeFaster:
		sim.AdjustFadeSpeed(fadeStep)
	case input.ActionFadeSlower:
		sim.AdjustFadeSpeed(-fadeStep)
	case input.ActionSkipMore:
		sim.AdjustSkipFrames(skipStep)
	case input.ActionSkipFewer:
		sim.AdjustSkipFrames(-skipStep)
	case input.ActionSpeedUp:
		sim.AdjustSpeed(speedStep)
	case input.ActionSlowDown:
		sim.AdjustSpeed(-speedStep)
	case input.ActionMoreSpeedChange:
		sim.AdjustVelocityChange(speedChangeStep)
	case input.ActionLessSpeedChange:
		sim.AdjustVelocityChange(-speedChangeStep)
	case input.ActionRaiseMinSpeed:
		sim.AdjustVelocityMin(speedBoundStep)
	case input.ActionLowerMinSpeed:
		sim.AdjustVelocityMin(-speedBoundStep)
	case input.ActionRaiseMaxSpeed:
		sim.AdjustVelocityMax(speedBoundStep)
	case input.ActionLowerMaxSpeed:
		sim.AdjustVelocityMax(-speedBoundStep)
	case input.ActionSave:
		_ = sim.SaveSettings(settings.DefaultSlot)
	case input.ActionLoad:
		_ = sim.LoadSettings(settings.DefaultSlot)
	case input.ActionDefaults:
		sim.LoadDefaults()
	case input.ActionTogglePlay:
		sim.TogglePlayPause()
	default:
		sim.FlashMessage("unknown key", sim.settings.MessageDuration/2)
	}
}

func verb(delta float64) string {
	if delta < 0 {
		return "decreased"
	}
	return "increased"
}

package loop

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/tomz197/lines/internal/input"
	"github.com/tomz197/lines/internal/object"
	"github.com/tomz197/lines/internal/physics"
	"github.com/tomz197/lines/internal/settings"
	"github.com/tomz197/lines/internal/store"
)

var errBroken = errors.New("disk on fire")

type failingStore struct{}

func (failingStore) Get(string) (string, error) { return "", errBroken }
func (failingStore) Set(string, string) error   { return errBroken }

func newTestSimulation(st store.Store) *Simulation {
	return NewSimulation(Options{
		Width:  200,
		Height: 100,
		Store:  st,
		Rand:   rand.New(rand.NewPCG(3, 5)),
	})
}

func lastMessage(t *testing.T, sim *Simulation) object.Message {
	t.Helper()
	msgs := sim.messages.Messages()
	if len(msgs) == 0 {
		t.Fatal("no messages queued")
	}
	return msgs[len(msgs)-1]
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewSimulation(t *testing.T) {
	sim := newTestSimulation(nil)

	if !sim.Playing() {
		t.Error("new simulation is paused")
	}
	if got := sim.Settings(); got != settings.Defaults() {
		t.Errorf("settings = %+v, want defaults", got)
	}
	if got := len(sim.points.Points()); got != 9 {
		t.Errorf("len(points) = %d, want 9", got)
	}
	if sim.messages.Len() != 1 || lastMessage(t, sim).Text != "restoring default settings" {
		t.Errorf("messages = %+v", sim.messages.Messages())
	}
}

func TestStepRepaintsAfterSkipFrames(t *testing.T) {
	sim := newTestSimulation(nil)
	skip := sim.Settings().SkipFrames

	for tick := 1; tick <= 3*(skip+1); tick++ {
		f := sim.Step()
		want := tick%(skip+1) == 0
		if f.Repaint != want {
			t.Fatalf("tick %d: Repaint = %v, want %v", tick, f.Repaint, want)
		}
		if f.Fade != sim.Settings().FadeSpeed {
			t.Fatalf("tick %d: Fade = %v", tick, f.Fade)
		}
	}
}

func TestStepFrameShape(t *testing.T) {
	sim := newTestSimulation(nil)
	sim.settings.SetSkipFrames(0)

	f := sim.Step()
	n := sim.Settings().NumPoints
	if !f.Repaint {
		t.Fatal("skipFrames 0 must repaint every tick")
	}
	if len(f.Points) != n+1 || len(f.Colors) != n+1 {
		t.Fatalf("len(Points) = %d, len(Colors) = %d, want %d", len(f.Points), len(f.Colors), n+1)
	}
	if f.Points[n] != f.Points[0] || f.Colors[n] != f.Colors[0] {
		t.Error("closing entry differs from the first")
	}
}

func TestStepKeepsInvariants(t *testing.T) {
	sim := newTestSimulation(nil)
	sim.settings.SetSkipFrames(0)
	s := sim.Settings()

	for tick := 0; tick < 2000; tick++ {
		f := sim.Step()
		for i, p := range f.Points {
			if !sim.screen.Contains(p.X, p.Y) {
				t.Fatalf("tick %d: point %d at (%v, %v) left the viewport", tick, i, p.X, p.Y)
			}
		}
		for i, c := range f.Colors {
			if c.H < 0 || c.H > 360 || c.S < s.SMin || c.S > s.SMax || c.L < s.LMin || c.L > s.LMax {
				t.Fatalf("tick %d: color %d = %+v out of bounds", tick, i, c)
			}
		}
	}
	for _, p := range sim.points.Points() {
		if v := physics.Speed(p.VX, p.VY); v < s.VMin-1e-9 || v > s.VMax+1e-9 {
			t.Errorf("speed %v outside [%v, %v]", v, s.VMin, s.VMax)
		}
	}
}

func TestMessagesAgeEveryTick(t *testing.T) {
	sim := newTestSimulation(nil)
	sim.messages.Clear()
	sim.FlashMessage("once", 1)

	f := sim.Step()
	if len(f.Messages) != 1 || f.Messages[0].Text != "once" {
		t.Fatalf("first tick messages = %+v", f.Messages)
	}
	removedAt := 0
	for tick := 2; tick <= 20; tick++ {
		if f = sim.Step(); len(f.Messages) != 0 {
			t.Fatalf("tick %d: message still visible", tick)
		}
		if sim.messages.Len() == 0 {
			removedAt = tick
			break
		}
	}
	if removedAt == 0 || removedAt > 11 {
		t.Errorf("message removed at tick %d, want within 11", removedAt)
	}
}

func TestCurrentDoesNotAdvance(t *testing.T) {
	sim := newTestSimulation(nil)
	before := sim.Current()
	points := append([]float64(nil), before.Points[0].X, before.Points[0].Y)
	remaining := lastMessage(t, sim).Remaining

	f := sim.Current()
	if f.Repaint || f.Fade != 0 {
		t.Errorf("Current frame = %+v, want no repaint and no fade", f)
	}
	if f.Points[0].X != points[0] || f.Points[0].Y != points[1] {
		t.Error("Current moved a point")
	}
	if got := lastMessage(t, sim).Remaining; got != remaining {
		t.Errorf("Current aged messages: %d -> %d", remaining, got)
	}
	if len(f.Messages) != 1 {
		t.Errorf("visible messages = %d, want 1", len(f.Messages))
	}
}

func TestAdjustPointCount(t *testing.T) {
	sim := newTestSimulation(nil)

	if !sim.AdjustPointCount(1) {
		t.Fatal("AdjustPointCount(1) reported no change")
	}
	if got := lastMessage(t, sim).Text; got != "point added (now 9)" {
		t.Errorf("message = %q", got)
	}
	if got := len(sim.points.Points()); got != 10 {
		t.Errorf("len(points) = %d, want 10", got)
	}

	sim.AdjustPointCount(-1)
	if got := lastMessage(t, sim).Text; got != "point removed (8 remain)" {
		t.Errorf("message = %q", got)
	}

	sim.AdjustPointCount(200)
	if sim.Settings().NumPoints != 100 {
		t.Fatalf("NumPoints = %d, want 100", sim.Settings().NumPoints)
	}
	count := sim.messages.Len()
	if sim.AdjustPointCount(1) {
		t.Error("growing past the maximum reported a change")
	}
	if sim.messages.Len() != count {
		t.Error("unchanged count produced a message")
	}
}

func TestAdjustmentsClampSilently(t *testing.T) {
	sim := newTestSimulation(nil)

	if !sim.AdjustFadeSpeed(0.01) {
		t.Fatal("AdjustFadeSpeed reported no change")
	}
	if got := lastMessage(t, sim).Text; got != "increased fade speed to 6" {
		t.Errorf("message = %q", got)
	}

	sim.AdjustFadeSpeed(5)
	count := sim.messages.Len()
	if sim.AdjustFadeSpeed(0.01) {
		t.Error("fade speed above its bound reported a change")
	}
	if sim.Settings().FadeSpeed != 1 {
		t.Errorf("FadeSpeed = %v, want 1", sim.Settings().FadeSpeed)
	}
	if sim.messages.Len() != count {
		t.Error("clamped adjustment produced a message")
	}

	sim.AdjustSkipFrames(-10)
	if sim.Settings().SkipFrames != 0 {
		t.Errorf("SkipFrames = %d, want 0", sim.Settings().SkipFrames)
	}
	if got := lastMessage(t, sim).Text; got != "decreased skip frames to 0" {
		t.Errorf("message = %q", got)
	}
}

func TestAdjustSpeed(t *testing.T) {
	sim := newTestSimulation(nil)

	if sim.AdjustSpeed(-0.2) {
		t.Error("slowing down at the minimum reported a change")
	}
	if !sim.AdjustSpeed(0.2) {
		t.Fatal("AdjustSpeed(0.2) reported no change")
	}
	if got := lastMessage(t, sim).Text; got != "increased speed to [0.3, 3.2]" {
		t.Errorf("message = %q", got)
	}
	s := sim.Settings()
	for _, p := range sim.points.Points() {
		if v := physics.Speed(p.VX, p.VY); v < s.VMin-1e-9 || v > s.VMax+1e-9 {
			t.Errorf("speed %v outside [%v, %v] after shift", v, s.VMin, s.VMax)
		}
	}
}

func TestAdjustVelocityBounds(t *testing.T) {
	sim := newTestSimulation(nil)

	sim.AdjustVelocityMax(-10)
	if got := sim.Settings().VMax; got != sim.Settings().VMin {
		t.Errorf("VMax = %v, want clamped to VMin %v", got, sim.Settings().VMin)
	}
	sim.AdjustVelocityMin(5)
	if got := sim.Settings().VMin; got != sim.Settings().VMax {
		t.Errorf("VMin = %v, want clamped to VMax %v", got, sim.Settings().VMax)
	}
	sim.AdjustVelocityChange(-5)
	if got := sim.Settings().VChange; got != 0 {
		t.Errorf("VChange = %v, want 0", got)
	}
	if got := lastMessage(t, sim).Text; got != "decreased speed change to 0.0" {
		t.Errorf("message = %q", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := store.NewMemory()
	sim := newTestSimulation(st)
	sim.AdjustPointCount(4)
	sim.AdjustFadeSpeed(0.07)
	sim.AdjustSkipFrames(-3)
	sim.AdjustVelocityMax(1.3)
	sim.AdjustVelocityChange(0.5)
	saved := sim.Settings()

	if err := sim.SaveSettings("x"); err != nil {
		t.Fatal(err)
	}
	if got := lastMessage(t, sim).Text; got != "saved settings (x)" {
		t.Errorf("message = %q", got)
	}
	if _, err := st.Get("lines_x"); err != nil {
		t.Errorf("record not stored under lines_x: %v", err)
	}

	sim.LoadDefaults()
	if sim.Settings() == saved {
		t.Fatal("LoadDefaults kept the modified settings")
	}
	if got := len(sim.points.Points()); got != 9 {
		t.Errorf("len(points) after defaults = %d, want 9", got)
	}

	if err := sim.LoadSettings("x"); err != nil {
		t.Fatal(err)
	}
	if got := sim.Settings(); got != saved {
		t.Errorf("loaded settings = %+v, want %+v", got, saved)
	}
	if got := len(sim.points.Points()); got != saved.NumPoints+1 {
		t.Errorf("len(points) = %d, want %d", got, saved.NumPoints+1)
	}
	if got := lastMessage(t, sim).Text; got != "restoring settings from storage (x)" {
		t.Errorf("message = %q", got)
	}
}

func TestLoadMissingSlotChangesNothing(t *testing.T) {
	sim := newTestSimulation(nil)
	sim.AdjustPointCount(2)
	before := sim.Settings()
	points := sim.Current().Points
	first := points[0]
	count := sim.messages.Len()

	err := sim.LoadSettings("missing-slot")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if sim.Settings() != before {
		t.Error("settings changed")
	}
	if f := sim.Current(); len(f.Points) != len(points) || f.Points[0] != first {
		t.Error("points changed")
	}
	if got := sim.messages.Len() - count; got != 1 {
		t.Errorf("%d messages emitted, want 1", got)
	}
	if got := lastMessage(t, sim).Text; got != "no saved settings" {
		t.Errorf("message = %q", got)
	}
}

func TestLoadMalformedActsLikeMissing(t *testing.T) {
	st := store.NewMemory()
	if err := st.Set(settings.Key("lines", "default"), "{not json"); err != nil {
		t.Fatal(err)
	}
	sim := newTestSimulation(st)
	before := sim.Settings()

	if err := sim.LoadSettings(""); !errors.Is(err, settings.ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
	if sim.Settings() != before {
		t.Error("settings changed")
	}
	if got := lastMessage(t, sim).Text; got != "no saved settings" {
		t.Errorf("message = %q", got)
	}
}

func TestStoreFailuresAreReported(t *testing.T) {
	sim := newTestSimulation(failingStore{})

	if err := sim.SaveSettings(""); !errors.Is(err, errBroken) {
		t.Errorf("save err = %v", err)
	}
	if got := lastMessage(t, sim).Text; got != "could not save settings (default)" {
		t.Errorf("message = %q", got)
	}
	if err := sim.LoadSettings(""); !errors.Is(err, errBroken) {
		t.Errorf("load err = %v", err)
	}
	if got := lastMessage(t, sim).Text; got != "could not load settings (default)" {
		t.Errorf("message = %q", got)
	}
}

func TestTogglePlayPause(t *testing.T) {
	sim := newTestSimulation(nil)
	sim.FlashMessage("one", 0)
	sim.FlashMessage("two", 0)

	sim.TogglePlayPause()
	if sim.Playing() {
		t.Fatal("still playing after pause")
	}
	msgs := sim.messages.Messages()
	if len(msgs) != 1 || msgs[0].Text != "paused" {
		t.Errorf("messages after pause = %+v", msgs)
	}

	sim.TogglePlayPause()
	if !sim.Playing() {
		t.Fatal("not playing after resume")
	}
	if got := lastMessage(t, sim).Text; got != "playing" {
		t.Errorf("message = %q", got)
	}
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		action input.Action
		check  func(s settings.Settings) bool
	}{
		{input.ActionAddPoint, func(s settings.Settings) bool { return s.NumPoints == 9 }},
		{input.ActionRemovePoint, func(s settings.Settings) bool { return s.NumPoints == 7 }},
		{input.ActionFadeFaster, func(s settings.Settings) bool { return approx(s.FadeSpeed, 0.06) }},
		{input.ActionFadeSlower, func(s settings.Settings) bool { return approx(s.FadeSpeed, 0.04) }},
		{input.ActionSkipMore, func(s settings.Settings) bool { return s.SkipFrames == 5 }},
		{input.ActionSkipFewer, func(s settings.Settings) bool { return s.SkipFrames == 3 }},
		{input.ActionSpeedUp, func(s settings.Settings) bool { return approx(s.VMin, 0.3) && approx(s.VMax, 3.2) }},
		{input.ActionMoreSpeedChange, func(s settings.Settings) bool { return approx(s.VChange, 0.3) }},
		{input.ActionLessSpeedChange, func(s settings.Settings) bool { return approx(s.VChange, 0.1) }},
		{input.ActionRaiseMinSpeed, func(s settings.Settings) bool { return approx(s.VMin, 0.2) }},
		{input.ActionRaiseMaxSpeed, func(s settings.Settings) bool { return approx(s.VMax, 3.1) }},
		{input.ActionLowerMaxSpeed, func(s settings.Settings) bool { return approx(s.VMax, 2.9) }},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			sim := newTestSimulation(nil)
			sim.Dispatch(tt.action)
			if s := sim.Settings(); !tt.check(s) {
				t.Errorf("settings after %v = %+v", tt.action, s)
			}
		})
	}
}

func TestDispatchSaveLoadDefaultsAndPlay(t *testing.T) {
	sim := newTestSimulation(nil)

	sim.Dispatch(input.ActionLoad)
	if got := lastMessage(t, sim).Text; got != "no saved settings" {
		t.Errorf("load message = %q", got)
	}

	sim.Dispatch(input.ActionAddPoint)
	sim.Dispatch(input.ActionSave)
	sim.Dispatch(input.ActionDefaults)
	if sim.Settings().NumPoints != 8 {
		t.Errorf("NumPoints after defaults = %d", sim.Settings().NumPoints)
	}
	sim.Dispatch(input.ActionLoad)
	if sim.Settings().NumPoints != 9 {
		t.Errorf("NumPoints after load = %d", sim.Settings().NumPoints)
	}

	sim.Dispatch(input.ActionTogglePlay)
	if sim.Playing() {
		t.Error("toggle did not pause")
	}
}

func TestDispatchUnknown(t *testing.T) {
	sim := newTestSimulation(nil)
	before := sim.Settings()

	sim.Dispatch(input.ActionUnknown)
	m := lastMessage(t, sim)
	if m.Text != "unknown key" {
		t.Errorf("message = %q", m.Text)
	}
	if want := before.MessageDuration / 2; m.Remaining != want {
		t.Errorf("duration = %d, want %d", m.Remaining, want)
	}
	if sim.Settings() != before {
		t.Error("unknown action changed settings")
	}

	count := sim.messages.Len()
	sim.Dispatch(input.ActionQuit)
	sim.Dispatch(input.ActionNone)
	if sim.messages.Len() != count {
		t.Error("quit or none produced a message")
	}
}

func TestResize(t *testing.T) {
	sim := newTestSimulation(nil)
	sim.Resize(20, 10)

	for range 200 {
		f := sim.Step()
		for _, p := range f.Points {
			if p.X < 0 || p.X > 20 || p.Y < 0 || p.Y > 10 {
				t.Fatalf("point (%v, %v) outside resized viewport", p.X, p.Y)
			}
		}
	}
}

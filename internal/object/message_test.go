package object

import (
	"testing"

	"github.com/tomz197/lines/internal/settings"
)

func TestFlashStacksAndWraps(t *testing.T) {
	s := settings.Defaults() // MessagePos {2,2}, MessageHeight 2
	screen := Screen{Width: 80, Height: 7}
	var q MessageQueue

	wantY := []float64{2, 4, 6, 2, 4}
	for i, want := range wantY {
		q.Flash("msg", 0, screen, s)
		m := q.Messages()[i]
		if m.Position.Y != want || m.Position.X != s.MessagePos.X {
			t.Errorf("message %d at (%v, %v), want (%v, %v)", i, m.Position.X, m.Position.Y, s.MessagePos.X, want)
		}
	}
}

func TestFlashDefaultDuration(t *testing.T) {
	s := settings.Defaults()
	var q MessageQueue
	q.Flash("a", 0, testScreen, s)
	q.Flash("b", 7, testScreen, s)
	if got := q.Messages()[0].Remaining; got != s.MessageDuration {
		t.Errorf("default duration = %d, want %d", got, s.MessageDuration)
	}
	if got := q.Messages()[1].Remaining; got != 7 {
		t.Errorf("explicit duration = %d, want 7", got)
	}
}

func TestMessageWithDurationOneLifecycle(t *testing.T) {
	s := settings.Defaults()
	var q MessageQueue
	q.Flash("once", 1, testScreen, s)

	var visible []Message
	shown := 0
	removedAt := 0
	for tick := 1; tick <= 20; tick++ {
		visible = q.Age(visible)
		shown += len(visible)
		if q.Len() == 0 {
			removedAt = tick
			break
		}
	}
	if shown != 1 {
		t.Errorf("message shown on %d ticks, want 1", shown)
	}
	if removedAt == 0 || removedAt > 11 {
		t.Errorf("message removed at tick %d, want within 11 ticks", removedAt)
	}
}

func TestAgeKeepsLayoutWhileLingering(t *testing.T) {
	s := settings.Defaults()
	var q MessageQueue
	q.Flash("first", 1, testScreen, s)
	q.Age(nil)
	q.Age(nil)

	// The first message is no longer drawn but still anchors the layout.
	q.Flash("second", 0, testScreen, s)
	if got := q.Messages()[1].Position.Y; got != s.MessagePos.Y+s.MessageHeight {
		t.Errorf("second message y = %v, want %v", got, s.MessagePos.Y+s.MessageHeight)
	}
	visible := q.Visible(nil)
	if len(visible) != 1 || visible[0].Text != "second" {
		t.Errorf("Visible = %+v", visible)
	}
}

func TestClear(t *testing.T) {
	s := settings.Defaults()
	var q MessageQueue
	q.Flash("a", 0, testScreen, s)
	q.Flash("b", 0, testScreen, s)
	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Len after Clear = %d", q.Len())
	}
	q.Flash("c", 0, testScreen, s)
	if got := q.Messages()[0].Position.Y; got != s.MessagePos.Y {
		t.Errorf("first message after Clear at y = %v", got)
	}
}

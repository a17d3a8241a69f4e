package object

import (
	"testing"

	"github.com/tomz197/lines/internal/settings"
)

// fixedRand always returns the same value.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

func TestWalkTurnsAroundAtBounds(t *testing.T) {
	b := settings.Bound[float64]{Min: 55, Max: 100}

	v, dir := walk(98, Increasing, b, 10, fixedRand(0.5))
	if v != 100 || dir != Decreasing {
		t.Errorf("walk up = %v %v, want 100 Decreasing", v, dir)
	}

	v, dir = walk(57, Decreasing, b, 10, fixedRand(0.5))
	if v != 55 || dir != Increasing {
		t.Errorf("walk down = %v %v, want 55 Increasing", v, dir)
	}

	v, dir = walk(70, Decreasing, b, 10, fixedRand(0.5))
	if v != 65 || dir != Decreasing {
		t.Errorf("walk inside = %v %v, want 65 Decreasing", v, dir)
	}
}

func TestStepColorAdvancesEveryChannel(t *testing.T) {
	s := settings.Defaults()
	p := &Point{H: 180, S: 70, L: 60, HDir: Increasing, SDir: Decreasing, LDir: Increasing}
	c := p.StepColor(s, fixedRand(0.1))

	if c.H != 181 || c.S != 69 || c.L != 61 || c.A != 1 {
		t.Errorf("StepColor = %+v", c)
	}
}

func TestHSLAString(t *testing.T) {
	c := HSLA{H: 359.6, S: 54.4, L: 45.5, A: 1}
	if got := c.String(); got != "hsla(360,54%,46%,1)" {
		t.Errorf("String = %q", got)
	}
}

func TestHSLARGB(t *testing.T) {
	r, g, b := HSLA{H: 0, S: 100, L: 50, A: 1}.RGB().RGB255()
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("RGB = %d %d %d, want pure red", r, g, b)
	}
}

func TestDirectionSign(t *testing.T) {
	if Increasing.Sign() != 1 || Decreasing.Sign() != -1 {
		t.Error("unexpected direction signs")
	}
}

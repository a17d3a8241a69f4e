package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 1)
	cw.WriteAt(2, 2, "hi")
	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "\033[3;5Hhi"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if cw.Len() != 0 {
		t.Error("buffer not reset after Flush")
	}
}

func TestChunkWriterColoredText(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	cw.WriteColoredAt(1, 1, "paused", RGB{170, 170, 170})
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"\033[1;1H", "\033[38;2;170;170;170m", "\033[48;2;0;0;0m", "paused", ColorReset} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestChunkWriterLargeFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	text := strings.Repeat("x", maxChunkSize*3+7)
	cw.WriteString(text)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != text {
		t.Errorf("flushed %d bytes, want %d", out.Len(), len(text))
	}
}

func TestFitTerminal(t *testing.T) {
	w, h, col, row := FitTerminal(300, 100, 200, 60)
	if w != 200 || h != 60 || col != 50 || row != 20 {
		t.Errorf("FitTerminal = %d %d %d %d", w, h, col, row)
	}
	w, h, col, row = FitTerminal(80, 24, 200, 60)
	if w != 80 || h != 24 || col != 0 || row != 0 {
		t.Errorf("FitTerminal small = %d %d %d %d", w, h, col, row)
	}
}

package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/lines/internal/config"
	"github.com/tomz197/lines/internal/draw"
	"github.com/tomz197/lines/internal/object"
)

// textSpan is a run of terminal cells covered by overlay text.
type textSpan struct {
	col, row, length int
}

var defaultMessageRGB = draw.RGB{R: 0xAA, G: 0xAA, B: 0xAA}

// drawFrame fades the canvas, draws the lines of a repaint tick and writes
// the message overlay on top.
func (c *Client) drawFrame(f Frame) error {
	// Entering or leaving the inactivity warning redraws everything
	if c.isInactive != c.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.textCells = c.textCells[:0]
		c.wasInactive = c.isInactive
	}

	c.canvas.Fade(f.Fade)
	if f.Repaint {
		c.drawLines(f)
	}

	// Cells under last frame's text show the canvas again unless rewritten
	for _, span := range c.textCells {
		c.canvas.MarkTextDirty(span.col, span.row, span.length)
	}
	c.textCells = c.textCells[:0]

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	if c.isInactive {
		c.drawInactivityScreen()
	} else {
		c.drawMessages(f.Messages)
	}

	return c.chunkWriter.Flush()
}

// drawLines draws a gradient segment between each pair of neighbouring points.
func (c *Client) drawLines(f Frame) {
	for i := 0; i+1 < len(f.Points) && i+1 < len(f.Colors); i++ {
		c.canvas.DrawGradientLine(f.Points[i], f.Points[i+1], f.Colors[i].RGB(), f.Colors[i+1].RGB())
	}
}

// drawMessages writes each visible message at its position in the configured color.
func (c *Client) drawMessages(messages []object.Message) {
	if len(messages) == 0 {
		return
	}
	fg := c.messageColorRGB()
	for _, m := range messages {
		col, row := c.canvas.LogicalToTerminal(m.Position.X, m.Position.Y)
		c.writeText(col, row, m.Text, fg)
	}
}

// messageColorRGB parses the configured message color, caching the result.
func (c *Client) messageColorRGB() draw.RGB {
	hex := c.sim.Settings().MessageColor
	if hex != c.messageColor {
		c.messageColor = hex
		c.messageRGB = draw.ParseHex(hex, defaultMessageRGB)
	}
	return c.messageRGB
}

// writeText writes text clipped to the canvas and remembers the covered cells.
func (c *Client) writeText(col, row int, text string, fg draw.RGB) {
	if row < 1 || row > c.canvas.TerminalHeight() || col < 1 || col > c.canvas.TerminalWidth() {
		return
	}
	runes := []rune(text)
	if room := c.canvas.TerminalWidth() - col + 1; len(runes) > room {
		runes = runes[:room]
	}
	c.chunkWriter.WriteColoredAt(col, row, string(runes), fg)
	c.textCells = append(c.textCells, textSpan{col: col, row: row, length: len(runes)})
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen() {
	centerX := c.canvas.TerminalWidth() / 2
	centerY := c.canvas.TerminalHeight() / 2

	title := "INACTIVITY WARNING"
	c.writeText(centerX-len(title)/2, centerY-2, title, defaultMessageRGB)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeText(max(centerX-len(msg)/2, 1), centerY, msg, defaultMessageRGB)

	hint := "Press any key to continue"
	c.writeText(centerX-len(hint)/2, centerY+2, hint, defaultMessageRGB)
}

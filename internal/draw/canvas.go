// Package draw renders the simulation to a terminal.
package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate in canvas sub-pixels.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// pixel is a linear color channel triple in [0,1]. Float storage keeps slow
// fades from stalling on 8-bit rounding.
type pixel struct {
	r, g, b float32
}

// cell is what one terminal character shows: two stacked sub-pixels.
type cell struct {
	top, bottom RGB
}

// fadeFloor is the channel level under which a fading pixel snaps to black.
const fadeFloor = 0.5 / 255

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters. Canvas coordinates map 1:1 to sub-pixels: x is the
// terminal column, y is twice the terminal row.
//
// Render only emits cells that changed since the previous render.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []pixel // Flat slice: [y * termWidth + x]

	rendered    []cell // What the terminal currently shows, per cell
	dirty       []bool // Cells overwritten by text since the last render
	forceRedraw bool

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewCanvas creates a canvas for the given terminal dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize updates the canvas for new terminal dimensions. Content is dropped
// when the size actually changes.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth == c.termWidth && termHeight == c.termHeight {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]pixel, c.subPixelHeight*termWidth)
	c.rendered = make([]cell, termWidth*termHeight)
	c.dirty = make([]bool, termWidth*termHeight)
	c.forceRedraw = true
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Width returns the canvas width in sub-pixels.
func (c *Canvas) Width() int {
	return c.termWidth
}

// Height returns the canvas height in sub-pixels.
func (c *Canvas) Height() int {
	return c.subPixelHeight
}

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Clear resets all pixels to black.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render emit every lit cell. Call it after the
// terminal has been cleared.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// Fade darkens every pixel by rate (0..1), the equivalent of painting a
// translucent black layer over the whole canvas.
func (c *Canvas) Fade(rate float64) {
	keep := float32(1 - math.Min(math.Max(rate, 0), 1))
	for i := range c.pixels {
		p := &c.pixels[i]
		if *p == (pixel{}) {
			continue
		}
		p.r *= keep
		p.g *= keep
		p.b *= keep
		if p.r < fadeFloor && p.g < fadeFloor && p.b < fadeFloor {
			*p = pixel{}
		}
	}
}

// set paints the sub-pixel at (x, y) if it lies on the canvas.
func (c *Canvas) set(x, y int, col colorful.Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		col = col.Clamped()
		c.pixels[y*c.termWidth+x] = pixel{float32(col.R), float32(col.G), float32(col.B)}
	}
}

// At returns the quantized color of the sub-pixel at (x, y).
func (c *Canvas) At(x, y int) RGB {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return Black
	}
	return quantize(c.pixels[y*c.termWidth+x])
}

// DrawLine draws a single-color line using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, col colorful.Color) {
	c.DrawGradientLine(p1, p2, col, col)
}

// DrawGradientLine draws a line using Bresenham's algorithm, blending the
// color from `from` at p1 to `to` at p2.
func (c *Canvas) DrawGradientLine(p1, p2 Point, from, to colorful.Color) {
	x1, y1 := int(math.Round(p1.X)), int(math.Round(p1.Y))
	x2, y2 := int(math.Round(p2.X)), int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	steps := max(dx, dy)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		c.set(x1, y1, from.BlendRgb(to, t))

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// MarkTextDirty marks cells overwritten by text so the next Render repaints
// them. col and row are 1-based canvas positions.
func (c *Canvas) MarkTextDirty(col, row, length int) {
	if row < 1 || row > c.termHeight {
		return
	}
	start := max(col-1, 0)
	end := min(col-1+length, c.termWidth)
	offset := (row - 1) * c.termWidth
	for i := start; i < end; i++ {
		c.dirty[offset+i] = true
	}
}

// LogicalToTerminal converts canvas coordinates to a 1-based canvas position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	return int(math.Round(x)) + 1, int(math.Round(y))/2 + 1
}

func quantize(p pixel) RGB {
	return RGB{R: channel(p.r), G: channel(p.g), B: channel(p.b)}
}

func channel(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes every changed cell to w using half-block characters: the
// foreground color paints the upper sub-pixel, the background the lower one.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	var fg, bg RGB
	styled := false // whether fg/bg are active on the terminal
	lastRow, lastCol := -1, -1

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			cl := cell{
				top:    quantize(c.pixels[topOffset+col]),
				bottom: quantize(c.pixels[bottomOffset+col]),
			}
			blank := cl.top == Black && cl.bottom == Black

			switch {
			case c.forceRedraw && blank:
				// Terminal was cleared; nothing to paint.
				c.rendered[idx] = cl
				c.dirty[idx] = false
				continue
			case !c.forceRedraw && !c.dirty[idx] && c.rendered[idx] == cl:
				continue
			}
			c.rendered[idx] = cl
			c.dirty[idx] = false

			if row != lastRow || col != lastCol+1 {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			lastRow, lastCol = row, col

			if blank {
				if styled {
					c.renderBuf.WriteString(ColorReset)
					styled = false
				}
				c.renderBuf.WriteByte(' ')
				continue
			}
			if !styled || fg != cl.top {
				writeSGR(&c.renderBuf, c.numBuf[:], 38, cl.top)
				fg = cl.top
			}
			if !styled || bg != cl.bottom {
				writeSGR(&c.renderBuf, c.numBuf[:], 48, cl.bottom)
				bg = cl.bottom
			}
			styled = true
			c.renderBuf.WriteRune(BlockUpperHalf)
		}
	}
	if styled {
		c.renderBuf.WriteString(ColorReset)
	}
	c.forceRedraw = false

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

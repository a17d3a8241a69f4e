package draw

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorReset restores the terminal's default colors.
const ColorReset = "\033[0m"

// RGB is a 24-bit terminal color.
type RGB struct {
	R, G, B uint8
}

// Black is the background the canvas fades to.
var Black = RGB{}

// FromColorful converts a go-colorful color, clamping it into gamut.
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// ParseHex parses "#rgb" or "#rrggbb", falling back to fallback on error.
func ParseHex(s string, fallback RGB) RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return FromColorful(c)
}

// writeSGR appends a truecolor SGR sequence; code is 38 for foreground, 48 for background.
func writeSGR(buf *strings.Builder, scratch []byte, code int, c RGB) {
	buf.WriteString("\033[")
	buf.Write(strconv.AppendInt(scratch[:0], int64(code), 10))
	buf.WriteString(";2;")
	buf.Write(strconv.AppendInt(scratch[:0], int64(c.R), 10))
	buf.WriteByte(';')
	buf.Write(strconv.AppendInt(scratch[:0], int64(c.G), 10))
	buf.WriteByte(';')
	buf.Write(strconv.AppendInt(scratch[:0], int64(c.B), 10))
	buf.WriteByte('m')
}

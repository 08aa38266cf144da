package draw

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ANSI SGR sequences used for overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorDim        = "\033[2m"
	ColorBrightCyan = "\033[96m"
	ColorYellow     = "\033[33m"
)

// Foreground returns the 24-bit foreground escape for c.
func Foreground(c colorful.Color) string {
	var b strings.Builder
	writeRGB(&b, "\033[38;2;", c)
	return b.String()
}

// Background returns the 24-bit background escape for c.
func Background(c colorful.Color) string {
	var b strings.Builder
	writeRGB(&b, "\033[48;2;", c)
	return b.String()
}

func writeRGB(b *strings.Builder, prefix string, c colorful.Color) {
	r, g, bl := c.Clamped().RGB255()
	var num [4]byte
	b.WriteString(prefix)
	b.Write(strconv.AppendUint(num[:0], uint64(r), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendUint(num[:0], uint64(g), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendUint(num[:0], uint64(bl), 10))
	b.WriteByte('m')
}

// cellStyle is the foreground/background pair for one rendered cell.
type cellStyle struct {
	fg, bg       colorful.Color
	hasFg, hasBg bool
}

func (s cellStyle) write(b *strings.Builder) {
	b.WriteString(ColorReset)
	if s.hasFg {
		writeRGB(b, "\033[38;2;", s.fg)
	}
	if s.hasBg {
		writeRGB(b, "\033[48;2;", s.bg)
	}
}

// styleFor picks the half-block glyph and colours that display cell.
// Two differently coloured halves use the upper block on a coloured background.
func styleFor(cell Cell) (rune, cellStyle) {
	switch {
	case cell.TopSet && cell.BottomSet:
		if cell.Top == cell.Bottom {
			return BlockFull, cellStyle{fg: cell.Top, hasFg: true}
		}
		return BlockUpperHalf, cellStyle{fg: cell.Top, bg: cell.Bottom, hasFg: true, hasBg: true}
	case cell.TopSet:
		return BlockUpperHalf, cellStyle{fg: cell.Top, hasFg: true}
	case cell.BottomSet:
		return BlockLowerHalf, cellStyle{fg: cell.Bottom, hasFg: true}
	default:
		return ' ', cellStyle{}
	}
}

// writeCursor appends an absolute 1-based cursor move.
func writeCursor(b *strings.Builder, col, row int) {
	var num [20]byte
	b.WriteString("\033[")
	b.Write(strconv.AppendInt(num[:0], int64(row), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(num[:0], int64(col), 10))
	b.WriteByte('H')
}

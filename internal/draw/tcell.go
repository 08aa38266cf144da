package draw

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// CellSetter is the part of tcell.Screen the canvas writes to.
type CellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var _ CellSetter = (tcell.Screen)(nil)

// TcellColor converts c to a 24-bit tcell colour.
func TcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Present copies every canvas cell to dst at the canvas offset.
// tcell does its own diffing on Show, so all cells are written each frame.
func (c *Canvas) Present(dst CellSetter) {
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			ch, s := styleFor(c.Cell(col, row))
			st := tcell.StyleDefault
			if s.hasFg {
				st = st.Foreground(TcellColor(s.fg))
			}
			if s.hasBg {
				st = st.Background(TcellColor(s.bg))
			}
			dst.SetContent(col+c.offsetCol, row+c.offsetRow, ch, nil, st)
		}
	}
}

// PutText writes s on dst starting at the 1-based canvas position (col, row).
func (c *Canvas) PutText(dst CellSetter, col, row int, s string, style tcell.Style) {
	x := col - 1 + c.offsetCol
	for _, r := range s {
		dst.SetContent(x, row-1+c.offsetRow, r, nil, style)
		x++
	}
}

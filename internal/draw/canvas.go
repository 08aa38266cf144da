// Package draw renders the arena to a terminal using half-block characters.
package draw

import (
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical (arena) coordinates to actual terminal pixels.
// Render only rewrites cells that changed since the previous frame.
type Canvas struct {
	termWidth      int              // Actual terminal columns
	termHeight     int              // Actual terminal rows
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]
	set            []bool           // true if the pixel was drawn this frame

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	prev      []Cell // What the terminal currently shows, per cell
	prevValid []bool // false forces the cell to be rewritten on the next Render

	renderBuf strings.Builder
}

// Cell is one terminal character cell: two stacked sub-pixels.
type Cell struct {
	Top       colorful.Color
	Bottom    colorful.Color
	TopSet    bool
	BottomSet bool
}

// Empty reports whether neither half of the cell was drawn.
func (c Cell) Empty() bool {
	return !c.TopSet && !c.BottomSet
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the arena coordinate space.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.allocate(termWidth, termHeight)
	return c
}

func (c *Canvas) allocate(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]colorful.Color, c.subPixelHeight*termWidth)
	c.set = make([]bool, c.subPixelHeight*termWidth)
	c.prev = make([]Cell, termHeight*termWidth)
	c.prevValid = make([]bool, termHeight*termWidth)
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.allocate(termWidth, termHeight)
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
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

// Clear resets all pixels in the canvas. The diff state is kept.
func (c *Canvas) Clear() {
	clear(c.set)
}

// ForceRedraw makes the next Render rewrite every cell, e.g. after the terminal was cleared.
func (c *Canvas) ForceRedraw() {
	clear(c.prevValid)
}

// MarkTextDirty invalidates n cells starting at the 1-based canvas position (col, row),
// so text written over the canvas there is overwritten on the next Render.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.prevValid[r*c.termWidth+x] = false
		}
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col colorful.Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = col
		c.set[i] = true
	}
}

// FillCircle fills a disk given in logical coordinates. Unequal horizontal and
// vertical scales turn it into an axis-aligned ellipse in pixel space.
// A disk smaller than a pixel still marks its center.
func (c *Canvas) FillCircle(x, y, r float64, col colorful.Color) {
	cx, cy := x*c.scaleX, y*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	c.setPixel(int(math.Round(cx)), int(math.Round(cy)), col)
	if !(rx > 0) || !(ry > 0) {
		return
	}

	yStart := int(math.Ceil(cy - ry))
	yEnd := int(math.Floor(cy + ry))
	if yStart < 0 {
		yStart = 0
	}
	if yEnd >= c.subPixelHeight {
		yEnd = c.subPixelHeight - 1
	}
	for py := yStart; py <= yEnd; py++ {
		dy := (float64(py) - cy) / ry
		half := rx * math.Sqrt(math.Max(0, 1-dy*dy))
		xStart := int(math.Ceil(cx - half))
		xEnd := int(math.Floor(cx + half))
		for px := xStart; px <= xEnd; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// Line draws a line using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) Line(x1f, y1f, x2f, y2f float64, col colorful.Color) {
	x1 := int(math.Round(x1f * c.scaleX))
	y1 := int(math.Round(y1f * c.scaleY))
	x2 := int(math.Round(x2f * c.scaleX))
	y2 := int(math.Round(y2f * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

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

// Cell returns the cell at 0-based canvas column and row.
func (c *Canvas) Cell(col, row int) Cell {
	var cell Cell
	if col < 0 || col >= c.termWidth || row < 0 || row >= c.termHeight {
		return cell
	}
	top := row*2*c.termWidth + col
	bottom := top + c.termWidth
	if c.set[top] {
		cell.Top, cell.TopSet = c.pixels[top], true
	}
	if c.set[bottom] {
		cell.Bottom, cell.BottomSet = c.pixels[bottom], true
	}
	return cell
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the changed cells to the writer using half-block characters
// and 24-bit colour escapes.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	var style cellStyle
	styled := false
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			cell := c.Cell(col, row)
			if c.prevValid[i] && c.prev[i] == cell {
				continue
			}
			c.prev[i] = cell
			c.prevValid[i] = true

			writeCursor(&c.renderBuf, col+1+c.offsetCol, row+1+c.offsetRow)
			ch, s := styleFor(cell)
			if !styled || s != style {
				s.write(&c.renderBuf)
				style, styled = s, true
			}
			c.renderBuf.WriteRune(ch)
		}
	}
	if styled {
		c.renderBuf.WriteString(ColorReset)
	}

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

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder

	if hasV {
		if hasH {
			writeCursor(&buf, left, top)
			buf.WriteString("┌" + strings.Repeat("─", c.termWidth) + "┐")
			writeCursor(&buf, left, bottom)
			buf.WriteString("└" + strings.Repeat("─", c.termWidth) + "┘")
		} else {
			writeCursor(&buf, c.offsetCol+1, top)
			buf.WriteString(strings.Repeat("─", c.termWidth))
			writeCursor(&buf, c.offsetCol+1, bottom)
			buf.WriteString(strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			writeCursor(&buf, left, row)
			buf.WriteString("│")
			writeCursor(&buf, right, row)
			buf.WriteString("│")
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width (arena width).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (arena height).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the canvas column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based absolute terminal position (as reported
// by mouse events) to logical coordinates at the center of that cell.
// The centering offset is removed first.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col - 1 - c.offsetCol)
	py := float64(row-1-c.offsetRow)*2 + 0.5
	return px / c.scaleX, py / c.scaleY
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package loop

import (
	"bufio"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/bounce/internal/draw"
	"github.com/tomz197/bounce/internal/input"
)

// Frontend is the terminal the local loop draws to and reads input from.
type Frontend interface {
	// Size returns the terminal size in cells.
	Size() (cols, rows int, err error)
	// Poll returns the input that arrived since the last call without blocking.
	Poll() []input.Event
	// Clear wipes the whole terminal, e.g. after a resize.
	Clear()
	// Present shows the canvas with the HUD on top.
	Present(c *draw.Canvas, hud HUD) error
}

// ANSIFrontend drives a raw-mode terminal with escape sequences.
type ANSIFrontend struct {
	w      io.Writer
	out    *draw.ChunkWriter
	stream *input.Stream
	size   draw.TermSizeFunc
}

var _ Frontend = (*ANSIFrontend)(nil)

// NewANSIFrontend reads keys and SGR mouse reports from r and writes frames to w.
// A nil size function uses the size of os.Stdout.
func NewANSIFrontend(r *bufio.Reader, w io.Writer, size draw.TermSizeFunc) *ANSIFrontend {
	if size == nil {
		size = draw.DefaultTermSizeFunc
	}
	return &ANSIFrontend{
		w:      w,
		out:    draw.NewChunkWriter(w, 0, 0),
		stream: input.StartStream(r),
		size:   size,
	}
}

// Start prepares the terminal: hidden cursor, mouse tracking, blank screen.
func (f *ANSIFrontend) Start() {
	draw.HideCursor(f.w)
	draw.EnableMouse(f.w)
	draw.ClearScreen(f.w)
}

// Stop restores the terminal.
func (f *ANSIFrontend) Stop() {
	io.WriteString(f.w, draw.ColorReset)
	draw.DisableMouse(f.w)
	draw.ClearScreen(f.w)
	draw.ShowCursor(f.w)
}

func (f *ANSIFrontend) Size() (int, int, error) {
	return draw.TerminalSizeRawWith(f.size)
}

// Poll reports a closed input stream as a quit request.
func (f *ANSIFrontend) Poll() []input.Event {
	events := input.ReadEvents(f.stream)
	if f.stream.Closed() {
		events = append(events, input.Event{Kind: input.Quit})
	}
	return events
}

func (f *ANSIFrontend) Clear() {
	f.out.WriteString("\033[H\033[2J")
}

func (f *ANSIFrontend) Present(c *draw.Canvas, hud HUD) error {
	f.out.SetOffset(c.OffsetCol(), c.OffsetRow())
	c.Render(f.out)
	c.RenderBorder(f.out)
	writeHUD(f.out, c, hud)
	return f.out.Flush()
}

// writeHUD writes the overlay lines and marks their cells dirty so the
// canvas repaints them when the text changes or disappears.
func writeHUD(out *draw.ChunkWriter, c *draw.Canvas, hud HUD) {
	status := hud.Status()
	help := hud.Help()
	out.WriteString(draw.ColorReset)
	out.WriteAt(2, 1, status)
	c.MarkTextDirty(2, 1, len(status))
	if row := c.TerminalHeight(); row > 1 {
		out.WriteAt(2, row, help)
		c.MarkTextDirty(2, row, len(help))
	}
}

// TcellFrontend draws through a tcell screen, which also supplies native mouse events.
type TcellFrontend struct {
	screen tcell.Screen
	events chan tcell.Event
	tr     input.Translator
}

var _ Frontend = (*TcellFrontend)(nil)

// NewTcellFrontend takes over an initialized screen and starts reading its events.
func NewTcellFrontend(screen tcell.Screen) *TcellFrontend {
	f := &TcellFrontend{
		screen: screen,
		events: make(chan tcell.Event, 128),
	}
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	screen.HideCursor()
	screen.Clear()
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(f.events)
				return
			}
			f.events <- ev
		}
	}()
	return f
}

// Stop releases the screen; the event goroutine exits once PollEvent returns nil.
func (f *TcellFrontend) Stop() {
	f.screen.Fini()
}

func (f *TcellFrontend) Size() (int, int, error) {
	w, h := f.screen.Size()
	return w, h, nil
}

func (f *TcellFrontend) Poll() []input.Event {
	var out []input.Event
	for {
		select {
		case ev, ok := <-f.events:
			if !ok {
				return append(out, input.Event{Kind: input.Quit})
			}
			if e, ok := f.tr.Translate(ev); ok {
				out = append(out, e)
			}
		default:
			return out
		}
	}
}

func (f *TcellFrontend) Clear() {
	f.screen.Clear()
}

func (f *TcellFrontend) Present(c *draw.Canvas, hud HUD) error {
	c.Present(f.screen)
	c.PutText(f.screen, 2, 1, hud.Status(), tcell.StyleDefault)
	if row := c.TerminalHeight(); row > 1 {
		c.PutText(f.screen, 2, row, hud.Help(), tcell.StyleDefault)
	}
	f.screen.Show()
	return nil
}

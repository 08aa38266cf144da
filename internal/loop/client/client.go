package client

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/bounce/internal/draw"
	"github.com/tomz197/bounce/internal/input"
	"github.com/tomz197/bounce/internal/loop"
	"github.com/tomz197/bounce/internal/loop/config"
	"github.com/tomz197/bounce/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	username := opts.Username
	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}

	handle := gs.RegisterClient(username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := loop.ClampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ArenaWidth, config.ArenaHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     username,
		termSizeFunc: termSizeFunc,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := c.frame(frameStart); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	io.WriteString(c.writer, draw.ColorReset)
	draw.ClearScreen(c.writer)
	return nil
}

// frame runs one client frame: input, server events, resize, state, draw.
func (c *Client) frame(now time.Time) error {
	events := input.ReadEvents(c.inputStream)
	if c.inputStream.Closed() {
		c.state.Running = false
	}
	c.handleInput(events, now)
	c.processServerEvents()
	c.updateScreen()
	if c.state.View == ViewShutdown {
		c.updateShutdownState()
	}
	return c.drawFrame(now)
}

// handleInput tracks activity and forwards input to the server.
func (c *Client) handleInput(events []input.Event, now time.Time) {
	if len(events) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	} else if idle := now.Sub(c.lastInput).Seconds(); idle > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if idle > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	for _, ev := range events {
		if ev.Kind == input.Quit {
			c.state.Running = false
			return
		}
		switch c.state.View {
		case ViewStart:
			if ev.Kind != input.PointerMove && ev.Kind != input.PointerRelease {
				c.state.View = ViewArena
			}
		case ViewArena:
			c.handleArenaInput(ev)
		}
	}
}

func (c *Client) handleArenaInput(ev input.Event) {
	switch ev.Kind {
	case input.Pause:
		c.server.TogglePause(c.handle.ID)
	case input.ToggleIndicators:
		c.state.Indicators = !c.state.Indicators
	default:
		if pe, ok := loop.PointerEvent(ev, c.canvas); ok {
			c.server.SendPointer(c.handle.ID, pe)
		}
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.View = ViewShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := loop.ClampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

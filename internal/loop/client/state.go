package client

import (
	"time"

	"github.com/tomz197/bounce/internal/draw"
)

// ViewState represents the current screen for a client.
type ViewState int

const (
	ViewStart    ViewState = iota // Title screen
	ViewArena                     // Watching and dragging in the shared arena
	ViewShutdown                  // Server is shutting down
)

// ClientState holds per-connection view state.
// Each client has its own instance, managed by the Client.
type ClientState struct {
	View          ViewState
	Indicators    bool              // Velocity lines, toggled per client
	Running       bool              // Client loop running
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	delta         time.Duration     // Frame delta time (client-side)
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	prevView      ViewState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		View:       ViewStart,
		Indicators: true,
		Running:    true,
	}
}

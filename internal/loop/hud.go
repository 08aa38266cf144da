package loop

import (
	"fmt"

	"github.com/tomz197/bounce/internal/sim"
)

// HUD is the text overlay drawn on top of the arena.
type HUD struct {
	Bodies     int
	Policy     sim.Policy
	Paused     bool
	Indicators bool
	Holding    bool
	TickRate   float64
	Viewers    int // Connected SSH viewers; 0 hides the field
}

// Status is the top-left line. Fields use fixed widths so a shrinking value
// never leaves residual characters on screen.
func (h HUD) Status() string {
	state := "      "
	switch {
	case h.Paused:
		state = "PAUSED"
	case h.Holding:
		state = "DRAG  "
	}
	s := fmt.Sprintf("Bodies: %-4d Edges: %-6s %4.0f tps  %s", h.Bodies, h.Policy, h.TickRate, state)
	if h.Viewers > 0 {
		s += fmt.Sprintf("  Viewers: %-3d", h.Viewers)
	}
	return s
}

// Help is the bottom-left line.
func (h HUD) Help() string {
	ind := "off"
	if h.Indicators {
		ind = "on "
	}
	return fmt.Sprintf("mouse: drag  p: pause  v: velocity (%s)  q: quit", ind)
}

package client

import (
	"fmt"
	"time"

	"github.com/tomz197/bounce/internal/draw"
	"github.com/tomz197/bounce/internal/loop"
	"github.com/tomz197/bounce/internal/loop/config"
	"github.com/tomz197/bounce/internal/loop/server"
	"github.com/tomz197/bounce/internal/sim"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	// On view or inactivity transitions, do a full terminal clear
	// so UI elements from the previous view don't persist on screen.
	viewChanged := c.state.View != c.state.prevView
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if viewChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevView = c.state.View
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snapshot := c.server.GetSnapshot()

	// The arena stays visible behind the title and shutdown text
	sim.Draw(snapshot.Bodies, c.canvas, c.state.Indicators && c.state.View == ViewArena)

	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(snapshot, now)

	return c.chunkWriter.Flush()
}

// drawUI draws the overlay for the current view.
func (c *Client) drawUI(snapshot *server.WorldSnapshot, now time.Time) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.View == ViewShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY, now)
		return
	}

	switch c.state.View {
	case ViewArena:
		c.drawArenaHUD(termWidth, termHeight, snapshot)
	case ViewStart:
		c.drawStartScreen(centerX, centerY, now)
	}
}

// writeText writes s at the given position and marks the cells dirty so the
// canvas paints over the text once it goes away.
func (c *Client) writeText(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() || col < 1 {
		return
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, len(s))
}

// writeStyled is writeText wrapped in an SGR style.
func (c *Client) writeStyled(col, row int, style, s string) {
	c.chunkWriter.WriteString(style)
	c.writeText(col, row, s)
	c.chunkWriter.WriteString(draw.ColorReset)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int, now time.Time) {
	title := "INACTIVITY WARNING"
	c.writeStyled(centerX-len(title)/2, centerY-2, draw.ColorYellow, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-now.Sub(c.lastInput).Seconds()),
	)
	c.writeText(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	c.writeText(centerX-len(hint)/2, centerY+2, hint)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int, now time.Time) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___  ___  _   _ _  _  ___ ___  `,
		` | _ )/ _ \| | | | \| |/ __| __| `,
		` | _ \ (_) | |_| | .' | (__| _|  `,
		` |___/\___/ \___/|_|\_|\___|___| `,
		`                                 `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		if len(line) > titleWidth {
			titleWidth = len(line)
		}
	}

	titleStartY := centerY - 7
	for i, line := range titleArt {
		c.writeStyled(centerX-titleWidth/2, titleStartY+i, draw.ColorBrightCyan, line)
	}

	subtitle := "~ A shared arena of bouncing bodies over SSH ~"
	c.writeText(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	controlHeader := "Controls"
	c.writeStyled(centerX-len(controlHeader)/2, controlsY, draw.ColorBold, controlHeader)

	controlLines := []string{
		"Mouse drag . . . Move a body",
		"P  . . . . . . . Pause world",
		"V  . . . . Velocity indicator",
		"Q  . . . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeText(centerX-len(line)/2, controlsY+1+i, line)
	}

	// Blinking start prompt
	if now.UnixMilli()/600%2 == 0 {
		prompt := ">>  Press any key to enter  <<"
		c.writeText(centerX-len(prompt)/2, controlsY+len(controlLines)+2, prompt)
	}
}

// drawArenaHUD draws the status and help lines plus the viewer's name.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawArenaHUD(termWidth, termHeight int, snapshot *server.WorldSnapshot) {
	hud := loop.HUD{
		Bodies:     len(snapshot.Bodies),
		Policy:     snapshot.Policy,
		Paused:     snapshot.Paused,
		Indicators: c.state.Indicators,
		Holding:    c.handle.Holding(),
		TickRate:   snapshot.TickRate,
		Viewers:    snapshot.Viewers,
	}
	c.writeText(2, 1, hud.Status())
	if termHeight > 1 {
		c.writeStyled(2, termHeight, draw.ColorDim, hud.Help())
	}

	if c.username != "" {
		name := fmt.Sprintf("@%s", c.username)
		c.writeText(termWidth-len(name)-1, 1, name)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	title := "SERVER SHUTTING DOWN"
	c.writeStyled(centerX-len(title)/2, centerY-3, draw.ColorBold+draw.ColorYellow, title)

	msg1 := "The server is restarting for maintenance."
	c.writeText(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	c.writeText(centerX-len(msg2)/2, centerY, msg2)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	c.writeText(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	c.writeText(centerX-len(hint)/2, centerY+4, hint)
}

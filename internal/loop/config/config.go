// Package config centralizes all tunable simulation parameters.
package config

import "time"

// Arena dimensions in logical units. Rendering scales to fit the terminal.
const (
	ArenaWidth  = 1000
	ArenaHeight = 700
)

// Initial population
const (
	DefaultBodies   = 20
	MinRadius       = 25.0
	RadiusRange     = 30.0 // Radius is MinRadius + U[0, RadiusRange)
	InitialVelocity = 500.0
)

// Dynamics
const (
	Drag        = 0.08  // a = -Drag·v
	MaxSpeed    = 500.0 // Cap on each velocity component
	RestEpsilon = 0.01  // vx²+vy² below this stops the body
)

// Tick pacing: the loop sleeps TickDelay after each tick and measures the
// real elapsed time for dt.
const (
	TickDelay = 20 * time.Millisecond
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Max render resolution (terminal cells). Larger terminals get a centered,
// bordered arena.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 70
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownWait           = 15 * time.Second
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// MaxUsernameLength bounds the display length of SSH user names in the HUD.
const MaxUsernameLength = 16

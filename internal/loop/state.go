package loop

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tomz197/bounce/internal/draw"
	"github.com/tomz197/bounce/internal/input"
	"github.com/tomz197/bounce/internal/loop/config"
	"github.com/tomz197/bounce/internal/sim"
)

// State holds the local session: the world plus the input-owned state
// (selection, pause, indicator toggle) that is threaded into each tick.
type State struct {
	World      *sim.World
	Selection  sim.Selection
	Running    bool
	Paused     bool
	Indicators bool
	Delta      time.Duration // Elapsed time fed to the last tick
	Report     sim.Report    // Result of the last tick
	TickRate   float64       // Smoothed ticks per second

	pointer []sim.PointerEvent // Reused per tick
}

// DefaultParams returns the arena parameters for the given boundary policy.
func DefaultParams(policy sim.Policy) sim.Params {
	return sim.Params{
		Arena:       sim.Arena{Width: config.ArenaWidth, Height: config.ArenaHeight},
		Drag:        config.Drag,
		MaxSpeed:    config.MaxSpeed,
		RestEpsilon: config.RestEpsilon,
		Policy:      policy,
	}
}

// NewWorld spawns a random population of n bodies from seed.
func NewWorld(n int, policy sim.Policy, seed int64) (*sim.World, error) {
	p := DefaultParams(policy)
	rng := rand.New(rand.NewSource(seed))
	bodies := sim.Spawn(rng, p.Arena, sim.SpawnOptions{
		Count:       n,
		MinRadius:   config.MinRadius,
		RadiusRange: config.RadiusRange,
		MaxVelocity: config.InitialVelocity,
	})
	w, err := sim.NewWorld(bodies, p)
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}
	return w, nil
}

// NewState creates a running session around w.
func NewState(w *sim.World, indicators bool) *State {
	return &State{
		World:      w,
		Running:    true,
		Indicators: indicators,
	}
}

// Tick applies one tick's input, advances the world by dt (zero while paused)
// and draws the result onto canvas. A quit event stops the session from the
// next tick on; the current tick still completes.
func (s *State) Tick(dt time.Duration, events []input.Event, canvas *draw.Canvas) sim.Report {
	s.pointer = s.pointer[:0]
	for _, ev := range events {
		switch ev.Kind {
		case input.Quit:
			s.Running = false
		case input.Pause:
			s.Paused = !s.Paused
		case input.ToggleIndicators:
			s.Indicators = !s.Indicators
		default:
			if pe, ok := PointerEvent(ev, canvas); ok {
				s.pointer = append(s.pointer, pe)
			}
		}
	}

	if dt < 0 {
		dt = 0
	}
	if dt > 0 {
		s.TickRate = SmoothRate(s.TickRate, dt)
	}
	if s.Paused {
		dt = 0
	}
	s.Delta = dt

	s.Report = s.World.Step(dt.Seconds(), &s.Selection, s.pointer)

	canvas.Clear()
	sim.Draw(s.World.Bodies(), canvas, s.Indicators)
	return s.Report
}

// HUD describes the overlay for the current state.
func (s *State) HUD() HUD {
	_, held := s.Selection.Index()
	return HUD{
		Bodies:     len(s.World.Bodies()),
		Policy:     s.World.Params().Policy,
		Paused:     s.Paused,
		Indicators: s.Indicators,
		Holding:    held,
		TickRate:   s.TickRate,
	}
}

// PointerEvent maps a terminal pointer event to arena coordinates.
func PointerEvent(ev input.Event, canvas *draw.Canvas) (sim.PointerEvent, bool) {
	var action sim.PointerAction
	switch ev.Kind {
	case input.PointerPress:
		action = sim.PointerPress
	case input.PointerMove:
		action = sim.PointerMove
	case input.PointerRelease:
		action = sim.PointerRelease
	default:
		return sim.PointerEvent{}, false
	}
	if canvas.TerminalWidth() == 0 || canvas.TerminalHeight() == 0 {
		return sim.PointerEvent{}, false
	}
	x, y := canvas.TerminalToLogical(ev.Col, ev.Row)
	pe := sim.PointerEvent{Action: action}
	pe.Pos.X, pe.Pos.Y = x, y
	return pe, true
}

// SmoothRate folds one tick interval into an exponential moving average of ticks per second.
func SmoothRate(prev float64, dt time.Duration) float64 {
	inst := 1 / dt.Seconds()
	if prev == 0 {
		return inst
	}
	return prev*0.9 + inst*0.1
}

// ClampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func ClampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

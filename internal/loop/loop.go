// Package loop runs the local single-terminal session: input, tick, draw, pace.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/bounce/internal/draw"
	"github.com/tomz197/bounce/internal/loop/config"
	"github.com/tomz197/bounce/internal/sim"
)

// Impactor receives the strongest collision of each tick.
type Impactor interface {
	PlayImpact(speed float64)
}

// Options configure a local session.
type Options struct {
	Bodies     int
	Policy     sim.Policy
	Seed       int64
	Indicators bool
	Sound      Impactor    // Optional
	Logger     *log.Logger // Optional; nil discards
	TickDelay  time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.TickDelay <= 0 {
		o.TickDelay = config.TickDelay
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.sleep == nil {
		o.sleep = time.Sleep
	}
}

// Run spawns a world and drives it until a quit event arrives or ctx is done.
// The stop condition is checked at the top of every tick.
func Run(ctx context.Context, fe Frontend, opts Options) error {
	opts.defaults()
	world, err := NewWorld(opts.Bodies, opts.Policy, opts.Seed)
	if err != nil {
		return err
	}
	return run(ctx, fe, NewState(world, opts.Indicators), opts)
}

func run(ctx context.Context, fe Frontend, state *State, opts Options) error {
	opts.defaults()
	canvas := draw.NewScaledCanvas(0, 0, config.ArenaWidth, config.ArenaHeight)
	logger := opts.Logger

	logger.Info("session started", "bodies", len(state.World.Bodies()), "boundary", state.World.Params().Policy)

	var last time.Time
	first := true
	for state.Running {
		select {
		case <-ctx.Done():
			logger.Info("session cancelled")
			return nil
		default:
		}

		tickStart := opts.now()
		var dt time.Duration
		if !first {
			dt = tickStart.Sub(last)
		}
		first = false
		last = tickStart
		if dt > 10*opts.TickDelay {
			logger.Debug("tick stall", "elapsed", dt)
		}

		if err := updateScreen(fe, canvas); err != nil {
			return err
		}

		report := state.Tick(dt, fe.Poll(), canvas)
		if opts.Sound != nil {
			if impact := report.MaxImpact(); impact > 0 {
				opts.Sound.PlayImpact(impact)
			}
		}

		if err := fe.Present(canvas, state.HUD()); err != nil {
			return err
		}

		opts.sleep(opts.TickDelay)
	}

	logger.Info("session ended")
	return nil
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func updateScreen(fe Frontend, canvas *draw.Canvas) error {
	termWidth, termHeight, err := fe.Size()
	if err != nil {
		return err
	}
	renderWidth, renderHeight, offsetCol, offsetRow := ClampTermSize(termWidth, termHeight)

	if renderWidth != canvas.TerminalWidth() || renderHeight != canvas.TerminalHeight() ||
		offsetCol != canvas.OffsetCol() || offsetRow != canvas.OffsetRow() {
		fe.Clear()
		canvas.Resize(renderWidth, renderHeight)
		canvas.ForceRedraw()
	}
	canvas.SetOffset(offsetCol, offsetRow)
	return nil
}

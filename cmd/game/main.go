package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/bounce/internal/audio"
	"github.com/tomz197/bounce/internal/config"
	"github.com/tomz197/bounce/internal/logging"
	"github.com/tomz197/bounce/internal/loop"
	loopconfig "github.com/tomz197/bounce/internal/loop/config"
	"github.com/tomz197/bounce/internal/sim"
	"golang.org/x/term"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid environment: %v\n", err)
		os.Exit(2)
	}

	flag.IntVar(&settings.Bodies, "bodies", settings.Bodies, "number of bodies")
	flag.StringVar(&settings.Boundary, "boundary", settings.Boundary, "edge behaviour: bounce or wrap")
	flag.Int64Var(&settings.Seed, "seed", settings.Seed, "random seed (0 picks one from the clock)")
	flag.BoolVar(&settings.Sound, "sound", settings.Sound, "play a click on collisions")
	flag.BoolVar(&settings.Indicators, "indicators", settings.Indicators, "draw velocity indicators")
	flag.StringVar(&settings.Backend, "backend", settings.Backend, "terminal backend: ansi or tcell")
	flag.StringVar(&settings.LogFile, "log", settings.LogFile, "write logs to this file")
	flag.Parse()

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid settings: %v\n", err)
		os.Exit(2)
	}
	policy, err := sim.ParsePolicy(settings.Boundary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid settings: %v\n", err)
		os.Exit(2)
	}

	logOut, closeLog, err := logging.OpenFile(settings.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger := logging.New(logOut, settings.LogLevel)

	opts := loop.Options{
		Bodies:     settings.Bodies,
		Policy:     policy,
		Seed:       settings.ResolveSeed(),
		Indicators: settings.Indicators,
		Logger:     logger,
	}
	logger.Info("starting", "seed", opts.Seed, "backend", settings.Backend)

	if settings.Sound {
		sm := audio.NewSoundManager(loopconfig.MaxSpeed)
		if err := sm.Initialize(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer sm.Cleanup()
			opts.Sound = sm
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch settings.Backend {
	case "tcell":
		err = runTcell(ctx, opts)
	default:
		err = runANSI(ctx, opts)
	}
	if err != nil {
		logger.Error("session failed", "err", err)
		fmt.Fprintf(os.Stderr, "bounce error: %v\n", err)
		os.Exit(1)
	}
}

func runANSI(ctx context.Context, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	fe := loop.NewANSIFrontend(bufio.NewReader(os.Stdin), os.Stdout, nil)
	fe.Start()
	defer fe.Stop()
	return loop.Run(ctx, fe, opts)
}

func runTcell(ctx context.Context, opts loop.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	fe := loop.NewTcellFrontend(screen)
	defer fe.Stop()

	cols, rows := screen.Size()
	opts.Logger.Debug("tcell screen ready", "cols", cols, "rows", rows, "colors", screen.Colors())
	return loop.Run(ctx, fe, opts)
}

var _ loop.Impactor = (*audio.SoundManager)(nil)

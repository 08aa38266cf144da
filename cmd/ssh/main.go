package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/bounce/internal/config"
	"github.com/tomz197/bounce/internal/draw"
	bouncelog "github.com/tomz197/bounce/internal/logging"
	loopconfig "github.com/tomz197/bounce/internal/loop/config"
	"github.com/tomz197/bounce/internal/loop/client"
	"github.com/tomz197/bounce/internal/loop/server"
	"github.com/tomz197/bounce/internal/sim"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// Shared arena, used by every SSH session
var (
	arena  *server.Server
	logger *log.Logger
)

func main() {
	logger = bouncelog.FromEnv(os.Stderr)

	settings, err := config.Load()
	if err != nil {
		logger.Fatal("invalid environment", "err", err)
	}
	policy, err := sim.ParsePolicy(settings.Boundary)
	if err != nil {
		logger.Fatal("invalid boundary", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	arena, err = server.NewServer(server.Options{
		Bodies: settings.Bodies,
		Policy: policy,
		Seed:   settings.ResolveSeed(),
		Logger: logger.WithPrefix("arena"),
	})
	if err != nil {
		logger.Fatal("create arena", "err", err)
	}
	serverCtx, cancelServer := context.WithCancel(context.Background())
	go arena.Run(serverCtx)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			arenaMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for pointer input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("create ssh server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("ssh server", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down")

	// Notify viewers and wait for them to disconnect
	arena.Shutdown(loopconfig.ShutdownWait)
	cancelServer()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown", "err", err)
	}
}

// arenaMiddleware handles SSH sessions and runs a viewer client.
func arenaMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger.Info("session started", "user", sess.User(), "term", pty.Term,
			"cols", pty.Window.Width, "rows", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reader := bufio.NewReader(sess)
		c := client.NewClient(arena, reader, sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
		})
		if err := c.Run(); err != nil {
			logger.Error("session failed", "user", sess.User(), "err", err)
		}

		logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize

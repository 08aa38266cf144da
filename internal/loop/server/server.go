package server

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/bounce/internal/loop"
	"github.com/tomz197/bounce/internal/loop/config"
	"github.com/tomz197/bounce/internal/sim"
)

// GameServer is the interface clients use to communicate with the arena server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendPointer(clientID int, ev sim.PointerEvent)
	TogglePause(clientID int)
	GetSnapshot() *WorldSnapshot
}

// Server owns the shared world and applies the input of all clients to it.
// Only the tick goroutine touches the world; clients see immutable snapshots.
type Server struct {
	world        *sim.World
	snapshot     atomic.Pointer[WorldSnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	pointerCh    chan ClientPointer
	pauseCh      chan int
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
	logger       *log.Logger

	paused   bool
	delta    time.Duration
	tickRate float64
	report   sim.Report
	pinned   []int // Reused per tick
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID        int
	Username  string           // Display name for this client
	Selection sim.Selection    // Body this client is dragging; tick goroutine only
	EventsCh  chan ClientEvent // Events sent to client (shutdown)

	holding atomic.Bool
}

// Holding reports whether the client held a body at the end of the last tick.
func (h *ClientHandle) Holding() bool {
	return h.holding.Load()
}

// ClientPointer is a pointer event from a specific client, already in arena coordinates.
type ClientPointer struct {
	ClientID int
	Event    sim.PointerEvent
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// Options configure the shared world.
type Options struct {
	Bodies int
	Policy sim.Policy
	Seed   int64
	Logger *log.Logger // Optional; nil discards
}

// NewServer spawns the shared world.
func NewServer(opts Options) (*Server, error) {
	world, err := loop.NewWorld(opts.Bodies, opts.Policy, opts.Seed)
	if err != nil {
		return nil, err
	}
	return newServer(world, opts.Logger), nil
}

func newServer(world *sim.World, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		world:        world,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		pointerCh:    make(chan ClientPointer, 256),
		pauseCh:      make(chan int, 16),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		logger:       logger,
	}
	s.createSnapshot()
	return s
}

// Run starts the tick loop. Blocks until the context is cancelled.
// The first tick has zero elapsed time; later ticks use the measured time.
func (s *Server) Run(ctx context.Context) {
	s.logger.Info("world started", "bodies", len(s.world.Bodies()), "boundary", s.world.Params().Policy)

	var lastTime time.Time
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("world stopped")
			return
		default:
		}

		frameStart := time.Now()
		var dt time.Duration
		if !lastTime.IsZero() {
			dt = frameStart.Sub(lastTime)
		}
		lastTime = frameStart
		if dt > 10*config.TickDelay {
			s.logger.Debug("tick stall", "elapsed", dt)
		}

		s.tick(dt)

		elapsed := time.Since(frameStart)
		if elapsed < config.TickDelay {
			time.Sleep(config.TickDelay - elapsed)
		}
	}
}

// tick runs one world step with everything the clients sent since the last one.
func (s *Server) tick(dt time.Duration) {
	s.processRegistrations()

	s.mu.Lock()
	s.collectInputs()

	if dt < 0 {
		dt = 0
	}
	if dt > 0 {
		s.tickRate = loop.SmoothRate(s.tickRate, dt)
	}
	if s.paused {
		dt = 0
	}
	s.delta = dt

	s.pinned = s.pinned[:0]
	for _, handle := range s.clients {
		held, ok := handle.Selection.Index()
		if ok {
			s.pinned = append(s.pinned, held)
		}
		handle.holding.Store(ok)
	}
	s.report = s.world.StepPinned(dt.Seconds(), s.pinned)
	s.mu.Unlock()

	s.createSnapshot()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	s.logger.Info("shutting down", "clients", len(s.clients), "timeout", timeout)
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "clients", s.ClientCount())
			return
		case <-ticker.C:
			if s.ClientCount() == 0 {
				return
			}
		}
	}
}

// ClientCount returns the number of registered clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server. A body it was holding is released.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendPointer queues a pointer event for the client's selection.
func (s *Server) SendPointer(clientID int, ev sim.PointerEvent) {
	select {
	case s.pointerCh <- ClientPointer{ClientID: clientID, Event: ev}:
	default:
		// Input channel full, drop input
	}
}

// TogglePause flips the shared pause state on the next tick.
func (s *Server) TogglePause(clientID int) {
	select {
	case s.pauseCh <- clientID:
	default:
	}
}

// GetSnapshot returns the current world snapshot.
func (s *Server) GetSnapshot() *WorldSnapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Info("client registered", "id", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.logger.Info("client unregistered", "id", clientID, "user", handle.Username)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectInputs applies pending pointer events to their clients' selections in
// arrival order and folds pause requests. Must be called with the lock held.
func (s *Server) collectInputs() {
	bodies := s.world.Bodies()
	for {
		select {
		case cp := <-s.pointerCh:
			if handle, ok := s.clients[cp.ClientID]; ok {
				handle.Selection.Apply(bodies, cp.Event)
			}
		case id := <-s.pauseCh:
			if _, ok := s.clients[id]; ok {
				s.paused = !s.paused
				s.logger.Debug("pause toggled", "id", id, "paused", s.paused)
			}
		default:
			return
		}
	}
}

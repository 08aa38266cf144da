package server

import (
	"time"

	"github.com/tomz197/bounce/internal/physics"
	"github.com/tomz197/bounce/internal/sim"
)

// WorldSnapshot is an immutable copy of the world for rendering.
// Clients must not modify it.
type WorldSnapshot struct {
	Bodies    []physics.Body
	Arena     sim.Arena
	Policy    sim.Policy
	Viewers   int
	Paused    bool
	TickRate  float64
	Delta     time.Duration
	MaxImpact float64 // Strongest collision of the tick, 0 without one
}

// createSnapshot publishes a copy of the current world. Each snapshot owns its
// body slice, so a client may keep one for as long as it renders.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bodies := make([]physics.Body, len(s.world.Bodies()))
	copy(bodies, s.world.Bodies())
	params := s.world.Params()

	s.snapshot.Store(&WorldSnapshot{
		Bodies:    bodies,
		Arena:     params.Arena,
		Policy:    params.Policy,
		Viewers:   len(s.clients),
		Paused:    s.paused,
		TickRate:  s.tickRate,
		Delta:     s.delta,
		MaxImpact: s.report.MaxImpact(),
	})
}

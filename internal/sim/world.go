// Package sim runs the per-tick simulation of circular bodies in a bounded arena.
package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomz197/bounce/internal/physics"
)

// ErrInvalidParams is returned by NewWorld for unusable parameters or bodies.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// Params configures a World. The policy cannot change after creation.
type Params struct {
	Arena       Arena
	Drag        float64 // k in a = -k·v
	MaxSpeed    float64 // Cap applied to each velocity component
	RestEpsilon float64 // Bodies with vx²+vy² below this are stopped
	Policy      Policy
}

// Validate checks that the parameters describe a usable world.
func (p Params) Validate() error {
	switch {
	case !(p.Arena.Width > 0) || !(p.Arena.Height > 0):
		return fmt.Errorf("%w: arena %vx%v", ErrInvalidParams, p.Arena.Width, p.Arena.Height)
	case p.Drag < 0 || math.IsNaN(p.Drag):
		return fmt.Errorf("%w: drag %v", ErrInvalidParams, p.Drag)
	case !(p.MaxSpeed > 0):
		return fmt.Errorf("%w: max speed %v", ErrInvalidParams, p.MaxSpeed)
	case p.RestEpsilon < 0 || math.IsNaN(p.RestEpsilon):
		return fmt.Errorf("%w: rest epsilon %v", ErrInvalidParams, p.RestEpsilon)
	case p.Policy != PolicyBounce && p.Policy != PolicyWrap:
		return fmt.Errorf("%w: %v", ErrUnknownPolicy, p.Policy)
	}
	return nil
}

// Report summarizes one tick.
type Report struct {
	Pairs     int                // Overlapping pairs detected this tick
	Exchanges []physics.Exchange // Collision responses in the order they were applied
}

// MaxImpact returns the largest impact speed of the tick, or 0 without collisions.
func (r Report) MaxImpact() float64 {
	max := 0.0
	for _, ex := range r.Exchanges {
		if s := ex.ImpactSpeed(); s > max {
			max = s
		}
	}
	return max
}

// World owns the body list and the per-tick pair buffer.
// It is not safe for concurrent use; a single goroutine drives Step.
type World struct {
	bodies    []physics.Body
	params    Params
	pairs     []physics.Pair     // Reused every tick, truncated before detection
	exchanges []physics.Exchange // Reused every tick, returned through Report
	pinned    []int
}

// NewWorld takes ownership of bodies and validates them against p.
func NewWorld(bodies []physics.Body, p Params) (*World, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[int]struct{}, len(bodies))
	for i := range bodies {
		b := &bodies[i]
		if !(b.Radius > 0) || !(b.Mass > 0) {
			return nil, fmt.Errorf("%w: body %d radius %v mass %v", ErrInvalidParams, b.ID, b.Radius, b.Mass)
		}
		if _, dup := seen[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate body id %d", ErrInvalidParams, b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return &World{
		bodies:    bodies,
		params:    p,
		pairs:     make([]physics.Pair, 0, len(bodies)*2),
		exchanges: make([]physics.Exchange, 0, len(bodies)*2),
	}, nil
}

// Bodies returns the live body list. Callers must not retain it across ticks
// if another goroutine drives Step.
func (w *World) Bodies() []physics.Body {
	return w.bodies
}

// Params returns the world's parameters.
func (w *World) Params() Params {
	return w.params
}

// Step advances the world by dt seconds.
//
// Order within a tick is fixed: pointer input, integration, detection,
// overlap resolution of every pair, elastic response of every pair (oldest
// first), rest threshold, boundary policy. Resolution finishes for all pairs
// before any response runs, so later pairs see velocities already updated by
// earlier ones but never positions from a half-resolved scan.
//
// The held body (if any) is pinned: it follows the pointer and does not integrate.
func (w *World) Step(dt float64, sel *Selection, events []PointerEvent) Report {
	if sel != nil {
		for _, ev := range events {
			sel.Apply(w.bodies, ev)
		}
	}
	w.pinned = w.pinned[:0]
	if held, ok := sel.Index(); ok {
		w.pinned = append(w.pinned, held)
	}
	return w.advance(dt, w.pinned)
}

// StepPinned advances the world with several bodies held at once, one per
// independent selection. Callers apply their pointer events to their own
// selections against Bodies before calling. Out-of-range indices are ignored.
func (w *World) StepPinned(dt float64, pinned []int) Report {
	return w.advance(dt, pinned)
}

func (w *World) advance(dt float64, pinned []int) Report {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}

	for i := range w.bodies {
		if isPinned(pinned, i) {
			b := &w.bodies[i]
			b.Vel.X, b.Vel.Y = 0, 0
			b.Acc.X, b.Acc.Y = 0, 0
			continue
		}
		w.integrate(&w.bodies[i], dt)
	}

	w.pairs = physics.Detect(w.bodies, w.pairs)
	for _, p := range w.pairs {
		physics.Resolve(w.bodies, p)
	}

	w.exchanges = w.exchanges[:0]
	for _, p := range w.pairs {
		w.exchanges = append(w.exchanges, physics.Respond(w.bodies, p))
	}

	for i := range w.bodies {
		b := &w.bodies[i]
		if b.Speed2() < w.params.RestEpsilon {
			b.Vel.X, b.Vel.Y = 0, 0
		}
		switch w.params.Policy {
		case PolicyBounce:
			bounce(b, w.params.Arena)
		case PolicyWrap:
			wrap(b, w.params.Arena)
		}
	}

	return Report{Pairs: len(w.pairs), Exchanges: w.exchanges}
}

// integrate applies drag, advances velocity (capped per component) and position.
func (w *World) integrate(b *physics.Body, dt float64) {
	b.Acc = b.Vel.Mul(-w.params.Drag)
	b.Vel = b.Vel.Add(b.Acc.Mul(dt))
	b.Vel.X = physics.ClampAbs(b.Vel.X, w.params.MaxSpeed)
	b.Vel.Y = physics.ClampAbs(b.Vel.Y, w.params.MaxSpeed)
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))
}

func isPinned(pinned []int, i int) bool {
	for _, p := range pinned {
		if p == i {
			return true
		}
	}
	return false
}

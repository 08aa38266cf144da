package sim

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tomz197/bounce/internal/physics"
)

// ErrUnknownPolicy is returned by ParsePolicy for names other than "bounce" and "wrap".
var ErrUnknownPolicy = errors.New("unknown boundary policy")

// Policy selects how bodies interact with the arena edges.
// A world uses exactly one policy for its whole lifetime.
type Policy int

const (
	PolicyBounce Policy = iota // Reflect velocity when a body's edge crosses the boundary
	PolicyWrap                 // Teleport to the opposite edge when the center crosses (toroidal)
)

// String returns the policy name as accepted by ParsePolicy.
func (p Policy) String() string {
	switch p {
	case PolicyBounce:
		return "bounce"
	case PolicyWrap:
		return "wrap"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "bounce" or "wrap" (case-insensitive).
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bounce":
		return PolicyBounce, nil
	case "wrap":
		return PolicyWrap, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Arena is the rectangle [0, Width] × [0, Height].
type Arena struct {
	Width  float64
	Height float64
}

// bounce reflects a body whose edge touches or crosses an arena boundary.
// Only a component heading outward is flipped, so a body that is still past
// the edge on the next tick keeps moving back in instead of oscillating.
// The drag acceleration is flipped with the velocity so the two stay consistent.
func bounce(b *physics.Body, arena Arena) {
	if b.Pos.X+b.Radius >= arena.Width && b.Vel.X > 0 {
		b.Vel.X = -b.Vel.X
		b.Acc.X = -b.Acc.X
	}
	if b.Pos.X-b.Radius < 0 && b.Vel.X < 0 {
		b.Vel.X = -b.Vel.X
		b.Acc.X = -b.Acc.X
	}

	if b.Pos.Y+b.Radius >= arena.Height && b.Vel.Y > 0 {
		b.Vel.Y = -b.Vel.Y
		b.Acc.Y = -b.Acc.Y
	}
	if b.Pos.Y-b.Radius < 0 && b.Vel.Y < 0 {
		b.Vel.Y = -b.Vel.Y
		b.Acc.Y = -b.Acc.Y
	}
}

// wrap moves a body whose center left the arena to the opposite edge.
// Velocity is untouched.
func wrap(b *physics.Body, arena Arena) {
	b.Pos.X = wrapCoord(b.Pos.X, arena.Width)
	b.Pos.Y = wrapCoord(b.Pos.Y, arena.Height)
}

func wrapCoord(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	if v < 0 || v > size {
		v = math.Mod(v, size)
		if v < 0 {
			v += size
		}
	}
	return v
}

package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidRadius is returned when a body is created with a non-positive or non-finite radius.
var ErrInvalidRadius = errors.New("radius must be positive and finite")

// Body is a single circular rigid body.
// Radius and Mass are fixed at creation; everything else is mutated by the simulation.
type Body struct {
	ID     int            // Stable identity, used to exclude self-pairs
	Pos    r2.Point       // Center in world coordinates
	Vel    r2.Point       // Velocity (units/sec)
	Acc    r2.Point       // Drag acceleration of the current tick
	Radius float64        // Collision/draw radius
	Mass   float64        // π·r² (uniform areal density)
	Color  colorful.Color // Display color, overwritten on contact
}

// NewBody creates a body and derives its mass from the radius.
func NewBody(id int, pos, vel r2.Point, radius float64, c colorful.Color) (Body, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Body{}, fmt.Errorf("body %d: %w (got %v)", id, ErrInvalidRadius, radius)
	}
	return Body{
		ID:     id,
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Mass:   math.Pi * radius * radius,
		Color:  c,
	}, nil
}

// Speed2 returns vx²+vy², used as a kinetic-energy proxy for the rest threshold.
func (b *Body) Speed2() float64 {
	return b.Vel.Dot(b.Vel)
}

// Contains reports whether p lies inside or on the body's disk.
func (b *Body) Contains(p r2.Point) bool {
	return PointInCircle(p.X, p.Y, b.Pos.X, b.Pos.Y, b.Radius)
}

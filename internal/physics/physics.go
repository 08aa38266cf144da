// Package physics provides the circle-body model, distance utilities and the
// per-pair collision primitives (detection, overlap resolution, elastic response).
package physics

import (
	"math"

	"github.com/golang/geo/r2"
)

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
// A point on the rim counts as inside.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap or touch.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) <= minDist*minDist
}

// UnitVector normalizes (vx, vy). A zero vector has no direction and maps to (0, 0).
func UnitVector(vx, vy float64) (float64, float64) {
	u := r2.Point{X: vx, Y: vy}.Normalize()
	return u.X, u.Y
}

// ClampMax returns min(value, max). Only the upper bound is enforced.
func ClampMax(value, max float64) float64 {
	if value >= max {
		return max
	}
	return value
}

// ClampAbs caps value to [-max, max] by applying ClampMax to both signs.
func ClampAbs(value, max float64) float64 {
	return -ClampMax(-ClampMax(value, max), max)
}

// direction returns the unit vector from a to b and the distance between them.
// Coincident points fall back to +x so callers never divide by zero.
func direction(a, b r2.Point) (r2.Point, float64) {
	d := b.Sub(a)
	dist := d.Norm()
	if dist == 0 {
		return r2.Point{X: 1, Y: 0}, 0
	}
	return d.Mul(1 / dist), dist
}

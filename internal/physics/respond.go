package physics

import (
	"math"

	"github.com/golang/geo/r2"
)

// Exchange describes one elastic collision response in the contact frame.
type Exchange struct {
	Normal  r2.Point // Unit vector from A toward B
	Tangent r2.Point // Normal rotated +90°

	TangentA, TangentB float64 // Tangential speeds, unchanged by the collision
	NormalA, NormalB   float64 // Normal speeds before the collision
	NormalA2, NormalB2 float64 // Normal speeds after the collision
}

// ImpactSpeed returns the relative speed of the bodies along the normal before contact.
func (e Exchange) ImpactSpeed() float64 {
	return math.Abs(e.NormalA - e.NormalB)
}

// Respond applies a frictionless elastic collision between the bodies of p.
//
// Velocities are split into normal and tangential parts. The tangential parts
// pass through untouched and the normal parts follow the 1D elastic formula
// for unequal masses. As a contact marker, B takes A's color.
func Respond(bodies []Body, p Pair) Exchange {
	a := &bodies[p.A]
	b := &bodies[p.B]

	n, _ := direction(a.Pos, b.Pos)
	t := n.Ortho()

	ex := Exchange{
		Normal:   n,
		Tangent:  t,
		TangentA: a.Vel.Dot(t),
		TangentB: b.Vel.Dot(t),
		NormalA:  a.Vel.Dot(n),
		NormalB:  b.Vel.Dot(n),
	}

	total := a.Mass + b.Mass
	ex.NormalA2 = (ex.NormalA*(a.Mass-b.Mass) + 2*b.Mass*ex.NormalB) / total
	ex.NormalB2 = (ex.NormalB*(b.Mass-a.Mass) + 2*a.Mass*ex.NormalA) / total

	a.Vel = t.Mul(ex.TangentA).Add(n.Mul(ex.NormalA2))
	b.Vel = t.Mul(ex.TangentB).Add(n.Mul(ex.NormalB2))

	b.Color = a.Color
	return ex
}

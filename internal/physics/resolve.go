package physics

// Resolve pushes the two bodies of p apart along their center line so they end
// up exactly touching. Each body moves by half the penetration depth.
//
// Both displacements are derived from the positions before either body moves.
// Coincident centers separate along the x axis (A toward -x, B toward +x).
// Pairs that are not penetrating are left alone.
func Resolve(bodies []Body, p Pair) {
	a := &bodies[p.A]
	b := &bodies[p.B]

	n, dist := direction(a.Pos, b.Pos)
	overlap := 0.5 * (dist - a.Radius - b.Radius)
	if overlap >= 0 {
		return
	}

	shift := n.Mul(overlap)
	a.Pos = a.Pos.Add(shift)
	b.Pos = b.Pos.Sub(shift)
}

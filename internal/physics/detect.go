package physics

// Pair references two distinct overlapping bodies by their index in the body slice.
// It is only valid for the tick that produced it.
type Pair struct {
	A, B int
}

// Detect appends every overlapping pair in bodies to pairs[:0] and returns it.
//
// The scan is an exhaustive double loop. Each physical pair is visited twice,
// once from either side; it is emitted only on the visit where A has the lower
// ID, so every unordered pair appears exactly once regardless of storage order.
// Pairs come out in scan order (outer index, then inner index).
func Detect(bodies []Body, pairs []Pair) []Pair {
	pairs = pairs[:0]
	for i := range bodies {
		a := &bodies[i]
		for j := range bodies {
			b := &bodies[j]
			if a.ID >= b.ID {
				continue // self, or already emitted from the other side
			}
			if CirclesOverlap(a.Pos.X, a.Pos.Y, a.Radius, b.Pos.X, b.Pos.Y, b.Radius) {
				pairs = append(pairs, Pair{A: i, B: j})
			}
		}
	}
	return pairs
}

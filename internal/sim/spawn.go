package sim

import (
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/bounce/internal/physics"
)

// SpawnOptions describes the random initial population.
type SpawnOptions struct {
	Count       int
	MinRadius   float64 // Smallest radius
	RadiusRange float64 // Radius is MinRadius + U[0, RadiusRange)
	MaxVelocity float64 // Each velocity component is U[0, MaxVelocity)
}

// Spawn creates opts.Count bodies with IDs 0..Count-1 at random positions
// inside arena. Identical rng seeds produce identical worlds.
func Spawn(rng *rand.Rand, arena Arena, opts SpawnOptions) []physics.Body {
	bodies := make([]physics.Body, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		radius := opts.MinRadius + rng.Float64()*opts.RadiusRange
		pos := r2.Point{
			X: spawnCoord(rng, arena.Width, radius),
			Y: spawnCoord(rng, arena.Height, radius),
		}
		vel := r2.Point{
			X: rng.Float64() * opts.MaxVelocity,
			Y: rng.Float64() * opts.MaxVelocity,
		}
		b, err := physics.NewBody(i, pos, vel, radius, randomColor(rng))
		if err != nil {
			continue // non-positive radius from a bad option set
		}
		bodies = append(bodies, b)
	}
	return bodies
}

// spawnCoord picks a coordinate that keeps the whole disk inside [0, size]
// when it fits, and the center inside otherwise.
func spawnCoord(rng *rand.Rand, size, radius float64) float64 {
	if size > 2*radius {
		return radius + rng.Float64()*(size-2*radius)
	}
	return rng.Float64() * size
}

// randomColor returns a saturated, bright color in the style of colorful.HappyColor
// but drawn from rng so worlds are reproducible.
func randomColor(rng *rand.Rand) colorful.Color {
	return colorful.Hsv(rng.Float64()*360.0, 0.7+rng.Float64()*0.3, 0.6+rng.Float64()*0.3)
}

package sim

import (
	"math/rand"
	"testing"
)

func TestSpawn_Deterministic(t *testing.T) {
	arena := Arena{Width: 1000, Height: 700}
	opts := SpawnOptions{Count: 20, MinRadius: 25, RadiusRange: 30, MaxVelocity: 500}

	a := Spawn(rand.New(rand.NewSource(7)), arena, opts)
	b := Spawn(rand.New(rand.NewSource(7)), arena, opts)

	if len(a) != 20 || len(b) != 20 {
		t.Fatalf("len = %d, %d, expected 20", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("body %d differs between identical seeds: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSpawn_Ranges(t *testing.T) {
	arena := Arena{Width: 1000, Height: 700}
	opts := SpawnOptions{Count: 200, MinRadius: 25, RadiusRange: 30, MaxVelocity: 500}

	bodies := Spawn(rand.New(rand.NewSource(99)), arena, opts)

	for i, b := range bodies {
		if b.ID != i {
			t.Errorf("body %d has ID %d", i, b.ID)
		}
		if b.Radius < 25 || b.Radius >= 55 {
			t.Errorf("body %d radius = %v, expected [25,55)", i, b.Radius)
		}
		if b.Vel.X < 0 || b.Vel.X >= 500 || b.Vel.Y < 0 || b.Vel.Y >= 500 {
			t.Errorf("body %d velocity = %v, expected components in [0,500)", i, b.Vel)
		}
		if b.Pos.X-b.Radius < 0 || b.Pos.X+b.Radius > arena.Width ||
			b.Pos.Y-b.Radius < 0 || b.Pos.Y+b.Radius > arena.Height {
			t.Errorf("body %d at %v (r=%v) is not inside the arena", i, b.Pos, b.Radius)
		}
		if !(b.Mass > 0) {
			t.Errorf("body %d mass = %v", i, b.Mass)
		}
		if !b.Color.IsValid() {
			t.Errorf("body %d color %v is not a valid RGB color", i, b.Color)
		}
	}
}

func TestSpawn_SmallArenaKeepsCentersInside(t *testing.T) {
	arena := Arena{Width: 30, Height: 30}
	bodies := Spawn(rand.New(rand.NewSource(3)), arena, SpawnOptions{Count: 10, MinRadius: 25, RadiusRange: 5, MaxVelocity: 1})

	for _, b := range bodies {
		if b.Pos.X < 0 || b.Pos.X > 30 || b.Pos.Y < 0 || b.Pos.Y > 30 {
			t.Errorf("center %v outside the arena", b.Pos)
		}
	}
}

func TestSpawn_InvalidRadiusSkipsBodies(t *testing.T) {
	bodies := Spawn(rand.New(rand.NewSource(1)), Arena{Width: 100, Height: 100}, SpawnOptions{Count: 5, MinRadius: 0, RadiusRange: 0, MaxVelocity: 1})
	if len(bodies) != 0 {
		t.Errorf("len = %d, expected 0 for zero radius", len(bodies))
	}
}

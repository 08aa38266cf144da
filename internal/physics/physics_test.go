package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		expected       float64
	}{
		{name: "same_point", x1: 3, y1: 4, x2: 3, y2: 4, expected: 0},
		{name: "axis_aligned", x1: 0, y1: 0, x2: 10, y2: 0, expected: 10},
		{name: "pythagorean", x1: 0, y1: 0, x2: 3, y2: 4, expected: 5},
		{name: "negative_coords", x1: -1, y1: -1, x2: 2, y2: 3, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.x1, tt.y1, tt.x2, tt.y2)
			if !approxEqual(got, tt.expected) {
				t.Errorf("Distance() = %v, expected %v", got, tt.expected)
			}
			back := Distance(tt.x2, tt.y2, tt.x1, tt.y1)
			if got != back {
				t.Errorf("Distance is not symmetric: %v vs %v", got, back)
			}
			sq := DistanceSquared(tt.x1, tt.y1, tt.x2, tt.y2)
			if !approxEqual(sq, tt.expected*tt.expected) {
				t.Errorf("DistanceSquared() = %v, expected %v", sq, tt.expected*tt.expected)
			}
		})
	}
}

func TestUnitVector(t *testing.T) {
	t.Run("zero_vector", func(t *testing.T) {
		ux, uy := UnitVector(0, 0)
		if ux != 0 || uy != 0 || math.IsNaN(ux) || math.IsNaN(uy) {
			t.Errorf("UnitVector(0,0) = (%v,%v), expected (0,0)", ux, uy)
		}
	})

	t.Run("scales_to_unit_length", func(t *testing.T) {
		ux, uy := UnitVector(3, -4)
		if !approxEqual(ux, 0.6) || !approxEqual(uy, -0.8) {
			t.Errorf("UnitVector(3,-4) = (%v,%v), expected (0.6,-0.8)", ux, uy)
		}
	})

	t.Run("rest_direction_after_stop", func(t *testing.T) {
		ux, uy := UnitVector(-0.0, 0)
		if math.IsNaN(ux) || math.IsNaN(uy) {
			t.Errorf("UnitVector(-0,0) = (%v,%v), expected no NaN", ux, uy)
		}
	})
}

func TestClampMax(t *testing.T) {
	tests := []struct {
		value, max, expected float64
	}{
		{value: 600, max: 500, expected: 500},
		{value: 500, max: 500, expected: 500},
		{value: 20, max: 500, expected: 20},
		{value: -900, max: 500, expected: -900}, // lower bound is not enforced
	}
	for _, tt := range tests {
		if got := ClampMax(tt.value, tt.max); got != tt.expected {
			t.Errorf("ClampMax(%v, %v) = %v, expected %v", tt.value, tt.max, got, tt.expected)
		}
	}
}

func TestClampAbs(t *testing.T) {
	tests := []struct {
		value, expected float64
	}{
		{value: 600, expected: 500},
		{value: -600, expected: -500},
		{value: -20, expected: -20},
		{value: 0, expected: 0},
	}
	for _, tt := range tests {
		if got := ClampAbs(tt.value, 500); got != tt.expected {
			t.Errorf("ClampAbs(%v, 500) = %v, expected %v", tt.value, got, tt.expected)
		}
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		x2, y2   float64
		expected bool
	}{
		{name: "touching", x2: 10, y2: 0, expected: true},
		{name: "overlapping", x2: 5, y2: 0, expected: true},
		{name: "apart", x2: 10.0001, y2: 0, expected: false},
		{name: "same_center", x2: 0, y2: 0, expected: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CirclesOverlap(0, 0, 5, tt.x2, tt.y2, 5); got != tt.expected {
				t.Errorf("CirclesOverlap() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestNewBody(t *testing.T) {
	t.Run("mass_from_radius", func(t *testing.T) {
		b, err := NewBody(7, r2.Point{X: 1, Y: 2}, r2.Point{X: 3, Y: 4}, 2, colorful.Color{R: 1})
		if err != nil {
			t.Fatalf("NewBody() error = %v", err)
		}
		if b.ID != 7 {
			t.Errorf("ID = %d, expected 7", b.ID)
		}
		if !approxEqual(b.Mass, 4*math.Pi) {
			t.Errorf("Mass = %v, expected %v", b.Mass, 4*math.Pi)
		}
		if b.Speed2() != 25 {
			t.Errorf("Speed2() = %v, expected 25", b.Speed2())
		}
	})

	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewBody(1, r2.Point{}, r2.Point{}, r, colorful.Color{}); !errors.Is(err, ErrInvalidRadius) {
			t.Errorf("NewBody(radius=%v) error = %v, expected ErrInvalidRadius", r, err)
		}
	}
}

func TestBody_Contains(t *testing.T) {
	b, _ := NewBody(0, r2.Point{X: 10, Y: 10}, r2.Point{}, 5, colorful.Color{})
	if !b.Contains(r2.Point{X: 15, Y: 10}) {
		t.Error("point on the rim should be contained")
	}
	if b.Contains(r2.Point{X: 15.1, Y: 10}) {
		t.Error("point outside the rim should not be contained")
	}
}

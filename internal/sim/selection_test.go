package sim

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/tomz197/bounce/internal/physics"
)

func selectionBodies() []physics.Body {
	return []physics.Body{
		{ID: 0, Pos: r2.Point{X: 10, Y: 10}, Radius: 5, Mass: 1},
		{ID: 1, Pos: r2.Point{X: 14, Y: 10}, Radius: 5, Mass: 1},
		{ID: 2, Pos: r2.Point{X: 50, Y: 50}, Radius: 5, Mass: 1},
	}
}

func TestSelection_ZeroValue(t *testing.T) {
	var s Selection
	if _, ok := s.Index(); ok {
		t.Error("zero Selection should hold nothing")
	}
	var nilSel *Selection
	if _, ok := nilSel.Index(); ok {
		t.Error("nil Selection should hold nothing")
	}
}

func TestSelection_PressPicksFirstInStorageOrder(t *testing.T) {
	bodies := selectionBodies()
	var s Selection

	// (12,10) is inside both body 0 and body 1.
	s.Apply(bodies, PointerEvent{Action: PointerPress, Pos: r2.Point{X: 12, Y: 10}})

	if idx, ok := s.Index(); !ok || idx != 0 {
		t.Errorf("Index() = %d, %v, expected 0, true", idx, ok)
	}
}

func TestSelection_PressOnEdgeSelects(t *testing.T) {
	bodies := selectionBodies()
	var s Selection

	s.Apply(bodies, PointerEvent{Action: PointerPress, Pos: r2.Point{X: 55, Y: 50}})

	if idx, ok := s.Index(); !ok || idx != 2 {
		t.Errorf("Index() = %d, %v, expected 2, true", idx, ok)
	}
}

func TestSelection_PressOnEmptySpaceClears(t *testing.T) {
	bodies := selectionBodies()
	var s Selection
	s.Apply(bodies, PointerEvent{Action: PointerPress, Pos: r2.Point{X: 50, Y: 50}})

	s.Apply(bodies, PointerEvent{Action: PointerPress, Pos: r2.Point{X: 90, Y: 90}})

	if _, ok := s.Index(); ok {
		t.Error("press on empty space should drop the selection")
	}
}

func TestSelection_MoveAndRelease(t *testing.T) {
	bodies := selectionBodies()
	var s Selection

	s.Apply(bodies, PointerEvent{Action: PointerMove, Pos: r2.Point{X: 1, Y: 1}})
	for i, b := range selectionBodies() {
		if bodies[i].Pos != b.Pos {
			t.Fatalf("move without selection changed body %d", i)
		}
	}

	s.Apply(bodies, PointerEvent{Action: PointerPress, Pos: r2.Point{X: 50, Y: 50}})
	s.Apply(bodies, PointerEvent{Action: PointerMove, Pos: r2.Point{X: 70, Y: 20}})
	if bodies[2].Pos != (r2.Point{X: 70, Y: 20}) {
		t.Errorf("held body at %v, expected (70,20)", bodies[2].Pos)
	}

	s.Apply(bodies, PointerEvent{Action: PointerRelease, Pos: r2.Point{X: 0, Y: 0}})
	if _, ok := s.Index(); ok {
		t.Error("release should drop the selection")
	}
	s.Apply(bodies, PointerEvent{Action: PointerMove, Pos: r2.Point{X: 1, Y: 1}})
	if bodies[2].Pos != (r2.Point{X: 70, Y: 20}) {
		t.Errorf("released body moved to %v", bodies[2].Pos)
	}
}

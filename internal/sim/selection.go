package sim

import (
	"github.com/golang/geo/r2"
	"github.com/tomz197/bounce/internal/physics"
)

// PointerAction identifies a pointer event.
type PointerAction int

const (
	PointerPress PointerAction = iota
	PointerMove
	PointerRelease
)

// PointerEvent is a pointer event already mapped to world coordinates.
type PointerEvent struct {
	Action PointerAction
	Pos    r2.Point
}

// Selection tracks which body, if any, the pointer is holding.
// The zero value holds nothing. It is owned by the input driver and passed
// into each Step; the world keeps no reference to it.
type Selection struct {
	index  int
	active bool
}

// Index returns the index of the held body.
func (s *Selection) Index() (int, bool) {
	if s == nil || !s.active {
		return 0, false
	}
	return s.index, true
}

// Clear drops the current selection.
func (s *Selection) Clear() {
	s.active = false
	s.index = 0
}

// Apply reacts to one pointer event:
// press picks the first body (in storage order) whose disk contains the point,
// move drags the held body to the point, release lets go.
func (s *Selection) Apply(bodies []physics.Body, ev PointerEvent) {
	switch ev.Action {
	case PointerPress:
		s.Clear()
		for i := range bodies {
			if bodies[i].Contains(ev.Pos) {
				s.index = i
				s.active = true
				break
			}
		}
	case PointerMove:
		if s.active && s.index < len(bodies) {
			bodies[s.index].Pos = ev.Pos
		}
	case PointerRelease:
		s.Clear()
	}
}

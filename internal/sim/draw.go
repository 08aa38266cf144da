package sim

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/bounce/internal/physics"
)

// IndicatorColor is the color of the velocity-direction line.
var IndicatorColor = colorful.Color{R: 0, G: 0, B: 0}

// Renderer accepts the draw commands emitted for one frame.
type Renderer interface {
	FillCircle(x, y, r float64, c colorful.Color)
	Line(x1, y1, x2, y2 float64, c colorful.Color)
}

// Draw emits one filled circle per body in storage order. With indicators set,
// each circle is followed by a line from its center along the direction of
// travel, one radius long. A body at rest gets a zero-length line.
func Draw(bodies []physics.Body, r Renderer, indicators bool) {
	for i := range bodies {
		b := &bodies[i]
		r.FillCircle(b.Pos.X, b.Pos.Y, b.Radius, b.Color)
		if !indicators {
			continue
		}
		ux, uy := physics.UnitVector(b.Vel.X, b.Vel.Y)
		r.Line(b.Pos.X, b.Pos.Y, b.Pos.X+ux*b.Radius, b.Pos.Y+uy*b.Radius, IndicatorColor)
	}
}

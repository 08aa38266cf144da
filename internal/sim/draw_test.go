package sim

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/bounce/internal/physics"
)

type drawCall struct {
	kind           string
	x1, y1, x2, y2 float64
	r              float64
	c              colorful.Color
}

type recorder struct {
	calls []drawCall
}

func (r *recorder) FillCircle(x, y, radius float64, c colorful.Color) {
	r.calls = append(r.calls, drawCall{kind: "circle", x1: x, y1: y, r: radius, c: c})
}

func (r *recorder) Line(x1, y1, x2, y2 float64, c colorful.Color) {
	r.calls = append(r.calls, drawCall{kind: "line", x1: x1, y1: y1, x2: x2, y2: y2, c: c})
}

func drawBodies() []physics.Body {
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}
	return []physics.Body{
		{ID: 3, Pos: r2.Point{X: 10, Y: 20}, Vel: r2.Point{X: 3, Y: 4}, Radius: 5, Mass: 1, Color: red},
		{ID: 1, Pos: r2.Point{X: 40, Y: 40}, Radius: 8, Mass: 1, Color: blue},
	}
}

func TestDraw_CirclesOnly(t *testing.T) {
	var rec recorder
	Draw(drawBodies(), &rec, false)

	if len(rec.calls) != 2 {
		t.Fatalf("calls = %d, expected 2", len(rec.calls))
	}
	if c := rec.calls[0]; c.kind != "circle" || c.x1 != 10 || c.y1 != 20 || c.r != 5 || c.c != (colorful.Color{R: 1}) {
		t.Errorf("first call = %+v", c)
	}
	if c := rec.calls[1]; c.kind != "circle" || c.r != 8 {
		t.Errorf("second call = %+v, expected storage order", c)
	}
}

func TestDraw_Indicators(t *testing.T) {
	var rec recorder
	Draw(drawBodies(), &rec, true)

	if len(rec.calls) != 4 {
		t.Fatalf("calls = %d, expected 4", len(rec.calls))
	}
	kinds := []string{"circle", "line", "circle", "line"}
	for i, k := range kinds {
		if rec.calls[i].kind != k {
			t.Errorf("call %d kind = %s, expected %s", i, rec.calls[i].kind, k)
		}
	}

	line := rec.calls[1]
	if line.x1 != 10 || line.y1 != 20 || !approxEqual(line.x2, 13) || !approxEqual(line.y2, 24) {
		t.Errorf("indicator = (%v,%v)-(%v,%v), expected (10,20)-(13,24)", line.x1, line.y1, line.x2, line.y2)
	}
	if line.c != IndicatorColor {
		t.Errorf("indicator color = %v, expected %v", line.c, IndicatorColor)
	}

	rest := rec.calls[3]
	if rest.x1 != rest.x2 || rest.y1 != rest.y2 {
		t.Errorf("body at rest drew a non-zero indicator: %+v", rest)
	}
}

package geom

import (
	"math"
	"testing"
)

func TestBounds(t *testing.T) {
	pts := []Point{{X: 1, Y: 2}, {X: -3, Y: 7}, {X: 5, Y: -1}}
	b := Bounds(pts)
	if b.XMin != -3 || b.XMax != 5 || b.YMin != -1 || b.YMax != 7 {
		t.Errorf("bounds = %+v", b)
	}
}

func TestBoundsEmpty(t *testing.T) {
	b := Bounds(nil)
	if b != (AABB{}) {
		t.Errorf("empty bounds = %+v, want zero box", b)
	}
}

func TestSquareViewportIsSquare(t *testing.T) {
	cases := [][]Point{
		{{X: 0, Y: 0}, {X: 100, Y: 10}}, // wide
		{{X: 0, Y: 0}, {X: 10, Y: 100}}, // tall
		{{X: 0, Y: 0}, {X: 50, Y: 50}},  // already square
	}
	for _, pts := range cases {
		vp := SquareViewport(pts, 8)
		if math.Abs(vp.Width()-vp.Height()) > 1e-9 {
			t.Errorf("viewport %+v not square: w=%g h=%g", vp, vp.Width(), vp.Height())
		}
	}
}

func TestSquareViewportKeepsLongAxis(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 100, Y: 10}}
	vp := SquareViewport(pts, 8)

	// The long (x) axis keeps exactly the margin padding.
	if vp.XMin != -8 || vp.XMax != 108 {
		t.Errorf("x range = [%g, %g], want [-8, 108]", vp.XMin, vp.XMax)
	}
	// The short axis is centred: equal overshoot above and below.
	lo := 0 - 8 - vp.YMin
	hi := vp.YMax - (10 + 8)
	if math.Abs(lo-hi) > 1e-9 {
		t.Errorf("short axis not centred: below=%g above=%g", lo, hi)
	}
	if !vp.Contains(Point{X: 50, Y: 5}) {
		t.Error("viewport does not contain trajectory midpoint")
	}
}

func TestDiffs(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 3, Y: 1}}
	d := Diffs(pts)
	if len(d) != 2 {
		t.Fatalf("len(diffs) = %d, want 2", len(d))
	}
	if d[0] != (Point{X: 1, Y: 1}) || d[1] != (Point{X: 2, Y: 0}) {
		t.Errorf("diffs = %+v", d)
	}
	if Diffs(pts[:1]) != nil {
		t.Error("single point should yield no diffs")
	}
}

func TestRotate(t *testing.T) {
	p := Point{X: 1, Y: 0}.Rotate(math.Pi / 2)
	if math.Abs(p.X) > 1e-12 || math.Abs(p.Y-1) > 1e-12 {
		t.Errorf("rotate = %+v, want (0, 1)", p)
	}
}

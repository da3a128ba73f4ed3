package gds

import (
	"math"
	"testing"
)

func pointsClose(t *testing.T, got, want []Point, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i].X-want[i].X) > tol || math.Abs(got[i].Y-want[i].Y) > tol {
			t.Errorf("point %d = (%g, %g), want (%g, %g)", i, got[i].X, got[i].Y, want[i].X, want[i].Y)
		}
	}
}

func square(layer int) *Boundary {
	return NewBoundary([]Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}, layer, 0)
}

func TestBoundaryImplicitClosing(t *testing.T) {
	open := NewBoundary([]Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}, 1, 0)
	if n := len(open.Points()); n != 5 {
		t.Errorf("open input: %d points, want 5 (closing point appended)", n)
	}
	closed := NewBoundary([]Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}, 1, 0)
	if n := len(closed.Points()); n != 5 {
		t.Errorf("closed input: %d points, want 5 (no duplicate appended)", n)
	}
}

func TestBoundaryArea(t *testing.T) {
	if got := square(1).Area(); got != 4 {
		t.Errorf("2x2 square area = %g, want 4", got)
	}
	// Winding direction must not flip the sign.
	reversed := NewBoundary([]Point{{0, 2}, {2, 2}, {2, 0}, {0, 0}}, 1, 0)
	if got := reversed.Area(); got != 4 {
		t.Errorf("clockwise square area = %g, want 4", got)
	}
}

func TestRotateComposition(t *testing.T) {
	twice := square(1)
	twice.Rotate(45, Point{})
	twice.Rotate(45, Point{})

	once := square(1)
	once.Rotate(90, Point{})

	pointsClose(t, twice.Points(), once.Points(), 1e-12)
}

func TestRotateAboutCenter(t *testing.T) {
	b := square(1)
	b.Rotate(90, Point{X: 1, Y: 1})
	// The square is symmetric about its center: a 90 degree rotation
	// maps its bounding box onto itself.
	box := b.BoundingBox()
	if math.Abs(box.Min.X) > 1e-12 || math.Abs(box.Max.X-2) > 1e-12 {
		t.Errorf("rotated box = %+v, want [0,2]x[0,2]", box)
	}
}

func TestScaleAboutCOM(t *testing.T) {
	b := square(1)
	before := b.Centroid()
	b.Scale(Uniform(3), COM)
	after := b.Centroid()
	if math.Abs(after.X-before.X) > 1e-12 || math.Abs(after.Y-before.Y) > 1e-12 {
		t.Errorf("centroid moved from (%g, %g) to (%g, %g)", before.X, before.Y, after.X, after.Y)
	}
	if box := b.BoundingBox(); math.Abs(box.Width()-6) > 1e-12 {
		t.Errorf("scaled width = %g, want 6", box.Width())
	}
}

func TestBoundingBoxInvalidation(t *testing.T) {
	b := square(1)
	first := b.BoundingBox()
	if first.Min != (Point{0, 0}) || first.Max != (Point{2, 2}) {
		t.Fatalf("initial box = %+v", first)
	}
	b.Translate(Point{X: 10, Y: -1})
	second := b.BoundingBox()
	if second.Min != (Point{10, -1}) || second.Max != (Point{12, 1}) {
		t.Errorf("box after translate = %+v, want [10,-1]x[12,1]", second)
	}
}

func TestReflect(t *testing.T) {
	b := NewBoundary([]Point{{1, 1}, {2, 1}, {2, 3}}, 1, 0)
	if err := b.Reflect(AxisX, Point{}); err != nil {
		t.Fatalf("Reflect(AxisX): %v", err)
	}
	box := b.BoundingBox()
	if box.Min != (Point{1, -3}) || box.Max != (Point{2, -1}) {
		t.Errorf("reflected box = %+v, want [1,-3]x[2,-1]", box)
	}

	if err := b.Reflect(Axis(7), Point{}); err == nil {
		t.Error("Reflect with an unknown axis should fail")
	}
}

func TestPathArea(t *testing.T) {
	p := NewPath([]Point{{0, 0}, {10, 0}, {10, 5}}, 2, 1, 0)
	if got := p.Area(); math.Abs(got-30) > 1e-12 {
		t.Errorf("path area = %g, want 30 (length 15, width 2)", got)
	}
}

func TestPathBoundaryConversion(t *testing.T) {
	p := NewPath([]Point{{0, 0}, {4, 0}, {4, 4}}, 1, 2, 0)
	b := p.ToBoundary()
	if n := len(b.Points()); n != 4 {
		t.Errorf("ToBoundary: %d points, want 4 (closed triangle)", n)
	}
	if b.Layer() != 2 {
		t.Errorf("ToBoundary layer = %d, want 2", b.Layer())
	}

	back := b.ToPath(0.5, PathRound)
	if back.PathType != PathRound || back.Width != 0.5 {
		t.Errorf("ToPath = width %g pathtype %d", back.Width, back.PathType)
	}
}

func TestTextOrientation(t *testing.T) {
	txt := NewText("LBL", Point{X: 1, Y: 0}, AnchorCenter, 1, 0)
	txt.Rotate(90, Point{})
	if txt.Rotation != 90 {
		t.Errorf("Rotation = %g, want 90", txt.Rotation)
	}
	pos := txt.Position()
	if math.Abs(pos.X) > 1e-12 || math.Abs(pos.Y-1) > 1e-12 {
		t.Errorf("anchor = (%g, %g), want (0, 1)", pos.X, pos.Y)
	}

	if err := txt.Reflect(AxisX, Point{}); err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if !txt.XReflection {
		t.Error("XReflection not set after Reflect(AxisX)")
	}
	if txt.Area() != 0 {
		t.Error("labels are non-printing; Area must be 0")
	}
}

func TestElementsPropagation(t *testing.T) {
	group := NewElements(square(1), NewPath([]Point{{0, 0}, {1, 0}}, 1, 1, 0))
	if group.Layer() != 1 {
		t.Fatalf("group layer = %d, want 1 (from first member)", group.Layer())
	}
	group.SetLayer(9)
	for i := 0; i < group.Len(); i++ {
		if l := group.At(i).Layer(); l != 9 {
			t.Errorf("member %d layer = %d, want 9", i, l)
		}
	}

	group.Translate(Point{X: 1, Y: 1})
	box := group.BoundingBox()
	if box.Min != (Point{1, 1}) || box.Max != (Point{3, 3}) {
		t.Errorf("group box = %+v, want [1,1]x[3,3]", box)
	}

	if !NewElements().BoundingBox().IsEmpty() {
		t.Error("empty collection must have an empty box")
	}
}

func TestElementsBatchStyling(t *testing.T) {
	group := NewElements(square(1), square(2))
	if err := group.SetLayers([]int{5, 6}); err != nil {
		t.Fatalf("SetLayers: %v", err)
	}
	if group.At(0).Layer() != 5 || group.At(1).Layer() != 6 {
		t.Errorf("member layers = %d, %d, want 5, 6", group.At(0).Layer(), group.At(1).Layer())
	}
	if err := group.SetLayers([]int{1}); err == nil {
		t.Error("mismatched layer list length must fail")
	}
	if err := group.SetDatatypes([]int{1, 2, 3}); err == nil {
		t.Error("mismatched datatype list length must fail")
	}
}

func TestElementsCopyIndependence(t *testing.T) {
	group := NewElements(square(1))
	cp := group.Copy().(*Elements)
	cp.Translate(Point{X: 100, Y: 0})
	if box := group.BoundingBox(); box.Min.X != 0 {
		t.Errorf("copying was shallow: original moved to %+v", box)
	}
}

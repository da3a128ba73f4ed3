package gds

import (
	"math"
	"sort"
	"testing"
)

func TestCellArrayFlattenGrid(t *testing.T) {
	dot := NewCell("DOT")
	dot.Add(NewBoundary([]Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 1, 0))

	arr := NewCellArray(dot, 3, 2, GridSpacing(10, 5), Point{})
	flat := arr.Flatten()
	if len(flat) != 6 {
		t.Fatalf("flattened %d elements, want 6 (3x2)", len(flat))
	}

	var origins []Point
	for _, e := range flat {
		origins = append(origins, e.BoundingBox().Min)
	}
	sort.Slice(origins, func(i, j int) bool {
		if origins[i].Y != origins[j].Y {
			return origins[i].Y < origins[j].Y
		}
		return origins[i].X < origins[j].X
	})
	want := []Point{{0, 0}, {10, 0}, {20, 0}, {0, 5}, {10, 5}, {20, 5}}
	pointsClose(t, origins, want, 1e-12)
}

func TestCellArrayFlattenWithOrigin(t *testing.T) {
	dot := NewCell("DOT")
	dot.Add(NewBoundary([]Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 1, 0))

	arr := NewCellArray(dot, 2, 1, GridSpacing(10, 0), Point{X: 100, Y: 50})
	flat := arr.Flatten()
	if len(flat) != 2 {
		t.Fatalf("flattened %d elements, want 2", len(flat))
	}
	first := flat[0].BoundingBox().Min
	pointsClose(t, []Point{first}, []Point{{100, 50}}, 1e-12)
}

func TestCellRefBoundingBoxRotated(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(square(1)) // [0,0]x[2,2]

	ref := NewCellRef(inner, Point{X: 10, Y: 0})
	ref.Rotation = 90
	box := ref.BoundingBox()
	if box == nil {
		t.Fatal("no box")
	}
	pointsClose(t, []Point{box.Min, box.Max}, []Point{{8, 0}, {10, 2}}, 1e-12)
}

func TestCellRefBoundingBoxMirrored(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(NewBoundary([]Point{{0, 1}, {2, 1}, {2, 3}, {0, 3}}, 1, 0))

	ref := NewCellRef(inner, Point{})
	ref.XReflection = true
	box := ref.BoundingBox()
	pointsClose(t, []Point{box.Min, box.Max}, []Point{{0, -3}, {2, -1}}, 1e-12)
}

func TestCellRefBoundingBoxEmptyTarget(t *testing.T) {
	ref := NewCellRef(NewCell("VOID"), Point{X: 5, Y: 5})
	if box := ref.BoundingBox(); box != nil {
		t.Errorf("empty target box = %+v, want nil", box)
	}
}

func TestCellRefMagnifiedFlatten(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(square(1))

	ref := NewCellRef(inner, Point{X: 1, Y: 1})
	ref.Magnification = 3
	flat := ref.Flatten()
	box := flat[0].BoundingBox()
	pointsClose(t, []Point{box.Min, box.Max}, []Point{{1, 1}, {7, 7}}, 1e-12)
}

func TestCellArrayBoundingBox(t *testing.T) {
	dot := NewCell("DOT")
	dot.Add(NewBoundary([]Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 1, 0))

	arr := NewCellArray(dot, 3, 2, GridSpacing(10, 5), Point{})
	box := arr.BoundingBox()
	if box == nil {
		t.Fatal("no box")
	}
	// Last column starts at x=20, last row at y=5; each instance is 1x1.
	pointsClose(t, []Point{box.Min, box.Max}, []Point{{0, 0}, {21, 6}}, 1e-12)
}

func TestReferenceCopySharesTarget(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(square(1))
	ref := NewCellRef(inner, Point{})

	cp := ref.Copy()
	if cp.Target() != inner {
		t.Error("copied reference points at a different cell")
	}
	cp.Translate(Point{X: 5})
	if ref.Origin != (Point{}) {
		t.Error("translating the copy moved the original")
	}
}

func TestReferenceArea(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(square(1)) // area 4

	ref := NewCellRef(inner, Point{})
	ref.Magnification = 2
	if got := ref.Area(); got != 16 {
		t.Errorf("CellRef area = %g, want 16", got)
	}

	arr := NewCellArray(inner, 3, 2, GridSpacing(10, 5), Point{})
	if got := arr.Area(); got != 24 {
		t.Errorf("CellArray area = %g, want 24", got)
	}
}

func TestPlacementRotationWithReflection(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(NewBoundary([]Point{{0, 0}, {2, 0}, {2, 1}, {0, 1}}, 1, 0))

	ref := NewCellRef(inner, Point{})
	ref.Rotation = 90
	ref.XReflection = true

	// Rotating [0,2]x[0,1] by 90 degrees gives [-1,0]x[0,2]; the mirror
	// then flips it to [-1,-2]x[0,0].
	flat := ref.Flatten()
	flatBox := flat[0].BoundingBox()
	pointsClose(t, []Point{flatBox.Min, flatBox.Max}, []Point{{-1, -2}, {0, 0}}, 1e-12)

	// The reference's own box must enclose its flattened geometry.
	refBox := ref.BoundingBox()
	pointsClose(t, []Point{refBox.Min, refBox.Max}, []Point{flatBox.Min, flatBox.Max}, 1e-12)
}

func TestArrayFlattenMatchesSingleReference(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(NewBoundary([]Point{{0, 0}, {2, 0}, {2, 1}, {0, 1}}, 1, 0))

	ref := NewCellRef(inner, Point{X: 4, Y: 5})
	ref.Rotation = 90
	ref.XReflection = true
	ref.Magnification = 2

	arr := NewCellArray(inner, 1, 1, GridSpacing(10, 10), Point{X: 4, Y: 5})
	arr.Rotation = 90
	arr.XReflection = true
	arr.Magnification = 2

	refBox := ref.Flatten()[0].BoundingBox()
	arrBox := arr.Flatten()[0].BoundingBox()
	pointsClose(t, []Point{arrBox.Min, arrBox.Max}, []Point{refBox.Min, refBox.Max}, 1e-12)

	bb, ab := ref.BoundingBox(), arr.BoundingBox()
	pointsClose(t, []Point{ab.Min, ab.Max}, []Point{bb.Min, bb.Max}, 1e-12)
}

func TestPlacementAccumulates(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(square(1))
	ref := NewCellRef(inner, Point{X: 1, Y: 1})
	ref.Translate(Point{X: 2, Y: 0})
	ref.Rotate(30)
	ref.Rotate(15)
	ref.Scale(2)
	ref.Scale(3)

	if ref.Origin != (Point{3, 1}) {
		t.Errorf("origin = %+v, want (3,1)", ref.Origin)
	}
	if ref.Rotation != 45 {
		t.Errorf("rotation = %g, want 45", ref.Rotation)
	}
	if math.Abs(ref.Magnification-6) > 1e-12 {
		t.Errorf("magnification = %g, want 6", ref.Magnification)
	}
}

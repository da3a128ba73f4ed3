package gds

import (
	"testing"
)

func TestCellBoundingBox(t *testing.T) {
	empty := NewCell("EMPTY")
	if box := empty.BoundingBox(); box != nil {
		t.Errorf("empty cell box = %+v, want nil", box)
	}

	c := NewCell("SQ")
	c.Add(square(1))
	box := c.BoundingBox()
	if box == nil {
		t.Fatal("cell with geometry has no box")
	}
	if box.Min != (Point{0, 0}) || box.Max != (Point{2, 2}) {
		t.Errorf("box = %+v, want [0,0]x[2,2]", box)
	}
}

func TestCellBoundingBoxThroughReference(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(square(1))

	outer := NewCell("OUTER")
	outer.AddCell(inner, Point{X: 10, Y: 10})

	box := outer.BoundingBox()
	if box == nil {
		t.Fatal("no box through reference")
	}
	if box.Min != (Point{10, 10}) || box.Max != (Point{12, 12}) {
		t.Errorf("box = %+v, want [10,10]x[12,12]", box)
	}

	// A reference to an empty cell contributes nothing.
	outer.AddCell(NewCell("VOID"), Point{X: -100, Y: -100})
	if got := outer.BoundingBox(); *got != *box {
		t.Errorf("empty target changed the box to %+v", got)
	}
}

func TestCellDependenciesDeduplicated(t *testing.T) {
	y := NewCell("Y")
	y.Add(square(1))

	x := NewCell("X")
	x.AddCell(y, Point{})
	x.AddCell(y, Point{X: 5})

	deps := x.Dependencies()
	if len(deps) != 1 || deps[0] != y {
		t.Fatalf("Dependencies() = %v, want exactly [Y]", deps)
	}
}

func TestCellDependenciesCycleSafe(t *testing.T) {
	a := NewCell("A")
	b := NewCell("B")
	a.AddCell(b, Point{})
	b.AddCell(a, Point{}) // malformed but must not hang

	deps := a.Dependencies()
	if len(deps) != 2 {
		t.Fatalf("cyclic Dependencies() returned %d cells, want 2", len(deps))
	}
}

func TestCellLayers(t *testing.T) {
	leaf := NewCell("LEAF")
	leaf.Add(NewPath([]Point{{0, 0}, {1, 0}}, 1, 7, 0))

	c := NewCell("C")
	c.Add(square(3), square(1))
	c.AddCell(leaf, Point{})

	got := c.Layers()
	want := []int{1, 3, 7}
	if len(got) != len(want) {
		t.Fatalf("Layers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Layers() = %v, want %v", got, want)
		}
	}
}

func TestCellCopyIndependence(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(square(1))
	c := NewCell("C")
	c.Add(square(2))
	c.AddCell(inner, Point{})

	cp := c.Copy("C2")
	if cp.Name() != "C2" {
		t.Errorf("copy name = %q", cp.Name())
	}
	cp.Objects()[0].SetLayer(99)
	cp.References()[0].Target().Objects()[0].SetLayer(98)

	if c.Objects()[0].Layer() != 2 {
		t.Error("copy shares elements with the original")
	}
	if inner.Objects()[0].Layer() != 1 {
		t.Error("copy shares referenced cells with the original")
	}
}

func TestCellCopyPreservesSharing(t *testing.T) {
	shared := NewCell("SHARED")
	shared.Add(square(1))
	c := NewCell("C")
	c.AddCell(shared, Point{})
	c.AddCell(shared, Point{X: 5})

	cp := c.Copy("")
	t0 := cp.References()[0].Target()
	t1 := cp.References()[1].Target()
	if t0 != t1 {
		t.Error("internal sharing was not preserved: two copies of SHARED")
	}
	if t0 == shared {
		t.Error("copy still points at the original SHARED")
	}
}

func TestCellCopyWithSuffix(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(square(1))
	c := NewCell("TOP")
	c.AddCell(inner, Point{})

	cp := c.CopyWithSuffix("_V2")
	if cp.Name() != "TOP_V2" {
		t.Errorf("top name = %q", cp.Name())
	}
	if got := cp.References()[0].Target().Name(); got != "INNER_V2" {
		t.Errorf("sub-cell name = %q, want INNER_V2", got)
	}
	if inner.Name() != "INNER" {
		t.Errorf("original renamed to %q", inner.Name())
	}
}

func TestUniqueNameStable(t *testing.T) {
	a := NewCell("A")
	b := NewCell("A")
	if a.UniqueName() == b.UniqueName() {
		t.Error("two cells share a unique name")
	}
	if a.UniqueName() != a.UniqueName() {
		t.Error("unique name is not stable")
	}
}

func TestCellFlatten(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(square(1))

	c := NewCell("C")
	c.Add(NewElements(square(2), square(3)))
	ref := c.AddCell(inner, Point{X: 10, Y: 0})
	ref.Rotation = 90

	flat := c.Flatten()
	if len(flat) != 3 {
		t.Fatalf("Flatten() returned %d elements, want 3", len(flat))
	}
	// The referenced square rotates about the world origin and then moves
	// to the placement origin.
	box := flat[2].BoundingBox()
	pointsClose(t, []Point{box.Min, box.Max}, []Point{{8, 0}, {10, 2}}, 1e-12)
}

func TestCellPrune(t *testing.T) {
	void := NewCell("VOID")
	deepVoid := NewCell("DEEPVOID")
	deepVoid.AddCell(void, Point{})

	full := NewCell("FULL")
	full.Add(square(1))

	top := NewCell("TOP")
	top.AddCell(deepVoid, Point{})
	top.AddCell(full, Point{})

	if top.Prune() {
		t.Fatal("top with geometry reported empty")
	}
	if n := len(top.References()); n != 1 {
		t.Fatalf("%d references after prune, want 1", n)
	}
	if top.References()[0].Target() != full {
		t.Error("prune removed the wrong reference")
	}
}

func TestPruneEmptyAggregate(t *testing.T) {
	hollow := NewCell("HOLLOW")
	hollow.Add(NewElements())

	top := NewCell("TOP")
	top.Add(square(1))
	top.AddCell(hollow, Point{})

	if top.Prune() {
		t.Fatal("top with geometry reported empty")
	}
	if n := len(top.References()); n != 0 {
		t.Errorf("%d references survived prune; an empty aggregate is not geometry", n)
	}
}

func TestCellArea(t *testing.T) {
	inner := NewCell("INNER")
	inner.Add(square(1)) // area 4

	c := NewCell("C")
	c.Add(square(2)) // area 4
	ref := c.AddCell(inner, Point{})
	ref.Magnification = 2 // area x4

	if got := c.Area(); got != 20 {
		t.Errorf("Area() = %g, want 20", got)
	}
}

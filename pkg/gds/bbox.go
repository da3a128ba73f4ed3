package gds

import "math"

// BBox is an axis-aligned bounding box. A nil *BBox means the box is
// undefined (e.g. an empty cell), which is distinct from a zero-size
// box at the origin.
type BBox struct {
	Min Point
	Max Point
}

// newBBox returns an empty bounding box ready for expansion.
func newBBox() BBox {
	return BBox{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty reports whether the box contains no points.
func (b BBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Expand grows the box to include p.
func (b *BBox) Expand(p Point) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
}

// ExpandBox grows the box to include another box.
func (b *BBox) ExpandBox(o BBox) {
	if o.IsEmpty() {
		return
	}
	b.Expand(o.Min)
	b.Expand(o.Max)
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Center returns the midpoint of the box.
func (b BBox) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Corners returns the four corners of the box counter-clockwise from Min.
func (b BBox) Corners() [4]Point {
	return [4]Point{
		{X: b.Min.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Max.Y},
	}
}

// boundingBoxOf computes the box enclosing pts.
func boundingBoxOf(pts []Point) BBox {
	b := newBBox()
	for _, p := range pts {
		b.Expand(p)
	}
	return b
}

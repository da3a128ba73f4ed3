package gds

import (
	"fmt"
	"math"
)

// Axis selects a reflection axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Element is a drawing primitive that can live in a Cell: a Boundary, a
// Path, a Text label, or an Elements aggregate of those. All transforms
// act in place and invalidate any cached bounding box.
type Element interface {
	// Copy returns a deep copy sharing no state with the original.
	Copy() Element
	// Translate displaces the element by d.
	Translate(d Point)
	// Rotate rotates by angle degrees about center. Pass COM to rotate
	// about the element's center of mass.
	Rotate(angle float64, center Point)
	// Scale scales by k (per-axis) about origin. Pass COM for the
	// element's center of mass, Uniform(k) for an isotropic factor.
	Scale(k Point, origin Point)
	// Reflect mirrors the element across the x or y axis through
	// origin. Any other axis is a usage error.
	Reflect(axis Axis, origin Point) error
	// BoundingBox returns the box enclosing the element's points.
	BoundingBox() BBox
	// Area returns the drawn area in square user units.
	Area() float64

	Layer() int
	SetLayer(layer int)
	Datatype() int
	SetDatatype(datatype int)

	encode(w *recordWriter, mul float64, diags *Diagnostics) error
}

// shape carries the point sequence, layer classification and cached
// bounding box shared by all concrete primitives.
type shape struct {
	points   []Point
	layer    int
	datatype int
	bbox     *BBox
}

// Points returns a copy of the element's point sequence.
func (s *shape) Points() []Point {
	return append([]Point(nil), s.points...)
}

// Centroid returns the arithmetic mean of the element's points.
func (s *shape) Centroid() Point {
	return centroid(s.points)
}

func (s *shape) Translate(d Point) {
	for i := range s.points {
		s.points[i] = s.points[i].Add(d)
	}
	s.bbox = nil
}

func (s *shape) Rotate(angle float64, center Point) {
	if isCOM(center) {
		center = centroid(s.points)
	}
	sin, cos := math.Sincos(angle * math.Pi / 180)
	for i := range s.points {
		s.points[i] = rotatePoint(s.points[i], center, sin, cos)
	}
	s.bbox = nil
}

func (s *shape) Scale(k Point, origin Point) {
	if isCOM(origin) {
		origin = centroid(s.points)
	}
	for i := range s.points {
		d := s.points[i].Sub(origin)
		s.points[i] = Point{X: d.X*k.X + origin.X, Y: d.Y*k.Y + origin.Y}
	}
	s.bbox = nil
}

func (s *shape) Reflect(axis Axis, origin Point) error {
	switch axis {
	case AxisX:
		s.Scale(Point{X: 1, Y: -1}, origin)
	case AxisY:
		s.Scale(Point{X: -1, Y: 1}, origin)
	default:
		return fmt.Errorf("unknown reflection axis %d", axis)
	}
	return nil
}

func (s *shape) BoundingBox() BBox {
	if s.bbox != nil {
		return *s.bbox
	}
	b := boundingBoxOf(s.points)
	s.bbox = &b
	return b
}

func (s *shape) Layer() int         { return s.layer }
func (s *shape) SetLayer(layer int) { s.layer = layer }
func (s *shape) Datatype() int      { return s.datatype }
func (s *shape) SetDatatype(dt int) { s.datatype = dt }

func (s *shape) copyShape() shape {
	return shape{
		points:   append([]Point(nil), s.points...),
		layer:    s.layer,
		datatype: s.datatype,
	}
}

// scaledCoords converts points to database-unit integers, interleaved
// x,y, rounding to nearest.
func scaledCoords(pts []Point, mul float64) []int32 {
	out := make([]int32, 0, 2*len(pts))
	for _, p := range pts {
		out = append(out, int32(math.Round(p.X*mul)), int32(math.Round(p.Y*mul)))
	}
	return out
}

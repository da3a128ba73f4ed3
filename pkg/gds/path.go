package gds

import (
	"errors"
	"fmt"
	"math"
)

// ErrTooManyPoints reports geometry that the format cannot represent.
var ErrTooManyPoints = errors.New("too many points for GDSII element")

// Path endcap styles (GDSII PATHTYPE).
const (
	PathSquare   = 0 // square ends flush with the endpoints
	PathRound    = 1 // round ends
	PathExtended = 2 // square ends extended by half the width
	PathCustom   = 4 // variable-length extensions
)

// Path is an unfilled polyline of fixed width (GDSII PATH). Unlike a
// Boundary it is not closed automatically.
type Path struct {
	shape
	Width    float64
	PathType int
}

// NewPath builds a polyline from points with the given stroke width.
func NewPath(points []Point, width float64, layer, datatype int) *Path {
	return &Path{
		shape: shape{points: append([]Point(nil), points...), layer: layer, datatype: datatype},
		Width: width,
	}
}

func (p *Path) String() string {
	return fmt.Sprintf("Path (%d vertices, layer %d, datatype %d)", len(p.points), p.layer, p.datatype)
}

func (p *Path) Copy() Element {
	return &Path{shape: p.copyShape(), Width: p.Width, PathType: p.PathType}
}

// Area estimates the drawn area as length times width. Overlaps at
// corners are not accounted for.
func (p *Path) Area() float64 {
	var length float64
	for i := 0; i+1 < len(p.points); i++ {
		d := p.points[i+1].Sub(p.points[i])
		length += math.Hypot(d.X, d.Y)
	}
	return length * p.Width
}

// ToBoundary closes this path and returns it as a filled Boundary.
func (p *Path) ToBoundary() *Boundary {
	return NewBoundary(p.points, p.layer, p.datatype)
}

func (p *Path) encode(w *recordWriter, mul float64, diags *Diagnostics) error {
	if n := len(p.points); n > extPointLimit {
		return fmt.Errorf("%w: path has %d points, limit %d", ErrTooManyPoints, n, extPointLimit)
	} else if n > specPointLimit {
		diags.Warnf("path with more than %d points (not officially supported by the GDSII format)", specPointLimit)
	}

	w.writeEmpty(recPath)
	w.writeInt16(recLayer, p.layer)
	w.writeInt16(recDatatype, p.datatype)
	w.writeInt16(recPathType, p.PathType)
	w.writeInt32(recWidth, int32(math.Round(p.Width*mul)))
	w.writeInt32(recXY, scaledCoords(p.points, mul)...)
	w.writeEmpty(recEndEl)
	return w.Err()
}

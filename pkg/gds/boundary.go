package gds

import "fmt"

// Vertex-count limits for Boundary and Path elements. specPointLimit is
// the official GDSII ceiling; extPointLimit is the widely tolerated
// multiple-XY extension.
const (
	specPointLimit = 199
	extPointLimit  = 8191
)

// Boundary is a filled, closed polygon (GDSII BOUNDARY). The point
// sequence is implicitly closed: if the caller's first and last points
// differ, a closing point is appended.
type Boundary struct {
	shape
}

// NewBoundary builds a polygon from points on the given layer and
// datatype. The caller's slice is copied, never retained.
func NewBoundary(points []Point, layer, datatype int) *Boundary {
	pts := append([]Point(nil), points...)
	if len(pts) > 1 && pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	return &Boundary{shape: shape{points: pts, layer: layer, datatype: datatype}}
}

func (b *Boundary) String() string {
	return fmt.Sprintf("Boundary (%d vertices, layer %d, datatype %d)", len(b.points), b.layer, b.datatype)
}

func (b *Boundary) Copy() Element {
	return &Boundary{shape: b.copyShape()}
}

// Area returns the polygon area by the shoelace method. The boundary is
// assumed simple, per the format's requirements.
func (b *Boundary) Area() float64 {
	var area float64
	for i := 0; i+1 < len(b.points); i++ {
		p, q := b.points[i], b.points[i+1]
		area += p.X*q.Y - q.X*p.Y
	}
	if area < 0 {
		area = -area
	}
	return area / 2
}

// ToPath returns an unfilled Path tracing this boundary's outline.
func (b *Boundary) ToPath(width float64, pathtype int) *Path {
	p := NewPath(b.points, width, b.layer, b.datatype)
	p.PathType = pathtype
	return p
}

func (b *Boundary) encode(w *recordWriter, mul float64, diags *Diagnostics) error {
	if n := len(b.points); n > extPointLimit {
		diags.Warnf("boundary with %d points split across multiple XY records (unofficial GDSII extension)", n)
	} else if n > specPointLimit {
		diags.Warnf("boundary with more than %d points (not officially supported by the GDSII format)", specPointLimit)
	}

	w.writeEmpty(recBoundary)
	w.writeInt16(recLayer, b.layer)
	w.writeInt16(recDatatype, b.datatype)

	coords := scaledCoords(b.points, mul)
	// At most 8191 coordinate pairs per XY record.
	for start := 0; start < len(coords); start += 2 * extPointLimit {
		end := start + 2*extPointLimit
		if end > len(coords) {
			end = len(coords)
		}
		w.writeInt32(recXY, coords[start:end]...)
	}
	w.writeEmpty(recEndEl)
	return w.Err()
}

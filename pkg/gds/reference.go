package gds

import (
	"fmt"
	"math"
)

// Reference places a Cell inside another Cell, either once (CellRef,
// GDSII SREF) or as a grid of instances (CellArray, GDSII AREF). A
// reference never owns its target: copying a reference yields a new
// placement pointing at the same Cell.
type Reference interface {
	// Target returns the referenced cell.
	Target() *Cell
	// Copy returns a new placement pointing at the same target.
	Copy() Reference
	// Translate displaces the placement origin.
	Translate(d Point)
	// Rotate adds to the placement rotation (degrees).
	Rotate(angle float64)
	// Scale multiplies the placement magnification.
	Scale(k float64)
	// Area returns the placed area including magnification and count.
	Area() float64
	// BoundingBox returns the placed extent of the target, or nil if
	// the target is empty.
	BoundingBox() *BBox
	// Flatten expands the placement into world-space element copies.
	Flatten() []Element

	encode(w *recordWriter, mul float64, names map[*Cell]string) error
	copyWithTarget(t *Cell) Reference
	retarget(t *Cell)
}

// placement is the affine placement shared by CellRef and CellArray:
// scale by Magnification, rotate by Rotation, mirror across the x axis
// if XReflection, then translate by Origin.
type placement struct {
	target        *Cell
	Origin        Point
	Rotation      float64 // degrees, 0 = unset
	Magnification float64 // 1 = unset
	XReflection   bool
}

func (p *placement) Target() *Cell        { return p.target }
func (p *placement) retarget(t *Cell)     { p.target = t }
func (p *placement) Translate(d Point)    { p.Origin = p.Origin.Add(d) }
func (p *placement) Rotate(angle float64) { p.Rotation += angle }
func (p *placement) Scale(k float64)      { p.Magnification *= k }

func (p *placement) hasTransform() bool {
	return p.XReflection || p.Rotation != 0 || p.Magnification != 1
}

// encodeTransform writes the optional STRANS/MAG/ANGLE group.
func (p *placement) encodeTransform(w *recordWriter) {
	if !p.hasTransform() {
		return
	}
	var word uint16
	if p.XReflection {
		word |= 0x8000
	}
	if p.Magnification != 1 {
		word |= 0x0004
	}
	if p.Rotation != 0 {
		word |= 0x0002
	}
	w.writeUint16(recSTrans, word)
	if p.Magnification != 1 {
		w.writeReal8(recMag, p.Magnification)
	}
	if p.Rotation != 0 {
		w.writeReal8(recAngle, p.Rotation)
	}
}

// placedBox places the target's bounding box with the same transform
// order as placeElement: scale it, extend the far corner by extent (the
// array lattice span, zero for a single reference), rotate the four
// corners, mirror, then translate. Corner rotation is an approximation
// for transformed non-rectangular content.
func (p *placement) placedBox(inner *BBox, extent Point) *BBox {
	if inner == nil {
		return nil
	}
	box := BBox{Min: inner.Min.Mul(p.Magnification), Max: inner.Max.Mul(p.Magnification)}
	box.Max = box.Max.Add(extent)
	if p.Rotation != 0 {
		sin, cos := math.Sincos(p.Rotation * math.Pi / 180)
		rotated := newBBox()
		for _, corner := range box.Corners() {
			rotated.Expand(rotatePoint(corner, Point{}, sin, cos))
		}
		box = rotated
	}
	if p.XReflection {
		box.Min.Y, box.Max.Y = -box.Max.Y, -box.Min.Y
	}
	box.Min = box.Min.Add(p.Origin)
	box.Max = box.Max.Add(p.Origin)
	return &box
}

// placeElement applies the placement transform to a flattened element.
func (p *placement) placeElement(e Element) {
	if p.Magnification != 1 {
		e.Scale(Uniform(p.Magnification), Point{})
	}
	if p.Rotation != 0 {
		e.Rotate(p.Rotation, Point{})
	}
	if p.XReflection {
		e.Reflect(AxisX, Point{}) //nolint:errcheck // AxisX is always valid
	}
	e.Translate(p.Origin)
}

// refName resolves the name a reference must serialize: the target's
// unique name when the save found duplicates, its given name otherwise.
func refName(names map[*Cell]string, target *Cell) string {
	if u, ok := names[target]; ok {
		return u
	}
	return target.name
}

// CellRef is a single placement of a cell (GDSII SREF).
type CellRef struct {
	placement
}

// NewCellRef places target at origin with no rotation, magnification or
// reflection. The placement fields may be set afterwards.
func NewCellRef(target *Cell, origin Point) *CellRef {
	return &CellRef{placement{target: target, Origin: origin, Magnification: 1}}
}

func (r *CellRef) String() string {
	name := "<unresolved>"
	if r.target != nil {
		name = r.target.name
	}
	return fmt.Sprintf("CellRef (%q, at (%g, %g), rotation %g, magnification %g, reflection %t)",
		name, r.Origin.X, r.Origin.Y, r.Rotation, r.Magnification, r.XReflection)
}

func (r *CellRef) Copy() Reference {
	cp := *r
	return &cp
}

func (r *CellRef) copyWithTarget(t *Cell) Reference {
	cp := *r
	cp.target = t
	return &cp
}

func (r *CellRef) Area() float64 {
	return r.target.Area() * r.Magnification * r.Magnification
}

func (r *CellRef) BoundingBox() *BBox {
	return r.placedBox(r.target.BoundingBox(), Point{})
}

func (r *CellRef) Flatten() []Element {
	elems := r.target.Flatten()
	for _, e := range elems {
		r.placeElement(e)
	}
	return elems
}

func (r *CellRef) encode(w *recordWriter, mul float64, names map[*Cell]string) error {
	w.writeEmpty(recSRef)
	w.writeString(recSName, refName(names, r.target))
	r.encodeTransform(w)
	w.writeInt32(recXY, scaledCoords([]Point{r.Origin}, mul)...)
	w.writeEmpty(recEndEl)
	return w.Err()
}

// CellArray is a cols x rows grid of placements of a cell (GDSII AREF).
// Spacing[0] is the step between columns and Spacing[1] the step
// between rows, generalizing simple x/y pitch to an arbitrary lattice.
type CellArray struct {
	placement
	Cols    int
	Rows    int
	Spacing [2]Point
}

// GridSpacing returns the lattice for a plain rectangular array with
// column pitch dx and row pitch dy.
func GridSpacing(dx, dy float64) [2]Point {
	return [2]Point{{X: dx}, {Y: dy}}
}

// NewCellArray places a cols x rows grid of target instances on the
// given lattice, anchored at origin.
func NewCellArray(target *Cell, cols, rows int, spacing [2]Point, origin Point) *CellArray {
	return &CellArray{
		placement: placement{target: target, Origin: origin, Magnification: 1},
		Cols:      cols,
		Rows:      rows,
		Spacing:   spacing,
	}
}

func (a *CellArray) String() string {
	name := "<unresolved>"
	if a.target != nil {
		name = a.target.name
	}
	return fmt.Sprintf("CellArray (%q, %d x %d, at (%g, %g), rotation %g, magnification %g, reflection %t)",
		name, a.Cols, a.Rows, a.Origin.X, a.Origin.Y, a.Rotation, a.Magnification, a.XReflection)
}

func (a *CellArray) Copy() Reference {
	cp := *a
	return &cp
}

func (a *CellArray) copyWithTarget(t *Cell) Reference {
	cp := *a
	cp.target = t
	return &cp
}

func (a *CellArray) Area() float64 {
	return a.target.Area() * a.Magnification * a.Magnification * float64(a.Cols*a.Rows)
}

func (a *CellArray) BoundingBox() *BBox {
	extent := a.Spacing[0].Mul(float64(a.Cols - 1)).Add(a.Spacing[1].Mul(float64(a.Rows - 1)))
	return a.placedBox(a.target.BoundingBox(), extent)
}

// Flatten expands every grid position: each copy is scaled and moved to
// its lattice offset, then the whole tiled set receives the array's
// rotation, mirroring and origin in the same order a single reference
// applies them.
func (a *CellArray) Flatten() []Element {
	sub := a.target.Flatten()
	out := make([]Element, 0, len(sub)*a.Cols*a.Rows)
	for i := 0; i < a.Cols; i++ {
		for j := 0; j < a.Rows; j++ {
			offset := a.Spacing[0].Mul(float64(i)).Add(a.Spacing[1].Mul(float64(j)))
			for _, e := range sub {
				cp := e.Copy()
				if a.Magnification != 1 {
					cp.Scale(Uniform(a.Magnification), Point{})
				}
				cp.Translate(offset)
				out = append(out, cp)
			}
		}
	}
	for _, e := range out {
		if a.Rotation != 0 {
			e.Rotate(a.Rotation, Point{})
		}
		if a.XReflection {
			e.Reflect(AxisX, Point{}) //nolint:errcheck // AxisX is always valid
		}
		e.Translate(a.Origin)
	}
	return out
}

func (a *CellArray) encode(w *recordWriter, mul float64, names map[*Cell]string) error {
	w.writeEmpty(recARef)
	w.writeString(recSName, refName(names, a.target))

	// The lattice is written as three points: the origin, the corner
	// one full column span away and the corner one full row span away,
	// both carried through the reflection and rotation.
	colCorner := a.Origin.Add(a.Spacing[0].Mul(float64(a.Cols)))
	rowCorner := a.Origin.Add(a.Spacing[1].Mul(float64(a.Rows)))
	if a.XReflection {
		rowCorner.Y = 2*a.Origin.Y - rowCorner.Y
	}
	if a.Rotation != 0 {
		sin, cos := math.Sincos(a.Rotation * math.Pi / 180)
		colCorner = rotatePoint(colCorner, a.Origin, sin, cos)
		rowCorner = rotatePoint(rowCorner, a.Origin, sin, cos)
	}

	a.encodeTransform(w)
	w.writeInt16(recColRow, a.Cols, a.Rows)
	w.writeInt32(recXY, scaledCoords([]Point{a.Origin, colCorner, rowCorner}, mul)...)
	w.writeEmpty(recEndEl)
	return w.Err()
}

package gds

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// ErrUnresolvedReference reports an SREF/AREF whose target name never
// appeared in the stream.
var ErrUnresolvedReference = errors.New("unresolved cell reference")

// ReadLayout decodes a GDSII stream into a Layout. Forward references
// are legal in the stream, so references are resolved in a fix-up pass
// once every cell is known; a name that never resolves is a hard error
// and no partial layout is returned. The returned layout holds only
// top-level cells (cells not referenced by any other decoded cell);
// everything else remains reachable through references. Recoverable
// conditions, such as unrecognized record types, are collected on the
// layout's Diagnostics. The reader is not closed.
func ReadLayout(r io.Reader) (*Layout, error) {
	d := &decoder{
		r:      r,
		layout: NewLayout("IMPORT"),
		byName: make(map[string]*Cell),
		diags:  &Diagnostics{},
	}
	return d.run()
}

// ReadFile decodes the GDSII stream file at path.
func ReadFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLayout(f)
}

// elementKind tags the element builder with the record that opened it.
type elementKind int

const (
	kindNone elementKind = iota
	kindBoundary
	kindPath
	kindText
	kindSRef
	kindARef
)

func (k elementKind) String() string {
	switch k {
	case kindBoundary:
		return "BOUNDARY"
	case kindPath:
		return "PATH"
	case kindText:
		return "TEXT"
	case kindSRef:
		return "SREF"
	case kindARef:
		return "AREF"
	}
	return "none"
}

// builder accumulates the fields of the element currently being decoded
// and is reset at every ENDEL/ENDSTR boundary. Required fields are
// checked when ENDEL closes the element.
type builder struct {
	kind      elementKind
	layer     int
	datatype  int
	texttype  int
	xy        []int32 // raw database units, XY records concatenated
	width     float64 // user units
	pathtype  int
	text      string
	hasText   bool
	anchor    int
	sawStrans bool
	xrefl     bool
	mag       float64
	hasMag    bool
	angle     float64
	hasAngle  bool
	sname     string
	cols      int
	rows      int
	hasColRow bool
}

// pendingRef is a reference decoded before its target; the fix-up pass
// rewires it once all cells are known.
type pendingRef struct {
	ref  Reference
	name string
}

type decoder struct {
	r       io.Reader
	layout  *Layout
	factor  float64 // user units per database unit
	cell    *Cell
	cells   []*Cell
	byName  map[string]*Cell
	pending []pendingRef
	b       *builder
	diags   *Diagnostics
}

func (d *decoder) run() (*Layout, error) {
	for {
		rec, err := readRecord(d.r)
		if err == io.EOF {
			// A record boundary is not a library boundary: only ENDLIB
			// terminates a well-formed stream.
			return nil, fmt.Errorf("%w: stream ended before ENDLIB", ErrTruncated)
		}
		if err != nil {
			return nil, err
		}
		if rec.rtype == recEndLib {
			break
		}
		if err := d.handle(rec); err != nil {
			return nil, err
		}
	}

	for _, p := range d.pending {
		target, ok := d.byName[p.name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnresolvedReference, p.name)
		}
		p.ref.retarget(target)
	}

	// Keep only top-level cells; internal cells stay reachable through
	// the references that use them.
	referenced := make(map[*Cell]bool)
	for _, c := range d.cells {
		for _, dep := range c.Dependencies() {
			referenced[dep] = true
		}
	}
	for _, c := range d.cells {
		if !referenced[c] {
			d.layout.cells = append(d.layout.cells, c)
		}
	}
	d.layout.diags = d.diags
	return d.layout, nil
}

func (d *decoder) handle(rec record) error {
	switch rec.rtype {
	case recHeader, recBgnLib, recBgnStr:
		// Version and timestamps carry no layout state.

	case recLibName:
		d.layout.Name = rec.text()

	case recUnits:
		vals := rec.reals()
		if len(vals) < 2 {
			return fmt.Errorf("UNITS record with %d values, want 2", len(vals))
		}
		d.factor = vals[0]
		d.layout.Precision = vals[1]
		d.layout.Unit = vals[1] / vals[0]

	case recStrName:
		name := rec.text()
		cell := NewCell(name)
		d.cells = append(d.cells, cell)
		d.byName[name] = cell
		d.cell = cell

	case recEndStr:
		d.cell = nil
		d.b = nil

	case recBoundary:
		return d.open(kindBoundary)
	case recPath:
		return d.open(kindPath)
	case recText:
		return d.open(kindText)
	case recSRef:
		return d.open(kindSRef)
	case recARef:
		return d.open(kindARef)

	case recEndEl:
		return d.closeElement()

	case recLayer:
		return d.field(rec, func(b *builder) { b.layer = first(rec.int16s()) })
	case recDatatype:
		return d.field(rec, func(b *builder) { b.datatype = first(rec.int16s()) })
	case recTextType:
		return d.field(rec, func(b *builder) { b.texttype = first(rec.int16s()) })
	case recPathType:
		return d.field(rec, func(b *builder) { b.pathtype = first(rec.int16s()) })
	case recPresentation:
		return d.field(rec, func(b *builder) { b.anchor = first(rec.uint16s()) })
	case recString:
		return d.field(rec, func(b *builder) { b.text = rec.text(); b.hasText = true })
	case recSName:
		return d.field(rec, func(b *builder) { b.sname = rec.text() })

	case recXY:
		return d.field(rec, func(b *builder) { b.xy = append(b.xy, rec.int32s()...) })

	case recWidth:
		return d.field(rec, func(b *builder) {
			v := first(rec.int32s())
			if v < 0 {
				d.diags.Warnf("paths with absolute width are not supported; treating the width as scalable")
				v = -v
			}
			b.width = float64(v) * d.factor
		})

	case recColRow:
		return d.field(rec, func(b *builder) {
			vals := rec.int16s()
			if len(vals) >= 2 {
				b.cols, b.rows = vals[0], vals[1]
				b.hasColRow = true
			}
		})

	case recSTrans:
		return d.field(rec, func(b *builder) {
			b.sawStrans = true
			b.xrefl = first(rec.uint16s())&0x8000 != 0
		})
	case recMag:
		return d.field(rec, func(b *builder) { b.mag = first(rec.reals()); b.hasMag = true })
	case recAngle:
		return d.field(rec, func(b *builder) { b.angle = first(rec.reals()); b.hasAngle = true })

	default:
		d.diags.Warnf("skipping unsupported record type %s", recordName(rec.rtype))
	}
	return nil
}

func (d *decoder) open(kind elementKind) error {
	if d.cell == nil {
		return fmt.Errorf("%s element outside of a structure", kind)
	}
	if d.b != nil && d.b.kind != kindNone {
		return fmt.Errorf("%s element opened before %s was closed", kind, d.b.kind)
	}
	d.b = &builder{kind: kind, mag: 1}
	return nil
}

// field applies a record to the current element builder. A field record
// arriving outside an element is tolerated with a warning, since some
// producers emit stray attribute records.
func (d *decoder) field(rec record, apply func(*builder)) error {
	if d.b == nil {
		d.diags.Warnf("ignoring %s record outside of an element", recordName(rec.rtype))
		return nil
	}
	apply(d.b)
	return nil
}

func (d *decoder) closeElement() error {
	b := d.b
	d.b = nil
	if b == nil || b.kind == kindNone {
		d.diags.Warnf("ignoring ENDEL with no open element")
		return nil
	}

	switch b.kind {
	case kindBoundary:
		pts, err := b.points(d.factor, 1)
		if err != nil {
			return fmt.Errorf("BOUNDARY: %w", err)
		}
		d.cell.Add(NewBoundary(pts, b.layer, b.datatype))

	case kindPath:
		pts, err := b.points(d.factor, 1)
		if err != nil {
			return fmt.Errorf("PATH: %w", err)
		}
		p := NewPath(pts, b.width, b.layer, b.datatype)
		p.PathType = b.pathtype
		d.cell.Add(p)

	case kindText:
		pts, err := b.points(d.factor, 1)
		if err != nil {
			return fmt.Errorf("TEXT: %w", err)
		}
		if !b.hasText {
			return errors.New("TEXT element missing STRING record")
		}
		t := NewText(b.text, pts[0], TextAnchor(b.anchor), b.layer, b.texttype)
		t.Rotation = b.angle
		if b.hasMag {
			t.Magnification = b.mag
		}
		t.XReflection = b.xrefl
		d.cell.Add(t)

	case kindSRef:
		if b.sname == "" {
			return errors.New("SREF element missing SNAME record")
		}
		pts, err := b.points(d.factor, 1)
		if err != nil {
			return fmt.Errorf("SREF: %w", err)
		}
		ref := NewCellRef(nil, pts[0])
		b.applyTransform(&ref.placement)
		d.cell.AddReference(ref)
		d.pending = append(d.pending, pendingRef{ref: ref, name: b.sname})

	case kindARef:
		if b.sname == "" {
			return errors.New("AREF element missing SNAME record")
		}
		if !b.hasColRow || b.cols <= 0 || b.rows <= 0 {
			return errors.New("AREF element missing COLROW record")
		}
		pts, err := b.points(d.factor, 3)
		if err != nil {
			return fmt.Errorf("AREF: %w", err)
		}
		arr := NewCellArray(nil, b.cols, b.rows, b.lattice(pts), pts[0])
		b.applyTransform(&arr.placement)
		d.cell.AddReference(arr)
		d.pending = append(d.pending, pendingRef{ref: arr, name: b.sname})
	}
	return nil
}

// points scales the accumulated XY coordinates into user units,
// checking for the exact point count when want is non-zero (a Text
// anchor or the three AREF lattice corners); want==1 accepts one or
// more pairs for Boundary/Path/Text/SREF, whose grammar fixes the rest.
func (b *builder) points(factor float64, want int) ([]Point, error) {
	if factor <= 0 {
		return nil, errors.New("element before UNITS record")
	}
	if len(b.xy) == 0 {
		return nil, errors.New("missing XY record")
	}
	if len(b.xy)%2 != 0 {
		return nil, fmt.Errorf("XY record with odd coordinate count %d", len(b.xy))
	}
	n := len(b.xy) / 2
	if want > 1 && n != want {
		return nil, fmt.Errorf("XY record with %d points, want %d", n, want)
	}
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			X: float64(b.xy[2*i]) * factor,
			Y: float64(b.xy[2*i+1]) * factor,
		}
	}
	return pts, nil
}

func (b *builder) applyTransform(p *placement) {
	if b.hasAngle {
		p.Rotation = b.angle
	}
	if b.hasMag {
		p.Magnification = b.mag
	}
	p.XReflection = b.xrefl
}

// lattice reconstructs the array spacing from the three AREF corner
// points, undoing the rotation and reflection baked into them. The
// result assumes an axis-aligned lattice.
func (b *builder) lattice(pts []Point) [2]Point {
	origin, colCorner, rowCorner := pts[0], pts[1], pts[2]
	x2, y3 := colCorner.X, rowCorner.Y
	if b.sawStrans {
		if b.hasAngle {
			sin, cos := math.Sincos(-b.angle * math.Pi / 180)
			x2 = (colCorner.X-origin.X)*cos - (colCorner.Y-origin.Y)*sin + origin.X
			y3 = (rowCorner.X-origin.X)*sin + (rowCorner.Y-origin.Y)*cos + origin.Y
		}
		if b.xrefl {
			y3 = 2*origin.Y - y3
		}
	}
	return GridSpacing((x2-origin.X)/float64(b.cols), (y3-origin.Y)/float64(b.rows))
}

func first[T int | int32 | float64](vals []T) T {
	if len(vals) == 0 {
		return 0
	}
	return vals[0]
}

package gds

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Layout is the top-level collection of cells (GDSII LIBRARY). The
// dimensions written to a stream are the user-unit dimensions times
// Unit/Precision: with the defaults of 1 um and 1 nm, a coordinate of
// 1.5 is stored as 1500 database units.
type Layout struct {
	Name      string
	Unit      float64 // meters per user unit
	Precision float64 // meters per database unit

	cells []*Cell
	diags *Diagnostics
}

// NewLayout creates an empty library with 1 um user units and 1 nm
// database precision.
func NewLayout(name string) *Layout {
	return &Layout{Name: name, Unit: 1e-6, Precision: 1e-9}
}

// Add appends top-level cells to the layout. Adding a cell whose name
// already appears in the layout's dependency closure is legal but
// recorded as a warning; the save pass uniquifies duplicate names.
func (l *Layout) Add(cells ...*Cell) {
	for _, c := range cells {
		for _, existing := range l.Dependencies() {
			if existing != c && existing.name == c.name {
				l.warnf("a cell named %q is already in this library", c.name)
				break
			}
		}
		l.cells = append(l.cells, c)
	}
}

// Cell returns the first directly added cell with the given name.
func (l *Layout) Cell(name string) (*Cell, bool) {
	for _, c := range l.cells {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// Cells returns the directly added cells in insertion order.
func (l *Layout) Cells() []*Cell {
	return append([]*Cell(nil), l.cells...)
}

// Dependencies returns every cell in the layout: the directly added
// cells plus everything transitively reachable through references,
// each exactly once.
func (l *Layout) Dependencies() []*Cell {
	var out []*Cell
	seen := make(map[*Cell]bool)
	for _, c := range l.cells {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		for _, dep := range c.Dependencies() {
			if !seen[dep] {
				seen[dep] = true
				out = append(out, dep)
			}
		}
	}
	return out
}

// TopLevel returns the cells not referenced by any other cell in the
// layout.
func (l *Layout) TopLevel() []*Cell {
	referenced := make(map[*Cell]bool)
	for _, c := range l.Dependencies() {
		for _, dep := range c.Dependencies() {
			referenced[dep] = true
		}
	}
	var top []*Cell
	for _, c := range l.cells {
		if !referenced[c] {
			top = append(top, c)
		}
	}
	return top
}

// BoundingBox returns the union of the top-level cells' boxes, or nil
// if every top-level cell is empty.
func (l *Layout) BoundingBox() *BBox {
	box := newBBox()
	for _, c := range l.TopLevel() {
		if cb := c.BoundingBox(); cb != nil {
			box.ExpandBox(*cb)
		}
	}
	if box.IsEmpty() {
		return nil
	}
	return &box
}

// Copy returns a deep copy of the layout. Sharing between cells is
// preserved within the copy.
func (l *Layout) Copy() *Layout {
	cp := &Layout{Name: l.Name, Unit: l.Unit, Precision: l.Precision}
	memo := make(map[*Cell]*Cell)
	for _, c := range l.cells {
		cp.cells = append(cp.cells, c.copyInto(memo))
	}
	return cp
}

// Diagnostics returns the warnings collected by the most recent Save or
// by Add. It is never nil.
func (l *Layout) Diagnostics() *Diagnostics {
	if l.diags == nil {
		l.diags = &Diagnostics{}
	}
	return l.diags
}

func (l *Layout) warnf(format string, args ...any) {
	l.Diagnostics().Warnf(format, args...)
}

// Save writes the layout as a GDSII stream. Every cell in the
// dependency closure is written exactly once; duplicate cell names are
// serialized under their unique names, consistently between a cell and
// every reference to it. The writer is not closed.
func (l *Layout) Save(w io.Writer) error {
	l.diags = &Diagnostics{}
	cells := l.Dependencies()
	names := l.uniquify(cells)

	now := time.Now()
	rw := &recordWriter{w: w}
	rw.writeInt16(recHeader, 600)
	rw.writeInt16(recBgnLib, timestamp(now)...)
	rw.writeString(recLibName, l.Name)
	rw.writeReal8(recUnits, l.Precision/l.Unit, l.Precision)

	mul := l.Unit / l.Precision
	for _, c := range cells {
		if err := c.encode(rw, mul, names, now, l.diags); err != nil {
			return fmt.Errorf("cell %q: %w", c.name, err)
		}
	}
	rw.writeEmpty(recEndLib)
	return rw.Err()
}

// SaveFile writes the layout to a new file at path.
func (l *Layout) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := l.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// uniquify maps every cell whose name collides with another cell's to
// its unique name. Cells with unambiguous names are not in the map.
func (l *Layout) uniquify(cells []*Cell) map[*Cell]string {
	count := make(map[string]int)
	for _, c := range cells {
		count[c.name]++
	}
	names := make(map[*Cell]string)
	for _, c := range cells {
		if count[c.name] > 1 {
			names[c] = c.UniqueName()
			l.warnf("duplicate cell name %q will be made unique", c.name)
		}
	}
	return names
}

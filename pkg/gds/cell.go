package gds

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Cell is a named container of drawing elements and of references to
// other cells (GDSII STRUCTURE). Cells are shared by reference: adding
// the same Cell under two parents stores it once in the stream no
// matter how many times it is placed.
type Cell struct {
	name       string
	id         uuid.UUID
	objects    []Element
	references []Reference
}

// NewCell creates an empty cell with the given name.
func NewCell(name string) *Cell {
	return &Cell{name: name, id: uuid.New()}
}

func (c *Cell) String() string {
	return fmt.Sprintf("Cell (%q, %d elements, %d references)", c.name, len(c.objects), len(c.references))
}

// Name returns the cell's given name.
func (c *Cell) Name() string { return c.name }

// SetName renames the cell.
func (c *Cell) SetName(name string) { c.name = name }

// UniqueName returns a collision-resistant name derived from the cell's
// identity, used when duplicate names are found in a save's dependency
// closure. It is stable for the lifetime of the cell.
func (c *Cell) UniqueName() string {
	return fmt.Sprintf("%s_%X", c.name, c.id[:4])
}

// Add appends drawing elements to the cell.
func (c *Cell) Add(elems ...Element) {
	c.objects = append(c.objects, elems...)
}

// AddReference appends cell references to the cell.
func (c *Cell) AddReference(refs ...Reference) {
	c.references = append(c.references, refs...)
}

// AddCell places target inside this cell at origin through an implicit
// CellRef, which is returned for further placement adjustments.
func (c *Cell) AddCell(target *Cell, origin Point) *CellRef {
	ref := NewCellRef(target, origin)
	c.references = append(c.references, ref)
	return ref
}

// Objects returns the cell's drawing elements, excluding references.
func (c *Cell) Objects() []Element { return c.objects }

// References returns the cell's references to other cells.
func (c *Cell) References() []Reference { return c.references }

// Len returns the total number of elements and references.
func (c *Cell) Len() int { return len(c.objects) + len(c.references) }

// IsEmpty reports whether the cell holds no elements and no references.
func (c *Cell) IsEmpty() bool { return c.Len() == 0 }

// Area returns the total drawn area including referenced cells, with
// magnification and array counts applied.
func (c *Cell) Area() float64 {
	var area float64
	for _, o := range c.objects {
		area += o.Area()
	}
	for _, r := range c.references {
		area += r.Area()
	}
	return area
}

// Layers returns the sorted set of layers used in this cell and,
// transitively, in every referenced cell.
func (c *Cell) Layers() []int {
	set := make(map[int]bool)
	seen := make(map[*Cell]bool)
	c.collectLayers(set, seen)
	out := make([]int, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

func (c *Cell) collectLayers(set map[int]bool, seen map[*Cell]bool) {
	if seen[c] {
		return
	}
	seen[c] = true
	for _, o := range c.objects {
		collectElementLayers(o, set)
	}
	for _, r := range c.references {
		if t := r.Target(); t != nil {
			t.collectLayers(set, seen)
		}
	}
}

// collectElementLayers records the layers an element draws on. An
// Elements aggregate contributes its members' layers, not its own.
func collectElementLayers(e Element, set map[int]bool) {
	if group, ok := e.(*Elements); ok {
		for _, m := range group.members {
			collectElementLayers(m, set)
		}
		return
	}
	set[e.Layer()] = true
}

// BoundingBox returns the box enclosing the cell's elements and
// references, or nil for an empty cell. Nil means "undefined", not a
// zero-size box at the origin.
func (c *Cell) BoundingBox() *BBox {
	box := newBBox()
	for _, o := range c.objects {
		box.ExpandBox(o.BoundingBox())
	}
	for _, r := range c.references {
		if rb := r.BoundingBox(); rb != nil {
			box.ExpandBox(*rb)
		}
	}
	if box.IsEmpty() {
		return nil
	}
	return &box
}

// Dependencies returns every cell transitively reachable through this
// cell's references. Each cell appears exactly once regardless of how
// many paths reach it, and the walk terminates even if a reference
// cycle has been introduced.
func (c *Cell) Dependencies() []*Cell {
	var out []*Cell
	seen := map[*Cell]bool{c: true}
	var walk func(*Cell)
	walk = func(cur *Cell) {
		for _, r := range cur.references {
			t := r.Target()
			if t == nil || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
			walk(t)
		}
	}
	walk(c)
	return out
}

// Flatten recursively expands the cell through all references into a
// flat list of world-space element copies. No references remain.
func (c *Cell) Flatten() []Element {
	var out []Element
	for _, o := range c.objects {
		if group, ok := o.(*Elements); ok {
			for _, m := range group.Members() {
				out = append(out, m.Copy())
			}
			continue
		}
		out = append(out, o.Copy())
	}
	for _, r := range c.references {
		out = append(out, r.Flatten()...)
	}
	return out
}

// Prune recursively removes references whose targets contain no
// geometry after pruning. An Elements aggregate with no members counts
// as no geometry. It reports whether this cell itself ended up empty.
// Cells are expected to be acyclic.
func (c *Cell) Prune() bool {
	kept := c.references[:0]
	for _, r := range c.references {
		t := r.Target()
		if t != nil && t.Prune() {
			continue
		}
		kept = append(kept, r)
	}
	c.references = kept
	if len(c.references) > 0 {
		return false
	}
	for _, o := range c.objects {
		if elementHasGeometry(o) {
			return false
		}
	}
	return true
}

// elementHasGeometry reports whether e draws anything. Aggregates are
// judged by their members.
func elementHasGeometry(e Element) bool {
	if group, ok := e.(*Elements); ok {
		for _, m := range group.members {
			if elementHasGeometry(m) {
				return true
			}
		}
		return false
	}
	return true
}

// Copy returns a recursive deep copy of the cell. Internal sharing is
// preserved: a sub-cell referenced twice in the original is referenced
// twice, by one copy, in the result. An empty name keeps the original's.
func (c *Cell) Copy(name string) *Cell {
	memo := make(map[*Cell]*Cell)
	cp := c.copyInto(memo)
	if name != "" {
		cp.name = name
	}
	return cp
}

// CopyWithSuffix deep-copies the cell and appends suffix to its name
// and the name of every copied sub-cell, producing an independently
// renameable variant of the whole sub-hierarchy.
func (c *Cell) CopyWithSuffix(suffix string) *Cell {
	cp := c.Copy("")
	cp.name += suffix
	for _, dep := range cp.Dependencies() {
		dep.name += suffix
	}
	return cp
}

func (c *Cell) copyInto(memo map[*Cell]*Cell) *Cell {
	if dup, ok := memo[c]; ok {
		return dup
	}
	cp := NewCell(c.name)
	memo[c] = cp
	for _, o := range c.objects {
		cp.objects = append(cp.objects, o.Copy())
	}
	for _, r := range c.references {
		target := r.Target()
		if target != nil {
			target = target.copyInto(memo)
		}
		cp.references = append(cp.references, r.copyWithTarget(target))
	}
	return cp
}

func (c *Cell) encode(w *recordWriter, mul float64, names map[*Cell]string, now time.Time, diags *Diagnostics) error {
	name := c.name
	if u, ok := names[c]; ok {
		name = u
	}
	if len(name) > 32 {
		diags.Warnf("cell name %q is longer than the official GDSII limit of 32 characters", name)
	}

	w.writeInt16(recBgnStr, timestamp(now)...)
	w.writeString(recStrName, name)
	for _, o := range c.objects {
		if err := o.encode(w, mul, diags); err != nil {
			return err
		}
	}
	for _, r := range c.references {
		if err := r.encode(w, mul, names); err != nil {
			return err
		}
	}
	w.writeEmpty(recEndStr)
	return w.Err()
}

// timestamp returns a modification/access pair of GDSII date fields.
func timestamp(t time.Time) []int {
	f := []int{t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()}
	return append(f, f...)
}

package gds

import "fmt"

// Elements is an ordered collection of drawing elements that can be
// transformed as one unit. It has no GDSII equivalent: at encode time
// its members are written individually. Setting the layer or datatype
// on the collection propagates to every member.
type Elements struct {
	members  []Element
	layer    int
	datatype int
}

// NewElements builds a collection from the given members. The layer and
// datatype default to those of the first member.
func NewElements(members ...Element) *Elements {
	e := &Elements{members: append([]Element(nil), members...)}
	if len(members) > 0 {
		e.layer = members[0].Layer()
		e.datatype = members[0].Datatype()
	}
	return e
}

func (e *Elements) String() string {
	return fmt.Sprintf("Elements (layer %d, datatype %d, %d members)", e.layer, e.datatype, len(e.members))
}

// Add appends a member.
func (e *Elements) Add(el Element) {
	e.members = append(e.members, el)
}

// Merge appends the members of another collection, keeping the list flat.
func (e *Elements) Merge(other *Elements) {
	e.members = append(e.members, other.members...)
}

// Members returns the member list. The slice is shared; members are the
// same objects held by the collection.
func (e *Elements) Members() []Element {
	return e.members
}

// Len returns the number of members.
func (e *Elements) Len() int {
	return len(e.members)
}

// At returns the member at index i.
func (e *Elements) At(i int) Element {
	return e.members[i]
}

func (e *Elements) Copy() Element {
	cp := &Elements{layer: e.layer, datatype: e.datatype}
	for _, m := range e.members {
		cp.members = append(cp.members, m.Copy())
	}
	return cp
}

func (e *Elements) Translate(d Point) {
	for _, m := range e.members {
		m.Translate(d)
	}
}

func (e *Elements) Rotate(angle float64, center Point) {
	for _, m := range e.members {
		m.Rotate(angle, center)
	}
}

func (e *Elements) Scale(k Point, origin Point) {
	for _, m := range e.members {
		m.Scale(k, origin)
	}
}

func (e *Elements) Reflect(axis Axis, origin Point) error {
	for _, m := range e.members {
		if err := m.Reflect(axis, origin); err != nil {
			return err
		}
	}
	return nil
}

// BoundingBox returns the union of the members' boxes. It is empty for
// a collection with no members.
func (e *Elements) BoundingBox() BBox {
	b := newBBox()
	for _, m := range e.members {
		b.ExpandBox(m.BoundingBox())
	}
	return b
}

func (e *Elements) Area() float64 {
	var area float64
	for _, m := range e.members {
		area += m.Area()
	}
	return area
}

func (e *Elements) Layer() int { return e.layer }

// SetLayer sets the collection layer and propagates it to every member.
func (e *Elements) SetLayer(layer int) {
	e.layer = layer
	for _, m := range e.members {
		m.SetLayer(layer)
	}
}

// SetLayers assigns one layer per member. The list length must match
// the member count exactly.
func (e *Elements) SetLayers(layers []int) error {
	if len(layers) != len(e.members) {
		return fmt.Errorf("got %d layers for %d members", len(layers), len(e.members))
	}
	for i, m := range e.members {
		m.SetLayer(layers[i])
	}
	return nil
}

// SetDatatypes assigns one datatype per member. The list length must
// match the member count exactly.
func (e *Elements) SetDatatypes(datatypes []int) error {
	if len(datatypes) != len(e.members) {
		return fmt.Errorf("got %d datatypes for %d members", len(datatypes), len(e.members))
	}
	for i, m := range e.members {
		m.SetDatatype(datatypes[i])
	}
	return nil
}

func (e *Elements) Datatype() int { return e.datatype }

// SetDatatype sets the collection datatype and propagates it to every
// member.
func (e *Elements) SetDatatype(dt int) {
	e.datatype = dt
	for _, m := range e.members {
		m.SetDatatype(dt)
	}
}

func (e *Elements) encode(w *recordWriter, mul float64, diags *Diagnostics) error {
	for _, m := range e.members {
		if err := m.encode(w, mul, diags); err != nil {
			return err
		}
	}
	return nil
}

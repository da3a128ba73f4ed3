package gds

// Relayer returns a deep copy of cell in which every element drawn on
// one of the from layers, anywhere in the hierarchy, is moved to layer
// to. The original cell is untouched.
func Relayer(cell *Cell, from []int, to int) *Cell {
	selected := layerSet(from)
	cp := cell.Copy("")
	for _, c := range append([]*Cell{cp}, cp.Dependencies()...) {
		for _, o := range c.objects {
			relayerElement(o, selected, to)
		}
	}
	return cp
}

func relayerElement(e Element, selected map[int]bool, to int) {
	if group, ok := e.(*Elements); ok {
		for _, m := range group.Members() {
			relayerElement(m, selected, to)
		}
		return
	}
	if selected[e.Layer()] {
		e.SetLayer(to)
	}
}

// SplitLayers partitions the artwork of cell by layer into two deep
// copies: rest holds everything not drawn on the given layers, selected
// holds only the artwork that is. Both hierarchies are pruned of
// references that end up empty.
func SplitLayers(cell *Cell, layers []int) (rest, selected *Cell) {
	on := layerSet(layers)

	rest = cell.Copy("")
	filterLayers(rest, func(layer int) bool { return !on[layer] })
	rest.Prune()

	selected = cell.Copy("")
	filterLayers(selected, func(layer int) bool { return on[layer] })
	selected.Prune()

	return rest, selected
}

// filterLayers keeps only the elements whose layer satisfies keep,
// through the whole hierarchy. Elements aggregates are filtered by
// member.
func filterLayers(cell *Cell, keep func(layer int) bool) {
	for _, c := range append([]*Cell{cell}, cell.Dependencies()...) {
		kept := c.objects[:0]
		for _, o := range c.objects {
			if group, ok := o.(*Elements); ok {
				members := group.members[:0]
				for _, m := range group.members {
					if keep(m.Layer()) {
						members = append(members, m)
					}
				}
				group.members = members
				if len(group.members) > 0 {
					kept = append(kept, group)
				}
				continue
			}
			if keep(o.Layer()) {
				kept = append(kept, o)
			}
		}
		c.objects = kept
	}
}

func layerSet(layers []int) map[int]bool {
	set := make(map[int]bool, len(layers))
	for _, l := range layers {
		set[l] = true
	}
	return set
}

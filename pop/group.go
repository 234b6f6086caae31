// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pop

import (
	"fmt"
	"iter"

	"github.com/emer/hmf"
	"github.com/emer/hmf/mask"
)

// Group is an addressable sequence of cells of one underlying population.
// BaseID and Extent describe the full population and are shared by every
// view narrowed from it; the mask says which of its slots this Group covers.
type Group struct {
	baseID int
	extent int
	mask   *mask.IndexMask
	label  string
}

// NewGroup returns a full Group: every slot of the extent is selected.
func NewGroup(baseID, extent int, label string) (*Group, error) {
	if extent < 0 {
		return nil, hmf.NewInvalidParameter("extent", extent, "must not be negative", nil)
	}
	if baseID < 0 {
		return nil, hmf.NewInvalidParameter("baseID", baseID, "must not be negative", nil)
	}
	return &Group{baseID: baseID, extent: extent, mask: mask.Full(extent), label: label}, nil
}

// NewView returns a Group over the population starting at baseID that covers
// exactly the slots selected by m.  The extent is taken from m.
func NewView(baseID int, m *mask.IndexMask, label string) (*Group, error) {
	if m == nil {
		return nil, hmf.NewInvalidParameter("mask", nil, "no mask given", nil)
	}
	if baseID < 0 {
		return nil, hmf.NewInvalidParameter("baseID", baseID, "must not be negative", nil)
	}
	return &Group{baseID: baseID, extent: m.Extent(), mask: m, label: label}, nil
}

// BaseID is the global id of local position 0 of the underlying population.
func (g *Group) BaseID() int { return g.baseID }

// Extent is the size of the underlying full population.
func (g *Group) Extent() int { return g.extent }

// Size is the number of cells this Group covers.
func (g *Group) Size() int { return g.mask.Count() }

func (g *Group) Label() string { return g.label }

// Mask returns the selection mask, expressed against Extent.
func (g *Group) Mask() *mask.IndexMask { return g.mask }

// IsView returns true if the Group does not cover its whole population.
func (g *Group) IsView() bool { return !g.mask.IsFull() }

// SamePopulation returns true if both Groups address the same underlying
// population, whatever their masks.
func (g *Group) SamePopulation(o *Group) bool {
	return o != nil && g.baseID == o.baseID && g.extent == o.extent
}

// At returns the Identity of the k-th covered cell.
func (g *Group) At(k int) (Identity, error) {
	if k < 0 || k >= g.Size() {
		return Identity{}, &hmf.IndexRangeError{What: "group", Index: k, Size: g.Size()}
	}
	u, err := g.mask.Nth(k)
	if err != nil {
		return Identity{}, err
	}
	return Identity{id: g.baseID + u, owner: g}, nil
}

// Iterate returns the covered cells in ascending local order.  Every range
// over the result starts from the beginning again.
func (g *Group) Iterate() iter.Seq[Identity] {
	return func(yield func(Identity) bool) {
		for u := range g.mask.All() {
			if !yield(Identity{id: g.baseID + u, owner: g}) {
				return
			}
		}
	}
}

// IDs returns the global ids of the covered cells, in iteration order.
func (g *Group) IDs() []int {
	ids := make([]int, 0, g.Size())
	for u := range g.mask.All() {
		ids = append(ids, g.baseID+u)
	}
	return ids
}

// Groups returns the Group itself, so a Group can be used wherever Cells are.
func (g *Group) Groups() []*Group { return []*Group{g} }

// Contains returns true if the cell is covered by this Group.
func (g *Group) Contains(c Identity) bool {
	return g.mask.Contains(c.id - g.baseID)
}

// IndexOf returns the position of cell c within the Group, such that
// At(IndexOf(c)) is c.
func (g *Group) IndexOf(c Identity) (int, error) {
	k, ok := g.mask.Rank(c.id - g.baseID)
	if !ok {
		return -1, &hmf.IndexRangeError{What: fmt.Sprintf("group %q", g.label), Index: c.id, Size: g.Size()}
	}
	return k, nil
}

// Narrow returns a view of this Group covering the cells sel picks out of
// the currently covered ones.  The view gets a default label.
func (g *Group) Narrow(sel mask.Selector) (*Group, error) {
	return g.NarrowLabel(sel, "")
}

// NarrowLabel is Narrow with an explicit label; an empty label selects the
// default `view of "<label>" containing <n>`.
func (g *Group) NarrowLabel(sel mask.Selector, label string) (*Group, error) {
	m, err := g.mask.Sub(sel)
	if err != nil {
		return nil, err
	}
	if label == "" {
		label = ViewLabel(g.label, m.Count())
	}
	return &Group{baseID: g.baseID, extent: g.extent, mask: m, label: label}, nil
}

// WithLabel returns a copy of the Group with another label.
func (g *Group) WithLabel(label string) *Group {
	ng := *g
	ng.label = label
	return &ng
}

// Add concatenates this Group with other cells into a new Composite.
func (g *Group) Add(o Cells) *Composite {
	c := NewComposite("", g)
	for _, og := range o.Groups() {
		c.Append(og)
	}
	return c
}

func (g *Group) String() string {
	if g.IsView() {
		return fmt.Sprintf("View %q: %d of %d cells from %d", g.label, g.Size(), g.extent, g.baseID)
	}
	return fmt.Sprintf("Population %q: %d cells from %d", g.label, g.extent, g.baseID)
}

// ViewLabel is the label given to views created without one.
func ViewLabel(parent string, n int) string {
	return fmt.Sprintf("view of %q containing %d", parent, n)
}

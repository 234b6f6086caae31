// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pop

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"sort"

	"github.com/emer/hmf"
	"github.com/emer/hmf/mask"
	"github.com/goki/ki/indent"
)

// Composite is an ordered sequence of Groups addressed as one flat sequence:
// flat index i falls into the first Group whose cumulative Size exceeds i.
// The same cell may be reachable more than once, e.g. through two
// overlapping views; each occurrence counts separately.
type Composite struct {
	label  string
	groups []*Group

	// prefix[i] is the total Size of groups[:i]; len(prefix) == len(groups)+1
	prefix []int
}

// NewComposite returns a Composite of the given groups, in order.
func NewComposite(label string, groups ...*Group) *Composite {
	c := &Composite{label: label, prefix: []int{0}}
	for _, g := range groups {
		c.Append(g)
	}
	return c
}

func (c *Composite) Label() string { return c.label }

// SetLabel sets the display label.
func (c *Composite) SetLabel(label string) { c.label = label }

// Size is the total number of cells over all groups.
func (c *Composite) Size() int {
	if len(c.prefix) == 0 {
		return 0
	}
	return c.prefix[len(c.prefix)-1]
}

// NGroups is the number of groups (counting repeats).
func (c *Composite) NGroups() int {
	if c == nil {
		return 0
	}
	return len(c.groups)
}

// Groups returns the groups in order.  The slice must not be modified.
func (c *Composite) Groups() []*Group { return c.groups }

// Group returns the i-th group.
func (c *Composite) Group(i int) (*Group, error) {
	if i < 0 || i >= len(c.groups) {
		return nil, &hmf.IndexRangeError{What: "composite groups", Index: i, Size: len(c.groups)}
	}
	return c.groups[i], nil
}

// Offset returns the flat index of the first cell of the i-th group,
// clamped to [0, Size].
func (c *Composite) Offset(i int) int {
	if i <= 0 || len(c.prefix) == 0 {
		return 0
	}
	if i >= len(c.prefix) {
		return c.Size()
	}
	return c.prefix[i]
}

// Append adds g to the end.  Flat indices of the cells already present are
// unaffected.  Not safe for concurrent use.
func (c *Composite) Append(g *Group) {
	if g == nil {
		return
	}
	if len(c.prefix) == 0 {
		c.prefix = []int{0}
	}
	c.groups = append(c.groups, g)
	c.prefix = append(c.prefix, c.Size()+g.Size())
}

// Concat returns a new Composite with the groups of c followed by those of o.
// Neither operand is changed.  A nil operand counts as empty.
func (c *Composite) Concat(o *Composite) *Composite {
	if c == nil {
		c = &Composite{}
	}
	if o == nil {
		o = &Composite{}
	}
	nc := &Composite{label: c.label}
	nc.groups = make([]*Group, 0, len(c.groups)+len(o.groups))
	nc.prefix = make([]int, 1, len(c.groups)+len(o.groups)+1)
	for _, g := range c.groups {
		nc.Append(g)
	}
	for _, g := range o.groups {
		nc.Append(g)
	}
	return nc
}

// Add returns a new Composite of c followed by the groups of o.
func (c *Composite) Add(o Cells) *Composite {
	return c.Concat(NewComposite("", o.Groups()...))
}

// Locate maps a flat index to the index of its group and the position
// within that group.  Positions count the group's selected cells, so
// the search runs over cumulative sizes, never extents.
func (c *Composite) Locate(flat int) (gi, k int, err error) {
	if flat < 0 || flat >= c.Size() {
		return -1, -1, &hmf.IndexRangeError{What: "composite", Index: flat, Size: c.Size()}
	}
	gi = sort.Search(len(c.groups), func(i int) bool { return c.prefix[i+1] > flat })
	return gi, flat - c.prefix[gi], nil
}

// At returns the Identity at the given flat index.
func (c *Composite) At(flat int) (Identity, error) {
	gi, k, err := c.Locate(flat)
	if err != nil {
		return Identity{}, err
	}
	return c.groups[gi].At(k)
}

// Iterate visits every cell, group after group, each in ascending order.
func (c *Composite) Iterate() iter.Seq[Identity] {
	return func(yield func(Identity) bool) {
		for _, g := range c.groups {
			for id := range g.Iterate() {
				if !yield(id) {
					return
				}
			}
		}
	}
}

// IDs returns the global ids of all cells in iteration order.
func (c *Composite) IDs() []int {
	ids := make([]int, 0, c.Size())
	for _, g := range c.groups {
		ids = append(ids, g.IDs()...)
	}
	return ids
}

// IndexOf returns the flat index of the first occurrence of the cell.
func (c *Composite) IndexOf(id Identity) (int, error) {
	for gi, g := range c.groups {
		if k, ok := g.mask.Rank(id.id - g.baseID); ok {
			return c.prefix[gi] + k, nil
		}
	}
	return -1, &hmf.IndexRangeError{What: fmt.Sprintf("composite %q", c.label), Index: id.id, Size: c.Size()}
}

// Contains returns true if the cell occurs at least once.
func (c *Composite) Contains(id Identity) bool {
	_, err := c.IndexOf(id)
	return err == nil
}

// GroupByLabel returns the first group with the given label, or nil.
func (c *Composite) GroupByLabel(label string) *Group {
	for _, g := range c.groups {
		if g.label == label {
			return g
		}
	}
	return nil
}

// SelectByFlatIndices returns a Composite covering the cells at the given
// flat indices.  Hits are gathered per group slot into a mask over that
// group's underlying extent, so repeated indices into a group collapse into
// one cell and each group comes out in ascending order.  Groups appear in
// their original order and only if hit at least once.  On error c is
// unchanged and nothing is returned.
func (c *Composite) SelectByFlatIndices(flat []int) (*Composite, error) {
	builders := make([]*mask.Builder, len(c.groups))
	for _, f := range flat {
		gi, k, err := c.Locate(f)
		if err != nil {
			return nil, err
		}
		g := c.groups[gi]
		u, err := g.mask.Nth(k)
		if err != nil {
			return nil, err
		}
		if builders[gi] == nil {
			builders[gi] = mask.NewBuilder(g.extent)
		}
		if err := builders[gi].Add(u); err != nil {
			return nil, err
		}
	}
	nc := NewComposite(c.label)
	for gi, b := range builders {
		if b == nil {
			continue
		}
		g := c.groups[gi]
		m := b.Mask()
		if m.Equal(g.mask) {
			nc.Append(g)
			continue
		}
		nc.Append(&Group{baseID: g.baseID, extent: g.extent, mask: m, label: ViewLabel(g.label, m.Count())})
	}
	return nc, nil
}

// SelectBySlice resolves s against the flat index range [0, Size) and
// selects the resulting cells.
func (c *Composite) SelectBySlice(s mask.Slice) (*Composite, error) {
	idx, err := s.Indices(c.Size())
	if err != nil {
		return nil, err
	}
	return c.SelectByFlatIndices(idx)
}

// Select applies any selector to the flat index space.
func (c *Composite) Select(sel mask.Selector) (*Composite, error) {
	if s, ok := sel.(mask.Slice); ok {
		return c.SelectBySlice(s)
	}
	m, err := mask.New(c.Size(), sel)
	if err != nil {
		return nil, err
	}
	return c.SelectByFlatIndices(m.ToList())
}

// Equal returns true if both Composites have the same groups, in the same
// order, covering the same cells.  Labels are ignored and nil is empty.
func (c *Composite) Equal(o *Composite) bool {
	if c == nil || o == nil {
		return c.NGroups() == 0 && o.NGroups() == 0
	}
	if len(c.groups) != len(o.groups) {
		return false
	}
	for i, g := range c.groups {
		og := o.groups[i]
		if !g.SamePopulation(og) || !g.mask.Equal(og.mask) {
			return false
		}
	}
	return true
}

// WriteDescribe writes an indented summary of the Composite and its groups.
func (c *Composite) WriteDescribe(w io.Writer, depth int) {
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("Composite %q: %d cells in %d groups\n", c.label, c.Size(), len(c.groups))))
	depth++
	for i, g := range c.groups {
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("%d @%d: %v\n", i, c.prefix[i], g)))
	}
}

// Describe returns the WriteDescribe summary.
func (c *Composite) Describe() string {
	var b bytes.Buffer
	c.WriteDescribe(&b, 0)
	return b.String()
}

func (c *Composite) String() string {
	return fmt.Sprintf("Composite %q: %d cells in %d groups", c.label, c.Size(), len(c.groups))
}

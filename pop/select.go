// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pop

import (
	"github.com/emer/hmf"
	"github.com/emer/hmf/mask"
)

// Narrow derives a view of g; see Group.Narrow.
func Narrow(g *Group, sel mask.Selector) (*Group, error) {
	if g == nil {
		return nil, hmf.NewInvalidParameter("group", nil, "no group given", nil)
	}
	return g.Narrow(sel)
}

// Concat returns the concatenation of a and b without changing either.
func Concat(a, b *Composite) *Composite {
	return a.Concat(b)
}

// Merge concatenates any number of Cells into one Composite, in order.
func Merge(label string, cells ...Cells) *Composite {
	c := NewComposite(label)
	for _, cs := range cells {
		for _, g := range cs.Groups() {
			c.Append(g)
		}
	}
	return c
}

// FromIdentities gathers individual cells into a Composite with one view per
// distinct underlying population, in the order the populations are first
// seen.  Within a population the cells come out in ascending order and
// repeats collapse.
func FromIdentities(label string, ids ...Identity) (*Composite, error) {
	type acc struct {
		owner *Group
		b     *mask.Builder
	}
	var order []*acc
	byBase := make(map[int]*acc)
	for _, id := range ids {
		if id.owner == nil {
			return nil, hmf.NewInvalidParameter("cell", id.id, "identity has no owning population", nil)
		}
		a, ok := byBase[id.owner.baseID]
		if !ok {
			a = &acc{owner: id.owner, b: mask.NewBuilder(id.owner.extent)}
			byBase[id.owner.baseID] = a
			order = append(order, a)
		}
		if err := a.b.Add(id.LocalIndex()); err != nil {
			return nil, err
		}
	}
	c := NewComposite(label)
	for _, a := range order {
		m := a.b.Mask()
		lbl := a.owner.label
		if !m.IsFull() {
			lbl = ViewLabel(a.owner.label, m.Count())
		}
		c.Append(&Group{baseID: a.owner.baseID, extent: a.owner.extent, mask: m, label: lbl})
	}
	return c, nil
}

// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mask

import (
	"fmt"
	"iter"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/emer/hmf"
)

// IndexMask records which positions within a sequence of fixed extent are
// selected.  The selected positions are always distinct, ascending and
// within [0, extent).  A mask is immutable once constructed: every method
// only reads, and narrowing returns a new mask.
type IndexMask struct {
	extent int
	bits   *roaring.Bitmap
}

// Extent returns the size of the sequence the mask selects from.
func (m *IndexMask) Extent() int { return m.extent }

// Count returns the number of selected positions.
func (m *IndexMask) Count() int { return int(m.bits.GetCardinality()) }

// IsFull returns true if every position is selected.
func (m *IndexMask) IsFull() bool { return m.Count() == m.extent }

// IsEmpty returns true if no position is selected.
func (m *IndexMask) IsEmpty() bool { return m.bits.IsEmpty() }

// Contains returns true if underlying position i is selected.
func (m *IndexMask) Contains(i int) bool {
	if i < 0 || i >= m.extent {
		return false
	}
	return m.bits.Contains(uint32(i))
}

// Nth returns the k-th selected position (0-based, ascending).
func (m *IndexMask) Nth(k int) (int, error) {
	if k < 0 || k >= m.Count() {
		return -1, &hmf.IndexRangeError{What: "mask", Index: k, Size: m.Count()}
	}
	v, err := m.bits.Select(uint32(k))
	if err != nil {
		return -1, &hmf.IndexRangeError{What: "mask", Index: k, Size: m.Count()}
	}
	return int(v), nil
}

// Rank is the inverse of Nth: it returns k such that Nth(k) == i,
// and false if underlying position i is not selected.
func (m *IndexMask) Rank(i int) (int, bool) {
	if !m.Contains(i) {
		return -1, false
	}
	return int(m.bits.Rank(uint32(i))) - 1, true
}

// ToList returns the selected positions in ascending order.
func (m *IndexMask) ToList() []int {
	arr := m.bits.ToArray()
	idx := make([]int, len(arr))
	for i, v := range arr {
		idx[i] = int(v)
	}
	return idx
}

// All returns an iterator over the selected positions in ascending order.
// Each call starts a fresh pass.
func (m *IndexMask) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := m.bits.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Bools returns one flag per position of the extent.
func (m *IndexMask) Bools() []bool {
	flags := make([]bool, m.extent)
	for i := range m.All() {
		flags[i] = true
	}
	return flags
}

// Sub narrows the mask: sel is interpreted relative to the currently selected
// positions, so position k of sel refers to Nth(k), not to underlying
// position k.  The result has the same extent, with exactly those underlying
// positions whose rank sel selects.  Errors from sel (e.g., an index >= Count)
// are returned unchanged and the receiver is never modified.
func (m *IndexMask) Sub(sel Selector) (*IndexMask, error) {
	rel, err := New(m.Count(), sel)
	if err != nil {
		return nil, err
	}
	if rel.IsFull() {
		return m, nil
	}
	pos := m.bits.ToArray()
	bm := roaring.New()
	for k := range rel.All() {
		bm.Add(pos[k])
	}
	return &IndexMask{extent: m.extent, bits: bm}, nil
}

// Equal returns true if both masks have the same extent and selection.
func (m *IndexMask) Equal(o *IndexMask) bool {
	if m == o {
		return true
	}
	if m == nil || o == nil {
		return false
	}
	return m.extent == o.extent && m.bits.Equals(o.bits)
}

// SizeInBytes is the memory footprint of the underlying bitmap.
func (m *IndexMask) SizeInBytes() uint64 { return m.bits.GetSizeInBytes() }

func (m *IndexMask) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mask %d/%d [", m.Count(), m.extent)
	n := 0
	for i := range m.All() {
		if n > 0 {
			b.WriteString(" ")
		}
		if n == 16 {
			b.WriteString("...")
			break
		}
		fmt.Fprintf(&b, "%d", i)
		n++
	}
	b.WriteString("]")
	return b.String()
}

// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mask

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/emer/hmf"
)

// Builder accumulates selected positions over a fixed extent.  Unlike
// FromIndices it accepts the same position more than once: repeats collapse
// into one selection.  It is the only mutable type in this package and is
// not safe for concurrent use.
type Builder struct {
	extent int
	bits   *roaring.Bitmap
}

// NewBuilder returns an empty builder over extent.
func NewBuilder(extent int) *Builder {
	return &Builder{extent: extent, bits: roaring.New()}
}

// Add selects underlying position i.
func (b *Builder) Add(i int) error {
	if i < 0 || i >= b.extent {
		return &hmf.IndexRangeError{What: "mask", Index: i, Size: b.extent}
	}
	b.bits.Add(uint32(i))
	return nil
}

// AddMask selects every position selected in m, which must have the same extent.
func (b *Builder) AddMask(m *IndexMask) error {
	if m.extent != b.extent {
		return &hmf.LengthMismatchError{Expected: b.extent, Actual: m.extent}
	}
	b.bits.Or(m.bits)
	return nil
}

// Extent returns the extent of the mask being built.
func (b *Builder) Extent() int { return b.extent }

// Len returns the number of distinct positions added so far.
func (b *Builder) Len() int { return int(b.bits.GetCardinality()) }

// Mask returns an immutable snapshot of the positions added so far.
// The builder can keep being used afterwards.
func (b *Builder) Mask() *IndexMask {
	bm := b.bits.Clone()
	bm.RunOptimize()
	return &IndexMask{extent: b.extent, bits: bm}
}

// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mask

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/emer/hmf"
)

// Selector picks positions out of a sequence of known extent.
// It is a closed set: AllOf, NoneOf, IndexList, BoolVector and Slice.
type Selector interface {
	selector()
}

// AllOf selects every position.
type AllOf struct{}

// NoneOf selects no position.
type NoneOf struct{}

// IndexList selects the listed positions.  Order does not matter,
// but each position may only be listed once.
type IndexList []int

// BoolVector selects the positions whose flag is true.
// Its length must equal the extent it is applied to.
type BoolVector []bool

func (AllOf) selector()      {}
func (NoneOf) selector()     {}
func (IndexList) selector()  {}
func (BoolVector) selector() {}

// New resolves sel against a sequence of the given extent.  This is the one
// place where the selector variants are told apart.
func New(extent int, sel Selector) (*IndexMask, error) {
	if err := checkExtent(extent); err != nil {
		return nil, err
	}
	switch s := sel.(type) {
	case AllOf:
		return Full(extent), nil
	case NoneOf:
		return Empty(extent), nil
	case IndexList:
		return FromIndices(extent, s)
	case BoolVector:
		return FromBools(extent, s)
	case Slice:
		return FromSlice(extent, s)
	case nil:
		return nil, hmf.NewInvalidParameter("selector", nil, "no selector given", nil)
	}
	return nil, hmf.NewInvalidParameter("selector", sel, "unsupported selector type", nil)
}

func checkExtent(extent int) error {
	if extent < 0 {
		return hmf.NewInvalidParameter("extent", extent, "must not be negative", nil)
	}
	return nil
}

// Full returns a mask with every position of extent selected.
// A negative extent is treated as 0.
func Full(extent int) *IndexMask {
	if extent < 0 {
		extent = 0
	}
	bm := roaring.New()
	bm.AddRange(0, uint64(extent))
	return &IndexMask{extent: extent, bits: bm}
}

// Empty returns a mask over extent with nothing selected.
// A negative extent is treated as 0.
func Empty(extent int) *IndexMask {
	if extent < 0 {
		extent = 0
	}
	return &IndexMask{extent: extent, bits: roaring.New()}
}

// FromIndices builds a mask from explicit positions.  Each must be within
// [0, extent) and appear only once.
func FromIndices(extent int, idx []int) (*IndexMask, error) {
	if err := checkExtent(extent); err != nil {
		return nil, err
	}
	bm := roaring.New()
	for _, i := range idx {
		if i < 0 || i >= extent {
			return nil, &hmf.IndexRangeError{What: "mask", Index: i, Size: extent}
		}
		if !bm.CheckedAdd(uint32(i)) {
			return nil, &hmf.DuplicateIndexError{Index: i}
		}
	}
	return &IndexMask{extent: extent, bits: bm}, nil
}

// FromBools builds a mask from one flag per position.
func FromBools(extent int, flags []bool) (*IndexMask, error) {
	if err := checkExtent(extent); err != nil {
		return nil, err
	}
	if len(flags) != extent {
		return nil, &hmf.LengthMismatchError{Expected: extent, Actual: len(flags)}
	}
	bm := roaring.New()
	for i, on := range flags {
		if on {
			bm.Add(uint32(i))
		}
	}
	return &IndexMask{extent: extent, bits: bm}, nil
}

// FromSlice builds a mask from a slice resolved against extent.
// The visiting order of the slice is irrelevant to the mask, which is a set.
func FromSlice(extent int, s Slice) (*IndexMask, error) {
	if err := checkExtent(extent); err != nil {
		return nil, err
	}
	idx, err := s.Indices(extent)
	if err != nil {
		return nil, err
	}
	bm := roaring.New()
	for _, i := range idx {
		bm.Add(uint32(i))
	}
	return &IndexMask{extent: extent, bits: bm}, nil
}

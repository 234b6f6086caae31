// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mask

import (
	"errors"
	"slices"
	"testing"

	"github.com/emer/hmf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullEmpty(t *testing.T) {
	m := Full(5)
	assert.Equal(t, 5, m.Extent())
	assert.Equal(t, 5, m.Count())
	assert.True(t, m.IsFull())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, m.ToList())

	e := Empty(5)
	assert.Equal(t, 5, e.Extent())
	assert.Equal(t, 0, e.Count())
	assert.True(t, e.IsEmpty())
	assert.Empty(t, e.ToList())

	z := Full(0)
	assert.True(t, z.IsFull())
	assert.True(t, z.IsEmpty())
}

func TestFromIndices(t *testing.T) {
	m, err := FromIndices(10, []int{7, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 7}, m.ToList())
	assert.Equal(t, 3, m.Count())

	_, err = FromIndices(10, []int{1, 3, 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, hmf.ErrDuplicateIndex))
	var de *hmf.DuplicateIndexError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 1, de.Index)

	_, err = FromIndices(10, []int{10})
	assert.True(t, errors.Is(err, hmf.ErrIndexRange))
	_, err = FromIndices(10, []int{-1})
	assert.True(t, errors.Is(err, hmf.ErrIndexRange))
}

func TestFromBools(t *testing.T) {
	m, err := FromBools(4, []bool{true, false, false, true})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, m.ToList())
	assert.Equal(t, []bool{true, false, false, true}, m.Bools())

	_, err = FromBools(5, []bool{true, false})
	require.Error(t, err)
	assert.True(t, errors.Is(err, hmf.ErrLengthMismatch))
	var le *hmf.LengthMismatchError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 5, le.Expected)
	assert.Equal(t, 2, le.Actual)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		sel  Selector
		want []int
		err  error
	}{
		{"all", AllOf{}, []int{0, 1, 2, 3, 4, 5}, nil},
		{"none", NoneOf{}, []int{}, nil},
		{"list", IndexList{4, 0}, []int{0, 4}, nil},
		{"bools", BoolVector{false, true, false, true, false, true}, []int{1, 3, 5}, nil},
		{"slice", Range(1, 4), []int{1, 2, 3}, nil},
		{"reversed", Reversed(), []int{0, 1, 2, 3, 4, 5}, nil},
		{"zero step", RangeStep(0, 6, 0), nil, hmf.ErrInvalidStep},
		{"list range", IndexList{6}, nil, hmf.ErrIndexRange},
		{"bools length", BoolVector{true}, nil, hmf.ErrLengthMismatch},
		{"nil", nil, nil, hmf.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(6, tt.sel)
			if tt.err != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), m.Count())
			assert.True(t, slices.Equal(tt.want, m.ToList()), "got %v", m.ToList())
		})
	}

	_, err := New(-1, AllOf{})
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))
}

func TestNegativeExtent(t *testing.T) {
	_, err := FromIndices(-1, nil)
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))
	_, err = FromBools(-2, nil)
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))
	_, err = FromSlice(-1, From(0))
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))

	m, err := FromIndices(0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Extent())
}

func TestNthRank(t *testing.T) {
	m, err := FromIndices(10, []int{1, 3, 5, 7, 9})
	require.NoError(t, err)
	for k, want := range []int{1, 3, 5, 7, 9} {
		got, err := m.Nth(k)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		r, ok := m.Rank(want)
		require.True(t, ok)
		assert.Equal(t, k, r)
	}
	_, err = m.Nth(5)
	assert.True(t, errors.Is(err, hmf.ErrIndexRange))
	_, err = m.Nth(-1)
	assert.True(t, errors.Is(err, hmf.ErrIndexRange))

	_, ok := m.Rank(2)
	assert.False(t, ok)
	_, ok = m.Rank(42)
	assert.False(t, ok)
	assert.False(t, m.Contains(-3))
}

func TestAllRestartable(t *testing.T) {
	m, err := FromIndices(8, []int{2, 4, 6})
	require.NoError(t, err)
	var first, second []int
	for i := range m.All() {
		first = append(first, i)
	}
	for i := range m.All() {
		second = append(second, i)
		break
	}
	for i := range m.All() {
		_ = i
	}
	assert.Equal(t, []int{2, 4, 6}, first)
	assert.Equal(t, []int{2}, second)
}

func TestSub(t *testing.T) {
	m, err := FromIndices(10, []int{1, 3, 5, 7, 9})
	require.NoError(t, err)

	n, err := m.Sub(Range(1, 4))
	require.NoError(t, err)
	assert.Equal(t, 10, n.Extent())
	assert.Equal(t, []int{3, 5, 7}, n.ToList())

	n, err = m.Sub(IndexList{4, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 9}, n.ToList())

	n, err = m.Sub(BoolVector{true, false, false, false, true})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 9}, n.ToList())

	// selecting all of an already narrowed mask is a no-op
	n, err = m.Sub(AllOf{})
	require.NoError(t, err)
	assert.Equal(t, m.ToList(), n.ToList())
	assert.True(t, n.Equal(m))

	_, err = m.Sub(IndexList{5})
	assert.True(t, errors.Is(err, hmf.ErrIndexRange))
	_, err = m.Sub(BoolVector{true, true})
	assert.True(t, errors.Is(err, hmf.ErrLengthMismatch))

	// receiver unchanged after failures
	assert.Equal(t, []int{1, 3, 5, 7, 9}, m.ToList())
}

func TestSubAssociative(t *testing.T) {
	base, err := FromSlice(20, RangeStep(0, 20, 2)) // 0 2 4 ... 18
	require.NoError(t, err)

	a, err := base.Sub(Range(2, 9)) // 4 6 8 10 12 14 16
	require.NoError(t, err)
	b, err := a.Sub(RangeStep(0, 7, 3)) // 4 10 16
	require.NoError(t, err)

	// composed: positions 2, 5, 8 of base
	c, err := base.Sub(IndexList{2, 5, 8})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 10, 16}, b.ToList())
	assert.True(t, b.Equal(c))
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(6)
	require.NoError(t, b.Add(4))
	require.NoError(t, b.Add(1))
	require.NoError(t, b.Add(4))
	assert.Equal(t, 2, b.Len())
	snap := b.Mask()
	assert.Equal(t, []int{1, 4}, snap.ToList())

	require.NoError(t, b.Add(5))
	assert.Equal(t, []int{1, 4}, snap.ToList(), "snapshot must not change")
	assert.Equal(t, []int{1, 4, 5}, b.Mask().ToList())

	err := b.Add(6)
	assert.True(t, errors.Is(err, hmf.ErrIndexRange))

	require.NoError(t, b.AddMask(Full(6)))
	assert.Equal(t, 6, b.Len())
	err = b.AddMask(Full(3))
	assert.True(t, errors.Is(err, hmf.ErrLengthMismatch))
}

func TestString(t *testing.T) {
	m, err := FromIndices(10, []int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, "mask 2/10 [1 3]", m.String())
}

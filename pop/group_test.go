// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pop

import (
	"errors"
	"testing"

	"github.com/emer/hmf"
	"github.com/emer/hmf/mask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = 1000

// oddView is a view selecting {1,3,5,7,9} out of a population of 10.
func oddView(t *testing.T) *Group {
	t.Helper()
	p, err := NewGroup(base, 10, "pop")
	require.NoError(t, err)
	v, err := p.Narrow(mask.RangeStep(1, 10, 2))
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 5, 7, 9}, v.Mask().ToList())
	return v
}

func collect(c Cells) []int {
	var ids []int
	for id := range c.Iterate() {
		ids = append(ids, id.ID())
	}
	return ids
}

func TestNewGroup(t *testing.T) {
	g, err := NewGroup(5, 3, "p")
	require.NoError(t, err)
	assert.Equal(t, 5, g.BaseID())
	assert.Equal(t, 3, g.Extent())
	assert.Equal(t, 3, g.Size())
	assert.False(t, g.IsView())
	assert.Equal(t, []int{5, 6, 7}, g.IDs())

	_, err = NewGroup(0, -1, "bad")
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))
	_, err = NewView(0, nil, "bad")
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))
}

func TestGroupAt(t *testing.T) {
	v := oddView(t)
	assert.Equal(t, 5, v.Size())
	assert.True(t, v.IsView())
	for k := 0; k < v.Size(); k++ {
		id, err := v.At(k)
		require.NoError(t, err)
		u, err := v.Mask().Nth(k)
		require.NoError(t, err)
		assert.Equal(t, v.BaseID()+u, id.ID())
		assert.Equal(t, u, id.LocalIndex())
		assert.Same(t, v, id.Owner())
	}
	id, err := v.At(0)
	require.NoError(t, err)
	assert.Equal(t, base+1, id.ID())

	_, err = v.At(v.Size())
	require.Error(t, err)
	assert.True(t, errors.Is(err, hmf.ErrIndexRange))
	_, err = v.At(-1)
	assert.True(t, errors.Is(err, hmf.ErrIndexRange))
}

func TestGroupIterate(t *testing.T) {
	v := oddView(t)
	ids := collect(v)
	assert.Len(t, ids, v.Size())
	assert.Equal(t, v.Mask().Count(), len(ids))
	assert.Equal(t, []int{base + 1, base + 3, base + 5, base + 7, base + 9}, ids)
	// restartable
	assert.Equal(t, ids, collect(v))
	assert.Equal(t, ids, v.IDs())
}

func TestGroupNarrow(t *testing.T) {
	v := oddView(t)
	n, err := v.Narrow(mask.Range(1, 4))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5, 7}, n.Mask().ToList())
	assert.Equal(t, v.BaseID(), n.BaseID())
	assert.Equal(t, v.Extent(), n.Extent())
	assert.Equal(t, `view of "view of \"pop\" containing 5" containing 3`, n.Label())

	l, err := v.NarrowLabel(mask.IndexList{0}, "first")
	require.NoError(t, err)
	assert.Equal(t, "first", l.Label())
	assert.Equal(t, []int{base + 1}, l.IDs())

	all, err := v.Narrow(mask.AllOf{})
	require.NoError(t, err)
	assert.Equal(t, v.Mask().ToList(), all.Mask().ToList())

	none, err := v.Narrow(mask.NoneOf{})
	require.NoError(t, err)
	assert.Equal(t, 0, none.Size())
	assert.Empty(t, collect(none))

	_, err = v.Narrow(mask.IndexList{5})
	assert.True(t, errors.Is(err, hmf.ErrIndexRange))
	_, err = v.Narrow(mask.BoolVector{true})
	assert.True(t, errors.Is(err, hmf.ErrLengthMismatch))
	_, err = v.Narrow(mask.RangeStep(0, 5, 0))
	assert.True(t, errors.Is(err, hmf.ErrInvalidStep))
	_, err = v.Narrow(mask.IndexList{1, 1})
	assert.True(t, errors.Is(err, hmf.ErrDuplicateIndex))
	assert.Equal(t, []int{1, 3, 5, 7, 9}, v.Mask().ToList())
}

func TestNarrowComposes(t *testing.T) {
	p, err := NewGroup(0, 30, "p")
	require.NoError(t, err)
	sels := []mask.Selector{
		mask.RangeStep(2, 30, 3),
		mask.Reversed(),
		mask.IndexList{0, 2, 4, 6},
		mask.From(-5),
	}
	// narrowing one after the other equals narrowing with the composed
	// index list computed on the full population.
	g := p
	for _, s := range sels {
		g, err = g.Narrow(s)
		require.NoError(t, err)
	}
	pos := make([]int, 0)
	for k := 0; k < p.Size(); k++ {
		pos = append(pos, k)
	}
	for _, s := range sels {
		m, err := mask.New(len(pos), s)
		require.NoError(t, err)
		next := make([]int, 0)
		for _, k := range m.ToList() {
			next = append(next, pos[k])
		}
		pos = next
	}
	want, err := p.Narrow(mask.IndexList(pos))
	require.NoError(t, err)
	assert.True(t, g.Mask().Equal(want.Mask()), "got %v want %v", g.Mask(), want.Mask())
}

func TestIdentity(t *testing.T) {
	p, err := NewGroup(base, 10, "pop")
	require.NoError(t, err)
	v := oddView(t)

	a, err := p.At(3)
	require.NoError(t, err)
	b, err := v.At(1)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.NotSame(t, a.Owner(), b.Owner())
	assert.Equal(t, 3, b.LocalIndex())

	k, err := v.IndexOf(a)
	require.NoError(t, err)
	assert.Equal(t, 1, k)
	assert.True(t, v.Contains(a))

	c, err := p.At(4)
	require.NoError(t, err)
	assert.False(t, v.Contains(c))
	_, err = v.IndexOf(c)
	assert.True(t, errors.Is(err, hmf.ErrIndexRange))

	var zero Identity
	assert.False(t, zero.IsValid())
	assert.Equal(t, -1, zero.LocalIndex())
}

func TestGroupAdd(t *testing.T) {
	v := oddView(t)
	q, err := NewGroup(base+100, 4, "q")
	require.NoError(t, err)
	c := v.Add(q)
	assert.Equal(t, 9, c.Size())
	assert.Equal(t, 2, c.NGroups())
	assert.Equal(t, 5, v.Size(), "operand unchanged")
}

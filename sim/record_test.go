// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/emer/hmf"
	"github.com/emer/hmf/mask"
	"github.com/emer/hmf/pop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSources gives every src cell spikes at 1, 2 and 5 ms and runs to 10 ms.
func runSources(t *testing.T) (nt *Network, exc, src *Population) {
	t.Helper()
	nt, exc, src, _ = testNet(t)
	require.NoError(t, nt.Set(src.Group(), SpikeTimesParam, []float64{1, 2, 5}))
	require.NoError(t, nt.Record(src.Group(), true))
	nt.Step.VRecordStride = 50
	nt.UpdateParams()
	require.NoError(t, nt.Run(10))
	return
}

func TestSpikeTableCellIDs(t *testing.T) {
	nt, _, src := runSources(t)
	odd, err := src.View(mask.IndexList{1, 3})
	require.NoError(t, err)
	first, err := src.View(mask.IndexList{0})
	require.NoError(t, err)
	c := pop.NewComposite("overlap", odd, first)

	dt, err := nt.SpikeTable(c)
	require.NoError(t, err)
	require.Equal(t, 9, dt.Rows)
	// local index plus the extents of the groups visited before
	assert.Equal(t, 1.0, dt.CellFloat("Cell", 0))
	assert.Equal(t, 3.0, dt.CellFloat("Cell", 3))
	assert.Equal(t, 4.0, dt.CellFloat("Cell", 6))
	assert.Equal(t, 5.0, dt.CellFloat("Time", 8))
	assert.Equal(t, 11.0, dt.CellFloat("GlobalID", 0))
	assert.Equal(t, 13.0, dt.CellFloat("GlobalID", 3))
	assert.Equal(t, 10.0, dt.CellFloat("GlobalID", 6))
}

func TestVoltageTable(t *testing.T) {
	nt, exc, _ := runSources(t)
	assert.Equal(t, 0, len(exc.Neurons[0].VTrace), "v is off by default")

	nt.Reset()
	v, _ := exc.View(mask.Range(0, 2))
	require.NoError(t, nt.RecordV(v, true))
	require.NoError(t, nt.Run(10))
	dt, err := nt.VoltageTable(exc.Group())
	require.NoError(t, err)
	require.Equal(t, 6, dt.Rows)
	assert.Equal(t, 0.0, dt.CellFloat("Cell", 2))
	assert.Equal(t, 1.0, dt.CellFloat("Cell", 3))
	assert.Equal(t, 5.0, dt.CellFloat("Time", 1))
	assert.Equal(t, 10.0, dt.CellFloat("Time", 5))
	assert.Equal(t, -65.0, dt.CellFloat("Vm", 5))
	assert.Equal(t, 1.0, dt.CellFloat("GlobalID", 5))

	_, err = nt.GSynTable(exc.Group())
	assert.True(t, errors.Is(err, hmf.ErrNotImplemented))
}

func TestSpikeCounts(t *testing.T) {
	nt, exc, src := runSources(t)
	cnt, err := nt.SpikeCounts(pop.Merge("all", exc.Group(), src.Group()))
	require.NoError(t, err)
	assert.Equal(t, map[int]int{10: 3, 11: 3, 12: 3, 13: 3}, cnt)

	m, err := nt.MeanSpikeCount(src.Group())
	require.NoError(t, err)
	assert.Equal(t, 3.0, m)
	m, err = nt.MeanSpikeCount(exc.Group())
	require.NoError(t, err)
	assert.Equal(t, 0.0, m)

	require.NoError(t, nt.Set(src.Group(), SpikeTimesParam, []float64{12}))
	v, _ := src.View(mask.IndexList{2})
	require.NoError(t, nt.Set(v, SpikeTimesParam, []float64{11, 12, 13}))
	require.NoError(t, nt.Run(20))
	am, err := nt.SpikeCountStats(src.Group())
	require.NoError(t, err)
	assert.Equal(t, float32(6), am.Max)
	assert.Equal(t, int32(2), am.MaxIdx)
	assert.InDelta(t, 4.5, am.Avg, 1e-6)

	ns, err := nt.VarValues(src.Group(), "NSpike")
	require.NoError(t, err)
	assert.Equal(t, []float32{4, 4, 6, 4}, ns)
	vm, err := nt.VarValues(exc.Group(), "Vm")
	require.NoError(t, err)
	require.Len(t, vm, 10)
	assert.Equal(t, float32(-65), vm[0])
	_, err = nt.VarValues(src.Group(), "Act")
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))
	_, err = nt.VarStats(src.Group(), "Act")
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))
}

func TestWriteCSV(t *testing.T) {
	nt, exc, src := runSources(t)
	var b bytes.Buffer
	require.NoError(t, nt.WriteSpikes(&b, src.Group()))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 13)
	assert.Contains(t, lines[0], "Cell")
	assert.Contains(t, lines[0], "Time")

	b.Reset()
	v, _ := exc.View(mask.Range(8, 10))
	require.NoError(t, nt.WritePositions(&b, v))
	lines = strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "8")

	b.Reset()
	require.NoError(t, nt.WriteVoltages(&b, exc.Group()))
	assert.Contains(t, b.String(), "Vm")
}

// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"errors"
	"testing"

	"github.com/emer/emergent/v2/params"
	"github.com/emer/hmf"
	"github.com/emer/hmf/mask"
	"github.com/emer/hmf/pop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNet has exc (10 IF_cond_exp, ids 0-9), src (4 SpikeSourceArray,
// ids 10-13) and inh (5 IF_curr_exp, ids 14-18).
func testNet(t *testing.T) (nt *Network, exc, src, inh *Population) {
	t.Helper()
	nt = NewNetwork("test", NewRegistry())
	var err error
	exc, err = nt.AddPopulation(10, IF_cond_exp, nil, "exc")
	require.NoError(t, err)
	src, err = nt.AddPopulation(4, SpikeSourceArray, nil, "src")
	require.NoError(t, err)
	inh, err = nt.AddPopulation(5, IF_curr_exp, nil, "inh")
	require.NoError(t, err)
	return
}

func TestAddPopulation(t *testing.T) {
	nt, exc, src, inh := testNet(t)
	assert.Equal(t, 0, exc.BaseID())
	assert.Equal(t, 10, src.BaseID())
	assert.Equal(t, 14, inh.BaseID())
	assert.Equal(t, 19, nt.NextID)
	assert.Equal(t, 3, nt.NPops())

	g := src.Group()
	assert.False(t, g.IsView())
	assert.Equal(t, []int{10, 11, 12, 13}, g.IDs())
	assert.Equal(t, "src", g.Label())
	assert.Equal(t, float32(-65), exc.Neurons[3].Vm)

	anon, err := nt.AddPopulation(2, IF_curr_alpha, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "population3", anon.Label())
	assert.Equal(t, float32(1), anon.Pos[1].X)
}

func TestAddPopulationErrors(t *testing.T) {
	nt, _, _, _ := testNet(t)
	_, err := nt.AddPopulation(0, IF_cond_exp, nil, "empty")
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))
	_, err = nt.AddPopulation(-3, IF_cond_exp, nil, "neg")
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))

	nt.Registry().Disable(HH_cond_exp)
	_, err = nt.AddPopulation(3, HH_cond_exp, nil, "hh")
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))

	_, err = nt.AddPopulation(10, IF_cond_exp, NewGrid2D(1), "grid")
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))
	assert.Equal(t, 19, nt.NextID, "failed creation must not consume ids")
	assert.Equal(t, 3, nt.NPops())
}

func TestPopulationLookup(t *testing.T) {
	nt, exc, src, _ := testNet(t)
	assert.Same(t, exc, nt.PopulationByName("exc"))
	assert.Nil(t, nt.PopulationByName("nope"))
	_, err := nt.PopulationByNameTry("nope")
	assert.Error(t, err)

	v, err := src.View(mask.IndexList{2, 3})
	require.NoError(t, err)
	ps, err := nt.PopulationFor(v)
	require.NoError(t, err)
	assert.Same(t, src, ps)

	ps, err = nt.PopulationForID(13)
	require.NoError(t, err)
	assert.Same(t, src, ps)
	_, err = nt.PopulationForID(19)
	assert.True(t, errors.Is(err, hmf.ErrIndexRange))
	_, err = nt.PopulationForID(-1)
	assert.True(t, errors.Is(err, hmf.ErrIndexRange))

	alien, _ := pop.NewGroup(0, 5, "alien")
	_, err = nt.PopulationFor(alien)
	assert.True(t, errors.Is(err, hmf.ErrInvalidParameter))

	id, _ := v.At(1)
	nrn, owner, err := nt.NeuronFor(id)
	require.NoError(t, err)
	assert.Same(t, src, owner)
	assert.Same(t, &src.Neurons[3], nrn)
}

func TestApplyParams(t *testing.T) {
	nt, exc, src, _ := testNet(t)
	sheet := params.Sheet{
		{Sel: "#exc", Desc: "record all excitatory cells",
			Params: params.Params{
				"Population.Record.Spikes": "true",
				"Population.Record.V":      "true",
			}},
	}
	applied, err := nt.ApplyParams(&sheet, false)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, exc.Neurons[0].RecSpikes)
	assert.True(t, exc.Neurons[9].RecV)
	assert.False(t, src.Neurons[0].RecSpikes)
}

func TestSizeReport(t *testing.T) {
	nt, _, _, _ := testNet(t)
	rep := nt.SizeReport()
	assert.Contains(t, rep, "exc")
	assert.Contains(t, rep, "Ids: 10-13")
	assert.Contains(t, rep, "Neurons: 19")
}

func TestRunReset(t *testing.T) {
	nt, exc, src, _ := testNet(t)
	require.NoError(t, nt.Set(src.Group(), SpikeTimesParam, []float64{0, 2, 5}))
	require.NoError(t, nt.Record(src.Group(), true))
	require.NoError(t, nt.RecordV(exc.Group(), true))
	nt.Step.VRecordStride = 5
	nt.UpdateParams()

	require.NoError(t, nt.Run(3))
	sp, err := nt.Spikes(src.Group(), 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2}, sp)
	require.NoError(t, nt.Run(10))
	sp, _ = nt.Spikes(src.Group(), 1)
	assert.Equal(t, []float64{0, 2, 5}, sp)

	vt, err := nt.VoltageTrace(exc.Group(), 0)
	require.NoError(t, err)
	require.NotEmpty(t, vt)
	assert.Equal(t, 0.0, vt[0].Time)
	assert.Equal(t, -65.0, vt[0].V)
	assert.InDelta(t, 10.0, vt[len(vt)-1].Time, 1e-6)

	assert.True(t, errors.Is(nt.Run(5), hmf.ErrInvalidParameter))

	nt.Reset()
	assert.Equal(t, 0.0, nt.Time)
	sp, _ = nt.Spikes(src.Group(), 1)
	assert.Empty(t, sp)
	assert.True(t, src.Neurons[1].RecSpikes)
	assert.Contains(t, nt.FunTimes, "Run")
}

func TestPoisson(t *testing.T) {
	nt := NewNetwork("poisson", NewRegistry())
	nt.Step.Seed = 7
	nt.UpdateParams()
	ps, err := nt.AddPopulation(3, SpikeSourcePoisson, nil, "noise")
	require.NoError(t, err)
	require.NoError(t, nt.Set(ps.Group(), "rate", 1000.0))
	require.NoError(t, nt.Set(ps.Group(), "start", 50.0))
	require.NoError(t, nt.Record(ps.Group(), true))
	require.NoError(t, nt.Run(100))
	for i := range ps.Neurons {
		sp := ps.Neurons[i].Spikes
		assert.NotEmpty(t, sp)
		for _, st := range sp {
			assert.GreaterOrEqual(t, st, 50.0)
			assert.LessOrEqual(t, st, 100.0+1e-9)
		}
	}
}

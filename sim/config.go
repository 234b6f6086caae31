// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// RunParams control how a Network run samples time.
type RunParams struct {
	Dt            float64 `def:"0.1" min:"0" desc:"simulation time step, in ms"`
	Seed          int64   `desc:"seed for all random number generation in the network -- 0 means use the global source"`
	VRecordStride int     `def:"1" min:"1" desc:"record membrane voltage every VRecordStride time steps"`
}

func (rp *RunParams) Defaults() {
	rp.Dt = 0.1
	rp.Seed = 0
	rp.VRecordStride = 1
}

func (rp *RunParams) Update() {
	if rp.Dt <= 0 {
		rp.Dt = 0.1
	}
	if rp.VRecordStride < 1 {
		rp.VRecordStride = 1
	}
}

// VDt is the interval between two voltage samples.
func (rp *RunParams) VDt() float64 {
	return rp.Dt * float64(rp.VRecordStride)
}

// RecordParams are per-population recording defaults, typically set via
// a params.Sheet.  A true flag switches recording on for every cell of the
// population when the params are applied; false leaves per-cell settings
// alone.
type RecordParams struct {
	Spikes bool `desc:"record spike times"`
	V      bool `desc:"record membrane voltage traces"`
	GSyn   bool `desc:"record synaptic conductances"`
}

func (rp *RecordParams) Defaults() {
	rp.Spikes = false
	rp.V = false
	rp.GSyn = false
}

func (rp *RecordParams) Update() {
}

// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"unsafe"

	"github.com/chewxy/math32"
)

// VSample is one membrane voltage sample.
type VSample struct {
	Time float64 // ms
	V    float64 // mV
}

// Neuron holds the engine-side state of one cell: its parameter values,
// recording switches and everything recorded during runs.
type Neuron struct {
	Vm     float32 `desc:"membrane potential, mV"`
	VmInit float32 `desc:"initial membrane potential, restored by Reset"`
	Inet   float32 `desc:"net injected current at the last sample, nA"`
	NSpike float32 `desc:"number of spikes recorded so far"`

	RecSpikes bool `desc:"record spikes"`
	RecV      bool `desc:"record membrane voltage"`
	RecGSyn   bool `desc:"record synaptic conductance"`

	Pars       []float64 `desc:"scalar parameter values, in CellTypeDesc.Params order"`
	SpikeTimes []float64 `desc:"spike_times parameter of SpikeSourceArray cells, ms"`
	Spikes     []float64 `desc:"recorded spike times, ms"`
	VTrace     []VSample `desc:"recorded membrane voltage"`
}

var NeuronVars = []string{"Vm", "VmInit", "Inet", "NSpike"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

func (nrn *Neuron) VarNames() []string {
	return NeuronVars
}

// NeuronVarIndexByName returns the index of the variable in the Neuron, or error
func NeuronVarIndexByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list)
func (nrn *Neuron) VarByIndex(idx int) float32 {
	fv := (*float32)(unsafe.Pointer(uintptr(unsafe.Pointer(nrn)) + uintptr(4*idx)))
	return *fv
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, err := NeuronVarIndexByName(varNm)
	if err != nil {
		return math32.NaN(), err
	}
	return nrn.VarByIndex(i), nil
}

// Init sets parameters to the defaults of cd and the state to its
// initial values.
func (nrn *Neuron) Init(cd *CellTypeDesc) {
	nrn.Pars = make([]float64, len(cd.Params))
	for i, p := range cd.Params {
		nrn.Pars[i] = cd.Defaults[p]
	}
	nrn.VmInit = float32(cd.Initial["v"])
	nrn.SpikeTimes = nil
	nrn.RecSpikes, nrn.RecV, nrn.RecGSyn = false, false, false
	nrn.InitActs()
}

// InitActs resets the dynamic state and clears all recorded data.
func (nrn *Neuron) InitActs() {
	nrn.Vm = nrn.VmInit
	nrn.Inet = 0
	nrn.NSpike = 0
	nrn.Spikes = nil
	nrn.VTrace = nil
}

// AddSpike records a spike at time t if spike recording is on.
func (nrn *Neuron) AddSpike(t float64) {
	if !nrn.RecSpikes {
		return
	}
	nrn.Spikes = append(nrn.Spikes, t)
	nrn.NSpike++
}

// AddVSample records the current Vm at time t if voltage recording is on.
func (nrn *Neuron) AddVSample(t float64) {
	if !nrn.RecV {
		return
	}
	nrn.VTrace = append(nrn.VTrace, VSample{Time: t, V: float64(nrn.Vm)})
}

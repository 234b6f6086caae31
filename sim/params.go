// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"

	"github.com/emer/emergent/v2/erand"
	"github.com/emer/hmf"
	"github.com/emer/hmf/pop"
	"github.com/goki/mat32"
)

// ParamProxy reads and writes the named parameters of one cell.
type ParamProxy struct {
	Pop   *Population
	Index int
}

// Identity returns the identity of the proxied cell.
func (pp ParamProxy) Identity() pop.Identity {
	id, _ := pp.Pop.Cell(pp.Index)
	return id
}

func (pp ParamProxy) neuron() *Neuron { return &pp.Pop.Neurons[pp.Index] }

func (pp ParamProxy) nonExistent(name string) error {
	return &hmf.NonExistentParameterError{Parameter: name, Model: pp.Pop.Type.String(), Valid: pp.Pop.Desc.ValidNames()}
}

// Get returns the value of parameter name: a float64 for scalar parameters,
// a []float64 for spike_times and a bool for the record switches.
func (pp ParamProxy) Get(name string) (any, error) {
	nrn := pp.neuron()
	cd := pp.Pop.Desc
	switch name {
	case RecordSpikes:
		return nrn.RecSpikes, nil
	case RecordV:
		return nrn.RecV, nil
	case RecordGSyn:
		return nrn.RecGSyn, nil
	}
	if cd.IsArrayParam(name) {
		return append([]float64(nil), nrn.SpikeTimes...), nil
	}
	i, ok := cd.ParamIndex(name)
	if !ok {
		return nil, pp.nonExistent(name)
	}
	return nrn.Pars[i], nil
}

// Set sets parameter name to val.  Scalar parameters take any number,
// spike_times a []float64 and the record switches a bool.
func (pp ParamProxy) Set(name string, val any) error {
	nrn := pp.neuron()
	cd := pp.Pop.Desc
	switch name {
	case RecordSpikes, RecordV, RecordGSyn:
		on, ok := val.(bool)
		if !ok {
			return hmf.NewInvalidParameter(name, val, "record switches take a bool", nil)
		}
		if on && !cd.CanRecord(name) {
			return hmf.NewInvalidParameter(name, val, fmt.Sprintf("%v cells cannot record this variable", pp.Pop.Type), nil)
		}
		switch name {
		case RecordSpikes:
			nrn.RecSpikes = on
		case RecordV:
			nrn.RecV = on
		default:
			nrn.RecGSyn = on
		}
		return nil
	}
	if cd.IsArrayParam(name) {
		ts, ok := val.([]float64)
		if !ok {
			return hmf.NewInvalidParameter(name, val, "expects a list of times", nil)
		}
		nrn.SpikeTimes = append([]float64(nil), ts...)
		return nil
	}
	i, ok := cd.ParamIndex(name)
	if !ok {
		return pp.nonExistent(name)
	}
	f, err := toFloat(name, val)
	if err != nil {
		return err
	}
	nrn.Pars[i] = f
	return nil
}

func toFloat(name string, val any) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, hmf.NewInvalidParameter(name, val, "expects a number", nil)
}

// Proxies returns one ParamProxy per selected cell of cells, in iteration order.
func (nt *Network) Proxies(cells pop.Cells) ([]ParamProxy, error) {
	pps := make([]ParamProxy, 0, cells.Size())
	for _, g := range cells.Groups() {
		ps, err := nt.PopulationFor(g)
		if err != nil {
			return nil, err
		}
		for id := range g.Iterate() {
			pps = append(pps, ParamProxy{Pop: ps, Index: id.LocalIndex()})
		}
	}
	return pps, nil
}

// Get returns parameter name of every cell, in iteration order.
func (nt *Network) Get(cells pop.Cells, name string) ([]any, error) {
	pps, err := nt.Proxies(cells)
	if err != nil {
		return nil, err
	}
	vals := make([]any, len(pps))
	for i, pp := range pps {
		if vals[i], err = pp.Get(name); err != nil {
			return nil, err
		}
	}
	return vals, nil
}

// Set sets parameter name to val on every cell.  The parameter name is
// checked against every population before anything is changed.
func (nt *Network) Set(cells pop.Cells, name string, val any) error {
	return nt.SetParams(cells, map[string]any{name: val})
}

// SetParams sets several parameters on every cell.
func (nt *Network) SetParams(cells pop.Cells, pars map[string]any) error {
	pps, err := nt.Proxies(cells)
	if err != nil {
		return err
	}
	if err := checkNames(pps, pars); err != nil {
		return err
	}
	for _, pp := range pps {
		for nm, v := range pars {
			if err := pp.Set(nm, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkNames(pps []ParamProxy, pars map[string]any) error {
	var last *Population
	for _, pp := range pps {
		if pp.Pop == last {
			continue
		}
		last = pp.Pop
		for nm, v := range pars {
			if _, err := pp.Get(nm); err != nil {
				return err
			}
			if on, ok := v.(bool); ok && on && !pp.Pop.Desc.CanRecord(nm) {
				return hmf.NewInvalidParameter(nm, v, fmt.Sprintf("%v cells cannot record this variable", pp.Pop.Type), nil)
			}
		}
	}
	return nil
}

// RSet sets a scalar parameter from a random distribution, one value per
// cell in iteration order.
func (nt *Network) RSet(cells pop.Cells, name string, rd *RandomDistribution) error {
	return nt.TSet(cells, name, rd.NextN(cells.Size()))
}

// TSet sets a scalar parameter from a value per cell, in iteration order.
// Fails with InvalidDimensionsError if len(vals) != cells.Size().
func (nt *Network) TSet(cells pop.Cells, name string, vals []float64) error {
	if len(vals) != cells.Size() {
		return &hmf.InvalidDimensionsError{Expected: cells.Size(), Actual: len(vals)}
	}
	pps, err := nt.Proxies(cells)
	if err != nil {
		return err
	}
	if err := checkNames(pps, map[string]any{name: 0.0}); err != nil {
		return err
	}
	for i, pp := range pps {
		if err := pp.Set(name, vals[i]); err != nil {
			return err
		}
	}
	return nil
}

// Initialize sets the initial value of state variable (only "v" is known)
// on every cell.  The current value is also set.
func (nt *Network) Initialize(cells pop.Cells, variable string, value float64) error {
	vals := make([]float64, cells.Size())
	for i := range vals {
		vals[i] = value
	}
	return nt.initialize(cells, variable, vals)
}

// InitializeRandom sets the initial value of state variable from a random
// distribution, one value per cell in iteration order.
func (nt *Network) InitializeRandom(cells pop.Cells, variable string, rd *RandomDistribution) error {
	return nt.initialize(cells, variable, rd.NextN(cells.Size()))
}

// RandomInit sets the initial membrane potential from a random distribution.
func (nt *Network) RandomInit(cells pop.Cells, rd *RandomDistribution) error {
	return nt.InitializeRandom(cells, "v", rd)
}

func (nt *Network) initialize(cells pop.Cells, variable string, vals []float64) error {
	if variable != "v" {
		return hmf.NewInvalidParameter("variable", variable, "only v can be initialized", nil)
	}
	pps, err := nt.Proxies(cells)
	if err != nil {
		return err
	}
	for _, pp := range pps {
		if isSource(pp.Pop.Type) {
			return hmf.NewInvalidParameter("variable", variable, fmt.Sprintf("%v cells have no membrane potential", pp.Pop.Type), nil)
		}
	}
	for i, pp := range pps {
		nrn := pp.neuron()
		nrn.VmInit = float32(vals[i])
		nrn.Vm = nrn.VmInit
	}
	return nil
}

// Record switches spike recording on or off for every cell.
func (nt *Network) Record(cells pop.Cells, on bool) error {
	return nt.Set(cells, RecordSpikes, on)
}

// RecordV switches membrane voltage recording on or off for every cell.
func (nt *Network) RecordV(cells pop.Cells, on bool) error {
	return nt.Set(cells, RecordV, on)
}

// RecordGSyn switches synaptic conductance recording on or off for every cell.
func (nt *Network) RecordGSyn(cells pop.Cells, on bool) error {
	return nt.Set(cells, RecordGSyn, on)
}

// CanRecord returns true if every cell of cells can record variable.
func (nt *Network) CanRecord(cells pop.Cells, variable string) (bool, error) {
	for _, g := range cells.Groups() {
		ps, err := nt.PopulationFor(g)
		if err != nil {
			return false, err
		}
		if !ps.Desc.CanRecord(variable) {
			return false, nil
		}
	}
	return true, nil
}

// Sample returns n cells drawn at random without replacement, in the order
// of cells.
func (nt *Network) Sample(cells pop.Cells, n int) (*pop.Composite, error) {
	sz := cells.Size()
	if n < 0 || n > sz {
		return nil, hmf.NewInvalidParameter("n", n, fmt.Sprintf("cannot sample from %d cells", sz), nil)
	}
	ord := make([]int, sz)
	for i := range ord {
		ord[i] = i
	}
	erand.PermuteInts(ord, randOpt(nt.Rand)...)
	return pop.Merge(cells.Label(), cells).SelectByFlatIndices(ord[:n])
}

// Position returns the position of a cell.
func (nt *Network) Position(id pop.Identity) (mat32.Vec3, error) {
	ps, err := nt.PopulationForID(id.ID())
	if err != nil {
		return mat32.Vec3{}, err
	}
	return ps.Pos[id.ID()-ps.BaseID()], nil
}

// Nearest returns the cell of cells closest to pos, measured in sp (nil for
// euclidean distance in xyz).  The first cell wins ties.
func (nt *Network) Nearest(cells pop.Cells, pos mat32.Vec3, sp *Space) (pop.Identity, error) {
	if cells.Size() == 0 {
		return pop.Identity{}, &hmf.IndexRangeError{What: fmt.Sprintf("%q", cells.Label()), Index: 0, Size: 0}
	}
	if sp == nil {
		sp = NewSpace()
	}
	var best pop.Identity
	var bestD float32
	first := true
	for id := range cells.Iterate() {
		p, err := nt.Position(id)
		if err != nil {
			return pop.Identity{}, err
		}
		d := sp.Distance(p, pos)
		if first || d < bestD {
			best, bestD, first = id, d, false
		}
	}
	return best, nil
}

// Positions returns the position of every cell, in iteration order.
func (nt *Network) Positions(cells pop.Cells) ([]mat32.Vec3, error) {
	ps := make([]mat32.Vec3, 0, cells.Size())
	for id := range cells.Iterate() {
		p, err := nt.Position(id)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

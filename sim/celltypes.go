// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"sort"
	"sync"

	"github.com/emer/hmf"
	"github.com/goki/ki/kit"
)

// CellType is the standard neuron model of a population.
type CellType int32

//go:generate stringer -type=CellType

var KiT_CellType = kit.Enums.AddEnum(CellTypeN, kit.NotBitFlag, nil)

func (ev CellType) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *CellType) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The cell types
const (
	// IF_cond_exp is a leaky integrate and fire model with fixed threshold and
	// decaying-exponential post-synaptic conductance.
	IF_cond_exp CellType = iota

	// IF_cond_alpha is a leaky integrate and fire model with fixed threshold and
	// alpha-function-shaped post-synaptic conductance.
	IF_cond_alpha

	// IF_curr_exp is a leaky integrate and fire model with fixed threshold and
	// decaying-exponential post-synaptic current.
	IF_curr_exp

	// IF_curr_alpha is a leaky integrate and fire model with fixed threshold and
	// alpha-function-shaped post-synaptic current.
	IF_curr_alpha

	// EIF_cond_exp_isfa_ista is the adaptive exponential integrate and fire
	// model with exponential conductances.
	EIF_cond_exp_isfa_ista

	// EIF_cond_alpha_isfa_ista is the adaptive exponential integrate and fire
	// model with alpha-function conductances.
	EIF_cond_alpha_isfa_ista

	// HH_cond_exp is a single-compartment Hodgkin-Huxley model.
	HH_cond_exp

	// IF_brainscales_hardware is the conductance based model emulated by the
	// neuromorphic hardware: EIF_cond_exp_isfa_ista parameters, spikes and v only.
	IF_brainscales_hardware

	// SpikeSourceArray emits spikes at the times given in spike_times.
	SpikeSourceArray

	// SpikeSourcePoisson emits Poisson spike trains at the given rate.
	SpikeSourcePoisson

	CellTypeN
)

// Names of the recording switches, settable through ParamProxy like any
// other parameter.
const (
	RecordSpikes = "record_spikes"
	RecordV      = "record_v"
	RecordGSyn   = "record_gsyn"
)

// SpikeTimesParam is the only array-valued parameter.
const SpikeTimesParam = "spike_times"

// CellTypeDesc describes what the engine knows about a cell type: its
// parameters with defaults, the variables that can be recorded, and the
// initial values of state variables.
type CellTypeDesc struct {
	Type       CellType           `desc:"the cell type described"`
	Params     []string           `desc:"scalar parameter names, in storage order"`
	Defaults   map[string]float64 `desc:"default value per scalar parameter"`
	ArrayPars  []string           `desc:"array valued parameters (spike_times)"`
	Recordable []string           `desc:"variables that may be recorded"`
	Initial    map[string]float64 `desc:"default initial values of state variables, e.g. v"`
	Supported  bool               `desc:"whether the engine can instantiate this type"`

	parIdx map[string]int
}

// ParamIndex returns the storage index of scalar parameter name.
func (cd *CellTypeDesc) ParamIndex(name string) (int, bool) {
	i, ok := cd.parIdx[name]
	return i, ok
}

// IsArrayParam returns true if name is an array valued parameter.
func (cd *CellTypeDesc) IsArrayParam(name string) bool {
	for _, p := range cd.ArrayPars {
		if p == name {
			return true
		}
	}
	return false
}

// CanRecord returns true if variable can be recorded for this type.
// Accepts both "v" and "record_v" style names.
func (cd *CellTypeDesc) CanRecord(variable string) bool {
	switch variable {
	case RecordSpikes:
		variable = "spikes"
	case RecordV:
		variable = "v"
	case RecordGSyn:
		variable = "gsyn"
	}
	for _, r := range cd.Recordable {
		if r == variable {
			return true
		}
	}
	return false
}

// ValidNames lists every name a ParamProxy accepts for this type, sorted.
func (cd *CellTypeDesc) ValidNames() []string {
	nms := make([]string, 0, len(cd.Params)+len(cd.ArrayPars)+3)
	nms = append(nms, cd.Params...)
	nms = append(nms, cd.ArrayPars...)
	nms = append(nms, RecordSpikes, RecordV, RecordGSyn)
	sort.Strings(nms)
	return nms
}

func (cd *CellTypeDesc) index() {
	cd.parIdx = make(map[string]int, len(cd.Params))
	for i, p := range cd.Params {
		cd.parIdx[p] = i
	}
}

// Registry maps cell types to their descriptions.  A registry is populated
// once and only read afterwards; Disable is meant for configuration time.
type Registry struct {
	descs map[CellType]*CellTypeDesc
}

// NewRegistry returns a registry with all standard cell types, all supported.
func NewRegistry() *Registry {
	rg := &Registry{descs: make(map[CellType]*CellTypeDesc, int(CellTypeN))}
	for _, cd := range standardCellTypes() {
		rg.Register(cd)
	}
	return rg
}

// Register adds or replaces the description of cd.Type.
func (rg *Registry) Register(cd *CellTypeDesc) {
	cd.index()
	rg.descs[cd.Type] = cd
}

// Disable marks a cell type as not supported by the engine.
func (rg *Registry) Disable(ct CellType) {
	if cd, ok := rg.descs[ct]; ok {
		cd.Supported = false
	}
}

// Lookup returns the description of ct, or InvalidParameterError if the type
// is unknown or not supported.
func (rg *Registry) Lookup(ct CellType) (*CellTypeDesc, error) {
	cd, ok := rg.descs[ct]
	if !ok {
		return nil, hmf.NewInvalidParameter("celltype", ct, "invalid / unknown neuron type", nil)
	}
	if !cd.Supported {
		return nil, hmf.NewInvalidParameter("celltype", ct, "engine does not support this celltype", nil)
	}
	return cd, nil
}

var (
	stdRegistry     *Registry
	stdRegistryOnce sync.Once
)

// CellTypes returns the process-wide registry of standard cell types.
// It is built on first use and lives until the process exits.
func CellTypes() *Registry {
	stdRegistryOnce.Do(func() {
		stdRegistry = NewRegistry()
	})
	return stdRegistry
}

func standardCellTypes() []*CellTypeDesc {
	ifCondExp := map[string]float64{
		"v_rest": -65, "cm": 1, "tau_m": 20, "tau_refrac": 0,
		"tau_syn_E": 5, "tau_syn_I": 5, "e_rev_E": 0, "e_rev_I": -70,
		"v_thresh": -50, "v_reset": -65, "i_offset": 0,
	}
	ifCurr := map[string]float64{
		"v_rest": -65, "cm": 1, "tau_m": 20, "tau_refrac": 0,
		"tau_syn_E": 5, "tau_syn_I": 5, "v_thresh": -50, "v_reset": -65, "i_offset": 0,
	}
	eif := map[string]float64{
		"cm": 0.281, "tau_refrac": 0.1, "v_spike": -40, "v_reset": -70.6,
		"v_rest": -70.6, "tau_m": 9.3667, "i_offset": 0, "a": 4, "b": 0.0805,
		"delta_T": 2, "tau_w": 144, "v_thresh": -50.4, "e_rev_E": 0,
		"tau_syn_E": 5, "e_rev_I": -80, "tau_syn_I": 5,
	}
	hh := map[string]float64{
		"gbar_Na": 20, "gbar_K": 6, "g_leak": 0.01, "cm": 0.2, "v_offset": -63,
		"e_rev_Na": 50, "e_rev_K": -90, "e_rev_leak": -65, "e_rev_E": 0,
		"e_rev_I": -80, "tau_syn_E": 0.2, "tau_syn_I": 2, "i_offset": 0,
	}
	with := func(m map[string]float64, kv ...any) map[string]float64 {
		c := make(map[string]float64, len(m))
		for k, v := range m {
			c[k] = v
		}
		for i := 0; i+1 < len(kv); i += 2 {
			c[kv[i].(string)] = kv[i+1].(float64)
		}
		return c
	}
	mk := func(ct CellType, defs map[string]float64, rec []string, vinit float64) *CellTypeDesc {
		cd := &CellTypeDesc{Type: ct, Defaults: defs, Recordable: rec, Supported: true}
		for k := range defs {
			cd.Params = append(cd.Params, k)
		}
		sort.Strings(cd.Params)
		if !isSource(ct) {
			cd.Initial = map[string]float64{"v": vinit}
		}
		return cd
	}
	cds := []*CellTypeDesc{
		mk(IF_cond_exp, ifCondExp, []string{"spikes", "v", "gsyn"}, -65),
		mk(IF_cond_alpha, with(ifCondExp, "tau_syn_E", 0.3, "tau_syn_I", 0.5), []string{"spikes", "v", "gsyn"}, -65),
		mk(IF_curr_exp, ifCurr, []string{"spikes", "v"}, -65),
		mk(IF_curr_alpha, with(ifCurr, "tau_syn_E", 0.5, "tau_syn_I", 0.5), []string{"spikes", "v"}, -65),
		mk(EIF_cond_exp_isfa_ista, eif, []string{"spikes", "v", "w", "gsyn"}, -70.6),
		mk(EIF_cond_alpha_isfa_ista, with(eif), []string{"spikes", "v", "w", "gsyn"}, -70.6),
		mk(HH_cond_exp, hh, []string{"spikes", "v", "gsyn"}, -65),
		mk(IF_brainscales_hardware, with(eif), []string{"spikes", "v"}, -65),
		mk(SpikeSourcePoisson, map[string]float64{"start": 0, "rate": 1, "duration": 1e10}, []string{"spikes"}, 0),
	}
	ssa := mk(SpikeSourceArray, map[string]float64{}, []string{"spikes"}, 0)
	ssa.ArrayPars = []string{SpikeTimesParam}
	return append(cds, ssa)
}

// isSource returns true for the spike source types, which have no membrane.
func isSource(ct CellType) bool {
	return ct == SpikeSourceArray || ct == SpikeSourcePoisson
}

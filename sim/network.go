// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/v2/erand"
	"github.com/emer/emergent/v2/params"
	"github.com/emer/emergent/v2/timer"
	"github.com/emer/hmf"
	"github.com/emer/hmf/pop"
)

// Network is the simulation engine: it creates populations, assigns their
// global ids, owns all per-cell state and runs the simulation.
type Network struct {
	Nm       string                 `desc:"overall name of network -- helps discriminate if there are multiple"`
	Pops     []*Population          `desc:"list of populations, in creation (= id) order"`
	PopMap   map[string]*Population `view:"-" desc:"map of label to population -- first population wins for duplicate labels"`
	Currents []*Injection           `desc:"current sources that have been injected into cells"`
	Prjns    []*Projection          `desc:"projections between cells"`
	Step     RunParams              `view:"inline" desc:"time step and random seed"`
	Time     float64                `inactive:"+" desc:"current simulation time, ms"`
	NextID   int                    `inactive:"+" desc:"global id given to the first cell of the next population"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for each major function (step of processing)"`
	Rand     erand.Rand             `view:"-" desc:"random source for everything in the network"`

	registry *Registry
	started  bool
}

// NewNetwork returns a new network using the given cell type registry,
// or the process-wide CellTypes if reg is nil.
func NewNetwork(name string, reg *Registry) *Network {
	if reg == nil {
		reg = CellTypes()
	}
	nt := &Network{Nm: name, registry: reg}
	nt.Defaults()
	return nt
}

func (nt *Network) Name() string  { return nt.Nm }
func (nt *Network) Label() string { return nt.Nm }

// Registry returns the cell type registry the network was created with.
func (nt *Network) Registry() *Registry { return nt.registry }

// NPops is the number of populations.
func (nt *Network) NPops() int { return len(nt.Pops) }

// Defaults sets the run parameters to defaults and reseeds.
func (nt *Network) Defaults() {
	nt.Step.Defaults()
	nt.UpdateParams()
}

// UpdateParams updates derived parameters after Step has been changed.
func (nt *Network) UpdateParams() {
	nt.Step.Update()
	nt.Rand = newRand(nt.Step.Seed)
	if nt.FunTimes == nil {
		nt.FunTimes = make(map[string]*timer.Time)
	}
}

// AddPopulation creates a population of size cells of type ct.  Its cells get
// the next size consecutive global ids.  st may be nil for a Line.
// An empty label is replaced by "population<index>".
func (nt *Network) AddPopulation(size int, ct CellType, st Structure, label string) (*Population, error) {
	if size <= 0 {
		return nil, hmf.NewInvalidParameter("size", size, "number of neurons must be a positive integer", nil)
	}
	cd, err := nt.registry.Lookup(ct)
	if err != nil {
		return nil, err
	}
	if st == nil {
		st = NewLine()
	}
	pos, err := st.Positions(size, nt.Rand)
	if err != nil {
		return nil, err
	}
	if label == "" {
		label = fmt.Sprintf("population%d", len(nt.Pops))
	}
	g, err := pop.NewGroup(nt.NextID, size, label)
	if err != nil {
		return nil, err
	}
	ps := &Population{Network: nt, Nm: label, Type: ct, Index: len(nt.Pops), Struct: st, Desc: cd, Pos: pos, group: g}
	ps.Neurons = make([]Neuron, size)
	ps.Defaults()
	nt.Pops = append(nt.Pops, ps)
	nt.NextID += size
	nt.MakePopMap()
	return ps, nil
}

// MakePopMap updates the label map based on current populations
func (nt *Network) MakePopMap() {
	nt.PopMap = make(map[string]*Population, len(nt.Pops))
	for _, ps := range nt.Pops {
		if _, has := nt.PopMap[ps.Nm]; !has {
			nt.PopMap[ps.Nm] = ps
		}
	}
}

// PopulationByName returns a population by looking it up by label (nil if not found).
func (nt *Network) PopulationByName(name string) *Population {
	if nt.PopMap == nil {
		nt.MakePopMap()
	}
	return nt.PopMap[name]
}

// PopulationByNameTry returns a population by looking it up by label -- emits a log error message
// if population is not found
func (nt *Network) PopulationByNameTry(name string) (*Population, error) {
	ps := nt.PopulationByName(name)
	if ps == nil {
		err := fmt.Errorf("Population named: %v not found in Network: %v", name, nt.Nm)
		log.Println(err)
		return nil, err
	}
	return ps, nil
}

// PopulationForID returns the population that owns global id.
func (nt *Network) PopulationForID(id int) (*Population, error) {
	i := sort.Search(len(nt.Pops), func(i int) bool {
		ps := nt.Pops[i]
		return ps.BaseID()+ps.Size() > id
	})
	if id < 0 || i == len(nt.Pops) {
		return nil, &hmf.IndexRangeError{What: "network ids", Index: id, Size: nt.NextID}
	}
	return nt.Pops[i], nil
}

// PopulationFor returns the population a Group addresses.
func (nt *Network) PopulationFor(g *pop.Group) (*Population, error) {
	ps, err := nt.PopulationForID(g.BaseID())
	if err != nil {
		return nil, err
	}
	if !ps.Owns(g) {
		return nil, hmf.NewInvalidParameter("group", g.Label(), "does not address a population of network "+nt.Nm, nil)
	}
	return ps, nil
}

// NeuronFor returns the state of the cell with the given Identity.
func (nt *Network) NeuronFor(id pop.Identity) (*Neuron, *Population, error) {
	ps, err := nt.PopulationForID(id.ID())
	if err != nil {
		return nil, nil, err
	}
	nrn, err := ps.Neuron(id.ID() - ps.BaseID())
	return nrn, ps, err
}

// ApplyParams applies given parameter style Sheet to all populations in this network.
// If setMsg is true, then a message is printed to confirm each parameter that is set.
// it always prints a message if a parameter fails to be set.
// returns true if any params were set, and error if there were any errors.
func (nt *Network) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	applied := false
	var rerr error
	for _, ps := range nt.Pops {
		app, err := ps.ApplyParams(pars, setMsg)
		if app {
			applied = true
		}
		if err != nil {
			rerr = err
		}
	}
	return applied, rerr
}

// SizeReport returns a string reporting the size of each population
// and projection in the network, and total memory footprint.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	neur := 0
	neurMem := 0
	for _, ps := range nt.Pops {
		nn := len(ps.Neurons)
		nmem := nn*int(unsafe.Sizeof(Neuron{})) + nn*len(ps.Desc.Params)*8
		for i := range ps.Neurons {
			nrn := &ps.Neurons[i]
			nmem += 8 * (len(nrn.SpikeTimes) + len(nrn.Spikes) + 2*len(nrn.VTrace))
		}
		neur += nn
		neurMem += nmem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t NeurMem: %v \t Ids: %d-%d\n", ps.Nm, nn, (datasize.ByteSize)(nmem).HumanReadable(), ps.BaseID(), ps.BaseID()+nn-1)
	}
	con := 0
	conMem := 0
	for _, pj := range nt.Prjns {
		nc := pj.Size()
		pmem := nc * int(unsafe.Sizeof(Connection{}))
		con += nc
		conMem += pmem
		fmt.Fprintf(&b, "%14s:\t Cons: %d\t ConMem: %v\n", pj.Nm, nc, (datasize.ByteSize)(pmem).HumanReadable())
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d\t NeurMem: %v \t Cons: %d \t ConMem: %v\n", nt.Nm, neur, (datasize.ByteSize)(neurMem).HumanReadable(), con, (datasize.ByteSize)(conMem).HumanReadable())
	return b.String()
}

// Reset clears all recorded data, returns every cell to its initial state
// and sets the time back to 0.  Parameters and recording switches are kept.
func (nt *Network) Reset() {
	nt.FunTimerStart("Reset")
	for _, ps := range nt.Pops {
		ps.InitActs()
	}
	nt.Time = 0
	nt.started = false
	nt.FunTimerStop("Reset")
}

// Run advances the simulation to tstop (ms).  Spike sources emit their
// spikes in (Time, tstop], and cells recording v are sampled every
// Step.VDt() ms.  Membrane dynamics are not integrated: Vm stays at its
// initial value.
func (nt *Network) Run(tstop float64) error {
	if tstop < nt.Time {
		return hmf.NewInvalidParameter("tstop", tstop, fmt.Sprintf("before current time %g", nt.Time), nil)
	}
	nt.FunTimerStart("Run")
	defer nt.FunTimerStop("Run")
	t0 := nt.Time
	for _, ps := range nt.Pops {
		switch ps.Type {
		case SpikeSourceArray:
			nt.runSpikeArray(ps, t0, tstop)
		case SpikeSourcePoisson:
			nt.runPoisson(ps, t0, tstop)
		default:
			nt.runVm(ps, t0, tstop)
		}
	}
	nt.Time = tstop
	nt.started = true
	return nil
}

func (nt *Network) runSpikeArray(ps *Population, t0, tstop float64) {
	for i := range ps.Neurons {
		nrn := &ps.Neurons[i]
		for _, st := range nrn.SpikeTimes {
			if (st > t0 || (st == t0 && !nt.started)) && st <= tstop {
				nrn.AddSpike(st)
			}
		}
	}
}

func (nt *Network) runPoisson(ps *Population, t0, tstop float64) {
	si, _ := ps.Desc.ParamIndex("start")
	ri, _ := ps.Desc.ParamIndex("rate")
	di, _ := ps.Desc.ParamIndex("duration")
	dt := nt.Step.Dt
	nsteps := int((tstop - t0) / dt)
	for i := range ps.Neurons {
		nrn := &ps.Neurons[i]
		start, rate, dur := nrn.Pars[si], nrn.Pars[ri], nrn.Pars[di]
		p := rate * dt / 1000
		for s := 1; s <= nsteps; s++ {
			t := t0 + float64(s)*dt
			if t < start || t > start+dur {
				continue
			}
			if erand.BoolP(p, -1, randOpt(nt.Rand)...) {
				nrn.AddSpike(t)
			}
		}
	}
}

func (nt *Network) runVm(ps *Population, t0, tstop float64) {
	vdt := nt.Step.VDt()
	ioi, hasI := ps.Desc.ParamIndex("i_offset")
	for i := range ps.Neurons {
		nrn := &ps.Neurons[i]
		if hasI {
			nrn.Inet = float32(nrn.Pars[ioi])
		}
		id := ps.BaseID() + i
		nrn.Inet += float32(nt.CurrentAt(id, tstop))
		if !nrn.RecV {
			continue
		}
		t := t0
		if nt.started {
			t += vdt
		}
		for ; t <= tstop+1e-9; t += vdt {
			nrn.AddVSample(t)
		}
	}
}

// TimerReport reports the amount of time spent in each function
func (nt *Network) TimerReport() {
	fmt.Printf("TimerReport: %v\n", nt.Nm)
	fmt.Printf("\tFunction Name\tTotal Secs\tPct\n")
	nfn := len(nt.FunTimes)
	fnms := make([]string, nfn)
	idx := 0
	for k := range nt.FunTimes {
		fnms[idx] = k
		idx++
	}
	sort.StringSlice(fnms).Sort()
	pcts := make([]float64, nfn)
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = nt.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Printf("\t%v \t%6.4g\t%6.4g\n", fn, pcts[i], 100*(pcts[i]/tot))
	}
	fmt.Printf("\tTotal   \t%6.4g\n", tot)
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (nt *Network) FunTimerStart(fun string) {
	if nt.FunTimes == nil {
		nt.FunTimes = make(map[string]*timer.Time)
	}
	ft, ok := nt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		nt.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (nt *Network) FunTimerStop(fun string) {
	ft := nt.FunTimes[fun]
	ft.Stop()
}

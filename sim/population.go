// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"

	"github.com/emer/emergent/v2/params"
	"github.com/emer/hmf"
	"github.com/emer/hmf/mask"
	"github.com/emer/hmf/pop"
	"github.com/goki/mat32"
)

// Population is the engine side of a group of cells of one type: it owns
// the per-cell state that views and composites only address.
type Population struct {
	Network *Network      `copy:"-" json:"-" xml:"-" view:"-" desc:"our parent network"`
	Nm      string        `desc:"label of the population"`
	Cls     string        `desc:"space-separated classes for params styling"`
	Type    CellType      `desc:"cell type of every neuron"`
	Index   int           `desc:"index of this population in the network"`
	Struct  Structure     `desc:"structure the positions were generated from"`
	Record  RecordParams  `view:"inline" desc:"recording defaults, applied to all cells by UpdateParams"`
	Neurons []Neuron      `desc:"per-cell state, indexed by local position"`
	Pos     []mat32.Vec3  `desc:"per-cell positions"`
	Desc    *CellTypeDesc `view:"-" desc:"description of Type"`

	group *pop.Group
}

// params.Styler interface
func (ps *Population) TypeName() string { return "Population" }
func (ps *Population) Class() string    { return ps.Type.String() + " " + ps.Cls }
func (ps *Population) Name() string     { return ps.Nm }
func (ps *Population) Label() string    { return ps.Nm }

// AddClass adds a CSS-like class name for params styling.
func (ps *Population) AddClass(cls string) { ps.Cls = params.AddClass(ps.Cls, cls) }

// Size is the number of cells.
func (ps *Population) Size() int { return len(ps.Neurons) }

// BaseID is the global id of the first cell.
func (ps *Population) BaseID() int { return ps.group.BaseID() }

// Group returns the full Group addressing every cell of the population.
func (ps *Population) Group() *pop.Group { return ps.group }

// Cell returns the Identity of the cell at local index i.
func (ps *Population) Cell(i int) (pop.Identity, error) {
	return ps.group.At(i)
}

// View narrows the population with sel.
func (ps *Population) View(sel mask.Selector) (*pop.Group, error) {
	return ps.group.Narrow(sel)
}

// Neuron returns the state of the cell at local index i.
func (ps *Population) Neuron(i int) (*Neuron, error) {
	if i < 0 || i >= len(ps.Neurons) {
		return nil, &hmf.IndexRangeError{What: fmt.Sprintf("population %q", ps.Nm), Index: i, Size: len(ps.Neurons)}
	}
	return &ps.Neurons[i], nil
}

// Owns returns true if the Group addresses this population.
func (ps *Population) Owns(g *pop.Group) bool {
	return ps.group.SamePopulation(g)
}

// Defaults sets all parameters and state of every cell to the cell type defaults.
func (ps *Population) Defaults() {
	ps.Record.Defaults()
	for i := range ps.Neurons {
		ps.Neurons[i].Init(ps.Desc)
	}
}

// UpdateParams applies the population-level recording switches to all cells.
func (ps *Population) UpdateParams() {
	ps.Record.Update()
	for i := range ps.Neurons {
		nrn := &ps.Neurons[i]
		nrn.RecSpikes = nrn.RecSpikes || (ps.Record.Spikes && ps.Desc.CanRecord("spikes"))
		nrn.RecV = nrn.RecV || (ps.Record.V && ps.Desc.CanRecord("v"))
		nrn.RecGSyn = nrn.RecGSyn || (ps.Record.GSyn && ps.Desc.CanRecord("gsyn"))
	}
}

// ApplyParams applies given parameter style Sheet to this population.
// Calls UpdateParams if anything set to ensure derived parameters are all updated.
// If setMsg is true, then a message is printed to confirm each parameter that is set.
// it always prints a message if a parameter fails to be set.
// returns true if any params were set, and error if there were any errors.
func (ps *Population) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	app, err := pars.Apply(ps, setMsg)
	if app {
		ps.UpdateParams()
	}
	return app, err
}

// InitActs resets the state of every cell and clears recorded data.
func (ps *Population) InitActs() {
	for i := range ps.Neurons {
		ps.Neurons[i].InitActs()
	}
}

func (ps *Population) String() string {
	return fmt.Sprintf("Population %q: %d %v cells from %d", ps.Nm, ps.Size(), ps.Type, ps.BaseID())
}

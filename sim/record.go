// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"io"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/etable/v2/minmax"
	"github.com/emer/hmf"
	"github.com/emer/hmf/pop"
)

// Spikes returns the recorded spike times of the k-th selected cell of g.
func (nt *Network) Spikes(g *pop.Group, k int) ([]float64, error) {
	nrn, err := nt.slot(g, k)
	if err != nil {
		return nil, err
	}
	return nrn.Spikes, nil
}

// VoltageTrace returns the recorded membrane voltage of the k-th selected cell of g.
func (nt *Network) VoltageTrace(g *pop.Group, k int) ([]VSample, error) {
	nrn, err := nt.slot(g, k)
	if err != nil {
		return nil, err
	}
	return nrn.VTrace, nil
}

func (nt *Network) slot(g *pop.Group, k int) (*Neuron, error) {
	ps, err := nt.PopulationFor(g)
	if err != nil {
		return nil, err
	}
	id, err := g.At(k)
	if err != nil {
		return nil, err
	}
	return ps.Neuron(id.LocalIndex())
}

// cellRef is one visited cell with the id written to output tables.
type cellRef struct {
	nrn  *Neuron
	id   pop.Identity
	cell int
}

// visit walks cells group by group.  The table cell id of a cell is its
// index in the underlying population plus the extents of all groups
// visited before.
func (nt *Network) visit(cells pop.Cells) ([]cellRef, error) {
	refs := make([]cellRef, 0, cells.Size())
	off := 0
	for _, g := range cells.Groups() {
		ps, err := nt.PopulationFor(g)
		if err != nil {
			return nil, err
		}
		for id := range g.Iterate() {
			li := id.LocalIndex()
			refs = append(refs, cellRef{nrn: &ps.Neurons[li], id: id, cell: li + off})
		}
		off += g.Extent()
	}
	return refs, nil
}

// SpikeTable returns one row per recorded spike of cells, with columns
// Cell, GlobalID and Time (ms), in iteration order.
func (nt *Network) SpikeTable(cells pop.Cells) (*etable.Table, error) {
	refs, err := nt.visit(cells)
	if err != nil {
		return nil, err
	}
	n := 0
	for _, r := range refs {
		n += len(r.nrn.Spikes)
	}
	dt := &etable.Table{}
	dt.SetMetaData("name", "Spikes")
	sch := etable.Schema{
		{"Cell", etensor.INT64, nil, nil},
		{"GlobalID", etensor.INT64, nil, nil},
		{"Time", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, n)
	row := 0
	for _, r := range refs {
		for _, t := range r.nrn.Spikes {
			dt.SetCellFloat("Cell", row, float64(r.cell))
			dt.SetCellFloat("GlobalID", row, float64(r.id.ID()))
			dt.SetCellFloat("Time", row, t)
			row++
		}
	}
	return dt, nil
}

// VoltageTable returns one row per voltage sample of cells, with columns
// Cell, GlobalID, Time (ms) and Vm (mV), in iteration order.
func (nt *Network) VoltageTable(cells pop.Cells) (*etable.Table, error) {
	refs, err := nt.visit(cells)
	if err != nil {
		return nil, err
	}
	n := 0
	for _, r := range refs {
		n += len(r.nrn.VTrace)
	}
	dt := &etable.Table{}
	dt.SetMetaData("name", "Voltages")
	sch := etable.Schema{
		{"Cell", etensor.INT64, nil, nil},
		{"GlobalID", etensor.INT64, nil, nil},
		{"Time", etensor.FLOAT64, nil, nil},
		{"Vm", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, n)
	row := 0
	for _, r := range refs {
		for _, s := range r.nrn.VTrace {
			dt.SetCellFloat("Cell", row, float64(r.cell))
			dt.SetCellFloat("GlobalID", row, float64(r.id.ID()))
			dt.SetCellFloat("Time", row, s.Time)
			dt.SetCellFloat("Vm", row, s.V)
			row++
		}
	}
	return dt, nil
}

// PositionTable returns the global id and position of every cell.
func (nt *Network) PositionTable(cells pop.Cells) (*etable.Table, error) {
	refs, err := nt.visit(cells)
	if err != nil {
		return nil, err
	}
	dt := &etable.Table{}
	dt.SetMetaData("name", "Positions")
	sch := etable.Schema{
		{"ID", etensor.INT64, nil, nil},
		{"X", etensor.FLOAT32, nil, nil},
		{"Y", etensor.FLOAT32, nil, nil},
		{"Z", etensor.FLOAT32, nil, nil},
	}
	dt.SetFromSchema(sch, len(refs))
	for i, r := range refs {
		p, err := nt.Position(r.id)
		if err != nil {
			return nil, err
		}
		dt.SetCellFloat("ID", i, float64(r.id.ID()))
		dt.SetCellFloat("X", i, float64(p.X))
		dt.SetCellFloat("Y", i, float64(p.Y))
		dt.SetCellFloat("Z", i, float64(p.Z))
	}
	return dt, nil
}

// GSynTable is not provided by this engine.
func (nt *Network) GSynTable(cells pop.Cells) (*etable.Table, error) {
	return nil, hmf.NotImplemented("GSynTable")
}

// SpikeCounts maps global id to the number of recorded spikes, for every
// cell of cells that records spikes.  Cells reached twice count once.
func (nt *Network) SpikeCounts(cells pop.Cells) (map[int]int, error) {
	refs, err := nt.visit(cells)
	if err != nil {
		return nil, err
	}
	cnt := make(map[int]int, len(refs))
	for _, r := range refs {
		if r.nrn.RecSpikes {
			cnt[r.id.ID()] = len(r.nrn.Spikes)
		}
	}
	return cnt, nil
}

// MeanSpikeCount is the mean number of spikes over the spike-recording
// cells of cells, or 0 if none records.
func (nt *Network) MeanSpikeCount(cells pop.Cells) (float64, error) {
	cnt, err := nt.SpikeCounts(cells)
	if err != nil || len(cnt) == 0 {
		return 0, err
	}
	tot := 0
	for _, c := range cnt {
		tot += c
	}
	return float64(tot) / float64(len(cnt)), nil
}

// VarValues returns the state variable varNm (one of NeuronVars) of every
// cell of cells, in iteration order.
func (nt *Network) VarValues(cells pop.Cells, varNm string) ([]float32, error) {
	vi, err := NeuronVarIndexByName(varNm)
	if err != nil {
		return nil, hmf.NewInvalidParameter("variable", varNm, fmt.Sprintf("valid: %v", NeuronVars), err)
	}
	refs, err := nt.visit(cells)
	if err != nil {
		return nil, err
	}
	vals := make([]float32, len(refs))
	for i, r := range refs {
		vals[i] = r.nrn.VarByIndex(vi)
	}
	return vals, nil
}

// VarStats returns average and max of state variable varNm over cells:
// MaxIdx is the flat index of the cell with the largest value.
func (nt *Network) VarStats(cells pop.Cells, varNm string) (minmax.AvgMax32, error) {
	var am minmax.AvgMax32
	am.Init()
	vals, err := nt.VarValues(cells, varNm)
	if err != nil {
		return am, err
	}
	for i, v := range vals {
		am.UpdateVal(v, int32(i))
	}
	am.CalcAvg()
	return am, nil
}

// SpikeCountStats returns average and max spike counts over cells, in
// iteration order: MaxIdx is the flat index of the most active cell.
func (nt *Network) SpikeCountStats(cells pop.Cells) (minmax.AvgMax32, error) {
	return nt.VarStats(cells, "NSpike")
}

func writeTable(w io.Writer, dt *etable.Table, err error) error {
	if err != nil {
		return err
	}
	return dt.WriteCSV(w, etable.Comma, etable.Headers)
}

// WriteSpikes writes SpikeTable(cells) as CSV.
func (nt *Network) WriteSpikes(w io.Writer, cells pop.Cells) error {
	dt, err := nt.SpikeTable(cells)
	return writeTable(w, dt, err)
}

// WriteVoltages writes VoltageTable(cells) as CSV.
func (nt *Network) WriteVoltages(w io.Writer, cells pop.Cells) error {
	dt, err := nt.VoltageTable(cells)
	return writeTable(w, dt, err)
}

// WritePositions writes PositionTable(cells) as CSV.
func (nt *Network) WritePositions(w io.Writer, cells pop.Cells) error {
	dt, err := nt.PositionTable(cells)
	return writeTable(w, dt, err)
}

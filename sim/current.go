// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"math"

	"github.com/emer/emergent/v2/erand"
	"github.com/emer/hmf"
	"github.com/emer/hmf/pop"
)

// CurrentSource is a time course of injected current, in nA.
type CurrentSource interface {
	fmt.Stringer

	// Amplitude returns the current at time t (ms).
	Amplitude(t float64) float64
}

// DCSource is a constant current between Start and Stop.  Stop 0 means
// forever.
type DCSource struct {
	Amp   float64 `desc:"amplitude, nA"`
	Start float64 `desc:"onset time, ms"`
	Stop  float64 `desc:"offset time, ms -- 0 = never"`
}

func (cs *DCSource) Amplitude(t float64) float64 {
	if !inWindow(t, cs.Start, cs.Stop) {
		return 0
	}
	return cs.Amp
}

func (cs *DCSource) String() string {
	return fmt.Sprintf("DCSource(amplitude=%g, start=%g, stop=%g)", cs.Amp, cs.Start, cs.Stop)
}

func inWindow(t, start, stop float64) bool {
	return t >= start && (stop <= 0 || t < stop)
}

// StepCurrentSource switches to Amps[i] at Times[i].
type StepCurrentSource struct {
	Times []float64
	Amps  []float64
}

// NewStepCurrentSource fails with LengthMismatchError unless times and amps
// have the same length, and InvalidParameterError if times are not increasing.
func NewStepCurrentSource(times, amps []float64) (*StepCurrentSource, error) {
	if len(times) != len(amps) {
		return nil, &hmf.LengthMismatchError{Expected: len(times), Actual: len(amps)}
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, hmf.NewInvalidParameter("times", times, "must be strictly increasing", nil)
		}
	}
	return &StepCurrentSource{Times: append([]float64(nil), times...), Amps: append([]float64(nil), amps...)}, nil
}

func (cs *StepCurrentSource) Amplitude(t float64) float64 {
	a := 0.0
	for i, st := range cs.Times {
		if st > t {
			break
		}
		a = cs.Amps[i]
	}
	return a
}

func (cs *StepCurrentSource) String() string {
	return fmt.Sprintf("StepCurrentSource(times=%v, amplitudes=%v)", cs.Times, cs.Amps)
}

// ACSource is a sine wave around Offset.
type ACSource struct {
	Amp    float64 `desc:"amplitude, nA"`
	Offset float64 `desc:"dc offset, nA"`
	Freq   float64 `desc:"frequency, Hz"`
	Phase  float64 `desc:"phase, degrees"`
	Start  float64 `desc:"onset time, ms"`
	Stop   float64 `desc:"offset time, ms -- 0 = never"`
}

func (cs *ACSource) Amplitude(t float64) float64 {
	if !inWindow(t, cs.Start, cs.Stop) {
		return 0
	}
	ph := 2*math.Pi*cs.Freq*(t-cs.Start)/1000 + cs.Phase*math.Pi/180
	return cs.Offset + cs.Amp*math.Sin(ph)
}

func (cs *ACSource) String() string {
	return fmt.Sprintf("ACSource(amplitude=%g, offset=%g, frequency=%g, phase=%g, start=%g, stop=%g)", cs.Amp, cs.Offset, cs.Freq, cs.Phase, cs.Start, cs.Stop)
}

// NoisyCurrentSource draws a gaussian current around Mean.
type NoisyCurrentSource struct {
	Mean  float64    `desc:"mean current, nA"`
	Stdev float64    `desc:"standard deviation, nA"`
	Start float64    `desc:"onset time, ms"`
	Stop  float64    `desc:"offset time, ms -- 0 = never"`
	Rand  erand.Rand `view:"-" desc:"random source -- nil uses the global source"`
}

func (cs *NoisyCurrentSource) Amplitude(t float64) float64 {
	if !inWindow(t, cs.Start, cs.Stop) {
		return 0
	}
	rp := erand.RndParams{Dist: erand.Gaussian, Mean: cs.Mean, Var: cs.Stdev}
	return rp.Gen(-1, randOpt(cs.Rand)...)
}

func (cs *NoisyCurrentSource) String() string {
	return fmt.Sprintf("NoisyCurrentSource(mean=%g, stdev=%g, start=%g, stop=%g)", cs.Mean, cs.Stdev, cs.Start, cs.Stop)
}

// Injection is a current source connected to its target cells.
type Injection struct {
	Source  CurrentSource
	Targets *pop.Composite
}

// Targeted reports whether global id receives this injection.
func (inj *Injection) Targeted(id int) bool {
	for _, g := range inj.Targets.Groups() {
		li := id - g.BaseID()
		if li >= 0 && li < g.Extent() && g.Mask().Contains(li) {
			return true
		}
	}
	return false
}

// CurrentAt returns the current injected into global id at time t.
func (inj *Injection) CurrentAt(id int, t float64) float64 {
	if !inj.Targeted(id) {
		return 0
	}
	return inj.Source.Amplitude(t)
}

// InjectInto connects cs to every cell of cells.  Only cells of populations
// with a membrane can receive current.
func (nt *Network) InjectInto(cs CurrentSource, cells pop.Cells) (*Injection, error) {
	tg := pop.Merge(cells.Label(), cells)
	for _, g := range tg.Groups() {
		ps, err := nt.PopulationFor(g)
		if err != nil {
			return nil, err
		}
		if isSource(ps.Type) {
			return nil, hmf.NewInvalidParameter("cells", g.Label(), fmt.Sprintf("cannot inject current into %v cells", ps.Type), nil)
		}
	}
	inj := &Injection{Source: cs, Targets: tg}
	nt.Currents = append(nt.Currents, inj)
	return inj, nil
}

// InjectIntoCells connects cs to individual cells, grouped into one view per
// population in the order the populations are first given.
func (nt *Network) InjectIntoCells(cs CurrentSource, ids ...pop.Identity) (*Injection, error) {
	tg, err := pop.FromIdentities("", ids...)
	if err != nil {
		return nil, err
	}
	return nt.InjectInto(cs, tg)
}

// CurrentAt is the total injected current into global id at time t.
func (nt *Network) CurrentAt(id int, t float64) float64 {
	c := 0.0
	for _, inj := range nt.Currents {
		c += inj.CurrentAt(id, t)
	}
	return c
}

// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"

	"github.com/emer/emergent/v2/erand"
	"github.com/emer/hmf"
)

// RandomDistribution is a stream of random values of one distribution.
// Values are consumed one per cell, in cell iteration order.
type RandomDistribution struct {
	erand.RndParams
	Name string     `desc:"distribution name, as given to NewRandomDistribution"`
	Rand erand.Rand `view:"-" desc:"random source -- nil uses the global source"`
}

// NewRandomDistribution returns a distribution by name with positional
// parameters:
//
//	uniform  (low, high)
//	normal   (mu, sigma)
//	binomial (n, p)
//	poisson  (lambda)
//	gamma    (k, theta)
//	constant (value)
//
// rnd may be nil for the global random source.
func NewRandomDistribution(name string, pars []float64, rnd erand.Rand) (*RandomDistribution, error) {
	rd := &RandomDistribution{Name: name, Rand: rnd}
	need := map[string]int{"uniform": 2, "normal": 2, "binomial": 2, "poisson": 1, "gamma": 2, "constant": 1}
	n, ok := need[name]
	if !ok {
		return nil, hmf.NewInvalidParameter("distribution", name, "unknown distribution", nil)
	}
	if len(pars) != n {
		return nil, hmf.NewInvalidParameter("parameters", pars, fmt.Sprintf("%s takes %d parameters", name, n), nil)
	}
	switch name {
	case "uniform":
		if pars[1] < pars[0] {
			return nil, hmf.NewInvalidParameter("parameters", pars, "high must not be below low", nil)
		}
		rd.Dist = erand.Uniform
		rd.Mean = 0.5 * (pars[0] + pars[1])
		rd.Var = 0.5 * (pars[1] - pars[0])
	case "normal":
		rd.Dist = erand.Gaussian
		rd.Mean = pars[0]
		rd.Var = pars[1]
	case "binomial":
		rd.Dist = erand.Binomial
		rd.Par = pars[0]
		rd.Var = pars[1]
	case "poisson":
		rd.Dist = erand.Poisson
		rd.Var = pars[0]
	case "gamma":
		if pars[0] <= 0 || pars[1] <= 0 {
			return nil, hmf.NewInvalidParameter("parameters", pars, "gamma shape and scale must be positive", nil)
		}
		// erand takes the shape as Par and the rate (1/scale) as Var
		rd.Dist = erand.Gamma
		rd.Par = pars[0]
		rd.Var = 1 / pars[1]
	case "constant":
		rd.Dist = erand.Mean
		rd.Mean = pars[0]
	}
	return rd, nil
}

// Next returns the next value.
func (rd *RandomDistribution) Next() float64 {
	return rd.Gen(-1, randOpt(rd.Rand)...)
}

// NextN returns the next n values.
func (rd *RandomDistribution) NextN(n int) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = rd.Next()
	}
	return vals
}

func (rd *RandomDistribution) String() string {
	return fmt.Sprintf("RandomDistribution %s: mean %g var %g par %g", rd.Name, rd.Mean, rd.Var, rd.Par)
}

// newRand returns the random source for seed: the global source for 0.
func newRand(seed int64) erand.Rand {
	if seed == 0 {
		return erand.NewGlobalRand()
	}
	return erand.NewSysRand(seed)
}

// randOpt passes rnd on to erand functions only when it is set.
func randOpt(rnd erand.Rand) []erand.Rand {
	if rnd == nil {
		return nil
	}
	return []erand.Rand{rnd}
}

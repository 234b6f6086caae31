// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"log"

	"github.com/emer/emergent/v2/prjn"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/etable/v2/minmax"
	"github.com/emer/hmf"
	"github.com/emer/hmf/pop"
)

// Connection is one synapse, addressed by flat index into the pre and post
// composites of its Projection.
type Connection struct {
	Pre  int32
	Post int32
}

// ConnPair is a connection resolved to cell identities.
type ConnPair struct {
	Pre  pop.Identity
	Post pop.Identity
}

// Projection holds the connectivity between two sets of cells, as generated
// by a prjn.Pattern over their flat index spaces.
type Projection struct {
	Nm    string          `desc:"label of the projection"`
	Pre   *pop.Composite  `desc:"presynaptic cells"`
	Post  *pop.Composite  `desc:"postsynaptic cells"`
	Pat   prjn.Pattern    `desc:"pattern of connectivity"`
	Cons  []Connection    `desc:"connections, ordered by post then pre flat index"`
	SendN minmax.AvgMax32 `inactive:"+" view:"inline" desc:"average and maximum number of outgoing connections per pre cell"`
	RecvN minmax.AvgMax32 `inactive:"+" view:"inline" desc:"average and maximum number of incoming connections per post cell"`
}

// Connect builds a projection from pre to post using pat.  An empty label
// is replaced by "projection<index>".
func (nt *Network) Connect(pre, post pop.Cells, pat prjn.Pattern, label string) (*Projection, error) {
	if pat == nil {
		return nil, hmf.NewInvalidParameter("pattern", nil, "no connection pattern given", nil)
	}
	if pre.Size() == 0 || post.Size() == 0 {
		return nil, hmf.NewInvalidParameter("cells", fmt.Sprintf("%d -> %d", pre.Size(), post.Size()), "cannot connect empty cell sets", nil)
	}
	for _, cs := range []pop.Cells{pre, post} {
		for _, g := range cs.Groups() {
			if _, err := nt.PopulationFor(g); err != nil {
				return nil, err
			}
		}
	}
	if label == "" {
		label = fmt.Sprintf("projection%d", len(nt.Prjns))
	}
	pj := &Projection{Nm: label, Pat: pat}
	pj.Pre = pop.Merge(pre.Label(), pre)
	pj.Post = pop.Merge(post.Label(), post)
	pj.Build()
	nt.Prjns = append(nt.Prjns, pj)
	return pj, nil
}

// Build generates the connections from the pattern.
func (pj *Projection) Build() {
	var ssh, rsh etensor.Shape
	ssh.SetShape([]int{pj.Pre.Size()}, nil, nil)
	rsh.SetShape([]int{pj.Post.Size()}, nil, nil)
	sendn, recvn, cons := pj.Pat.Connect(&ssh, &rsh, pj.Pre.Equal(pj.Post))
	slen := ssh.Len()
	rlen := rsh.Len()
	tcons := nStats(&pj.SendN, sendn)
	tconr := nStats(&pj.RecvN, recvn)
	if tconr != tcons {
		log.Printf("%v programmer error: total recv cons %v != total send cons %v\n", pj.Nm, tconr, tcons)
	}
	pj.Cons = make([]Connection, 0, tconr)
	cbits := cons.Values
	for ri := 0; ri < rlen; ri++ {
		rbi := ri * slen
		for si := 0; si < slen; si++ {
			if cbits.Index(rbi + si) {
				pj.Cons = append(pj.Cons, Connection{Pre: int32(si), Post: int32(ri)})
			}
		}
	}
}

// nStats fills avgmax from a per-cell connection count tensor and returns
// the total.
func nStats(avgmax *minmax.AvgMax32, tn *etensor.Int32) int {
	tot := 0
	avgmax.Init()
	for i, nv := range tn.Values {
		tot += int(nv)
		avgmax.UpdateVal(float32(nv), int32(i))
	}
	avgmax.CalcAvg()
	return tot
}

// Size is the number of connections.
func (pj *Projection) Size() int { return len(pj.Cons) }

// Pair resolves connection i to cell identities.
func (pj *Projection) Pair(i int) (ConnPair, error) {
	if i < 0 || i >= len(pj.Cons) {
		return ConnPair{}, &hmf.IndexRangeError{What: "projection " + pj.Nm, Index: i, Size: len(pj.Cons)}
	}
	cn := pj.Cons[i]
	pre, err := pj.Pre.At(int(cn.Pre))
	if err != nil {
		return ConnPair{}, err
	}
	post, err := pj.Post.At(int(cn.Post))
	if err != nil {
		return ConnPair{}, err
	}
	return ConnPair{Pre: pre, Post: post}, nil
}

// Pairs resolves all connections to cell identities.
func (pj *Projection) Pairs() ([]ConnPair, error) {
	prs := make([]ConnPair, len(pj.Cons))
	for i := range pj.Cons {
		var err error
		if prs[i], err = pj.Pair(i); err != nil {
			return nil, err
		}
	}
	return prs, nil
}

func (pj *Projection) String() string {
	return fmt.Sprintf("Projection %q: %q -> %q, %s, %d connections", pj.Nm, pj.Pre.Label(), pj.Post.Label(), pj.Pat.Name(), len(pj.Cons))
}

// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pop

import "iter"

// Cells is anything that addresses an ordered collection of cells:
// a Group or a Composite.  Groups returns the constituent Groups in
// iteration order; Iterate visits exactly Size cells.
type Cells interface {
	Size() int
	Iterate() iter.Seq[Identity]
	Groups() []*Group
	Label() string
}

var (
	_ Cells = (*Group)(nil)
	_ Cells = (*Composite)(nil)
)

// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package pop provides the population / view / assembly algebra:

  - Group: a fixed-size sequence of cell slots of one homogeneous population,
    carrying the population's base id, its full extent and a selection mask.
    A Group with a full mask is a population; any other mask makes it a view.

  - Identity: an absolute, comparable reference to exactly one cell,
    obtained by indexing a Group or Composite.

  - Composite: an ordered concatenation of Groups addressed as one flat
    sequence.  Groups from different populations, and even overlapping views
    of the same population, may be combined; nothing is ever de-duplicated.

Narrowing a Group with a mask.Selector is always relative to the Group's
currently selected slots, and the result is again expressed against the
underlying population extent, so no view ever refers back to a parent.

Everything here is pure in-memory index arithmetic.  Values are never mutated
after construction, except for Composite.Append which grows a Composite in
place and is only safe with a single writer.
*/
package pop

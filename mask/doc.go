// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package mask provides IndexMask, a compact immutable record of which positions
within a fixed-size sequence are selected, and the Selector variants used to
build one:

  - AllOf / NoneOf: every position, or none
  - IndexList: explicit positions, each at most once
  - BoolVector: one flag per position, length must equal the extent
  - Slice: start:stop:step with scripting-language slicing semantics
    (negative step, exclusive stop, clipping, open bounds)

Masks are backed by a roaring bitmap, so the k-th selected position (Nth) and
the inverse (Rank) are both cheap even for large populations.  A new mask is
always produced by re-selecting (Sub), never by mutating an existing one.
Builder is the one mutable helper, used to accumulate hits idempotently before
freezing them into a mask.
*/
package mask

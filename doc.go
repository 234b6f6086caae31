// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hmf is the overall repository for the population selection and
identity layer that sits between a neural-network description API and the
simulation engine that runs it.

This top-level package only holds the error taxonomy shared by everything
else -- the functional code is organized into the following sub-packages:

* mask: IndexMask, the immutable set of selected positions within a fixed-size
sequence, and the Selector variants (all, none, index list, boolean vector,
slice) that construct it with scripting-language slicing semantics.

* pop: the Group (population or view over one), the Identity of a single cell,
and the Composite (assembly) of heterogeneous groups with its flat global
addressing.  Narrowing and concatenation live here too.

* sim: the engine-side collaborators that consume the selection layer: cell
type registry, population creation with id assignment, parameter proxies,
random distributions, recording tables, current sources and projections.

* examples: these compile into runnable programs, examples/spikes is the place
to start.
*/
package hmf

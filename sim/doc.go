// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sim is a small spiking network engine built on the population
algebra of package pop.  It owns all per-cell state, while pop.Group and
pop.Composite values only address cells.

The Network creates populations of a registered CellType, giving each the
next block of global ids, and exposes the engine side of every operation a
population view needs: parameter proxies (Get, Set, TSet, RSet), recording
switches, per-cell recorded data, output tables (etable) and CSV writers,
current injection and projections built from emergent prjn patterns.

Run replays spike sources and samples voltage traces; membrane dynamics are
not integrated.
*/
package sim

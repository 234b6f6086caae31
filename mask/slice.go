// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mask

import (
	"fmt"

	"github.com/emer/hmf"
	"github.com/goki/ki/ints"
)

// Slice is a start:stop:step selector, resolved with the same rules as slicing
// a Python sequence: negative start / stop count from the end, stop is
// exclusive, out-of-range bounds are clipped, and a negative step walks
// backwards.  OpenStart / OpenStop mark an omitted bound (s[:4], s[2:], s[::-1]).
// A Step of 0 is always an error, so use the constructors below rather than
// a bare literal when the step is the default 1.
type Slice struct {
	Start     int
	Stop      int
	Step      int
	OpenStart bool
	OpenStop  bool
}

func (Slice) selector() {}

// Range returns the slice start:stop
func Range(start, stop int) Slice {
	return Slice{Start: start, Stop: stop, Step: 1}
}

// RangeStep returns the slice start:stop:step
func RangeStep(start, stop, step int) Slice {
	return Slice{Start: start, Stop: stop, Step: step}
}

// From returns the slice start:
func From(start int) Slice {
	return Slice{Start: start, Step: 1, OpenStop: true}
}

// Until returns the slice :stop
func Until(stop int) Slice {
	return Slice{Stop: stop, Step: 1, OpenStart: true}
}

// Reversed returns the slice ::-1
func Reversed() Slice {
	return Slice{Step: -1, OpenStart: true, OpenStop: true}
}

// WithStep returns a copy of the slice with the given step.
func (s Slice) WithStep(step int) Slice {
	s.Step = step
	return s
}

func (s Slice) String() string {
	st, sp := "", ""
	if !s.OpenStart {
		st = fmt.Sprintf("%d", s.Start)
	}
	if !s.OpenStop {
		sp = fmt.Sprintf("%d", s.Stop)
	}
	if s.Step == 1 {
		return st + ":" + sp
	}
	return fmt.Sprintf("%s:%s:%d", st, sp, s.Step)
}

// Bounds resolves the slice against a sequence of the given length and returns
// the normalized start, stop and step.  The resulting range visits
// start, start+step, ... while it has not reached stop.
func (s Slice) Bounds(length int) (start, stop, step int, err error) {
	if s.Step == 0 {
		return 0, 0, 0, &hmf.InvalidStepError{}
	}
	step = s.Step
	lower, upper := 0, length
	if step < 0 {
		lower, upper = -1, length-1
	}
	if s.OpenStart {
		if step < 0 {
			start = upper
		} else {
			start = lower
		}
	} else {
		start = clip(s.Start, length, lower, upper)
	}
	if s.OpenStop {
		if step < 0 {
			stop = lower
		} else {
			stop = upper
		}
	} else {
		stop = clip(s.Stop, length, lower, upper)
	}
	return start, stop, step, nil
}

// clip normalizes one bound: negative values count back from length,
// and everything is kept within [lower, upper].
func clip(v, length, lower, upper int) int {
	if v < 0 {
		return ints.MaxInt(v+length, lower)
	}
	return ints.MinInt(v, upper)
}

// Len returns the number of positions the slice selects out of length.
func (s Slice) Len(length int) (int, error) {
	start, stop, step, err := s.Bounds(length)
	if err != nil {
		return 0, err
	}
	switch {
	case step > 0 && start < stop:
		return (stop-start-1)/step + 1, nil
	case step < 0 && stop < start:
		return (start-stop-1)/(-step) + 1, nil
	}
	return 0, nil
}

// Indices returns the positions selected out of a sequence of the given
// length, in slice visiting order (descending for a negative step).
func (s Slice) Indices(length int) ([]int, error) {
	n, err := s.Len(length)
	if err != nil {
		return nil, err
	}
	start, _, step, _ := s.Bounds(length)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = start + i*step
	}
	return idx, nil
}

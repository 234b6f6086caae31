// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pop

import "fmt"

// Identity refers to one cell by its global id.  It remembers the Group it
// was obtained from for attribute lookups, but that Group does not define it:
// two Identities are Equal whenever their ids are, regardless of which
// population or view produced them.  Use Equal (or ID) rather than ==.
type Identity struct {
	id    int
	owner *Group
}

// ID returns the global id of the cell, unique across the whole run.
func (c Identity) ID() int { return c.id }

// Owner returns the Group through which the cell was reached (may be nil for
// a zero Identity).
func (c Identity) Owner() *Group { return c.owner }

// LocalIndex returns the position of the cell within its underlying full
// population, independent of any view mask.
func (c Identity) LocalIndex() int {
	if c.owner == nil {
		return -1
	}
	return c.id - c.owner.baseID
}

// Equal compares on global id only.
func (c Identity) Equal(o Identity) bool { return c.id == o.id }

// IsValid returns true if the Identity was obtained from a Group.
func (c Identity) IsValid() bool { return c.owner != nil }

func (c Identity) String() string {
	if c.owner == nil {
		return fmt.Sprintf("ID(%d)", c.id)
	}
	return fmt.Sprintf("ID(%d) in %q", c.id, c.owner.label)
}

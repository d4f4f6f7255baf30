// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dump

import "slices"

// Mode selects the addresses compared by Diff.
type Mode uint8

const (
	// Baseline compares the addresses of the first dump only. An address
	// that appears only in the second dump is not reported.
	Baseline Mode = iota

	// Symmetric also reports the addresses that appear only in the second
	// dump.
	Symmetric
)

type Change struct {
	Addr uint64
	Old  Value
	New  Value
}

// Diff returns the registers whose value differs between the baseline a and
// the new dump b, sorted by address. An address missing from one dump is
// compared as Unreadable. Both dumps are assumed to have the same address and
// value widths.
func Diff(a, b *Dump, mode Mode) []Change {
	var cs []Change
	for addr, old := range a.Data {
		if v := b.Data[addr]; v != old {
			cs = append(cs, Change{addr, old, v})
		}
	}
	if mode == Symmetric {
		for addr, v := range b.Data {
			if _, ok := a.Data[addr]; !ok && v != Unreadable {
				cs = append(cs, Change{addr, Unreadable, v})
			}
		}
	}
	slices.SortFunc(cs, func(x, y Change) int {
		switch {
		case x.Addr < y.Addr:
			return -1
		case x.Addr > y.Addr:
			return 1
		}
		return 0
	})
	return cs
}

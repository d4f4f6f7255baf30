// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dump

import (
	"slices"
	"testing"
)

func dumpOf(data map[uint64]Value) *Dump {
	return &Dump{
		Header: Header{Fmt: "dump", Type: MMIO, AddrBits: 32, ValBits: 32},
		Data:   data,
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b map[uint64]Value
		mode Mode
		want []Change
	}{
		{
			name: "one change",
			a:    map[uint64]Value{0x10: Readable(1), 0x14: Readable(2)},
			b:    map[uint64]Value{0x10: Readable(1), 0x14: Readable(3)},
			want: []Change{{0x14, Readable(2), Readable(3)}},
		},
		{
			name: "identical",
			a:    map[uint64]Value{0x10: Readable(1), 0x14: Unreadable},
			b:    map[uint64]Value{0x10: Readable(1), 0x14: Unreadable},
		},
		{
			name: "became unreadable",
			a:    map[uint64]Value{0x10: Readable(0)},
			b:    map[uint64]Value{0x10: Unreadable},
			want: []Change{{0x10, Readable(0), Unreadable}},
		},
		{
			name: "sorted",
			a: map[uint64]Value{
				0x30: Readable(1), 0x10: Readable(1), 0x20: Readable(1),
			},
			b: map[uint64]Value{
				0x30: Readable(2), 0x10: Readable(2), 0x20: Readable(2),
			},
			want: []Change{
				{0x10, Readable(1), Readable(2)},
				{0x20, Readable(1), Readable(2)},
				{0x30, Readable(1), Readable(2)},
			},
		},
		{
			name: "baseline ignores new addresses",
			a:    map[uint64]Value{0x10: Readable(1)},
			b:    map[uint64]Value{0x10: Readable(1), 0x14: Readable(7)},
		},
		{
			name: "missing from new dump",
			a:    map[uint64]Value{0x10: Readable(1), 0x14: Readable(7)},
			b:    map[uint64]Value{0x10: Readable(1)},
			want: []Change{{0x14, Readable(7), Unreadable}},
		},
		{
			name: "symmetric reports new addresses",
			a:    map[uint64]Value{0x10: Readable(1)},
			b: map[uint64]Value{
				0x10: Readable(1), 0x14: Readable(7), 0x18: Unreadable,
			},
			mode: Symmetric,
			want: []Change{{0x14, Unreadable, Readable(7)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(dumpOf(tt.a), dumpOf(tt.b), tt.mode)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Diff() = %v, want %v", got, tt.want)
			}
		})
	}
}

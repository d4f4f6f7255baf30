// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

import (
	"errors"
	"testing"
)

func TestFromMask(t *testing.T) {
	tests := []struct {
		mask       uint64
		start, end uint
	}{
		{0x0C, 2, 3},
		{0x01, 0, 0},
		{0x80000000, 31, 31},
		{0xFFFFF000, 12, 31},
		{0xFFFFFFFFFFFFFFFF, 0, 63},
		{1 << 63, 63, 63},
		{0x0F0F, 0, 3}, // only the first run counts
	}
	for _, tt := range tests {
		r, err := FromMask(tt.mask, "X")
		if err != nil {
			t.Fatalf("FromMask(%#x): %v", tt.mask, err)
		}
		if r.Start != tt.start || r.End != tt.end || r.Name != "X" {
			t.Errorf(
				"FromMask(%#x) = %+v, want bits %d-%d",
				tt.mask, r, tt.start, tt.end,
			)
		}
	}
}

func TestFromMaskContiguous(t *testing.T) {
	for start := uint(0); start < 64; start++ {
		for width := uint(1); start+width <= 64; width++ {
			mask := ^uint64(0) >> (64 - width) << start
			r, err := FromMask(mask, "F")
			if err != nil {
				t.Fatal(err)
			}
			if r.Mask() != mask {
				t.Fatalf(
					"FromMask(%#x) = %+v, mask back %#x", mask, r, r.Mask(),
				)
			}
		}
	}
}

func TestFromMaskZero(t *testing.T) {
	if _, err := FromMask(0, "X"); !errors.Is(err, ErrInvalidMask) {
		t.Errorf("FromMask(0) error = %v, want ErrInvalidMask", err)
	}
}

func TestRangeExtract(t *testing.T) {
	r := Range{Start: 4, End: 7, Name: "MODE"}
	if got := r.Extract(0x1234); got != 0x3 {
		t.Errorf("Extract(0x1234) = %#x, want 0x3", got)
	}
	if s := r.String(); s != "MODE[7:4]" {
		t.Errorf("String() = %q", s)
	}
	if s := (Range{Start: 3, End: 3, Name: "EN"}).String(); s != "EN[3]" {
		t.Errorf("String() = %q", s)
	}
}

func TestAddrLookup(t *testing.T) {
	a := &Addr{Addr: 0x10, Name: "CTRL"}
	a.Add(Range{0, 7, "LOW"})
	a.Add(Range{4, 11, "OVERLAP"})
	a.Add(Range{12, 15, "HIGH"})
	tests := []struct {
		bit  uint
		name string
		ok   bool
	}{
		{0, "LOW", true},
		{5, "LOW", true},
		{9, "OVERLAP", true},
		{15, "HIGH", true},
		{16, "", false},
	}
	for _, tt := range tests {
		r, ok := a.Lookup(tt.bit)
		if ok != tt.ok || r.Name != tt.name {
			t.Errorf("Lookup(%d) = %v, %v, want %s", tt.bit, r, ok, tt.name)
		}
	}
}

func TestDocLookup(t *testing.T) {
	d := New("blk", 0x3500_4000, 0x8)
	d.Add(&Addr{Addr: 0x0, Name: "A"})
	d.Add(&Addr{Addr: 0x8, Name: "B"})
	if a := d.Lookup(0x8); a == nil || a.Name != "B" {
		t.Errorf("Lookup(8) = %v", a)
	}
	if a := d.Lookup(0x4); a != nil {
		t.Errorf("Lookup(4) = %v, want nil", a)
	}
	if a := d.Describe(0x3500_4000); a == nil || a.Name != "A" {
		t.Errorf("Describe(base) = %v", a)
	}
	if a := d.Describe(0x10); a != nil {
		t.Errorf("Describe below base = %v, want nil", a)
	}
	d.Add(&Addr{Addr: 0x0, Name: "A2"})
	if d.Len() != 2 || d.Lookup(0).Name != "A2" {
		t.Errorf("re-adding 0x0: len %d, name %s", d.Len(), d.Lookup(0).Name)
	}
}

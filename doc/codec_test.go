// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func sampleDoc() *Doc {
	d := New("brcm_rdb_chipreg", 0x3500_4000, 0x1f0)
	a := &Addr{Addr: 0x1f0, Name: "CHIPREG_PERIPH_SPARE_CONTROL1"}
	a.Add(Range{16, 31, "SPARE_HI"})
	a.Add(Range{0, 15, "SPARE_LO"})
	d.Add(a)
	b := &Addr{Addr: 0x0, Name: "CHIPREG_CHIPID_REG"}
	b.Add(Range{12, 31, "CHIPID"})
	b.Add(Range{0, 11, "REVID"})
	b.Add(Range{0, 3, "REVID_MINOR"})
	d.Add(b)
	d.Add(&Addr{Addr: 0x4, Name: "CHIPREG_EMPTY"})
	return d
}

const sampleText = `fmt doc
name brcm_rdb_chipreg
type mmio
base_addr 0x35004000
size 0x1f0
addr_bits 32
val_bits 32
--- header_end ---
0x0 CHIPREG_CHIPID_REG
  b 0 11 REVID
  b 0 3 REVID_MINOR
  b 12 31 CHIPID

0x4 CHIPREG_EMPTY

0x1f0 CHIPREG_PERIPH_SPARE_CONTROL1
  b 0 15 SPARE_LO
  b 16 31 SPARE_HI
`

func TestEncode(t *testing.T) {
	var b strings.Builder
	if err := Encode(&b, sampleDoc()); err != nil {
		t.Fatal(err)
	}
	if b.String() != sampleText {
		t.Errorf("Encode() =\n%s\nwant\n%s", b.String(), sampleText)
	}
}

func sortedRanges(a *Addr) []Range {
	rs := slices.Clone(a.Ranges)
	slices.SortFunc(rs, func(x, y Range) int {
		if x.Start != y.Start {
			return int(x.Start) - int(y.Start)
		}
		if x.End != y.End {
			return int(x.End) - int(y.End)
		}
		return strings.Compare(x.Name, y.Name)
	})
	return rs
}

func TestRoundTrip(t *testing.T) {
	in := sampleDoc()
	in.Type = I2C
	in.AddrBits, in.ValBits = 8, 8
	path := filepath.Join(t.TempDir(), "chipreg.doc")
	if err := Save(path, in); err != nil {
		t.Fatal(err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.BaseAddr != in.BaseAddr || out.Size != in.Size ||
		out.Name != in.Name || out.Type != in.Type ||
		out.AddrBits != in.AddrBits || out.ValBits != in.ValBits {

		t.Fatalf("header mismatch: got %v, want %v", out, in)
	}
	if out.Len() != in.Len() {
		t.Fatalf("got %d addresses, want %d", out.Len(), in.Len())
	}
	for _, a := range in.Addrs() {
		b := out.Lookup(a.Addr)
		if b == nil {
			t.Fatalf("address %#x lost", a.Addr)
		}
		if b.Name != a.Name {
			t.Errorf("%#x name = %q, want %q", a.Addr, b.Name, a.Name)
		}
		if !slices.Equal(sortedRanges(a), sortedRanges(b)) {
			t.Errorf("%#x ranges = %v, want %v", a.Addr, b.Ranges, a.Ranges)
		}
	}
}

func TestDecodeTolerant(t *testing.T) {
	in := "  fmt doc\nowner someone\n\ntype mmio\nbase_addr 0\nsize 4\n" +
		"addr_bits 32\nval_bits 32\n--- header_end ---\n\n\n" +
		"   0x4   STATUS  \n\t b 1 1 READY \n\n"
	d, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	a := d.Lookup(4)
	if a == nil || a.Name != "STATUS" {
		t.Fatalf("Lookup(4) = %v", a)
	}
	if len(a.Ranges) != 1 || a.Ranges[0] != (Range{1, 1, "READY"}) {
		t.Errorf("ranges = %v", a.Ranges)
	}
}

func TestNamesWithSpaces(t *testing.T) {
	in := New("spare", 0, 4)
	a := &Addr{Addr: 0, Name: "SPARE  CONTROL"}
	a.Add(Range{0, 3, "LOW\tNIBBLE  X"})
	in.Add(a)
	var b strings.Builder
	if err := Encode(&b, in); err != nil {
		t.Fatal(err)
	}
	out, err := Decode(strings.NewReader(b.String()))
	if err != nil {
		t.Fatal(err)
	}
	got := out.Lookup(0)
	if got == nil || got.Name != a.Name {
		t.Fatalf("Lookup(0) = %v, want name %q", got, a.Name)
	}
	if len(got.Ranges) != 1 || got.Ranges[0] != a.Ranges[0] {
		t.Errorf("ranges = %q, want %q", got.Ranges, a.Ranges)
	}
}

func TestDecodeErrors(t *testing.T) {
	const hdr = "fmt doc\ntype mmio\nbase_addr 0\nsize 4\naddr_bits 32\n" +
		"val_bits 32\n--- header_end ---\n"
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"range first", hdr + "  b 0 1 X\n0x0 A\n", ErrMalformedDoc},
		{"bad address", hdr + "zz A\n", ErrMalformedDoc},
		{"reversed range", hdr + "0x0 A\n  b 4 1 X\n", ErrMalformedDoc},
		{"short range", hdr + "0x0 A\n  b 4\n", ErrMalformedDoc},
		{"dump header", strings.Replace(hdr, "fmt doc", "fmt dump", 1), ErrInvalidFormat},
		{"missing key", strings.Replace(hdr, "size 4\n", "", 1), ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
			if d != nil {
				t.Errorf("Decode() returned a partial doc")
			}
		})
	}
}

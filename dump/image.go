// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dump

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/marcinbor85/gohex"
)

// Section is a run of registers read at consecutive addresses.
type Section struct {
	Addr uint64
	Data []byte
}

type Sections []*Section

// Sections encodes the readable registers of d in val_bits/8 bytes each
// using the given byte order. Registers at consecutive addresses, each
// val_bits/8 bytes apart, share a section. The sections are sorted by
// address.
func (d *Dump) Sections(order binary.ByteOrder) (Sections, error) {
	var put func([]byte, uint64)
	switch d.Header.ValBits {
	case 8:
		put = func(b []byte, v uint64) { b[0] = byte(v) }
	case 16:
		put = func(b []byte, v uint64) { order.PutUint16(b, uint16(v)) }
	case 32:
		put = func(b []byte, v uint64) { order.PutUint32(b, uint32(v)) }
	case 64:
		put = order.PutUint64
	default:
		return nil, fmt.Errorf("unsupported value size: %d bits", d.Header.ValBits)
	}
	n := uint64(d.Header.ValBits / 8)
	var (
		ss   Sections
		s    *Section
		next uint64
		buf  [8]byte
	)
	for _, addr := range d.Addrs() {
		v, ok := d.Data[addr].Get()
		if !ok {
			s = nil
			continue
		}
		if s == nil || addr != next {
			s = &Section{Addr: addr}
			ss = append(ss, s)
		}
		put(buf[:n], v)
		s.Data = append(s.Data, buf[:n]...)
		next = addr + n
	}
	return ss, nil
}

// SortByAddr sorts the sections by address.
func (ss Sections) SortByAddr() {
	slices.SortFunc(ss, func(a, b *Section) int {
		return cmp.Compare(a.Addr, b.Addr)
	})
}

// MaxGap is the largest gap between two sections that Flatten fills.
const MaxGap = 16 << 20

// Flatten writes the sections to w in address order, filling the gaps
// between them with the pad byte. Overlapping sections and gaps larger than
// MaxGap are errors.
func (ss Sections) Flatten(w io.Writer, pad byte) (int, error) {
	ss.SortByAddr()
	var (
		n    int
		fill []byte
	)
	for i, s := range ss {
		if i != 0 {
			prev := ss[i-1]
			end := prev.Addr + uint64(len(prev.Data))
			if s.Addr < end {
				return n, fmt.Errorf("flatten: section at %#x overlaps %#x", s.Addr, prev.Addr)
			}
			gap := s.Addr - end
			if gap > MaxGap {
				return n, fmt.Errorf("flatten: %#x byte gap at %#x", gap, end)
			}
			if int(gap) > len(fill) {
				fill = bytes.Repeat([]byte{pad}, int(gap))
			}
			k, err := w.Write(fill[:gap])
			n += k
			if err != nil {
				return n, err
			}
		}
		k, err := w.Write(s.Data)
		n += k
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// WriteIntelHex writes the sections to w in the Intel HEX format.
func (ss Sections) WriteIntelHex(w io.Writer) error {
	mem := gohex.NewMemory()
	for _, s := range ss {
		if s.Addr+uint64(len(s.Data)) > math.MaxUint32+1 {
			return fmt.Errorf("section at %#x does not fit in 32-bit address space", s.Addr)
		}
		if err := mem.AddBinary(uint32(s.Addr), s.Data); err != nil {
			return err
		}
	}
	return mem.DumpIntelHex(w, 16)
}

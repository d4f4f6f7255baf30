// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package doc provides the register documentation model: a block of
// registers at a base address, each register described by named bit ranges.
//
// Docs are built incrementally by a single parser (see package hdrdoc and
// Decode) and must not be modified after they are handed out.
package doc

import (
	"errors"
	"fmt"

	"github.com/embeddedgo/regdump/internal/meta"
)

var (
	ErrInvalidMask   = errors.New("invalid mask")
	ErrMalformedDoc  = errors.New("malformed doc")
	ErrInvalidFormat = meta.ErrInvalidFormat
)

// Type is the bus of the documented block.
type Type = meta.Type

const (
	Unknown = meta.Unknown
	MMIO    = meta.MMIO
	I2C     = meta.I2C
)

// Range is a named, inclusive span of bits in a register value. Bit 0 is the
// least significant bit.
type Range struct {
	Start uint
	End   uint
	Name  string
}

// Width returns the number of bits covered by r.
func (r Range) Width() uint { return r.End - r.Start + 1 }

// Mask returns the bits covered by r.
func (r Range) Mask() uint64 {
	if r.Width() >= 64 {
		return ^uint64(0) << r.Start
	}
	return (1<<r.Width() - 1) << r.Start
}

// Extract returns the value of the r field in the register value v.
func (r Range) Extract(v uint64) uint64 { return (v & r.Mask()) >> r.Start }

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%s[%d]", r.Name, r.Start)
	}
	return fmt.Sprintf("%s[%d:%d]", r.Name, r.End, r.Start)
}

// Addr documents the register at a block relative address. Ranges may
// overlap.
type Addr struct {
	Addr   uint64
	Name   string
	Ranges []Range
}

func (a *Addr) Add(r Range) {
	a.Ranges = append(a.Ranges, r)
}

// Lookup returns the first range that covers bit.
func (a *Addr) Lookup(bit uint) (Range, bool) {
	for _, r := range a.Ranges {
		if r.Start <= bit && bit <= r.End {
			return r, true
		}
	}
	return Range{}, false
}

func (a *Addr) String() string {
	return fmt.Sprintf("%s @ %#x (%d ranges)", a.Name, a.Addr, len(a.Ranges))
}

// Doc documents a block of registers. Size is the highest offset known when
// the doc was built, not a guaranteed upper bound.
type Doc struct {
	BaseAddr uint64
	Size     uint64
	Name     string
	Type     Type
	AddrBits uint
	ValBits  uint

	addrs []*Addr
	index map[uint64]int
}

// New returns an empty doc. Addresses of 32-bit MMIO registers are assumed
// until the caller sets Type, AddrBits and ValBits.
func New(name string, base, size uint64) *Doc {
	return &Doc{
		BaseAddr: base,
		Size:     size,
		Name:     name,
		Type:     MMIO,
		AddrBits: 32,
		ValBits:  32,
		index:    make(map[uint64]int),
	}
}

// Add adds a to the doc. An address documented earlier is replaced in place.
func (d *Doc) Add(a *Addr) {
	if d.index == nil {
		d.index = make(map[uint64]int)
	}
	if i, ok := d.index[a.Addr]; ok {
		d.addrs[i] = a
		return
	}
	d.index[a.Addr] = len(d.addrs)
	d.addrs = append(d.addrs, a)
}

// Lookup returns the doc of the register at the block relative address addr
// or nil.
func (d *Doc) Lookup(addr uint64) *Addr {
	if i, ok := d.index[addr]; ok {
		return d.addrs[i]
	}
	return nil
}

// Describe is like Lookup but takes an absolute address.
func (d *Doc) Describe(abs uint64) *Addr {
	if abs < d.BaseAddr {
		return nil
	}
	return d.Lookup(abs - d.BaseAddr)
}

// Addrs returns the documented registers in the order they were added.
func (d *Doc) Addrs() []*Addr { return d.addrs }

func (d *Doc) Len() int { return len(d.addrs) }

func (d *Doc) String() string {
	name := d.Name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf(
		"%s @ %#x - %#x (size %#x), %d addresses",
		name, d.BaseAddr, d.BaseAddr+d.Size, d.Size, len(d.addrs),
	)
}

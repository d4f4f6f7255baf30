// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dump reads register dumps and compares them.
//
// A dump is a header block followed by one register per line:
//
//	fmt dump
//	type mmio
//	base_addr 0x35004000
//	size 0x1f0
//	addr_bits 32
//	val_bits 32
//	--- header_end ---
//	0x35004000 0x0b000300
//	0x35004004 -
//
// A "-" value marks an address that could not be read. Body lines that do
// not consist of exactly two tokens are skipped.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/embeddedgo/regdump/internal/meta"
)

var ErrInvalidFormat = meta.ErrInvalidFormat

// Type is the bus the dumped registers were read from.
type Type = meta.Type

const (
	Unknown = meta.Unknown
	MMIO    = meta.MMIO
	I2C     = meta.I2C
)

// Header describes the dumped register space. BaseAddr and Size are read as
// hexadecimal numbers, AddrBits and ValBits as decimal ones.
type Header = meta.Meta

// Value is the content of a register or Unreadable.
type Value struct {
	v  uint64
	ok bool
}

// Unreadable marks a register that could not be read.
var Unreadable Value

func Readable(v uint64) Value { return Value{v, true} }

// Get returns the register value and whether it was readable.
func (v Value) Get() (uint64, bool) { return v.v, v.ok }

func (v Value) Readable() bool { return v.ok }

// String formats v the way it appears in a dump file.
func (v Value) String() string {
	if !v.ok {
		return "-"
	}
	return fmt.Sprintf("%#x", v.v)
}

type Dump struct {
	Header Header
	Data   map[uint64]Value // keyed by absolute address
}

// Parse reads a dump from r. Nothing is returned if the header is invalid.
func Parse(r io.Reader) (*Dump, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	h, body, err := meta.Parse(lines, "dump")
	if err != nil {
		return nil, err
	}
	d := &Dump{Header: h, Data: make(map[uint64]Value, len(lines)-body)}
	for n := body; n < len(lines); n++ {
		f := strings.Fields(lines[n])
		if len(f) != 2 {
			continue
		}
		addr, err := meta.ParseHex(f[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad address %q", n+1, f[0])
		}
		if f[1] == "-" {
			d.Data[addr] = Unreadable
			continue
		}
		v, err := meta.ParseHex(f[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad value %q", n+1, f[1])
		}
		d.Data[addr] = Readable(v)
	}
	return d, nil
}

// Load reads the dump file at path.
func Load(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Addrs returns the dumped addresses in ascending order.
func (d *Dump) Addrs() []uint64 {
	addrs := make([]uint64, 0, len(d.Data))
	for a := range d.Data {
		addrs = append(addrs, a)
	}
	slices.Sort(addrs)
	return addrs
}

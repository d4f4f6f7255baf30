// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meta handles the key-value header block shared by the dump and doc
// text formats.
//
// A header is a sequence of "key value" lines terminated by the Sentinel
// line. Blank lines and lines without a value are ignored, as are unknown
// keys, so newer writers can extend the header.
package meta

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sentinel terminates the header block.
const Sentinel = "--- header_end ---"

var ErrInvalidFormat = errors.New("invalid format")

// Type describes the bus the register space lives on.
type Type uint8

const (
	Unknown Type = iota
	MMIO
	I2C
)

func (t Type) String() string {
	switch t {
	case MMIO:
		return "mmio"
	case I2C:
		return "i2c"
	}
	return "unknown"
}

// ParseType never fails: unrecognized names map to Unknown.
func ParseType(s string) Type {
	switch s {
	case "mmio":
		return MMIO
	case "i2c":
		return I2C
	}
	return Unknown
}

type Meta struct {
	Fmt      string
	Type     Type
	BaseAddr uint64
	Size     uint64
	AddrBits uint
	ValBits  uint
	Name     string // optional
}

var required = [...]string{"fmt", "type", "base_addr", "size", "addr_bits", "val_bits"}

// Parse reads the header block at the beginning of lines and checks that
// its fmt key equals format. It returns the index of the first line after the
// sentinel.
func Parse(lines []string, format string) (m Meta, body int, err error) {
	kv := make(map[string]string)
	end := -1
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == Sentinel {
			end = i
			break
		}
		f := strings.Fields(line)
		if len(f) < 2 {
			continue
		}
		kv[f[0]] = strings.Join(f[1:], " ")
	}
	if end < 0 {
		return m, 0, fmt.Errorf("%w: no %q line", ErrInvalidFormat, Sentinel)
	}
	if f, ok := kv["fmt"]; ok && f != format {
		return m, 0, fmt.Errorf(
			"%w: fmt must be set to %q, not %q", ErrInvalidFormat, format, f,
		)
	}
	for _, k := range required {
		if _, ok := kv[k]; !ok {
			return m, 0, fmt.Errorf("%w: missing key %q", ErrInvalidFormat, k)
		}
	}
	m.Fmt = format
	m.Type = ParseType(kv["type"])
	m.Name = kv["name"]
	if m.BaseAddr, err = ParseHex(kv["base_addr"]); err != nil {
		return m, 0, fmt.Errorf("%w: base_addr: %v", ErrInvalidFormat, err)
	}
	if m.Size, err = ParseHex(kv["size"]); err != nil {
		return m, 0, fmt.Errorf("%w: size: %v", ErrInvalidFormat, err)
	}
	if m.AddrBits, err = parseBits(kv["addr_bits"]); err != nil {
		return m, 0, fmt.Errorf("%w: addr_bits: %v", ErrInvalidFormat, err)
	}
	if m.ValBits, err = parseBits(kv["val_bits"]); err != nil {
		return m, 0, fmt.Errorf("%w: val_bits: %v", ErrInvalidFormat, err)
	}
	return m, end + 1, nil
}

func parseBits(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	return uint(n), err
}

// ParseHex parses a hexadecimal number with an optional 0x prefix.
func ParseHex(s string) (uint64, error) {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return strconv.ParseUint(s, 16, 64)
}

// Write writes m followed by the sentinel line.
func Write(w io.Writer, m *Meta) error {
	var b strings.Builder
	fmt.Fprintln(&b, "fmt", m.Fmt)
	if m.Name != "" {
		fmt.Fprintln(&b, "name", m.Name)
	}
	fmt.Fprintln(&b, "type", m.Type)
	fmt.Fprintf(&b, "base_addr %#x\n", m.BaseAddr)
	fmt.Fprintf(&b, "size %#x\n", m.Size)
	fmt.Fprintln(&b, "addr_bits", m.AddrBits)
	fmt.Fprintln(&b, "val_bits", m.ValBits)
	b.WriteString(Sentinel + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

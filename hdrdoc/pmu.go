// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hdrdoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/embeddedgo/regdump/doc"
	"github.com/embeddedgo/regdump/macro"
)

const (
	encPMUReg = "ENC_PMU_REG"
	regPrefix = len("PMU_REG_")
)

// BuildPMU documents the registers of the I2C map m (0 or 1) described by
// the macros of a BCM590xx PMU header. Offsets are map relative so the
// doc has base address 0.
//
// PMU headers are not reliably ordered. A mask macro that does not belong to
// the active register is attributed by guessBlock and reported to notify
// (may be nil). Masks of registers from the other map, masks that cannot be
// attributed and zero masks are skipped.
func BuildPMU(t *macro.Table, name string, m int, notify Notifier) (*doc.Doc, error) {
	if notify == nil {
		notify = func(string, ...any) {}
	}
	d := doc.New(name, 0, 0)
	d.Type = doc.I2C
	d.AddrBits, d.ValBits = 8, 8
	var cur cursor
	known := make(map[string]*doc.Addr)
	excluded := make(map[string]bool)
	for key, val := range t.All() {
		if strings.HasPrefix(val, encPMUReg) {
			block := key
			if len(key) > regPrefix {
				block = key[regPrefix:]
			}
			n, off, err := parseEncPMUReg(val)
			if err != nil {
				return nil, fmt.Errorf("%s: %v", key, err)
			}
			if n != m {
				excluded[block] = true
				continue
			}
			cur.enter(&doc.Addr{Addr: off, Name: block})
			known[block] = cur.addr
			d.Add(cur.addr)
			d.Size = off
			continue
		}
		if !strings.HasSuffix(key, "_MASK") {
			continue
		}
		a := cur.addr
		field, ok := cur.field(key)
		if ok && shadowed(key, a.Name, excluded) {
			continue
		}
		if !ok {
			var note string
			a, note = guessBlock(key, known, excluded, cur.addr)
			if a == nil {
				continue
			}
			notify("%s", note)
			field = strings.TrimSuffix(key, "_MASK")
		}
		mask, ok, err := maskValue(t, val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if !ok || mask == 0 {
			continue
		}
		r, err := doc.FromMask(mask, field)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		a.Add(r)
	}
	return d, nil
}

// shadowed reports whether the mask macro key belongs to an excluded register
// whose name extends block, e.g. LDO_CTRL_VSEL_MASK while LDO is active.
func shadowed(key, block string, excluded map[string]bool) bool {
	for name := range excluded {
		if len(name) <= len(block) {
			continue
		}
		if _, ok := fieldOf(key, name); ok {
			return true
		}
	}
	return false
}

// guessBlock picks the register for a mask macro that does not follow its
// register definition. Masks of excluded registers are recognized by their
// name prefix and dropped silently. Otherwise the first underscore delimited
// token of key is taken as the register name, falling back to the active
// register cur. It returns nil if there is no candidate, or the register and
// a diagnostic describing the guess.
func guessBlock(key string, known map[string]*doc.Addr, excluded map[string]bool, cur *doc.Addr) (*doc.Addr, string) {
	for name := range excluded {
		if _, ok := fieldOf(key, name); ok {
			return nil, ""
		}
	}
	guess, _, _ := strings.Cut(key, "_")
	if excluded[guess] {
		return nil, ""
	}
	a := known[guess]
	if a == nil {
		a = cur
	}
	if a == nil {
		return nil, ""
	}
	return a, fmt.Sprintf(
		"out-of-order mask %s is assumed to belong to %s", key, a.Name,
	)
}

// parseEncPMUReg parses "ENC_PMU_REG(FIFO_MODE, MAPn, 0xOFFSET)".
func parseEncPMUReg(val string) (m int, off uint64, err error) {
	args := strings.Split(literal(val), ",")
	if len(args) < 3 {
		return 0, 0, fmt.Errorf("bad %s: %q", encPMUReg, val)
	}
	mapName := strings.TrimSpace(args[1])
	if !strings.HasPrefix(mapName, "MAP") {
		return 0, 0, fmt.Errorf("bad register map %q", mapName)
	}
	if m, err = strconv.Atoi(mapName[3:]); err != nil {
		return 0, 0, fmt.Errorf("bad register map %q", mapName)
	}
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(args[2]), ")"))
	if off, err = parseHex(s); err != nil {
		return 0, 0, fmt.Errorf("bad offset %q", s)
	}
	return m, off, nil
}

// maskValue evaluates the replacement text of a mask macro. It accepts a hex
// literal or "(WIDTH << SHIFT)" where SHIFT is a number or the name of a
// macro defined as a number. ok is false if val has neither form.
func maskValue(t *macro.Table, val string) (mask uint64, ok bool, err error) {
	val = literal(val)
	if mask, err := parseHex(val); err == nil {
		return mask, true, nil
	}
	lhs, rhs, found := strings.Cut(val, "<<")
	if !found {
		return 0, false, nil
	}
	width, err := parseNum(lhs)
	if err != nil {
		return 0, false, fmt.Errorf("bad mask width %q", lhs)
	}
	shift, err := parseNum(rhs)
	if err != nil {
		name := strings.Trim(rhs, " ()")
		sval, lerr := t.Lookup(name)
		if lerr != nil {
			return 0, false, lerr
		}
		if shift, err = parseNum(literal(sval)); err != nil {
			return 0, false, fmt.Errorf("bad shift %s = %q", name, sval)
		}
	}
	if shift >= 64 {
		return 0, false, fmt.Errorf("shift %d out of range", shift)
	}
	return width << shift, true, nil
}

// parseNum parses a decimal or 0x prefixed hexadecimal number, ignoring
// surrounding parentheses.
func parseNum(s string) (uint64, error) {
	s = strings.Trim(s, " ()")
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

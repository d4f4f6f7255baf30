// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hdrdoc

import (
	"fmt"
	"strings"

	"github.com/embeddedgo/regdump/doc"
	"github.com/embeddedgo/regdump/macro"
)

// BuildRDB documents the block at the absolute address base using the
// macros of a Kona RDB header. A _MASK macro that does not belong to the
// register of the last _OFFSET macro is an ErrOutOfOrder error. Reserved and
// zero masks are skipped.
func BuildRDB(t *macro.Table, name string, base uint64) (*doc.Doc, error) {
	d := doc.New(name, base, 0)
	var cur cursor
	for key, val := range t.All() {
		switch {
		case strings.HasSuffix(key, "_OFFSET"):
			off, err := parseHex(val)
			if err != nil {
				return nil, fmt.Errorf("%s: bad offset %q: %v", key, val, err)
			}
			cur.enter(&doc.Addr{Addr: off, Name: strings.TrimSuffix(key, "_OFFSET")})
			d.Add(cur.addr)
			d.Size = off
		case strings.HasSuffix(key, "_MASK") && !strings.HasSuffix(key, "_RESERVED_MASK"):
			field, ok := cur.field(key)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrOutOfOrder, key)
			}
			mask, err := parseHex(val)
			if err != nil {
				return nil, fmt.Errorf("%s: bad mask %q: %v", key, val, err)
			}
			if mask == 0 {
				continue
			}
			r, err := doc.FromMask(mask, field)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			cur.addr.Add(r)
		}
	}
	return d, nil
}

// LoadRDB reads the RDB header at path. The doc is named after the file.
func LoadRDB(path string, base uint64) (*doc.Doc, error) {
	t, err := macro.ParseFile(path)
	if err != nil {
		return nil, err
	}
	d, err := BuildRDB(t, headerName(path), base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hdrdoc

import (
	"context"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/embeddedgo/regdump/doc"
	"github.com/embeddedgo/regdump/internal/meta"
	"github.com/embeddedgo/regdump/macro"
)

// Component is a block listed in the system map:
//
//	#define CHIPREGS_BASE_ADDR 0x35004000 /* brcm_rdb_chipreg.h */
type Component struct {
	Name   string
	Base   uint64
	Header string // path of the RDB header
}

// ParseSysmap returns the components of the sysmap macro table in file
// order. Header paths are joined with dir. Macros without an address and a
// header comment are skipped.
func ParseSysmap(t *macro.Table, dir string) []Component {
	var comps []Component
	for name, val := range t.All() {
		i := strings.Index(val, "/*")
		if i < 0 {
			continue
		}
		base, err := meta.ParseHex(strings.TrimSpace(val[:i]))
		if err != nil {
			continue
		}
		parts := strings.Split(val, "*")
		hdr := strings.TrimSpace(parts[1])
		if hdr == "" {
			continue
		}
		comps = append(comps, Component{
			Name:   name,
			Base:   base,
			Header: filepath.Join(dir, hdr),
		})
	}
	return comps
}

// LoadSysmap reads the sysmap header at path.
func LoadSysmap(path string) ([]Component, error) {
	t, err := macro.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSysmap(t, filepath.Dir(path)), nil
}

// Resolve returns the header of the first component at base. Not every block
// is documented so a miss is reported with ok == false, not as an error.
func Resolve(comps []Component, base uint64) (header string, ok bool) {
	for _, c := range comps {
		if c.Base == base {
			return c.Header, true
		}
	}
	return "", false
}

// ResolveFile is Resolve for the sysmap header at path.
func ResolveFile(path string, base uint64) (header string, ok bool, err error) {
	comps, err := LoadSysmap(path)
	if err != nil {
		return "", false, err
	}
	header, ok = Resolve(comps, base)
	return header, ok, nil
}

// Entry is the result of documenting one component.
type Entry struct {
	Component
	Doc *doc.Doc
	Err error // the header is missing or malformed
}

// WalkSysmap builds the RDB doc of every component running at most limit
// builds at the same time (no limit if limit <= 0). The entries are returned
// in the order of comps. Only the cancellation of ctx fails the walk.
func WalkSysmap(ctx context.Context, comps []Component, limit int) ([]Entry, error) {
	entries := make([]Entry, len(comps))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, c := range comps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := LoadRDB(c.Header, c.Base)
			entries[i] = Entry{Component: c, Doc: d, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

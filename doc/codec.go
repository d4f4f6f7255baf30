// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/embeddedgo/regdump/internal/meta"
)

// Encode writes d in the doc text format:
//
//	fmt doc
//	name brcm_rdb_chipreg
//	type mmio
//	base_addr 0x35004000
//	size 0x1f0
//	addr_bits 32
//	val_bits 32
//	--- header_end ---
//	0x0 CHIPREG_CHIPID_REG
//	  b 0 11 REVID
//	  b 12 31 CHIPID
//
//	0x4 ...
//
// Registers are sorted by address and ranges by start bit. A name is the
// rest of its line, so it may contain spaces but not leading or trailing
// ones.
func Encode(w io.Writer, d *Doc) error {
	bw := bufio.NewWriter(w)
	m := meta.Meta{
		Fmt:      "doc",
		Type:     d.Type,
		BaseAddr: d.BaseAddr,
		Size:     d.Size,
		AddrBits: d.AddrBits,
		ValBits:  d.ValBits,
		Name:     d.Name,
	}
	if err := meta.Write(bw, &m); err != nil {
		return err
	}
	addrs := slices.Clone(d.addrs)
	slices.SortFunc(addrs, func(a, b *Addr) int {
		switch {
		case a.Addr < b.Addr:
			return -1
		case a.Addr > b.Addr:
			return 1
		}
		return 0
	})
	for i, a := range addrs {
		if i != 0 {
			bw.WriteByte('\n')
		}
		fmt.Fprintf(bw, "%#x %s\n", a.Addr, a.Name)
		ranges := slices.Clone(a.Ranges)
		slices.SortStableFunc(ranges, func(a, b Range) int {
			return int(a.Start) - int(b.Start)
		})
		for _, r := range ranges {
			fmt.Fprintf(bw, "  b %d %d %s\n", r.Start, r.End, r.Name)
		}
	}
	return bw.Flush()
}

// Decode reads a doc written by Encode. Unknown header lines are ignored.
func Decode(r io.Reader) (*Doc, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	m, body, err := meta.Parse(lines, "doc")
	if err != nil {
		return nil, err
	}
	d := New(m.Name, m.BaseAddr, m.Size)
	d.Type = m.Type
	d.AddrBits = m.AddrBits
	d.ValBits = m.ValBits
	var cur *Addr
	for n := body; n < len(lines); n++ {
		f := strings.Fields(lines[n])
		if len(f) == 0 {
			continue
		}
		if f[0] == "b" {
			if cur == nil {
				return nil, fmt.Errorf(
					"line %d: %w: bit range before any address",
					n+1, ErrMalformedDoc,
				)
			}
			r, err := parseRange(f[1:], afterFields(lines[n], 4))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", n+1, ErrMalformedDoc, err)
			}
			cur.Add(r)
			continue
		}
		addr, err := meta.ParseHex(f[0])
		if err != nil {
			return nil, fmt.Errorf(
				"line %d: %w: bad address %q", n+1, ErrMalformedDoc, f[0],
			)
		}
		cur = &Addr{Addr: addr, Name: afterFields(lines[n], 1)}
		d.Add(cur)
	}
	return d, nil
}

func parseRange(f []string, name string) (Range, error) {
	if len(f) < 2 {
		return Range{}, fmt.Errorf("want: b START END NAME")
	}
	start, err := strconv.ParseUint(f[0], 10, 8)
	if err != nil {
		return Range{}, err
	}
	end, err := strconv.ParseUint(f[1], 10, 8)
	if err != nil {
		return Range{}, err
	}
	if start > end {
		return Range{}, fmt.Errorf("start bit %d above end bit %d", start, end)
	}
	return Range{
		Start: uint(start),
		End:   uint(end),
		Name:  name,
	}, nil
}

// afterFields returns the text of line that follows its first n fields.
func afterFields(line string, n int) string {
	s := strings.TrimSpace(line)
	for ; n > 0; n-- {
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			return ""
		}
		s = strings.TrimLeftFunc(s[i:], unicode.IsSpace)
	}
	return s
}

// Load reads the doc file at path.
func Load(path string) (*Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Save writes d to the file at path.
func Save(path string, d *Doc) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = Encode(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

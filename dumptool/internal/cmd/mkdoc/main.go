// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mkdoc

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/embeddedgo/regdump/doc"
	"github.com/embeddedgo/regdump/dumptool/internal/util"
	"github.com/embeddedgo/regdump/hdrdoc"
	"github.com/embeddedgo/regdump/macro"
)

const Descr = "build a register doc from a vendor header or print a doc"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n"+
				"  %[1]s [OPTIONS] -base ADDR [RDB_HEADER]\n"+
				"  %[1]s [OPTIONS] -pmu -map N PMU_HEADER\n"+
				"  %[1]s -show DOC\n"+
				"Options:\n",
			cmd,
		)
		fs.PrintDefaults()
	}
	base := fs.String("base", "", "absolute base `address` of the RDB block")
	sysmap := fs.String(
		"sysmap", "",
		"system map `header` used to find the RDB header of the -base block\n"+
			"(default $"+util.SysmapEnv+")",
	)
	pmu := fs.Bool("pmu", false, "read a BCM590xx PMU header")
	pmuMap := fs.Int("map", 0, "I2C register `map` (0 or 1) documented by -pmu")
	show := fs.Bool("show", false, "print the register table of a doc file")
	out := fs.String("o", "", "write the doc to `file` instead of stdout")
	fs.Parse(args)
	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(1)
	}

	if *show {
		if fs.NArg() != 1 {
			fs.Usage()
			os.Exit(1)
		}
		d, err := doc.Load(fs.Arg(0))
		util.FatalErr("", err)
		util.FatalErr("", Show(os.Stdout, d))
		return
	}

	var d *doc.Doc
	if *pmu {
		if fs.NArg() != 1 {
			fs.Usage()
			os.Exit(1)
		}
		if *pmuMap != 0 && *pmuMap != 1 {
			util.Fatal("bad I2C map: %d", *pmuMap)
		}
		d = loadPMU(fs.Arg(0), *pmuMap)
	} else {
		if *base == "" {
			fs.Usage()
			os.Exit(1)
		}
		addr, err := util.ParseAddr(*base)
		util.FatalErr("-base", err)
		hdr := fs.Arg(0)
		if hdr == "" {
			sm := util.Sysmap(*sysmap)
			if sm == "" {
				util.Fatal("no RDB header and no system map given")
			}
			var ok bool
			hdr, ok, err = hdrdoc.ResolveFile(sm, addr)
			util.FatalErr("", err)
			if !ok {
				util.Fatal("no RDB header found for base address %#x", addr)
			}
		}
		d, err = hdrdoc.LoadRDB(hdr, addr)
		util.FatalErr("", err)
	}
	if *out == "" {
		util.FatalErr("", doc.Encode(os.Stdout, d))
		return
	}
	util.FatalErr("", doc.Save(*out, d))
}

func loadPMU(path string, m int) *doc.Doc {
	t, err := macro.ParseFile(path)
	util.FatalErr("", err)
	name := strings.TrimSuffix(filepath.Base(path), ".h")
	d, err := hdrdoc.BuildPMU(t, name, m, util.Warn)
	util.FatalErr(path, err)
	return d
}

// Show prints d as a register table, one line per register followed by one
// line per bit range.
func Show(w io.Writer, d *doc.Doc) error {
	fmt.Fprintf(w, "%s (%s, %d-bit)\n", d, d.Type, d.ValBits)
	tw := new(tabwriter.Writer)
	tw.Init(w, 0, 0, 1, ' ', 0)
	addrs := slices.Clone(d.Addrs())
	slices.SortFunc(addrs, func(a, b *doc.Addr) int {
		switch {
		case a.Addr < b.Addr:
			return -1
		case a.Addr > b.Addr:
			return 1
		}
		return 0
	})
	for _, a := range addrs {
		fmt.Fprintf(tw, "  0x%03X\t%#x\t %s\t\n", a.Addr, d.BaseAddr+a.Addr, a.Name)
		ranges := slices.Clone(a.Ranges)
		slices.SortStableFunc(ranges, func(x, y doc.Range) int {
			return int(y.Start) - int(x.Start)
		})
		for _, r := range ranges {
			bits := fmt.Sprintf("%d", r.Start)
			if r.End != r.Start {
				bits = fmt.Sprintf("%d:%d", r.End, r.Start)
			}
			fmt.Fprintf(tw, "\t\t   %s\t %s\n", bits, r.Name)
		}
	}
	return tw.Flush()
}

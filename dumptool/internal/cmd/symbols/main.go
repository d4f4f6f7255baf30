// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbols

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/embeddedgo/regdump/dumptool/internal/util"
	"github.com/embeddedgo/regdump/hdrdoc"
)

const Descr = "print the absolute address of every documented register"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS]\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	sysmap := fs.String(
		"sysmap", "",
		"system map `header` (default $"+util.SysmapEnv+")",
	)
	verbose := fs.Bool("v", false, "warn about blocks that cannot be documented")
	fs.Parse(args)
	if fs.NArg() != 0 {
		fs.Usage()
		os.Exit(1)
	}
	sm := util.Sysmap(*sysmap)
	if sm == "" {
		util.Fatal("no system map given")
	}
	comps, err := hdrdoc.LoadSysmap(sm)
	util.FatalErr("", err)
	entries, err := hdrdoc.WalkSysmap(context.Background(), comps, runtime.NumCPU())
	util.FatalErr("", err)
	if *verbose {
		for _, e := range entries {
			if e.Err != nil {
				util.Warn("%s: %v", e.Name, e.Err)
			}
		}
	}
	util.FatalErr("", Write(os.Stdout, entries))
}

// Write writes one "NAME ADDR" line for every register documented in
// entries, in the format of the Ghidra ImportSymbolsScript.
func Write(w io.Writer, entries []hdrdoc.Entry) error {
	for _, e := range entries {
		if e.Doc == nil {
			continue
		}
		for _, a := range e.Doc.Addrs() {
			_, err := fmt.Fprintf(w, "%s %#x\n", a.Name, e.Doc.BaseAddr+a.Addr)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

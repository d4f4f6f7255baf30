// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

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

const Descr = "print the shell script that dumps every block of the system map"

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
	script := fs.String("script", "./devmem-read-block.sh", "block dump `command`")
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
	util.FatalErr("", Write(os.Stdout, *script, entries))
}

// Write writes the commands that dump the register block of every entry.
// The output of every block starts with a "!! NAME" line so the resulting
// log can be cut by the split command.
func Write(w io.Writer, script string, entries []hdrdoc.Entry) error {
	for _, e := range entries {
		var err error
		if e.Doc == nil {
			_, err = fmt.Fprintf(w, "# %s\n# failed to find rdb\n", e.Name)
		} else {
			_, err = fmt.Fprintf(
				w, "# %s\necho ''\necho '!! %s'\nsudo %s %#x %#x\n",
				e.Name, e.Name, script, e.Base, e.Doc.Size,
			)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/embeddedgo/regdump/dump"
	"github.com/embeddedgo/regdump/dumptool/internal/util"
)

const Descr = "split the output of a dumpall script into per block dumps"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s SOURCE TARGET_DIR\n", cmd)
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(1)
	}
	src, dir := fs.Arg(0), fs.Arg(1)
	f, err := os.Open(src)
	util.FatalErr("", err)
	parts, err := dump.Split(f)
	f.Close()
	util.FatalErr(src, err)
	util.FatalErr("", os.MkdirAll(dir, 0o755))
	for _, p := range parts {
		if p.Name == "" || p.Name != filepath.Base(p.Name) {
			util.Warn("%s: skipping block with bad name %q", src, p.Name)
			continue
		}
		err := os.WriteFile(filepath.Join(dir, p.Name+".val"), []byte(p.Text), 0o644)
		util.FatalErr("", err)
	}
}

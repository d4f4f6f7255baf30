// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/embeddedgo/regdump/doc"
	"github.com/embeddedgo/regdump/dump"
	"github.com/embeddedgo/regdump/dumptool/internal/util"
	"github.com/embeddedgo/regdump/hdrdoc"
	"github.com/embeddedgo/regdump/macro"
)

const Descr = "compare two register dumps"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] OLD NEW\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	docFile := fs.String("doc", "", "annotate registers using the doc `file`")
	sysmap := fs.String(
		"sysmap", "",
		"find the RDB header of OLD in the system map `header`\n"+
			"(default $"+util.SysmapEnv+")",
	)
	pmu := fs.String("pmu", "", "annotate registers using the PMU `header`")
	pmuMap := fs.Int("map", 0, "I2C register `map` documented by -pmu")
	all := fs.Bool("all", false, "also report registers that appear only in NEW")
	html := fs.String("html", "", "write an HTML report to `file`")
	open := fs.Bool("open", false, "open the HTML report with xdg-open")
	fs.Parse(args)
	if fs.NArg() != 2 || *open && *html == "" {
		fs.Usage()
		os.Exit(1)
	}
	a, err := dump.Load(fs.Arg(0))
	util.FatalErr("", err)
	b, err := dump.Load(fs.Arg(1))
	util.FatalErr("", err)
	if a.Header.Type != b.Header.Type || a.Header.ValBits != b.Header.ValBits {
		util.Warn(
			"dumps differ in type or value width: %s/%d, %s/%d",
			a.Header.Type, a.Header.ValBits, b.Header.Type, b.Header.ValBits,
		)
	}
	var d *doc.Doc
	switch {
	case *docFile != "":
		d, err = doc.Load(*docFile)
		util.FatalErr("", err)
	case *pmu != "":
		if *pmuMap != 0 && *pmuMap != 1 {
			util.Fatal("bad I2C map: %d", *pmuMap)
		}
		t, err := macro.ParseFile(*pmu)
		util.FatalErr("", err)
		name := strings.TrimSuffix(filepath.Base(*pmu), ".h")
		d, err = hdrdoc.BuildPMU(t, name, *pmuMap, util.Warn)
		util.FatalErr(*pmu, err)
	default:
		d = resolveDoc(util.Sysmap(*sysmap), a.Header.BaseAddr)
	}
	mode := dump.Baseline
	if *all {
		mode = dump.Symmetric
	}
	changes := dump.Diff(a, b, mode)

	rep := NewReport(a, b, d, changes, false)
	rep.Old, rep.New = fs.Arg(0), fs.Arg(1)
	color := isatty.IsTerminal(os.Stdout.Fd())
	util.FatalErr("", WriteText(os.Stdout, rep, color))
	if *html == "" {
		return
	}
	rep = NewReport(a, b, d, changes, true)
	rep.Old, rep.New = fs.Arg(0), fs.Arg(1)
	w, err := os.Create(*html)
	util.FatalErr("", err)
	err = WriteHTML(w, rep)
	if err1 := w.Close(); err == nil {
		err = err1
	}
	util.FatalErr(*html, err)
	if *open {
		util.FatalErr("xdg-open", exec.Command("xdg-open", *html).Start())
	}
}

// resolveDoc builds the RDB doc of the block at base. Registers are not
// annotated if there is no system map or the block cannot be documented.
func resolveDoc(sysmap string, base uint64) *doc.Doc {
	if sysmap == "" {
		return nil
	}
	hdr, ok, err := hdrdoc.ResolveFile(sysmap, base)
	if err != nil {
		util.Warn("%v", err)
		return nil
	}
	if !ok {
		util.Warn("no RDB header found for base address %#x", base)
		return nil
	}
	d, err := hdrdoc.LoadRDB(hdr, base)
	if err != nil {
		util.Warn("%v", err)
		return nil
	}
	return d
}

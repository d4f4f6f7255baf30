// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package image

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/embeddedgo/regdump/dump"
	"github.com/embeddedgo/regdump/dumptool/internal/util"
)

const (
	DescrBin = "convert a dump to a binary memory image"
	DescrHex = "convert a dump to the Intel HEX format"
)

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] DUMP [%s]\nOptions:\n",
			cmd, strings.ToUpper(cmd),
		)
		fs.PrintDefaults()
	}
	endian := fs.String("endian", "little", "byte order of the values: little, big")
	var pad *uint
	if cmd == "bin" {
		pad = fs.Uint("pad", 0xff, "`byte` used to fill unreadable registers and gaps")
	}
	fs.Parse(args)
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	var order binary.ByteOrder
	switch *endian {
	case "little", "le":
		order = binary.LittleEndian
	case "big", "be":
		order = binary.BigEndian
	default:
		util.Fatal("unknown byte order: %s", *endian)
	}
	in := fs.Arg(0)
	out := util.OutFile(in, ".val", fs.Arg(1), "."+cmd)
	d, err := dump.Load(in)
	util.FatalErr("", err)
	sections, err := d.Sections(order)
	util.FatalErr(in, err)
	if len(sections) == 0 {
		util.Fatal("%s: no readable registers", in)
	}
	w, err := os.Create(out)
	util.FatalErr("", err)
	defer w.Close()
	switch cmd {
	case "bin":
		if *pad > 0xff {
			util.Fatal("pad byte out of range: %#x", *pad)
		}
		_, err = sections.Flatten(w, byte(*pad))
		util.FatalErr("flatten", err)
	default:
		err = sections.WriteIntelHex(w)
		util.FatalErr("dumpintelhex", err)
	}
}

// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Dumptool documents and compares register dumps.
package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/embeddedgo/regdump/dumptool/internal/cmd/cmds"
	"github.com/embeddedgo/regdump/dumptool/internal/cmd/diff"
	"github.com/embeddedgo/regdump/dumptool/internal/cmd/image"
	"github.com/embeddedgo/regdump/dumptool/internal/cmd/mkdoc"
	"github.com/embeddedgo/regdump/dumptool/internal/cmd/plan"
	"github.com/embeddedgo/regdump/dumptool/internal/cmd/split"
	"github.com/embeddedgo/regdump/dumptool/internal/cmd/symbols"
)

type tool struct {
	descr string
	main  func(cmd string, args []string)
}

var tools = map[string]tool{
	"bin":     {image.DescrBin, image.Main},
	"cmds":    {cmds.Descr, cmds.Main},
	"diff":    {diff.Descr, diff.Main},
	"doc":     {mkdoc.Descr, mkdoc.Main},
	"hex":     {image.DescrHex, image.Main},
	"plan":    {plan.Descr, plan.Main},
	"split":   {split.Descr, split.Main},
	"symbols": {symbols.Descr, symbols.Main},
}

func printToolList() {
	names := slices.Sorted(maps.Keys(tools))
	maxLen := 0
	for _, k := range names {
		if maxLen < len(k) {
			maxLen = len(k)
		}
	}
	uw := os.Stderr
	uw.WriteString("Usage:\n  dumptool COMMAND [ARGUMENTS]\n\n")
	uw.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(uw, "  %*s  %s\n", maxLen, name, tools[name].descr)
	}
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" {
		printToolList()
		return
	}
	tool, ok := tools[os.Args[1]]
	if !ok {
		printToolList()
		os.Exit(1)
	}
	tool.main(os.Args[1], os.Args[2:])
}

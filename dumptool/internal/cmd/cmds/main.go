// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmds

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/embeddedgo/regdump/dump"
	"github.com/embeddedgo/regdump/dumptool/internal/util"
)

const Descr = "print the commands that turn the state of one dump into another"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] CURRENT TARGET\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	bus := fs.Uint("bus", 0, "I2C bus `number` passed to i2cset")
	chip := fs.String("chip", "0xFIXME", "I2C chip `address` passed to i2cset")
	sym := fs.Bool("all", false, "also set registers that appear only in TARGET")
	fs.Parse(args)
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(1)
	}
	cur, err := dump.Load(fs.Arg(0))
	util.FatalErr("", err)
	target, err := dump.Load(fs.Arg(1))
	util.FatalErr("", err)
	mode := dump.Baseline
	if *sym {
		mode = dump.Symmetric
	}
	r := Replay{Bus: *bus, Chip: *chip}
	err = r.Write(os.Stdout, cur.Header, dump.Diff(cur, target, mode))
	util.FatalErr("", err)
}

// Replay formats register writes as i2cset or devmem2 commands.
type Replay struct {
	Bus  uint
	Chip string
}

// Write writes one command per change. The bus type and value size are taken
// from h.
func (r Replay) Write(w io.Writer, h dump.Header, changes []dump.Change) error {
	var format func(addr, val uint64) string
	switch h.Type {
	case dump.I2C:
		format = func(addr, val uint64) string {
			return fmt.Sprintf("sudo i2cset -f -y %d %s %#x %#x", r.Bus, r.Chip, addr, val)
		}
	case dump.MMIO:
		var mode string
		switch h.ValBits {
		case 32:
			mode = "w"
		case 16:
			mode = "h"
		case 8:
			mode = "b"
		default:
			return fmt.Errorf("devmem2 cannot write %d-bit values", h.ValBits)
		}
		format = func(addr, val uint64) string {
			return fmt.Sprintf("sudo devmem2 %#x %s %#x", addr, mode, val)
		}
	default:
		return fmt.Errorf("no write command for %s registers", h.Type)
	}
	for _, c := range changes {
		v, ok := c.New.Get()
		var err error
		if ok {
			_, err = fmt.Fprintln(w, format(c.Addr, v))
		} else {
			_, err = fmt.Fprintf(w, "# %#x unreadable\n", c.Addr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

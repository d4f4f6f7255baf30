// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hdrdoc builds register docs from vendor C headers.
//
// Two header dialects are supported. Broadcom Kona RDB headers describe
// every register of a block with a sequence of macros:
//
//	#define CHIPREG_CHIPID_REG_OFFSET                 0x00000000
//	#define CHIPREG_CHIPID_REG_TYPE                   UInt32
//	#define CHIPREG_CHIPID_REG_RESERVED_MASK          0x00000000
//	#define    CHIPREG_CHIPID_REG_CHIPID_SHIFT        12
//	#define    CHIPREG_CHIPID_REG_CHIPID_MASK         0xFFFFF000
//
// BCM590xx PMU headers encode the I2C map and offset of a register and
// describe its fields with literal or shifted masks:
//
//	#define PMU_REG_HOSTCTRL1    ENC_PMU_REG(FIFO_MODE, MAP0, 0x01)
//	#define HOSTCTRL1_SW_SHDWN_MASK  0x04
//	#define HOSTCTRL1_SYS_WDT_CLR_SHIFT  1
//	#define HOSTCTRL1_SYS_WDT_CLR_MASK  (1 << HOSTCTRL1_SYS_WDT_CLR_SHIFT)
//
// The system map header (brcm_rdb_sysmap.h) lists the base address of every
// block together with the RDB header that documents it.
package hdrdoc

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/embeddedgo/regdump/doc"
	"github.com/embeddedgo/regdump/internal/meta"
)

var ErrOutOfOrder = errors.New("mask macro outside its register block")

// Notifier receives non-fatal diagnostics.
type Notifier func(format string, args ...any)

func headerName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// cursor is the block scanning state: either no register is active or the
// masks that follow belong to the register in addr.
type cursor struct {
	addr *doc.Addr
}

func (c *cursor) enter(a *doc.Addr) { c.addr = a }

// field returns the field name of the mask macro key if key belongs to the
// active register.
func (c *cursor) field(key string) (string, bool) {
	if c.addr == nil {
		return "", false
	}
	return fieldOf(key, c.addr.Name)
}

func fieldOf(key, block string) (string, bool) {
	s := strings.TrimSuffix(key, "_MASK")
	if s == block {
		return block, true
	}
	if !strings.HasPrefix(s, block+"_") {
		return "", false
	}
	return s[len(block)+1:], true
}

// literal returns the replacement text without a trailing C comment.
func literal(val string) string {
	if i := strings.Index(val, "/*"); i >= 0 {
		val = val[:i]
	}
	if i := strings.Index(val, "//"); i >= 0 {
		val = val[:i]
	}
	return strings.TrimSpace(val)
}

func parseHex(val string) (uint64, error) {
	return meta.ParseHex(literal(val))
}

// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package macro

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const header = `/* brcm_rdb_chipreg.h */
#ifndef __BRCM_RDB_CHIPREG_H__
#define __BRCM_RDB_CHIPREG_H__

#define CHIPREG_CHIPID_REG_OFFSET                     0x00000000
#define	CHIPREG_CHIPID_REG_TYPE	UInt32
    #define    CHIPREG_CHIPID_REG_CHIPID_MASK     0xFFFFF000 /* id */
#define MULTI (1 << \
	3)
int x;
#endif
`

func TestParse(t *testing.T) {
	tab, err := Parse(strings.NewReader(header))
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]string{
		{"__BRCM_RDB_CHIPREG_H__", ""},
		{"CHIPREG_CHIPID_REG_OFFSET", "0x00000000"},
		{"CHIPREG_CHIPID_REG_TYPE", "UInt32"},
		{"CHIPREG_CHIPID_REG_CHIPID_MASK", "0xFFFFF000 /* id */"},
		{"MULTI", `(1 << \`},
	}
	var got [][2]string
	for k, v := range tab.All() {
		got = append(got, [2]string{k, v})
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
	if tab.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", tab.Len(), len(want))
	}
}

func TestLookup(t *testing.T) {
	tab, err := Parse(strings.NewReader(header))
	if err != nil {
		t.Fatal(err)
	}
	v, err := tab.Lookup("CHIPREG_CHIPID_REG_TYPE")
	if err != nil || v != "UInt32" {
		t.Errorf("Lookup() = %q, %v", v, err)
	}
	if _, err := tab.Lookup("NOPE"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Lookup(NOPE) error = %v, want ErrKeyNotFound", err)
	}
}

func TestRedefinition(t *testing.T) {
	tab, err := Parse(strings.NewReader("#define A 1\n#define B 2\n#define A 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for k := range tab.All() {
		names = append(names, k)
	}
	if strings.Join(names, ",") != "A,B" {
		t.Errorf("order = %v, want [A B]", names)
	}
	if v, _ := tab.Lookup("A"); v != "3" {
		t.Errorf("A = %q, want 3", v)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.h")
	if err := os.WriteFile(path, []byte(header), 0o644); err != nil {
		t.Fatal(err)
	}
	tab, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tab.Len())
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.h")); err == nil {
		t.Error("ParseFile(missing) succeeded")
	}
}

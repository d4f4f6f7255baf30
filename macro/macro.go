// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package macro extracts the object-like macro definitions from C header
// files.
//
// Every line whose first token is #define yields one entry: the second token
// is the name and the remaining tokens, joined by single spaces, are the
// replacement text. Nothing is expanded and comments are kept. A backslash
// continued definition is taken literally, trailing backslash included, and
// its continuation line is scanned as an unrelated line.
package macro

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

var ErrKeyNotFound = errors.New("macro not defined")

// Table maps macro names to their replacement text, keeping the order of
// the definitions in the file. A name defined more than once keeps its first
// position and its last value.
type Table struct {
	names []string
	vals  map[string]string
}

// Parse reads header text from r.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{vals: make(map[string]string)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.ReplaceAll(sc.Text(), "\t", " ")
		f := strings.Fields(line)
		if len(f) < 2 || f[0] != "#define" {
			continue
		}
		t.Set(f[1], strings.Join(f[2:], " "))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseFile reads the header file at path.
func ParseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Set defines name. It is used by Parse and by tests that build tables by
// hand.
func (t *Table) Set(name, val string) {
	if t.vals == nil {
		t.vals = make(map[string]string)
	}
	if _, ok := t.vals[name]; !ok {
		t.names = append(t.names, name)
	}
	t.vals[name] = val
}

// Lookup returns the replacement text of name.
func (t *Table) Lookup(name string) (string, error) {
	v, ok := t.vals[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	return v, nil
}

func (t *Table) Len() int { return len(t.names) }

// All iterates over the definitions in file order.
func (t *Table) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, name := range t.names {
			if !yield(name, t.vals[name]) {
				return
			}
		}
	}
}

// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/embeddedgo/regdump/doc"
	"github.com/embeddedgo/regdump/dump"
)

// Field is the value of a documented bit range in both dumps.
type Field struct {
	Range   doc.Range
	Old     string
	New     string
	Changed bool
}

// Row describes one register address of the report.
type Row struct {
	Addr    uint64
	Name    string
	Old     dump.Value
	New     dump.Value
	Changed bool
	Fields  []Field
}

// Report is the annotated comparison of two dumps.
type Report struct {
	Old, New string // dump names
	Doc      string // doc description, empty if none
	Rows     []Row
	Changes  int
}

// NewReport annotates changes with the register documentation d, which may
// be nil. If all is true every address of a is added to the report, not only
// the changed ones.
func NewReport(a, b *dump.Dump, d *doc.Doc, changes []dump.Change, all bool) *Report {
	rep := &Report{Changes: len(changes)}
	if d != nil {
		rep.Doc = d.String()
	}
	changed := make(map[uint64]dump.Change, len(changes))
	for _, c := range changes {
		changed[c.Addr] = c
	}
	var addrs []uint64
	if all {
		addrs = a.Addrs()
		for _, c := range changes {
			if _, ok := a.Data[c.Addr]; !ok {
				addrs = append(addrs, c.Addr)
			}
		}
		slices.Sort(addrs)
	} else {
		for _, c := range changes {
			addrs = append(addrs, c.Addr)
		}
	}
	for _, addr := range addrs {
		row := Row{Addr: addr, Old: a.Data[addr], New: b.Data[addr]}
		if c, ok := changed[addr]; ok {
			row.Old, row.New, row.Changed = c.Old, c.New, true
		}
		if d != nil {
			if ad := d.Describe(addr); ad != nil {
				row.Name = ad.Name
				row.Fields = fields(ad, row.Old, row.New)
			}
		}
		rep.Rows = append(rep.Rows, row)
	}
	return rep
}

func fields(ad *doc.Addr, o, n dump.Value) []Field {
	fs := make([]Field, 0, len(ad.Ranges))
	ov, ook := o.Get()
	nv, nok := n.Get()
	for _, r := range ad.Ranges {
		f := Field{Range: r, Old: "-", New: "-"}
		if ook {
			f.Old = fmt.Sprintf("%#x", r.Extract(ov))
		}
		if nok {
			f.New = fmt.Sprintf("%#x", r.Extract(nv))
		}
		f.Changed = f.Old != f.New
		fs = append(fs, f)
	}
	slices.SortStableFunc(fs, func(x, y Field) int {
		return int(y.Range.Start) - int(x.Range.Start)
	})
	return fs
}

const (
	attrChanged = "\x1b[1;31m"
	attrReset   = "\x1b[0m"
)

// WriteText writes the changed rows of rep as a table followed by the
// changed fields of every row. The new values are highlighted with ANSI
// attributes if color is true.
func WriteText(w io.Writer, rep *Report, color bool) error {
	hl := func(s string) string {
		if color {
			return attrChanged + s + attrReset
		}
		return s
	}
	tw := new(tabwriter.Writer)
	tw.Init(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ADDR\tNAME\tOLD\tNEW")
	for _, r := range rep.Rows {
		if !r.Changed {
			continue
		}
		name := r.Name
		if name == "" {
			name = "?"
		}
		fmt.Fprintf(tw, "%#x\t%s\t%s\t%s\n", r.Addr, name, r.Old, hl(r.New.String()))
		for _, f := range r.Fields {
			if f.Changed {
				fmt.Fprintf(tw, "\t  %s\t%s\t%s\n", f.Range, f.Old, hl(f.New))
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d changed\n", rep.Changes)
	return err
}

//go:embed report.html
var reportHTML string

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"hex": func(v uint64) string { return fmt.Sprintf("%#x", v) },
}).Parse(reportHTML))

// WriteHTML renders rep as a standalone HTML page.
func WriteHTML(w io.Writer, rep *Report) error {
	return reportTmpl.Execute(w, rep)
}

// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dump

import (
	"bufio"
	"io"
	"strings"
)

// Part is the dump of one block cut out of a dumpall log.
type Part struct {
	Name string
	Text string
}

// Split cuts the output of a dumpall script into the dumps of single
// blocks. Every block starts with a "!! NAME" line which is kept as the first
// line of its part. Lines before the first marker are dropped.
func Split(r io.Reader) ([]Part, error) {
	var (
		parts []Part
		cur   *Part
		buf   strings.Builder
	)
	flush := func() {
		if cur != nil {
			cur.Text = buf.String()
			parts = append(parts, *cur)
		}
		buf.Reset()
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "!!") {
			flush()
			cur = &Part{Name: strings.TrimSpace(strings.TrimPrefix(line, "!!"))}
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return parts, nil
}

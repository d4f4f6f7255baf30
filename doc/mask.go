// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

import "math/bits"

// FromMask returns the range covered by the lowest run of set bits in mask.
// Masks are expected to be contiguous. The set bits above the first run of a
// non-contiguous mask are ignored.
func FromMask(mask uint64, name string) (Range, error) {
	if mask == 0 {
		return Range{}, ErrInvalidMask
	}
	start := uint(bits.TrailingZeros64(mask))
	run := uint(bits.TrailingZeros64(^(mask >> start)))
	return Range{Start: start, End: start + run - 1, Name: name}, nil
}

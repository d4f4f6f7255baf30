// Copyright 2026 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func Warn(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
}

func Fatal(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

// FatalErr prints an error description and exits the program if the
// err != nil.
func FatalErr(what string, err error) {
	if err == nil {
		return
	}
	s := err.Error() + "\n"
	if what != "" {
		s = what + ": " + s
	}
	os.Stderr.WriteString(s)
	os.Exit(1)
}

// OutFile infers the name of the output file from the name of the input file
// if outName is an empty string.
func OutFile(inName, inSuffix, outName, outSuffix string) string {
	if outName == "" {
		outName = strings.TrimSuffix(inName, inSuffix) + outSuffix
	}
	return outName
}

// SysmapEnv names the environment variable with the default path of the
// system map header.
const SysmapEnv = "REGDUMP_SYSMAP"

// Sysmap returns path or, if path is empty, the value of SysmapEnv.
func Sysmap(path string) string {
	if path == "" {
		path = os.Getenv(SysmapEnv)
	}
	return path
}

// ParseAddr parses an address given on the command line in any Go integer
// literal format.
func ParseAddr(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 64)
}

// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aligner wraps invocation of the external multiple-sequence
// aligner used to populate the precomputed-MSA similarity oracle (spec
// §4.3.1, §4.9). The alignment algorithm itself is a black box; this
// package only owns building and running the command.
package aligner

import (
	"errors"
	"os/exec"

	"github.com/biogo/external"
)

// ErrMissingRequired is returned by BuildCommand when a required field is
// unset.
var ErrMissingRequired = errors.New("aligner: missing required argument")

// MAFFT defines parameters for an mafft multiple sequence alignment run,
// following bigscape.py's run_mafft: "mafft --auto --quiet --thread N
// domain.fasta > alignment.fasta".
type MAFFT struct {
	// Usage: mafft [options] input > output
	//
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}mafft{{end}}"` // mafft

	Auto  bool `buildarg:"{{if .}}--auto{{end}}"`  // --auto: pick a strategy automatically
	Quiet bool `buildarg:"{{if .}}--quiet{{end}}"` // --quiet: suppress progress output

	Threads int `buildarg:"{{if .}}--thread{{split}}{{.}}{{end}}"` // --thread: worker count

	Input string `buildarg:"{{.}}"` // domain.fasta
}

// BuildCommand returns an exec.Cmd built from the parameters in m. mafft
// writes the alignment to stdout; the caller is responsible for capturing
// it (spec §4.9's "aligned FASTA" contract).
func (m MAFFT) BuildCommand() (*exec.Cmd, error) {
	if m.Input == "" {
		return nil, ErrMissingRequired
	}
	cl := external.Must(external.Build(m))
	return exec.Command(cl[0], cl[1:]...), nil
}

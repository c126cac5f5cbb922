// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aligner

import (
	"strings"
	"testing"
)

func TestBuildCommandRequiresInput(t *testing.T) {
	m := MAFFT{Auto: true}
	if _, err := m.BuildCommand(); err != ErrMissingRequired {
		t.Fatalf("got err %v, want ErrMissingRequired", err)
	}
}

func TestBuildCommandDefaultsAndFlags(t *testing.T) {
	m := MAFFT{Auto: true, Quiet: true, Threads: 4, Input: "domain.fasta"}
	cmd, err := m.BuildCommand()
	if err != nil {
		t.Fatalf("BuildCommand: %v", err)
	}
	if len(cmd.Args) == 0 {
		t.Fatalf("expected a non-empty argument list")
	}
	if cmd.Args[0] != "mafft" {
		t.Errorf("got binary %q, want the default mafft", cmd.Args[0])
	}
	joined := strings.Join(cmd.Args, " ")
	for _, want := range []string{"--auto", "--quiet", "--thread", "4", "domain.fasta"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
}

func TestBuildCommandCustomPath(t *testing.T) {
	m := MAFFT{Cmd: "/opt/bin/mafft", Input: "domain.fasta"}
	cmd, err := m.BuildCommand()
	if err != nil {
		t.Fatalf("BuildCommand: %v", err)
	}
	if cmd.Args[0] != "/opt/bin/mafft" {
		t.Errorf("got binary %q, want the overridden path", cmd.Args[0])
	}
}

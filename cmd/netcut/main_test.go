// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"testing"
)

const fixture = "name_A\tname_B\tgroup_A\tclass_A\tgroup_B\tclass_B\tlog2_sim\traw_distance\tsquared_similarity\tjaccard\tdds\tgk\tdds_non_anchor\tdds_anchor\tS\tS_anchor\n" +
	"A\tB\t\tPKS\t\tPKS\t1\t0.1\t0.81\t1\t1\t1\t0\t0\t0\t0\n" +
	"A\tC\t\tPKS\t\tNRPS\t0\t0.9\t0.01\t0\t0\t0\t0\t0\t0\t0\n" +
	"D\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t\n"

func TestRethresholdKeepsTighterEdgesAndIsolatedRows(t *testing.T) {
	var buf strings.Builder
	total, kept, err := rethreshold(strings.NewReader(fixture), &buf, 0.5)
	if err != nil {
		t.Fatalf("rethreshold: %v", err)
	}
	if total != 3 {
		t.Fatalf("got total %d, want 3", total)
	}
	if kept != 2 {
		t.Fatalf("got kept %d, want 2 (the A/B edge plus the isolated D row)", kept)
	}
	out := buf.String()
	if !strings.Contains(out, "A\tB\t") {
		t.Fatalf("expected A/B edge to survive cutoff 0.5, got %q", out)
	}
	if strings.Contains(out, "A\tC\t") {
		t.Fatalf("expected A/C edge to be dropped at cutoff 0.5, got %q", out)
	}
	if !strings.Contains(out, "\nD\t") {
		t.Fatalf("expected isolated row for D to be kept, got %q", out)
	}
}

func TestRethresholdAllAtLooseCutoff(t *testing.T) {
	var buf strings.Builder
	_, kept, err := rethreshold(strings.NewReader(fixture), &buf, 0.01)
	if err != nil {
		t.Fatalf("rethreshold: %v", err)
	}
	if kept != 3 {
		t.Fatalf("got kept %d, want 3 at a near-zero cutoff", kept)
	}
}

// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seqstore

import (
	"strings"
	"testing"

	"github.com/biogo/biogo/seq"

	"github.com/kortschak/trawl/bgc"
)

func TestParseHeader(t *testing.T) {
	header := "bgc1_ORF3:gid:gene1:pid:prot1:loc:10:40:strand:+"
	g, err := ParseHeader(header)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if g.BGC != "bgc1" || g.ORF != "ORF3" || g.GeneID != "gene1" || g.Protein != "prot1" {
		t.Errorf("got %+v, want BGC=bgc1 ORF=ORF3 GeneID=gene1 Protein=prot1", g)
	}
	if g.Start != 10 || g.End != 40 {
		t.Errorf("got Start=%d End=%d, want 10/40", g.Start, g.End)
	}
	if g.Strand != seq.Plus {
		t.Errorf("got Strand=%v, want seq.Plus", g.Strand)
	}
}

func TestParseHeaderMinusStrand(t *testing.T) {
	g, err := ParseHeader("bgc1_ORF1:gid:gene2:pid:prot2:loc:0:12:strand:-")
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if g.Strand != seq.Minus {
		t.Errorf("got Strand=%v, want seq.Minus", g.Strand)
	}
}

func TestParseHeaderMalformed(t *testing.T) {
	tests := []string{
		"too:few:fields",
		"bgc1_ORF3:wrong:gene1:pid:prot1:loc:10:40:strand:+",
		"bgc1_ORF3:gid:gene1:pid:prot1:loc:notanumber:40:strand:+",
		"bgc1_ORF3:gid:gene1:pid:prot1:loc:10:40:strand:?",
		"noORFmarker:gid:gene1:pid:prot1:loc:10:40:strand:+",
	}
	for _, header := range tests {
		if _, err := ParseHeader(header); err == nil {
			t.Errorf("ParseHeader(%q): expected an error", header)
		}
	}
}

func TestBuildNormalizesResiduesAndSkipsMalformedHeaders(t *testing.T) {
	fasta := ">bgc1_ORF1:gid:gene1:pid:p1:loc:0:10:strand:+\n" +
		"ARNDCQEGHU\n" +
		">malformed header with no colons\n" +
		"ARNDC\n"

	store, warnings, err := Build("bgc1", strings.NewReader(fasta))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1 (the malformed header record)", len(warnings))
	}

	seqVal, ok := store.Sequence("gene1", 0, 10)
	if !ok {
		t.Fatalf("expected a sequence for gene1[0:10]")
	}
	if seqVal != "ARNDCQEGHC" {
		t.Errorf("got %q, want selenocysteine U normalised to C: %q", seqVal, "ARNDCQEGHC")
	}
}

func TestSequenceForOutOfRange(t *testing.T) {
	fasta := ">bgc1_ORF1:gid:gene1:pid:p1:loc:0:5:strand:+\nARNDC\n"
	store, _, err := Build("bgc1", strings.NewReader(fasta))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := store.Sequence("gene1", 0, 50); ok {
		t.Errorf("expected ok=false for an out-of-range envelope")
	}
	if _, ok := store.Sequence("missing-gene", 0, 1); ok {
		t.Errorf("expected ok=false for an unknown gene id")
	}

	occ := bgc.Occurrence{GeneID: "gene1", EnvStart: 0, EnvEnd: 3}
	sub, ok := store.SequenceFor(occ)
	if !ok || sub != "ARN" {
		t.Errorf("SequenceFor = %q, %v; want ARN, true", sub, ok)
	}
}

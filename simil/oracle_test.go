// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simil

import (
	"strings"
	"testing"

	"github.com/kortschak/trawl/bgc"
	"github.com/kortschak/trawl/seqstore"
)

func TestUnavailableOracle(t *testing.T) {
	_, _, ok := UnavailableOracle{}.Similarity("PF1", bgc.Occurrence{}, bgc.Occurrence{})
	if ok {
		t.Errorf("expected UnavailableOracle to always report ok=false")
	}
}

func TestPrecomputedOracleSymmetric(t *testing.T) {
	a := bgc.Occurrence{BGC: "bgc1", Key: "g1:0-10"}
	b := bgc.Occurrence{BGC: "bgc2", Key: "g2:0-10"}

	o := NewPrecomputedOracle()
	o.Add("PF1", a, b, 0.75, 10)

	sim, length, ok := o.Similarity("PF1", a, b)
	if !ok || sim != 0.75 || length != 10 {
		t.Fatalf("Similarity(a,b) = %v,%v,%v, want 0.75,10,true", sim, length, ok)
	}
	sim, length, ok = o.Similarity("PF1", b, a)
	if !ok || sim != 0.75 || length != 10 {
		t.Fatalf("Similarity(b,a) = %v,%v,%v, want symmetric result 0.75,10,true", sim, length, ok)
	}
}

func TestPrecomputedOracleMiss(t *testing.T) {
	a := bgc.Occurrence{BGC: "bgc1", Key: "g1:0-10"}
	b := bgc.Occurrence{BGC: "bgc2", Key: "g2:0-10"}
	c := bgc.Occurrence{BGC: "bgc3", Key: "g3:0-10"}

	o := NewPrecomputedOracle()
	o.Add("PF1", a, b, 0.5, 5)

	if _, _, ok := o.Similarity("PF1", a, c); ok {
		t.Errorf("expected a miss for an unrecorded pair")
	}
	if _, _, ok := o.Similarity("PF2", a, b); ok {
		t.Errorf("expected a miss for an unrecorded family")
	}
}

func TestPairwiseOracleSimilarity(t *testing.T) {
	fastaA := ">bgc1_ORF1:gid:gene1:pid:p1:loc:0:10:strand:+\nARNDCQEGHI\n"
	fastaB := ">bgc2_ORF1:gid:gene2:pid:p2:loc:0:10:strand:+\nARNDCQEGHI\n"

	storeA, _, err := seqstore.Build("bgc1", strings.NewReader(fastaA))
	if err != nil {
		t.Fatalf("Build bgc1: %v", err)
	}
	storeB, _, err := seqstore.Build("bgc2", strings.NewReader(fastaB))
	if err != nil {
		t.Fatalf("Build bgc2: %v", err)
	}

	oracle := NewPairwiseOracle(map[string]*seqstore.Store{"bgc1": storeA, "bgc2": storeB})

	a := bgc.Occurrence{BGC: "bgc1", Key: "x", GeneID: "gene1", EnvStart: 0, EnvEnd: 10}
	b := bgc.Occurrence{BGC: "bgc2", Key: "y", GeneID: "gene2", EnvStart: 0, EnvEnd: 10}

	sim, length, ok := oracle.Similarity("PF1", a, b)
	if !ok {
		t.Fatalf("expected ok=true for two resolvable sequences")
	}
	if sim != 1 {
		t.Errorf("got identity %v, want 1 for identical sequences", sim)
	}
	if length != 10 {
		t.Errorf("got length %d, want 10", length)
	}
}

func TestPairwiseOracleMissingStore(t *testing.T) {
	oracle := NewPairwiseOracle(map[string]*seqstore.Store{})
	a := bgc.Occurrence{BGC: "bgc1", Key: "x", GeneID: "gene1", EnvStart: 0, EnvEnd: 10}
	b := bgc.Occurrence{BGC: "bgc2", Key: "y", GeneID: "gene2", EnvStart: 0, EnvEnd: 10}
	if _, _, ok := oracle.Similarity("PF1", a, b); ok {
		t.Errorf("expected ok=false when neither BGC has a registered sequence store")
	}
}

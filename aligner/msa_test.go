// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aligner

import (
	"strings"
	"testing"
)

func TestReduceAlignmentPairwiseIdentity(t *testing.T) {
	fasta := ">occ1\nAR-NDC\n" +
		">occ2\nAR-NDG\n" +
		">occ3\nARXNDC\n"

	ids, err := ReduceAlignment(strings.NewReader(fasta))
	if err != nil {
		t.Fatalf("ReduceAlignment: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("got %d pairs, want 3 (3 choose 2)", len(ids))
	}

	byPair := make(map[[2]string]Identity, len(ids))
	for _, id := range ids {
		byPair[[2]string{id.A, id.B}] = id
	}

	p12 := byPair[[2]string{"occ1", "occ2"}]
	if p12.Length != 5 {
		t.Errorf("occ1/occ2 length = %d, want 5 (the shared gap column excluded)", p12.Length)
	}
	// A,R,N,D match; C vs G mismatch -> 4/5.
	if p12.Sim != 0.8 {
		t.Errorf("occ1/occ2 identity = %v, want 0.8", p12.Sim)
	}

	p13 := byPair[[2]string{"occ1", "occ3"}]
	if p13.Sim != 1 {
		t.Errorf("occ1/occ3 identity = %v, want 1 (identical apart from the excluded gap column)", p13.Sim)
	}
}

func TestReduceAlignmentLengthMismatch(t *testing.T) {
	fasta := ">occ1\nARND\n>occ2\nARNDC\n"
	if _, err := ReduceAlignment(strings.NewReader(fasta)); err == nil {
		t.Fatalf("expected an error for misaligned (unequal length) records")
	}
}

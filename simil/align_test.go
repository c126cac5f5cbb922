// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simil

import "testing"

func TestGlobalAlignIdentical(t *testing.T) {
	a, b := globalAlign("ARNDC", "ARNDC")
	if a != "ARNDC" || b != "ARNDC" {
		t.Fatalf("got %q/%q, want no gaps for an identical pair", a, b)
	}
	sim, length := percentIdentity(a, b)
	if sim != 1 {
		t.Errorf("got identity %v, want 1", sim)
	}
	if length != 5 {
		t.Errorf("got length %d, want 5", length)
	}
}

func TestGlobalAlignInsertion(t *testing.T) {
	// b has an extra run of residues relative to a; the aligner must
	// introduce a gap in a rather than scattering mismatches.
	alignedA, alignedB := globalAlign("ARND", "ARGGGGND")
	if len(alignedA) != len(alignedB) {
		t.Fatalf("aligned strings differ in length: %d vs %d", len(alignedA), len(alignedB))
	}
	var gaps int
	for i := range alignedA {
		if alignedA[i] == '-' {
			gaps++
		}
	}
	if gaps == 0 {
		t.Errorf("expected at least one gap in the shorter sequence's alignment")
	}
}

func TestPercentIdentityIgnoresGapColumns(t *testing.T) {
	sim, length := percentIdentity("AR-ND", "AR-NC")
	// 4 non-gap columns compared, 3 match (A,R,N), C vs D mismatch.
	if length != 4 {
		t.Fatalf("got length %d, want 4", length)
	}
	if sim != 0.75 {
		t.Errorf("got identity %v, want 0.75", sim)
	}
}

func TestPercentIdentityAllGapColumns(t *testing.T) {
	sim, length := percentIdentity("---", "---")
	if sim != 0 || length != 0 {
		t.Errorf("got %v/%d, want 0/0 for an alignment with no comparable columns", sim, length)
	}
}

func TestSubstitutionUnknownResidue(t *testing.T) {
	if got := substitution('X', 'X'); got != 1 {
		t.Errorf("substitution(X,X) = %d, want 1 (identical unknown residues treated as a match)", got)
	}
	if got := substitution('X', 'A'); got != -2 {
		t.Errorf("substitution(X,A) = %d, want -2", got)
	}
	if got := substitution('A', 'R'); got != pam250[0][1] {
		t.Errorf("substitution(A,R) = %d, want table lookup %d", got, pam250[0][1])
	}
}

func TestGapCost(t *testing.T) {
	if got := gapCost(0); got != 0 {
		t.Errorf("gapCost(0) = %v, want 0", got)
	}
	if got := gapCost(1); got != GapOpen {
		t.Errorf("gapCost(1) = %v, want %v", got, GapOpen)
	}
	if got, want := gapCost(3), GapOpen+2*GapExtend; got != want {
		t.Errorf("gapCost(3) = %v, want %v", got, want)
	}
}

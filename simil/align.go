// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simil

import (
	"math"
	"strings"
)

// Affine gap penalties for the on-the-fly pairwise alignment backend
// (spec §4.3.2): the first residue of a gap costs GapOpen, each
// subsequent residue costs GapExtend.
const (
	GapOpen   = -15.0
	GapExtend = -6.67
)

const negInf = -math.MaxFloat64 / 4

// direction records which of the three Gotoh matrices a cell's optimum
// came from, for traceback.
type direction uint8

const (
	fromDiag direction = iota
	fromUp
	fromLeft
)

// globalAlign performs Gotoh affine-gap global (Needleman-Wunsch) pairwise
// alignment of a and b scored by the PAM250 substitution matrix, and
// returns the two aligned strings (with '-' gap characters inserted).
//
// Symmetry under non-unique optimal alignments is not guaranteed by this
// function alone: spec §4.3.2 requires the caller to sort the sequence
// pair lexicographically before calling it, which PairwiseOracle does.
func globalAlign(a, b string) (alignedA, alignedB string) {
	n, m := len(a), len(b)

	// M: best score ending in a match/mismatch at (i,j).
	// X: best score ending in a gap in b (consuming a only).
	// Y: best score ending in a gap in a (consuming b only).
	M := make([][]float64, n+1)
	X := make([][]float64, n+1)
	Y := make([][]float64, n+1)
	dir := make([][]direction, n+1)
	for i := range M {
		M[i] = make([]float64, m+1)
		X[i] = make([]float64, m+1)
		Y[i] = make([]float64, m+1)
		dir[i] = make([]direction, m+1)
	}

	M[0][0] = 0
	X[0][0] = negInf
	Y[0][0] = negInf
	for i := 1; i <= n; i++ {
		M[i][0] = negInf
		Y[i][0] = negInf
		X[i][0] = gapCost(i)
	}
	for j := 1; j <= m; j++ {
		M[0][j] = negInf
		X[0][j] = negInf
		Y[0][j] = gapCost(j)
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			best := M[i-1][j-1]
			if X[i-1][j-1] > best {
				best = X[i-1][j-1]
			}
			if Y[i-1][j-1] > best {
				best = Y[i-1][j-1]
			}
			M[i][j] = best + float64(substitution(a[i-1], b[j-1]))

			openUp := M[i-1][j] + GapOpen
			extUp := X[i-1][j] + GapExtend
			if extUp > openUp {
				X[i][j] = extUp
			} else {
				X[i][j] = openUp
			}

			openLeft := M[i][j-1] + GapOpen
			extLeft := Y[i][j-1] + GapExtend
			if extLeft > openLeft {
				Y[i][j] = extLeft
			} else {
				Y[i][j] = openLeft
			}

			switch {
			case M[i][j] >= X[i][j] && M[i][j] >= Y[i][j]:
				dir[i][j] = fromDiag
			case X[i][j] >= Y[i][j]:
				dir[i][j] = fromUp
			default:
				dir[i][j] = fromLeft
			}
		}
	}

	var sa, sb strings.Builder
	i, j := n, m
	state := dir[n][m]
	for i > 0 || j > 0 {
		switch {
		case i == 0:
			sa.WriteByte('-')
			sb.WriteByte(b[j-1])
			j--
		case j == 0:
			sa.WriteByte(a[i-1])
			sb.WriteByte('-')
			i--
		default:
			switch state {
			case fromDiag:
				sa.WriteByte(a[i-1])
				sb.WriteByte(b[j-1])
				i--
				j--
				state = dir[i][j]
			case fromUp:
				sa.WriteByte(a[i-1])
				sb.WriteByte('-')
				if X[i-1][j]+GapExtend <= M[i-1][j]+GapOpen {
					state = fromDiag
				}
				i--
			case fromLeft:
				sa.WriteByte('-')
				sb.WriteByte(b[j-1])
				if Y[i][j-1]+GapExtend <= M[i][j-1]+GapOpen {
					state = fromDiag
				}
				j--
			}
		}
	}
	return reverse(sa.String()), reverse(sb.String())
}

func gapCost(length int) float64 {
	if length <= 0 {
		return 0
	}
	return GapOpen + float64(length-1)*GapExtend
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// PercentIdentity computes matched-identical / alignment_length over an
// aligned pair, excluding positions where either side is a gap (spec
// §4.3.1(a), §4.3.2). Exported so the MSA-reduction step (aligner
// package) can score columns from an externally computed alignment with
// the same rule used by the on-the-fly backend.
func PercentIdentity(alignedA, alignedB string) (identity float64, length int) {
	return percentIdentity(alignedA, alignedB)
}

func percentIdentity(alignedA, alignedB string) (identity float64, length int) {
	var matched, compared int
	for i := 0; i < len(alignedA); i++ {
		if alignedA[i] == '-' || alignedB[i] == '-' {
			continue
		}
		compared++
		if alignedA[i] == alignedB[i] {
			matched++
		}
	}
	if compared == 0 {
		return 0, 0
	}
	return float64(matched) / float64(compared), compared
}

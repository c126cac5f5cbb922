// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assign

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestSolveSquare(t *testing.T) {
	c := mat.NewDense(3, 3, []float64{
		4, 1, 3,
		2, 0, 5,
		3, 2, 2,
	})
	pairs, total, err := Solve(c)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(pairs) != 3 {
		t.Fatalf("got %d pairs, want 3", len(pairs))
	}
	if total != 5 {
		t.Fatalf("got total cost %v, want 5", total)
	}
	seenRow := make(map[int]bool)
	seenCol := make(map[int]bool)
	for _, p := range pairs {
		if seenRow[p.Row] || seenCol[p.Col] {
			t.Fatalf("duplicate row/col in pairs: %+v", pairs)
		}
		seenRow[p.Row] = true
		seenCol[p.Col] = true
	}
}

func TestSolveRectangularMoreCols(t *testing.T) {
	// 2 rows, 3 columns: every row must be matched, one column left over.
	c := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		3, 1, 2,
	})
	pairs, total, err := Solve(c)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if total != 2 {
		t.Fatalf("got total cost %v, want 2 (row0->col0=1, row1->col1=1)", total)
	}
}

func TestSolveRectangularMoreRows(t *testing.T) {
	// 3 rows, 2 columns: every column must be matched, one row left over.
	c := mat.NewDense(3, 2, []float64{
		1, 4,
		4, 1,
		2, 2,
	})
	pairs, total, err := Solve(c)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if total != 2 {
		t.Fatalf("got total cost %v, want 2 (row0->col0=1, row1->col1=1)", total)
	}
}

func TestSolveSingle(t *testing.T) {
	c := mat.NewDense(1, 1, []float64{7})
	pairs, total, err := Solve(c)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(pairs) != 1 || pairs[0] != (Pair{0, 0}) || total != 7 {
		t.Fatalf("got pairs=%+v total=%v, want [{0 0}] 7", pairs, total)
	}
}

// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assign solves the rectangular minimum-cost bipartite assignment
// problem used by the DDS term of the distance kernel (spec §4.4, C4):
// pairing multiple occurrences of a shared domain family across two BGCs
// by minimum sequence distance. gonum ships no linear-sum-assignment
// solver, so this is a from-scratch Hungarian-method implementation (see
// DESIGN.md) operating on a gonum/mat.Dense cost matrix.
package assign

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrEmpty is returned by Solve when the cost matrix has no rows or
// columns.
var ErrEmpty = errors.New("assign: empty cost matrix")

// Pair is one matched (row, column) index in an optimal assignment.
type Pair struct {
	Row, Col int
}

// Solve returns an optimal assignment over the rectangular cost matrix C
// (m rows by n columns, all entries finite and non-negative): min(m,n)
// pairs with no row or column repeated, minimising total cost, and the
// total cost itself. Ties are resolved deterministically by the scan
// order of the underlying shortest-augmenting-path algorithm, which
// always prefers the lowest column index encountered first (spec §4.4's
// determinism requirement).
func Solve(c *mat.Dense) ([]Pair, float64, error) {
	rows, cols := c.Dims()
	if rows == 0 || cols == 0 {
		return nil, 0, ErrEmpty
	}

	transposed := rows > cols
	n, m := rows, cols
	get := func(i, j int) float64 { return c.At(i, j) }
	if transposed {
		n, m = cols, rows
		get = func(i, j int) float64 { return c.At(j, i) }
	}
	// n <= m: n rows to be fully matched into m columns, 1-indexed
	// internally per the classical algorithm.

	const inf = math.MaxFloat64 / 4

	u := make([]float64, n+1)
	v := make([]float64, m+1)
	p := make([]int, m+1)  // p[j] = row (1-indexed) currently assigned to column j, 0 = unassigned
	way := make([]int, m+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := get(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	pairs := make([]Pair, 0, n)
	var total float64
	for j := 1; j <= m; j++ {
		if p[j] == 0 {
			continue
		}
		row, col := p[j]-1, j-1
		total += get(row, col)
		if transposed {
			pairs = append(pairs, Pair{Row: col, Col: row})
		} else {
			pairs = append(pairs, Pair{Row: row, Col: col})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Row != pairs[j].Row {
			return pairs[i].Row < pairs[j].Row
		}
		return pairs[i].Col < pairs[j].Col
	})
	return pairs, total, nil
}

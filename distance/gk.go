// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distance

// pairT is an ordered adjacency pair within a domain-family sequence.
type pairT [2]string

// adjacencyPairs returns the set of ordered family pairs (X[i],X[j]) for
// 0<=i<n-1, i<j<=min(i+nbhood,n-1), the sliding-window adjacency used by
// the GK term (spec §4.6).
func adjacencyPairs(x []string, nbhood int) map[pairT]bool {
	n := len(x)
	pairs := make(map[pairT]bool)
	for i := 0; i < n-1; i++ {
		hi := i + nbhood
		if hi >= n {
			hi = n - 1
		}
		for j := i + 1; j <= hi; j++ {
			pairs[pairT{x[i], x[j]}] = true
		}
	}
	return pairs
}

// gkGamma computes Goodman-Kruskal's gamma for two ordered family
// sequences and returns the derived GK score (1+gamma)/2, without trying
// the reversed orientation (spec §4.6).
func gkGamma(a, b []string, nbhood int) float64 {
	pairsA := adjacencyPairs(a, nbhood)
	pairsB := adjacencyPairs(b, nbhood)

	all := make(map[pairT]bool, len(pairsA)+len(pairsB))
	for p := range pairsA {
		all[p] = true
	}
	for p := range pairsB {
		all[p] = true
	}

	var ns, nr float64
	for p := range all {
		rev := pairT{p[1], p[0]}
		switch {
		case pairsA[p] && pairsB[p]:
			ns++
		case pairsA[p] && pairsB[rev]:
			nr++
		case pairsA[rev] && pairsB[p]:
			nr++
		}
	}
	if ns+nr == 0 {
		return 0
	}
	gamma := (ns - nr) / (ns + nr)
	return (1 + gamma) / 2
}

// GK computes the Goodman-Kruskal adjacency term between two ordered
// domain-family sequences, trying both the as-is and the reversed
// orientation of a and taking the maximum (spec §4.6). If the two
// sequences share one or fewer distinct families, GK is defined as 0.
func GK(a, b []string, nbhood int) float64 {
	shared := 0
	seen := make(map[string]bool)
	setA := make(map[string]bool, len(a))
	for _, f := range a {
		setA[f] = true
	}
	for _, f := range b {
		if setA[f] && !seen[f] {
			seen[f] = true
			shared++
		}
	}
	if shared <= 1 {
		return 0
	}

	reversedA := make([]string, len(a))
	for i, f := range a {
		reversedA[len(a)-1-i] = f
	}

	fwd := gkGamma(a, b, nbhood)
	rev := gkGamma(reversedA, b, nbhood)
	if rev > fwd {
		return rev
	}
	return fwd
}

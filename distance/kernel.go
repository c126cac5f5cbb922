// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package distance implements the composite pair-distance kernel (C5,
// spec §4.5) and the Goodman-Kruskal adjacency term (C6, spec §4.6): the
// Jaccard, DDS and GK components combined into the single similarity
// network distance between two BGCs.
package distance

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/kortschak/trawl/assign"
	"github.com/kortschak/trawl/bgc"
	"github.com/kortschak/trawl/config"
	"github.com/kortschak/trawl/simil"
)

// Result is the full composite-distance record for one BGC pair, carrying
// every field the network emitter writes (spec §4.7, §6).
type Result struct {
	J, DDS, GK float64
	D          float64
	Log2       float64 // log2(1/D); +Inf when D == 0

	DDSNonAnchor, DDSAnchor float64
	SNonAnchor, SAnchor     float64
}

// Kernel computes the composite distance between BGCs a and b (spec
// §4.5). oracle is consulted only when cfg.SequenceMode(); if it cannot
// supply a similarity for some shared-family occurrence pair, the call
// falls back to the domain-architecture-only Jaccard and DDS formulas for
// its entire evaluation rather than mixing the two (spec §4.5).
func Kernel(cfg config.Config, a, b *bgc.BGC, oracle simil.Oracle) Result {
	famA, famB := a.Families(), b.Families()
	union := unionFamilies(famA, famB)

	if len(union) == 0 {
		// Both BGCs share zero domains of any family after filtering:
		// defined as maximally distant rather than undefined (spec §9
		// open question, DESIGN.md).
		return Result{D: 1, Log2: 0}
	}

	architectureOnly := !cfg.SequenceMode()

	var j, ddsSim, ddsNA, ddsA, sNA, sA float64
	if !architectureOnly {
		var ok bool
		ddsNA, ddsA, sNA, sA, ok = sequenceDDS(cfg, a, b, union, oracle)
		if ok {
			j = jaccard(famA, famB)
			ddsSim = combineDDS(cfg.AnchorWeight, ddsNA, ddsA, sNA, sA)
		} else {
			architectureOnly = true
		}
	}
	if architectureOnly {
		j = architectureJaccard(famA, famB)
		diff, s := architectureAccumulate(a, b, union)
		ddsSim = 1
		if s > 0 {
			ddsSim = math.Exp(-diff / s)
		}
		ddsNA, ddsA, sNA, sA = 0, 0, s, 0
	}

	gk := GK(a.DomainSequence, b.DomainSequence, cfg.Nbhood)

	d := 1 - (cfg.WJ*j + cfg.WD*ddsSim + cfg.WG*gk)
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}

	log2 := math.Inf(1)
	if d > 0 {
		log2 = math.Log2(1 / d)
	}

	return Result{
		J: j, DDS: ddsSim, GK: gk, D: d, Log2: log2,
		DDSNonAnchor: ddsNA, DDSAnchor: ddsA,
		SNonAnchor: sNA, SAnchor: sA,
	}
}

// sequenceDDS accumulates the non-anchor and anchor DDS buckets using the
// similarity oracle (spec §4.5's sequence-mode DDS). ok is false if any
// shared-occurrence pair could not be scored, signalling the caller to
// fall back to the architecture-only formula for the whole kernel call.
func sequenceDDS(cfg config.Config, a, b *bgc.BGC, union []string, oracle simil.Oracle) (ddsNA, ddsA, sNA, sA float64, ok bool) {
	var diffNA, diffA, sumSNA, sumSA []float64

	for _, f := range union {
		occA, occB := a.Occurrences(f), b.Occurrences(f)
		na, nb := len(occA), len(occB)

		var contribution, s float64
		if na == 0 || nb == 0 {
			m := math.Max(float64(na), float64(nb))
			contribution, s = m, m
		} else {
			data := make([]float64, na*nb)
			for i, oa := range occA {
				for k, ob := range occB {
					sim, _, simOK := oracle.Similarity(f, oa, ob)
					if !simOK {
						return 0, 0, 0, 0, false
					}
					data[i*nb+k] = 1 - sim
				}
			}
			total, err := matchCost(data, na, nb)
			if err != nil {
				return 0, 0, 0, 0, false
			}
			contribution = total + math.Abs(float64(na-nb))
			s = math.Max(float64(na), float64(nb))
		}

		if bgc.IsAnchor(cfg.Anchors, f) {
			diffA = append(diffA, contribution)
			sumSA = append(sumSA, s)
		} else {
			diffNA = append(diffNA, contribution)
			sumSNA = append(sumSNA, s)
		}
	}

	sNA, sA = floats.Sum(sumSNA), floats.Sum(sumSA)
	if sNA > 0 {
		ddsNA = floats.Sum(diffNA) / sNA
	}
	if sA > 0 {
		ddsA = floats.Sum(diffA) / sA
	}
	return ddsNA, ddsA, sNA, sA, true
}

func matchCost(data []float64, na, nb int) (float64, error) {
	cost := mat.NewDense(na, nb, data)
	_, total, err := assign.Solve(cost)
	return total, err
}

// combineDDS applies the anchor-weight reweighting (spec §4.5) and
// converts the resulting distance into the similarity scale the kernel
// works in.
func combineDDS(anchorWeight, ddsNA, ddsA, sNA, sA float64) float64 {
	var ddsDistance float64
	switch {
	case sNA > 0 && sA > 0:
		pNA := sNA / (sNA + sA)
		pA := sA / (sNA + sA)
		wNA := pNA / (pA*anchorWeight + pNA)
		wA := pA * anchorWeight / (pA*anchorWeight + pNA)
		ddsDistance = wNA*ddsNA + wA*ddsA
	case sNA > 0:
		ddsDistance = ddsNA
	case sA > 0:
		ddsDistance = ddsA
	}
	return 1 - ddsDistance
}

// architectureAccumulate computes the domain-architecture-only diff and S
// sums over the union of families (spec §4.5).
func architectureAccumulate(a, b *bgc.BGC, union []string) (diff, s float64) {
	diffs := make([]float64, len(union))
	ss := make([]float64, len(union))
	for i, f := range union {
		ca, cb := float64(a.Count(f)), float64(b.Count(f))
		diffs[i] = math.Abs(ca - cb)
		ss[i] = math.Max(ca, cb)
	}
	return floats.Sum(diffs), floats.Sum(ss)
}

func jaccard(famA, famB map[string]bool) float64 {
	inter := intersectionCount(famA, famB)
	union := len(famA) + len(famB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// architectureJaccard uses the size-robust denominator for the
// domain-architecture-only mode (spec §4.5).
func architectureJaccard(famA, famB map[string]bool) float64 {
	inter := intersectionCount(famA, famB)
	denom := 2*math.Min(float64(len(famA)), float64(len(famB))) - float64(inter)
	if denom <= 0 {
		return 0
	}
	return float64(inter) / denom
}

func intersectionCount(famA, famB map[string]bool) int {
	small, large := famA, famB
	if len(famB) < len(famA) {
		small, large = famB, famA
	}
	n := 0
	for f := range small {
		if large[f] {
			n++
		}
	}
	return n
}

// unionFamilies returns the sorted union of two family sets, so that
// accumulation order (and therefore floating-point summation order) is
// reproducible across runs (spec §8's byte-identical round-trip property).
func unionFamilies(famA, famB map[string]bool) []string {
	set := make(map[string]bool, len(famA)+len(famB))
	for f := range famA {
		set[f] = true
	}
	for f := range famB {
		set[f] = true
	}
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

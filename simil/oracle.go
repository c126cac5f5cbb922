// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simil answers "how similar are these two occurrences of the
// same domain family?" (spec §4.3, C3), with three interchangeable
// backends: a precomputed-MSA table, an on-the-fly pairwise aligner, and
// an always-absent stub for domain-architecture-only runs.
package simil

import (
	"github.com/kortschak/trawl/bgc"
	"github.com/kortschak/trawl/seqstore"
)

// Oracle answers similarity(family, a, b) -> (sim, length, ok). ok is
// false when the pair is undefined (a family with exactly one occurrence
// corpus-wide under the precomputed strategy, or the unavailable
// strategy), in which case the distance kernel evaluates the whole BGC
// pair with the domain-architecture-only Jaccard and DDS formulas (see
// distance.Kernel).
type Oracle interface {
	Similarity(family string, a, b bgc.Occurrence) (sim float64, length int, ok bool)
}

// pairKey canonicalises an unordered pair of globally-unique occurrence
// identifiers (BGC name + in-BGC key) so the table lookup is independent
// of argument order, matching the oracle's symmetry invariant (spec §3).
type pairKey struct{ x, y string }

func newPairKey(a, b bgc.Occurrence) pairKey {
	ka, kb := a.BGC+"/"+a.Key, b.BGC+"/"+b.Key
	if ka > kb {
		ka, kb = kb, ka
	}
	return pairKey{ka, kb}
}

// UnavailableOracle is strategy 3 (spec §4.3.3): the kernel must not
// query it when sequence data is unavailable; it exists so callers can
// wire a uniform Oracle value regardless of configured strategy.
type UnavailableOracle struct{}

func (UnavailableOracle) Similarity(string, bgc.Occurrence, bgc.Occurrence) (float64, int, bool) {
	return 0, 0, false
}

// PrecomputedOracle is strategy 1: similarity is read from a symmetric
// table built once from external MSAs, before the pair phase begins
// (spec §5).
type PrecomputedOracle struct {
	table map[string]map[pairKey]simEntry
}

type simEntry struct {
	sim    float64
	length int
}

// NewPrecomputedOracle returns an oracle with an empty table; call Add
// for each family's alignment-derived similarities before using it.
func NewPrecomputedOracle() *PrecomputedOracle {
	return &PrecomputedOracle{table: make(map[string]map[pairKey]simEntry)}
}

// Add records the similarity between occurrences a and b (of family f)
// derived from their MSA. Called once per pair while building the table;
// after that the table is read-only (spec §5).
func (o *PrecomputedOracle) Add(family string, a, b bgc.Occurrence, sim float64, length int) {
	m, ok := o.table[family]
	if !ok {
		m = make(map[pairKey]simEntry)
		o.table[family] = m
	}
	m[newPairKey(a, b)] = simEntry{sim: sim, length: length}
}

func (o *PrecomputedOracle) Similarity(family string, a, b bgc.Occurrence) (float64, int, bool) {
	m, ok := o.table[family]
	if !ok {
		return 0, 0, false
	}
	e, ok := m[newPairKey(a, b)]
	if !ok {
		return 0, 0, false
	}
	return e.sim, e.length, true
}

// PairwiseOracle is strategy 2: similarity is computed on demand by
// global pairwise alignment with PAM250 and affine gaps (spec §4.3.2).
// It requires the per-BGC sequence stores to remain resident (spec §3's
// lifecycle note).
type PairwiseOracle struct {
	stores map[string]*seqstore.Store
}

// NewPairwiseOracle returns an oracle backed by the given per-BGC
// sequence stores, keyed by BGC name.
func NewPairwiseOracle(stores map[string]*seqstore.Store) *PairwiseOracle {
	return &PairwiseOracle{stores: stores}
}

// Similarity aligns the two occurrences' sequences and returns their
// percent identity. To guarantee symmetry under non-unique optimal
// alignments, the two sequences are sorted lexicographically before
// calling the aligner (spec §4.3.2, Open Question resolved in DESIGN.md).
func (o *PairwiseOracle) Similarity(family string, a, b bgc.Occurrence) (float64, int, bool) {
	sa, ok := o.sequence(a)
	if !ok {
		return 0, 0, false
	}
	sb, ok := o.sequence(b)
	if !ok {
		return 0, 0, false
	}
	if sa == "" || sb == "" {
		return 0, 0, false
	}

	x, y := sa, sb
	if x > y {
		x, y = y, x
	}
	alignedX, alignedY := globalAlign(x, y)
	sim, length := percentIdentity(alignedX, alignedY)
	return sim, length, true
}

func (o *PairwiseOracle) sequence(occ bgc.Occurrence) (string, bool) {
	store, ok := o.stores[occ.BGC]
	if !ok {
		return "", false
	}
	return store.SequenceFor(occ)
}

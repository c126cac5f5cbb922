// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bgc holds the per-BGC domain-architecture representation built
// from predicted protein-domain annotations: the ordered domain sequence
// along a biosynthetic gene cluster and the multiset of domain-family
// occurrences used by the distance kernel.
package bgc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/biogo/biogo/seq"
)

// Group is the opaque class/description pair carried through to edge
// annotation; it plays no role in distance calculation.
type Group struct {
	Class       string
	Description string
}

// Row is one annotation record for a predicted domain occurrence within a
// BGC, as read from the per-BGC domain annotation table (spec §6).
type Row struct {
	Family string // family id, may carry a version suffix, e.g. "PF00550.7"

	EnvStart, EnvEnd int // HMM envelope, amino acids, 0-based half-open

	GeneID      string
	GeneNTStart int
	GeneNTEnd   int
	GeneStrand  seq.Strand
}

// OccurrenceKey returns the canonical, BGC-unique identifier for a domain
// occurrence: the parent gene id plus its envelope coordinates.
func OccurrenceKey(geneID string, envStart, envEnd int) string {
	return fmt.Sprintf("%s:%d-%d", geneID, envStart, envEnd)
}

// Occurrence is one instance of a domain family in a specific gene of a
// specific BGC.
type Occurrence struct {
	BGC    string
	Family string
	Key    string

	GeneID     string
	EnvStart   int
	EnvEnd     int
	GeneStrand seq.Strand
}

// StrippedFamily returns the family id with any version suffix
// (".7" in "PF00550.7") removed. Anchor-set membership is always checked
// against this form (spec §3).
func StrippedFamily(family string) string {
	if i := strings.IndexByte(family, '.'); i >= 0 {
		return family[:i]
	}
	return family
}

// BGC is one annotated genomic region: its name, the linear order of
// predicted domain families along the region, and the multiset of
// occurrences per family.
type BGC struct {
	Name  string
	Group Group

	// DomainSequence is the ordered list of family ids as they appear
	// along the region (duplicates allowed).
	DomainSequence []string

	// occurrences maps family id to the ordered list of occurrence
	// records for that family within this BGC.
	occurrences map[string][]Occurrence
}

// HasDomains reports whether the BGC has at least one predicted domain.
// BGCs without domains are excluded from the pair universe (spec §4.1).
func (b *BGC) HasDomains() bool {
	return len(b.DomainSequence) > 0
}

// Families returns the set of distinct family ids present in the BGC.
func (b *BGC) Families() map[string]bool {
	set := make(map[string]bool, len(b.occurrences))
	for f := range b.occurrences {
		set[f] = true
	}
	return set
}

// Count returns the number of occurrences of family f in the BGC.
func (b *BGC) Count(f string) int {
	return len(b.occurrences[f])
}

// Occurrences returns the ordered occurrence records for family f.
func (b *BGC) Occurrences(f string) []Occurrence {
	return b.occurrences[f]
}

// Build constructs a BGC from its name, group annotation and the raw
// annotation rows for its predicted domains. Genes are ordered by their
// nucleotide start coordinate (the linear scan along the region); within
// a gene, domains are ordered by envelope start, which is already the
// N-to-C order of the gene's translated protein regardless of strand,
// since the parent's translated sequence is already presented N-to-C
// (spec §4.1, §4.2). Ties are broken stably by gene start then envelope
// start.
func Build(name string, group Group, rows []Row) *BGC {
	byGene := make(map[string][]Row, len(rows))
	geneOrder := make([]string, 0, len(rows))
	geneStart := make(map[string]int, len(rows))
	for _, r := range rows {
		if _, ok := byGene[r.GeneID]; !ok {
			geneOrder = append(geneOrder, r.GeneID)
			geneStart[r.GeneID] = r.GeneNTStart
		}
		byGene[r.GeneID] = append(byGene[r.GeneID], r)
	}

	sort.SliceStable(geneOrder, func(i, j int) bool {
		return geneStart[geneOrder[i]] < geneStart[geneOrder[j]]
	})

	b := &BGC{
		Name:        name,
		Group:       group,
		occurrences: make(map[string][]Occurrence),
	}
	for _, g := range geneOrder {
		grs := byGene[g]
		sort.SliceStable(grs, func(i, j int) bool {
			return grs[i].EnvStart < grs[j].EnvStart
		})
		for _, r := range grs {
			occ := Occurrence{
				BGC:        name,
				Family:     r.Family,
				Key:        OccurrenceKey(r.GeneID, r.EnvStart, r.EnvEnd),
				GeneID:     r.GeneID,
				EnvStart:   r.EnvStart,
				EnvEnd:     r.EnvEnd,
				GeneStrand: r.GeneStrand,
			}
			b.DomainSequence = append(b.DomainSequence, r.Family)
			b.occurrences[r.Family] = append(b.occurrences[r.Family], occ)
		}
	}
	return b
}

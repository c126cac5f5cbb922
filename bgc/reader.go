// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/biogo/biogo/io/featio"
	"github.com/biogo/biogo/io/featio/gff"
)

// Warning is a structured, non-fatal diagnostic raised while reading
// annotation input. Warnings are collected rather than discarded so a
// caller embedding this package can inspect what was skipped.
type Warning struct {
	Kind    string
	Context string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Context, w.Message)
}

// ReadRows reads a per-BGC domain annotation stream. Each row is encoded
// as a GFF feature: FeatStart/FeatEnd carry the HMM envelope in amino
// acids, FeatStrand the parent gene's strand, and the Family/Gene/
// GeneStart/GeneEnd attributes carry the remaining required fields (spec
// §6). Rows that are missing a required attribute are skipped with a
// Warning rather than aborting the scan; if more than maxBadFraction of
// rows are malformed, ReadRows returns an error (spec §7).
func ReadRows(r io.Reader, maxBadFraction float64) ([]Row, []Warning, error) {
	var rows []Row
	var warnings []Warning
	var total, bad int

	sc := featio.NewScanner(gff.NewReader(r))
	for sc.Next() {
		total++
		f, ok := sc.Feat().(*gff.Feature)
		if !ok {
			bad++
			warnings = append(warnings, Warning{Kind: "malformed-row", Message: "feature is not a GFF record"})
			continue
		}
		row, err := rowFromFeature(f)
		if err != nil {
			bad++
			warnings = append(warnings, Warning{Kind: "malformed-row", Context: f.SeqName, Message: err.Error()})
			continue
		}
		rows = append(rows, row)
	}
	if err := sc.Error(); err != nil {
		return nil, warnings, fmt.Errorf("bgc: error reading annotation stream: %w", err)
	}
	if total > 0 && float64(bad)/float64(total) > maxBadFraction {
		return nil, warnings, fmt.Errorf("bgc: %d/%d annotation rows malformed, exceeds budget %.2f", bad, total, maxBadFraction)
	}
	return rows, warnings, nil
}

func rowFromFeature(f *gff.Feature) (Row, error) {
	family := f.FeatAttributes.Get("Family")
	if family == "" {
		return Row{}, fmt.Errorf("missing Family attribute")
	}
	gene := f.FeatAttributes.Get("Gene")
	if gene == "" {
		return Row{}, fmt.Errorf("missing Gene attribute")
	}
	geneStart, err := atoiAttr(f, "GeneStart")
	if err != nil {
		return Row{}, err
	}
	geneEnd, err := atoiAttr(f, "GeneEnd")
	if err != nil {
		return Row{}, err
	}
	return Row{
		Family:      family,
		EnvStart:    f.FeatStart,
		EnvEnd:      f.FeatEnd,
		GeneID:      gene,
		GeneNTStart: geneStart,
		GeneNTEnd:   geneEnd,
		GeneStrand:  f.FeatStrand,
	}, nil
}

func atoiAttr(f *gff.Feature, tag string) (int, error) {
	v := f.FeatAttributes.Get(tag)
	if v == "" {
		return 0, fmt.Errorf("missing %s attribute", tag)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("bad %s attribute %q: %v", tag, v, err)
	}
	return n, nil
}

// ReadAnchorSet reads a newline-separated list of anchor family ids
// (without version, spec §6) into a process-wide read-only set.
func ReadAnchorSet(r io.Reader) (map[string]bool, error) {
	set := make(map[string]bool)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		set[StrippedFamily(line)] = true
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("bgc: error reading anchor set: %w", err)
	}
	return set, nil
}

// IsAnchor reports whether family is a member of the anchor set, after
// stripping any version suffix (spec §3).
func IsAnchor(anchors map[string]bool, family string) bool {
	return anchors[StrippedFamily(family)]
}

// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seqstore resolves domain occurrences to their amino-acid
// subsequences (spec §4.2, C2). It holds each gene's translated protein,
// keyed by gene id, built once from a BGC's translated-gene FASTA during
// ingest and then shared read-only with the pair-distance workers.
package seqstore

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"

	"github.com/kortschak/trawl/bgc"
)

// Store holds one BGC's translated proteins keyed by gene id, and
// resolves a domain occurrence (gene id plus envelope) to its amino-acid
// substring.
type Store struct {
	bgcName string
	seqs    map[string]string // geneID -> full translated protein
}

// Gene is one translated gene parsed from a BGC's FASTA, per the header
// layout in spec §6: <bgc>_ORF<k>:gid:<gene>:pid:<protein>:loc:<start>:<end>:strand:<±>.
type Gene struct {
	BGC      string
	ORF      string
	GeneID   string
	Protein  string
	Start    int
	End      int
	Strand   seq.Strand
	Sequence string
}

// ParseHeader parses a translated-gene FASTA header into its fields.
func ParseHeader(header string) (Gene, error) {
	fields := strings.Split(header, ":")
	if len(fields) != 10 {
		return Gene{}, fmt.Errorf("seqstore: malformed header %q: want 10 colon-separated fields, got %d", header, len(fields))
	}
	if fields[1] != "gid" || fields[3] != "pid" || fields[5] != "loc" || fields[8] != "strand" {
		return Gene{}, fmt.Errorf("seqstore: malformed header %q: unexpected field tags", header)
	}
	start, err := strconv.Atoi(fields[6])
	if err != nil {
		return Gene{}, fmt.Errorf("seqstore: bad start coordinate in header %q: %v", header, err)
	}
	end, err := strconv.Atoi(fields[7])
	if err != nil {
		return Gene{}, fmt.Errorf("seqstore: bad end coordinate in header %q: %v", header, err)
	}
	var strand seq.Strand
	switch fields[9] {
	case "+":
		strand = seq.Plus
	case "-":
		strand = seq.Minus
	default:
		return Gene{}, fmt.Errorf("seqstore: bad strand in header %q: %q", header, fields[9])
	}

	orfBGC := fields[0]
	i := strings.LastIndex(orfBGC, "_ORF")
	if i < 0 {
		return Gene{}, fmt.Errorf("seqstore: malformed header %q: missing _ORF marker", header)
	}

	return Gene{
		BGC:     orfBGC[:i],
		ORF:     orfBGC[i+1:],
		GeneID:  fields[2],
		Protein: fields[4],
		Start:   start,
		End:     end,
		Strand:  strand,
	}, nil
}

// Build reads a BGC's translated-gene FASTA and returns a Store mapping
// gene id to the full translated protein sequence. Non-standard amino
// acids are normalised to X, except selenocysteine (U) which is
// normalised to C, per spec §4.2.
func Build(bgcName string, r io.Reader) (*Store, []bgc.Warning, error) {
	s := &Store{bgcName: bgcName, seqs: make(map[string]string)}
	var warnings []bgc.Warning

	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.Protein)))
	for sc.Next() {
		rec := sc.Seq().(*linear.Seq)
		// The header carries no internal whitespace, so the fasta reader
		// puts the whole thing in ID; fall back to Desc in case a reader
		// implementation splits differently.
		header := rec.ID
		if header == "" {
			header = rec.Desc
		}
		g, err := ParseHeader(header)
		if err != nil {
			warnings = append(warnings, bgc.Warning{Kind: "malformed-header", Context: bgcName, Message: fmt.Sprintf("%q: %v", header, err)})
			continue
		}
		letters := alphabet.Letters(rec.Seq)
		s.seqs[g.GeneID] = normalise(letters.String())
	}
	if err := sc.Error(); err != nil {
		return nil, warnings, fmt.Errorf("seqstore: error reading fasta for %s: %w", bgcName, err)
	}
	return s, warnings, nil
}

// normalise maps non-standard amino-acid letters to X, and selenocysteine
// (U) to C, per spec §4.2.
func normalise(protein string) string {
	b := []byte(protein)
	for i, c := range b {
		switch c {
		case 'U', 'u':
			b[i] = 'C'
		case 'A', 'R', 'N', 'D', 'C', 'Q', 'E', 'G', 'H', 'I',
			'L', 'K', 'M', 'F', 'P', 'S', 'T', 'W', 'Y', 'V',
			'a', 'r', 'n', 'd', 'c', 'q', 'e', 'g', 'h', 'i',
			'l', 'k', 'm', 'f', 'p', 's', 't', 'w', 'y', 'v',
			'*', '-':
			// standard residue, stop or gap: left as-is.
		default:
			b[i] = 'X'
		}
	}
	return string(b)
}

// Sequence returns the amino-acid subsequence for a domain occurrence,
// given the gene id and the envelope coordinates already baked into the
// occurrence key. The substring is taken directly from the translated
// protein since both forward- and reverse-strand genes are presented
// N-to-C in the input FASTA (spec §4.2).
func (s *Store) Sequence(geneID string, envStart, envEnd int) (string, bool) {
	full, ok := s.seqs[geneID]
	if !ok {
		return "", false
	}
	if envStart < 0 || envEnd > len(full) || envStart > envEnd {
		return "", false
	}
	return full[envStart:envEnd], true
}

// SequenceFor resolves the amino-acid subsequence for an occurrence
// record directly.
func (s *Store) SequenceFor(occ bgc.Occurrence) (string, bool) {
	return s.Sequence(occ.GeneID, occ.EnvStart, occ.EnvEnd)
}

// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aligner

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/kortschak/trawl/simil"
)

// Identity is one pairwise percent-identity measurement extracted from a
// multiple sequence alignment, keyed by the two input record headers
// (occurrence ids, spec §6).
type Identity struct {
	A, B   string
	Sim    float64
	Length int
}

// ReduceAlignment scans an aligned FASTA (mafft's output, all records the
// same length) and reduces it to the pairwise percent-identity table
// described in spec §4.3.1(a): every pair of aligned records is scored by
// PercentIdentity, ignoring columns where either side carries a gap.
func ReduceAlignment(r io.Reader) ([]Identity, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.Protein)))

	var ids []string
	var seqs []string
	for sc.Next() {
		rec := sc.Seq().(*linear.Seq)
		ids = append(ids, rec.ID)
		seqs = append(seqs, alphabet.Letters(rec.Seq).String())
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("aligner: error reading alignment: %w", err)
	}

	var out []Identity
	for i := 0; i < len(seqs); i++ {
		for j := i + 1; j < len(seqs); j++ {
			if len(seqs[i]) != len(seqs[j]) {
				return nil, fmt.Errorf("aligner: misaligned records %q (%d) and %q (%d)", ids[i], len(seqs[i]), ids[j], len(seqs[j]))
			}
			sim, length := simil.PercentIdentity(seqs[i], seqs[j])
			out = append(out, Identity{A: ids[i], B: ids[j], Sim: sim, Length: length})
		}
	}
	return out, nil
}

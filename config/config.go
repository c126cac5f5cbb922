// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the process-wide immutable configuration bundle
// (spec §3, §6): composite weights, the anchor set, the GK window, the
// chosen similarity strategy and the resource/output knobs. A Config is
// built once at startup, validated, and then shared read-only with every
// pipeline stage.
package config

import (
	"fmt"
	"sort"
)

// Strategy selects the C3 similarity-oracle backend (spec §4.3).
type Strategy string

const (
	PrecomputedMSA   Strategy = "precomputed-msa"
	PairwiseOnTheFly Strategy = "pairwise-on-the-fly"
	ArchitectureOnly Strategy = "architecture-only"
)

// Config is the validated, immutable configuration for one pipeline run
// (spec §6 Configuration, SPEC_FULL §3).
type Config struct {
	WJ, WD, WG   float64
	AnchorWeight float64
	Nbhood       int

	Cutoffs  []float64
	Strategy Strategy
	Cores    int

	IncludeDisconnected bool

	// MaxMalformedFraction is the fraction of rows in any one input file
	// that may fail to parse before ingest aborts (spec §7).
	MaxMalformedFraction float64

	// Anchors is the process-wide read-only anchor-family set, keyed by
	// the stripped (version-free) family id (spec §3).
	Anchors map[string]bool
}

// Default returns a Config populated with the spec's documented defaults
// (spec §6): w_J=0.2, w_D=0.75, w_G=0.05, anchor_weight=2.0, nbhood=4,
// cutoffs=[1.0], strategy=pairwise-on-the-fly, cores=1,
// max_malformed_fraction=0.05.
func Default() Config {
	return Config{
		WJ:                    0.2,
		WD:                    0.75,
		WG:                    0.05,
		AnchorWeight:          2.0,
		Nbhood:                4,
		Cutoffs:               []float64{1.0},
		Strategy:              PairwiseOnTheFly,
		Cores:                 1,
		MaxMalformedFraction:  0.05,
		Anchors:               map[string]bool{},
	}
}

// Validate checks c against the configuration-error cases enumerated in
// spec §7, and normalises Cutoffs to always include 1.0 (spec §6: "1.0
// is always included").
func (c *Config) Validate() error {
	switch {
	case c.WJ < 0 || c.WD < 0 || c.WG < 0:
		return fmt.Errorf("config: composite weights must be non-negative, got w_J=%v w_D=%v w_G=%v", c.WJ, c.WD, c.WG)
	case c.AnchorWeight < 1:
		return fmt.Errorf("config: anchor_weight must be >= 1, got %v", c.AnchorWeight)
	case c.Nbhood < 1:
		return fmt.Errorf("config: nbhood must be >= 1, got %v", c.Nbhood)
	case c.Cores < 1:
		return fmt.Errorf("config: cores must be >= 1, got %v", c.Cores)
	case c.MaxMalformedFraction < 0 || c.MaxMalformedFraction > 1:
		return fmt.Errorf("config: max_malformed_fraction must be within [0,1], got %v", c.MaxMalformedFraction)
	}
	switch c.Strategy {
	case PrecomputedMSA, PairwiseOnTheFly, ArchitectureOnly:
	default:
		return fmt.Errorf("config: unknown strategy %q", c.Strategy)
	}
	for _, cut := range c.Cutoffs {
		if cut <= 0 || cut > 1 {
			return fmt.Errorf("config: cutoff %v out of range (0,1]", cut)
		}
	}

	found1 := false
	for _, cut := range c.Cutoffs {
		if cut == 1.0 {
			found1 = true
			break
		}
	}
	if !found1 {
		c.Cutoffs = append(c.Cutoffs, 1.0)
	}
	sort.Float64s(c.Cutoffs)

	if c.Anchors == nil {
		c.Anchors = map[string]bool{}
	}
	return nil
}

// SequenceMode reports whether the configured strategy drives the C5
// kernel's sequence-oracle branch rather than the domain-architecture-only
// branch (spec §4.5).
func (c Config) SequenceMode() bool {
	return c.Strategy == PrecomputedMSA || c.Strategy == PairwiseOnTheFly
}

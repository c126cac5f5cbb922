// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// trawl computes an all-pairs biosynthetic gene cluster (BGC) similarity
// network from per-BGC domain annotations and translated-gene sequences.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kortschak/trawl/aligner"
	"github.com/kortschak/trawl/bgc"
	"github.com/kortschak/trawl/config"
	"github.com/kortschak/trawl/network"
	"github.com/kortschak/trawl/seqstore"
	"github.com/kortschak/trawl/simil"
)

var (
	manifest = flag.String("manifest", "", `tab-separated manifest, one BGC per row:
    	bgc_name  class  description  annotation_path  fasta_path
    (required)`)
	anchors = flag.String("anchors", "", "newline-separated anchor family list")
	samples = flag.String("samples", "", `tab-separated sample membership file:
    	sample_name  bgc_name
    (optional; restricts pair enumeration to shared-sample pairs)`)

	wJ           = flag.Float64("w_J", 0.2, "Jaccard term weight")
	wD           = flag.Float64("w_D", 0.75, "DDS term weight")
	wG           = flag.Float64("w_G", 0.05, "GK term weight")
	anchorWeight = flag.Float64("anchor_weight", 2.0, "anchor DDS boost, must be >= 1")
	nbhood       = flag.Int("nbhood", 4, "GK adjacency window")
	cutoffsFlag  = flag.String("cutoffs", "1.0", "comma-separated similarity cutoffs in (0,1]")
	strategy     = flag.String("strategy", string(config.PairwiseOnTheFly), "one of precomputed-msa, pairwise-on-the-fly, architecture-only")
	cores        = flag.Int("cores", 1, "worker count")
	includeDisc  = flag.Bool("include_disconnected", false, "emit isolated BGCs as rows with no edge")
	maxMalformed = flag.Float64("max_malformed_fraction", 0.05, "fraction of malformed rows tolerated per input file before abort")

	mafftPath = flag.String("mafft", "", "path to mafft if not in $PATH")

	outDir = flag.String("out", ".", "directory to write per-cutoff network files into")
)

func main() {
	flag.Parse()
	if *manifest == "" {
		fmt.Fprintln(os.Stderr, "invalid argument: -manifest is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.Config{
		WJ: *wJ, WD: *wD, WG: *wG,
		AnchorWeight:         *anchorWeight,
		Nbhood:               *nbhood,
		Strategy:             config.Strategy(*strategy),
		Cores:                *cores,
		IncludeDisconnected:  *includeDisc,
		MaxMalformedFraction: *maxMalformed,
	}
	cuts, err := parseCutoffs(*cutoffsFlag)
	if err != nil {
		log.Fatalf("bad -cutoffs: %v", err)
	}
	cfg.Cutoffs = cuts

	if *anchors != "" {
		f, err := os.Open(*anchors)
		if err != nil {
			log.Fatalf("failed to open anchor file %q: %v", *anchors, err)
		}
		cfg.Anchors, err = bgc.ReadAnchorSet(f)
		f.Close()
		if err != nil {
			log.Fatalf("failed to read anchor file %q: %v", *anchors, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	log.Printf("reading manifest %q", *manifest)
	entries, err := readManifest(*manifest)
	if err != nil {
		log.Fatalf("failed to read manifest: %v", err)
	}

	log.Printf("ingesting %d BGCs", len(entries))
	bgcs, stores, err := ingest(cfg, entries)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}
	log.Printf("%d BGCs retained after dropping empty-domain records", len(bgcs))
	if len(bgcs) < 2 {
		log.Fatalf("corpus error: %d BGC(s) retained, need at least 2 to form a pair (spec §7)", len(bgcs))
	}

	var sampleSets map[string]map[string]bool
	if *samples != "" {
		sampleSets, err = readSamples(*samples)
		if err != nil {
			log.Fatalf("failed to read samples file: %v", err)
		}
	}

	log.Printf("building similarity oracle (strategy=%s)", cfg.Strategy)
	oracle, err := buildOracle(cfg, bgcs, stores)
	if err != nil {
		log.Fatalf("failed to build similarity oracle: %v", err)
	}

	log.Printf("scheduling pairwise distances over %d cores", cfg.Cores)
	results, warnings, err := network.Schedule(context.Background(), cfg, bgcs, oracle, sampleSets)
	if err != nil {
		log.Fatalf("pair scheduling failed: %v", err)
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w.String())
	}
	log.Printf("computed %d pair distances", len(results))

	names := make([]string, 0, len(bgcs))
	for name := range bgcs {
		names = append(names, name)
	}

	for _, cut := range cfg.Cutoffs {
		path := filepath.Join(*outDir, fmt.Sprintf("network_c%.2f.tsv", cut))
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("failed to create %q: %v", path, err)
		}
		if err := network.Emit(f, cfg, results, cut, names); err != nil {
			f.Close()
			log.Fatalf("failed to write %q: %v", path, err)
		}
		f.Close()
		log.Printf("wrote %q", path)
	}
}

// manifestEntry is one row of the BGC manifest: name, group annotation
// and the paths to its domain-annotation and translated-gene FASTA files.
type manifestEntry struct {
	Name, Class, Description string
	AnnotationPath, FastaPath string
}

func readManifest(path string) ([]manifestEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []manifestEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 5 {
			return nil, fmt.Errorf("manifest: malformed row %q: want 5 tab-separated fields, got %d", line, len(fields))
		}
		entries = append(entries, manifestEntry{
			Name: fields[0], Class: fields[1], Description: fields[2],
			AnnotationPath: fields[3], FastaPath: fields[4],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func readSamples(path string) (map[string]map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sets := make(map[string]map[string]bool)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, fmt.Errorf("samples: malformed row %q: want 2 tab-separated fields, got %d", line, len(fields))
		}
		if sets[fields[0]] == nil {
			sets[fields[0]] = make(map[string]bool)
		}
		sets[fields[0]][fields[1]] = true
	}
	return sets, sc.Err()
}

func parseCutoffs(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ingest reads every manifest entry's annotation table and FASTA, builds
// the C1 domain index and C2 sequence store per BGC, and drops any BGC
// with zero predicted domains with a warning (spec §4.1, §7).
func ingest(cfg config.Config, entries []manifestEntry) (map[string]*bgc.BGC, map[string]*seqstore.Store, error) {
	bgcs := make(map[string]*bgc.BGC, len(entries))
	stores := make(map[string]*seqstore.Store, len(entries))

	for _, e := range entries {
		af, err := os.Open(e.AnnotationPath)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		rows, warnings, err := bgc.ReadRows(af, cfg.MaxMalformedFraction)
		af.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		for _, w := range warnings {
			log.Printf("warning: %s", w.String())
		}

		b := bgc.Build(e.Name, bgc.Group{Class: e.Class, Description: e.Description}, rows)
		if !b.HasDomains() {
			log.Printf("warning: dropping %q: zero predicted domains", e.Name)
			continue
		}
		bgcs[e.Name] = b

		ff, err := os.Open(e.FastaPath)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		store, storeWarnings, err := seqstore.Build(e.Name, ff)
		ff.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		for _, w := range storeWarnings {
			log.Printf("warning: %s", w.String())
		}
		stores[e.Name] = store
	}
	return bgcs, stores, nil
}

// buildOracle constructs the C3 similarity backend selected by
// cfg.Strategy (spec §4.3, §4.9, §4.11 step 4).
func buildOracle(cfg config.Config, bgcs map[string]*bgc.BGC, stores map[string]*seqstore.Store) (simil.Oracle, error) {
	switch cfg.Strategy {
	case config.ArchitectureOnly:
		return simil.UnavailableOracle{}, nil
	case config.PairwiseOnTheFly:
		return simil.NewPairwiseOracle(stores), nil
	case config.PrecomputedMSA:
		return buildPrecomputedOracle(cfg, bgcs, stores)
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
}

// buildPrecomputedOracle groups occurrences by family, aligns each family
// with >= 2 occurrences corpus-wide via mafft, and reduces the resulting
// alignment to a frozen similarity table (spec §4.3.1, §4.9, §5).
func buildPrecomputedOracle(cfg config.Config, bgcs map[string]*bgc.BGC, stores map[string]*seqstore.Store) (*simil.PrecomputedOracle, error) {
	type occKey struct {
		bgcName string
		occ     bgc.Occurrence
	}
	byFamily := make(map[string][]occKey)
	for name, b := range bgcs {
		for f := range b.Families() {
			for _, occ := range b.Occurrences(f) {
				byFamily[f] = append(byFamily[f], occKey{bgcName: name, occ: occ})
			}
		}
	}

	oracle := simil.NewPrecomputedOracle()
	tmp, err := os.MkdirTemp("", "trawl-mafft-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	for family, occs := range byFamily {
		if len(occs) < 2 {
			continue
		}

		fastaPath := filepath.Join(tmp, family+".fasta")
		wf, err := os.Create(fastaPath)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]occKey, len(occs))
		for _, ok := range occs {
			store := stores[ok.bgcName]
			seq, found := store.SequenceFor(ok.occ)
			if !found {
				continue
			}
			id := ok.bgcName + "/" + ok.occ.Key
			byID[id] = ok
			fmt.Fprintf(wf, ">%s\n%s\n", id, seq)
		}
		wf.Close()

		m := aligner.MAFFT{Cmd: *mafftPath, Auto: true, Quiet: true, Threads: cfg.Cores, Input: fastaPath}
		cmd, err := m.BuildCommand()
		if err != nil {
			return nil, fmt.Errorf("family %s: %w", family, err)
		}
		alignedPath := filepath.Join(tmp, family+".aln.fasta")
		out, err := os.Create(alignedPath)
		if err != nil {
			return nil, err
		}
		cmd.Stdout = out
		cmd.Stderr = os.Stderr
		err = cmd.Run()
		out.Close()
		if err != nil {
			return nil, fmt.Errorf("family %s: mafft: %w", family, err)
		}

		af, err := os.Open(alignedPath)
		if err != nil {
			return nil, err
		}
		ids, err := aligner.ReduceAlignment(af)
		af.Close()
		if err != nil {
			return nil, fmt.Errorf("family %s: %w", family, err)
		}
		for _, id := range ids {
			a, aok := byID[id.A]
			b, bok := byID[id.B]
			if !aok || !bok {
				continue
			}
			oracle.Add(family, a.occ, b.occ, id.Sim, id.Length)
		}
	}
	return oracle, nil
}

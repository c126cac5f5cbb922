// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// groupsum reports, for each unordered pair of BGC groups appearing in a
// network file emitted by trawl, the number of surviving edges between
// the two groups and their mean squared similarity.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
)

var in = flag.String("in", "", "network file emitted by trawl; reads stdin if unset")

// groupPair is an unordered pair of BGC group labels.
type groupPair struct{ a, b string }

func normalize(a, b string) groupPair {
	if a > b {
		a, b = b, a
	}
	return groupPair{a, b}
}

type tally struct {
	edges int
	sumSq float64
}

func main() {
	flag.Parse()

	r := io.Reader(os.Stdin)
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			log.Fatalf("failed to open %q: %v", *in, err)
		}
		defer f.Close()
		r = f
	}

	totals, err := summarize(r)
	if err != nil {
		log.Fatalf("groupsum: %v", err)
	}

	pairs := make([]groupPair, 0, len(totals))
	for p := range totals {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	for _, p := range pairs {
		t := totals[p]
		mean := t.sumSq / float64(t.edges)
		fmt.Printf("%s\t%s\t%d\t%g\n", p.a, p.b, t.edges, mean)
	}
}

// summarize reads a trawl network file and accumulates, per unordered
// group pair, the edge count and the sum of squared_similarity; rows with
// no group on either side (isolated-node rows) are skipped.
func summarize(r io.Reader) (map[groupPair]tally, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return nil, sc.Err()
	}
	header := strings.Split(sc.Text(), "\t")
	groupA, groupB, sqSim := -1, -1, -1
	for i, h := range header {
		switch h {
		case "group_A":
			groupA = i
		case "group_B":
			groupB = i
		case "squared_similarity":
			sqSim = i
		}
	}
	if groupA < 0 || groupB < 0 || sqSim < 0 {
		return nil, fmt.Errorf("groupsum: missing required column in header %q", sc.Text())
	}

	totals := make(map[groupPair]tally)
	for sc.Scan() {
		cols := strings.Split(sc.Text(), "\t")
		if groupA >= len(cols) || cols[groupA] == "" || cols[groupB] == "" {
			continue
		}
		sq, err := strconv.ParseFloat(cols[sqSim], 64)
		if err != nil {
			return nil, err
		}
		p := normalize(cols[groupA], cols[groupB])
		t := totals[p]
		t.edges++
		t.sumSq += sq
		totals[p] = t
	}
	return totals, sc.Err()
}

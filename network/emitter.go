// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/kortschak/trawl/config"
)

// Columns is the fixed output column order (spec §6).
var Columns = []string{
	"name_A", "name_B", "group_A", "class_A", "group_B", "class_B",
	"log2_sim", "raw_distance", "squared_similarity",
	"jaccard", "dds", "gk", "dds_non_anchor", "dds_anchor", "S", "S_anchor",
}

// Emit writes, for one similarity cutoff, the thresholded edge list over
// results (rows with d <= 1-cutoff, equivalently similarity >= cutoff)
// as a tab-separated stream with the fixed column order (spec §4.8, §6).
// allNames, when cfg.IncludeDisconnected is set, is the full BGC name
// universe used to additionally emit isolated nodes that survive no edge
// at this cutoff.
func Emit(w io.Writer, cfg config.Config, results []PairResult, cutoff float64, allNames []string) error {
	if _, err := fmt.Fprintln(w, headerLine()); err != nil {
		return err
	}

	maxDistance := 1 - cutoff
	g := simple.NewUndirectedGraph()
	ids := make(map[string]int64, len(allNames))
	for i, name := range allNames {
		id := int64(i)
		ids[name] = id
		g.AddNode(simple.Node(id))
	}

	for _, r := range results {
		if !r.Defined || r.Result.D > maxDistance {
			continue
		}
		if cfg.IncludeDisconnected {
			g.SetEdge(simple.Edge{F: simple.Node(ids[r.Key.A]), T: simple.Node(ids[r.Key.B])})
		}
		if err := writeRow(w, r); err != nil {
			return err
		}
	}

	if cfg.IncludeDisconnected {
		isolated := make([]string, 0)
		for _, name := range allNames {
			n := g.Node(ids[name])
			if n == nil {
				continue
			}
			if g.From(ids[name]).Len() == 0 {
				isolated = append(isolated, name)
			}
		}
		sort.Strings(isolated)
		for _, name := range isolated {
			if _, err := fmt.Fprintf(w, "%s\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t\n", name); err != nil {
				return err
			}
		}
	}

	return nil
}

func headerLine() string {
	s := Columns[0]
	for _, c := range Columns[1:] {
		s += "\t" + c
	}
	return s
}

func writeRow(w io.Writer, r PairResult) error {
	res := r.Result
	log2 := "inf"
	if !math.IsInf(res.Log2, 1) {
		log2 = fmt.Sprintf("%g", res.Log2)
	}
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%g\t%g\t%g\t%g\t%g\t%g\t%g\t%g\t%g\n",
		r.Key.A, r.Key.B,
		r.GroupA.Class, r.GroupA.Description,
		r.GroupB.Class, r.GroupB.Description,
		log2, res.D, (1-res.D)*(1-res.D),
		res.J, res.DDS, res.GK,
		res.DDSNonAnchor, res.DDSAnchor, res.SNonAnchor, res.SAnchor,
	)
	return err
}

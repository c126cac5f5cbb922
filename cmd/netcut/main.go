// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// netcut re-filters a network file emitted by trawl to a new similarity
// cutoff without recomputing any pair distance.
package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

var (
	in     = flag.String("in", "", "network file emitted by trawl at cutoff <= the requested cutoff (required)")
	out    = flag.String("out", "", "destination for the re-thresholded network (required)")
	cutoff = flag.Float64("cutoff", 1.0, "similarity cutoff in (0,1]; rows with similarity below this are dropped")
)

func main() {
	flag.Parse()
	if *in == "" || *out == "" || *cutoff <= 0 || *cutoff > 1 {
		flag.Usage()
		os.Exit(1)
	}

	rf, err := os.Open(*in)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *in, err)
	}
	defer rf.Close()

	wf, err := os.Create(*out)
	if err != nil {
		log.Fatalf("failed to create %q: %v", *out, err)
	}
	defer wf.Close()

	bw := bufio.NewWriter(wf)
	n, kept, err := rethreshold(rf, bw, *cutoff)
	if err != nil {
		log.Fatalf("rethreshold: %v", err)
	}
	if err := bw.Flush(); err != nil {
		log.Fatalf("failed to flush %q: %v", *out, err)
	}
	log.Printf("kept %d/%d rows at cutoff %v", kept, n, *cutoff)
}

// rethreshold copies the header and every isolated-node row verbatim, and
// drops any edge row whose raw_distance exceeds 1-cutoff: a network
// emitted at a looser (lower) cutoff is a strict superset of every
// tighter one, so no distance is ever recomputed.
func rethreshold(r io.Reader, w io.Writer, cutoff float64) (total, kept int, err error) {
	maxDistance := 1 - cutoff

	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return 0, 0, sc.Err()
	}
	header := sc.Text()
	fields := strings.Split(header, "\t")
	distCol := -1
	for i, f := range fields {
		if f == "raw_distance" {
			distCol = i
			break
		}
	}
	if distCol < 0 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	if _, err := io.WriteString(w, header+"\n"); err != nil {
		return 0, 0, err
	}

	for sc.Scan() {
		total++
		line := sc.Text()
		cols := strings.Split(line, "\t")
		if distCol >= len(cols) || cols[1] == "" {
			// Isolated-node row: no distance to re-threshold.
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return total, kept, err
			}
			kept++
			continue
		}
		d, err := strconv.ParseFloat(cols[distCol], 64)
		if err != nil {
			return total, kept, err
		}
		if d > maxDistance {
			continue
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return total, kept, err
		}
		kept++
	}
	return total, kept, sc.Err()
}

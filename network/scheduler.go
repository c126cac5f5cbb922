// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package network implements the pair scheduler (C7) and network emitter
// (C8): enumerating unordered BGC pairs, dispatching the distance kernel
// across a bounded worker pool, and serializing thresholded edge lists
// (spec §4.7, §4.8).
package network

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kortschak/trawl/bgc"
	"github.com/kortschak/trawl/config"
	"github.com/kortschak/trawl/distance"
	"github.com/kortschak/trawl/simil"
)

// PairKey canonicalises an unordered BGC pair with name_i < name_j
// lexicographically (spec §5).
type PairKey struct {
	A, B string
}

// PairResult is one computed (or undefined) pair distance, carrying
// enough context for the emitter to annotate an edge row.
type PairResult struct {
	Key     PairKey
	GroupA  bgc.Group
	GroupB  bgc.Group
	Result  distance.Result
	Defined bool
}

// pair enumeration task input.
type pairTask struct {
	idx  int
	a, b *bgc.BGC
}

// Schedule enumerates all unordered pairs over bgcs with at least one
// predicted domain, dispatches the distance kernel across cfg.Cores
// workers, and returns the results in stable (name_i, name_j) order
// together with any warnings collected along the way (spec §4.7, §5).
//
// If samples is non-nil, a pair is only evaluated when both BGCs belong
// to a common sample (spec §4.7's "restrict enumeration" filter); it is
// never a second computation.
func Schedule(ctx context.Context, cfg config.Config, bgcs map[string]*bgc.BGC, oracle simil.Oracle, samples map[string]map[string]bool) ([]PairResult, []bgc.Warning, error) {
	names := make([]string, 0, len(bgcs))
	for name, b := range bgcs {
		if b.HasDomains() {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var tasks []pairTask
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			ni, nj := names[i], names[j]
			if samples != nil && !shareSample(samples, ni, nj) {
				continue
			}
			tasks = append(tasks, pairTask{idx: len(tasks), a: bgcs[ni], b: bgcs[nj]})
		}
	}

	results := make([]PairResult, len(tasks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Cores)

	var mu sync.Mutex
	var warnings []bgc.Warning

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return nil
			default:
			}

			key := PairKey{A: task.a.Name, B: task.b.Name}
			if key.B < key.A {
				key.A, key.B = key.B, key.A
			}

			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					warnings = append(warnings, bgc.Warning{
						Kind:    "kernel-panic",
						Context: key.A + "/" + key.B,
						Message: "distance kernel panicked; pair omitted",
					})
					results[task.idx] = PairResult{Key: key}
					mu.Unlock()
				}
			}()

			res := distance.Kernel(cfg, task.a, task.b, oracle)
			results[task.idx] = PairResult{
				Key:     key,
				GroupA:  groupFor(task.a, task.b, key.A),
				GroupB:  groupFor(task.a, task.b, key.B),
				Result:  res,
				Defined: true,
			}
			return nil
		})
	}
	// Tasks always return nil: a kernel fault is recorded as an undefined
	// result rather than aborting the whole run (spec §5, §7).
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Key.A != results[j].Key.A {
			return results[i].Key.A < results[j].Key.A
		}
		return results[i].Key.B < results[j].Key.B
	})

	return results, warnings, nil
}

func groupFor(a, b *bgc.BGC, name string) bgc.Group {
	if a.Name == name {
		return a.Group
	}
	return b.Group
}

func shareSample(samples map[string]map[string]bool, a, b string) bool {
	for _, members := range samples {
		if members[a] && members[b] {
			return true
		}
	}
	return false
}

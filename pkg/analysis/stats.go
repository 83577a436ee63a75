// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package analysis turns stored traceroute runs into latency statistics
// and a merged forwarding topology. It never mutates the store.
package analysis

import (
	"fmt"
	"math"
	"slices"

	"github.com/telekom/skylark/pkg/store"
)

// Aggregate holds summary statistics over a set of latency samples.
// Count zero marks a group with no data; Mean, Min and Max are then
// meaningless and stay zero. Stdev is the sample standard deviation
// (divisor n-1) and is nil when fewer than two samples exist, which keeps
// "not defined" distinguishable from a true deviation of zero.
type Aggregate struct {
	Count int      `json:"count"`
	Mean  float64  `json:"mean"`
	Min   float64  `json:"min"`
	Max   float64  `json:"max"`
	Stdev *float64 `json:"stdev,omitempty"`
}

// HopStats is the aggregate of one hop index across every run of a target.
type HopStats struct {
	// Index is the hop's TTL distance.
	Index int `json:"index"`
	// Hosts lists the distinct addresses observed at this hop across runs,
	// annotated with their hostname when one is known. A hop that never
	// answered is listed as "???".
	Hosts []string `json:"hosts"`
	Aggregate
}

// TargetStats is the per-hop latency breakdown of one target.
type TargetStats struct {
	Target string     `json:"target"`
	Hops   []HopStats `json:"hops"`
	// Total aggregates every sample of every hop regardless of index.
	Total Aggregate `json:"total"`
}

// TargetSummary is the one-row-per-target view over the whole store.
type TargetSummary struct {
	Target string `json:"target"`
	// Runs counts the runs that recorded path data.
	Runs int `json:"runs"`
	// EmptyRuns counts the "no data" runs.
	EmptyRuns int `json:"emptyRuns"`
	Aggregate
}

// Aggregator computes latency statistics over a run store. It only reads
// the store, so independent invocations may run concurrently.
type Aggregator struct {
	store *store.Store
}

func NewAggregator(s *store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// StatsFor unions the samples of every run of target at the same hop index
// and aggregates each index as well as the union of all samples. Runs with
// fewer hops simply contribute nothing at the indices they never reached.
func (a *Aggregator) StatsFor(target string) TargetStats {
	ts := TargetStats{Target: target}

	var perHop [][]float64
	var all []float64
	hosts := map[int]map[string]struct{}{}
	names := map[string]string{}

	for _, run := range a.store.History(target) {
		if run.NoData() {
			continue
		}
		for i, hop := range run.Hops {
			if i == len(perHop) {
				perHop = append(perHop, nil)
			}
			perHop[i] = append(perHop[i], hop.Samples...)
			all = append(all, hop.Samples...)

			if hosts[i] == nil {
				hosts[i] = map[string]struct{}{}
			}
			for _, addr := range hop.Addresses {
				hosts[i][addr] = struct{}{}
				if hop.Hostname != "" {
					names[addr] = hop.Hostname
				}
			}
		}
	}

	for i, samples := range perHop {
		ts.Hops = append(ts.Hops, HopStats{
			Index:     i + 1,
			Hosts:     formatHosts(hosts[i], names),
			Aggregate: aggregate(samples),
		})
	}
	ts.Total = aggregate(all)
	return ts
}

// StatsForAll aggregates every sample of every hop of every run, one
// summary row per target, in target order.
func (a *Aggregator) StatsForAll() []TargetSummary {
	targets := a.store.Targets()
	summaries := make([]TargetSummary, 0, len(targets))

	for _, target := range targets {
		summary := TargetSummary{Target: target}
		var all []float64
		for _, run := range a.store.History(target) {
			if run.NoData() {
				summary.EmptyRuns++
				continue
			}
			summary.Runs++
			for _, hop := range run.Hops {
				all = append(all, hop.Samples...)
			}
		}
		summary.Aggregate = aggregate(all)
		summaries = append(summaries, summary)
	}
	return summaries
}

// aggregate computes the summary statistics of samples. The zero Aggregate
// is the placeholder for an empty sample set.
func aggregate(samples []float64) Aggregate {
	agg := Aggregate{Count: len(samples)}
	if agg.Count == 0 {
		return agg
	}

	var sum float64
	agg.Min = samples[0]
	agg.Max = samples[0]
	for _, s := range samples {
		sum += s
		agg.Min = math.Min(agg.Min, s)
		agg.Max = math.Max(agg.Max, s)
	}
	agg.Mean = sum / float64(agg.Count)

	// The sample standard deviation needs at least two observations.
	if agg.Count >= 2 {
		var sq float64
		for _, s := range samples {
			sq += (s - agg.Mean) * (s - agg.Mean)
		}
		stdev := math.Sqrt(sq / float64(agg.Count-1))
		agg.Stdev = &stdev
	}
	return agg
}

// formatHosts renders the address set of one hop, annotating addresses
// whose hostname is known. An empty set renders as the unknown marker.
func formatHosts(addrs map[string]struct{}, names map[string]string) []string {
	if len(addrs) == 0 {
		return []string{"???"}
	}

	out := make([]string, 0, len(addrs))
	for addr := range addrs {
		if name, ok := names[addr]; ok {
			out = append(out, fmt.Sprintf("%s (%s)", addr, name))
			continue
		}
		out = append(out, addr)
	}
	slices.Sort(out)
	return out
}

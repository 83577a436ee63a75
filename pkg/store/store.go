// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package store keeps per-target histories of completed traceroute runs.
//
// The store is append-only: runs are added in completion order and a stored
// run is never edited or removed. Aggregations may therefore read
// concurrently without coordination. The package also implements the
// persisted JSON format, one file per store, mapping each target to its
// ordered run history. The file codec never mutates previously written run
// objects when appending; concurrent writers to the same file must bring
// their own mutual exclusion.
package store

import (
	"slices"
	"sync"

	"github.com/telekom/skylark/internal/traceroute"
)

// Store holds the run histories of all targets.
type Store struct {
	mu   sync.RWMutex
	runs map[string][]traceroute.Run
}

// New creates an empty store.
func New() *Store {
	return &Store{runs: map[string][]traceroute.Run{}}
}

// Append adds a completed run to the history of its target.
func (s *Store) Append(run traceroute.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.Target] = append(s.runs[run.Target], run)
}

// History returns the runs recorded for target in completion order.
// The returned slice is a copy; stored runs stay untouched.
func (s *Store) History(target string) []traceroute.Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.runs[target])
}

// Targets returns all recorded targets in lexicographic order.
func (s *Store) Targets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	targets := make([]string, 0, len(s.runs))
	for target := range s.runs {
		targets = append(targets, target)
	}
	slices.Sort(targets)
	return targets
}

// Merge appends every run of other to s, preserving other's per-target
// run order.
func (s *Store) Merge(other *Store) {
	for _, target := range other.Targets() {
		for _, run := range other.History(target) {
			s.Append(run)
		}
	}
}

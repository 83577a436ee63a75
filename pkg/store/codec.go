// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"encoding/json"
	"time"

	"github.com/telekom/skylark/internal/traceroute"
)

// noData is the sentinel stored in a run's data field when the run
// recorded no path information.
const noData = "No data"

// runJSON is the persisted form of one run. Data is either the noData
// sentinel or an array of hop objects; anything else loads as "no data"
// rather than failing, so a damaged store still aggregates.
type runJSON struct {
	Cmd         string          `json:"cmd"`
	Description string          `json:"description,omitempty"`
	Timestamp   string          `json:"timestamp"`
	TimeTaken   float64         `json:"time_taken_in_secs,omitempty"`
	Data        json.RawMessage `json:"data"`
}

func encodeRun(run traceroute.Run) (runJSON, error) {
	rj := runJSON{
		Cmd:         run.Command,
		Description: run.Description,
		Timestamp:   run.Timestamp.Format(time.RFC3339Nano),
		TimeTaken:   run.Duration,
	}

	if run.NoData() {
		data, err := json.Marshal(noData)
		if err != nil {
			return runJSON{}, err
		}
		rj.Data = data
		return rj, nil
	}

	data, err := json.Marshal(run.Hops)
	if err != nil {
		return runJSON{}, err
	}
	rj.Data = data
	return rj, nil
}

func decodeRun(target string, rj runJSON) traceroute.Run {
	run := traceroute.Run{
		Target:      target,
		Command:     rj.Cmd,
		Description: rj.Description,
		Duration:    rj.TimeTaken,
	}

	// A timestamp that does not parse leaves the zero time in place; the
	// run itself is still usable for aggregation.
	if ts, err := time.Parse(time.RFC3339Nano, rj.Timestamp); err == nil {
		run.Timestamp = ts
	}

	var hops []traceroute.Hop
	if err := json.Unmarshal(rj.Data, &hops); err != nil {
		// Non-list data means "no data", never a failure.
		return run
	}
	run.Hops = hops
	return run
}

// MarshalJSON renders the store in the persisted format: a mapping from
// target to the target's ordered run history.
func (s *Store) MarshalJSON() ([]byte, error) {
	out := map[string][]runJSON{}
	for _, target := range s.Targets() {
		history := s.History(target)
		runs := make([]runJSON, 0, len(history))
		for _, run := range history {
			rj, err := encodeRun(run)
			if err != nil {
				return nil, err
			}
			runs = append(runs, rj)
		}
		out[target] = runs
	}
	return json.Marshal(out)
}

// UnmarshalJSON loads a persisted store, replacing the store's contents.
func (s *Store) UnmarshalJSON(data []byte) error {
	var raw map[string][]runJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = make(map[string][]traceroute.Run, len(raw))
	for target, runs := range raw {
		history := make([]traceroute.Run, 0, len(runs))
		for _, rj := range runs {
			history = append(history, decodeRun(target, rj))
		}
		s.runs[target] = history
	}
	return nil
}

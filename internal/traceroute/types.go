// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"fmt"
	"strings"
	"time"
)

// Hop is one TTL step within a single traceroute run.
type Hop struct {
	// Index is the hop's distance from the source, equal to the TTL of the
	// probes that produced it. Strictly increasing within a run.
	Index int `json:"index"`
	// Addresses are the distinct addresses that answered probes for this
	// hop, in order of first appearance. More than one address occurs when
	// probes return from different interfaces.
	Addresses []string `json:"addresses,omitempty"`
	// Hostname is the name the probe tool resolved for the hop. Empty when
	// the hop answered from more than one address, or when the name would
	// only repeat the sole recorded address.
	Hostname string `json:"hostname,omitempty"`
	// Samples holds one round-trip time in milliseconds per answered
	// probe, in probe order.
	Samples []float64 `json:"results"`
	// Timeouts counts the probes that returned nothing.
	// len(Samples) + Timeouts always equals the run's probes per hop.
	Timeouts int `json:"timeouts,omitempty"`
}

// Received returns the number of probes this hop answered.
func (h Hop) Received() int {
	return len(h.Samples)
}

func (h Hop) String() string {
	name := h.Hostname
	if name == "" {
		name = strings.Join(h.Addresses, ", ")
	}
	if name == "" {
		name = "*"
	}
	return fmt.Sprintf("%-2d  %-45.45s  %d received, %d lost", h.Index, name, len(h.Samples), h.Timeouts)
}

// Run is the outcome of one invocation of the probe tool against one
// target. A Run is assembled incrementally while output lines arrive and
// is immutable once the run ends.
type Run struct {
	// Target is the host the probe tool was pointed at.
	Target string
	// Command is the full command line the run was produced by.
	Command string
	// Description is the banner line printed before the first hop.
	Description string
	// Timestamp is the time the run was started.
	Timestamp time.Time
	// Duration is the wall-clock time in seconds spent reading hop lines.
	Duration float64
	// Hops is the ordered hop sequence. Empty for a "no data" run, e.g.
	// when the probe produced no path output at all.
	Hops []Hop
}

// NoData reports whether the run recorded no path data. Such runs are
// kept: they show that a measurement was attempted and came back empty.
func (r Run) NoData() bool {
	return len(r.Hops) == 0
}

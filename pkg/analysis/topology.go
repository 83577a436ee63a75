// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"fmt"
	"slices"
	"strings"

	"github.com/telekom/skylark/internal/traceroute"
	"github.com/telekom/skylark/pkg/store"
)

// Edge is one directed hop transition observed in at least one run.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the merged forwarding topology of a set of targets. Node ids are
// either observed addresses or synthesized "???#N" placeholders standing in
// for hops that never answered. Repeated observations of the same transition
// collapse into a single edge.
type Graph struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
	// Labels maps a node id to its hostname when every run agrees on it.
	// Addresses that resolved to different names in different runs stay
	// unlabelled.
	Labels map[string]string `json:"labels,omitempty"`
}

// Builder merges run histories into a topology graph. Like the Aggregator
// it only reads the store.
type Builder struct {
	store *store.Store
}

func NewBuilder(s *store.Store) *Builder {
	return &Builder{store: s}
}

// BuildGraph merges every run of the given targets into one graph. Targets
// are processed in sorted order so the node and edge ordering is stable
// across invocations. An empty target list means the whole store.
func (b *Builder) BuildGraph(targets []string) Graph {
	if len(targets) == 0 {
		targets = b.store.Targets()
	} else {
		targets = slices.Clone(targets)
		slices.Sort(targets)
	}

	g := graphBuilder{
		seenNode:   map[string]struct{}{},
		seenEdge:   map[Edge]struct{}{},
		names:      map[string]string{},
		conflicted: map[string]struct{}{},
	}
	for _, target := range targets {
		for _, run := range b.store.History(target) {
			if run.NoData() {
				continue
			}
			g.merge(target, run.Hops)
		}
	}

	graph := Graph{Nodes: g.nodes, Edges: g.edges, Labels: map[string]string{}}
	for addr, name := range g.names {
		if _, ok := g.conflicted[addr]; ok {
			continue
		}
		if _, ok := g.seenNode[addr]; ok {
			graph.Labels[addr] = name
		}
	}
	return graph
}

type graphBuilder struct {
	nodes    []string
	edges    []Edge
	seenNode map[string]struct{}
	seenEdge map[Edge]struct{}

	// names accumulates the hostname overlay; an address that resolved to
	// more than one name across the merge lands in conflicted instead.
	names      map[string]string
	conflicted map[string]struct{}

	// placeholders counts across the whole build so no two runs ever share
	// a synthesized node, even for the same predecessor chain.
	placeholders int
}

// merge folds one run into the graph. Placeholder assignment is local to
// the run: once a gap following some predecessor has been given a node,
// every later gap after that same predecessor in this run reuses it, so one
// unobserved hop becomes one node rather than one per predecessor.
func (g *graphBuilder) merge(target string, hops []traceroute.Hop) {
	addrs := make([][]string, len(hops))
	for i, hop := range hops {
		addrs[i] = hop.Addresses
		if len(addrs[i]) == 1 && hop.Hostname != "" {
			g.recordName(addrs[i][0], hop.Hostname)
		}
	}

	if len(addrs[0]) == 0 {
		addrs[0] = []string{g.placeholder()}
	}

	succ := map[string]string{}
	for i := 1; i < len(addrs); i++ {
		if len(addrs[i]) == 0 {
			node := ""
			for _, prev := range addrs[i-1] {
				if n, ok := succ[prev]; ok {
					node = n
					break
				}
			}
			if node == "" {
				node = g.placeholder()
			}
			for _, prev := range addrs[i-1] {
				if _, ok := succ[prev]; !ok {
					succ[prev] = node
				}
			}
			addrs[i] = []string{node}
		}

		currents := addrs[i]
		if i == len(addrs)-1 {
			currents = tagTerminals(currents, target)
		}
		for _, prev := range addrs[i-1] {
			for _, cur := range currents {
				g.addEdge(prev, cur)
			}
		}
	}
}

func (g *graphBuilder) placeholder() string {
	g.placeholders++
	return fmt.Sprintf("???#%d", g.placeholders)
}

func (g *graphBuilder) recordName(addr, name string) {
	if known, ok := g.names[addr]; ok && known != name {
		g.conflicted[addr] = struct{}{}
		return
	}
	g.names[addr] = name
}

func (g *graphBuilder) addEdge(from, to string) {
	e := Edge{From: from, To: to}
	if _, ok := g.seenEdge[e]; ok {
		return
	}
	g.seenEdge[e] = struct{}{}
	g.edges = append(g.edges, e)
	g.addNode(from)
	g.addNode(to)
}

func (g *graphBuilder) addNode(id string) {
	if _, ok := g.seenNode[id]; ok {
		return
	}
	g.seenNode[id] = struct{}{}
	g.nodes = append(g.nodes, id)
}

// tagTerminals suffixes the final hop's nodes with the run's target so
// destinations sharing a path prefix stay distinguishable. Nodes that
// already carry the tag, such as a placeholder reused as terminal in an
// earlier run of the same target, are left alone.
func tagTerminals(currents []string, target string) []string {
	tag := "<" + target + ">"
	tagged := make([]string, 0, len(currents))
	for _, cur := range currents {
		if strings.Contains(cur, tag) {
			tagged = append(tagged, cur)
			continue
		}
		tagged = append(tagged, cur+"\n"+tag)
	}
	return tagged
}

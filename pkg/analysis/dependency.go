// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package analysis builds predicate dependency graphs and decides the two
// structural gates of the verification pipeline: tightness (required for
// completion) and absence of private recursion (required for external
// equivalence decomposition).
package analysis

import (
	"github.com/teiesti/anthem-next/pkg/syntax"
)

// DependencyGraph is the predicate dependency graph of a program.  Vertices
// are predicates; an edge p -> q exists when q occurs in the body of a rule
// with head p.  The edge is positive when some such occurrence carries no
// negation at all.
type DependencyGraph struct {
	vertices *syntax.PredicateSet
	// positive[p] holds the targets of positive edges out of p.
	positive map[syntax.Predicate][]syntax.Predicate
	// all[p] holds the targets of every edge out of p.
	all map[syntax.Predicate][]syntax.Predicate
}

// NewDependencyGraph builds the dependency graph of a program.
func NewDependencyGraph(program *syntax.Program) *DependencyGraph {
	g := &DependencyGraph{
		vertices: program.Predicates(),
		positive: make(map[syntax.Predicate][]syntax.Predicate),
		all:      make(map[syntax.Predicate][]syntax.Predicate),
	}
	//
	for i := range program.Rules {
		rule := &program.Rules[i]
		//
		head, ok := rule.HeadPredicate()
		if !ok {
			continue
		}
		//
		for _, q := range rule.BodyPredicates().Slice() {
			g.all[head] = addEdge(g.all[head], q)
		}
		//
		for _, q := range rule.PositiveBodyPredicates().Slice() {
			g.positive[head] = addEdge(g.positive[head], q)
		}
	}
	//
	return g
}

func addEdge(targets []syntax.Predicate, q syntax.Predicate) []syntax.Predicate {
	for _, t := range targets {
		if t == q {
			return targets
		}
	}
	//
	return append(targets, q)
}

// Vertices returns the graph's predicates in order of first occurrence.
func (g *DependencyGraph) Vertices() []syntax.Predicate {
	return g.vertices.Slice()
}

// PositiveCycle returns a cycle through positive edges only, or false when
// the positive subgraph is acyclic.  The witness lists the predicates along
// the cycle in order, starting and ending at the same predicate.
func (g *DependencyGraph) PositiveCycle() ([]syntax.Predicate, bool) {
	return findCycle(g.vertices.Slice(), g.positive, nil)
}

// CycleWithin returns a cycle whose every vertex lies in the restriction set,
// following edges of either polarity, or false if no such cycle exists.
func (g *DependencyGraph) CycleWithin(restriction *syntax.PredicateSet) ([]syntax.Predicate, bool) {
	return findCycle(g.vertices.Slice(), g.all, restriction)
}

// Iterative DFS with an explicit path, so the witness can be reported.  A
// vertex is grey while on the current path; revisiting a grey vertex closes a
// cycle.
func findCycle(vertices []syntax.Predicate, edges map[syntax.Predicate][]syntax.Predicate,
	restriction *syntax.PredicateSet) ([]syntax.Predicate, bool) {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	//
	color := make(map[syntax.Predicate]int)
	//
	var (
		path  []syntax.Predicate
		cycle []syntax.Predicate
	)
	//
	allowed := func(p syntax.Predicate) bool {
		return restriction == nil || restriction.Contains(p)
	}
	//
	var visit func(p syntax.Predicate) bool
	//
	visit = func(p syntax.Predicate) bool {
		color[p] = grey
		path = append(path, p)
		//
		for _, q := range edges[p] {
			if !allowed(q) {
				continue
			}
			//
			switch color[q] {
			case grey:
				// Close the cycle at q.
				for i, r := range path {
					if r == q {
						cycle = append(append(cycle, path[i:]...), q)
						break
					}
				}
				//
				return true
			case white:
				if visit(q) {
					return true
				}
			}
		}
		//
		color[p] = black
		path = path[:len(path)-1]
		//
		return false
	}
	//
	for _, p := range vertices {
		if allowed(p) && color[p] == white {
			if visit(p) {
				return cycle, true
			}
		}
	}
	//
	return nil, false
}

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
package analysis

import (
	"fmt"
	"strings"

	"github.com/teiesti/anthem-next/pkg/syntax"
)

// Tight reports whether a program is tight, i.e. whether its dependency
// graph restricted to positive edges is acyclic.  When it is not, the
// returned error is a *NotTightError carrying a witnessing cycle.
func Tight(program *syntax.Program) error {
	g := NewDependencyGraph(program)
	//
	if cycle, ok := g.PositiveCycle(); ok {
		return &NotTightError{cycle}
	}
	//
	return nil
}

// NotTightError reports a positive dependency cycle.
type NotTightError struct {
	Cycle []syntax.Predicate
}

func (e *NotTightError) Error() string {
	return fmt.Sprintf("program is not tight: positive dependency cycle %s", formatCycle(e.Cycle))
}

// PrivateRecursionFree reports whether a program is free of private
// recursion with respect to the given partition of predicates into private
// and public.  A program has private recursion when its dependency graph has
// a cycle visiting only private predicates (edges of either polarity count),
// or when a choice rule's head predicate is private.  When recursion is
// found, the returned error is a *PrivateRecursionError.
func PrivateRecursionFree(program *syntax.Program, private *syntax.PredicateSet) error {
	for i := range program.Rules {
		rule := &program.Rules[i]
		//
		if rule.Kind == syntax.ChoiceRule && private.Contains(rule.Head.PredicateOf()) {
			return &PrivateRecursionError{ChoiceHead: rule.Head.PredicateOf()}
		}
	}
	//
	g := NewDependencyGraph(program)
	//
	if cycle, ok := g.CycleWithin(private); ok {
		return &PrivateRecursionError{Cycle: cycle}
	}
	//
	return nil
}

// PrivateRecursionError reports either a dependency cycle confined to
// private predicates or a choice rule with a private head.
type PrivateRecursionError struct {
	Cycle      []syntax.Predicate
	ChoiceHead syntax.Predicate
}

func (e *PrivateRecursionError) Error() string {
	if len(e.Cycle) > 0 {
		return fmt.Sprintf("private recursion: dependency cycle %s over private predicates", formatCycle(e.Cycle))
	}
	//
	return fmt.Sprintf("private recursion: choice rule head %s is a private predicate", e.ChoiceHead)
}

func formatCycle(cycle []syntax.Predicate) string {
	parts := make([]string, len(cycle))
	for i, p := range cycle {
		parts[i] = p.String()
	}
	//
	return strings.Join(parts, " -> ")
}

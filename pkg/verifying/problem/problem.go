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

// Package problem defines the proof problems handed to an external theorem
// prover, together with their rendering into typed first-order form (TFF).
package problem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teiesti/anthem-next/pkg/syntax"
)

// Role of a formula within a proof problem.
type Role int

const (
	Axiom Role = iota
	Conjecture
)

func (r Role) String() string {
	switch r {
	case Axiom:
		return "axiom"
	case Conjecture:
		return "conjecture"
	default:
		panic("unreachable")
	}
}

// AnnotatedFormula is one named, role-tagged formula of a proof problem.
type AnnotatedFormula struct {
	Name    string
	Role    Role
	Formula syntax.Formula
}

// Problem is a self-contained proof obligation: a set of axioms and one or
// more conjectures over the standard interpretation.
type Problem struct {
	Name     string
	Formulas []AnnotatedFormula
}

// NewProblem constructs a named problem over the given formulas.
func NewProblem(name string, formulas ...AnnotatedFormula) Problem {
	return Problem{Name: name, Formulas: formulas}
}

// Axioms returns the axioms of the problem, in order.
func (p *Problem) Axioms() []AnnotatedFormula {
	return p.withRole(Axiom)
}

// Conjectures returns the conjectures of the problem, in order.
func (p *Problem) Conjectures() []AnnotatedFormula {
	return p.withRole(Conjecture)
}

func (p *Problem) withRole(role Role) []AnnotatedFormula {
	var out []AnnotatedFormula
	//
	for _, f := range p.Formulas {
		if f.Role == role {
			out = append(out, f)
		}
	}
	//
	return out
}

// Predicates returns every predicate occurring in the problem, in order of
// first occurrence.
func (p *Problem) Predicates() *syntax.PredicateSet {
	acc := syntax.NewPredicateSet()
	//
	for _, f := range p.Formulas {
		acc.AddAll(syntax.FormulaPredicates(f.Formula))
	}
	//
	return acc
}

// Symbols returns every symbolic constant occurring in the problem, in order
// of first occurrence.
func (p *Problem) Symbols() []string {
	var (
		out  []string
		seen = make(map[string]bool)
	)
	//
	for _, f := range p.Formulas {
		for _, s := range syntax.Symbols(f.Formula) {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	//
	return out
}

// Placeholders returns every placeholder occurring in the problem, in order
// of first occurrence.
func (p *Problem) Placeholders() []syntax.Placeholder {
	var (
		out  []syntax.Placeholder
		seen = make(map[syntax.Placeholder]bool)
	)
	//
	for _, f := range p.Formulas {
		for _, ph := range syntax.Placeholders(f.Formula) {
			if !seen[ph] {
				seen[ph] = true
				out = append(out, ph)
			}
		}
	}
	//
	return out
}

// DecomposeIndependent splits a multi-conjecture problem into one problem
// per conjecture, each carrying all axioms.
func (p *Problem) DecomposeIndependent() []Problem {
	var (
		axioms = p.Axioms()
		out    []Problem
	)
	//
	for i, c := range p.Conjectures() {
		formulas := make([]AnnotatedFormula, 0, len(axioms)+1)
		formulas = append(formulas, axioms...)
		formulas = append(formulas, c)
		//
		out = append(out, Problem{Name: decomposedName(p.Name, i), Formulas: formulas})
	}
	//
	return out
}

// DecomposeSequential splits a multi-conjecture problem into one problem per
// conjecture, where each problem additionally assumes all earlier
// conjectures as axioms.
func (p *Problem) DecomposeSequential() []Problem {
	var (
		acc = p.Axioms()
		out []Problem
	)
	//
	for i, c := range p.Conjectures() {
		formulas := make([]AnnotatedFormula, len(acc), len(acc)+1)
		copy(formulas, acc)
		formulas = append(formulas, c)
		//
		out = append(out, Problem{Name: decomposedName(p.Name, i), Formulas: formulas})
		//
		acc = append(acc, AnnotatedFormula{Name: c.Name, Role: Axiom, Formula: c.Formula})
	}
	//
	return out
}

func decomposedName(base string, index int) string {
	return fmt.Sprintf("%s_%d", base, index+1)
}

// Render serializes the problem into TFF: the standard prelude, the
// problem-specific type declarations, ordering axioms over the symbolic
// constants, and finally the annotated formulas.
func (p *Problem) Render() string {
	var buf strings.Builder
	//
	buf.WriteString(StandardPrelude)
	//
	for i, pred := range p.Predicates().Slice() {
		fmt.Fprintf(&buf, "tff(predicate_%d, type, %s: %s).\n", i, pred.Symbol, predicateType(pred.Arity))
	}
	//
	for i, s := range p.Symbols() {
		fmt.Fprintf(&buf, "tff(type_symbol_%d, type, %s: symbol).\n", i, s)
	}
	//
	for i, ph := range p.Placeholders() {
		fmt.Fprintf(&buf, "tff(type_placeholder_%d, type, %s: %s).\n", i, ph.Name, sortType(ph.Sort))
	}
	//
	// The symbolic constants are interpreted as pairwise distinct and ordered
	// lexicographically; chaining adjacent pairs of the sorted list suffices
	// since p__less__ is a strict total order.
	symbols := append([]string(nil), p.Symbols()...)
	sort.Strings(symbols)
	//
	for i := 1; i < len(symbols); i++ {
		fmt.Fprintf(&buf, "tff(symbol_order_%d, axiom, p__less__(f__symbolic__(%s), f__symbolic__(%s))).\n",
			i-1, symbols[i-1], symbols[i])
	}
	//
	for _, f := range p.Formulas {
		fmt.Fprintf(&buf, "tff(%s, %s, %s).\n", f.Name, f.Role, FormatFormula(f.Formula))
	}
	//
	return buf.String()
}

func predicateType(arity int) string {
	if arity == 0 {
		return "$o"
	}
	//
	args := make([]string, arity)
	for i := range args {
		args[i] = "general"
	}
	//
	return "(" + strings.Join(args, " * ") + ") > $o"
}

func sortType(s syntax.Sort) string {
	switch s {
	case syntax.General:
		return "general"
	case syntax.Integer:
		return "$int"
	case syntax.Symbol:
		return "symbol"
	default:
		panic("unreachable")
	}
}

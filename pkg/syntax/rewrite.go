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
package syntax

import (
	"fmt"
	"reflect"
	"strconv"
)

// Apply rewrites a formula bottom-up: children first, then the given function
// on the (rebuilt) node itself.  The input tree is never mutated.
func Apply(f Formula, fn func(Formula) Formula) Formula {
	switch f := f.(type) {
	case Truth, Falsity, *Atom, *Comparison:
		return fn(f)
	case *Negation:
		return fn(&Negation{Apply(f.Formula, fn)})
	case *Conjunction:
		return fn(&Conjunction{applyAll(f.Args, fn)})
	case *Disjunction:
		return fn(&Disjunction{applyAll(f.Args, fn)})
	case *Implication:
		return fn(&Implication{Apply(f.Lhs, fn), Apply(f.Rhs, fn)})
	case *Equivalence:
		return fn(&Equivalence{Apply(f.Lhs, fn), Apply(f.Rhs, fn)})
	case *Universal:
		return fn(&Universal{f.Variables, Apply(f.Formula, fn)})
	case *Existential:
		return fn(&Existential{f.Variables, Apply(f.Formula, fn)})
	}
	//
	panic("unreachable")
}

func applyAll(fs []Formula, fn func(Formula) Formula) []Formula {
	out := make([]Formula, len(fs))
	for i, f := range fs {
		out[i] = Apply(f, fn)
	}
	//
	return out
}

// EqualFormula reports structural equality of two formulas.
func EqualFormula(lhs, rhs Formula) bool {
	return reflect.DeepEqual(lhs, rhs)
}

// EqualTerm reports structural equality of two terms.
func EqualTerm(lhs, rhs Term) bool {
	return reflect.DeepEqual(lhs, rhs)
}

// FreeVariables returns the free variables of a formula in order of first
// occurrence.
func FreeVariables(f Formula) *VariableSet {
	acc := NewVariableSet()
	freeVariables(f, NewVariableSet(), acc)
	//
	return acc
}

func freeVariables(f Formula, bound, acc *VariableSet) {
	switch f := f.(type) {
	case Truth, Falsity:
		// nothing
	case *Atom:
		for _, t := range f.Terms {
			freeTermVariables(t, bound, acc)
		}
	case *Comparison:
		freeTermVariables(f.Term, bound, acc)
		for _, g := range f.Guards {
			freeTermVariables(g.Term, bound, acc)
		}
	case *Negation:
		freeVariables(f.Formula, bound, acc)
	case *Conjunction:
		for _, g := range f.Args {
			freeVariables(g, bound, acc)
		}
	case *Disjunction:
		for _, g := range f.Args {
			freeVariables(g, bound, acc)
		}
	case *Implication:
		freeVariables(f.Lhs, bound, acc)
		freeVariables(f.Rhs, bound, acc)
	case *Equivalence:
		freeVariables(f.Lhs, bound, acc)
		freeVariables(f.Rhs, bound, acc)
	case *Universal:
		freeQuantified(f.Variables, f.Formula, bound, acc)
	case *Existential:
		freeQuantified(f.Variables, f.Formula, bound, acc)
	default:
		panic("unreachable")
	}
}

func freeQuantified(vars []Variable, body Formula, bound, acc *VariableSet) {
	inner := NewVariableSet()
	inner.AddAll(bound)
	//
	for _, v := range vars {
		inner.Add(v)
	}
	//
	freeVariables(body, inner, acc)
}

func freeTermVariables(t Term, bound, acc *VariableSet) {
	vars := NewVariableSet()
	TermVariables(t, vars)
	//
	for _, v := range vars.Slice() {
		if !bound.Contains(v) {
			acc.Add(v)
		}
	}
}

// AllVariables returns every variable occurring in a formula, free or bound.
func AllVariables(f Formula) *VariableSet {
	acc := NewVariableSet()
	//
	Apply(f, func(g Formula) Formula {
		switch g := g.(type) {
		case *Atom:
			for _, t := range g.Terms {
				TermVariables(t, acc)
			}
		case *Comparison:
			TermVariables(g.Term, acc)
			for _, gd := range g.Guards {
				TermVariables(gd.Term, acc)
			}
		case *Universal:
			for _, v := range g.Variables {
				acc.Add(v)
			}
		case *Existential:
			for _, v := range g.Variables {
				acc.Add(v)
			}
		}
		return g
	})
	//
	return acc
}

// Substitute replaces every free occurrence of a variable by a term.  The
// replacement term must not contain variables captured by inner quantifiers;
// every caller in this module substitutes either fresh or rule-global
// variables, for which this holds.
func Substitute(f Formula, v Variable, r Term) Formula {
	switch f := f.(type) {
	case Truth, Falsity:
		return f
	case *Atom:
		terms := make([]Term, len(f.Terms))
		for i, t := range f.Terms {
			terms[i] = SubstituteTerm(t, v, r)
		}
		//
		return &Atom{f.Predicate, terms}
	case *Comparison:
		guards := make([]Guard, len(f.Guards))
		for i, g := range f.Guards {
			guards[i] = Guard{g.Relation, SubstituteTerm(g.Term, v, r)}
		}
		//
		return &Comparison{SubstituteTerm(f.Term, v, r), guards}
	case *Negation:
		return &Negation{Substitute(f.Formula, v, r)}
	case *Conjunction:
		return &Conjunction{substituteAll(f.Args, v, r)}
	case *Disjunction:
		return &Disjunction{substituteAll(f.Args, v, r)}
	case *Implication:
		return &Implication{Substitute(f.Lhs, v, r), Substitute(f.Rhs, v, r)}
	case *Equivalence:
		return &Equivalence{Substitute(f.Lhs, v, r), Substitute(f.Rhs, v, r)}
	case *Universal:
		if containsVariable(f.Variables, v) {
			return f
		}
		//
		return &Universal{f.Variables, Substitute(f.Formula, v, r)}
	case *Existential:
		if containsVariable(f.Variables, v) {
			return f
		}
		//
		return &Existential{f.Variables, Substitute(f.Formula, v, r)}
	}
	//
	panic("unreachable")
}

func substituteAll(fs []Formula, v Variable, r Term) []Formula {
	out := make([]Formula, len(fs))
	for i, f := range fs {
		out[i] = Substitute(f, v, r)
	}
	//
	return out
}

func containsVariable(vars []Variable, v Variable) bool {
	for _, w := range vars {
		if w == v {
			return true
		}
	}
	//
	return false
}

// FormulaPredicates returns every predicate occurring in a formula, in order
// of first occurrence.
func FormulaPredicates(f Formula) *PredicateSet {
	acc := NewPredicateSet()
	//
	Apply(f, func(g Formula) Formula {
		if a, ok := g.(*Atom); ok {
			acc.Add(a.PredicateOf())
		}
		return g
	})
	//
	return acc
}

// TheoryPredicates returns every predicate occurring in a theory.
func TheoryPredicates(t Theory) *PredicateSet {
	acc := NewPredicateSet()
	for _, f := range t.Formulas {
		acc.AddAll(FormulaPredicates(f))
	}
	//
	return acc
}

// RenamePredicate rewrites every occurrence of one predicate to a new symbol
// of the same arity.
func RenamePredicate(f Formula, from Predicate, to string) Formula {
	return Apply(f, func(g Formula) Formula {
		if a, ok := g.(*Atom); ok && a.PredicateOf() == from {
			return &Atom{to, a.Terms}
		}
		return g
	})
}

// Symbols returns every symbolic constant occurring in a formula, in order of
// first occurrence.
func Symbols(f Formula) []string {
	var (
		seen = make(map[string]bool)
		out  []string
	)
	//
	eachTerm(f, func(t Term) {
		if s, ok := t.(SymbolicConstant); ok && !seen[s.Name] {
			seen[s.Name] = true
			out = append(out, s.Name)
		}
	})
	//
	return out
}

// Placeholders returns every placeholder occurring in a formula, in order of
// first occurrence.
func Placeholders(f Formula) []Placeholder {
	var (
		seen = make(map[Placeholder]bool)
		out  []Placeholder
	)
	//
	eachTerm(f, func(t Term) {
		if p, ok := t.(Placeholder); ok && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	})
	//
	return out
}

func eachTerm(f Formula, fn func(Term)) {
	visit := func(t Term) {
		walkTerm(t, fn)
	}
	//
	Apply(f, func(g Formula) Formula {
		switch g := g.(type) {
		case *Atom:
			for _, t := range g.Terms {
				visit(t)
			}
		case *Comparison:
			visit(g.Term)
			for _, gd := range g.Guards {
				visit(gd.Term)
			}
		}
		return g
	})
}

func walkTerm(t Term, fn func(Term)) {
	fn(t)
	//
	switch t := t.(type) {
	case *BinaryOp:
		walkTerm(t.Lhs, fn)
		walkTerm(t.Rhs, fn)
	case *Interval:
		walkTerm(t.Lhs, fn)
		walkTerm(t.Rhs, fn)
	}
}

// ReplaceSymbol rewrites every occurrence of a symbolic constant within a
// formula by an arbitrary replacement term.  Used for placeholder
// substitution.
func ReplaceSymbol(f Formula, name string, r Term) Formula {
	return Apply(f, func(g Formula) Formula {
		switch g := g.(type) {
		case *Atom:
			terms := make([]Term, len(g.Terms))
			for i, t := range g.Terms {
				terms[i] = replaceSymbolTerm(t, name, r)
			}
			//
			return &Atom{g.Predicate, terms}
		case *Comparison:
			guards := make([]Guard, len(g.Guards))
			for i, gd := range g.Guards {
				guards[i] = Guard{gd.Relation, replaceSymbolTerm(gd.Term, name, r)}
			}
			//
			return &Comparison{replaceSymbolTerm(g.Term, name, r), guards}
		default:
			return g
		}
	})
}

func replaceSymbolTerm(t Term, name string, r Term) Term {
	switch t := t.(type) {
	case SymbolicConstant:
		if t.Name == name {
			return r
		}
		//
		return t
	case *BinaryOp:
		return &BinaryOp{t.Op, replaceSymbolTerm(t.Lhs, name, r), replaceSymbolTerm(t.Rhs, name, r)}
	case *Interval:
		return &Interval{replaceSymbolTerm(t.Lhs, name, r), replaceSymbolTerm(t.Rhs, name, r)}
	default:
		return t
	}
}

// FreshVariables chooses n variable names derived from the given variant
// which are disjoint from the taken set, assigning each the given sort.  The
// first candidate is the bare variant, then variant1, variant2, and so on,
// matching the naming discipline of the translation.
func FreshVariables(taken *VariableSet, variant string, n int, sort Sort) []Variable {
	var (
		out  []Variable
		next = 0
	)
	//
	used := func(name string) bool {
		if taken.ContainsName(name) {
			return true
		}
		for _, v := range out {
			if v.Name == name {
				return true
			}
		}
		return false
	}
	//
	for len(out) < n {
		var candidate string
		//
		if next == 0 {
			candidate = variant
		} else {
			candidate = variant + strconv.Itoa(next)
		}
		//
		next++
		//
		if !used(candidate) {
			out = append(out, Variable{candidate, sort})
		}
	}
	//
	return out
}

// SortCheck verifies the sort-consistency invariant: within the formula, a
// variable name never occurs at two different sorts.
func SortCheck(f Formula) error {
	var (
		sorts = make(map[string]Sort)
		err   error
	)
	//
	for _, v := range AllVariables(f).Slice() {
		if sort, ok := sorts[v.Name]; ok && sort != v.Sort {
			err = &SortMismatchError{v.Name, sort, v.Sort, f}
			break
		}
		//
		sorts[v.Name] = v.Sort
	}
	//
	return err
}

// SortMismatchError reports a variable name used at two different sorts
// within a single formula scope.
type SortMismatchError struct {
	Name     string
	First    Sort
	Second   Sort
	Offender Formula
}

func (e *SortMismatchError) Error() string {
	return fmt.Sprintf("variable %s used at sorts %s and %s in %s", e.Name, e.First, e.Second, e.Offender)
}

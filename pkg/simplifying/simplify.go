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

// Package simplifying implements a terminating rewrite system over formulas
// which preserves equivalence in the logic of here-and-there.  That is
// stronger than classical equivalence: in particular, double negation is
// never eliminated.  Simplification is optional by contract — it may change
// the size and shape of downstream conjectures but never their provability.
package simplifying

import (
	"github.com/teiesti/anthem-next/pkg/syntax"
)

// The rewrite portfolio.  Each rule maps a single node to a simpler node and
// is applied bottom-up; the portfolio runs to fixpoint.
var portfolio = []func(syntax.Formula) syntax.Formula{
	evaluateComparisons,
	simplifyNegation,
	simplifyConjunction,
	simplifyDisjunction,
	simplifyImplication,
	removeOrphanedVariables,
	removeEmptyQuantifiers,
	joinNestedQuantifiers,
	inlineEqualities,
}

// Simplify rewrites a formula to a fixpoint of the portfolio.
func Simplify(formula syntax.Formula) syntax.Formula {
	for {
		next := formula
		for _, rule := range portfolio {
			next = syntax.Apply(next, rule)
		}
		//
		if syntax.EqualFormula(next, formula) {
			return next
		}
		//
		formula = next
	}
}

// SimplifyTheory simplifies every formula of a theory.
func SimplifyTheory(theory syntax.Theory) syntax.Theory {
	formulas := make([]syntax.Formula, len(theory.Formulas))
	for i, f := range theory.Formulas {
		formulas[i] = Simplify(f)
	}
	//
	return syntax.Theory{Formulas: formulas}
}

// Comparisons between structurally equal terms are decided: T = T becomes
// truth, T != T becomes falsity.  Longer chains split into their pairwise
// conjuncts so that each link can be decided separately.
func evaluateComparisons(f syntax.Formula) syntax.Formula {
	c, ok := f.(*syntax.Comparison)
	if !ok {
		return f
	}
	//
	var (
		links []syntax.Formula
		lhs   = c.Term
	)
	//
	for _, g := range c.Guards {
		if syntax.EqualTerm(lhs, g.Term) {
			switch g.Relation {
			case syntax.Equal, syntax.LessEqual, syntax.GreaterEqual:
				links = append(links, syntax.Truth{})
			case syntax.NotEqual, syntax.Less, syntax.Greater:
				links = append(links, syntax.Falsity{})
			}
		} else {
			links = append(links, &syntax.Comparison{
				Term:   lhs,
				Guards: []syntax.Guard{g},
			})
		}
		//
		lhs = g.Term
	}
	//
	if len(links) == 1 {
		if _, decided := links[0].(*syntax.Comparison); decided {
			return f
		}
	}
	//
	return syntax.Conjoin(links...)
}

// not #true => #false, not #false => #true.  Negation of anything else is
// untouched: double negation matters under here-and-there semantics.
func simplifyNegation(f syntax.Formula) syntax.Formula {
	n, ok := f.(*syntax.Negation)
	if !ok {
		return f
	}
	//
	switch n.Formula.(type) {
	case syntax.Truth:
		return syntax.Falsity{}
	case syntax.Falsity:
		return syntax.Truth{}
	default:
		return f
	}
}

// Flatten nested conjunctions, drop truth, collapse on falsity, and remove
// duplicated conjuncts.
func simplifyConjunction(f syntax.Formula) syntax.Formula {
	c, ok := f.(*syntax.Conjunction)
	if !ok {
		return f
	}
	//
	var args []syntax.Formula
	//
	for _, arg := range c.Args {
		switch arg := arg.(type) {
		case syntax.Truth:
			// identity
		case syntax.Falsity:
			return syntax.Falsity{}
		case *syntax.Conjunction:
			args = append(args, arg.Args...)
		default:
			args = appendUnique(args, arg)
		}
	}
	//
	return syntax.Conjoin(args...)
}

// Flatten nested disjunctions, drop falsity, collapse on truth, and remove
// duplicated disjuncts.
func simplifyDisjunction(f syntax.Formula) syntax.Formula {
	d, ok := f.(*syntax.Disjunction)
	if !ok {
		return f
	}
	//
	var args []syntax.Formula
	//
	for _, arg := range d.Args {
		switch arg := arg.(type) {
		case syntax.Falsity:
			// identity
		case syntax.Truth:
			return syntax.Truth{}
		case *syntax.Disjunction:
			args = append(args, arg.Args...)
		default:
			args = appendUnique(args, arg)
		}
	}
	//
	return syntax.Disjoin(args...)
}

func appendUnique(args []syntax.Formula, arg syntax.Formula) []syntax.Formula {
	for _, a := range args {
		if syntax.EqualFormula(a, arg) {
			return args
		}
	}
	//
	return append(args, arg)
}

// #true -> F => F, F -> #true => #true, #false -> F => #true, F -> F =>
// #true.  Note that F -> #false is left alone: it is the definition of
// negation and rewriting it would lose the distinction.
func simplifyImplication(f syntax.Formula) syntax.Formula {
	impl, ok := f.(*syntax.Implication)
	if !ok {
		return f
	}
	//
	if _, ok := impl.Lhs.(syntax.Truth); ok {
		return impl.Rhs
	}
	//
	if _, ok := impl.Rhs.(syntax.Truth); ok {
		return syntax.Truth{}
	}
	//
	if _, ok := impl.Lhs.(syntax.Falsity); ok {
		return syntax.Truth{}
	}
	//
	if syntax.EqualFormula(impl.Lhs, impl.Rhs) {
		return syntax.Truth{}
	}
	//
	return f
}

// Drop bound variables which do not occur free in the body.
func removeOrphanedVariables(f syntax.Formula) syntax.Formula {
	vars, body, q, ok := quantified(f)
	if !ok {
		return f
	}
	//
	free := syntax.FreeVariables(body)
	//
	var kept []syntax.Variable
	for _, v := range vars {
		if free.Contains(v) {
			kept = append(kept, v)
		}
	}
	//
	if len(kept) == len(vars) {
		return f
	}
	//
	return requantify(q, kept, body)
}

// A quantifier without variables is the body itself.
func removeEmptyQuantifiers(f syntax.Formula) syntax.Formula {
	vars, body, _, ok := quantified(f)
	if !ok || len(vars) > 0 {
		return f
	}
	//
	return body
}

// q X (q Y F) => q X Y F for matching quantifiers; in particular this merges
// adjacent existentials over a conjunction.
func joinNestedQuantifiers(f syntax.Formula) syntax.Formula {
	vars, body, q, ok := quantified(f)
	if !ok {
		return f
	}
	//
	innerVars, innerBody, innerQ, ok := quantified(body)
	if !ok || innerQ != q {
		return f
	}
	//
	joined := make([]syntax.Variable, 0, len(vars)+len(innerVars))
	joined = append(joined, vars...)
	//
	for _, v := range innerVars {
		if !containsVariable(joined, v) {
			joined = append(joined, v)
		}
	}
	//
	return requantify(q, joined, innerBody)
}

// exists Z (Z = t and F) => F[Z := t], provided Z does not occur in t and
// the substitution respects the sorts: the bound variable is general, or the
// replacement term has exactly the variable's sort.
func inlineEqualities(f syntax.Formula) syntax.Formula {
	e, ok := f.(*syntax.Existential)
	if !ok {
		return f
	}
	//
	conj, ok := e.Formula.(*syntax.Conjunction)
	if !ok {
		// A sole equality exists Z (Z = t) collapses to truth.
		if v, t, ok := bindingEquality(e.Formula, e.Variables); ok && substitutable(v, t) {
			return syntax.Truth{}
		}
		//
		return f
	}
	//
	for i, arg := range conj.Args {
		v, t, ok := bindingEquality(arg, e.Variables)
		if !ok || !substitutable(v, t) {
			continue
		}
		//
		rest := make([]syntax.Formula, 0, len(conj.Args)-1)
		//
		for j, other := range conj.Args {
			if j != i {
				rest = append(rest, syntax.Substitute(other, v, t))
			}
		}
		//
		var kept []syntax.Variable
		for _, w := range e.Variables {
			if w != v {
				kept = append(kept, w)
			}
		}
		//
		return syntax.Quantify(syntax.Exists, kept, syntax.Conjoin(rest...))
	}
	//
	return f
}

// Recognize Z = t or t = Z for some bound variable Z not occurring in t.
func bindingEquality(f syntax.Formula, bound []syntax.Variable) (syntax.Variable, syntax.Term, bool) {
	c, ok := f.(*syntax.Comparison)
	if !ok || len(c.Guards) != 1 || c.Guards[0].Relation != syntax.Equal {
		return syntax.Variable{}, nil, false
	}
	//
	lhs, rhs := c.Term, c.Guards[0].Term
	//
	if v, ok := lhs.(syntax.Variable); ok && containsVariable(bound, v) && !occursIn(rhs, v) {
		return v, rhs, true
	}
	//
	if v, ok := rhs.(syntax.Variable); ok && containsVariable(bound, v) && !occursIn(lhs, v) {
		return v, lhs, true
	}
	//
	return syntax.Variable{}, nil, false
}

// Substituting t for a general variable is always sound; for a sorted
// variable only a term of the same sort may be inlined, since the equality
// being removed is what constrained the term to that sort.  The term must
// also be single-valued: Z = t constrains Z to one of the values of t, so
// inlining an interval or a partial division would not preserve meaning.
func substitutable(v syntax.Variable, t syntax.Term) bool {
	if !singleValued(t) {
		return false
	}
	//
	return v.Sort == syntax.General || syntax.SortOf(t) == v.Sort
}

func singleValued(t syntax.Term) bool {
	switch t := t.(type) {
	case *syntax.Interval:
		return false
	case *syntax.BinaryOp:
		// Division by zero denotes no value at all.
		if t.Op == syntax.Divide || t.Op == syntax.Modulo {
			return false
		}
		//
		return singleValued(t.Lhs) && singleValued(t.Rhs)
	default:
		return true
	}
}

func occursIn(t syntax.Term, v syntax.Variable) bool {
	acc := syntax.NewVariableSet()
	syntax.TermVariables(t, acc)
	//
	return acc.Contains(v)
}

func quantified(f syntax.Formula) ([]syntax.Variable, syntax.Formula, syntax.Quantifier, bool) {
	switch f := f.(type) {
	case *syntax.Universal:
		return f.Variables, f.Formula, syntax.Forall, true
	case *syntax.Existential:
		return f.Variables, f.Formula, syntax.Exists, true
	default:
		return nil, nil, 0, false
	}
}

func requantify(q syntax.Quantifier, vars []syntax.Variable, body syntax.Formula) syntax.Formula {
	return syntax.Quantify(q, vars, body)
}

func containsVariable(vars []syntax.Variable, v syntax.Variable) bool {
	for _, w := range vars {
		if w == v {
			return true
		}
	}
	//
	return false
}

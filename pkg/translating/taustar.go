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

// Package translating implements the program-to-formula translations: the
// tau-star translation from rules to first-order formulas, Clark's
// completion, and the here/there (gamma) transformation.
package translating

import (
	"regexp"
	"strconv"

	"github.com/teiesti/anthem-next/pkg/syntax"
)

// TauStar translates a program into a first-order theory, one formula per
// rule.  Multi-valued terms (intervals, division) are realized by
// existentially bound auxiliary variables, never by eager evaluation.
func TauStar(program *syntax.Program) syntax.Theory {
	globals := chooseFreshGlobals(program)
	//
	formulas := make([]syntax.Formula, len(program.Rules))
	for i := range program.Rules {
		formulas[i] = tauRule(&program.Rules[i], globals)
	}
	//
	return syntax.Theory{Formulas: formulas}
}

var globalPattern = regexp.MustCompile(`^V([0-9]+)$`)

// Choose one fresh global variable per head argument position, named by
// incrementing past any V<number> already taken in the program.
func chooseFreshGlobals(program *syntax.Program) []syntax.Variable {
	maxArity := 0
	//
	for i := range program.Rules {
		if arity := program.Rules[i].HeadArity(); arity > maxArity {
			maxArity = arity
		}
	}
	//
	maxTaken := 0
	//
	for _, v := range program.Variables().Slice() {
		if m := globalPattern.FindStringSubmatch(v.Name); m != nil {
			if taken, err := strconv.Atoi(m[1]); err == nil && taken > maxTaken {
				maxTaken = taken
			}
		}
	}
	//
	globals := make([]syntax.Variable, maxArity)
	for i := range globals {
		globals[i] = syntax.Variable{Name: "V" + strconv.Itoa(maxTaken+i+1), Sort: syntax.General}
	}
	//
	return globals
}

// Translate one rule into a universally closed implication.
func tauRule(rule *syntax.Rule, globals []syntax.Variable) syntax.Formula {
	taken := syntax.NewVariableSet()
	taken.AddAll(rule.Variables())
	//
	for _, v := range globals {
		taken.Add(v)
	}
	//
	var conjuncts []syntax.Formula
	//
	// Head argument positions unify with the global variables.
	if rule.Head != nil {
		for i, t := range rule.Head.Terms {
			conjuncts = append(conjuncts, valTerm(t, globals[i], taken))
		}
	}
	//
	for _, b := range rule.Body {
		conjuncts = append(conjuncts, tauBodyFormula(b, taken))
	}
	//
	var head syntax.Formula
	//
	switch rule.Kind {
	case syntax.BasicRule, syntax.ChoiceRule:
		headAtom := &syntax.Atom{
			Predicate: rule.Head.Predicate,
			Terms:     variableTerms(globals[:len(rule.Head.Terms)]),
		}
		//
		if rule.Kind == syntax.ChoiceRule {
			// Non-deterministic inclusion of the head.
			conjuncts = append(conjuncts, &syntax.Negation{Formula: &syntax.Negation{Formula: headAtom}})
		}
		//
		head = headAtom
	case syntax.ConstraintRule:
		head = syntax.Falsity{}
	default:
		panic("unreachable")
	}
	//
	implication := &syntax.Implication{Lhs: syntax.Conjoin(conjuncts...), Rhs: head}
	//
	return syntax.Quantify(syntax.Forall, syntax.FreeVariables(implication).Sorted(), implication)
}

// Translate a body literal or comparison.
func tauBodyFormula(b syntax.BodyFormula, taken *syntax.VariableSet) syntax.Formula {
	switch b := b.(type) {
	case syntax.Literal:
		f := tauAtom(&b.Atom, taken)
		//
		switch b.Sign {
		case syntax.NoSign:
			return f
		case syntax.Negated:
			return &syntax.Negation{Formula: f}
		case syntax.DoublyNegated:
			return &syntax.Negation{Formula: &syntax.Negation{Formula: f}}
		}
		//
		panic("unreachable")
	case *syntax.Comparison:
		return tauComparison(b, taken)
	}
	//
	panic("unreachable")
}

// tauAtom translates p(t1,...,tn) into
// exists Z Z1 ... (val_t1(Z) and ... and p(Z, Z1, ...)).
func tauAtom(a *syntax.Atom, taken *syntax.VariableSet) syntax.Formula {
	if len(a.Terms) == 0 {
		return &syntax.Atom{Predicate: a.Predicate}
	}
	//
	fresh := syntax.FreshVariables(taken, "Z", len(a.Terms), syntax.General)
	inner := extend(taken, fresh)
	//
	conjuncts := make([]syntax.Formula, 0, len(a.Terms)+1)
	for i, t := range a.Terms {
		conjuncts = append(conjuncts, valTerm(t, fresh[i], inner))
	}
	//
	conjuncts = append(conjuncts, &syntax.Atom{Predicate: a.Predicate, Terms: variableTerms(fresh)})
	//
	return &syntax.Existential{Variables: fresh, Formula: syntax.Conjoin(conjuncts...)}
}

// tauComparison threads the auxiliary-variable scheme through every operand
// of the comparison chain.
func tauComparison(c *syntax.Comparison, taken *syntax.VariableSet) syntax.Formula {
	operands := append([]syntax.Term{c.Term}, guardTerms(c.Guards)...)
	//
	fresh := syntax.FreshVariables(taken, "Z", len(operands), syntax.General)
	inner := extend(taken, fresh)
	//
	conjuncts := make([]syntax.Formula, 0, len(operands)+1)
	for i, t := range operands {
		conjuncts = append(conjuncts, valTerm(t, fresh[i], inner))
	}
	//
	guards := make([]syntax.Guard, len(c.Guards))
	for i, g := range c.Guards {
		guards[i] = syntax.Guard{Relation: g.Relation, Term: fresh[i+1]}
	}
	//
	conjuncts = append(conjuncts, &syntax.Comparison{Term: fresh[0], Guards: guards})
	//
	return &syntax.Existential{Variables: fresh, Formula: syntax.Conjoin(conjuncts...)}
}

// valTerm constructs the formula expressing that variable v takes one of the
// values of term t.
func valTerm(t syntax.Term, v syntax.Variable, taken *syntax.VariableSet) syntax.Formula {
	switch t := t.(type) {
	case syntax.Infimum, syntax.Supremum, syntax.IntegerConstant,
		syntax.SymbolicConstant, syntax.Variable, syntax.Placeholder:
		return equalTo(v, t)
	case *syntax.BinaryOp:
		switch t.Op {
		case syntax.Add, syntax.Subtract, syntax.Multiply:
			return valArithmetic(t, v, taken)
		case syntax.Divide, syntax.Modulo:
			return valDivision(t, v, taken)
		}
		//
		panic("unreachable")
	case *syntax.Interval:
		return valInterval(t, v, taken)
	}
	//
	panic("unreachable")
}

// exists I J (v = I op J and val_lhs(I) and val_rhs(J))
func valArithmetic(t *syntax.BinaryOp, v syntax.Variable, taken *syntax.VariableSet) syntax.Formula {
	vi := freshIntegers(taken, "I", "J")
	inner := extend(taken, vi)
	//
	i, j := vi[0], vi[1]
	//
	return &syntax.Existential{
		Variables: vi,
		Formula: syntax.Conjoin(
			equalTo(v, &syntax.BinaryOp{Op: t.Op, Lhs: i, Rhs: j}),
			valTerm(t.Lhs, i, inner),
			valTerm(t.Rhs, j, inner),
		),
	}
}

// Division and modulo are partial: the quotient Q and remainder R exist only
// for a non-zero divisor.  A provably zero divisor leaves the existential
// unsatisfiable, which is exactly the undefined-term reading; it is never an
// error.
func valDivision(t *syntax.BinaryOp, v syntax.Variable, taken *syntax.VariableSet) syntax.Formula {
	vi := freshIntegers(taken, "I", "J", "Q", "R")
	inner := extend(taken, vi)
	//
	i, j, q, r := vi[0], vi[1], vi[2], vi[3]
	//
	result := q
	if t.Op == syntax.Modulo {
		result = r
	}
	//
	return &syntax.Existential{
		Variables: vi,
		Formula: syntax.Conjoin(
			equalTo(i, &syntax.BinaryOp{
				Op:  syntax.Add,
				Lhs: &syntax.BinaryOp{Op: syntax.Multiply, Lhs: j, Rhs: q},
				Rhs: r,
			}),
			valTerm(t.Lhs, i, inner),
			valTerm(t.Rhs, j, inner),
			relateTo(j, syntax.NotEqual, syntax.IntegerConstant{Value: 0}),
			relateTo(r, syntax.GreaterEqual, syntax.IntegerConstant{Value: 0}),
			relateTo(r, syntax.Less, j),
			equalTo(v, result),
		),
	}
}

// exists I J K (val_lhs(I) and val_rhs(J) and v = K and I <= K <= J)
func valInterval(t *syntax.Interval, v syntax.Variable, taken *syntax.VariableSet) syntax.Formula {
	vi := freshIntegers(taken, "I", "J", "K")
	inner := extend(taken, vi)
	//
	i, j, k := vi[0], vi[1], vi[2]
	//
	return &syntax.Existential{
		Variables: vi,
		Formula: syntax.Conjoin(
			valTerm(t.Lhs, i, inner),
			valTerm(t.Rhs, j, inner),
			equalTo(v, k),
			&syntax.Comparison{
				Term: i,
				Guards: []syntax.Guard{
					{Relation: syntax.LessEqual, Term: k},
					{Relation: syntax.LessEqual, Term: j},
				},
			},
		),
	}
}

func freshIntegers(taken *syntax.VariableSet, variants ...string) []syntax.Variable {
	var (
		out   []syntax.Variable
		inner = extend(taken, nil)
	)
	//
	for _, variant := range variants {
		v := syntax.FreshVariables(inner, variant, 1, syntax.Integer)[0]
		inner.Add(v)
		out = append(out, v)
	}
	//
	return out
}

func extend(taken *syntax.VariableSet, vars []syntax.Variable) *syntax.VariableSet {
	out := syntax.NewVariableSet()
	out.AddAll(taken)
	//
	for _, v := range vars {
		out.Add(v)
	}
	//
	return out
}

func equalTo(v syntax.Variable, t syntax.Term) syntax.Formula {
	return relateTo(v, syntax.Equal, t)
}

func relateTo(v syntax.Variable, rel syntax.Relation, t syntax.Term) syntax.Formula {
	return &syntax.Comparison{Term: v, Guards: []syntax.Guard{{Relation: rel, Term: t}}}
}

func guardTerms(guards []syntax.Guard) []syntax.Term {
	out := make([]syntax.Term, len(guards))
	for i, g := range guards {
		out[i] = g.Term
	}
	//
	return out
}

func variableTerms(vars []syntax.Variable) []syntax.Term {
	if len(vars) == 0 {
		return nil
	}
	//
	out := make([]syntax.Term, len(vars))
	for i, v := range vars {
		out[i] = v
	}
	//
	return out
}

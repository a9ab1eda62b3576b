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
package simplifying

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teiesti/anthem-next/pkg/syntax"
)

func checkSimplify(t *testing.T, expected, input syntax.Formula) {
	t.Helper()
	//
	got := Simplify(input)
	assert.True(t, syntax.EqualFormula(expected, got), "got %s", got)
	// Fixpoints are stable.
	assert.True(t, syntax.EqualFormula(got, Simplify(got)))
}

func TestSimplifyConjunction(t *testing.T) {
	p := &syntax.Atom{Predicate: "p"}
	q := &syntax.Atom{Predicate: "q"}
	//
	// #true drops out, duplicates collapse.
	checkSimplify(t, p, &syntax.Conjunction{Args: []syntax.Formula{syntax.Truth{}, p}})
	checkSimplify(t, syntax.Conjoin(p, q), &syntax.Conjunction{Args: []syntax.Formula{p, q, p}})
	// #false absorbs the whole conjunction.
	checkSimplify(t, syntax.Falsity{}, &syntax.Conjunction{Args: []syntax.Formula{p, syntax.Falsity{}}})
	// Nested conjunctions flatten.
	checkSimplify(t, syntax.Conjoin(p, q),
		&syntax.Conjunction{Args: []syntax.Formula{&syntax.Conjunction{Args: []syntax.Formula{p, q}}}})
}

func TestSimplifyDisjunction(t *testing.T) {
	p := &syntax.Atom{Predicate: "p"}
	q := &syntax.Atom{Predicate: "q"}
	//
	checkSimplify(t, p, &syntax.Disjunction{Args: []syntax.Formula{syntax.Falsity{}, p}})
	checkSimplify(t, syntax.Truth{}, &syntax.Disjunction{Args: []syntax.Formula{p, syntax.Truth{}}})
	checkSimplify(t, syntax.Disjoin(p, q), &syntax.Disjunction{Args: []syntax.Formula{p, q, p}})
}

func TestSimplifyNegatedConstants(t *testing.T) {
	checkSimplify(t, syntax.Falsity{}, &syntax.Negation{Formula: syntax.Truth{}})
	checkSimplify(t, syntax.Truth{}, &syntax.Negation{Formula: syntax.Falsity{}})
}

func TestSimplifyKeepsDoubleNegation(t *testing.T) {
	p := &syntax.Atom{Predicate: "p"}
	//
	// not not p is weaker than p in the logic of here-and-there.
	f := &syntax.Negation{Formula: &syntax.Negation{Formula: p}}
	checkSimplify(t, f, f)
}

func TestSimplifyImplication(t *testing.T) {
	p := &syntax.Atom{Predicate: "p"}
	q := &syntax.Atom{Predicate: "q"}
	//
	checkSimplify(t, p, &syntax.Implication{Lhs: syntax.Truth{}, Rhs: p})
	checkSimplify(t, syntax.Truth{}, &syntax.Implication{Lhs: p, Rhs: syntax.Truth{}})
	checkSimplify(t, syntax.Truth{}, &syntax.Implication{Lhs: syntax.Falsity{}, Rhs: p})
	checkSimplify(t, syntax.Truth{}, &syntax.Implication{Lhs: p, Rhs: p})
	//
	// p -> #false is the definition of not p and stays as it is.
	negation := &syntax.Implication{Lhs: p, Rhs: syntax.Falsity{}}
	checkSimplify(t, negation, negation)
	//
	// An untouched implication survives.
	implication := &syntax.Implication{Lhs: p, Rhs: q}
	checkSimplify(t, implication, implication)
}

func TestSimplifyComparisons(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	y := syntax.Variable{Name: "Y"}
	//
	relate := func(rel syntax.Relation, lhs, rhs syntax.Term) *syntax.Comparison {
		return &syntax.Comparison{Term: lhs, Guards: []syntax.Guard{{Relation: rel, Term: rhs}}}
	}
	//
	checkSimplify(t, syntax.Truth{}, relate(syntax.Equal, x, x))
	checkSimplify(t, syntax.Truth{}, relate(syntax.LessEqual, x, x))
	checkSimplify(t, syntax.Falsity{}, relate(syntax.NotEqual, x, x))
	checkSimplify(t, syntax.Falsity{}, relate(syntax.Less, x, x))
	//
	// An undecided link stays.
	undecided := relate(syntax.Less, x, y)
	checkSimplify(t, undecided, undecided)
}

func TestSimplifyComparisonChains(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	y := syntax.Variable{Name: "Y"}
	//
	// X = X = Y splits pairwise; the decided link evaporates.
	chain := &syntax.Comparison{Term: x, Guards: []syntax.Guard{
		{Relation: syntax.Equal, Term: x},
		{Relation: syntax.Equal, Term: y},
	}}
	//
	expected := &syntax.Comparison{Term: x, Guards: []syntax.Guard{{Relation: syntax.Equal, Term: y}}}
	checkSimplify(t, expected, chain)
}

func TestSimplifyInlinesEqualities(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	z := syntax.Variable{Name: "Z"}
	//
	// exists Z (Z = X and q(Z)) => q(X)
	f := &syntax.Existential{
		Variables: []syntax.Variable{z},
		Formula: syntax.Conjoin(
			&syntax.Comparison{Term: z, Guards: []syntax.Guard{{Relation: syntax.Equal, Term: x}}},
			&syntax.Atom{Predicate: "q", Terms: []syntax.Term{z}},
		),
	}
	//
	checkSimplify(t, &syntax.Atom{Predicate: "q", Terms: []syntax.Term{x}}, f)
}

func TestSimplifySoleEqualityCollapses(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	z := syntax.Variable{Name: "Z"}
	//
	// exists Z (Z = X) => #true
	f := &syntax.Existential{
		Variables: []syntax.Variable{z},
		Formula:   &syntax.Comparison{Term: z, Guards: []syntax.Guard{{Relation: syntax.Equal, Term: x}}},
	}
	//
	checkSimplify(t, syntax.Truth{}, f)
}

func TestSimplifyRespectsSortedVariables(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	n := syntax.Variable{Name: "N", Sort: syntax.Integer}
	//
	// The equality N = X constrains X to the integer sort, so inlining the
	// general term X for N would not be sound.
	f := &syntax.Existential{
		Variables: []syntax.Variable{n},
		Formula: syntax.Conjoin(
			&syntax.Comparison{Term: n, Guards: []syntax.Guard{{Relation: syntax.Equal, Term: x}}},
			&syntax.Atom{Predicate: "q", Terms: []syntax.Term{n}},
		),
	}
	//
	checkSimplify(t, f, f)
}

func TestSimplifyKeepsMultiValuedEqualities(t *testing.T) {
	z := syntax.Variable{Name: "Z"}
	//
	interval := &syntax.Interval{Lhs: syntax.IntegerConstant{Value: 1}, Rhs: syntax.IntegerConstant{Value: 3}}
	//
	// Z = 1..3 picks one of three values; inlining the interval for Z would
	// change the meaning.
	f := &syntax.Existential{
		Variables: []syntax.Variable{z},
		Formula: syntax.Conjoin(
			&syntax.Comparison{Term: z, Guards: []syntax.Guard{{Relation: syntax.Equal, Term: interval}}},
			&syntax.Atom{Predicate: "p", Terms: []syntax.Term{z}},
		),
	}
	//
	checkSimplify(t, f, f)
	//
	// Likewise for a division, which denotes no value when dividing by zero.
	division := &syntax.BinaryOp{
		Op:  syntax.Divide,
		Lhs: syntax.IntegerConstant{Value: 1},
		Rhs: syntax.IntegerConstant{Value: 0},
	}
	//
	g := &syntax.Existential{
		Variables: []syntax.Variable{z},
		Formula:   &syntax.Comparison{Term: z, Guards: []syntax.Guard{{Relation: syntax.Equal, Term: division}}},
	}
	//
	checkSimplify(t, g, g)
}

func TestSimplifyRemovesOrphanedVariables(t *testing.T) {
	y := syntax.Variable{Name: "Y"}
	z := syntax.Variable{Name: "Z"}
	//
	qz := &syntax.Atom{Predicate: "q", Terms: []syntax.Term{z}}
	//
	f := &syntax.Existential{Variables: []syntax.Variable{z, y}, Formula: qz}
	expected := &syntax.Existential{Variables: []syntax.Variable{z}, Formula: qz}
	//
	checkSimplify(t, expected, f)
}

func TestSimplifyJoinsNestedQuantifiers(t *testing.T) {
	y := syntax.Variable{Name: "Y"}
	z := syntax.Variable{Name: "Z"}
	//
	qzy := &syntax.Atom{Predicate: "q", Terms: []syntax.Term{z, y}}
	//
	f := &syntax.Existential{
		Variables: []syntax.Variable{z},
		Formula:   &syntax.Existential{Variables: []syntax.Variable{y}, Formula: qzy},
	}
	//
	expected := &syntax.Existential{Variables: []syntax.Variable{z, y}, Formula: qzy}
	checkSimplify(t, expected, f)
	//
	// Mismatched quantifiers stay nested.
	g := &syntax.Universal{
		Variables: []syntax.Variable{z},
		Formula:   &syntax.Existential{Variables: []syntax.Variable{y}, Formula: qzy},
	}
	//
	checkSimplify(t, g, g)
}

func TestSimplifyRuleTranslation(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	v1 := syntax.Variable{Name: "V1"}
	z := syntax.Variable{Name: "Z"}
	//
	// forall V1 X (V1 = X and exists Z (Z = X and q(Z)) -> p(V1)), the shape
	// produced by translating p(X) :- q(X).
	f := &syntax.Universal{
		Variables: []syntax.Variable{v1, x},
		Formula: &syntax.Implication{
			Lhs: syntax.Conjoin(
				&syntax.Comparison{Term: v1, Guards: []syntax.Guard{{Relation: syntax.Equal, Term: x}}},
				&syntax.Existential{
					Variables: []syntax.Variable{z},
					Formula: syntax.Conjoin(
						&syntax.Comparison{Term: z, Guards: []syntax.Guard{{Relation: syntax.Equal, Term: x}}},
						&syntax.Atom{Predicate: "q", Terms: []syntax.Term{z}},
					),
				},
			),
			Rhs: &syntax.Atom{Predicate: "p", Terms: []syntax.Term{v1}},
		},
	}
	//
	expected := &syntax.Universal{
		Variables: []syntax.Variable{v1, x},
		Formula: &syntax.Implication{
			Lhs: syntax.Conjoin(
				&syntax.Comparison{Term: v1, Guards: []syntax.Guard{{Relation: syntax.Equal, Term: x}}},
				&syntax.Atom{Predicate: "q", Terms: []syntax.Term{x}},
			),
			Rhs: &syntax.Atom{Predicate: "p", Terms: []syntax.Term{v1}},
		},
	}
	//
	checkSimplify(t, expected, f)
}

func TestSimplifyTheory(t *testing.T) {
	p := &syntax.Atom{Predicate: "p"}
	//
	theory := syntax.Theory{Formulas: []syntax.Formula{
		&syntax.Conjunction{Args: []syntax.Formula{syntax.Truth{}, p}},
		&syntax.Negation{Formula: syntax.Falsity{}},
	}}
	//
	got := SimplifyTheory(theory)
	//
	assert.Len(t, got.Formulas, 2)
	assert.True(t, syntax.EqualFormula(p, got.Formulas[0]))
	assert.True(t, syntax.EqualFormula(syntax.Truth{}, got.Formulas[1]))
}

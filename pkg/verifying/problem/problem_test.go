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
package problem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teiesti/anthem-next/pkg/syntax"
)

func axiom(name string, f syntax.Formula) AnnotatedFormula {
	return AnnotatedFormula{Name: name, Role: Axiom, Formula: f}
}

func conjecture(name string, f syntax.Formula) AnnotatedFormula {
	return AnnotatedFormula{Name: name, Role: Conjecture, Formula: f}
}

func TestProblemRoles(t *testing.T) {
	p := NewProblem("test",
		axiom("a1", &syntax.Atom{Predicate: "p"}),
		conjecture("c1", &syntax.Atom{Predicate: "q"}),
		axiom("a2", &syntax.Atom{Predicate: "r"}),
	)
	//
	axioms := p.Axioms()
	require.Len(t, axioms, 2)
	assert.Equal(t, "a1", axioms[0].Name)
	assert.Equal(t, "a2", axioms[1].Name)
	//
	conjectures := p.Conjectures()
	require.Len(t, conjectures, 1)
	assert.Equal(t, "c1", conjectures[0].Name)
}

func TestDecomposeIndependent(t *testing.T) {
	p := NewProblem("goal",
		axiom("a1", &syntax.Atom{Predicate: "p"}),
		conjecture("c1", &syntax.Atom{Predicate: "q"}),
		conjecture("c2", &syntax.Atom{Predicate: "r"}),
	)
	//
	parts := p.DecomposeIndependent()
	require.Len(t, parts, 2)
	//
	assert.Equal(t, "goal_1", parts[0].Name)
	assert.Equal(t, "goal_2", parts[1].Name)
	//
	// Each part carries all axioms and exactly one conjecture.
	for _, part := range parts {
		assert.Len(t, part.Axioms(), 1)
		assert.Len(t, part.Conjectures(), 1)
	}
	//
	assert.Equal(t, "q", parts[0].Conjectures()[0].Formula.(*syntax.Atom).Predicate)
	assert.Equal(t, "r", parts[1].Conjectures()[0].Formula.(*syntax.Atom).Predicate)
}

func TestDecomposeSequential(t *testing.T) {
	p := NewProblem("goal",
		axiom("a1", &syntax.Atom{Predicate: "p"}),
		conjecture("c1", &syntax.Atom{Predicate: "q"}),
		conjecture("c2", &syntax.Atom{Predicate: "r"}),
	)
	//
	parts := p.DecomposeSequential()
	require.Len(t, parts, 2)
	//
	// The second part assumes the first conjecture as an axiom.
	require.Len(t, parts[1].Axioms(), 2)
	assert.Equal(t, "c1", parts[1].Axioms()[1].Name)
	require.Len(t, parts[1].Conjectures(), 1)
	assert.Equal(t, "c2", parts[1].Conjectures()[0].Name)
}

func TestProblemSymbolsAndPredicates(t *testing.T) {
	a := syntax.SymbolicConstant{Name: "a"}
	b := syntax.SymbolicConstant{Name: "b"}
	//
	p := NewProblem("test",
		axiom("a1", &syntax.Atom{Predicate: "p", Terms: []syntax.Term{b}}),
		axiom("a2", &syntax.Atom{Predicate: "p", Terms: []syntax.Term{a}}),
		conjecture("c1", &syntax.Atom{Predicate: "q"}),
	)
	//
	// First-occurrence order, duplicates dropped.
	assert.Equal(t, []string{"b", "a"}, p.Symbols())
	//
	predicates := p.Predicates()
	assert.Equal(t, 2, predicates.Len())
	assert.True(t, predicates.Contains(syntax.Predicate{Symbol: "p", Arity: 1}))
	assert.True(t, predicates.Contains(syntax.Predicate{Symbol: "q", Arity: 0}))
}

func TestRender(t *testing.T) {
	a := syntax.SymbolicConstant{Name: "a"}
	b := syntax.SymbolicConstant{Name: "b"}
	//
	p := NewProblem("test",
		axiom("fact_b", &syntax.Atom{Predicate: "p", Terms: []syntax.Term{b}}),
		axiom("fact_a", &syntax.Atom{Predicate: "p", Terms: []syntax.Term{a}}),
		conjecture("goal", &syntax.Atom{Predicate: "q"}),
	)
	//
	rendered := p.Render()
	//
	assert.True(t, strings.HasPrefix(rendered, StandardPrelude))
	//
	assert.Contains(t, rendered, "tff(predicate_0, type, p: (general) > $o).\n")
	assert.Contains(t, rendered, "tff(predicate_1, type, q: $o).\n")
	assert.Contains(t, rendered, "tff(type_symbol_0, type, b: symbol).\n")
	assert.Contains(t, rendered, "tff(type_symbol_1, type, a: symbol).\n")
	// Symbols are ordered lexicographically, whatever their occurrence order.
	assert.Contains(t, rendered, "tff(symbol_order_0, axiom, p__less__(f__symbolic__(a), f__symbolic__(b))).\n")
	//
	assert.Contains(t, rendered, "tff(fact_b, axiom, p(f__symbolic__(b))).\n")
	assert.Contains(t, rendered, "tff(goal, conjecture, q).\n")
}

func TestRenderPlaceholderTypes(t *testing.T) {
	n := syntax.Placeholder{Name: "n", Sort: syntax.Integer}
	//
	p := NewProblem("test",
		axiom("a1", &syntax.Atom{Predicate: "p", Terms: []syntax.Term{n}}),
	)
	//
	assert.Contains(t, p.Render(), "tff(type_placeholder_0, type, n: $int).\n")
}

func TestPredicateType(t *testing.T) {
	assert.Equal(t, "$o", predicateType(0))
	assert.Equal(t, "(general) > $o", predicateType(1))
	assert.Equal(t, "(general * general * general) > $o", predicateType(3))
}

func TestFormatFormulaConnectives(t *testing.T) {
	p := &syntax.Atom{Predicate: "p"}
	q := &syntax.Atom{Predicate: "q"}
	//
	assert.Equal(t, "$true", FormatFormula(syntax.Truth{}))
	assert.Equal(t, "$false", FormatFormula(syntax.Falsity{}))
	assert.Equal(t, "~(p)", FormatFormula(&syntax.Negation{Formula: p}))
	assert.Equal(t, "(p & q)", FormatFormula(&syntax.Conjunction{Args: []syntax.Formula{p, q}}))
	assert.Equal(t, "(p | q)", FormatFormula(&syntax.Disjunction{Args: []syntax.Formula{p, q}}))
	assert.Equal(t, "(p => q)", FormatFormula(&syntax.Implication{Lhs: p, Rhs: q}))
	assert.Equal(t, "(p <=> q)", FormatFormula(&syntax.Equivalence{Lhs: p, Rhs: q}))
}

func TestFormatFormulaQuantifiers(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	n := syntax.Variable{Name: "N", Sort: syntax.Integer}
	//
	f := &syntax.Universal{
		Variables: []syntax.Variable{x, n},
		Formula:   &syntax.Atom{Predicate: "p", Terms: []syntax.Term{x}},
	}
	//
	assert.Equal(t, "! [X: general, N: $int]: (p(X))", FormatFormula(f))
	//
	g := &syntax.Existential{
		Variables: []syntax.Variable{x},
		Formula:   &syntax.Atom{Predicate: "p", Terms: []syntax.Term{x}},
	}
	//
	assert.Equal(t, "? [X: general]: (p(X))", FormatFormula(g))
}

func TestFormatFormulaTermEmbeddings(t *testing.T) {
	atom := func(t syntax.Term) syntax.Formula {
		return &syntax.Atom{Predicate: "p", Terms: []syntax.Term{t}}
	}
	//
	assert.Equal(t, "p(f__integer__(3))", FormatFormula(atom(syntax.IntegerConstant{Value: 3})))
	assert.Equal(t, "p(f__integer__($uminus(3)))", FormatFormula(atom(syntax.IntegerConstant{Value: -3})))
	assert.Equal(t, "p(f__symbolic__(a))", FormatFormula(atom(syntax.SymbolicConstant{Name: "a"})))
	assert.Equal(t, "p(c__infimum__)", FormatFormula(atom(syntax.Infimum{})))
	assert.Equal(t, "p(c__supremum__)", FormatFormula(atom(syntax.Supremum{})))
	assert.Equal(t, "p(X)", FormatFormula(atom(syntax.Variable{Name: "X"})))
}

func TestFormatFormulaComparisons(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	y := syntax.Variable{Name: "Y"}
	n := syntax.Variable{Name: "N", Sort: syntax.Integer}
	one := syntax.IntegerConstant{Value: 1}
	//
	relate := func(rel syntax.Relation, lhs, rhs syntax.Term) syntax.Formula {
		return &syntax.Comparison{Term: lhs, Guards: []syntax.Guard{{Relation: rel, Term: rhs}}}
	}
	//
	// Links between integer terms use TFF arithmetic relations.
	assert.Equal(t, "$less(N, 1)", FormatFormula(relate(syntax.Less, n, one)))
	assert.Equal(t, "(N = 1)", FormatFormula(relate(syntax.Equal, n, one)))
	assert.Equal(t, "(N != 1)", FormatFormula(relate(syntax.NotEqual, n, one)))
	//
	// Links in the general sort use the axiomatized order with embeddings.
	assert.Equal(t, "p__less__(X, Y)", FormatFormula(relate(syntax.Less, x, y)))
	assert.Equal(t, "p__less_equal__(X, f__integer__(1))", FormatFormula(relate(syntax.LessEqual, x, one)))
	assert.Equal(t, "(X = f__symbolic__(a))", FormatFormula(relate(syntax.Equal, x, syntax.SymbolicConstant{Name: "a"})))
	//
	// A chain unfolds into the conjunction of its links.
	chain := &syntax.Comparison{Term: x, Guards: []syntax.Guard{
		{Relation: syntax.Less, Term: y},
		{Relation: syntax.LessEqual, Term: syntax.Variable{Name: "Z"}},
	}}
	//
	assert.Equal(t, "(p__less__(X, Y) & p__less_equal__(Y, Z))", FormatFormula(chain))
}

func TestFormatFormulaArithmetic(t *testing.T) {
	i := syntax.Variable{Name: "I", Sort: syntax.Integer}
	j := syntax.Variable{Name: "J", Sort: syntax.Integer}
	one := syntax.IntegerConstant{Value: 1}
	//
	sum := &syntax.BinaryOp{Op: syntax.Add, Lhs: i, Rhs: one}
	difference := &syntax.BinaryOp{Op: syntax.Subtract, Lhs: i, Rhs: j}
	product := &syntax.BinaryOp{Op: syntax.Multiply, Lhs: i, Rhs: j}
	//
	relate := func(lhs, rhs syntax.Term) syntax.Formula {
		return &syntax.Comparison{Term: lhs, Guards: []syntax.Guard{{Relation: syntax.Equal, Term: rhs}}}
	}
	//
	assert.Equal(t, "(J = $sum(I, 1))", FormatFormula(relate(j, sum)))
	assert.Equal(t, "(J = $difference(I, J))", FormatFormula(relate(j, difference)))
	assert.Equal(t, "(J = $product(I, J))", FormatFormula(relate(j, product)))
}

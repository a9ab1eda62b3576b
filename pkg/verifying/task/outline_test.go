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
package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teiesti/anthem-next/pkg/syntax"
)

func takenPredicates(names ...syntax.Predicate) *syntax.PredicateSet {
	set := syntax.NewPredicateSet()
	for _, p := range names {
		set.Add(p)
	}
	//
	return set
}

// forall X (name(X) <-> rhs)
func definition(name string, rhs syntax.Formula) syntax.Formula {
	x := syntax.Variable{Name: "X"}
	//
	return &syntax.Universal{
		Variables: []syntax.Variable{x},
		Formula: &syntax.Equivalence{
			Lhs: &syntax.Atom{Predicate: name, Terms: []syntax.Term{x}},
			Rhs: rhs,
		},
	}
}

func outlineErrorKind(t *testing.T, err error) OutlineErrorKind {
	t.Helper()
	//
	require.Error(t, err)
	//
	malformed, ok := err.(*MalformedProofOutlineError)
	require.True(t, ok, "got %v", err)
	//
	return malformed.Kind
}

func TestConstructOutlineDefinitions(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	//
	spec := &syntax.Specification{Formulas: []syntax.AnnotatedFormula{
		{
			Role: syntax.RoleDefinition, Name: "d",
			Formula: definition("d", &syntax.Atom{Predicate: "p", Terms: []syntax.Term{x}}),
		},
		{
			// Later definitions may use earlier ones.
			Role: syntax.RoleDefinition, Name: "e",
			Formula: definition("e", &syntax.Atom{Predicate: "d", Terms: []syntax.Term{x}}),
		},
	}}
	//
	outline, err := ConstructOutline(spec, takenPredicates(syntax.Predicate{Symbol: "p", Arity: 1}))
	require.NoError(t, err)
	//
	// Unrestricted steps participate in both directions.
	assert.Len(t, outline.ForwardDefinitions, 2)
	assert.Len(t, outline.BackwardDefinitions, 2)
	assert.Empty(t, outline.ForwardLemmas)
}

func TestOutlineRejectsTakenPredicate(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	//
	spec := &syntax.Specification{Formulas: []syntax.AnnotatedFormula{
		{
			Role: syntax.RoleDefinition, Name: "p",
			Formula: definition("p", &syntax.Atom{Predicate: "p", Terms: []syntax.Term{x}}),
		},
	}}
	//
	_, err := ConstructOutline(spec, takenPredicates(syntax.Predicate{Symbol: "p", Arity: 1}))
	assert.Equal(t, OutlineTakenPredicate, outlineErrorKind(t, err))
}

func TestOutlineRejectsFreeRHSVariables(t *testing.T) {
	y := syntax.Variable{Name: "Y"}
	//
	spec := &syntax.Specification{Formulas: []syntax.AnnotatedFormula{
		{
			Role: syntax.RoleDefinition, Name: "d",
			Formula: definition("d", &syntax.Atom{Predicate: "p", Terms: []syntax.Term{y}}),
		},
	}}
	//
	_, err := ConstructOutline(spec, takenPredicates(syntax.Predicate{Symbol: "p", Arity: 1}))
	assert.Equal(t, OutlineFreeRHSVariables, outlineErrorKind(t, err))
}

func TestOutlineRejectsHeadVariableAbsent(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	//
	// forall X (d(X) <-> p): nothing constrains the argument X.
	spec := &syntax.Specification{Formulas: []syntax.AnnotatedFormula{
		{
			Role: syntax.RoleDefinition, Name: "d",
			Formula: &syntax.Universal{
				Variables: []syntax.Variable{x},
				Formula: &syntax.Equivalence{
					Lhs: &syntax.Atom{Predicate: "d", Terms: []syntax.Term{x}},
					Rhs: &syntax.Atom{Predicate: "p"},
				},
			},
		},
	}}
	//
	_, err := ConstructOutline(spec, takenPredicates(syntax.Predicate{Symbol: "p"}))
	assert.Equal(t, OutlineHeadVariableAbsent, outlineErrorKind(t, err))
}

func TestOutlineRejectsUndefinedRHSPredicate(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	//
	spec := &syntax.Specification{Formulas: []syntax.AnnotatedFormula{
		{
			Role: syntax.RoleDefinition, Name: "d",
			Formula: definition("d", &syntax.Atom{Predicate: "q", Terms: []syntax.Term{x}}),
		},
	}}
	//
	_, err := ConstructOutline(spec, takenPredicates(syntax.Predicate{Symbol: "p", Arity: 1}))
	assert.Equal(t, OutlineUndefinedRHSPredicate, outlineErrorKind(t, err))
}

func TestOutlineRejectsDuplicatedVariables(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	//
	spec := &syntax.Specification{Formulas: []syntax.AnnotatedFormula{
		{
			Role: syntax.RoleDefinition, Name: "d",
			Formula: &syntax.Universal{
				Variables: []syntax.Variable{x, x},
				Formula: &syntax.Equivalence{
					Lhs: &syntax.Atom{Predicate: "d", Terms: []syntax.Term{x}},
					Rhs: &syntax.Atom{Predicate: "p", Terms: []syntax.Term{x}},
				},
			},
		},
	}}
	//
	_, err := ConstructOutline(spec, takenPredicates(syntax.Predicate{Symbol: "p", Arity: 1}))
	assert.Equal(t, OutlineDuplicatedVariables, outlineErrorKind(t, err))
}

func TestOutlineRejectsUnexpectedRole(t *testing.T) {
	spec := &syntax.Specification{Formulas: []syntax.AnnotatedFormula{
		{Role: syntax.RoleSpec, Name: "s", Formula: &syntax.Atom{Predicate: "p"}},
	}}
	//
	_, err := ConstructOutline(spec, takenPredicates())
	assert.Equal(t, OutlineUnexpectedRole, outlineErrorKind(t, err))
}

func TestOutlineSplitsByDirection(t *testing.T) {
	spec := &syntax.Specification{Formulas: []syntax.AnnotatedFormula{
		{
			Role: syntax.RoleLemma, Direction: syntax.Forward, Name: "fwd",
			Formula: &syntax.Atom{Predicate: "p"},
		},
	}}
	//
	outline, err := ConstructOutline(spec, takenPredicates(syntax.Predicate{Symbol: "p"}))
	require.NoError(t, err)
	//
	assert.Len(t, outline.Lemmas(syntax.Forward), 1)
	assert.Empty(t, outline.Lemmas(syntax.Backward))
}

func TestInductiveLemmaSplits(t *testing.T) {
	n := syntax.Variable{Name: "N", Sort: syntax.Integer}
	zero := syntax.IntegerConstant{Value: 0}
	one := syntax.IntegerConstant{Value: 1}
	//
	guard := &syntax.Comparison{Term: n, Guards: []syntax.Guard{{Relation: syntax.GreaterEqual, Term: zero}}}
	pn := &syntax.Atom{Predicate: "p", Terms: []syntax.Term{n}}
	//
	// forall N (N >= 0 -> p(N))
	lemma := &syntax.Universal{
		Variables: []syntax.Variable{n},
		Formula:   &syntax.Implication{Lhs: guard, Rhs: pn},
	}
	//
	spec := &syntax.Specification{Formulas: []syntax.AnnotatedFormula{
		{Role: syntax.RoleInductiveLemma, Name: "growth", Formula: lemma},
	}}
	//
	outline, err := ConstructOutline(spec, takenPredicates(syntax.Predicate{Symbol: "p", Arity: 1}))
	require.NoError(t, err)
	//
	lemmas := outline.Lemmas(syntax.Forward)
	require.Len(t, lemmas, 1)
	require.Len(t, lemmas[0].Conjectures, 2)
	//
	base := lemmas[0].Conjectures[0]
	assert.Equal(t, "growth_base_case", base.Name)
	assert.True(t, syntax.EqualFormula(&syntax.Atom{Predicate: "p", Terms: []syntax.Term{zero}}, base.Formula),
		"got %s", base.Formula)
	//
	step := lemmas[0].Conjectures[1]
	assert.Equal(t, "growth_inductive_step", step.Name)
	//
	expectedStep := &syntax.Universal{
		Variables: []syntax.Variable{n},
		Formula: &syntax.Implication{
			Lhs: syntax.Conjoin(guard, pn),
			Rhs: &syntax.Atom{Predicate: "p", Terms: []syntax.Term{
				&syntax.BinaryOp{Op: syntax.Add, Lhs: n, Rhs: one},
			}},
		},
	}
	//
	assert.True(t, syntax.EqualFormula(expectedStep, step.Formula), "got %s", step.Formula)
	//
	// The full lemma itself is the consequence available to later steps.
	require.Len(t, lemmas[0].Consequences, 1)
	assert.Equal(t, "growth", lemmas[0].Consequences[0].Name)
	assert.True(t, syntax.EqualFormula(lemma, lemmas[0].Consequences[0].Formula))
}

func TestInductiveLemmaWithParameters(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	n := syntax.Variable{Name: "N", Sort: syntax.Integer}
	zero := syntax.IntegerConstant{Value: 0}
	one := syntax.IntegerConstant{Value: 1}
	//
	guard := &syntax.Comparison{Term: n, Guards: []syntax.Guard{{Relation: syntax.GreaterEqual, Term: zero}}}
	pxn := &syntax.Atom{Predicate: "p", Terms: []syntax.Term{x, n}}
	//
	// forall X N (N >= 0 -> p(X, N))
	lemma := &syntax.Universal{
		Variables: []syntax.Variable{x, n},
		Formula:   &syntax.Implication{Lhs: guard, Rhs: pxn},
	}
	//
	spec := &syntax.Specification{Formulas: []syntax.AnnotatedFormula{
		{Role: syntax.RoleInductiveLemma, Name: "growth", Formula: lemma},
	}}
	//
	outline, err := ConstructOutline(spec, takenPredicates(syntax.Predicate{Symbol: "p", Arity: 2}))
	require.NoError(t, err)
	//
	lemmas := outline.Lemmas(syntax.Forward)
	require.Len(t, lemmas, 1)
	require.Len(t, lemmas[0].Conjectures, 2)
	//
	// The parameter X stays quantified in both conjectures.
	base := lemmas[0].Conjectures[0]
	//
	expectedBase := &syntax.Universal{
		Variables: []syntax.Variable{x},
		Formula:   &syntax.Atom{Predicate: "p", Terms: []syntax.Term{x, zero}},
	}
	//
	assert.True(t, syntax.EqualFormula(expectedBase, base.Formula), "got %s", base.Formula)
	//
	step := lemmas[0].Conjectures[1]
	//
	expectedStep := &syntax.Universal{
		Variables: []syntax.Variable{x, n},
		Formula: &syntax.Implication{
			Lhs: syntax.Conjoin(guard, pxn),
			Rhs: &syntax.Atom{Predicate: "p", Terms: []syntax.Term{
				x,
				&syntax.BinaryOp{Op: syntax.Add, Lhs: n, Rhs: one},
			}},
		},
	}
	//
	assert.True(t, syntax.EqualFormula(expectedStep, step.Formula), "got %s", step.Formula)
}

func TestInductiveLemmaRejectsGeneralVariable(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	zero := syntax.IntegerConstant{Value: 0}
	//
	lemma := &syntax.Universal{
		Variables: []syntax.Variable{x},
		Formula: &syntax.Implication{
			Lhs: &syntax.Comparison{Term: x, Guards: []syntax.Guard{{Relation: syntax.GreaterEqual, Term: zero}}},
			Rhs: &syntax.Atom{Predicate: "p", Terms: []syntax.Term{x}},
		},
	}
	//
	spec := &syntax.Specification{Formulas: []syntax.AnnotatedFormula{
		{Role: syntax.RoleInductiveLemma, Name: "bad", Formula: lemma},
	}}
	//
	_, err := ConstructOutline(spec, takenPredicates(syntax.Predicate{Symbol: "p", Arity: 1}))
	assert.Equal(t, OutlineMalformedInductiveLemma, outlineErrorKind(t, err))
}

func TestInductiveLemmaRejectsUnboundVariables(t *testing.T) {
	n := syntax.Variable{Name: "N", Sort: syntax.Integer}
	y := syntax.Variable{Name: "Y"}
	zero := syntax.IntegerConstant{Value: 0}
	//
	// Y occurs free but the outermost quantifier does not bind it.
	lemma := &syntax.Universal{
		Variables: []syntax.Variable{n},
		Formula: &syntax.Implication{
			Lhs: &syntax.Comparison{Term: n, Guards: []syntax.Guard{{Relation: syntax.GreaterEqual, Term: zero}}},
			Rhs: &syntax.Atom{Predicate: "p", Terms: []syntax.Term{n, y}},
		},
	}
	//
	spec := &syntax.Specification{Formulas: []syntax.AnnotatedFormula{
		{Role: syntax.RoleInductiveLemma, Name: "bad", Formula: lemma},
	}}
	//
	_, err := ConstructOutline(spec, takenPredicates(syntax.Predicate{Symbol: "p", Arity: 2}))
	assert.Equal(t, OutlineMalformedInductiveLemma, outlineErrorKind(t, err))
}

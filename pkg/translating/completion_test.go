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
package translating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teiesti/anthem-next/pkg/syntax"
)

func TestCompleteCollectsDefinitions(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	y := syntax.Variable{Name: "Y"}
	one := syntax.IntegerConstant{Value: 1}
	//
	px := &syntax.Atom{Predicate: "p", Terms: []syntax.Term{x}}
	qxy := &syntax.Atom{Predicate: "q", Terms: []syntax.Term{x, y}}
	xIsOne := equalTerms(x, one)
	//
	// forall X (X = 1 -> p(X)).  forall X Y (q(X, Y) -> p(X)).
	theory := syntax.Theory{Formulas: []syntax.Formula{
		&syntax.Universal{Variables: []syntax.Variable{x}, Formula: &syntax.Implication{Lhs: xIsOne, Rhs: px}},
		&syntax.Universal{Variables: []syntax.Variable{x, y}, Formula: &syntax.Implication{Lhs: qxy, Rhs: px}},
	}}
	//
	got, err := Complete(theory, nil)
	require.NoError(t, err)
	require.Len(t, got.Formulas, 1)
	//
	// forall X (p(X) <-> X = 1 or exists Y q(X, Y)).  The rule-local variable
	// Y is existentially closed, the head variable X is not.
	expected := &syntax.Universal{
		Variables: []syntax.Variable{x},
		Formula: &syntax.Equivalence{
			Lhs: px,
			Rhs: syntax.Disjoin(
				xIsOne,
				&syntax.Existential{Variables: []syntax.Variable{y}, Formula: qxy},
			),
		},
	}
	//
	assert.True(t, syntax.EqualFormula(expected, got.Formulas[0]), "got %s", got.Formulas[0])
}

func TestCompleteUndefinedIntensionalPredicates(t *testing.T) {
	intensional := syntax.NewPredicateSet()
	intensional.Add(syntax.Predicate{Symbol: "r", Arity: 1})
	intensional.Add(syntax.Predicate{Symbol: "s", Arity: 0})
	//
	got, err := Complete(syntax.Theory{}, intensional)
	require.NoError(t, err)
	require.Len(t, got.Formulas, 2)
	//
	v1 := syntax.Variable{Name: "V1"}
	//
	expected := []syntax.Formula{
		&syntax.Universal{
			Variables: []syntax.Variable{v1},
			Formula:   &syntax.Negation{Formula: &syntax.Atom{Predicate: "r", Terms: []syntax.Term{v1}}},
		},
		&syntax.Negation{Formula: &syntax.Atom{Predicate: "s"}},
	}
	//
	for i, f := range expected {
		assert.True(t, syntax.EqualFormula(f, got.Formulas[i]), "got %s", got.Formulas[i])
	}
}

func TestCompleteKeepsConstraints(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	//
	p := &syntax.Atom{Predicate: "p"}
	q := &syntax.Atom{Predicate: "q"}
	//
	constraint := &syntax.Universal{
		Variables: []syntax.Variable{x},
		Formula: &syntax.Implication{
			Lhs: &syntax.Atom{Predicate: "q", Terms: []syntax.Term{x}},
			Rhs: syntax.Falsity{},
		},
	}
	//
	// Constraints come after the definitions, whatever the input order.
	theory := syntax.Theory{Formulas: []syntax.Formula{
		constraint,
		&syntax.Implication{Lhs: q, Rhs: p},
	}}
	//
	got, err := Complete(theory, nil)
	require.NoError(t, err)
	require.Len(t, got.Formulas, 2)
	//
	assert.True(t, syntax.EqualFormula(&syntax.Equivalence{Lhs: p, Rhs: q}, got.Formulas[0]), "got %s", got.Formulas[0])
	assert.True(t, syntax.EqualFormula(constraint, got.Formulas[1]), "got %s", got.Formulas[1])
}

func TestCompleteRejectsNonImplication(t *testing.T) {
	theory := syntax.Theory{Formulas: []syntax.Formula{&syntax.Atom{Predicate: "p"}}}
	//
	_, err := Complete(theory, nil)
	require.Error(t, err)
	assert.IsType(t, &NotCompletableError{}, err)
}

func TestCompleteRejectsMismatchedHeads(t *testing.T) {
	x := syntax.Variable{Name: "X"}
	one := syntax.IntegerConstant{Value: 1}
	//
	// Two definitions of p/1 whose head tuples disagree.
	theory := syntax.Theory{Formulas: []syntax.Formula{
		&syntax.Universal{
			Variables: []syntax.Variable{x},
			Formula: &syntax.Implication{
				Lhs: &syntax.Atom{Predicate: "q", Terms: []syntax.Term{x}},
				Rhs: &syntax.Atom{Predicate: "p", Terms: []syntax.Term{x}},
			},
		},
		&syntax.Implication{
			Lhs: &syntax.Atom{Predicate: "r"},
			Rhs: &syntax.Atom{Predicate: "p", Terms: []syntax.Term{one}},
		},
	}}
	//
	_, err := Complete(theory, nil)
	require.Error(t, err)
	assert.IsType(t, &NotCompletableError{}, err)
}

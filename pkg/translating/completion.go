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
	"fmt"
	"strconv"

	"github.com/teiesti/anthem-next/pkg/syntax"
)

// NotCompletableError reports a theory which is not a set of completable
// implications.  Callers are expected to have established tightness before
// invoking completion; this error covers the remaining structural defects
// (non-implications, mismatched heads for one predicate).
type NotCompletableError struct {
	Offender syntax.Formula
}

func (e *NotCompletableError) Error() string {
	return fmt.Sprintf("theory is not completable: %s", e.Offender)
}

// One implicational sentence of the input theory, split into its parts.
type definition struct {
	// Universally quantified rule variables (possibly none).
	variables []syntax.Variable
	body      syntax.Formula
	// Head atom; nil for a constraint (falsity head).
	head *syntax.Atom
	// The original sentence, kept for constraints and diagnostics.
	sentence syntax.Formula
}

// Complete converts a tight implicational theory into a theory of
// biconditional definitions: one formula
//
//	forall V (p(V) <-> Body_1 or ... or Body_k)
//
// per head predicate, with each body existentially closed over its
// rule-local variables.  Constraints keep their implicational form.  Every
// predicate of the intensional set with no defining rule completes to
// forall V (not p(V)).
//
// The caller must have verified tightness of the originating program; this
// function only rejects structurally non-completable theories.
func Complete(theory syntax.Theory, intensional *syntax.PredicateSet) (syntax.Theory, error) {
	var (
		defs        []definition
		constraints []syntax.Formula
	)
	//
	for _, sentence := range theory.Formulas {
		def, err := behead(sentence)
		if err != nil {
			return syntax.Theory{}, err
		}
		//
		if def.head == nil {
			constraints = append(constraints, def.sentence)
		} else {
			defs = append(defs, def)
		}
	}
	//
	// Group the definitions by head predicate, checking that all heads of
	// one predicate agree on their argument tuple.
	var (
		order []syntax.Predicate
		byPred = make(map[syntax.Predicate][]definition)
	)
	//
	for _, def := range defs {
		pred := def.head.PredicateOf()
		//
		if prev, ok := byPred[pred]; ok {
			if !syntax.EqualFormula(prev[0].head, def.head) {
				return syntax.Theory{}, &NotCompletableError{Offender: def.sentence}
			}
		} else {
			order = append(order, pred)
		}
		//
		byPred[pred] = append(byPred[pred], def)
	}
	//
	var completions []syntax.Formula
	//
	for _, pred := range order {
		completions = append(completions, completeDefinitions(byPred[pred]))
	}
	//
	if intensional != nil {
		for _, pred := range intensional.Slice() {
			if _, defined := byPred[pred]; !defined {
				completions = append(completions, emptyCompletion(pred))
			}
		}
	}
	//
	completions = append(completions, constraints...)
	//
	return syntax.Theory{Formulas: completions}, nil
}

// Split a sentence of the form forall V (Body -> Head) into its parts.
func behead(sentence syntax.Formula) (definition, error) {
	var (
		vars []syntax.Variable
		body = sentence
	)
	//
	if q, ok := sentence.(*syntax.Universal); ok {
		vars = q.Variables
		body = q.Formula
	}
	//
	impl, ok := body.(*syntax.Implication)
	if !ok {
		return definition{}, &NotCompletableError{Offender: sentence}
	}
	//
	switch head := impl.Rhs.(type) {
	case *syntax.Atom:
		return definition{vars, impl.Lhs, head, sentence}, nil
	case syntax.Falsity:
		return definition{vars, impl.Lhs, nil, sentence}, nil
	default:
		return definition{}, &NotCompletableError{Offender: sentence}
	}
}

// Build the biconditional for one predicate from its defining rules.
func completeDefinitions(defs []definition) syntax.Formula {
	head := defs[0].head
	//
	headVars := syntax.NewVariableSet()
	for _, t := range head.Terms {
		syntax.TermVariables(t, headVars)
	}
	//
	bodies := make([]syntax.Formula, len(defs))
	//
	for i, def := range defs {
		// Existentially close the body over its rule-local variables, i.e.
		// the free body variables not belonging to the head tuple.
		var local []syntax.Variable
		//
		for _, v := range syntax.FreeVariables(def.body).Slice() {
			if !headVars.Contains(v) {
				local = append(local, v)
			}
		}
		//
		bodies[i] = syntax.Quantify(syntax.Exists, local, def.body)
	}
	//
	biconditional := &syntax.Equivalence{Lhs: head, Rhs: syntax.Disjoin(bodies...)}
	//
	return syntax.Quantify(syntax.Forall, headVars.Slice(), biconditional)
}

// forall V1 ... Vn (not p(V1, ..., Vn))
func emptyCompletion(pred syntax.Predicate) syntax.Formula {
	vars, terms := argumentTuple(pred.Arity)
	//
	var negated syntax.Formula = &syntax.Negation{
		Formula: &syntax.Atom{Predicate: pred.Symbol, Terms: terms},
	}
	//
	return syntax.Quantify(syntax.Forall, vars, negated)
}

// argumentTuple builds the canonical V1, ..., Vn argument variables of a
// predicate.  Both slices are nil for arity zero.
func argumentTuple(arity int) ([]syntax.Variable, []syntax.Term) {
	if arity == 0 {
		return nil, nil
	}
	//
	vars := make([]syntax.Variable, arity)
	terms := make([]syntax.Term, arity)
	//
	for i := range vars {
		vars[i] = syntax.Variable{Name: "V" + strconv.Itoa(i+1), Sort: syntax.General}
		terms[i] = vars[i]
	}
	//
	return vars, terms
}

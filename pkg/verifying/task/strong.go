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
	"fmt"

	"github.com/teiesti/anthem-next/pkg/simplifying"
	"github.com/teiesti/anthem-next/pkg/syntax"
	"github.com/teiesti/anthem-next/pkg/translating"
	"github.com/teiesti/anthem-next/pkg/verifying/problem"
	"github.com/teiesti/anthem-next/pkg/verifying/prover"
)

// StrongEquivalenceTask claims that two programs are strongly equivalent:
// interchangeable within any context.  The claim reduces to classical
// entailment between the here/there projections of both programs under the
// world-transition axioms.
type StrongEquivalenceTask struct {
	Left  *syntax.Program
	Right *syntax.Program

	Direction         syntax.Direction
	Decomposition     Decomposition
	Simplify          bool
	BreakEquivalences bool
}

// Decompose builds one problem sequence per requested direction: forward
// proves the right program from the left one, backward the reverse.
func (t *StrongEquivalenceTask) Decompose() ([]prover.Sequence, error) {
	predicates := syntax.NewPredicateSet()
	predicates.AddAll(t.Left.Predicates())
	predicates.AddAll(t.Right.Predicates())
	//
	transition := translating.TransitionAxioms(predicates)
	//
	left := t.translate(t.Left)
	right := t.translate(t.Right)
	//
	var sequences []prover.Sequence
	//
	if t.Direction.Covers(syntax.Forward) {
		sequences = append(sequences, t.sequence("forward", transition, left, right))
	}
	//
	if t.Direction.Covers(syntax.Backward) {
		sequences = append(sequences, t.sequence("backward", transition, right, left))
	}
	//
	return sequences, nil
}

func (t *StrongEquivalenceTask) translate(program *syntax.Program) syntax.Theory {
	theory := translating.TauStar(program)
	//
	if t.Simplify {
		theory = simplifying.SimplifyTheory(theory)
	}
	//
	theory = translating.Gamma(theory)
	//
	if t.Simplify {
		theory = simplifying.SimplifyTheory(theory)
	}
	//
	return theory
}

func (t *StrongEquivalenceTask) sequence(name string, transition, axioms, conjectures syntax.Theory) prover.Sequence {
	var formulas []problem.AnnotatedFormula
	//
	for i, f := range transition.Formulas {
		formulas = append(formulas, problem.AnnotatedFormula{
			Name:    fmt.Sprintf("transition_axiom_%d", i),
			Role:    problem.Axiom,
			Formula: f,
		})
	}
	//
	for i, f := range axioms.Formulas {
		formulas = append(formulas, problem.AnnotatedFormula{
			Name:    fmt.Sprintf("axiom_%d", i),
			Role:    problem.Axiom,
			Formula: f,
		})
	}
	//
	for i, f := range conjectures.Formulas {
		formulas = append(formulas, problem.AnnotatedFormula{
			Name:    fmt.Sprintf("conjecture_%d", i),
			Role:    problem.Conjecture,
			Formula: f,
		})
	}
	//
	if t.BreakEquivalences {
		formulas = breakConjectures(formulas)
	}
	//
	return prover.Sequence{
		Name: name,
		// Sequential decomposition lets a problem assume its predecessors.
		Ordered: t.Decomposition == Sequential,
		Problems: t.Decomposition.apply(problem.NewProblem(name, formulas...)),
	}
}

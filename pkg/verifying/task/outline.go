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

	"github.com/teiesti/anthem-next/pkg/syntax"
	"github.com/teiesti/anthem-next/pkg/verifying/problem"
)

// OutlineErrorKind discriminates the ways a proof outline can be malformed.
type OutlineErrorKind int

const (
	// OutlineUnexpectedRole: only definitions and lemmas belong in an
	// outline.
	OutlineUnexpectedRole OutlineErrorKind = iota
	// OutlineNotADefinition: a definition must be a universally quantified
	// biconditional with an atomic left-hand side.
	OutlineNotADefinition
	// OutlineDuplicatedVariables: the outermost quantification of a
	// definition binds a variable twice.
	OutlineDuplicatedVariables
	// OutlineTakenPredicate: a definition must define a fresh predicate.
	OutlineTakenPredicate
	// OutlineFreeRHSVariables: the right-hand side of a definition uses a
	// variable the quantification does not bind.
	OutlineFreeRHSVariables
	// OutlineHeadVariableAbsent: a variable of the defined predicate's
	// argument tuple does not occur on the right-hand side.
	OutlineHeadVariableAbsent
	// OutlineUndefinedRHSPredicate: the right-hand side of a definition uses
	// a predicate defined neither by the claim nor by an earlier definition.
	OutlineUndefinedRHSPredicate
	// OutlineMalformedInductiveLemma: an inductive lemma must have the shape
	// forall X N (N >= n -> F) for an integer induction variable N, a numeral
	// n and further quantified variables X covering the free variables of F.
	OutlineMalformedInductiveLemma
)

// MalformedProofOutlineError rejects a proof outline before any translation
// or proof search happens.
type MalformedProofOutlineError struct {
	Kind      OutlineErrorKind
	Formula   syntax.Formula
	Predicate syntax.Predicate
}

func (e *MalformedProofOutlineError) Error() string {
	switch e.Kind {
	case OutlineUnexpectedRole:
		return fmt.Sprintf("proof outline steps must be definitions or lemmas: %s", e.Formula)
	case OutlineNotADefinition:
		return fmt.Sprintf("not a well-formed definition: %s", e.Formula)
	case OutlineDuplicatedVariables:
		return fmt.Sprintf("definition binds a variable twice: %s", e.Formula)
	case OutlineTakenPredicate:
		return fmt.Sprintf("definition redefines the taken predicate %s", e.Predicate)
	case OutlineFreeRHSVariables:
		return fmt.Sprintf("definition has free right-hand side variables: %s", e.Formula)
	case OutlineHeadVariableAbsent:
		return fmt.Sprintf("definition head variable absent from the right-hand side: %s", e.Formula)
	case OutlineUndefinedRHSPredicate:
		return fmt.Sprintf("definition uses undefined predicate %s: %s", e.Predicate, e.Formula)
	case OutlineMalformedInductiveLemma:
		return fmt.Sprintf("malformed inductive lemma: %s", e.Formula)
	default:
		panic("unreachable")
	}
}

// GeneralLemma is one provable step of an outline: once all of its
// conjectures are proven, its consequences become axioms for every later
// step.  A plain lemma F has conjectures [F] and consequences [F]; an
// inductive lemma has conjectures [base case, inductive step] and
// consequence F itself.
type GeneralLemma struct {
	Conjectures  []problem.AnnotatedFormula
	Consequences []problem.AnnotatedFormula
}

// ProofOutline is a validated outline, split by proof direction.
type ProofOutline struct {
	ForwardDefinitions  []syntax.AnnotatedFormula
	BackwardDefinitions []syntax.AnnotatedFormula
	ForwardLemmas       []GeneralLemma
	BackwardLemmas      []GeneralLemma
}

// Definitions returns the definitions participating in one direction.
func (o *ProofOutline) Definitions(d syntax.Direction) []syntax.AnnotatedFormula {
	if d == syntax.Backward {
		return o.BackwardDefinitions
	}
	//
	return o.ForwardDefinitions
}

// Lemmas returns the lemmas participating in one direction.
func (o *ProofOutline) Lemmas(d syntax.Direction) []GeneralLemma {
	if d == syntax.Backward {
		return o.BackwardLemmas
	}
	//
	return o.ForwardLemmas
}

// ConstructOutline validates a proof outline against the set of predicates
// already taken by the claim under proof.  Outline steps are processed in
// order; each definition's predicate becomes available to later steps.
func ConstructOutline(spec *syntax.Specification, taken *syntax.PredicateSet) (*ProofOutline, error) {
	var (
		outline ProofOutline
		// Work on a copy since definitions extend the taken set.
		predicates = syntax.NewPredicateSet()
	)
	//
	predicates.AddAll(taken)
	//
	for _, af := range spec.Formulas {
		switch af.Role {
		case syntax.RoleDefinition:
			pred, err := checkDefinition(af.Formula, predicates)
			if err != nil {
				return nil, err
			}
			//
			predicates.Add(pred)
			//
			if af.Direction.Covers(syntax.Forward) {
				outline.ForwardDefinitions = append(outline.ForwardDefinitions, af)
			}
			//
			if af.Direction.Covers(syntax.Backward) {
				outline.BackwardDefinitions = append(outline.BackwardDefinitions, af)
			}
		case syntax.RoleLemma, syntax.RoleInductiveLemma:
			lemma, err := generalLemma(af)
			if err != nil {
				return nil, err
			}
			//
			if af.Direction.Covers(syntax.Forward) {
				outline.ForwardLemmas = append(outline.ForwardLemmas, lemma)
			}
			//
			if af.Direction.Covers(syntax.Backward) {
				outline.BackwardLemmas = append(outline.BackwardLemmas, lemma)
			}
		default:
			return nil, &MalformedProofOutlineError{Kind: OutlineUnexpectedRole, Formula: af.Formula}
		}
	}
	//
	return &outline, nil
}

// checkDefinition validates forall X (p(X) <-> F) and returns p.
func checkDefinition(f syntax.Formula, taken *syntax.PredicateSet) (syntax.Predicate, error) {
	u, ok := f.(*syntax.Universal)
	if !ok {
		return syntax.Predicate{}, &MalformedProofOutlineError{Kind: OutlineNotADefinition, Formula: f}
	}
	//
	equiv, ok := u.Formula.(*syntax.Equivalence)
	if !ok {
		return syntax.Predicate{}, &MalformedProofOutlineError{Kind: OutlineNotADefinition, Formula: f}
	}
	//
	head, ok := equiv.Lhs.(*syntax.Atom)
	if !ok {
		return syntax.Predicate{}, &MalformedProofOutlineError{Kind: OutlineNotADefinition, Formula: f}
	}
	//
	bound := syntax.NewVariableSet()
	//
	for _, v := range u.Variables {
		if bound.Contains(v) {
			return syntax.Predicate{}, &MalformedProofOutlineError{Kind: OutlineDuplicatedVariables, Formula: f}
		}
		//
		bound.Add(v)
	}
	//
	pred := head.PredicateOf()
	//
	if taken.Contains(pred) {
		return syntax.Predicate{}, &MalformedProofOutlineError{Kind: OutlineTakenPredicate, Predicate: pred}
	}
	//
	rhsFree := syntax.FreeVariables(equiv.Rhs)
	//
	for _, v := range rhsFree.Slice() {
		if !bound.Contains(v) {
			return syntax.Predicate{}, &MalformedProofOutlineError{Kind: OutlineFreeRHSVariables, Formula: f}
		}
	}
	//
	// Every argument variable of the defined predicate must be constrained by
	// the right-hand side; an unconstrained argument makes the definition
	// ambiguous.
	headVars := syntax.NewVariableSet()
	for _, t := range head.Terms {
		syntax.TermVariables(t, headVars)
	}
	//
	for _, v := range headVars.Slice() {
		if !rhsFree.Contains(v) {
			return syntax.Predicate{}, &MalformedProofOutlineError{Kind: OutlineHeadVariableAbsent, Formula: f}
		}
	}
	//
	// Recursion through the definition sequence is impossible when every
	// right-hand side predicate is already taken.
	for _, p := range syntax.FormulaPredicates(equiv.Rhs).Slice() {
		if !taken.Contains(p) {
			return syntax.Predicate{}, &MalformedProofOutlineError{
				Kind: OutlineUndefinedRHSPredicate, Formula: f, Predicate: p,
			}
		}
	}
	//
	return pred, nil
}

// generalLemma turns an outline lemma into its conjectures and consequences.
func generalLemma(af syntax.AnnotatedFormula) (GeneralLemma, error) {
	switch af.Role {
	case syntax.RoleLemma:
		return GeneralLemma{
			Conjectures: []problem.AnnotatedFormula{
				{Name: af.Name, Role: problem.Conjecture, Formula: af.Formula},
			},
			Consequences: []problem.AnnotatedFormula{
				{Name: af.Name, Role: problem.Axiom, Formula: af.Formula},
			},
		}, nil
	case syntax.RoleInductiveLemma:
		base, step, err := inductiveLemma(af.Formula)
		if err != nil {
			return GeneralLemma{}, err
		}
		//
		return GeneralLemma{
			Conjectures: []problem.AnnotatedFormula{
				{Name: af.Name + "_base_case", Role: problem.Conjecture, Formula: base},
				{Name: af.Name + "_inductive_step", Role: problem.Conjecture, Formula: step},
			},
			Consequences: []problem.AnnotatedFormula{
				{Name: af.Name, Role: problem.Axiom, Formula: af.Formula},
			},
		}, nil
	default:
		panic("unreachable")
	}
}

// inductiveLemma splits forall X N (N >= n -> F) into the base case
// forall X F[N:=n] and the inductive step
// forall X N (N >= n and F -> F[N:=N+1]).  The guard singles out the
// integer induction variable N; the remaining quantified variables are
// parameters carried through both conjectures.
func inductiveLemma(f syntax.Formula) (syntax.Formula, syntax.Formula, error) {
	malformed := &MalformedProofOutlineError{Kind: OutlineMalformedInductiveLemma, Formula: f}
	//
	u, ok := f.(*syntax.Universal)
	if !ok {
		return nil, nil, malformed
	}
	//
	impl, ok := u.Formula.(*syntax.Implication)
	if !ok {
		return nil, nil, malformed
	}
	//
	guard, ok := impl.Lhs.(*syntax.Comparison)
	if !ok || len(guard.Guards) != 1 || guard.Guards[0].Relation != syntax.GreaterEqual {
		return nil, nil, malformed
	}
	//
	induction, ok := guard.Term.(syntax.Variable)
	if !ok || induction.Sort != syntax.Integer || !boundBy(u.Variables, induction) {
		return nil, nil, malformed
	}
	//
	least, ok := guard.Guards[0].Term.(syntax.IntegerConstant)
	if !ok {
		return nil, nil, malformed
	}
	//
	// The outermost quantifier must close F completely.
	for _, v := range syntax.FreeVariables(impl.Rhs).Slice() {
		if !boundBy(u.Variables, v) {
			return nil, nil, malformed
		}
	}
	//
	var parameters []syntax.Variable
	for _, v := range u.Variables {
		if v != induction {
			parameters = append(parameters, v)
		}
	}
	//
	base := syntax.Quantify(syntax.Forall, parameters, syntax.Substitute(impl.Rhs, induction, least))
	//
	successor := &syntax.BinaryOp{Op: syntax.Add, Lhs: induction, Rhs: syntax.IntegerConstant{Value: 1}}
	//
	step := &syntax.Universal{
		Variables: u.Variables,
		Formula: &syntax.Implication{
			Lhs: syntax.Conjoin(impl.Lhs, impl.Rhs),
			Rhs: syntax.Substitute(impl.Rhs, induction, successor),
		},
	}
	//
	return base, step, nil
}

func boundBy(vars []syntax.Variable, v syntax.Variable) bool {
	for _, w := range vars {
		if w == v {
			return true
		}
	}
	//
	return false
}

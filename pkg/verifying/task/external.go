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

	"github.com/teiesti/anthem-next/pkg/analysis"
	"github.com/teiesti/anthem-next/pkg/simplifying"
	"github.com/teiesti/anthem-next/pkg/syntax"
	"github.com/teiesti/anthem-next/pkg/translating"
	"github.com/teiesti/anthem-next/pkg/verifying/problem"
	"github.com/teiesti/anthem-next/pkg/verifying/prover"
)

// PrivateRenameSuffix marks the specification side's instance of a private
// predicate that both sides happen to name alike.  Without the rename the
// two unrelated predicates would be identified by accident.
const PrivateRenameSuffix = "_p"

// OutputSymbolInAssumptionError rejects an assumption constraining an output
// predicate.  Assumptions may only speak about inputs and placeholders;
// constraining outputs would let a wrong program pass verification.
type OutputSymbolInAssumptionError struct {
	Assumption syntax.AnnotatedFormula
	Predicate  syntax.Predicate
}

func (e *OutputSymbolInAssumptionError) Error() string {
	return fmt.Sprintf("assumption %s mentions output predicate %s", e.Assumption.Name, e.Predicate)
}

// ProgramOnlyTermError rejects a formula containing an interval or division
// term.  Those terms denote sets of values and only rules may use them; the
// rule translation compiles them into auxiliary existentials, but a formula
// given directly has no such elaboration.
type ProgramOnlyTermError struct {
	Name string
	Term syntax.Term
}

func (e *ProgramOnlyTermError) Error() string {
	return fmt.Sprintf("formula %s uses the program-only term %s", e.Name, e.Term)
}

// ExternalEquivalenceTask claims that a program behaves like its
// specification on the public predicates declared by the user guide.  The
// specification is either a second program or a set of annotated first-order
// formulas.
type ExternalEquivalenceTask struct {
	// Exactly one of SpecificationProgram and Specification is set.
	SpecificationProgram *syntax.Program
	Specification        *syntax.Specification

	Program      *syntax.Program
	UserGuide    *syntax.UserGuide
	ProofOutline *syntax.Specification

	Direction         syntax.Direction
	Decomposition     Decomposition
	Simplify          bool
	BreakEquivalences bool
	BypassTightness   bool
}

// One side of the claim, translated and split by visibility.  Private
// definitions are axioms in every problem; the public part switches between
// axiom and conjecture with the proof direction.
type side struct {
	privateDefinitions []problem.AnnotatedFormula
	public             []problem.AnnotatedFormula
	assumptions        []syntax.AnnotatedFormula
}

// Decompose validates the claim and builds one problem sequence per
// requested direction: forward proves the program from the specification,
// backward the reverse.  Within a sequence, outline steps precede the main
// claim and each step's consequences feed the following problems.
func (t *ExternalEquivalenceTask) Decompose() ([]prover.Sequence, error) {
	if err := t.UserGuide.CheckPlaceholders(); err != nil {
		return nil, err
	}
	//
	if err := t.checkFormulas(); err != nil {
		return nil, err
	}
	//
	if err := t.checkAssumptions(); err != nil {
		return nil, err
	}
	//
	public := t.UserGuide.PublicPredicates()
	//
	programSide, err := t.programSide(t.Program, "program", public, nil)
	if err != nil {
		return nil, err
	}
	//
	specSide, err := t.specificationSide(public)
	if err != nil {
		return nil, err
	}
	//
	outline, err := t.constructOutline(programSide, specSide)
	if err != nil {
		return nil, err
	}
	//
	var sequences []prover.Sequence
	//
	if t.Direction.Covers(syntax.Forward) {
		sequences = append(sequences, t.sequence(syntax.Forward, specSide, programSide, outline))
	}
	//
	if t.Direction.Covers(syntax.Backward) {
		sequences = append(sequences, t.sequence(syntax.Backward, programSide, specSide, outline))
	}
	//
	return sequences, nil
}

// checkFormulas validates every formula given directly, before any
// translation or proof search: variable sorts must be consistent within each
// formula, and no term may be an interval or a division.
func (t *ExternalEquivalenceTask) checkFormulas() error {
	check := func(af syntax.AnnotatedFormula) error {
		if err := syntax.SortCheck(af.Formula); err != nil {
			return err
		}
		//
		if term, ok := programOnlyTerm(af.Formula); ok {
			return &ProgramOnlyTermError{Name: af.Name, Term: term}
		}
		//
		return nil
	}
	//
	for _, af := range t.UserGuide.Assumptions {
		if err := check(af); err != nil {
			return err
		}
	}
	//
	if t.Specification != nil {
		for _, af := range t.Specification.Formulas {
			if err := check(af); err != nil {
				return err
			}
		}
	}
	//
	if t.ProofOutline != nil {
		for _, af := range t.ProofOutline.Formulas {
			if err := check(af); err != nil {
				return err
			}
		}
	}
	//
	return nil
}

// programOnlyTerm finds a term within a formula which only programs may use.
func programOnlyTerm(f syntax.Formula) (syntax.Term, bool) {
	var found syntax.Term
	//
	visit := func(t syntax.Term) {
		if found == nil {
			if offender, ok := findProgramOnlyTerm(t); ok {
				found = offender
			}
		}
	}
	//
	syntax.Apply(f, func(g syntax.Formula) syntax.Formula {
		switch g := g.(type) {
		case *syntax.Atom:
			for _, t := range g.Terms {
				visit(t)
			}
		case *syntax.Comparison:
			visit(g.Term)
			for _, gd := range g.Guards {
				visit(gd.Term)
			}
		}
		return g
	})
	//
	return found, found != nil
}

func findProgramOnlyTerm(t syntax.Term) (syntax.Term, bool) {
	switch t := t.(type) {
	case *syntax.Interval:
		return t, true
	case *syntax.BinaryOp:
		if t.Op == syntax.Divide || t.Op == syntax.Modulo {
			return t, true
		}
		//
		if offender, ok := findProgramOnlyTerm(t.Lhs); ok {
			return offender, true
		}
		//
		return findProgramOnlyTerm(t.Rhs)
	default:
		return nil, false
	}
}

// Assumptions must not constrain output predicates, on either side.
func (t *ExternalEquivalenceTask) checkAssumptions() error {
	outputs := syntax.NewPredicateSet()
	for _, p := range t.UserGuide.Outputs {
		outputs.Add(p)
	}
	//
	check := func(af syntax.AnnotatedFormula) error {
		for _, p := range syntax.FormulaPredicates(af.Formula).Slice() {
			if outputs.Contains(p) {
				return &OutputSymbolInAssumptionError{Assumption: af, Predicate: p}
			}
		}
		//
		return nil
	}
	//
	for _, af := range t.UserGuide.Assumptions {
		if err := check(af); err != nil {
			return err
		}
	}
	//
	if t.Specification != nil {
		for _, af := range t.Specification.Formulas {
			if af.Role != syntax.RoleAssumption {
				continue
			}
			//
			if err := check(af); err != nil {
				return err
			}
		}
	}
	//
	return nil
}

// programSide runs one program through the gates and the translation
// pipeline.  Predicates listed in rename are private on both sides of the
// claim and get the rename suffix here.
func (t *ExternalEquivalenceTask) programSide(
	program *syntax.Program, prefix string, public, rename *syntax.PredicateSet,
) (*side, error) {
	private := syntax.NewPredicateSet()
	//
	for _, p := range program.Predicates().Slice() {
		if !public.Contains(p) {
			private.Add(p)
		}
	}
	//
	if !t.BypassTightness {
		if err := analysis.Tight(program); err != nil {
			return nil, err
		}
	}
	//
	if err := analysis.PrivateRecursionFree(program, private); err != nil {
		return nil, err
	}
	//
	inputs := syntax.NewPredicateSet()
	for _, p := range t.UserGuide.Inputs {
		inputs.Add(p)
	}
	//
	// Inputs are extensional: they are never completed, even with no rules.
	intensional := syntax.NewPredicateSet()
	for _, p := range program.Predicates().Slice() {
		if !inputs.Contains(p) {
			intensional.Add(p)
		}
	}
	//
	theory, err := translating.Complete(translating.TauStar(program), intensional)
	if err != nil {
		return nil, err
	}
	//
	if t.Simplify {
		theory = simplifying.SimplifyTheory(theory)
	}
	//
	result := &side{}
	//
	for i, f := range theory.Formulas {
		f = t.substitutePlaceholders(f)
		//
		if rename != nil {
			for _, p := range rename.Slice() {
				f = syntax.RenamePredicate(f, p, p.Symbol+PrivateRenameSuffix)
			}
		}
		//
		annotated := problem.AnnotatedFormula{
			Name:    fmt.Sprintf("%s_completion_%d", prefix, i),
			Formula: f,
		}
		//
		if p, ok := completedPredicate(theory.Formulas[i]); ok && private.Contains(p) {
			result.privateDefinitions = append(result.privateDefinitions, annotated)
		} else {
			result.public = append(result.public, annotated)
		}
	}
	//
	return result, nil
}

// specificationSide prepares the trusted side, whichever form it takes.
func (t *ExternalEquivalenceTask) specificationSide(public *syntax.PredicateSet) (*side, error) {
	if t.SpecificationProgram != nil {
		// Private predicates sharing a name across the two programs are
		// distinct; rename the specification's instances.
		shared := syntax.NewPredicateSet()
		//
		for _, p := range t.SpecificationProgram.Predicates().Slice() {
			if !public.Contains(p) && t.Program.Predicates().Contains(p) {
				shared.Add(p)
			}
		}
		//
		return t.programSide(t.SpecificationProgram, "spec", public, shared)
	}
	//
	result := &side{}
	//
	for i, af := range t.Specification.Formulas {
		switch af.Role {
		case syntax.RoleAssumption:
			af.Formula = t.substitutePlaceholders(af.Formula)
			result.assumptions = append(result.assumptions, af)
		case syntax.RoleSpec:
			name := af.Name
			if name == "" || name == syntax.UnnamedFormula {
				name = fmt.Sprintf("spec_%d", i)
			}
			//
			result.public = append(result.public, problem.AnnotatedFormula{
				Name:    name,
				Formula: t.substitutePlaceholders(af.Formula),
			})
		default:
			return nil, fmt.Errorf("specification formula %s has role %s; only assumptions and specs belong here",
				af.Name, af.Role)
		}
	}
	//
	return result, nil
}

// substitutePlaceholders replaces every declared placeholder name, uniformly,
// by its sort-tagged constant.
func (t *ExternalEquivalenceTask) substitutePlaceholders(f syntax.Formula) syntax.Formula {
	for _, ph := range t.UserGuide.Placeholders {
		f = syntax.ReplaceSymbol(f, ph.Name, ph)
	}
	//
	return f
}

// constructOutline validates the proof outline against every predicate the
// claim already speaks about.
func (t *ExternalEquivalenceTask) constructOutline(sides ...*side) (*ProofOutline, error) {
	if t.ProofOutline == nil {
		return &ProofOutline{}, nil
	}
	//
	taken := syntax.NewPredicateSet()
	//
	for _, s := range sides {
		for _, f := range s.privateDefinitions {
			taken.AddAll(syntax.FormulaPredicates(f.Formula))
		}
		//
		for _, f := range s.public {
			taken.AddAll(syntax.FormulaPredicates(f.Formula))
		}
		//
		for _, af := range s.assumptions {
			taken.AddAll(syntax.FormulaPredicates(af.Formula))
		}
	}
	//
	for _, af := range t.UserGuide.Assumptions {
		taken.AddAll(syntax.FormulaPredicates(af.Formula))
	}
	//
	taken.AddAll(t.UserGuide.PublicPredicates())
	//
	outline := *t.ProofOutline
	outline.Formulas = make([]syntax.AnnotatedFormula, len(t.ProofOutline.Formulas))
	//
	for i, af := range t.ProofOutline.Formulas {
		af.Formula = t.substitutePlaceholders(af.Formula)
		outline.Formulas[i] = af
	}
	//
	return ConstructOutline(&outline, taken)
}

// sequence assembles the ordered problems of one direction: first the
// outline lemmas, then the main claim, each over the axioms accumulated so
// far.
func (t *ExternalEquivalenceTask) sequence(
	dir syntax.Direction, axiomSide, conjectureSide *side, outline *ProofOutline,
) prover.Sequence {
	var axioms []problem.AnnotatedFormula
	//
	appendAxiom := func(name string, f syntax.Formula) {
		axioms = append(axioms, problem.AnnotatedFormula{Name: name, Role: problem.Axiom, Formula: f})
	}
	//
	for i, af := range t.UserGuide.Assumptions {
		if af.Direction.Covers(dir) {
			appendAxiom(fmt.Sprintf("assumption_%d", i), t.substitutePlaceholders(af.Formula))
		}
	}
	//
	// Assumptions and private definitions of either side are axioms in every
	// problem; only the public parts switch roles with the direction.
	for _, s := range []*side{axiomSide, conjectureSide} {
		for i, af := range s.assumptions {
			if af.Direction.Covers(dir) {
				appendAxiom(fmt.Sprintf("spec_assumption_%d", i), af.Formula)
			}
		}
		//
		for _, f := range s.privateDefinitions {
			axioms = append(axioms, problem.AnnotatedFormula{Name: f.Name, Role: problem.Axiom, Formula: f.Formula})
		}
	}
	//
	for _, f := range axiomSide.public {
		axioms = append(axioms, problem.AnnotatedFormula{Name: f.Name, Role: problem.Axiom, Formula: f.Formula})
	}
	//
	for _, af := range outline.Definitions(dir) {
		appendAxiom(af.Name, af.Formula)
	}
	//
	var problems []problem.Problem
	//
	build := func(name string, conjectures []problem.AnnotatedFormula) {
		formulas := make([]problem.AnnotatedFormula, len(axioms), len(axioms)+len(conjectures))
		copy(formulas, axioms)
		formulas = append(formulas, conjectures...)
		//
		if t.BreakEquivalences {
			formulas = breakConjectures(formulas)
		}
		//
		problems = append(problems, t.Decomposition.apply(problem.NewProblem(name, formulas...))...)
	}
	//
	for i, lemma := range outline.Lemmas(dir) {
		build(fmt.Sprintf("%s_outline_%d", dir, i), lemma.Conjectures)
		axioms = append(axioms, lemma.Consequences...)
	}
	//
	conjectures := make([]problem.AnnotatedFormula, len(conjectureSide.public))
	for i, f := range conjectureSide.public {
		conjectures[i] = problem.AnnotatedFormula{Name: f.Name, Role: problem.Conjecture, Formula: f.Formula}
	}
	//
	build(dir.String(), conjectures)
	//
	// Outline steps feed later problems as axioms, and sequential
	// decomposition lets conjectures assume their predecessors; either makes
	// the sequence order-dependent.
	ordered := len(outline.Lemmas(dir)) > 0 || t.Decomposition == Sequential
	//
	return prover.Sequence{Name: dir.String(), Ordered: ordered, Problems: problems}
}

// completedPredicate extracts the predicate a completion formula defines:
// the head of a biconditional or the atom of an empty completion.
// Constraints define nothing.
func completedPredicate(f syntax.Formula) (syntax.Predicate, bool) {
	if u, ok := f.(*syntax.Universal); ok {
		f = u.Formula
	}
	//
	switch g := f.(type) {
	case *syntax.Equivalence:
		if a, ok := g.Lhs.(*syntax.Atom); ok {
			return a.PredicateOf(), true
		}
	case *syntax.Negation:
		if a, ok := g.Formula.(*syntax.Atom); ok {
			return a.PredicateOf(), true
		}
	}
	//
	return syntax.Predicate{}, false
}

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
package syntax

import (
	"fmt"
	"strings"
)

// Relation identifies a comparison relation.
type Relation int

const (
	// Equal relation (=).
	Equal Relation = iota
	// NotEqual relation (!=).
	NotEqual
	// Less relation (<).
	Less
	// Greater relation (>).
	Greater
	// LessEqual relation (<=).
	LessEqual
	// GreaterEqual relation (>=).
	GreaterEqual
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "="
	case NotEqual:
		return "!="
	case Less:
		return "<"
	case Greater:
		return ">"
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	}
	//
	panic("unreachable")
}

// Guard is one step of a comparison chain: a relation followed by a term.
type Guard struct {
	Relation Relation
	Term     Term
}

// Atom is a predicate symbol applied to an ordered tuple of terms.
type Atom struct {
	Predicate string
	Terms     []Term
}

// PredicateOf returns the predicate (symbol and arity) of an atom.
func (a *Atom) PredicateOf() Predicate {
	return Predicate{a.Predicate, len(a.Terms)}
}

// Comparison is a term followed by an ordered chain of guards, read as the
// pairwise conjunction of the adjacent relations.
type Comparison struct {
	Term   Term
	Guards []Guard
}

// Formula represents a first-order formula over the shared term model.  The
// variant set is closed: each transformation performs an exhaustive type
// switch, so adding a constructor forces every transformation site to be
// revisited.  Formulas are immutable once built; transformations return fresh
// trees.
type Formula interface {
	fmt.Stringer

	isFormula()
}

// Truth is the constant true formula.
type Truth struct{}

// Falsity is the constant false formula.
type Falsity struct{}

// Negation of a subformula.
type Negation struct {
	Formula Formula
}

// Conjunction of zero or more subformulas.  An empty conjunction is truth.
type Conjunction struct {
	Args []Formula
}

// Disjunction of zero or more subformulas.  An empty disjunction is falsity.
type Disjunction struct {
	Args []Formula
}

// Implication between two subformulas.
type Implication struct {
	Lhs Formula
	Rhs Formula
}

// Equivalence between two subformulas.
type Equivalence struct {
	Lhs Formula
	Rhs Formula
}

// Universal quantification over one or more variables.
type Universal struct {
	Variables []Variable
	Formula   Formula
}

// Existential quantification over one or more variables.
type Existential struct {
	Variables []Variable
	Formula   Formula
}

func (Truth) isFormula()        {}
func (Falsity) isFormula()      {}
func (*Atom) isFormula()        {}
func (*Comparison) isFormula()  {}
func (*Negation) isFormula()    {}
func (*Conjunction) isFormula() {}
func (*Disjunction) isFormula() {}
func (*Implication) isFormula() {}
func (*Equivalence) isFormula() {}
func (*Universal) isFormula()   {}
func (*Existential) isFormula() {}

// Theory is an ordered sequence of formulas, read conjunctively.
type Theory struct {
	Formulas []Formula
}

// Conjoin folds a list of formulas into a single (flat) conjunction.  An
// empty list yields truth and a singleton is returned unchanged.
func Conjoin(formulas ...Formula) Formula {
	switch len(formulas) {
	case 0:
		return Truth{}
	case 1:
		return formulas[0]
	default:
		return &Conjunction{formulas}
	}
}

// Disjoin folds a list of formulas into a single (flat) disjunction.  An
// empty list yields falsity and a singleton is returned unchanged.
func Disjoin(formulas ...Formula) Formula {
	switch len(formulas) {
	case 0:
		return Falsity{}
	case 1:
		return formulas[0]
	default:
		return &Disjunction{formulas}
	}
}

// Quantify universally or existentially closes a formula over the given
// variables, unless there are none.
func Quantify(q Quantifier, vars []Variable, f Formula) Formula {
	if len(vars) == 0 {
		return f
	}
	//
	if q == Forall {
		return &Universal{vars, f}
	}
	//
	return &Existential{vars, f}
}

// Quantifier distinguishes universal from existential quantification where a
// single code path constructs either.
type Quantifier int

const (
	// Forall quantification.
	Forall Quantifier = iota
	// Exists quantification.
	Exists
)

func (t Truth) String() string { return "#true" }

func (t Falsity) String() string { return "#false" }

func (a *Atom) String() string {
	if len(a.Terms) == 0 {
		return a.Predicate
	}
	//
	args := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		args[i] = t.String()
	}
	//
	return fmt.Sprintf("%s(%s)", a.Predicate, strings.Join(args, ", "))
}

func (c *Comparison) String() string {
	var sb strings.Builder
	//
	sb.WriteString(c.Term.String())
	//
	for _, g := range c.Guards {
		sb.WriteString(fmt.Sprintf(" %s %s", g.Relation, g.Term))
	}
	//
	return sb.String()
}

func (f *Negation) String() string {
	return fmt.Sprintf("not %s", paren(f.Formula))
}

func (f *Conjunction) String() string {
	if len(f.Args) == 0 {
		return "#true"
	}
	//
	return joinFormulas(f.Args, " and ")
}

func (f *Disjunction) String() string {
	if len(f.Args) == 0 {
		return "#false"
	}
	//
	return joinFormulas(f.Args, " or ")
}

func (f *Implication) String() string {
	return fmt.Sprintf("%s -> %s", paren(f.Lhs), paren(f.Rhs))
}

func (f *Equivalence) String() string {
	return fmt.Sprintf("%s <-> %s", paren(f.Lhs), paren(f.Rhs))
}

func (f *Universal) String() string {
	return fmt.Sprintf("forall %s %s", joinVariables(f.Variables), paren(f.Formula))
}

func (f *Existential) String() string {
	return fmt.Sprintf("exists %s %s", joinVariables(f.Variables), paren(f.Formula))
}

func joinFormulas(fs []Formula, sep string) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = paren(f)
	}
	//
	return strings.Join(parts, sep)
}

func joinVariables(vars []Variable) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v.String()
	}
	//
	return strings.Join(parts, " ")
}

// Atomic formulas print without parentheses; everything else is wrapped so
// the default format is unambiguous without precedence rules.
func paren(f Formula) string {
	switch f.(type) {
	case Truth, Falsity, *Atom, *Comparison:
		return f.String()
	default:
		return "(" + f.String() + ")"
	}
}

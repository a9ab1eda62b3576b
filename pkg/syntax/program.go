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

// Sign records how often a body literal is negated.  A doubly negated literal
// is not equivalent to an unnegated one under here-and-there semantics, so
// the two are tracked distinctly.
type Sign int

const (
	// NoSign marks a positive literal.
	NoSign Sign = iota
	// Negated marks a literal under one default negation.
	Negated
	// DoublyNegated marks a literal under two default negations.
	DoublyNegated
)

func (s Sign) String() string {
	switch s {
	case NoSign:
		return ""
	case Negated:
		return "not "
	case DoublyNegated:
		return "not not "
	}
	//
	panic("unreachable")
}

// Literal is a possibly negated atom in a rule body.
type Literal struct {
	Sign Sign
	Atom Atom
}

func (l Literal) String() string {
	return l.Sign.String() + (&l.Atom).String()
}

// BodyFormula is either a literal or a comparison occurring in a rule body.
type BodyFormula interface {
	fmt.Stringer

	isBodyFormula()
}

func (Literal) isBodyFormula()     {}
func (*Comparison) isBodyFormula() {}

// RuleKind distinguishes the three rule forms of the input dialect.
type RuleKind int

const (
	// BasicRule has a regular atom head.
	BasicRule RuleKind = iota
	// ChoiceRule has a choice atom head ("{p}").
	ChoiceRule
	// ConstraintRule has no head.
	ConstraintRule
)

// Rule is a program rule: a head (absent for constraints) and an ordered
// body.
type Rule struct {
	Kind RuleKind
	// Head atom; nil exactly when Kind is ConstraintRule.
	Head *Atom
	Body []BodyFormula
}

// HeadPredicate returns the head predicate, or false for constraints.
func (r *Rule) HeadPredicate() (Predicate, bool) {
	if r.Kind == ConstraintRule {
		return Predicate{}, false
	}
	//
	return r.Head.PredicateOf(), true
}

// HeadArity returns the arity of the head atom, or zero for constraints.
func (r *Rule) HeadArity() int {
	if r.Kind == ConstraintRule {
		return 0
	}
	//
	return len(r.Head.Terms)
}

// Variables returns every variable occurring in the rule, head first, in
// order of first occurrence.
func (r *Rule) Variables() *VariableSet {
	acc := NewVariableSet()
	//
	if r.Head != nil {
		for _, t := range r.Head.Terms {
			TermVariables(t, acc)
		}
	}
	//
	for _, b := range r.Body {
		switch b := b.(type) {
		case Literal:
			for _, t := range b.Atom.Terms {
				TermVariables(t, acc)
			}
		case *Comparison:
			TermVariables(b.Term, acc)
			for _, g := range b.Guards {
				TermVariables(g.Term, acc)
			}
		default:
			panic("unreachable")
		}
	}
	//
	return acc
}

// PositiveBodyPredicates returns the predicates of body literals which occur
// without any negation.
func (r *Rule) PositiveBodyPredicates() *PredicateSet {
	acc := NewPredicateSet()
	//
	for _, b := range r.Body {
		if l, ok := b.(Literal); ok && l.Sign == NoSign {
			acc.Add(l.Atom.PredicateOf())
		}
	}
	//
	return acc
}

// BodyPredicates returns the predicates of every body literal, regardless of
// sign.
func (r *Rule) BodyPredicates() *PredicateSet {
	acc := NewPredicateSet()
	//
	for _, b := range r.Body {
		if l, ok := b.(Literal); ok {
			acc.Add(l.Atom.PredicateOf())
		}
	}
	//
	return acc
}

func (r *Rule) String() string {
	var head string
	//
	switch r.Kind {
	case BasicRule:
		head = r.Head.String()
	case ChoiceRule:
		head = "{" + r.Head.String() + "}"
	case ConstraintRule:
		// no head
	}
	//
	if len(r.Body) == 0 {
		return head + "."
	}
	//
	parts := make([]string, len(r.Body))
	for i, b := range r.Body {
		parts[i] = b.String()
	}
	//
	return fmt.Sprintf("%s :- %s.", head, strings.Join(parts, ", "))
}

// Program is an ordered sequence of rules.
type Program struct {
	Rules []Rule
}

// Predicates returns every predicate occurring in the program (heads and
// bodies) in order of first occurrence.
func (p *Program) Predicates() *PredicateSet {
	acc := NewPredicateSet()
	//
	for i := range p.Rules {
		r := &p.Rules[i]
		//
		if pred, ok := r.HeadPredicate(); ok {
			acc.Add(pred)
		}
		//
		acc.AddAll(r.BodyPredicates())
	}
	//
	return acc
}

// HeadPredicates returns every predicate defined by some rule head.
func (p *Program) HeadPredicates() *PredicateSet {
	acc := NewPredicateSet()
	//
	for i := range p.Rules {
		if pred, ok := p.Rules[i].HeadPredicate(); ok {
			acc.Add(pred)
		}
	}
	//
	return acc
}

// Variables returns every variable occurring in the program.
func (p *Program) Variables() *VariableSet {
	acc := NewVariableSet()
	//
	for i := range p.Rules {
		acc.AddAll(p.Rules[i].Variables())
	}
	//
	return acc
}

func (p *Program) String() string {
	parts := make([]string, len(p.Rules))
	for i := range p.Rules {
		parts[i] = p.Rules[i].String()
	}
	//
	return strings.Join(parts, "\n")
}

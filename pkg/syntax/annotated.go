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

import "fmt"

// Role classifies an annotated formula within a specification or proof
// outline.
type Role int

const (
	// RoleAssumption marks background knowledge taken for granted.
	RoleAssumption Role = iota
	// RoleSpec marks a formula expressing intended behavior.
	RoleSpec
	// RoleDefinition marks an explicit definition of a fresh predicate.
	RoleDefinition
	// RoleLemma marks an intermediate claim to be proven and then reused.
	RoleLemma
	// RoleInductiveLemma marks a lemma proven by induction over integers.
	RoleInductiveLemma
)

func (r Role) String() string {
	switch r {
	case RoleAssumption:
		return "assumption"
	case RoleSpec:
		return "spec"
	case RoleDefinition:
		return "definition"
	case RoleLemma:
		return "lemma"
	case RoleInductiveLemma:
		return "inductive-lemma"
	}
	//
	panic("unreachable")
}

// Direction restricts a formula or a proof to one direction of an
// equivalence claim.
type Direction int

const (
	// DirectionUniversal applies to both directions (the default).
	DirectionUniversal Direction = iota
	// Forward applies when proving the program from the specification.
	Forward
	// Backward applies when proving the specification from the program.
	Backward
)

func (d Direction) String() string {
	switch d {
	case DirectionUniversal:
		return "universal"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	//
	panic("unreachable")
}

// Covers reports whether a formula restricted to direction d participates in
// a proof of direction other.
func (d Direction) Covers(other Direction) bool {
	return d == DirectionUniversal || d == other
}

// UnnamedFormula is the default name of an annotated formula.
const UnnamedFormula = "unnamed_formula"

// AnnotatedFormula pairs a formula with its role, direction and name.
type AnnotatedFormula struct {
	Role      Role
	Direction Direction
	Name      string
	Formula   Formula
}

func (a AnnotatedFormula) String() string {
	return fmt.Sprintf("%s(%s)[%s]: %s", a.Role, a.Direction, a.Name, a.Formula)
}

// Specification is an ordered sequence of annotated formulas.
type Specification struct {
	Formulas []AnnotatedFormula
}

// UserGuide declares the interface of a program under verification: which
// predicates are inputs and outputs, which symbolic constants are
// placeholders, and what may be assumed about them.
type UserGuide struct {
	Inputs       []Predicate
	Outputs      []Predicate
	Placeholders []Placeholder
	Assumptions  []AnnotatedFormula
}

// PublicPredicates returns the input and output predicates.
func (u *UserGuide) PublicPredicates() *PredicateSet {
	acc := NewPredicateSet()
	//
	for _, p := range u.Inputs {
		acc.Add(p)
	}
	//
	for _, p := range u.Outputs {
		acc.Add(p)
	}
	//
	return acc
}

// PlaceholderSortConflictError reports two placeholder declarations sharing a
// name at different sorts.
type PlaceholderSortConflictError struct {
	Name   string
	First  Sort
	Second Sort
}

func (e *PlaceholderSortConflictError) Error() string {
	return fmt.Sprintf("placeholder %s declared at sorts %s and %s", e.Name, e.First, e.Second)
}

// CheckPlaceholders validates that no placeholder name is declared at two
// different sorts.
func (u *UserGuide) CheckPlaceholders() error {
	sorts := make(map[string]Sort)
	//
	for _, p := range u.Placeholders {
		if sort, ok := sorts[p.Name]; ok && sort != p.Sort {
			return &PlaceholderSortConflictError{p.Name, sort, p.Sort}
		}
		//
		sorts[p.Name] = p.Sort
	}
	//
	return nil
}

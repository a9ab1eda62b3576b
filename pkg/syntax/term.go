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

// Sort identifies one of the three sorts of the many-sorted target language.
// General is the supersort containing every integer, every symbol and the two
// distinguished constants infimum and supremum.
type Sort int

const (
	// General sort (the supersort).
	General Sort = iota
	// Integer sort.
	Integer
	// Symbol sort (uninterpreted symbolic constants).
	Symbol
)

func (s Sort) String() string {
	switch s {
	case General:
		return "general"
	case Integer:
		return "integer"
	case Symbol:
		return "symbol"
	}
	//
	panic("unreachable")
}

// Suffix returns the sort annotation used when printing sorted variables and
// placeholders (e.g. "N$i").
func (s Sort) Suffix() string {
	switch s {
	case General:
		return ""
	case Integer:
		return "$i"
	case Symbol:
		return "$s"
	}
	//
	panic("unreachable")
}

// Operator identifies a binary arithmetic operation.
type Operator int

const (
	// Add is integer addition.
	Add Operator = iota
	// Subtract is integer subtraction.
	Subtract
	// Multiply is integer multiplication.
	Multiply
	// Divide is integer division.  Division is partial: a term dividing by
	// zero denotes no value at all.
	Divide
	// Modulo is the remainder of integer division, partial like Divide.
	Modulo
)

func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Modulo:
		return "\\"
	}
	//
	panic("unreachable")
}

// Term represents a program or formula term.  Terms form a closed sum: every
// structural recursion over terms must handle exactly the variants below.
// Terms are immutable once built and potentially multi-valued (intervals,
// division); they are never evaluated eagerly but expanded during
// translation.
type Term interface {
	fmt.Stringer

	isTerm()
}

// Infimum is the distinguished constant below every general term.
type Infimum struct{}

// Supremum is the distinguished constant above every general term.
type Supremum struct{}

// IntegerConstant is a numeral.
type IntegerConstant struct {
	Value int
}

// SymbolicConstant is an uninterpreted symbolic constant.
type SymbolicConstant struct {
	Name string
}

// Variable is a sorted variable.  Within one formula scope a variable name
// never appears at two different sorts.
type Variable struct {
	Name string
	Sort Sort
}

// Placeholder is a symbolic constant which a user guide declares to stand for
// an arbitrary member of a given sort (a non-Herbrand constant).
type Placeholder struct {
	Name string
	Sort Sort
}

// BinaryOp applies an arithmetic operator to two terms.
type BinaryOp struct {
	Op  Operator
	Lhs Term
	Rhs Term
}

// Interval denotes every integer between its bounds (inclusive).
type Interval struct {
	Lhs Term
	Rhs Term
}

func (Infimum) isTerm()          {}
func (Supremum) isTerm()         {}
func (IntegerConstant) isTerm()  {}
func (SymbolicConstant) isTerm() {}
func (Variable) isTerm()         {}
func (Placeholder) isTerm()      {}
func (*BinaryOp) isTerm()        {}
func (*Interval) isTerm()        {}

// SortOf returns the most precise sort a term is known to inhabit.  Arithmetic
// terms and intervals denote integers only.
func SortOf(t Term) Sort {
	switch t := t.(type) {
	case Infimum, Supremum:
		return General
	case IntegerConstant:
		return Integer
	case SymbolicConstant:
		return Symbol
	case Variable:
		return t.Sort
	case Placeholder:
		return t.Sort
	case *BinaryOp:
		return Integer
	case *Interval:
		return Integer
	}
	//
	panic("unreachable")
}

// TermVariables appends every variable occurring in a term to the given
// accumulator, preserving order of first occurrence.
func TermVariables(t Term, acc *VariableSet) {
	switch t := t.(type) {
	case Infimum, Supremum, IntegerConstant, SymbolicConstant, Placeholder:
		// no variables
	case Variable:
		acc.Add(t)
	case *BinaryOp:
		TermVariables(t.Lhs, acc)
		TermVariables(t.Rhs, acc)
	case *Interval:
		TermVariables(t.Lhs, acc)
		TermVariables(t.Rhs, acc)
	default:
		panic("unreachable")
	}
}

// SubstituteTerm replaces every occurrence of a variable within a term by a
// replacement term, returning a fresh term.
func SubstituteTerm(t Term, v Variable, r Term) Term {
	switch t := t.(type) {
	case Variable:
		if t == v {
			return r
		}
		return t
	case *BinaryOp:
		return &BinaryOp{t.Op, SubstituteTerm(t.Lhs, v, r), SubstituteTerm(t.Rhs, v, r)}
	case *Interval:
		return &Interval{SubstituteTerm(t.Lhs, v, r), SubstituteTerm(t.Rhs, v, r)}
	default:
		return t
	}
}

func (t Infimum) String() string { return "#inf" }

func (t Supremum) String() string { return "#sup" }

func (t IntegerConstant) String() string { return fmt.Sprintf("%d", t.Value) }

func (t SymbolicConstant) String() string { return t.Name }

func (t Variable) String() string { return t.Name + t.Sort.Suffix() }

func (t Placeholder) String() string { return t.Name + t.Sort.Suffix() }

func (t *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", t.Lhs, t.Op, t.Rhs)
}

func (t *Interval) String() string {
	return fmt.Sprintf("(%s..%s)", t.Lhs, t.Rhs)
}

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
package problem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teiesti/anthem-next/pkg/syntax"
)

// FormatFormula renders a formula as a TFF expression.  Parenthesization is
// liberal rather than precedence-minimal; provers do not care and it keeps
// the renderer obviously correct.
//
// Intervals and division operators never reach this point: the rule
// translation compiles them away into auxiliary existentials, and task
// construction rejects them in formulas given directly.
func FormatFormula(formula syntax.Formula) string {
	switch f := formula.(type) {
	case syntax.Truth:
		return "$true"
	case syntax.Falsity:
		return "$false"
	case *syntax.Atom:
		return formatAtom(f)
	case *syntax.Comparison:
		return formatComparison(f)
	case *syntax.Negation:
		return "~(" + FormatFormula(f.Formula) + ")"
	case *syntax.Conjunction:
		return formatConnective(f.Args, "&")
	case *syntax.Disjunction:
		return formatConnective(f.Args, "|")
	case *syntax.Implication:
		return "(" + FormatFormula(f.Lhs) + " => " + FormatFormula(f.Rhs) + ")"
	case *syntax.Equivalence:
		return "(" + FormatFormula(f.Lhs) + " <=> " + FormatFormula(f.Rhs) + ")"
	case *syntax.Universal:
		return formatQuantified("!", f.Variables, f.Formula)
	case *syntax.Existential:
		return formatQuantified("?", f.Variables, f.Formula)
	}
	//
	panic("unreachable")
}

func formatConnective(args []syntax.Formula, op string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = FormatFormula(arg)
	}
	//
	return "(" + strings.Join(parts, " "+op+" ") + ")"
}

func formatQuantified(q string, vars []syntax.Variable, body syntax.Formula) string {
	binders := make([]string, len(vars))
	for i, v := range vars {
		binders[i] = v.Name + ": " + sortType(v.Sort)
	}
	//
	return q + " [" + strings.Join(binders, ", ") + "]: (" + FormatFormula(body) + ")"
}

func formatAtom(a *syntax.Atom) string {
	if len(a.Terms) == 0 {
		return a.Predicate
	}
	//
	args := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		args[i] = formatGeneral(t)
	}
	//
	return a.Predicate + "(" + strings.Join(args, ", ") + ")"
}

// A comparison chain t0 R1 t1 R2 t2 ... unfolds into the conjunction of its
// links.  A link between two integer-sorted terms uses the arithmetic
// relations of TFF; any other link is compared in the general sort, with
// integer and symbol operands embedded.
func formatComparison(c *syntax.Comparison) string {
	var (
		links []string
		lhs   = c.Term
	)
	//
	for _, g := range c.Guards {
		links = append(links, formatLink(lhs, g.Relation, g.Term))
		lhs = g.Term
	}
	//
	if len(links) == 1 {
		return links[0]
	}
	//
	return "(" + strings.Join(links, " & ") + ")"
}

func formatLink(lhs syntax.Term, rel syntax.Relation, rhs syntax.Term) string {
	if syntax.SortOf(lhs) == syntax.Integer && syntax.SortOf(rhs) == syntax.Integer {
		l, r := formatInteger(lhs), formatInteger(rhs)
		//
		switch rel {
		case syntax.Equal:
			return fmt.Sprintf("(%s = %s)", l, r)
		case syntax.NotEqual:
			return fmt.Sprintf("(%s != %s)", l, r)
		case syntax.Less:
			return fmt.Sprintf("$less(%s, %s)", l, r)
		case syntax.Greater:
			return fmt.Sprintf("$greater(%s, %s)", l, r)
		case syntax.LessEqual:
			return fmt.Sprintf("$lesseq(%s, %s)", l, r)
		case syntax.GreaterEqual:
			return fmt.Sprintf("$greatereq(%s, %s)", l, r)
		}
		//
		panic("unreachable")
	}
	//
	l, r := formatGeneral(lhs), formatGeneral(rhs)
	//
	switch rel {
	case syntax.Equal:
		return fmt.Sprintf("(%s = %s)", l, r)
	case syntax.NotEqual:
		return fmt.Sprintf("(%s != %s)", l, r)
	case syntax.Less:
		return fmt.Sprintf("p__less__(%s, %s)", l, r)
	case syntax.Greater:
		return fmt.Sprintf("p__greater__(%s, %s)", l, r)
	case syntax.LessEqual:
		return fmt.Sprintf("p__less_equal__(%s, %s)", l, r)
	case syntax.GreaterEqual:
		return fmt.Sprintf("p__greater_equal__(%s, %s)", l, r)
	}
	//
	panic("unreachable")
}

// formatGeneral renders a term as an inhabitant of the general sort,
// embedding integers via f__integer__ and symbols via f__symbolic__.
func formatGeneral(t syntax.Term) string {
	switch syntax.SortOf(t) {
	case syntax.Integer:
		return "f__integer__(" + formatInteger(t) + ")"
	case syntax.Symbol:
		return "f__symbolic__(" + formatSymbol(t) + ")"
	}
	//
	switch t := t.(type) {
	case syntax.Infimum:
		return "c__infimum__"
	case syntax.Supremum:
		return "c__supremum__"
	case syntax.Variable:
		return t.Name
	case syntax.Placeholder:
		return t.Name
	}
	//
	panic("unreachable")
}

// formatInteger renders an integer-sorted term as a TFF arithmetic term.
func formatInteger(t syntax.Term) string {
	switch t := t.(type) {
	case syntax.IntegerConstant:
		if t.Value < 0 {
			return "$uminus(" + strconv.Itoa(-t.Value) + ")"
		}
		//
		return strconv.Itoa(t.Value)
	case syntax.Variable:
		return t.Name
	case syntax.Placeholder:
		return t.Name
	case *syntax.BinaryOp:
		switch t.Op {
		case syntax.Add:
			return "$sum(" + formatInteger(t.Lhs) + ", " + formatInteger(t.Rhs) + ")"
		case syntax.Subtract:
			return "$difference(" + formatInteger(t.Lhs) + ", " + formatInteger(t.Rhs) + ")"
		case syntax.Multiply:
			return "$product(" + formatInteger(t.Lhs) + ", " + formatInteger(t.Rhs) + ")"
		}
	}
	//
	panic("unreachable")
}

func formatSymbol(t syntax.Term) string {
	switch t := t.(type) {
	case syntax.SymbolicConstant:
		return t.Name
	case syntax.Variable:
		return t.Name
	case syntax.Placeholder:
		return t.Name
	}
	//
	panic("unreachable")
}

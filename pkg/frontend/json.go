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

// Package frontend loads already-validated syntax trees produced by an
// external front end.  The interchange format is a small tagged JSON
// encoding of the AST; concrete ASP or formula text syntax is deliberately
// not handled here.
package frontend

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/teiesti/anthem-next/pkg/syntax"
)

// ParseProgram decodes a JSON-encoded program.
func ParseProgram(data []byte) (*syntax.Program, error) {
	var raw jsonProgram
	//
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	//
	program := &syntax.Program{}
	//
	for i, r := range raw.Rules {
		rule, err := decodeRule(r)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		//
		program.Rules = append(program.Rules, rule)
	}
	//
	return program, nil
}

// ParseSpecification decodes a JSON-encoded list of annotated formulas.
func ParseSpecification(data []byte) (*syntax.Specification, error) {
	var raw struct {
		Formulas []jsonAnnotatedFormula `json:"formulas"`
	}
	//
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	//
	spec := &syntax.Specification{}
	//
	for i, f := range raw.Formulas {
		af, err := decodeAnnotatedFormula(f)
		if err != nil {
			return nil, fmt.Errorf("formula %d: %w", i, err)
		}
		//
		spec.Formulas = append(spec.Formulas, af)
	}
	//
	return spec, nil
}

// ParseUserGuide decodes a JSON-encoded user guide.
func ParseUserGuide(data []byte) (*syntax.UserGuide, error) {
	var raw struct {
		Inputs       []string               `json:"inputs"`
		Outputs      []string               `json:"outputs"`
		Placeholders []jsonPlaceholder      `json:"placeholders"`
		Assumptions  []jsonAnnotatedFormula `json:"assumptions"`
	}
	//
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	//
	guide := &syntax.UserGuide{}
	//
	for _, s := range raw.Inputs {
		p, err := decodePredicate(s)
		if err != nil {
			return nil, err
		}
		//
		guide.Inputs = append(guide.Inputs, p)
	}
	//
	for _, s := range raw.Outputs {
		p, err := decodePredicate(s)
		if err != nil {
			return nil, err
		}
		//
		guide.Outputs = append(guide.Outputs, p)
	}
	//
	for _, ph := range raw.Placeholders {
		sort, err := decodeSort(ph.Sort)
		if err != nil {
			return nil, err
		}
		//
		guide.Placeholders = append(guide.Placeholders, syntax.Placeholder{Name: ph.Name, Sort: sort})
	}
	//
	for i, f := range raw.Assumptions {
		af, err := decodeAnnotatedFormula(f)
		if err != nil {
			return nil, fmt.Errorf("assumption %d: %w", i, err)
		}
		//
		guide.Assumptions = append(guide.Assumptions, af)
	}
	//
	return guide, nil
}

type jsonProgram struct {
	Rules []jsonRule `json:"rules"`
}

type jsonRule struct {
	Kind string            `json:"kind"`
	Head *jsonAtom         `json:"head,omitempty"`
	Body []json.RawMessage `json:"body,omitempty"`
}

type jsonAtom struct {
	Predicate string            `json:"predicate"`
	Terms     []json.RawMessage `json:"terms,omitempty"`
}

type jsonPlaceholder struct {
	Name string `json:"name"`
	Sort string `json:"sort"`
}

type jsonAnnotatedFormula struct {
	Role      string          `json:"role"`
	Direction string          `json:"direction,omitempty"`
	Name      string          `json:"name,omitempty"`
	Formula   json.RawMessage `json:"formula"`
}

func decodeRule(raw jsonRule) (syntax.Rule, error) {
	var rule syntax.Rule
	//
	switch raw.Kind {
	case "basic":
		rule.Kind = syntax.BasicRule
	case "choice":
		rule.Kind = syntax.ChoiceRule
	case "constraint":
		rule.Kind = syntax.ConstraintRule
	default:
		return rule, fmt.Errorf("unknown rule kind %q", raw.Kind)
	}
	//
	if rule.Kind == syntax.ConstraintRule {
		if raw.Head != nil {
			return rule, fmt.Errorf("constraint rules have no head")
		}
	} else {
		if raw.Head == nil {
			return rule, fmt.Errorf("%s rules need a head", raw.Kind)
		}
		//
		head, err := decodeAtom(*raw.Head)
		if err != nil {
			return rule, err
		}
		//
		rule.Head = head
	}
	//
	for _, b := range raw.Body {
		bf, err := decodeBodyFormula(b)
		if err != nil {
			return rule, err
		}
		//
		rule.Body = append(rule.Body, bf)
	}
	//
	return rule, nil
}

func decodeBodyFormula(data json.RawMessage) (syntax.BodyFormula, error) {
	var raw struct {
		Sign       string          `json:"sign,omitempty"`
		Atom       *jsonAtom       `json:"atom,omitempty"`
		Comparison json.RawMessage `json:"comparison,omitempty"`
	}
	//
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	//
	switch {
	case raw.Atom != nil:
		atom, err := decodeAtom(*raw.Atom)
		if err != nil {
			return nil, err
		}
		//
		var sign syntax.Sign
		//
		switch raw.Sign {
		case "":
			sign = syntax.NoSign
		case "not":
			sign = syntax.Negated
		case "not not":
			sign = syntax.DoublyNegated
		default:
			return nil, fmt.Errorf("unknown sign %q", raw.Sign)
		}
		//
		return syntax.Literal{Sign: sign, Atom: *atom}, nil
	case raw.Comparison != nil:
		f, err := decodeFormula(raw.Comparison)
		if err != nil {
			return nil, err
		}
		//
		c, ok := f.(*syntax.Comparison)
		if !ok {
			return nil, fmt.Errorf("body comparison must be a comparison")
		}
		//
		return c, nil
	default:
		return nil, fmt.Errorf("body formula needs an atom or a comparison")
	}
}

func decodeAtom(raw jsonAtom) (*syntax.Atom, error) {
	atom := &syntax.Atom{Predicate: raw.Predicate}
	//
	for _, t := range raw.Terms {
		term, err := decodeTerm(t)
		if err != nil {
			return nil, err
		}
		//
		atom.Terms = append(atom.Terms, term)
	}
	//
	return atom, nil
}

func decodeTerm(data json.RawMessage) (syntax.Term, error) {
	var raw struct {
		Type  string          `json:"type"`
		Value int             `json:"value,omitempty"`
		Name  string          `json:"name,omitempty"`
		Sort  string          `json:"sort,omitempty"`
		Op    string          `json:"op,omitempty"`
		Lhs   json.RawMessage `json:"lhs,omitempty"`
		Rhs   json.RawMessage `json:"rhs,omitempty"`
	}
	//
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	//
	switch raw.Type {
	case "infimum":
		return syntax.Infimum{}, nil
	case "supremum":
		return syntax.Supremum{}, nil
	case "integer":
		return syntax.IntegerConstant{Value: raw.Value}, nil
	case "symbol":
		return syntax.SymbolicConstant{Name: raw.Name}, nil
	case "variable":
		sort, err := decodeSort(raw.Sort)
		if err != nil {
			return nil, err
		}
		//
		return syntax.Variable{Name: raw.Name, Sort: sort}, nil
	case "placeholder":
		sort, err := decodeSort(raw.Sort)
		if err != nil {
			return nil, err
		}
		//
		return syntax.Placeholder{Name: raw.Name, Sort: sort}, nil
	case "binary":
		op, err := decodeOperator(raw.Op)
		if err != nil {
			return nil, err
		}
		//
		lhs, err := decodeTerm(raw.Lhs)
		if err != nil {
			return nil, err
		}
		//
		rhs, err := decodeTerm(raw.Rhs)
		if err != nil {
			return nil, err
		}
		//
		return &syntax.BinaryOp{Op: op, Lhs: lhs, Rhs: rhs}, nil
	case "interval":
		lhs, err := decodeTerm(raw.Lhs)
		if err != nil {
			return nil, err
		}
		//
		rhs, err := decodeTerm(raw.Rhs)
		if err != nil {
			return nil, err
		}
		//
		return &syntax.Interval{Lhs: lhs, Rhs: rhs}, nil
	default:
		return nil, fmt.Errorf("unknown term type %q", raw.Type)
	}
}

func decodeFormula(data json.RawMessage) (syntax.Formula, error) {
	var raw struct {
		Type      string            `json:"type"`
		Predicate string            `json:"predicate,omitempty"`
		Terms     []json.RawMessage `json:"terms,omitempty"`
		Term      json.RawMessage   `json:"term,omitempty"`
		Guards    []struct {
			Relation string          `json:"relation"`
			Term     json.RawMessage `json:"term"`
		} `json:"guards,omitempty"`
		Args      []json.RawMessage `json:"args,omitempty"`
		Formula   json.RawMessage   `json:"formula,omitempty"`
		Lhs       json.RawMessage   `json:"lhs,omitempty"`
		Rhs       json.RawMessage   `json:"rhs,omitempty"`
		Variables []struct {
			Name string `json:"name"`
			Sort string `json:"sort,omitempty"`
		} `json:"variables,omitempty"`
	}
	//
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	//
	switch raw.Type {
	case "true":
		return syntax.Truth{}, nil
	case "false":
		return syntax.Falsity{}, nil
	case "atom":
		return decodeAtom(jsonAtom{Predicate: raw.Predicate, Terms: raw.Terms})
	case "comparison":
		term, err := decodeTerm(raw.Term)
		if err != nil {
			return nil, err
		}
		//
		c := &syntax.Comparison{Term: term}
		//
		for _, g := range raw.Guards {
			rel, err := decodeRelation(g.Relation)
			if err != nil {
				return nil, err
			}
			//
			t, err := decodeTerm(g.Term)
			if err != nil {
				return nil, err
			}
			//
			c.Guards = append(c.Guards, syntax.Guard{Relation: rel, Term: t})
		}
		//
		if len(c.Guards) == 0 {
			return nil, fmt.Errorf("comparison needs at least one guard")
		}
		//
		return c, nil
	case "not":
		inner, err := decodeFormula(raw.Formula)
		if err != nil {
			return nil, err
		}
		//
		return &syntax.Negation{Formula: inner}, nil
	case "and", "or":
		var args []syntax.Formula
		//
		for _, a := range raw.Args {
			f, err := decodeFormula(a)
			if err != nil {
				return nil, err
			}
			//
			args = append(args, f)
		}
		//
		if raw.Type == "and" {
			return &syntax.Conjunction{Args: args}, nil
		}
		//
		return &syntax.Disjunction{Args: args}, nil
	case "implies", "equivalent":
		lhs, err := decodeFormula(raw.Lhs)
		if err != nil {
			return nil, err
		}
		//
		rhs, err := decodeFormula(raw.Rhs)
		if err != nil {
			return nil, err
		}
		//
		if raw.Type == "implies" {
			return &syntax.Implication{Lhs: lhs, Rhs: rhs}, nil
		}
		//
		return &syntax.Equivalence{Lhs: lhs, Rhs: rhs}, nil
	case "forall", "exists":
		var vars []syntax.Variable
		//
		for _, v := range raw.Variables {
			sort, err := decodeSort(v.Sort)
			if err != nil {
				return nil, err
			}
			//
			vars = append(vars, syntax.Variable{Name: v.Name, Sort: sort})
		}
		//
		body, err := decodeFormula(raw.Formula)
		if err != nil {
			return nil, err
		}
		//
		if raw.Type == "forall" {
			return &syntax.Universal{Variables: vars, Formula: body}, nil
		}
		//
		return &syntax.Existential{Variables: vars, Formula: body}, nil
	default:
		return nil, fmt.Errorf("unknown formula type %q", raw.Type)
	}
}

func decodeAnnotatedFormula(raw jsonAnnotatedFormula) (syntax.AnnotatedFormula, error) {
	var af syntax.AnnotatedFormula
	//
	switch raw.Role {
	case "assumption":
		af.Role = syntax.RoleAssumption
	case "spec":
		af.Role = syntax.RoleSpec
	case "definition":
		af.Role = syntax.RoleDefinition
	case "lemma":
		af.Role = syntax.RoleLemma
	case "inductive-lemma":
		af.Role = syntax.RoleInductiveLemma
	default:
		return af, fmt.Errorf("unknown role %q", raw.Role)
	}
	//
	switch raw.Direction {
	case "", "universal":
		af.Direction = syntax.DirectionUniversal
	case "forward":
		af.Direction = syntax.Forward
	case "backward":
		af.Direction = syntax.Backward
	default:
		return af, fmt.Errorf("unknown direction %q", raw.Direction)
	}
	//
	af.Name = raw.Name
	if af.Name == "" {
		af.Name = syntax.UnnamedFormula
	}
	//
	formula, err := decodeFormula(raw.Formula)
	if err != nil {
		return af, err
	}
	//
	af.Formula = formula
	//
	return af, nil
}

// decodePredicate parses the p/n notation.
func decodePredicate(s string) (syntax.Predicate, error) {
	symbol, arity, ok := strings.Cut(s, "/")
	if !ok {
		return syntax.Predicate{}, fmt.Errorf("predicate %q is not of the form name/arity", s)
	}
	//
	n, err := strconv.Atoi(arity)
	if err != nil || n < 0 {
		return syntax.Predicate{}, fmt.Errorf("predicate %q has an invalid arity", s)
	}
	//
	return syntax.Predicate{Symbol: symbol, Arity: n}, nil
}

func decodeSort(s string) (syntax.Sort, error) {
	switch s {
	case "", "general":
		return syntax.General, nil
	case "integer":
		return syntax.Integer, nil
	case "symbol":
		return syntax.Symbol, nil
	default:
		return syntax.General, fmt.Errorf("unknown sort %q", s)
	}
}

func decodeOperator(s string) (syntax.Operator, error) {
	switch s {
	case "+":
		return syntax.Add, nil
	case "-":
		return syntax.Subtract, nil
	case "*":
		return syntax.Multiply, nil
	case "/":
		return syntax.Divide, nil
	case "%":
		return syntax.Modulo, nil
	default:
		return syntax.Add, fmt.Errorf("unknown operator %q", s)
	}
}

func decodeRelation(s string) (syntax.Relation, error) {
	switch s {
	case "=":
		return syntax.Equal, nil
	case "!=":
		return syntax.NotEqual, nil
	case "<":
		return syntax.Less, nil
	case ">":
		return syntax.Greater, nil
	case "<=":
		return syntax.LessEqual, nil
	case ">=":
		return syntax.GreaterEqual, nil
	default:
		return syntax.Equal, fmt.Errorf("unknown relation %q", s)
	}
}

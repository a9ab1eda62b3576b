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
	"github.com/teiesti/anthem-next/pkg/syntax"
)

// Prefixes distinguishing the two worlds of here-and-there models.  Every
// predicate p of the input splits into fresh predicates hp and tp.
const (
	herePrefix  = "h"
	therePrefix = "t"
)

// Gamma applies the here/there transformation to every formula of a theory,
// reducing equivalence in the logic of here-and-there to classical
// equivalence over the split predicates.
func Gamma(theory syntax.Theory) syntax.Theory {
	formulas := make([]syntax.Formula, len(theory.Formulas))
	for i, f := range theory.Formulas {
		formulas[i] = GammaFormula(f)
	}
	//
	return syntax.Theory{Formulas: formulas}
}

// GammaFormula performs the structural recursion of the gamma
// transformation.  The case analysis is exact, not approximate: negation is
// determined solely by the "there" world, and an implication contributes
// both its gamma projection and its there projection.
func GammaFormula(formula syntax.Formula) syntax.Formula {
	switch f := formula.(type) {
	case syntax.Truth, syntax.Falsity, *syntax.Comparison:
		return f
	case *syntax.Atom:
		return Here(f)
	case *syntax.Negation:
		// not F determines its truth in the there world alone.
		return &syntax.Negation{Formula: There(f.Formula)}
	case *syntax.Conjunction:
		return &syntax.Conjunction{Args: gammaAll(f.Args)}
	case *syntax.Disjunction:
		return &syntax.Disjunction{Args: gammaAll(f.Args)}
	case *syntax.Implication:
		return syntax.Conjoin(
			&syntax.Implication{Lhs: GammaFormula(f.Lhs), Rhs: GammaFormula(f.Rhs)},
			&syntax.Implication{Lhs: There(f.Lhs), Rhs: There(f.Rhs)},
		)
	case *syntax.Equivalence:
		return syntax.Conjoin(
			&syntax.Equivalence{Lhs: GammaFormula(f.Lhs), Rhs: GammaFormula(f.Rhs)},
			&syntax.Equivalence{Lhs: There(f.Lhs), Rhs: There(f.Rhs)},
		)
	case *syntax.Universal:
		return &syntax.Universal{Variables: f.Variables, Formula: GammaFormula(f.Formula)}
	case *syntax.Existential:
		return &syntax.Existential{Variables: f.Variables, Formula: GammaFormula(f.Formula)}
	}
	//
	panic("unreachable")
}

func gammaAll(fs []syntax.Formula) []syntax.Formula {
	out := make([]syntax.Formula, len(fs))
	for i, f := range fs {
		out[i] = GammaFormula(f)
	}
	//
	return out
}

// Here projects a formula into the "here" world by prefixing every predicate
// symbol with h.
func Here(f syntax.Formula) syntax.Formula {
	return prefixPredicates(f, herePrefix)
}

// There projects a formula into the "there" world by prefixing every
// predicate symbol with t.
func There(f syntax.Formula) syntax.Formula {
	return prefixPredicates(f, therePrefix)
}

func prefixPredicates(f syntax.Formula, prefix string) syntax.Formula {
	return syntax.Apply(f, func(g syntax.Formula) syntax.Formula {
		if a, ok := g.(*syntax.Atom); ok {
			return &syntax.Atom{Predicate: prefix + a.Predicate, Terms: a.Terms}
		}
		return g
	})
}

// TransitionAxioms fixes the standard ordering between the two worlds: for
// every predicate p, forall V (hp(V) -> tp(V)).
func TransitionAxioms(predicates *syntax.PredicateSet) syntax.Theory {
	var formulas []syntax.Formula
	//
	for _, pred := range predicates.Slice() {
		vars, terms := argumentTuple(pred.Arity)
		//
		implication := &syntax.Implication{
			Lhs: &syntax.Atom{Predicate: herePrefix + pred.Symbol, Terms: terms},
			Rhs: &syntax.Atom{Predicate: therePrefix + pred.Symbol, Terms: terms},
		}
		//
		formulas = append(formulas, syntax.Quantify(syntax.Forall, vars, implication))
	}
	//
	return syntax.Theory{Formulas: formulas}
}

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

// BreakEquivalences splits a biconditional, possibly under leading universal
// quantifiers, into its two implications:
//
//	forall X (F <-> G)  =>  forall X (F -> G), forall X (G -> F)
//
// Anything else passes through unchanged.  The two implications are jointly
// equivalent to the original but usually far easier for a prover.
func BreakEquivalences(formula syntax.Formula) []syntax.Formula {
	switch f := formula.(type) {
	case *syntax.Equivalence:
		return []syntax.Formula{
			&syntax.Implication{Lhs: f.Lhs, Rhs: f.Rhs},
			&syntax.Implication{Lhs: f.Rhs, Rhs: f.Lhs},
		}
	case *syntax.Universal:
		inner := BreakEquivalences(f.Formula)
		if len(inner) == 1 {
			return []syntax.Formula{formula}
		}
		//
		out := make([]syntax.Formula, len(inner))
		for i, g := range inner {
			out[i] = &syntax.Universal{Variables: f.Variables, Formula: g}
		}
		//
		return out
	default:
		return []syntax.Formula{formula}
	}
}

// breakConjectures applies equivalence breaking to every conjecture of a
// problem formula list, suffixing the names of split formulas.
func breakConjectures(formulas []problem.AnnotatedFormula) []problem.AnnotatedFormula {
	var out []problem.AnnotatedFormula
	//
	for _, f := range formulas {
		if f.Role != problem.Conjecture {
			out = append(out, f)
			continue
		}
		//
		broken := BreakEquivalences(f.Formula)
		if len(broken) == 1 {
			out = append(out, f)
			continue
		}
		//
		for i, g := range broken {
			out = append(out, problem.AnnotatedFormula{
				Name:    fmt.Sprintf("%s_%d", f.Name, i+1),
				Role:    problem.Conjecture,
				Formula: g,
			})
		}
	}
	//
	return out
}

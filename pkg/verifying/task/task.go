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

// Package task assembles verification claims into ordered sequences of proof
// problems.  A task validates its inputs eagerly, runs the program-to-formula
// translations, and emits one problem sequence per proof direction; it never
// talks to a prover itself.
package task

import (
	"github.com/teiesti/anthem-next/pkg/verifying/problem"
	"github.com/teiesti/anthem-next/pkg/verifying/prover"
)

// Decomposition selects how a multi-conjecture problem splits into
// single-conjecture problems.
type Decomposition int

const (
	// Independent gives every conjecture its own problem over the shared
	// axioms.
	Independent Decomposition = iota
	// Sequential additionally lets every conjecture assume its predecessors.
	Sequential
)

func (d Decomposition) String() string {
	switch d {
	case Independent:
		return "independent"
	case Sequential:
		return "sequential"
	default:
		panic("unreachable")
	}
}

func (d Decomposition) apply(p problem.Problem) []problem.Problem {
	switch d {
	case Independent:
		return p.DecomposeIndependent()
	case Sequential:
		return p.DecomposeSequential()
	default:
		panic("unreachable")
	}
}

// Task is a verification claim that decomposes into prover-ready problem
// sequences.  Problems within one sequence must be proven in order; distinct
// sequences are independent.
type Task interface {
	Decompose() ([]prover.Sequence, error)
}

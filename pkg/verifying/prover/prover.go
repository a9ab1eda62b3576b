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

// Package prover wraps external automated theorem provers.  A prover
// consumes a rendered proof problem and reports an SZS status; anything
// other than Theorem counts against the overall verdict but is never a
// pipeline error.
package prover

import (
	"context"
	"fmt"
	"regexp"

	"github.com/teiesti/anthem-next/pkg/verifying/problem"
)

// Status is the SZS verdict of one prover run.
type Status int

const (
	// Unknown covers a run which terminated without a recognizable verdict.
	Unknown Status = iota
	// Theorem means the conjecture follows from the axioms.
	Theorem
	// CounterSatisfiable means the conjecture does not follow.
	CounterSatisfiable
	// ContradictoryAxioms means the axioms are inconsistent; the conjecture
	// holds vacuously but the problem deserves scrutiny.
	ContradictoryAxioms
	// Timeout means the prover exhausted its time limit.
	Timeout
	// MemoryOut means the prover exhausted its memory limit.
	MemoryOut
	// GaveUp means the prover abandoned the search.
	GaveUp
	// Error means the prover reported an internal error.
	Error
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "Unknown"
	case Theorem:
		return "Theorem"
	case CounterSatisfiable:
		return "CounterSatisfiable"
	case ContradictoryAxioms:
		return "ContradictoryAxioms"
	case Timeout:
		return "Timeout"
	case MemoryOut:
		return "MemoryOut"
	case GaveUp:
		return "GaveUp"
	case Error:
		return "Error"
	default:
		panic("unreachable")
	}
}

// Proven reports whether the status establishes the conjecture.
// ContradictoryAxioms is deliberately excluded: an inconsistent axiom set
// proves anything, so it must surface as a failure.
func (s Status) Proven() bool {
	return s == Theorem
}

var szsPattern = regexp.MustCompile(`(?m)^% SZS status (\w+) for (\w*)$`)

// ExtractStatus scans prover output for an SZS status line.
func ExtractStatus(output string) (Status, error) {
	m := szsPattern.FindStringSubmatch(output)
	if m == nil {
		return Unknown, fmt.Errorf("prover output carries no SZS status line")
	}
	//
	switch m[1] {
	case "Theorem":
		return Theorem, nil
	case "CounterSatisfiable":
		return CounterSatisfiable, nil
	case "ContradictoryAxioms":
		return ContradictoryAxioms, nil
	case "Timeout":
		return Timeout, nil
	case "MemoryOut":
		return MemoryOut, nil
	case "GaveUp":
		return GaveUp, nil
	case "Error":
		return Error, nil
	default:
		return Unknown, fmt.Errorf("unrecognized SZS status %q", m[1])
	}
}

// Result is the outcome of submitting one problem.
type Result struct {
	Problem problem.Problem
	Status  Status
	// Raw prover output, kept for diagnostics.
	Output string
}

// Prover submits problems to an external automated theorem prover.  Submit
// returns an error only when the prover could not be run at all; any run
// that produces output yields a Result, however inconclusive.
type Prover interface {
	Submit(ctx context.Context, p problem.Problem) (Result, error)
}

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
package prover

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teiesti/anthem-next/pkg/verifying/problem"
)

func TestExtractStatus(t *testing.T) {
	output := "% Running in auto mode\n% SZS status Theorem for problem\n% Proof found\n"
	//
	status, err := ExtractStatus(output)
	require.NoError(t, err)
	assert.Equal(t, Theorem, status)
	assert.True(t, status.Proven())
}

func TestExtractStatusVariants(t *testing.T) {
	cases := map[string]Status{
		"CounterSatisfiable":  CounterSatisfiable,
		"ContradictoryAxioms": ContradictoryAxioms,
		"Timeout":             Timeout,
		"MemoryOut":           MemoryOut,
		"GaveUp":              GaveUp,
		"Error":               Error,
	}
	//
	for name, expected := range cases {
		status, err := ExtractStatus("% SZS status " + name + " for x\n")
		require.NoError(t, err)
		assert.Equal(t, expected, status)
		// Nothing but Theorem establishes a conjecture.  In particular,
		// inconsistent axioms prove anything and must count as a failure.
		assert.False(t, status.Proven())
	}
}

func TestExtractStatusMissing(t *testing.T) {
	status, err := ExtractStatus("no verdict here\n")
	assert.Error(t, err)
	assert.Equal(t, Unknown, status)
	//
	// An indented line is not a status line.
	_, err = ExtractStatus("  % SZS status Theorem for x\n")
	assert.Error(t, err)
}

func TestExtractStatusUnrecognized(t *testing.T) {
	status, err := ExtractStatus("% SZS status Satisfiable for x\n")
	assert.Error(t, err)
	assert.Equal(t, Unknown, status)
}

// stubProver reports a fixed status per problem name.
type stubProver struct {
	statuses map[string]Status
	//
	mutex sync.Mutex
	// Submission order, for inspecting sequencing.
	submitted []string
}

func (s *stubProver) Submit(_ context.Context, p problem.Problem) (Result, error) {
	s.mutex.Lock()
	s.submitted = append(s.submitted, p.Name)
	s.mutex.Unlock()
	//
	return Result{Problem: p, Status: s.statuses[p.Name]}, nil
}

func TestPoolProvesSequenceInOrder(t *testing.T) {
	stub := &stubProver{statuses: map[string]Status{
		"first":  Theorem,
		"second": Theorem,
	}}
	//
	pool := NewPool(stub, 1)
	//
	sequences := []Sequence{{
		Name: "forward",
		Problems: []problem.Problem{
			problem.NewProblem("first"),
			problem.NewProblem("second"),
		},
	}}
	//
	results, err := pool.ProveAll(context.Background(), sequences)
	require.NoError(t, err)
	require.Len(t, results, 2)
	//
	assert.Equal(t, []string{"first", "second"}, stub.submitted)
	//
	for _, r := range results {
		assert.True(t, r.Status.Proven())
	}
}

func TestPoolShortCircuitsSequence(t *testing.T) {
	stub := &stubProver{statuses: map[string]Status{
		"first":  Theorem,
		"second": CounterSatisfiable,
		"third":  Theorem,
	}}
	//
	pool := NewPool(stub, 1)
	//
	sequences := []Sequence{{
		Name: "forward",
		Ordered: true,
		Problems: []problem.Problem{
			problem.NewProblem("first"),
			problem.NewProblem("second"),
			// Never reached: it would assume the failed conjecture.
			problem.NewProblem("third"),
		},
	}}
	//
	results, err := pool.ProveAll(context.Background(), sequences)
	require.NoError(t, err)
	require.Len(t, results, 2)
	//
	assert.Equal(t, Theorem, results[0].Status)
	assert.Equal(t, CounterSatisfiable, results[1].Status)
	assert.Equal(t, []string{"first", "second"}, stub.submitted)
}

func TestPoolRunsUnorderedSequenceToCompletion(t *testing.T) {
	stub := &stubProver{statuses: map[string]Status{
		"first":  Theorem,
		"second": CounterSatisfiable,
		"third":  Theorem,
	}}
	//
	pool := NewPool(stub, 1)
	//
	// Without ordering, no problem assumes another; every status is reported.
	sequences := []Sequence{{
		Name: "forward",
		Problems: []problem.Problem{
			problem.NewProblem("first"),
			problem.NewProblem("second"),
			problem.NewProblem("third"),
		},
	}}
	//
	results, err := pool.ProveAll(context.Background(), sequences)
	require.NoError(t, err)
	require.Len(t, results, 3)
	//
	assert.Equal(t, CounterSatisfiable, results[1].Status)
	assert.Equal(t, Theorem, results[2].Status)
	assert.Equal(t, []string{"first", "second", "third"}, stub.submitted)
}

func TestPoolGroupsResultsBySequence(t *testing.T) {
	stub := &stubProver{statuses: map[string]Status{
		"f1": Theorem,
		"b1": Theorem,
	}}
	//
	pool := NewPool(stub, 2)
	//
	sequences := []Sequence{
		{Name: "forward", Problems: []problem.Problem{problem.NewProblem("f1")}},
		{Name: "backward", Problems: []problem.Problem{problem.NewProblem("b1")}},
	}
	//
	results, err := pool.ProveAll(context.Background(), sequences)
	require.NoError(t, err)
	require.Len(t, results, 2)
	//
	// Input order, whatever the scheduling.
	assert.Equal(t, "f1", results[0].Problem.Name)
	assert.Equal(t, "b1", results[1].Problem.Name)
}

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

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/teiesti/anthem-next/pkg/verifying/problem"
)

// Sequence is a run of problems belonging to one proof direction.  When the
// sequence is ordered, each problem may assume the conjectures of its
// predecessors, so problems run strictly in order and a non-theorem outcome
// short-circuits the rest.  An unordered sequence runs every problem and
// reports each status individually.  Distinct sequences are independent of
// each other.
type Sequence struct {
	Name     string
	Ordered  bool
	Problems []problem.Problem
}

// Pool runs sequences of problems against a prover with a bounded number of
// concurrent prover instances.
type Pool struct {
	prover    Prover
	instances int
}

// NewPool constructs a pool driving the given prover with at most instances
// concurrent submissions.
func NewPool(p Prover, instances int) *Pool {
	if instances <= 0 {
		instances = 1
	}
	//
	return &Pool{prover: p, instances: instances}
}

// ProveAll runs every sequence and returns all results, grouped by sequence
// in input order.  The error is non-nil only when a prover could not be run;
// unproven problems are reported through their result status.
func (p *Pool) ProveAll(ctx context.Context, sequences []Sequence) ([]Result, error) {
	var (
		g, gctx = errgroup.WithContext(ctx)
		results = make([][]Result, len(sequences))
	)
	//
	g.SetLimit(p.instances)
	//
	for i, seq := range sequences {
		i, seq := i, seq
		g.Go(func() error {
			for _, prob := range seq.Problems {
				result, err := p.prover.Submit(gctx, prob)
				if err != nil {
					return err
				}
				//
				results[i] = append(results[i], result)
				//
				if !result.Status.Proven() && seq.Ordered {
					// Later problems of this sequence assume this one.
					log.Debugf("sequence %s: stopping after %s (%s)", seq.Name, prob.Name, result.Status)
					return nil
				}
			}
			//
			return nil
		})
	}
	//
	if err := g.Wait(); err != nil {
		return nil, err
	}
	//
	var flat []Result
	for _, rs := range results {
		flat = append(flat, rs...)
	}
	//
	return flat, nil
}

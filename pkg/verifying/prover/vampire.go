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
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/teiesti/anthem-next/pkg/verifying/problem"
)

// Vampire runs the vampire theorem prover in CASC mode, feeding the rendered
// problem on stdin.
type Vampire struct {
	// Executable name or path; "vampire" when empty.
	Executable string
	// Time limit in seconds per problem.
	TimeLimit int
	// Cores per prover instance.
	Cores int
}

const (
	defaultTimeLimit = 60
	defaultCores     = 1
)

// NewVampire constructs a vampire adapter with the given resource limits;
// non-positive limits fall back to the defaults.
func NewVampire(timeLimit, cores int) *Vampire {
	if timeLimit <= 0 {
		timeLimit = defaultTimeLimit
	}
	//
	if cores <= 0 {
		cores = defaultCores
	}
	//
	return &Vampire{TimeLimit: timeLimit, Cores: cores}
}

// Submit renders the problem, runs vampire on it and extracts the SZS
// status.  A missing or unrecognized status degrades to Unknown rather than
// failing, since provers routinely die without a verdict.
func (v *Vampire) Submit(ctx context.Context, p problem.Problem) (Result, error) {
	executable := v.Executable
	if executable == "" {
		executable = "vampire"
	}
	//
	cmd := exec.CommandContext(ctx, executable,
		"--mode", "casc",
		"--time_limit", strconv.Itoa(v.TimeLimit),
		"--cores", strconv.Itoa(v.Cores),
	)
	//
	cmd.Stdin = strings.NewReader(p.Render())
	//
	log.Debugf("submitting problem %s to %s", p.Name, executable)
	//
	output, err := cmd.CombinedOutput()
	if len(output) == 0 && err != nil {
		return Result{}, fmt.Errorf("running %s on problem %s: %w", executable, p.Name, err)
	}
	//
	result := Result{Problem: p, Output: string(output)}
	//
	status, err := ExtractStatus(result.Output)
	if err != nil {
		log.Debugf("problem %s: %v", p.Name, err)
	}
	//
	result.Status = status
	//
	log.Infof("problem %s: %s", p.Name, result.Status)
	//
	return result, nil
}

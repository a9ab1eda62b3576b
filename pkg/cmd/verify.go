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
package cmd

import (
	"context"
	"fmt"
	"os"
	"path"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/teiesti/anthem-next/pkg/syntax"
	"github.com/teiesti/anthem-next/pkg/verifying/prover"
	"github.com/teiesti/anthem-next/pkg/verifying/task"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [flags] program_file",
	Short: "Verify a program against a specification.",
	Long: `Verify a program against a specification.
	With --equivalence strong, --spec names a second program and the claim
	is strong equivalence of the two.  With --equivalence external, --spec
	names either a second program or a specification of annotated formulas,
	--guide names the user guide declaring inputs, outputs, placeholders and
	assumptions, and --outline optionally names a proof outline.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := verifyConfig{
			direction:         readDirection(getString(cmd, "direction")),
			decomposition:     readDecomposition(getString(cmd, "decomposition")),
			simplify:          !getFlag(cmd, "no-simplify"),
			breakEquivalences: !getFlag(cmd, "no-eq-break"),
			proofSearch:       !getFlag(cmd, "no-proof-search"),
			bypassTightness:   getFlag(cmd, "bypass-tightness"),
			instances:         getInt(cmd, "prover-instances"),
			cores:             getInt(cmd, "prover-cores"),
			timeLimit:         getInt(cmd, "time-limit"),
			saveProblems:      getString(cmd, "save-problems"),
		}
		//
		claim := buildClaim(cmd, args[0], cfg)
		//
		sequences, err := claim.Decompose()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		if cfg.saveProblems != "" {
			saveProblems(sequences, cfg.saveProblems)
		}
		//
		if !cfg.proofSearch {
			return
		}
		//
		if !runProofSearch(sequences, cfg) {
			os.Exit(1)
		}
	},
}

// verify config encapsulates the parameters of one verification run.
type verifyConfig struct {
	direction         syntax.Direction
	decomposition     task.Decomposition
	simplify          bool
	breakEquivalences bool
	proofSearch       bool
	bypassTightness   bool
	instances         int
	cores             int
	timeLimit         int
	saveProblems      string
}

func buildClaim(cmd *cobra.Command, programFile string, cfg verifyConfig) task.Task {
	program := readProgramFile(programFile)
	specFile := getString(cmd, "spec")
	//
	if specFile == "" {
		fmt.Println("verify requires --spec")
		os.Exit(1)
	}
	//
	switch equivalence := getString(cmd, "equivalence"); equivalence {
	case "strong":
		return &task.StrongEquivalenceTask{
			Left:              readProgramFile(specFile),
			Right:             program,
			Direction:         cfg.direction,
			Decomposition:     cfg.decomposition,
			Simplify:          cfg.simplify,
			BreakEquivalences: cfg.breakEquivalences,
		}
	case "external":
		guideFile := getString(cmd, "guide")
		if guideFile == "" {
			fmt.Println("external equivalence requires --guide")
			os.Exit(1)
		}
		//
		claim := &task.ExternalEquivalenceTask{
			Program:           program,
			UserGuide:         readUserGuideFile(guideFile),
			Direction:         cfg.direction,
			Decomposition:     cfg.decomposition,
			Simplify:          cfg.simplify,
			BreakEquivalences: cfg.breakEquivalences,
			BypassTightness:   cfg.bypassTightness,
		}
		//
		if getFlag(cmd, "spec-is-program") {
			claim.SpecificationProgram = readProgramFile(specFile)
		} else {
			claim.Specification = readSpecificationFile(specFile)
		}
		//
		if outlineFile := getString(cmd, "outline"); outlineFile != "" {
			claim.ProofOutline = readSpecificationFile(outlineFile)
		}
		//
		return claim
	default:
		fmt.Printf("unknown equivalence: %s\n", equivalence)
		os.Exit(2)
		// unreachable
		return nil
	}
}

func readDecomposition(s string) task.Decomposition {
	switch s {
	case "independent":
		return task.Independent
	case "sequential":
		return task.Sequential
	default:
		fmt.Printf("unknown decomposition: %s\n", s)
		os.Exit(2)
		// unreachable
		return task.Independent
	}
}

func saveProblems(sequences []prover.Sequence, dir string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	for _, seq := range sequences {
		for _, p := range seq.Problems {
			filename := path.Join(dir, p.Name+".p")
			//
			if err := os.WriteFile(filename, []byte(p.Render()), 0644); err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			log.Debugf("wrote %s", filename)
		}
	}
}

// runProofSearch submits every problem sequence and reports the verdict.
// Success requires every problem of every sequence to report Theorem; a
// short-circuited sequence therefore counts as failure via the missing
// results.
func runProofSearch(sequences []prover.Sequence, cfg verifyConfig) bool {
	vampire := prover.NewVampire(cfg.timeLimit, cfg.cores)
	pool := prover.NewPool(vampire, cfg.instances)
	//
	results, err := pool.ProveAll(context.Background(), sequences)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	expected := 0
	for _, seq := range sequences {
		expected += len(seq.Problems)
	}
	//
	success := len(results) == expected
	//
	for _, r := range results {
		fmt.Printf("%s: %s\n", r.Problem.Name, r.Status)
		//
		if !r.Status.Proven() {
			success = false
			//
			reportFailure(r)
		}
	}
	//
	if success {
		fmt.Println("Success")
	} else {
		fmt.Println("Failure")
	}
	//
	return success
}

func reportFailure(r prover.Result) {
	fmt.Printf("problem %s was not proven:\n", r.Problem.Name)
	//
	for _, f := range r.Problem.Axioms() {
		fmt.Printf("  axiom %s: %s\n", f.Name, f.Formula)
	}
	//
	for _, f := range r.Problem.Conjectures() {
		fmt.Printf("  conjecture %s: %s\n", f.Name, f.Formula)
	}
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().String("equivalence", "external", "claim to verify (strong, external)")
	verifyCmd.Flags().String("spec", "", "specification file (program or annotated formulas)")
	verifyCmd.Flags().Bool("spec-is-program", false, "treat the specification file as a program")
	verifyCmd.Flags().String("guide", "", "user guide file")
	verifyCmd.Flags().String("outline", "", "proof outline file")
	verifyCmd.Flags().String("direction", "universal", "proof direction (universal, forward, backward)")
	verifyCmd.Flags().String("decomposition", "independent", "conjecture decomposition (independent, sequential)")
	verifyCmd.Flags().Bool("no-simplify", false, "disable formula simplification")
	verifyCmd.Flags().Bool("no-eq-break", false, "disable equivalence breaking")
	verifyCmd.Flags().Bool("no-proof-search", false, "build problems without running the prover")
	verifyCmd.Flags().Bool("bypass-tightness", false, "skip the tightness check")
	verifyCmd.Flags().Int("prover-instances", 1, "number of concurrent prover instances")
	verifyCmd.Flags().Int("prover-cores", 1, "cores per prover instance")
	verifyCmd.Flags().Int("time-limit", 60, "prover time limit in seconds per problem")
	verifyCmd.Flags().String("save-problems", "", "directory for saving the generated problems")
}

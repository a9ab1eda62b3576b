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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teiesti/anthem-next/pkg/simplifying"
	"github.com/teiesti/anthem-next/pkg/syntax"
	"github.com/teiesti/anthem-next/pkg/translating"
)

// translateCmd represents the translate command
var translateCmd = &cobra.Command{
	Use:   "translate [flags] program_file",
	Short: "Translate a program into a first-order theory.",
	Long: `Translate a program into a first-order theory.
	The --with flag selects how far the translation pipeline runs:
	tau-star stops after the rule translation, completion additionally
	forms the Clark completion, and gamma applies the here-and-there
	splitting on top of tau-star.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		program := readProgramFile(args[0])
		simplify := !getFlag(cmd, "no-simplify")
		//
		theory := translating.TauStar(program)
		//
		switch with := getString(cmd, "with"); with {
		case "tau-star":
			// done
		case "completion":
			var err error
			//
			theory, err = translating.Complete(theory, program.HeadPredicates())
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		case "gamma":
			theory = translating.Gamma(theory)
		default:
			fmt.Printf("unknown translation: %s\n", with)
			os.Exit(2)
		}
		//
		if simplify {
			theory = simplifying.SimplifyTheory(theory)
		}
		//
		printTheory(theory)
	},
}

func printTheory(theory syntax.Theory) {
	for _, f := range theory.Formulas {
		fmt.Println(f)
	}
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().String("with", "tau-star", "translation to apply (tau-star, completion, gamma)")
	translateCmd.Flags().Bool("no-simplify", false, "disable formula simplification")
}

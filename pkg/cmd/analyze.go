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

	"github.com/teiesti/anthem-next/pkg/analysis"
	"github.com/teiesti/anthem-next/pkg/syntax"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] program_file",
	Short: "Check structural properties of a program.",
	Long: `Check structural properties of a program.
	Tightness requires no positive dependency cycles.  Private recursion
	checks for recursion confined to predicates the user guide does not
	declare public; it therefore requires --guide.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		program := readProgramFile(args[0])
		//
		var err error
		//
		switch property := getString(cmd, "property"); property {
		case "tightness":
			err = analysis.Tight(program)
		case "private-recursion":
			guideFile := getString(cmd, "guide")
			if guideFile == "" {
				fmt.Println("the private-recursion property requires --guide")
				os.Exit(1)
			}
			//
			guide := readUserGuideFile(guideFile)
			public := guide.PublicPredicates()
			//
			private := syntax.NewPredicateSet()
			for _, p := range program.Predicates().Slice() {
				if !public.Contains(p) {
					private.Add(p)
				}
			}
			//
			err = analysis.PrivateRecursionFree(program, private)
		default:
			fmt.Printf("unknown property: %s\n", property)
			os.Exit(2)
		}
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		fmt.Println("Success")
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("property", "tightness", "property to check (tightness, private-recursion)")
	analyzeCmd.Flags().String("guide", "", "user guide file")
}

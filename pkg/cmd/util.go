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

	"github.com/teiesti/anthem-next/pkg/frontend"
	"github.com/teiesti/anthem-next/pkg/syntax"
)

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected int flag, or panic if an error arises.
func getInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string flag, or panic if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Parse a program file in the front-end JSON interchange format.
func readProgramFile(filename string) *syntax.Program {
	bytes, err := os.ReadFile(filename)
	if err == nil {
		var program *syntax.Program
		//
		program, err = frontend.ParseProgram(bytes)
		if err == nil {
			return program
		}
	}
	// Handle error
	fmt.Printf("%s: %v\n", filename, err)
	os.Exit(2)
	// unreachable
	return nil
}

// Parse a specification file in the front-end JSON interchange format.
func readSpecificationFile(filename string) *syntax.Specification {
	bytes, err := os.ReadFile(filename)
	if err == nil {
		var spec *syntax.Specification
		//
		spec, err = frontend.ParseSpecification(bytes)
		if err == nil {
			return spec
		}
	}
	// Handle error
	fmt.Printf("%s: %v\n", filename, err)
	os.Exit(2)
	// unreachable
	return nil
}

// Parse a user guide file in the front-end JSON interchange format.
func readUserGuideFile(filename string) *syntax.UserGuide {
	bytes, err := os.ReadFile(filename)
	if err == nil {
		var guide *syntax.UserGuide
		//
		guide, err = frontend.ParseUserGuide(bytes)
		if err == nil {
			return guide
		}
	}
	// Handle error
	fmt.Printf("%s: %v\n", filename, err)
	os.Exit(2)
	// unreachable
	return nil
}

// Parse a direction flag.
func readDirection(s string) syntax.Direction {
	switch s {
	case "universal":
		return syntax.DirectionUniversal
	case "forward":
		return syntax.Forward
	case "backward":
		return syntax.Backward
	default:
		fmt.Printf("unknown direction: %s\n", s)
		os.Exit(2)
		// unreachable
		return syntax.DirectionUniversal
	}
}

// Copyright the go-cella authors.
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
	"strings"

	"github.com/cella-lang/go-cella/pkg/ast"
	"github.com/cella-lang/go-cella/pkg/smt"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected uint flag, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Parse a Cella source file into a program, exiting with a diagnostic on
// failure.
func readSourceFile(filename string) *ast.Program {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	program, err := ast.ParseProgram(string(bytes))
	if err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(2)
	}
	//
	return program
}

// Construct the solver selected by flags and configuration, falling back to
// the best solver available on this machine.  An unavailable backend is a
// fatal configuration error.
func selectSolver(cmd *cobra.Command, cfg *Config) smt.Solver {
	backend := GetString(cmd, "solver")
	//
	if backend == "" {
		backend = cfg.Solver
	}
	//
	factory := smt.NewSolverFactoryWithTimeout(cfg.SolverTimeout())
	//
	solver, err := resolveSolver(factory, backend)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return solver
}

// resolveSolver constructs the named backend, or the best available one when
// no name is given.
func resolveSolver(factory *smt.SolverFactory, backend string) (smt.Solver, error) {
	if backend == "" || backend == "auto" {
		return factory.CreateBestAvailable(), nil
	}
	//
	if solver := factory.Create(backend); solver != nil {
		return solver, nil
	}
	//
	return nil, fmt.Errorf("solver %q is not available (have: %s)",
		backend, strings.Join(factory.AvailableSolvers(), ", "))
}

// Determine the width of the enclosing terminal, defaulting to 80 columns
// when stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	//
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil {
			return width
		}
	}
	//
	return 80
}

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

	"github.com/cella-lang/go-cella/pkg/constraint"
	"github.com/cella-lang/go-cella/pkg/smt"
	"github.com/cella-lang/go-cella/pkg/verify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// smtlibCmd represents the smtlib command
var smtlibCmd = &cobra.Command{
	Use:   "smtlib [flags] source_file",
	Short: "Translate the proof obligations of a source file into SMT-LIB 2.",
	Long: `Translate the proof obligations of a source file into SMT-LIB 2.
	One script is emitted per obligation, asserting the obligation's
	negation, so that "unsat" from an external solver establishes the
	obligation.  Obligations outside the constraint language are skipped
	with a comment.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		// Parse program
		program := readSourceFile(args[0])
		// Go!
		printScripts(verify.CollectConstraints(program))
	},
}

// Emit one SMT-LIB script per obligation.
func printScripts(obligations []verify.Obligation) {
	xlator := smt.NewTranslator()
	//
	for _, obligation := range obligations {
		fmt.Printf("; %s at %s\n", obligation.Origin, obligation.Pos)
		//
		lowered, err := constraint.LowerExpr(obligation.Expr)
		if err != nil {
			fmt.Printf("; skipped: %s\n\n", err)
			continue
		}
		//
		negated := xlator.Translate(constraint.Negate(lowered))
		fmt.Println(smt.GenerateScript([]smt.Expr{negated}))
	}
}

func init() {
	rootCmd.AddCommand(smtlibCmd)
}

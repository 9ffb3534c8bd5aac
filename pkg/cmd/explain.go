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

	"github.com/cella-lang/go-cella/pkg/counterexample"
	"github.com/spf13/cobra"
)

// explainCmd represents the explain command
var explainCmd = &cobra.Command{
	Use:   "explain [flags] constraint",
	Short: "Synthesize a counter-example for a violated constraint.",
	Long: `Synthesize a counter-example for a violated constraint.
	The constraint is given in textual form, e.g. "x > 0" or
	"x >= 0 and x < 10", and a concrete witness falsifying it is
	derived by boundary analysis.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		ce, ok := counterexample.GenerateCounterexample(args[0], nil, true)
		if !ok {
			fmt.Printf("no counter-example available for \"%s\"\n", args[0])
			os.Exit(1)
		}
		//
		if GetFlag(cmd, "short") {
			fmt.Println(counterexample.FormatCounterexampleShort(ce))
		} else {
			fmt.Print(counterexample.FormatCounterexample(ce))
		}
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
	explainCmd.Flags().Bool("short", false, "render the witness on a single line")
}

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
	"github.com/cella-lang/go-cella/pkg/verify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] source_file",
	Short: "Verify the contracts in a given source file.",
	Long: `Verify the contracts in a given source file.
	Record-field constraints are checked for being tautologies, and each
	call site is checked against the preconditions of the called cell,
	using whatever facts are in scope on that control-flow path.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg checkConfig

		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		cfg.report = GetFlag(cmd, "report")
		cfg.strict = GetFlag(cmd, "strict")
		cfg.width = terminalWidth()
		// Parse configuration
		config := readConfig(GetString(cmd, "config"))
		applyLogLevel(cmd, config)
		// Parse program
		program := readSourceFile(args[0])
		// Go!
		verifier := verify.NewVerifierWithSolver(program, selectSolver(cmd, config))
		//
		if !checkProgram(verifier.VerifyProgram(), cfg) {
			os.Exit(1)
		}
	},
}

// check config encapsulates certain parameters to be used when checking
// contracts.
type checkConfig struct {
	// Specifies whether or not to report the full derivation of each
	// counter-example, rather than a one-line witness.
	report bool
	// Specifies whether or not unverifiable obligations fail the run, as
	// violated ones always do.
	strict bool
	// Width of the enclosing terminal, used to truncate long lines.
	width int
}

// Report every verification result, returning false when the run should fail.
func checkProgram(results []verify.Result, cfg checkConfig) bool {
	for _, r := range results {
		printResult(r, cfg)
	}
	//
	verified, violated, unverifiable := verify.Count(results)
	fmt.Printf("%d obligations: %d verified, %d violated, %d unverifiable\n",
		len(results), verified, violated, unverifiable)
	//
	if cfg.strict {
		return verify.Verified(results)
	}
	//
	return violated == 0
}

func printResult(r verify.Result, cfg checkConfig) {
	fmt.Println(clip(fmt.Sprintf("[%s] %s", r.Pos, r), cfg.width))
	//
	if r.Counter == nil {
		return
	}
	//
	if cfg.report {
		fmt.Print(counterexample.FormatCounterexample(r.Counter))
	} else {
		fmt.Printf("  %s\n", clip(counterexample.FormatCounterexampleShort(r.Counter), cfg.width-2))
	}
}

// Truncate a line to the available width.
func clip(line string, width int) string {
	if width <= 3 || len(line) <= width {
		return line
	}
	//
	return line[:width-3] + "..."
}

// Apply the configured log level, unless --verbose already forced debug.
func applyLogLevel(cmd *cobra.Command, config *Config) {
	if GetFlag(cmd, "verbose") || config.Log == "" {
		return
	}
	//
	if level, err := log.ParseLevel(config.Log); err == nil {
		log.SetLevel(level)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("report", false, "report the full derivation of each counter-example")
	checkCmd.Flags().Bool("strict", false, "treat unverifiable obligations as failures")
}

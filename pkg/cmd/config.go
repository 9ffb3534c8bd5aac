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
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level cella.yaml configuration.
type Config struct {
	// Solver names the solver backend to use: "builtin", "z3", "cvc5" or
	// "auto" (the default) to prefer whichever external solver is
	// installed.
	Solver string `yaml:"solver,omitempty"`

	// TimeoutMillis bounds each external solver invocation, in
	// milliseconds.  Zero selects the built-in default.  The built-in
	// procedure ignores it.
	TimeoutMillis uint `yaml:"timeout,omitempty"`

	// Log selects the logging level: "debug", "info", "warn" or "error".
	Log string `yaml:"log,omitempty"`
}

// SolverTimeout returns the configured per-invocation timeout.
func (p *Config) SolverTimeout() time.Duration {
	return time.Duration(p.TimeoutMillis) * time.Millisecond
}

// ReadConfigFile loads configuration from the given file.  A missing file is
// not an error: every setting simply takes its default.
func ReadConfigFile(filename string) (*Config, error) {
	var cfg Config
	//
	bytes, err := os.ReadFile(filename)
	//
	if os.IsNotExist(err) {
		return &cfg, nil
	} else if err != nil {
		return nil, err
	}
	//
	if err := yaml.Unmarshal(bytes, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return &cfg, nil
}

func (p *Config) validate() error {
	switch p.Solver {
	case "", "auto", "builtin", "z3", "cvc5":
		// ok
	default:
		return fmt.Errorf("unknown solver backend %q", p.Solver)
	}
	//
	switch p.Log {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unknown log level %q", p.Log)
	}
}

// readConfig loads the configuration named by the --config flag, exiting
// with a diagnostic on failure.
func readConfig(filename string) *Config {
	cfg, err := ReadConfigFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return cfg
}

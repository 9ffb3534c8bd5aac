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
package smt

import (
	"os/exec"
	"time"

	log "github.com/sirupsen/logrus"
)

// externalSolvers lists the process-backed solvers this factory knows how to
// drive, in order of preference.
var externalSolvers = []string{"z3", "cvc5"}

// SolverFactory constructs solvers, discovering optional external backends
// on the PATH.  The built-in procedure is always available.
type SolverFactory struct {
	timeout time.Duration
}

// NewSolverFactory constructs a factory using the default external-solver
// timeout.
func NewSolverFactory() *SolverFactory {
	return &SolverFactory{DefaultTimeout}
}

// NewSolverFactoryWithTimeout constructs a factory with a specific
// external-solver timeout.
func NewSolverFactoryWithTimeout(timeout time.Duration) *SolverFactory {
	return &SolverFactory{timeout}
}

// CreateBuiltin constructs the built-in interval solver.
func (p *SolverFactory) CreateBuiltin() Solver {
	return NewBuiltinSolver()
}

// AvailableSolvers reports the names of every solver this factory can
// construct right now.  The built-in solver is always listed first.
func (p *SolverFactory) AvailableSolvers() []string {
	available := []string{"builtin"}
	//
	for _, name := range externalSolvers {
		if _, err := exec.LookPath(name); err == nil {
			available = append(available, name)
		}
	}
	//
	return available
}

// Create constructs a solver by name, or nil if that solver is not
// available.
func (p *SolverFactory) Create(name string) Solver {
	if name == "builtin" {
		return NewBuiltinSolver()
	}
	//
	path, err := exec.LookPath(name)
	if err != nil {
		return nil
	}
	//
	return NewExternalSolver(name, path, p.timeout)
}

// CreateBestAvailable constructs the most capable solver currently
// available: an external process when one can be found on the PATH, and the
// built-in procedure otherwise.
func (p *SolverFactory) CreateBestAvailable() Solver {
	for _, name := range externalSolvers {
		if path, err := exec.LookPath(name); err == nil {
			log.Debugf("using external solver %s (%s)", name, path)
			//
			return NewExternalSolver(name, path, p.timeout)
		}
	}
	//
	log.Debug("no external solver found, using builtin")
	//
	return NewBuiltinSolver()
}

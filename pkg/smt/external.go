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
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultTimeout bounds how long an external solver process may run per
// query.
const DefaultTimeout = 5 * time.Second

// ExternalSolver bridges to a full SMT solver running as a separate process
// (z3 or cvc5).  Each query renders the current assertions as an SMT-LIB2
// script and feeds it to a fresh process, so the bridge itself is stateless
// between queries.  This backend is strictly best-effort: the engine never
// requires it, and any failure to run the process degrades to unknown.
type ExternalSolver struct {
	name    string
	path    string
	timeout time.Duration
	scopes  [][]Expr
}

// NewExternalSolver constructs a bridge to a solver binary at a given path.
func NewExternalSolver(name string, path string, timeout time.Duration) *ExternalSolver {
	return &ExternalSolver{name, path, timeout, make([][]Expr, 1)}
}

var _ Solver = (*ExternalSolver)(nil)

// Name implementation for Solver interface.
func (p *ExternalSolver) Name() string { return p.name }

// Assert implementation for Solver interface.
func (p *ExternalSolver) Assert(assertion Expr) {
	top := len(p.scopes) - 1
	p.scopes[top] = append(p.scopes[top], assertion)
}

// Push implementation for Solver interface.
func (p *ExternalSolver) Push() {
	p.scopes = append(p.scopes, nil)
}

// Pop implementation for Solver interface.
func (p *ExternalSolver) Pop() {
	if len(p.scopes) > 1 {
		p.scopes = p.scopes[:len(p.scopes)-1]
	}
}

// Reset implementation for Solver interface.
func (p *ExternalSolver) Reset() {
	p.scopes = make([][]Expr, 1)
}

// SupportsTheory implementation for Solver interface.  A full SMT solver
// handles every fragment the expression tree can state.
func (p *ExternalSolver) SupportsTheory(theory Theory) bool {
	return true
}

// CheckSat implementation for Solver interface.
func (p *ExternalSolver) CheckSat(assertions []Expr) Result {
	return p.run(assertions)
}

// CheckSatWithModel implementation for Solver interface.  Model extraction
// from external processes is not implemented; a sat answer comes back
// without a witness.
func (p *ExternalSolver) CheckSatWithModel(assertions []Expr) Result {
	return p.run(assertions)
}

func (p *ExternalSolver) run(assertions []Expr) Result {
	var combined []Expr
	//
	for _, scope := range p.scopes {
		combined = append(combined, scope...)
	}
	//
	combined = append(combined, assertions...)
	script := GenerateScript(combined)
	//
	log.Debugf("%s query:\n%s", p.name, script)
	//
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	//
	var args []string
	//
	switch p.name {
	case "z3":
		args = []string{"-in", "-smt2"}
	case "cvc5":
		args = []string{"--lang=smt2", "-"}
	}
	//
	var stdout, stderr bytes.Buffer
	//
	cmd := exec.CommandContext(ctx, p.path, args...)
	cmd.Stdin = strings.NewReader(script)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	//
	err := cmd.Run()
	//
	if ctx.Err() == context.DeadlineExceeded {
		return Result{Status: StatusTimeout}
	} else if err != nil {
		log.Debugf("%s failed: %v (%s)", p.name, err, stderr.String())
		//
		return Unknown("external solver failed")
	}
	// the verdict is the first line of output
	verdict, _, _ := strings.Cut(strings.TrimSpace(stdout.String()), "\n")
	//
	switch strings.TrimSpace(verdict) {
	case "sat":
		return Result{Status: StatusSat}
	case "unsat":
		return Unsat()
	case "timeout":
		return Result{Status: StatusTimeout}
	default:
		return Unknown("external solver answered " + verdict)
	}
}

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

// Solver is the minimal capability abstraction the verification driver
// depends upon.  Implementations are independent of each other: the built-in
// interval procedure and the external process bridge both satisfy it, and
// neither is privileged.
//
// Scope semantics: Assert adds an assertion to the current scope, Push opens
// a new scope and Pop discards the most recent one along with its
// assertions.  CheckSat considers the conjunction of every assertion on the
// scope stack together with the assertions passed explicitly.  Push and Pop
// are safe to call in any order (a Pop with no open scope is a no-op), and
// Reset returns the solver to its just-constructed state.
type Solver interface {
	// Name identifies this solver, e.g. for logging.
	Name() string
	// Assert adds an assertion to the current scope.
	Assert(assertion Expr)
	// CheckSat determines the satisfiability of the given assertions
	// conjoined with all currently-scoped assertions.
	CheckSat(assertions []Expr) Result
	// CheckSatWithModel behaves as CheckSat, but additionally produces a
	// witness model on sat.
	CheckSatWithModel(assertions []Expr) Result
	// Push opens a new assertion scope.
	Push()
	// Pop discards the most recent assertion scope.
	Pop()
	// Reset returns the solver to its just-constructed state.
	Reset()
	// SupportsTheory determines whether this solver can decide a given
	// theory.  Queries outside the supported theories yield unknown, never a
	// wrong answer.
	SupportsTheory(theory Theory) bool
}

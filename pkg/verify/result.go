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

package verify

import (
	"fmt"

	"github.com/cella-lang/go-cella/pkg/ast"
	"github.com/cella-lang/go-cella/pkg/counterexample"
)

// Status captures the outcome of checking a single proof obligation.
type Status int

const (
	// StatusVerified indicates the obligation was proven to hold.
	StatusVerified Status = iota
	// StatusViolated indicates the obligation was proven not to hold.
	StatusViolated
	// StatusUnverifiable indicates the obligation could be neither proven
	// nor refuted.  Unverifiable obligations are never silently promoted
	// to verified.
	StatusUnverifiable
)

func (s Status) String() string {
	switch s {
	case StatusVerified:
		return "verified"
	case StatusViolated:
		return "violated"
	case StatusUnverifiable:
		return "unverifiable"
	}
	//
	return "unknown"
}

// Result is the outcome of checking one proof obligation.
type Result struct {
	// Status of the obligation.
	Status Status
	// Origin names the declaration which gave rise to the obligation,
	// e.g. "record Point, field x" or "cell main, call divide".
	Origin string
	// Pos locates the obligation in the source.
	Pos ast.Position
	// Constraint holds the obligation's textual form.
	Constraint string
	// Detail explains the outcome, e.g. the reason an obligation could
	// not be decided.
	Detail string
	// Counter holds a concrete witness for violated obligations, when
	// one could be synthesized.
	Counter *counterexample.CounterExample
}

func (r Result) String() string {
	line := fmt.Sprintf("%s %s: %s", r.Status, r.Origin, r.Constraint)
	//
	if r.Detail != "" {
		line = fmt.Sprintf("%s (%s)", line, r.Detail)
	}
	//
	return line
}

// Verified reports whether every result in the given set is verified.
func Verified(results []Result) bool {
	for _, r := range results {
		if r.Status != StatusVerified {
			return false
		}
	}
	//
	return true
}

// Count tallies the results by status, returning the number of verified,
// violated and unverifiable obligations respectively.
func Count(results []Result) (uint, uint, uint) {
	var verified, violated, unverifiable uint
	//
	for _, r := range results {
		switch r.Status {
		case StatusVerified:
			verified++
		case StatusViolated:
			violated++
		case StatusUnverifiable:
			unverifiable++
		}
	}
	//
	return verified, violated, unverifiable
}

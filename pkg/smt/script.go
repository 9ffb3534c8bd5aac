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
	"slices"
	"strings"
)

// GenerateScript renders a list of assertions as a complete SMT-LIB2 script:
// a set-logic header, one declare-const per distinct free variable (sorted by
// name), one assert per top-level expression, and a trailing check-sat.  The
// output is suitable for feeding to any conforming solver process.
func GenerateScript(assertions []Expr) string {
	var builder strings.Builder
	//
	builder.WriteString("(set-logic ALL)\n")
	// collect free variables across all assertions
	vars := make(map[string]Sort)
	//
	for _, e := range assertions {
		for name, sort := range FreeVariables(e) {
			vars[name] = sort
		}
	}
	//
	names := make([]string, 0, len(vars))
	//
	for name := range vars {
		names = append(names, name)
	}
	//
	slices.Sort(names)
	//
	for _, name := range names {
		builder.WriteString("(declare-const ")
		builder.WriteString(name)
		builder.WriteString(" ")
		builder.WriteString(vars[name].String())
		builder.WriteString(")\n")
	}
	//
	for _, e := range assertions {
		builder.WriteString("(assert ")
		builder.WriteString(ToSmtLib2(e))
		builder.WriteString(")\n")
	}
	//
	builder.WriteString("(check-sat)\n")
	//
	return builder.String()
}

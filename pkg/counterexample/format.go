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

package counterexample

import (
	"fmt"
	"strings"
)

// FormatCounterexample renders a counter-example as a multi-line report
// suitable for terminal output.
func FormatCounterexample(ce *CounterExample) string {
	var builder strings.Builder
	//
	fmt.Fprintf(&builder, "counter-example for \"%s\"\n", ce.Constraint)
	//
	for _, binding := range ce.Bindings {
		fmt.Fprintf(&builder, "  %s = %s (%s)\n", binding.Name, binding.Value.String(), binding.Role)
	}
	//
	if ce.Explanation != "" {
		fmt.Fprintf(&builder, "  %s\n", ce.Explanation)
	}
	//
	for _, step := range ce.Trace {
		fmt.Fprintf(&builder, "    %s => %s\n", step.Expression, step.Outcome)
	}
	//
	return builder.String()
}

// FormatCounterexampleShort renders a counter-example as a single line, for
// inline diagnostics.
func FormatCounterexampleShort(ce *CounterExample) string {
	parts := make([]string, 0, len(ce.Bindings))
	//
	for _, binding := range ce.Bindings {
		if binding.Role == RoleBound {
			continue
		}
		//
		parts = append(parts, fmt.Sprintf("%s = %s", binding.Name, binding.Value.String()))
	}
	//
	return fmt.Sprintf("%s violates \"%s\"", strings.Join(parts, ", "), ce.Constraint)
}

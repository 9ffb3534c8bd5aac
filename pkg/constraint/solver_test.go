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
package constraint

import (
	"testing"
)

// Satisfiability

func Test_Solver_01(t *testing.T) {
	checkSat(t, Sat, "x > 0")
}

func Test_Solver_02(t *testing.T) {
	checkSat(t, Unsat, "x > 0", "x < 0")
}

func Test_Solver_03(t *testing.T) {
	checkSat(t, Unsat, "x > 0", "x == 0")
}

func Test_Solver_04(t *testing.T) {
	checkSat(t, Sat, "x >= 0", "x <= 0")
}

func Test_Solver_05(t *testing.T) {
	// the single remaining value is excluded
	checkSat(t, Unsat, "x >= 0", "x <= 0", "x != 0")
}

func Test_Solver_06(t *testing.T) {
	checkSat(t, Unsat, "x > 5", "x < 6")
}

func Test_Solver_07(t *testing.T) {
	checkSat(t, Sat, "x > 5", "x < 7")
}

func Test_Solver_08(t *testing.T) {
	checkSat(t, Unsat, "false")
}

func Test_Solver_09(t *testing.T) {
	checkSat(t, Sat, "enabled", "x > 0")
}

func Test_Solver_10(t *testing.T) {
	checkSat(t, Unsat, "enabled", "not(enabled)")
}

func Test_Solver_11(t *testing.T) {
	// every value in [1, 3] is excluded
	checkSat(t, Unsat, "x >= 1", "x <= 3", "x != 1", "x != 2", "x != 3")
}

func Test_Solver_12(t *testing.T) {
	checkSat(t, Sat, "x >= 1", "x <= 3", "x != 1", "x != 3")
}

func Test_Solver_13(t *testing.T) {
	checkSat(t, Unsat, "a < b", "b < a")
}

func Test_Solver_14(t *testing.T) {
	checkSat(t, Unsat, "a < b", "a == b")
}

func Test_Solver_15(t *testing.T) {
	checkSat(t, Sat, "a <= b", "b <= a")
}

func Test_Solver_16(t *testing.T) {
	checkSat(t, Unsat, "(n + 1) > 0", "n < -1")
}

func Test_Solver_17(t *testing.T) {
	checkSat(t, Unsat, "(n * 2) >= 10", "n < 5")
}

func Test_Solver_18(t *testing.T) {
	checkSat(t, Sat, "scale > 0.5", "scale < 1.5")
}

func Test_Solver_19(t *testing.T) {
	checkSat(t, Unsat, "scale > 1.5", "scale < 0.5")
}

// Conservatism: forms beyond the direct procedure yield Unknown, never a
// guessed answer.

func Test_Solver_20(t *testing.T) {
	checkSat(t, Unknown, "x > 0 or y > 0")
}

func Test_Solver_21(t *testing.T) {
	// interval narrowing on a paired variable is beyond this procedure
	checkSat(t, Unknown, "a < b", "a > 0", "b < 2")
}

func Test_Solver_22(t *testing.T) {
	// a cycle of strict orderings contradicts itself
	checkSat(t, Unsat, "a < b", "b < c", "c < a")
}

func Test_Solver_23(t *testing.T) {
	checkSat(t, Unsat, "a <= b", "b <= c", "c < a")
}

func Test_Solver_24(t *testing.T) {
	// a consistent chain is closed for contradictions only, never accepted
	checkSat(t, Unknown, "a < b", "b < c")
}

// Implication

func Test_Implies_01(t *testing.T) {
	checkImplication(t, Unsat, "b > 0", "b != 0")
}

func Test_Implies_02(t *testing.T) {
	checkImplication(t, Unsat, "x > 5", "x > 0")
}

func Test_Implies_03(t *testing.T) {
	// idx >= 0 does not establish idx < 10
	checkImplication(t, Sat, "idx >= 0", "idx < 10")
}

func Test_Implies_04(t *testing.T) {
	checkImplication(t, Unsat, "x == 3", "x < 10")
}

func Test_Implies_05(t *testing.T) {
	checkImplication(t, Sat, "x != 0", "x > 0")
}

func Test_Implies_06(t *testing.T) {
	// orderings compose transitively
	checkImplication(t, Unsat, "a < b and b < c", "a < c")
}

// Reset

func Test_Solver_30(t *testing.T) {
	solver := NewToySolver()
	solver.Assert(parseConstraint(t, "x > 0"))
	solver.Assert(parseConstraint(t, "x < 0"))
	//
	if solver.CheckSat() != Unsat {
		t.Error("contradictory assertions must be unsat")
	}
	//
	solver.Reset()
	solver.Assert(parseConstraint(t, "x > 0"))
	//
	if solver.CheckSat() != Sat {
		t.Error("reset must discard prior assertions")
	}
}

// Helpers

func checkSat(t *testing.T, expected SatResult, texts ...string) {
	t.Helper()
	//
	solver := NewToySolver()
	//
	for _, text := range texts {
		solver.Assert(parseConstraint(t, text))
	}
	//
	if actual := solver.CheckSat(); actual != expected {
		t.Errorf("%v concluded %s, expected %s", texts, actual, expected)
	}
}

func checkImplication(t *testing.T, expected SatResult, premise string, conclusion string) {
	t.Helper()
	//
	solver := NewToySolver()
	actual := solver.CheckImplication(parseConstraint(t, premise), parseConstraint(t, conclusion))
	//
	if actual != expected {
		t.Errorf("%s => %s concluded %s, expected %s", premise, conclusion, actual, expected)
	}
}

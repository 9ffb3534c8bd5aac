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
	"strings"
	"testing"

	"github.com/cella-lang/go-cella/pkg/ast"
)

// Record fields

func Test_Verify_01(t *testing.T) {
	// "true" is the canonical tautology
	results := verifySource(t, `
		record A {
			x: int where true
		}`)
	//
	checkStatuses(t, results, StatusVerified)
}

func Test_Verify_02(t *testing.T) {
	results := verifySource(t, `
		record A {
			x: int where false
		}`)
	//
	checkStatuses(t, results, StatusViolated)
}

func Test_Verify_03(t *testing.T) {
	// x >= 0 admits a counter-assignment, hence is never verified
	results := verifySource(t, `
		record A {
			x: int where x >= 0
		}`)
	//
	checkStatuses(t, results, StatusUnverifiable)
}

func Test_Verify_04(t *testing.T) {
	// a genuine tautology over a free variable
	results := verifySource(t, `
		record A {
			x: int where x >= 0 or x < 0
		}`)
	//
	checkStatuses(t, results, StatusVerified)
}

func Test_Verify_05(t *testing.T) {
	results := verifySource(t, `
		record A {
			x: int where x > 0 and x < 0
		}`)
	//
	if results[0].Status == StatusVerified {
		t.Error("an unsatisfiable constraint is not a tautology")
	}
}

// Call sites with literal arguments

func Test_Verify_10(t *testing.T) {
	results := verifySource(t, `
		cell divide(a: int, b: int) where b != 0 {
		}
		cell main() {
			divide(10, 5);
		}`)
	//
	checkStatuses(t, results, StatusVerified)
}

func Test_Verify_11(t *testing.T) {
	results := verifySource(t, `
		cell divide(a: int, b: int) where b != 0 {
		}
		cell main() {
			divide(10, 0);
		}`)
	//
	checkStatuses(t, results, StatusViolated)
	// the violation comes with a concrete witness
	if results[0].Counter == nil {
		t.Error("expected a counter-example for the violated precondition")
	}
}

func Test_Verify_12(t *testing.T) {
	// conjoined preconditions split into separate obligations
	results := verifySource(t, `
		cell index(i: int) where i >= 0 and i < 10 {
		}
		cell main() {
			index(15);
		}`)
	//
	checkStatuses(t, results, StatusVerified, StatusViolated)
}

// Call sites with variable arguments

func Test_Verify_20(t *testing.T) {
	// nothing is known about x, so nothing is proven
	results := verifySource(t, `
		cell positive(n: int) where n > 0 {
		}
		cell main(x: int) {
			positive(x);
		}`)
	//
	checkStatuses(t, results, StatusUnverifiable)
}

func Test_Verify_21(t *testing.T) {
	// the caller's own precondition establishes the callee's
	results := verifySource(t, `
		cell positive(n: int) where n > 0 {
		}
		cell main(x: int) where x > 5 {
			positive(x);
		}`)
	//
	checkStatuses(t, results, StatusVerified)
}

func Test_Verify_22(t *testing.T) {
	results := verifySource(t, `
		cell positive(n: int) where n > 0 {
		}
		cell main(x: int) where x < 0 {
			positive(x);
		}`)
	//
	checkStatuses(t, results, StatusViolated)
}

func Test_Verify_23(t *testing.T) {
	// caller facts compose across the ordering chain
	results := verifySource(t, `
		cell ordered(p: int, q: int) where p < q {
		}
		cell main(a: int, b: int, c: int) where a < b, b < c {
			ordered(a, c);
		}`)
	//
	checkStatuses(t, results, StatusVerified)
}

// Path sensitivity

func Test_Verify_30(t *testing.T) {
	results := verifySource(t, `
		cell positive(n: int) where n > 0 {
		}
		cell nonpositive(n: int) where n <= 0 {
		}
		cell main(x: int) {
			if x > 0 {
				positive(x);
			} else {
				nonpositive(x);
			}
		}`)
	//
	checkStatuses(t, results, StatusVerified, StatusVerified)
}

func Test_Verify_31(t *testing.T) {
	// the branches swapped: neither call can be verified, and the
	// then-arm is outright contradicted
	results := verifySource(t, `
		cell positive(n: int) where n > 0 {
		}
		cell main(x: int) {
			if x <= 0 {
				positive(x);
			}
		}`)
	//
	checkStatuses(t, results, StatusViolated)
}

func Test_Verify_32(t *testing.T) {
	// facts accumulate through nested branches
	results := verifySource(t, `
		cell bounded(n: int) where n > 0 and n < 100 {
		}
		cell main(x: int) {
			if x > 0 {
				if x < 50 {
					bounded(x);
				}
			}
		}`)
	//
	checkStatuses(t, results, StatusVerified, StatusVerified)
}

func Test_Verify_33(t *testing.T) {
	// a fact from outside the branch still applies inside it
	results := verifySource(t, `
		cell nonzero(n: int) where n != 0 {
		}
		cell main(x: int) where x > 5 {
			if x < 100 {
				nonzero(x);
			}
		}`)
	//
	checkStatuses(t, results, StatusVerified)
}

// Effect budgets

func Test_Verify_40(t *testing.T) {
	results := verifySource(t, `
		cell fetch(url: string) uses io <= 3 {
			io("GET");
			io("GET");
		}`)
	//
	checkStatuses(t, results, StatusVerified)
}

func Test_Verify_41(t *testing.T) {
	results := verifySource(t, `
		cell fetch(url: string) uses io <= 1 {
			io("GET");
			io("GET");
		}`)
	//
	checkStatuses(t, results, StatusViolated)
}

func Test_Verify_42(t *testing.T) {
	// calls to cells which declare an effect spend from the budget
	results := verifySource(t, `
		cell fetch(url: string) uses io <= 1 {
			io("GET");
		}
		cell main() uses io <= 1 {
			fetch("a");
			fetch("b");
		}`)
	//
	checkStatuses(t, results, StatusVerified, StatusViolated)
}

func Test_Verify_43(t *testing.T) {
	// branch arms are costed pessimistically, not additively
	results := verifySource(t, `
		cell main(x: int) uses io <= 1 {
			if x > 0 {
				io("a");
			} else {
				io("b");
			}
		}`)
	//
	checkStatuses(t, results, StatusVerified)
}

// Obligation collection

func Test_Collect_01(t *testing.T) {
	program := parseSource(t, `
		record A {
			x: int where x >= 0
		}
		cell f(n: int) where n > 0 {
		}
		cell main() uses io <= 1 {
			f(1);
		}`)
	//
	obligations := CollectConstraints(program)
	//
	if len(obligations) != 3 {
		t.Fatalf("expected 3 obligations, got %d", len(obligations))
	}
	//
	checkOrigin(t, obligations[0], "record A, field x")
	checkOrigin(t, obligations[1], "cell main, effect io")
	checkOrigin(t, obligations[2], "cell main, call f")
}

// Determinism: identical programs yield identical result orderings.

func Test_Verify_50(t *testing.T) {
	source := `
		record A {
			x: int where x >= 0
			y: int where true
		}
		cell f(n: int) where n > 0 {
		}
		cell main() {
			f(0);
			f(1);
		}`
	//
	first := verifySource(t, source)
	second := verifySource(t, source)
	//
	if len(first) != len(second) {
		t.Fatal("result count must be stable")
	}
	//
	for i := range first {
		if first[i].String() != second[i].String() {
			t.Errorf("result %d differs between runs", i)
		}
	}
}

// Helpers

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	//
	program, err := ast.ParseProgram(source)
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	//
	return program
}

func verifySource(t *testing.T, source string) []Result {
	t.Helper()
	//
	return NewVerifier(parseSource(t, source)).VerifyProgram()
}

func checkStatuses(t *testing.T, results []Result, expected ...Status) {
	t.Helper()
	//
	if len(results) != len(expected) {
		t.Fatalf("expected %d results, got %v", len(expected), results)
	}
	//
	for i := range results {
		if results[i].Status != expected[i] {
			t.Errorf("obligation %d (%s) concluded %s, expected %s",
				i, results[i].Constraint, results[i].Status, expected[i])
		}
	}
}

func checkOrigin(t *testing.T, obligation Obligation, expected string) {
	t.Helper()
	//
	if obligation.Origin != expected {
		t.Errorf("got origin %q, expected %q", obligation.Origin, expected)
	}
}

// Ensure diagnostics render the essentials.

func Test_Result_01(t *testing.T) {
	results := verifySource(t, `
		cell f(n: int) where n > 0 {
		}
		cell main() {
			f(0);
		}`)
	//
	rendered := results[0].String()
	//
	if !strings.Contains(rendered, "violated") || !strings.Contains(rendered, "cell main, call f") {
		t.Errorf("unhelpful diagnostic: %s", rendered)
	}
}

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
package refine

import (
	"testing"

	"github.com/cella-lang/go-cella/pkg/ast"
	"github.com/cella-lang/go-cella/pkg/constraint"
)

func Test_Context_01(t *testing.T) {
	// nothing can be proven from an empty context
	ctx := NewContext()
	//
	if ctx.Implies(fact(t, "x > 0")) != constraint.Unknown {
		t.Error("an empty context must not prove anything")
	}
}

func Test_Context_02(t *testing.T) {
	ctx := NewContext()
	ctx.AddFact("b", fact(t, "b > 0"))
	//
	checkImplies(t, ctx, "b != 0", constraint.Unsat)
}

func Test_Context_03(t *testing.T) {
	ctx := NewContext()
	ctx.AddFact("idx", fact(t, "idx >= 0"))
	//
	checkImplies(t, ctx, "idx < 10", constraint.Sat)
}

func Test_Context_04(t *testing.T) {
	ctx := NewContext()
	ctx.AddFact("x", fact(t, "x > 5"))
	ctx.AddFact("x", fact(t, "x < 8"))
	//
	checkImplies(t, ctx, "x != 10", constraint.Unsat)
}

func Test_Context_05(t *testing.T) {
	// facts about unrelated variables prove nothing about x
	ctx := NewContext()
	ctx.AddFact("y", fact(t, "y > 0"))
	//
	if ctx.Implies(fact(t, "x > 0")) == constraint.Unsat {
		t.Error("facts about y must not establish x > 0")
	}
}

func Test_Context_06(t *testing.T) {
	// cloning isolates the branches from one another
	ctx := NewContext()
	ctx.AddFact("x", fact(t, "x != 0"))
	//
	thenCtx := ctx.Clone()
	thenCtx.AddFact("x", fact(t, "x > 0"))
	//
	elseCtx := ctx.Clone()
	elseCtx.AddFact("x", fact(t, "x <= 0"))
	//
	checkImplies(t, thenCtx, "x > 0", constraint.Unsat)
	checkImplies(t, elseCtx, "x < 0", constraint.Unsat)
	// the parent context has learned nothing
	if ctx.Implies(fact(t, "x > 0")) == constraint.Unsat {
		t.Error("facts added to a clone must not leak into the parent")
	}
}

func Test_Context_07(t *testing.T) {
	ctx := NewContext()
	ctx.AddFact("x", fact(t, "x == 3"))
	//
	checkImplies(t, ctx, "x < 10", constraint.Unsat)
	checkImplies(t, ctx, "x > 10", constraint.Sat)
}

func Test_Context_08(t *testing.T) {
	// facts are reported in insertion order
	ctx := NewContext()
	ctx.AddFact("a", fact(t, "a > 0"))
	ctx.AddFact("b", fact(t, "b > a"))
	ctx.AddFact("a", fact(t, "a < 10"))
	//
	var rendered []string
	for _, f := range ctx.Facts() {
		rendered = append(rendered, f.String())
	}
	//
	expected := []string{"a > 0", "a < 10", "b > a"}
	//
	if len(rendered) != len(expected) {
		t.Fatalf("got facts %v, expected %v", rendered, expected)
	}
	//
	for i := range expected {
		if rendered[i] != expected[i] {
			t.Errorf("got facts %v, expected %v", rendered, expected)
		}
	}
}

func Test_Context_09(t *testing.T) {
	// ordering facts compose transitively
	ctx := NewContext()
	ctx.AddFact("a", fact(t, "a < b"))
	ctx.AddFact("b", fact(t, "b < c"))
	//
	checkImplies(t, ctx, "a < c", constraint.Unsat)
}

func fact(t *testing.T, text string) constraint.Constraint {
	t.Helper()
	//
	expr, err := ast.ParseExpr(text)
	if err != nil {
		t.Fatalf("parsing %q: %v", text, err)
	}
	//
	c, err := constraint.LowerExpr(expr)
	if err != nil {
		t.Fatalf("lowering %q: %v", text, err)
	}
	//
	return c
}

func checkImplies(t *testing.T, ctx *Context, candidate string, expected constraint.SatResult) {
	t.Helper()
	//
	if actual := ctx.Implies(fact(t, candidate)); actual != expected {
		t.Errorf("context %v implies %s concluded %s, expected %s", ctx.Facts(), candidate, actual, expected)
	}
}

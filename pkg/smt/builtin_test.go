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
	"testing"
)

func intVar(name string) Var {
	return Var{name, IntSort{}}
}

func realVar(name string) Var {
	return Var{name, RealSort{}}
}

func boolVar(name string) Var {
	return Var{name, BoolSort{}}
}

func cmp(left Expr, op RelOp, right Expr) Expr {
	return CmpExpr{op, left, right}
}

// Integer reasoning

func Test_Builtin_01(t *testing.T) {
	checkBuiltin(t, StatusSat, cmp(intVar("x"), Gt, NewIntLit(0)))
}

func Test_Builtin_02(t *testing.T) {
	checkBuiltin(t, StatusUnsat,
		cmp(intVar("x"), Gt, NewIntLit(0)),
		cmp(intVar("x"), Lt, NewIntLit(0)))
}

func Test_Builtin_03(t *testing.T) {
	// no integer lies strictly between 5 and 6
	checkBuiltin(t, StatusUnsat,
		cmp(intVar("x"), Gt, NewIntLit(5)),
		cmp(intVar("x"), Lt, NewIntLit(6)))
}

func Test_Builtin_04(t *testing.T) {
	checkBuiltin(t, StatusUnsat,
		cmp(intVar("x"), Ge, NewIntLit(5)),
		cmp(intVar("x"), Le, NewIntLit(5)),
		cmp(intVar("x"), Ne, NewIntLit(5)))
}

func Test_Builtin_05(t *testing.T) {
	checkBuiltin(t, StatusSat,
		cmp(intVar("x"), Ge, NewIntLit(5)),
		cmp(intVar("x"), Le, NewIntLit(6)),
		cmp(intVar("x"), Ne, NewIntLit(5)))
}

func Test_Builtin_06(t *testing.T) {
	// literal on the left is normalised
	checkBuiltin(t, StatusUnsat,
		cmp(NewIntLit(0), Lt, intVar("x")),
		cmp(intVar("x"), Le, NewIntLit(0)))
}

func Test_Builtin_07(t *testing.T) {
	// (x + 1) > 0 together with x < -1
	checkBuiltin(t, StatusUnsat,
		cmp(ArithExpr{Add, []Expr{intVar("x"), NewIntLit(1)}}, Gt, NewIntLit(0)),
		cmp(intVar("x"), Lt, NewIntLit(-1)))
}

func Test_Builtin_08(t *testing.T) {
	// x * 2 = 5 has no integer solution
	checkBuiltin(t, StatusUnsat,
		cmp(ArithExpr{Mul, []Expr{intVar("x"), NewIntLit(2)}}, Eq, NewIntLit(5)))
}

// Connectives

func Test_Builtin_10(t *testing.T) {
	checkBuiltin(t, StatusSat, OrExpr{[]Expr{
		cmp(intVar("x"), Gt, NewIntLit(0)),
		cmp(intVar("x"), Lt, NewIntLit(0)),
	}})
}

func Test_Builtin_11(t *testing.T) {
	// both disjuncts contradict the surrounding assertion
	checkBuiltin(t, StatusUnsat,
		cmp(intVar("x"), Eq, NewIntLit(0)),
		OrExpr{[]Expr{
			cmp(intVar("x"), Gt, NewIntLit(0)),
			cmp(intVar("x"), Lt, NewIntLit(0)),
		}})
}

func Test_Builtin_12(t *testing.T) {
	checkBuiltin(t, StatusUnsat, AndExpr{[]Expr{
		BoolLit{true},
		BoolLit{false},
	}})
}

func Test_Builtin_13(t *testing.T) {
	// p => q together with p and not q
	checkBuiltin(t, StatusUnsat,
		ImpliesExpr{boolVar("p"), boolVar("q")},
		boolVar("p"),
		NotExpr{boolVar("q")})
}

func Test_Builtin_14(t *testing.T) {
	checkBuiltin(t, StatusUnsat,
		IffExpr{boolVar("p"), boolVar("q")},
		boolVar("p"),
		NotExpr{boolVar("q")})
}

// Real reasoning

func Test_Builtin_15(t *testing.T) {
	// reals are dense, so 0.5 < s < 1.5 is satisfiable
	checkBuiltin(t, StatusSat,
		cmp(realVar("s"), Gt, RealLit{0.5}),
		cmp(realVar("s"), Lt, RealLit{1.5}))
}

func Test_Builtin_16(t *testing.T) {
	checkBuiltin(t, StatusUnsat,
		cmp(realVar("s"), Gt, RealLit{1.5}),
		cmp(realVar("s"), Lt, RealLit{0.5}))
}

// Undecidable forms yield unknown, never a guess.

func Test_Builtin_17(t *testing.T) {
	result := NewBuiltinSolver().CheckSat([]Expr{
		QuantExpr{false, []Var{intVar("x")}, cmp(intVar("x"), Ge, NewIntLit(0))},
	})
	//
	if result.Status != StatusUnknown {
		t.Errorf("quantified formulae are undecidable here, got %s", result.Status)
	}
}

func Test_Builtin_18(t *testing.T) {
	result := NewBuiltinSolver().CheckSat([]Expr{
		cmp(BitVecExpr{BvAnd, []Expr{intVar("x"), NewIntLit(3)}}, Eq, NewIntLit(0)),
	})
	//
	if result.Status != StatusUnknown {
		t.Errorf("bit-vector formulae are undecidable here, got %s", result.Status)
	}
}

// Scopes

func Test_Builtin_20(t *testing.T) {
	solver := NewBuiltinSolver()
	solver.Assert(cmp(intVar("x"), Gt, NewIntLit(0)))
	//
	solver.Push()
	solver.Assert(cmp(intVar("x"), Lt, NewIntLit(0)))
	//
	if result := solver.CheckSat(nil); result.Status != StatusUnsat {
		t.Errorf("expected unsat inside scope, got %s", result.Status)
	}
	//
	solver.Pop()
	//
	if result := solver.CheckSat(nil); result.Status != StatusSat {
		t.Errorf("expected sat after pop, got %s", result.Status)
	}
}

func Test_Builtin_21(t *testing.T) {
	solver := NewBuiltinSolver()
	solver.Assert(BoolLit{false})
	solver.Reset()
	//
	if result := solver.CheckSat(nil); result.Status != StatusSat {
		t.Errorf("reset must discard assertions, got %s", result.Status)
	}
}

func Test_Builtin_22(t *testing.T) {
	// popping the base scope is a no-op
	solver := NewBuiltinSolver()
	solver.Pop()
	solver.Pop()
	solver.Assert(cmp(intVar("x"), Eq, NewIntLit(1)))
	//
	if result := solver.CheckSat(nil); result.Status != StatusSat {
		t.Errorf("expected sat, got %s", result.Status)
	}
}

// Variable orderings

func Test_Builtin_23(t *testing.T) {
	// a cycle of strict orderings contradicts itself
	checkBuiltin(t, StatusUnsat,
		cmp(intVar("a"), Lt, intVar("b")),
		cmp(intVar("b"), Lt, intVar("c")),
		cmp(intVar("c"), Lt, intVar("a")))
}

func Test_Builtin_24(t *testing.T) {
	checkBuiltin(t, StatusUnsat,
		cmp(intVar("a"), Le, intVar("b")),
		cmp(intVar("b"), Le, intVar("c")),
		cmp(intVar("a"), Gt, intVar("c")))
}

func Test_Builtin_25(t *testing.T) {
	// a consistent chain is closed for contradictions only, never accepted
	checkBuiltin(t, StatusUnknown,
		cmp(intVar("a"), Lt, intVar("b")),
		cmp(intVar("b"), Lt, intVar("c")))
}

// Models

func Test_Builtin_30(t *testing.T) {
	assertions := []Expr{
		cmp(intVar("x"), Gt, NewIntLit(3)),
		cmp(intVar("x"), Ne, NewIntLit(4)),
	}
	//
	result := NewBuiltinSolver().CheckSatWithModel(assertions)
	//
	if result.Status != StatusSat {
		t.Fatalf("expected sat, got %s", result.Status)
	}
	//
	witness, ok := result.Model["x"].(IntValue)
	if !ok {
		t.Fatal("expected an integer witness for x")
	}
	//
	v := witness.Value.Int64()
	if v <= 3 || v == 4 {
		t.Errorf("witness %d does not satisfy the assertions", v)
	}
}

func Test_Builtin_31(t *testing.T) {
	result := NewBuiltinSolver().CheckSatWithModel([]Expr{boolVar("p"), NotExpr{boolVar("q")}})
	//
	if result.Status != StatusSat {
		t.Fatalf("expected sat, got %s", result.Status)
	}
	//
	p, pok := result.Model["p"].(BoolValue)
	q, qok := result.Model["q"].(BoolValue)
	//
	if !pok || !qok || !p.Value || q.Value {
		t.Errorf("expected p = true and q = false, got %v", result.Model)
	}
}

// Theories

func Test_Builtin_40(t *testing.T) {
	solver := NewBuiltinSolver()
	//
	if !solver.SupportsTheory(QF_LIA) || !solver.SupportsTheory(QF_LRA) {
		t.Error("linear arithmetic must be supported")
	}
	//
	if solver.SupportsTheory(QF_BV) || solver.SupportsTheory(LIA) {
		t.Error("bit-vectors and quantified arithmetic are unsupported")
	}
}

func checkBuiltin(t *testing.T, expected Status, assertions ...Expr) {
	t.Helper()
	//
	result := NewBuiltinSolver().CheckSat(assertions)
	//
	if result.Status != expected {
		t.Errorf("concluded %s (%s), expected %s", result.Status, result.Reason, expected)
	}
}

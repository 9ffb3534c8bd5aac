package smt

import (
	"strings"
	"testing"
)

func Test_Script_01(t *testing.T) {
	script := GenerateScript([]Expr{
		CmpExpr{Gt, Var{"x", IntSort{}}, NewIntLit(0)},
	})
	//
	checkScript(t, script,
		"(set-logic ALL)",
		"(declare-const x Int)",
		"(assert (> x 0))",
		"(check-sat)")
}

func Test_Script_02(t *testing.T) {
	// declarations are sorted and deduplicated
	script := GenerateScript([]Expr{
		CmpExpr{Lt, Var{"y", IntSort{}}, Var{"x", IntSort{}}},
		CmpExpr{Ge, Var{"x", IntSort{}}, NewIntLit(1)},
	})
	//
	checkScript(t, script,
		"(set-logic ALL)",
		"(declare-const x Int)",
		"(declare-const y Int)",
		"(assert (< y x))",
		"(assert (>= x 1))",
		"(check-sat)")
}

func Test_Script_03(t *testing.T) {
	script := GenerateScript([]Expr{
		AndExpr{[]Expr{
			Var{"p", BoolSort{}},
			CmpExpr{Eq, Var{"s", RealSort{}}, RealLit{1}},
		}},
	})
	//
	checkScript(t, script,
		"(set-logic ALL)",
		"(declare-const p Bool)",
		"(declare-const s Real)",
		"(assert (and p (= s 1.0)))",
		"(check-sat)")
}

func Test_Script_04(t *testing.T) {
	// negative constants take the unary-minus form
	script := GenerateScript([]Expr{
		CmpExpr{Gt, Var{"x", IntSort{}}, NewIntLit(-5)},
	})
	//
	if !strings.Contains(script, "(assert (> x (- 5)))") {
		t.Errorf("unexpected script:\n%s", script)
	}
}

func Test_Script_05(t *testing.T) {
	// quantified variables are bound, not declared
	script := GenerateScript([]Expr{
		QuantExpr{false, []Var{{"x", IntSort{}}},
			CmpExpr{Ge, Var{"x", IntSort{}}, Var{"n", IntSort{}}}},
	})
	//
	checkScript(t, script,
		"(set-logic ALL)",
		"(declare-const n Int)",
		"(assert (forall ((x Int)) (>= x n)))",
		"(check-sat)")
}

func checkScript(t *testing.T, script string, expected ...string) {
	t.Helper()
	//
	lines := strings.Split(strings.TrimSuffix(script, "\n"), "\n")
	//
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got:\n%s", len(expected), script)
	}
	//
	for i := range lines {
		if lines[i] != expected[i] {
			t.Errorf("line %d: got %q, expected %q", i+1, lines[i], expected[i])
		}
	}
}

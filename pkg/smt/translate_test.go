package smt

import (
	"testing"

	"github.com/cella-lang/go-cella/pkg/constraint"
)

func Test_Translate_01(t *testing.T) {
	checkTranslation(t, constraint.IntComparison{Var: "x", Op: constraint.CmpGt, Value: 0}, "(> x 0)")
}

func Test_Translate_02(t *testing.T) {
	checkTranslation(t, constraint.IntComparison{Var: "x", Op: constraint.CmpNotEq, Value: 0}, "(not (= x 0))")
}

func Test_Translate_03(t *testing.T) {
	checkTranslation(t, constraint.VarComparison{Left: "a", Op: constraint.CmpLtEq, Right: "b"}, "(<= a b)")
}

func Test_Translate_04(t *testing.T) {
	c := constraint.And{Operands: []constraint.Constraint{
		constraint.BoolVar{Name: "p"},
		constraint.Not{Operand: constraint.BoolVar{Name: "q"}},
	}}
	//
	checkTranslation(t, c, "(and p (not q))")
}

func Test_Translate_05(t *testing.T) {
	c := constraint.Arithmetic{
		Var: "n", ArithOp: constraint.OpAdd, ArithConst: 1,
		CmpOp: constraint.CmpGt, CmpValue: 0,
	}
	//
	checkTranslation(t, c, "(> (+ n 1) 0)")
}

func Test_Translate_06(t *testing.T) {
	c := constraint.FloatComparison{Var: "s", Op: constraint.CmpLt, Value: 1.5}
	//
	checkTranslation(t, c, "(< s 1.5)")
}

func Test_Translate_07(t *testing.T) {
	c := constraint.EffectBudget{Effect: "io", MaxCalls: 3, ActualCalls: 5}
	//
	checkTranslation(t, c, "(<= 5 3)")
}

// Translation preserves satisfiability through the built-in solver.

func Test_Translate_10(t *testing.T) {
	translated := NewTranslator().TranslateAll([]constraint.Constraint{
		constraint.IntComparison{Var: "x", Op: constraint.CmpGt, Value: 5},
		constraint.IntComparison{Var: "x", Op: constraint.CmpLt, Value: 6},
	})
	//
	if result := NewBuiltinSolver().CheckSat(translated); result.Status != StatusUnsat {
		t.Errorf("expected unsat, got %s", result.Status)
	}
}

func checkTranslation(t *testing.T, c constraint.Constraint, expected string) {
	t.Helper()
	//
	actual := ToSmtLib2(NewTranslator().Translate(c))
	//
	if actual != expected {
		t.Errorf("%s translated to %s, expected %s", c, actual, expected)
	}
}

package cmd

import (
	"testing"

	"github.com/cella-lang/go-cella/pkg/smt"
)

func Test_Solver_01(t *testing.T) {
	solver, err := resolveSolver(smt.NewSolverFactory(), "builtin")
	//
	if err != nil || solver == nil {
		t.Fatalf("the builtin solver is always available, got %v", err)
	}
}

func Test_Solver_02(t *testing.T) {
	// an unavailable backend is reported, never handed on as nil
	solver, err := resolveSolver(smt.NewSolverFactory(), "nosuch")
	//
	if err == nil || solver != nil {
		t.Error("expected an error for an unavailable solver")
	}
}

func Test_Solver_03(t *testing.T) {
	solver, err := resolveSolver(smt.NewSolverFactory(), "auto")
	//
	if err != nil || solver == nil {
		t.Fatalf("automatic selection must always produce a solver, got %v", err)
	}
}

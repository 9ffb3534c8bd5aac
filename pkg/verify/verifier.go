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

// Package verify drives contract verification over a whole program.  It
// discharges three families of proof obligation: record-field constraints
// (checked for internal consistency), call-site preconditions (checked
// path-sensitively against the facts in scope) and effect budgets (checked
// by counting calls in the cell body).  Obligations are always reported in
// declaration order, so repeated runs over the same program produce
// identical output.
package verify

import (
	"fmt"

	"github.com/cella-lang/go-cella/pkg/ast"
	"github.com/cella-lang/go-cella/pkg/constraint"
	"github.com/cella-lang/go-cella/pkg/counterexample"
	"github.com/cella-lang/go-cella/pkg/refine"
	"github.com/cella-lang/go-cella/pkg/smt"
	log "github.com/sirupsen/logrus"
)

// Obligation pairs a constraint expression with the declaration which gave
// rise to it.
type Obligation struct {
	// Origin names the owning declaration.
	Origin string
	// Pos locates the obligation in the source.
	Pos ast.Position
	// Expr holds the constraint, still in expression form.
	Expr ast.Expr
}

// CollectConstraints gathers every proof obligation present in a program, in
// declaration order: record-field where-clauses, preconditions of called
// cells (one obligation per call site and clause) and effect budgets.
func CollectConstraints(program *ast.Program) []Obligation {
	var obligations []Obligation
	//
	for _, record := range program.Records {
		for _, field := range record.Fields {
			origin := fmt.Sprintf("record %s, field %s", record.Name, field.Name)
			//
			for _, where := range field.Where {
				obligations = append(obligations, Obligation{origin, field.Pos, where})
			}
		}
	}
	//
	for _, cell := range program.Cells {
		for _, uses := range cell.Uses {
			obligations = append(obligations, Obligation{
				fmt.Sprintf("cell %s, effect %s", cell.Name, uses.Effect),
				uses.Pos,
				budgetExpr(uses),
			})
		}
		//
		obligations = append(obligations, collectCalls(program, cell.Name, cell.Body)...)
	}
	//
	return obligations
}

func collectCalls(program *ast.Program, caller string, body []ast.Stmt) []Obligation {
	var obligations []Obligation
	//
	for _, stmt := range body {
		switch s := stmt.(type) {
		case ast.CallStmt:
			callee := program.Cell(s.Call.Name)
			if callee == nil {
				continue
			}
			//
			origin := fmt.Sprintf("cell %s, call %s", caller, s.Call.Name)
			//
			for _, where := range callee.Where {
				obligations = append(obligations, Obligation{origin, s.Pos, where})
			}
		case ast.IfStmt:
			obligations = append(obligations, collectCalls(program, caller, s.Then)...)
			obligations = append(obligations, collectCalls(program, caller, s.Else)...)
		}
	}
	//
	return obligations
}

// budgetExpr reconstructs the boundary form "effect(name) <= max" for a
// uses-clause, so that budgets flow through the same lowering as every other
// obligation.
func budgetExpr(uses *ast.EffectClause) ast.Expr {
	return ast.Binary{
		Op:    ast.BinLtEq,
		Left:  ast.Call{Name: "effect", Args: []ast.Expr{ast.Ident{Name: uses.Effect}}},
		Right: ast.IntLit{Value: uses.Max},
	}
}

// Verifier checks every proof obligation in a program.  Record-field
// obligations are discharged through the configured solver; call-site
// obligations through the refinement context, falling back to the solver
// when the direct procedure cannot decide.
type Verifier struct {
	program *ast.Program
	solver  smt.Solver
	xlator  *smt.Translator
}

// NewVerifier constructs a verifier over the given program, backed by the
// built-in solver.
func NewVerifier(program *ast.Program) *Verifier {
	return NewVerifierWithSolver(program, smt.NewBuiltinSolver())
}

// NewVerifierWithSolver constructs a verifier backed by a caller-supplied
// solver, e.g. an external process bridge.
func NewVerifierWithSolver(program *ast.Program, solver smt.Solver) *Verifier {
	return &Verifier{program, solver, smt.NewTranslator()}
}

// VerifyProgram checks every obligation in the program, returning one result
// per obligation in declaration order.
func (p *Verifier) VerifyProgram() []Result {
	var results []Result
	//
	for _, record := range p.program.Records {
		results = append(results, p.verifyRecord(record)...)
	}
	//
	for _, cell := range p.program.Cells {
		results = append(results, p.verifyCell(cell)...)
	}
	//
	return results
}

// ===================================================================
// Record fields
// ===================================================================

// verifyRecord checks each field constraint for being a tautology: the
// constraint is verified only when its negation has no satisfying
// assignment.  A free-variable comparison such as "x > 0" is not a
// tautology, since a counter-assignment exists, and is therefore never
// reported verified.
func (p *Verifier) verifyRecord(record *ast.Record) []Result {
	var results []Result
	//
	for _, field := range record.Fields {
		origin := fmt.Sprintf("record %s, field %s", record.Name, field.Name)
		//
		for _, where := range field.Where {
			results = append(results, p.verifyFieldConstraint(origin, field.Pos, where))
		}
	}
	//
	return results
}

func (p *Verifier) verifyFieldConstraint(origin string, pos ast.Position, where ast.Expr) Result {
	lowered, err := constraint.LowerExpr(where)
	if err != nil {
		return Result{StatusUnverifiable, origin, pos, where.String(), err.Error(), nil}
	}
	//
	log.Debugf("checking %s: %s", origin, lowered)
	//
	negated := constraint.Negate(lowered)
	outcome := p.solver.CheckSat(p.xlator.TranslateAll([]constraint.Constraint{negated}))
	//
	switch outcome.Status {
	case smt.StatusUnsat:
		// negation unsatisfiable, hence the constraint holds everywhere
		return Result{StatusVerified, origin, pos, lowered.String(), "", nil}
	case smt.StatusSat:
		ce, _ := counterexample.GenerateCounterexample(lowered.String(), lowered.Vars(), true)
		//
		if len(lowered.Vars()) == 0 {
			return Result{StatusViolated, origin, pos, lowered.String(), "constraint is identically false", ce}
		}
		// a counter-assignment exists, so this is not a tautology
		return Result{StatusUnverifiable, origin, pos, lowered.String(), "not a tautology", ce}
	default:
		return Result{StatusUnverifiable, origin, pos, lowered.String(), outcome.Reason, nil}
	}
}

// ===================================================================
// Cell bodies
// ===================================================================

// verifyCell checks the proof obligations arising inside one cell body: a
// refinement context is seeded with the cell's own preconditions, threaded
// path-sensitively through branches, and consulted at each call site.
// Effect budgets declared by the cell are checked against the calls its body
// actually makes.
func (p *Verifier) verifyCell(cell *ast.Cell) []Result {
	log.Debugf("verifying cell %s", cell.Name)
	//
	ctx := refine.NewContext()
	//
	for _, where := range cell.Where {
		lowered, err := constraint.LowerExpr(where)
		if err != nil {
			// an unlowerable assumption contributes no facts
			log.Debugf("cell %s: skipping assumption %s: %v", cell.Name, where, err)
			continue
		}
		//
		p.assume(ctx, lowered)
	}
	//
	results := p.verifyBudgets(cell)
	//
	return append(results, p.verifyStmts(cell.Name, cell.Body, ctx)...)
}

// assume records a lowered fact in the context, keyed by its leading
// variable.  Conjunctions contribute one fact per operand.
func (p *Verifier) assume(ctx *refine.Context, fact constraint.Constraint) {
	if conj, ok := fact.(constraint.And); ok {
		for _, operand := range conj.Operands {
			p.assume(ctx, operand)
		}
		//
		return
	}
	//
	vars := fact.Vars()
	if len(vars) == 0 {
		return
	}
	//
	ctx.AddFact(vars[0], fact)
}

func (p *Verifier) verifyStmts(caller string, body []ast.Stmt, ctx *refine.Context) []Result {
	var results []Result
	//
	for _, stmt := range body {
		switch s := stmt.(type) {
		case ast.CallStmt:
			results = append(results, p.verifyCall(caller, s, ctx)...)
		case ast.IfStmt:
			results = append(results, p.verifyBranch(caller, s, ctx)...)
		}
	}
	//
	return results
}

// verifyBranch threads the branch condition through cloned contexts: the
// then-arm learns the condition, the else-arm its negation.  Conditions which
// fall outside the constraint language contribute no facts to either arm.
func (p *Verifier) verifyBranch(caller string, branch ast.IfStmt, ctx *refine.Context) []Result {
	var (
		thenCtx = ctx.Clone()
		elseCtx = ctx.Clone()
	)
	//
	if cond, err := constraint.LowerExpr(branch.Cond); err == nil {
		p.assume(thenCtx, cond)
		p.assume(elseCtx, constraint.Negate(cond))
	} else {
		log.Debugf("cell %s: opaque branch condition %s: %v", caller, branch.Cond, err)
	}
	//
	results := p.verifyStmts(caller, branch.Then, thenCtx)
	//
	return append(results, p.verifyStmts(caller, branch.Else, elseCtx)...)
}

// verifyCall discharges the callee's preconditions at one call site.  Each
// where-clause of the callee yields one obligation, instantiated with the
// actual arguments: literal arguments reduce the obligation to a closed
// formula which is simply evaluated, whilst variable arguments leave an open
// formula to be implied by the facts in scope.
func (p *Verifier) verifyCall(caller string, stmt ast.CallStmt, ctx *refine.Context) []Result {
	callee := p.program.Cell(stmt.Call.Name)
	if callee == nil {
		// calls to cells outside the program carry no obligations
		return nil
	}
	//
	var (
		origin  = fmt.Sprintf("cell %s, call %s", caller, stmt.Call.Name)
		results []Result
	)
	//
	for _, where := range callee.Where {
		lowered, err := constraint.LowerExpr(where)
		if err != nil {
			results = append(results, Result{StatusUnverifiable, origin, stmt.Pos, where.String(), err.Error(), nil})
			continue
		}
		// conjoined preconditions are discharged clause by clause
		for _, clause := range clausesOf(lowered) {
			results = append(results, p.verifyClause(origin, stmt, callee, clause, ctx))
		}
	}
	//
	return results
}

// clausesOf splits a top-level conjunction into its operands.
func clausesOf(c constraint.Constraint) []constraint.Constraint {
	if conj, ok := c.(constraint.And); ok {
		return conj.Operands
	}
	//
	return []constraint.Constraint{c}
}

func (p *Verifier) verifyClause(origin string, stmt ast.CallStmt, callee *ast.Cell,
	clause constraint.Constraint, ctx *refine.Context) Result {
	//
	instantiated := clause
	//
	for i, param := range callee.Params {
		if i >= len(stmt.Call.Args) {
			break
		}
		//
		switch arg := stmt.Call.Args[i].(type) {
		case ast.IntLit:
			instantiated = instantiated.SubstituteInt(param.Name, arg.Value)
		case ast.Ident:
			instantiated = instantiated.RenameVar(param.Name, arg.Name)
		default:
			// compound arguments are beyond the constraint language
			detail := fmt.Sprintf("argument %d is not a literal or variable", i)
			return Result{StatusUnverifiable, origin, stmt.Pos, clause.String(), detail, nil}
		}
	}
	// closed obligations are decided by direct evaluation
	if len(instantiated.Vars()) == 0 {
		return p.concludeClosed(origin, stmt.Pos, clause, instantiated)
	}
	// open obligations must follow from the facts in scope
	switch ctx.Implies(instantiated) {
	case constraint.Unsat:
		return Result{StatusVerified, origin, stmt.Pos, instantiated.String(), "", nil}
	case constraint.Sat:
		ce, _ := counterexample.GenerateCounterexample(instantiated.String(), instantiated.Vars(), true)
		return Result{StatusViolated, origin, stmt.Pos, instantiated.String(), "facts in scope permit a violation", ce}
	default:
		detail := fmt.Sprintf("no facts establish %s", instantiated)
		return Result{StatusUnverifiable, origin, stmt.Pos, instantiated.String(), detail, nil}
	}
}

func (p *Verifier) concludeClosed(origin string, pos ast.Position, clause constraint.Constraint,
	instantiated constraint.Constraint) Result {
	//
	holds, err := instantiated.Eval()
	//
	switch {
	case err != nil:
		return Result{StatusUnverifiable, origin, pos, clause.String(), err.Error(), nil}
	case holds:
		return Result{StatusVerified, origin, pos, clause.String(), "", nil}
	default:
		ce, _ := counterexample.GenerateCounterexample(clause.String(), clause.Vars(), true)
		return Result{StatusViolated, origin, pos, clause.String(), "arguments falsify the precondition", ce}
	}
}

// ===================================================================
// Effect budgets
// ===================================================================

// verifyBudgets checks each budget the cell declares against the calls its
// body makes: a call spends one unit of an effect whenever the callee
// declares that effect, and calls to cells outside the program spend one
// unit when named after the effect itself.  Branching is counted
// pessimistically, taking the costlier arm.
func (p *Verifier) verifyBudgets(cell *ast.Cell) []Result {
	var results []Result
	//
	for _, uses := range cell.Uses {
		var (
			origin = fmt.Sprintf("cell %s, effect %s", cell.Name, uses.Effect)
			actual = p.countEffect(uses.Effect, cell.Body)
			budget = constraint.EffectBudget{Effect: uses.Effect, MaxCalls: uses.Max, ActualCalls: actual}
		)
		//
		if holds, _ := budget.Eval(); holds {
			results = append(results, Result{StatusVerified, origin, uses.Pos, budget.String(), "", nil})
		} else {
			detail := fmt.Sprintf("body spends %d of %d", actual, uses.Max)
			results = append(results, Result{StatusViolated, origin, uses.Pos, budget.String(), detail, nil})
		}
	}
	//
	return results
}

func (p *Verifier) countEffect(effect string, body []ast.Stmt) int64 {
	var count int64
	//
	for _, stmt := range body {
		switch s := stmt.(type) {
		case ast.CallStmt:
			count += p.callCost(effect, s.Call.Name)
		case ast.IfStmt:
			count += max(p.countEffect(effect, s.Then), p.countEffect(effect, s.Else))
		}
	}
	//
	return count
}

func (p *Verifier) callCost(effect string, name string) int64 {
	callee := p.program.Cell(name)
	//
	if callee == nil {
		// primitive effects are invoked by name
		if name == effect {
			return 1
		}
		//
		return 0
	}
	//
	for _, uses := range callee.Uses {
		if uses.Effect == effect {
			return 1
		}
	}
	//
	return 0
}

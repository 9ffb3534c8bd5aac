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
	"fmt"

	"github.com/cella-lang/go-cella/pkg/ast"
)

// LoweringError reports an expression which cannot be represented as a
// constraint.  Lowering never approximates: anything outside the recognised
// forms is rejected with an explicit error, and the corresponding obligation
// is skipped rather than guessed at.
type LoweringError struct {
	Expr ast.Expr
	Msg  string
}

func (e *LoweringError) Error() string {
	return fmt.Sprintf("cannot lower %q: %s", e.Expr, e.Msg)
}

func loweringError(expr ast.Expr, msg string) error {
	return &LoweringError{expr, msg}
}

var cmpOps = map[ast.BinOp]CmpOp{
	ast.BinGt:    CmpGt,
	ast.BinLt:    CmpLt,
	ast.BinGtEq:  CmpGtEq,
	ast.BinLtEq:  CmpLtEq,
	ast.BinEq:    CmpEq,
	ast.BinNotEq: CmpNotEq,
}

var arithOps = map[ast.BinOp]ArithOp{
	ast.BinAdd: OpAdd,
	ast.BinSub: OpSub,
	ast.BinMul: OpMul,
	ast.BinDiv: OpDiv,
	ast.BinMod: OpMod,
}

// LowerExpr translates a surface boolean expression into a constraint.  The
// recognised forms are: boolean, integer and float literals; comparisons of a
// variable against a literal or another variable; linear arithmetic
// comparisons of the shape "(var ⊕ const) ⊳ const"; boolean connectives; and
// effect-budget clauses.  Everything else fails with a LoweringError.
func LowerExpr(expr ast.Expr) (Constraint, error) {
	switch expr := expr.(type) {
	case ast.BoolLit:
		return BoolConst{expr.Value}, nil
	case ast.Ident:
		return BoolVar{expr.Name}, nil
	case ast.Unary:
		if expr.Op != ast.UnNot {
			return nil, loweringError(expr, "unary minus is not a boolean constraint")
		}
		//
		operand, err := LowerExpr(expr.Operand)
		if err != nil {
			return nil, err
		}
		//
		return Not{operand}, nil
	case ast.Binary:
		return lowerBinary(expr)
	case ast.StringLit:
		return nil, loweringError(expr, "string literals are not boolean constraints")
	case ast.IntLit, ast.FloatLit:
		return nil, loweringError(expr, "numeric literals are not boolean constraints")
	case ast.Call:
		return nil, loweringError(expr, "function calls are not supported in constraints")
	default:
		return nil, loweringError(expr, "unsupported expression form")
	}
}

func lowerBinary(expr ast.Binary) (Constraint, error) {
	switch expr.Op {
	case ast.BinAnd:
		return lowerConnective(expr, false)
	case ast.BinOr:
		return lowerConnective(expr, true)
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinMod:
		return nil, loweringError(expr, "arithmetic expression is not a boolean constraint")
	default:
		return lowerComparison(expr)
	}
}

// lowerConnective lowers a conjunction or disjunction, flattening nested
// connectives of the same kind into a single operand list.
func lowerConnective(expr ast.Binary, disjunct bool) (Constraint, error) {
	var operands []Constraint
	//
	for _, sub := range []ast.Expr{expr.Left, expr.Right} {
		lowered, err := LowerExpr(sub)
		if err != nil {
			return nil, err
		}
		//
		switch lowered := lowered.(type) {
		case And:
			if !disjunct {
				operands = append(operands, lowered.Operands...)
				continue
			}
			//
			operands = append(operands, lowered)
		case Or:
			if disjunct {
				operands = append(operands, lowered.Operands...)
				continue
			}
			//
			operands = append(operands, lowered)
		default:
			operands = append(operands, lowered)
		}
	}
	//
	if disjunct {
		return Or{operands}, nil
	}
	//
	return And{operands}, nil
}

func lowerComparison(expr ast.Binary) (Constraint, error) {
	var (
		op          = cmpOps[expr.Op]
		left, right = expr.Left, expr.Right
	)
	// Normalise literal-on-the-left comparisons, e.g. "5 > x" becomes "x < 5".
	switch left.(type) {
	case ast.IntLit, ast.FloatLit:
		switch right.(type) {
		case ast.IntLit, ast.FloatLit:
			// constants only; falls through to direct evaluation below
		default:
			left, right = right, left
			op = op.Flip()
		}
	}
	//
	switch left := left.(type) {
	case ast.Ident:
		switch right := right.(type) {
		case ast.IntLit:
			return IntComparison{left.Name, op, right.Value}, nil
		case ast.FloatLit:
			return FloatComparison{left.Name, op, right.Value}, nil
		case ast.Ident:
			return VarComparison{left.Name, op, right.Name}, nil
		case ast.BoolLit:
			// x == true / x != false etc. reduce to the variable or its
			// negation.
			return lowerBoolComparison(left.Name, op, right.Value, expr)
		default:
			return nil, loweringError(expr, "comparison against unsupported operand")
		}
	case ast.IntLit:
		if right, ok := right.(ast.IntLit); ok {
			return BoolConst{op.HoldsInt(left.Value, right.Value)}, nil
		}
		//
		return nil, loweringError(expr, "comparison against unsupported operand")
	case ast.FloatLit:
		if right, ok := right.(ast.FloatLit); ok {
			return BoolConst{op.HoldsFloat(left.Value, right.Value)}, nil
		}
		//
		return nil, loweringError(expr, "comparison against unsupported operand")
	case ast.Binary:
		return lowerArithComparison(left, op, right, expr)
	case ast.Call:
		return lowerEffectComparison(left, op, right, expr)
	default:
		return nil, loweringError(expr, "comparison against unsupported operand")
	}
}

func lowerBoolComparison(name string, op CmpOp, value bool, expr ast.Binary) (Constraint, error) {
	switch op {
	case CmpEq:
		if value {
			return BoolVar{name}, nil
		}
		//
		return Not{BoolVar{name}}, nil
	case CmpNotEq:
		if value {
			return Not{BoolVar{name}}, nil
		}
		//
		return BoolVar{name}, nil
	default:
		return nil, loweringError(expr, "booleans are not ordered")
	}
}

// lowerArithComparison recognises the linear form "(var ⊕ const) ⊳ const".
// Multi-variable and nonlinear arithmetic is rejected outright.
func lowerArithComparison(left ast.Binary, op CmpOp, right ast.Expr, expr ast.Binary) (Constraint, error) {
	arithOp, ok := arithOps[left.Op]
	if !ok {
		return nil, loweringError(expr, "nested comparison is not supported")
	}
	//
	cmpValue, ok := right.(ast.IntLit)
	if !ok {
		return nil, loweringError(expr, "arithmetic comparison requires an integer bound")
	}
	//
	var (
		name       string
		arithConst int64
	)
	//
	switch lhs := left.Left.(type) {
	case ast.Ident:
		rhs, ok := left.Right.(ast.IntLit)
		if !ok {
			return nil, loweringError(expr, "only single-variable linear arithmetic is supported")
		}
		//
		name, arithConst = lhs.Name, rhs.Value
	case ast.IntLit:
		rhs, ok := left.Right.(ast.Ident)
		if !ok || (left.Op != ast.BinAdd && left.Op != ast.BinMul) {
			return nil, loweringError(expr, "only single-variable linear arithmetic is supported")
		}
		// commutative, so "k + x" becomes "x + k"
		name, arithConst = rhs.Name, lhs.Value
	default:
		return nil, loweringError(expr, "only single-variable linear arithmetic is supported")
	}
	//
	if (arithOp == OpDiv || arithOp == OpMod) && arithConst == 0 {
		return nil, loweringError(expr, "division by zero in constraint")
	}
	//
	return Arithmetic{name, arithOp, arithConst, op, cmpValue.Value}, nil
}

// lowerEffectComparison recognises the blessed boundary form
// "effect(name) <= max".  The actual call count is filled in by the
// verification driver once the enclosing cell body has been analysed.
func lowerEffectComparison(left ast.Call, op CmpOp, right ast.Expr, expr ast.Binary) (Constraint, error) {
	if left.Name != "effect" || len(left.Args) != 1 {
		return nil, loweringError(expr, "function calls are not supported in constraints")
	}
	//
	if op != CmpLtEq {
		return nil, loweringError(expr, "effect budgets must be upper bounds")
	}
	//
	max, ok := right.(ast.IntLit)
	if !ok {
		return nil, loweringError(expr, "effect budgets require an integer bound")
	}
	//
	switch arg := left.Args[0].(type) {
	case ast.Ident:
		return EffectBudget{arg.Name, max.Value, 0}, nil
	case ast.StringLit:
		return EffectBudget{arg.Value, max.Value, 0}, nil
	default:
		return nil, loweringError(expr, "effect budgets require an effect name")
	}
}

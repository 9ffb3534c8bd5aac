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
	"fmt"

	"github.com/cella-lang/go-cella/pkg/constraint"
)

// Translator lifts constraints into solver expressions.  The translation is
// a structure-preserving homomorphism: every constraint form has exactly one
// image, and no approximation takes place.
type Translator struct{}

// NewTranslator constructs a translator.
func NewTranslator() *Translator {
	return &Translator{}
}

var relOps = map[constraint.CmpOp]RelOp{
	constraint.CmpGt:    Gt,
	constraint.CmpLt:    Lt,
	constraint.CmpGtEq:  Ge,
	constraint.CmpLtEq:  Le,
	constraint.CmpEq:    Eq,
	constraint.CmpNotEq: Ne,
}

var arithSyms = map[constraint.ArithOp]ArithOp{
	constraint.OpAdd: Add,
	constraint.OpSub: Sub,
	constraint.OpMul: Mul,
	constraint.OpDiv: Div,
	constraint.OpMod: Mod,
}

// Translate a single constraint into a solver expression.
func (p *Translator) Translate(c constraint.Constraint) Expr {
	switch c := c.(type) {
	case constraint.BoolConst:
		return BoolLit{c.Value}
	case constraint.BoolVar:
		return Var{c.Name, BoolSort{}}
	case constraint.IntComparison:
		return CmpExpr{relOps[c.Op], Var{c.Var, IntSort{}}, NewIntLit(c.Value)}
	case constraint.FloatComparison:
		return CmpExpr{relOps[c.Op], Var{c.Var, RealSort{}}, RealLit{c.Value}}
	case constraint.VarComparison:
		return CmpExpr{relOps[c.Op], Var{c.Left, IntSort{}}, Var{c.Right, IntSort{}}}
	case constraint.And:
		return AndExpr{p.TranslateAll(c.Operands)}
	case constraint.Or:
		return OrExpr{p.TranslateAll(c.Operands)}
	case constraint.Not:
		return NotExpr{p.Translate(c.Operand)}
	case constraint.Arithmetic:
		lhs := ArithExpr{arithSyms[c.ArithOp], []Expr{Var{c.Var, IntSort{}}, NewIntLit(c.ArithConst)}}
		//
		return CmpExpr{relOps[c.CmpOp], lhs, NewIntLit(c.CmpValue)}
	case constraint.EffectBudget:
		// a budget holds when the actual number of calls stays within it
		return CmpExpr{Le, NewIntLit(c.ActualCalls), NewIntLit(c.MaxCalls)}
	default:
		panic(fmt.Sprintf("unknown constraint: %T", c))
	}
}

// TranslateAll translates a list of constraints elementwise.
func (p *Translator) TranslateAll(cs []constraint.Constraint) []Expr {
	exprs := make([]Expr, len(cs))
	//
	for i, c := range cs {
		exprs[i] = p.Translate(c)
	}
	//
	return exprs
}

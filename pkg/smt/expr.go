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

// Package smt provides the solver abstraction of the verification engine: a
// rich expression tree with SMT-LIB2-compatible rendering, a translator from
// constraints into that tree, a built-in interval decision procedure for
// quantifier-free linear arithmetic, and an optional bridge to external
// solver processes.
package smt

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/cella-lang/go-cella/pkg/util/sexp"
)

// Expr represents a solver expression.  Expressions form a closed union over
// constants, typed variables, arithmetic, comparisons, boolean connectives
// (including implication and iff), quantifiers, array select/store,
// bit-vector operators, if-then-else and uninterpreted function application.
// Expression trees own their children outright; operations always build new
// trees.
type Expr interface {
	isExpr()
	// Lisp renders this expression as an s-expression in SMT-LIB2 prefix
	// form.
	Lisp() sexp.SExp
}

// ToSmtLib2 renders an expression in SMT-LIB2 concrete syntax.
func ToSmtLib2(e Expr) string {
	return e.Lisp().String()
}

// ===================================================================
// Constants and variables
// ===================================================================

// IntLit represents an integer constant.
type IntLit struct {
	Value big.Int
}

// NewIntLit constructs an integer constant from a machine integer.
func NewIntLit(value int64) IntLit {
	return IntLit{*big.NewInt(value)}
}

// RealLit represents a real (float) constant.
type RealLit struct {
	Value float64
}

// BoolLit represents a boolean constant.
type BoolLit struct {
	Value bool
}

// StringLit represents a string constant.
type StringLit struct {
	Value string
}

// Var represents a typed variable.
type Var struct {
	Name string
	Sort Sort
}

// ===================================================================
// Operators
// ===================================================================

// ArithOp identifies an arithmetic operator.
type ArithOp int

const (
	// Add represents addition (+).
	Add ArithOp = iota
	// Sub represents subtraction (-).
	Sub
	// Mul represents multiplication (*).
	Mul
	// Div represents integer division (div).
	Div
	// Mod represents the modulus operator (mod).
	Mod
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "div"
	case Mod:
		return "mod"
	default:
		panic(fmt.Sprintf("unknown arithmetic operator: %d", op))
	}
}

// RelOp identifies a relational operator.
type RelOp int

const (
	// Eq represents equality (=).
	Eq RelOp = iota
	// Ne represents non-equality, rendered as (not (= l r)).
	Ne
	// Lt represents strictly less than (<).
	Lt
	// Le represents less than or equal (<=).
	Le
	// Gt represents strictly greater than (>).
	Gt
	// Ge represents greater than or equal (>=).
	Ge
)

func (op RelOp) String() string {
	switch op {
	case Eq:
		return "="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		panic(fmt.Sprintf("unknown relational operator: %d", op))
	}
}

// Negate returns the logical complement of this operator.
func (op RelOp) Negate() RelOp {
	switch op {
	case Eq:
		return Ne
	case Ne:
		return Eq
	case Lt:
		return Ge
	case Le:
		return Gt
	case Gt:
		return Le
	default:
		return Lt
	}
}

// Flip returns the operator obtained by swapping the two operands.
func (op RelOp) Flip() RelOp {
	switch op {
	case Lt:
		return Gt
	case Le:
		return Ge
	case Gt:
		return Lt
	case Ge:
		return Le
	default:
		return op
	}
}

// BvOp identifies a fixed-width bit-vector operator.
type BvOp int

const (
	// BvAnd represents bitwise and.
	BvAnd BvOp = iota
	// BvOr represents bitwise or.
	BvOr
	// BvShl represents shift left.
	BvShl
	// BvLshr represents logical shift right.
	BvLshr
)

func (op BvOp) String() string {
	switch op {
	case BvAnd:
		return "bvand"
	case BvOr:
		return "bvor"
	case BvShl:
		return "bvshl"
	case BvLshr:
		return "bvlshr"
	default:
		panic(fmt.Sprintf("unknown bit-vector operator: %d", op))
	}
}

// ===================================================================
// Composite expressions
// ===================================================================

// ArithExpr represents the application of an arithmetic operator.
type ArithExpr struct {
	Op   ArithOp
	Args []Expr
}

// CmpExpr represents a comparison between two expressions.
type CmpExpr struct {
	Op    RelOp
	Left  Expr
	Right Expr
}

// AndExpr represents an n-ary conjunction.
type AndExpr struct {
	Args []Expr
}

// OrExpr represents an n-ary disjunction.
type OrExpr struct {
	Args []Expr
}

// NotExpr represents a negation.
type NotExpr struct {
	Arg Expr
}

// ImpliesExpr represents an implication.
type ImpliesExpr struct {
	Left  Expr
	Right Expr
}

// IffExpr represents a bi-implication.
type IffExpr struct {
	Left  Expr
	Right Expr
}

// QuantExpr represents a quantified formula.
type QuantExpr struct {
	Exists bool
	Bound  []Var
	Body   Expr
}

// SelectExpr represents an array read.
type SelectExpr struct {
	Array Expr
	Index Expr
}

// StoreExpr represents an array write.
type StoreExpr struct {
	Array Expr
	Index Expr
	Value Expr
}

// BitVecExpr represents the application of a bit-vector operator.
type BitVecExpr struct {
	Op   BvOp
	Args []Expr
}

// IteExpr represents an if-then-else expression.
type IteExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

// AppExpr represents the application of an uninterpreted function.
type AppExpr struct {
	Name string
	Args []Expr
}

func (e IntLit) isExpr()      {}
func (e RealLit) isExpr()     {}
func (e BoolLit) isExpr()     {}
func (e StringLit) isExpr()   {}
func (e Var) isExpr()         {}
func (e ArithExpr) isExpr()   {}
func (e CmpExpr) isExpr()     {}
func (e AndExpr) isExpr()     {}
func (e OrExpr) isExpr()      {}
func (e NotExpr) isExpr()     {}
func (e ImpliesExpr) isExpr() {}
func (e IffExpr) isExpr()     {}
func (e QuantExpr) isExpr()   {}
func (e SelectExpr) isExpr()  {}
func (e StoreExpr) isExpr()   {}
func (e BitVecExpr) isExpr()  {}
func (e IteExpr) isExpr()     {}
func (e AppExpr) isExpr()     {}

// ===================================================================
// SMT-LIB2 rendering
// ===================================================================

// Lisp implementation for Expr interface.
func (e IntLit) Lisp() sexp.SExp {
	// negative literals must be rendered as (- n)
	if e.Value.Sign() < 0 {
		var abs big.Int
		//
		abs.Neg(&e.Value)
		//
		return sexp.NewList(sexp.NewSymbol("-"), sexp.NewSymbol(abs.String()))
	}
	//
	return sexp.NewSymbol(e.Value.String())
}

// Lisp implementation for Expr interface.
func (e RealLit) Lisp() sexp.SExp {
	text := strconv.FormatFloat(e.Value, 'f', -1, 64)
	//
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	//
	if e.Value < 0 {
		return sexp.NewList(sexp.NewSymbol("-"), sexp.NewSymbol(text[1:]))
	}
	//
	return sexp.NewSymbol(text)
}

// Lisp implementation for Expr interface.
func (e BoolLit) Lisp() sexp.SExp {
	if e.Value {
		return sexp.NewSymbol("true")
	}
	//
	return sexp.NewSymbol("false")
}

// Lisp implementation for Expr interface.
func (e StringLit) Lisp() sexp.SExp {
	return sexp.NewSymbol(fmt.Sprintf("%q", e.Value))
}

// Lisp implementation for Expr interface.
func (e Var) Lisp() sexp.SExp {
	return sexp.NewSymbol(e.Name)
}

// Lisp implementation for Expr interface.
func (e ArithExpr) Lisp() sexp.SExp {
	return lispApply(e.Op.String(), e.Args)
}

// Lisp implementation for Expr interface.
func (e CmpExpr) Lisp() sexp.SExp {
	if e.Op == Ne {
		inner := sexp.NewList(sexp.NewSymbol("="), e.Left.Lisp(), e.Right.Lisp())
		//
		return sexp.NewList(sexp.NewSymbol("not"), inner)
	}
	//
	return sexp.NewList(sexp.NewSymbol(e.Op.String()), e.Left.Lisp(), e.Right.Lisp())
}

// Lisp implementation for Expr interface.
func (e AndExpr) Lisp() sexp.SExp {
	return lispApply("and", e.Args)
}

// Lisp implementation for Expr interface.
func (e OrExpr) Lisp() sexp.SExp {
	return lispApply("or", e.Args)
}

// Lisp implementation for Expr interface.
func (e NotExpr) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("not"), e.Arg.Lisp())
}

// Lisp implementation for Expr interface.
func (e ImpliesExpr) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("=>"), e.Left.Lisp(), e.Right.Lisp())
}

// Lisp implementation for Expr interface.
func (e IffExpr) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("="), e.Left.Lisp(), e.Right.Lisp())
}

// Lisp implementation for Expr interface.
func (e QuantExpr) Lisp() sexp.SExp {
	quantifier := "forall"
	//
	if e.Exists {
		quantifier = "exists"
	}
	//
	bindings := sexp.NewList()
	//
	for _, v := range e.Bound {
		bindings.Append(sexp.NewList(sexp.NewSymbol(v.Name), sexp.NewSymbol(v.Sort.String())))
	}
	//
	return sexp.NewList(sexp.NewSymbol(quantifier), bindings, e.Body.Lisp())
}

// Lisp implementation for Expr interface.
func (e SelectExpr) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("select"), e.Array.Lisp(), e.Index.Lisp())
}

// Lisp implementation for Expr interface.
func (e StoreExpr) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("store"), e.Array.Lisp(), e.Index.Lisp(), e.Value.Lisp())
}

// Lisp implementation for Expr interface.
func (e BitVecExpr) Lisp() sexp.SExp {
	return lispApply(e.Op.String(), e.Args)
}

// Lisp implementation for Expr interface.
func (e IteExpr) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("ite"), e.Cond.Lisp(), e.Then.Lisp(), e.Else.Lisp())
}

// Lisp implementation for Expr interface.
func (e AppExpr) Lisp() sexp.SExp {
	return lispApply(e.Name, e.Args)
}

func lispApply(symbol string, args []Expr) sexp.SExp {
	list := sexp.NewList(sexp.NewSymbol(symbol))
	//
	for _, arg := range args {
		list.Append(arg.Lisp())
	}
	//
	return list
}

// ===================================================================
// Free variables
// ===================================================================

// FreeVariables determines the free variables of an expression, mapping each
// to its declared sort.
func FreeVariables(e Expr) map[string]Sort {
	vars := make(map[string]Sort)
	//
	collectVars(e, make(map[string]bool), vars)
	//
	return vars
}

func collectVars(e Expr, bound map[string]bool, vars map[string]Sort) {
	switch e := e.(type) {
	case Var:
		if !bound[e.Name] {
			vars[e.Name] = e.Sort
		}
	case ArithExpr:
		collectAll(e.Args, bound, vars)
	case CmpExpr:
		collectVars(e.Left, bound, vars)
		collectVars(e.Right, bound, vars)
	case AndExpr:
		collectAll(e.Args, bound, vars)
	case OrExpr:
		collectAll(e.Args, bound, vars)
	case NotExpr:
		collectVars(e.Arg, bound, vars)
	case ImpliesExpr:
		collectVars(e.Left, bound, vars)
		collectVars(e.Right, bound, vars)
	case IffExpr:
		collectVars(e.Left, bound, vars)
		collectVars(e.Right, bound, vars)
	case QuantExpr:
		inner := make(map[string]bool, len(bound)+len(e.Bound))
		//
		for name := range bound {
			inner[name] = true
		}
		//
		for _, v := range e.Bound {
			inner[v.Name] = true
		}
		//
		collectVars(e.Body, inner, vars)
	case SelectExpr:
		collectVars(e.Array, bound, vars)
		collectVars(e.Index, bound, vars)
	case StoreExpr:
		collectVars(e.Array, bound, vars)
		collectVars(e.Index, bound, vars)
		collectVars(e.Value, bound, vars)
	case BitVecExpr:
		collectAll(e.Args, bound, vars)
	case IteExpr:
		collectVars(e.Cond, bound, vars)
		collectVars(e.Then, bound, vars)
		collectVars(e.Else, bound, vars)
	case AppExpr:
		collectAll(e.Args, bound, vars)
	}
}

func collectAll(args []Expr, bound map[string]bool, vars map[string]Sort) {
	for _, arg := range args {
		collectVars(arg, bound, vars)
	}
}

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

// Package ast defines the surface trees consumed by the verification engine:
// boolean expressions attached as record-field constraints and cell
// preconditions, call sites, and branch conditions.  The real front-end
// produces these trees; the parser in this package is a small stand-in used
// by the command-line tools and the test suite.
package ast

import (
	"fmt"
	"strings"
)

// Position identifies a location within a source file.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ===================================================================
// Expressions
// ===================================================================

// Expr represents an expression tree.  Expressions form a closed union:
// BoolLit, IntLit, FloatLit, StringLit, Ident, Unary, Binary and Call.
type Expr interface {
	isExpr()
	String() string
}

// BoolLit represents a boolean literal.
type BoolLit struct {
	Value bool
}

// IntLit represents an integer literal.
type IntLit struct {
	Value int64
}

// FloatLit represents a floating-point literal.
type FloatLit struct {
	Value float64
}

// StringLit represents a string literal.
type StringLit struct {
	Value string
}

// Ident represents a variable reference.
type Ident struct {
	Name string
}

// Unary represents the application of a unary operator.
type Unary struct {
	Op      UnOp
	Operand Expr
}

// Binary represents the application of a binary operator.
type Binary struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

// Call represents the application of a named cell or builtin.
type Call struct {
	Name string
	Args []Expr
}

func (e BoolLit) isExpr()   {}
func (e IntLit) isExpr()    {}
func (e FloatLit) isExpr()  {}
func (e StringLit) isExpr() {}
func (e Ident) isExpr()     {}
func (e Unary) isExpr()     {}
func (e Binary) isExpr()    {}
func (e Call) isExpr()      {}

// UnOp represents a unary operator.
type UnOp int

const (
	// UnNot represents logical negation.
	UnNot UnOp = iota
	// UnNeg represents arithmetic negation.
	UnNeg
)

// BinOp represents a binary operator.
type BinOp int

const (
	// BinAdd represents addition.
	BinAdd BinOp = iota
	// BinSub represents subtraction.
	BinSub
	// BinMul represents multiplication.
	BinMul
	// BinDiv represents division.
	BinDiv
	// BinMod represents modulus.
	BinMod
	// BinLt represents strictly less than.
	BinLt
	// BinGt represents strictly greater than.
	BinGt
	// BinLtEq represents less than or equal.
	BinLtEq
	// BinGtEq represents greater than or equal.
	BinGtEq
	// BinEq represents equality.
	BinEq
	// BinNotEq represents non-equality.
	BinNotEq
	// BinAnd represents logical conjunction.
	BinAnd
	// BinOr represents logical disjunction.
	BinOr
)

func (op BinOp) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinMod:
		return "%"
	case BinLt:
		return "<"
	case BinGt:
		return ">"
	case BinLtEq:
		return "<="
	case BinGtEq:
		return ">="
	case BinEq:
		return "=="
	case BinNotEq:
		return "!="
	case BinAnd:
		return "and"
	case BinOr:
		return "or"
	default:
		panic(fmt.Sprintf("unknown binary operator: %d", op))
	}
}

func (e BoolLit) String() string {
	if e.Value {
		return "true"
	}
	//
	return "false"
}

func (e IntLit) String() string { return fmt.Sprintf("%d", e.Value) }

func (e FloatLit) String() string { return fmt.Sprintf("%v", e.Value) }

func (e StringLit) String() string { return fmt.Sprintf("%q", e.Value) }

func (e Ident) String() string { return e.Name }

func (e Unary) String() string {
	if e.Op == UnNot {
		return fmt.Sprintf("not(%s)", e.Operand)
	}
	//
	return fmt.Sprintf("-%s", e.Operand)
}

func (e Binary) String() string {
	return fmt.Sprintf("%s %s %s", e.Left, e.Op, e.Right)
}

func (e Call) String() string {
	var builder strings.Builder
	//
	builder.WriteString(e.Name)
	builder.WriteString("(")
	//
	for i, arg := range e.Args {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(arg.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ===================================================================
// Declarations
// ===================================================================

// Program represents a compilation unit: a sequence of record and cell
// declarations.
type Program struct {
	Records []*Record
	Cells   []*Cell
}

// Cell returns the declaration of a named cell, or nil if no such cell
// exists.
func (p *Program) Cell(name string) *Cell {
	for _, c := range p.Cells {
		if c.Name == name {
			return c
		}
	}
	//
	return nil
}

// Record represents a record declaration whose fields may carry constraints.
type Record struct {
	Name   string
	Pos    Position
	Fields []*Field
}

// Field represents a single record field, together with any constraints
// declared for it.
type Field struct {
	Name  string
	Type  string
	Pos   Position
	Where []Expr
}

// Cell represents a cell (function) declaration.  Preconditions on the
// parameters appear as where-clauses; effect budgets as uses-clauses.
type Cell struct {
	Name   string
	Pos    Position
	Params []*Param
	Where  []Expr
	Uses   []*EffectClause
	Body   []Stmt
}

// Param represents a single cell parameter.
type Param struct {
	Name string
	Type string
}

// EffectClause represents a budget on a named effect, e.g. "uses io <= 3".
type EffectClause struct {
	Effect string
	Max    int64
	Pos    Position
}

// ===================================================================
// Statements
// ===================================================================

// Stmt represents a statement within a cell body.  Only the forms relevant to
// verification are modelled: calls and branches.
type Stmt interface {
	isStmt()
}

// CallStmt represents a call to another cell.
type CallStmt struct {
	Call Call
	Pos  Position
}

// IfStmt represents a two-way branch on a condition.
type IfStmt struct {
	Cond Expr
	Pos  Position
	Then []Stmt
	Else []Stmt
}

func (s CallStmt) isStmt() {}
func (s IfStmt) isStmt()   {}

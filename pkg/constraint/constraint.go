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
	"slices"
	"strings"
)

// CmpOp represents a relational operator used within comparison constraints.
type CmpOp int

const (
	// CmpGt represents strictly greater than (>).
	CmpGt CmpOp = iota
	// CmpLt represents strictly less than (<).
	CmpLt
	// CmpGtEq represents greater than or equal (>=).
	CmpGtEq
	// CmpLtEq represents less than or equal (<=).
	CmpLtEq
	// CmpEq represents equality (==).
	CmpEq
	// CmpNotEq represents non-equality (!=).
	CmpNotEq
)

func (op CmpOp) String() string {
	switch op {
	case CmpGt:
		return ">"
	case CmpLt:
		return "<"
	case CmpGtEq:
		return ">="
	case CmpLtEq:
		return "<="
	case CmpEq:
		return "=="
	case CmpNotEq:
		return "!="
	default:
		panic(fmt.Sprintf("unknown comparison operator: %d", op))
	}
}

// Negate returns the logical complement of this operator, such that
// "x op v" is false exactly when "x op.Negate() v" is true.
func (op CmpOp) Negate() CmpOp {
	switch op {
	case CmpGt:
		return CmpLtEq
	case CmpLt:
		return CmpGtEq
	case CmpGtEq:
		return CmpLt
	case CmpLtEq:
		return CmpGt
	case CmpEq:
		return CmpNotEq
	case CmpNotEq:
		return CmpEq
	default:
		panic(fmt.Sprintf("unknown comparison operator: %d", op))
	}
}

// Flip returns the operator obtained by swapping the two operands, such that
// "l op r" holds exactly when "r op.Flip() l" holds.
func (op CmpOp) Flip() CmpOp {
	switch op {
	case CmpGt:
		return CmpLt
	case CmpLt:
		return CmpGt
	case CmpGtEq:
		return CmpLtEq
	case CmpLtEq:
		return CmpGtEq
	default:
		// equality and non-equality are symmetric
		return op
	}
}

// HoldsInt determines whether this operator holds between two integers.
func (op CmpOp) HoldsInt(left int64, right int64) bool {
	switch op {
	case CmpGt:
		return left > right
	case CmpLt:
		return left < right
	case CmpGtEq:
		return left >= right
	case CmpLtEq:
		return left <= right
	case CmpEq:
		return left == right
	case CmpNotEq:
		return left != right
	default:
		panic(fmt.Sprintf("unknown comparison operator: %d", op))
	}
}

// HoldsFloat determines whether this operator holds between two floats.
func (op CmpOp) HoldsFloat(left float64, right float64) bool {
	switch op {
	case CmpGt:
		return left > right
	case CmpLt:
		return left < right
	case CmpGtEq:
		return left >= right
	case CmpLtEq:
		return left <= right
	case CmpEq:
		return left == right
	case CmpNotEq:
		return left != right
	default:
		panic(fmt.Sprintf("unknown comparison operator: %d", op))
	}
}

// ArithOp represents an arithmetic operator applied to a variable within a
// linear constraint.
type ArithOp int

const (
	// OpAdd represents addition (+).
	OpAdd ArithOp = iota
	// OpSub represents subtraction (-).
	OpSub
	// OpMul represents multiplication (*).
	OpMul
	// OpDiv represents (euclidean) division (/).
	OpDiv
	// OpMod represents the modulus operator (%).
	OpMod
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		panic(fmt.Sprintf("unknown arithmetic operator: %d", op))
	}
}

// Apply this operator to a given value and constant.  Division or modulus by
// zero is reported as an error rather than being allowed to panic.
func (op ArithOp) Apply(value int64, constant int64) (int64, error) {
	switch op {
	case OpAdd:
		return value + constant, nil
	case OpSub:
		return value - constant, nil
	case OpMul:
		return value * constant, nil
	case OpDiv:
		if constant == 0 {
			return 0, fmt.Errorf("division by zero in constraint")
		}
		//
		return value / constant, nil
	case OpMod:
		if constant == 0 {
			return 0, fmt.Errorf("modulus by zero in constraint")
		}
		//
		return value % constant, nil
	default:
		panic(fmt.Sprintf("unknown arithmetic operator: %d", op))
	}
}

// Constraint represents a boolean proposition over integers, floats and named
// effect budgets.  Constraints form a closed, side-effect-free union:
// BoolConst, BoolVar, IntComparison, FloatComparison, VarComparison, And, Or,
// Not, Arithmetic and EffectBudget.  Every operation produces a new
// constraint, leaving its receiver untouched.  Any constraint with no free
// variables can be reduced to a BoolConst by Eval.
type Constraint interface {
	isConstraint()
	// Vars returns the (sorted, deduplicated) free variables of this
	// constraint.
	Vars() []string
	// SubstituteInt replaces every occurrence of a variable with an integer
	// literal, folding any subterm which becomes fully concrete down to a
	// boolean constant.
	SubstituteInt(name string, value int64) Constraint
	// RenameVar renames every occurrence of one variable to another.
	RenameVar(from string, to string) Constraint
	// Eval reduces a constraint with no free variables to its truth value.
	// Evaluation fails on free variables and on arithmetic hazards.
	Eval() (bool, error)
	// String renders this constraint in the surface syntax, e.g. "x > 0".
	String() string
}

// BoolConst represents the constant true or false constraint.
type BoolConst struct {
	Value bool
}

// BoolVar represents a boolean-valued variable used as a constraint.
type BoolVar struct {
	Name string
}

// IntComparison represents a comparison between a variable and an integer
// literal, e.g. "b != 0".
type IntComparison struct {
	Var   string
	Op    CmpOp
	Value int64
}

// FloatComparison represents a comparison between a variable and a float
// literal, e.g. "scale > 0.0".
type FloatComparison struct {
	Var   string
	Op    CmpOp
	Value float64
}

// VarComparison represents a comparison between two variables, e.g. "lo <= hi".
type VarComparison struct {
	Left  string
	Op    CmpOp
	Right string
}

// And represents the conjunction of zero or more constraints.
type And struct {
	Operands []Constraint
}

// Or represents the disjunction of zero or more constraints.
type Or struct {
	Operands []Constraint
}

// Not represents the negation of a constraint.
type Not struct {
	Operand Constraint
}

// Arithmetic represents a linear constraint of the form "(var ⊕ k) ⊳ v", such
// as "(n + 1) < 100".
type Arithmetic struct {
	Var        string
	ArithOp    ArithOp
	ArithConst int64
	CmpOp      CmpOp
	CmpValue   int64
}

// EffectBudget represents a budget on the number of calls a cell may make
// through a named effect, e.g. at most three io calls.
type EffectBudget struct {
	Effect      string
	MaxCalls    int64
	ActualCalls int64
}

func (c BoolConst) isConstraint()     {}
func (c BoolVar) isConstraint()       {}
func (c IntComparison) isConstraint() {}

func (c FloatComparison) isConstraint() {}
func (c VarComparison) isConstraint()   {}
func (c And) isConstraint()             {}
func (c Or) isConstraint()              {}
func (c Not) isConstraint()             {}
func (c Arithmetic) isConstraint()      {}
func (c EffectBudget) isConstraint()    {}

// ===================================================================
// Free variables
// ===================================================================

// Vars implementation for Constraint interface.
func (c BoolConst) Vars() []string { return nil }

// Vars implementation for Constraint interface.
func (c BoolVar) Vars() []string { return []string{c.Name} }

// Vars implementation for Constraint interface.
func (c IntComparison) Vars() []string { return []string{c.Var} }

// Vars implementation for Constraint interface.
func (c FloatComparison) Vars() []string { return []string{c.Var} }

// Vars implementation for Constraint interface.
func (c VarComparison) Vars() []string {
	if c.Left == c.Right {
		return []string{c.Left}
	}
	//
	return sortVars([]string{c.Left, c.Right})
}

// Vars implementation for Constraint interface.
func (c And) Vars() []string { return varsOf(c.Operands) }

// Vars implementation for Constraint interface.
func (c Or) Vars() []string { return varsOf(c.Operands) }

// Vars implementation for Constraint interface.
func (c Not) Vars() []string { return c.Operand.Vars() }

// Vars implementation for Constraint interface.
func (c Arithmetic) Vars() []string { return []string{c.Var} }

// Vars implementation for Constraint interface.
func (c EffectBudget) Vars() []string { return nil }

func varsOf(operands []Constraint) []string {
	var vars []string
	//
	for _, o := range operands {
		vars = append(vars, o.Vars()...)
	}
	//
	return sortVars(vars)
}

func sortVars(vars []string) []string {
	slices.Sort(vars)
	//
	return slices.Compact(vars)
}

// ===================================================================
// Substitution
// ===================================================================

// SubstituteInt implementation for Constraint interface.
func (c BoolConst) SubstituteInt(name string, value int64) Constraint { return c }

// SubstituteInt implementation for Constraint interface.  Observe that an
// integer value cannot be substituted into a boolean variable.
func (c BoolVar) SubstituteInt(name string, value int64) Constraint { return c }

// SubstituteInt implementation for Constraint interface.
func (c IntComparison) SubstituteInt(name string, value int64) Constraint {
	if c.Var != name {
		return c
	}
	//
	return BoolConst{c.Op.HoldsInt(value, c.Value)}
}

// SubstituteInt implementation for Constraint interface.
func (c FloatComparison) SubstituteInt(name string, value int64) Constraint {
	if c.Var != name {
		return c
	}
	//
	return BoolConst{c.Op.HoldsFloat(float64(value), c.Value)}
}

// SubstituteInt implementation for Constraint interface.
func (c VarComparison) SubstituteInt(name string, value int64) Constraint {
	switch {
	case c.Left == name && c.Right == name:
		return BoolConst{c.Op.HoldsInt(value, value)}
	case c.Left == name:
		return IntComparison{c.Right, c.Op.Flip(), value}
	case c.Right == name:
		return IntComparison{c.Left, c.Op, value}
	default:
		return c
	}
}

// SubstituteInt implementation for Constraint interface.
func (c And) SubstituteInt(name string, value int64) Constraint {
	operands := make([]Constraint, len(c.Operands))
	//
	for i, o := range c.Operands {
		operands[i] = o.SubstituteInt(name, value)
	}
	//
	return fold(And{operands})
}

// SubstituteInt implementation for Constraint interface.
func (c Or) SubstituteInt(name string, value int64) Constraint {
	operands := make([]Constraint, len(c.Operands))
	//
	for i, o := range c.Operands {
		operands[i] = o.SubstituteInt(name, value)
	}
	//
	return fold(Or{operands})
}

// SubstituteInt implementation for Constraint interface.
func (c Not) SubstituteInt(name string, value int64) Constraint {
	return fold(Not{c.Operand.SubstituteInt(name, value)})
}

// SubstituteInt implementation for Constraint interface.  Arithmetic hazards
// (e.g. division by zero) leave the constraint untouched; evaluation will
// subsequently report them.
func (c Arithmetic) SubstituteInt(name string, value int64) Constraint {
	if c.Var != name {
		return c
	}
	//
	applied, err := c.ArithOp.Apply(value, c.ArithConst)
	if err != nil {
		return c
	}
	//
	return BoolConst{c.CmpOp.HoldsInt(applied, c.CmpValue)}
}

// SubstituteInt implementation for Constraint interface.
func (c EffectBudget) SubstituteInt(name string, value int64) Constraint { return c }

// fold reduces a connective whose operands have all become concrete down to a
// boolean constant.
func fold(c Constraint) Constraint {
	if len(c.Vars()) != 0 {
		return c
	}
	//
	value, err := c.Eval()
	if err != nil {
		return c
	}
	//
	return BoolConst{value}
}

// ===================================================================
// Renaming
// ===================================================================

// RenameVar implementation for Constraint interface.
func (c BoolConst) RenameVar(from string, to string) Constraint { return c }

// RenameVar implementation for Constraint interface.
func (c BoolVar) RenameVar(from string, to string) Constraint {
	return BoolVar{rename(c.Name, from, to)}
}

// RenameVar implementation for Constraint interface.
func (c IntComparison) RenameVar(from string, to string) Constraint {
	return IntComparison{rename(c.Var, from, to), c.Op, c.Value}
}

// RenameVar implementation for Constraint interface.
func (c FloatComparison) RenameVar(from string, to string) Constraint {
	return FloatComparison{rename(c.Var, from, to), c.Op, c.Value}
}

// RenameVar implementation for Constraint interface.
func (c VarComparison) RenameVar(from string, to string) Constraint {
	return VarComparison{rename(c.Left, from, to), c.Op, rename(c.Right, from, to)}
}

// RenameVar implementation for Constraint interface.
func (c And) RenameVar(from string, to string) Constraint {
	operands := make([]Constraint, len(c.Operands))
	//
	for i, o := range c.Operands {
		operands[i] = o.RenameVar(from, to)
	}
	//
	return And{operands}
}

// RenameVar implementation for Constraint interface.
func (c Or) RenameVar(from string, to string) Constraint {
	operands := make([]Constraint, len(c.Operands))
	//
	for i, o := range c.Operands {
		operands[i] = o.RenameVar(from, to)
	}
	//
	return Or{operands}
}

// RenameVar implementation for Constraint interface.
func (c Not) RenameVar(from string, to string) Constraint {
	return Not{c.Operand.RenameVar(from, to)}
}

// RenameVar implementation for Constraint interface.
func (c Arithmetic) RenameVar(from string, to string) Constraint {
	return Arithmetic{rename(c.Var, from, to), c.ArithOp, c.ArithConst, c.CmpOp, c.CmpValue}
}

// RenameVar implementation for Constraint interface.
func (c EffectBudget) RenameVar(from string, to string) Constraint { return c }

func rename(name string, from string, to string) string {
	if name == from {
		return to
	}
	//
	return name
}

// ===================================================================
// Evaluation
// ===================================================================

// Eval implementation for Constraint interface.
func (c BoolConst) Eval() (bool, error) { return c.Value, nil }

// Eval implementation for Constraint interface.
func (c BoolVar) Eval() (bool, error) {
	return false, fmt.Errorf("cannot evaluate unbound variable %q", c.Name)
}

// Eval implementation for Constraint interface.
func (c IntComparison) Eval() (bool, error) {
	return false, fmt.Errorf("cannot evaluate unbound variable %q", c.Var)
}

// Eval implementation for Constraint interface.
func (c FloatComparison) Eval() (bool, error) {
	return false, fmt.Errorf("cannot evaluate unbound variable %q", c.Var)
}

// Eval implementation for Constraint interface.
func (c VarComparison) Eval() (bool, error) {
	if c.Left == c.Right {
		// e.g. x == x, x < x
		return c.Op.HoldsInt(0, 0), nil
	}
	//
	return false, fmt.Errorf("cannot evaluate unbound variables %q, %q", c.Left, c.Right)
}

// Eval implementation for Constraint interface.
func (c And) Eval() (bool, error) {
	for _, o := range c.Operands {
		value, err := o.Eval()
		//
		if err != nil {
			return false, err
		} else if !value {
			return false, nil
		}
	}
	//
	return true, nil
}

// Eval implementation for Constraint interface.
func (c Or) Eval() (bool, error) {
	for _, o := range c.Operands {
		value, err := o.Eval()
		//
		if err != nil {
			return false, err
		} else if value {
			return true, nil
		}
	}
	//
	return false, nil
}

// Eval implementation for Constraint interface.
func (c Not) Eval() (bool, error) {
	value, err := c.Operand.Eval()
	//
	return !value, err
}

// Eval implementation for Constraint interface.
func (c Arithmetic) Eval() (bool, error) {
	return false, fmt.Errorf("cannot evaluate unbound variable %q", c.Var)
}

// Eval implementation for Constraint interface.
func (c EffectBudget) Eval() (bool, error) {
	return c.ActualCalls <= c.MaxCalls, nil
}

// ===================================================================
// Negation
// ===================================================================

// Negate computes the logical complement of a constraint, pushing the
// negation inwards as far as possible (i.e. into negation normal form).
// Comparisons negate their operator, connectives follow De Morgan's laws, and
// only boolean variables retain an explicit Not wrapper.
func Negate(c Constraint) Constraint {
	switch c := c.(type) {
	case BoolConst:
		return BoolConst{!c.Value}
	case IntComparison:
		return IntComparison{c.Var, c.Op.Negate(), c.Value}
	case FloatComparison:
		return FloatComparison{c.Var, c.Op.Negate(), c.Value}
	case VarComparison:
		return VarComparison{c.Left, c.Op.Negate(), c.Right}
	case Arithmetic:
		return Arithmetic{c.Var, c.ArithOp, c.ArithConst, c.CmpOp.Negate(), c.CmpValue}
	case And:
		operands := make([]Constraint, len(c.Operands))
		for i, o := range c.Operands {
			operands[i] = Negate(o)
		}
		//
		return Or{operands}
	case Or:
		operands := make([]Constraint, len(c.Operands))
		for i, o := range c.Operands {
			operands[i] = Negate(o)
		}
		//
		return And{operands}
	case Not:
		return c.Operand
	case EffectBudget:
		return BoolConst{c.ActualCalls > c.MaxCalls}
	default:
		return Not{c}
	}
}

// ===================================================================
// Printing
// ===================================================================

func (c BoolConst) String() string {
	if c.Value {
		return "true"
	}
	//
	return "false"
}

func (c BoolVar) String() string { return c.Name }

func (c IntComparison) String() string {
	return fmt.Sprintf("%s %s %d", c.Var, c.Op, c.Value)
}

func (c FloatComparison) String() string {
	return fmt.Sprintf("%s %s %v", c.Var, c.Op, c.Value)
}

func (c VarComparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Right)
}

func (c And) String() string { return joinOperands(c.Operands, "and") }

func (c Or) String() string { return joinOperands(c.Operands, "or") }

func (c Not) String() string {
	return fmt.Sprintf("not(%s)", c.Operand)
}

func (c Arithmetic) String() string {
	return fmt.Sprintf("(%s %s %d) %s %d", c.Var, c.ArithOp, c.ArithConst, c.CmpOp, c.CmpValue)
}

func (c EffectBudget) String() string {
	return fmt.Sprintf("effect(%s) <= %d", c.Effect, c.MaxCalls)
}

func joinOperands(operands []Constraint, connective string) string {
	var builder strings.Builder
	//
	for i, o := range operands {
		if i != 0 {
			builder.WriteString(" ")
			builder.WriteString(connective)
			builder.WriteString(" ")
		}
		// Parenthesise nested connectives to keep the rendering unambiguous.
		switch o.(type) {
		case And, Or:
			builder.WriteString("(")
			builder.WriteString(o.String())
			builder.WriteString(")")
		default:
			builder.WriteString(o.String())
		}
	}
	//
	return builder.String()
}

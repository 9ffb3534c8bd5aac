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

package counterexample

import (
	"fmt"
	"strconv"
	"strings"
)

// Role classifies how a witness variable participates in the violated
// constraint.
type Role int

const (
	// RoleInput marks a variable bound directly by the witness.
	RoleInput Role = iota
	// RoleOutput marks a value produced while evaluating the witness.
	RoleOutput
	// RoleIntermediate marks a value introduced during evaluation.
	RoleIntermediate
	// RoleBound marks the boundary value a violating witness was derived
	// from.
	RoleBound
)

func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	case RoleIntermediate:
		return "intermediate"
	case RoleBound:
		return "bound"
	}
	//
	return "unknown"
}

// ConcreteValue is a witness value of one of the supported ground types.
type ConcreteValue interface {
	isValue()
	// String returns the source-level rendering of the value.
	String() string
}

// IntValue is an integer witness value.
type IntValue struct{ Value int64 }

// BoolValue is a boolean witness value.
type BoolValue struct{ Value bool }

// StringValue is a string witness value.
type StringValue struct{ Value string }

func (v IntValue) isValue()    {}
func (v BoolValue) isValue()   {}
func (v StringValue) isValue() {}

func (v IntValue) String() string {
	return strconv.FormatInt(v.Value, 10)
}

func (v BoolValue) String() string {
	return strconv.FormatBool(v.Value)
}

func (v StringValue) String() string {
	return strconv.Quote(v.Value)
}

// Binding associates a variable with its concrete witness value.
type Binding struct {
	Name  string
	Value ConcreteValue
	Role  Role
}

// EvalStep records one step of the derivation which produced a witness.
type EvalStep struct {
	Expression string
	Outcome    string
}

// CounterExample is a concrete assignment under which a constraint evaluates
// to false, together with the derivation that produced it.
type CounterExample struct {
	// Constraint holds the violated constraint, verbatim.
	Constraint string
	// Bindings holds the witness assignment.
	Bindings []Binding
	// Explanation is a one-line human-readable account of the violation.
	Explanation string
	// Trace records how the witness was derived.
	Trace []EvalStep
}

// GenerateCounterexample synthesizes a concrete witness falsifying the given
// constraint, binding only variables drawn from the given scope (an empty
// scope admits any variable).  It returns false when the constraint was not
// actually violated, when its text falls outside the restricted grammar, or
// when no witness rule applies; callers must treat that as "no
// counterexample available", never as success.
func GenerateCounterexample(text string, variables []string, violated bool) (*CounterExample, bool) {
	if !violated {
		return nil, false
	}
	//
	parsed, ok := ParseSimpleConstraint(text)
	if !ok {
		return nil, false
	}
	//
	ce := &CounterExample{Constraint: text}
	ce.step(text, "parsed")
	//
	if !synthesize(parsed, ce) {
		return nil, false
	}
	// a witness over variables outside the scope explains nothing
	if !inScope(ce, variables) {
		return nil, false
	}
	//
	return ce, true
}

func inScope(ce *CounterExample, variables []string) bool {
	if len(variables) == 0 {
		return true
	}
	//
	for _, binding := range ce.Bindings {
		if binding.Role == RoleBound {
			continue
		}
		//
		known := false
		//
		for _, name := range variables {
			if name == binding.Name {
				known = true
				break
			}
		}
		//
		if !known {
			return false
		}
	}
	//
	return true
}

// synthesize derives witness bindings for a parsed constraint, appending
// them (and the trace of their derivation) to the counter-example.
func synthesize(parsed ParsedConstraint, ce *CounterExample) bool {
	switch p := parsed.(type) {
	case Comparison:
		return synthesizeComparison(p, ce)
	case And:
		return synthesizeConjunction(p, ce)
	case Or:
		// A violated disjunction requires every disjunct to fail; the
		// witness is derived from the left disjunct alone, which is
		// sound whenever the disjuncts share their variable.
		ce.step(render(p.Left), "violating the left disjunct")
		return synthesize(p.Left, ce)
	case Not:
		return synthesizeNegation(p, ce)
	case FuncCall:
		return synthesizeCall(p, ce)
	}
	//
	return false
}

func synthesizeComparison(cmp Comparison, ce *CounterExample) bool {
	cmp, ok := normalizeComparison(cmp)
	if !ok {
		return false
	}
	// boolean comparisons admit exactly two candidate witnesses
	if cmp.Right == "true" || cmp.Right == "false" {
		truth := cmp.Right == "true"
		witness := !truth
		//
		if cmp.Op == "!=" {
			witness = truth
		}
		//
		ce.bind(cmp.Left, BoolValue{witness}, RoleInput)
		ce.explain("%s = %t falsifies \"%s\"", cmp.Left, witness, ce.Constraint)
		//
		return true
	}
	//
	bound, err := strconv.ParseInt(cmp.Right, 10, 64)
	if err != nil {
		return false
	}
	//
	witness := FindViolatingInt(cmp.Op, bound)
	ce.bind(cmp.Left, IntValue{witness}, RoleInput)
	ce.bind("bound", IntValue{bound}, RoleBound)
	ce.step(fmt.Sprintf("%s %s %d", cmp.Left, cmp.Op, bound), fmt.Sprintf("false with %s = %d", cmp.Left, witness))
	ce.explain("%s = %d falsifies \"%s\"", cmp.Left, witness, ce.Constraint)
	//
	return true
}

// synthesizeConjunction handles "lo <= x and x <= hi" style ranges over a
// shared variable by stepping just outside the feasible interval.  Mixed
// conjunctions fall back to violating the left conjunct.
func synthesizeConjunction(conj And, ce *CounterExample) bool {
	left, leftOk := asNormalized(conj.Left)
	right, rightOk := asNormalized(conj.Right)
	//
	if !leftOk || !rightOk || left.Left != right.Left {
		ce.step(render(conj.Left), "violating the left conjunct")
		return synthesize(conj.Left, ce)
	}
	//
	lo, hasLo := lowerBoundOf(left)
	hi, hasHi := upperBoundOf(left)
	//
	if b, ok := lowerBoundOf(right); ok && (!hasLo || b > lo) {
		lo, hasLo = b, true
	}
	//
	if b, ok := upperBoundOf(right); ok && (!hasHi || b < hi) {
		hi, hasHi = b, true
	}
	//
	var witness int64
	//
	switch {
	case hasLo:
		witness = lo - 1
		ce.step(fmt.Sprintf("%s in [%d, ...]", left.Left, lo), fmt.Sprintf("stepping below to %d", witness))
	case hasHi:
		witness = hi + 1
		ce.step(fmt.Sprintf("%s in [..., %d]", left.Left, hi), fmt.Sprintf("stepping above to %d", witness))
	default:
		ce.step(render(conj.Left), "violating the left conjunct")
		return synthesize(conj.Left, ce)
	}
	//
	ce.bind(left.Left, IntValue{witness}, RoleInput)
	ce.explain("%s = %d falsifies \"%s\"", left.Left, witness, ce.Constraint)
	//
	return true
}

// synthesizeNegation handles "not(...)": violating the negation means
// satisfying the inner comparison.
func synthesizeNegation(neg Not, ce *CounterExample) bool {
	cmp, ok := asNormalized(neg.Inner)
	if !ok {
		return false
	}
	//
	bound, err := strconv.ParseInt(cmp.Right, 10, 64)
	if err != nil {
		return false
	}
	//
	witness := FindSatisfyingInt(cmp.Op, bound)
	ce.bind(cmp.Left, IntValue{witness}, RoleInput)
	ce.step(fmt.Sprintf("%s %s %d", cmp.Left, cmp.Op, bound), fmt.Sprintf("true with %s = %d", cmp.Left, witness))
	ce.explain("%s = %d satisfies the negated body of \"%s\"", cmp.Left, witness, ce.Constraint)
	//
	return true
}

// synthesizeCall handles "len(arg) ⊳ v" by materialising a string of a
// violating length, clamped to zero since no shorter string exists.
func synthesizeCall(call FuncCall, ce *CounterExample) bool {
	if call.Name != "len" {
		return false
	}
	//
	bound, err := strconv.ParseInt(call.Value, 10, 64)
	if err != nil {
		return false
	}
	//
	length := FindViolatingInt(call.Op, bound)
	if length < 0 {
		length = 0
	}
	//
	witness := strings.Repeat("a", int(length))
	ce.bind(call.Arg, StringValue{witness}, RoleInput)
	ce.step(fmt.Sprintf("len(%s) %s %d", call.Arg, call.Op, bound), fmt.Sprintf("false with len = %d", length))
	ce.explain("%s of length %d falsifies \"%s\"", call.Arg, length, ce.Constraint)
	//
	return true
}

// FindViolatingInt returns an integer falsifying "x op bound", chosen at the
// nearest boundary.
func FindViolatingInt(op string, bound int64) int64 {
	switch op {
	case ">":
		return bound
	case ">=":
		return bound - 1
	case "<":
		return bound
	case "<=":
		return bound + 1
	case "=", "==":
		return bound + 1
	case "!=":
		return bound
	}
	//
	return bound
}

// FindSatisfyingInt returns an integer satisfying "x op bound", chosen at
// the nearest boundary.
func FindSatisfyingInt(op string, bound int64) int64 {
	switch op {
	case ">":
		return bound + 1
	case ">=":
		return bound
	case "<":
		return bound - 1
	case "<=":
		return bound
	case "=", "==":
		return bound
	case "!=":
		return bound + 1
	}
	//
	return bound
}

// FlipOp mirrors a comparison operator, so that "c op x" becomes
// "x FlipOp(op) c".
func FlipOp(op string) string {
	switch op {
	case "<":
		return ">"
	case "<=":
		return ">="
	case ">":
		return "<"
	case ">=":
		return "<="
	}
	// equality and disequality are symmetric
	return op
}

// normalizeComparison rewrites a literal-on-the-left comparison into
// variable-on-the-left form.
func normalizeComparison(cmp Comparison) (Comparison, bool) {
	if !isLiteral(cmp.Left) {
		return cmp, true
	}
	//
	if isLiteral(cmp.Right) {
		return cmp, false
	}
	//
	return Comparison{cmp.Right, FlipOp(cmp.Op), cmp.Left}, true
}

func asNormalized(parsed ParsedConstraint) (Comparison, bool) {
	cmp, ok := parsed.(Comparison)
	if !ok {
		return Comparison{}, false
	}
	//
	return normalizeComparison(cmp)
}

// lowerBoundOf extracts the inclusive lower bound implied by a comparison,
// if any.
func lowerBoundOf(cmp Comparison) (int64, bool) {
	bound, err := strconv.ParseInt(cmp.Right, 10, 64)
	if err != nil {
		return 0, false
	}
	//
	switch cmp.Op {
	case ">":
		return bound + 1, true
	case ">=":
		return bound, true
	case "=", "==":
		return bound, true
	}
	//
	return 0, false
}

// upperBoundOf extracts the inclusive upper bound implied by a comparison,
// if any.
func upperBoundOf(cmp Comparison) (int64, bool) {
	bound, err := strconv.ParseInt(cmp.Right, 10, 64)
	if err != nil {
		return 0, false
	}
	//
	switch cmp.Op {
	case "<":
		return bound - 1, true
	case "<=":
		return bound, true
	case "=", "==":
		return bound, true
	}
	//
	return 0, false
}

func isLiteral(text string) bool {
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return true
	}
	//
	return text == "true" || text == "false"
}

// render reconstructs the textual form of a parsed constraint.
func render(parsed ParsedConstraint) string {
	switch p := parsed.(type) {
	case Comparison:
		return fmt.Sprintf("%s %s %s", p.Left, p.Op, p.Right)
	case And:
		return fmt.Sprintf("%s and %s", render(p.Left), render(p.Right))
	case Or:
		return fmt.Sprintf("%s or %s", render(p.Left), render(p.Right))
	case Not:
		return fmt.Sprintf("not(%s)", render(p.Inner))
	case FuncCall:
		return fmt.Sprintf("%s(%s) %s %s", p.Name, p.Arg, p.Op, p.Value)
	}
	//
	return "?"
}

func (ce *CounterExample) bind(name string, value ConcreteValue, role Role) {
	ce.Bindings = append(ce.Bindings, Binding{name, value, role})
}

func (ce *CounterExample) step(expression string, outcome string) {
	ce.Trace = append(ce.Trace, EvalStep{expression, outcome})
}

func (ce *CounterExample) explain(format string, args ...any) {
	ce.Explanation = fmt.Sprintf(format, args...)
}

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

// Package counterexample inverts violated constraints into concrete witness
// values, for explaining verification failures back to the user.  It
// operates on the textual form of a constraint through its own restricted
// grammar, independently of the constraint representation used by the
// solvers: the witnesses exist purely for diagnostics, and the grammar
// deliberately rejects anything it cannot reason about cleanly.
package counterexample

import (
	"strings"
)

// ParsedConstraint is the synthesizer's own view of a constraint.  Parsed
// constraints form a closed union: Comparison, And, Or, Not and FuncCall.
type ParsedConstraint interface {
	isParsed()
}

// Comparison is a plain two-operand comparison, e.g. "x > 0".
type Comparison struct {
	Left  string
	Op    string
	Right string
}

// And is a top-level conjunction of two constraints.
type And struct {
	Left  ParsedConstraint
	Right ParsedConstraint
}

// Or is a top-level disjunction of two constraints.
type Or struct {
	Left  ParsedConstraint
	Right ParsedConstraint
}

// Not is a negated constraint, written "not(...)".
type Not struct {
	Inner ParsedConstraint
}

// FuncCall is a function-call comparison of the shape "name(arg) ⊳ value",
// e.g. "len(s) > 3".
type FuncCall struct {
	Name  string
	Arg   string
	Op    string
	Value string
}

func (c Comparison) isParsed() {}
func (c And) isParsed()        {}
func (c Or) isParsed()         {}
func (c Not) isParsed()        {}
func (c FuncCall) isParsed()   {}

// comparison operators, longest first so that "<=" wins over "<"
var comparisonOps = []string{"<=", ">=", "==", "!=", "<", ">", "="}

// ParseSimpleConstraint parses a textual constraint through the restricted
// grammar: top-level "and"/"or" splits, a "not(...)" prefix, function-call
// comparisons, and plain two-operand comparisons.  Anything else — in
// particular arithmetic on the left-hand side — yields false, which callers
// must treat as "cannot synthesize, skip" rather than as an error.
func ParseSimpleConstraint(text string) (ParsedConstraint, bool) {
	text = strings.TrimSpace(text)
	//
	if text == "" {
		return nil, false
	}
	// strip redundant outer parentheses
	for balanced(text) {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	// disjunction binds loosest
	if left, right, ok := splitTopLevel(text, " or "); ok {
		return parsePair(left, right, true)
	}
	//
	if left, right, ok := splitTopLevel(text, " and "); ok {
		return parsePair(left, right, false)
	}
	// "not(...)" wrapping
	if inner, ok := strings.CutPrefix(text, "not("); ok && strings.HasSuffix(inner, ")") {
		candidate := inner[:len(inner)-1]
		//
		if depthOf(candidate) == 0 {
			parsed, ok := ParseSimpleConstraint(candidate)
			if !ok {
				return nil, false
			}
			//
			return Not{parsed}, true
		}
	}
	//
	return parseComparison(text)
}

func parsePair(left string, right string, disjunct bool) (ParsedConstraint, bool) {
	lhs, ok := ParseSimpleConstraint(left)
	if !ok {
		return nil, false
	}
	//
	rhs, ok := ParseSimpleConstraint(right)
	if !ok {
		return nil, false
	}
	//
	if disjunct {
		return Or{lhs, rhs}, true
	}
	//
	return And{lhs, rhs}, true
}

func parseComparison(text string) (ParsedConstraint, bool) {
	for _, op := range comparisonOps {
		index := indexTopLevel(text, op)
		//
		if index < 0 {
			continue
		}
		// avoid matching "=" inside "<=", ">=", "==", "!="
		if op == "=" && index > 0 && strings.ContainsAny(text[index-1:index], "<>=!") {
			continue
		}
		//
		var (
			left  = strings.TrimSpace(text[:index])
			right = strings.TrimSpace(text[index+len(op):])
		)
		//
		if left == "" || right == "" {
			return nil, false
		}
		// function-call comparisons are the one bracketed form allowed
		if name, arg, ok := parseCall(left); ok {
			return FuncCall{name, arg, op, right}, true
		}
		// arithmetic left-hand sides are beyond this grammar
		if strings.ContainsAny(left, "+-*/%()") || strings.ContainsAny(right, "+*/%()") {
			return nil, false
		}
		//
		return Comparison{left, op, right}, true
	}
	//
	return nil, false
}

// parseCall recognises "name(arg)" with a single unparenthesised argument.
func parseCall(text string) (string, string, bool) {
	open := strings.IndexByte(text, '(')
	//
	if open <= 0 || !strings.HasSuffix(text, ")") {
		return "", "", false
	}
	//
	var (
		name = strings.TrimSpace(text[:open])
		arg  = strings.TrimSpace(text[open+1 : len(text)-1])
	)
	//
	if name == "" || arg == "" || strings.ContainsAny(arg, "()") {
		return "", "", false
	}
	//
	return name, arg, true
}

// splitTopLevel splits at the first occurrence of a separator which sits
// outside any parenthesis nesting.
func splitTopLevel(text string, separator string) (string, string, bool) {
	depth := 0
	//
	for i := 0; i+len(separator) <= len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		//
		if depth == 0 && text[i:i+len(separator)] == separator {
			return text[:i], text[i+len(separator):], true
		}
	}
	//
	return "", "", false
}

// indexTopLevel locates the first occurrence of an operator outside any
// parenthesis nesting, or -1.
func indexTopLevel(text string, op string) int {
	depth := 0
	//
	for i := 0; i+len(op) <= len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		//
		if depth == 0 && text[i:i+len(op)] == op {
			return i
		}
	}
	//
	return -1
}

// balanced reports whether the text is wrapped in a single matching pair of
// outer parentheses.
func balanced(text string) bool {
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return false
	}
	//
	depth := 0
	//
	for i := 0; i < len(text)-1; i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		//
		if depth == 0 {
			return false
		}
	}
	//
	return true
}

func depthOf(text string) int {
	depth := 0
	//
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	//
	return depth
}

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
	"math/big"
	"strconv"
)

// Status is the outcome of a satisfiability check.  Timeout arises only from
// external solver processes; the built-in procedure never times out.
type Status int

const (
	// StatusSat indicates a satisfying assignment exists.
	StatusSat Status = iota
	// StatusUnsat indicates the assertions are contradictory.
	StatusUnsat
	// StatusUnknown indicates the solver could not decide.
	StatusUnknown
	// StatusTimeout indicates an external solver ran out of time.
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusSat:
		return "sat"
	case StatusUnsat:
		return "unsat"
	case StatusUnknown:
		return "unknown"
	case StatusTimeout:
		return "timeout"
	default:
		panic(fmt.Sprintf("unknown status: %d", s))
	}
}

// Result bundles the outcome of a satisfiability check with an optional
// model (on sat, when requested) and an optional reason (on unknown).
type Result struct {
	Status Status
	// Model is a witness assignment; only present for StatusSat, and only
	// when a model was requested.
	Model Model
	// Reason explains an unknown outcome.
	Reason string
}

// SatWith constructs a sat result carrying a witness model.
func SatWith(model Model) Result {
	return Result{StatusSat, model, ""}
}

// Unsat constructs an unsat result.
func Unsat() Result {
	return Result{Status: StatusUnsat}
}

// Unknown constructs an unknown result with a reason.
func Unknown(reason string) Result {
	return Result{Status: StatusUnknown, Reason: reason}
}

// ===================================================================
// Models
// ===================================================================

// Value is a concrete value assigned to a variable within a model.  Values
// form a closed union: IntValue, RealValue, BoolValue and StringValue.
type Value interface {
	isValue()
	String() string
}

// IntValue wraps an integer witness.
type IntValue struct {
	Value big.Int
}

// RealValue wraps a real witness.
type RealValue struct {
	Value float64
}

// BoolValue wraps a boolean witness.
type BoolValue struct {
	Value bool
}

// StringValue wraps a string witness.
type StringValue struct {
	Value string
}

func (v IntValue) isValue()    {}
func (v RealValue) isValue()   {}
func (v BoolValue) isValue()   {}
func (v StringValue) isValue() {}

func (v IntValue) String() string { return v.Value.String() }

func (v RealValue) String() string { return strconv.FormatFloat(v.Value, 'f', -1, 64) }

func (v BoolValue) String() string {
	if v.Value {
		return "true"
	}
	//
	return "false"
}

func (v StringValue) String() string { return fmt.Sprintf("%q", v.Value) }

// Model is a variable-assignment witness returned on sat.
type Model map[string]Value

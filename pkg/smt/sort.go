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
)

// Sort represents the type of a solver expression.  Sorts form a closed
// union: Bool, Int, Real, String, BitVec, Array and Uninterpreted.
type Sort interface {
	isSort()
	// String renders this sort in SMT-LIB2 concrete syntax.
	String() string
}

// BoolSort is the sort of booleans.
type BoolSort struct{}

// IntSort is the sort of unbounded integers.
type IntSort struct{}

// RealSort is the sort of reals, onto which surface floats are mapped.
type RealSort struct{}

// StringSort is the sort of strings.
type StringSort struct{}

// BitVecSort is the sort of fixed-width bit-vectors.
type BitVecSort struct {
	Width uint
}

// ArraySort is the sort of functional arrays.
type ArraySort struct {
	Key   Sort
	Value Sort
}

// UninterpretedSort is a named sort with no fixed interpretation.
type UninterpretedSort struct {
	Name string
}

func (s BoolSort) isSort()          {}
func (s IntSort) isSort()           {}
func (s RealSort) isSort()          {}
func (s StringSort) isSort()        {}
func (s BitVecSort) isSort()        {}
func (s ArraySort) isSort()         {}
func (s UninterpretedSort) isSort() {}

func (s BoolSort) String() string { return "Bool" }

func (s IntSort) String() string { return "Int" }

func (s RealSort) String() string { return "Real" }

func (s StringSort) String() string { return "String" }

func (s BitVecSort) String() string { return fmt.Sprintf("(_ BitVec %d)", s.Width) }

func (s ArraySort) String() string {
	return fmt.Sprintf("(Array %s %s)", s.Key, s.Value)
}

func (s UninterpretedSort) String() string { return s.Name }

// Theory identifies a fragment of first-order logic which a solver may or
// may not be able to decide.
type Theory int

const (
	// QF_LIA is quantifier-free linear integer arithmetic.
	QF_LIA Theory = iota
	// QF_LRA is quantifier-free linear real arithmetic.
	QF_LRA
	// QF_BV is quantifier-free fixed-width bit-vectors.
	QF_BV
	// QF_AX is quantifier-free arrays with extensionality.
	QF_AX
	// QF_NIA is quantifier-free nonlinear integer arithmetic.
	QF_NIA
	// LIA is linear integer arithmetic with quantifiers.
	LIA
	// Arrays is the full theory of arrays.
	Arrays
	// Strings is the theory of strings.
	Strings
)

func (t Theory) String() string {
	switch t {
	case QF_LIA:
		return "QF_LIA"
	case QF_LRA:
		return "QF_LRA"
	case QF_BV:
		return "QF_BV"
	case QF_AX:
		return "QF_AX"
	case QF_NIA:
		return "QF_NIA"
	case LIA:
		return "LIA"
	case Arrays:
		return "Arrays"
	case Strings:
		return "Strings"
	default:
		panic(fmt.Sprintf("unknown theory: %d", t))
	}
}

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
package math

import (
	"math/big"
)

const finite = 0
const negativeInfinity = 1
const positiveInfinity = 2

// PosInf represents positive infinity.
var PosInf = Bound{big.Int{}, positiveInfinity}

// NegInf represents negative infinity.
var NegInf = Bound{big.Int{}, negativeInfinity}

// Bound represents an unbounded (i.e. big) integer value which can,
// additionally, be either negative or positive infinity.  Bounds are the
// endpoints of intervals used during range analysis of constraint variables.
type Bound struct {
	// value of this bound, ignored when this is an infinity.
	val big.Int
	// sign indicates whether this is finite, negative infinity or positive
	// infinity.
	sign uint8
}

// NewBound constructs a finite bound from a big integer.  Observe this clones
// the underlying big integer.
func NewBound(val big.Int) Bound {
	var v big.Int
	//
	v.Set(&val)
	//
	return Bound{v, finite}
}

// NewBound64 constructs a finite bound from a machine integer.
func NewBound64(val int64) Bound {
	return NewBound(*big.NewInt(val))
}

// IsFinite determines whether this bound is a finite integer value.
func (p Bound) IsFinite() bool {
	return p.sign == finite
}

// Value returns the finite value of this bound.  This will panic if the bound
// is an infinity.
func (p Bound) Value() big.Int {
	if p.sign != finite {
		panic("cannot take value of infinite bound")
	}
	//
	return p.val
}

// Cmp performs a comparison of two (potentially infinite) bounds.
func (p Bound) Cmp(o Bound) int {
	switch {
	case p.sign == finite && o.sign == finite:
		return p.val.Cmp(&o.val)
	case p.sign == o.sign:
		return 0
	case p.sign == negativeInfinity || o.sign == positiveInfinity:
		return -1
	default:
		return 1
	}
}

// CmpInt compares a (potentially infinite) bound against a finite integer.
func (p Bound) CmpInt(other big.Int) int {
	switch p.sign {
	case finite:
		return p.val.Cmp(&other)
	case negativeInfinity:
		return -1
	default:
		return 1
	}
}

// Add a finite offset to this bound.  Infinities absorb any finite offset.
func (p Bound) Add(offset big.Int) Bound {
	if p.sign != finite {
		return p
	}
	//
	var val big.Int
	//
	val.Add(&p.val, &offset)
	//
	return Bound{val, finite}
}

// Add64 adds a machine-integer offset to this bound.
func (p Bound) Add64(offset int64) Bound {
	return p.Add(*big.NewInt(offset))
}

// Negate this (potentially infinite) bound.
func (p Bound) Negate() Bound {
	switch p.sign {
	case positiveInfinity:
		return NegInf
	case negativeInfinity:
		return PosInf
	default:
		var val big.Int
		//
		val.Neg(&p.val)
		//
		return Bound{val, finite}
	}
}

// Min determines the least of two bounds.
func (p Bound) Min(o Bound) Bound {
	if p.Cmp(o) <= 0 {
		return p
	}
	//
	return o
}

// Max determines the greatest of two bounds.
func (p Bound) Max(o Bound) Bound {
	if p.Cmp(o) >= 0 {
		return p
	}
	//
	return o
}

func (p Bound) String() string {
	switch p.sign {
	case negativeInfinity:
		return "-∞"
	case positiveInfinity:
		return "+∞"
	default:
		return p.val.String()
	}
}

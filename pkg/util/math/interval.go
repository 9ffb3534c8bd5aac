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
	"fmt"
	"math/big"
)

// TOP represents the interval which encloses all other intervals.
var TOP Interval = Interval{NegInf, PosInf, false}

// EMPTY represents the interval containing no values at all.  This arises when
// contradictory facts are intersected, e.g. x ≥ 10 with x ≤ 5.
var EMPTY Interval = Interval{PosInf, NegInf, true}

// Interval provides a discrete range of integers, such as 0..1, 1..18, etc,
// where either endpoint may be infinite.  An interval approximates the
// possible values that a given constraint variable can take, with the empty
// interval signalling that no value satisfies the facts seen so far.  For more
// information on this system, see the following paper:
//
// Integer Range Analysis for Whiley on Embedded Systems, David J. Pearce.  In
// Proceedings of the IEEE/IFIP Workshop on Software Technologies for Future
// Embedded and Ubiquitous Systems (SEUS), pages 26--33, 2015.
type Interval struct {
	lower Bound
	upper Bound
	empty bool
}

// NewInterval creates an interval representing a given (inclusive) range.  A
// range whose lower bound exceeds its upper bound is the empty interval.
func NewInterval(lower Bound, upper Bound) Interval {
	if lower.Cmp(upper) > 0 {
		return EMPTY
	}
	//
	return Interval{lower, upper, false}
}

// NewInterval64 creates an interval representing a given (inclusive) range.
func NewInterval64(lower int64, upper int64) Interval {
	return NewInterval(NewBound64(lower), NewBound64(upper))
}

// AtLeast creates the interval lower..+∞.
func AtLeast(lower big.Int) Interval {
	return Interval{NewBound(lower), PosInf, false}
}

// AtMost creates the interval -∞..upper.
func AtMost(upper big.Int) Interval {
	return Interval{NegInf, NewBound(upper), false}
}

// Exactly creates the singleton interval value..value.
func Exactly(value big.Int) Interval {
	return Interval{NewBound(value), NewBound(value), false}
}

// IsEmpty determines whether this interval contains no values at all.
func (p Interval) IsEmpty() bool {
	return p.empty
}

// IsFinite determines whether both endpoints of this interval are finite.
func (p Interval) IsFinite() bool {
	return !p.empty && p.lower.IsFinite() && p.upper.IsFinite()
}

// LowerBound returns the lower endpoint of this interval.  This will panic if
// the interval is empty.
func (p Interval) LowerBound() Bound {
	if p.empty {
		panic("empty interval has no lower bound")
	}
	//
	return p.lower
}

// UpperBound returns the upper endpoint of this interval.  This will panic if
// the interval is empty.
func (p Interval) UpperBound() Bound {
	if p.empty {
		panic("empty interval has no upper bound")
	}
	//
	return p.upper
}

// Contains checks whether a given value lies within this interval.
func (p Interval) Contains(value big.Int) bool {
	return !p.empty && p.lower.CmpInt(value) <= 0 && p.upper.CmpInt(value) >= 0
}

// Intersect computes the intersection of two intervals, which is the interval
// containing exactly those values contained in both.
func (p Interval) Intersect(o Interval) Interval {
	if p.empty || o.empty {
		return EMPTY
	}
	//
	return NewInterval(p.lower.Max(o.lower), p.upper.Min(o.upper))
}

// Shift translates this interval by a finite offset.
func (p Interval) Shift(offset big.Int) Interval {
	if p.empty {
		return EMPTY
	}
	//
	return Interval{p.lower.Add(offset), p.upper.Add(offset), false}
}

// Count determines the number of integer values contained in this interval,
// returning false if the interval is not finite.
func (p Interval) Count() (big.Int, bool) {
	var count big.Int
	//
	if p.empty {
		return count, true
	} else if !p.IsFinite() {
		return count, false
	}
	//
	lo, hi := p.lower.Value(), p.upper.Value()
	count.Sub(&hi, &lo)
	count.Add(&count, big.NewInt(1))
	//
	return count, true
}

func (p Interval) String() string {
	if p.empty {
		return "∅"
	}
	//
	return fmt.Sprintf("%s..%s", p.lower.String(), p.upper.String())
}

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
	"math/big"
	"sort"
	"strings"

	"github.com/cella-lang/go-cella/pkg/util/math"
)

// SatResult is the tri-state outcome of a satisfiability check.  Unknown is
// returned, never guessed around, whenever the procedure cannot decide.
type SatResult int

const (
	// Sat indicates the asserted constraints have a satisfying assignment.
	Sat SatResult = iota
	// Unsat indicates the asserted constraints are contradictory.
	Unsat
	// Unknown indicates the procedure could not decide either way.
	Unknown
)

func (r SatResult) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	case Unknown:
		return "unknown"
	default:
		panic(fmt.Sprintf("unknown sat result: %d", r))
	}
}

// ToySolver is a deliberately narrow substitution/implication checker
// operating directly on constraints.  Conjunctions of comparisons on the same
// variable are reduced to an effective interval, with equality and
// non-equality facts layered on top.  It handles single- and paired-variable
// linear reasoning only; anything beyond that is reported as Unknown, with
// the solver abstraction acting as the general fallback.
type ToySolver struct {
	asserted []Constraint
}

// NewToySolver constructs an empty solver.
func NewToySolver() *ToySolver {
	return &ToySolver{}
}

// Assert adds a constraint to the set under consideration.
func (p *ToySolver) Assert(c Constraint) {
	p.asserted = append(p.asserted, c)
}

// Reset returns the solver to its just-constructed state.
func (p *ToySolver) Reset() {
	p.asserted = nil
}

// CheckSat determines whether the asserted constraints, taken together, have
// a satisfying assignment.
func (p *ToySolver) CheckSat() SatResult {
	return checkConjunction(p.asserted)
}

// CheckImplication determines whether a premise implies a conclusion.  The
// implication is valid exactly when "premise ∧ ¬conclusion" is unsatisfiable,
// and the result of that satisfiability check is returned: Unsat means the
// implication holds, Sat means a counter-assignment exists.
func (p *ToySolver) CheckImplication(premise Constraint, conclusion Constraint) SatResult {
	return checkConjunction([]Constraint{premise, Negate(conclusion)})
}

// ===================================================================
// Decision procedure
// ===================================================================

// intState accumulates the facts asserted about a single integer variable.
type intState struct {
	interval math.Interval
	excluded []int64
	// constrained records that at least one interval or exclusion fact has
	// been asserted for this variable.
	constrained bool
	// paired records that this variable also occurs in a two-variable
	// comparison, in which case interval reasoning alone is incomplete.
	paired bool
}

// floatState accumulates the facts asserted about a single float variable.
type floatState struct {
	lo, hi             float64
	loStrict, hiStrict bool
	hasLo, hasHi       bool
	excluded           []float64
}

// relation bit-set over {<, =, >}, used for two-variable comparisons.
const (
	relLt uint = 1
	relEq uint = 2
	relGt uint = 4
)

func relOf(op CmpOp) uint {
	switch op {
	case CmpGt:
		return relGt
	case CmpLt:
		return relLt
	case CmpGtEq:
		return relGt | relEq
	case CmpLtEq:
		return relLt | relEq
	case CmpEq:
		return relEq
	default:
		return relLt | relGt
	}
}

type conjunction struct {
	ints       map[string]*intState
	floats     map[string]*floatState
	bools      map[string]bool
	pairs      map[string]uint
	incomplete bool
}

func checkConjunction(constraints []Constraint) SatResult {
	state := &conjunction{
		ints:   make(map[string]*intState),
		floats: make(map[string]*floatState),
		bools:  make(map[string]bool),
		pairs:  make(map[string]uint),
	}
	//
	for _, c := range constraints {
		if !state.assimilate(c) {
			return Unsat
		}
	}
	//
	return state.conclude()
}

// assimilate merges one constraint into the accumulated per-variable state,
// returning false on an outright contradiction.
func (p *conjunction) assimilate(c Constraint) bool {
	switch c := c.(type) {
	case BoolConst:
		return c.Value
	case And:
		for _, o := range c.Operands {
			if !p.assimilate(o) {
				return false
			}
		}
		//
		return true
	case Not:
		if v, ok := c.Operand.(BoolVar); ok {
			return p.assignBool(v.Name, false)
		}
		// Push the negation through and retry.
		return p.assimilate(Negate(c.Operand))
	case BoolVar:
		return p.assignBool(c.Name, true)
	case IntComparison:
		return p.narrowInt(c.Var, c.Op, c.Value)
	case Arithmetic:
		return p.narrowArith(c)
	case FloatComparison:
		return p.narrowFloat(c.Var, c.Op, c.Value)
	case VarComparison:
		return p.narrowPair(c)
	case EffectBudget:
		return c.ActualCalls <= c.MaxCalls
	default:
		// disjunctions and anything else are beyond this solver
		p.incomplete = true
		//
		return true
	}
}

func (p *conjunction) assignBool(name string, value bool) bool {
	if prev, ok := p.bools[name]; ok {
		return prev == value
	}
	//
	p.bools[name] = value
	//
	return true
}

func (p *conjunction) intStateOf(name string) *intState {
	state, ok := p.ints[name]
	//
	if !ok {
		state = &intState{interval: math.TOP}
		p.ints[name] = state
	}
	//
	return state
}

func (p *conjunction) narrowInt(name string, op CmpOp, value int64) bool {
	state := p.intStateOf(name)
	state.constrained = true
	//
	switch op {
	case CmpGt:
		state.interval = state.interval.Intersect(math.AtLeast(*big.NewInt(value + 1)))
	case CmpGtEq:
		state.interval = state.interval.Intersect(math.AtLeast(*big.NewInt(value)))
	case CmpLt:
		state.interval = state.interval.Intersect(math.AtMost(*big.NewInt(value - 1)))
	case CmpLtEq:
		state.interval = state.interval.Intersect(math.AtMost(*big.NewInt(value)))
	case CmpEq:
		state.interval = state.interval.Intersect(math.Exactly(*big.NewInt(value)))
	case CmpNotEq:
		state.excluded = append(state.excluded, value)
	}
	//
	return true
}

// narrowArith inverts a linear constraint "(x ⊕ k) ⊳ v" into a direct bound
// on x where the operator permits.  Division and modulus are not inverted.
func (p *conjunction) narrowArith(c Arithmetic) bool {
	op, k, v := c.CmpOp, c.ArithConst, c.CmpValue
	//
	switch c.ArithOp {
	case OpAdd:
		return p.narrowInt(c.Var, op, v-k)
	case OpSub:
		return p.narrowInt(c.Var, op, v+k)
	case OpMul:
		return p.narrowMul(c.Var, op, k, v)
	default:
		p.incomplete = true
		//
		return true
	}
}

func (p *conjunction) narrowMul(name string, op CmpOp, k int64, v int64) bool {
	if k == 0 {
		// "(x * 0) ⊳ v" is just "0 ⊳ v"
		return op.HoldsInt(0, v)
	} else if k < 0 {
		// flip through a sign change: x*k ⊳ v becomes x*(-k) ⊳' (-v)
		return p.narrowMul(name, op.Flip(), -k, -v)
	}
	//
	switch op {
	case CmpGt:
		return p.narrowInt(name, CmpGtEq, floorDiv(v, k)+1)
	case CmpGtEq:
		return p.narrowInt(name, CmpGtEq, ceilDiv(v, k))
	case CmpLt:
		return p.narrowInt(name, CmpLtEq, ceilDiv(v, k)-1)
	case CmpLtEq:
		return p.narrowInt(name, CmpLtEq, floorDiv(v, k))
	case CmpEq:
		if v%k != 0 {
			return false
		}
		//
		return p.narrowInt(name, CmpEq, v/k)
	default:
		if v%k == 0 {
			return p.narrowInt(name, CmpNotEq, v/k)
		}
		// x*k can never equal v anyway
		return true
	}
}

func (p *conjunction) narrowFloat(name string, op CmpOp, value float64) bool {
	state, ok := p.floats[name]
	//
	if !ok {
		state = &floatState{}
		p.floats[name] = state
	}
	//
	switch op {
	case CmpGt, CmpGtEq:
		if !state.hasLo || value > state.lo {
			state.lo, state.loStrict = value, op == CmpGt
		} else if value == state.lo && op == CmpGt {
			state.loStrict = true
		}
		//
		state.hasLo = true
	case CmpLt, CmpLtEq:
		if !state.hasHi || value < state.hi {
			state.hi, state.hiStrict = value, op == CmpLt
		} else if value == state.hi && op == CmpLt {
			state.hiStrict = true
		}
		//
		state.hasHi = true
	case CmpEq:
		return p.narrowFloat(name, CmpGtEq, value) && p.narrowFloat(name, CmpLtEq, value)
	case CmpNotEq:
		state.excluded = append(state.excluded, value)
	}
	//
	return true
}

func (p *conjunction) narrowPair(c VarComparison) bool {
	if c.Left == c.Right {
		// e.g. x < x is immediately false
		return c.Op.HoldsInt(0, 0)
	}
	//
	left, op, right := c.Left, c.Op, c.Right
	// canonicalise so the lesser name is always on the left
	if left > right {
		left, right, op = right, left, op.Flip()
	}
	//
	key := left + "\x00" + right
	//
	rels, ok := p.pairs[key]
	if !ok {
		rels = relLt | relEq | relGt
	}
	//
	p.pairs[key] = rels & relOf(op)
	// Interval facts about a paired variable interact with the pair in ways
	// this solver does not track.
	p.intStateOf(left).paired = true
	p.intStateOf(right).paired = true
	//
	return p.pairs[key] != 0
}

// invertRel flips a relation bit-set to the opposite orientation.
func invertRel(rels uint) uint {
	inverted := rels & relEq
	//
	if rels&relLt != 0 {
		inverted |= relGt
	}
	//
	if rels&relGt != 0 {
		inverted |= relLt
	}
	//
	return inverted
}

// composeRel returns the relations possible between u and w, given relation
// bit-sets between u,v and between v,w.
func composeRel(r1 uint, r2 uint) uint {
	var composed uint
	//
	for _, b1 := range []uint{relLt, relEq, relGt} {
		for _, b2 := range []uint{relLt, relEq, relGt} {
			if r1&b1 != 0 && r2&b2 != 0 {
				composed |= composeBasic(b1, b2)
			}
		}
	}
	//
	return composed
}

func composeBasic(b1 uint, b2 uint) uint {
	switch {
	case b1 == relEq:
		return b2
	case b2 == relEq:
		return b1
	case b1 == b2:
		return b1
	default:
		// u < v > w (or the mirror image) constrains nothing
		return relLt | relEq | relGt
	}
}

// relBetween reads the relation bit-set between two variables, in the given
// orientation.  Unrelated variables yield the full set.
func (p *conjunction) relBetween(u string, v string) uint {
	if u > v {
		return invertRel(p.relBetween(v, u))
	}
	//
	if rels, ok := p.pairs[u+"\x00"+v]; ok {
		return rels
	}
	//
	return relLt | relEq | relGt
}

func (p *conjunction) setRel(u string, v string, rels uint) {
	if u > v {
		u, v, rels = v, u, invertRel(rels)
	}
	//
	p.pairs[u+"\x00"+v] = rels
}

// closePairs propagates two-variable comparisons transitively, returning
// false when a chain of orderings contradicts itself.  A chain surviving
// propagation is not thereby satisfiable, so its presence also marks the
// conjunction incomplete.
func (p *conjunction) closePairs() bool {
	vars, chained := p.pairVariables()
	//
	if !chained {
		return true
	}
	//
	p.incomplete = true
	//
	for changed := true; changed; {
		changed = false
		//
		for _, u := range vars {
			for _, v := range vars {
				if u == v {
					continue
				}
				//
				for _, w := range vars {
					if w == u || w == v {
						continue
					}
					//
					composed := composeRel(p.relBetween(u, v), p.relBetween(v, w))
					narrowed := p.relBetween(u, w) & composed
					//
					if narrowed == p.relBetween(u, w) {
						continue
					}
					//
					p.setRel(u, w, narrowed)
					//
					if narrowed == 0 {
						return false
					}
					//
					changed = true
				}
			}
		}
	}
	//
	return true
}

// pairVariables returns every variable mentioned by a two-variable
// comparison, in a deterministic order, together with whether any variable
// links two comparisons into a chain.
func (p *conjunction) pairVariables() ([]string, bool) {
	var (
		occurrences = make(map[string]int)
		chained     = false
	)
	//
	for key := range p.pairs {
		left, right, _ := strings.Cut(key, "\x00")
		occurrences[left]++
		occurrences[right]++
		//
		chained = chained || occurrences[left] > 1 || occurrences[right] > 1
	}
	//
	vars := make([]string, 0, len(occurrences))
	//
	for name := range occurrences {
		vars = append(vars, name)
	}
	//
	sort.Strings(vars)
	//
	return vars, chained
}

// conclude inspects the accumulated per-variable state for contradictions.
func (p *conjunction) conclude() SatResult {
	if !p.closePairs() {
		return Unsat
	}
	//
	for _, state := range p.ints {
		if state.interval.IsEmpty() {
			return Unsat
		} else if excludedEntirely(state.interval, state.excluded) {
			return Unsat
		}
		//
		if state.paired && state.constrained {
			// e.g. x < y together with y < 5 and x > 10: the contradiction
			// flows through the pair, which is beyond interval reasoning.
			p.incomplete = true
		}
	}
	//
	for _, state := range p.floats {
		if state.hasLo && state.hasHi {
			if state.lo > state.hi {
				return Unsat
			} else if state.lo == state.hi {
				if state.loStrict || state.hiStrict {
					return Unsat
				}
				//
				for _, v := range state.excluded {
					if v == state.lo {
						return Unsat
					}
				}
			}
		}
	}
	//
	if p.incomplete {
		return Unknown
	}
	//
	return Sat
}

// excludedEntirely checks whether every integer within an interval has been
// excluded by non-equality facts.  Enumeration is capped: larger intervals
// trivially retain at least one value.
func excludedEntirely(interval math.Interval, excluded []int64) bool {
	count, finite := interval.Count()
	//
	if !finite || count.Cmp(big.NewInt(int64(len(excluded)))) > 0 {
		return false
	}
	//
	lo := interval.LowerBound().Value()
	hi := interval.UpperBound().Value()
	//
	for v := lo.Int64(); v <= hi.Int64(); v++ {
		present := false
		//
		for _, e := range excluded {
			if e == v {
				present = true
				//
				break
			}
		}
		//
		if !present {
			return false
		}
	}
	//
	return true
}

func floorDiv(a int64, b int64) int64 {
	q := a / b
	//
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	//
	return q
}

func ceilDiv(a int64, b int64) int64 {
	q := a / b
	//
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	//
	return q
}

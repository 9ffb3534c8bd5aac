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
	"math/big"
	"slices"

	"github.com/cella-lang/go-cella/pkg/util/math"
)

// BuiltinSolver decides quantifier-free linear integer/real arithmetic by
// interval propagation: every comparison reachable through the boolean
// structure narrows a per-variable feasible range or extends a per-variable
// forbidden-value set.  Conjunction intersects ranges and unions forbidden
// sets; disjunction succeeds if any disjunct is satisfiable; negation is
// pushed through comparisons.  Quantifiers, bit-vectors, arrays and strings
// are never decided: they yield unknown.
type BuiltinSolver struct {
	// scopes is the incremental assertion stack: scopes[0] is the base
	// scope, with one further entry per unmatched Push.
	scopes [][]Expr
}

// NewBuiltinSolver constructs a solver with a single empty scope.
func NewBuiltinSolver() *BuiltinSolver {
	return &BuiltinSolver{scopes: make([][]Expr, 1)}
}

var _ Solver = (*BuiltinSolver)(nil)

// Name implementation for Solver interface.
func (p *BuiltinSolver) Name() string { return "builtin" }

// Assert implementation for Solver interface.
func (p *BuiltinSolver) Assert(assertion Expr) {
	top := len(p.scopes) - 1
	p.scopes[top] = append(p.scopes[top], assertion)
}

// Push implementation for Solver interface.
func (p *BuiltinSolver) Push() {
	p.scopes = append(p.scopes, nil)
}

// Pop implementation for Solver interface.  Popping the base scope is a
// no-op.
func (p *BuiltinSolver) Pop() {
	if len(p.scopes) > 1 {
		p.scopes = p.scopes[:len(p.scopes)-1]
	}
}

// Reset implementation for Solver interface.
func (p *BuiltinSolver) Reset() {
	p.scopes = make([][]Expr, 1)
}

// SupportsTheory implementation for Solver interface.
func (p *BuiltinSolver) SupportsTheory(theory Theory) bool {
	return theory == QF_LIA || theory == QF_LRA
}

// CheckSat implementation for Solver interface.
func (p *BuiltinSolver) CheckSat(assertions []Expr) Result {
	return solve(p.combined(assertions), false)
}

// CheckSatWithModel implementation for Solver interface.
func (p *BuiltinSolver) CheckSatWithModel(assertions []Expr) Result {
	return solve(p.combined(assertions), true)
}

func (p *BuiltinSolver) combined(assertions []Expr) []Expr {
	var combined []Expr
	//
	for _, scope := range p.scopes {
		combined = append(combined, scope...)
	}
	//
	return append(combined, assertions...)
}

// ===================================================================
// Normalisation
// ===================================================================

// nnf rewrites an expression into negation normal form: implication and iff
// are expanded, and negation is pushed down to the atoms.  Unsupported
// constructs are left in place for the conjunction analysis to report.
func nnf(e Expr, negated bool) Expr {
	switch e := e.(type) {
	case NotExpr:
		return nnf(e.Arg, !negated)
	case AndExpr:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = nnf(a, negated)
		}
		//
		if negated {
			return OrExpr{args}
		}
		//
		return AndExpr{args}
	case OrExpr:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = nnf(a, negated)
		}
		//
		if negated {
			return AndExpr{args}
		}
		//
		return OrExpr{args}
	case ImpliesExpr:
		// l => r becomes ¬l ∨ r
		return nnf(OrExpr{[]Expr{NotExpr{e.Left}, e.Right}}, negated)
	case IffExpr:
		// l = r becomes (l => r) ∧ (r => l)
		expanded := AndExpr{[]Expr{
			ImpliesExpr{e.Left, e.Right},
			ImpliesExpr{e.Right, e.Left},
		}}
		//
		return nnf(expanded, negated)
	case CmpExpr:
		if negated {
			return CmpExpr{e.Op.Negate(), e.Left, e.Right}
		}
		//
		return e
	case BoolLit:
		if negated {
			return BoolLit{!e.Value}
		}
		//
		return e
	default:
		if negated {
			return NotExpr{e}
		}
		//
		return e
	}
}

// flatten normalises a list of assertions and splices nested conjunctions
// into a single flat list.
func flatten(assertions []Expr) []Expr {
	var flat []Expr
	//
	for _, e := range assertions {
		switch e := nnf(e, false).(type) {
		case AndExpr:
			flat = append(flat, flatten(e.Args)...)
		default:
			flat = append(flat, e)
		}
	}
	//
	return flat
}

// ===================================================================
// Search
// ===================================================================

// solve determines satisfiability of a conjunction of assertions, branching
// on the first disjunction encountered.
func solve(assertions []Expr, wantModel bool) Result {
	flat := flatten(assertions)
	//
	for i, e := range flat {
		or, ok := e.(OrExpr)
		if !ok {
			continue
		}
		// branch: the disjunction holds if any disjunct does
		unknown := false
		//
		for _, disjunct := range or.Args {
			branch := slices.Clone(flat[:i])
			branch = append(branch, flat[i+1:]...)
			branch = append(branch, disjunct)
			//
			result := solve(branch, wantModel)
			//
			switch result.Status {
			case StatusSat:
				return result
			case StatusUnknown:
				unknown = true
			}
		}
		//
		if unknown {
			return Unknown("disjunct undecidable")
		}
		// an empty disjunction is false
		return Unsat()
	}
	//
	return solveConjunction(flat, wantModel)
}

// intDomain is the feasible range and forbidden-value set of an integer
// variable.
type intDomain struct {
	interval math.Interval
	// forbidden values, from non-equality facts
	excluded []*big.Int
}

// realDomain is the feasible range and forbidden-value set of a real
// variable.  Real endpoints may be open (strict).
type realDomain struct {
	lo, hi             float64
	hasLo, hasHi       bool
	loStrict, hiStrict bool
	excluded           []float64
}

type valuation struct {
	ints  map[string]*intDomain
	reals map[string]*realDomain
	bools map[string]bool
	pairs map[string]uint
	// unknown is set (with a reason) on the first unsupported construct
	unknown string
}

// relation bit-set over {<, =, >}, used for two-variable comparisons.
const (
	relLt uint = 1
	relEq uint = 2
	relGt uint = 4
)

func relOf(op RelOp) uint {
	switch op {
	case Gt:
		return relGt
	case Lt:
		return relLt
	case Ge:
		return relGt | relEq
	case Le:
		return relLt | relEq
	case Eq:
		return relEq
	default:
		return relLt | relGt
	}
}

func solveConjunction(atoms []Expr, wantModel bool) Result {
	v := &valuation{
		ints:  make(map[string]*intDomain),
		reals: make(map[string]*realDomain),
		bools: make(map[string]bool),
		pairs: make(map[string]uint),
	}
	//
	for _, atom := range atoms {
		if !v.assimilate(atom) {
			return Unsat()
		}
	}
	//
	if result, contradiction := v.conclude(); contradiction {
		return Unsat()
	} else if result.Status == StatusUnknown {
		return result
	}
	//
	if wantModel {
		return SatWith(v.model())
	}
	//
	return Result{Status: StatusSat}
}

// assimilate merges one atom into the valuation, returning false on an
// outright contradiction.
func (v *valuation) assimilate(atom Expr) bool {
	switch atom := atom.(type) {
	case BoolLit:
		return atom.Value
	case Var:
		if _, ok := atom.Sort.(BoolSort); ok {
			return v.assignBool(atom.Name, true)
		}
		//
		v.undecidable("non-boolean variable used as assertion")
		//
		return true
	case NotExpr:
		if inner, ok := atom.Arg.(Var); ok {
			if _, isBool := inner.Sort.(BoolSort); isBool {
				return v.assignBool(inner.Name, false)
			}
		}
		//
		v.undecidable("negation of unsupported construct")
		//
		return true
	case CmpExpr:
		return v.assimilateCmp(atom)
	case QuantExpr:
		v.undecidable("quantifiers not supported")
		//
		return true
	case BitVecExpr:
		v.undecidable("bit-vector operators not supported")
		//
		return true
	case SelectExpr, StoreExpr:
		v.undecidable("array operators not supported")
		//
		return true
	case AppExpr:
		v.undecidable("uninterpreted functions not supported")
		//
		return true
	default:
		v.undecidable("unsupported assertion")
		//
		return true
	}
}

func (v *valuation) assimilateCmp(cmp CmpExpr) bool {
	op, left, right := cmp.Op, cmp.Left, cmp.Right
	// normalise literal-on-the-left comparisons
	switch left.(type) {
	case IntLit, RealLit, BoolLit:
		switch right.(type) {
		case IntLit, RealLit, BoolLit:
			// constants on both sides; handled below
		default:
			left, right, op = right, left, op.Flip()
		}
	}
	//
	switch left := left.(type) {
	case Var:
		return v.assimilateVarCmp(left, op, right)
	case ArithExpr:
		return v.assimilateArithCmp(left, op, right)
	case IntLit:
		if right, ok := right.(IntLit); ok {
			return holdsBig(op, &left.Value, &right.Value)
		}
		//
		v.undecidable("mixed-sort comparison")
		//
		return true
	case RealLit:
		if right, ok := right.(RealLit); ok {
			return holdsReal(op, left.Value, right.Value)
		}
		//
		v.undecidable("mixed-sort comparison")
		//
		return true
	case BoolLit:
		if right, ok := right.(BoolLit); ok && (op == Eq || op == Ne) {
			return (left.Value == right.Value) == (op == Eq)
		}
		//
		v.undecidable("boolean comparison is not ordered")
		//
		return true
	case BitVecExpr, SelectExpr, StoreExpr, AppExpr:
		v.undecidable("comparison over unsupported theory")
		//
		return true
	default:
		v.undecidable("unsupported comparison operand")
		//
		return true
	}
}

func (v *valuation) assimilateVarCmp(left Var, op RelOp, right Expr) bool {
	switch right := right.(type) {
	case IntLit:
		return v.narrowInt(left.Name, op, &right.Value)
	case RealLit:
		return v.narrowReal(left.Name, op, right.Value)
	case BoolLit:
		if op == Eq {
			return v.assignBool(left.Name, right.Value)
		} else if op == Ne {
			return v.assignBool(left.Name, !right.Value)
		}
		//
		v.undecidable("boolean comparison is not ordered")
		//
		return true
	case Var:
		return v.narrowPair(left.Name, op, right.Name)
	default:
		v.undecidable("unsupported comparison operand")
		//
		return true
	}
}

// assimilateArithCmp inverts "(x ⊕ k) ⊳ v" into a direct bound on x where
// the operator permits.
func (v *valuation) assimilateArithCmp(left ArithExpr, op RelOp, right Expr) bool {
	bound, ok := right.(IntLit)
	if !ok || len(left.Args) != 2 {
		v.undecidable("nonlinear or mixed-sort arithmetic")
		//
		return true
	}
	//
	variable, okVar := left.Args[0].(Var)
	offset, okOff := left.Args[1].(IntLit)
	//
	if !okVar || !okOff {
		v.undecidable("multi-variable arithmetic not supported")
		//
		return true
	}
	//
	var adjusted big.Int
	//
	switch left.Op {
	case Add:
		adjusted.Sub(&bound.Value, &offset.Value)
		//
		return v.narrowInt(variable.Name, op, &adjusted)
	case Sub:
		adjusted.Add(&bound.Value, &offset.Value)
		//
		return v.narrowInt(variable.Name, op, &adjusted)
	case Mul:
		return v.narrowMul(variable.Name, op, &offset.Value, &bound.Value)
	default:
		v.undecidable("division not supported")
		//
		return true
	}
}

func (v *valuation) narrowMul(name string, op RelOp, k *big.Int, bound *big.Int) bool {
	var adjusted big.Int
	//
	switch k.Sign() {
	case 0:
		// "(x * 0) ⊳ v" is just "0 ⊳ v"
		var zero big.Int
		//
		return holdsBig(op, &zero, bound)
	case -1:
		var nk, nb big.Int
		//
		nk.Neg(k)
		nb.Neg(bound)
		//
		return v.narrowMul(name, op.Flip(), &nk, &nb)
	}
	//
	var rem big.Int
	//
	switch op {
	case Gt:
		floorDivBig(&adjusted, bound, k)
		adjusted.Add(&adjusted, big.NewInt(1))
		//
		return v.narrowInt(name, Ge, &adjusted)
	case Ge:
		ceilDivBig(&adjusted, bound, k)
		//
		return v.narrowInt(name, Ge, &adjusted)
	case Lt:
		ceilDivBig(&adjusted, bound, k)
		adjusted.Sub(&adjusted, big.NewInt(1))
		//
		return v.narrowInt(name, Le, &adjusted)
	case Le:
		floorDivBig(&adjusted, bound, k)
		//
		return v.narrowInt(name, Le, &adjusted)
	case Eq:
		adjusted.QuoRem(bound, k, &rem)
		//
		if rem.Sign() != 0 {
			return false
		}
		//
		return v.narrowInt(name, Eq, &adjusted)
	default:
		adjusted.QuoRem(bound, k, &rem)
		//
		if rem.Sign() == 0 {
			return v.narrowInt(name, Ne, &adjusted)
		}
		// x*k can never equal the bound anyway
		return true
	}
}

func (v *valuation) assignBool(name string, value bool) bool {
	if prev, ok := v.bools[name]; ok {
		return prev == value
	}
	//
	v.bools[name] = value
	//
	return true
}

func (v *valuation) intDomainOf(name string) *intDomain {
	domain, ok := v.ints[name]
	//
	if !ok {
		domain = &intDomain{interval: math.TOP}
		v.ints[name] = domain
	}
	//
	return domain
}

func (v *valuation) narrowInt(name string, op RelOp, value *big.Int) bool {
	var (
		domain   = v.intDomainOf(name)
		adjusted big.Int
	)
	//
	switch op {
	case Gt:
		adjusted.Add(value, big.NewInt(1))
		domain.interval = domain.interval.Intersect(math.AtLeast(adjusted))
	case Ge:
		domain.interval = domain.interval.Intersect(math.AtLeast(*value))
	case Lt:
		adjusted.Sub(value, big.NewInt(1))
		domain.interval = domain.interval.Intersect(math.AtMost(adjusted))
	case Le:
		domain.interval = domain.interval.Intersect(math.AtMost(*value))
	case Eq:
		domain.interval = domain.interval.Intersect(math.Exactly(*value))
	case Ne:
		var clone big.Int
		//
		clone.Set(value)
		domain.excluded = append(domain.excluded, &clone)
	}
	//
	return true
}

func (v *valuation) narrowReal(name string, op RelOp, value float64) bool {
	domain, ok := v.reals[name]
	//
	if !ok {
		domain = &realDomain{}
		v.reals[name] = domain
	}
	//
	switch op {
	case Gt, Ge:
		if !domain.hasLo || value > domain.lo {
			domain.lo, domain.loStrict = value, op == Gt
		} else if value == domain.lo && op == Gt {
			domain.loStrict = true
		}
		//
		domain.hasLo = true
	case Lt, Le:
		if !domain.hasHi || value < domain.hi {
			domain.hi, domain.hiStrict = value, op == Lt
		} else if value == domain.hi && op == Lt {
			domain.hiStrict = true
		}
		//
		domain.hasHi = true
	case Eq:
		return v.narrowReal(name, Ge, value) && v.narrowReal(name, Le, value)
	case Ne:
		domain.excluded = append(domain.excluded, value)
	}
	//
	return true
}

func (v *valuation) narrowPair(left string, op RelOp, right string) bool {
	if left == right {
		// e.g. x < x is immediately false
		return relOf(op)&relEq != 0
	}
	// canonicalise so the lesser name is always on the left
	if left > right {
		left, right, op = right, left, op.Flip()
	}
	//
	key := left + "\x00" + right
	//
	rels, ok := v.pairs[key]
	if !ok {
		rels = relLt | relEq | relGt
	}
	//
	v.pairs[key] = rels & relOf(op)
	//
	return v.pairs[key] != 0
}

func (v *valuation) undecidable(reason string) {
	if v.unknown == "" {
		v.unknown = reason
	}
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
func (v *valuation) relBetween(u string, w string) uint {
	if u > w {
		return invertRel(v.relBetween(w, u))
	}
	//
	if rels, ok := v.pairs[u+"\x00"+w]; ok {
		return rels
	}
	//
	return relLt | relEq | relGt
}

func (v *valuation) setRel(u string, w string, rels uint) {
	if u > w {
		u, w, rels = w, u, invertRel(rels)
	}
	//
	v.pairs[u+"\x00"+w] = rels
}

// closePairs propagates two-variable comparisons transitively, returning
// false when a chain of orderings contradicts itself.  A chain surviving
// propagation is not thereby satisfiable, so its presence also marks the
// valuation undecidable.
func (v *valuation) closePairs() bool {
	vars, chained := v.pairVariables()
	//
	if !chained {
		return true
	}
	//
	v.undecidable("transitive chain of variable orderings")
	//
	for changed := true; changed; {
		changed = false
		//
		for _, a := range vars {
			for _, b := range vars {
				if a == b {
					continue
				}
				//
				for _, c := range vars {
					if c == a || c == b {
						continue
					}
					//
					composed := composeRel(v.relBetween(a, b), v.relBetween(b, c))
					narrowed := v.relBetween(a, c) & composed
					//
					if narrowed == v.relBetween(a, c) {
						continue
					}
					//
					v.setRel(a, c, narrowed)
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
func (v *valuation) pairVariables() ([]string, bool) {
	var (
		occurrences = make(map[string]int)
		chained     = false
	)
	//
	for key := range v.pairs {
		for _, name := range splitPairKey(key) {
			occurrences[name]++
			chained = chained || occurrences[name] > 1
		}
	}
	//
	vars := make([]string, 0, len(occurrences))
	//
	for name := range occurrences {
		vars = append(vars, name)
	}
	//
	slices.Sort(vars)
	//
	return vars, chained
}

// conclude inspects the accumulated domains for contradictions.  The second
// return indicates an outright contradiction.
func (v *valuation) conclude() (Result, bool) {
	if !v.closePairs() {
		return Result{}, true
	}
	//
	for name, domain := range v.ints {
		if domain.interval.IsEmpty() {
			return Result{}, true
		} else if excludedEntirelyBig(domain.interval, domain.excluded) {
			return Result{}, true
		}
		// interval facts flowing through a two-variable comparison are
		// beyond this procedure
		if v.pairedWith(name) && (len(domain.excluded) != 0 || !v.isTop(domain)) {
			v.undecidable("interaction between variable orderings and ranges")
		}
	}
	//
	for name, domain := range v.reals {
		if v.pairedWith(name) && (domain.hasLo || domain.hasHi || len(domain.excluded) != 0) {
			v.undecidable("interaction between variable orderings and ranges")
		}
		//
		if domain.hasLo && domain.hasHi {
			if domain.lo > domain.hi {
				return Result{}, true
			} else if domain.lo == domain.hi {
				if domain.loStrict || domain.hiStrict {
					return Result{}, true
				}
				//
				for _, x := range domain.excluded {
					if x == domain.lo {
						return Result{}, true
					}
				}
			}
		}
	}
	//
	if v.unknown != "" {
		return Unknown(v.unknown), false
	}
	//
	return Result{Status: StatusSat}, false
}

func (v *valuation) isTop(domain *intDomain) bool {
	return !domain.interval.IsEmpty() &&
		!domain.interval.LowerBound().IsFinite() &&
		!domain.interval.UpperBound().IsFinite()
}

func (v *valuation) pairedWith(name string) bool {
	for key := range v.pairs {
		for _, part := range splitPairKey(key) {
			if part == name {
				return true
			}
		}
	}
	//
	return false
}

func splitPairKey(key string) []string {
	for i := 0; i < len(key); i++ {
		if key[i] == 0 {
			return []string{key[:i], key[i+1:]}
		}
	}
	//
	return []string{key}
}

// excludedEntirelyBig checks whether every integer within an interval has
// been excluded by non-equality facts.
func excludedEntirelyBig(interval math.Interval, excluded []*big.Int) bool {
	count, finite := interval.Count()
	//
	if !finite || count.Cmp(big.NewInt(int64(len(excluded)))) > 0 {
		return false
	}
	//
	var (
		cursor, hi big.Int
		lower      = interval.LowerBound().Value()
		upper      = interval.UpperBound().Value()
	)
	//
	cursor.Set(&lower)
	hi.Set(&upper)
	//
	for cursor.Cmp(&hi) <= 0 {
		present := false
		//
		for _, e := range excluded {
			if e.Cmp(&cursor) == 0 {
				present = true
				//
				break
			}
		}
		//
		if !present {
			return false
		}
		//
		cursor.Add(&cursor, big.NewInt(1))
	}
	//
	return true
}

// ===================================================================
// Model synthesis
// ===================================================================

// model picks a concrete witness for every constrained variable.  Integer
// variables take their least feasible value (or greatest, when only an upper
// bound exists), nudged past any forbidden values; reals take a bound or a
// midpoint; booleans take their forced assignment.
func (v *valuation) model() Model {
	model := make(Model)
	//
	for name, domain := range v.ints {
		model[name] = IntValue{pickInt(domain)}
	}
	//
	for name, domain := range v.reals {
		model[name] = RealValue{pickReal(domain)}
	}
	//
	for name, value := range v.bools {
		model[name] = BoolValue{value}
	}
	//
	return model
}

func pickInt(domain *intDomain) big.Int {
	var cursor big.Int
	//
	interval := domain.interval
	//
	switch {
	case interval.LowerBound().IsFinite():
		lo := interval.LowerBound().Value()
		cursor.Set(&lo)
		//
		for isExcluded(&cursor, domain.excluded) {
			cursor.Add(&cursor, big.NewInt(1))
		}
	case interval.UpperBound().IsFinite():
		hi := interval.UpperBound().Value()
		cursor.Set(&hi)
		//
		for isExcluded(&cursor, domain.excluded) {
			cursor.Sub(&cursor, big.NewInt(1))
		}
	default:
		for isExcluded(&cursor, domain.excluded) {
			cursor.Add(&cursor, big.NewInt(1))
		}
	}
	//
	return cursor
}

func pickReal(domain *realDomain) float64 {
	var candidate float64
	//
	switch {
	case domain.hasLo && domain.hasHi:
		candidate = domain.lo + (domain.hi-domain.lo)/2
	case domain.hasLo:
		candidate = domain.lo
		//
		if domain.loStrict {
			candidate++
		}
	case domain.hasHi:
		candidate = domain.hi
		//
		if domain.hiStrict {
			candidate--
		}
	}
	//
	for slices.Contains(domain.excluded, candidate) {
		candidate += 0.5
	}
	//
	return candidate
}

func isExcluded(value *big.Int, excluded []*big.Int) bool {
	for _, e := range excluded {
		if e.Cmp(value) == 0 {
			return true
		}
	}
	//
	return false
}

// ===================================================================
// Constant comparisons
// ===================================================================

func holdsBig(op RelOp, left *big.Int, right *big.Int) bool {
	c := left.Cmp(right)
	//
	switch op {
	case Eq:
		return c == 0
	case Ne:
		return c != 0
	case Lt:
		return c < 0
	case Le:
		return c <= 0
	case Gt:
		return c > 0
	default:
		return c >= 0
	}
}

func holdsReal(op RelOp, left float64, right float64) bool {
	switch op {
	case Eq:
		return left == right
	case Ne:
		return left != right
	case Lt:
		return left < right
	case Le:
		return left <= right
	case Gt:
		return left > right
	default:
		return left >= right
	}
}

func floorDivBig(result *big.Int, a *big.Int, b *big.Int) {
	var rem big.Int
	//
	result.QuoRem(a, b, &rem)
	//
	if rem.Sign() != 0 && (a.Sign() < 0) != (b.Sign() < 0) {
		result.Sub(result, big.NewInt(1))
	}
}

func ceilDivBig(result *big.Int, a *big.Int, b *big.Int) {
	var rem big.Int
	//
	result.QuoRem(a, b, &rem)
	//
	if rem.Sign() != 0 && (a.Sign() < 0) == (b.Sign() < 0) {
		result.Add(result, big.NewInt(1))
	}
}

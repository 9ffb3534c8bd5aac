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

// Package refine provides the fact accumulator used during verification.  A
// context gathers what is known about each variable in scope (from declared
// preconditions and from enclosing branch conditions) and answers whether
// that knowledge implies a candidate constraint.
package refine

import (
	"slices"

	"github.com/cella-lang/go-cella/pkg/constraint"
	"github.com/cella-lang/go-cella/pkg/smt"
)

// Context accumulates known facts about variables within one verification
// scope.  Facts are only ever added during a context's lifetime; branches
// get their own child context so that facts never leak across paths.
type Context struct {
	facts map[string][]constraint.Constraint
	// insertion order of variables, for deterministic solving
	order []string
	count int
}

// NewContext constructs a context with no facts at all.
func NewContext() *Context {
	return &Context{facts: make(map[string][]constraint.Constraint)}
}

// Clone creates an independent child context holding the same facts.  Used
// when entering a branch: facts added inside the branch stay inside it.
func (p *Context) Clone() *Context {
	child := &Context{
		facts: make(map[string][]constraint.Constraint, len(p.facts)),
		order: slices.Clone(p.order),
		count: p.count,
	}
	//
	for name, facts := range p.facts {
		child.facts[name] = slices.Clone(facts)
	}
	//
	return child
}

// AddFact records a fact about a given variable.
func (p *Context) AddFact(name string, fact constraint.Constraint) {
	if _, ok := p.facts[name]; !ok {
		p.order = append(p.order, name)
	}
	//
	p.facts[name] = append(p.facts[name], fact)
	p.count++
}

// Facts returns every recorded fact, in insertion order of their variables.
func (p *Context) Facts() []constraint.Constraint {
	var facts []constraint.Constraint
	//
	for _, name := range p.order {
		facts = append(facts, p.facts[name]...)
	}
	//
	return facts
}

// Implies determines whether the accumulated facts imply a candidate
// constraint.  The result is that of checking "facts ∧ ¬candidate": Unsat
// means the implication is valid, Sat means a counter-assignment exists.  A
// context with no facts at all answers Unknown, since nothing can be proved
// from nothing.
func (p *Context) Implies(candidate constraint.Constraint) constraint.SatResult {
	if p.count == 0 {
		return constraint.Unknown
	}
	//
	var (
		facts   = p.Facts()
		negated = constraint.Negate(candidate)
		solver  = constraint.NewToySolver()
	)
	//
	for _, fact := range facts {
		solver.Assert(fact)
	}
	//
	solver.Assert(negated)
	//
	if result := solver.CheckSat(); result != constraint.Unknown {
		return result
	}
	// The direct checker could not decide; fall back to the general interval
	// procedure.
	var (
		translator = smt.NewTranslator()
		builtin    = smt.NewBuiltinSolver()
		assertions = translator.TranslateAll(append(facts, negated))
	)
	//
	switch builtin.CheckSat(assertions).Status {
	case smt.StatusSat:
		return constraint.Sat
	case smt.StatusUnsat:
		return constraint.Unsat
	default:
		return constraint.Unknown
	}
}

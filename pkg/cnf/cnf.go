// Package cnf holds the propositional core shared by the solver and its
// tooling: literals, clauses, formulas and partial assignments, plus the
// DIMACS text representations of all of them.
package cnf

import (
	"cmp"
	"maps"
	"slices"

	"github.com/samber/lo"
)

// Variable identifies a propositional variable. Variables are numbered
// from 1, matching their DIMACS representation.
type Variable uint64

// Literal is a signed reference to a variable: v asserts variable v,
// -v asserts its negation. Zero is reserved as the DIMACS clause
// terminator and is never a valid literal.
type Literal int64

// Var returns the variable the literal refers to.
func (l Literal) Var() Variable {
	if l < 0 {
		return Variable(-l)
	}
	return Variable(l)
}

// Neg returns the literal's negation.
func (l Literal) Neg() Literal { return -l }

// Positive reports whether the literal asserts its variable true.
func (l Literal) Positive() bool { return l > 0 }

// Pos returns the literal asserting v true.
func (v Variable) Pos() Literal { return Literal(v) }

// Neg returns the literal asserting v false.
func (v Variable) Neg() Literal { return -Literal(v) }

// Clause is a disjunction of literals. A clause behaves as a set:
// duplicates collapse at construction and order carries no meaning.
// The empty clause is unsatisfiable.
type Clause []Literal

// NewClause builds a clause from lits, collapsing duplicate literals.
func NewClause(lits ...Literal) Clause {
	return Clause(lo.Uniq(lits))
}

func (c Clause) Contains(l Literal) bool {
	return slices.Contains(c, l)
}

// Without returns a copy of the clause with every occurrence of l
// removed. The receiver is left untouched.
func (c Clause) Without(l Literal) Clause {
	return lo.Filter(c, func(m Literal, _ int) bool { return m != l })
}

// Unit reports whether the clause forces its single literal.
func (c Clause) Unit() bool { return len(c) == 1 }

func (c Clause) Empty() bool { return len(c) == 0 }

// Formula is a conjunction of clauses. The empty formula is satisfied by
// anything; a formula containing an empty clause is satisfied by nothing.
type Formula []Clause

// Vars returns the distinct variables mentioned by the formula in
// ascending order.
func (f Formula) Vars() []Variable {
	vars := lo.Uniq(lo.FlatMap(f, func(c Clause, _ int) []Variable {
		return lo.Map(c, func(l Literal, _ int) Variable { return l.Var() })
	}))
	slices.Sort(vars)
	return vars
}

// MaxVar returns the highest variable mentioned by the formula, or 0 for
// a formula without literals.
func (f Formula) MaxVar() Variable {
	var max Variable
	for _, clause := range f {
		for _, literal := range clause {
			if v := literal.Var(); v > max {
				max = v
			}
		}
	}
	return max
}

// SatisfiedBy reports whether m satisfies every clause of the formula.
// A clause counts as satisfied only through a variable m actually
// assigns.
func (f Formula) SatisfiedBy(m Model) bool {
	return lo.EveryBy(f, func(c Clause) bool {
		return lo.SomeBy(c, func(l Literal) bool {
			value, assigned := m[l.Var()]
			return assigned && value == l.Positive()
		})
	})
}

// Model is a partial assignment of truth values to variables. Only
// assigned variables appear in it.
type Model map[Variable]bool

// Clone returns an independent copy of the model.
func (m Model) Clone() Model {
	return maps.Clone(m)
}

// Literals returns the assignment as signed literals sorted by variable,
// negative for variables assigned false.
func (m Model) Literals() []Literal {
	literals := make([]Literal, 0, len(m))
	for variable, value := range m {
		if value {
			literals = append(literals, variable.Pos())
		} else {
			literals = append(literals, variable.Neg())
		}
	}
	slices.SortFunc(literals, func(a, b Literal) int {
		return cmp.Compare(a.Var(), b.Var())
	})
	return literals
}

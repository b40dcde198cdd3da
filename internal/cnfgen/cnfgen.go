// Package cnfgen produces random CNF instances for tests and benchmarks,
// together with an exhaustive satisfiability check that serves as a
// reference verdict on small instances.
package cnfgen

import (
	"math/rand/v2"

	"github.com/limaJavier/dpll/pkg/cnf"
)

// Random builds a formula of the given clause count where every variable
// joins each clause with probability one half under a random sign. A
// clause that comes out empty gets a single random literal instead.
func Random(rng *rand.Rand, variables uint64, clauses int) cnf.Formula {
	formula := make(cnf.Formula, 0, clauses)
	for range clauses {
		var literals []cnf.Literal
		for variable := cnf.Variable(1); variable <= cnf.Variable(variables); variable++ {
			if rng.Float32() < 0.5 {
				continue
			}
			literals = append(literals, randomSign(rng, variable))
		}
		if len(literals) == 0 {
			literals = append(literals, randomSign(rng, cnf.Variable(rng.Uint64N(variables)+1)))
		}
		formula = append(formula, cnf.NewClause(literals...))
	}
	return formula
}

// RandomKCNF builds a formula whose clauses each draw k distinct
// variables under random signs. k must not exceed variables.
func RandomKCNF(rng *rand.Rand, variables uint64, clauses, k int) cnf.Formula {
	formula := make(cnf.Formula, 0, clauses)
	for range clauses {
		drawn := map[cnf.Variable]bool{}
		literals := make([]cnf.Literal, 0, k)
		for len(literals) < k {
			variable := cnf.Variable(rng.Uint64N(variables) + 1)
			if drawn[variable] {
				continue
			}
			drawn[variable] = true
			literals = append(literals, randomSign(rng, variable))
		}
		formula = append(formula, cnf.NewClause(literals...))
	}
	return formula
}

func randomSign(rng *rand.Rand, variable cnf.Variable) cnf.Literal {
	if rng.Float32() < 0.5 {
		return variable.Pos()
	}
	return variable.Neg()
}

// Satisfiable reports whether some assignment satisfies the formula by
// trying all of them. Only suitable for small variable counts.
func Satisfiable(formula cnf.Formula) bool {
	variables := formula.Vars()
	model := cnf.Model{}

	var explore func(i int) bool
	explore = func(i int) bool {
		if i == len(variables) {
			return formula.SatisfiedBy(model)
		}
		for _, value := range []bool{true, false} {
			model[variables[i]] = value
			if explore(i + 1) {
				return true
			}
		}
		delete(model, variables[i])
		return false
	}
	return explore(0)
}

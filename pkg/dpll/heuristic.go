package dpll

import (
	"github.com/samber/lo"

	"github.com/limaJavier/dpll/pkg/cnf"
)

// chooseBranchVariable picks the variable to branch on: among the open
// clauses (size two or more) of minimal size, the variable of the most
// frequent literal. Ties go to the first literal to reach the maximal
// count in clause scan order, so equal formulas yield equal picks. When
// no open clause exists the variable of the first literal of the first
// clause is used.
func chooseBranchVariable(formula cnf.Formula) cnf.Variable {
	open := lo.Filter(formula, func(c cnf.Clause, _ int) bool { return len(c) >= 2 })
	if len(open) == 0 {
		return formula[0][0].Var()
	}

	minSize := len(lo.MinBy(open, func(a, b cnf.Clause) bool { return len(a) < len(b) }))
	smallest := lo.Filter(open, func(c cnf.Clause, _ int) bool { return len(c) == minSize })

	counts := map[cnf.Literal]uint64{}
	var (
		best      cnf.Literal
		bestCount uint64
	)
	for _, clause := range smallest {
		for _, literal := range clause {
			counts[literal]++
			if counts[literal] > bestCount {
				bestCount = counts[literal]
				best = literal
			}
		}
	}
	return best.Var()
}

package dpll

import (
	"github.com/samber/lo"

	"github.com/limaJavier/dpll/pkg/cnf"
)

// simplify applies unit propagation and pure-literal elimination until
// neither rule fires, unit clauses taking priority. Each pass applies a
// single rule and rescans. The inputs are untouched: the model is cloned
// on entry and only ever grows, and every formula transform is a copy.
// A contradiction (empty clause) aborts the loop immediately; the
// formula and model returned with it are not meaningful.
func (s *Solver) simplify(formula cnf.Formula, model cnf.Model) (cnf.Formula, cnf.Model, bool) {
	model = model.Clone()

	for {
		if lo.SomeBy(formula, func(c cnf.Clause) bool { return c.Empty() }) {
			return formula, model, true
		}

		if unit, found := lo.Find(formula, func(c cnf.Clause) bool { return c.Unit() }); found {
			literal := unit[0]
			if _, assigned := model[literal.Var()]; assigned {
				// Restates an assignment already in the model. Dropping the
				// clause must not overwrite the recorded value.
				formula = lo.Filter(formula, func(c cnf.Clause, _ int) bool {
					return !c.Unit() || c[0] != literal
				})
				continue
			}

			model[literal.Var()] = literal.Positive()
			formula = assign(formula, literal)
			s.stats.Propagations++
			s.trace.WithField("literal", literal).Debug("unit propagation")
			continue
		}

		if literal, found := pureLiteral(formula, model); found {
			model[literal.Var()] = literal.Positive()
			formula = lo.Filter(formula, func(c cnf.Clause, _ int) bool {
				return !c.Contains(literal)
			})
			s.stats.PureLiterals++
			s.trace.WithField("literal", literal).Debug("pure literal elimination")
			continue
		}

		return formula, model, false
	}
}

// assign asserts literal over the formula: clauses containing it are
// satisfied and drop out, and its negation disappears from the rest.
// The result may contain empty clauses; detecting those is the caller's
// responsibility.
func assign(formula cnf.Formula, literal cnf.Literal) cnf.Formula {
	return lo.FilterMap(formula, func(c cnf.Clause, _ int) (cnf.Clause, bool) {
		switch {
		case c.Contains(literal):
			return nil, false
		case c.Contains(literal.Neg()):
			return c.Without(literal.Neg()), true
		default:
			return c, true
		}
	})
}

// pureLiteral returns the first literal in clause scan order whose
// negation appears nowhere in the formula and whose variable is still
// unassigned.
func pureLiteral(formula cnf.Formula, model cnf.Model) (cnf.Literal, bool) {
	present := map[cnf.Literal]bool{}
	var order []cnf.Literal
	for _, clause := range formula {
		for _, literal := range clause {
			if !present[literal] {
				present[literal] = true
				order = append(order, literal)
			}
		}
	}

	for _, literal := range order {
		if _, assigned := model[literal.Var()]; assigned {
			continue
		}
		if !present[literal.Neg()] {
			return literal, true
		}
	}
	return 0, false
}

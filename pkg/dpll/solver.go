// Package dpll decides Boolean satisfiability of CNF formulas with the
// classic Davis-Putnam-Logemann-Loveland procedure: unit propagation and
// pure-literal elimination run to a fixed point, then the search branches
// on an unassigned variable and backtracks on contradiction.
package dpll

import (
	"io"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/limaJavier/dpll/pkg/cnf"
)

type Solver struct {
	trace logrus.FieldLogger
	stats Stats
}

// Option configures a Solver.
type Option func(*Solver)

// WithTrace routes a step-by-step account of the search to logger at
// debug level.
func WithTrace(logger logrus.FieldLogger) Option {
	return func(s *Solver) {
		s.trace = logger
	}
}

var defaults = []Option{
	WithTrace(discardLogger()),
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// New returns a Solver with options applied over the defaults.
func New(options ...Option) *Solver {
	solver := &Solver{}
	for _, option := range append(defaults, options...) {
		option(solver)
	}
	return solver
}

// Solve is a convenience wrapper around New().Solve for one-shot use.
func Solve(formula cnf.Formula) (cnf.Model, bool) {
	return New().Solve(formula)
}

// Solve reports whether formula is satisfiable and, when it is, returns
// a model assigning every variable the search had to fix. Variables the
// formula never forced may be absent from the model. The input formula
// is not mutated, and statistics from any previous call are reset.
func (s *Solver) Solve(formula cnf.Formula) (cnf.Model, bool) {
	s.stats = Stats{}
	return s.search(formula, cnf.Model{}, 0)
}

// Stats returns the counters accumulated by the most recent Solve call.
func (s *Solver) Stats() Stats {
	return s.stats
}

func (s *Solver) search(formula cnf.Formula, model cnf.Model, depth uint64) (cnf.Model, bool) {
	if depth > s.stats.MaxDepth {
		s.stats.MaxDepth = depth
	}

	formula, model, contradiction := s.simplify(formula, model)
	if contradiction {
		s.stats.Conflicts++
		s.trace.WithField("depth", depth).Debug("contradiction, backtracking")
		return nil, false
	}
	if len(formula) == 0 {
		return model, true
	}

	variable := chooseBranchVariable(formula)
	s.stats.Decisions++
	s.trace.WithFields(logrus.Fields{"variable": variable, "depth": depth}).Debug("branching")

	// Try the variable true first, its negation only if that fails.
	for _, literal := range []cnf.Literal{variable.Pos(), variable.Neg()} {
		branch := append(slices.Clone(formula), cnf.Clause{literal})
		if solution, ok := s.search(branch, model.Clone(), depth+1); ok {
			return solution, true
		}
	}
	return nil, false
}

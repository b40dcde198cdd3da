package dpll

// Stats counts the work done by a single Solve call.
type Stats struct {
	// Decisions is the number of branch variables picked.
	Decisions uint64
	// Propagations is the number of unit clauses propagated.
	Propagations uint64
	// PureLiterals is the number of pure-literal eliminations applied.
	PureLiterals uint64
	// Conflicts is the number of contradictions the search backed out of.
	Conflicts uint64
	// MaxDepth is the deepest recursion level the search reached.
	MaxDepth uint64
}

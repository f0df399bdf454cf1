/*
Package dpll implements a plain DPLL solver for propositional formulas in
conjunctive normal form: unit propagation, heuristic branching and
chronological backtracking, with no clause learning and no restarts.

A formula is a conjunction of clauses, each clause a disjunction of
literals in the DIMACS convention (nonzero signed integers). The problem

	p cnf 3 3
	1 2 0
	-1 2 0
	1 -2 0

can be created programmatically this way:

	f := dpll.Formula{
		{1, 2},
		{-1, 2},
		{1, -2},
	}

To solve it, one creates a solver with the formula and a branching
strategy, chosen once at construction:

	b, err := dpll.NewBrancher(dpll.StrategyJWTwoSided)
	if err != nil {
		// unknown strategy name
	}
	s := dpll.New(f, b)
	status := s.Solve()

If the status is Sat, Assignment returns the literals of a satisfying
assignment, sorted by variable id:

	if status == dpll.Sat {
		fmt.Println(s.Assignment()) // e.g [1 2]
	}

Every Solve call also fills s.Stats with search counters (decisions,
backtracks, conflicts, propagations, unit clauses resolved) for
downstream comparison of branching strategies.

The search is strictly sequential and runs to completion: callers needing
a timeout must wrap the whole call from outside. Each branch works on its
own simplified copy of the formula, so a Solver is cheap to create and a
fresh one should be used per problem.
*/
package dpll

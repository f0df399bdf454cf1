package dpll

import "sort"

// A Solver decides the satisfiability of a Formula with plain DPLL search:
// unit propagation to a fixpoint, branching on a heuristically chosen
// literal, and chronological backtracking. It is the main data structure.
type Solver struct {
	// Iterative makes Solve use the explicit-stack engine instead of
	// native recursion. Both engines explore the search tree in the
	// same depth-first, positive-then-negative order and maintain
	// identical counters. False by default.
	Iterative bool
	// Stats are the counters of the last Solve call.
	Stats Metrics

	formula    Formula
	brancher   Brancher
	status     Status
	assignment []Lit
}

// New makes a solver for the given formula, branching with the given
// strategy. A nil brancher defaults to two-sided Jeroslow-Wang.
func New(f Formula, b Brancher) *Solver {
	if b == nil {
		b = JeroslowWangTwoSided{}
	}
	return &Solver{formula: f, brancher: b}
}

// Solve searches for a satisfying assignment and returns Sat or Unsat.
// Counters in Stats are reset at the start of every call. An unsatisfiable
// formula is a regular outcome, not an error.
func (s *Solver) Solve() Status {
	s.Stats = Metrics{}
	s.assignment = nil
	search := s.search
	if s.Iterative {
		search = s.searchIter
	}
	if model, ok := search(s.formula, nil); ok {
		s.assignment = model
		s.status = Sat
	} else {
		s.status = Unsat
	}
	return s.status
}

// Status returns the outcome of the last Solve call, or Indet before the
// first call.
func (s *Solver) Status() Status {
	return s.status
}

// Assignment returns the satisfying assignment found by the last Solve
// call, sorted by variable id ascending. It returns nil if the formula was
// not proven Sat. Variables never touched by the search are absent: any
// value for them satisfies the formula.
func (s *Solver) Assignment() []Lit {
	if s.status != Sat {
		return nil
	}
	model := make([]Lit, len(s.assignment))
	copy(model, s.assignment)
	sort.Slice(model, func(i, j int) bool { return model[i].Var() < model[j].Var() })
	return model
}

// Brancher returns the branching strategy the solver was built with.
func (s *Solver) Brancher() Brancher {
	return s.brancher
}

// propagateUnits runs the unit-clause cascade: as long as the formula
// contains a unit clause, the first one in clause order is treated as
// forced and propagated, and the scan restarts on the simplified formula.
// It returns the formula at the fixpoint, the forced literals in the order
// they were applied, and false on conflict.
func (s *Solver) propagateUnits(f Formula) (Formula, []Lit, bool) {
	// An empty clause in the input formula is a ready-made conflict
	// marker. Propagation never produces one (Propagate reports the
	// conflict instead), so one scan per node is enough.
	for _, clause := range f {
		if len(clause) == 0 {
			return nil, nil, false
		}
	}
	var forced []Lit
	for {
		unit, found := findUnit(f)
		if !found {
			return f, forced, true
		}
		var ok bool
		f, ok = Propagate(f, unit)
		s.Stats.Propagations++
		s.Stats.UnitClausesResolved++
		if !ok {
			return nil, nil, false
		}
		forced = append(forced, unit)
		if len(f) == 0 {
			return f, forced, true
		}
	}
}

// search is one node of the DPLL tree. It owns its copy of the formula:
// nothing it does is visible to its caller or to sibling branches.
func (s *Solver) search(f Formula, assignment []Lit) ([]Lit, bool) {
	f, forced, ok := s.propagateUnits(f)
	if !ok {
		s.Stats.Conflicts++
		return nil, false
	}
	assignment = extend(assignment, forced...)
	if len(f) == 0 {
		return assignment, true
	}
	s.Stats.Decisions++
	lit := s.brancher.Select(f)
	if model, ok := s.branch(f, assignment, lit); ok {
		return model, true
	}
	s.Stats.Backtracks++
	return s.branch(f, assignment, lit.Negation())
}

// branch fixes lit and recurses. The cascade has already run here, so
// every clause has at least two literals and fixing a single literal
// cannot empty one; the conflict path is kept for safety only.
func (s *Solver) branch(f Formula, assignment []Lit, lit Lit) ([]Lit, bool) {
	reduced, ok := Propagate(f, lit)
	if !ok {
		s.Stats.Conflicts++
		return nil, false
	}
	return s.search(reduced, extend(assignment, lit))
}

// extend returns a copy of assignment with lits appended. Sibling branches
// must never share a backing array.
func extend(assignment []Lit, lits ...Lit) []Lit {
	out := make([]Lit, len(assignment), len(assignment)+len(lits))
	copy(out, assignment)
	return append(out, lits...)
}

// A frame is one suspended decision of the iterative engine: the formula
// and assignment as they were when the decision literal was chosen, and
// whether the negative polarity has been tried yet.
type frame struct {
	formula    Formula
	assignment []Lit
	decision   Lit
	flipped    bool
}

// searchIter is the explicit-stack twin of search, for instances whose
// variable count would outgrow the goroutine stack. It visits the same
// nodes in the same order and drives the same counters.
func (s *Solver) searchIter(f Formula, assignment []Lit) ([]Lit, bool) {
	var stack []frame
	asg := extend(assignment)
	for {
		cf, forced, ok := s.propagateUnits(f)
		if ok {
			asg = extend(asg, forced...)
			if len(cf) == 0 {
				return asg, true
			}
			s.Stats.Decisions++
			lit := s.brancher.Select(cf)
			stack = append(stack, frame{formula: cf, assignment: asg, decision: lit})
			f, ok = Propagate(cf, lit)
			asg = extend(asg, lit)
			if ok {
				continue
			}
		}
		s.Stats.Conflicts++
		// Unwind to the deepest decision whose negation is untried.
		for {
			if len(stack) == 0 {
				return nil, false
			}
			top := &stack[len(stack)-1]
			if top.flipped {
				stack = stack[:len(stack)-1]
				continue
			}
			top.flipped = true
			s.Stats.Backtracks++
			neg := top.decision.Negation()
			var ok bool
			f, ok = Propagate(top.formula, neg)
			asg = extend(top.assignment, neg)
			if ok {
				break
			}
			s.Stats.Conflicts++
		}
	}
}

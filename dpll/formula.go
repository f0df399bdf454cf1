package dpll

// Propagate performs Boolean constraint propagation: it simplifies f under
// the hypothesis that unit is true. Clauses containing unit are dropped,
// occurrences of its negation are removed, all other clauses are kept as is.
// It returns false as soon as a clause becomes empty, i.e on conflict.
// The input formula is never mutated: the result is a fresh clause list and
// reduced clauses are fresh slices, so sibling branches can simplify the
// same formula independently.
func Propagate(f Formula, unit Lit) (Formula, bool) {
	simplified := make(Formula, 0, len(f))
	for _, clause := range f {
		if clause.contains(unit) {
			continue
		}
		if !clause.contains(unit.Negation()) {
			simplified = append(simplified, clause)
			continue
		}
		reduced := make(Clause, 0, len(clause)-1)
		for _, lit := range clause {
			if lit != unit.Negation() {
				reduced = append(reduced, lit)
			}
		}
		if len(reduced) == 0 {
			return nil, false
		}
		simplified = append(simplified, reduced)
	}
	return simplified, true
}

func (c Clause) contains(lit Lit) bool {
	for _, l := range c {
		if l == lit {
			return true
		}
	}
	return false
}

// findUnit returns the first unit clause of f, in clause order.
func findUnit(f Formula) (Lit, bool) {
	for _, clause := range f {
		if len(clause) == 1 {
			return clause[0], true
		}
	}
	return 0, false
}

// MaxVar returns the largest variable identifier appearing in f,
// or 0 if f has no literals.
func (f Formula) MaxVar() int {
	max := 0
	for _, clause := range f {
		for _, lit := range clause {
			if v := lit.Var(); v > max {
				max = v
			}
		}
	}
	return max
}

// Satisfied reports whether the given assignment makes every clause of f
// true, i.e whether each clause contains at least one of the literals.
func (f Formula) Satisfied(assignment []Lit) bool {
	for _, clause := range f {
		sat := false
		for _, lit := range clause {
			for _, a := range assignment {
				if a == lit {
					sat = true
					break
				}
			}
			if sat {
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

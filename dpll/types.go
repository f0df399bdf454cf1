package dpll

// Describes basic types and constants that are used in the solver

// A Lit is a propositional literal in the DIMACS convention: a nonzero
// signed integer whose magnitude is the 1-based variable identifier and
// whose sign is the polarity.
type Lit int

// Var returns the variable identifier of l.
func (l Lit) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// IsPositive is true iff l is > 0.
func (l Lit) IsPositive() bool {
	return l > 0
}

// Negation returns ¬l, i.e the positive version of l if it is negative,
// or the negative version otherwise.
func (l Lit) Negation() Lit {
	return -l
}

// A Clause is a disjunction of distinct literals.
// A clause with no literals is a conflict marker; a clause with exactly
// one literal is a unit clause forcing that literal.
type Clause []Lit

// A Formula is a conjunction of clauses.
// An empty formula is satisfied by any assignment.
type Formula []Clause

// Status is the status of a given problem at a given moment.
type Status byte

const (
	// Indet means the problem is not proven sat or unsat yet.
	Indet = Status(iota)
	// Sat means the problem is satisfied.
	Sat
	// Unsat means the problem is unsatisfied.
	Unsat
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		panic("invalid status")
	}
}

package dpll

import (
	"fmt"
	"math"
)

// A Brancher deterministically selects the literal the search engine
// branches on next. Select must be given a non-empty, conflict-free
// formula; its behavior on an empty formula is undefined. The engine
// calls it after the unit-clause cascade, but every strategy also scores
// formulas that still contain unit clauses.
type Brancher interface {
	Select(f Formula) Lit
	Name() string
}

// Names of the supported branching strategies, accepted by NewBrancher.
const (
	StrategyFirst      = "first" // first literal of the first clause
	StrategyJW         = "jw"    // one-sided Jeroslow-Wang
	StrategyJWTwoSided = "jw2"   // two-sided Jeroslow-Wang
	StrategyMOMS       = "moms"  // maximum occurrences in minimum-size clauses
	StrategyDLIS       = "dlis"  // dynamic largest individual sum
	StrategyBOHM       = "bohm"  // BOHM's weighted occurrence count
)

// Strategies lists the supported strategy names.
func Strategies() []string {
	return []string{StrategyFirst, StrategyJW, StrategyJWTwoSided, StrategyMOMS, StrategyDLIS, StrategyBOHM}
}

// NewBrancher returns the branching heuristic registered under the given
// name, or an error if the name is not a supported strategy. The choice is
// made once, at solver construction time.
func NewBrancher(name string) (Brancher, error) {
	switch name {
	case StrategyFirst:
		return FirstLit{}, nil
	case StrategyJW:
		return JeroslowWang{}, nil
	case StrategyJWTwoSided:
		return JeroslowWangTwoSided{}, nil
	case StrategyMOMS:
		return MOMS{}, nil
	case StrategyDLIS:
		return DLIS{}, nil
	case StrategyBOHM:
		return BOHM{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q, expected one of %v", name, Strategies())
	}
}

// FirstLit is the baseline strategy: it branches on the first literal of
// the first clause, with no scoring at all.
type FirstLit struct{}

// Name returns the strategy name.
func (FirstLit) Name() string { return StrategyFirst }

// Select returns the first literal of the first clause.
func (FirstLit) Select(f Formula) Lit {
	return f[0][0]
}

// JeroslowWang is the one-sided Jeroslow-Wang heuristic: each literal is
// weighted by the sum of 2^-|c| over the clauses c containing it, and the
// literal with the highest weight is selected.
type JeroslowWang struct{}

// Name returns the strategy name.
func (JeroslowWang) Name() string { return StrategyJW }

// Select returns the literal with the highest Jeroslow-Wang weight.
func (JeroslowWang) Select(f Formula) Lit {
	weights := make(map[Lit]float64)
	for _, clause := range f {
		w := math.Exp2(-float64(len(clause)))
		for _, lit := range clause {
			weights[lit] += w
		}
	}
	return bestLit(weights)
}

// JeroslowWangTwoSided is the two-sided variant of Jeroslow-Wang: the same
// clause-length weights are accumulated per variable, ignoring polarity,
// which halves the key space. The winning variable is returned as a
// positive literal.
type JeroslowWangTwoSided struct{}

// Name returns the strategy name.
func (JeroslowWangTwoSided) Name() string { return StrategyJWTwoSided }

// Select returns the variable with the highest accumulated weight, as a
// positive literal.
func (JeroslowWangTwoSided) Select(f Formula) Lit {
	weights := make(map[int]float64)
	for _, clause := range f {
		w := math.Exp2(-float64(len(clause)))
		for _, lit := range clause {
			weights[lit.Var()] += w
		}
	}
	return Lit(bestVar(weights))
}

// MOMS is the maximum-occurrences-in-minimum-size-clauses heuristic: only
// the clauses of minimum current length are considered, and the literal
// occurring most often in them is selected.
type MOMS struct{}

// Name returns the strategy name.
func (MOMS) Name() string { return StrategyMOMS }

// Select returns the most frequent literal among minimum-length clauses.
func (MOMS) Select(f Formula) Lit {
	minLen := len(f[0])
	for _, clause := range f[1:] {
		if len(clause) < minLen {
			minLen = len(clause)
		}
	}
	counts := make(map[Lit]float64)
	for _, clause := range f {
		if len(clause) != minLen {
			continue
		}
		for _, lit := range clause {
			counts[lit]++
		}
	}
	return bestLit(counts)
}

// DLIS is the dynamic largest individual sum heuristic: positive and
// negative occurrences are counted separately per variable, and the
// variable with the largest single-polarity count is selected, in its
// dominant polarity. An equal count for both polarities yields the
// positive literal.
type DLIS struct{}

// Name returns the strategy name.
func (DLIS) Name() string { return StrategyDLIS }

// Select returns the literal with the largest individual occurrence count.
func (DLIS) Select(f Formula) Lit {
	pos := make(map[int]float64)
	neg := make(map[int]float64)
	for _, clause := range f {
		for _, lit := range clause {
			if lit.IsPositive() {
				pos[lit.Var()]++
			} else {
				neg[lit.Var()]++
			}
		}
	}
	scores := make(map[Lit]float64)
	for v, n := range pos {
		scores[Lit(v)] = n
	}
	for v, n := range neg {
		if n > scores[Lit(v)] {
			delete(scores, Lit(v))
			scores[Lit(-v)] = n
		}
	}
	return bestLit(scores)
}

// BOHM is a fixed-weight occurrence heuristic: clauses of length 1, 2 and
// 3 weigh 10, 5 and 1 respectively, longer clauses weigh nothing, and the
// literal with the highest weighted occurrence sum is selected.
type BOHM struct{}

// Name returns the strategy name.
func (BOHM) Name() string { return StrategyBOHM }

// Select returns the literal with the highest weighted occurrence sum.
func (BOHM) Select(f Formula) Lit {
	weights := make(map[Lit]float64)
	for _, clause := range f {
		var w float64
		switch len(clause) {
		case 1:
			w = 10
		case 2:
			w = 5
		case 3:
			w = 1
		}
		// Literals of longer clauses still get an entry, so that a
		// formula made only of long clauses falls back to the
		// tie-break order instead of selecting nothing.
		for _, lit := range clause {
			weights[lit] += w
		}
	}
	return bestLit(weights)
}

// bestLit returns the highest-scored literal. Ties are broken toward the
// lowest variable id, then toward the positive polarity, so the result
// does not depend on map iteration order.
func bestLit(scores map[Lit]float64) Lit {
	var best Lit
	var bestScore float64
	for lit, score := range scores {
		if best == 0 || score > bestScore || (score == bestScore && litBefore(lit, best)) {
			best, bestScore = lit, score
		}
	}
	return best
}

// bestVar returns the highest-scored variable, lowest id first on ties.
func bestVar(scores map[int]float64) int {
	best := 0
	var bestScore float64
	for v, score := range scores {
		if best == 0 || score > bestScore || (score == bestScore && v < best) {
			best, bestScore = v, score
		}
	}
	return best
}

// litBefore is the deterministic tie-break order on literals: lower
// variable id first, positive polarity before negative.
func litBefore(a, b Lit) bool {
	if a.Var() != b.Var() {
		return a.Var() < b.Var()
	}
	return a > b
}

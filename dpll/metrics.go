package dpll

// Metrics are statistics about the resolution of the problem.
// All counters start at zero on each Solve call and only ever increase
// during the search. The JSON shape is fixed: downstream aggregation and
// plotting tools consume these exact keys.
type Metrics struct {
	Decisions           uint64 `json:"decisions"`
	Backtracks          uint64 `json:"backtracks"`
	Conflicts           uint64 `json:"conflicts"`
	Propagations        uint64 `json:"propagations"`
	UnitClausesResolved uint64 `json:"unit_clauses_resolved"`
}

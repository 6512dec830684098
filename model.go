package sbv

import "github.com/samber/lo"

// Assignment binds one existential input name to a concrete value. The
// value is an opaque literal built by the caller from a symbolic
// handle/value pair; the session only carries it.
type Assignment struct {
	Name  string
	Value string
}

// Model is a satisfying assignment of the declared existential inputs.
// Objectives stays empty unless objective solving is in play.
type Model struct {
	Assignments []Assignment
	Objectives  []Assignment
}

const (
	SMT_SATISFIABLE   = 1
	SMT_UNSATISFIABLE = 2
	SMT_UNKNOWN       = 3
	SMT_PROOF_ERROR   = 4
)

// SMTResult is one terminal outcome in the shape the default resolution
// pipeline produces.
type SMTResult struct {
	Kind      int
	Model     *Model
	UnsatCore []string
	Messages  []string
}

// Success validates a caller-built assignment list against the declared
// existential inputs and, when coherent, wraps it as a single
// satisfiable result. Missing, extra and duplicated names are all
// collected before failing, so the caller sees every problem at once.
func (q *QuerySession) Success(assignments []Assignment, inputs []string) ([]*SMTResult, error) {
	if err := q.guard("success"); err != nil {
		return nil, err
	}

	names := lo.Map(assignments, func(a Assignment, _ int) string { return a.Name })
	uniq := lo.Uniq(names)
	missing, extra := lo.Difference(inputs, uniq)

	counts := lo.CountValues(names)
	duplicate := lo.Filter(uniq, func(n string, _ int) bool { return counts[n] > 1 })

	if len(missing)+len(extra)+len(duplicate) > 0 {
		return nil, &ValidationError{Missing: missing, Extra: extra, Duplicate: duplicate}
	}
	return []*SMTResult{{
		Kind:  SMT_SATISFIABLE,
		Model: &Model{Assignments: assignments},
	}}, nil
}

// ExactResult wraps a result the caller already constructed, bypassing
// validation entirely.
func ExactResult(rs ...*SMTResult) []*SMTResult {
	return rs
}

// FailWith wraps diagnostic messages as a proof-error result, bypassing
// validation entirely.
func FailWith(msgs ...string) []*SMTResult {
	return []*SMTResult{{Kind: SMT_PROOF_ERROR, Messages: msgs}}
}

// Resume falls back to the session's default resolution behavior, its
// own check-sat-then-model-collection routine, honoring the session's
// exit-code-ignore flag. Callers that already built a result should
// wrap it with ExactResult instead: invoking both is harmless but
// wastes a solver round trip.
func (q *QuerySession) Resume() ([]*SMTResult, error) {
	if err := q.guard("resume"); err != nil {
		return nil, err
	}
	if q.resumeHook == nil {
		return nil, usagef("resume", "no default resolution hook installed for this session")
	}
	return q.resumeHook(q)
}

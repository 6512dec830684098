package sbv

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
)

// SymbolicBool is a boolean expression handle produced by the symbolic
// engine. SolverSymbol is the name the expression is known by on the
// solver side.
type SymbolicBool interface {
	SolverSymbol() string
}

// proxyName derives the proxy identifier for a resolved assumption
// symbol. Deterministic in the symbol, so a redeclaration within a
// session names the same constant.
func proxyName(sym string) string {
	return fmt.Sprintf("__assumption_%016x", xxhash.Sum64String(sym))
}

type assumption struct {
	sym  string
	expr SymbolicBool
}

// proxyEntry is the session's record of a declared proxy: the stack
// depth it was declared at (so popping past it invalidates the entry)
// and whether the assertion linking it to its symbol is currently live
// (reset-assertions keeps the declaration but drops the assertion).
type proxyEntry struct {
	name     string
	depth    int
	asserted bool
}

// CheckSatAssuming checks satisfiability under the given assumptions.
// check-sat-assuming only accepts bare boolean literals, so each
// assumption is routed through a declared proxy constant asserted equal
// to its symbol. On unsat the solver-reported core is mapped back to
// the original expressions: a valid causal subset, not necessarily a
// minimal one.
func (q *QuerySession) CheckSatAssuming(assumptions []SymbolicBool) (CheckSatResult, []SymbolicBool, error) {
	if err := q.guard("check-sat-assuming"); err != nil {
		return 0, nil, err
	}

	resolved := lo.Map(assumptions, func(a SymbolicBool, _ int) assumption {
		return assumption{sym: a.SolverSymbol(), expr: a}
	})
	// First occurrence wins on duplicate symbols. The constant true is
	// dropped: it cannot cause unsatisfiability, and the protocol has no
	// literal-negation syntax for it here.
	resolved = lo.UniqBy(resolved, func(a assumption) string { return a.sym })
	resolved = lo.Reject(resolved, func(a assumption, _ int) bool { return a.sym == "true" })

	byProxy := make(map[string]SymbolicBool, len(resolved))
	names := make([]string, 0, len(resolved))
	for _, a := range resolved {
		p := q.proxies[a.sym]
		if p == nil {
			p = &proxyEntry{name: proxyName(a.sym), depth: q.depth}
			if err := q.tr.Send(fmt.Sprintf("(declare-const %s Bool)", p.name)); err != nil {
				return 0, nil, err
			}
			q.proxies[a.sym] = p
		}
		if !p.asserted {
			if err := q.tr.Send(fmt.Sprintf("(assert (= %s %s))", p.name, a.sym)); err != nil {
				return 0, nil, err
			}
			p.asserted = true
		}
		byProxy[p.name] = a.expr
		names = append(names, p.name)
	}

	cmd := fmt.Sprintf("(check-sat-assuming (%s))", strings.Join(names, " "))
	hints := []string{`make sure the option ":produce-unsat-assumptions" is enabled before the session starts`}
	res, err := q.askCheckSat("check-sat-assuming", cmd, hints)
	if err != nil {
		return 0, nil, err
	}
	if res != RESULT_UNSAT {
		return res, nil, nil
	}

	core, err := q.GetUnsatCore()
	if err != nil {
		return 0, nil, err
	}
	subset := make([]SymbolicBool, 0, len(core))
	for _, name := range core {
		// Restricted to the proxy set: solvers may report other tracked
		// assertions alongside the assumption literals.
		if expr, ok := byProxy[name]; ok {
			subset = append(subset, expr)
		}
	}
	return RESULT_UNSAT, subset, nil
}

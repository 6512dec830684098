package sbv

import "fmt"

const (
	RESULT_SAT     CheckSatResult = 1
	RESULT_UNSAT   CheckSatResult = 2
	RESULT_UNKNOWN CheckSatResult = 3
)

// CheckSatResult is the outcome of one satisfiability query. Terminal
// per query: it says nothing about the state after the next command.
type CheckSatResult int

func (r CheckSatResult) String() string {
	switch r {
	case RESULT_SAT:
		return "sat"
	case RESULT_UNSAT:
		return "unsat"
	case RESULT_UNKNOWN:
		return "unknown"
	}
	return fmt.Sprintf("CheckSatResult(%d)", int(r))
}

func (q *QuerySession) CheckSat() (CheckSatResult, error) {
	if err := q.guard("check-sat"); err != nil {
		return 0, err
	}
	return q.askCheckSat("check-sat", "(check-sat)", nil)
}

func (q *QuerySession) askCheckSat(op, cmd string, hints []string) (CheckSatResult, error) {
	raw, err := q.tr.Ask(cmd)
	if err != nil {
		return 0, err
	}
	if e, perr := ParseSExpr(raw); perr == nil && e.Kind == TY_ATOM {
		switch e.Text {
		case "sat":
			return RESULT_SAT, nil
		case "unsat":
			return RESULT_UNSAT, nil
		case "unknown":
			return RESULT_UNKNOWN, nil
		}
	}
	return 0, &ProtocolError{
		Op:       op,
		Command:  cmd,
		Expected: `one of the atoms "sat", "unsat", "unknown"`,
		Received: raw,
		Hints:    hints,
	}
}

// GetUnsatCore retrieves the core of the last unsat check as plain
// names, with one layer of SMT-LIB bar quoting stripped. The solver
// rejects the command unless :produce-unsat-cores was enabled up front;
// that rejection surfaces as the protocol error below.
func (q *QuerySession) GetUnsatCore() ([]string, error) {
	if err := q.guard("get-unsat-core"); err != nil {
		return nil, err
	}
	const cmd = "(get-unsat-core)"
	raw, err := q.tr.Ask(cmd)
	if err != nil {
		return nil, err
	}
	e, perr := ParseSExpr(raw)
	if perr == nil && e.Kind == TY_APP {
		core := make([]string, 0, len(e.Children))
		ok := true
		for _, c := range e.Children {
			if c.Kind != TY_ATOM {
				ok = false
				break
			}
			core = append(core, unbar(c.Text))
		}
		if ok {
			return core, nil
		}
	}
	return nil, &ProtocolError{
		Op:       "get-unsat-core",
		Command:  cmd,
		Expected: "a parenthesized list of atoms",
		Received: raw,
		Hints:    []string{`make sure the option ":produce-unsat-cores" is enabled before the session starts`},
	}
}

func unbar(s string) string {
	if len(s) >= 2 && s[0] == '|' && s[len(s)-1] == '|' {
		return s[1 : len(s)-1]
	}
	return s
}

// GetProof returns the solver's proof object verbatim. The payload is
// solver-specific, so the decoder only confirms it parses; content is
// never interpreted and never an error.
func (q *QuerySession) GetProof() (string, error) {
	if err := q.guard("get-proof"); err != nil {
		return "", err
	}
	const cmd = "(get-proof)"
	raw, err := q.tr.Ask(cmd)
	if err != nil {
		return "", err
	}
	if _, perr := ParseSExpr(raw); perr != nil {
		return "", &ProtocolError{
			Op:       "get-proof",
			Command:  cmd,
			Expected: "a well-formed s-expression",
			Received: raw,
			Hints:    []string{`make sure the option ":produce-proofs" is enabled before the session starts`},
		}
	}
	return raw, nil
}

// GetAssertions lists the currently asserted formulas, rendered. A
// multi-element application yields one string per element; anything
// else comes back as a one-element list. The asymmetry is deliberate
// and pinned by tests.
func (q *QuerySession) GetAssertions() ([]string, error) {
	if err := q.guard("get-assertions"); err != nil {
		return nil, err
	}
	const cmd = "(get-assertions)"
	raw, err := q.tr.Ask(cmd)
	if err != nil {
		return nil, err
	}
	e, perr := ParseSExpr(raw)
	if perr != nil {
		return nil, &ProtocolError{
			Op:       "get-assertions",
			Command:  cmd,
			Expected: "a list of s-expressions",
			Received: raw,
			Hints:    []string{`make sure the option ":produce-assertions" is enabled before the session starts`},
		}
	}
	if e.Kind == TY_APP && len(e.Children) > 1 {
		out := make([]string, len(e.Children))
		for i, c := range e.Children {
			out[i] = c.Render()
		}
		return out, nil
	}
	return []string{e.Render()}, nil
}

// GetValue asks for the value of one named term in the current model.
// Response shape is ((term value)).
func (q *QuerySession) GetValue(name string) (string, error) {
	if err := q.guard("get-value"); err != nil {
		return "", err
	}
	cmd := fmt.Sprintf("(get-value (%s))", name)
	raw, err := q.tr.Ask(cmd)
	if err != nil {
		return "", err
	}
	if e, perr := ParseSExpr(raw); perr == nil && e.Kind == TY_APP && len(e.Children) == 1 {
		pair := e.Children[0]
		if pair.Kind == TY_APP && len(pair.Children) == 2 {
			return pair.Children[1].RenderUnquoted(), nil
		}
	}
	return "", &ProtocolError{
		Op:       "get-value",
		Command:  cmd,
		Expected: "a singleton list of (term value) pairs",
		Received: raw,
		Hints:    []string{`make sure the option ":produce-models" is enabled before the session starts`},
	}
}

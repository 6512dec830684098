package sbv

import (
	"fmt"

	"github.com/google/uuid"
)

// QuerySession owns the interactive protocol state for one solver
// session: assertion-stack depth, the configuration snapshot and the
// assumption proxies declared so far. It is exclusively owned by the
// caller; operations are strictly sequential.
type QuerySession struct {
	id    string
	tr    Transport
	cfg   *Config
	depth int

	// closed is set by Exit; every later operation is a caller error.
	closed bool

	ignoreExitCode bool
	resumeHook     func(*QuerySession) ([]*SMTResult, error)

	// proxies maps a resolved assumption symbol to its declared proxy,
	// so redeclaring within the session is a no-op. Entries only stay
	// while the solver-side declaration and linking assertion they
	// mirror are still alive; Pop, Reset and ResetAssertions prune.
	proxies map[string]*proxyEntry
}

func NewQuerySession(tr Transport, cfg *Config) *QuerySession {
	return &QuerySession{
		id:      uuid.NewString(),
		tr:      tr,
		cfg:     cfg,
		proxies: make(map[string]*proxyEntry),
	}
}

func (q *QuerySession) ID() string {
	return q.id
}

func (q *QuerySession) Config() *Config {
	return q.cfg
}

// SetResumeHook installs the default-resolution routine Resume delegates
// to, typically the driver's own check-sat-then-collect-model pass.
func (q *QuerySession) SetResumeHook(h func(*QuerySession) ([]*SMTResult, error)) {
	q.resumeHook = h
}

// SetIgnoreExitCode controls whether the default resolution behavior
// tolerates a nonzero solver exit status.
func (q *QuerySession) SetIgnoreExitCode(b bool) {
	q.ignoreExitCode = b
}

func (q *QuerySession) IgnoreExitCode() bool {
	return q.ignoreExitCode
}

// AssertionStackDepth is a pure read of the tracked stack depth; it
// never talks to the solver.
func (q *QuerySession) AssertionStackDepth() int {
	return q.depth
}

func (q *QuerySession) guard(op string) error {
	if q.closed {
		return usagef(op, "session %s already exited", q.id)
	}
	return nil
}

func (q *QuerySession) Push(n int) error {
	if err := q.guard("push"); err != nil {
		return err
	}
	if n <= 0 {
		return usagef("push", "levels must be positive, got %d", n)
	}
	if err := q.tr.Send(fmt.Sprintf("(push %d)", n)); err != nil {
		return err
	}
	q.depth += n
	return nil
}

// Pop fails without sending anything when n exceeds the current depth,
// so tracked state and solver cannot drift on underflow.
func (q *QuerySession) Pop(n int) error {
	if err := q.guard("pop"); err != nil {
		return err
	}
	if n <= 0 {
		return usagef("pop", "levels must be positive, got %d", n)
	}
	if n > q.depth {
		return usagef("pop", "cannot pop %d levels, stack depth is %d", n, q.depth)
	}
	if err := q.tr.Send(fmt.Sprintf("(pop %d)", n)); err != nil {
		return err
	}
	q.depth -= n
	// Proxies declared above the new depth vanished with their levels.
	for sym, p := range q.proxies {
		if p.depth > q.depth {
			delete(q.proxies, sym)
		}
	}
	return nil
}

// Reset forgets all declarations and assertions accumulated so far and
// drives the stack depth to zero.
func (q *QuerySession) Reset() error {
	if err := q.guard("reset"); err != nil {
		return err
	}
	if err := q.tr.Send("(reset)"); err != nil {
		return err
	}
	q.depth = 0
	// The solver forgot every declaration, proxies included.
	q.proxies = make(map[string]*proxyEntry)
	return nil
}

// ResetAssertions discards assertions only: declarations and bindings
// from the base level survive (all levels, if the session was started
// with :global-declarations). Depth goes to zero.
func (q *QuerySession) ResetAssertions() error {
	if err := q.guard("reset-assertions"); err != nil {
		return err
	}
	if err := q.tr.Send("(reset-assertions)"); err != nil {
		return err
	}
	q.depth = 0
	// Base-level proxy declarations survive (all of them under
	// :global-declarations), but the assertion linking each proxy to its
	// symbol is gone either way and must be re-sent before reuse.
	globals := q.cfg != nil && q.cfg.StartedWith(":global-declarations")
	for sym, p := range q.proxies {
		if !globals && p.depth > 0 {
			delete(q.proxies, sym)
			continue
		}
		p.asserted = false
	}
	return nil
}

// Exit ends the session. Any command issued afterwards is a caller
// error, never retried.
func (q *QuerySession) Exit() error {
	if err := q.guard("exit"); err != nil {
		return err
	}
	if err := q.tr.Send("(exit)"); err != nil {
		return err
	}
	q.depth = 0
	q.closed = true
	return nil
}

// SetOption forwards a recognized option to the solver. Options the
// solver only honors before the interactive session starts are refused
// here with a usage error instead of being bounced off the solver. The
// set-logic rendering in SMTOption.command is unreachable through this
// path, since logic selection is itself start-mode-only.
func (q *QuerySession) SetOption(o SMTOption) error {
	if err := q.guard("set-option"); err != nil {
		return err
	}
	if o.startModeOnly() {
		return usagef("set-option",
			"option %s can only be set before the interactive session starts", o.Keyword())
	}
	return q.tr.Send(o.command())
}

// Query sends a raw command and parses the response, for callers doing
// custom protocol interaction. Returns the parsed tree and the raw text.
func (q *QuerySession) Query(cmd string) (*SExpr, string, error) {
	if err := q.guard("query"); err != nil {
		return nil, "", err
	}
	raw, err := q.tr.Ask(cmd)
	if err != nil {
		return nil, "", err
	}
	e, perr := ParseSExpr(raw)
	if perr != nil {
		return nil, raw, &ProtocolError{
			Op:       "query",
			Command:  cmd,
			Expected: "a well-formed s-expression",
			Received: raw,
		}
	}
	return e, raw, nil
}

// QueryNoWait sends a command the solver does not answer.
func (q *QuerySession) QueryNoWait(cmd string) error {
	if err := q.guard("query"); err != nil {
		return err
	}
	return q.tr.Send(cmd)
}

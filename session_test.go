package sbv

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(replies ...string) (*QuerySession, *fakeTransport) {
	tr := &fakeTransport{replies: replies}
	return NewQuerySession(tr, NewConfig("z3", ProduceUnsatCores(true))), tr
}

func TestPushPopDepthTracking(t *testing.T) {
	q, tr := newTestSession()

	steps := []struct {
		push  bool
		n     int
		depth int
	}{
		{true, 1, 1},
		{true, 3, 4},
		{false, 2, 2},
		{true, 1, 3},
		{false, 3, 0},
	}
	for _, s := range steps {
		var err error
		if s.push {
			err = q.Push(s.n)
		} else {
			err = q.Pop(s.n)
		}
		require.NoError(t, err)
		assert.Equal(t, s.depth, q.AssertionStackDepth())
	}
	assert.Equal(t, []string{"(push 1)", "(push 3)", "(pop 2)", "(push 1)", "(pop 3)"}, tr.sent)
}

func TestPushPopDepthRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		q, _ := newTestSession()
		pushed, popped := 0, 0
		for i := 0; i < 40; i++ {
			n := 1 + rng.Intn(3)
			if rng.Intn(2) == 0 && q.AssertionStackDepth() >= n {
				require.NoError(t, q.Pop(n))
				popped += n
			} else {
				require.NoError(t, q.Push(n))
				pushed += n
			}
			require.Equal(t, pushed-popped, q.AssertionStackDepth())
		}
	}
}

func TestPushPopRequirePositiveLevels(t *testing.T) {
	q, tr := newTestSession()

	var uerr *UsageError
	require.ErrorAs(t, q.Push(0), &uerr)
	assert.Contains(t, uerr.Reason, "0")
	require.ErrorAs(t, q.Pop(-1), &uerr)
	assert.Contains(t, uerr.Reason, "-1")
	assert.Empty(t, tr.sent)
}

func TestPopUnderflow(t *testing.T) {
	q, tr := newTestSession()
	require.NoError(t, q.Push(2))

	err := q.Pop(3)
	var uerr *UsageError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, uerr.Reason, "cannot pop 3 levels, stack depth is 2")

	// Depth unchanged, no pop command went out.
	assert.Equal(t, 2, q.AssertionStackDepth())
	assert.Equal(t, []string{"(push 2)"}, tr.sent)
}

func TestResetVariantsZeroDepth(t *testing.T) {
	for _, tc := range []struct {
		name string
		op   func(*QuerySession) error
		cmd  string
	}{
		{"reset", (*QuerySession).Reset, "(reset)"},
		{"reset-assertions", (*QuerySession).ResetAssertions, "(reset-assertions)"},
		{"exit", (*QuerySession).Exit, "(exit)"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			q, tr := newTestSession()
			require.NoError(t, q.Push(5))
			require.NoError(t, tc.op(q))
			assert.Equal(t, 0, q.AssertionStackDepth())
			assert.Equal(t, tc.cmd, tr.sent[len(tr.sent)-1])
		})
	}
}

func TestExitClosesSession(t *testing.T) {
	q, tr := newTestSession()
	require.NoError(t, q.Exit())

	var uerr *UsageError
	require.ErrorAs(t, q.Push(1), &uerr)
	assert.Contains(t, uerr.Reason, q.ID())
	_, err := q.CheckSat()
	assert.ErrorAs(t, err, &uerr)
	assert.Equal(t, []string{"(exit)"}, tr.sent)
}

func TestSetOptionForwarded(t *testing.T) {
	q, tr := newTestSession()
	require.NoError(t, q.SetOption(Verbosity(2)))
	require.NoError(t, q.SetOption(DiagnosticOutputChannel("err.log")))
	assert.Equal(t, []string{
		"(set-option :verbosity 2)",
		`(set-option :diagnostic-output-channel "err.log")`,
	}, tr.sent)
}

func TestSetOptionStartModeOnly(t *testing.T) {
	q, tr := newTestSession()

	for _, o := range []SMTOption{
		ProduceUnsatCores(true),
		ProduceProofs(true),
		SetLogic("QF_BV"),
	} {
		err := q.SetOption(o)
		var uerr *UsageError
		require.ErrorAs(t, err, &uerr)
		assert.Contains(t, uerr.Reason, o.Keyword())
	}
	assert.Empty(t, tr.sent)
}

func TestQueryRawRoundTrip(t *testing.T) {
	q, _ := newTestSession("(echoed back)")
	e, raw, err := q.Query("(echo test)")
	require.NoError(t, err)
	assert.Equal(t, "(echoed back)", raw)
	assert.Equal(t, "(echoed back)", e.Render())

	require.NoError(t, q.QueryNoWait("(assert p)"))
}

func TestQueryMalformedResponse(t *testing.T) {
	q, _ := newTestSession("(((")
	_, raw, err := q.Query("(get-model)")
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "(((", raw)
	assert.Equal(t, "query", perr.Op)
}

func TestConfigSnapshot(t *testing.T) {
	q, _ := newTestSession()
	assert.True(t, q.Config().StartedWith(":produce-unsat-cores"))
	assert.False(t, q.Config().StartedWith(":produce-proofs"))
	assert.Equal(t, "z3", q.Config().Name)
}

func TestConfigStartedWithLogic(t *testing.T) {
	cfg := NewConfig("z3", SetLogic("QF_BV"))
	assert.True(t, cfg.StartedWith("set-logic"))
	assert.False(t, cfg.StartedWith("QF_BV"))
}

package sbv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func askInfo(t *testing.T, flag InfoFlag, reply string) *InfoResponse {
	t.Helper()
	q, tr := newTestSession(reply)
	r, err := q.GetInfo(flag)
	require.NoError(t, err)
	require.Equal(t, []string{"(get-info " + string(flag) + ")"}, tr.sent)
	return r
}

func TestGetInfoUnsupported(t *testing.T) {
	r := askInfo(t, Authors, "unsupported")
	assert.Equal(t, INFO_UNSUPPORTED, r.Kind)
}

func TestGetInfoAssertionStackLevels(t *testing.T) {
	r := askInfo(t, AssertionStackLevels, "(:assertion-stack-levels 4)")
	assert.Equal(t, INFO_ASSERTION_STACK_LEVELS, r.Kind)
	assert.Equal(t, 4, r.StackLevels)
}

func TestGetInfoAuthors(t *testing.T) {
	r := askInfo(t, Authors, `(:authors "Leonardo de Moura" "Nikolaj Bjorner")`)
	assert.Equal(t, INFO_AUTHORS, r.Kind)
	assert.Equal(t, []string{"Leonardo de Moura", "Nikolaj Bjorner"}, r.Strings)
}

func TestGetInfoErrorBehavior(t *testing.T) {
	r := askInfo(t, ErrorBehavior, "(:error-behavior immediate-exit)")
	assert.Equal(t, INFO_ERROR_BEHAVIOR, r.Kind)
	assert.Equal(t, ERROR_IMMEDIATE_EXIT, r.ErrorBehavior)

	r = askInfo(t, ErrorBehavior, "(:error-behavior continued-execution)")
	assert.Equal(t, ERROR_CONTINUED_EXECUTION, r.ErrorBehavior)
}

func TestGetInfoNameAndVersion(t *testing.T) {
	r := askInfo(t, InfoName, `(:name "Z3")`)
	assert.Equal(t, INFO_NAME, r.Kind)
	assert.Equal(t, []string{"Z3"}, r.Strings)

	r = askInfo(t, InfoVersion, `(:version "4.8.12")`)
	assert.Equal(t, INFO_VERSION, r.Kind)
	assert.Equal(t, []string{"4.8.12"}, r.Strings)
}

func TestGetInfoReasonUnknown(t *testing.T) {
	r := askInfo(t, ReasonUnknown, "(:reason-unknown memout)")
	assert.Equal(t, INFO_REASON_UNKNOWN, r.Kind)
	assert.Equal(t, UNKNOWN_MEMOUT, r.Reason)

	r = askInfo(t, ReasonUnknown, "(:reason-unknown incomplete)")
	assert.Equal(t, UNKNOWN_INCOMPLETE, r.Reason)

	r = askInfo(t, ReasonUnknown, "(:reason-unknown (incomplete quantifiers))")
	assert.Equal(t, UNKNOWN_OTHER, r.Reason)
	assert.Equal(t, "(incomplete quantifiers)", r.ReasonText)
}

func TestGetInfoAllStatistics(t *testing.T) {
	r := askInfo(t, AllStatistics, "(:decisions 100 :conflicts 5)")
	assert.Equal(t, INFO_ALL_STATISTICS, r.Kind)
	assert.Equal(t, [][2]string{{":decisions", "100"}, {":conflicts", "5"}}, r.Stats)
}

func TestGetInfoAllStatisticsTrailingKey(t *testing.T) {
	// Best-effort pairing: a trailing unpaired element gets an empty value.
	r := askInfo(t, AllStatistics, "(:decisions 100 :restarts)")
	assert.Equal(t, [][2]string{{":decisions", "100"}, {":restarts", ""}}, r.Stats)
}

func TestGetInfoKeywordFallback(t *testing.T) {
	// Unrecognized info responses are informational, never errors.
	r := askInfo(t, InfoKeyword(":memory"), "(:memory 17.32)")
	assert.Equal(t, INFO_KEYWORD, r.Kind)
	assert.Equal(t, "(:memory 17.32)", r.Keyword)

	r = askInfo(t, AssertionStackLevels, "(:assertion-stack-levels high)")
	assert.Equal(t, INFO_KEYWORD, r.Kind)
}

func TestGetInfoUnparseable(t *testing.T) {
	q, _ := newTestSession("((")
	_, err := q.GetInfo(InfoName)
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "get-info", perr.Op)
}

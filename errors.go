package sbv

import (
	"fmt"
	"strings"
)

// UsageError reports caller misuse detected before anything reaches the
// solver. The session stays usable afterwards.
type UsageError struct {
	Op     string
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("sbv: %s: %s", e.Op, e.Reason)
}

func usagef(op, format string, args ...interface{}) *UsageError {
	return &UsageError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// ProtocolError reports a solver response that does not match the
// expected grammar for the command sent. Hints point at the likely
// missing precondition, typically an option that was never enabled.
type ProtocolError struct {
	Op       string
	Command  string
	Expected string
	Received string
	Hints    []string
}

func (e *ProtocolError) Error() string {
	lines := []string{
		"sbv: unexpected response from the solver in " + e.Op,
		"  Sent     : " + e.Command,
		"  Expected : " + e.Expected,
		"  Received : " + e.Received,
	}
	for _, h := range e.Hints {
		lines = append(lines, "  Hint     : "+h)
	}
	return strings.Join(lines, "\n")
}

// ValidationError aggregates every mismatch between a candidate
// assignment list and the declared existential inputs. All three
// categories are computed before the error is raised.
type ValidationError struct {
	Missing   []string
	Extra     []string
	Duplicate []string
}

func (e *ValidationError) Error() string {
	rows := []struct {
		label string
		names []string
	}{
		{"Missing", e.Missing},
		{"Extra", e.Extra},
		{"Duplicate", e.Duplicate},
	}
	width := 0
	for _, r := range rows {
		if len(r.names) > 0 && len(r.label) > width {
			width = len(r.label)
		}
	}
	lines := []string{"sbv: invalid model assignment"}
	for _, r := range rows {
		if len(r.names) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-*s : %s", width, r.label, strings.Join(r.names, ", ")))
	}
	return strings.Join(lines, "\n")
}

package sbv

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Transport exchanges raw protocol text with the solver. Send is
// fire-and-forget, Ask waits for the solver's answer. A session issues
// at most one exchange at a time, so implementations need not be safe
// for concurrent use.
type Transport interface {
	Send(cmd string) error
	Ask(cmd string) (string, error)
}

// LineTransport drives a solver over a pair of text streams, one command
// per line. Process lifecycle (spawning, wiring pipes) belongs to the
// caller.
type LineTransport struct {
	w io.Writer
	r *bufio.Reader
}

func NewLineTransport(w io.Writer, r io.Reader) *LineTransport {
	return &LineTransport{w: w, r: bufio.NewReader(r)}
}

func (t *LineTransport) Send(cmd string) error {
	if _, err := io.WriteString(t.w, cmd+"\n"); err != nil {
		return errors.Wrapf(err, "sending %q", cmd)
	}
	return nil
}

// Ask accumulates response lines until parentheses balance, since
// solvers are free to pretty-print one s-expression across several
// lines. Parens inside bar- or double-quoted atoms do not count.
func (t *LineTransport) Ask(cmd string) (string, error) {
	if err := t.Send(cmd); err != nil {
		return "", err
	}
	var sb strings.Builder
	depth := 0
	inBar, inStr := false, false
	for {
		line, err := t.r.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(trimmed)
			for i := 0; i < len(trimmed); i++ {
				switch c := trimmed[i]; {
				case inBar:
					if c == '|' {
						inBar = false
					}
				case inStr:
					if c == '"' {
						inStr = false
					}
				case c == '|':
					inBar = true
				case c == '"':
					inStr = true
				case c == '(':
					depth++
				case c == ')':
					depth--
				}
			}
			if depth <= 0 && !inBar && !inStr {
				return sb.String(), nil
			}
		}
		if err != nil {
			return "", errors.Wrapf(err, "reading response to %q", cmd)
		}
	}
}

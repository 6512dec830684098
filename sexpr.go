package sbv

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	TY_ATOM   = 1
	TY_INT    = 2
	TY_REAL   = 3
	TY_FLOAT  = 4
	TY_DOUBLE = 5
	TY_APP    = 6
)

// SExpr is one node of a parsed solver response. Kind selects the
// variant: TY_ATOM/TY_REAL/TY_FLOAT/TY_DOUBLE carry their raw text,
// TY_INT additionally carries the parsed value, TY_APP carries children.
type SExpr struct {
	Kind     int
	Text     string
	Num      *big.Int
	Children []*SExpr
}

func Atom(text string) *SExpr {
	return &SExpr{Kind: TY_ATOM, Text: text}
}

func IntLit(v *big.Int, text string) *SExpr {
	if text == "" {
		text = v.String()
	}
	return &SExpr{Kind: TY_INT, Text: text, Num: v}
}

func RealLit(text string) *SExpr {
	return &SExpr{Kind: TY_REAL, Text: text}
}

func FloatLit(text string) *SExpr {
	return &SExpr{Kind: TY_FLOAT, Text: text}
}

func DoubleLit(text string) *SExpr {
	return &SExpr{Kind: TY_DOUBLE, Text: text}
}

func App(children ...*SExpr) *SExpr {
	return &SExpr{Kind: TY_APP, Children: children}
}

// Render serializes the node back to display text. An application with
// exactly one child collapses to that child; collapsing happens here,
// never during parsing.
func (e *SExpr) Render() string {
	return e.render(false)
}

// RenderUnquoted is Render with a single pair of surrounding double
// quotes stripped from atoms. Lossy: the quoted form does not survive a
// round trip.
func (e *SExpr) RenderUnquoted() string {
	return e.render(true)
}

func (e *SExpr) render(unquote bool) string {
	switch e.Kind {
	case TY_ATOM:
		if unquote && len(e.Text) >= 2 && e.Text[0] == '"' && e.Text[len(e.Text)-1] == '"' {
			return e.Text[1 : len(e.Text)-1]
		}
		return e.Text
	case TY_INT, TY_REAL, TY_FLOAT, TY_DOUBLE:
		return e.Text
	case TY_APP:
		if len(e.Children) == 1 {
			return e.Children[0].render(unquote)
		}
		parts := make([]string, len(e.Children))
		for i, c := range e.Children {
			parts[i] = c.render(unquote)
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	panic("invalid s-expression kind")
}

// Equal compares two trees structurally. Integers compare by value, the
// other numeric variants by text.
func (e *SExpr) Equal(o *SExpr) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case TY_INT:
		return e.Num.Cmp(o.Num) == 0
	case TY_APP:
		if len(e.Children) != len(o.Children) {
			return false
		}
		for i := range e.Children {
			if !e.Children[i].Equal(o.Children[i]) {
				return false
			}
		}
		return true
	}
	return e.Text == o.Text
}

// ParseSExpr parses one complete s-expression from solver response text.
func ParseSExpr(s string) (*SExpr, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("sexpr: empty response")
	}
	e, rest, err := parseToks(toks)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("sexpr: trailing input after %q", e.Render())
	}
	return e, nil
}

func parseToks(toks []string) (*SExpr, []string, error) {
	tok := toks[0]
	toks = toks[1:]
	if tok == ")" {
		return nil, nil, fmt.Errorf("sexpr: unexpected ')'")
	}
	if tok != "(" {
		return classify(tok), toks, nil
	}
	children := make([]*SExpr, 0, 4)
	for {
		if len(toks) == 0 {
			return nil, nil, fmt.Errorf("sexpr: unbalanced '('")
		}
		if toks[0] == ")" {
			return App(children...), toks[1:], nil
		}
		child, rest, err := parseToks(toks)
		if err != nil {
			return nil, nil, err
		}
		children = append(children, child)
		toks = rest
	}
}

// classify maps an atom token to its numeric variant when it reads as an
// SMT-LIB numeral: decimal (optionally negative), #x hex or #b binary
// integers, and decimal-point reals. Everything else stays an atom.
func classify(tok string) *SExpr {
	if strings.HasPrefix(tok, "#x") {
		if v, ok := new(big.Int).SetString(tok[2:], 16); ok {
			return IntLit(v, tok)
		}
	}
	if strings.HasPrefix(tok, "#b") {
		if v, ok := new(big.Int).SetString(tok[2:], 2); ok {
			return IntLit(v, tok)
		}
	}
	body := strings.TrimPrefix(tok, "-")
	if body != "" && isDigits(body) {
		v, _ := new(big.Int).SetString(tok, 10)
		return IntLit(v, tok)
	}
	if dot := strings.IndexByte(body, '.'); dot > 0 && dot < len(body)-1 {
		if isDigits(body[:dot]) && isDigits(body[dot+1:]) {
			return RealLit(tok)
		}
	}
	return Atom(tok)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// tokenize splits response text into parens and atoms. Bar-quoted
// identifiers and double-quoted string literals are single tokens, with
// the quoting characters kept.
func tokenize(s string) ([]string, error) {
	var toks []string
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(' || c == ')':
			toks = append(toks, string(c))
			i++
		case c == '|':
			j := strings.IndexByte(s[i+1:], '|')
			if j < 0 {
				return nil, fmt.Errorf("sexpr: unterminated '|' at offset %d", i)
			}
			toks = append(toks, s[i:i+j+2])
			i += j + 2
		case c == '"':
			j := i + 1
			for {
				k := strings.IndexByte(s[j:], '"')
				if k < 0 {
					return nil, fmt.Errorf("sexpr: unterminated '\"' at offset %d", i)
				}
				j += k + 1
				// SMT-LIB escapes a quote by doubling it.
				if j < len(s) && s[j] == '"' {
					j++
					continue
				}
				break
			}
			toks = append(toks, s[i:j])
			i = j
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t\n\r()|\"", rune(s[j])) {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks, nil
}

package sbv

import "fmt"

const (
	INFO_UNSUPPORTED            = 1
	INFO_ASSERTION_STACK_LEVELS = 2
	INFO_AUTHORS                = 3
	INFO_ERROR_BEHAVIOR         = 4
	INFO_NAME                   = 5
	INFO_REASON_UNKNOWN         = 6
	INFO_VERSION                = 7
	INFO_ALL_STATISTICS         = 8
	INFO_KEYWORD                = 9
)

const (
	ERROR_IMMEDIATE_EXIT      = 1
	ERROR_CONTINUED_EXECUTION = 2
)

const (
	UNKNOWN_MEMOUT     = 1
	UNKNOWN_INCOMPLETE = 2
	UNKNOWN_OTHER      = 3
)

// InfoFlag is one of the recognized get-info keys.
type InfoFlag string

const (
	AllStatistics        InfoFlag = ":all-statistics"
	AssertionStackLevels InfoFlag = ":assertion-stack-levels"
	Authors              InfoFlag = ":authors"
	ErrorBehavior        InfoFlag = ":error-behavior"
	InfoName             InfoFlag = ":name"
	ReasonUnknown        InfoFlag = ":reason-unknown"
	InfoVersion          InfoFlag = ":version"
)

// InfoKeyword queries a solver-specific info key outside the recognized
// set.
func InfoKeyword(kw string) InfoFlag {
	return InfoFlag(kw)
}

// InfoResponse is a decoded get-info reply. Kind selects which payload
// fields are meaningful.
type InfoResponse struct {
	Kind          int
	StackLevels   int
	Strings       []string
	ErrorBehavior int
	Reason        int
	ReasonText    string
	Stats         [][2]string
	Keyword       string
}

// GetInfo queries the solver for the given info flag. Unrecognized
// responses decode to the keyword fallback: they are informational, not
// protocol violations, so this only errors when the response does not
// parse at all.
func (q *QuerySession) GetInfo(flag InfoFlag) (*InfoResponse, error) {
	if err := q.guard("get-info"); err != nil {
		return nil, err
	}
	cmd := fmt.Sprintf("(get-info %s)", flag)
	raw, err := q.tr.Ask(cmd)
	if err != nil {
		return nil, err
	}
	e, perr := ParseSExpr(raw)
	if perr != nil {
		return nil, &ProtocolError{
			Op:       "get-info",
			Command:  cmd,
			Expected: "a well-formed s-expression",
			Received: raw,
		}
	}
	return decodeInfo(flag, e), nil
}

func decodeInfo(flag InfoFlag, e *SExpr) *InfoResponse {
	if flag == AllStatistics {
		return &InfoResponse{Kind: INFO_ALL_STATISTICS, Stats: pairStats(e)}
	}
	if e.Kind == TY_ATOM && e.Text == "unsupported" {
		return &InfoResponse{Kind: INFO_UNSUPPORTED}
	}
	if e.Kind == TY_APP && len(e.Children) >= 1 && e.Children[0].Kind == TY_ATOM {
		rest := e.Children[1:]
		switch e.Children[0].Text {
		case ":assertion-stack-levels":
			if len(rest) == 1 && rest[0].Kind == TY_INT {
				return &InfoResponse{
					Kind:        INFO_ASSERTION_STACK_LEVELS,
					StackLevels: int(rest[0].Num.Int64()),
				}
			}
		case ":authors":
			authors := make([]string, len(rest))
			for i, c := range rest {
				authors[i] = c.RenderUnquoted()
			}
			return &InfoResponse{Kind: INFO_AUTHORS, Strings: authors}
		case ":error-behavior":
			if len(rest) == 1 && rest[0].Kind == TY_ATOM {
				switch rest[0].Text {
				case "immediate-exit":
					return &InfoResponse{Kind: INFO_ERROR_BEHAVIOR, ErrorBehavior: ERROR_IMMEDIATE_EXIT}
				case "continued-execution":
					return &InfoResponse{Kind: INFO_ERROR_BEHAVIOR, ErrorBehavior: ERROR_CONTINUED_EXECUTION}
				}
			}
		case ":name":
			return &InfoResponse{Kind: INFO_NAME, Strings: []string{renderRest(rest)}}
		case ":reason-unknown":
			if len(rest) == 1 && rest[0].Kind == TY_ATOM {
				switch rest[0].Text {
				case "memout":
					return &InfoResponse{Kind: INFO_REASON_UNKNOWN, Reason: UNKNOWN_MEMOUT}
				case "incomplete":
					return &InfoResponse{Kind: INFO_REASON_UNKNOWN, Reason: UNKNOWN_INCOMPLETE}
				}
			}
			return &InfoResponse{
				Kind:       INFO_REASON_UNKNOWN,
				Reason:     UNKNOWN_OTHER,
				ReasonText: renderRest(rest),
			}
		case ":version":
			return &InfoResponse{Kind: INFO_VERSION, Strings: []string{renderRest(rest)}}
		}
	}
	return &InfoResponse{Kind: INFO_KEYWORD, Keyword: e.RenderUnquoted()}
}

func renderRest(rest []*SExpr) string {
	if len(rest) == 1 {
		return rest[0].RenderUnquoted()
	}
	return App(rest...).RenderUnquoted()
}

// pairStats walks statistics elements pairwise, best effort: a trailing
// unpaired element gets an empty value.
func pairStats(e *SExpr) [][2]string {
	elems := []*SExpr{e}
	if e.Kind == TY_APP {
		elems = e.Children
	}
	out := make([][2]string, 0, (len(elems)+1)/2)
	for i := 0; i < len(elems); i += 2 {
		v := ""
		if i+1 < len(elems) {
			v = elems[i+1].RenderUnquoted()
		}
		out = append(out, [2]string{elems[i].RenderUnquoted(), v})
	}
	return out
}

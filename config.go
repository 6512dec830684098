package sbv

import (
	"fmt"
	"strings"
)

// SMTOption is one directive from the closed set of recognized solver
// options, built with the constructors below. It renders to a
// (set-option ...) command, or (set-logic ...) for the logic selector.
type SMTOption struct {
	keyword string
	args    []string
	isLogic bool
}

func boolOpt(kw string, b bool) SMTOption {
	arg := "false"
	if b {
		arg = "true"
	}
	return SMTOption{keyword: kw, args: []string{arg}}
}

func intOpt(kw string, n int) SMTOption {
	return SMTOption{keyword: kw, args: []string{fmt.Sprintf("%d", n)}}
}

func ProduceUnsatCores(b bool) SMTOption       { return boolOpt(":produce-unsat-cores", b) }
func ProduceUnsatAssumptions(b bool) SMTOption { return boolOpt(":produce-unsat-assumptions", b) }
func ProduceProofs(b bool) SMTOption           { return boolOpt(":produce-proofs", b) }
func ProduceAssertions(b bool) SMTOption       { return boolOpt(":produce-assertions", b) }
func ProduceAssignments(b bool) SMTOption      { return boolOpt(":produce-assignments", b) }
func ProduceInterpolants(b bool) SMTOption     { return boolOpt(":produce-interpolants", b) }
func ProduceModels(b bool) SMTOption           { return boolOpt(":produce-models", b) }
func GlobalDeclarations(b bool) SMTOption      { return boolOpt(":global-declarations", b) }
func InteractiveMode(b bool) SMTOption         { return boolOpt(":interactive-mode", b) }
func RandomSeed(n int) SMTOption               { return intOpt(":random-seed", n) }
func Verbosity(n int) SMTOption                { return intOpt(":verbosity", n) }
func ReproducibleResourceLimit(n int) SMTOption {
	return intOpt(":reproducible-resource-limit", n)
}

func DiagnosticOutputChannel(path string) SMTOption {
	return SMTOption{keyword: ":diagnostic-output-channel", args: []string{`"` + path + `"`}}
}

// OptionKeyword escapes the closed enumeration for solver-specific
// options the protocol does not name.
func OptionKeyword(kw string, args ...string) SMTOption {
	return SMTOption{keyword: kw, args: args}
}

// SetLogic selects the background logic. Start-mode-only.
func SetLogic(logic string) SMTOption {
	return SMTOption{keyword: logic, isLogic: true}
}

// startModeOnlyOptions are rejected by solvers once the first assert or
// check-sat has gone out; the session refuses to forward them.
var startModeOnlyOptions = map[string]bool{
	":produce-unsat-cores":       true,
	":produce-unsat-assumptions": true,
	":produce-proofs":            true,
	":produce-assertions":        true,
	":produce-assignments":       true,
	":produce-interpolants":      true,
	":produce-models":            true,
	":global-declarations":       true,
	":interactive-mode":          true,
}

func (o SMTOption) Keyword() string {
	if o.isLogic {
		return "set-logic"
	}
	return o.keyword
}

func (o SMTOption) startModeOnly() bool {
	return o.isLogic || startModeOnlyOptions[o.keyword]
}

func (o SMTOption) command() string {
	if o.isLogic {
		return "(set-logic " + o.keyword + ")"
	}
	parts := append([]string{"set-option", o.keyword}, o.args...)
	return "(" + strings.Join(parts, " ") + ")"
}

// Config is the immutable solver configuration a session was started
// with: the options applied before the interactive session began.
type Config struct {
	Name    string
	Options []SMTOption
}

func NewConfig(name string, opts ...SMTOption) *Config {
	return &Config{Name: name, Options: opts}
}

// StartedWith reports whether the given option keyword was among the
// start-up options; logic selection matches under "set-logic".
// ResetAssertions keeps declarations from all levels, not just the base
// level, when the session started with :global-declarations.
func (c *Config) StartedWith(keyword string) bool {
	for _, o := range c.Options {
		if o.Keyword() == keyword {
			return true
		}
	}
	return false
}

// Package ast holds the structure produced by the shell-line parser.
//
// Every node is a plain value built once per parse; nothing here is shared
// between parses. Nodes render back to shell text through String, which is
// a best-effort reconstruction (quotes are kept verbatim, inter-token spacing
// is normalized to single spaces).
package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Arg is one command argument: a Word, Variable, CommandSubstitution or
// BraceExpansion. The set is closed.
type Arg interface {
	String() string
	argNode()
}

// Word is a literal argument. Quote characters from the input are part of
// the text.
type Word string

func (Word) argNode() {}

func (w Word) String() string { return string(w) }

// Variable is a parameter reference such as $HOME or ${name:-default}.
// Modifiers holds the parameter-expansion operator and everything after it.
type Variable struct {
	Name      string `json:"name"`
	Modifiers string `json:"modifiers,omitempty"`
}

func (Variable) argNode() {}

func (v Variable) String() string {
	if v.Modifiers == "" && isSimpleName(v.Name) {
		return "$" + v.Name
	}
	return "${" + v.Name + v.Modifiers + "}"
}

// CommandSubstitution is a $(...) argument. Command is the inner token text
// joined by single spaces.
type CommandSubstitution struct {
	Command string
}

func (CommandSubstitution) argNode() {}

func (c CommandSubstitution) String() string { return "$(" + c.Command + ")" }

func (c CommandSubstitution) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Type    string `json:"type"`
		Command string `json:"command"`
	}{"command_substitution", c.Command})
}

// BraceExpansion is a {a,b,c} or {1..3} argument, already expanded.
type BraceExpansion struct {
	Values []string
}

func (BraceExpansion) argNode() {}

func (b BraceExpansion) String() string { return "{" + strings.Join(b.Values, ",") + "}" }

func (b BraceExpansion) MarshalJSON() ([]byte, error) {
	values := b.Values
	if values == nil {
		values = []string{}
	}
	return marshalJSON(struct {
		Type   string   `json:"type"`
		Values []string `json:"values"`
	}{"brace_expansion", values})
}

// RedirectKind is the stream-routing direction of a Redirection.
type RedirectKind int

const (
	RedirectInput RedirectKind = iota
	RedirectOutput
	RedirectAppend
	RedirectError // reserved: descriptor forms are reported as output/append with Descriptor set
	RedirectHeredoc
	RedirectHerestring
)

var redirectNames = [...]string{
	RedirectInput:      "input",
	RedirectOutput:     "output",
	RedirectAppend:     "append",
	RedirectError:      "error",
	RedirectHeredoc:    "heredoc",
	RedirectHerestring: "herestring",
}

func (k RedirectKind) String() string {
	if int(k) >= 0 && int(k) < len(redirectNames) {
		return redirectNames[k]
	}
	return fmt.Sprintf("RedirectKind(%d)", int(k))
}

func (k RedirectKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// HeredocPlaceholder stands in for heredoc bodies, which are never read from
// the lines that follow the command.
const HeredocPlaceholder = "heredoc content would be here"

// Redirection routes a stream of a command. Descriptor is nil unless the
// operator carried a leading file-descriptor number.
type Redirection struct {
	Kind       RedirectKind `json:"type"`
	Descriptor *int         `json:"descriptor,omitempty"`
	Target     string       `json:"target"`
	Content    string       `json:"content,omitempty"`
	Combined   bool         `json:"combined,omitempty"` // N&> / N&>> forms
}

// FD returns a descriptor pointer for building Redirections.
func FD(n int) *int { return &n }

func (r Redirection) Operator() string {
	var op string
	switch r.Kind {
	case RedirectInput:
		op = "<"
	case RedirectOutput, RedirectError:
		op = ">"
	case RedirectAppend:
		op = ">>"
	case RedirectHeredoc:
		return "<<"
	case RedirectHerestring:
		return "<<<"
	}
	if r.Combined {
		op = "&" + op
	}
	if r.Descriptor != nil {
		op = strconv.Itoa(*r.Descriptor) + op
	}
	return op
}

func (r Redirection) String() string { return r.Operator() + " " + r.Target }

// Command is one pipeline segment.
type Command struct {
	Name         string        `json:"command"`
	Args         []Arg         `json:"args"`
	Redirections []Redirection `json:"redirections"`
	Background   bool          `json:"background"`
	Subshell     bool          `json:"subshell"`
}

func (c Command) MarshalJSON() ([]byte, error) {
	type commandAlias Command
	alias := commandAlias(c)
	if alias.Args == nil {
		alias.Args = []Arg{}
	}
	if alias.Redirections == nil {
		alias.Redirections = []Redirection{}
	}
	return marshalJSON(alias)
}

func (c Command) String() string {
	parts := make([]string, 0, 1+len(c.Args)+len(c.Redirections))
	if c.Name != "" {
		parts = append(parts, c.Name)
	}
	for _, arg := range c.Args {
		parts = append(parts, arg.String())
	}
	for _, r := range c.Redirections {
		parts = append(parts, r.String())
	}
	s := strings.Join(parts, " ")
	if c.Subshell {
		s = "(" + s + ")"
	}
	if c.Background {
		s += " &"
	}
	return s
}

// Operator is what follows a Pipeline in the statement stream.
type Operator string

const (
	OpNone Operator = ""
	OpAnd  Operator = "&&"
	OpOr   Operator = "||"
	OpSeq  Operator = ";"
)

// Pipeline is a run of commands joined by |.
type Pipeline struct {
	Commands []Command `json:"commands"`
	Operator Operator  `json:"operator,omitempty"`
}

func (p Pipeline) String() string {
	parts := make([]string, len(p.Commands))
	for i, c := range p.Commands {
		parts[i] = c.String()
	}
	return strings.Join(parts, " | ")
}

// ParsedCommand is the root result of a parse.
type ParsedCommand struct {
	Pipelines []Pipeline `json:"pipelines"`
}

func (pc ParsedCommand) MarshalJSON() ([]byte, error) {
	pipelines := pc.Pipelines
	if pipelines == nil {
		pipelines = []Pipeline{}
	}
	return marshalJSON(struct {
		Pipelines []Pipeline `json:"pipelines"`
	}{pipelines})
}

// String re-renders the line. Operators are written after their pipeline.
func (pc ParsedCommand) String() string {
	var sb strings.Builder
	for i, p := range pc.Pipelines {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.String())
		switch p.Operator {
		case OpNone:
		case OpSeq:
			sb.WriteString(";")
		default:
			sb.WriteByte(' ')
			sb.WriteString(string(p.Operator))
		}
	}
	return sb.String()
}

// Commands returns every command of every pipeline in input order.
func (pc ParsedCommand) Commands() []Command {
	var cmds []Command
	for _, p := range pc.Pipelines {
		cmds = append(cmds, p.Commands...)
	}
	return cmds
}

func isSimpleName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if !(ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9')) {
			return len(name) == 1 && strings.ContainsRune("$?#@*", rune(ch))
		}
	}
	return true
}

// marshalJSON encodes v without HTML escaping so operators such as "&&" and
// ">" stay readable.
func marshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

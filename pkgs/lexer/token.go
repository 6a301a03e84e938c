package lexer

import (
	"fmt"

	"github.com/aledsdavies/shparse/pkgs/ast"
)

// Kind is the type of a shell token
type Kind int

const (
	WORD Kind = iota
	OPERATOR
	REDIRECTION
	BACKGROUND
	VARIABLE
	SEMICOLON
	SUBSHELL_START
	SUBSHELL_END
	COMMAND_SUBSTITUTION_START
	COMMAND_SUBSTITUTION_END
	BRACE_EXPANSION
	HEREDOC
	HERESTRING
)

// Pre-computed kind names, matching the names consumers see on the wire
var kindNames = [...]string{
	WORD:                       "word",
	OPERATOR:                   "operator",
	REDIRECTION:                "redirection",
	BACKGROUND:                 "background",
	VARIABLE:                   "variable",
	SEMICOLON:                  "semicolon",
	SUBSHELL_START:             "subshell_start",
	SUBSHELL_END:               "subshell_end",
	COMMAND_SUBSTITUTION_START: "command_substitution_start",
	COMMAND_SUBSTITUTION_END:   "command_substitution_end",
	BRACE_EXPANSION:            "brace_expansion",
	HEREDOC:                    "heredoc",
	HERESTRING:                 "herestring",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Token is a single lexed unit.
//
// Value keeps quote characters verbatim. Raw is the unprocessed buffer text
// for tokens built from accumulated characters; operator tokens leave it
// empty. Vars records the references that made a token a VARIABLE; it never
// replaces Value.
type Token struct {
	Kind   Kind           `json:"type"`
	Value  string         `json:"value"`
	Raw    string         `json:"raw,omitempty"`
	Offset int            `json:"offset"` // 0-based byte offset of the first character
	Vars   []ast.Variable `json:"vars,omitempty"`
}

// Text returns Raw when present, otherwise Value
func (t Token) Text() string {
	if t.Raw != "" {
		return t.Raw
	}
	return t.Value
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Value, t.Offset)
}

// IsWordLike reports whether the token can serve as a command name, argument
// or redirection target
func (t Token) IsWordLike() bool {
	return t.Kind == WORD || t.Kind == VARIABLE
}

// IsRedirect reports whether the token is a redirection operator of any form
func (t Token) IsRedirect() bool {
	return t.Kind == REDIRECTION || t.Kind == HEREDOC || t.Kind == HERESTRING
}

// Is reports whether the token has the given kind and value
func (t Token) Is(kind Kind, value string) bool {
	return t.Kind == kind && t.Value == value
}

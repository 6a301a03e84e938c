package parser

import (
	"regexp"
	"strconv"

	"github.com/aledsdavies/shparse/pkgs/ast"
	"github.com/aledsdavies/shparse/pkgs/invariant"
	"github.com/aledsdavies/shparse/pkgs/lexer"
)

// SubstitutionName is the command name given to a segment that starts with a
// command substitution.
const SubstitutionName = "$(...)"

var descriptorRedirect = regexp.MustCompile(`^(\d+)(&?)(>>?)$`)

// BuildCommand turns the tokens of one pipeline segment into a Command.
// It never fails: tokens with no role in a command are skipped.
func BuildCommand(tokens []lexer.Token, opts ...ParserOpt) ast.Command {
	config := &ParserConfig{}
	for _, opt := range opts {
		opt(config)
	}
	b := &commandBuilder{config: config}
	return b.build(tokens)
}

type commandBuilder struct {
	config *ParserConfig
	cmd    ast.Command
	named  bool
}

func (b *commandBuilder) build(tokens []lexer.Token) ast.Command {
	b.cmd = ast.Command{}
	b.named = false

	if n := len(tokens); n > 0 && tokens[n-1].Kind == lexer.BACKGROUND {
		b.cmd.Background = true
		tokens = tokens[:n-1]
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch {
		case tok.IsRedirect() && i+1 < len(tokens) && tokens[i+1].IsWordLike():
			if r, ok := redirection(tok, tokens[i+1].Value); ok {
				b.cmd.Redirections = append(b.cmd.Redirections, r)
			}
			i++

		case tok.Kind == lexer.COMMAND_SUBSTITUTION_START:
			subst, end := ExtractSubstitution(tokens, i)
			if !b.named {
				b.setName(SubstitutionName)
			}
			b.cmd.Args = append(b.cmd.Args, subst)
			i = end

		case tok.Kind == lexer.BRACE_EXPANSION:
			expansion := ExpandBraces(tok)
			if b.named {
				b.cmd.Args = append(b.cmd.Args, expansion)
				break
			}
			// The first value names the command; the group is kept as an
			// argument only when there is more than that one value.
			name := ""
			if len(expansion.Values) > 0 {
				name = expansion.Values[0]
			}
			b.setName(name)
			if len(expansion.Values) > 1 {
				b.cmd.Args = append(b.cmd.Args, expansion)
			}

		case tok.IsWordLike():
			if !b.named {
				b.setName(tok.Value)
				break
			}
			b.cmd.Args = append(b.cmd.Args, b.argument(tok))

		case tok.Kind == lexer.SUBSHELL_START:
			b.cmd.Subshell = true
		}
	}

	return b.cmd
}

// setName fills the command field. An empty name leaves the slot open so
// that the next name-capable token claims it.
func (b *commandBuilder) setName(name string) {
	invariant.Precondition(!b.named, "command name already set to %q", b.cmd.Name)
	b.cmd.Name = name
	b.named = name != ""
}

func (b *commandBuilder) argument(tok lexer.Token) ast.Arg {
	if b.config.variableArgs && tok.Kind == lexer.VARIABLE {
		if v, ok := lexer.SingleVariable(tok.Value); ok {
			return v
		}
	}
	return ast.Word(tok.Value)
}

// redirection maps an operator token and its target to a Redirection.
func redirection(op lexer.Token, target string) (ast.Redirection, bool) {
	switch op.Value {
	case "<":
		return ast.Redirection{Kind: ast.RedirectInput, Target: target}, true
	case ">":
		return ast.Redirection{Kind: ast.RedirectOutput, Target: target}, true
	case ">>":
		return ast.Redirection{Kind: ast.RedirectAppend, Target: target}, true
	case "<<":
		return ast.Redirection{Kind: ast.RedirectHeredoc, Target: target, Content: ast.HeredocPlaceholder}, true
	case "<<<":
		return ast.Redirection{Kind: ast.RedirectHerestring, Target: target, Content: target}, true
	}

	m := descriptorRedirect.FindStringSubmatch(op.Value)
	if m == nil {
		return ast.Redirection{}, false
	}
	r := ast.Redirection{Kind: ast.RedirectOutput, Target: target, Combined: m[2] == "&"}
	if m[3] == ">>" {
		r.Kind = ast.RedirectAppend
	}
	if fd, err := strconv.Atoi(m[1]); err == nil {
		r.Descriptor = ast.FD(fd)
	}
	return r, true
}

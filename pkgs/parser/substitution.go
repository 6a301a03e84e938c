package parser

import (
	"strings"

	"github.com/aledsdavies/shparse/pkgs/ast"
	"github.com/aledsdavies/shparse/pkgs/invariant"
	"github.com/aledsdavies/shparse/pkgs/lexer"
)

// ExtractSubstitution collects the tokens between the COMMAND_SUBSTITUTION_START
// at tokens[start] and its matching end, joining their text with single
// spaces. Nested substitutions are kept verbatim, markers included.
//
// The returned index is the matching end token, or the last token when the
// substitution is never closed.
func ExtractSubstitution(tokens []lexer.Token, start int) (ast.CommandSubstitution, int) {
	invariant.InRange(start, 0, len(tokens)-1, "substitution start")
	invariant.Precondition(tokens[start].Kind == lexer.COMMAND_SUBSTITUTION_START,
		"substitution must start at %s, got %s", lexer.COMMAND_SUBSTITUTION_START, tokens[start].Kind)

	var parts []string
	depth := 1
	end := len(tokens) - 1

	for i := start + 1; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Kind {
		case lexer.COMMAND_SUBSTITUTION_START:
			depth++
		case lexer.COMMAND_SUBSTITUTION_END:
			depth--
			if depth == 0 {
				end = i
				return ast.CommandSubstitution{Command: strings.Join(parts, " ")}, end
			}
		}
		parts = append(parts, tok.Text())
	}

	return ast.CommandSubstitution{Command: strings.Join(parts, " ")}, end
}

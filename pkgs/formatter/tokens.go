package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/aledsdavies/shparse/pkgs/lexer"
)

// FormatTokens prints one row per token: offset, kind, quoted value, and the
// variables detected in it.
func FormatTokens(w io.Writer, tokens []lexer.Token, useColor bool) {
	if len(tokens) == 0 {
		_, _ = fmt.Fprintf(w, "(no tokens)\n")
		return
	}

	_, _ = fmt.Fprintf(w, "%-6s  %-26s  %s\n", "OFFSET", "KIND", "VALUE")
	for _, tok := range tokens {
		// Pad before coloring so escape codes do not skew the columns
		kind := Colorize(fmt.Sprintf("%-26s", tok.Kind), kindColor(tok.Kind), useColor)
		line := fmt.Sprintf("%-6d  %s  %q", tok.Offset, kind, tok.Value)
		if len(tok.Vars) > 0 {
			names := make([]string, len(tok.Vars))
			for i, v := range tok.Vars {
				names[i] = v.String()
			}
			line += "  " + Colorize("vars: "+strings.Join(names, " "), ColorGray, useColor)
		}
		_, _ = fmt.Fprintf(w, "%s\n", strings.TrimRight(line, " "))
	}
}

func kindColor(k lexer.Kind) string {
	switch k {
	case lexer.OPERATOR, lexer.SEMICOLON, lexer.BACKGROUND:
		return ColorRed
	case lexer.REDIRECTION, lexer.HEREDOC, lexer.HERESTRING:
		return ColorYellow
	case lexer.VARIABLE, lexer.COMMAND_SUBSTITUTION_START, lexer.COMMAND_SUBSTITUTION_END:
		return ColorCyan
	case lexer.BRACE_EXPANSION:
		return ColorGreen
	case lexer.SUBSHELL_START, lexer.SUBSHELL_END:
		return ColorGray
	default:
		return ColorBlue
	}
}

package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/aledsdavies/shparse/pkgs/ast"
)

// Terminal colors
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// Colorize wraps text in color when useColor is set
func Colorize(text, color string, useColor bool) string {
	if !useColor {
		return text
	}
	return color + text + ColorReset
}

// FormatTree renders a parsed line as a tree: one branch per pipeline, one
// leaf per command.
//
//	ls | wc && echo done
//	├─ pipeline 1 &&
//	│  ├─ ls
//	│  └─ wc
//	└─ pipeline 2
//	   └─ echo done
func FormatTree(w io.Writer, pc *ast.ParsedCommand, useColor bool) {
	if pc == nil || len(pc.Pipelines) == 0 {
		_, _ = fmt.Fprintf(w, "(no pipelines)\n")
		return
	}

	_, _ = fmt.Fprintf(w, "%s\n", pc.String())
	for i, p := range pc.Pipelines {
		isLast := i == len(pc.Pipelines)-1
		renderPipeline(w, i+1, p, isLast, useColor)
	}
}

func renderPipeline(w io.Writer, n int, p ast.Pipeline, isLast, useColor bool) {
	prefix, indent := "├─ ", "│  "
	if isLast {
		prefix, indent = "└─ ", "   "
	}

	header := fmt.Sprintf("pipeline %d", n)
	if p.Operator != ast.OpNone {
		header += " " + Colorize(string(p.Operator), ColorRed, useColor)
	}
	_, _ = fmt.Fprintf(w, "%s%s\n", prefix, header)

	if len(p.Commands) == 0 {
		_, _ = fmt.Fprintf(w, "%s└─ %s\n", indent, Colorize("(empty)", ColorGray, useColor))
		return
	}
	for i, cmd := range p.Commands {
		branch := "├─ "
		if i == len(p.Commands)-1 {
			branch = "└─ "
		}
		_, _ = fmt.Fprintf(w, "%s%s%s\n", indent, branch, renderCommand(cmd, useColor))
	}
}

func renderCommand(cmd ast.Command, useColor bool) string {
	var parts []string
	if cmd.Name == "" {
		parts = append(parts, Colorize("(no command)", ColorGray, useColor))
	} else {
		parts = append(parts, Colorize(cmd.Name, ColorBlue, useColor))
	}

	for _, arg := range cmd.Args {
		parts = append(parts, renderArg(arg, useColor))
	}
	for _, r := range cmd.Redirections {
		parts = append(parts, Colorize(r.String(), ColorYellow, useColor))
	}

	var flags []string
	if cmd.Subshell {
		flags = append(flags, "subshell")
	}
	if cmd.Background {
		flags = append(flags, "background")
	}
	if len(flags) > 0 {
		parts = append(parts, Colorize("["+strings.Join(flags, ", ")+"]", ColorGray, useColor))
	}

	return strings.Join(parts, " ")
}

func renderArg(arg ast.Arg, useColor bool) string {
	switch a := arg.(type) {
	case ast.CommandSubstitution:
		return Colorize(a.String(), ColorCyan, useColor)
	case ast.BraceExpansion:
		return Colorize(a.String(), ColorGreen, useColor)
	case ast.Variable:
		return Colorize(a.String(), ColorCyan, useColor)
	default:
		return arg.String()
	}
}

package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/aledsdavies/shparse/pkgs/ast"
	"github.com/aledsdavies/shparse/pkgs/lexer"
)

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		name   string
		tokens []lexer.Token
		want   ast.Command
	}{
		{
			name:   "no tokens",
			tokens: nil,
			want:   ast.Command{},
		},
		{
			name:   "only background",
			tokens: []lexer.Token{tok(lexer.BACKGROUND, "&")},
			want:   ast.Command{Background: true},
		},
		{
			name:   "words",
			tokens: []lexer.Token{tok(lexer.WORD, "git"), tok(lexer.WORD, "status")},
			want:   ast.Cmd("git", "status"),
		},
		{
			name: "brace names the command",
			tokens: []lexer.Token{
				tok(lexer.BRACE_EXPANSION, "{vim,nano}"),
				tok(lexer.WORD, "file"),
			},
			want: ast.Cmd("vim").WithArgs(ast.Braces("vim", "nano"), ast.Word("file")),
		},
		{
			name: "single-value brace names the command only",
			tokens: []lexer.Token{
				tok(lexer.BRACE_EXPANSION, "{1..1}"),
				tok(lexer.WORD, "x"),
			},
			want: ast.Cmd("1", "x"),
		},
		{
			name: "empty range leaves the name open",
			tokens: []lexer.Token{
				tok(lexer.BRACE_EXPANSION, "{a..b}"),
				tok(lexer.WORD, "ls"),
			},
			want: ast.Cmd("ls"),
		},
		{
			name: "empty first value keeps the group",
			tokens: []lexer.Token{
				tok(lexer.BRACE_EXPANSION, "{,x}"),
				tok(lexer.WORD, "ls"),
			},
			want: ast.Cmd("ls").WithArgs(ast.Braces("", "x")),
		},
		{
			name: "stray markers are skipped",
			tokens: []lexer.Token{
				tok(lexer.WORD, "a"),
				tok(lexer.SUBSHELL_END, ")"),
				tok(lexer.COMMAND_SUBSTITUTION_END, ")"),
				tok(lexer.BACKGROUND, "&"),
				tok(lexer.WORD, "b"),
			},
			want: ast.Cmd("a", "b"),
		},
		{
			name: "redirect target must be word-like",
			tokens: []lexer.Token{
				tok(lexer.WORD, "a"),
				tok(lexer.REDIRECTION, ">"),
				tok(lexer.BRACE_EXPANSION, "{x,y}"),
			},
			want: ast.Cmd("a").WithArgs(ast.Braces("x", "y")),
		},
		{
			name: "variable target",
			tokens: []lexer.Token{
				tok(lexer.WORD, "a"),
				tok(lexer.REDIRECTION, ">"),
				tok(lexer.VARIABLE, "$OUT"),
			},
			want: ast.Cmd("a").WithRedirect(ast.Redirection{Kind: ast.RedirectOutput, Target: "$OUT"}),
		},
		{
			name: "redirect before the name",
			tokens: []lexer.Token{
				tok(lexer.REDIRECTION, "<"),
				tok(lexer.WORD, "in"),
				tok(lexer.WORD, "sort"),
			},
			want: ast.Cmd("sort").WithRedirect(ast.Redirection{Kind: ast.RedirectInput, Target: "in"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildCommand(tt.tokens)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("BuildCommand mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildCommandVariableArgs(t *testing.T) {
	tokens := []lexer.Token{
		tok(lexer.WORD, "echo"),
		tok(lexer.VARIABLE, "${name:=guest}"),
		tok(lexer.WORD, "$literal"),
	}
	want := ast.Cmd("echo").WithArgs(
		ast.Variable{Name: "name", Modifiers: ":=guest"},
		ast.Word("$literal"),
	)
	got := BuildCommand(tokens, WithVariableArgs())
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("BuildCommand mismatch (-want +got):\n%s", diff)
	}
}

func TestRedirectionOperators(t *testing.T) {
	tests := []struct {
		op     string
		want   ast.Redirection
		wantOK bool
	}{
		{"<", ast.Redirection{Kind: ast.RedirectInput, Target: "t"}, true},
		{">", ast.Redirection{Kind: ast.RedirectOutput, Target: "t"}, true},
		{">>", ast.Redirection{Kind: ast.RedirectAppend, Target: "t"}, true},
		{"<<", ast.Redirection{Kind: ast.RedirectHeredoc, Target: "t", Content: ast.HeredocPlaceholder}, true},
		{"<<<", ast.Redirection{Kind: ast.RedirectHerestring, Target: "t", Content: "t"}, true},
		{"2>", ast.Redirection{Kind: ast.RedirectOutput, Descriptor: ast.FD(2), Target: "t"}, true},
		{"2>>", ast.Redirection{Kind: ast.RedirectAppend, Descriptor: ast.FD(2), Target: "t"}, true},
		{"2&>", ast.Redirection{Kind: ast.RedirectOutput, Descriptor: ast.FD(2), Target: "t", Combined: true}, true},
		{"2&>>", ast.Redirection{Kind: ast.RedirectAppend, Descriptor: ast.FD(2), Target: "t", Combined: true}, true},
		{"&>", ast.Redirection{}, false},
		{"|", ast.Redirection{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			got, ok := redirection(tok(lexer.REDIRECTION, tt.op), "t")
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("redirection(%q) mismatch (-want +got):\n%s", tt.op, diff)
			}
			if ok && got.Operator() != tt.op {
				t.Errorf("Operator() = %q, want %q", got.Operator(), tt.op)
			}
		})
	}
}

package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/shparse/pkgs/ast"
)

func TestDetectVariables(t *testing.T) {
	tests := []struct {
		text string
		want []ast.Variable
	}{
		{"plain", nil},
		{"$", nil},
		{"$HOME", []ast.Variable{{Name: "HOME"}}},
		{"a$b-c", []ast.Variable{{Name: "b"}}},
		{"$1$2", []ast.Variable{{Name: "1"}, {Name: "2"}}},
		{"$?", []ast.Variable{{Name: "?"}}},
		{"$$", []ast.Variable{{Name: "$"}}},
		{"${HOME}", []ast.Variable{{Name: "HOME"}}},
		{"${x:-def}", []ast.Variable{{Name: "x", Modifiers: ":-def"}}},
		{"${x:=def}", []ast.Variable{{Name: "x", Modifiers: ":=def"}}},
		{"${x:?missing}", []ast.Variable{{Name: "x", Modifiers: ":?missing"}}},
		{"${x:+alt}", []ast.Variable{{Name: "x", Modifiers: ":+alt"}}},
		{"${x+alt}", []ast.Variable{{Name: "x", Modifiers: "+alt"}}},
		{"${path##*/}", []ast.Variable{{Name: "path", Modifiers: "##*/"}}},
		{"${path#*/}", []ast.Variable{{Name: "path", Modifiers: "#*/"}}},
		{"${file%%.*}", []ast.Variable{{Name: "file", Modifiers: "%%.*"}}},
		{"${file%.txt}", []ast.Variable{{Name: "file", Modifiers: "%.txt"}}},
		{"${s/a/b}", []ast.Variable{{Name: "s", Modifiers: "/a/b"}}},
		{"${#arr}", []ast.Variable{{Name: "#arr"}}},
		{"${x?err}", []ast.Variable{{Name: "x", Modifiers: "?err"}}},
		{"${arr[0]}", []ast.Variable{{Name: "arr", Modifiers: "[0]"}}},
		{"${x:1:2}", []ast.Variable{{Name: "x", Modifiers: ":1:2"}}},
		{"${!ref}", []ast.Variable{{Name: "!ref"}}},
		{`"$A and ${B}"`, []ast.Variable{{Name: "A"}, {Name: "B"}}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DetectVariables(tt.text)); diff != "" {
				t.Errorf("DetectVariables(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestSingleVariable(t *testing.T) {
	tests := []struct {
		text   string
		want   ast.Variable
		wantOK bool
	}{
		{"$HOME", ast.Variable{Name: "HOME"}, true},
		{"${x:-y}", ast.Variable{Name: "x", Modifiers: ":-y"}, true},
		{"$?", ast.Variable{Name: "?"}, true},
		{"${arr[0]}", ast.Variable{Name: "arr", Modifiers: "[0]"}, true},
		{"$HOME/bin", ast.Variable{}, false},
		{"pre$HOME", ast.Variable{}, false},
		{`"$HOME"`, ast.Variable{}, false},
		{"$A$B", ast.Variable{}, false},
		{"word", ast.Variable{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := SingleVariable(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("SingleVariable(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SingleVariable(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

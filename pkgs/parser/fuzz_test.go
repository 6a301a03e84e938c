package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/shparse/pkgs/lexer"
)

// Fuzz tests for parser robustness:
//
// 1. FuzzParseNoPanic - any line produces a tree
// 2. FuzzParseDeterminism - same line, same tree
// 3. FuzzTokenOffsets - offsets stay in bounds and never decrease

func addSeedCorpus(f *testing.F) {
	// Basic commands
	f.Add("")
	f.Add("   ")
	f.Add("echo hello world")
	f.Add("ls -la | grep foo")
	f.Add("cmd1 && cmd2 || cmd3")
	f.Add("a; b; c")
	f.Add("a && b; c")
	f.Add("sleep 5 &")

	// Quoting and escapes
	f.Add(`echo 'a b' "c d"`)
	f.Add(`echo "it's" 'say "hi"'`)
	f.Add(`echo \"x\" a\ b`)
	f.Add(`echo 'unterminated`)
	f.Add(`echo "unterminated`)
	f.Add(`trailing\`)

	// Variables
	f.Add("echo $HOME ${PATH} $? $$ $1")
	f.Add("echo ${x:-default} ${y##*/} ${z%.txt}")
	f.Add("echo ${unterminated")

	// Substitutions and groups
	f.Add("echo $(date +%s)")
	f.Add("echo $(a $(b) c)")
	f.Add("echo $(unterminated")
	f.Add("(cd /tmp; ls)")
	f.Add("((nested))")
	f.Add("echo a)")
	f.Add("diff <(ls a) >(cat)")
	f.Add("echo $((1 + 2))")

	// Brace expansion
	f.Add("echo file{1,2,3}.txt")
	f.Add("echo {1..10} {10..1}")
	f.Add("echo {a..z}")
	f.Add("echo {a,{b,c}}")
	f.Add("{vim,nano} file")
	f.Add("find . -exec rm {} ;")
	f.Add("echo {1..99999999999999999999}")

	// Redirections
	f.Add("cat < in > out >> log")
	f.Add("make 2> err 2>> err 1&> all 1&>> all")
	f.Add("cat << EOF")
	f.Add("grep x <<< $VAR")
	f.Add("echo >")
	f.Add("> out")

	// Pathological
	f.Add("|||")
	f.Add(";;;")
	f.Add("&&&&")
	f.Add("((((((((")
	f.Add("))))))))")
	f.Add("$($($($(")
	f.Add("{{{{}}}}")
	f.Add("# only a comment")
}

// FuzzParseNoPanic verifies any input yields a tree with non-nil pipelines.
func FuzzParseNoPanic(f *testing.F) {
	addSeedCorpus(f)

	f.Fuzz(func(t *testing.T, input string) {
		got := Parse(input, WithLogger(quietLogger()))
		if got == nil || got.Pipelines == nil {
			t.Fatalf("Parse(%q) returned nil pipelines", input)
		}
		_ = got.String()
	})
}

// FuzzParseDeterminism verifies two parses of the same input agree.
func FuzzParseDeterminism(f *testing.F) {
	addSeedCorpus(f)

	f.Fuzz(func(t *testing.T, input string) {
		first := Parse(input, WithLogger(quietLogger()))
		second := Parse(input, WithLogger(quietLogger()))
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("non-deterministic parse of %q (-first +second):\n%s", input, diff)
		}
	})
}

// FuzzTokenOffsets verifies token offsets are monotonic and in bounds.
func FuzzTokenOffsets(f *testing.F) {
	addSeedCorpus(f)

	f.Fuzz(func(t *testing.T, input string) {
		tokens := lexer.Tokenize(input, lexer.WithLogger(quietLogger()))
		prev := -1
		for i, tok := range tokens {
			if tok.Offset < 0 || tok.Offset >= len(input) {
				t.Fatalf("token %d %v offset out of bounds for %q", i, tok, input)
			}
			if tok.Offset < prev {
				t.Fatalf("token %d %v offset went backwards for %q", i, tok, input)
			}
			prev = tok.Offset
		}
	})
}

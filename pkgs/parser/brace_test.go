package parser

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/shparse/pkgs/lexer"
)

func TestExpandBraces(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"{1..3}", []string{"1", "2", "3"}},
		{"{3..1}", []string{"3", "2", "1"}},
		{"{-1..1}", []string{"-1", "0", "1"}},
		{"{5..5}", []string{"5"}},
		{"{ 1 .. 2 }", []string{"1", "2"}},
		{"{1..3..2}", []string{"1", "2", "3"}},
		{"{1..3x}", []string{"1", "2", "3"}},
		{"{+2..0}", []string{"2", "1", "0"}},
		{"{1.5..3}", []string{"1", "2", "3"}},
		{"{x1..3}", []string{}},
		{"{a..c}", []string{}},
		{"{1..}", []string{}},
		{"{1..99999999999}", []string{}},
		{"{a,b,c}", []string{"a", "b", "c"}},
		{"{a, b ,c}", []string{"a", "b", "c"}},
		{"{,x}", []string{"", "x"}},
		{"{b,c}}", []string{"b", "c}"}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got := ExpandBraces(lexer.Token{Kind: lexer.BRACE_EXPANSION, Value: tt.value})
			if diff := cmp.Diff(tt.want, got.Values); diff != "" {
				t.Errorf("ExpandBraces(%q) mismatch (-want +got):\n%s", tt.value, diff)
			}
		})
	}
}

func TestExpandBracesRangeLimit(t *testing.T) {
	last := strconv.Itoa(MaxRangeSize - 1)
	got := ExpandBraces(lexer.Token{Kind: lexer.BRACE_EXPANSION, Value: "{0.." + last + "}"})
	if len(got.Values) != MaxRangeSize {
		t.Errorf("got %d values, want %d", len(got.Values), MaxRangeSize)
	}

	over := strconv.Itoa(MaxRangeSize)
	got = ExpandBraces(lexer.Token{Kind: lexer.BRACE_EXPANSION, Value: "{0.." + over + "}"})
	if len(got.Values) != 0 {
		t.Errorf("range past the limit produced %d values", len(got.Values))
	}
}

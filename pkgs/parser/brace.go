package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aledsdavies/shparse/pkgs/ast"
	"github.com/aledsdavies/shparse/pkgs/lexer"
)

// MaxRangeSize bounds the number of values a numeric range may produce.
// Larger ranges resolve to an empty expansion like any other bad range.
const MaxRangeSize = 1 << 16

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// ExpandBraces resolves a BRACE_EXPANSION token into its value list.
//
//	{1..3}   -> 1 2 3
//	{3..1}   -> 3 2 1
//	{a, b,c} -> a b c
//
// A range endpoint is read up to its first non-digit, so {1..3x} is {1..3}.
// Endpoints that do not start with an integer yield an empty expansion.
func ExpandBraces(tok lexer.Token) ast.BraceExpansion {
	content := tok.Value
	if len(content) >= 2 {
		content = content[1 : len(content)-1]
	} else {
		content = ""
	}

	if strings.Contains(content, "..") {
		return ast.BraceExpansion{Values: expandRange(content)}
	}

	parts := strings.Split(content, ",")
	values := make([]string, len(parts))
	for i, part := range parts {
		values[i] = strings.TrimSpace(part)
	}
	return ast.BraceExpansion{Values: values}
}

func expandRange(content string) []string {
	bounds := strings.Split(content, "..")
	start, ok := parseEndpoint(bounds[0])
	if !ok {
		return []string{}
	}
	end, ok := parseEndpoint(bounds[1])
	if !ok {
		return []string{}
	}

	step := 1
	span := end - start
	if start > end {
		step = -1
		span = start - end
	}
	if span < 0 || span >= MaxRangeSize {
		return []string{}
	}

	values := make([]string, 0, span+1)
	for n := start; ; n += step {
		values = append(values, strconv.Itoa(n))
		if n == end {
			break
		}
	}
	return values
}

// parseEndpoint reads the leading signed integer of a range bound
func parseEndpoint(bound string) (int, bool) {
	digits := leadingInt.FindString(strings.TrimSpace(bound))
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	return n, err == nil
}

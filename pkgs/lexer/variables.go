package lexer

import (
	"regexp"
	"strings"

	"github.com/aledsdavies/shparse/pkgs/ast"
)

var (
	// $name, $$, $?, $#, $@, $*, $<digits>, ${...}
	variablePattern = regexp.MustCompile(`\$(\w+|\$|\?|#|@|\*|\d+|\{[^}]+\})`)

	// Parameter name at the start of a ${...} body. Whatever follows it
	// (":-def", "##*/", "[0]", "?err") is the modifier.
	namePattern = regexp.MustCompile(`^\w+`)
)

// DetectVariables returns every variable reference in text, in order.
// The text itself is not changed; this only reports what is referenced.
func DetectVariables(text string) []ast.Variable {
	if !strings.Contains(text, "$") {
		return nil
	}

	var vars []ast.Variable
	for _, m := range variablePattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if strings.HasPrefix(name, "{") && strings.HasSuffix(name, "}") {
			vars = append(vars, splitBraced(name[1:len(name)-1]))
			continue
		}
		vars = append(vars, ast.Variable{Name: name})
	}
	return vars
}

// splitBraced separates the name of a ${...} body from its modifier
func splitBraced(body string) ast.Variable {
	name := namePattern.FindString(body)
	if name == "" {
		return ast.Variable{Name: body}
	}
	return ast.Variable{Name: name, Modifiers: body[len(name):]}
}

// SingleVariable returns the reference when text is exactly one variable
// reference and nothing else
func SingleVariable(text string) (ast.Variable, bool) {
	loc := variablePattern.FindStringSubmatchIndex(text)
	if loc == nil || loc[0] != 0 || loc[1] != len(text) {
		return ast.Variable{}, false
	}
	vars := DetectVariables(text)
	if len(vars) != 1 {
		return ast.Variable{}, false
	}
	return vars[0], true
}

// classify builds the token for a flushed buffer: VARIABLE when the text
// references any variable, WORD otherwise
func classify(text string, offset int) Token {
	vars := DetectVariables(text)
	kind := WORD
	if len(vars) > 0 {
		kind = VARIABLE
	}
	return Token{Kind: kind, Value: text, Raw: text, Offset: offset, Vars: vars}
}

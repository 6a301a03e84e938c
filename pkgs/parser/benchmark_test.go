package parser

import (
	"strings"
	"testing"

	"github.com/aledsdavies/shparse/pkgs/lexer"
)

// BenchmarkParseCore measures lex + parse across line complexity levels.
func BenchmarkParseCore(b *testing.B) {
	scenarios := map[string]string{
		"empty":   "",
		"simple":  "echo hello world",
		"pipes":   "cat access.log | grep -v healthz | awk '{print $1}' | sort | uniq -c",
		"complex": generateComplexLine(),
	}

	for name, input := range scenarios {
		b.Run(name, func(b *testing.B) {
			opts := []ParserOpt{WithLogger(quietLogger())}
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_ = Parse(input, opts...)
			}
		})
	}
}

// BenchmarkTelemetryModes measures observability overhead.
func BenchmarkTelemetryModes(b *testing.B) {
	input := generateComplexLine()

	modes := map[string][]ParserOpt{
		"production": {},
		"monitoring": {WithTelemetryBasic()},
		"debugging":  {WithTelemetryTiming(), WithDebugDetailed()},
	}

	for mode, opts := range modes {
		b.Run(mode, func(b *testing.B) {
			opts := append([]ParserOpt{WithLogger(quietLogger())}, opts...)
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_ = Inspect(input, opts...)
			}
		})
	}
}

// BenchmarkParseTokens isolates the structural pass from lexing.
func BenchmarkParseTokens(b *testing.B) {
	input := generateComplexLine()
	tokens := lexer.Tokenize(input, lexer.WithLogger(quietLogger()))
	opts := []ParserOpt{WithLogger(quietLogger())}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = ParseTokens(tokens, opts...)
	}
}

func generateComplexLine() string {
	parts := []string{
		`cd "$PROJECT_ROOT"`,
		`make build 2> build.err && ./bin/app --config ${CONFIG:-app.yaml} > app.log &`,
		`for_each {dev,staging,prod} $(git rev-parse --short HEAD)`,
		`(cat <<< "$BODY" | curl -X POST -d @- https://example.com) || echo failed`,
		`seq {1..20} | xargs -n1 echo >> counts.txt`,
	}
	return strings.Join(parts, "; ")
}

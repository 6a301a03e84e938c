package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/aledsdavies/shparse/pkgs/ast"
	"github.com/aledsdavies/shparse/pkgs/invariant"
	"github.com/aledsdavies/shparse/pkgs/lexer"
)

// Report is everything a parse produced: the tree plus the intermediate
// token stream and optional diagnostics.
type Report struct {
	Input       string // trimmed line; token offsets index into it
	Tokens      []lexer.Token
	Parsed      *ast.ParsedCommand
	OpenModes   []lexer.Mode // lexer modes still open at end of input
	Telemetry   *ParseTelemetry
	LexTelem    *lexer.Telemetry
	DebugEvents []DebugEvent
	LexEvents   []lexer.DebugEvent
}

// Parse parses one command line. It never fails; malformed input yields a
// best-effort tree.
func Parse(input string, opts ...ParserOpt) *ast.ParsedCommand {
	return Inspect(input, opts...).Parsed
}

// Inspect parses input and keeps the token stream and diagnostics.
func Inspect(input string, opts ...ParserOpt) *Report {
	config := newConfig(opts)

	var telemetry *ParseTelemetry
	var startTotal time.Time
	if config.telemetry >= TelemetryBasic {
		telemetry = &ParseTelemetry{}
		if config.telemetry >= TelemetryTiming {
			startTotal = time.Now()
		}
	}

	trimmed := strings.TrimSpace(input)
	report := &Report{Input: trimmed, Telemetry: telemetry}
	if trimmed == "" {
		report.Parsed = ast.Parsed()
		return report
	}

	var startLex time.Time
	if config.telemetry >= TelemetryTiming {
		startLex = time.Now()
	}

	lex := lexer.NewLexer(trimmed, config.lexerOpts()...)
	tokens := lex.Tokens()
	report.Tokens = tokens
	report.OpenModes = lex.OpenModes()
	report.LexTelem = lex.Telemetry()
	report.LexEvents = lex.DebugEvents()

	if telemetry != nil {
		telemetry.TokenCount = len(tokens)
		if config.telemetry >= TelemetryTiming {
			telemetry.LexTime = time.Since(startLex)
		}
	}

	var startParse time.Time
	if config.telemetry >= TelemetryTiming {
		startParse = time.Now()
	}

	p := &parser{tokens: tokens, config: config}
	if config.debug > DebugOff {
		p.debugEvents = make([]DebugEvent, 0, 16)
	}
	report.Parsed = p.parse()
	report.DebugEvents = p.debugEvents

	if telemetry != nil {
		telemetry.BlockCount = p.blocks
		telemetry.PipelineCount = len(report.Parsed.Pipelines)
		telemetry.CommandCount = len(report.Parsed.Commands())
		if config.telemetry >= TelemetryTiming {
			telemetry.ParseTime = time.Since(startParse)
			telemetry.TotalTime = time.Since(startTotal)
		}
	}

	config.logger.Debug("parsed command line",
		"tokens", len(tokens),
		"pipelines", len(report.Parsed.Pipelines))

	return report
}

// ParseTokens builds the tree from an already lexed token stream
func ParseTokens(tokens []lexer.Token, opts ...ParserOpt) *ast.ParsedCommand {
	p := &parser{tokens: tokens, config: newConfig(opts)}
	return p.parse()
}

type parser struct {
	tokens      []lexer.Token
	config      *ParserConfig
	builder     commandBuilder
	blocks      int
	debugEvents []DebugEvent
}

// segment is a contiguous token range together with the separator that
// closed it. base is the index of its first token in the full stream.
type segment struct {
	tokens []lexer.Token
	base   int
	sep    lexer.Token
}

// parse splits on ";" then "&&"/"||" then "|". A block that is not the
// last one forces ";" onto the newest pipeline, overwriting any logical
// operator recorded for it.
func (p *parser) parse() *ast.ParsedCommand {
	p.builder.config = p.config
	result := ast.Parsed()

	blocks := split(p.tokens, 0, func(t lexer.Token) bool { return t.Kind == lexer.SEMICOLON })
	p.blocks = len(blocks)

	for i, block := range blocks {
		p.recordDebugEvent(DebugPaths, "enter_block", block.base, fmt.Sprintf("block %d", i))

		logical := split(block.tokens, block.base, func(t lexer.Token) bool {
			return t.Is(lexer.OPERATOR, "&&") || t.Is(lexer.OPERATOR, "||")
		})
		for _, unit := range logical {
			pipeline := p.pipeline(unit)
			result.Pipelines = append(result.Pipelines, pipeline)
			p.recordDebugEvent(DebugPaths, "pipeline", unit.base, pipeline.String())
		}

		if i < len(blocks)-1 && len(result.Pipelines) > 0 {
			result.Pipelines[len(result.Pipelines)-1].Operator = ast.OpSeq
		}

		p.recordDebugEvent(DebugPaths, "exit_block", block.base, fmt.Sprintf("block %d", i))
	}

	return result
}

func (p *parser) pipeline(unit segment) ast.Pipeline {
	pipeline := ast.Pipeline{
		Commands: []ast.Command{},
		Operator: ast.Operator(unit.sep.Value),
	}

	for _, seg := range split(unit.tokens, unit.base, func(t lexer.Token) bool { return t.Is(lexer.OPERATOR, "|") }) {
		cmd := p.builder.build(seg.tokens)
		pipeline.Commands = append(pipeline.Commands, cmd)
		p.recordDebugEvent(DebugDetailed, "command", seg.base, cmd.String())
	}

	invariant.Postcondition(pipeline.Operator == ast.OpNone ||
		pipeline.Operator == ast.OpAnd || pipeline.Operator == ast.OpOr,
		"pipeline operator %q before block handling", pipeline.Operator)
	return pipeline
}

// split cuts tokens at every separator. Each separator closes the segment
// before it, even an empty one; a trailing segment is kept only when it has
// tokens.
func split(tokens []lexer.Token, base int, isSep func(lexer.Token) bool) []segment {
	var segments []segment
	start := 0
	for i, tok := range tokens {
		if !isSep(tok) {
			continue
		}
		segments = append(segments, segment{tokens: tokens[start:i], base: base + start, sep: tok})
		start = i + 1
	}
	if start < len(tokens) {
		segments = append(segments, segment{tokens: tokens[start:], base: base + start})
	}
	return segments
}

func (p *parser) recordDebugEvent(level DebugLevel, event string, pos int, context string) {
	if p.config.debug < level || p.debugEvents == nil {
		return
	}
	p.debugEvents = append(p.debugEvents, DebugEvent{
		Event:    event,
		TokenPos: pos,
		Context:  context,
	})
	p.config.logger.Debug(event, "token", pos, "context", context)
}

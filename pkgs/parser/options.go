package parser

import (
	"log/slog"
	"time"

	"github.com/aledsdavies/shparse/pkgs/lexer"
)

// ParserOpt configures Parse, Inspect and ParseTokens
type ParserOpt func(*ParserConfig)

// TelemetryMode selects which metrics Inspect collects
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // nothing collected
	TelemetryBasic                       // token, block, pipeline and command counts
	TelemetryTiming                      // counts plus lex/parse durations
)

// DebugLevel selects how much of the parse is traced as DebugEvents
type DebugLevel int

const (
	DebugOff      DebugLevel = iota
	DebugPaths                      // Block and segment tracing
	DebugDetailed                   // Every command built
)

type ParserConfig struct {
	telemetry    TelemetryMode
	debug        DebugLevel
	logger       *slog.Logger
	variableArgs bool
}

// WithTelemetryBasic counts tokens, blocks, pipelines and commands
func WithTelemetryBasic() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming adds lex and parse durations to the counts
func WithTelemetryTiming() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryTiming
	}
}

// WithDebugPaths traces block and pipeline boundaries
func WithDebugPaths() ParserOpt {
	return func(c *ParserConfig) {
		c.debug = DebugPaths
	}
}

// WithDebugDetailed also traces every command built
func WithDebugDetailed() ParserOpt {
	return func(c *ParserConfig) {
		c.debug = DebugDetailed
	}
}

// WithLogger routes parser and lexer debug logging to logger
func WithLogger(logger *slog.Logger) ParserOpt {
	return func(c *ParserConfig) {
		c.logger = logger
	}
}

// WithVariableArgs emits arguments that are exactly one variable reference
// as ast.Variable instead of ast.Word.
func WithVariableArgs() ParserOpt {
	return func(c *ParserConfig) {
		c.variableArgs = true
	}
}

func newConfig(opts []ParserOpt) *ParserConfig {
	config := &ParserConfig{}
	for _, opt := range opts {
		opt(config)
	}
	if config.logger == nil {
		config.logger = defaultLogger()
	}
	return config
}

// lexerOpts forwards the settings the lexer understands.
func (c *ParserConfig) lexerOpts() []lexer.LexerOpt {
	opts := []lexer.LexerOpt{lexer.WithLogger(c.logger)}
	switch c.debug {
	case DebugPaths:
		opts = append(opts, lexer.WithDebugPaths())
	case DebugDetailed:
		opts = append(opts, lexer.WithDebugDetailed())
	}
	switch c.telemetry {
	case TelemetryBasic:
		opts = append(opts, lexer.WithTelemetryBasic())
	case TelemetryTiming:
		opts = append(opts, lexer.WithTelemetryTiming())
	}
	return opts
}

// ParseTelemetry is what Inspect measured for one input
type ParseTelemetry struct {
	LexTime       time.Duration // Time spent lexing
	ParseTime     time.Duration // Time spent building pipelines
	TotalTime     time.Duration // Total parse time
	TokenCount    int           // Number of tokens
	BlockCount    int           // Number of semicolon blocks
	PipelineCount int           // Number of pipelines produced
	CommandCount  int           // Number of commands produced
}

// DebugEvent marks one step of the structural parse
type DebugEvent struct {
	Event    string // "enter_block", "exit_block", "pipeline", "command"
	TokenPos int    // Index of the first token of the unit
	Context  string // Additional context
}

func defaultLogger() *slog.Logger {
	return lexer.StderrLogger("SHPARSE_DEBUG_PARSER")
}

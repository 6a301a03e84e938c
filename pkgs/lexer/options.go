package lexer

import (
	"log/slog"
	"os"
	"time"
)

// LexerOpt configures a Lexer
type LexerOpt func(*LexerConfig)

// TelemetryMode selects which metrics the lexer keeps
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // nothing kept
	TelemetryBasic                       // token and per-kind counts
	TelemetryTiming                      // counts plus wall time of the pass
)

// DebugLevel selects which lexer steps become DebugEvents
type DebugLevel int

const (
	DebugOff      DebugLevel = iota
	DebugPaths                      // Mode transitions
	DebugDetailed                   // Mode transitions + every emitted token
)

type LexerConfig struct {
	telemetry TelemetryMode
	debug     DebugLevel
	logger    *slog.Logger
}

// WithTelemetryBasic counts tokens in total and per kind
func WithTelemetryBasic() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming also measures how long lexing took
func WithTelemetryTiming() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryTiming
	}
}

// WithDebugPaths records mode transitions as debug events
func WithDebugPaths() LexerOpt {
	return func(c *LexerConfig) {
		c.debug = DebugPaths
	}
}

// WithDebugDetailed records mode transitions and token emission
func WithDebugDetailed() LexerOpt {
	return func(c *LexerConfig) {
		c.debug = DebugDetailed
	}
}

// WithLogger sends lexer debug logging to logger
func WithLogger(logger *slog.Logger) LexerOpt {
	return func(c *LexerConfig) {
		c.logger = logger
	}
}

// Telemetry is what one lexing pass measured
type Telemetry struct {
	TokenCount int
	KindCounts map[Kind]int
	LexTime    time.Duration
}

// DebugEvent marks one step of a lexing pass
type DebugEvent struct {
	Event   string // "enter_mode", "exit_mode", "emit", "comment", "eof"
	Offset  int    // Byte offset of the character being examined
	Mode    Mode   // Innermost mode after the event
	Context string // Token or mode involved
}

func defaultLogger() *slog.Logger {
	return StderrLogger("SHPARSE_DEBUG_LEXER")
}

// StderrLogger returns a text logger on stderr without time or level
// attributes. It logs at Debug when envVar is set and at Info otherwise.
func StderrLogger(envVar string) *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv(envVar) != "" {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey, slog.LevelKey:
				return slog.Attr{}
			}
			return a
		},
	}))
}

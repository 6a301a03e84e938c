// Package lexer turns a bash-like command line into typed tokens.
//
// The lexer never fails. Unterminated quotes, substitutions and groups simply
// run to the end of the input, and whatever was accumulated becomes the last
// token. Quote characters are kept inside token values.
package lexer

import (
	"log/slog"
	"strings"
	"time"

	"github.com/aledsdavies/shparse/pkgs/invariant"
)

// Lexer holds the state of one pass over one input line
type Lexer struct {
	input string
	pos   int // Current byte offset

	buf      strings.Builder // Pending token text
	bufStart int             // Offset of the first byte in buf

	escaped bool // One-shot: next byte is literal
	modes   *modeStack

	tokens []Token
	done   bool

	logger *slog.Logger

	// Telemetry (nil when disabled)
	telemetryMode TelemetryMode
	telemetry     *Telemetry

	// Debug (nil when disabled)
	debugLevel  DebugLevel
	debugEvents []DebugEvent
}

// NewLexer creates a lexer for input. Lexing happens on the first call to
// Tokens.
func NewLexer(input string, opts ...LexerOpt) *Lexer {
	config := &LexerConfig{}
	for _, opt := range opts {
		opt(config)
	}

	l := &Lexer{
		input:         input,
		modes:         newModeStack(),
		tokens:        make([]Token, 0, len(input)/4+1),
		logger:        config.logger,
		telemetryMode: config.telemetry,
		debugLevel:    config.debug,
	}
	if l.logger == nil {
		l.logger = defaultLogger()
	}

	// Only allocate telemetry/debug structures when needed
	if config.telemetry > TelemetryOff {
		l.telemetry = &Telemetry{KindCounts: make(map[Kind]int)}
	}
	if config.debug > DebugOff {
		l.debugEvents = make([]DebugEvent, 0, 32)
	}
	return l
}

// Tokenize lexes input and returns its tokens
func Tokenize(input string, opts ...LexerOpt) []Token {
	return NewLexer(input, opts...).Tokens()
}

// Tokens lexes the input (once) and returns the token sequence
func (l *Lexer) Tokens() []Token {
	if !l.done {
		l.run()
	}
	return l.tokens
}

// Mode returns the innermost mode left open at the end of the input.
// ModeNormal means every construct was terminated.
func (l *Lexer) Mode() Mode {
	l.Tokens()
	return l.modes.Current()
}

// OpenModes returns every mode left open at the end of the input, outermost
// first
func (l *Lexer) OpenModes() []Mode {
	l.Tokens()
	return l.modes.Snapshot()
}

// Telemetry returns lexing metrics, or nil when telemetry is off
func (l *Lexer) Telemetry() *Telemetry {
	l.Tokens()
	if l.telemetry == nil {
		return nil
	}
	result := &Telemetry{
		TokenCount: l.telemetry.TokenCount,
		LexTime:    l.telemetry.LexTime,
		KindCounts: make(map[Kind]int, len(l.telemetry.KindCounts)),
	}
	for k, v := range l.telemetry.KindCounts {
		result.KindCounts[k] = v
	}
	return result
}

// DebugEvents returns recorded debug events, or nil when debugging is off
func (l *Lexer) DebugEvents() []DebugEvent {
	l.Tokens()
	if l.debugEvents == nil {
		return nil
	}
	return append([]DebugEvent(nil), l.debugEvents...)
}

func (l *Lexer) run() {
	var start time.Time
	if l.telemetryMode >= TelemetryTiming {
		start = time.Now()
	}

	for l.pos < len(l.input) {
		prev := l.pos
		if !l.step() {
			break
		}
		invariant.Invariant(l.pos > prev, "lexer position must advance (stuck at %d)", prev)
	}
	l.flush()
	l.done = true

	if l.modes.Current() != ModeNormal {
		l.logger.Debug("unterminated construct", "modes", l.modes.Snapshot())
	}
	l.record(DebugPaths, "eof", "")
	if l.telemetryMode >= TelemetryTiming {
		l.telemetry.LexTime = time.Since(start)
	}
}

// step consumes at least one byte. It returns false when the rest of the
// input is a comment.
func (l *Lexer) step() bool {
	ch := l.input[l.pos]
	next := l.peek(1)

	if l.escaped {
		l.appendByte(ch)
		l.escaped = false
		l.pos++
		return true
	}
	if ch == '\\' {
		l.escaped = true
		l.pos++
		return true
	}

	cur := l.modes.Current()
	if ch == '\'' && cur != ModeDoubleQuote {
		l.toggleQuote(ModeSingleQuote)
		return true
	}
	if ch == '"' && cur != ModeSingleQuote {
		l.toggleQuote(ModeDoubleQuote)
		return true
	}
	if cur.IsQuote() {
		l.appendByte(ch)
		l.pos++
		return true
	}

	switch {
	case ch == '$' && next == '(':
		l.flush()
		l.emit(COMMAND_SUBSTITUTION_START, "$(")
		l.enter(ModeCommandSubstitution)
		l.pos += 2

	case ch == '$' && next == '{':
		l.appendString("${")
		l.enter(ModeVariableBrace)
		l.pos += 2

	case ch == '}' && l.modes.Has(ModeVariableBrace):
		l.appendByte(ch)
		l.exit(ModeVariableBrace)
		l.pos++

	case (ch == '<' || ch == '>') && next == '(':
		l.flush()
		l.emitText(WORD, string(ch)+"(")
		l.enter(ModeProcessSubstitution)
		l.pos += 2

	case ch == '(' && !l.modes.Has(ModeCommandSubstitution) && !l.modes.Has(ModeProcessSubstitution):
		l.flush()
		l.emit(SUBSHELL_START, "(")
		l.enter(ModeSubshell)
		l.pos++

	case ch == ')' && l.closeParen(next):

	case ch == '{' && !l.modes.Has(ModeVariableBrace):
		l.flush()
		l.appendByte(ch)
		l.enter(ModeBraceGroup)
		l.pos++

	case ch == '}' && l.modes.Has(ModeBraceGroup):
		l.appendByte(ch)
		l.exit(ModeBraceGroup)
		l.pos++
		if !l.modes.Has(ModeBraceGroup) {
			l.emitBraceGroup()
		}

	case (ch == ' ' || ch == '\t') && l.modes.Splitting():
		l.flush()
		l.pos++

	case ch == '#' && l.modes.Splitting():
		l.flush()
		l.record(DebugPaths, "comment", l.input[l.pos:])
		return false

	case l.modes.Splitting() && l.lexOperator(ch, next):

	default:
		l.appendByte(ch)
		l.pos++
	}
	return true
}

// closeParen resolves ')' by the innermost applicable construct. It returns
// false, consuming nothing, when no open construct owns the parenthesis.
func (l *Lexer) closeParen(next byte) bool {
	switch {
	case l.modes.Has(ModeCommandSubstitution):
		l.flush()
		l.emit(COMMAND_SUBSTITUTION_END, ")")
		l.exit(ModeCommandSubstitution)
		l.pos++
	case l.modes.Has(ModeProcessSubstitution):
		l.appendByte(')')
		l.exit(ModeProcessSubstitution)
		l.pos++
	case l.modes.Has(ModeSubshell):
		l.flush()
		l.emit(SUBSHELL_END, ")")
		l.exit(ModeSubshell)
		l.pos++
	default:
		return false
	}
	return true
}

// lexOperator emits control and redirection operators, longest match first
func (l *Lexer) lexOperator(ch, next byte) bool {
	var kind Kind
	var value string

	switch {
	case ch == '|' && next == '|':
		kind, value = OPERATOR, "||"
	case ch == '&' && next == '&':
		kind, value = OPERATOR, "&&"
	case ch == '|':
		kind, value = OPERATOR, "|"
	case ch == '&':
		kind, value = BACKGROUND, "&"
	case ch == ';':
		kind, value = SEMICOLON, ";"
	case ch == '<' && next == '<' && l.peek(2) == '<':
		kind, value = HERESTRING, "<<<"
	case ch == '<' && next == '<':
		kind, value = HEREDOC, "<<"
	case ch == '<':
		kind, value = REDIRECTION, "<"
	case ch == '>' && next == '>':
		kind, value = REDIRECTION, ">>"
	case ch == '>':
		kind, value = REDIRECTION, ">"
	case isDigit(ch):
		value = l.descriptorRedirect(ch, next)
		if value == "" {
			return false
		}
		kind = REDIRECTION
	default:
		return false
	}

	l.flush()
	l.emit(kind, value)
	l.pos += len(value)
	return true
}

// descriptorRedirect matches N>, N>>, N&> and N&>> at the current offset
func (l *Lexer) descriptorRedirect(ch, next byte) string {
	amp := next == '&'
	if !(next == '>' || (amp && l.peek(2) == '>')) {
		return ""
	}
	third := l.peek(2)
	if amp {
		third = l.peek(3)
	}

	prefix := string(ch)
	if amp {
		prefix += "&"
	}
	if third == '>' {
		return prefix + ">>"
	}
	return prefix + ">"
}

// emitBraceGroup closes a brace-expansion candidate. Only text containing
// "," or ".." is an expansion; anything else is a literal word.
func (l *Lexer) emitBraceGroup() {
	text := l.buf.String()
	content := ""
	if len(text) >= 2 {
		content = text[1 : len(text)-1]
	}
	kind := WORD
	if strings.Contains(content, ",") || strings.Contains(content, "..") {
		kind = BRACE_EXPANSION
	}
	l.push(Token{Kind: kind, Value: text, Raw: text, Offset: l.bufStart})
	l.buf.Reset()
}

func (l *Lexer) toggleQuote(m Mode) {
	if l.modes.Current() == m {
		l.appendByte(l.input[l.pos])
		l.exit(m)
	} else {
		l.appendByte(l.input[l.pos])
		l.enter(m)
	}
	l.pos++
}

func (l *Lexer) enter(m Mode) {
	err := l.modes.Push(m)
	invariant.Invariant(err == nil, "enter %s at %d: %v", m, l.pos, err)
	l.logger.Debug("enter mode", "mode", m.String(), "offset", l.pos)
	l.record(DebugPaths, "enter_mode", m.String())
}

func (l *Lexer) exit(m Mode) {
	err := l.modes.Pop(m)
	invariant.Invariant(err == nil, "exit %s at %d: %v", m, l.pos, err)
	l.logger.Debug("exit mode", "mode", m.String(), "offset", l.pos)
	l.record(DebugPaths, "exit_mode", m.String())
}

// flush turns pending text into a WORD or VARIABLE token
func (l *Lexer) flush() {
	if l.buf.Len() == 0 {
		return
	}
	l.push(classify(l.buf.String(), l.bufStart))
	l.buf.Reset()
}

// emit appends an operator-like token that has no raw text
func (l *Lexer) emit(kind Kind, value string) {
	l.push(Token{Kind: kind, Value: value, Offset: l.pos})
}

// emitText appends a literal token whose raw text equals its value
func (l *Lexer) emitText(kind Kind, value string) {
	l.push(Token{Kind: kind, Value: value, Raw: value, Offset: l.pos})
}

func (l *Lexer) push(tok Token) {
	l.tokens = append(l.tokens, tok)
	if l.telemetry != nil {
		l.telemetry.TokenCount++
		l.telemetry.KindCounts[tok.Kind]++
	}
	l.logger.Debug("emit", "kind", tok.Kind.String(), "value", tok.Value, "offset", tok.Offset)
	l.record(DebugDetailed, "emit", tok.String())
}

func (l *Lexer) appendByte(ch byte) {
	if l.buf.Len() == 0 {
		l.bufStart = l.pos
	}
	l.buf.WriteByte(ch)
}

func (l *Lexer) appendString(s string) {
	if l.buf.Len() == 0 {
		l.bufStart = l.pos
	}
	l.buf.WriteString(s)
}

func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) record(level DebugLevel, event, context string) {
	if l.debugLevel < level {
		return
	}
	l.debugEvents = append(l.debugEvents, DebugEvent{
		Event:   event,
		Offset:  l.pos,
		Mode:    l.modes.Current(),
		Context: context,
	})
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

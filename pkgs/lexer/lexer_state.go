package lexer

import (
	"fmt"
)

// Mode is one lexing context. The lexer keeps a stack of them; the top of
// the stack is the current mode and ModeNormal stands for an empty stack.
type Mode int

const (
	// ModeNormal splits on whitespace and operators
	ModeNormal Mode = iota

	// ModeSingleQuote is inside '...'
	ModeSingleQuote

	// ModeDoubleQuote is inside "..."
	ModeDoubleQuote

	// ModeVariableBrace is inside ${...}
	ModeVariableBrace

	// ModeCommandSubstitution is inside $(...)
	ModeCommandSubstitution

	// ModeProcessSubstitution is inside <(...) or >(...)
	ModeProcessSubstitution

	// ModeArithmetic is inside $((...)). The lexer never enters it: "$("
	// matches first, so "$((" opens a command substitution.
	ModeArithmetic

	// ModeSubshell is inside (...)
	ModeSubshell

	// ModeBraceGroup is accumulating a {...} expansion candidate
	ModeBraceGroup
)

func (m Mode) String() string {
	names := []string{
		"Normal",
		"SingleQuote",
		"DoubleQuote",
		"VariableBrace",
		"CommandSubstitution",
		"ProcessSubstitution",
		"Arithmetic",
		"Subshell",
		"BraceGroup",
	}
	if int(m) >= 0 && int(m) < len(names) {
		return names[m]
	}
	return fmt.Sprintf("Unknown(%d)", m)
}

// IsQuote reports whether the mode suppresses all special characters
func (m Mode) IsQuote() bool {
	return m == ModeSingleQuote || m == ModeDoubleQuote
}

// modeStack tracks nested lexing contexts.
//
// Quote frames only ever sit on top: while a quote is open no other frame
// can be pushed, so SingleQuote and DoubleQuote are mutually exclusive.
// Closing constructs remove the innermost frame of their own kind, which
// tolerates interleavings like "{$(}" without corrupting unrelated frames.
type modeStack struct {
	frames []Mode
	counts [ModeBraceGroup + 1]int // open frames per kind
}

func newModeStack() *modeStack {
	return &modeStack{frames: make([]Mode, 0, 8)}
}

// Current returns the innermost mode
func (s *modeStack) Current() Mode {
	if len(s.frames) == 0 {
		return ModeNormal
	}
	return s.frames[len(s.frames)-1]
}

// Push enters a mode
func (s *modeStack) Push(m Mode) error {
	if m <= ModeNormal || m > ModeBraceGroup {
		return fmt.Errorf("cannot push %s", m)
	}
	if cur := s.Current(); cur.IsQuote() {
		return fmt.Errorf("cannot enter %s inside %s", m, cur)
	}
	s.frames = append(s.frames, m)
	s.counts[m]++
	return nil
}

// Pop leaves the innermost frame of kind m
func (s *modeStack) Pop(m Mode) error {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i] == m {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			s.counts[m]--
			return nil
		}
	}
	return fmt.Errorf("%s is not open", m)
}

// Has reports whether any frame of kind m is open
func (s *modeStack) Has(m Mode) bool {
	return s.Depth(m) > 0
}

// Depth counts the open frames of kind m
func (s *modeStack) Depth(m Mode) int {
	if m <= ModeNormal || m > ModeBraceGroup {
		return 0
	}
	return s.counts[m]
}

// Splitting reports whether whitespace, comments and operators act as
// boundaries: not inside ${...}, $(...) or a brace group.
func (s *modeStack) Splitting() bool {
	return !s.Has(ModeVariableBrace) && !s.Has(ModeCommandSubstitution) && !s.Has(ModeBraceGroup)
}

// Snapshot returns a copy of the open frames, outermost first
func (s *modeStack) Snapshot() []Mode {
	return append([]Mode(nil), s.frames...)
}

// Package invariant holds the contract checks used by the lexer and parser.
//
// A violation is a bug in the engine, never a property of the input: the
// lexer and parser accept every string. Every check panics with a *Violation.
package invariant

import (
	"fmt"
	"runtime"
)

// Kind names the contract that was broken
type Kind string

const (
	KindPrecondition  Kind = "PRECONDITION"
	KindPostcondition Kind = "POSTCONDITION"
	KindInvariant     Kind = "INVARIANT"
)

// Violation is the panic value of a failed check
type Violation struct {
	Kind    Kind
	Message string
	File    string // call site of the check, empty if unknown
	Line    int
}

func (v *Violation) Error() string {
	msg := fmt.Sprintf("%s VIOLATION: %s", v.Kind, v.Message)
	if v.File != "" {
		msg += fmt.Sprintf("\n  at %s:%d", v.File, v.Line)
	}
	return msg
}

// Precondition checks what a function expects from its caller.
//
//	invariant.Precondition(tokens[start].Type == lexer.COMMAND_SUBSTITUTION_START,
//	    "token %d is not a substitution start", start)
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail(KindPrecondition, format, args...)
	}
}

// Postcondition checks what a function promises before it returns
func Postcondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail(KindPostcondition, format, args...)
	}
}

// Invariant checks internal state mid-computation, typically loop progress:
//
//	for l.pos < len(l.input) {
//	    prev := l.pos
//	    l.step()
//	    invariant.Invariant(l.pos > prev, "lexer stuck at %d", prev)
//	}
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail(KindInvariant, format, args...)
	}
}

// InRange is a precondition that value lies in [minVal, maxVal]
func InRange(value, minVal, maxVal int, name string) {
	if value < minVal || value > maxVal {
		fail(KindPrecondition, "%s must be in range [%d, %d], got %d", name, minVal, maxVal, value)
	}
}

func fail(kind Kind, format string, args ...interface{}) {
	v := &Violation{Kind: kind, Message: fmt.Sprintf(format, args...)}
	// Skip runtime.Caller, fail and the exported check
	if _, file, line, ok := runtime.Caller(2); ok {
		v.File, v.Line = file, line
	}
	panic(v)
}

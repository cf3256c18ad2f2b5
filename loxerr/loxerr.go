// Package loxerr defines the diagnostic type produced by every phase of the
// interpreter pipeline: the scanner, the parser, the resolver, and the
// evaluator.
package loxerr

import (
	"fmt"
	"strings"

	"github.com/marcuscaisey/lox/token"
)

// Class identifies which phase of the pipeline raised an [*Error].
type Class string

// The four diagnostic classes, one per pipeline phase.
const (
	LexError     Class = "lex-error"
	ParseError   Class = "parse-error"
	ResolveError Class = "resolve-error"
	RuntimeError Class = "runtime-error"
)

// Error is a diagnostic attributable to a single position in the source.
type Error struct {
	Class Class
	Msg   string
	Pos   token.Position
}

// New creates an [*Error] of the given class at pos.
func New(class Class, pos token.Position, msg string) *Error {
	return &Error{Class: class, Msg: msg, Pos: pos}
}

// Newf creates an [*Error], building the message from a format string and
// arguments as in [fmt.Sprintf].
func Newf(class Class, pos token.Position, format string, args ...any) *Error {
	return New(class, pos, fmt.Sprintf(format, args...))
}

// Error renders the diagnostic as "{class}: {message} at line L, column C".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.Class, e.Msg, e.Pos)
}

// List is a non-empty collection of diagnostics, used by the resolver, which
// gathers every semantic error it finds before halting.
type List []*Error

// Err returns l unchanged as an error if it is non-empty, otherwise nil. This
// lets a List be returned as an untyped nil when there's nothing to report.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

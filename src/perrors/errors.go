// Package perrors is a unified errors package for type parsing and builtin
// table handling so that failures can be formatted in a unified way and
// handled in a unified way by the analysis layer.
package perrors

import (
	"fmt"
)

type (
	// ErrorKind is an enum to describe where the error originates from.
	ErrorKind int
	// Error captures all errors raised by the type engine. It distinguishes
	// between type-string parse failures, stub table problems, and invariant
	// violations so that they can be handled uniformly by callers.
	Error struct {
		Kind  ErrorKind
		Input string
		Err   error
	}
)

const (
	// ParseErr is an error from parsing a type name or union type string.
	ParseErr ErrorKind = iota
	// StubErr is an error from reading user-supplied stub tables.
	StubErr
	// InvariantErr marks a caller contract violation, such as a registry
	// lookup on a key whose existence was never checked.
	InvariantErr
)

func (err *Error) Error() string {
	switch err.Kind {
	case ParseErr:
		return fmt.Sprintf("cannot parse type %q: %v", err.Input, err.Err)
	case StubErr:
		return fmt.Sprintf("stub tables: %v", err.Err)
	case InvariantErr:
		return fmt.Sprintf("invariant violated on %q: %v", err.Input, err.Err)
	default:
		return err.Err.Error()
	}
}

func (err *Error) Unwrap() error { return err.Err }

// Package flowerr defines the closed error taxonomy for specflow commands.
// Parsers never produce these; malformed markdown degrades to safe defaults.
// Mutators and loaders do, when the target of an operation cannot be located.
package flowerr

import "fmt"

// Kind classifies an error for exit-code and hint selection.
type Kind int

const (
	// KindNotFound covers missing project roots, state files, and IDs.
	KindNotFound Kind = iota
	// KindValidation covers malformed user input (bad phase number, empty
	// ID list, reversed range).
	KindValidation
	// KindState covers structural document failures the user must repair
	// by hand (roadmap table missing, corrupt state JSON).
	KindState
)

// Error is a specflow failure with an actionable hint.
type Error struct {
	Kind    Kind
	Message string
	Hint    string
}

func (e *Error) Error() string {
	return e.Message
}

// ExitCode maps the error kind to the CLI exit convention:
// 1 for hard errors, 2 for recoverable validation problems.
func (e *Error) ExitCode() int {
	if e.Kind == KindValidation {
		return 2
	}
	return 1
}

// NotFound builds a KindNotFound error.
func NotFound(hint, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...), Hint: hint}
}

// Validation builds a KindValidation error.
func Validation(hint, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...), Hint: hint}
}

// State builds a KindState error.
func State(hint, format string, args ...any) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...), Hint: hint}
}

// HintOf returns the hint carried by err, or "" for foreign errors.
func HintOf(err error) string {
	if fe, ok := err.(*Error); ok {
		return fe.Hint
	}
	return ""
}

// IsNotFound reports whether err is a KindNotFound flow error.
func IsNotFound(err error) bool {
	fe, ok := err.(*Error)
	return ok && fe.Kind == KindNotFound
}

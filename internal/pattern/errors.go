package pattern

import (
	"errors"
	"fmt"
)

// ErrMultiGlob marks the documented limitation: patterns with more than
// one glob have no compilation strategy yet.
var ErrMultiGlob = errors.New("patterns with multiple globs are unimplemented")

// LexError reports malformed pattern text. Offending holds the substring
// the lexer was looking at when it gave up.
type LexError struct {
	Offending string
	Reason    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("invalid pattern '%s', %s", e.Offending, e.Reason)
}

func lexErr(offending, reason string) *LexError {
	return &LexError{Offending: offending, Reason: reason}
}

func lexErrf(offending, format string, args ...any) *LexError {
	return &LexError{Offending: offending, Reason: fmt.Sprintf(format, args...)}
}

// CompileError reports a token stream the tree compiler cannot turn into
// a pattern.
type CompileError struct {
	Reason string
	Err    error // optional underlying cause, eg. ErrMultiGlob
}

func (e *CompileError) Error() string {
	return "cannot compile pattern: " + e.Reason
}

func (e *CompileError) Unwrap() error { return e.Err }

// BindError reports a failed replacement rebinding for a concrete file.
type BindError struct {
	File   string
	Reason string
}

func (e *BindError) Error() string {
	return fmt.Sprintf("cannot bind pattern to %q: %s", e.File, e.Reason)
}

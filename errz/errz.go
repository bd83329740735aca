// Package errz defines structured error types shared by the templet
// compiler and executor.
package errz

import "fmt"

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrSyntax indicates a directive syntax error found at compile time.
	ErrSyntax ErrorKind = iota
	// ErrName indicates a missing argument or an undefined variable.
	ErrName
	// ErrEval indicates a failure while evaluating an expression or code
	// block at render time.
	ErrEval
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrName:
		return "name error"
	case ErrEval:
		return "eval error"
	default:
		return "error"
	}
}

// SourceLocation represents a position in template source code.
type SourceLocation struct {
	File   string
	Line   int // 1-based line number
	Column int // 1-based column number

	// Source is the text of the offending line, if known.
	Source string
}

// String returns a formatted string representation of the source location.
// The column is omitted when unknown.
func (s SourceLocation) String() string {
	pos := fmt.Sprintf("%d", s.Line)
	if s.Column > 0 {
		pos = fmt.Sprintf("%d:%d", s.Line, s.Column)
	}
	if s.File == "" {
		return pos
	}
	return fmt.Sprintf("%s:%s", s.File, pos)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

// StructuredError is a rich error type carrying a source location, used to
// report template positions for both compile and render failures.
type StructuredError struct {
	Message  string
	Kind     ErrorKind
	Location SourceLocation
	Cause    error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Location.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind.String(), msg)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind.String(), msg, e.Location.String())
}

// Unwrap returns the underlying cause of the error.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// FriendlyErrorMessage returns a human-friendly error message with visual
// context, including the offending source line when available.
func (e *StructuredError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e)
}

// New creates a new StructuredError with the given parameters.
func New(kind ErrorKind, message string, loc SourceLocation) *StructuredError {
	return &StructuredError{
		Message:  message,
		Kind:     kind,
		Location: loc,
	}
}

// Newf creates a new StructuredError with a formatted message.
func Newf(kind ErrorKind, loc SourceLocation, format string, args ...any) *StructuredError {
	return &StructuredError{
		Message:  fmt.Sprintf(format, args...),
		Kind:     kind,
		Location: loc,
	}
}

// WithCause wraps the error with a cause.
func (e *StructuredError) WithCause(cause error) *StructuredError {
	e.Cause = cause
	return e
}

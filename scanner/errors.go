package scanner

import (
	"fmt"

	"github.com/deepnoodle-ai/templet/errz"
	"github.com/deepnoodle-ai/templet/token"
)

// ErrorOpts holds the data used to construct a SyntaxError. All fields are
// optional, although Message and StartPosition are recommended.
type ErrorOpts struct {
	Message       string
	Cause         error
	File          string
	StartPosition token.Position

	// LineOffset is added to the reported line number, so that the error
	// points into the enclosing file rather than the normalized template.
	LineOffset int

	// Relevant line of template text
	SourceCode string
}

// NewSyntaxError returns a new SyntaxError populated with the given error data.
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	return &SyntaxError{
		message:       opts.Message,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		lineOffset:    opts.LineOffset,
		sourceCode:    opts.SourceCode,
	}
}

// SyntaxError indicates template text that does not match the directive
// grammar, such as an unescaped bare $ or an unterminated ${...} form.
type SyntaxError struct {
	message       string
	cause         error
	file          string
	startPosition token.Position
	lineOffset    int
	sourceCode    string
}

func (e *SyntaxError) Error() string {
	msg := e.message
	if e.cause != nil {
		msg = e.cause.Error()
	}
	loc := e.Location()
	if loc.IsZero() {
		return fmt.Sprintf("syntax error: %s", msg)
	}
	return fmt.Sprintf("syntax error: %s (%s)", msg, loc.String())
}

func (e *SyntaxError) Message() string {
	return e.message
}

func (e *SyntaxError) Cause() error {
	return e.cause
}

func (e *SyntaxError) Unwrap() error {
	return e.cause
}

func (e *SyntaxError) File() string {
	return e.file
}

// StartPosition returns the position of the offending construct within the
// normalized template text.
func (e *SyntaxError) StartPosition() token.Position {
	return e.startPosition
}

// Line returns the 1-based line number of the error within the enclosing
// file, accounting for any configured line offset.
func (e *SyntaxError) Line() int {
	return e.startPosition.LineNumber() + e.lineOffset
}

func (e *SyntaxError) SourceCode() string {
	return e.sourceCode
}

// Location returns the error position as an errz.SourceLocation.
func (e *SyntaxError) Location() errz.SourceLocation {
	return errz.SourceLocation{
		File:   e.file,
		Line:   e.Line(),
		Column: e.startPosition.ColumnNumber(),
		Source: e.sourceCode,
	}
}

// FriendlyErrorMessage returns a formatted message with source context.
func (e *SyntaxError) FriendlyErrorMessage() string {
	msg := e.message
	if e.cause != nil {
		msg = e.cause.Error()
	}
	return errz.NewFormatter(false).Format(&errz.StructuredError{
		Message:  msg,
		Kind:     errz.ErrSyntax,
		Location: e.Location(),
	})
}

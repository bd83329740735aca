// Package token defines the directive tokens produced when scanning template text.
package token

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Line   int // 0-based line within the normalized template
	Column int // 0-based column within the line
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Token represents one span scanned from template text: either a run of
// literal text or a single $-directive.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
}

// Token types
const (
	// LITERAL is a run of plain text with no directive in it.
	LITERAL = "LITERAL"

	// VARIABLE is $name, substituting a named runtime value.
	VARIABLE = "VARIABLE"

	// EXPRESSION is ${expr}, substituting the stringified result.
	EXPRESSION = "EXPRESSION"

	// LIST_EXPANSION is ${[expr]}, concatenating every produced element.
	LIST_EXPANSION = "LIST_EXPANSION"

	// CODE_BLOCK is ${{code}}, a statement block with output buffer access.
	CODE_BLOCK = "CODE_BLOCK"

	// DOLLAR_ESCAPE is $$, rendering a single literal dollar sign.
	DOLLAR_ESCAPE = "DOLLAR_ESCAPE"

	// LINE_CONTINUATION is a $ at end of line, eliding the newline.
	LINE_CONTINUATION = "LINE_CONTINUATION"
)

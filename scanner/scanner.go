// Package scanner splits normalized template text into an alternating
// sequence of literal spans and $-directive tokens.
//
// A scanner is created by calling New() with the template text. The scanner
// should then be used only once, by calling Scan() to produce the tokens.
// Scanning is a single left-to-right pass; the only look-ahead used is the
// one or two characters after "${" that distinguish ${expr}, ${[expr]} and
// ${{code}}. The closing delimiters of ${[...]} and ${{...}} are found by
// searching for the literal closer; nested braces are not balanced.
package scanner

import (
	"strings"

	"github.com/deepnoodle-ai/templet/token"
)

// Option is a configuration function for a Scanner.
type Option func(*Scanner)

// WithFilename sets the file name used in error reports.
func WithFilename(filename string) Option {
	return func(s *Scanner) {
		s.filename = filename
	}
}

// WithLineOffset sets the number of lines between the start of the
// enclosing file and the first line of the template text. The offset
// affects reported error lines only; token positions stay relative to the
// template.
func WithLineOffset(offset int) Option {
	return func(s *Scanner) {
		s.lineOffset = offset
	}
}

// Scanner walks template text once, producing literal and directive tokens.
type Scanner struct {
	input      string
	filename   string
	lineOffset int

	pos       int // current byte offset
	line      int // 0-based line containing pos
	lineStart int // byte offset where the current line begins

	// pending literal run
	litStart int
	litLine  int
	litCol   int

	tokens []token.Token
}

// New creates a new Scanner for the given template text.
func New(input string, opts ...Option) *Scanner {
	s := &Scanner{input: input}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan tokenizes the input as template text and returns the tokens. This is
// a shorthand way to create a Scanner and call Scan on it.
func Scan(input string, opts ...Option) ([]token.Token, error) {
	return New(input, opts...).Scan()
}

// Characters that pass through after a $ without starting a directive, so
// templates embedding query-language or regex syntax need no escaping.
const passthrough = `.(/'"`

// Scan returns the token sequence for the input, or a *SyntaxError if a $
// appears with no matching directive form.
func (s *Scanner) Scan() ([]token.Token, error) {
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if c == '\n' {
			s.pos++
			s.line++
			s.lineStart = s.pos
			continue
		}
		if c != '$' {
			s.pos++
			continue
		}
		if s.pos+1 < len(s.input) && strings.IndexByte(passthrough, s.input[s.pos+1]) >= 0 {
			// The $ and the following character remain literal text.
			s.pos += 2
			continue
		}
		if err := s.scanDirective(); err != nil {
			return nil, err
		}
	}
	s.flushLiteral()
	return s.tokens, nil
}

func (s *Scanner) scanDirective() error {
	start := token.Position{Line: s.line, Column: s.pos - s.lineStart}
	s.flushLiteral()

	if s.pos+1 >= len(s.input) {
		return s.unescapedDollar(start)
	}
	next := s.input[s.pos+1]
	switch {
	case next == '$':
		s.emit(token.DOLLAR_ESCAPE, "$", start)
		s.pos += 2
	case next == '_' || isAlpha(next):
		j := s.pos + 1
		for j < len(s.input) && isIdent(s.input[j]) {
			j++
		}
		s.emit(token.VARIABLE, s.input[s.pos+1:j], start)
		s.pos = j
	case next == '{':
		if err := s.scanBraced(start); err != nil {
			return err
		}
	case next == '\n' || isLineSpace(next):
		// Line continuation: the $ elides trailing whitespace and the
		// newline from the output.
		j := s.pos + 1
		for j < len(s.input) && isLineSpace(s.input[j]) {
			j++
		}
		if j >= len(s.input) || s.input[j] != '\n' {
			return s.unescapedDollar(start)
		}
		s.emit(token.LINE_CONTINUATION, s.input[s.pos:j+1], start)
		s.pos = j + 1
		s.line++
		s.lineStart = s.pos
	default:
		return s.unescapedDollar(start)
	}

	s.litStart = s.pos
	s.litLine = s.line
	s.litCol = s.pos - s.lineStart
	return nil
}

// scanBraced handles the ${expr}, ${[expr]} and ${{code}} forms. The first
// one or two characters after the opening brace select the form; the body
// then runs to the first occurrence of the literal closer.
func (s *Scanner) scanBraced(start token.Position) error {
	rest := s.input[s.pos+2:]
	switch {
	case strings.HasPrefix(rest, "{"):
		idx := strings.Index(s.input[s.pos+3:], "}}")
		if idx < 0 {
			return s.unescapedDollar(start)
		}
		innerStart := s.pos + 3
		s.emit(token.CODE_BLOCK, s.input[innerStart:innerStart+idx], start)
		s.advanceTo(innerStart + idx + 2)
		s.eatTrailingNewline()
	case strings.HasPrefix(rest, "["):
		idx := strings.Index(s.input[s.pos+3:], "]}")
		if idx < 0 {
			return s.unescapedDollar(start)
		}
		innerStart := s.pos + 3
		s.emit(token.LIST_EXPANSION, s.input[innerStart:innerStart+idx], start)
		s.advanceTo(innerStart + idx + 2)
	default:
		idx := strings.IndexByte(rest, '}')
		if idx < 0 {
			return s.unescapedDollar(start)
		}
		s.emit(token.EXPRESSION, rest[:idx], start)
		s.advanceTo(s.pos + 2 + idx + 1)
	}
	return nil
}

// eatTrailingNewline consumes end-of-line whitespace and the newline that
// follow a }} closer, so a code block on its own lines does not leave a
// stray newline in the output.
func (s *Scanner) eatTrailingNewline() {
	j := s.pos
	for j < len(s.input) && isLineSpace(s.input[j]) {
		j++
	}
	if j < len(s.input) && s.input[j] == '\n' {
		s.pos = j + 1
		s.line++
		s.lineStart = s.pos
	}
}

// advanceTo moves the scan position to target, updating line accounting for
// any newlines in the consumed span.
func (s *Scanner) advanceTo(target int) {
	for i := s.pos; i < target; i++ {
		if s.input[i] == '\n' {
			s.line++
			s.lineStart = i + 1
		}
	}
	s.pos = target
}

func (s *Scanner) emit(typ token.Type, literal string, start token.Position) {
	s.tokens = append(s.tokens, token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: start,
	})
}

func (s *Scanner) flushLiteral() {
	if s.litStart >= s.pos {
		return
	}
	s.tokens = append(s.tokens, token.Token{
		Type:          token.LITERAL,
		Literal:       s.input[s.litStart:s.pos],
		StartPosition: token.Position{Line: s.litLine, Column: s.litCol},
	})
}

func (s *Scanner) unescapedDollar(start token.Position) error {
	return NewSyntaxError(ErrorOpts{
		Message:       "unescaped $",
		File:          s.filename,
		StartPosition: start,
		LineOffset:    s.lineOffset,
		SourceCode:    s.lineText(start.Line),
	})
}

// lineText returns the text of the given 0-based line of the input.
func (s *Scanner) lineText(line int) string {
	lines := strings.Split(s.input, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	return lines[line]
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdent(c byte) bool {
	return c == '_' || isAlpha(c) || (c >= '0' && c <= '9')
}

func isLineSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

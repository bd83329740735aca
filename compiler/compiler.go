// Package compiler converts a scanned token stream into the instruction
// sequence for a compiled template.
//
// # Line-Number Mapping
//
// Each emitted instruction carries a target line: the absolute line number
// the instruction must occupy when the unit is serialized one statement per
// physical line. The compiler keeps a running count of lines already
// occupied versus source lines consumed. When the source has moved further
// than the generated form, blank padding is inserted (the target line jumps
// forward past the gap). When consecutive tokens begin on the same source
// line, their instructions are merged onto one generated line instead,
// provided both are simple (anything but a code block). Code blocks always
// start their own line and contribute their full internal line count.
//
// The result is that an error raised while executing instruction N reports
// the template line that produced instruction N, not an arbitrary position
// in the generated form.
package compiler

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/templet/code"
	"github.com/deepnoodle-ai/templet/op"
	"github.com/deepnoodle-ai/templet/scanner"
	"github.com/deepnoodle-ai/templet/token"
)

// Config holds compiler configuration options.
type Config struct {
	// Name is the template name, used in listings and error messages.
	Name string

	// Parameters are the ordered parameter names of the eventual callable.
	Parameters []string

	// Filename is the source filename, used for error messages.
	Filename string

	// Source is the normalized template text the tokens were scanned from.
	Source string

	// DeclarationLine is the 1-based line at which the enclosing
	// declaration begins in its file. Defaults to 1.
	DeclarationLine int

	// BodyOffset is the number of lines between the declaration and the
	// first line of the normalized template text.
	BodyOffset int

	// Logger receives trace events for each emitted instruction. Optional.
	Logger *zerolog.Logger
}

// Compiler emits instructions for a token stream while maintaining the
// source-line mapping. A Compiler should be used for one token stream only.
type Compiler struct {
	name       string
	parameters []string
	filename   string
	source     string
	declLine   int
	firstLine  int
	logger     zerolog.Logger

	instructions []code.Instruction

	// statements is the number of generated statement lines so far,
	// including the declaration header and the output buffer prologue.
	statements int

	// extraLines counts physical lines that are not statement starts:
	// blank padding and the interior lines of multi-line code blocks.
	extraLines int

	// simple reports whether the last emitted instruction may share its
	// generated line with a following simple instruction.
	simple bool

	// lineno is the absolute source line of the token being emitted.
	lineno int
}

// Compile emits the instruction sequence for the given tokens and returns
// the immutable compiled unit. This is a shorthand way to create a Compiler
// and call Compile on it. Pass nil for cfg to use default settings.
func Compile(tokens []token.Token, cfg *Config) (*code.Unit, error) {
	return New(cfg).Compile(tokens)
}

// New creates and returns a new Compiler. Pass nil for cfg to use defaults.
func New(cfg *Config) *Compiler {
	c := &Compiler{logger: zerolog.Nop()}
	if cfg != nil {
		c.name = cfg.Name
		c.parameters = make([]string, len(cfg.Parameters))
		copy(c.parameters, cfg.Parameters) // isolate from caller
		c.filename = cfg.Filename
		c.source = cfg.Source
		c.declLine = cfg.DeclarationLine
		c.firstLine = cfg.DeclarationLine + cfg.BodyOffset
		if cfg.Logger != nil {
			c.logger = *cfg.Logger
		}
	}
	if c.declLine < 1 {
		c.firstLine += 1 - c.declLine
		c.declLine = 1
	}
	if c.firstLine < c.declLine {
		c.firstLine = c.declLine
	}
	// The generated form opens with the declaration header on the
	// declaration line and the output buffer prologue on the next line.
	// Lines above the declaration are blank padding.
	c.statements = 2
	c.extraLines = c.declLine - 1
	c.simple = true
	c.lineno = c.firstLine
	return c
}

// Compile emits one instruction per token and returns the compiled unit.
func (c *Compiler) Compile(tokens []token.Token) (*code.Unit, error) {
	for _, tok := range tokens {
		c.lineno = c.firstLine + tok.StartPosition.Line
		switch tok.Type {
		case token.LITERAL:
			c.emit(op.AppendLiteral, tok.Literal, 0)
		case token.DOLLAR_ESCAPE:
			c.emit(op.AppendLiteral, "$", 0)
		case token.VARIABLE, token.EXPRESSION:
			c.emit(op.AppendEvaluated, tok.Literal, 0)
		case token.LIST_EXPANSION:
			c.emit(op.AppendFlattened, tok.Literal, 0)
		case token.CODE_BLOCK:
			// The block body is margin-normalized independently, so its
			// business logic can be indented naturally inside the
			// delimiters. A dropped leading blank line still counts
			// toward the lines the block occupies.
			body, dropped := scanner.Normalize(tok.Literal)
			c.emit(op.ExecuteRaw, body, strings.Count(body, "\n")+dropped)
		case token.LINE_CONTINUATION:
			// No instruction; the elided newline is part of the token
			// positions that follow.
		}
	}
	c.logger.Debug().
		Str("template", c.name).
		Int("tokens", len(tokens)).
		Int("instructions", len(c.instructions)).
		Msg("template compiled")
	return code.NewUnit(code.UnitParams{
		Name:            c.name,
		Parameters:      c.parameters,
		Instructions:    c.instructions,
		Source:          c.source,
		Filename:        c.filename,
		DeclarationLine: c.declLine,
		FirstLine:       c.firstLine,
	}), nil
}

// emit appends one instruction, deciding between merging onto the previous
// generated line, starting a new line, and inserting blank padding first.
// payloadLines is the number of additional physical lines the instruction
// body occupies (non-zero only for multi-line code blocks).
func (c *Compiler) emit(opcode op.Code, payload string, payloadLines int) {
	simple := op.GetInfo(opcode).Simple
	bottom := c.statements + c.extraLines
	offset := c.lineno - bottom

	instr := code.Instruction{Op: opcode, Payload: payload}
	if offset <= 0 && simple && c.simple {
		// No source newline separates this token from the previous
		// statement, so it may share that statement's line. The very
		// first instruction shares the prologue line in this case.
		if n := len(c.instructions); n > 0 {
			instr.TargetLine = c.instructions[n-1].TargetLine
			instr.MergedWithPrev = true
		} else {
			instr.TargetLine = bottom
		}
	} else {
		pad := offset - 1
		if pad < 0 {
			pad = 0
		}
		instr.TargetLine = bottom + pad + 1
		c.statements++
		c.extraLines += pad
		if pad > 0 {
			c.logger.Trace().
				Int("padding", pad).
				Int("line", instr.TargetLine).
				Msg("inserted blank padding")
		}
	}
	c.extraLines += payloadLines
	c.simple = simple
	c.instructions = append(c.instructions, instr)
}

// Package templet compiles a small embedded templating language into an
// instruction sequence that renders a single concatenated text output.
//
// Template text mixes literal spans with $-directives:
//
//	$name      substitute the named runtime value
//	${expr}    evaluate the expression and substitute its text form
//	${[expr]}  evaluate a sequence and concatenate every element
//	${{code}}  run a statement block with access to the output buffer
//	$$         a literal dollar sign
//	$<newline> a line continuation, eliding the newline
//	$( $. $/ $' $"  pass through literally, so query-language and regex
//	                syntax need no escaping
//
// The compiler's defining feature is its source-line mapping: every
// instruction records the line of the original template it came from,
// offset by the position of the enclosing declaration in its file, so that
// errors raised while rendering point at the template text rather than at
// generated code.
package templet

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/templet/compiler"
	"github.com/deepnoodle-ai/templet/exec"
	"github.com/deepnoodle-ai/templet/scanner"
	"github.com/deepnoodle-ai/templet/token"
)

// Source describes one template body and where it lives in its file. The
// location fields come from whatever discovery mechanism found the
// template; the compiler only combines them.
type Source struct {
	// Text is the raw template text, possibly indented to match the
	// surrounding declaration. The common margin is stripped before
	// scanning.
	Text string

	// Filename is the file containing the template, used in errors.
	Filename string

	// StartLine is the 1-based line at which the enclosing declaration
	// begins. Defaults to 1.
	StartLine int

	// BodyOffset is the number of lines between the declaration and the
	// first line of the template text.
	BodyOffset int
}

// Option configures a template compilation.
type Option func(*options)

type options struct {
	name      string
	logger    *zerolog.Logger
	evaluator exec.Evaluator
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithName sets the template name used in listings and error messages.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets a logger that receives compile trace events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithEvaluator sets the evaluator the compiled template renders with. The
// default evaluator resolves plain identifiers only; hosts that use
// ${expr}, ${[expr]} or ${{code}} directives supply their own.
func WithEvaluator(evaluator exec.Evaluator) Option {
	return func(o *options) {
		o.evaluator = evaluator
	}
}

// Compile compiles one template body into a Template. The params list
// declares, in order, the argument names the template renders with.
// Compilation is deterministic: compiling the same Source twice yields
// structurally identical units.
func Compile(src Source, params []string, opts ...Option) (*Template, error) {
	o := collectOptions(opts...)

	startLine := src.StartLine
	if startLine < 1 {
		startLine = 1
	}
	if strings.TrimSpace(src.Text) == "" {
		return nil, scanner.NewSyntaxError(scanner.ErrorOpts{
			Message:    "no template content",
			File:       src.Filename,
			LineOffset: startLine + src.BodyOffset - 1,
		})
	}

	normalized, dropped := scanner.Normalize(src.Text)
	bodyOffset := src.BodyOffset + dropped

	tokens, err := scanner.Scan(normalized,
		scanner.WithFilename(src.Filename),
		scanner.WithLineOffset(startLine+bodyOffset-1))
	if err != nil {
		return nil, err
	}

	unit, err := compiler.Compile(tokens, &compiler.Config{
		Name:            o.name,
		Parameters:      params,
		Filename:        src.Filename,
		Source:          normalized,
		DeclarationLine: startLine,
		BodyOffset:      bodyOffset,
		Logger:          o.logger,
	})
	if err != nil {
		return nil, err
	}
	return &Template{unit: unit, evaluator: o.evaluator}, nil
}

// Render is a convenience function that compiles and renders in one step.
// It is equivalent to Compile() followed by Template.Render().
func Render(ctx context.Context, src Source, params []string, args map[string]any, opts ...Option) (string, error) {
	tmpl, err := Compile(src, params, opts...)
	if err != nil {
		return "", err
	}
	return tmpl.Render(ctx, args)
}

// Scan tokenizes raw template text after margin normalization. Most callers
// want Compile; Scan is exposed for tooling that inspects templates.
func Scan(src Source) ([]token.Token, error) {
	startLine := src.StartLine
	if startLine < 1 {
		startLine = 1
	}
	normalized, dropped := scanner.Normalize(src.Text)
	return scanner.Scan(normalized,
		scanner.WithFilename(src.Filename),
		scanner.WithLineOffset(startLine+src.BodyOffset+dropped-1))
}

// Package exec provides an Executor that runs compiled template units.
package exec

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/templet/code"
	"github.com/deepnoodle-ai/templet/errz"
	"github.com/deepnoodle-ai/templet/op"
)

// ErrStop may be returned by a code block to finish the template early.
// The output accumulated so far becomes the result.
var ErrStop = errors.New("stop template execution")

// Executor runs the instructions of a compiled unit, in order, against a
// fresh output buffer per Run call. An Executor holds no mutable state of
// its own, so a single Executor may be used concurrently.
type Executor struct {
	unit      *code.Unit
	evaluator Evaluator
}

// New creates a new Executor for the given unit.
func New(unit *code.Unit, opts ...Option) *Executor {
	e := &Executor{unit: unit, evaluator: defaultEvaluator{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the given unit with the given arguments and returns the
// concatenated output. This is a shorthand way to create an Executor and
// call Run on it.
func Run(ctx context.Context, unit *code.Unit, args map[string]any, opts ...Option) (string, error) {
	return New(unit, opts...).Run(ctx, args)
}

// Run executes the unit against the given arguments. Every declared
// parameter must be present in args; extra entries are allowed and are
// visible to the evaluator.
func (e *Executor) Run(ctx context.Context, args map[string]any) (string, error) {
	unit := e.unit
	for i := 0; i < unit.ParameterCount(); i++ {
		name := unit.ParameterAt(i)
		if _, ok := args[name]; !ok {
			return "", errz.Newf(errz.ErrName, errz.SourceLocation{
				File: unit.Filename(),
				Line: unit.DeclarationLine(),
			}, "missing argument %q", name)
		}
	}
	out := &Output{}
	scope := NewScope(args, out)
	for i := 0; i < unit.InstructionCount(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		instr := unit.InstructionAt(i)
		switch instr.Op {
		case op.AppendLiteral:
			out.Append(instr.Payload)
		case op.AppendEvaluated:
			value, err := e.evaluator.Eval(ctx, instr.Payload, scope)
			if err != nil {
				return "", e.locate(instr, err)
			}
			out.Append(Stringify(value))
		case op.AppendFlattened:
			items, err := e.evaluator.EvalList(ctx, instr.Payload, scope)
			if err != nil {
				return "", e.locate(instr, err)
			}
			for _, item := range items {
				out.Append(Stringify(item))
			}
		case op.ExecuteRaw:
			err := e.evaluator.ExecBlock(ctx, instr.Payload, scope)
			if errors.Is(err, ErrStop) {
				return out.String(), nil
			}
			if err != nil {
				return "", e.locate(instr, err)
			}
		default:
			return "", fmt.Errorf("exec error: unknown opcode: %d", instr.Op)
		}
	}
	return out.String(), nil
}

// locate attributes an evaluation error to the template line recorded for
// the instruction. The original error remains available via Unwrap, so
// this does not swallow anything the evaluator reported.
func (e *Executor) locate(instr code.Instruction, err error) error {
	var structured *errz.StructuredError
	if errors.As(err, &structured) && !structured.Location.IsZero() {
		return err
	}
	return &errz.StructuredError{
		Kind: errz.ErrEval,
		Location: errz.SourceLocation{
			File:   e.unit.Filename(),
			Line:   instr.TargetLine,
			Source: e.unit.GetSourceLine(instr.TargetLine),
		},
		Cause: err,
	}
}

package exec

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/templet/errz"
)

// Evaluator is the plug point between the executor and the host: it gives
// meaning to the expressions and code blocks embedded in a template. The
// executor never interprets payload text itself.
type Evaluator interface {
	// Eval evaluates an expression and returns its value.
	Eval(ctx context.Context, expr string, scope *Scope) (any, error)

	// EvalList evaluates a sequence-producing expression and returns the
	// elements in order.
	EvalList(ctx context.Context, expr string, scope *Scope) ([]any, error)

	// ExecBlock runs a code block. The block may append to scope.Out()
	// and may return ErrStop to finish the template early.
	ExecBlock(ctx context.Context, code string, scope *Scope) error
}

// EvalFuncs adapts plain functions to the Evaluator interface. Nil fields
// fall back to the default evaluator behavior, so a host that only needs
// code blocks can supply just Block.
type EvalFuncs struct {
	Expr  func(ctx context.Context, expr string, scope *Scope) (any, error)
	List  func(ctx context.Context, expr string, scope *Scope) ([]any, error)
	Block func(ctx context.Context, code string, scope *Scope) error
}

func (f EvalFuncs) Eval(ctx context.Context, expr string, scope *Scope) (any, error) {
	if f.Expr == nil {
		return defaultEvaluator{}.Eval(ctx, expr, scope)
	}
	return f.Expr(ctx, expr, scope)
}

func (f EvalFuncs) EvalList(ctx context.Context, expr string, scope *Scope) ([]any, error) {
	if f.List == nil {
		return defaultEvaluator{}.EvalList(ctx, expr, scope)
	}
	return f.List(ctx, expr, scope)
}

func (f EvalFuncs) ExecBlock(ctx context.Context, code string, scope *Scope) error {
	if f.Block == nil {
		return defaultEvaluator{}.ExecBlock(ctx, code, scope)
	}
	return f.Block(ctx, code, scope)
}

// defaultEvaluator resolves plain identifiers from the scope, which makes
// $name substitution work with no configuration. Anything richer requires
// a host-supplied evaluator.
type defaultEvaluator struct{}

func (defaultEvaluator) Eval(ctx context.Context, expr string, scope *Scope) (any, error) {
	if isIdentifier(expr) {
		value, ok := scope.Get(expr)
		if !ok {
			return nil, errz.Newf(errz.ErrName, errz.SourceLocation{}, "undefined variable %q", expr)
		}
		return value, nil
	}
	return nil, fmt.Errorf("expression %q requires an evaluator (see exec.WithEvaluator)", expr)
}

func (defaultEvaluator) EvalList(ctx context.Context, expr string, scope *Scope) ([]any, error) {
	return nil, fmt.Errorf("list expansion %q requires an evaluator (see exec.WithEvaluator)", expr)
}

func (defaultEvaluator) ExecBlock(ctx context.Context, code string, scope *Scope) error {
	return fmt.Errorf("code block requires an evaluator (see exec.WithEvaluator)")
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

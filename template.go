package templet

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/templet/code"
	"github.com/deepnoodle-ai/templet/exec"
)

// Template is a compiled template. It is immutable after creation and safe
// for concurrent use: multiple goroutines can call Render on the same
// Template simultaneously.
type Template struct {
	unit      *code.Unit
	evaluator exec.Evaluator
}

// Name returns the template name, if one was set at compile time.
func (t *Template) Name() string {
	return t.unit.Name()
}

// Filename returns the file the template came from, if any.
func (t *Template) Filename() string {
	return t.unit.Filename()
}

// Parameters returns the ordered argument names the template declares.
func (t *Template) Parameters() []string {
	return t.unit.Parameters()
}

// Unit returns the compiled instruction sequence for use by executors and
// tooling.
func (t *Template) Unit() *code.Unit {
	return t.unit
}

// Render executes the template against the given arguments and returns the
// concatenated output. Every declared parameter must be present in args.
func (t *Template) Render(ctx context.Context, args map[string]any) (string, error) {
	var opts []exec.Option
	if t.evaluator != nil {
		opts = append(opts, exec.WithEvaluator(t.evaluator))
	}
	return exec.Run(ctx, t.unit, args, opts...)
}

// RenderArgs executes the template with positional arguments matched
// against the declared parameters, in order.
func (t *Template) RenderArgs(ctx context.Context, args ...any) (string, error) {
	params := t.unit.Parameters()
	if len(args) != len(params) {
		return "", fmt.Errorf("template %s expects %d arguments, got %d",
			t.displayName(), len(params), len(args))
	}
	named := make(map[string]any, len(args))
	for i, p := range params {
		named[p] = args[i]
	}
	return t.Render(ctx, named)
}

func (t *Template) displayName() string {
	if name := t.unit.Name(); name != "" {
		return name
	}
	return "(anonymous)"
}

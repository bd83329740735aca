package exec

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/deepnoodle-ai/templet/code"
	"github.com/deepnoodle-ai/templet/errz"
	"github.com/deepnoodle-ai/templet/op"
	"github.com/stretchr/testify/require"
)

func unitOf(params []string, instructions ...code.Instruction) *code.Unit {
	return code.NewUnit(code.UnitParams{
		Name:            "t",
		Parameters:      params,
		Instructions:    instructions,
		Filename:        "t.tmpl",
		DeclarationLine: 1,
		FirstLine:       1,
	})
}

func TestRunLiterals(t *testing.T) {
	unit := unitOf(nil,
		code.Instruction{Op: op.AppendLiteral, Payload: "Hello "},
		code.Instruction{Op: op.AppendLiteral, Payload: "World."},
	)
	out, err := Run(context.Background(), unit, nil)
	require.Nil(t, err)
	require.Equal(t, "Hello World.", out)
}

func TestRunVariableSubstitution(t *testing.T) {
	unit := unitOf([]string{"name"},
		code.Instruction{Op: op.AppendLiteral, Payload: "Hello "},
		code.Instruction{Op: op.AppendEvaluated, Payload: "name"},
		code.Instruction{Op: op.AppendLiteral, Payload: "."},
	)
	out, err := Run(context.Background(), unit, map[string]any{"name": "World"})
	require.Nil(t, err)
	require.Equal(t, "Hello World.", out)
}

func TestRunMissingArgument(t *testing.T) {
	unit := unitOf([]string{"name"},
		code.Instruction{Op: op.AppendEvaluated, Payload: "name"},
	)
	_, err := Run(context.Background(), unit, map[string]any{})
	require.NotNil(t, err)
	var structured *errz.StructuredError
	require.True(t, errors.As(err, &structured))
	require.Equal(t, errz.ErrName, structured.Kind)
	require.Equal(t, `missing argument "name"`, structured.Message)
	require.Equal(t, "t.tmpl", structured.Location.File)
	require.Equal(t, 1, structured.Location.Line)
}

func TestRunUndefinedVariable(t *testing.T) {
	unit := unitOf(nil,
		code.Instruction{Op: op.AppendEvaluated, Payload: "ghost", TargetLine: 4},
	)
	_, err := Run(context.Background(), unit, nil)
	require.NotNil(t, err)
	var structured *errz.StructuredError
	require.True(t, errors.As(err, &structured))
	require.Contains(t, err.Error(), `undefined variable "ghost"`)
}

func TestRunExpressionNeedsEvaluator(t *testing.T) {
	unit := unitOf(nil,
		code.Instruction{Op: op.AppendEvaluated, Payload: "a + b", TargetLine: 2},
	)
	_, err := Run(context.Background(), unit, nil)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "requires an evaluator")
}

func TestRunWithEvaluator(t *testing.T) {
	unit := unitOf([]string{"a", "b"},
		code.Instruction{Op: op.AppendEvaluated, Payload: "a"},
		code.Instruction{Op: op.AppendLiteral, Payload: " + "},
		code.Instruction{Op: op.AppendEvaluated, Payload: "b"},
		code.Instruction{Op: op.AppendLiteral, Payload: " = "},
		code.Instruction{Op: op.AppendEvaluated, Payload: "a + b"},
	)
	evaluator := EvalFuncs{
		Expr: func(ctx context.Context, expr string, scope *Scope) (any, error) {
			if expr == "a + b" {
				a, _ := scope.Get("a")
				b, _ := scope.Get("b")
				return a.(int) + b.(int), nil
			}
			value, _ := scope.Get(expr)
			return value, nil
		},
	}
	out, err := Run(context.Background(), unit, map[string]any{"a": 1, "b": 2},
		WithEvaluator(evaluator))
	require.Nil(t, err)
	require.Equal(t, "1 + 2 = 3", out)
}

func TestRunFlattensList(t *testing.T) {
	unit := unitOf([]string{"names"},
		code.Instruction{Op: op.AppendFlattened, Payload: "greet(x) for x in names"},
	)
	evaluator := EvalFuncs{
		List: func(ctx context.Context, expr string, scope *Scope) ([]any, error) {
			names, _ := scope.Get("names")
			var items []any
			for _, name := range names.([]string) {
				items = append(items, "Hello "+name+".")
			}
			return items, nil
		},
	}
	out, err := Run(context.Background(), unit,
		map[string]any{"names": []string{"David", "Kevin"}}, WithEvaluator(evaluator))
	require.Nil(t, err)
	require.Equal(t, "Hello David.Hello Kevin.", out)
}

func TestRunCodeBlockAppends(t *testing.T) {
	unit := unitOf(nil,
		code.Instruction{Op: op.AppendLiteral, Payload: "<td>"},
		code.Instruction{Op: op.ExecuteRaw, Payload: "emit value"},
		code.Instruction{Op: op.AppendLiteral, Payload: "</td>"},
	)
	evaluator := EvalFuncs{
		Block: func(ctx context.Context, block string, scope *Scope) error {
			scope.Out().Append("42")
			return nil
		},
	}
	out, err := Run(context.Background(), unit, nil, WithEvaluator(evaluator))
	require.Nil(t, err)
	require.Equal(t, "<td>42</td>", out)
}

func TestRunCodeBlockStopsEarly(t *testing.T) {
	unit := unitOf(nil,
		code.Instruction{Op: op.AppendLiteral, Payload: "kept"},
		code.Instruction{Op: op.ExecuteRaw, Payload: "stop"},
		code.Instruction{Op: op.AppendLiteral, Payload: "never appended"},
	)
	evaluator := EvalFuncs{
		Block: func(ctx context.Context, block string, scope *Scope) error {
			return ErrStop
		},
	}
	out, err := Run(context.Background(), unit, nil, WithEvaluator(evaluator))
	require.Nil(t, err)
	require.Equal(t, "kept", out)
}

func TestRunAttributesErrorsToTargetLine(t *testing.T) {
	unit := code.NewUnit(code.UnitParams{
		Parameters: []string{"b"},
		Instructions: []code.Instruction{
			{Op: op.AppendEvaluated, Payload: "b", TargetLine: 11},
		},
		Source:    "some text\n${{\n   x = 7\n}}\nsome more text\n$b",
		Filename:  "t.tmpl",
		FirstLine: 6,
	})
	cause := errors.New("division by zero")
	evaluator := EvalFuncs{
		Expr: func(ctx context.Context, expr string, scope *Scope) (any, error) {
			return nil, cause
		},
	}
	_, err := Run(context.Background(), unit, map[string]any{"b": 0}, WithEvaluator(evaluator))
	require.NotNil(t, err)
	var structured *errz.StructuredError
	require.True(t, errors.As(err, &structured))
	require.Equal(t, errz.ErrEval, structured.Kind)
	require.Equal(t, "t.tmpl", structured.Location.File)
	require.Equal(t, 11, structured.Location.Line)
	require.Equal(t, "$b", structured.Location.Source)
	require.True(t, errors.Is(err, cause))
}

func TestRunContextCancellation(t *testing.T) {
	unit := unitOf(nil,
		code.Instruction{Op: op.AppendLiteral, Payload: "x"},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, unit, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"bytes", []byte("abc"), "abc"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"error", fmt.Errorf("boom"), "boom"},
		{"unicode", "★★★", "★★★"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Stringify(tc.value))
		})
	}
}

func TestOutput(t *testing.T) {
	out := &Output{}
	require.Equal(t, 0, out.Len())
	out.Append("a")
	out.AppendValue(1)
	require.Equal(t, "a1", out.String())
	require.Equal(t, 2, out.Len())
}

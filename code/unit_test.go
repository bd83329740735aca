package code

import (
	"testing"

	"github.com/deepnoodle-ai/templet/op"
	"github.com/stretchr/testify/require"
)

func TestUnitAccessors(t *testing.T) {
	unit := NewUnit(UnitParams{
		Name:       "greet",
		Parameters: []string{"name", "title"},
		Instructions: []Instruction{
			{Op: op.AppendLiteral, Payload: "Hello ", TargetLine: 3},
			{Op: op.AppendEvaluated, Payload: "name", TargetLine: 3, MergedWithPrev: true},
		},
		Source:          "Hello $name.",
		Filename:        "greet.tmpl",
		DeclarationLine: 1,
		FirstLine:       3,
	})
	require.Equal(t, "greet", unit.Name())
	require.Equal(t, 2, unit.ParameterCount())
	require.Equal(t, "name", unit.ParameterAt(0))
	require.Equal(t, "title", unit.ParameterAt(1))
	require.Equal(t, []string{"name", "title"}, unit.Parameters())
	require.Equal(t, 2, unit.InstructionCount())
	require.Equal(t, op.AppendEvaluated, unit.InstructionAt(1).Op)
	require.True(t, unit.InstructionAt(1).MergedWithPrev)
	require.Equal(t, "Hello $name.", unit.Source())
	require.Equal(t, "greet.tmpl", unit.Filename())
	require.Equal(t, 1, unit.DeclarationLine())
	require.Equal(t, 3, unit.FirstLine())
}

func TestUnitIsolatedFromInputs(t *testing.T) {
	params := []string{"a"}
	instructions := []Instruction{{Op: op.AppendLiteral, Payload: "x"}}
	unit := NewUnit(UnitParams{Parameters: params, Instructions: instructions})

	params[0] = "mutated"
	instructions[0].Payload = "mutated"

	require.Equal(t, "a", unit.ParameterAt(0))
	require.Equal(t, "x", unit.InstructionAt(0).Payload)

	returned := unit.Parameters()
	returned[0] = "mutated"
	require.Equal(t, "a", unit.ParameterAt(0))
}

func TestUnitGetSourceLine(t *testing.T) {
	unit := NewUnit(UnitParams{
		Source:    "one\ntwo\nthree",
		FirstLine: 5,
	})
	require.Equal(t, "one", unit.GetSourceLine(5))
	require.Equal(t, "two", unit.GetSourceLine(6))
	require.Equal(t, "three", unit.GetSourceLine(7))
	require.Equal(t, "", unit.GetSourceLine(4))
	require.Equal(t, "", unit.GetSourceLine(8))
}

func TestUnitListing(t *testing.T) {
	unit := NewUnit(UnitParams{
		Name:       "hello",
		Parameters: []string{"name"},
		Instructions: []Instruction{
			{Op: op.AppendLiteral, Payload: "Hello ", TargetLine: 3},
			{Op: op.AppendEvaluated, Payload: "name", TargetLine: 3, MergedWithPrev: true},
			{Op: op.AppendLiteral, Payload: ".", TargetLine: 3, MergedWithPrev: true},
		},
		Source:          "Hello $name.",
		DeclarationLine: 1,
		FirstLine:       3,
	})
	want := "func hello(name):\n" +
		"out := []\n" +
		"APPEND_LITERAL \"Hello \"; APPEND_EVALUATED \"name\"; APPEND_LITERAL \".\"\n" +
		"return concat(out)"
	require.Equal(t, want, unit.Listing())
}

func TestUnitListingPadsAndSpreadsCodeBlocks(t *testing.T) {
	unit := NewUnit(UnitParams{
		Name:       "block",
		Parameters: []string{"b"},
		Instructions: []Instruction{
			{Op: op.AppendLiteral, Payload: "some text\n", TargetLine: 6},
			{Op: op.ExecuteRaw, Payload: "x = 7\ny = 8", TargetLine: 7},
			{Op: op.AppendEvaluated, Payload: "b", TargetLine: 10},
		},
		DeclarationLine: 3,
		FirstLine:       6,
	})
	want := "\n" + // line 1: padding
		"\n" + // line 2: padding
		"func block(b):\n" + // line 3
		"out := []\n" + // line 4
		"\n" + // line 5: padding
		"APPEND_LITERAL \"some text\\n\"\n" + // line 6
		"x = 7\n" + // line 7
		"y = 8\n" + // line 8
		"\n" + // line 9: padding
		"APPEND_EVALUATED \"b\"\n" + // line 10
		"return concat(out)" // line 11
	require.Equal(t, want, unit.Listing())
}

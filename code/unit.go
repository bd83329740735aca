// Package code defines the compiled representation of a template: an
// immutable instruction sequence with a source-line mapping.
package code

import (
	"strings"

	"github.com/deepnoodle-ai/templet/op"
)

// Instruction is one output-producing operation of a compiled template.
type Instruction struct {
	// Op selects the operation.
	Op op.Code

	// Payload is the literal text, the expression, or the code block body,
	// depending on the opcode.
	Payload string

	// TargetLine is the absolute line number the instruction occupies when
	// the unit is serialized one statement per line. It is chosen so that
	// an error raised by this instruction reports the template line the
	// instruction came from. Target lines are non-decreasing across the
	// instruction sequence.
	TargetLine int

	// MergedWithPrev marks an instruction that shares its generated line
	// with the immediately preceding instruction.
	MergedWithPrev bool
}

// Unit is a compiled template body. It is immutable after creation and safe
// for concurrent use: multiple goroutines can execute the same Unit
// simultaneously.
type Unit struct {
	name            string
	parameters      []string
	instructions    []Instruction
	source          string
	filename        string
	declarationLine int
	firstLine       int
}

// UnitParams contains parameters for creating a new Unit.
type UnitParams struct {
	Name         string
	Parameters   []string
	Instructions []Instruction

	// Source is the normalized template text.
	Source string

	// Filename is the file containing the template.
	Filename string

	// DeclarationLine is the 1-based line at which the enclosing
	// declaration begins in its file.
	DeclarationLine int

	// FirstLine is the absolute line number of the first line of the
	// normalized template text.
	FirstLine int
}

// NewUnit creates a new immutable Unit from the given parameters. Input
// slices are copied, so the Unit cannot be mutated through them afterwards.
func NewUnit(params UnitParams) *Unit {
	var parameters []string
	if len(params.Parameters) > 0 {
		parameters = make([]string, len(params.Parameters))
		copy(parameters, params.Parameters)
	}
	var instructions []Instruction
	if len(params.Instructions) > 0 {
		instructions = make([]Instruction, len(params.Instructions))
		copy(instructions, params.Instructions)
	}
	return &Unit{
		name:            params.Name,
		parameters:      parameters,
		instructions:    instructions,
		source:          params.Source,
		filename:        params.Filename,
		declarationLine: params.DeclarationLine,
		firstLine:       params.FirstLine,
	}
}

// Name returns the name of the template, if one was set.
func (u *Unit) Name() string {
	return u.name
}

// ParameterCount returns the number of declared parameters.
func (u *Unit) ParameterCount() int {
	return len(u.parameters)
}

// ParameterAt returns the parameter name at the given index.
func (u *Unit) ParameterAt(index int) string {
	return u.parameters[index]
}

// Parameters returns a copy of the ordered parameter names.
func (u *Unit) Parameters() []string {
	if len(u.parameters) == 0 {
		return nil
	}
	parameters := make([]string, len(u.parameters))
	copy(parameters, u.parameters)
	return parameters
}

// InstructionCount returns the number of instructions.
func (u *Unit) InstructionCount() int {
	return len(u.instructions)
}

// InstructionAt returns the instruction at the given index.
func (u *Unit) InstructionAt(index int) Instruction {
	return u.instructions[index]
}

// Source returns the normalized template text.
func (u *Unit) Source() string {
	return u.source
}

// Filename returns the source filename.
func (u *Unit) Filename() string {
	return u.filename
}

// DeclarationLine returns the line at which the enclosing declaration
// begins in its file.
func (u *Unit) DeclarationLine() int {
	return u.declarationLine
}

// FirstLine returns the absolute line number of the first template line.
func (u *Unit) FirstLine() int {
	return u.firstLine
}

// GetSourceLine returns the template text at the given absolute line
// number, or an empty string if the line falls outside the template.
func (u *Unit) GetSourceLine(line int) string {
	rel := line - u.firstLine
	if rel < 0 {
		return ""
	}
	lines := strings.Split(u.source, "\n")
	if rel >= len(lines) {
		return ""
	}
	return lines[rel]
}

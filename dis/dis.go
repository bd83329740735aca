// Package dis renders compiled template units in a human-readable form for
// debugging the emitter and the line-number mapping.
package dis

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/deepnoodle-ai/templet/code"
	"github.com/deepnoodle-ai/templet/op"
)

var opcodeColor = color.New(color.FgCyan)

// Disassemble returns a table of the unit's instructions showing the index,
// target line, opcode, merge marker, and a payload preview.
func Disassemble(unit *code.Unit) string {
	var b strings.Builder
	Fdisassemble(&b, unit)
	return b.String()
}

// Fdisassemble writes the disassembly of the unit to w.
func Fdisassemble(w io.Writer, unit *code.Unit) {
	name := unit.Name()
	if name == "" {
		name = "(anonymous)"
	}
	fmt.Fprintf(w, "template %s(%s)", name, strings.Join(unit.Parameters(), ", "))
	if unit.Filename() != "" {
		fmt.Fprintf(w, " // %s:%d", unit.Filename(), unit.DeclarationLine())
	}
	fmt.Fprintln(w)
	for i := 0; i < unit.InstructionCount(); i++ {
		instr := unit.InstructionAt(i)
		merge := " "
		if instr.MergedWithPrev {
			merge = "+"
		}
		fmt.Fprintf(w, "%4d  L%-4d %s %s %s\n",
			i,
			instr.TargetLine,
			merge,
			opcodeColor.Sprintf("%-17s", op.GetInfo(instr.Op).Name),
			preview(instr.Payload))
	}
}

// preview quotes the payload and truncates it to keep rows on one line.
func preview(payload string) string {
	q := strconv.Quote(payload)
	if len(q) > 48 {
		q = q[:45] + "..."
	}
	return q
}

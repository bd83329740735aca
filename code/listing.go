package code

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/templet/op"
)

// Listing renders the generated-code view of the unit: one physical line
// per target line, merged instructions joined on a single line, and blank
// padding lines filling the gaps. Line N of the listing corresponds to line
// N of the enclosing source file, which is the property the line-number
// mapper guarantees.
func (u *Unit) Listing() string {
	var lines []string

	ensure := func(n int) {
		for len(lines) < n {
			lines = append(lines, "")
		}
	}
	place := func(line int, text string) {
		ensure(line)
		if lines[line-1] == "" {
			lines[line-1] = text
		} else {
			lines[line-1] += "; " + text
		}
	}

	decl := u.declarationLine
	if decl < 1 {
		decl = 1
	}
	name := u.name
	if name == "" {
		name = "template"
	}
	place(decl, fmt.Sprintf("func %s(%s):", name, strings.Join(u.parameters, ", ")))
	place(decl+1, "out := []")

	for _, instr := range u.instructions {
		if instr.Op == op.ExecuteRaw {
			for i, line := range strings.Split(instr.Payload, "\n") {
				place(instr.TargetLine+i, line)
			}
			continue
		}
		place(instr.TargetLine, fmt.Sprintf("%s %q", op.GetInfo(instr.Op).Name, instr.Payload))
	}

	place(len(lines)+1, "return concat(out)")
	return strings.Join(lines, "\n")
}

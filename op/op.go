// Package op defines opcodes used by the templet compiler and executor.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint16

const (
	Invalid Code = 0

	// AppendLiteral appends the payload text to the output as-is.
	AppendLiteral Code = 1

	// AppendEvaluated evaluates the payload expression and appends the
	// stringified result.
	AppendEvaluated Code = 2

	// AppendFlattened evaluates the payload as a sequence-producing
	// expression and appends every element in order, with no separator.
	AppendFlattened Code = 3

	// ExecuteRaw runs the payload as a statement block with access to the
	// output buffer. The block may finish the unit early.
	ExecuteRaw Code = 4
)

// Info contains information about an opcode.
type Info struct {
	Code Code
	Name string

	// Simple opcodes may share a generated line with an adjacent simple
	// opcode. ExecuteRaw always starts its own line.
	Simple bool
}

var infos = make([]Info, 8)

func init() {
	type opInfo struct {
		op     Code
		name   string
		simple bool
	}
	ops := []opInfo{
		{AppendLiteral, "APPEND_LITERAL", true},
		{AppendEvaluated, "APPEND_EVALUATED", true},
		{AppendFlattened, "APPEND_FLATTENED", true},
		{ExecuteRaw, "EXECUTE_RAW", false},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:   o.op,
			Name:   o.name,
			Simple: o.simple,
		}
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Code) Info {
	return infos[op]
}

package exec

import "strings"

// Output is the buffer a template run accumulates its result in. Code
// blocks receive the in-progress Output through their Scope and may append
// to it directly.
type Output struct {
	buf strings.Builder
}

// Append adds text to the output.
func (o *Output) Append(s string) {
	o.buf.WriteString(s)
}

// AppendValue adds the text form of an arbitrary value to the output.
func (o *Output) AppendValue(v any) {
	o.buf.WriteString(Stringify(v))
}

// Len returns the number of bytes accumulated so far.
func (o *Output) Len() int {
	return o.buf.Len()
}

// String returns the concatenated output.
func (o *Output) String() string {
	return o.buf.String()
}

// Scope carries the runtime arguments and the in-progress output buffer
// through evaluator callbacks.
type Scope struct {
	values map[string]any
	out    *Output
}

// NewScope creates a scope over the given argument values and output.
func NewScope(values map[string]any, out *Output) *Scope {
	return &Scope{values: values, out: out}
}

// Get returns the named value and whether it is present.
func (s *Scope) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Out returns the in-progress output buffer.
func (s *Scope) Out() *Output {
	return s.out
}

package exec

import "fmt"

// Stringify converts a runtime value to the text form appended to template
// output. Strings pass through unchanged and nil renders as empty, which
// is what a template author expects from an absent value.
func Stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

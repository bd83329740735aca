package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	tests := []struct {
		code   Code
		name   string
		simple bool
	}{
		{AppendLiteral, "APPEND_LITERAL", true},
		{AppendEvaluated, "APPEND_EVALUATED", true},
		{AppendFlattened, "APPEND_FLATTENED", true},
		{ExecuteRaw, "EXECUTE_RAW", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := GetInfo(tc.code)
			require.Equal(t, tc.code, info.Code)
			require.Equal(t, tc.name, info.Name)
			require.Equal(t, tc.simple, info.Simple)
		})
	}
}

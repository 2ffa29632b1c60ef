package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/takumiyoshikawa/dscgen/internal/mof"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		in   mof.Value
		want any
	}{
		{"string", mof.String("x"), "x"},
		{"enum", mof.EnumName("Present"), "Present"},
		{"integer", mof.Integer(42), int64(42)},
		{"boolean", mof.Boolean(true), true},
		{"real", mof.Real(0.5), 0.5},
		{"null", mof.Null{}, nil},
		{"list", mof.List{mof.String("a"), mof.Null{}, mof.Integer(1)}, []any{"a", int64(1)}},
		{"nested list", mof.List{mof.List{mof.Null{}}, mof.Boolean(false)}, []any{[]any{}, false}},
		{"reference", mof.Reference("MSFT_Credential1ref"), "$MSFT_Credential1ref"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(tt.in))
		})
	}
}

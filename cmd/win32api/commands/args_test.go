package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/win32api"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		typ     win32api.Type
		want    any
		wantErr bool
	}{
		{name: "nil pointer", text: "nil", typ: win32api.TypePointer, want: nil},
		{name: "NULL pointer", text: "NULL", typ: win32api.TypePointer, want: nil},
		{name: "hex address", text: "0x1f", typ: win32api.TypePointer, want: uintptr(0x1f)},
		{name: "bad hex address", text: "0xzz", typ: win32api.TypePointer, wantErr: true},
		{name: "bare string", text: "hello", typ: win32api.TypePointer, want: "hello"},
		{name: "quoted string", text: `"a\tb"`, typ: win32api.TypePointer, want: "a\tb"},
		{name: "int32", text: "-42", typ: win32api.TypeInt32, want: int32(-42)},
		{name: "int32 hex", text: "0x10", typ: win32api.TypeInt32, want: int32(16)},
		{name: "int32 overflow", text: "4294967296", typ: win32api.TypeInt32, wantErr: true},
		{name: "int32 text", text: "five", typ: win32api.TypeInt32, wantErr: true},
		{name: "long", text: "123456", typ: win32api.TypeLong, want: 123456},
		{name: "long text", text: "x", typ: win32api.TypeLong, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArg(tt.text, tt.typ)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgsCount(t *testing.T) {
	params := []win32api.Type{win32api.TypePointer, win32api.TypeInt32}

	_, err := parseArgs(params, []string{"x"})
	assert.ErrorContains(t, err, "got 1 arguments, signature takes 2")

	args, err := parseArgs(params, []string{"x", "7"})
	require.NoError(t, err)
	assert.Equal(t, []any{"x", int32(7)}, args)

	_, err = parseArgs(params, []string{"x", "seven"})
	assert.ErrorContains(t, err, "argument 1")
}

func TestFormatResult(t *testing.T) {
	assert.Equal(t, "0xff", formatResult(uintptr(255)))
	assert.Equal(t, "-3", formatResult(int32(-3)))
	assert.Equal(t, "12", formatResult(12))
}

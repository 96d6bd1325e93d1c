package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agiangrant/win32api"
)

// parseArgs converts command-line text into call arguments, one per parameter type.
func parseArgs(params []win32api.Type, text []string) ([]any, error) {
	if len(text) != len(params) {
		return nil, fmt.Errorf("got %d arguments, signature takes %d", len(text), len(params))
	}
	args := make([]any, len(text))
	for i, s := range text {
		v, err := parseArg(s, params[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = v
	}
	return args, nil
}

// parseArg reads a pointer as nil, a 0x address or a string, and integers in Go
// literal syntax.
func parseArg(s string, t win32api.Type) (any, error) {
	switch t {
	case win32api.TypePointer:
		switch {
		case s == "nil" || s == "NULL":
			return nil, nil
		case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
			addr, err := strconv.ParseUint(s[2:], 16, strconv.IntSize)
			if err != nil {
				return nil, fmt.Errorf("bad address %q: %w", s, err)
			}
			return uintptr(addr), nil
		}
		if unq, err := strconv.Unquote(s); err == nil {
			return unq, nil
		}
		return s, nil
	case win32api.TypeInt32:
		n, err := strconv.ParseInt(s, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("bad int32 %q: %w", s, err)
		}
		return int32(n), nil
	case win32api.TypeLong:
		n, err := strconv.ParseInt(s, 0, strconv.IntSize)
		if err != nil {
			return nil, fmt.Errorf("bad long %q: %w", s, err)
		}
		return int(n), nil
	default:
		return nil, fmt.Errorf("no text form for %s", t)
	}
}

func formatResult(v any) string {
	if p, ok := v.(uintptr); ok {
		return fmt.Sprintf("0x%x", p)
	}
	return fmt.Sprint(v)
}

package win32api

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrUnknownTypeCode matches every *UnknownTypeCodeError.
var ErrUnknownTypeCode = errors.New("unknown type code")

// UnknownTypeCodeError reports a type code with no native equivalent.
type UnknownTypeCodeError struct {
	Code rune
	// Index is the byte offset of Code in the resolved string, or -1 for a lone code.
	Index int
}

func (e *UnknownTypeCodeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("unable to resolve type %q at position %d", e.Code, e.Index)
	}
	return fmt.Sprintf("unable to resolve type %q", e.Code)
}

func (e *UnknownTypeCodeError) Is(target error) bool {
	return target == ErrUnknownTypeCode
}

// typeCodes is the closed type-code vocabulary, in display order.
var typeCodes = []struct {
	code rune
	typ  Type
}{
	{'P', TypePointer},
	{'I', TypeInt32},
	{'L', TypeLong},
	{'N', TypeLong},
}

var typeTable = func() map[rune]Type {
	m := make(map[rune]Type, len(typeCodes))
	for _, tc := range typeCodes {
		m[tc.code] = tc.typ
	}
	return m
}()

// TypeCodes returns the known type codes.
func TypeCodes() []rune {
	codes := make([]rune, len(typeCodes))
	for i, tc := range typeCodes {
		codes[i] = tc.code
	}
	return codes
}

// Resolve looks up a single type code.
func Resolve(code rune) (Type, error) {
	t, ok := typeTable[code]
	if !ok {
		return 0, &UnknownTypeCodeError{Code: code, Index: -1}
	}
	return t, nil
}

// ResolveSequence resolves every character of spec in order. It stops at the first
// unknown code. An empty spec resolves to an empty, non-nil slice.
func ResolveSequence(spec string) ([]Type, error) {
	types := make([]Type, 0, utf8.RuneCountInString(spec))
	for i, r := range spec {
		t, ok := typeTable[r]
		if !ok {
			return nil, &UnknownTypeCodeError{Code: r, Index: i}
		}
		types = append(types, t)
	}
	return types, nil
}

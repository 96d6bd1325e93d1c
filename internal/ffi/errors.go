package ffi

import (
	"errors"
	"fmt"
)

var (
	// ErrLibraryUnavailable is returned when a library cannot be opened or its handle is invalid.
	ErrLibraryUnavailable = errors.New("library unavailable")
	// ErrSymbolNotFound is returned when a function name does not exist in a library.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrUnsupportedSignature is returned when a signature cannot be dispatched by the primitive.
	ErrUnsupportedSignature = errors.New("unsupported signature")
	// ErrNativeCall matches every *CallError.
	ErrNativeCall = errors.New("native call failed")
	// ErrClosed is wrapped by calls made through a released invoker.
	ErrClosed = errors.New("invoker closed")
)

// CallErrorKind classifies a failed native call.
type CallErrorKind uint8

const (
	// CallArity means the argument count did not match the parameter count.
	CallArity CallErrorKind = iota + 1
	// CallType means an argument could not be lowered to its parameter type.
	CallType
	// CallFault means the call could not be completed.
	CallFault
)

func (k CallErrorKind) String() string {
	switch k {
	case CallArity:
		return "arity mismatch"
	case CallType:
		return "type mismatch"
	case CallFault:
		return "fault"
	default:
		return "unknown"
	}
}

// CallError is returned by Invoker.Invoke.
type CallError struct {
	Func string
	Kind CallErrorKind
	// Index is the offending argument position for CallType, -1 otherwise.
	Index int
	Err   error
}

func (e *CallError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s: argument %d: %v", e.Func, e.Kind, e.Index, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Func, e.Kind, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// Is makes every CallError match ErrNativeCall.
func (e *CallError) Is(target error) bool {
	return target == ErrNativeCall
}

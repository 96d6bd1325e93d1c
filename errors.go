package win32api

import (
	"errors"

	"github.com/agiangrant/win32api/internal/ffi"
)

var (
	// ErrInvalidReturnSpec is returned when a return spec does not hold exactly one type code.
	ErrInvalidReturnSpec = errors.New("return spec must be exactly one type code")

	ErrLibraryUnavailable   = ffi.ErrLibraryUnavailable
	ErrSymbolNotFound       = ffi.ErrSymbolNotFound
	ErrUnsupportedSignature = ffi.ErrUnsupportedSignature
	ErrNativeCall           = ffi.ErrNativeCall
	ErrClosed               = ffi.ErrClosed
)

// CallError describes a failed native call. It matches ErrNativeCall.
type CallError = ffi.CallError

// CallErrorKind classifies a CallError.
type CallErrorKind = ffi.CallErrorKind

const (
	CallArity = ffi.CallArity
	CallType  = ffi.CallType
	CallFault = ffi.CallFault
)

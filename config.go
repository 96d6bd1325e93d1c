package win32api

import (
	"github.com/agiangrant/win32api/internal/ffi"
	"go.uber.org/zap"
)

// Type is a resolved native type descriptor.
// This is a re-export of ffi.Type for consumer convenience.
type Type = ffi.Type

const (
	TypePointer = ffi.TypePointer
	TypeInt32   = ffi.TypeInt32
	TypeLong    = ffi.TypeLong
)

// Convention is a native calling convention.
// This is a re-export of ffi.Convention for consumer convenience.
type Convention = ffi.Convention

const (
	// ConventionDefault is the platform C convention.
	ConventionDefault = ffi.ConventionDefault

	// ConventionStdcall is the callee-cleans convention of the Win32 API.
	ConventionStdcall = ffi.ConventionStdcall
)

// ParseConvention maps "default" or "stdcall" to its Convention.
func ParseConvention(s string) (Convention, bool) {
	return ffi.ParseConvention(s)
}

// Library is an opaque handle to a loaded native library.
type Library = ffi.Library

// LoadLibrary opens the library at path. The path is passed to the platform loader unchanged.
func LoadLibrary(path string) (*Library, error) {
	return ffi.Open(path)
}

// WrapLibrary adopts a handle that was loaded elsewhere.
func WrapLibrary(handle uintptr, path string) *Library {
	return ffi.WrapHandle(handle, path)
}

// Option configures a binding created by New.
type Option func(*options)

type options struct {
	convention Convention
	factory    ffi.Factory
	logger     *zap.Logger
}

func defaultOptions() options {
	return options{
		convention: SelectConvention(),
		factory:    ffi.DefaultFactory(),
	}
}

// WithConvention overrides the process-wide calling convention for one binding.
func WithConvention(c Convention) Option {
	return func(o *options) { o.convention = c }
}

// WithFactory replaces the native invoker factory.
func WithFactory(f ffi.Factory) Option {
	return func(o *options) { o.factory = f }
}

// WithLogger sets the logger used by the binding instead of Logger().
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

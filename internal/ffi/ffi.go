// Package ffi is the native invocation primitive behind win32api.
// It uses purego for symbol lookup and dispatch, eliminating the need for CGo.
package ffi

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// MaxParams is the largest parameter count purego can pass in one call.
const MaxParams = 15

// Invoker is a callable native function with a fixed signature.
type Invoker interface {
	// Invoke lowers args, calls the function and returns the lifted result.
	// Failures are *CallError.
	Invoke(args []any) (any, error)
	// Close releases the invoker. Invoke fails with ErrClosed afterwards.
	Close() error
}

// Factory creates invokers for functions in a library.
type Factory interface {
	CreateInvoker(lib *Library, name string, params []Type, ret Type, conv Convention) (Invoker, error)
}

type puregoFactory struct{}

// DefaultFactory returns the purego-backed factory.
func DefaultFactory() Factory {
	return puregoFactory{}
}

func (puregoFactory) CreateInvoker(lib *Library, name string, params []Type, ret Type, conv Convention) (Invoker, error) {
	if !lib.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrLibraryUnavailable, lib)
	}
	if len(params) > MaxParams {
		return nil, fmt.Errorf("%w: %s takes %d parameters, at most %d are supported",
			ErrUnsupportedSignature, name, len(params), MaxParams)
	}
	for i, p := range params {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: %s parameter %d is %s", ErrUnsupportedSignature, name, i, p)
		}
	}
	if !ret.Valid() {
		return nil, fmt.Errorf("%w: %s returns %s", ErrUnsupportedSignature, name, ret)
	}
	addr, err := lib.Lookup(name)
	if err != nil {
		return nil, err
	}

	Logger().Debug("ffi: invoker created",
		zap.String("func", name),
		zap.String("library", lib.Path()),
		zap.Uintptr("addr", addr),
		zap.Stringer("convention", conv),
		zap.String("goarch", runtime.GOARCH))

	// On every platform purego reaches, stdcall and the default convention share a
	// dispatch path; conv is kept for diagnostics.
	return &nativeInvoker{
		name:   name,
		fn:     addr,
		params: append([]Type(nil), params...),
		ret:    ret,
		conv:   conv,
	}, nil
}

type nativeInvoker struct {
	name   string
	fn     uintptr
	params []Type
	ret    Type
	conv   Convention
}

func (n *nativeInvoker) Invoke(args []any) (result any, err error) {
	if n.fn == 0 {
		return nil, &CallError{Func: n.name, Kind: CallFault, Index: -1, Err: ErrClosed}
	}
	if len(args) != len(n.params) {
		return nil, &CallError{
			Func:  n.name,
			Kind:  CallArity,
			Index: -1,
			Err:   fmt.Errorf("got %d arguments, want %d", len(args), len(n.params)),
		}
	}

	words := make([]uintptr, len(args))
	var keep keepAlive
	for i, arg := range args {
		w, lerr := lower(arg, n.params[i], &keep)
		if lerr != nil {
			return nil, &CallError{Func: n.name, Kind: CallType, Index: i, Err: lerr}
		}
		words[i] = w
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &CallError{Func: n.name, Kind: CallFault, Index: -1, Err: fmt.Errorf("%v", r)}
		}
	}()

	r1 := syscallN(n.fn, words...)
	runtime.KeepAlive(keep)
	runtime.KeepAlive(args)
	return lift(r1, n.ret), nil
}

func (n *nativeInvoker) Close() error {
	n.fn = 0
	return nil
}

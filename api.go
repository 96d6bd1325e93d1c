// Package win32api binds functions exported by native libraries from one-letter
// type codes and calls them with Go values.
//
//	lib, _ := win32api.LoadLibrary("user32.dll")
//	box, _ := win32api.New("MessageBoxA", "LPPI", "I", lib)
//	box.Call(0, "hello", "title", 0)
package win32api

import (
	"fmt"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/agiangrant/win32api/internal/ffi"
	"go.uber.org/zap"
)

// API is a native function bound to a library with a fixed signature.
// It is immutable once created and can be called any number of times.
type API struct {
	name       string
	params     []Type
	ret        Type
	convention Convention
	library    *Library
	invoker    ffi.Invoker
	log        *zap.Logger
}

// New binds function in lib. params holds one type code per parameter and ret
// exactly one type code for the result. The library is borrowed: closing the API
// does not close it.
func New(function, params, ret string, lib *Library, opts ...Option) (*API, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}

	paramTypes, err := ResolveSequence(params)
	if err != nil {
		return nil, fmt.Errorf("%s: params: %w", function, err)
	}
	retTypes, err := ResolveSequence(ret)
	if err != nil {
		return nil, fmt.Errorf("%s: return: %w", function, err)
	}
	if len(retTypes) != 1 {
		return nil, fmt.Errorf("%s: %w: got %q", function, ErrInvalidReturnSpec, ret)
	}

	inv, err := o.factory.CreateInvoker(lib, function, paramTypes, retTypes[0], o.convention)
	if err != nil {
		return nil, fmt.Errorf("binding %s: %w", function, err)
	}

	api := &API{
		name:       function,
		params:     paramTypes,
		ret:        retTypes[0],
		convention: o.convention,
		library:    lib,
		invoker:    inv,
		log:        log,
	}
	runtime.AddCleanup(api, func(inv ffi.Invoker) { _ = inv.Close() }, inv)

	log.Debug("bound native function",
		zap.String("func", function),
		zap.String("params", params),
		zap.String("return", ret),
		zap.Stringer("convention", o.convention),
		zap.Stringer("library", lib))
	return api, nil
}

// Call passes args to the native function in order and returns its result.
// Errors are *CallError; the binding remains usable after a failed call.
func (a *API) Call(args ...any) (any, error) {
	result, err := a.invoker.Invoke(args)
	if err != nil {
		a.log.Debug("native call failed", zap.String("func", a.name), zap.Error(err))
		return nil, err
	}
	return result, nil
}

// Close releases the native invoker. It is safe to call more than once but must not
// race with Call.
func (a *API) Close() error {
	if a.invoker == nil {
		return nil
	}
	err := a.invoker.Close()
	a.log.Debug("released native function", zap.String("func", a.name))
	return err
}

func (a *API) Name() string { return a.name }

// Params returns a copy of the parameter types.
func (a *API) Params() []Type { return append([]Type(nil), a.params...) }

func (a *API) Return() Type { return a.ret }

func (a *API) Convention() Convention { return a.convention }

func (a *API) Library() *Library { return a.library }

// String renders the signature, e.g. "strlen(pointer) long".
func (a *API) String() string {
	var b strings.Builder
	b.WriteString(a.name)
	b.WriteByte('(')
	for i, p := range a.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") ")
	b.WriteString(a.ret.String())
	return b.String()
}

// Signature renders the binding back into its type codes.
func (a *API) Signature() (params, ret string) {
	return encodeTypes(a.params), encodeTypes([]Type{a.ret})
}

func encodeTypes(types []Type) string {
	buf := make([]byte, 0, len(types))
	for _, t := range types {
		for _, tc := range typeCodes {
			if tc.typ == t {
				buf = utf8.AppendRune(buf, tc.code)
				break
			}
		}
	}
	return string(buf)
}

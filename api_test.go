package win32api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/agiangrant/win32api/internal/ffi"
)

// fakeFactory records how invokers are requested and hands out fakeInvokers.
type fakeFactory struct {
	symbols map[string]func(args []any) (any, error)

	gotName   string
	gotParams []Type
	gotRet    Type
	gotConv   Convention
	created   []*fakeInvoker
}

func (f *fakeFactory) CreateInvoker(lib *Library, name string, params []Type, ret Type, conv Convention) (ffi.Invoker, error) {
	f.gotName, f.gotParams, f.gotRet, f.gotConv = name, params, ret, conv
	if !lib.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrLibraryUnavailable, lib)
	}
	fn, ok := f.symbols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, name)
	}
	inv := &fakeInvoker{name: name, arity: len(params), fn: fn}
	f.created = append(f.created, inv)
	return inv, nil
}

type fakeInvoker struct {
	name   string
	arity  int
	fn     func(args []any) (any, error)
	calls  [][]any
	closed bool
}

func (i *fakeInvoker) Invoke(args []any) (any, error) {
	if i.closed {
		return nil, &CallError{Func: i.name, Kind: CallFault, Index: -1, Err: ErrClosed}
	}
	i.calls = append(i.calls, args)
	if len(args) != i.arity {
		return nil, &CallError{Func: i.name, Kind: CallArity, Index: -1, Err: errors.New("arity")}
	}
	return i.fn(args)
}

func (i *fakeInvoker) Close() error {
	i.closed = true
	return nil
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{symbols: map[string]func([]any) (any, error){
		"MessageBoxA": func(args []any) (any, error) { return int32(1), nil },
		"echo": func(args []any) (any, error) {
			return args[0], nil
		},
		"add": func(args []any) (any, error) {
			a, ok1 := args[0].(int)
			b, ok2 := args[1].(int)
			if !ok1 || !ok2 {
				return nil, &CallError{Func: "add", Kind: CallType, Index: 0, Err: errors.New("want int")}
			}
			return int32(a + b), nil
		},
	}}
}

func testLibrary() *Library {
	return WrapLibrary(0x1234, "fake.so")
}

func TestNewResolvesSignature(t *testing.T) {
	f := newFakeFactory()
	api, err := New("echo", "PI", "P", testLibrary(), WithFactory(f))
	require.NoError(t, err)
	defer api.Close()

	assert.Equal(t, []Type{TypePointer, TypeInt32}, api.Params())
	assert.Equal(t, TypePointer, api.Return())
	assert.Equal(t, "echo", api.Name())
	assert.Equal(t, "echo(pointer, int32) pointer", api.String())

	params, ret := api.Signature()
	assert.Equal(t, "PI", params)
	assert.Equal(t, "P", ret)

	assert.Equal(t, "echo", f.gotName)
	assert.Equal(t, []Type{TypePointer, TypeInt32}, f.gotParams)
	assert.Equal(t, TypePointer, f.gotRet)
	assert.Equal(t, SelectConvention(), f.gotConv)
}

func TestNewUsesInjectedConvention(t *testing.T) {
	f := newFakeFactory()
	api, err := New("MessageBoxA", "LPPI", "I", testLibrary(), WithFactory(f), WithConvention(ConventionStdcall))
	require.NoError(t, err)
	assert.Equal(t, ConventionStdcall, api.Convention())
	assert.Equal(t, ConventionStdcall, f.gotConv)

	api, err = New("MessageBoxA", "LPPI", "I", testLibrary(), WithFactory(f), WithConvention(ConventionDefault))
	require.NoError(t, err)
	assert.Equal(t, ConventionDefault, api.Convention())
}

func TestNewFailures(t *testing.T) {
	tests := []struct {
		name    string
		fn      string
		params  string
		ret     string
		lib     *Library
		wantErr error
	}{
		{name: "unknown param code", fn: "echo", params: "Z", ret: "P", lib: testLibrary(), wantErr: ErrUnknownTypeCode},
		{name: "unknown later param code", fn: "echo", params: "PIX", ret: "P", lib: testLibrary(), wantErr: ErrUnknownTypeCode},
		{name: "unknown return code", fn: "echo", params: "P", ret: "V", lib: testLibrary(), wantErr: ErrUnknownTypeCode},
		{name: "empty return", fn: "echo", params: "P", ret: "", lib: testLibrary(), wantErr: ErrInvalidReturnSpec},
		{name: "multi-char return", fn: "echo", params: "P", ret: "PI", lib: testLibrary(), wantErr: ErrInvalidReturnSpec},
		{name: "missing symbol", fn: "nope", params: "P", ret: "P", lib: testLibrary(), wantErr: ErrSymbolNotFound},
		{name: "nil library", fn: "echo", params: "P", ret: "P", lib: nil, wantErr: ErrLibraryUnavailable},
		{name: "closed library", fn: "echo", params: "P", ret: "P", lib: WrapLibrary(0, "closed.so"), wantErr: ErrLibraryUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeFactory()
			api, err := New(tt.fn, tt.params, tt.ret, tt.lib, WithFactory(f))
			assert.Nil(t, api)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewUnknownCodeSkipsFactory(t *testing.T) {
	f := newFakeFactory()
	_, err := New("echo", "Z", "P", testLibrary(), WithFactory(f))
	require.ErrorIs(t, err, ErrUnknownTypeCode)
	assert.Empty(t, f.gotName, "resolution fails before the native layer is touched")
	assert.Empty(t, f.created)
}

func TestNewDefaultFactoryRejectsNilLibrary(t *testing.T) {
	api, err := New("abs", "I", "I", nil)
	assert.Nil(t, api)
	assert.ErrorIs(t, err, ErrLibraryUnavailable)
}

func TestCallForwardsArgumentsInOrder(t *testing.T) {
	f := newFakeFactory()
	api, err := New("add", "II", "I", testLibrary(), WithFactory(f))
	require.NoError(t, err)

	got, err := api.Call(2, 40)
	require.NoError(t, err)
	assert.Equal(t, int32(42), got)

	inv := f.created[0]
	require.Len(t, inv.calls, 1)
	assert.Equal(t, []any{2, 40}, inv.calls[0])
}

func TestCallReturnsResultUnchanged(t *testing.T) {
	f := newFakeFactory()
	api, err := New("echo", "P", "P", testLibrary(), WithFactory(f))
	require.NoError(t, err)

	got, err := api.Call(uintptr(0xfeed))
	require.NoError(t, err)
	assert.Equal(t, uintptr(0xfeed), got)
}

func TestCallFailureLeavesBindingUsable(t *testing.T) {
	f := newFakeFactory()
	api, err := New("add", "II", "I", testLibrary(), WithFactory(f))
	require.NoError(t, err)

	_, err = api.Call(1)
	require.ErrorIs(t, err, ErrNativeCall)
	var ce *CallError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, CallArity, ce.Kind)

	_, err = api.Call("1", 2)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, CallType, ce.Kind)

	got, err := api.Call(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(3), got)
}

func TestCloseReleasesInvoker(t *testing.T) {
	f := newFakeFactory()
	api, err := New("echo", "P", "P", testLibrary(), WithFactory(f))
	require.NoError(t, err)

	require.NoError(t, api.Close())
	require.NoError(t, api.Close())
	assert.True(t, f.created[0].closed)

	_, err = api.Call(uintptr(1))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, err, ErrNativeCall)
}

func TestBindingLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := newFakeFactory()

	api, err := New("add", "II", "I", testLibrary(), WithFactory(f), WithLogger(zap.New(core)))
	require.NoError(t, err)
	_, _ = api.Call(1)
	require.NoError(t, api.Close())

	assert.Equal(t, 1, logs.FilterMessage("bound native function").Len())
	assert.Equal(t, 1, logs.FilterMessage("native call failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("released native function").Len())
}

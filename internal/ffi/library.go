package ffi

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	loggerMu sync.RWMutex
)

// Logger returns the ffi package's logger. It is a no-op logger until SetLogger is called.
func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// SetLogger configures the ffi package's logger.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// Library is an opaque reference to a loaded native library.
type Library struct {
	handle uintptr
	path   string
}

// Open loads the library at path. Locating the file is the caller's job: path is
// handed to the platform loader as is.
func Open(path string) (*Library, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrLibraryUnavailable)
	}
	handle, err := openLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLibraryUnavailable, path, err)
	}
	if handle == 0 {
		return nil, fmt.Errorf("%w: %s: loader returned a null handle", ErrLibraryUnavailable, path)
	}
	Logger().Debug("ffi: library loaded", zap.String("path", path), zap.Uintptr("handle", handle))
	return &Library{handle: handle, path: path}, nil
}

// WrapHandle adopts a handle obtained elsewhere, e.g. from purego.Dlopen.
// Closing the returned Library releases the handle.
func WrapHandle(handle uintptr, path string) *Library {
	return &Library{handle: handle, path: path}
}

// Valid reports whether l refers to an open library.
func (l *Library) Valid() bool {
	return l != nil && l.handle != 0
}

// Handle returns the platform handle, or 0 once closed.
func (l *Library) Handle() uintptr {
	if l == nil {
		return 0
	}
	return l.handle
}

// Path returns the path the library was opened from.
func (l *Library) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

func (l *Library) String() string {
	if l == nil {
		return "<nil library>"
	}
	return l.path
}

// Lookup returns the address of the named symbol.
func (l *Library) Lookup(name string) (uintptr, error) {
	if !l.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrLibraryUnavailable, l)
	}
	addr, err := getSymbol(l.handle, name)
	if err != nil {
		return 0, fmt.Errorf("%w: %s in %s: %v", ErrSymbolNotFound, name, l.path, err)
	}
	if addr == 0 {
		return 0, fmt.Errorf("%w: %s in %s", ErrSymbolNotFound, name, l.path)
	}
	return addr, nil
}

// Close releases the library. Bindings created against it must not be called afterwards.
func (l *Library) Close() error {
	if !l.Valid() {
		return nil
	}
	handle := l.handle
	l.handle = 0
	if err := closeLibrary(handle); err != nil {
		return fmt.Errorf("closing %s: %w", l.path, err)
	}
	Logger().Debug("ffi: library closed", zap.String("path", l.path))
	return nil
}

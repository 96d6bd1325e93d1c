//go:build !(darwin || freebsd || linux || netbsd || windows)

package ffi

import (
	"errors"
	"runtime"
)

var errUnsupportedPlatform = errors.New("native libraries are not supported on " + runtime.GOOS)

func openLibrary(string) (uintptr, error) { return 0, errUnsupportedPlatform }

func getSymbol(uintptr, string) (uintptr, error) { return 0, errUnsupportedPlatform }

func closeLibrary(uintptr) error { return errUnsupportedPlatform }

func syscallN(uintptr, ...uintptr) uintptr {
	panic(errUnsupportedPlatform)
}

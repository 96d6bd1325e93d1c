//go:build darwin || freebsd || linux || netbsd || windows

package ffi

import "github.com/ebitengine/purego"

// syscallN dispatches to fn and returns the integer return register.
// On windows/386 the underlying syscall restores the stack pointer after the call,
// so both conventions go through the same path.
func syscallN(fn uintptr, args ...uintptr) uintptr {
	r1, _, _ := purego.SyscallN(fn, args...)
	return r1
}

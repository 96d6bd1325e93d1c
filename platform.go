package win32api

import (
	"runtime"
	"sync"
)

var (
	conventionOnce sync.Once
	convention     Convention
)

// SelectConvention returns the calling convention for native calls in this process.
// It is computed from the host operating system on first use and never changes afterwards.
func SelectConvention() Convention {
	conventionOnce.Do(func() {
		convention = conventionFor(runtime.GOOS)
	})
	return convention
}

// conventionFor maps an operating system to its calling convention.
// Windows is the only platform whose system libraries require stdcall.
func conventionFor(goos string) Convention {
	switch goos {
	case "windows":
		return ConventionStdcall
	default:
		return ConventionDefault
	}
}

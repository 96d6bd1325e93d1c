package ffi

import (
	"strconv"
	"unsafe"
)

// Type is a resolved native data representation.
type Type uint8

const (
	TypeInvalid Type = iota
	// TypePointer is a pointer-sized address.
	TypePointer
	// TypeInt32 is a 32-bit signed integer.
	TypeInt32
	// TypeLong is a pointer-sized signed integer.
	TypeLong
)

func (t Type) String() string {
	switch t {
	case TypePointer:
		return "pointer"
	case TypeInt32:
		return "int32"
	case TypeLong:
		return "long"
	default:
		return "invalid(" + strconv.Itoa(int(t)) + ")"
	}
}

// Size returns the width of t in bytes, or 0 for TypeInvalid.
func (t Type) Size() int {
	switch t {
	case TypePointer:
		return int(unsafe.Sizeof(uintptr(0)))
	case TypeInt32:
		return 4
	case TypeLong:
		return strconv.IntSize / 8
	default:
		return 0
	}
}

// Valid reports whether t is one of the known descriptors.
func (t Type) Valid() bool {
	return t >= TypePointer && t <= TypeLong
}

// Convention is the argument-passing protocol used at the native call boundary.
type Convention uint8

const (
	// ConventionDefault is the platform C convention.
	ConventionDefault Convention = iota
	// ConventionStdcall is the callee-cleans stack convention used by the Win32 API.
	ConventionStdcall
)

func (c Convention) String() string {
	switch c {
	case ConventionDefault:
		return "default"
	case ConventionStdcall:
		return "stdcall"
	default:
		return "convention(" + strconv.Itoa(int(c)) + ")"
	}
}

// ParseConvention maps a convention name back to its value.
func ParseConvention(s string) (Convention, bool) {
	switch s {
	case "default":
		return ConventionDefault, true
	case "stdcall":
		return ConventionStdcall, true
	}
	return 0, false
}

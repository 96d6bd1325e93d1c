package ffi

import (
	"fmt"
	"math"
	"strconv"
	"unsafe"
)

// keepAlive pins Go memory handed to native code for the duration of a call.
type keepAlive struct {
	bufs [][]byte
	ptrs []unsafe.Pointer
}

func (k *keepAlive) bytes(b []byte) uintptr {
	k.bufs = append(k.bufs, b)
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

func (k *keepAlive) pointer(p unsafe.Pointer) uintptr {
	k.ptrs = append(k.ptrs, p)
	return uintptr(p)
}

// lower converts arg into a machine word for a parameter of type t.
func lower(arg any, t Type, keep *keepAlive) (uintptr, error) {
	switch t {
	case TypePointer:
		return lowerPointer(arg, keep)
	case TypeInt32:
		v, err := integer(arg)
		if err != nil {
			return 0, err
		}
		if !v.fits(math.MinInt32, math.MaxUint32) {
			return 0, fmt.Errorf("%s does not fit in %s", v, t)
		}
		return v.word(), nil
	case TypeLong:
		v, err := integer(arg)
		if err != nil {
			return 0, err
		}
		if !v.fits(math.MinInt, math.MaxUint) {
			return 0, fmt.Errorf("%s does not fit in %s", v, t)
		}
		return v.word(), nil
	default:
		return 0, fmt.Errorf("cannot pass %s", t)
	}
}

func lowerPointer(arg any, keep *keepAlive) (uintptr, error) {
	switch v := arg.(type) {
	case nil:
		return 0, nil
	case uintptr:
		return v, nil
	case unsafe.Pointer:
		return keep.pointer(v), nil
	case *byte:
		return keep.pointer(unsafe.Pointer(v)), nil
	case string:
		buf := make([]byte, len(v)+1)
		copy(buf, v)
		return keep.bytes(buf), nil
	case []byte:
		if len(v) == 0 {
			return 0, nil
		}
		return keep.bytes(v), nil
	}
	n, err := integer(arg)
	if err != nil {
		return 0, fmt.Errorf("cannot pass %T as pointer", arg)
	}
	if n.neg {
		return 0, fmt.Errorf("negative address %s", n)
	}
	if !n.fits(0, math.MaxUint) {
		return 0, fmt.Errorf("address %s overflows pointer", n)
	}
	return n.word(), nil
}

// intValue is an integer argument normalized to sign and magnitude.
type intValue struct {
	neg bool
	mag uint64
}

func integer(arg any) (intValue, error) {
	switch v := arg.(type) {
	case int:
		return signed(int64(v)), nil
	case int8:
		return signed(int64(v)), nil
	case int16:
		return signed(int64(v)), nil
	case int32:
		return signed(int64(v)), nil
	case int64:
		return signed(v), nil
	case uint:
		return intValue{mag: uint64(v)}, nil
	case uint8:
		return intValue{mag: uint64(v)}, nil
	case uint16:
		return intValue{mag: uint64(v)}, nil
	case uint32:
		return intValue{mag: uint64(v)}, nil
	case uint64:
		return intValue{mag: v}, nil
	case uintptr:
		return intValue{mag: uint64(v)}, nil
	case bool:
		if v {
			return intValue{mag: 1}, nil
		}
		return intValue{}, nil
	default:
		return intValue{}, fmt.Errorf("cannot pass %T as integer", arg)
	}
}

func signed(v int64) intValue {
	if v < 0 {
		return intValue{neg: true, mag: uint64(-(v + 1)) + 1}
	}
	return intValue{mag: uint64(v)}
}

// fits reports whether v lies in [lo, hi].
func (v intValue) fits(lo int64, hi uint64) bool {
	if v.neg {
		return lo < 0 && v.mag <= uint64(-(lo+1))+1
	}
	return v.mag <= hi
}

// word returns the two's complement bit pattern of v truncated to a machine word.
func (v intValue) word() uintptr {
	if v.neg {
		return uintptr(-v.mag)
	}
	return uintptr(v.mag)
}

func (v intValue) String() string {
	s := strconv.FormatUint(v.mag, 10)
	if v.neg {
		return "-" + s
	}
	return s
}

// lift converts the integer return register into the Go value for t.
func lift(r1 uintptr, t Type) any {
	switch t {
	case TypePointer:
		return r1
	case TypeInt32:
		return int32(uint32(r1))
	case TypeLong:
		return int(r1)
	default:
		return nil
	}
}

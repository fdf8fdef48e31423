// Package endian provides byte order utilities for the NRRD payload codec.
//
// It extends Go's standard encoding/binary package by combining ByteOrder
// and AppendByteOrder into a single EndianEngine interface, and adds
// element-size-aware in-place byte swapping for raw payload buffers whose
// element size is only known at runtime (1, 2, 4, or 8 bytes, per the NRRD
// scalar type table).
//
// # Basic usage
//
//	engine := endian.GetLittleEndianEngine()
//	if !endian.CompareNativeEndian(engine) {
//	    endian.SwapInPlace(buf, elemSize)
//	}
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface. binary.LittleEndian and binary.BigEndian both
// satisfy it, so existing code built around the standard library works
// unmodified.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host's native byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForName resolves the NRRD "endian" field value ("little" or "big") to an
// EndianEngine. Any other value returns ok=false; the orchestrator surfaces
// this as an EncodingError.
func ForName(name string) (engine EndianEngine, ok bool) {
	switch name {
	case "little":
		return GetLittleEndianEngine(), true
	case "big":
		return GetBigEndianEngine(), true
	default:
		return nil, false
	}
}

// Name returns the NRRD "endian" field spelling for engine ("little" or "big").
func Name(engine EndianEngine) string {
	if engine == GetBigEndianEngine() {
		return "big"
	}

	return "little"
}

// SwapInPlace byte-swaps every elemSize-wide element of buf in place.
//
// elemSize must be 1, 2, 4, or 8; 1 is a no-op (nothing to swap). buf's
// length must be a multiple of elemSize. This is the operation the raw
// payload codec applies when the declared endianness disagrees with the
// host's native order.
func SwapInPlace(buf []byte, elemSize int) {
	switch elemSize {
	case 1:
		return
	case 2:
		for i := 0; i+2 <= len(buf); i += 2 {
			buf[i], buf[i+1] = buf[i+1], buf[i]
		}
	case 4:
		for i := 0; i+4 <= len(buf); i += 4 {
			buf[i], buf[i+3] = buf[i+3], buf[i]
			buf[i+1], buf[i+2] = buf[i+2], buf[i+1]
		}
	case 8:
		for i := 0; i+8 <= len(buf); i += 8 {
			buf[i], buf[i+7] = buf[i+7], buf[i]
			buf[i+1], buf[i+6] = buf[i+6], buf[i+1]
			buf[i+2], buf[i+5] = buf[i+5], buf[i+2]
			buf[i+3], buf[i+4] = buf[i+4], buf[i+3]
		}
	default:
		panic("endian: SwapInPlace: unsupported element size")
	}
}

// Package format defines the two closed enumerations that drive the NRRD
// payload codec: Scalar, the element type declared by a header's "type"
// field, and Encoding, the byte-stream transform declared by "encoding".
//
// Both types accept the full set of aliases a real NRRD file may spell a
// value with, and both always format back to the single canonical spelling
// a writer should emit.
package format

import "strings"

// Scalar identifies the element type of an NRRD array. The zero value is
// not a valid scalar; always construct one via ParseScalar.
type Scalar uint8

const (
	Int8 Scalar = iota + 1
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	// Block is structurally valid (it pairs with a "block size" field) but
	// carries no fixed element size; the payload codec always rejects it
	// with errs.KindUnsupportedType.
	Block
)

// scalarAliases maps every accepted spelling (case-insensitive) to its
// Scalar. ParseScalar lowercases its input before lookup.
var scalarAliases = map[string]Scalar{
	"signed char": Int8, "int8": Int8, "int8_t": Int8,
	"uchar": Uint8, "unsigned char": Uint8, "uint8": Uint8, "uint8_t": Uint8,
	"short": Int16, "short int": Int16, "signed short": Int16, "signed short int": Int16, "int16": Int16, "int16_t": Int16,
	"ushort": Uint16, "unsigned short": Uint16, "unsigned short int": Uint16, "uint16": Uint16, "uint16_t": Uint16,
	"int": Int32, "signed int": Int32, "int32": Int32, "int32_t": Int32,
	"uint": Uint32, "unsigned int": Uint32, "uint32": Uint32, "uint32_t": Uint32,
	"longlong": Int64, "long long": Int64, "long long int": Int64, "signed long long": Int64, "signed long long int": Int64, "int64": Int64, "int64_t": Int64,
	"ulonglong": Uint64, "unsigned long long": Uint64, "unsigned long long int": Uint64, "uint64": Uint64, "uint64_t": Uint64,
	"float":  Float32,
	"double": Float64,
	"block":  Block,
}

// ParseScalar resolves a header "type" field value (case-insensitive) to a
// Scalar. ok is false for any spelling outside the NRRD type table.
func ParseScalar(name string) (scalar Scalar, ok bool) {
	scalar, ok = scalarAliases[strings.ToLower(strings.TrimSpace(name))]
	return scalar, ok
}

// String returns the canonical spelling a writer emits for the "type" field.
func (s Scalar) String() string {
	switch s {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case Block:
		return "block"
	default:
		return "Unknown"
	}
}

// Size returns the element's fixed byte width, or 0 for Block, which has no
// fixed width (it depends on the "block size" field).
func (s Scalar) Size() int {
	switch s {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// IsInteger reports whether s decodes via integer (rather than
// floating-point) parsing in ascii mode.
func (s Scalar) IsInteger() bool {
	switch s {
	case Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64:
		return true
	default:
		return false
	}
}

// IsSigned reports whether s is a signed integer type. Meaningless for
// floating-point scalars and Block.
func (s Scalar) IsSigned() bool {
	switch s {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// Encoding identifies the byte-stream transform applied to an NRRD array's
// payload. The zero value is not valid; always construct one via
// ParseEncoding.
type Encoding uint8

const (
	Raw Encoding = iota + 1
	Ascii
	Hex
	Gzip
	Bzip2
)

var encodingAliases = map[string]Encoding{
	"raw": Raw,

	"ascii": Ascii,
	"text":  Ascii,
	"txt":   Ascii,

	"hex": Hex,

	"gzip": Gzip,
	"gz":   Gzip,

	"bzip2": Bzip2,
	"bz2":   Bzip2,
}

// ParseEncoding resolves a header "encoding" field value (case-insensitive)
// to an Encoding, accepting the legacy txt/text and gz/bz2 spellings.
func ParseEncoding(name string) (encoding Encoding, ok bool) {
	encoding, ok = encodingAliases[strings.ToLower(strings.TrimSpace(name))]
	return encoding, ok
}

// String returns the canonical spelling a writer emits for the "encoding"
// field.
func (e Encoding) String() string {
	switch e {
	case Raw:
		return "raw"
	case Ascii:
		return "ascii"
	case Hex:
		return "hex"
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	default:
		return "Unknown"
	}
}

// IsCompressed reports whether e wraps the raw byte stream in a
// decompression filter before the scalar codec sees it.
func (e Encoding) IsCompressed() bool {
	return e == Gzip || e == Bzip2
}

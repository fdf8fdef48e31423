package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseScalarAliases(t *testing.T) {
	cases := map[string]Scalar{
		"signed char":   Int8,
		"INT8":          Int8,
		"int8_t":        Int8,
		"uchar":         Uint8,
		"unsigned char": Uint8,
		"short":         Int16,
		"ushort":        Uint16,
		"int":           Int32,
		"uint":          Uint32,
		"longlong":      Int64,
		"ulonglong":     Uint64,
		"float":         Float32,
		"double":        Float64,
		"block":         Block,
	}

	for name, want := range cases {
		got, ok := ParseScalar(name)
		require.True(t, ok, "expected %q to resolve", name)
		require.Equal(t, want, got, "for %q", name)
	}
}

func TestParseScalarUnknown(t *testing.T) {
	_, ok := ParseScalar("quaternion")
	require.False(t, ok)
}

func TestScalarStringCanonical(t *testing.T) {
	require.Equal(t, "int8", Int8.String())
	require.Equal(t, "float", Float32.String())
	require.Equal(t, "double", Float64.String())
	require.Equal(t, "block", Block.String())
	require.Equal(t, "Unknown", Scalar(255).String())
}

func TestScalarSize(t *testing.T) {
	require.Equal(t, 1, Int8.Size())
	require.Equal(t, 2, Uint16.Size())
	require.Equal(t, 4, Float32.Size())
	require.Equal(t, 8, Float64.Size())
	require.Equal(t, 0, Block.Size())
}

func TestScalarIsIntegerAndSigned(t *testing.T) {
	require.True(t, Int32.IsInteger())
	require.True(t, Int32.IsSigned())
	require.True(t, Uint32.IsInteger())
	require.False(t, Uint32.IsSigned())
	require.False(t, Float64.IsInteger())
}

func TestParseEncodingAliases(t *testing.T) {
	cases := map[string]Encoding{
		"raw":   Raw,
		"ascii": Ascii,
		"text":  Ascii,
		"txt":   Ascii,
		"hex":   Hex,
		"gzip":  Gzip,
		"gz":    Gzip,
		"bzip2": Bzip2,
		"bz2":   Bzip2,
	}

	for name, want := range cases {
		got, ok := ParseEncoding(name)
		require.True(t, ok, "expected %q to resolve", name)
		require.Equal(t, want, got, "for %q", name)
	}
}

func TestParseEncodingUnknown(t *testing.T) {
	_, ok := ParseEncoding("zstd")
	require.False(t, ok)
}

func TestEncodingStringCanonical(t *testing.T) {
	require.Equal(t, "gzip", Gzip.String())
	require.Equal(t, "bzip2", Bzip2.String())
	require.Equal(t, "Unknown", Encoding(255).String())
}

func TestEncodingIsCompressed(t *testing.T) {
	require.True(t, Gzip.IsCompressed())
	require.True(t, Bzip2.IsCompressed())
	require.False(t, Raw.IsCompressed())
	require.False(t, Ascii.IsCompressed())
	require.False(t, Hex.IsCompressed())
}

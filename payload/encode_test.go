package payload_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nrrdio/nrrd/endian"
	"github.com/nrrdio/nrrd/format"
	"github.com/nrrdio/nrrd/payload"
)

func nativeUint16s(vals []uint16) []byte {
	host := endian.CheckEndianness()
	out := make([]byte, len(vals)*2)
	for i, v := range vals {
		host.PutUint16(out[i*2:i*2+2], v)
	}
	return out
}

func TestEncodeRawThenDecodeRoundTrips(t *testing.T) {
	data := nativeUint16s([]uint16{1, 2, 3, 4, 5})

	var buf bytes.Buffer
	require.NoError(t, payload.Encode(&buf, data, payload.EncodeOptions{
		Scalar:   format.Uint16,
		Encoding: format.Raw,
	}))

	out, err := payload.Decode(&buf, payload.DecodeOptions{
		Scalar:    format.Uint16,
		Encoding:  format.Raw,
		Endian:    endian.CheckEndianness().(endian.EndianEngine),
		ElemCount: 5,
	})
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestEncodeHexThenDecodeRoundTrips(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}

	var buf bytes.Buffer
	require.NoError(t, payload.Encode(&buf, data, payload.EncodeOptions{
		Scalar:   format.Uint8,
		Encoding: format.Hex,
	}))

	out, err := payload.Decode(bytes.NewReader(buf.Bytes()), payload.DecodeOptions{
		Scalar:    format.Uint8,
		Encoding:  format.Hex,
		ElemCount: 4,
	})
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestEncodeAsciiThenDecodeRoundTrips(t *testing.T) {
	data := nativeUint16s([]uint16{10, 20, 30})

	var buf bytes.Buffer
	require.NoError(t, payload.Encode(&buf, data, payload.EncodeOptions{
		Scalar:   format.Uint16,
		Encoding: format.Ascii,
		Sizes:    []int64{3},
	}))

	out, err := payload.Decode(&buf, payload.DecodeOptions{
		Scalar:    format.Uint16,
		Encoding:  format.Ascii,
		ElemCount: 3,
	})
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestEncodeGzipThenDecodeRoundTrips(t *testing.T) {
	data := nativeUint16s([]uint16{100, 200, 300, 400})

	var buf bytes.Buffer
	require.NoError(t, payload.Encode(&buf, data, payload.EncodeOptions{
		Scalar:           format.Uint16,
		Encoding:         format.Gzip,
		CompressionLevel: 6,
	}))

	out, err := payload.Decode(&buf, payload.DecodeOptions{
		Scalar:    format.Uint16,
		Encoding:  format.Gzip,
		ElemCount: 4,
	})
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestEncodeBzip2ThenDecodeRoundTrips(t *testing.T) {
	data := nativeUint16s([]uint16{5, 15, 25})

	var buf bytes.Buffer
	require.NoError(t, payload.Encode(&buf, data, payload.EncodeOptions{
		Scalar:   format.Uint16,
		Encoding: format.Bzip2,
	}))

	out, err := payload.Decode(&buf, payload.DecodeOptions{
		Scalar:    format.Uint16,
		Encoding:  format.Bzip2,
		ElemCount: 3,
	})
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestEncodeBlockUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := payload.Encode(&buf, nil, payload.EncodeOptions{
		Scalar:   format.Block,
		Encoding: format.Raw,
	})
	require.Error(t, err)
}

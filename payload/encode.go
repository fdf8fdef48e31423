package payload

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"math"
	"strconv"

	"github.com/nrrdio/nrrd/compress"
	"github.com/nrrdio/nrrd/endian"
	"github.com/nrrdio/nrrd/errs"
	"github.com/nrrdio/nrrd/format"
	"github.com/nrrdio/nrrd/internal/pool"
)

// writeChunkSize bounds how much of a payload is ever staged in memory
// at once while writing, mirroring the original implementation's
// _WRITE_CHUNKSIZE = 2**20.
const writeChunkSize = 1 << 20

// EncodeOptions carries what the payload encoder needs to write data (a
// Buffer's host-native bytes) back out in the declared encoding. Sizes is
// the header's fastest-first sizes, consulted only by Ascii's line-break
// heuristic.
type EncodeOptions struct {
	Scalar   format.Scalar
	Encoding format.Encoding
	Sizes    []int64

	// CompressionLevel is threaded down to the Gzip/Bzip2 codec; zero
	// means "let the codec pick its default".
	CompressionLevel int
}

// Encode writes data (host-native-order bytes for opts.Scalar) to w in
// opts.Encoding. The writer always emits the native-endian form of raw
// bytes — the caller is responsible for recording the resulting endian
// name in the header, not for pre-swapping data.
func Encode(w io.Writer, data []byte, opts EncodeOptions) error {
	if opts.Scalar == format.Block {
		return errs.New(errs.KindUnsupportedType, "block payload encoding is not supported")
	}

	switch opts.Encoding {
	case format.Raw, format.Gzip, format.Bzip2:
		return encodeViaCodec(w, opts.Encoding, opts.CompressionLevel, func(cw io.Writer) error {
			return writeChunked(cw, data)
		})
	case format.Hex:
		return encodeViaCodec(w, opts.Encoding, opts.CompressionLevel, func(cw io.Writer) error {
			return writeHexChunked(cw, data)
		})
	case format.Ascii:
		return encodeViaCodec(w, opts.Encoding, opts.CompressionLevel, func(cw io.Writer) error {
			return writeAscii(cw, data, opts.Scalar, opts.Sizes)
		})
	default:
		return errs.New(errs.KindEncodingError, "unknown encoding %v", opts.Encoding)
	}
}

func encodeViaCodec(w io.Writer, enc format.Encoding, level int, body func(io.Writer) error) error {
	codec, err := compress.ForEncodingLevel(enc, level)
	if err != nil {
		return errs.Wrap(errs.KindEncodingError, err, "resolving codec")
	}

	cw, err := codec.NewWriter(w)
	if err != nil {
		return errs.Wrap(errs.KindEncodingError, err, "opening %s compressor", enc)
	}

	if err := body(cw); err != nil {
		cw.Close()
		return err
	}

	if err := cw.Close(); err != nil {
		return errs.Wrap(errs.KindEncodingError, err, "closing %s compressor", enc)
	}
	return nil
}

// writeChunked streams data to w writeChunkSize bytes at a time, so a
// compressing writer never has the whole payload materialized twice.
func writeChunked(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := writeChunkSize
		if n > len(data) {
			n = len(data)
		}
		if _, err := w.Write(data[:n]); err != nil {
			return errs.Wrap(errs.KindIOError, err, "writing payload chunk")
		}
		data = data[n:]
	}
	return nil
}

// writeHexChunked hex-encodes data in writeChunkSize-sized slices through
// a pooled staging buffer, rather than allocating one hex string twice
// the size of the whole payload.
func writeHexChunked(w io.Writer, data []byte) error {
	bb := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(bb)

	for len(data) > 0 {
		n := writeChunkSize
		if n > len(data) {
			n = len(data)
		}
		chunk := data[:n]

		bb.Reset()
		bb.ExtendOrGrow(hex.EncodedLen(len(chunk)))
		hex.Encode(bb.Bytes(), chunk)

		if _, err := w.Write(bb.Bytes()); err != nil {
			return errs.Wrap(errs.KindIOError, err, "writing hex payload chunk")
		}
		data = data[n:]
	}
	return nil
}

// writeAscii formats data as one whitespace-separated numeric token per
// element, breaking lines after each run of sizes[0] values (a break
// after each row along the fastest axis) when dimension > 1, and after
// every value when dimension <= 1. The break placement carries no
// semantic meaning but must be deterministic for the round-trip tests.
func writeAscii(w io.Writer, data []byte, scalar format.Scalar, sizes []int64) error {
	elemSize := scalar.Size()
	if elemSize == 0 {
		return errs.New(errs.KindUnsupportedType, "ascii encode: scalar %s", scalar)
	}

	rowLen := int64(1)
	if len(sizes) > 1 {
		rowLen = sizes[0]
	}
	if rowLen <= 0 {
		rowLen = 1
	}

	host := endian.CheckEndianness()
	n := int64(len(data)) / int64(elemSize)

	bb := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(bb)
	bb.Reset()

	for i := int64(0); i < n; i++ {
		tok := formatAsciiToken(data[i*int64(elemSize):(i+1)*int64(elemSize)], scalar, host)
		bb.MustWrite([]byte(tok))

		last := i == n-1
		if !last && (i+1)%rowLen == 0 {
			bb.MustWrite([]byte{'\n'})
		} else if !last {
			bb.MustWrite([]byte{' '})
		}

		if bb.Len() > writeChunkSize {
			if _, err := w.Write(bb.Bytes()); err != nil {
				return errs.Wrap(errs.KindIOError, err, "writing ascii payload chunk")
			}
			bb.Reset()
		}
	}
	bb.MustWrite([]byte{'\n'})

	if _, err := w.Write(bb.Bytes()); err != nil {
		return errs.Wrap(errs.KindIOError, err, "writing ascii payload chunk")
	}
	return nil
}

func formatAsciiToken(src []byte, scalar format.Scalar, host binary.ByteOrder) string {
	if scalar.IsInteger() {
		return strconv.FormatInt(readInt(src, scalar, host), 10)
	}
	return strconv.FormatFloat(readFloat(src, scalar, host), 'g', -1, 64)
}

func readInt(src []byte, scalar format.Scalar, host binary.ByteOrder) int64 {
	switch scalar {
	case format.Int8:
		return int64(int8(src[0]))
	case format.Uint8:
		return int64(src[0])
	case format.Int16:
		return int64(int16(host.Uint16(src)))
	case format.Uint16:
		return int64(host.Uint16(src))
	case format.Int32:
		return int64(int32(host.Uint32(src)))
	case format.Uint32:
		return int64(host.Uint32(src))
	case format.Int64:
		return int64(host.Uint64(src))
	case format.Uint64:
		return int64(host.Uint64(src))
	default:
		return 0
	}
}

func readFloat(src []byte, scalar format.Scalar, host binary.ByteOrder) float64 {
	switch scalar {
	case format.Float32:
		return float64(math.Float32frombits(host.Uint32(src)))
	case format.Float64:
		return math.Float64frombits(host.Uint64(src))
	default:
		return 0
	}
}

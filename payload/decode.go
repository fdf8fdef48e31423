package payload

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"io"
	"math"
	"strconv"

	"github.com/nrrdio/nrrd/compress"
	"github.com/nrrdio/nrrd/endian"
	"github.com/nrrdio/nrrd/errs"
	"github.com/nrrdio/nrrd/format"
)

// DecodeOptions carries everything the payload decoder needs beyond the
// byte source itself: the declared geometry and encoding, plus the
// pre-skip the caller already validated against the encoding (byte skip
// -1 is only legal for Raw; Decode re-checks it defensively).
type DecodeOptions struct {
	Scalar   format.Scalar
	Encoding format.Encoding
	Endian   endian.EndianEngine // nil is fine for Ascii, where it's unused
	ElemCount int

	LineSkip int64
	ByteSkip int64
}

// Decode reads r (already positioned at the start of a header's attached
// tail, or a sibling/multi-file source) and returns opts.ElemCount
// elements of opts.Scalar, as host-native-order bytes.
func Decode(r io.Reader, opts DecodeOptions) ([]byte, error) {
	if opts.Scalar == format.Block {
		return nil, errs.New(errs.KindUnsupportedType, "block payload decoding is not supported")
	}

	elemSize := opts.Scalar.Size()

	if opts.ByteSkip == -1 && opts.Encoding != format.Raw {
		return nil, errs.Wrap(errs.KindInvariantViolation, errs.ErrInvalidByteSkip, "encoding %s", opts.Encoding)
	}

	if err := SkipLines(r, opts.LineSkip); err != nil {
		return nil, err
	}
	if err := ByteSkip(r, opts.ByteSkip, opts.ElemCount, elemSize); err != nil {
		return nil, err
	}

	switch opts.Encoding {
	case format.Raw:
		return decodeRaw(r, opts, elemSize)
	case format.Hex:
		return decodeHex(r, opts, elemSize)
	case format.Ascii:
		return decodeAscii(r, opts)
	case format.Gzip, format.Bzip2:
		return decodeCompressed(r, opts, elemSize)
	default:
		return nil, errs.New(errs.KindEncodingError, "unknown encoding %v", opts.Encoding)
	}
}

func decodeRaw(r io.Reader, opts DecodeOptions, elemSize int) ([]byte, error) {
	out := make([]byte, opts.ElemCount*elemSize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, errs.Wrap(errs.KindEncodingError, err, "short raw payload read")
	}
	swapToHostOrder(out, opts.Endian, elemSize)
	return out, nil
}

func decodeHex(r io.Reader, opts DecodeOptions, elemSize int) ([]byte, error) {
	want := opts.ElemCount * elemSize
	hexChars := make([]byte, 0, want*2)

	br := bufio.NewReaderSize(r, 64*1024)
	for len(hexChars) < want*2 {
		b, err := br.ReadByte()
		if err != nil {
			return nil, errs.Wrap(errs.KindEncodingError, err, "short hex payload read")
		}
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			continue
		default:
			hexChars = append(hexChars, b)
		}
	}

	out := make([]byte, want)
	if _, err := hex.Decode(out, hexChars); err != nil {
		return nil, errs.Wrap(errs.KindEncodingError, err, "invalid hex payload")
	}
	swapToHostOrder(out, opts.Endian, elemSize)
	return out, nil
}

func decodeCompressed(r io.Reader, opts DecodeOptions, elemSize int) ([]byte, error) {
	codec, err := compress.ForEncoding(opts.Encoding)
	if err != nil {
		return nil, errs.Wrap(errs.KindEncodingError, err, "resolving codec")
	}

	decomp, err := codec.NewReader(r)
	if err != nil {
		return nil, errs.Wrap(errs.KindEncodingError, err, "opening %s decompressor", opts.Encoding)
	}
	defer decomp.Close()

	out := make([]byte, opts.ElemCount*elemSize)
	if _, err := io.ReadFull(decomp, out); err != nil {
		return nil, errs.Wrap(errs.KindEncodingError, err, "short %s payload read", opts.Encoding)
	}
	swapToHostOrder(out, opts.Endian, elemSize)
	return out, nil
}

func decodeAscii(r io.Reader, opts DecodeOptions) ([]byte, error) {
	elemSize := opts.Scalar.Size()
	out := make([]byte, opts.ElemCount*elemSize)
	host := endian.CheckEndianness()

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for i := 0; i < opts.ElemCount; i++ {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, errs.Wrap(errs.KindEncodingError, err, "reading ascii token %d", i)
			}
			return nil, errs.Wrap(errs.KindEncodingError, errs.ErrElementCountMismatch, "ascii payload has %d tokens, want %d", i, opts.ElemCount)
		}

		tok := scanner.Text()
		dst := out[i*elemSize : (i+1)*elemSize]
		if err := writeAsciiToken(dst, opts.Scalar, host, tok); err != nil {
			return nil, errs.Wrap(errs.KindEncodingError, err, "ascii token %d %q", i, tok)
		}
	}

	if scanner.Scan() {
		return nil, errs.Wrap(errs.KindEncodingError, errs.ErrElementCountMismatch, "ascii payload has more than %d tokens", opts.ElemCount)
	}

	return out, nil
}

func writeAsciiToken(dst []byte, scalar format.Scalar, host binary.ByteOrder, tok string) error {
	if scalar.IsInteger() {
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return err
		}
		return putInt(dst, scalar, host, n)
	}

	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return err
	}
	return putFloat(dst, scalar, host, f)
}

func putInt(dst []byte, scalar format.Scalar, host binary.ByteOrder, n int64) error {
	switch scalar {
	case format.Int8, format.Uint8:
		dst[0] = byte(n)
	case format.Int16, format.Uint16:
		host.PutUint16(dst, uint16(n))
	case format.Int32, format.Uint32:
		host.PutUint32(dst, uint32(n))
	case format.Int64, format.Uint64:
		host.PutUint64(dst, uint64(n))
	default:
		return errs.New(errs.KindUnsupportedType, "ascii decode: scalar %s", scalar)
	}
	return nil
}

func putFloat(dst []byte, scalar format.Scalar, host binary.ByteOrder, f float64) error {
	switch scalar {
	case format.Float32:
		host.PutUint32(dst, math.Float32bits(float32(f)))
	case format.Float64:
		host.PutUint64(dst, math.Float64bits(f))
	default:
		return errs.New(errs.KindUnsupportedType, "ascii decode: scalar %s", scalar)
	}
	return nil
}

// swapToHostOrder byte-swaps buf in place if declared, a nil-safe
// no-op when endian is nil (ascii) or the type is single-byte.
func swapToHostOrder(buf []byte, declared endian.EndianEngine, elemSize int) {
	if declared == nil || elemSize <= 1 {
		return
	}
	if !endian.CompareNativeEndian(declared) {
		endian.SwapInPlace(buf, elemSize)
	}
}

// Package compress wires the NRRD payload codec's two compressed
// encodings, gzip and bzip2, to real streaming implementations, plus a
// no-op codec for the three encodings that carry no compression stage
// (raw, ascii, hex). The payload writer pushes data through a Codec in
// bounded chunks regardless of which one is selected, so compression
// never doubles peak memory the way a whole-buffer Compress/Decompress
// call would.
package compress

import (
	"fmt"
	"io"

	"github.com/nrrdio/nrrd/format"
)

// Codec opens streaming writers and readers for one compression
// algorithm. Unlike a whole-buffer Compress/Decompress pair, this lets
// the payload codec stream arbitrarily large arrays through fixed-size
// chunks.
type Codec interface {
	// NewWriter wraps w so writes to the returned WriteCloser are
	// compressed before reaching w. Close must be called to flush any
	// buffered compressed output.
	NewWriter(w io.Writer) (io.WriteCloser, error)

	// NewReader wraps r so reads from the returned ReadCloser yield
	// decompressed bytes.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// ForEncoding returns the Codec for enc. Raw, Ascii, and Hex all use the
// no-op codec: their bytes already are (or become, via the ascii/hex
// text codec) the final on-disk form, so the payload writer's chunked
// loop still applies but performs no transformation.
func ForEncoding(enc format.Encoding) (Codec, error) {
	return ForEncodingLevel(enc, 0)
}

// ForEncodingLevel is ForEncoding plus a compression level, threaded down
// from the orchestrator's WithCompressionLevel option. It is ignored for
// encodings with no compression stage.
func ForEncodingLevel(enc format.Encoding, level int) (Codec, error) {
	switch enc {
	case format.Raw, format.Ascii, format.Hex:
		return NoOp{}, nil
	case format.Gzip:
		return Gzip{Level: level}, nil
	case format.Bzip2:
		return Bzip2{Level: level}, nil
	default:
		return nil, fmt.Errorf("compress: unsupported encoding %s", enc)
	}
}

// nopReadCloser and nopWriteCloser adapt the no-op codec's io.Reader and
// io.Writer, which need no Close, to the ReadCloser/WriteCloser shape the
// Codec interface expects uniformly.
type nopReadCloser struct{ io.Reader }

func (nopReadCloser) Close() error { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

package compress

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// Gzip streams the "gzip"/"gz" encoding through klauspost/compress, a
// drop-in replacement for the standard library's compress/gzip with a
// faster deflate implementation.
//
// Level is a gzip compression level (gzip.DefaultCompression..
// gzip.BestCompression); the zero value uses gzip's default, matching
// the orchestrator's WithCompressionLevel option being optional.
type Gzip struct {
	Level int
}

var _ Codec = Gzip{}

func (g Gzip) NewWriter(w io.Writer) (io.WriteCloser, error) {
	if g.Level == 0 {
		return gzip.NewWriter(w), nil
	}
	return gzip.NewWriterLevel(w, g.Level)
}

func (Gzip) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

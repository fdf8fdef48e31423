package compress

import (
	"io"

	"github.com/dsnet/compress/bzip2"
)

// Bzip2 streams the "bzip2"/"bz2" encoding through dsnet/compress, the
// only library in the reviewed ecosystem offering a bzip2 writer; the
// standard library's compress/bzip2 only reads.
//
// Level, like Gzip.Level, is optional; zero uses the library's default.
type Bzip2 struct {
	Level int
}

var _ Codec = Bzip2{}

func (b Bzip2) NewWriter(w io.Writer) (io.WriteCloser, error) {
	var cfg *bzip2.WriterConfig
	if b.Level != 0 {
		cfg = &bzip2.WriterConfig{Level: b.Level}
	}
	return bzip2.NewWriter(w, cfg)
}

func (Bzip2) NewReader(r io.Reader) (io.ReadCloser, error) {
	return bzip2.NewReader(r, nil)
}

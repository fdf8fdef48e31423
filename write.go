package nrrd

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/nrrdio/nrrd/endian"
	"github.com/nrrdio/nrrd/errs"
	"github.com/nrrdio/nrrd/field"
	"github.com/nrrdio/nrrd/format"
	"github.com/nrrdio/nrrd/geometry"
	"github.com/nrrdio/nrrd/header"
	"github.com/nrrdio/nrrd/payload"
)

// Write encodes buf's contents to path per h's existing fields plus the
// geometry fields Write synthesizes from buf itself ("type", "dimension",
// "sizes", "endian"). path's extension (".nrrd" vs ".nhdr") and
// WithDetachedHeader together decide whether the payload is attached or
// written to a sibling file.
func Write(path string, buf payload.Buffer, h *header.Header, opts ...Option) error {
	s, err := resolve(opts...)
	if err != nil {
		return err
	}

	if err := syncGeometry(h, buf, s); err != nil {
		return err
	}

	enc := resolveEncoding(h, s)
	h.Set("encoding", field.NewString(enc.String()))

	headerPath, dataPath, detached, literalDataPath := detachedPaths(path, s.detachedHeader)
	if detached {
		h.Set("data file", field.NewString(filepath.Base(dataPath)))
	} else {
		h.Delete("data file")
	}

	cfg := s.cfg.headerConfig(s.customFieldMap)

	if !detached {
		return writeAttached(headerPath, h, buf, enc, s, cfg)
	}

	if err := writeDataFile(dataPath, h, buf, enc, s, literalDataPath); err != nil {
		return err
	}
	return writeHeaderFile(headerPath, h, cfg)
}

// syncGeometry derives "type", "dimension", and "sizes" from buf, and
// either sets or clears "endian" depending on whether buf's scalar is
// wider than one byte — per §4.2, endian is required for every
// multi-byte scalar and must be absent for every single-byte one.
func syncGeometry(h *header.Header, buf payload.Buffer, s *settings) error {
	order := buf.IndexOrder()
	if order == 0 {
		order = s.indexOrder
	}

	sizes := geometry.ToHeaderSizes(buf.Shape(), order)
	wantLen := payload.ElementCount(sizes) * int64(buf.Scalar().Size())
	if int64(len(buf.Bytes())) != wantLen {
		return errs.New(errs.KindInvariantViolation,
			"buffer has %d bytes, shape/scalar implies %d", len(buf.Bytes()), wantLen)
	}

	h.Set("type", field.NewString(buf.Scalar().String()))
	h.Set("dimension", field.NewInt(int64(len(sizes))))
	h.Set("sizes", field.NewIntSeq(sizes))

	if buf.Scalar().Size() <= 1 {
		h.Delete("endian")
		return nil
	}

	name := "little"
	if endian.IsNativeBigEndian() {
		name = "big"
	}
	h.Set("endian", field.NewString(name))
	return nil
}

// resolveEncoding honors an explicit WithEncoding override, then an
// existing "encoding" field already on h, then falls back to gzip.
func resolveEncoding(h *header.Header, s *settings) format.Encoding {
	if s.encoding != nil {
		return *s.encoding
	}
	if v, ok := h.Get("encoding"); ok {
		if enc, ok := format.ParseEncoding(v.Str()); ok {
			return enc
		}
	}
	return format.Gzip
}

// detachedPaths decides, from path's extension and the caller's explicit
// request, whether the header and data live in one file or two, and if
// two, what the sibling data file is named.
//
// ".nhdr" always implies detached, with the sibling data file named
// "<base>.raw" (or ".raw.gz"/".raw.bz2"/".txt", decided later by
// payloadExtension once the encoding is known) living alongside it.
// ".nrrd" is attached unless detachedHeader was requested, in which case
// the header moves to "<base>.nhdr" and the data file keeps path's own
// ".nrrd" name literally, regardless of encoding.
func detachedPaths(path string, detachedHeader bool) (headerPath, dataPath string, detached, literalDataPath bool) {
	ext := strings.ToLower(filepath.Ext(path))
	base := strings.TrimSuffix(path, filepath.Ext(path))

	switch {
	case ext == ".nhdr":
		return path, base, true, false
	case detachedHeader:
		return base + ".nhdr", path, true, true
	default:
		return path, path, false, false
	}
}

// payloadExtension names the sibling data file payloadExtension produces
// for a detached ".nhdr" header, per §4.4's detached-filename policy: the
// base name stays the same, only the suffix reflects the encoding.
func payloadExtension(enc format.Encoding) string {
	switch enc {
	case format.Gzip:
		return ".raw.gz"
	case format.Bzip2:
		return ".raw.bz2"
	case format.Ascii:
		return ".txt"
	default:
		return ".raw"
	}
}

func writeAttached(path string, h *header.Header, buf payload.Buffer, enc format.Encoding, s *settings, cfg *header.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.KindIOError, err, "creating %q", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := header.Write(w, h, cfg); err != nil {
		return errs.Wrap(errs.KindIOError, err, "writing header to %q", path)
	}

	if err := payload.Encode(w, buf.Bytes(), payload.EncodeOptions{
		Scalar:           buf.Scalar(),
		Encoding:         enc,
		Sizes:            geometry.ToHeaderSizes(buf.Shape(), buf.IndexOrder()),
		CompressionLevel: s.compressionLevel,
	}); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return errs.Wrap(errs.KindIOError, err, "flushing %q", path)
	}
	return nil
}

func writeHeaderFile(path string, h *header.Header, cfg *header.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.KindIOError, err, "creating %q", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := header.Write(w, h, cfg); err != nil {
		return errs.Wrap(errs.KindIOError, err, "writing header to %q", path)
	}
	if err := w.Flush(); err != nil {
		return errs.Wrap(errs.KindIOError, err, "flushing %q", path)
	}
	return nil
}

// writeDataFile writes buf's payload to dataPath. For a ".nhdr" header,
// dataPath carries no suffix yet and writeDataFile appends the one the
// chosen encoding implies. For a ".nrrd" file written with a detached
// header, dataPath is already the caller's literal filename and is used
// as-is, matching the original writer's behavior of never renaming a
// ".nrrd" sibling to reflect its encoding.
func writeDataFile(dataPath string, h *header.Header, buf payload.Buffer, enc format.Encoding, s *settings, literal bool) error {
	resolved := dataPath
	if !literal {
		resolved = dataPath + payloadExtension(enc)
	}
	h.Set("data file", field.NewString(filepath.Base(resolved)))

	f, err := os.Create(resolved)
	if err != nil {
		return errs.Wrap(errs.KindIOError, err, "creating %q", resolved)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := payload.Encode(w, buf.Bytes(), payload.EncodeOptions{
		Scalar:           buf.Scalar(),
		Encoding:         enc,
		Sizes:            geometry.ToHeaderSizes(buf.Shape(), buf.IndexOrder()),
		CompressionLevel: s.compressionLevel,
	}); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return errs.Wrap(errs.KindIOError, err, "flushing %q", resolved)
	}
	return nil
}

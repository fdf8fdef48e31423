package nrrd

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nrrdio/nrrd/endian"
	"github.com/nrrdio/nrrd/errs"
	"github.com/nrrdio/nrrd/format"
	"github.com/nrrdio/nrrd/geometry"
	"github.com/nrrdio/nrrd/header"
	"github.com/nrrdio/nrrd/payload"
)

// Read opens path, parses its header, and decodes its payload — attached,
// single-sibling, or templated multi-sibling — in one pass.
func Read(path string, opts ...Option) (*payload.Array, *header.Header, error) {
	s, err := resolve(opts...)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errs.Wrap(errs.KindIOError, err, "opening %q", path)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	h, err := header.Read(br, s.cfg.headerConfig(s.customFieldMap))
	if err != nil {
		return nil, nil, err
	}

	arr, err := decodePayload(h, path, br, s)
	if err != nil {
		return nil, nil, err
	}
	return arr, h, nil
}

// ReadHeader parses only path's header, leaving the payload undecoded.
// Pass the returned Header to ReadData, along with the same path, to
// decode the payload in a second pass.
func ReadHeader(path string, opts ...Option) (*header.Header, error) {
	s, err := resolve(opts...)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIOError, err, "opening %q", path)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	return header.Read(br, s.cfg.headerConfig(s.customFieldMap))
}

// ReadData decodes the payload described by h, an already-parsed header
// from ReadHeader. path must be the same path ReadHeader was called
// with — an attached payload is reached by re-reading and re-skipping
// the header; a detached payload is resolved relative to path's
// directory.
func ReadData(path string, h *header.Header, opts ...Option) (*payload.Array, error) {
	s, err := resolve(opts...)
	if err != nil {
		return nil, err
	}

	if _, detached := h.Get("data file"); detached {
		return decodePayload(h, path, nil, s)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIOError, err, "opening %q", path)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if _, err := header.Read(br, s.cfg.headerConfig(s.customFieldMap)); err != nil {
		return nil, err
	}
	return decodePayload(h, path, br, s)
}

// decodePayload resolves the geometry and data-reference fields of h,
// opens whichever byte source they imply (attachedReader for an attached
// payload, a sibling file or multi-file sequence otherwise), and decodes
// it into a payload.Array shaped per s.indexOrder.
func decodePayload(h *header.Header, srcPath string, attachedReader *bufio.Reader, s *settings) (*payload.Array, error) {
	scalar, err := requiredScalar(h)
	if err != nil {
		return nil, err
	}

	sizes, err := requiredSizes(h)
	if err != nil {
		return nil, err
	}

	endianEngine, err := requiredEndian(h, scalar)
	if err != nil {
		return nil, err
	}

	enc, err := headerEncoding(h)
	if err != nil {
		return nil, err
	}

	lineSkip := headerInt(h, "line skip")
	byteSkip := headerInt(h, "byte skip")
	elemCount := payload.ElementCount(sizes)

	if byteSkip == -1 && enc != format.Raw {
		return nil, errs.Wrap(errs.KindInvariantViolation, errs.ErrInvalidByteSkip, "encoding %s", enc)
	}

	src, closer, adjLineSkip, adjByteSkip, err := openDataSource(h, srcPath, attachedReader, scalar, elemCount, lineSkip, byteSkip)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer.Close()
	}

	data, err := payload.Decode(src, payload.DecodeOptions{
		Scalar:    scalar,
		Encoding:  enc,
		Endian:    endianEngine,
		ElemCount: int(elemCount),
		LineSkip:  adjLineSkip,
		ByteSkip:  adjByteSkip,
	})
	if err != nil {
		return nil, err
	}

	shape := geometry.ToBufferShape(sizes, s.indexOrder)
	return payload.NewArrayFromBytes(scalar, shape, s.indexOrder, data), nil
}

func requiredScalar(h *header.Header) (format.Scalar, error) {
	v, ok := h.Get("type")
	if !ok {
		return 0, errs.New(errs.KindMalformedHeader, "missing required field %q", "type")
	}
	scalar, ok := format.ParseScalar(v.Str())
	if !ok {
		return 0, errs.New(errs.KindUnsupportedType, "unknown scalar type %q", v.Str())
	}
	return scalar, nil
}

func requiredSizes(h *header.Header) ([]int64, error) {
	sizesVal, ok := h.Get("sizes")
	if !ok {
		return nil, errs.New(errs.KindMalformedHeader, "missing required field %q", "sizes")
	}
	sizes := sizesVal.IntSlice()

	dimVal, ok := h.Get("dimension")
	if !ok {
		return nil, errs.New(errs.KindMalformedHeader, "missing required field %q", "dimension")
	}
	if int(dimVal.Int()) != len(sizes) {
		return nil, errs.Wrap(errs.KindInvariantViolation, errs.ErrDimensionMismatch,
			"dimension=%d len(sizes)=%d", dimVal.Int(), len(sizes))
	}

	for _, sz := range sizes {
		if sz < 1 {
			return nil, errs.New(errs.KindInvariantViolation, "sizes must all be >= 1, got %d", sz)
		}
	}
	return sizes, nil
}

func requiredEndian(h *header.Header, scalar format.Scalar) (endian.EndianEngine, error) {
	if scalar.Size() <= 1 {
		return nil, nil
	}

	v, ok := h.Get("endian")
	if !ok {
		return nil, errs.Wrap(errs.KindInvariantViolation, errs.ErrMissingEndian, "type %s", scalar)
	}
	engine, ok := endian.ForName(v.Str())
	if !ok {
		return nil, errs.New(errs.KindEncodingError, "invalid endian %q", v.Str())
	}
	return engine, nil
}

func headerEncoding(h *header.Header) (format.Encoding, error) {
	name := "raw"
	if v, ok := h.Get("encoding"); ok {
		name = v.Str()
	}
	enc, ok := format.ParseEncoding(name)
	if !ok {
		return 0, errs.New(errs.KindEncodingError, "unknown encoding %q", name)
	}
	return enc, nil
}

func headerInt(h *header.Header, name string) int64 {
	if v, ok := h.Get(name); ok {
		return v.Int()
	}
	return 0
}

// openDataSource resolves h's data reference to a concrete byte source
// and returns it alongside the line/byte skip Decode should still apply
// itself — zero for a multi-file source, which has already applied the
// skip once per constituent file.
func openDataSource(
	h *header.Header, srcPath string, attachedReader *bufio.Reader,
	scalar format.Scalar, elemCount int64, lineSkip, byteSkip int64,
) (src io.Reader, closer io.Closer, adjLineSkip, adjByteSkip int64, err error) {
	dataFileVal, detached := h.Get("data file")
	if !detached {
		if attachedReader == nil {
			return nil, nil, 0, 0, errs.New(errs.KindIOError, "attached payload requires the header's byte stream")
		}
		return attachedReader, nil, lineSkip, byteSkip, nil
	}

	raw := strings.TrimSpace(dataFileVal.Str())
	if raw == "LIST" || strings.HasPrefix(raw, "LIST") {
		return nil, nil, 0, 0, errs.Wrap(errs.KindInvariantViolation, errs.ErrUnsupportedListForm, "data file %q", raw)
	}

	dir := filepath.Dir(srcPath)

	if isMultiFileSpec(raw) {
		paths, _, err := payload.ExpandMultiFile(raw)
		if err != nil {
			return nil, nil, 0, 0, err
		}
		if len(paths) == 0 {
			return nil, nil, 0, 0, errs.New(errs.KindInvariantViolation, "templated data file expands to zero paths")
		}

		nFiles := int64(len(paths))
		if elemCount%nFiles != 0 {
			return nil, nil, 0, 0, errs.New(errs.KindInvariantViolation,
				"element count %d does not evenly divide across %d files", elemCount, nFiles)
		}
		perFile := int(elemCount / nFiles)

		resolved := make([]string, len(paths))
		for i, p := range paths {
			resolved[i] = filepath.Join(dir, p)
		}

		mrc := payload.NewMultiFileSource(openSeekable, resolved, lineSkip, byteSkip, perFile, scalar.Size())
		return mrc, mrc, 0, 0, nil
	}

	f, err := os.Open(filepath.Join(dir, raw))
	if err != nil {
		return nil, nil, 0, 0, errs.Wrap(errs.KindIOError, err, "opening sibling data file %q", raw)
	}
	return f, f, lineSkip, byteSkip, nil
}

func isMultiFileSpec(raw string) bool {
	return len(strings.Fields(raw)) >= 4
}

func openSeekable(path string) (payload.SeekableFile, error) {
	return os.Open(path)
}

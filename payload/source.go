package payload

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nrrdio/nrrd/errs"
)

// SkipLines consumes n newline-terminated lines from r before the caller
// starts decoding. It reads one byte at a time deliberately: line skip
// counts are always small (NRRD files rarely skip more than a handful of
// header-like lines in a detached payload), and reading byte-by-byte
// keeps r's underlying Seeker usable for a following ByteSkip, which
// wrapping r in a *bufio.Reader would not.
func SkipLines(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}

	buf := make([]byte, 1)
	var seen int64
	for seen < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return errs.Wrap(errs.KindEncodingError, err, "line skip: consumed %d of %d lines", seen, n)
		}
		if buf[0] == '\n' {
			seen++
		}
	}
	return nil
}

// ByteSkip advances r by byteSkip bytes before the caller starts
// decoding. byteSkip == -1 is legal only for the raw encoding (checked by
// the caller) and means "seek to end-of-file and back up exactly
// elemCount*elemSize bytes"; it requires r to support io.Seeker.
func ByteSkip(r io.Reader, byteSkip int64, elemCount int, elemSize int) error {
	switch {
	case byteSkip == 0:
		return nil
	case byteSkip == -1:
		seeker, ok := r.(io.Seeker)
		if !ok {
			return errs.New(errs.KindEncodingError, "byte skip -1 requires a seekable payload source")
		}
		want := int64(elemCount) * int64(elemSize)
		end, err := seeker.Seek(0, io.SeekEnd)
		if err != nil {
			return errs.Wrap(errs.KindIOError, err, "seeking to end for byte skip -1")
		}
		if _, err := seeker.Seek(end-want, io.SeekStart); err != nil {
			return errs.Wrap(errs.KindIOError, err, "seeking back %d bytes for byte skip -1", want)
		}
		return nil
	case byteSkip > 0:
		if _, err := io.CopyN(io.Discard, r, byteSkip); err != nil {
			return errs.Wrap(errs.KindEncodingError, err, "byte skip %d", byteSkip)
		}
		return nil
	default:
		return errs.New(errs.KindInvariantViolation, "byte skip %d is not a legal value", byteSkip)
	}
}

// ExpandMultiFile expands a templated "data file" spec of the form
// "<fmt> <min> <max> <step> [<subdim>]" into the ordered list of sibling
// paths fmt (a printf-style integer template) produces for each integer
// in [min, max] stepping by step. subdim is parsed and returned (-1 when
// absent) but not used by the expansion; the orchestrator also ignores it
// and always concatenates the files in path order, which is correct only
// when the files split the slowest axis.
func ExpandMultiFile(spec string) (paths []string, subdim int, err error) {
	fields := strings.Fields(spec)
	if len(fields) < 4 {
		return nil, 0, errs.New(errs.KindInvariantViolation, "templated data file spec needs at least 4 fields: %q", spec)
	}

	tmpl := fields[0]
	min, err1 := strconv.Atoi(fields[1])
	max, err2 := strconv.Atoi(fields[2])
	step, err3 := strconv.Atoi(fields[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, 0, errs.New(errs.KindInvariantViolation, "templated data file spec has non-integer min/max/step: %q", spec)
	}
	if step == 0 {
		return nil, 0, errs.New(errs.KindInvariantViolation, "templated data file spec has zero step: %q", spec)
	}

	subdim = -1
	if len(fields) >= 5 {
		subdim, err = strconv.Atoi(fields[4])
		if err != nil {
			return nil, 0, errs.New(errs.KindInvariantViolation, "templated data file spec has non-integer subdim: %q", spec)
		}
	}

	if step > 0 {
		for i := min; i <= max; i += step {
			paths = append(paths, fmt.Sprintf(tmpl, i))
		}
	} else {
		for i := min; i >= max; i += step {
			paths = append(paths, fmt.Sprintf(tmpl, i))
		}
	}

	return paths, subdim, nil
}

// multiFileSource concatenates an ordered sequence of sibling files into
// a single logical byte stream, applying lineSkip/byteSkip independently
// to each file as it is opened — per the spec, skips apply per detached
// file, not once across the whole concatenation.
type multiFileSource struct {
	open               func(path string) (SeekableFile, error)
	paths              []string
	lineSkip, byteSkip int64
	elemCountPerFile   int
	elemSize           int

	idx int
	cur SeekableFile
}

// SeekableFile is the subset of *os.File the multi-file source needs;
// satisfied by *os.File, kept as an interface so tests can substitute an
// in-memory stand-in.
type SeekableFile interface {
	io.ReadCloser
	io.Seeker
}

// NewMultiFileSource builds a Reader that walks paths in order, applying
// the given pre-skip to each file independently. elemCountPerFile is only
// consulted when byteSkip == -1.
func NewMultiFileSource(open func(path string) (SeekableFile, error), paths []string, lineSkip, byteSkip int64, elemCountPerFile, elemSize int) io.ReadCloser {
	return &multiFileSource{
		open: open, paths: paths, lineSkip: lineSkip, byteSkip: byteSkip,
		elemCountPerFile: elemCountPerFile, elemSize: elemSize,
	}
}

func (m *multiFileSource) Read(p []byte) (int, error) {
	for {
		if m.cur == nil {
			if m.idx >= len(m.paths) {
				return 0, io.EOF
			}
			f, err := m.open(m.paths[m.idx])
			if err != nil {
				return 0, errs.Wrap(errs.KindIOError, err, "opening sibling file %q", m.paths[m.idx])
			}
			if err := SkipLines(f, m.lineSkip); err != nil {
				f.Close()
				return 0, err
			}
			if err := ByteSkip(f, m.byteSkip, m.elemCountPerFile, m.elemSize); err != nil {
				f.Close()
				return 0, err
			}
			m.cur = f
			m.idx++
		}

		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			m.cur.Close()
			m.cur = nil
			continue
		}
		if err != nil {
			return n, err
		}
	}
}

func (m *multiFileSource) Close() error {
	if m.cur != nil {
		return m.cur.Close()
	}
	return nil
}

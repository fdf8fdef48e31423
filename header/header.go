// Package header implements the NRRD header grammar: the magic line,
// standard and custom field lines, the blank-line terminator, and the
// ordered key/value store those lines parse into.
//
// Read takes a *bufio.Reader and Write an io.Writer, rather than a path,
// so the orchestrator package can keep reading or writing the same
// stream for an attached payload immediately after the header's
// blank-line terminator. Read takes the buffered reader itself (not a
// plain io.Reader) so the orchestrator's later payload read shares its
// buffering state instead of losing look-ahead bytes to a second,
// internal bufio.Reader.
package header

import (
	"go.uber.org/zap"

	"github.com/nrrdio/nrrd/field"
	"github.com/nrrdio/nrrd/internal/options"
)

// DefaultVersion is the magic-line version a Write call emits unless
// Config.Version overrides it.
const DefaultVersion = 4

// Config controls header parsing and writing policy. Build one with the
// zero value (matching the package defaults) or via the WithXxx functional
// options in the root nrrd package, which thread down to this struct.
type Config struct {
	// AllowDuplicateField downgrades a repeated field name from a fatal
	// errs.KindDuplicateField to a logged warning that keeps the first
	// occurrence.
	AllowDuplicateField bool

	// SpaceDirectionsShape selects whether "space directions" and
	// "measurement frame" parse as a DoubleMatrix or a DoubleVectorList.
	SpaceDirectionsShape field.SpaceDirectionsShape

	// CustomFieldMap supplies the Kind for field names outside the
	// standard registry; such names are written with ":=" rather than
	// ": " and are never subject to AllowDuplicateField.
	CustomFieldMap map[string]field.Kind

	// Version overrides the magic-line version emitted on Write. Zero
	// means DefaultVersion.
	Version int

	// Logger receives the duplicate-field warning. Defaults to a no-op
	// logger; set via the root package's WithLogger option.
	Logger *zap.Logger
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Config) registry() *field.Registry {
	return field.NewRegistry(c.SpaceDirectionsShape, c.CustomFieldMap)
}

// Field is one name/value pair from a parsed header. Header keeps fields
// in insertion order; Write applies the canonical order only to its
// output and does not reorder the stored fields.
type Field struct {
	Name   string
	Value  field.Value
	Custom bool
}

// Header is the ordered key/value store a header line stream parses into.
// Standard field lookups are alias-resolved but match case exactly (Read
// stores standard names lowercased); custom fields are stored and written
// back verbatim under their original name.
type Header struct {
	Version int

	// Comments holds provenance lines written immediately after the
	// magic line by WithComment; on read, any "#" lines encountered are
	// collected here in order, without interpretation.
	Comments []string

	fields []Field
	index  map[string]int // canonical name -> index into fields
}

// New returns an empty Header with Version set to DefaultVersion, applying
// any supplied options (currently only WithComment).
func New(opts ...options.Option[*Header]) *Header {
	h := &Header{Version: DefaultVersion, index: make(map[string]int)}
	// New never fails today (WithComment cannot error), so the error from
	// a caller-defined Option[*Header] would only surface a bug in that
	// option itself; panic rather than silently drop it.
	if err := options.Apply(h, opts...); err != nil {
		panic(err)
	}
	return h
}

// WithComment appends lines as "#"-prefixed provenance comments, written
// immediately after the magic line on Write. Read populates Comments the
// same way from any "#" lines it encounters.
func WithComment(lines ...string) options.Option[*Header] {
	return options.NoError(func(h *Header) {
		for _, line := range lines {
			h.Comments = append(h.Comments, "# "+line)
		}
	})
}

// Get returns the value stored under name (alias-resolved for standard
// fields), and whether it was present.
func (h *Header) Get(name string) (field.Value, bool) {
	i, ok := h.lookup(name)
	if !ok {
		return field.Value{}, false
	}
	return h.fields[i].Value, true
}

// Set stores v under name as a standard field, overwriting any existing
// value. Name is stored canonicalized.
func (h *Header) Set(name string, v field.Value) {
	canon := field.Canonical(name)
	if i, ok := h.index[canon]; ok {
		h.fields[i].Value = v
		return
	}
	h.index[canon] = len(h.fields)
	h.fields = append(h.fields, Field{Name: canon, Value: v})
}

// SetCustom stores v under name as a custom field (written with ":="),
// preserving name's original casing and insertion order.
func (h *Header) SetCustom(name string, v field.Value) {
	if i, ok := h.index[name]; ok {
		h.fields[i].Value = v
		return
	}
	h.index[name] = len(h.fields)
	h.fields = append(h.fields, Field{Name: name, Value: v, Custom: true})
}

// Fields returns every field in insertion order.
func (h *Header) Fields() []Field {
	return h.fields
}

// Delete removes the standard field stored under name (alias-resolved),
// if present. The orchestrator uses this to drop a caller-supplied
// "endian" field when writing a single-byte scalar, whose endian is
// always omitted.
func (h *Header) Delete(name string) {
	canon := field.Canonical(name)
	i, ok := h.index[canon]
	if !ok {
		return
	}

	h.fields = append(h.fields[:i], h.fields[i+1:]...)
	delete(h.index, canon)
	for k, idx := range h.index {
		if idx > i {
			h.index[k] = idx - 1
		}
	}
}

// HasCustom reports whether a custom field named exactly name (no alias
// canonicalization) is already present.
func (h *Header) HasCustom(name string) bool {
	_, ok := h.index[name]
	return ok
}

func (h *Header) lookup(name string) (int, bool) {
	i, ok := h.index[field.Canonical(name)]
	return i, ok
}

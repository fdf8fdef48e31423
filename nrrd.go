// Package nrrd reads and writes files in the NRRD (Nearly Raw Raster
// Data) format: a self-describing container pairing an ASCII header with
// an N-dimensional numeric payload, attached or detached.
//
// Read and Write are the two entry points most callers need; ReadHeader
// and ReadData split Read into its two halves for callers that want to
// inspect a header before deciding whether (or how) to decode its
// payload.
//
//	arr, h, err := nrrd.Read("volume.nrrd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(arr.Shape(), h.Fields())
//
//	err = nrrd.Write("volume.nhdr", arr, h, nrrd.WithEncoding(format.Gzip))
package nrrd

import (
	"go.uber.org/zap"

	"github.com/nrrdio/nrrd/field"
	"github.com/nrrdio/nrrd/format"
	"github.com/nrrdio/nrrd/geometry"
	"github.com/nrrdio/nrrd/header"
	"github.com/nrrdio/nrrd/internal/options"
)

// Config holds the two process-level toggles described in §4.6: whether
// a repeated header field is a fatal error or a logged warning, and
// which of the two legal shapes "space directions"/"measurement frame"
// parse to. Build one with NewConfig, or leave the zero value, which
// matches DefaultConfig's behavior (duplicate fields fatal, matrix
// shape).
type Config struct {
	AllowDuplicateField  bool
	SpaceDirectionsShape field.SpaceDirectionsShape
	Logger               *zap.Logger
}

// DefaultConfig is read by every call that doesn't override it via
// WithConfig. It mirrors the source's "a convenience global may mirror
// the toggles" design note: callers may reassign it wholesale before any
// concurrent use starts, but the library itself never mutates it.
var DefaultConfig = Config{SpaceDirectionsShape: field.ShapeMatrix}

// ConfigOption configures a Config via NewConfig.
type ConfigOption = options.Option[*Config]

// NewConfig builds a Config from functional options, starting from the
// zero value (not DefaultConfig — compose explicitly with DefaultConfig
// if that's what's wanted).
func NewConfig(opts ...ConfigOption) Config {
	c := &Config{}
	// None of today's ConfigOptions can fail; options.Apply's error would
	// only ever surface a bug in a caller-defined option.
	if err := options.Apply(c, opts...); err != nil {
		panic(err)
	}
	return *c
}

// WithAllowDuplicateField downgrades a repeated header field from a
// fatal errs.KindDuplicateField to a warning logged through Config's
// Logger, keeping the first occurrence.
func WithAllowDuplicateField() ConfigOption {
	return options.NoError(func(c *Config) { c.AllowDuplicateField = true })
}

// WithSpaceDirectionsAsVectorList selects the vector-list representation
// for "space directions"/"measurement frame" instead of the default
// matrix representation.
func WithSpaceDirectionsAsVectorList() ConfigOption {
	return options.NoError(func(c *Config) { c.SpaceDirectionsShape = field.ShapeVectorList })
}

// WithConfigLogger sets the *zap.Logger the duplicate-field warning is
// issued through. Defaults to zap.NewNop().
func WithConfigLogger(l *zap.Logger) ConfigOption {
	return options.NoError(func(c *Config) { c.Logger = l })
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c Config) headerConfig(customFieldMap map[string]field.Kind) *header.Config {
	return &header.Config{
		AllowDuplicateField:  c.AllowDuplicateField,
		SpaceDirectionsShape: c.SpaceDirectionsShape,
		CustomFieldMap:       customFieldMap,
		Logger:               c.logger(),
	}
}

// settings is the resolved per-call state every Option mutates.
type settings struct {
	cfg              Config
	indexOrder       geometry.IndexOrder
	customFieldMap   map[string]field.Kind
	detachedHeader   bool
	encoding         *format.Encoding
	compressionLevel int
}

// Option configures a single Read/Write/ReadHeader/ReadData call.
type Option = options.Option[*settings]

func resolve(opts ...Option) (*settings, error) {
	s := &settings{cfg: DefaultConfig, indexOrder: geometry.Fastest}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// WithConfig overrides DefaultConfig for a single call.
func WithConfig(c Config) Option {
	return options.NoError(func(s *settings) { s.cfg = c })
}

// WithIndexOrder selects whether Read produces a buffer shaped
// fastest-first (geometry.Fastest) or slowest-first (geometry.Slowest).
// Write instead consults the buffer's own IndexOrder, falling back to
// this option only for a Buffer implementation that reports none.
func WithIndexOrder(o geometry.IndexOrder) Option {
	return options.NoError(func(s *settings) { s.indexOrder = o })
}

// WithCustomFieldMap supplies the Kind for header field names outside
// the standard registry.
func WithCustomFieldMap(m map[string]field.Kind) Option {
	return options.NoError(func(s *settings) { s.customFieldMap = m })
}

// WithDetachedHeader requests a detached header+payload pair on Write.
// Unnecessary (but harmless) when the destination path already ends in
// ".nhdr", which implies it.
func WithDetachedHeader() Option {
	return options.NoError(func(s *settings) { s.detachedHeader = true })
}

// WithEncoding overrides the payload encoding Write chooses: the header's
// pre-existing "encoding" field if set, else gzip.
func WithEncoding(e format.Encoding) Option {
	return options.NoError(func(s *settings) { s.encoding = &e })
}

// WithCompressionLevel threads a compression level down to the gzip or
// bzip2 codec on Write. Ignored for other encodings.
func WithCompressionLevel(level int) Option {
	return options.NoError(func(s *settings) { s.compressionLevel = level })
}

// WithLogger overrides this call's Config.Logger without having to build
// a whole Config via WithConfig. The duplicate-field warning (see
// WithAllowDuplicateField) is the only thing it logs.
func WithLogger(l *zap.Logger) Option {
	return options.NoError(func(s *settings) { s.cfg.Logger = l })
}

package header

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nrrdio/nrrd/errs"
	"github.com/nrrdio/nrrd/field"
)

// magicPrefix is the fixed four-character tag every NRRD header starts
// with; it is followed by a one-to-four-digit decimal version.
const magicPrefix = "NRRD"

// Read parses a header from br, consuming bytes up to and including the
// blank-line terminator and leaving br positioned at the first payload
// byte. br is never closed; the caller owns its lifetime and passes the
// same *bufio.Reader on to the payload codec for an attached payload —
// wrapping br again in a second bufio.Reader here would buffer ahead
// past the terminator and lose payload bytes the caller never sees.
func Read(br *bufio.Reader, cfg *Config) (*Header, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	line, err := readLine(br)
	if err != nil {
		return nil, errs.Wrap(errs.KindIOError, err, "reading magic line")
	}

	version, err := parseMagic(line)
	if err != nil {
		return nil, err
	}

	h := New()
	h.Version = version
	registry := cfg.registry()

	for {
		line, err = readLine(br)
		if err == io.EOF {
			return nil, errs.Wrap(errs.KindMalformedHeader, errs.ErrUnterminatedHeader, "reading header line")
		}
		if err != nil {
			return nil, errs.Wrap(errs.KindIOError, err, "reading header line")
		}

		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			return h, nil
		}

		if strings.HasPrefix(trimmed, "#") {
			h.Comments = append(h.Comments, trimmed)
			continue
		}

		if err := parseFieldLine(h, registry, cfg, trimmed); err != nil {
			return nil, err
		}
	}
}

// readLine reads one line including its terminator. It returns io.EOF
// whenever the stream ends before a newline, even if some bytes of a
// final unterminated line were read.
func readLine(br *bufio.Reader) (string, error) {
	return br.ReadString('\n')
}

func parseMagic(line string) (int, error) {
	trimmed := strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(trimmed, magicPrefix) {
		return 0, errs.Wrap(errs.KindMalformedHeader, errs.ErrMissingMagic, "line %q", trimmed)
	}

	versionText := trimmed[len(magicPrefix):]
	if versionText == "" {
		return 0, errs.Wrap(errs.KindMalformedHeader, errs.ErrMissingMagic, "missing version in %q", trimmed)
	}

	version, err := strconv.Atoi(versionText)
	if err != nil || version < 1 {
		return 0, errs.New(errs.KindMalformedHeader, "invalid magic version %q", versionText)
	}
	if version > 5 {
		return 0, errs.Wrap(errs.KindMalformedHeader, errs.ErrVersionTooNew, "version %d", version)
	}

	return version, nil
}

// parseFieldLine handles one standard (": ") or custom (":=") field line,
// applying the registry, the custom-field map, and the duplicate-field
// policy.
func parseFieldLine(h *Header, registry *field.Registry, cfg *Config, line string) error {
	if idx := strings.Index(line, ":="); idx >= 0 {
		name := line[:idx]
		text := line[idx+2:]
		return setCustomField(h, cfg, name, text)
	}

	idx := strings.Index(line, ": ")
	if idx < 0 {
		return errs.New(errs.KindMalformedHeader, "line does not match field grammar: %q", line)
	}

	name := strings.ToLower(strings.TrimSpace(line[:idx]))
	text := line[idx+2:]

	if _, custom := cfg.CustomFieldMap[name]; custom {
		if _, standard := field.NewRegistry(cfg.SpaceDirectionsShape, nil).Lookup(name); !standard {
			return setCustomField(h, cfg, name, text)
		}
	}

	kind, ok := registry.Lookup(name)
	if !ok {
		return errs.Wrap(errs.KindUnknownField, errs.ErrUnknownField, "%q", name)
	}

	return setStandardField(h, cfg, name, kind, text)
}

func setStandardField(h *Header, cfg *Config, name string, kind field.Kind, text string) error {
	canon := field.Canonical(name)
	if _, exists := h.Get(canon); exists {
		if !cfg.AllowDuplicateField {
			return errs.Wrap(errs.KindDuplicateField, errs.ErrDuplicateField, "%q", canon)
		}
		cfg.logger().Warn("duplicate header field, keeping first occurrence",
			zap.String("field", canon))
		return nil
	}

	v, err := field.Parse(kind, text)
	if err != nil {
		return errs.Wrap(errs.KindTypeMismatch, err, "field %q", canon)
	}

	h.Set(canon, v)
	return nil
}

func setCustomField(h *Header, cfg *Config, name, text string) error {
	name = strings.TrimSpace(name)
	if h.HasCustom(name) {
		return errs.Wrap(errs.KindDuplicateField, errs.ErrDuplicateField, "custom field %q", name)
	}

	kind := field.String
	if cfg.CustomFieldMap != nil {
		if k, ok := cfg.CustomFieldMap[name]; ok {
			kind = k
		}
	}

	v, err := field.Parse(kind, text)
	if err != nil {
		return errs.Wrap(errs.KindTypeMismatch, err, "custom field %q", name)
	}

	h.SetCustom(name, v)
	return nil
}

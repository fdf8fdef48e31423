package header

import (
	"fmt"
	"io"

	"github.com/nrrdio/nrrd/field"
)

// fieldOrder pins the canonical order standard fields are written in,
// matching the order real NRRD writers use so files stay diffable.
var fieldOrder = []string{
	"type",
	"dimension",
	"space dimension",
	"space",
	"sizes",
	"space directions",
	"kinds",
	"endian",
	"encoding",
	"min",
	"max",
	"old min",
	"old max",
	"content",
	"sample units",
	"spacings",
	"thicknesses",
	"axis mins",
	"axis maxs",
	"centerings",
	"labels",
	"units",
	"space units",
	"space origin",
	"measurement frame",
	"data file",
}

// Write serializes h to w: the magic line, any Comments, standard fields
// in canonical order, custom fields in insertion order, and the blank
// terminator line. Lines end in "\n".
func Write(w io.Writer, h *Header, cfg *Config) error {
	version := h.Version
	if version == 0 {
		version = DefaultVersion
	}
	if cfg != nil && cfg.Version != 0 {
		version = cfg.Version
	}

	if _, err := fmt.Fprintf(w, "%s%04d\n", magicPrefix, version); err != nil {
		return err
	}

	for _, c := range h.Comments {
		if _, err := fmt.Fprintf(w, "%s\n", c); err != nil {
			return err
		}
	}

	for _, name := range fieldOrder {
		v, ok := h.Get(name)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, field.Format(v)); err != nil {
			return err
		}
	}

	for _, f := range h.Fields() {
		if !f.Custom {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s:=%s\n", f.Name, field.Format(f.Value)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "\n")
	return err
}

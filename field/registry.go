package field

import "strings"

// SpaceDirectionsShape selects which of the two legal shapes the registry
// resolves "space directions" and "measurement frame" to; both are legal
// NRRD representations and real files use either.
type SpaceDirectionsShape uint8

const (
	ShapeMatrix SpaceDirectionsShape = iota + 1
	ShapeVectorList
)

// canonicalAliases maps every recognized alias spelling to its canonical
// field name. Names not present here are already canonical (or unknown).
var canonicalAliases = map[string]string{
	"datafile":  "data file",
	"lineskip":  "line skip",
	"byteskip":  "byte skip",
	"oldmin":    "old min",
	"oldmax":    "old max",
	"axismins":  "axis mins",
	"axismaxs":  "axis maxs",
}

// Canonical resolves name (already lowercased by the header tokenizer) to
// its canonical registry name.
func Canonical(name string) string {
	if canon, ok := canonicalAliases[name]; ok {
		return canon
	}
	return name
}

// baseKinds holds every standard field whose shape does not depend on a
// runtime switch.
var baseKinds = map[string]Kind{
	"dimension":     Int,
	"line skip":     Int,
	"byte skip":     Int,
	"space dimension": Int,
	"block size":    Int,

	"old min": Double,
	"old max": Double,
	"min":     Double,
	"max":     Double,

	"endian":       String,
	"encoding":     String,
	"content":      String,
	"sample units": String,
	"data file":    String,
	"space":        String,
	"type":         String,

	"sizes": IntSeq,

	"spacings":  DoubleSeq,
	"thicknesses": DoubleSeq,
	"axis mins": DoubleSeq,
	"axis maxs": DoubleSeq,

	"kinds":        StringSeq,
	"labels":       StringSeq,
	"units":        StringSeq,
	"space units":  StringSeq,
	"centerings":   StringSeq,

	"space origin": DoubleVector,
}

// Registry resolves a standard field name to its Kind, honoring the
// space-directions shape switch and any caller-supplied custom fields.
type Registry struct {
	spaceDirectionsShape SpaceDirectionsShape
	custom                map[string]Kind
}

// NewRegistry builds a Registry. shape controls whether "space directions"
// and "measurement frame" resolve to a DoubleMatrix or a
// DoubleVectorList; custom supplies the Kind for any field name outside
// the standard set (nil is fine — an empty registry).
func NewRegistry(shape SpaceDirectionsShape, custom map[string]Kind) *Registry {
	return &Registry{spaceDirectionsShape: shape, custom: custom}
}

// Lookup resolves name to its Kind. ok is false if name is neither a
// standard field nor present in the custom-field map; the header codec
// surfaces that as errs.KindUnknownField.
func (r *Registry) Lookup(name string) (kind Kind, ok bool) {
	name = Canonical(strings.ToLower(strings.TrimSpace(name)))

	switch name {
	case "space directions", "measurement frame":
		if r.spaceDirectionsShape == ShapeVectorList {
			return DoubleVectorList, true
		}
		return DoubleMatrix, true
	}

	if kind, ok = baseKinds[name]; ok {
		return kind, true
	}

	if r.custom != nil {
		if kind, ok = r.custom[name]; ok {
			return kind, true
		}
	}

	return 0, false
}

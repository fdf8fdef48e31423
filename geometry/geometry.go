// Package geometry translates between the header's fixed fastest-varying-
// first axis order and the caller's preferred buffer index order.
//
// Header `sizes` are always fastest-first. A caller may instead want to
// work with a shape in slowest-first (row-major, numpy "C" order)
// convention; this package computes the reversal in both directions and
// validates that a write-time buffer shape agrees with the index order
// the caller declared for it.
package geometry

import (
	"github.com/nrrdio/nrrd/errs"
)

// IndexOrder selects how a caller's buffer shape relates to the header's
// fastest-first axis order.
type IndexOrder uint8

const (
	// Fastest ("F") means the buffer shape is listed in the same order as
	// header sizes: axis 0 is fastest-varying.
	Fastest IndexOrder = iota + 1
	// Slowest ("C") means the buffer shape is listed with axis 0
	// slowest-varying, the reverse of header sizes order.
	Slowest
)

func (o IndexOrder) String() string {
	switch o {
	case Fastest:
		return "F"
	case Slowest:
		return "C"
	default:
		return "Unknown"
	}
}

// ParseIndexOrder resolves either spelling a caller might use.
func ParseIndexOrder(s string) (IndexOrder, bool) {
	switch s {
	case "F", "fastest-first":
		return Fastest, true
	case "C", "slowest-first":
		return Slowest, true
	default:
		return 0, false
	}
}

// ToBufferShape converts header sizes (always fastest-first) into the
// shape a caller requesting order should see. Fastest is the identity;
// Slowest reverses axis order.
func ToBufferShape(sizes []int64, order IndexOrder) []int64 {
	return reorder(sizes, order)
}

// ToHeaderSizes is ToBufferShape's inverse: it converts a caller's buffer
// shape (in its declared order) back into the fastest-first order the
// header's `sizes` field always uses. The reversal is its own inverse, so
// this is the same operation as ToBufferShape.
func ToHeaderSizes(shape []int64, order IndexOrder) []int64 {
	return reorder(shape, order)
}

func reorder(axes []int64, order IndexOrder) []int64 {
	if order == Fastest {
		out := make([]int64, len(axes))
		copy(out, axes)
		return out
	}

	out := make([]int64, len(axes))
	for i, v := range axes {
		out[len(axes)-1-i] = v
	}
	return out
}

// Validate checks that shape, read under order, agrees with the header's
// already-declared sizes (fastest-first). It returns
// errs.ErrIndexOrderMismatch wrapped as errs.KindInvariantViolation if
// they disagree in length or in any dimension. Pass a nil or empty sizes
// to skip the check (the common case, where the orchestrator synthesizes
// sizes from shape rather than validating against a pre-set one).
func Validate(shape []int64, sizes []int64, order IndexOrder) error {
	if len(sizes) == 0 {
		return nil
	}

	got := ToHeaderSizes(shape, order)
	if len(got) != len(sizes) {
		return errs.Wrap(errs.KindInvariantViolation, errs.ErrIndexOrderMismatch,
			"shape has %d axes, sizes declares %d", len(got), len(sizes))
	}

	for i := range got {
		if got[i] != sizes[i] {
			return errs.Wrap(errs.KindInvariantViolation, errs.ErrIndexOrderMismatch,
				"axis %d: shape implies size %d, header declares %d", i, got[i], sizes[i])
		}
	}

	return nil
}

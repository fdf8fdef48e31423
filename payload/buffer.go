// Package payload implements the NRRD Payload Codec: the encoding layer
// (raw, ascii, hex, gzip, bzip2) over an attached, single-sibling, or
// multi-sibling byte source, and the Buffer contract an N-dimensional
// array exposes to it.
//
// A Buffer's Bytes are always host-native byte order, regardless of the
// on-disk endianness a file declares or a write requests — endian swap
// happens exactly once, while the bytes cross the disk/memory boundary.
package payload

import (
	"github.com/nrrdio/nrrd/format"
	"github.com/nrrdio/nrrd/geometry"
)

// Buffer is the contract an N-dimensional array satisfies on both sides
// of a call: the library's own Array on read, and either Array or a
// caller's own tensor type on write.
type Buffer interface {
	// Scalar identifies the element type.
	Scalar() format.Scalar

	// Shape returns the buffer's axis lengths in the order implied by
	// IndexOrder — not necessarily the header's fastest-first order.
	Shape() []int64

	// IndexOrder reports whether Shape is listed fastest-first or
	// slowest-first.
	IndexOrder() geometry.IndexOrder

	// Bytes returns the buffer's full contents, contiguous in
	// fastest-first memory order regardless of IndexOrder (IndexOrder
	// only affects how Shape is labeled, not how bytes are laid out —
	// see geometry.Validate). Host-native byte order.
	Bytes() []byte
}

// Array is the library's own Buffer implementation: a flat byte slice
// plus the scalar type, shape, and index order needed to interpret it.
// Read always allocates one; a caller with its own tensor type can
// satisfy Buffer directly instead of copying through Array.
type Array struct {
	scalar format.Scalar
	order  geometry.IndexOrder
	shape  []int64
	data   []byte
}

var _ Buffer = (*Array)(nil)

// NewArray allocates an Array sized for scalar x shape, zeroed.
func NewArray(scalar format.Scalar, shape []int64, order geometry.IndexOrder) *Array {
	n := ElementCount(shape)
	return &Array{
		scalar: scalar,
		order:  order,
		shape:  append([]int64(nil), shape...),
		data:   make([]byte, n*int64(scalar.Size())),
	}
}

// NewArrayFromBytes wraps an already-decoded byte slice, avoiding a copy.
// data's length must equal ElementCount(shape) * scalar.Size().
func NewArrayFromBytes(scalar format.Scalar, shape []int64, order geometry.IndexOrder, data []byte) *Array {
	return &Array{scalar: scalar, order: order, shape: append([]int64(nil), shape...), data: data}
}

func (a *Array) Scalar() format.Scalar          { return a.scalar }
func (a *Array) Shape() []int64                 { return a.shape }
func (a *Array) IndexOrder() geometry.IndexOrder { return a.order }
func (a *Array) Bytes() []byte                  { return a.data }

// ElementCount returns the product of shape, the total element count of
// an array with that shape (independent of index order — the product is
// the same either way).
func ElementCount(shape []int64) int64 {
	n := int64(1)
	for _, s := range shape {
		n *= s
	}
	return n
}

package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessageWithoutCause(t *testing.T) {
	err := New(KindMalformedHeader, "missing magic line")
	require.Equal(t, "nrrd: MalformedHeader: missing magic line", err.Error())
}

func TestErrorMessageWithCause(t *testing.T) {
	err := Wrap(KindIOError, ErrMissingMagic, "reading header")
	require.ErrorContains(t, err, "IOError")
	require.ErrorContains(t, err, "reading header")
	require.ErrorIs(t, err, ErrMissingMagic)
}

func TestKindOf(t *testing.T) {
	err := New(KindInvariantViolation, "dimension mismatch")
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindInvariantViolation, kind)

	_, ok = KindOf(errors.New("plain error"))
	require.False(t, ok)
}

func TestErrorIsMatchesByKind(t *testing.T) {
	a := New(KindTypeMismatch, "bad integer")
	b := New(KindTypeMismatch, "unclosed vector")
	c := New(KindEncodingError, "short read")

	require.ErrorIs(t, a, b)
	require.False(t, errors.Is(a, c))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "UnsupportedType", KindUnsupportedType.String())
	require.Equal(t, "Unknown", Kind(255).String())
}

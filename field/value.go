// Package field implements the NRRD Field-Type Registry: the closed set of
// value shapes a header field may take, together with their parse and
// format rules and the field-name-to-shape lookup table.
//
// Every header value is represented as a Value, a discriminated union
// keyed by Kind. Construct one via Parse (token text from
// the header codec) or the New* constructors (programmatic construction
// when writing), and read it back out with the typed accessor matching its
// Kind.
package field

import "fmt"

// Kind discriminates the shape of a Value. It mirrors the closed set of
// FieldValue variants: scalars, sequences, fixed-width vectors, rectangular
// matrices (with per-row nullability), and vector-lists (with explicit
// null entries).
type Kind uint8

const (
	Int Kind = iota + 1
	Double
	String
	IntSeq
	DoubleSeq
	StringSeq
	QuotedStringSeq
	IntVector
	DoubleVector
	IntMatrix
	DoubleMatrix
	IntVectorList
	DoubleVectorList
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "Int"
	case Double:
		return "Double"
	case String:
		return "String"
	case IntSeq:
		return "IntSeq"
	case DoubleSeq:
		return "DoubleSeq"
	case StringSeq:
		return "StringSeq"
	case QuotedStringSeq:
		return "QuotedStringSeq"
	case IntVector:
		return "IntVector"
	case DoubleVector:
		return "DoubleVector"
	case IntMatrix:
		return "IntMatrix"
	case DoubleMatrix:
		return "DoubleMatrix"
	case IntVectorList:
		return "IntVectorList"
	case DoubleVectorList:
		return "DoubleVectorList"
	default:
		return "Unknown"
	}
}

// Value is a tagged union over every shape a header field value can take.
// Only the member matching Kind is populated; the zero value of every
// other member is meaningless.
//
// DoubleMatrix rows use NaN to represent a "none" row per the spec's
// matrix semantics. IntVectorList/DoubleVectorList instead keep an
// explicit Nulls mask alongside ListInt/ListDouble, since a vector-list null
// entry has no numeric stand-in.
type Value struct {
	Kind Kind

	IntVal    int64
	DoubleVal float64
	StrVal    string

	IntSeqVal    []int64
	DoubleSeqVal []float64
	StrSeqVal    []string

	VectorInt    []int64
	VectorDouble []float64

	MatrixInt    [][]int64
	MatrixDouble [][]float64

	// ListInt/ListDouble hold the non-null rows' values; Nulls records
	// which logical row positions (same length as the field's row count)
	// are null. len(ListInt)+count(Nulls==true) == number of rows.
	ListInt    [][]int64
	ListDouble [][]float64
	Nulls      []bool
}

func NewInt(v int64) Value    { return Value{Kind: Int, IntVal: v} }
func NewDouble(v float64) Value { return Value{Kind: Double, DoubleVal: v} }
func NewString(v string) Value  { return Value{Kind: String, StrVal: v} }
func NewIntSeq(v []int64) Value    { return Value{Kind: IntSeq, IntSeqVal: v} }
func NewDoubleSeq(v []float64) Value { return Value{Kind: DoubleSeq, DoubleSeqVal: v} }
func NewStringSeq(v []string) Value  { return Value{Kind: StringSeq, StrSeqVal: v} }
func NewQuotedStringSeq(v []string) Value { return Value{Kind: QuotedStringSeq, StrSeqVal: v} }
func NewIntVector(v []int64) Value    { return Value{Kind: IntVector, VectorInt: v} }
func NewDoubleVector(v []float64) Value { return Value{Kind: DoubleVector, VectorDouble: v} }
func NewIntMatrix(v [][]int64) Value    { return Value{Kind: IntMatrix, MatrixInt: v} }
func NewDoubleMatrix(v [][]float64) Value { return Value{Kind: DoubleMatrix, MatrixDouble: v} }

// Int returns the scalar int value, panicking if Kind != Int. Accessors
// panic rather than returning a (value, ok) pair because a caller that
// knows the field name already knows its registered Kind; a mismatch is a
// programmer error, not a recoverable condition.
func (v Value) Int() int64 {
	v.mustBe(Int)
	return v.IntVal
}

func (v Value) Double() float64 {
	v.mustBe(Double)
	return v.DoubleVal
}

func (v Value) Str() string {
	v.mustBe(String)
	return v.StrVal
}

func (v Value) IntSlice() []int64 {
	v.mustBe(IntSeq)
	return v.IntSeqVal
}

func (v Value) DoubleSlice() []float64 {
	v.mustBe(DoubleSeq)
	return v.DoubleSeqVal
}

func (v Value) StrSlice() []string {
	if v.Kind != StringSeq && v.Kind != QuotedStringSeq {
		panic(fmt.Sprintf("field: Value.StrSlice: Kind is %s, not StringSeq/QuotedStringSeq", v.Kind))
	}
	return v.StrSeqVal
}

func (v Value) IntVec() []int64 {
	v.mustBe(IntVector)
	return v.VectorInt
}

func (v Value) DoubleVec() []float64 {
	v.mustBe(DoubleVector)
	return v.VectorDouble
}

func (v Value) IntMat() [][]int64 {
	v.mustBe(IntMatrix)
	return v.MatrixInt
}

func (v Value) DoubleMat() [][]float64 {
	v.mustBe(DoubleMatrix)
	return v.MatrixDouble
}

func (v Value) mustBe(want Kind) {
	if v.Kind != want {
		panic(fmt.Sprintf("field: Value accessor for %s called on Kind %s", want, v.Kind))
	}
}

package field

import (
	"math"
	"strconv"
	"strings"
)

// Format renders v back to the text a writer emits for its field.
func Format(v Value) string {
	switch v.Kind {
	case Int:
		return formatNumberInt(v.IntVal)
	case Double:
		return formatNumberDouble(v.DoubleVal)
	case String:
		return v.StrVal
	case IntSeq:
		return formatIntTokens(v.IntSeqVal)
	case DoubleSeq:
		return formatDoubleTokens(v.DoubleSeqVal)
	case StringSeq:
		return strings.Join(v.StrSeqVal, " ")
	case QuotedStringSeq:
		return formatQuotedTokens(v.StrSeqVal)
	case IntVector:
		return formatVectorInt(v.VectorInt)
	case DoubleVector:
		return formatVectorDouble(v.VectorDouble)
	case IntMatrix:
		return formatMatrixInt(v.MatrixInt)
	case DoubleMatrix:
		return formatMatrixDouble(v.MatrixDouble)
	case IntVectorList:
		return formatVectorListInt(v.ListInt, v.Nulls)
	case DoubleVectorList:
		return formatVectorListDouble(v.ListDouble, v.Nulls)
	default:
		return ""
	}
}

// formatNumberDouble mirrors the original implementation's choice of
// %.17g: the minimum precision that always round-trips a float64, with
// trailing zeros collapsed by Go's 'g' verb the same way Python's does.
func formatNumberDouble(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', 17, 64)
}

func formatNumberInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

func formatIntTokens(v []int64) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = formatNumberInt(n)
	}
	return strings.Join(parts, " ")
}

func formatDoubleTokens(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = formatNumberDouble(f)
	}
	return strings.Join(parts, " ")
}

func formatQuotedTokens(v []string) string {
	parts := make([]string, len(v))
	for i, s := range v {
		parts[i] = `"` + s + `"`
	}
	return strings.Join(parts, " ")
}

func formatVectorInt(v []int64) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = formatNumberInt(n)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func formatVectorDouble(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = formatNumberDouble(f)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func formatMatrixInt(m [][]int64) string {
	rows := make([]string, len(m))
	for i, row := range m {
		rows[i] = formatVectorInt(row)
	}
	return strings.Join(rows, " ")
}

// formatMatrixDouble writes "none" for any row whose entries are all NaN.
func formatMatrixDouble(m [][]float64) string {
	rows := make([]string, len(m))
	for i, row := range m {
		if allNaN(row) {
			rows[i] = "none"
			continue
		}
		rows[i] = formatVectorDouble(row)
	}
	return strings.Join(rows, " ")
}

func formatVectorListInt(rows [][]int64, nulls []bool) string {
	var tokens []string
	ri := 0
	for _, isNull := range nulls {
		if isNull {
			tokens = append(tokens, "none")
			continue
		}
		tokens = append(tokens, formatVectorInt(rows[ri]))
		ri++
	}
	return strings.Join(tokens, " ")
}

func formatVectorListDouble(rows [][]float64, nulls []bool) string {
	var tokens []string
	ri := 0
	for _, isNull := range nulls {
		if isNull {
			tokens = append(tokens, "none")
			continue
		}
		tokens = append(tokens, formatVectorDouble(rows[ri]))
		ri++
	}
	return strings.Join(tokens, " ")
}

func allNaN(row []float64) bool {
	if len(row) == 0 {
		return false
	}
	for _, f := range row {
		if !math.IsNaN(f) {
			return false
		}
	}
	return true
}

package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse decodes text (the already-trimmed value portion of a header line)
// according to kind, returning a Value of that Kind or a descriptive error
// for the header codec to wrap as errs.KindTypeMismatch.
func Parse(kind Kind, text string) (Value, error) {
	switch kind {
	case Int:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("not an integer: %q", text)
		}
		return NewInt(n), nil

	case Double:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Value{}, fmt.Errorf("not a double: %q", text)
		}
		return NewDouble(f), nil

	case String:
		return NewString(strings.TrimSpace(text)), nil

	case IntSeq:
		ints, err := parseIntTokens(strings.Fields(text))
		if err != nil {
			return Value{}, err
		}
		return NewIntSeq(ints), nil

	case DoubleSeq:
		doubles, err := parseDoubleTokens(strings.Fields(text))
		if err != nil {
			return Value{}, err
		}
		return NewDoubleSeq(doubles), nil

	case StringSeq:
		return NewStringSeq(strings.Fields(text)), nil

	case QuotedStringSeq:
		toks, err := parseQuotedTokens(text)
		if err != nil {
			return Value{}, err
		}
		return NewQuotedStringSeq(toks), nil

	case IntVector:
		v, err := parseVectorInt(text)
		if err != nil {
			return Value{}, err
		}
		return NewIntVector(v), nil

	case DoubleVector:
		v, err := parseVectorDouble(text)
		if err != nil {
			return Value{}, err
		}
		return NewDoubleVector(v), nil

	case IntMatrix:
		m, err := parseMatrixInt(text)
		if err != nil {
			return Value{}, err
		}
		return NewIntMatrix(m), nil

	case DoubleMatrix:
		m, err := parseMatrixDouble(text)
		if err != nil {
			return Value{}, err
		}
		return NewDoubleMatrix(m), nil

	case IntVectorList:
		rows, nulls, err := parseVectorListInt(text)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: IntVectorList, ListInt: rows, Nulls: nulls}, nil

	case DoubleVectorList:
		rows, nulls, err := parseVectorListDouble(text)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: DoubleVectorList, ListDouble: rows, Nulls: nulls}, nil

	default:
		return Value{}, fmt.Errorf("field: Parse: unknown Kind %v", kind)
	}
}

func parseIntTokens(tokens []string) ([]int64, error) {
	out := make([]int64, len(tokens))
	for i, tok := range tokens {
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", tok)
		}
		out[i] = n
	}
	return out, nil
}

func parseDoubleTokens(tokens []string) ([]float64, error) {
	out := make([]float64, len(tokens))
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("not a double: %q", tok)
		}
		out[i] = f
	}
	return out, nil
}

// parseQuotedTokens splits text into double-quoted, whitespace-separated
// tokens. Quotes are mandatory on every token.
func parseQuotedTokens(text string) ([]string, error) {
	var out []string
	i, n := 0, len(text)
	for i < n {
		for i < n && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}
		if text[i] != '"' {
			return nil, fmt.Errorf("expected quoted token at %q", text[i:])
		}
		j := i + 1
		for j < n && text[j] != '"' {
			j++
		}
		if j >= n {
			return nil, fmt.Errorf("unterminated quoted token starting at %q", text[i:])
		}
		out = append(out, text[i+1:j])
		i = j + 1
	}
	return out, nil
}

// parseVectorInt/Double parse "(v,v,...,v)", tolerating spaces after commas.
func parseVectorInt(text string) ([]int64, error) {
	inner, err := vectorInner(text)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(inner, ",")
	out := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer vector component: %q", p)
		}
		out[i] = n
	}
	return out, nil
}

func parseVectorDouble(text string) ([]float64, error) {
	inner, err := vectorInner(text)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(inner, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("not a double vector component: %q", p)
		}
		out[i] = f
	}
	return out, nil
}

func vectorInner(text string) (string, error) {
	text = strings.TrimSpace(text)
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return "", fmt.Errorf("vector must be enclosed in parentheses: %q", text)
	}
	return text[1 : len(text)-1], nil
}

func parseMatrixInt(text string) ([][]int64, error) {
	rows := strings.Fields(text)
	out := make([][]int64, len(rows))
	width := -1
	for i, row := range rows {
		v, err := parseVectorInt(row)
		if err != nil {
			return nil, err
		}
		if width == -1 {
			width = len(v)
		} else if len(v) != width {
			return nil, fmt.Errorf("matrix row width mismatch: want %d, got %d", width, len(v))
		}
		out[i] = v
	}
	return out, nil
}

// parseMatrixDouble allows a bare "none" row, decoded to a row of NaNs the
// same width as its sibling rows.
func parseMatrixDouble(text string) ([][]float64, error) {
	rows := strings.Fields(text)
	out := make([][]float64, len(rows))
	noneIdx := make([]int, 0)
	width := -1
	for i, row := range rows {
		if row == "none" {
			noneIdx = append(noneIdx, i)
			continue
		}
		v, err := parseVectorDouble(row)
		if err != nil {
			return nil, err
		}
		if width == -1 {
			width = len(v)
		} else if len(v) != width {
			return nil, fmt.Errorf("matrix row width mismatch: want %d, got %d", width, len(v))
		}
		out[i] = v
	}
	if width == -1 {
		return nil, fmt.Errorf("matrix has no non-none rows to determine width")
	}
	for _, i := range noneIdx {
		nanRow := make([]float64, width)
		for j := range nanRow {
			nanRow[j] = math.NaN()
		}
		out[i] = nanRow
	}
	return out, nil
}

func parseVectorListInt(text string) (rows [][]int64, nulls []bool, err error) {
	tokens := strings.Fields(text)
	nulls = make([]bool, len(tokens))
	for i, tok := range tokens {
		if tok == "none" {
			nulls[i] = true
			continue
		}
		v, err := parseVectorInt(tok)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, v)
	}
	return rows, nulls, nil
}

func parseVectorListDouble(text string) (rows [][]float64, nulls []bool, err error) {
	tokens := strings.Fields(text)
	nulls = make([]bool, len(tokens))
	for i, tok := range tokens {
		if tok == "none" {
			nulls[i] = true
			continue
		}
		v, err := parseVectorDouble(tok)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, v)
	}
	return rows, nulls, nil
}

package transcode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies how a Value is encoded.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// Value is one normalized cell.
type Value struct {
	kind Kind
	num  float64
	text string
}

// String returns a string-kind Value holding s verbatim.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Int returns an integer-kind Value.
func Int(n int64) Value { return Value{kind: KindInt, num: float64(n)} }

// Float returns a float-kind Value rounded to two decimals.
func Float(f float64) Value { return Value{kind: KindFloat, num: round2(f)} }

// ParseValue normalizes a raw cell. Integral numbers become integers,
// other finite numbers are rounded to two decimals, and everything else is
// kept as the original text.
func ParseValue(text string) Value {
	f, ok := parseNumber(text)
	if !ok {
		return String(text)
	}
	if math.Trunc(f) == f {
		if f == 0 {
			f = 0 // drop the sign of -0
		}
		return Value{kind: KindInt, num: f}
	}
	return Float(f)
}

// parseNumber reports whether text is a finite decimal number. NaN and
// infinities parse but have no integer or JSON form, so they are treated as
// text. Hexadecimal floats are text too.
func parseNumber(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" || isHexLiteral(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// round2 rounds to two decimals using the correctly rounded decimal form of
// the binary value, ties to even.
func round2(f float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	if err != nil {
		return f
	}
	if r == 0 {
		return 0
	}
	return r
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// Text returns the string content of a string-kind value.
func (v Value) Text() string { return v.text }

// Float64 returns the numeric content of an int or float value.
func (v Value) Float64() float64 { return v.num }

// Int64 returns the integer content, saturating outside the int64 range.
func (v Value) Int64() int64 {
	switch {
	case v.num >= math.MaxInt64:
		return math.MaxInt64
	case v.num <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v.num)
}

// String renders v the way it appears in the output document, minus quoting.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatFloat(v.num, 'f', 0, 64)
	case KindFloat:
		s := strconv.FormatFloat(v.num, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	default:
		return v.text
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindString {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v.text); err != nil {
			return nil, err
		}
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
	}
	return []byte(v.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler. Numbers written with a
// decimal point or exponent decode as floats, all others as integers.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return err
		}
		if strings.ContainsAny(x.String(), ".eE") {
			*v = Value{kind: KindFloat, num: f}
		} else {
			*v = Value{kind: KindInt, num: f}
		}
	case string:
		*v = String(x)
	default:
		return fmt.Errorf("unsupported cell value %s", data)
	}
	return nil
}

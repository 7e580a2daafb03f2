package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Boolean sentinel spellings. Booleans are indistinguishable from strings
// holding the same text once they flow through an operator.
const (
	TrueText  = "s7i7"
	FalseText = "ghalat"
)

// Value is the shared behaviour for all runtime values. Every coercion in the
// language goes through Text, the value's canonical textual form.
type Value interface {
	Kind() Kind
	Text() string
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind     { return KindString }
func (v StringValue) Text() string   { return v.Val }
func (v StringValue) String() string { return v.Val }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }
func (v BoolValue) Text() string {
	if v.Val {
		return TrueText
	}
	return FalseText
}
func (v BoolValue) String() string { return v.Text() }

// NumberValue carries the numeric value together with its textual form.
// Literals keep the spelling they were written with; computed numbers use
// FormatNumber.
type NumberValue struct {
	Val  float64
	Repr string
}

func (v NumberValue) Kind() Kind { return KindNumber }
func (v NumberValue) Text() string {
	if v.Repr == "" {
		return FormatNumber(v.Val)
	}
	return v.Repr
}
func (v NumberValue) String() string { return v.Text() }

// Number builds a computed number rendered with FormatNumber. Val holds the
// number the text spells, not the unrounded input.
func Number(val float64) NumberValue {
	repr := FormatNumber(val)
	if parsed, ok := ParseNumber(repr); ok {
		val = parsed
	}
	return NumberValue{Val: val, Repr: repr}
}

// NumberLiteral builds a number that keeps its source spelling.
func NumberLiteral(text string) (NumberValue, error) {
	val, ok := ParseNumber(text)
	if !ok {
		return NumberValue{}, fmt.Errorf("invalid number literal %q", text)
	}
	return NumberValue{Val: val, Repr: text}, nil
}

// Bool returns the boolean value for b.
func Bool(b bool) BoolValue {
	return BoolValue{Val: b}
}

// Zero is the value produced by a call that never returns explicitly.
var Zero = NumberValue{Val: 0, Repr: "0"}

//-----------------------------------------------------------------------------
// Coercions
//-----------------------------------------------------------------------------

// IsTruthy reports the truthiness of a value. Exactly ghalat, "0", "" and
// "0.0" are false; every other text, "0.00" included, is true.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	return TextIsTruthy(v.Text())
}

// TextIsTruthy applies the truthiness rule to raw text.
func TextIsTruthy(text string) bool {
	switch text {
	case FalseText, "0", "", "0.0":
		return false
	}
	return true
}

// ParseNumber parses text as a number. Leading whitespace is skipped; the rest
// of the text must be a complete decimal literal.
func ParseNumber(text string) (float64, bool) {
	trimmed := strings.TrimLeft(text, " \t\n\r\v\f")
	if trimmed == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// FormatNumber renders a computed number. Results with no fractional part
// collapse to an integer literal; anything else uses fixed six-decimal notation.
func FormatNumber(val float64) string {
	if isIntegral(val) {
		return strconv.FormatInt(int64(val), 10)
	}
	return strconv.FormatFloat(val, 'f', 6, 64)
}

// Integer builds the integer-formatted number stored by post-increment.
func Integer(val float64) NumberValue {
	return NumberValue{Val: math.Trunc(val), Repr: FormatInteger(val)}
}

// FormatInteger renders the integer part of val, as used by post-increment.
func FormatInteger(val float64) string {
	truncated := math.Trunc(val)
	if !isIntegral(truncated) {
		return strconv.FormatFloat(truncated, 'f', 0, 64)
	}
	return strconv.FormatInt(int64(truncated), 10)
}

func isIntegral(val float64) bool {
	return val == math.Trunc(val) && val >= math.MinInt64 && val < math.MaxInt64
}

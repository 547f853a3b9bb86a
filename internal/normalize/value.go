// Package normalize turns the loosely shaped values and records returned by
// the job-board API into canonical models.
package normalize

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

// Numeric encoding tags, checked in this order.
const (
	TagDecimal = "$numberDecimal"
	TagDouble  = "$numberDouble"
	TagInt     = "$numberInt"
)

var numericTags = []string{TagDecimal, TagDouble, TagInt}

// RawValue is the decoded shape of a number-like API value. It is one of
// Absent, Plain, Text, Tagged, Seq or Unknown.
type RawValue interface {
	rawValue()
}

// Absent is null or a missing field.
type Absent struct{}

// Plain is a bare JSON number.
type Plain struct{ Value float64 }

// Text is a bare JSON string.
type Text struct{ Value string }

// Tagged is an object carrying one of the numeric encoding tags with a string payload.
type Tagged struct {
	Tag   string
	Value string
}

// Seq is a JSON array.
type Seq struct{ Items []RawValue }

// Unknown is any other shape: booleans or objects without a recognised tag.
type Unknown struct{}

func (Absent) rawValue()  {}
func (Plain) rawValue()   {}
func (Text) rawValue()    {}
func (Tagged) rawValue()  {}
func (Seq) rawValue()     {}
func (Unknown) rawValue() {}

// Decode classifies a JSON value.
func Decode(r gjson.Result) RawValue {
	switch r.Type {
	case gjson.Null:
		return Absent{}
	case gjson.Number:
		return Plain{Value: r.Num}
	case gjson.String:
		return Text{Value: r.Str}
	case gjson.True, gjson.False:
		return Unknown{}
	}

	switch {
	case r.IsArray():
		elems := r.Array()
		items := make([]RawValue, 0, len(elems))
		for _, e := range elems {
			items = append(items, Decode(e))
		}
		return Seq{Items: items}
	case r.IsObject():
		fields := r.Map()
		for _, tag := range numericTags {
			if v, ok := fields[tag]; ok && v.Type == gjson.String {
				return Tagged{Tag: tag, Value: v.Str}
			}
		}
	}
	return Unknown{}
}

// Coerce converts a raw value to a normalized number. It never fails: tagged
// strings that do not parse come back unchanged as text, and sequences
// contribute only their first element.
func Coerce(v RawValue) models.Number {
	switch v := v.(type) {
	case Plain:
		return models.NumberOf(v.Value)
	case Text:
		return models.TextNumber(v.Value)
	case Tagged:
		if f, ok := parseNumber(v.Value); ok {
			return models.NumberOf(f)
		}
		return models.TextNumber(v.Value)
	case Seq:
		if len(v.Items) == 0 {
			return models.EmptyNumber()
		}
		return Coerce(v.Items[0])
	default:
		return models.EmptyNumber()
	}
}

// CoerceResult decodes and coerces in one step.
func CoerceResult(r gjson.Result) models.Number {
	return Coerce(Decode(r))
}

// CoerceJSON coerces a JSON document.
func CoerceJSON(doc string) models.Number {
	return CoerceResult(gjson.Parse(doc))
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseNumber follows the numeric string grammar the backend's JSON
// encoders emit: surrounding whitespace is ignored, an empty string is zero,
// infinities are spelled "Infinity" with at most one sign, unsigned 0x, 0o
// and 0b prefixes introduce integers, and everything else must be a plain
// decimal literal.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0, true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			return parseRadix(s[2:], 16)
		case 'o', 'O':
			return parseRadix(s[2:], 8)
		case 'b', 'B':
			return parseRadix(s[2:], 2)
		}
	}
	if !decimalLiteral.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// parseRadix reads unsigned integer digits in base. Values beyond int64
// lose precision rather than failing.
func parseRadix(digits string, base int) (float64, bool) {
	var f float64
	for _, r := range digits {
		d, err := strconv.ParseUint(string(r), base, 8)
		if err != nil {
			return 0, false
		}
		f = f*float64(base) + float64(d)
	}
	return f, true
}

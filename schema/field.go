package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/stremovskyy/go-aditum/document"
)

type kind int

const (
	kindString kind = iota
	kindNumber
	kindInteger
	kindBool
	kindMap
)

var kindNames = map[kind]string{
	kindString:  "a string",
	kindNumber:  "a number",
	kindInteger: "an integer",
	kindBool:    "a boolean",
	kindMap:     "an object",
}

// Transform rewrites a string value before it is checked.
type Transform func(string) string

// Field describes how one key of a raw record is read and normalized.
// Constraints live in the `validate` tag of the target struct field.
type Field struct {
	name       string
	kind       kind
	required   bool
	def        any
	hasDefault bool
	transforms []Transform
}

func newField(name string, k kind) *Field {
	return &Field{name: name, kind: k}
}

func String(name string) *Field  { return newField(name, kindString) }
func Number(name string) *Field  { return newField(name, kindNumber) }
func Integer(name string) *Field { return newField(name, kindInteger) }
func Bool(name string) *Field    { return newField(name, kindBool) }
func Map(name string) *Field     { return newField(name, kindMap) }

// Required reports a missing key as CodeRequired.
func (f *Field) Required() *Field {
	f.required = true
	return f
}

// Default is used only when the key is absent.
func (f *Field) Default(v any) *Field {
	f.def = v
	f.hasDefault = true
	return f
}

// Apply appends a string transform. Transforms run in declaration order.
func (f *Field) Apply(t Transform) *Field {
	f.transforms = append(f.transforms, t)
	return f
}

func (f *Field) Trim() *Field       { return f.Apply(strings.TrimSpace) }
func (f *Field) Lower() *Field      { return f.Apply(strings.ToLower) }
func (f *Field) DigitsOnly() *Field { return f.Apply(document.Digits) }

// normalize reads the field from raw. ok is false when the key is absent and
// has no default; issue is set when the value has the wrong shape.
//
// An explicit null is treated as absent, except on fields with a default
// where it is reported as CodeInvalidFormat.
func (f *Field) normalize(raw map[string]any) (value any, ok bool, issue *Issue) {
	v, present := raw[f.name]
	if present && v == nil && f.hasDefault {
		return nil, false, &Issue{Path: f.name, Code: CodeInvalidFormat, Message: "must be " + kindNames[f.kind] + ", not null"}
	}
	if !present || v == nil {
		switch {
		case f.hasDefault:
			return f.def, true, nil
		case f.required:
			return nil, false, &Issue{Path: f.name, Code: CodeRequired, Message: "is required"}
		default:
			return nil, false, nil
		}
	}

	out, good := f.coerce(v)
	if !good {
		return nil, false, &Issue{Path: f.name, Code: CodeInvalidFormat, Message: "must be " + kindNames[f.kind]}
	}
	if s, isString := out.(string); isString {
		for _, t := range f.transforms {
			s = t(s)
		}
		out = s
	}
	return out, true, nil
}

func (f *Field) coerce(v any) (any, bool) {
	switch f.kind {
	case kindString:
		s, ok := v.(string)
		return s, ok
	case kindBool:
		b, ok := v.(bool)
		return b, ok
	case kindMap:
		m, ok := v.(map[string]any)
		return m, ok
	case kindNumber:
		n, ok := toFloat(v)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, false
		}
		return n, true
	case kindInteger:
		n, ok := toFloat(v)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return nil, false
		}
		if n > math.MaxInt32 || n < math.MinInt32 {
			return nil, false
		}
		return int(n), true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	return 0, false
}

package strif

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
	KindTime
	KindOpaque
)

var kindNames = [...]string{
	KindNull:   "null",
	KindString: "string",
	KindNumber: "number",
	KindBool:   "bool",
	KindList:   "list",
	KindMap:    "map",
	KindTime:   "time",
	KindOpaque: "opaque",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is the dynamic data type templates are rendered against. It holds
// one of null, string, number, boolean, list, string-keyed map, time, or an
// opaque Go value produced by a transformer.
//
// The zero Value is null. Values are treated as read-only: the slices and maps
// passed to [List] and [Map] are not copied.
type Value struct {
	kind  Kind
	str   string
	num   float64
	flag  bool
	list  []Value
	dict  map[string]Value
	when  time.Time
	other any
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a number value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// List returns an ordered sequence value.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Map returns a string-keyed mapping value. A nil map is an empty mapping.
func Map(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: KindMap, dict: m}
}

// Time returns a date value.
func Time(t time.Time) Value { return Value{kind: KindTime, when: t} }

// Opaque wraps an arbitrary Go value. A nil argument yields null.
func Opaque(x any) Value {
	if x == nil {
		return Null()
	}
	return Value{kind: KindOpaque, other: x}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// The As accessors return the held value and whether v is of that kind.
func (v Value) AsString() (string, bool)        { return v.str, v.kind == KindString }
func (v Value) AsNumber() (float64, bool)       { return v.num, v.kind == KindNumber }
func (v Value) AsBool() (bool, bool)            { return v.flag, v.kind == KindBool }
func (v Value) AsList() ([]Value, bool)         { return v.list, v.kind == KindList }
func (v Value) AsMap() (map[string]Value, bool) { return v.dict, v.kind == KindMap }
func (v Value) AsTime() (time.Time, bool)       { return v.when, v.kind == KindTime }
func (v Value) AsOpaque() (any, bool)           { return v.other, v.kind == KindOpaque }

// Get returns the child stored under key. Maps are looked up by key; lists
// accept a canonical decimal index or "length". Every other kind has no
// children.
func (v Value) Get(key string) (Value, bool) {
	switch v.kind {
	case KindMap:
		child, ok := v.dict[key]
		return child, ok
	case KindList:
		if key == "length" {
			return Number(float64(len(v.list))), true
		}
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(v.list) || strconv.Itoa(i) != key {
			return Null(), false
		}
		return v.list[i], true
	default:
		return Null(), false
	}
}

// Truthy reports whether v counts as present. Null, false, zero, NaN and the
// empty string are falsy; everything else is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindString:
		return v.str != ""
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindBool:
		return v.flag
	default:
		return true
	}
}

// Type returns the runtime type tag matched against a property's expected
// type: "null", "string", "number", "boolean", "array", "object" or "date".
func (v Value) Type() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindList:
		return "array"
	case KindTime:
		return "date"
	default:
		return "object"
	}
}

// String returns the text substituted into a template for v.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	case KindMap:
		return "[object Object]"
	case KindTime:
		return v.when.Format(time.RFC3339)
	default:
		if s, ok := v.other.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%v", v.other)
	}
}

// Interface converts v back to plain Go data: nil, string, float64, bool,
// []any, map[string]any, time.Time or the wrapped opaque value.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.flag
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.dict))
		for k, item := range v.dict {
			out[k] = item.Interface()
		}
		return out
	case KindTime:
		return v.when
	case KindOpaque:
		return v.other
	default:
		return nil
	}
}

// Equal reports whether v and o hold the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.flag == o.flag
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.dict) != len(o.dict) {
			return false
		}
		for k, item := range v.dict {
			other, ok := o.dict[k]
			if !ok || !item.Equal(other) {
				return false
			}
		}
		return true
	case KindTime:
		return v.when.Equal(o.when)
	default:
		return reflect.DeepEqual(v.other, o.other)
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent drops leading zeros from the exponent: "1e-07" becomes "1e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	digits := strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return s[:i+2] + digits
}

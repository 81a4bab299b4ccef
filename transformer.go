package strif

import (
	"maps"
	"slices"
	"strings"
	"time"
)

// Transformer maps one value to another. Transformers are supplied by the
// embedding application and are expected to be pure.
type Transformer func(Value) Value

// Transformers maps transformer names to functions.
type Transformers map[string]Transformer

// Clone returns a shallow copy of s. The copy of a nil set is empty.
func (s Transformers) Clone() Transformers {
	out := make(Transformers, len(s))
	maps.Copy(out, s)
	return out
}

// Merge returns a copy of s with each of others applied in order. Later
// sets win on a name collision. s itself is not modified.
func (s Transformers) Merge(others ...Transformers) Transformers {
	out := s.Clone()
	for _, o := range others {
		maps.Copy(out, o)
	}
	return out
}

// Names returns the transformer names in sorted order.
func (s Transformers) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// LocaleLayout is the time layout used by the "lds" transformer.
const LocaleLayout = "1/2/2006, 3:04:05 PM"

// DefaultTransformers returns the transformers carried by the default
// formatter:
//
//   - date: parses a string or a Unix timestamp into a date value.
//     Unparseable input becomes null.
//   - lds: formats a date value with [LocaleLayout]. Other values pass
//     through unchanged.
func DefaultTransformers() Transformers {
	return Transformers{
		"date": toDate,
		"lds":  localeDateString,
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02.01.2006",
	"2.1.2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon, 02 Jan 2006 15:04:05",
	"Mon, 02 Jan 2006",
	"Monday, 02 January 2006",
}

func toDate(v Value) Value {
	switch v.Kind() {
	case KindTime:
		return v
	case KindNumber:
		n, _ := v.AsNumber()
		return Time(unixTime(int64(n)))
	case KindString:
		s, _ := v.AsString()
		if t, ok := parseDate(strings.TrimSpace(s)); ok {
			return Time(t)
		}
	}
	return Null()
}

// unixTime reads n as seconds, or as milliseconds when it is too large to
// be a plausible seconds value.
func unixTime(n int64) time.Time {
	if n > 1e10 || n < -1e10 {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func localeDateString(v Value) Value {
	t, ok := v.AsTime()
	if !ok {
		return v
	}
	return String(t.Format(LocaleLayout))
}

// Package text registers the "text" transformer plugin: case conversion,
// trimming, and display-width aware truncation, padding and wrapping.
//
// Import it for its side effect and name it in the formatter options:
//
//	import _ "github.com/bjaus/strif/plugins/text"
//
//	f, err := strif.NewFormatter(strif.Options{Plugins: []string{"text"}})
//
// Widths count terminal columns, so wide characters such as CJK take two.
// Non-string values pass through every transformer unchanged.
package text

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bjaus/strif"
)

// Name is the plugin's registered name.
const Name = "text"

// DefaultWidth is the width used by the "truncate", "pad", "padLeft",
// "center" and "wrap" transformers in [Transformers].
const DefaultWidth = 40

func init() {
	strif.RegisterPlugin(Name, strif.PluginFunc(func() (strif.Transformers, error) {
		return Transformers(), nil
	}))
}

// Alignment controls where padding goes.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Transformers returns the plugin's transformer set.
func Transformers() strif.Transformers {
	return strif.Transformers{
		"upper":    stringFunc(strings.ToUpper),
		"lower":    stringFunc(strings.ToLower),
		"title":    stringFunc(title),
		"trim":     stringFunc(strings.TrimSpace),
		"width":    width,
		"truncate": Truncate(DefaultWidth),
		"pad":      Pad(DefaultWidth, AlignLeft),
		"padLeft":  Pad(DefaultWidth, AlignRight),
		"center":   Pad(DefaultWidth, AlignCenter),
		"wrap":     Wrap(DefaultWidth),
	}
}

// Truncate returns a transformer that cuts strings wider than n columns.
// Above three columns the cut ends in "...".
func Truncate(n int) strif.Transformer {
	return stringFunc(func(s string) string { return truncate(s, n) })
}

// Pad returns a transformer that pads strings to n columns.
func Pad(n int, align Alignment) strif.Transformer {
	return stringFunc(func(s string) string { return alignCell(s, n, align) })
}

// Wrap returns a transformer that breaks strings into lines of at most n
// columns joined by newlines.
func Wrap(n int) strif.Transformer {
	return stringFunc(func(s string) string { return strings.Join(wrapCell(s, n), "\n") })
}

func stringFunc(fn func(string) string) strif.Transformer {
	return func(v strif.Value) strif.Value {
		s, ok := v.AsString()
		if !ok {
			return v
		}
		return strif.String(fn(s))
	}
}

func width(v strif.Value) strif.Value {
	s, ok := v.AsString()
	if !ok {
		return v
	}
	return strif.Number(float64(runewidth.StringWidth(s)))
}

// title capitalises the first letter of each word and lowercases the rest,
// finding words by Unicode word boundaries. A Caser holds state, so each call
// builds its own.
func title(s string) string {
	return cases.Title(language.Und).String(s)
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

func wrapCell(s string, width int) []string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return []string{s}
	}
	var lines []string
	for len(s) > 0 {
		line := runewidth.Truncate(s, width, "")
		if runewidth.StringWidth(line) == 0 {
			// A rune wider than the limit still has to move forward.
			r := []rune(s)
			line = string(r[0])
		}
		lines = append(lines, line)
		s = s[len(line):]
	}
	return lines
}

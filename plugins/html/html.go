// Package html registers the "html" transformer plugin for values that end
// up inside HTML documents.
//
//   - escape: escapes <, >, &, ' and "
//   - sanitize: keeps user-generated-content markup and drops the rest
//   - strip: removes all markup
//
// Non-string values pass through unchanged.
package html

import (
	"html"

	"github.com/microcosm-cc/bluemonday"

	"github.com/bjaus/strif"
)

// Name is the plugin's registered name.
const Name = "html"

func init() {
	strif.RegisterPlugin(Name, strif.PluginFunc(func() (strif.Transformers, error) {
		return Transformers(), nil
	}))
}

// Transformers returns the plugin's transformer set. Each call builds fresh
// sanitising policies.
func Transformers() strif.Transformers {
	ugc := bluemonday.UGCPolicy()
	strict := bluemonday.StrictPolicy()
	return strif.Transformers{
		"escape":   stringFunc(html.EscapeString),
		"sanitize": stringFunc(ugc.Sanitize),
		"strip":    stringFunc(strict.Sanitize),
	}
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

package html_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/strif"
	"github.com/bjaus/strif/plugins/html"
)

func TestTransformers(t *testing.T) {
	t.Parallel()
	set := html.Transformers()
	tests := map[string]struct {
		name string
		in   string
		want string
	}{
		"escape":          {name: "escape", in: `<a href="x">Tom & Jerry</a>`, want: "&lt;a href=&#34;x&#34;&gt;Tom &amp; Jerry&lt;/a&gt;"},
		"sanitize script": {name: "sanitize", in: `<b>bold</b><script>alert(1)</script>`, want: "<b>bold</b>"},
		"strip":           {name: "strip", in: `<p>Hello <b>world</b></p>`, want: "Hello world"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			fn, ok := set[tt.name]
			require.True(t, ok)
			assert.Equal(t, tt.want, fn(strif.String(tt.in)).String())
		})
	}
}

func TestNonStringPassesThrough(t *testing.T) {
	t.Parallel()
	for name, fn := range html.Transformers() {
		assert.True(t, strif.Bool(true).Equal(fn(strif.Bool(true))), name)
	}
}

func TestRegisteredPlugin(t *testing.T) {
	t.Parallel()
	f, err := strif.NewFormatter(strif.Options{Plugins: []string{html.Name}})
	require.NoError(t, err)

	tmpl, err := f.Template("<p>{comment}</p>", strif.TemplateOptions{Props: strif.PropList{
		{Name: "comment", PropOptions: strif.PropOptions{Transformers: []string{"escape"}}},
	}})
	require.NoError(t, err)
	got, err := tmpl.Compile(map[string]any{"comment": "1 < 2"}, strif.CompileOptions{})
	require.NoError(t, err)
	assert.Equal(t, "<p>1 &lt; 2</p>", got)
}

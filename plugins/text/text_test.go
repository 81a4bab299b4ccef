package text_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/strif"
	"github.com/bjaus/strif/plugins/text"
)

func apply(fn strif.Transformer, s string) string {
	return fn(strif.String(s)).String()
}

func TestTransformers(t *testing.T) {
	t.Parallel()
	set := text.Transformers()
	tests := map[string]struct {
		name string
		in   string
		want string
	}{
		"upper":        {name: "upper", in: "abc", want: "ABC"},
		"lower":        {name: "lower", in: "ÀBC", want: "àbc"},
		"title":        {name: "title", in: "hello  big world", want: "Hello  Big World"},
		"title hyphen": {name: "title", in: "jean-luc picard", want: "Jean-Luc Picard"},
		"title lowers": {name: "title", in: "HELLO wORLD", want: "Hello World"},
		"trim":         {name: "trim", in: "  x \n", want: "x"},
		"width ascii":  {name: "width", in: "abc", want: "3"},
		"width wide":   {name: "width", in: "你好", want: "4"},
		"pad short":    {name: "pad", in: "x", want: "x" + spaces(39)},
		"truncate":     {name: "truncate", in: repeat("a", 50), want: repeat("a", 37) + "..."},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			fn, ok := set[tt.name]
			require.True(t, ok)
			assert.Equal(t, tt.want, apply(fn, tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "hello", apply(text.Truncate(5), "hello"))
	assert.Equal(t, "he...", apply(text.Truncate(5), "hello world"))
	assert.Equal(t, "hel", apply(text.Truncate(3), "hello"))
	assert.Equal(t, "hello", apply(text.Truncate(0), "hello"))
	assert.Equal(t, "你...", apply(text.Truncate(5), "你好世界"))
}

func TestPad(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ab  ", apply(text.Pad(4, text.AlignLeft), "ab"))
	assert.Equal(t, "  ab", apply(text.Pad(4, text.AlignRight), "ab"))
	assert.Equal(t, " ab  ", apply(text.Pad(5, text.AlignCenter), "ab"))
	assert.Equal(t, "你好", apply(text.Pad(3, text.AlignLeft), "你好"))
	assert.Equal(t, "abcdef", apply(text.Pad(2, text.AlignLeft), "abcdef"))
}

func TestWrap(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Hel\nlo", apply(text.Wrap(3), "Hello"))
	assert.Equal(t, "hi", apply(text.Wrap(5), "hi"))
	assert.Equal(t, "hi", apply(text.Wrap(0), "hi"))
	// A wide rune never fits in one column but must still advance.
	assert.Equal(t, "你\n好", apply(text.Wrap(1), "你好"))
}

func TestNonStringPassesThrough(t *testing.T) {
	t.Parallel()
	for name, fn := range text.Transformers() {
		got := fn(strif.Number(4))
		assert.True(t, strif.Number(4).Equal(got), name)
	}
}

func TestRegisteredPlugin(t *testing.T) {
	t.Parallel()
	f, err := strif.NewFormatter(strif.Options{Plugins: []string{text.Name}})
	require.NoError(t, err)

	tmpl, err := f.Template("[{name}]", strif.TemplateOptions{Props: strif.PropList{
		{Name: "name", PropOptions: strif.PropOptions{Transformers: []string{"trim", "upper"}}},
	}})
	require.NoError(t, err)
	got, err := tmpl.Compile(map[string]any{"name": "  ada "}, strif.CompileOptions{})
	require.NoError(t, err)
	assert.Equal(t, "[ADA]", got)
}

func spaces(n int) string { return strings.Repeat(" ", n) }

func repeat(s string, n int) string { return strings.Repeat(s, n) }

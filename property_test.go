package strif_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/strif"
)

func TestPropertyExtract(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		opts    strif.PropOptions
		data    any
		want    strif.Value
		wantErr require.ErrorAssertionFunc
	}{
		"nested found": {
			opts:    strif.PropOptions{Accessor: "a.b"},
			data:    map[string]any{"a": map[string]any{"b": "x"}},
			want:    strif.String("x"),
			wantErr: require.NoError,
		},
		"nested missing leaf": {
			opts:    strif.PropOptions{Accessor: "a.b"},
			data:    map[string]any{"a": map[string]any{}},
			want:    strif.Null(),
			wantErr: require.NoError,
		},
		"nested missing root": {
			opts:    strif.PropOptions{Accessor: "a.b"},
			data:    map[string]any{},
			want:    strif.Null(),
			wantErr: require.NoError,
		},
		"nil data": {
			opts:    strif.PropOptions{Accessor: "a.b"},
			data:    nil,
			want:    strif.Null(),
			wantErr: require.NoError,
		},
		"falsy mid path short circuits": {
			opts:    strif.PropOptions{Accessor: "a.b"},
			data:    map[string]any{"a": 0},
			want:    strif.Null(),
			wantErr: require.NoError,
		},
		"null mid path short circuits": {
			opts:    strif.PropOptions{Accessor: "a.b.c"},
			data:    map[string]any{"a": map[string]any{"b": nil}},
			want:    strif.Null(),
			wantErr: require.NoError,
		},
		"falsy leaf collapses to null": {
			opts:    strif.PropOptions{Accessor: "a"},
			data:    map[string]any{"a": ""},
			want:    strif.Null(),
			wantErr: require.NoError,
		},
		"leading dot": {
			opts:    strif.PropOptions{Accessor: ".a"},
			data:    map[string]any{"a": "x"},
			want:    strif.String("x"),
			wantErr: require.NoError,
		},
		"leading bracket": {
			opts:    strif.PropOptions{Accessor: "[a][b]"},
			data:    map[string]any{"a": map[string]any{"b": true}},
			want:    strif.Bool(true),
			wantErr: require.NoError,
		},
		"list index and length": {
			opts:    strif.PropOptions{Accessor: "items.length"},
			data:    map[string]any{"items": []any{1, 2, 3}},
			want:    strif.Number(3),
			wantErr: require.NoError,
		},
		"defaults to name": {
			opts:    strif.PropOptions{},
			data:    map[string]any{"prop": 4},
			want:    strif.Number(4),
			wantErr: require.NoError,
		},
		"type match": {
			opts:    strif.PropOptions{Type: "string"},
			data:    map[string]any{"prop": "s"},
			want:    strif.String("s"),
			wantErr: require.NoError,
		},
		"type mismatch": {
			opts:    strif.PropOptions{Type: "number"},
			data:    map[string]any{"prop": "s"},
			want:    strif.Null(),
			wantErr: errorIs(strif.ErrTypeMismatch),
		},
		"type check skipped for missing key": {
			opts:    strif.PropOptions{Type: "number"},
			data:    map[string]any{},
			want:    strif.Null(),
			wantErr: require.NoError,
		},
		"collapsed null fails type check": {
			opts:    strif.PropOptions{Type: "string"},
			data:    map[string]any{"prop": ""},
			want:    strif.Null(),
			wantErr: errorIs(strif.ErrTypeMismatch),
		},
		"null satisfies object": {
			opts:    strif.PropOptions{Type: "object"},
			data:    map[string]any{"prop": nil},
			want:    strif.Null(),
			wantErr: require.NoError,
		},
		"collapsed null satisfies object": {
			opts:    strif.PropOptions{Accessor: "a.b", Type: "object"},
			data:    map[string]any{"a": map[string]any{"b": 0}},
			want:    strif.Null(),
			wantErr: require.NoError,
		},
		"struct path": {
			opts: strif.PropOptions{Accessor: "Inner.Tags[1]"},
			data: &struct {
				Inner struct{ Tags []string }
			}{Inner: struct{ Tags []string }{Tags: []string{"a", "b"}}},
			want:    strif.String("b"),
			wantErr: require.NoError,
		},
		"value inside go map": {
			opts:    strif.PropOptions{Accessor: "v.k", Type: "number"},
			data:    map[string]any{"v": strif.Map(map[string]strif.Value{"k": strif.Number(2)})},
			want:    strif.Number(2),
			wantErr: require.NoError,
		},
		"int keyed map": {
			opts:    strif.PropOptions{Accessor: "m[7]"},
			data:    map[string]any{"m": map[int]string{7: "seven"}},
			want:    strif.String("seven"),
			wantErr: require.NoError,
		},
		"byte slice has no children": {
			opts:    strif.PropOptions{Accessor: "b.length"},
			data:    map[string]any{"b": []byte("abc")},
			want:    strif.Null(),
			wantErr: require.NoError,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p, err := strif.NewProperty("prop", tt.opts)
			require.NoError(t, err)
			got, err := p.Extract(tt.data)
			tt.wantErr(t, err)
			assert.True(t, tt.want.Equal(got), "want %v (%s), got %v (%s)", tt.want, tt.want.Kind(), got, got.Kind())
		})
	}
}

func TestPropertyTypeMismatchMessage(t *testing.T) {
	t.Parallel()
	p, err := strif.NewProperty("age", strif.PropOptions{Type: "number"})
	require.NoError(t, err)
	_, err = p.Extract(map[string]any{"age": "old"})
	require.ErrorIs(t, err, strif.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "{age}")
	assert.Contains(t, err.Error(), `"number"`)
}

func TestNewPropertyRequiresName(t *testing.T) {
	t.Parallel()
	_, err := strif.NewProperty("", strif.PropOptions{})
	require.ErrorIs(t, err, strif.ErrInvalidArgument)
}

func TestPropertyCopiesTransformers(t *testing.T) {
	t.Parallel()
	chain := []string{"a", "b"}
	p, err := strif.NewProperty("x", strif.PropOptions{Transformers: chain, Type: "string"})
	require.NoError(t, err)
	chain[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, p.Transformers())
	assert.Equal(t, "string", p.Type())
	assert.Equal(t, "x", p.Name())
}

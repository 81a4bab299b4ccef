package strif

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
)

var bracketAccess = regexp.MustCompile(`\[(\w+)\]`)

// PropOptions configures how a property is read from the data.
type PropOptions struct {
	// Accessor is a dotted or bracketed path such as "user.address[city]".
	// Defaults to the property name.
	Accessor string `yaml:"accessor,omitempty" json:"accessor,omitempty"`

	// Type, when set, is the runtime type tag the resolved value must carry
	// (see [Value.Type]).
	Type string `yaml:"type,omitempty" json:"type,omitempty"`

	// Transformers names the transformers applied, in order, after extraction.
	Transformers []string `yaml:"transformers,omitempty" json:"transformers,omitempty"`
}

// Property binds a placeholder name to a path into the data, an optional type
// check and an optional transformer chain. Properties are immutable.
type Property struct {
	name         string
	accessor     string
	keys         []string
	typ          string
	transformers []string
}

// NewProperty creates a property. The name is required.
func NewProperty(name string, opts PropOptions) (*Property, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: property name is required", ErrInvalidArgument)
	}
	accessor := opts.Accessor
	if accessor == "" {
		accessor = name
	}
	return &Property{
		name:         name,
		accessor:     accessor,
		keys:         splitAccessor(accessor),
		typ:          opts.Type,
		transformers: slices.Clone(opts.Transformers),
	}, nil
}

// Name returns the placeholder name.
func (p *Property) Name() string { return p.name }

// Accessor returns the path the property reads, as given.
func (p *Property) Accessor() string { return p.accessor }

// Type returns the expected type tag, or "" when unchecked.
func (p *Property) Type() string { return p.typ }

// Transformers returns the transformer chain.
func (p *Property) Transformers() []string { return slices.Clone(p.transformers) }

// Extract walks data along the accessor path. A key missing at any step
// yields null without error. Falsy values met on the way collapse to null, and
// a key looked up on null is missing. Only the value at the end of the path is
// converted with [ValueOf]. When an expected type is set, the walked value
// must carry it or [ErrTypeMismatch] is returned; null also satisfies
// "object".
func (p *Property) Extract(data any) (Value, error) {
	cur, found := p.walk(data)
	if !found {
		return Null(), nil
	}
	if p.typ != "" && !hasType(cur, p.typ) {
		return Null(), fmt.Errorf("%w: property {%s} is %s, want %q", ErrTypeMismatch, p.name, cur.Type(), p.typ)
	}
	return cur, nil
}

func (p *Property) walk(data any) (Value, bool) {
	if v, ok := data.(Value); ok {
		return walkValue(v, p.keys)
	}
	rv := reflect.ValueOf(data)
	for i, key := range p.keys {
		if v, ok := asValue(rv); ok {
			return walkValue(v, p.keys[i:])
		}
		next, ok := child(rv, key)
		if !ok {
			return Null(), false
		}
		if !truthy(next) {
			next = reflect.Value{}
		}
		rv = next
	}
	return reflectValue(rv), true
}

func walkValue(cur Value, keys []string) (Value, bool) {
	for _, key := range keys {
		next, ok := cur.Get(key)
		if !ok {
			return Null(), false
		}
		if !next.Truthy() {
			next = Null()
		}
		cur = next
	}
	return cur, true
}

func hasType(v Value, want string) bool {
	return v.Type() == want || v.IsNull() && want == "object"
}

// splitAccessor rewrites [key] segments as .key, drops one leading dot and
// splits on dots.
func splitAccessor(path string) []string {
	path = bracketAccess.ReplaceAllString(path, ".${1}")
	path = strings.TrimPrefix(path, ".")
	return strings.Split(path, ".")
}

package strif

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// placeholderPattern matches, leftmost first: an escaped "{{", an escaped
// "}}", or a placeholder "{name}" / "{name!suffix}".
var placeholderPattern = regexp.MustCompile(`\{\{|\}\}|\{(.*?)(?:!(.+?))?\}`)

// TemplateOptions configures a new [Template].
type TemplateOptions struct {
	Props PropList `yaml:"props,omitempty" json:"props,omitempty"`
}

// CompileOptions configures a single [Template.Compile] call.
type CompileOptions struct {
	// IgnoreTransformers lists transformers that act as identity for this
	// call only.
	IgnoreTransformers []string `yaml:"ignoreTransformers,omitempty" json:"ignoreTransformers,omitempty"`
}

// Placeholder is one substitution point found in a template source.
type Placeholder struct {
	Name string
	// Suffix is the text after "!" in "{name!suffix}". It is reserved and
	// does not affect substitution.
	Suffix string
	Offset int
}

// Template is a template source plus the properties it renders. The source
// never changes; properties may only be appended with [Template.Prop].
//
// Compile may be called concurrently. Prop must not run concurrently with
// Compile.
type Template struct {
	source       string
	props        []*Property
	transformers Transformers
	logger       *slog.Logger
}

func newTemplate(source string, transformers Transformers, opts TemplateOptions, logger *slog.Logger) (*Template, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: template is required", ErrInvalidArgument)
	}
	t := &Template{
		source:       source,
		transformers: transformers,
		logger:       logger,
	}
	for _, entry := range opts.Props {
		if err := t.Prop(entry.Name, entry.PropOptions); err != nil {
			return nil, err
		}
	}
	logger.Debug("template created", "length", len(source), "props", len(t.props))
	return t, nil
}

// Prop registers a property.
func (t *Template) Prop(name string, opts PropOptions) error {
	p, err := NewProperty(name, opts)
	if err != nil {
		return err
	}
	t.props = append(t.props, p)
	return nil
}

// MustProp is like [Template.Prop] but panics on error and returns t so
// registrations can be chained.
func (t *Template) MustProp(name string, opts PropOptions) *Template {
	if err := t.Prop(name, opts); err != nil {
		panic(err)
	}
	return t
}

// Source returns the template text.
func (t *Template) Source() string { return t.source }

// String returns the template text.
func (t *Template) String() string { return t.source }

// Props returns the registered properties in registration order.
func (t *Template) Props() []*Property {
	out := make([]*Property, len(t.props))
	copy(out, t.props)
	return out
}

// Print writes the template text followed by a newline to w.
func (t *Template) Print(w io.Writer) error {
	_, err := fmt.Fprintln(w, t.source)
	return err
}

// Placeholders lists the placeholders in the source in order of appearance.
// Escaped braces are skipped. An empty placeholder returns
// [ErrEmptyPlaceholder].
func (t *Template) Placeholders() ([]Placeholder, error) {
	var out []Placeholder
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(t.source, -1) {
		if m[2] < 0 {
			continue
		}
		ph := Placeholder{Name: t.source[m[2]:m[3]], Offset: m[0]}
		if ph.Name == "" {
			return nil, emptyPlaceholder(m[0])
		}
		if m[4] >= 0 {
			ph.Suffix = t.source[m[4]:m[5]]
		}
		out = append(out, ph)
	}
	return out, nil
}

// Compile renders the template against data. Data may be a [Value] or any Go
// value accepted by [ValueOf]; each property reads only its own path. Nothing
// is rendered when an error occurs.
func (t *Template) Compile(data any, opts CompileOptions) (string, error) {
	values, err := t.resolve(data, opts)
	if err != nil {
		return "", err
	}
	return substitute(t.source, values)
}

// Write renders the template against data and writes the result to w.
func (t *Template) Write(w io.Writer, data any, opts CompileOptions) error {
	out, err := t.Compile(data, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// resolve extracts every property and runs its transformer chain. A falsy
// extracted value is not recorded, so the chain starts from whatever an
// earlier property of the same name left behind, or null.
func (t *Template) resolve(data any, opts CompileOptions) (map[string]Value, error) {
	inert := t.inert(opts.IgnoreTransformers)
	values := make(map[string]Value, len(t.props))
	for _, p := range t.props {
		v, err := p.Extract(data)
		if err != nil {
			return nil, err
		}
		if v.Truthy() {
			values[p.name] = v
		}
		if len(p.transformers) == 0 {
			continue
		}
		acc := values[p.name]
		for _, name := range p.transformers {
			fn, ok := t.transformers[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q (property {%s})", ErrTransformerNotFound, name, p.name)
			}
			if inert[name] {
				continue
			}
			acc = fn(acc)
		}
		values[p.name] = acc
	}
	return values, nil
}

// inert flags the ignored names that exist in the bound set. Names that do
// not exist stay unknown and still fail when a chain uses them.
func (t *Template) inert(ignore []string) map[string]bool {
	if len(ignore) == 0 {
		return nil
	}
	out := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		if _, ok := t.transformers[name]; ok {
			out[name] = true
		}
	}
	if len(out) > 0 {
		t.logger.Debug("transformers ignored", "names", ignore)
	}
	return out
}

func substitute(source string, values map[string]Value) (string, error) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(source, -1)
	if len(matches) == 0 {
		return source, nil
	}
	var b strings.Builder
	b.Grow(len(source))
	last := 0
	for _, m := range matches {
		b.WriteString(source[last:m[0]])
		last = m[1]
		if m[2] < 0 {
			// "{{" or "}}"
			b.WriteByte(source[m[0]])
			continue
		}
		name := source[m[2]:m[3]]
		if name == "" {
			return "", emptyPlaceholder(m[0])
		}
		if v := values[name]; v.Truthy() {
			b.WriteString(v.String())
		}
	}
	b.WriteString(source[last:])
	return b.String(), nil
}

func emptyPlaceholder(offset int) error {
	return fmt.Errorf("%w: template placeholders ({}) should not be empty, offset %d", ErrEmptyPlaceholder, offset)
}

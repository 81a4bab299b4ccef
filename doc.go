// Package strif renders text templates with named placeholders.
//
// A [Template] holds a source string and a list of [Property] registrations.
// Compiling it against data extracts each property, runs the property's
// transformer chain, and substitutes the results into the source. A
// [Formatter] owns the transformer set and creates templates bound to it.
//
//	t, err := strif.NewTemplate("{name} joined on {joined}", strif.TemplateOptions{})
//	t.MustProp("name", strif.PropOptions{Accessor: "user.name"}).
//		MustProp("joined", strif.PropOptions{Transformers: []string{"date", "lds"}})
//	out, err := t.Compile(data, strif.CompileOptions{})
//
// # Placeholders
//
//   - {name} substitutes the property called name
//   - {name!suffix} substitutes name; the suffix is reserved
//   - {{ and }} are literal braces
//   - {} is an error ([ErrEmptyPlaceholder])
//
// A placeholder whose property is missing, null, or falsy (false, 0, "")
// renders as the empty string.
//
// # Data
//
// Data is any Go value accepted by [ValueOf]: maps, slices, structs, scalars,
// or a [Value] built directly. Accessor paths use dots and brackets:
// "user.address[city]" and "user.address.city" are equivalent. A path that
// runs into a missing key yields null, never an error.
//
// # Transformers
//
// A [Transformer] maps one [Value] to another. A formatter's set is built
// from [Options.Transformers] followed by the plugins named in
// [Options.Plugins], later sources winning. Plugins are registered by name
// with [RegisterPlugin], usually from an init function:
//
//	import _ "github.com/bjaus/strif/plugins/text"
//
//	f, err := strif.NewFormatter(strif.Options{Plugins: []string{"text"}})
//
// [CompileOptions.IgnoreTransformers] turns named transformers into identity
// for a single call without changing the formatter.
//
// # Default Formatter
//
// [Default] returns a shared formatter built at package initialisation with
// [DefaultTransformers] ("date" and "lds"). [NewTemplate], [FromFile],
// [FromReader] and [FromFS] use it.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidArgument]: missing name, template, path, or bad options
//   - [ErrTypeMismatch]: a value does not carry the property's declared type
//   - [ErrTransformerNotFound]: a chain names an unknown transformer
//   - [ErrEmptyPlaceholder]: the template contains {}
//   - [ErrPluginNotFound]: [Options.Plugins] names an unregistered plugin
//   - [ErrPlugin]: a plugin failed to provide its transformers
package strif

package strif

import (
	"errors"
	"io"
	"io/fs"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrTransformerNotFound = errors.New("transformer not found")
	ErrEmptyPlaceholder    = errors.New("empty placeholder")
	ErrPluginNotFound      = errors.New("plugin not found")
	ErrPlugin              = errors.New("plugin failed")
)

// std is the shared formatter. It is built once at package initialisation
// and never written afterwards.
var std = mustFormatter(Options{Transformers: DefaultTransformers()})

func mustFormatter(opts Options) *Formatter {
	f, err := NewFormatter(opts)
	if err != nil {
		panic(err)
	}
	return f
}

// Default returns the shared formatter carrying the [DefaultTransformers].
// Prefer [NewFormatter] where isolation matters, such as in tests.
func Default() *Formatter { return std }

// NewTemplate creates a template bound to the default formatter.
func NewTemplate(source string, opts TemplateOptions) (*Template, error) {
	return std.Template(source, opts)
}

// FromReader reads the whole of r and creates a template from it using the
// default formatter.
func FromReader(r io.Reader, opts TemplateOptions) (*Template, error) {
	return std.FromReader(r, opts)
}

// FromFile reads the file at path and creates a template from its contents
// using the default formatter.
func FromFile(path string, opts TemplateOptions) (*Template, error) {
	return std.FromFile(path, opts)
}

// FromFS reads path from fsys and creates a template from its contents using
// the default formatter.
func FromFS(fsys fs.FS, path string, opts TemplateOptions) (*Template, error) {
	return std.FromFS(fsys, path, opts)
}

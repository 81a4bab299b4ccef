package strif

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// Options configures a [Formatter].
type Options struct {
	// Transformers are merged over the built-in set.
	Transformers Transformers

	// Plugins names registered plugins (see [RegisterPlugin]) whose
	// transformers are merged, in order, over Transformers.
	Plugins []string

	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger
}

// Formatter owns a transformer set and creates templates bound to it. The set
// is fixed once the formatter is built, so a formatter is safe for concurrent
// use.
type Formatter struct {
	transformers Transformers
	logger       *slog.Logger
}

// NewFormatter builds a formatter. Its set starts empty, takes
// opts.Transformers, then each plugin in opts.Plugins in order; later
// sources win on a name collision. An unknown plugin returns
// [ErrPluginNotFound] and a failing plugin returns an error wrapping
// [ErrPlugin].
func NewFormatter(opts Options) (*Formatter, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	set := opts.Transformers.Clone()
	for _, name := range opts.Plugins {
		p, ok := lookupPlugin(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrPluginNotFound, name)
		}
		contributed, err := p.Transformers()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPlugin, name, err)
		}
		if contributed == nil {
			logger.Debug("plugin contributed no transformers", "plugin", name)
			continue
		}
		set = set.Merge(contributed)
		logger.Debug("plugin loaded", "plugin", name, "transformers", len(contributed))
	}
	for name, fn := range set {
		if fn == nil {
			return nil, fmt.Errorf("%w: transformer %q is nil", ErrInvalidArgument, name)
		}
	}
	return &Formatter{transformers: set, logger: logger}, nil
}

// Transformers returns a copy of the formatter's transformer set.
func (f *Formatter) Transformers() Transformers { return f.transformers.Clone() }

// Has reports whether a transformer is registered under name.
func (f *Formatter) Has(name string) bool {
	_, ok := f.transformers[name]
	return ok
}

// Template creates a template bound to the formatter's transformers.
func (f *Formatter) Template(source string, opts TemplateOptions) (*Template, error) {
	return newTemplate(source, f.transformers, opts, f.logger)
}

// FromReader reads the whole of r and creates a template from it.
func (f *Formatter) FromReader(r io.Reader, opts TemplateOptions) (*Template, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: reader is required", ErrInvalidArgument)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return f.Template(string(data), opts)
}

// FromFile reads the file at path and creates a template from its contents.
// An empty path returns [ErrInvalidArgument] without touching the filesystem.
func (f *Formatter) FromFile(path string, opts TemplateOptions) (*Template, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrInvalidArgument)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("template file read", "path", path, "bytes", len(data))
	return f.Template(string(data), opts)
}

// FromFS reads path from fsys and creates a template from its contents.
func (f *Formatter) FromFS(fsys fs.FS, path string, opts TemplateOptions) (*Template, error) {
	if fsys == nil {
		return nil, fmt.Errorf("%w: filesystem is required", ErrInvalidArgument)
	}
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrInvalidArgument)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return f.Template(string(data), opts)
}

package strif

import (
	"maps"
	"slices"
	"sync"
)

// Plugin contributes transformers to a formatter. A nil set contributes
// nothing; an error aborts formatter construction.
type Plugin interface {
	Transformers() (Transformers, error)
}

// PluginFunc adapts a function to the [Plugin] interface.
type PluginFunc func() (Transformers, error)

// Transformers calls f.
func (f PluginFunc) Transformers() (Transformers, error) { return f() }

// StaticPlugin is a plugin that always contributes the same set.
type StaticPlugin Transformers

// Transformers returns a copy of the set.
func (p StaticPlugin) Transformers() (Transformers, error) {
	return Transformers(p).Clone(), nil
}

var (
	pluginsMu sync.RWMutex
	plugins   = make(map[string]Plugin)
)

// RegisterPlugin makes a plugin available by name to [Options.Plugins].
// Plugin packages usually call it from init. It panics if name is empty, p is
// nil, or name is already registered.
func RegisterPlugin(name string, p Plugin) {
	pluginsMu.Lock()
	defer pluginsMu.Unlock()
	if name == "" {
		panic("strif: RegisterPlugin name is empty")
	}
	if p == nil {
		panic("strif: RegisterPlugin plugin is nil")
	}
	if _, dup := plugins[name]; dup {
		panic("strif: RegisterPlugin called twice for plugin " + name)
	}
	plugins[name] = p
}

// Plugins returns the sorted names of the registered plugins.
func Plugins() []string {
	pluginsMu.RLock()
	defer pluginsMu.RUnlock()
	return slices.Sorted(maps.Keys(plugins))
}

func lookupPlugin(name string) (Plugin, bool) {
	pluginsMu.RLock()
	defer pluginsMu.RUnlock()
	p, ok := plugins[name]
	return p, ok
}

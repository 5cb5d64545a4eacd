package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/treelog/treelog/appender"
	"github.com/treelog/treelog/filter"
)

// Params carries the string parameters of a configuration directive.
type Params map[string]string

// Get returns the value for key, or def when absent.
func (p Params) Get(key, def string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// AppenderFactory builds an appender from directive parameters.
type AppenderFactory func(name string, p Params) (appender.Appender, error)

// FilterFactory builds a filter from directive parameters.
type FilterFactory func(p Params) (filter.Filter, error)

var (
	factoryMu         sync.RWMutex
	appenderFactories = make(map[string]AppenderFactory)
	filterFactories   = make(map[string]FilterFactory)
)

// RegisterAppender maps a type name to an appender factory. Built-in
// types register themselves in init; plugins register theirs at
// startup. Registering an existing name replaces the factory.
func RegisterAppender(typeName string, f AppenderFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	appenderFactories[typeName] = f
}

// RegisterFilter maps a type name to a filter factory.
func RegisterFilter(typeName string, f FilterFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	filterFactories[typeName] = f
}

// NewAppender builds an appender of the given registered type.
func NewAppender(typeName, name string, p Params) (appender.Appender, error) {
	factoryMu.RLock()
	f, ok := appenderFactories[typeName]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown appender type %q", typeName)
	}
	return f(name, p)
}

// NewFilter builds a filter of the given registered type.
func NewFilter(typeName string, p Params) (filter.Filter, error) {
	factoryMu.RLock()
	f, ok := filterFactories[typeName]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown filter type %q", typeName)
	}
	return f(p)
}

// AppenderTypes returns the registered appender type names, sorted.
func AppenderTypes() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	out := make([]string, 0, len(appenderFactories))
	for t := range appenderFactories {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FilterTypes returns the registered filter type names, sorted.
func FilterTypes() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	out := make([]string, 0, len(filterFactories))
	for t := range filterFactories {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

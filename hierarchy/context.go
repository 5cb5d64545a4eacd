package hierarchy

import (
	"sync"

	"github.com/treelog/treelog/core"
)

// Ambient properties are process-wide key/value pairs stamped onto
// every event at construction time, before any fix step or queueing.
// Event-local properties shadow ambient ones with the same key.
var (
	ambientMu    sync.RWMutex
	ambientProps []core.Property
)

// SetGlobalProperty sets an ambient property included on every event
// from every repository. Setting an existing key replaces its value in
// place, keeping iteration order stable.
func SetGlobalProperty(key string, value interface{}) {
	ambientMu.Lock()
	defer ambientMu.Unlock()
	for i := range ambientProps {
		if ambientProps[i].Key == key {
			ambientProps[i].Value = value
			return
		}
	}
	ambientProps = append(ambientProps, core.Property{Key: key, Value: value})
}

// RemoveGlobalProperty removes an ambient property.
func RemoveGlobalProperty(key string) {
	ambientMu.Lock()
	defer ambientMu.Unlock()
	for i := range ambientProps {
		if ambientProps[i].Key == key {
			ambientProps = append(ambientProps[:i], ambientProps[i+1:]...)
			return
		}
	}
}

// GlobalProperties returns a copy of the ambient property set.
func GlobalProperties() []core.Property {
	ambientMu.RLock()
	defer ambientMu.RUnlock()
	out := make([]core.Property, len(ambientProps))
	copy(out, ambientProps)
	return out
}

// mergeProperties combines event-local and ambient properties: locals
// first, then ambient entries not shadowed by a local key.
func mergeProperties(local []core.Property) []core.Property {
	ambientMu.RLock()
	ambient := ambientProps
	ambientMu.RUnlock()
	if len(ambient) == 0 {
		return local
	}

	out := make([]core.Property, len(local), len(local)+len(ambient))
	copy(out, local)
outer:
	for _, a := range ambient {
		for _, p := range local {
			if p.Key == a.Key {
				continue outer
			}
		}
		out = append(out, a)
	}
	return out
}

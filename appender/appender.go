package appender

import (
	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/diag"
	"github.com/treelog/treelog/filter"
)

// Appender delivers events to a sink. An appender has no knowledge of
// which loggers reference it; the hierarchy drives it purely through
// this interface. Append may be called concurrently from any goroutine
// that logs, and Close must be idempotent.
type Appender interface {
	// Name identifies the appender within a repository's active set.
	Name() string

	// Append renders and writes the event to the sink.
	Append(e *core.Event) error

	// Close flushes and releases the sink.
	Close() error
}

// Filtered is implemented by appenders that gate events through a
// filter chain before appending.
type Filtered interface {
	FilterChain() *filter.Chain
}

// Do runs e through a's filter chain (if any) and, when accepted,
// invokes Append. It reports whether the appender was invoked. A panic
// or error inside the appender is confined here and routed to the
// internal diagnostic channel; one faulty sink must never suppress
// delivery to the others.
func Do(a Appender, e *core.Event) (invoked bool) {
	defer func() {
		if r := recover(); r != nil {
			diag.Errorf("appender %q panicked: %v", a.Name(), r)
		}
	}()
	if f, ok := a.(Filtered); ok {
		if f.FilterChain().Decide(e) == filter.Deny {
			return false
		}
	}
	if err := a.Append(e); err != nil {
		diag.Errorf("appender %q failed to append: %v", a.Name(), err)
	}
	return true
}

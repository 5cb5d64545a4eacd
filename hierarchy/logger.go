package hierarchy

import (
	"fmt"
	"sync/atomic"

	"github.com/treelog/treelog/appender"
	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/diag"
)

// maxChainDepth bounds the parent walk. The chain is acyclic by
// construction; crossing this bound means the structural invariant is
// broken and is reported through diagnostics instead of looping.
const maxChainDepth = 1 << 12

// cachedLevel is an effective level stamped with the level epoch it
// was resolved under.
type cachedLevel struct {
	level core.Level
	epoch uint64
}

// Logger is a named node in a repository's hierarchy. Applications
// obtain loggers from a Repository (or the package-level GetLogger) and
// hold them for the process lifetime; nodes are never removed, only
// reset. All methods are safe for concurrent use.
type Logger struct {
	name string
	repo *Repository

	// parent is maintained under the repository's structural lock and
	// read lock-free during dispatch. The root's parent is nil.
	parent atomic.Pointer[Logger]

	// level is the explicit level; nil means inherited.
	level     atomic.Pointer[core.Level]
	additive  atomic.Bool
	effective atomic.Pointer[cachedLevel]

	appenders appender.Attachments
}

func newLogger(repo *Repository, name string) *Logger {
	l := &Logger{name: name, repo: repo}
	l.additive.Store(true)
	return l
}

// Name returns the dotted hierarchical name of the logger.
func (l *Logger) Name() string { return l.name }

// Repository returns the owning repository.
func (l *Logger) Repository() *Repository { return l.repo }

// Parent returns the logger's resolved parent node, or nil for the
// root. The parent is the closest registered ancestor, which is not
// necessarily the immediate dotted prefix.
func (l *Logger) Parent() *Logger { return l.parent.Load() }

// Level returns the explicit level and whether one is set.
func (l *Logger) Level() (core.Level, bool) {
	if p := l.level.Load(); p != nil {
		return *p, true
	}
	return core.Level{}, false
}

// SetLevel assigns an explicit level to this node. The whole subtree's
// effective levels are invalidated.
func (l *Logger) SetLevel(level core.Level) {
	l.level.Store(&level)
	l.repo.levelEpoch.Add(1)
}

// ClearLevel removes the explicit level so the node inherits again.
// The root's level cannot be cleared; the repository guarantees it is
// always explicit.
func (l *Logger) ClearLevel() {
	if l == l.repo.root {
		diag.Warnf("repository %q: refusing to clear the root level", l.repo.name)
		return
	}
	l.level.Store(nil)
	l.repo.levelEpoch.Add(1)
}

// Additive reports whether events at this node also propagate to
// ancestor appenders.
func (l *Logger) Additive() bool { return l.additive.Load() }

// SetAdditive sets the additivity flag.
func (l *Logger) SetAdditive(additive bool) { l.additive.Store(additive) }

// AttachAppender adds a to this node's appender set. Attaching the
// same appender object twice is a no-op.
func (l *Logger) AttachAppender(a appender.Appender) { l.appenders.Add(a) }

// DetachAppender removes a by identity and reports whether it was
// attached. The appender is not closed.
func (l *Logger) DetachAppender(a appender.Appender) bool { return l.appenders.Remove(a) }

// DetachAppenderByName removes the first appender with the given name
// and returns it, or nil.
func (l *Logger) DetachAppenderByName(name string) appender.Appender {
	return l.appenders.RemoveByName(name)
}

// Appenders returns the node's attached appenders in invocation order.
func (l *Logger) Appenders() []appender.Appender { return l.appenders.Snapshot() }

// LookupAppender returns the attached appender with the given name, or
// nil.
func (l *Logger) LookupAppender(name string) appender.Appender { return l.appenders.Lookup(name) }

// EffectiveLevel resolves the level this node filters with: the
// nearest ancestor's explicit level, ultimately the root's. The result
// is cached and revalidated against the repository's level epoch, so
// the hot path never walks the chain after a cache hit.
func (l *Logger) EffectiveLevel() core.Level {
	epoch := l.repo.levelEpoch.Load()
	if c := l.effective.Load(); c != nil && c.epoch == epoch {
		return c.level
	}
	level := l.resolveLevel()
	l.effective.Store(&cachedLevel{level: level, epoch: epoch})
	return level
}

func (l *Logger) resolveLevel() core.Level {
	depth := 0
	for n := l; n != nil; n = n.parent.Load() {
		if p := n.level.Load(); p != nil {
			return *p
		}
		if depth++; depth > maxChainDepth {
			diag.Errorf("repository %q: parent chain of %q exceeds %d hops, assuming corruption",
				l.repo.name, l.name, maxChainDepth)
			break
		}
	}
	// The root always carries an explicit level, so this is only
	// reachable through the corruption guard above.
	return l.repo.defaultLevel
}

// IsEnabledFor reports whether an event at the given level would be
// emitted: the repository must be configured, the level must clear the
// global threshold, and it must clear this node's effective level.
func (l *Logger) IsEnabledFor(level core.Level) bool {
	if !l.repo.enabled(level) {
		return false
	}
	return level.Ge(l.EffectiveLevel())
}

// Log emits msg at the given level.
func (l *Logger) Log(level core.Level, msg string, props ...core.Property) {
	if !l.IsEnabledFor(level) {
		return
	}
	l.log(level, nil, msg, nil, props, 1)
}

// Logf emits a formatted message at the given level. The format
// arguments are only evaluated when the level is enabled.
func (l *Logger) Logf(level core.Level, format string, args ...interface{}) {
	if !l.IsEnabledFor(level) {
		return
	}
	l.log(level, nil, fmt.Sprintf(format, args...), nil, nil, 1)
}

// LogError emits msg at the given level with the error attached.
func (l *Logger) LogError(level core.Level, err error, msg string, props ...core.Property) {
	if !l.IsEnabledFor(level) {
		return
	}
	l.log(level, err, msg, nil, props, 1)
}

// LogLazy emits an event whose message is produced by render only if
// some appender consumes it.
func (l *Logger) LogLazy(level core.Level, render func() string, props ...core.Property) {
	if !l.IsEnabledFor(level) {
		return
	}
	l.log(level, nil, "", render, props, 1)
}

// Trace logs a trace message.
func (l *Logger) Trace(msg string, props ...core.Property) {
	if !l.IsEnabledFor(core.Trace) {
		return
	}
	l.log(core.Trace, nil, msg, nil, props, 1)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, props ...core.Property) {
	if !l.IsEnabledFor(core.Debug) {
		return
	}
	l.log(core.Debug, nil, msg, nil, props, 1)
}

// Info logs an info message.
func (l *Logger) Info(msg string, props ...core.Property) {
	if !l.IsEnabledFor(core.Info) {
		return
	}
	l.log(core.Info, nil, msg, nil, props, 1)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, props ...core.Property) {
	if !l.IsEnabledFor(core.Warn) {
		return
	}
	l.log(core.Warn, nil, msg, nil, props, 1)
}

// Error logs an error message. The err argument may be nil.
func (l *Logger) Error(err error, msg string, props ...core.Property) {
	if !l.IsEnabledFor(core.Error) {
		return
	}
	l.log(core.Error, err, msg, nil, props, 1)
}

// Fatal logs a fatal message. Unlike some frameworks, Fatal is only a
// severity here; it does not terminate the process.
func (l *Logger) Fatal(err error, msg string, props ...core.Property) {
	if !l.IsEnabledFor(core.Fatal) {
		return
	}
	l.log(core.Fatal, err, msg, nil, props, 1)
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.IsEnabledFor(core.Debug) {
		return
	}
	l.log(core.Debug, nil, fmt.Sprintf(format, args...), nil, nil, 1)
}

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	if !l.IsEnabledFor(core.Info) {
		return
	}
	l.log(core.Info, nil, fmt.Sprintf(format, args...), nil, nil, 1)
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	if !l.IsEnabledFor(core.Warn) {
		return
	}
	l.log(core.Warn, nil, fmt.Sprintf(format, args...), nil, nil, 1)
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if !l.IsEnabledFor(core.Error) {
		return
	}
	l.log(core.Error, nil, fmt.Sprintf(format, args...), nil, nil, 1)
}

// log builds, fixes, and dispatches one event. callerSkip counts
// frames between log and the application call site.
func (l *Logger) log(level core.Level, err error, msg string, render func() string, props []core.Property, callerSkip int) {
	props = mergeProperties(props)
	var e *core.Event
	if render != nil {
		e = core.NewLazyEvent(l.name, level, render, props...)
	} else {
		e = core.NewEvent(l.name, level, msg, props...)
	}
	if err != nil {
		e.ErrorText = err.Error()
	}

	flags := core.FixMessage | core.FixGoroutine
	if l.repo.captureCaller.Load() {
		flags |= core.FixCaller
	}
	e.Fix(flags, callerSkip+1)

	l.dispatch(e)
}

// dispatch walks this node and its ancestors, broadcasting the event
// to each node's appenders until a non-additive node stops the walk.
// An appender reachable through several attachment points is invoked
// once per attachment point; that mirrors the configured topology and
// is deliberately not deduplicated.
func (l *Logger) dispatch(e *core.Event) {
	l.repo.fireHooks(e.Level)

	invoked := 0
	depth := 0
	for n := l; n != nil; n = n.parent.Load() {
		invoked += n.appenders.Broadcast(e)
		if !n.additive.Load() {
			break
		}
		if depth++; depth > maxChainDepth {
			diag.Errorf("repository %q: dispatch walk from %q exceeds %d hops, assuming corruption",
				l.repo.name, l.name, maxChainDepth)
			break
		}
	}
	if invoked == 0 {
		l.repo.warnNoAppenders(l.name)
	}
}

// reset returns the node to its unconfigured state: inherited level,
// additive, no appenders. Called under the repository's structural
// lock; detached appenders are returned to the caller.
func (l *Logger) reset() []appender.Appender {
	if l == l.repo.root {
		level := l.repo.defaultLevel
		l.level.Store(&level)
	} else {
		l.level.Store(nil)
	}
	l.additive.Store(true)
	return l.appenders.RemoveAll()
}

package hierarchy

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/treelog/treelog/appender"
	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/diag"
)

// State is the lifecycle state of a repository.
type State int32

const (
	// StateUnconfigured is the initial state; events are dropped.
	StateUnconfigured State = iota
	// StateConfiguring marks a configuration operation in progress.
	StateConfiguring
	// StateConfigured is normal operation.
	StateConfigured
	// StateShutDown is terminal; log calls are silent no-ops.
	StateShutDown
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "Unconfigured"
	case StateConfiguring:
		return "Configuring"
	case StateConfigured:
		return "Configured"
	case StateShutDown:
		return "ShutDown"
	default:
		return "Unknown"
	}
}

// ConfigureMode selects how a configuration operation treats existing
// state.
type ConfigureMode int

const (
	// Merge adds to existing loggers and appenders without removing
	// anything configured earlier.
	Merge ConfigureMode = iota
	// Overwrite resets every node to its unconfigured state before the
	// new configuration is applied.
	Overwrite
)

// Listener receives repository lifecycle notifications. Callbacks run
// synchronously on the mutating goroutine and must not block.
type Listener interface {
	// LoggerCreated fires once when a logger node is first registered,
	// before application code can have logged through it.
	LoggerCreated(name string)
	// ConfigurationChanged fires when a configuration operation
	// completes; generation is the new configuration generation.
	ConfigurationChanged(generation uint64)
	// ShuttingDown fires at the start of Shutdown, before appenders
	// are closed.
	ShuttingDown()
}

// Hook is fired once for every emitted event at its severity level.
// Implementations must be non-blocking.
type Hook interface {
	Fire(level core.Level) error
}

// Repository owns every logger node of one logging domain: it creates
// and links nodes by dotted name, holds the root and the global
// threshold, and drives the configuration lifecycle. One repository is
// typically created per process (see Default) and lives until
// Shutdown.
type Repository struct {
	name         string
	defaultLevel core.Level

	// mu guards the node table and all parent links. Dispatch never
	// takes it; reads go through the atomics on each node.
	mu    sync.RWMutex
	nodes map[string]*Logger
	root  *Logger

	threshold     atomic.Pointer[core.Level]
	state         atomic.Int32
	captureCaller atomic.Bool

	// generation counts completed configuration operations.
	// levelEpoch additionally advances on any explicit level change or
	// re-parenting; it is the validity stamp for per-node effective
	// level caches.
	generation atomic.Uint64
	levelEpoch atomic.Uint64

	lmu       sync.Mutex
	listeners []Listener
	hooks     atomic.Pointer[[]Hook]

	noAppenderWarned  atomic.Bool
	unconfiguredNoted atomic.Bool
}

// RootLoggerName is the display name of the distinguished root node.
const RootLoggerName = "root"

// NewRepository creates an unconfigured repository. The root logger
// carries an explicit Debug level so that effective-level resolution
// always terminates.
func NewRepository(name string) *Repository {
	r := &Repository{
		name:         name,
		defaultLevel: core.Debug,
		nodes:        make(map[string]*Logger),
	}
	r.root = newLogger(r, RootLoggerName)
	rootLevel := r.defaultLevel
	r.root.level.Store(&rootLevel)
	threshold := core.All
	r.threshold.Store(&threshold)
	return r
}

// Name returns the repository name.
func (r *Repository) Name() string { return r.name }

// Root returns the root logger.
func (r *Repository) Root() *Logger { return r.root }

// State returns the current lifecycle state.
func (r *Repository) State() State { return State(r.state.Load()) }

// Configured reports whether the repository is in normal operation.
func (r *Repository) Configured() bool { return r.State() == StateConfigured }

// Generation returns the configuration generation counter. It advances
// by exactly one per completed configuration operation.
func (r *Repository) Generation() uint64 { return r.generation.Load() }

// Threshold returns the global floor level.
func (r *Repository) Threshold() core.Level { return *r.threshold.Load() }

// SetThreshold sets the global floor level. Events below it are never
// emitted, regardless of any node's level.
func (r *Repository) SetThreshold(level core.Level) {
	r.threshold.Store(&level)
}

// SetCaptureCaller controls whether events capture their call site.
// Off by default; capturing walks the stack on every emitted event.
func (r *Repository) SetCaptureCaller(on bool) {
	r.captureCaller.Store(on)
}

// Logger returns the node registered under name, creating and linking
// it on first request. The new node's parent is the longest already-
// registered prefix of name (ultimately the root), and existing
// descendants for which the new node is a closer ancestor are re-linked
// to it. Logger panics if name is empty; that is a programming error,
// not a configuration one.
func (r *Repository) Logger(name string) *Logger {
	if name == "" {
		panic("treelog: logger name must not be empty")
	}

	r.mu.RLock()
	n := r.nodes[name]
	r.mu.RUnlock()
	if n != nil {
		return n
	}

	r.mu.Lock()
	if n = r.nodes[name]; n != nil {
		r.mu.Unlock()
		return n
	}
	n = newLogger(r, name)
	n.parent.Store(r.findParentLocked(name))
	r.nodes[name] = n
	r.reparentLocked(n)
	r.mu.Unlock()

	r.notifyLoggerCreated(name)
	return n
}

// Exists returns the node registered under name without creating one.
func (r *Repository) Exists(name string) *Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nodes[name]
}

// Loggers returns all registered nodes, sorted by name. The root is
// not included; use Root.
func (r *Repository) Loggers() []*Logger {
	r.mu.RLock()
	out := make([]*Logger, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// findParentLocked walks the dotted ancestor names of name from
// longest to shortest and returns the first registered one, falling
// back to the root.
func (r *Repository) findParentLocked(name string) *Logger {
	for i := strings.LastIndexByte(name, '.'); i > 0; i = strings.LastIndexByte(name[:i], '.') {
		if p, ok := r.nodes[name[:i]]; ok {
			return p
		}
	}
	return r.root
}

// reparentLocked re-links existing descendants of the new node n whose
// current parent is a more distant ancestor. Inserting "a.b" after
// "a.b.c" exists must point "a.b.c" at "a.b".
func (r *Repository) reparentLocked(n *Logger) {
	prefix := n.name + "."
	for childName, child := range r.nodes {
		if !strings.HasPrefix(childName, prefix) {
			continue
		}
		cur := child.parent.Load()
		// cur is some ancestor of child. n is a closer one exactly
		// when cur is the root or a shorter dotted prefix than n.
		if cur == r.root || (cur != nil && len(cur.name) < len(n.name)) {
			child.parent.Store(n)
		}
	}
	// Re-linking changes inheritance paths.
	r.levelEpoch.Add(1)
}

// enabled is the repository half of IsEnabledFor: state and threshold.
func (r *Repository) enabled(level core.Level) bool {
	switch State(r.state.Load()) {
	case StateConfigured:
	case StateShutDown:
		return false
	default:
		if r.unconfiguredNoted.CompareAndSwap(false, true) {
			diag.Warnf("repository %q is not configured; events are dropped until a configuration is applied", r.name)
		}
		return false
	}
	return level.Ge(*r.threshold.Load())
}

// BeginConfigure starts a configuration operation. With Overwrite, all
// nodes are reset to their unconfigured state first and the detached
// appenders are closed. Calling BeginConfigure on a shut-down
// repository is reported and ignored.
func (r *Repository) BeginConfigure(mode ConfigureMode) {
	if r.State() == StateShutDown {
		diag.Warnf("repository %q is shut down; ignoring configuration", r.name)
		return
	}
	r.state.Store(int32(StateConfiguring))
	if mode == Overwrite {
		r.closeDetached(r.resetNodes())
	}
}

// EndConfigure completes a configuration operation: the repository
// enters Configured, the generation counter advances by one, and
// listeners are notified.
func (r *Repository) EndConfigure() {
	if r.State() == StateShutDown {
		return
	}
	r.state.Store(int32(StateConfigured))
	r.levelEpoch.Add(1)
	gen := r.generation.Add(1)
	r.noAppenderWarned.Store(false)
	r.notifyConfigurationChanged(gen)
}

// ResetConfiguration returns every node to its unconfigured state
// (level unset, additive, appenders detached and closed) and the
// repository to Unconfigured. Nodes themselves are never removed:
// outstanding Logger references in application code stay valid.
func (r *Repository) ResetConfiguration() {
	if r.State() == StateShutDown {
		return
	}
	r.closeDetached(r.resetNodes())
	r.state.Store(int32(StateUnconfigured))
}

// resetNodes clears per-node configuration and returns the detached
// appenders, deduplicated by identity.
func (r *Repository) resetNodes() []appender.Appender {
	r.mu.Lock()
	defer r.mu.Unlock()

	threshold := core.All
	r.threshold.Store(&threshold)

	seen := make(map[appender.Appender]struct{})
	var detached []appender.Appender
	collect := func(n *Logger) {
		for _, a := range n.reset() {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			detached = append(detached, a)
		}
	}
	collect(r.root)
	for _, n := range r.nodes {
		collect(n)
	}
	r.levelEpoch.Add(1)
	return detached
}

func (r *Repository) closeDetached(detached []appender.Appender) {
	for _, a := range detached {
		if err := a.Close(); err != nil {
			diag.Errorf("repository %q: closing appender %q: %v", r.name, a.Name(), err)
		}
	}
}

// Shutdown flushes and closes every distinct appender reachable from
// any node exactly once and moves the repository to its terminal
// state. Log calls after Shutdown are silent no-ops. Shutdown is
// idempotent; the aggregated close error is returned and also reported
// through diagnostics.
func (r *Repository) Shutdown() error {
	if State(r.state.Swap(int32(StateShutDown))) == StateShutDown {
		return nil
	}
	r.notifyShuttingDown()

	var err error
	for _, a := range r.resetNodes() {
		err = multierr.Append(err, a.Close())
	}
	if err != nil {
		diag.Errorf("repository %q: shutdown: %v", r.name, err)
	}
	return err
}

// AddListener registers a lifecycle listener.
func (r *Repository) AddListener(l Listener) {
	if l == nil {
		return
	}
	r.lmu.Lock()
	defer r.lmu.Unlock()
	r.listeners = append(r.listeners, l)
}

// RemoveListener unregisters a previously added listener.
func (r *Repository) RemoveListener(l Listener) {
	r.lmu.Lock()
	defer r.lmu.Unlock()
	for i, x := range r.listeners {
		if x == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// AddHook registers a hook fired for every emitted event.
func (r *Repository) AddHook(h Hook) {
	if h == nil {
		return
	}
	r.lmu.Lock()
	defer r.lmu.Unlock()
	cur := r.hooksSnapshot()
	next := make([]Hook, len(cur)+1)
	copy(next, cur)
	next[len(cur)] = h
	r.hooks.Store(&next)
}

func (r *Repository) hooksSnapshot() []Hook {
	if p := r.hooks.Load(); p != nil {
		return *p
	}
	return nil
}

func (r *Repository) fireHooks(level core.Level) {
	for _, h := range r.hooksSnapshot() {
		if err := h.Fire(level); err != nil {
			diag.Errorf("repository %q: hook failed: %v", r.name, err)
		}
	}
}

func (r *Repository) snapshotListeners() []Listener {
	r.lmu.Lock()
	defer r.lmu.Unlock()
	out := make([]Listener, len(r.listeners))
	copy(out, r.listeners)
	return out
}

func (r *Repository) notifyLoggerCreated(name string) {
	for _, l := range r.snapshotListeners() {
		r.safeNotify(func() { l.LoggerCreated(name) })
	}
}

func (r *Repository) notifyConfigurationChanged(generation uint64) {
	for _, l := range r.snapshotListeners() {
		r.safeNotify(func() { l.ConfigurationChanged(generation) })
	}
}

func (r *Repository) notifyShuttingDown() {
	for _, l := range r.snapshotListeners() {
		r.safeNotify(func() { l.ShuttingDown() })
	}
}

func (r *Repository) safeNotify(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			diag.Errorf("repository %q: listener panicked: %v", r.name, rec)
		}
	}()
	fn()
}

// warnNoAppenders emits the one-time "no appenders" diagnostic.
func (r *Repository) warnNoAppenders(loggerName string) {
	if r.noAppenderWarned.CompareAndSwap(false, true) {
		diag.Warnf("no appenders could be found for logger %q in repository %q; configure at least one appender on the logger or an ancestor", loggerName, r.name)
	}
}

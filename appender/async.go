package appender

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/filter"
)

// OverflowPolicy defines what Append does when the async queue is full.
type OverflowPolicy int

const (
	// DropNewest drops the incoming event.
	DropNewest OverflowPolicy = iota
	// DropOldest evicts the oldest queued event to make room.
	DropOldest
	// Block waits for space up to BlockTimeout, then falls back to a
	// synchronous append so the event is not lost.
	Block
)

// String returns the string representation of the policy.
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy drops routine events when the queue is full but
// blocks briefly for errors so they are never silently lost.
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.Trace: DropNewest,
		core.Debug: DropNewest,
		core.Info:  DropNewest,
		core.Warn:  DropNewest,
		core.Error: Block,
		core.Fatal: Block,
	}
}

// Stats tracks async appender queue behavior.
type Stats struct {
	Dropped   atomic.Uint64
	Blocked   atomic.Uint64
	Processed atomic.Uint64
}

// AsyncConfig holds configuration for an Async appender.
type AsyncConfig struct {
	// Name identifies the appender; required.
	Name string
	// Target receives the forwarded events; required.
	Target Appender
	// BufferSize is the queue capacity (default: 1000).
	BufferSize int
	// OverflowPolicy maps levels to queue-full behavior
	// (default: DefaultLevelPolicy).
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout bounds the Block policy wait (default: 100ms).
	BlockTimeout time.Duration
	// DrainTimeout bounds queue draining on Close (default: 5s).
	DrainTimeout time.Duration
}

// Async forwards events to a target appender through a bounded queue
// serviced by a dedicated goroutine, decoupling the caller's hot path
// from the target's I/O. Events must be fixed before they reach an
// Async appender; the hierarchy does this on every dispatch.
type Async struct {
	name           string
	target         Appender
	chain          filter.Chain
	queue          chan *core.Event
	closed         chan struct{}
	wg             sync.WaitGroup
	overflowPolicy map[core.Level]OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	stats          Stats
	closeOnce      sync.Once
	closeErr       error
}

// NewAsync creates an Async appender wrapping target and starts its
// worker goroutine.
func NewAsync(cfg AsyncConfig) *Async {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
	a := &Async{
		name:           cfg.Name,
		target:         cfg.Target,
		queue:          make(chan *core.Event, cfg.BufferSize),
		closed:         make(chan struct{}),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
	}
	a.wg.Add(1)
	go a.process()
	return a
}

// Name implements the Appender interface.
func (a *Async) Name() string { return a.name }

// FilterChain implements the Filtered interface.
func (a *Async) FilterChain() *filter.Chain { return &a.chain }

// QueueStats returns a point-in-time view of the queue counters.
func (a *Async) QueueStats() (dropped, blocked, processed uint64) {
	return a.stats.Dropped.Load(), a.stats.Blocked.Load(), a.stats.Processed.Load()
}

// Append implements the Appender interface. It enqueues the event and
// applies the per-level overflow policy when the queue is full.
func (a *Async) Append(e *core.Event) error {
	select {
	case <-a.closed:
		return nil
	default:
	}

	policy, ok := a.overflowPolicy[e.Level]
	if !ok {
		policy = DropNewest
	}

	select {
	case a.queue <- e:
		return nil
	default:
	}

	switch policy {
	case DropOldest:
		select {
		case <-a.queue:
			a.stats.Dropped.Add(1)
		default:
		}
		select {
		case a.queue <- e:
		default:
			a.stats.Dropped.Add(1)
		}
		return nil
	case Block:
		timer := time.NewTimer(a.blockTimeout)
		defer timer.Stop()
		select {
		case a.queue <- e:
			return nil
		case <-timer.C:
			// Timed out waiting for space; deliver synchronously
			// rather than lose the event.
			a.stats.Blocked.Add(1)
			return a.target.Append(e)
		case <-a.closed:
			return a.target.Append(e)
		}
	default: // DropNewest
		a.stats.Dropped.Add(1)
		return nil
	}
}

func (a *Async) process() {
	defer a.wg.Done()
	for e := range a.queue {
		Do(a.target, e)
		a.stats.Processed.Add(1)
	}
}

// Close implements the Appender interface. It stops accepting events,
// drains the queue up to DrainTimeout, and closes the target. Close is
// idempotent.
func (a *Async) Close() error {
	a.closeOnce.Do(func() {
		close(a.closed)
		close(a.queue)

		done := make(chan struct{})
		go func() {
			a.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(a.drainTimeout):
		}
		a.closeErr = a.target.Close()
	})
	return a.closeErr
}

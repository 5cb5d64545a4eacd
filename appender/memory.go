package appender

import (
	"sync"

	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/filter"
)

// Memory records every accepted event in order. It is the standard
// sink for tests and for short-lived capture scenarios.
type Memory struct {
	name  string
	chain filter.Chain

	mu         sync.Mutex
	events     []*core.Event
	closeCount int
}

// NewMemory creates a Memory appender with the given name.
func NewMemory(name string) *Memory {
	return &Memory{name: name}
}

// Name implements the Appender interface.
func (m *Memory) Name() string { return m.name }

// FilterChain implements the Filtered interface.
func (m *Memory) FilterChain() *filter.Chain { return &m.chain }

// Append implements the Appender interface.
func (m *Memory) Append(e *core.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

// Close implements the Appender interface.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCount++
	return nil
}

// Events returns a copy of the recorded events in append order.
func (m *Memory) Events() []*core.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*core.Event, len(m.events))
	copy(out, m.events)
	return out
}

// Len returns the number of recorded events.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// CloseCount returns how many times Close has been called.
func (m *Memory) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCount
}

// Reset discards all recorded events.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

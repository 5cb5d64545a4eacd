package appender

import (
	"sync"
	"sync/atomic"

	"github.com/treelog/treelog/core"
)

// Attachments is the ordered set of appenders attached to one logger
// node. Insertion order is invocation order and duplicates (by
// identity) are rejected. Mutations build a fresh slice and publish it
// atomically, so a concurrent dispatch observes either the pre- or the
// post-mutation set, never a partially-applied one. The zero value is
// an empty, ready-to-use set.
type Attachments struct {
	mu   sync.Mutex // serializes mutations only
	list atomic.Pointer[[]Appender]
}

// Add appends a to the end of the set unless the same appender object
// is already attached.
func (s *Attachments) Add(a Appender) {
	if a == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.snapshot()
	for _, x := range cur {
		if x == a {
			return
		}
	}
	next := make([]Appender, len(cur)+1)
	copy(next, cur)
	next[len(cur)] = a
	s.list.Store(&next)
}

// Remove detaches a by identity and reports whether it was attached.
func (s *Attachments) Remove(a Appender) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.snapshot()
	for i, x := range cur {
		if x == a {
			s.removeAt(cur, i)
			return true
		}
	}
	return false
}

// RemoveByName detaches the first appender with the given name and
// returns it, or nil if no such appender is attached.
func (s *Attachments) RemoveByName(name string) Appender {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.snapshot()
	for i, x := range cur {
		if x.Name() == name {
			s.removeAt(cur, i)
			return x
		}
	}
	return nil
}

// RemoveAll detaches every appender and returns them in attachment
// order. The appenders are not closed; ownership of that decision
// stays with the caller, since appenders may be shared across nodes.
func (s *Attachments) RemoveAll() []Appender {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.snapshot()
	s.list.Store(&[]Appender{})
	return cur
}

// Lookup returns the first attached appender with the given name, or
// nil if there is none.
func (s *Attachments) Lookup(name string) Appender {
	for _, x := range s.Snapshot() {
		if x.Name() == name {
			return x
		}
	}
	return nil
}

// Snapshot returns the current attachment list without locking. The
// returned slice must not be modified.
func (s *Attachments) Snapshot() []Appender {
	if p := s.list.Load(); p != nil {
		return *p
	}
	return nil
}

// Broadcast feeds e to every attached appender in order, subject to
// each appender's filter chain, and returns how many were invoked.
func (s *Attachments) Broadcast(e *core.Event) int {
	n := 0
	for _, a := range s.Snapshot() {
		if Do(a, e) {
			n++
		}
	}
	return n
}

// snapshot and removeAt are called with mu held.
func (s *Attachments) snapshot() []Appender {
	if p := s.list.Load(); p != nil {
		return *p
	}
	return nil
}

func (s *Attachments) removeAt(cur []Appender, i int) {
	next := make([]Appender, 0, len(cur)-1)
	next = append(next, cur[:i]...)
	next = append(next, cur[i+1:]...)
	s.list.Store(&next)
}

package filter

import (
	"sync"

	"github.com/treelog/treelog/core"
)

// Decision is the outcome of a single filter for one event.
type Decision int8

const (
	// Deny drops the event; no later filter in the chain is consulted.
	Deny Decision = iota - 1
	// Neutral defers to the next filter in the chain.
	Neutral
	// Accept appends the event; no later filter in the chain is consulted.
	Accept
)

// String returns the name of the decision.
func (d Decision) String() string {
	switch d {
	case Deny:
		return "Deny"
	case Neutral:
		return "Neutral"
	case Accept:
		return "Accept"
	default:
		return "Unknown"
	}
}

// Filter is a single accept/deny/neutral predicate over events.
// Implementations must be safe for concurrent use; they are called from
// every goroutine that logs.
type Filter interface {
	Decide(e *core.Event) Decision
}

// Chain is an ordered sequence of filters evaluated with short-circuit
// three-valued semantics: the first Deny drops the event, the first
// Accept appends it, and a chain exhausted with only Neutral results
// accepts implicitly. The zero value is an empty chain and accepts
// everything.
type Chain struct {
	mu      sync.Mutex
	filters []Filter
}

// Add appends f to the end of the chain.
func (c *Chain) Add(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = append(c.filters, f)
}

// Clear removes all filters from the chain.
func (c *Chain) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = nil
}

// Filters returns a copy of the chain in evaluation order.
func (c *Chain) Filters() []Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Filter, len(c.filters))
	copy(out, c.filters)
	return out
}

// Decide folds the event through the chain.
func (c *Chain) Decide(e *core.Event) Decision {
	c.mu.Lock()
	filters := c.filters
	c.mu.Unlock()
	for _, f := range filters {
		switch f.Decide(e) {
		case Deny:
			return Deny
		case Accept:
			return Accept
		}
	}
	return Accept
}

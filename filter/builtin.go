package filter

import (
	"strings"

	"github.com/treelog/treelog/core"
)

// LevelRange accepts events whose level lies in [Min, Max] and denies
// everything outside the range. When AcceptOnMatch is false a matching
// event passes through as Neutral instead.
type LevelRange struct {
	Min           core.Level
	Max           core.Level
	AcceptOnMatch bool
}

// NewLevelRange returns a LevelRange with AcceptOnMatch enabled.
func NewLevelRange(min, max core.Level) *LevelRange {
	return &LevelRange{Min: min, Max: max, AcceptOnMatch: true}
}

// Decide implements the Filter interface.
func (f *LevelRange) Decide(e *core.Event) Decision {
	if !e.Level.Ge(f.Min) || e.Level.Compare(f.Max) > 0 {
		return Deny
	}
	if f.AcceptOnMatch {
		return Accept
	}
	return Neutral
}

// LevelMatch accepts (or denies, when AcceptOnMatch is false) events at
// exactly the configured level and is Neutral otherwise.
type LevelMatch struct {
	Level         core.Level
	AcceptOnMatch bool
}

// Decide implements the Filter interface.
func (f *LevelMatch) Decide(e *core.Event) Decision {
	if e.Level.Compare(f.Level) != 0 {
		return Neutral
	}
	if f.AcceptOnMatch {
		return Accept
	}
	return Deny
}

// StringMatch matches events whose rendered message contains Substr.
// A match accepts (or denies, when AcceptOnMatch is false); a miss is
// Neutral so the rest of the chain decides.
type StringMatch struct {
	Substr        string
	AcceptOnMatch bool
}

// Decide implements the Filter interface.
func (f *StringMatch) Decide(e *core.Event) Decision {
	if f.Substr == "" || !strings.Contains(e.Rendered(), f.Substr) {
		return Neutral
	}
	if f.AcceptOnMatch {
		return Accept
	}
	return Deny
}

// DenyAll denies every event. Placed at the end of a chain it converts
// the implicit accept into a default deny.
type DenyAll struct{}

// Decide implements the Filter interface.
func (DenyAll) Decide(*core.Event) Decision {
	return Deny
}

// Func adapts a plain function to the Filter interface.
type Func func(e *core.Event) Decision

// Decide implements the Filter interface.
func (f Func) Decide(e *core.Event) Decision {
	return f(e)
}

package filter

import (
	"testing"

	"github.com/treelog/treelog/core"
)

func event(level core.Level, msg string) *core.Event {
	return core.NewEvent("test", level, msg)
}

func TestChain_EmptyAccepts(t *testing.T) {
	var c Chain
	if got := c.Decide(event(core.Debug, "x")); got != Accept {
		t.Errorf("empty chain = %s, want Accept", got)
	}
}

func TestChain_AllNeutralAccepts(t *testing.T) {
	var c Chain
	c.Add(Func(func(*core.Event) Decision { return Neutral }))
	c.Add(Func(func(*core.Event) Decision { return Neutral }))
	if got := c.Decide(event(core.Info, "x")); got != Accept {
		t.Errorf("all-neutral chain = %s, want Accept", got)
	}
}

func TestChain_ShortCircuitOrder(t *testing.T) {
	var evaluated []string
	record := func(name string, d Decision) Filter {
		return Func(func(*core.Event) Decision {
			evaluated = append(evaluated, name)
			return d
		})
	}

	var c Chain
	c.Add(record("first", Neutral))
	c.Add(record("second", Deny))
	c.Add(record("third", Accept))

	if got := c.Decide(event(core.Info, "x")); got != Deny {
		t.Fatalf("chain = %s, want Deny", got)
	}
	if len(evaluated) != 2 || evaluated[0] != "first" || evaluated[1] != "second" {
		t.Errorf("evaluated = %v, want [first second]", evaluated)
	}
}

func TestChain_StringMatchThenDenyAll(t *testing.T) {
	var c Chain
	c.Add(&StringMatch{Substr: "database", AcceptOnMatch: true})
	c.Add(DenyAll{})

	if got := c.Decide(event(core.Info, "database connection pool ready")); got != Accept {
		t.Errorf("matching message = %s, want Accept", got)
	}
	if got := c.Decide(event(core.Info, "http listener ready")); got != Deny {
		t.Errorf("non-matching message = %s, want Deny", got)
	}
}

func TestLevelRange(t *testing.T) {
	var c Chain
	c.Add(NewLevelRange(core.Info, core.Fatal))

	tests := []struct {
		level core.Level
		want  Decision
	}{
		{core.Trace, Deny},
		{core.Debug, Deny},
		{core.Info, Accept},
		{core.Warn, Accept},
		{core.Error, Accept},
		{core.Fatal, Accept},
		{core.Off, Deny},
	}
	for _, tt := range tests {
		if got := c.Decide(event(tt.level, "x")); got != tt.want {
			t.Errorf("level %s = %s, want %s", tt.level, got, tt.want)
		}
	}
}

func TestLevelRange_NeutralOnMatch(t *testing.T) {
	f := &LevelRange{Min: core.Info, Max: core.Fatal}
	if got := f.Decide(event(core.Warn, "x")); got != Neutral {
		t.Errorf("in-range with AcceptOnMatch=false = %s, want Neutral", got)
	}
}

func TestLevelMatch(t *testing.T) {
	f := &LevelMatch{Level: core.Warn, AcceptOnMatch: true}
	if got := f.Decide(event(core.Warn, "x")); got != Accept {
		t.Errorf("match = %s, want Accept", got)
	}
	if got := f.Decide(event(core.Error, "x")); got != Neutral {
		t.Errorf("miss = %s, want Neutral", got)
	}

	deny := &LevelMatch{Level: core.Warn}
	if got := deny.Decide(event(core.Warn, "x")); got != Deny {
		t.Errorf("match with AcceptOnMatch=false = %s, want Deny", got)
	}
}

func TestStringMatch_DenyOnMatch(t *testing.T) {
	f := &StringMatch{Substr: "password"}
	if got := f.Decide(event(core.Info, "user password rotated")); got != Deny {
		t.Errorf("match with AcceptOnMatch=false = %s, want Deny", got)
	}
	if got := f.Decide(event(core.Info, "user logged in")); got != Neutral {
		t.Errorf("miss = %s, want Neutral", got)
	}
}

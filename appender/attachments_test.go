package appender

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/filter"
)

func names(as []Appender) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Name()
	}
	return out
}

func TestAttachments_OrderAndDedupe(t *testing.T) {
	a1 := NewMemory("a1")
	a2 := NewMemory("a2")
	a3 := NewMemory("a3")

	var s Attachments
	s.Add(a1)
	s.Add(a2)
	s.Add(a3)
	s.Add(a2) // same object, must not duplicate

	want := []string{"a1", "a2", "a3"}
	if diff := cmp.Diff(want, names(s.Snapshot())); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestAttachments_SameNameDifferentObjects(t *testing.T) {
	// Dedupe is by identity, not by name.
	a1 := NewMemory("dup")
	a2 := NewMemory("dup")

	var s Attachments
	s.Add(a1)
	s.Add(a2)
	if len(s.Snapshot()) != 2 {
		t.Fatalf("got %d appenders, want 2", len(s.Snapshot()))
	}

	if got := s.RemoveByName("dup"); got != Appender(a1) {
		t.Error("RemoveByName should remove the first match")
	}
	if got := s.Lookup("dup"); got != Appender(a2) {
		t.Error("second appender should remain attached")
	}
}

func TestAttachments_RemoveAll(t *testing.T) {
	a1 := NewMemory("a1")
	a2 := NewMemory("a2")

	var s Attachments
	s.Add(a1)
	s.Add(a2)

	removed := s.RemoveAll()
	if diff := cmp.Diff([]string{"a1", "a2"}, names(removed)); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
	if len(s.Snapshot()) != 0 {
		t.Error("set should be empty after RemoveAll")
	}
	// RemoveAll must not close anything; shared appenders are closed
	// by the repository, once.
	if a1.CloseCount() != 0 || a2.CloseCount() != 0 {
		t.Error("RemoveAll must not close appenders")
	}
}

func TestAttachments_Broadcast(t *testing.T) {
	accepted := NewMemory("accepted")
	denied := NewMemory("denied")
	denied.FilterChain().Add(filter.DenyAll{})

	var s Attachments
	s.Add(accepted)
	s.Add(denied)

	e := core.NewEvent("x", core.Info, "hello")
	if got := s.Broadcast(e); got != 1 {
		t.Errorf("Broadcast invoked %d appenders, want 1", got)
	}
	if accepted.Len() != 1 {
		t.Errorf("accepted sink got %d events, want 1", accepted.Len())
	}
	if denied.Len() != 0 {
		t.Errorf("denied sink got %d events, want 0", denied.Len())
	}
}

type faulty struct{ name string }

func (f *faulty) Name() string               { return f.name }
func (f *faulty) Append(e *core.Event) error { panic("sink exploded") }
func (f *faulty) Close() error               { return errors.New("close failed") }

func TestDo_ConfinesPanics(t *testing.T) {
	ok := NewMemory("ok")

	var s Attachments
	s.Add(&faulty{name: "bad"})
	s.Add(ok)

	// A panicking appender must not stop delivery to the next one.
	e := core.NewEvent("x", core.Error, "boom")
	s.Broadcast(e)
	if ok.Len() != 1 {
		t.Errorf("healthy sink got %d events, want 1", ok.Len())
	}
}

package hierarchy

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/treelog/treelog/appender"
	"github.com/treelog/treelog/core"
)

func TestGlobalProperties_StampedOntoEvents(t *testing.T) {
	SetGlobalProperty("host", "node-1")
	SetGlobalProperty("region", "eu")
	defer RemoveGlobalProperty("host")
	defer RemoveGlobalProperty("region")

	r := NewRepository("test")
	configure(r)
	sink := appender.NewMemory("sink")
	r.Root().AttachAppender(sink)

	r.Logger("app").Info("hello", core.Property{Key: "user", Value: "ada"})

	e := sink.Events()[0]
	want := []core.Property{
		{Key: "user", Value: "ada"},
		{Key: "host", Value: "node-1"},
		{Key: "region", Value: "eu"},
	}
	if diff := cmp.Diff(want, e.Properties); diff != "" {
		t.Errorf("properties mismatch (-want +got):\n%s", diff)
	}
}

func TestGlobalProperties_LocalShadowsAmbient(t *testing.T) {
	SetGlobalProperty("host", "node-1")
	defer RemoveGlobalProperty("host")

	r := NewRepository("test")
	configure(r)
	sink := appender.NewMemory("sink")
	r.Root().AttachAppender(sink)

	r.Logger("app").Info("hello", core.Property{Key: "host", Value: "override"})

	e := sink.Events()[0]
	if v, _ := e.Property("host"); v != "override" {
		t.Errorf("host = %v, want the event-local value", v)
	}
	if len(e.Properties) != 1 {
		t.Errorf("got %d properties, want 1 (shadowed ambient omitted)", len(e.Properties))
	}
}

func TestSetGlobalProperty_ReplaceKeepsOrder(t *testing.T) {
	SetGlobalProperty("a", 1)
	SetGlobalProperty("b", 2)
	SetGlobalProperty("a", 3)
	defer RemoveGlobalProperty("a")
	defer RemoveGlobalProperty("b")

	want := []core.Property{{Key: "a", Value: 3}, {Key: "b", Value: 2}}
	if diff := cmp.Diff(want, GlobalProperties()); diff != "" {
		t.Errorf("ambient set mismatch (-want +got):\n%s", diff)
	}
}

package hierarchy

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/treelog/treelog/appender"
	"github.com/treelog/treelog/core"
)

func TestMetrics_CountsEmittedEvents(t *testing.T) {
	r := NewRepository("test")
	configure(r)
	r.Root().AttachAppender(appender.NewMemory("sink"))

	m := NewMetrics("treelog_test")
	if err := m.Register(prometheus.NewRegistry()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	r.AddHook(m)

	log := r.Logger("app")
	log.Info("one")
	log.Info("two")
	log.Warn("three")
	log.Error(nil, "four")
	log.Debug("suppressed-by-nothing") // root default is DEBUG, so emitted

	if got := testutil.ToFloat64(m.InfoCount); got != 2 {
		t.Errorf("info count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.WarnCount); got != 1 {
		t.Errorf("warn count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ErrorCount); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.DebugCount); got != 1 {
		t.Errorf("debug count = %v, want 1", got)
	}
}

func TestMetrics_NotFiredForSuppressedEvents(t *testing.T) {
	r := NewRepository("test")
	configure(r)
	r.Root().SetLevel(core.Error)
	r.Root().AttachAppender(appender.NewMemory("sink"))

	m := NewMetrics("treelog_test")
	r.AddHook(m)

	r.Logger("app").Info("suppressed")
	if got := testutil.ToFloat64(m.InfoCount); got != 0 {
		t.Errorf("info count = %v, want 0 for suppressed event", got)
	}
}

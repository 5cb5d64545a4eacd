package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestWarnfAndErrorf(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)

	Warnf("appender %q misbehaved", "console")
	Errorf("sink failed: %v", "disk full")

	out := buf.String()
	if !strings.Contains(out, `treelog: WARN: appender "console" misbehaved`) {
		t.Errorf("missing warning line:\n%s", out)
	}
	if !strings.Contains(out, "treelog: ERROR: sink failed: disk full") {
		t.Errorf("missing error line:\n%s", out)
	}
}

func TestSetEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)
	defer SetEnabled(true)

	SetEnabled(false)
	Warnf("silenced")
	if buf.Len() != 0 {
		t.Errorf("disabled diagnostics still wrote: %q", buf.String())
	}

	SetEnabled(true)
	Warnf("audible")
	if !strings.Contains(buf.String(), "audible") {
		t.Error("re-enabled diagnostics did not write")
	}
}

type panicWriter struct{}

func (panicWriter) Write([]byte) (int, error) { panic("broken sink") }

func TestBrokenSinkDoesNotPanic(t *testing.T) {
	SetWriter(panicWriter{})
	defer SetWriter(nil)

	// Must not propagate the panic.
	Errorf("this goes nowhere")
}

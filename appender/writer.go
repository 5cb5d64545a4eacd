package appender

import (
	"io"
	"os"
	"sync"

	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/filter"
)

// WriterConfig holds configuration for a Writer appender.
type WriterConfig struct {
	// Name identifies the appender; required.
	Name string
	// Target to write to (default: os.Stderr).
	Target io.Writer
	// Layout to render with (default: TextLayout).
	Layout Layout
}

// Writer appends rendered events to an io.Writer behind a mutex. It is
// the console appender when pointed at stderr/stdout and a plain file
// appender when pointed at an *os.File.
type Writer struct {
	name   string
	layout Layout
	chain  filter.Chain

	mu     sync.Mutex
	target io.Writer
	closed bool
}

// NewWriter creates a Writer appender.
func NewWriter(cfg WriterConfig) *Writer {
	if cfg.Target == nil {
		cfg.Target = os.Stderr
	}
	if cfg.Layout == nil {
		cfg.Layout = &TextLayout{}
	}
	return &Writer{
		name:   cfg.Name,
		layout: cfg.Layout,
		target: cfg.Target,
	}
}

// Name implements the Appender interface.
func (w *Writer) Name() string { return w.name }

// FilterChain implements the Filtered interface.
func (w *Writer) FilterChain() *filter.Chain { return &w.chain }

// Append implements the Appender interface.
func (w *Writer) Append(e *core.Event) error {
	buf := w.layout.Format(e)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	_, err := w.target.Write(buf)
	return err
}

// Close implements the Appender interface. Close syncs the target when
// it is a file and is idempotent. The target itself is not closed; the
// appender does not own writers handed to it.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if f, ok := w.target.(*os.File); ok && f != os.Stderr && f != os.Stdout {
		return f.Sync()
	}
	return nil
}

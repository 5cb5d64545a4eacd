package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var (
	mu      sync.Mutex
	sink    io.Writer = os.Stderr
	enabled atomic.Bool
)

func init() {
	enabled.Store(true)
}

// SetWriter redirects internal diagnostics to w. Passing nil restores
// the default sink (stderr).
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	sink = w
}

// SetEnabled turns internal diagnostics on or off.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Warnf reports a recoverable internal condition, such as a skipped
// configuration directive or a misbehaving sink.
func Warnf(format string, args ...interface{}) {
	write("WARN", format, args...)
}

// Errorf reports an internal failure. The failure never propagates to
// the application; this channel is its only trace.
func Errorf(format string, args ...interface{}) {
	write("ERROR", format, args...)
}

func write(level, format string, args ...interface{}) {
	if !enabled.Load() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	// A broken diagnostics sink must not take the process down.
	defer func() { _ = recover() }()
	fmt.Fprintf(sink, "treelog: %s: %s\n", level, fmt.Sprintf(format, args...))
}

package core

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Property is a single key/value pair attached to an event. Properties
// keep their insertion order so that rendering is deterministic.
type Property struct {
	Key   string
	Value interface{}
}

// FixFlags marks which lazily-computed event fields have been captured.
type FixFlags uint8

const (
	// FixMessage renders and caches the message text.
	FixMessage FixFlags = 1 << iota
	// FixCaller captures the file/line/function of the log call site.
	FixCaller
	// FixGoroutine captures the id of the calling goroutine.
	FixGoroutine

	// FixNone captures nothing.
	FixNone FixFlags = 0
	// FixAll captures every lazily-computed field.
	FixAll = FixMessage | FixCaller | FixGoroutine
)

// CallerInfo identifies the source location of a log call.
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// Event is an immutable snapshot of one log call. Appenders may read
// and render it, possibly repeatedly, but must never modify it. After
// Fix has captured the volatile fields the event remains valid once the
// originating call frame is gone, so it can safely cross goroutines or
// sit in an async queue.
type Event struct {
	LoggerName  string
	Level       Level
	Timestamp   time.Time // UTC
	ErrorText   string
	Properties  []Property
	Caller      CallerInfo
	GoroutineID uint64

	message string
	render  func() string
	fixed   FixFlags
}

// NewEvent creates an event with an eagerly rendered message.
func NewEvent(loggerName string, level Level, msg string, props ...Property) *Event {
	e := newEvent(loggerName, level, props)
	e.message = msg
	e.fixed |= FixMessage
	return e
}

// NewLazyEvent creates an event whose message is rendered on demand.
// The render function runs at most once if the event is fixed with
// FixMessage; otherwise it may run once per appender.
func NewLazyEvent(loggerName string, level Level, render func() string, props ...Property) *Event {
	e := newEvent(loggerName, level, props)
	e.render = render
	return e
}

func newEvent(loggerName string, level Level, props []Property) *Event {
	return &Event{
		LoggerName: loggerName,
		Level:      level,
		Timestamp:  time.Now().UTC(),
		Properties: props,
	}
}

// Fix captures the requested volatile fields into the event. callerSkip
// counts stack frames above Fix to skip when FixCaller is requested,
// as for runtime.Caller. Fix is idempotent per flag.
func (e *Event) Fix(flags FixFlags, callerSkip int) {
	if flags&FixMessage != 0 && e.fixed&FixMessage == 0 {
		if e.render != nil {
			e.message = e.render()
			e.render = nil
		}
		e.fixed |= FixMessage
	}
	if flags&FixCaller != 0 && e.fixed&FixCaller == 0 {
		e.Caller = GetCaller(callerSkip + 1)
		e.fixed |= FixCaller
	}
	if flags&FixGoroutine != 0 && e.fixed&FixGoroutine == 0 {
		e.GoroutineID = goroutineID()
		e.fixed |= FixGoroutine
	}
}

// Fixed reports which volatile fields have been captured.
func (e *Event) Fixed() FixFlags {
	return e.fixed
}

// Rendered returns the message text. For a lazy event that has not been
// fixed, the render function is invoked on each call.
func (e *Event) Rendered() string {
	if e.fixed&FixMessage != 0 || e.render == nil {
		return e.message
	}
	return e.render()
}

// Property returns the value for key and whether it is present. Lookup
// is linear; events carry few properties.
func (e *Event) Property(key string) (interface{}, bool) {
	for _, p := range e.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// GetCaller retrieves caller information, skipping the given number of
// stack frames above GetCaller itself.
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallerInfo{}
	}
	var funcName string
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
	}
	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}

// goroutineID parses the current goroutine id from the stack header
// ("goroutine 123 [running]:"). Only used during Fix, off the per-
// appender hot path.
func goroutineID() uint64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	s := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	if i := strings.IndexByte(s, ' '); i > 0 {
		if id, err := strconv.ParseUint(s[:i], 10, 64); err == nil {
			return id
		}
	}
	return 0
}

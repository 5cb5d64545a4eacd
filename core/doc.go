// Package core defines the value types shared across the treelog
// framework: the Level type for severity ordering and the Event type
// that represents a single log call.
//
// Both types are immutable once constructed (for Event, once its Fix
// step has run), which makes them freely shareable between goroutines
// without synchronization. Everything mutable in the framework lives in
// the hierarchy and appender packages behind their own locks.
//
// Event supports lazy message rendering: a log call can hand over a
// render function instead of a string, and the text is only produced if
// some appender actually consumes the event. The Fix step pins the
// volatile parts of an event (rendered message, call site, goroutine
// id) so the event stays valid after the originating call returns.
package core

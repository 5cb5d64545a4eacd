// Package appender defines the sink-facing side of treelog: the
// Appender interface, the ordered Attachments set that logger nodes
// hold, and the built-in sinks.
//
// An appender is an opaque capability from the hierarchy's point of
// view. It filters events through its own filter chain, renders them,
// and writes them somewhere; it never knows which loggers reference it.
// The Do helper enforces the delivery contract: filter first, confine
// panics and errors to the diagnostic channel, and report whether the
// appender was actually invoked.
//
// Built-in sinks:
//
//   - Writer renders events through a Layout onto any io.Writer.
//   - Memory records events in order, mainly for tests.
//   - Async forwards to another appender through a bounded queue with
//     per-level overflow policies, so slow sinks never stall callers.
//   - ZapBridge, ZerologBridge, and LogrusBridge hand events to the
//     respective ecosystem backends, letting treelog's hierarchy and
//     filtering sit in front of an existing logging setup.
//
// Attachments publishes its appender list atomically: dispatch walks a
// snapshot, so a concurrent attach or detach is either fully visible
// or not at all, never half-applied.
package appender

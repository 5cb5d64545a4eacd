// Package hierarchy implements the logger tree and the event-dispatch
// pipeline at the center of treelog.
//
// A Repository owns every logger node of one logging domain. Nodes are
// created lazily by dotted name and linked to the longest already-
// registered prefix, so requesting "a.b.c" before "a.b" exists parents
// it at "a" (or the root); when "a.b" is later registered, "a.b.c" is
// re-linked to it. Nodes are never removed, only reset, because
// application code holds Logger references for the process lifetime.
//
// A log call is two reads on the hot path: the repository state plus
// threshold, and the node's effective level. Effective levels resolve
// by inheritance from the nearest ancestor with an explicit level and
// are cached per node, stamped with a repository-wide epoch that
// advances on any level change, re-parenting, or completed
// configuration, so a stale cache is at most one atomic load away from
// being detected.
//
// Dispatch walks the node and its ancestors, feeding the event to each
// attached appender in attachment order, and stops at the first
// non-additive node. An appender attached at several points of the
// walk is invoked once per attachment point; the walk reflects the
// configured topology and never deduplicates.
//
// Structural mutations (node creation, re-parenting, reset, shutdown)
// serialize on one lock inside the repository; dispatch reads parent
// links and appender sets through per-node atomics and therefore sees
// either the pre- or post-mutation structure, never a torn one.
package hierarchy

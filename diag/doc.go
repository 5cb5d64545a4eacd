// Package diag is the internal diagnostic channel of treelog.
//
// The logging pipeline itself must never fail the application: a
// malformed configuration directive, a panicking appender, or a log
// call against a shut-down repository is reported here instead of
// being returned or thrown to the caller. Diagnostics go to stderr by
// default; tests and embedders can redirect or silence them with
// SetWriter and SetEnabled.
package diag

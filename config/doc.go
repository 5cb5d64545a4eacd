// Package config turns configuration directives into repository state.
//
// Parsers for concrete file formats live outside the framework; they
// produce a []Directive and hand it to Apply, which runs one atomic
// configuration operation against a repository (Merge adds to what is
// there, Overwrite resets first). Application is best-effort: a
// malformed directive is reported on the diagnostic channel and
// skipped, so one bad appender definition cannot silence the whole
// process.
//
// Appender and filter types are named strings resolved through an
// explicit factory registry rather than reflection. The built-in types
// (console, memory, and the zap/zerolog/logrus bridges; levelRange,
// levelMatch, stringMatch, denyAll) register themselves in init;
// plugins call RegisterAppender and RegisterFilter with their own.
//
// FromEnv offers a minimal environment-variable bootstrap for programs
// that want logging before any richer configuration is loaded:
//
//	ds, err := config.FromEnv()
//	if err == nil {
//		config.Apply(hierarchy.Default(), hierarchy.Overwrite, ds)
//	}
package config

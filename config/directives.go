package config

import (
	"github.com/treelog/treelog/appender"
	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/diag"
	"github.com/treelog/treelog/filter"
	"github.com/treelog/treelog/hierarchy"
)

// Kind identifies a configuration directive.
type Kind int

const (
	// DefineAppender creates an appender: Name, Type, Params.
	DefineAppender Kind = iota
	// DefineFilter appends a filter to a previously defined appender:
	// Name (the appender), Type, Params.
	DefineFilter
	// DefineLogger configures a named logger: Name, optional Level,
	// optional Additive, Appenders (refs to defined appenders).
	DefineLogger
	// DefineRoot configures the root logger: optional Level, Appenders.
	DefineRoot
	// Threshold sets the repository-wide floor: Level.
	Threshold
)

// Directive is one step of a configuration produced by an external
// loader (file parser, flags, code). Fields are used according to
// Kind; see the Kind constants.
type Directive struct {
	Kind      Kind
	Name      string
	Type      string
	Params    Params
	Level     string
	Additive  *bool
	Appenders []string
}

// Apply runs the directives against the repository as one
// configuration operation: BeginConfigure(mode), best-effort
// application, EndConfigure. A malformed directive is reported through
// diagnostics and skipped; one typo must not silence the whole
// application. The generation counter advances exactly once.
func Apply(r *hierarchy.Repository, mode hierarchy.ConfigureMode, directives []Directive) {
	r.BeginConfigure(mode)
	defer r.EndConfigure()

	defined := make(map[string]appender.Appender)

	for _, d := range directives {
		switch d.Kind {
		case DefineAppender:
			a, err := NewAppender(d.Type, d.Name, d.Params)
			if err != nil {
				diag.Warnf("config: skipping appender %q: %v", d.Name, err)
				continue
			}
			defined[d.Name] = a
		case DefineFilter:
			a, ok := defined[d.Name]
			if !ok {
				diag.Warnf("config: filter references undefined appender %q", d.Name)
				continue
			}
			fa, ok := a.(appender.Filtered)
			if !ok {
				diag.Warnf("config: appender %q does not accept filters", d.Name)
				continue
			}
			f, err := NewFilter(d.Type, d.Params)
			if err != nil {
				diag.Warnf("config: skipping filter on appender %q: %v", d.Name, err)
				continue
			}
			fa.FilterChain().Add(f)
		case DefineLogger:
			if d.Name == "" {
				diag.Warnf("config: logger directive without a name")
				continue
			}
			configureLogger(r.Logger(d.Name), d, defined)
		case DefineRoot:
			configureLogger(r.Root(), d, defined)
		case Threshold:
			level, ok := core.ParseLevel(d.Level)
			if !ok {
				diag.Warnf("config: bad threshold level %q", d.Level)
				continue
			}
			r.SetThreshold(level)
		default:
			diag.Warnf("config: unknown directive kind %d", d.Kind)
		}
	}
}

func configureLogger(l *hierarchy.Logger, d Directive, defined map[string]appender.Appender) {
	if d.Level != "" {
		if level, ok := core.ParseLevel(d.Level); ok {
			l.SetLevel(level)
		} else {
			diag.Warnf("config: bad level %q for logger %q", d.Level, l.Name())
		}
	}
	if d.Additive != nil {
		l.SetAdditive(*d.Additive)
	}
	for _, ref := range d.Appenders {
		a, ok := defined[ref]
		if !ok {
			diag.Warnf("config: logger %q references undefined appender %q", l.Name(), ref)
			continue
		}
		l.AttachAppender(a)
	}
}

// Filters is a convenience for programmatic configuration: it appends
// fs to a's filter chain when the appender supports filtering.
func Filters(a appender.Appender, fs ...filter.Filter) {
	fa, ok := a.(appender.Filtered)
	if !ok {
		diag.Warnf("config: appender %q does not accept filters", a.Name())
		return
	}
	for _, f := range fs {
		fa.FilterChain().Add(f)
	}
}

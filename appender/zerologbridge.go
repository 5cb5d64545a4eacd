package appender

import (
	"github.com/rs/zerolog"

	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/filter"
)

// ZerologBridge forwards events to a zerolog.Logger.
type ZerologBridge struct {
	name  string
	log   zerolog.Logger
	chain filter.Chain
}

// NewZerologBridge creates a bridge appender writing through zl.
func NewZerologBridge(name string, zl zerolog.Logger) *ZerologBridge {
	return &ZerologBridge{name: name, log: zl}
}

// Name implements the Appender interface.
func (b *ZerologBridge) Name() string { return b.name }

// FilterChain implements the Filtered interface.
func (b *ZerologBridge) FilterChain() *filter.Chain { return &b.chain }

// Append implements the Appender interface.
func (b *ZerologBridge) Append(e *core.Event) error {
	ev := b.log.WithLevel(zerologLevel(e.Level))
	if ev == nil {
		return nil
	}
	ev = ev.Time(zerolog.TimestampFieldName, e.Timestamp).
		Str("logger", e.LoggerName)
	for _, p := range e.Properties {
		ev = ev.Interface(p.Key, p.Value)
	}
	if e.ErrorText != "" {
		ev = ev.Str("error", e.ErrorText)
	}
	ev.Msg(e.Rendered())
	return nil
}

// Close implements the Appender interface. zerolog writers flush on
// every write, so there is nothing to release.
func (b *ZerologBridge) Close() error {
	return nil
}

func zerologLevel(l core.Level) zerolog.Level {
	switch {
	case l.Ge(core.Fatal):
		// WithLevel only tags the event; it never terminates the
		// program the way zerolog's own Fatal() does.
		return zerolog.FatalLevel
	case l.Ge(core.Error):
		return zerolog.ErrorLevel
	case l.Ge(core.Warn):
		return zerolog.WarnLevel
	case l.Ge(core.Info):
		return zerolog.InfoLevel
	case l.Ge(core.Debug):
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

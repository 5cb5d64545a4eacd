package appender

import (
	"github.com/sirupsen/logrus"

	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/filter"
)

// LogrusBridge forwards events to a logrus.Logger.
type LogrusBridge struct {
	name  string
	log   *logrus.Logger
	chain filter.Chain
}

// NewLogrusBridge creates a bridge appender writing through lr.
func NewLogrusBridge(name string, lr *logrus.Logger) *LogrusBridge {
	return &LogrusBridge{name: name, log: lr}
}

// Name implements the Appender interface.
func (b *LogrusBridge) Name() string { return b.name }

// FilterChain implements the Filtered interface.
func (b *LogrusBridge) FilterChain() *filter.Chain { return &b.chain }

// Append implements the Appender interface.
func (b *LogrusBridge) Append(e *core.Event) error {
	fields := logrus.Fields{"logger": e.LoggerName}
	for _, p := range e.Properties {
		fields[p.Key] = p.Value
	}
	if e.ErrorText != "" {
		fields["error"] = e.ErrorText
	}
	b.log.WithTime(e.Timestamp).WithFields(fields).Log(logrusLevel(e.Level), e.Rendered())
	return nil
}

// Close implements the Appender interface.
func (b *LogrusBridge) Close() error {
	return nil
}

func logrusLevel(l core.Level) logrus.Level {
	switch {
	case l.Ge(core.Error):
		// Entry.Log at FatalLevel does not exit, but keep fatal exits
		// out of the pipeline entirely by capping at Error.
		return logrus.ErrorLevel
	case l.Ge(core.Warn):
		return logrus.WarnLevel
	case l.Ge(core.Info):
		return logrus.InfoLevel
	case l.Ge(core.Debug):
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

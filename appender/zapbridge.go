package appender

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/filter"
)

// ZapBridge forwards events to a zapcore.Core, letting treelog's
// hierarchy and filter chains sit in front of zap's encoders and sinks.
type ZapBridge struct {
	name  string
	core  zapcore.Core
	chain filter.Chain
}

// NewZapBridge creates a bridge appender writing to zc.
func NewZapBridge(name string, zc zapcore.Core) *ZapBridge {
	return &ZapBridge{name: name, core: zc}
}

// Name implements the Appender interface.
func (b *ZapBridge) Name() string { return b.name }

// FilterChain implements the Filtered interface.
func (b *ZapBridge) FilterChain() *filter.Chain { return &b.chain }

// Append implements the Appender interface.
func (b *ZapBridge) Append(e *core.Event) error {
	ent := zapcore.Entry{
		Level:      zapLevel(e.Level),
		Time:       e.Timestamp,
		LoggerName: e.LoggerName,
		Message:    e.Rendered(),
	}
	ce := b.core.Check(ent, nil)
	if ce == nil {
		return nil
	}
	fields := make([]zapcore.Field, 0, len(e.Properties)+1)
	for _, p := range e.Properties {
		fields = append(fields, zap.Any(p.Key, p.Value))
	}
	if e.ErrorText != "" {
		fields = append(fields, zap.String("error", e.ErrorText))
	}
	ce.Write(fields...)
	return nil
}

// Close implements the Appender interface.
func (b *ZapBridge) Close() error {
	return b.core.Sync()
}

func zapLevel(l core.Level) zapcore.Level {
	switch {
	case l.Ge(core.Fatal):
		return zapcore.FatalLevel
	case l.Ge(core.Error):
		return zapcore.ErrorLevel
	case l.Ge(core.Warn):
		return zapcore.WarnLevel
	case l.Ge(core.Info):
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

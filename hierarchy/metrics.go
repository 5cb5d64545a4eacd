package hierarchy

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/treelog/treelog/core"
)

// Metrics counts emitted events per severity band. It implements Hook;
// register it on a repository with AddHook and expose the counters
// through a prometheus.Registerer.
type Metrics struct {
	TraceCount prometheus.Counter
	DebugCount prometheus.Counter
	InfoCount  prometheus.Counter
	WarnCount  prometheus.Counter
	ErrorCount prometheus.Counter
	FatalCount prometheus.Counter
}

// NewMetrics returns a metrics hook ready to use.
func NewMetrics(namespace string) *Metrics {
	const subsystem = "log"
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}
	return &Metrics{
		TraceCount: counter("trace_count", "Number of TRACE log events."),
		DebugCount: counter("debug_count", "Number of DEBUG log events."),
		InfoCount:  counter("info_count", "Number of INFO log events."),
		WarnCount:  counter("warn_count", "Number of WARN log events."),
		ErrorCount: counter("error_count", "Number of ERROR log events."),
		FatalCount: counter("fatal_count", "Number of FATAL log events."),
	}
}

// Fire implements the Hook interface.
func (m *Metrics) Fire(level core.Level) error {
	switch {
	case level.Ge(core.Fatal):
		m.FatalCount.Inc()
	case level.Ge(core.Error):
		m.ErrorCount.Inc()
	case level.Ge(core.Warn):
		m.WarnCount.Inc()
	case level.Ge(core.Info):
		m.InfoCount.Inc()
	case level.Ge(core.Debug):
		m.DebugCount.Inc()
	default:
		m.TraceCount.Inc()
	}
	return nil
}

// Register registers all counters with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Counter{
		m.TraceCount, m.DebugCount, m.InfoCount,
		m.WarnCount, m.ErrorCount, m.FatalCount,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

package core

import (
	"math"
	"strings"
)

// Level represents the severity of a log event. Levels are compared by
// Value only; Name is for display. Higher values are more severe.
type Level struct {
	Name  string
	Value int
}

// Well-known levels. All and Off are ordinary sentinel values at the
// extremes of the range, not special types.
var (
	All   = Level{Name: "ALL", Value: math.MinInt32}
	Trace = Level{Name: "TRACE", Value: 20000}
	Debug = Level{Name: "DEBUG", Value: 30000}
	Info  = Level{Name: "INFO", Value: 40000}
	Warn  = Level{Name: "WARN", Value: 60000}
	Error = Level{Name: "ERROR", Value: 70000}
	Fatal = Level{Name: "FATAL", Value: 110000}
	Off   = Level{Name: "OFF", Value: math.MaxInt32}
)

// String returns the display name of the level.
func (l Level) String() string {
	return l.Name
}

// Compare returns a negative number if l is less severe than o, zero if
// equal, and a positive number if more severe.
func (l Level) Compare(o Level) int {
	switch {
	case l.Value < o.Value:
		return -1
	case l.Value > o.Value:
		return 1
	default:
		return 0
	}
}

// Ge reports whether l is at least as severe as o.
func (l Level) Ge(o Level) bool {
	return l.Value >= o.Value
}

// ParseLevel converts a level name to a Level. The second return value
// reports whether the name was recognized.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(s) {
	case "ALL":
		return All, true
	case "TRACE":
		return Trace, true
	case "DEBUG":
		return Debug, true
	case "INFO":
		return Info, true
	case "WARN", "WARNING":
		return Warn, true
	case "ERROR":
		return Error, true
	case "FATAL":
		return Fatal, true
	case "OFF", "NONE":
		return Off, true
	default:
		return Level{}, false
	}
}

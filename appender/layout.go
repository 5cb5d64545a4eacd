package appender

import (
	"bytes"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/treelog/treelog/core"
)

// Layout renders one event into the bytes an appender writes. Full
// pattern-string layouts are an external concern; the two layouts here
// cover the built-in sinks.
type Layout interface {
	Format(e *core.Event) []byte
}

var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// TextLayout renders events as single human-readable lines:
//
//	2006-01-02T15:04:05Z [INFO] my.logger: message key=value error=...
type TextLayout struct {
	// TimestampFormat defaults to time.RFC3339.
	TimestampFormat string
}

// Format implements the Layout interface.
func (l *TextLayout) Format(e *core.Event) []byte {
	format := l.TimestampFormat
	if format == "" {
		format = time.RFC3339
	}

	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	buf.Write(e.Timestamp.AppendFormat(buf.AvailableBuffer(), format))
	buf.WriteString(" [")
	buf.WriteString(e.Level.Name)
	buf.WriteString("] ")
	buf.WriteString(e.LoggerName)
	buf.WriteString(": ")
	buf.WriteString(e.Rendered())
	for _, p := range e.Properties {
		buf.WriteByte(' ')
		buf.WriteString(p.Key)
		buf.WriteByte('=')
		writeValue(buf, p.Value)
	}
	if e.ErrorText != "" {
		buf.WriteString(" error=")
		buf.WriteString(strconv.Quote(e.ErrorText))
	}
	buf.WriteByte('\n')

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}

func writeValue(buf *bytes.Buffer, v interface{}) {
	switch x := v.(type) {
	case string:
		buf.WriteString(strconv.Quote(x))
	case int:
		buf.WriteString(strconv.Itoa(x))
	case int64:
		buf.WriteString(strconv.FormatInt(x, 10))
	case bool:
		buf.WriteString(strconv.FormatBool(x))
	case error:
		buf.WriteString(strconv.Quote(x.Error()))
	default:
		b, err := json.Marshal(v)
		if err != nil {
			buf.WriteString(strconv.Quote("?"))
			return
		}
		buf.Write(b)
	}
}

// JSONLayout renders events as one JSON object per line.
type JSONLayout struct{}

// Format implements the Layout interface.
func (JSONLayout) Format(e *core.Event) []byte {
	m := make(map[string]interface{}, 6+len(e.Properties))
	m["time"] = e.Timestamp.Format(time.RFC3339Nano)
	m["level"] = e.Level.Name
	m["logger"] = e.LoggerName
	m["msg"] = e.Rendered()
	if e.ErrorText != "" {
		m["error"] = e.ErrorText
	}
	if e.GoroutineID != 0 {
		m["goroutine"] = e.GoroutineID
	}
	for _, p := range e.Properties {
		m[p.Key] = p.Value
	}
	b, err := json.Marshal(m)
	if err != nil {
		b = []byte(`{"msg":"unencodable event"}`)
	}
	return append(b, '\n')
}

package logger

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
)

// Entry is one line written to a TestLogger
type Entry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

type entrySink struct {
	mu      sync.Mutex
	entries []Entry
}

// TestLogger writes through t.Logf and keeps every entry so tests can assert on
// what was logged. Loggers derived with WithField share the parent's entries.
type TestLogger struct {
	t      *testing.T
	fields map[string]interface{}
	sink   *entrySink
}

func NewTestLogger(t *testing.T) Logger {
	return newTestLogger(t)
}

func newTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{t: t, fields: map[string]interface{}{}, sink: &entrySink{}}
}

// NewRecordingLogger is NewTestLogger with the concrete type, for tests that read Entries
func NewRecordingLogger(t *testing.T) *TestLogger {
	return newTestLogger(t)
}

func (l *TestLogger) log(level, msg string) {
	fields := make(map[string]interface{}, len(l.fields))
	for k, v := range l.fields {
		fields[k] = v
	}

	l.sink.mu.Lock()
	l.sink.entries = append(l.sink.entries, Entry{Level: level, Message: msg, Fields: fields})
	l.sink.mu.Unlock()

	if l.t == nil {
		return
	}
	l.t.Helper()
	if len(fields) == 0 {
		l.t.Logf("[%s] %s", level, msg)
		return
	}
	l.t.Logf("[%s] %s %s", level, msg, formatFields(fields))
}

func formatFields(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, fields[k])
	}
	return strings.Join(parts, " ")
}

func (l *TestLogger) Debug(msg string) { l.log("DEBUG", msg) }

func (l *TestLogger) Info(msg string) { l.log("INFO", msg) }

func (l *TestLogger) Warn(msg string) { l.log("WARN", msg) }

func (l *TestLogger) Error(msg string) { l.log("ERROR", msg) }

// Fatal records the entry without exiting
func (l *TestLogger) Fatal(msg string) { l.log("FATAL", msg) }

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &TestLogger{t: l.t, fields: merged, sink: l.sink}
}

// Entries returns a copy of everything logged so far
func (l *TestLogger) Entries() []Entry {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	out := make([]Entry, len(l.sink.entries))
	copy(out, l.sink.entries)
	return out
}

// HasEntry reports whether a message was logged at level
func (l *TestLogger) HasEntry(level, msg string) bool {
	for _, e := range l.Entries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}

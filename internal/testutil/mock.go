package testutil

import (
	"context"
	"maps"
	"sync"
)

// MockNode is a scripted traits.Processable.
type MockNode struct {
	mu     sync.Mutex
	kind   string
	calls  []map[string]any
	output map[string]any
	errs   map[int]error
}

// NewMockNode creates a mock instance of the given kind that echoes its input.
func NewMockNode(kind string) *MockNode {
	return &MockNode{kind: kind, errs: make(map[int]error)}
}

// WithOutput makes every successful call return out.
func (m *MockNode) WithOutput(out map[string]any) *MockNode {
	m.output = out
	return m
}

// WithError makes the nth call (1-based) fail with err.
func (m *MockNode) WithError(call int, err error) *MockNode {
	m.errs[call] = err
	return m
}

// Kind returns the mock's kind name.
func (m *MockNode) Kind() string { return m.kind }

// Process records the call and returns the scripted result.
func (m *MockNode) Process(ctx context.Context, values map[string]any) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, maps.Clone(values))
	if err, ok := m.errs[len(m.calls)]; ok {
		return nil, err
	}
	if m.output != nil {
		return maps.Clone(m.output), nil
	}
	return maps.Clone(values), nil
}

// Calls returns the recorded inputs.
func (m *MockNode) Calls() []map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]map[string]any, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// MockLogger provides a mock logger for testing.
type MockLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry represents a log entry.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]any
}

// NewMockLogger creates a new mock logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{
		entries: []LogEntry{},
	}
}

// Debug logs a debug message.
func (l *MockLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	l.log("debug", msg, keysAndValues...)
}

// Info logs an info message.
func (l *MockLogger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	l.log("info", msg, keysAndValues...)
}

// Error logs an error message.
func (l *MockLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	l.log("error", msg, keysAndValues...)
}

func (l *MockLogger) log(level, msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fields := make(map[string]any)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}

	l.entries = append(l.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  fields,
	})
}

// Entries returns all log entries.
func (l *MockLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]LogEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Find returns the first entry with the given level and message.
func (l *MockLogger) Find(level, msg string) (LogEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, entry := range l.entries {
		if entry.Level == level && entry.Message == msg {
			return entry, true
		}
	}
	return LogEntry{}, false
}

// HasEntry checks if a log entry exists.
func (l *MockLogger) HasEntry(level, msg string) bool {
	_, ok := l.Find(level, msg)
	return ok
}

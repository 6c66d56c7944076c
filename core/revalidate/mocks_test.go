package revalidate

import (
	"context"
	"sync"
	"time"
)

// mockTagStore records marks and can fail on a given tag
type mockTagStore struct {
	mu     sync.Mutex
	marks  map[string]time.Time
	order  []string
	failOn string
	err    error
}

func newMockTagStore() *mockTagStore {
	return &mockTagStore{marks: make(map[string]time.Time)}
}

func (m *mockTagStore) MarkStale(ctx context.Context, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tag == m.failOn {
		return m.err
	}
	now := time.Now()
	if prev, ok := m.marks[tag]; !ok || now.After(prev) {
		m.marks[tag] = now
	}
	m.order = append(m.order, tag)
	return nil
}

func (m *mockTagStore) IsStale(ctx context.Context, tag string, since time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mark, ok := m.marks[tag]
	return ok && !mark.Before(since), nil
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

type mockLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (m *mockLogger) add(level, msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.add("debug", msg, fields) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.add("info", msg, fields) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.add("warn", msg, fields) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.add("error", msg, fields) }

func (m *mockLogger) find(msg string) (logEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.msg == msg {
			return e, true
		}
	}
	return logEntry{}, false
}

package auditlog

import (
	"context"
	"sync"
)

// Compile-time interface check.
var _ Recorder = (*Memory)(nil)

// Memory is a bounded in-memory recorder. When full, the oldest entry
// is overwritten. It is intended for diagnostics and tests; production
// deployments wanting durable audit trails should ship entries out
// through a custom Recorder.
type Memory struct {
	mu      sync.RWMutex
	entries []*Entry
	next    int
	full    bool
	maxSize int
}

// MemoryOption configures the memory recorder.
type MemoryOption func(*Memory)

// WithMaxSize sets the maximum number of retained entries.
func WithMaxSize(n int) MemoryOption {
	return func(m *Memory) { m.maxSize = n }
}

// NewMemory creates a new in-memory recorder.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{maxSize: 1024}
	for _, opt := range opts {
		opt(m)
	}
	m.entries = make([]*Entry, m.maxSize)
	return m
}

// Record stores an entry, evicting the oldest when the buffer is full.
func (m *Memory) Record(_ context.Context, e *Entry) {
	m.mu.Lock()
	m.entries[m.next] = e
	m.next++
	if m.next == m.maxSize {
		m.next = 0
		m.full = true
	}
	m.mu.Unlock()
}

// Len returns the number of retained entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.full {
		return m.maxSize
	}
	return m.next
}

// Query returns retained entries matching the filter, oldest first.
func (m *Memory) Query(filter *Filter) []*Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Entry
	for _, e := range m.ordered() {
		if filter != nil && !filter.matches(e) {
			continue
		}
		out = append(out, e)
		if filter != nil && filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out
}

// ordered returns retained entries oldest first. Callers hold the lock.
func (m *Memory) ordered() []*Entry {
	if !m.full {
		return m.entries[:m.next]
	}
	out := make([]*Entry, 0, m.maxSize)
	out = append(out, m.entries[m.next:]...)
	out = append(out, m.entries[:m.next]...)
	return out
}

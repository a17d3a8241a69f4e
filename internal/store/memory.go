package store

import "sync"

// Memory is an in-process Store. Values are lost when the process exits.
// Safe for concurrent use by multiple sessions.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// Compile-time check that Memory implements Store.
var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Close is a no-op; it lets Memory serve as a DB.
func (m *Memory) Close() error {
	return nil
}

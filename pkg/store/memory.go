package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-process Persistence used for ephemeral sessions and tests.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	writes int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Load(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Save(key, value string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.writes++
	return nil
}

func (m *Memory) Keys(context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Writes reports how many successful Save calls the store has seen.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) Watch(context.Context) (<-chan Event, error) {
	return nil, ErrWatchUnsupported
}

func (m *Memory) Close() error {
	return nil
}

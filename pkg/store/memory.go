package store

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store, used in tests and single-instance
// deployments without a Redis endpoint configured.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   []byte
	count   int64
	expires time.Time // zero means no expiry
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && time.Now().After(e.expires)
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok || m.expired(e) {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	m.entries[key] = memoryEntry{value: value, expires: expires}
	return nil
}

func (m *Memory) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entries[key]
	if m.expired(e) {
		e = memoryEntry{}
	}
	e.count += delta
	m.entries[key] = e
	return e.count, nil
}

func (m *Memory) IncrWindow(ctx context.Context, key string, delta int64, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok || m.expired(e) {
		e = memoryEntry{expires: time.Now().Add(window)}
	}
	e.count += delta
	m.entries[key] = e
	return e.count, nil
}

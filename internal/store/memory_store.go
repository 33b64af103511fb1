package store

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/MKhiriev/go-diff-sync/models"
)

type memoryStore struct {
	mu          sync.RWMutex
	closed      bool
	items       map[string]json.RawMessage
	clientID    string
	baseStateID string
}

func newMemoryStore(clientID string) *memoryStore {
	return &memoryStore{
		items:    make(map[string]json.RawMessage),
		clientID: clientID,
	}
}

func (m *memoryStore) Has(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, ErrStoreClosed
	}
	_, ok := m.items[key]
	return ok, nil
}

func (m *memoryStore) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, ErrStoreClosed
	}
	v, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

func (m *memoryStore) Put(_ context.Context, key string, value json.RawMessage) error {
	if key == "" {
		return ErrEmptyKey
	}
	if !json.Valid(value) {
		return ErrInvalidValue
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	m.items[key] = bytes.Clone(value)
	return nil
}

func (m *memoryStore) Del(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false, ErrStoreClosed
	}
	_, ok := m.items[key]
	delete(m.items, key)
	return ok, nil
}

func (m *memoryStore) Scan(_ context.Context, prefix string, limit int) ([]models.KeyValue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	return m.sorted(prefix, limit), nil
}

func (m *memoryStore) CurrentStateDescriptor(_ context.Context) (models.StateDescriptor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return models.StateDescriptor{}, ErrStoreClosed
	}
	return models.StateDescriptor{
		ClientID:    m.clientID,
		BaseStateID: m.baseStateID,
		Checksum:    computeChecksum(m.sorted("", 0)),
	}, nil
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = nil
	return nil
}

// sorted must be called with m.mu held.
func (m *memoryStore) sorted(prefix string, limit int) []models.KeyValue {
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}

	entries := make([]models.KeyValue, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, models.KeyValue{Key: k, Value: bytes.Clone(m.items[k])})
	}
	return entries
}

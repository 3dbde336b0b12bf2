package storage

import (
	"context"
	"sync"
)

// MemoryStorage keeps the record in process memory. Used in tests and when no
// durable backend is configured.
type MemoryStorage struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	saveErr error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// NewMemoryStorageWith seeds the storage with a raw record.
func NewMemoryStorageWith(data []byte) *MemoryStorage {
	return &MemoryStorage{data: append([]byte(nil), data...)}
}

func (m *MemoryStorage) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryStorage) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// FailSaves makes every following Save return err; nil restores normal behaviour.
func (m *MemoryStorage) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Saves returns the number of successful saves.
func (m *MemoryStorage) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemoryStorage) Close() error {
	return nil
}

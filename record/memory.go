package record

import (
	"context"
	"sync"

	"github.com/Moaila/tdma/types"
)

// Memory implements an in-memory record store.
//
// Records live only for the lifetime of the process. Useful for tests and
// for runs where persistence is not wanted.
type Memory struct {
	mu      sync.RWMutex
	records []types.SuccessRecord
}

var _ types.RecordStore = (*Memory)(nil)

// NewMemory creates a new empty in-memory record store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a copy of all stored records in append order.
func (m *Memory) Load(_ context.Context) ([]types.SuccessRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.SuccessRecord, len(m.records))
	copy(out, m.records)

	return out, nil
}

// Append adds a record to the store.
func (m *Memory) Append(_ context.Context, rec types.SuccessRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, rec)

	return nil
}

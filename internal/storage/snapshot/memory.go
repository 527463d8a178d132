// internal/storage/snapshot/memory.go
package snapshot

import (
	"context"
	"sync"

	"github.com/newthinker/recruitdash/internal/core"
)

// MemoryStore is an in-process snapshot store.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[core.Kind]Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[core.Kind]Snapshot),
	}
}

// Save stores a copy of snap.
func (m *MemoryStore) Save(ctx context.Context, snap Snapshot) error {
	snap.Points = clonePoints(snap.Points)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snap.Kind] = snap
	return nil
}

// Load returns a copy of the stored snapshot.
func (m *MemoryStore) Load(ctx context.Context, kind core.Kind) (Snapshot, bool, error) {
	m.mu.RLock()
	snap, ok := m.snapshots[kind]
	m.mu.RUnlock()

	if !ok {
		return Snapshot{}, false, nil
	}
	snap.Points = clonePoints(snap.Points)
	return snap, true, nil
}

package snapshot

import (
	"context"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"sync"

	"github.com/jonboulle/clockwork"
)

// MemoryStore keeps the snapshot in process memory. Stored values are never mutated,
// a write swaps the whole snapshot under the lock.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*entities.Snapshot
	clock clockwork.Clock
}

// NewMemoryStore crea un store en memoria
func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		items: make(map[string]*entities.Snapshot, 1),
		clock: clock,
	}
}

var _ interfaces.SnapshotStore = (*MemoryStore)(nil)

// Read devuelve una copia del snapshot guardado
func (m *MemoryStore) Read(ctx context.Context) (*entities.Snapshot, error) {
	m.mu.RLock()
	snap := m.items[entities.LatestSnapshotKey]
	m.mu.RUnlock()

	out := snap.Clone()
	observeRead(ctx, BackendMemory, out, nil)
	return out, nil
}

// Write reemplaza el snapshot completo
func (m *MemoryStore) Write(ctx context.Context, records []entities.PriceRecord) (*entities.Snapshot, error) {
	snap := entities.NewSnapshot(entities.CloneRecords(records), m.clock.Now())

	m.mu.Lock()
	m.items[entities.LatestSnapshotKey] = snap
	m.mu.Unlock()

	observeWrite(ctx, BackendMemory, snap, nil)
	return snap.Clone(), nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

package interfaces

import (
	"context"
	"mandi-service/internal/domain/entities"
)

// SnapshotStore persists the single "latest" snapshot
type SnapshotStore interface {
	// Read returns the stored snapshot, or nil with no error when nothing was ever written
	Read(ctx context.Context) (*entities.Snapshot, error)

	// Write replaces the stored records and stamps the write time. Last writer wins.
	Write(ctx context.Context, records []entities.PriceRecord) (*entities.Snapshot, error)

	Ping(ctx context.Context) error
	Close() error
}

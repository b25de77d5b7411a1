package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/infrastructure/logging"
	"mandi-service/internal/infrastructure/metrics"
)

// Backend names, as accepted by snapshot.backend
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendSQL    = "sql"
)

// observeRead logs and counts a finished read
func observeRead(ctx context.Context, backend string, snap *entities.Snapshot, err error) {
	if err != nil {
		metrics.RecordStoreOperation(backend, logging.StoreOpRead, "error")
		logging.Store().StoreError(ctx, backend, logging.StoreOpRead, err)
		return
	}

	result := "hit"
	if snap == nil {
		result = "miss"
	}
	metrics.RecordStoreOperation(backend, logging.StoreOpRead, result)
	logging.Store().SnapshotRead(ctx, backend, snap != nil, snap.Total())
}

// observeWrite logs and counts a finished write
func observeWrite(ctx context.Context, backend string, snap *entities.Snapshot, err error) {
	if err != nil {
		metrics.RecordStoreOperation(backend, logging.StoreOpWrite, "error")
		logging.Store().StoreError(ctx, backend, logging.StoreOpWrite, err)
		return
	}

	metrics.RecordStoreOperation(backend, logging.StoreOpWrite, "success")
	metrics.UpdateSnapshot(snap.Total(), snap.UpdatedAt)
	logging.Store().SnapshotWritten(ctx, backend, snap.Total())
}

func readError(backend string, err error) error {
	return &entities.StoreError{Op: logging.StoreOpRead, Backend: backend, Err: err}
}

func writeError(backend string, err error) error {
	return &entities.StoreError{Op: logging.StoreOpWrite, Backend: backend, Err: err}
}

// decodeJSON reads a stored document keeping numbers as json.Number, the same
// way pages are decoded, so records come back exactly as they were written
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

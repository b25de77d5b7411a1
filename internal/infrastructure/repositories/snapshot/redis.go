package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the part of *redis.Client the store uses
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisStore keeps the snapshot as one JSON document under a single key.
// A write is a single SET so readers see either the old or the new document.
type RedisStore struct {
	client RedisClient
	key    string
	clock  clockwork.Clock
}

// NewRedisStore crea un store sobre un cliente Redis existente
func NewRedisStore(client RedisClient, key string, clock clockwork.Clock) *RedisStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if key == "" {
		key = "mandi:snapshot:" + entities.LatestSnapshotKey
	}
	return &RedisStore{
		client: client,
		key:    key,
		clock:  clock,
	}
}

var _ interfaces.SnapshotStore = (*RedisStore)(nil)

func (r *RedisStore) Read(ctx context.Context) (*entities.Snapshot, error) {
	snap, err := r.read(ctx)
	observeRead(ctx, BackendRedis, snap, err)
	return snap, err
}

func (r *RedisStore) read(ctx context.Context) (*entities.Snapshot, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, readError(BackendRedis, err)
	}

	var snap entities.Snapshot
	if err := decodeJSON([]byte(raw), &snap); err != nil {
		return nil, readError(BackendRedis, err)
	}
	if snap.Records == nil {
		snap.Records = []entities.PriceRecord{}
	}
	snap.Key = entities.LatestSnapshotKey
	return &snap, nil
}

func (r *RedisStore) Write(ctx context.Context, records []entities.PriceRecord) (*entities.Snapshot, error) {
	snap := entities.NewSnapshot(entities.CloneRecords(records), r.clock.Now())

	payload, err := json.Marshal(snap)
	if err != nil {
		err = writeError(BackendRedis, err)
		observeWrite(ctx, BackendRedis, nil, err)
		return nil, err
	}

	// sin TTL: el snapshot vive hasta el próximo refresh
	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		err = writeError(BackendRedis, err)
		observeWrite(ctx, BackendRedis, nil, err)
		return nil, err
	}

	observeWrite(ctx, BackendRedis, snap, nil)
	return snap, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

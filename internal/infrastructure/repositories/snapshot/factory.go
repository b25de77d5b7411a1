package snapshot

import (
	"context"
	"fmt"
	"mandi-service/internal/domain/interfaces"
	"mandi-service/internal/infrastructure/config"
	"mandi-service/internal/infrastructure/logging"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

const connectTimeout = 5 * time.Second

// Factory builds the snapshot store selected by configuration
type Factory struct {
	clock clockwork.Clock
}

// NewFactory creates a new store factory
func NewFactory(clock clockwork.Clock) *Factory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Factory{clock: clock}
}

// CreateStore creates the configured backend. db is only used by the sql backend.
func (f *Factory) CreateStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (interfaces.SnapshotStore, error) {
	backend := strings.ToLower(cfg.Snapshot.Backend)

	logging.Info(ctx, "Creating snapshot store", logging.Fields{
		logging.FieldStoreBackend: backend,
	})

	switch backend {
	case BackendMemory:
		return NewMemoryStore(f.clock), nil

	case BackendRedis:
		return f.createRedisStore(ctx, cfg)

	case BackendMongo:
		return f.createMongoStore(ctx, cfg.Mongo)

	case BackendSQL:
		if db == nil {
			return nil, fmt.Errorf("sql snapshot backend requires a database connection")
		}
		store := NewSQLStore(db, f.clock)
		if cfg.Database.AutoMigrate {
			if err := store.AutoMigrate(); err != nil {
				return nil, fmt.Errorf("failed to migrate snapshot table: %w", err)
			}
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported snapshot backend: %s", cfg.Snapshot.Backend)
	}
}

// createRedisStore creates and tests the Redis connection
func (f *Factory) createRedisStore(ctx context.Context, cfg *config.Config) (interfaces.SnapshotStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
	}

	logging.Info(ctx, "Redis connection established successfully", logging.Fields{
		"addr":     cfg.Redis.Addr,
		"database": cfg.Redis.DB,
	})
	return NewRedisStore(rdb, cfg.Snapshot.RedisKey, f.clock), nil
}

// createMongoStore connects, pings and makes sure the unique index exists
func (f *Factory) createMongoStore(ctx context.Context, cfg config.MongoConfig) (interfaces.SnapshotStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	collection := client.Database(cfg.Database).Collection(cfg.Collection)
	if err := EnsureIndexes(connectCtx, collection); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create snapshot index: %w", err)
	}

	logging.Info(ctx, "MongoDB connection established successfully", logging.Fields{
		"database":   cfg.Database,
		"collection": cfg.Collection,
	})

	store := NewMongoStore(collection, f.clock)
	store.closeFn = client.Disconnect
	return store, nil
}

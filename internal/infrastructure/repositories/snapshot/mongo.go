package snapshot

import (
	"context"
	"errors"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"time"

	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection is the part of *mongo.Collection the store uses
type MongoCollection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

// mongoSnapshot is the persisted document: {key:"latest", records:[...], updatedAt}
type mongoSnapshot struct {
	Key       string                 `bson:"key"`
	Records   []entities.PriceRecord `bson:"records"`
	UpdatedAt time.Time              `bson:"updatedAt"`
}

// MongoStore keeps the snapshot as one document. The unique index on key plus
// ReplaceOne with upsert keeps a single "latest" document.
type MongoStore struct {
	collection MongoCollection
	clock      clockwork.Clock
	closeFn    func(ctx context.Context) error
}

// NewMongoStore crea un store sobre una colección existente
func NewMongoStore(collection MongoCollection, clock clockwork.Clock) *MongoStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MongoStore{
		collection: collection,
		clock:      clock,
	}
}

var _ interfaces.SnapshotStore = (*MongoStore)(nil)

// EnsureIndexes creates the unique index on key
func EnsureIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("key_unique"),
	})
	return err
}

func latestFilter() bson.D {
	return bson.D{{Key: "key", Value: entities.LatestSnapshotKey}}
}

func (m *MongoStore) Read(ctx context.Context) (*entities.Snapshot, error) {
	snap, err := m.read(ctx)
	observeRead(ctx, BackendMongo, snap, err)
	return snap, err
}

func (m *MongoStore) read(ctx context.Context) (*entities.Snapshot, error) {
	var doc mongoSnapshot
	err := m.collection.FindOne(ctx, latestFilter()).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, readError(BackendMongo, err)
	}

	return entities.NewSnapshot(doc.Records, doc.UpdatedAt), nil
}

func (m *MongoStore) Write(ctx context.Context, records []entities.PriceRecord) (*entities.Snapshot, error) {
	// BSON guarda milisegundos
	snap := entities.NewSnapshot(entities.CloneRecords(records), m.clock.Now().UTC().Truncate(time.Millisecond))

	doc := mongoSnapshot{
		Key:       snap.Key,
		Records:   snap.Records,
		UpdatedAt: snap.UpdatedAt,
	}

	_, err := m.collection.ReplaceOne(ctx, latestFilter(), doc, options.Replace().SetUpsert(true))
	if err != nil {
		err = writeError(BackendMongo, err)
		observeWrite(ctx, BackendMongo, nil, err)
		return nil, err
	}

	observeWrite(ctx, BackendMongo, snap, nil)
	return snap.Clone(), nil
}

func (m *MongoStore) Ping(ctx context.Context) error {
	if pinger, ok := m.collection.(*mongo.Collection); ok {
		return pinger.Database().Client().Ping(ctx, nil)
	}
	return nil
}

func (m *MongoStore) Close() error {
	if m.closeFn == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.closeFn(ctx)
}

package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"mandi-service/internal/domain/entities"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRedisClient es un mock del cliente Redis
type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	cmd := redis.NewStringCmd(ctx, "get", key)
	if args.Error(1) != nil {
		cmd.SetErr(args.Error(1))
	} else {
		cmd.SetVal(args.String(0))
	}
	return cmd
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	if args.Error(0) != nil {
		cmd.SetErr(args.Error(0))
	} else {
		cmd.SetVal("OK")
	}
	return cmd
}

func (m *MockRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	args := m.Called(ctx)
	cmd := redis.NewStatusCmd(ctx, "ping")
	if args.Error(0) != nil {
		cmd.SetErr(args.Error(0))
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

func (m *MockRedisClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

const testRedisKey = "mandi:snapshot:latest"

func TestRedisStore_ReadMissingKey(t *testing.T) {
	client := new(MockRedisClient)
	client.On("Get", mock.Anything, testRedisKey).Return("", redis.Nil)
	store := NewRedisStore(client, testRedisKey, clockwork.NewFakeClock())

	snap, err := store.Read(context.Background())

	require.NoError(t, err)
	assert.Nil(t, snap)
	client.AssertExpectations(t)
}

func TestRedisStore_ReadDecodesDocument(t *testing.T) {
	updatedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	doc, err := json.Marshal(entities.NewSnapshot(sampleRecords("Azadpur", "Vashi"), updatedAt))
	require.NoError(t, err)

	client := new(MockRedisClient)
	client.On("Get", mock.Anything, testRedisKey).Return(string(doc), nil)
	store := NewRedisStore(client, testRedisKey, clockwork.NewFakeClock())

	snap, err := store.Read(context.Background())

	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 2, snap.Total())
	assert.Equal(t, "Vashi", snap.Records[1]["market"])
	assert.True(t, snap.UpdatedAt.Equal(updatedAt))
}

func TestRedisStore_ReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		val    string
		getErr error
	}{
		{"connection error", "", errors.New("connection refused")},
		{"corrupt document", "{not json", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockRedisClient)
			client.On("Get", mock.Anything, testRedisKey).Return(tt.val, tt.getErr)
			store := NewRedisStore(client, testRedisKey, clockwork.NewFakeClock())

			snap, err := store.Read(context.Background())

			assert.Nil(t, snap)
			var storeErr *entities.StoreError
			require.ErrorAs(t, err, &storeErr)
			assert.Equal(t, "read", storeErr.Op)
			assert.Equal(t, BackendRedis, storeErr.Backend)
		})
	}
}

func TestRedisStore_WriteSetsWholeDocumentWithoutTTL(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	client := new(MockRedisClient)

	var written []byte
	client.On("Set", mock.Anything, testRedisKey, mock.AnythingOfType("[]uint8"), time.Duration(0)).
		Run(func(args mock.Arguments) {
			written = args.Get(2).([]byte)
		}).
		Return(nil)

	store := NewRedisStore(client, testRedisKey, clockwork.NewFakeClockAt(now))
	snap, err := store.Write(context.Background(), sampleRecords("Azadpur"))

	require.NoError(t, err)
	assert.True(t, snap.UpdatedAt.Equal(now))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(written, &doc))
	assert.Equal(t, entities.LatestSnapshotKey, doc["key"])
	assert.Len(t, doc["records"], 1)
	assert.Equal(t, "2024-03-01T10:30:00Z", doc["updatedAt"])
	client.AssertExpectations(t)
}

func TestRedisStore_NumbersSurviveRoundTrip(t *testing.T) {
	client := new(MockRedisClient)

	var stored []byte
	client.On("Set", mock.Anything, testRedisKey, mock.AnythingOfType("[]uint8"), time.Duration(0)).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).([]byte)
		}).
		Return(nil)

	store := NewRedisStore(client, testRedisKey, clockwork.NewFakeClock())
	ctx := context.Background()

	written, err := store.Write(ctx, numericRecords())
	require.NoError(t, err)

	client.On("Get", mock.Anything, testRedisKey).Return(string(stored), nil)
	read, err := store.Read(ctx)
	require.NoError(t, err)
	require.NotNil(t, read)

	want, err := json.Marshal(written.Records)
	require.NoError(t, err)
	got, err := json.Marshal(read.Records)
	require.NoError(t, err)

	assert.Equal(t, string(want), string(got))
	assert.Equal(t, json.Number("1.10"), read.Records[0]["arrival"])
	client.AssertExpectations(t)
}

func TestRedisStore_WriteFailure(t *testing.T) {
	client := new(MockRedisClient)
	client.On("Set", mock.Anything, testRedisKey, mock.Anything, time.Duration(0)).Return(errors.New("READONLY"))
	store := NewRedisStore(client, testRedisKey, clockwork.NewFakeClock())

	snap, err := store.Write(context.Background(), sampleRecords("Azadpur"))

	assert.Nil(t, snap)
	var storeErr *entities.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "write", storeErr.Op)
}

func TestRedisStore_PingAndClose(t *testing.T) {
	client := new(MockRedisClient)
	client.On("Ping", mock.Anything).Return(nil)
	client.On("Close").Return(nil)
	store := NewRedisStore(client, "", nil)

	assert.NoError(t, store.Ping(context.Background()))
	assert.NoError(t, store.Close())
	assert.Equal(t, testRedisKey, store.key)
	client.AssertExpectations(t)
}

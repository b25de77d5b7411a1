package snapshot

import (
	"context"
	"mandi-service/internal/domain/entities"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords(markets ...string) []entities.PriceRecord {
	records := make([]entities.PriceRecord, 0, len(markets))
	for _, m := range markets {
		records = append(records, entities.PriceRecord{"market": m, "commodity": "Tomato", "modal_price": "1800"})
	}
	return records
}

func TestMemoryStore_ReadEmpty(t *testing.T) {
	store := NewMemoryStore(clockwork.NewFakeClock())

	snap, err := store.Read(context.Background())

	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestMemoryStore_WriteTwiceKeepsSecondTimestamp(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	store := NewMemoryStore(clock)
	ctx := context.Background()
	payload := sampleRecords("Azadpur", "Lasalgaon")

	first, err := store.Write(ctx, payload)
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)
	second, err := store.Write(ctx, payload)
	require.NoError(t, err)

	stored, err := store.Read(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, payload, stored.Records)
	assert.Equal(t, entities.LatestSnapshotKey, stored.Key)
	assert.True(t, stored.UpdatedAt.Equal(second.UpdatedAt))
	assert.Equal(t, 30*time.Minute, second.UpdatedAt.Sub(first.UpdatedAt))
}

func TestMemoryStore_WriteReplacesWholeSnapshot(t *testing.T) {
	store := NewMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()

	_, err := store.Write(ctx, sampleRecords("a", "b", "c"))
	require.NoError(t, err)
	_, err = store.Write(ctx, []entities.PriceRecord{})
	require.NoError(t, err)

	stored, err := store.Read(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 0, stored.Total())
	assert.True(t, stored.IsEmpty())
	assert.NotNil(t, stored.Records)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()
	payload := sampleRecords("Azadpur")

	written, err := store.Write(ctx, payload)
	require.NoError(t, err)

	payload[0]["market"] = "changed by caller"
	written.Records[0]["market"] = "changed via result"

	stored, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Azadpur", stored.Records[0]["market"])

	stored.Records = nil
	again, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Total())
}

func TestMemoryStore_PingAndClose(t *testing.T) {
	store := NewMemoryStore(nil)

	assert.NoError(t, store.Ping(context.Background()))
	assert.NoError(t, store.Close())
}

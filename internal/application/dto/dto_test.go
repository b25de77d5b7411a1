package dto

import (
	"context"
	"encoding/json"
	"errors"
	"mandi-service/internal/application/scheduler"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    interface{ Validate() error }
		wantMsg string
	}{
		{"signup ok", &SignupRequest{Username: "r", Email: "r@x.in", Password: "pw"}, ""},
		{"signup missing password", &SignupRequest{Username: "r", Email: "r@x.in"}, "All fields required"},
		{"login by email", &LoginRequest{Email: "r@x.in", Password: "pw"}, ""},
		{"login by username", &LoginRequest{Username: "r", Password: "pw"}, ""},
		{"login without identifier", &LoginRequest{Password: "pw"}, "All fields required"},
		{"ad ok", &CreateAdRequest{Title: "Rice", Price: decimal.NewFromInt(10), State: "Punjab", District: "Moga"}, ""},
		{"ad zero price", &CreateAdRequest{Title: "Rice", State: "Punjab", District: "Moga"}, "Title, price, state and district are required"},
		{"ad missing district", &CreateAdRequest{Title: "Rice", Price: decimal.NewFromInt(10), State: "Punjab"}, "Title, price, state and district are required"},
		{"conversation missing user", &StartConversationRequest{}, "otherUserId is required"},
		{"message missing text", &SendMessageRequest{ConversationID: "c-1"}, "conversationId and text are required"},
		{"trade request ok", &CreateTradeRequest{Type: "BUY", Commodity: "Wheat", Qty: "10", Price: decimal.NewFromInt(1), Location: "Karnal"}, ""},
		{"trade request missing qty", &CreateTradeRequest{Type: "BUY", Commodity: "Wheat", Price: decimal.NewFromInt(1), Location: "Karnal"}, "Missing fields"},
		{"status ok", &UpdateStatusRequest{Status: "APPROVED"}, ""},
		{"status unknown", &UpdateStatusRequest{Status: "DONE"}, "Invalid status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.body.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, entities.ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoginRequest_PrefersEmail(t *testing.T) {
	assert.Equal(t, "r@x.in", (&LoginRequest{Username: "r", Email: " r@x.in "}).Login())
	assert.Equal(t, "r", (&LoginRequest{Username: " r "}).Login())
}

func TestToLatestResponse(t *testing.T) {
	updatedAt := time.Date(2024, 5, 10, 6, 0, 0, 0, time.UTC)
	snap := entities.NewSnapshot([]entities.PriceRecord{{"market": "Azadpur"}, {"market": "Vashi"}}, updatedAt)

	resp := ToLatestResponse(snap)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, updatedAt, resp.UpdatedAt)

	body, err := json.Marshal(ToLatestResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"updatedAt":"0001-01-01T00:00:00Z","total":0,"records":[]}`, string(body))
}

func TestToStatusResponse_WithoutScheduler(t *testing.T) {
	resp := ToStatusResponse(nil, nil, time.Now())

	assert.Equal(t, "disabled", resp.SchedulerState)
	assert.Equal(t, 0, resp.SnapshotTotal)
	assert.Nil(t, resp.SnapshotUpdatedAt)
	assert.Nil(t, resp.LastRun)
	assert.False(t, resp.Stale)
}

type noopRefresher struct{}

func (noopRefresher) RefreshOnce(ctx context.Context, trigger interfaces.RefreshTrigger) (*entities.Snapshot, error) {
	return entities.NewSnapshot(nil, time.Now()), nil
}

func TestToStatusResponse_Staleness(t *testing.T) {
	sched := scheduler.NewRefreshScheduler(noopRefresher{}, 30*time.Minute)
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	records := []entities.PriceRecord{{"commodity": "Wheat"}}

	fresh := ToStatusResponse(sched, entities.NewSnapshot(records, now.Add(-20*time.Minute)), now)
	assert.Equal(t, "idle", fresh.SchedulerState)
	assert.Equal(t, "30m0s", fresh.RefreshInterval)
	assert.Equal(t, "20m0s", fresh.SnapshotAge)
	assert.False(t, fresh.Stale)

	old := ToStatusResponse(sched, entities.NewSnapshot(records, now.Add(-2*time.Hour)), now)
	assert.True(t, old.Stale)

	empty := ToStatusResponse(sched, entities.NewSnapshot(nil, time.Time{}), now)
	assert.False(t, empty.Stale, "an empty snapshot is cold, not stale")
}

func TestToAdResponse_NilImages(t *testing.T) {
	resp := ToAdResponse(&entities.Ad{ID: "ad-1"})
	assert.NotNil(t, resp.Images)
	assert.Empty(t, resp.Images)
}

package sqlstore

import (
	"context"
	"mandi-service/internal/domain/entities"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := entities.NewUser("ramesh", "Ramesh@Example.com", "hash")
	require.NoError(t, repo.Create(ctx, user))

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "ramesh", got.Username)
		assert.Equal(t, "ramesh@example.com", got.Email)
		assert.Equal(t, entities.RoleUser, got.Role)
	})

	t.Run("lookup by email or username", func(t *testing.T) {
		byEmail, err := repo.GetByUsernameOrEmail(ctx, "", "ramesh@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		byName, err := repo.GetByUsernameOrEmail(ctx, "ramesh", "")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := repo.Create(ctx, entities.NewUser("ramesh", "other@example.com", "hash"))
		assert.ErrorIs(t, err, entities.ErrConflict)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, entities.NewUser("suresh", "ramesh@example.com", "hash"))
		assert.ErrorIs(t, err, entities.ErrConflict)
	})
}

func newTestAd(title, state, district, description string, createdAt time.Time) *entities.Ad {
	ad := entities.NewAd(entities.Ad{
		Title:       title,
		Price:       decimal.RequireFromString("1250.50"),
		State:       state,
		District:    district,
		Description: description,
		UserID:      "u1",
		SellerName:  "ramesh",
	})
	ad.CreatedAt = createdAt
	return ad
}

func TestAdRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAdRepository(newTestDB(t))

	onion := newTestAd("Red Onion 50kg", "Maharashtra", "Nashik", "Fresh harvest", baseTime)
	wheat := newTestAd("Wheat", "Punjab", "Ludhiana", "Sharbati grade, 100% clean", baseTime.Add(time.Hour))
	potato := newTestAd("Potato", "Maharashtra", "Pune", "ONION free bags", baseTime.Add(2*time.Hour))
	for _, ad := range []*entities.Ad{onion, wheat, potato} {
		require.NoError(t, repo.Create(ctx, ad))
	}

	tests := []struct {
		name   string
		filter entities.AdFilter
		want   []string
	}{
		{"all newest first", entities.AdFilter{}, []string{potato.ID, wheat.ID, onion.ID}},
		{"state", entities.AdFilter{State: "Maharashtra"}, []string{potato.ID, onion.ID}},
		{"state and district", entities.AdFilter{State: "Maharashtra", District: "Nashik"}, []string{onion.ID}},
		{"query is case insensitive over title and description", entities.AdFilter{Query: "onion"}, []string{potato.ID, onion.ID}},
		{"query percent is literal", entities.AdFilter{Query: "100%"}, []string{wheat.ID}},
		{"query category", entities.AdFilter{Query: "general"}, []string{potato.ID, wheat.ID, onion.ID}},
		{"no match", entities.AdFilter{Query: "mango"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ads, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(ads))
			for _, ad := range ads {
				ids = append(ids, ad.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("get keeps price and defaults", func(t *testing.T) {
		got, err := repo.GetByID(ctx, onion.ID)
		require.NoError(t, err)
		assert.True(t, got.Price.Equal(decimal.RequireFromString("1250.50")))
		assert.Equal(t, entities.DefaultAdCategory, got.Category)
		assert.Empty(t, got.Images)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, wheat.ID))
		_, err := repo.GetByID(ctx, wheat.ID)
		assert.ErrorIs(t, err, entities.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, wheat.ID), entities.ErrNotFound)
	})
}

func TestChatRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository(newTestDB(t))

	first := entities.NewConversation(nil,
		entities.ConversationMember{UserID: "a", Username: "alice"},
		entities.ConversationMember{UserID: "b", Username: "bob"},
	)
	first.CreatedAt = baseTime
	second := entities.NewConversation(nil,
		entities.ConversationMember{UserID: "a", Username: "alice"},
		entities.ConversationMember{UserID: "c", Username: "carol"},
	)
	second.CreatedAt = baseTime.Add(time.Minute)
	require.NoError(t, repo.CreateConversation(ctx, first))
	require.NoError(t, repo.CreateConversation(ctx, second))

	t.Run("find between is symmetric", func(t *testing.T) {
		conv, err := repo.FindConversationBetween(ctx, "b", "a")
		require.NoError(t, err)
		assert.Equal(t, first.ID, conv.ID)
		assert.Len(t, conv.Members, 2)
	})

	t.Run("find between strangers", func(t *testing.T) {
		_, err := repo.FindConversationBetween(ctx, "b", "c")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("messages update preview and ordering", func(t *testing.T) {
		m1 := entities.NewMessage(first.ID, entities.MessageSender{UserID: "a", Username: "alice"}, "hello")
		m1.CreatedAt = baseTime.Add(10 * time.Minute)
		m2 := entities.NewMessage(first.ID, entities.MessageSender{UserID: "b", Username: "bob"}, "price?")
		m2.CreatedAt = baseTime.Add(11 * time.Minute)
		require.NoError(t, repo.AddMessage(ctx, m2))
		require.NoError(t, repo.AddMessage(ctx, m1))

		messages, err := repo.ListMessages(ctx, first.ID)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "hello", messages[0].Text)
		assert.Equal(t, "bob", messages[1].Sender.Username)

		conv, err := repo.GetConversation(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", conv.LastMessage)
		require.NotNil(t, conv.LastMessageAt)
	})

	t.Run("list conversations most recent message first", func(t *testing.T) {
		convs, err := repo.ListConversations(ctx, "a")
		require.NoError(t, err)
		require.Len(t, convs, 2)
		// second has no messages yet
		assert.Equal(t, first.ID, convs[0].ID)
		assert.Equal(t, second.ID, convs[1].ID)
		assert.Len(t, convs[1].Members, 2)

		onlyB, err := repo.ListConversations(ctx, "b")
		require.NoError(t, err)
		assert.Len(t, onlyB, 1)
	})

	t.Run("message to missing conversation", func(t *testing.T) {
		err := repo.AddMessage(ctx, entities.NewMessage("missing", entities.MessageSender{UserID: "a"}, "hi"))
		assert.ErrorIs(t, err, entities.ErrNotFound)

		msgs, err := repo.ListMessages(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})

	t.Run("get missing conversation", func(t *testing.T) {
		_, err := repo.GetConversation(ctx, "missing")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestTradeRequestRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTradeRequestRepository(newTestDB(t))

	var ids []string
	for i, commodity := range []string{"Onion", "Wheat", "Cotton"} {
		req := entities.NewTradeRequest(entities.RequestTypeBuy, commodity, "10 quintal", decimal.NewFromInt(2000), "Nashik", "ramesh")
		req.CreatedAt = baseTime.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, req))
		ids = append(ids, req.ID)
	}

	t.Run("list newest first with limit", func(t *testing.T) {
		requests, err := repo.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, "Cotton", requests[0].Commodity)
		assert.Equal(t, "Wheat", requests[1].Commodity)
		assert.Equal(t, entities.RequestStatusOpen, requests[0].Status)
	})

	t.Run("update status", func(t *testing.T) {
		updated, err := repo.UpdateStatus(ctx, ids[0], entities.RequestStatusApproved)
		require.NoError(t, err)
		assert.Equal(t, entities.RequestStatusApproved, updated.Status)
		assert.Equal(t, "Onion", updated.Commodity)

		again, err := repo.UpdateStatus(ctx, ids[0], entities.RequestStatusApproved)
		require.NoError(t, err)
		assert.Equal(t, entities.RequestStatusApproved, again.Status)
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := repo.UpdateStatus(ctx, "missing", entities.RequestStatusRejected)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(configWithDriver("postgres"))
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpen_SQLite(t *testing.T) {
	db, err := Open(configWithDriver("sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	assert.NoError(t, Ping(context.Background(), db))
}

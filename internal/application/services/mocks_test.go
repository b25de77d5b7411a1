package services

import (
	"context"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/mock"
)

// fakeFetcher returns a fixed feed and counts calls. When gate is set every call waits on it.
type fakeFetcher struct {
	records []entities.PriceRecord
	err     error
	gate    chan struct{}
	calls   atomic.Int32
}

func (f *fakeFetcher) FetchAll(ctx context.Context) ([]entities.PriceRecord, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return entities.CloneRecords(f.records), nil
}

// countingStore wraps a store and counts reads and writes
type countingStore struct {
	interfaces.SnapshotStore
	mu     sync.Mutex
	reads  int
	writes int
}

func (c *countingStore) Read(ctx context.Context) (*entities.Snapshot, error) {
	c.mu.Lock()
	c.reads++
	c.mu.Unlock()
	return c.SnapshotStore.Read(ctx)
}

func (c *countingStore) Write(ctx context.Context, records []entities.PriceRecord) (*entities.Snapshot, error) {
	c.mu.Lock()
	c.writes++
	c.mu.Unlock()
	return c.SnapshotStore.Write(ctx, records)
}

func (c *countingStore) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads, c.writes
}

type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Read(ctx context.Context) (*entities.Snapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(*entities.Snapshot)
	return snap, args.Error(1)
}

func (m *MockSnapshotStore) Write(ctx context.Context, records []entities.PriceRecord) (*entities.Snapshot, error) {
	args := m.Called(ctx, records)
	snap, _ := args.Get(0).(*entities.Snapshot)
	return snap, args.Error(1)
}

func (m *MockSnapshotStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSnapshotStore) Close() error {
	return m.Called().Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*entities.User, error) {
	args := m.Called(ctx, username, email)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

type MockAdRepository struct {
	mock.Mock
}

func (m *MockAdRepository) Create(ctx context.Context, ad *entities.Ad) error {
	return m.Called(ctx, ad).Error(0)
}

func (m *MockAdRepository) GetByID(ctx context.Context, id string) (*entities.Ad, error) {
	args := m.Called(ctx, id)
	ad, _ := args.Get(0).(*entities.Ad)
	return ad, args.Error(1)
}

func (m *MockAdRepository) List(ctx context.Context, filter entities.AdFilter) ([]*entities.Ad, error) {
	args := m.Called(ctx, filter)
	ads, _ := args.Get(0).([]*entities.Ad)
	return ads, args.Error(1)
}

func (m *MockAdRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) FindConversationBetween(ctx context.Context, userA, userB string) (*entities.Conversation, error) {
	args := m.Called(ctx, userA, userB)
	c, _ := args.Get(0).(*entities.Conversation)
	return c, args.Error(1)
}

func (m *MockChatRepository) CreateConversation(ctx context.Context, conversation *entities.Conversation) error {
	return m.Called(ctx, conversation).Error(0)
}

func (m *MockChatRepository) GetConversation(ctx context.Context, id string) (*entities.Conversation, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entities.Conversation)
	return c, args.Error(1)
}

func (m *MockChatRepository) ListConversations(ctx context.Context, userID string) ([]*entities.Conversation, error) {
	args := m.Called(ctx, userID)
	cs, _ := args.Get(0).([]*entities.Conversation)
	return cs, args.Error(1)
}

func (m *MockChatRepository) ListMessages(ctx context.Context, conversationID string) ([]*entities.Message, error) {
	args := m.Called(ctx, conversationID)
	ms, _ := args.Get(0).([]*entities.Message)
	return ms, args.Error(1)
}

func (m *MockChatRepository) AddMessage(ctx context.Context, message *entities.Message) error {
	return m.Called(ctx, message).Error(0)
}

type MockTradeRequestRepository struct {
	mock.Mock
}

func (m *MockTradeRequestRepository) Create(ctx context.Context, request *entities.TradeRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockTradeRequestRepository) List(ctx context.Context, limit int) ([]*entities.TradeRequest, error) {
	args := m.Called(ctx, limit)
	rs, _ := args.Get(0).([]*entities.TradeRequest)
	return rs, args.Error(1)
}

func (m *MockTradeRequestRepository) UpdateStatus(ctx context.Context, id string, status entities.RequestStatus) (*entities.TradeRequest, error) {
	args := m.Called(ctx, id, status)
	r, _ := args.Get(0).(*entities.TradeRequest)
	return r, args.Error(1)
}

// stubTokens issues "token-<user id>"
type stubTokens struct{}

func (stubTokens) Issue(identity interfaces.Identity) (string, error) {
	return "token-" + identity.UserID, nil
}

func (stubTokens) Verify(token string) (*interfaces.Identity, error) {
	return nil, entities.ErrUnauthorized
}

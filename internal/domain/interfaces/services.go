package interfaces

import (
	"context"
	"mandi-service/internal/domain/entities"
)

// RefreshTrigger identifies who started a refresh
type RefreshTrigger string

const (
	TriggerScheduler RefreshTrigger = "scheduler"
	TriggerColdStart RefreshTrigger = "cold_start"
	TriggerManual    RefreshTrigger = "manual"
)

// MandiService serves the cached price feed.
// All three operations share one fetch-and-write path.
type MandiService interface {
	// Latest returns the stored snapshot, populating the store first when it is empty
	Latest(ctx context.Context) (*entities.Snapshot, error)

	// Refresh fetches the feed unconditionally and replaces the stored snapshot
	Refresh(ctx context.Context) (*entities.Snapshot, error)

	// RefreshOnce is the shared fetch+write operation
	RefreshOnce(ctx context.Context, trigger RefreshTrigger) (*entities.Snapshot, error)

	// Peek reads the store without triggering a fetch
	Peek(ctx context.Context) (*entities.Snapshot, error)
}

// Identity is the authenticated caller as carried in the bearer token
type Identity struct {
	UserID   string
	Username string
	Role     string
}

type AuthResult struct {
	Token string
	User  *entities.User
}

type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, login, password string) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*entities.User, error)
}

type AdService interface {
	Create(ctx context.Context, who Identity, ad entities.Ad) (*entities.Ad, error)
	List(ctx context.Context, filter entities.AdFilter) ([]*entities.Ad, error)
	Get(ctx context.Context, id string) (*entities.Ad, error)
	Delete(ctx context.Context, who Identity, id string) error
}

type ChatService interface {
	StartConversation(ctx context.Context, who Identity, otherUserID string, adID *string) (*entities.Conversation, error)
	ListConversations(ctx context.Context, who Identity) ([]*entities.Conversation, error)
	ListMessages(ctx context.Context, who Identity, conversationID string) ([]*entities.Message, error)
	SendMessage(ctx context.Context, who Identity, conversationID, text string) (*entities.Message, error)
}

type TradeRequestService interface {
	Create(ctx context.Context, who Identity, request entities.TradeRequest) (*entities.TradeRequest, error)
	List(ctx context.Context) ([]*entities.TradeRequest, error)
	UpdateStatus(ctx context.Context, who Identity, id string, status entities.RequestStatus) (*entities.TradeRequest, error)
}

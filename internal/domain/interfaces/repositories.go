package interfaces

import (
	"context"
	"mandi-service/internal/domain/entities"
)

// UserRepository lookups return entities.ErrNotFound when nothing matches
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*entities.User, error)
}

type AdRepository interface {
	Create(ctx context.Context, ad *entities.Ad) error
	GetByID(ctx context.Context, id string) (*entities.Ad, error)
	List(ctx context.Context, filter entities.AdFilter) ([]*entities.Ad, error)
	Delete(ctx context.Context, id string) error
}

type ChatRepository interface {
	FindConversationBetween(ctx context.Context, userA, userB string) (*entities.Conversation, error)
	CreateConversation(ctx context.Context, conversation *entities.Conversation) error
	GetConversation(ctx context.Context, id string) (*entities.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]*entities.Conversation, error)
	ListMessages(ctx context.Context, conversationID string) ([]*entities.Message, error)
	// AddMessage stores the message and updates the conversation preview in one transaction
	AddMessage(ctx context.Context, message *entities.Message) error
}

type TradeRequestRepository interface {
	Create(ctx context.Context, request *entities.TradeRequest) error
	List(ctx context.Context, limit int) ([]*entities.TradeRequest, error)
	UpdateStatus(ctx context.Context, id string, status entities.RequestStatus) (*entities.TradeRequest, error)
}

package sqlstore

import (
	"context"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

var _ interfaces.ChatRepository = (*ChatRepository)(nil)

// FindConversationBetween returns the conversation both users are members of
func (r *ChatRepository) FindConversationBetween(ctx context.Context, userA, userB string) (*entities.Conversation, error) {
	var conv entities.Conversation
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_members ma ON ma.conversation_id = conversations.id AND ma.user_id = ?", userA).
		Joins("JOIN conversation_members mb ON mb.conversation_id = conversations.id AND mb.user_id = ?", userB).
		Preload("Members").
		Order("conversations.created_at ASC").
		First(&conv).Error
	if err != nil {
		return nil, translate(err)
	}
	return &conv, nil
}

// CreateConversation inserts the conversation and its members
func (r *ChatRepository) CreateConversation(ctx context.Context, conversation *entities.Conversation) error {
	return translate(r.db.WithContext(ctx).Create(conversation).Error)
}

func (r *ChatRepository) GetConversation(ctx context.Context, id string) (*entities.Conversation, error) {
	var conv entities.Conversation
	err := r.db.WithContext(ctx).
		Preload("Members").
		First(&conv, "conversations.id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &conv, nil
}

// ListConversations returns the user's conversations, most recent message first.
// Conversations without messages go last.
func (r *ChatRepository) ListConversations(ctx context.Context, userID string) ([]*entities.Conversation, error) {
	conversations := []*entities.Conversation{}
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_members me ON me.conversation_id = conversations.id AND me.user_id = ?", userID).
		Preload("Members").
		Order("CASE WHEN conversations.last_message_at IS NULL THEN 1 ELSE 0 END").
		Order("conversations.last_message_at DESC").
		Order("conversations.created_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// ListMessages returns the messages of a conversation in creation order
func (r *ChatRepository) ListMessages(ctx context.Context, conversationID string) ([]*entities.Message, error) {
	messages := []*entities.Message{}
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// AddMessage stores the message and updates the conversation preview
func (r *ChatRepository) AddMessage(ctx context.Context, message *entities.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return translate(err)
		}

		result := tx.Model(&entities.Conversation{}).
			Where("id = ?", message.ConversationID).
			Updates(map[string]interface{}{
				"last_message":    message.Text,
				"last_message_at": message.CreatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entities.ErrNotFound
		}
		return nil
	})
}

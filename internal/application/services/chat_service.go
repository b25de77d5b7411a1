package services

import (
	"context"
	"errors"
	"fmt"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"mandi-service/internal/infrastructure/logging"
	"strings"
)

// chatService is a poll-based two-party chat. Clients fetch messages, nothing is pushed.
type chatService struct {
	chats    interfaces.ChatRepository
	users    interfaces.UserRepository
	security logging.SecurityLogger
}

func NewChatService(chats interfaces.ChatRepository, users interfaces.UserRepository) interfaces.ChatService {
	return &chatService{chats: chats, users: users, security: logging.Security()}
}

// StartConversation returns the existing thread between the two users or opens a new one
func (s *chatService) StartConversation(ctx context.Context, who interfaces.Identity, otherUserID string, adID *string) (*entities.Conversation, error) {
	otherUserID = strings.TrimSpace(otherUserID)
	if otherUserID == "" {
		return nil, entities.NewValidationError("otherUserId is required")
	}
	if otherUserID == who.UserID {
		return nil, entities.NewValidationError("Cannot start a conversation with yourself")
	}

	other, err := s.users.GetByID(ctx, otherUserID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("%w: User not found", entities.ErrNotFound)
		}
		return nil, err
	}

	existing, err := s.chats.FindConversationBetween(ctx, who.UserID, other.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, entities.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up conversation: %w", err)
	}

	if adID != nil && strings.TrimSpace(*adID) == "" {
		adID = nil
	}

	conversation := entities.NewConversation(adID,
		entities.ConversationMember{UserID: who.UserID, Username: who.Username},
		entities.ConversationMember{UserID: other.ID, Username: other.Username},
	)
	if err := s.chats.CreateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conversation, nil
}

func (s *chatService) ListConversations(ctx context.Context, who interfaces.Identity) ([]*entities.Conversation, error) {
	return s.chats.ListConversations(ctx, who.UserID)
}

func (s *chatService) ListMessages(ctx context.Context, who interfaces.Identity, conversationID string) ([]*entities.Message, error) {
	if _, err := s.memberConversation(ctx, who, conversationID); err != nil {
		return nil, err
	}
	return s.chats.ListMessages(ctx, conversationID)
}

func (s *chatService) SendMessage(ctx context.Context, who interfaces.Identity, conversationID, text string) (*entities.Message, error) {
	text = strings.TrimSpace(text)
	if conversationID == "" || text == "" {
		return nil, entities.NewValidationError("conversationId and text are required")
	}

	if _, err := s.memberConversation(ctx, who, conversationID); err != nil {
		return nil, err
	}

	message := entities.NewMessage(conversationID, entities.MessageSender{
		UserID:   who.UserID,
		Username: who.Username,
	}, text)
	if err := s.chats.AddMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return message, nil
}

// memberConversation loads the conversation and checks the caller takes part in it
func (s *chatService) memberConversation(ctx context.Context, who interfaces.Identity, conversationID string) (*entities.Conversation, error) {
	conversation, err := s.chats.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("%w: Conversation not found", entities.ErrNotFound)
		}
		return nil, err
	}

	if !conversation.HasMember(who.UserID) {
		s.security.AccessDenied(ctx, who.UserID, "conversation:"+conversationID)
		return nil, fmt.Errorf("%w: Not a member of this conversation", entities.ErrForbidden)
	}
	return conversation, nil
}

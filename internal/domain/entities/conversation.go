package entities

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a two-party chat thread, optionally about an ad
type Conversation struct {
	ID            string               `gorm:"primaryKey;size:36" json:"id"`
	AdID          *string              `gorm:"size:36;index" json:"adId,omitempty"`
	Members       []ConversationMember `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"members"`
	LastMessage   string               `gorm:"type:text" json:"lastMessage"`
	LastMessageAt *time.Time           `gorm:"index" json:"lastMessageAt,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

type ConversationMember struct {
	ID             uint   `gorm:"primaryKey" json:"-"`
	ConversationID string `gorm:"size:36;not null;uniqueIndex:idx_conversation_member" json:"-"`
	UserID         string `gorm:"size:36;not null;index;uniqueIndex:idx_conversation_member" json:"userId"`
	Username       string `gorm:"size:64" json:"username"`
}

func NewConversation(adID *string, members ...ConversationMember) *Conversation {
	return &Conversation{
		ID:      uuid.NewString(),
		AdID:    adID,
		Members: members,
	}
}

func (c *Conversation) HasMember(userID string) bool {
	for _, m := range c.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

type MessageSender struct {
	UserID   string `gorm:"size:36" json:"userId"`
	Username string `gorm:"size:64" json:"username"`
}

type Message struct {
	ID             string        `gorm:"primaryKey;size:36" json:"id"`
	ConversationID string        `gorm:"size:36;not null;index" json:"conversationId"`
	Sender         MessageSender `gorm:"embedded;embeddedPrefix:sender_" json:"sender"`
	Text           string        `gorm:"type:text;not null" json:"text"`
	CreatedAt      time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func NewMessage(conversationID string, sender MessageSender, text string) *Message {
	return &Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Sender:         sender,
		Text:           text,
	}
}

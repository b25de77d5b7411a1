package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleUser   = "user"
	RoleDealer = "dealer"
	RoleAdmin  = "admin"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:16;not null" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser builds a user with the default role. Email is stored lowercased.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         RoleUser,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CanReviewRequests reports whether the role may change a trade request status
func CanReviewRequests(role string) bool {
	return role == RoleAdmin || role == RoleDealer
}

package dto

import (
	"mandi-service/internal/domain/entities"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// newValidator reports field names as they appear in JSON
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateWith runs the struct tags and hides the validator details behind message
func validateWith(body interface{}, message string) error {
	if err := validate.Struct(body); err != nil {
		return entities.NewValidationError(message)
	}
	return nil
}

// SignupRequest is the body of POST /api/auth/signup
type SignupRequest struct {
	Username string `json:"username" example:"ramesh" validate:"required"`
	Email    string `json:"email" example:"ramesh@example.com" validate:"required"`
	Password string `json:"password" example:"s3cret" validate:"required"`
}

func (r *SignupRequest) Validate() error {
	return validateWith(r, "All fields required")
}

// LoginRequest accepts either username or email as the login
type LoginRequest struct {
	Username string `json:"username,omitempty" example:"ramesh" validate:"required_without=Email"`
	Email    string `json:"email,omitempty" example:"ramesh@example.com" validate:"required_without=Username"`
	Password string `json:"password" example:"s3cret" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validateWith(r, "All fields required")
}

// Login returns the email when given, the username otherwise
func (r *LoginRequest) Login() string {
	if email := strings.TrimSpace(r.Email); email != "" {
		return email
	}
	return strings.TrimSpace(r.Username)
}

// CreateAdRequest is the body of POST /api/ads
type CreateAdRequest struct {
	Title       string          `json:"title" example:"Basmati rice" validate:"required"`
	Price       decimal.Decimal `json:"price" swaggertype:"number" example:"3200"`
	Quantity    string          `json:"quantity" example:"50 kg"`
	Category    string          `json:"category" example:"Grains"`
	State       string          `json:"state" example:"Punjab" validate:"required"`
	District    string          `json:"district" example:"Amritsar" validate:"required"`
	Description string          `json:"description"`
	Images      []string        `json:"images" validate:"omitempty,max=10,dive,required"`
	Phone       string          `json:"phone" example:"9876543210"`
}

func (r *CreateAdRequest) Validate() error {
	if err := validateWith(r, "Title, price, state and district are required"); err != nil {
		return err
	}
	if r.Price.IsZero() {
		return entities.NewValidationError("Title, price, state and district are required")
	}
	return nil
}

// StartConversationRequest is the body of POST /api/chat/conversation
type StartConversationRequest struct {
	OtherUserID string  `json:"otherUserId" validate:"required"`
	AdID        *string `json:"adId,omitempty"`
}

func (r *StartConversationRequest) Validate() error {
	return validateWith(r, "otherUserId is required")
}

// SendMessageRequest is the body of POST /api/chat/message
type SendMessageRequest struct {
	ConversationID string `json:"conversationId" validate:"required"`
	Text           string `json:"text" example:"Is the wheat still available?" validate:"required"`
}

func (r *SendMessageRequest) Validate() error {
	return validateWith(r, "conversationId and text are required")
}

// CreateTradeRequest is the body of POST /api/requests
type CreateTradeRequest struct {
	Type      string          `json:"type" example:"SELL" enums:"BUY,SELL" validate:"required"`
	Commodity string          `json:"commodity" example:"Wheat" validate:"required"`
	Qty       string          `json:"qty" example:"20 quintal" validate:"required"`
	Price     decimal.Decimal `json:"price" swaggertype:"number" example:"2150"`
	Location  string          `json:"location" example:"Karnal" validate:"required"`
}

func (r *CreateTradeRequest) Validate() error {
	if err := validateWith(r, "Missing fields"); err != nil {
		return err
	}
	if r.Price.IsZero() {
		return entities.NewValidationError("Missing fields")
	}
	return nil
}

// UpdateStatusRequest is the body of PUT /api/requests/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" example:"APPROVED" enums:"OPEN,APPROVED,REJECTED" validate:"required,oneof=OPEN APPROVED REJECTED"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validateWith(r, "Invalid status")
}

package services

import (
	"context"
	"errors"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/infrastructure/auth"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByUsernameOrEmail", mock.Anything, "ramesh", "ramesh@example.com").Return(nil, entities.ErrNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*entities.User")).Return(nil)

	service := NewAuthService(users, auth.NewBcryptHasher(4), stubTokens{})
	result, err := service.Signup(context.Background(), " ramesh ", " Ramesh@Example.com ", "secret")

	require.NoError(t, err)
	assert.Equal(t, "token-"+result.User.ID, result.Token)
	assert.Equal(t, "ramesh", result.User.Username)
	assert.Equal(t, "ramesh@example.com", result.User.Email)
	assert.Equal(t, entities.RoleUser, result.User.Role)
	assert.NotEqual(t, "secret", result.User.PasswordHash)
	users.AssertExpectations(t)
}

func TestAuthService_SignupValidation(t *testing.T) {
	tests := []struct {
		name, username, email, password string
	}{
		{"missing username", "", "a@b.c", "pw"},
		{"missing email", "ramesh", "  ", "pw"},
		{"missing password", "ramesh", "a@b.c", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			service := NewAuthService(users, auth.NewBcryptHasher(4), stubTokens{})

			_, err := service.Signup(context.Background(), tt.username, tt.email, tt.password)

			assert.ErrorIs(t, err, entities.ErrInvalidInput)
			assert.Contains(t, err.Error(), "All fields required")
			users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_SignupExistingUser(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByUsernameOrEmail", mock.Anything, "ramesh", "r@example.com").Return(&entities.User{ID: "u-1"}, nil)

	service := NewAuthService(users, auth.NewBcryptHasher(4), stubTokens{})
	_, err := service.Signup(context.Background(), "ramesh", "r@example.com", "pw")

	assert.ErrorIs(t, err, entities.ErrConflict)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewBcryptHasher(4)
	hash, err := hasher.Hash("secret")
	require.NoError(t, err)
	stored := &entities.User{ID: "u-1", Username: "ramesh", Email: "r@example.com", PasswordHash: hash, Role: entities.RoleDealer}

	tests := []struct {
		name     string
		login    string
		password string
		lookup   []interface{}
		found    *entities.User
		lookErr  error
		wantErr  error
		wantText string
	}{
		{name: "by username", login: " ramesh ", password: "secret", lookup: []interface{}{"ramesh", "ramesh"}, found: stored},
		{name: "by email", login: "R@Example.com", password: "secret", lookup: []interface{}{"R@Example.com", "r@example.com"}, found: stored},
		{name: "unknown user", login: "nobody", password: "secret", lookup: []interface{}{"nobody", "nobody"}, lookErr: entities.ErrNotFound, wantErr: entities.ErrUnauthorized, wantText: "User not found"},
		{name: "wrong password", login: "ramesh", password: "nope", lookup: []interface{}{"ramesh", "ramesh"}, found: stored, wantErr: entities.ErrUnauthorized, wantText: "Wrong password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			users.On("GetByUsernameOrEmail", mock.Anything, tt.lookup[0], tt.lookup[1]).Return(tt.found, tt.lookErr)

			result, err := NewAuthService(users, hasher, stubTokens{}).Login(context.Background(), tt.login, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.wantText)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "token-u-1", result.Token)
			assert.Equal(t, entities.RoleDealer, result.User.Role)
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, "u-1").Return(&entities.User{ID: "u-1", Username: "ramesh"}, nil)
	users.On("GetByID", mock.Anything, "gone").Return(nil, entities.ErrNotFound)
	users.On("GetByID", mock.Anything, "broken").Return(nil, errors.New("db down"))

	service := NewAuthService(users, auth.NewBcryptHasher(4), stubTokens{})

	user, err := service.Me(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "ramesh", user.Username)

	_, err = service.Me(context.Background(), "gone")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, err = service.Me(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrNotFound)
}

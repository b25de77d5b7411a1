package services

import (
	"context"
	"errors"
	"fmt"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"mandi-service/internal/infrastructure/logging"
	"mandi-service/internal/infrastructure/metrics"
	"strings"
)

type authService struct {
	users    interfaces.UserRepository
	hasher   interfaces.PasswordHasher
	tokens   interfaces.TokenManager
	security logging.SecurityLogger
}

func NewAuthService(users interfaces.UserRepository, hasher interfaces.PasswordHasher, tokens interfaces.TokenManager) interfaces.AuthService {
	return &authService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		security: logging.Security(),
	}
}

// Signup registers a user with the default role and returns a token for it
func (s *authService) Signup(ctx context.Context, username, email, password string) (*interfaces.AuthResult, error) {
	username = strings.TrimSpace(username)
	email = entities.NormalizeEmail(email)
	if username == "" || email == "" || password == "" {
		metrics.RecordAuthEvent("signup", false)
		return nil, entities.NewValidationError("All fields required")
	}

	_, err := s.users.GetByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		metrics.RecordAuthEvent("signup", false)
		return nil, fmt.Errorf("%w: User already exists", entities.ErrConflict)
	case !errors.Is(err, entities.ErrNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := entities.NewUser(username, email, hash)
	if err := s.users.Create(ctx, user); err != nil {
		metrics.RecordAuthEvent("signup", false)
		if errors.Is(err, entities.ErrConflict) {
			return nil, fmt.Errorf("%w: User already exists", entities.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthEvent("signup", true)
	logging.Info(ctx, "User signed up", logging.Fields{logging.FieldUserID: user.ID})
	return result, nil
}

// Login accepts either the username or the email as login
func (s *authService) Login(ctx context.Context, login, password string) (*interfaces.AuthResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		metrics.RecordAuthEvent("login", false)
		return nil, entities.NewValidationError("All fields required")
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, login, entities.NormalizeEmail(login))
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			s.loginFailed(ctx, "unknown user")
			return nil, fmt.Errorf("%w: User not found", entities.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, entities.ErrUnauthorized) {
			s.loginFailed(ctx, "wrong password")
			return nil, fmt.Errorf("%w: Wrong password", entities.ErrUnauthorized)
		}
		return nil, err
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthEvent("login", true)
	return result, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*entities.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("%w: User not found", entities.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issue(user *entities.User) (*interfaces.AuthResult, error) {
	token, err := s.tokens.Issue(interfaces.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, err
	}
	return &interfaces.AuthResult{Token: token, User: user}, nil
}

func (s *authService) loginFailed(ctx context.Context, reason string) {
	metrics.RecordAuthEvent("login", false)
	s.security.AuthenticationFailed(ctx, logging.GetRemoteIP(ctx), reason)
}

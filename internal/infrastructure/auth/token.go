// Package auth issues bearer tokens and hashes passwords for the marketplace API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"mandi-service/internal/domain/entities"
	"mandi-service/internal/domain/interfaces"
	"mandi-service/internal/infrastructure/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

// Claims carried by every token: id, username and role plus the registered claims
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs HS256 tokens with a shared secret
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	clock  clockwork.Clock
}

// NewJWTManager crea el emisor de tokens
func NewJWTManager(cfg config.AuthConfig, clock clockwork.Clock) *JWTManager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &JWTManager{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
		clock:  clock,
	}
}

var _ interfaces.TokenManager = (*JWTManager)(nil)

// Issue signs a token for identity that expires after the configured TTL
func (m *JWTManager) Issue(identity interfaces.Identity) (string, error) {
	now := m.clock.Now()
	claims := Claims{
		ID:       identity.UserID,
		Username: identity.Username,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature, issuer and expiry
func (m *JWTManager) Verify(tokenString string) (*interfaces.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", entities.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: %v", entities.ErrUnauthorized, err)
	}

	if claims.ID == "" {
		return nil, fmt.Errorf("%w: token has no user id", entities.ErrUnauthorized)
	}

	return &interfaces.Identity{
		UserID:   claims.ID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

type contextKey string

const identityKey contextKey = "auth_identity"

// WithIdentity stores the authenticated caller in ctx
func WithIdentity(ctx context.Context, identity *interfaces.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// FromContext returns the authenticated caller, if any
func FromContext(ctx context.Context) (*interfaces.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*interfaces.Identity)
	return identity, ok && identity != nil
}

// Package auth adapts the external sign-in gate to this service. A trusted
// front end verifies Sign-In With Farcaster (or a wallet signature), then
// asks the API to resolve the user and issue a session token. This package
// issues and verifies those tokens and exposes the caller to services via
// the request context.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/osse101/Mivy_Go/internal/domain"
)

// User is the authenticated caller attached to a request
type User struct {
	ID       string  `json:"user_id"`
	Fid      int64   `json:"fid,omitempty"`
	Username string  `json:"username"`
	Wallet   *string `json:"wallet,omitempty"`
}

// Claims are the session JWT claims
type Claims struct {
	UserID   string  `json:"user_id"`
	Fid      int64   `json:"fid,omitempty"`
	Username string  `json:"username"`
	Wallet   *string `json:"wallet,omitempty"`
	jwt.RegisteredClaims
}

// Session is an issued token and its expiry
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	TokenType string    `json:"token_type"`
}

// TokenManager issues and verifies HS256 session tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager. The secret must be non-empty.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: session secret is empty", domain.ErrInvalidInput)
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a session token for u
func (m *TokenManager) Issue(u User) (*Session, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := &Claims{
		UserID:   u.ID,
		Fid:      u.Fid,
		Username: u.Username,
		Wallet:   u.Wallet,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   TokenSubject,
			Issuer:    TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return &Session{Token: signed, ExpiresAt: expiresAt, TokenType: "Bearer"}, nil
}

// Verify parses a session token and returns the user it names
func (m *TokenManager) Verify(token string) (*User, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithSubject(TokenSubject),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &User{
		ID:       claims.UserID,
		Fid:      claims.Fid,
		Username: claims.Username,
		Wallet:   claims.Wallet,
	}, nil
}

type contextKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// GetAuthUser returns the authenticated caller, or nil for anonymous requests
func GetAuthUser(ctx context.Context) *User {
	u, _ := ctx.Value(contextKey{}).(*User)
	return u
}

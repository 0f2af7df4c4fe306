// Package auth resolves user identities for the messaging session layer:
// session JWTs minted at login and password hashing for the directory.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chat-session/domain"
)

// SessionClaims is the payload of a login session token. The messaging core
// only ever reads the identity out of it.
type SessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Sessions mints and validates login session tokens.
type Sessions struct {
	secret   []byte
	lifetime time.Duration
}

func NewSessions(secret []byte, lifetime time.Duration) *Sessions {
	return &Sessions{secret: secret, lifetime: lifetime}
}

// Mint creates a signed HS256 session token for an authenticated identity.
func (s *Sessions) Mint(identity domain.Identity, now time.Time) (string, error) {
	claims := &SessionClaims{
		Name:  identity.Name,
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "chat-session",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Resolve validates a session token and returns the identity it carries.
func (s *Sessions) Resolve(tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("session token: %w", err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return domain.Identity{}, jwt.ErrSignatureInvalid
	}
	return domain.Identity{UserID: claims.Subject, Name: claims.Name, Email: claims.Email}, nil
}

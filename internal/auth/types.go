package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret     = errors.New("jwt secret not configured")
	ErrInvalidToken = errors.New("invalid token")
)

// gin context keys
const (
	ContextUserID = "user_id"
	ContextEmail  = "user_email"
)

// represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// issues and checks HS256 tokens signed with one shared secret
type Authenticator struct {
	secret []byte
}

package models

import "time"

// TokenType distinguishes persisted token rows. Access tokens are stateless
// and normally never stored; only long-lived tokens land in the table.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Token is the model for the 'tokens' table.
type Token struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	Type      TokenType `json:"type" db:"type"`
	ExpiresAt time.Time `json:"expires" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType is the closed set of token purposes. The tag is embedded at
// signing time and checked again at validation so a token minted for one
// purpose is never accepted in another purpose's slot.
type TokenType string

const (
	// TokenTypeAccess is the short lived stateless credential
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh is the store registered rotation credential
	TokenTypeRefresh TokenType = "refresh"
	// TokenTypeSecondary is the short lived step up credential
	TokenTypeSecondary TokenType = "secondary"
)

// Valid reports whether t is one of the known token purposes
func (t TokenType) Valid() bool {
	switch t {
	case TokenTypeAccess, TokenTypeRefresh, TokenTypeSecondary:
		return true
	}
	return false
}

// TokenClaims is the claim set carried by every token this module signs
type TokenClaims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"type,omitempty"`
}

// SubjectID parses the subject claim into the owning account id
func (c *TokenClaims) SubjectID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.RegisteredClaims.Subject)
	if err != nil {
		return uuid.Nil, ErrTokenMalformed
	}
	return id, nil
}

// Type returns the purpose tag
func (c *TokenClaims) Type() TokenType {
	return c.TokenType
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedTime returns the issued at time
func (c *TokenClaims) IssuedTime() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

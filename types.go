package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetIssuer() string
	GetAudience() []string
	GetContextKey() string
	GetRefreshTokenKey() string
	GetAccessTokenExpiration() time.Duration
	GetRefreshTokenExpiration() time.Duration
	GetSecondaryTokenExpiration() time.Duration
}

// Admins is the credential store for the privileged account records.
// Records are created once at signup and read on login and reissue, the
// core never mutates them.
type Admins interface {
	Create(ctx context.Context, record *Admin) (*Admin, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	GetByUsername(ctx context.Context, username string) (*Admin, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// TokenSigner mints and verifies signed tokens carrying a subject id and a
// purpose tag. Validation returns the claims so callers can check the tag.
type TokenSigner interface {
	CreateAccessToken(id uuid.UUID) (string, error)
	CreateRefreshToken(id uuid.UUID) (string, error)
	CreateSecondaryToken(id uuid.UUID) (string, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// AccessTokenValidator verifies access tokens presented upstream of the core
// operations that expect an already authenticated subject.
type AccessTokenValidator interface {
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// SessionStore maps opaque token strings to their owning subject id with a
// per entry TTL. Refresh and secondary tokens live in separate namespaces.
// The store is the single source of truth for revocation state; callers must
// not cache lookups across requests.
type SessionStore interface {
	SaveRefreshToken(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) error
	FindRefreshTokenOwner(ctx context.Context, token string) (uuid.UUID, error)
	// ConsumeRefreshToken atomically looks up and deletes the entry so two
	// concurrent reissues of the same token cannot both win.
	ConsumeRefreshToken(ctx context.Context, token string) (uuid.UUID, error)
	DeleteRefreshToken(ctx context.Context, token string) error

	SaveSecondaryToken(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) error
	FindSecondaryTokenOwner(ctx context.Context, token string) (uuid.UUID, error)
	DeleteSecondaryToken(ctx context.Context, token string) error
}

// SignupResponse is the result of account creation. The password hash is
// never part of any response payload.
type SignupResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// LoginResponse is the body payload of a successful login
type LoginResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	AccessToken string    `json:"access_token"`
}

// LoginResult pairs the response body with the refresh token side channel so
// transports can apply different exposure policies to each.
type LoginResult struct {
	Response     LoginResponse
	RefreshToken string
}

// ReissueResponse mirrors LoginResponse for the rotation result
type ReissueResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	AccessToken string    `json:"access_token"`
}

// ReissueResult pairs the reissue body with the rotated refresh token
type ReissueResult struct {
	Response     ReissueResponse
	RefreshToken string
}

// SecondaryTokenResponse is the result of secondary token issuance
type SecondaryTokenResponse struct {
	ID             uuid.UUID `json:"id"`
	SecondaryToken string    `json:"secondary_token"`
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

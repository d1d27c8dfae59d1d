package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// JWTSigner implements TokenSigner over HS256 signed JWTs. Each minted token
// carries the subject id, a purpose tag, and a per purpose expiration.
type JWTSigner struct {
	signingKey   []byte
	issuer       string
	audience     jwt.ClaimStrings
	accessTTL    time.Duration
	refreshTTL   time.Duration
	secondaryTTL time.Duration
	logger       Logger
}

var (
	_ TokenSigner          = (*JWTSigner)(nil)
	_ AccessTokenValidator = (*JWTSigner)(nil)
)

// NewTokenSigner creates a new JWTSigner from the auth configuration
func NewTokenSigner(cfg Config) *JWTSigner {
	var aud jwt.ClaimStrings
	if audience := cfg.GetAudience(); len(audience) > 0 {
		aud = make(jwt.ClaimStrings, len(audience))
		copy(aud, audience)
	}

	return &JWTSigner{
		signingKey:   []byte(cfg.GetSigningKey()),
		issuer:       cfg.GetIssuer(),
		audience:     aud,
		accessTTL:    cfg.GetAccessTokenExpiration(),
		refreshTTL:   cfg.GetRefreshTokenExpiration(),
		secondaryTTL: cfg.GetSecondaryTokenExpiration(),
		logger:       defLogger{},
	}
}

func (s *JWTSigner) WithLogger(logger Logger) *JWTSigner {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// CreateAccessToken mints a short lived stateless access token
func (s *JWTSigner) CreateAccessToken(id uuid.UUID) (string, error) {
	return s.signToken(id, TokenTypeAccess, s.accessTTL)
}

// CreateRefreshToken mints a refresh token; the caller registers it in the
// session store to make it redeemable
func (s *JWTSigner) CreateRefreshToken(id uuid.UUID) (string, error) {
	return s.signToken(id, TokenTypeRefresh, s.refreshTTL)
}

// CreateSecondaryToken mints a short lived elevation token
func (s *JWTSigner) CreateSecondaryToken(id uuid.UUID) (string, error) {
	return s.signToken(id, TokenTypeSecondary, s.secondaryTTL)
}

// ValidateRefreshToken verifies signature and expiry and requires the
// refresh purpose tag
func (s *JWTSigner) ValidateRefreshToken(token string) (*TokenClaims, error) {
	return s.validate(token, TokenTypeRefresh)
}

// ValidateAccessToken verifies signature and expiry and requires the access
// purpose tag
func (s *JWTSigner) ValidateAccessToken(token string) (*TokenClaims, error) {
	return s.validate(token, TokenTypeAccess)
}

// ValidateSecondaryToken verifies signature and expiry and requires the
// secondary purpose tag
func (s *JWTSigner) ValidateSecondaryToken(token string) (*TokenClaims, error) {
	return s.validate(token, TokenTypeSecondary)
}

func (s *JWTSigner) signToken(id uuid.UUID, typ TokenType, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", goerrors.New("token TTL must be positive", goerrors.CategoryBadInput)
	}

	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   id.String(),
			Audience:  s.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: typ,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

func (s *JWTSigner) validate(tokenString string, want TokenType) (*TokenClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if s.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(s.issuer))
	}
	if len(s.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(s.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			s.logger.Error("TokenSigner validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		s.logger.Error("TokenSigner validate could not decode claims")
		return nil, ErrTokenMalformed
	}

	if claims.TokenType != want {
		s.logger.Warn("TokenSigner validate rejected wrong purpose token", "want", want, "got", claims.TokenType)
		return nil, ErrTokenWrongType
	}

	return claims, nil
}

package auth_test

import (
	"testing"
	"time"

	"github.com/aparttime/go-auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenSignerRoundTrip(t *testing.T) {
	signer := auth.NewTokenSigner(testConfig())
	id := uuid.New()

	t.Run("access token", func(t *testing.T) {
		token, err := signer.CreateAccessToken(id)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := signer.ValidateAccessToken(token)
		assert.NoError(t, err)
		assert.Equal(t, auth.TokenTypeAccess, claims.Type())
		assert.Equal(t, "test-issuer", claims.Issuer)

		subject, err := claims.SubjectID()
		assert.NoError(t, err)
		assert.Equal(t, id, subject)
	})

	t.Run("refresh token", func(t *testing.T) {
		token, err := signer.CreateRefreshToken(id)
		assert.NoError(t, err)

		claims, err := signer.ValidateRefreshToken(token)
		assert.NoError(t, err)
		assert.Equal(t, auth.TokenTypeRefresh, claims.Type())
	})

	t.Run("secondary token", func(t *testing.T) {
		token, err := signer.CreateSecondaryToken(id)
		assert.NoError(t, err)

		claims, err := signer.ValidateSecondaryToken(token)
		assert.NoError(t, err)
		assert.Equal(t, auth.TokenTypeSecondary, claims.Type())
	})

	t.Run("every token carries a unique id", func(t *testing.T) {
		first, err := signer.CreateAccessToken(id)
		assert.NoError(t, err)

		second, err := signer.CreateAccessToken(id)
		assert.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestTokenSignerRejectsWrongPurpose(t *testing.T) {
	signer := auth.NewTokenSigner(testConfig())
	id := uuid.New()

	accessToken, err := signer.CreateAccessToken(id)
	assert.NoError(t, err)

	refreshToken, err := signer.CreateRefreshToken(id)
	assert.NoError(t, err)

	secondaryToken, err := signer.CreateSecondaryToken(id)
	assert.NoError(t, err)

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := signer.ValidateRefreshToken(accessToken)
		assert.ErrorIs(t, err, auth.ErrTokenWrongType)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := signer.ValidateAccessToken(refreshToken)
		assert.ErrorIs(t, err, auth.ErrTokenWrongType)
	})

	t.Run("secondary token is not an access token", func(t *testing.T) {
		_, err := signer.ValidateAccessToken(secondaryToken)
		assert.ErrorIs(t, err, auth.ErrTokenWrongType)
	})
}

func TestTokenSignerExpiry(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenExpiration = "1ns"

	signer := auth.NewTokenSigner(cfg)

	token, err := signer.CreateAccessToken(uuid.New())
	assert.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = signer.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
	assert.True(t, auth.IsTokenExpiredError(err))
}

func TestTokenSignerRejectsTampering(t *testing.T) {
	signer := auth.NewTokenSigner(testConfig())

	t.Run("garbage input", func(t *testing.T) {
		_, err := signer.ValidateAccessToken("not-a-jwt")
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
		assert.True(t, auth.IsMalformedError(err))
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		otherCfg := testConfig()
		otherCfg.SigningKey = "some-other-key"
		other := auth.NewTokenSigner(otherCfg)

		token, err := other.CreateAccessToken(uuid.New())
		assert.NoError(t, err)

		_, err = signer.ValidateAccessToken(token)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
	})

	t.Run("token minted for a different issuer", func(t *testing.T) {
		otherCfg := testConfig()
		otherCfg.Issuer = "someone-else"
		other := auth.NewTokenSigner(otherCfg)

		token, err := other.CreateAccessToken(uuid.New())
		assert.NoError(t, err)

		_, err = signer.ValidateAccessToken(token)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
	})
}

func TestTokenSignerRequiresPositiveTTL(t *testing.T) {
	cfg := auth.SimpleConfig{
		SigningKey:            "test-signing-key",
		AccessTokenExpiration: "-1m",
	}
	signer := auth.NewTokenSigner(cfg)

	_, err := signer.CreateAccessToken(uuid.New())
	assert.Error(t, err)
}

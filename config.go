package auth

import (
	"fmt"
	"time"
)

// SimpleConfig is a concrete Config for embedding applications. Durations
// accept expressions like "15m" or "72h" so they can come straight from
// external configuration.
type SimpleConfig struct {
	SigningKey               string   `json:"signing_key"`
	SigningMethod            string   `json:"signing_method"`
	Issuer                   string   `json:"issuer"`
	Audience                 []string `json:"audience"`
	ContextKey               string   `json:"context_key"`
	RefreshTokenKey          string   `json:"refresh_token_key"`
	AccessTokenExpiration    string   `json:"access_token_expiration"`
	RefreshTokenExpiration   string   `json:"refresh_token_expiration"`
	SecondaryTokenExpiration string   `json:"secondary_token_expiration"`
}

var _ Config = SimpleConfig{}

func (c SimpleConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c SimpleConfig) GetSigningMethod() string {
	if c.SigningMethod == "" {
		return "HS256"
	}
	return c.SigningMethod
}

func (c SimpleConfig) GetIssuer() string {
	return c.Issuer
}

func (c SimpleConfig) GetAudience() []string {
	return c.Audience
}

func (c SimpleConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return "user"
	}
	return c.ContextKey
}

func (c SimpleConfig) GetRefreshTokenKey() string {
	if c.RefreshTokenKey == "" {
		return "refresh_token"
	}
	return c.RefreshTokenKey
}

func (c SimpleConfig) GetAccessTokenExpiration() time.Duration {
	return parseDurationExpr(c.AccessTokenExpiration, 15*time.Minute)
}

func (c SimpleConfig) GetRefreshTokenExpiration() time.Duration {
	return parseDurationExpr(c.RefreshTokenExpiration, 7*24*time.Hour)
}

func (c SimpleConfig) GetSecondaryTokenExpiration() time.Duration {
	return parseDurationExpr(c.SecondaryTokenExpiration, 5*time.Minute)
}

func parseDurationExpr(expr string, def time.Duration) time.Duration {
	if expr == "" {
		return def
	}
	dur, err := time.ParseDuration(expr)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", expr),
		)
	}
	return dur
}

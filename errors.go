package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrDuplicateUsername is returned when signup reuses an existing username
var ErrDuplicateUsername = goerrors.New("username already taken", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict).
	WithTextCode("DUPLICATE_USERNAME")

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("IDENTITY_NOT_FOUND")

// ErrInvalidPassword is returned when the password does not match the stored hash
var ErrInvalidPassword = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("INVALID_PASSWORD")

// ErrMissingRefreshToken is returned when reissue is called without a refresh token
var ErrMissingRefreshToken = goerrors.New("missing refresh token", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("MISSING_REFRESH_TOKEN")

// ErrRefreshTokenNotFound is returned when a structurally valid refresh token
// has no session store entry: expired, revoked, or already rotated. The store
// is the revocation authority, the signature only proves integrity.
var ErrRefreshTokenNotFound = goerrors.New("refresh token not found", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("REFRESH_TOKEN_NOT_FOUND")

// ErrRefreshTokenNotOwned is returned on logout when the presented refresh
// token belongs to a different subject and the NotOwnerError policy is active
var ErrRefreshTokenNotOwned = goerrors.New("refresh token owned by another subject", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("REFRESH_TOKEN_NOT_OWNED")

// ErrTokenExpired is returned for tokens past their expiration
var ErrTokenExpired = goerrors.New("token expired", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed is returned for tokens that fail signature or structural checks
var ErrTokenMalformed = goerrors.New("token malformed", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrTokenWrongType is returned when a token carries a purpose tag other than
// the one the caller expected, e.g. an access token presented for reissue
var ErrTokenWrongType = goerrors.New("token has wrong type", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("TOKEN_WRONG_TYPE")

// ErrSessionTokenNotFound is the session store level miss; callers translate
// it into the operation specific failure
var ErrSessionTokenNotFound = goerrors.New("session token not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("SESSION_TOKEN_NOT_FOUND")

// ErrMismatchedHashAndPassword mirrors the bcrypt comparison failure
var ErrMismatchedHashAndPassword = goerrors.New("mismatched hash and password", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("PASSWORD_MISMATCH")

// ErrNoEmptyString is the error used for empty password input
var ErrNoEmptyString = goerrors.New("password can not be an empty string", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("EMPTY_PASSWORD")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

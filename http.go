package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// Bearer token framing on the Authorization header
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)

// BearerToken extracts the raw token from an Authorization header value
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(BearerPrefix):])
	return token, token != ""
}

func (a *AuthController) subjectFromRequest(ctx router.Context) (uuid.UUID, error) {
	token, ok := BearerToken(ctx.GetString(router.HeaderAuthorization, ""))
	if !ok {
		return uuid.Nil, ErrTokenMalformed
	}

	claims, err := a.Tokens.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, err
	}

	return claims.SubjectID()
}

func (a *AuthController) readRefreshCookie(ctx router.Context) string {
	return ctx.Cookies(a.Config.GetRefreshTokenKey())
}

func (a *AuthController) setRefreshCookie(ctx router.Context, token string) {
	ctx.Cookie(&router.Cookie{
		Name:     a.Config.GetRefreshTokenKey(),
		Value:    token,
		Expires:  time.Now().Add(a.Config.GetRefreshTokenExpiration()),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *AuthController) clearRefreshCookie(ctx router.Context) {
	ctx.Cookie(&router.Cookie{
		Name:     a.Config.GetRefreshTokenKey(),
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *AuthController) renderError(ctx router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	a.Logger.Info(
		"Auth request error",
		"error", richErr.Message,
		"category", richErr.Category,
		"text_code", richErr.TextCode,
		"path", ctx.OriginalURL(),
	)

	return ctx.JSON(status, map[string]any{
		"error":     richErr.Message,
		"text_code": richErr.TextCode,
	})
}

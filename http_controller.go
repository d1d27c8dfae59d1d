package auth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// AuthOperations is the surface the HTTP layer needs from the core
type AuthOperations interface {
	Signup(ctx context.Context, username, password string) (SignupResponse, error)
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Logout(ctx context.Context, id uuid.UUID, refreshToken string) error
	Reissue(ctx context.Context, refreshToken string) (ReissueResult, error)
	IssueSecondaryToken(ctx context.Context, id uuid.UUID) (SecondaryTokenResponse, error)
}

var _ AuthOperations = (*Auther)(nil)

type AuthControllerRoutes struct {
	Signup         string
	Login          string
	Logout         string
	Reissue        string
	SecondaryToken string
}

// AuthController exposes the core operations as a JSON API. The access token
// travels in the response body, the refresh token only ever in an HTTP-only
// cookie so browser scripts never see it.
type AuthController struct {
	Logger Logger
	Auther AuthOperations
	Tokens AccessTokenValidator
	Config Config
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Signup:         "/auth/signup",
			Login:          "/auth/login",
			Logout:         "/auth/logout",
			Reissue:        "/auth/reissue",
			SecondaryToken: "/auth/secondary-token",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing AuthOperations in auth controller...")
	}

	if c.Tokens == nil {
		panic("Missing AccessTokenValidator in auth controller...")
	}

	if c.Config == nil {
		panic("Missing Config in auth controller...")
	}

	return c
}

func WithAuther(auther AuthOperations) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithAccessTokenValidator(tokens AccessTokenValidator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Tokens = tokens
		return c
	}
}

func WithConfig(cfg Config) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Config = cfg
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Signup, controller.SignupPost).
		SetName("auth.signup.post")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login.post")

	app.Post(controller.Routes.Logout, controller.LogoutPost).
		SetName("auth.logout.post")

	app.Post(controller.Routes.Reissue, controller.ReissuePost).
		SetName("auth.reissue.post")

	app.Post(controller.Routes.SecondaryToken, controller.SecondaryTokenPost).
		SetName("auth.secondary-token.post")
}

// SignupRequest payload
type SignupRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
			validation.Length(3, 64),
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(8, 128),
		),
	)
}

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) SignupPost(ctx router.Context) error {
	payload := new(SignupRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("signup parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": "failed to parse payload",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{
			"error":      "invalid payload",
			"validation": err.Error(),
		})
	}

	res, err := a.Auther.Signup(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		return a.renderError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, res)
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": "failed to parse payload",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{
			"error":      "invalid payload",
			"validation": err.Error(),
		})
	}

	result, err := a.Auther.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		return a.renderError(ctx, err)
	}

	a.setRefreshCookie(ctx, result.RefreshToken)

	return ctx.JSON(router.StatusOK, result.Response)
}

func (a *AuthController) LogoutPost(ctx router.Context) error {
	id, err := a.subjectFromRequest(ctx)
	if err != nil {
		return a.renderError(ctx, err)
	}

	// Cookie may be absent; logout is a no-op then.
	refreshToken := a.readRefreshCookie(ctx)

	if err := a.Auther.Logout(ctx.Context(), id, refreshToken); err != nil {
		return a.renderError(ctx, err)
	}

	a.clearRefreshCookie(ctx)

	return ctx.JSON(router.StatusOK, map[string]string{
		"message": "logged out",
	})
}

func (a *AuthController) ReissuePost(ctx router.Context) error {
	refreshToken := a.readRefreshCookie(ctx)

	result, err := a.Auther.Reissue(ctx.Context(), refreshToken)
	if err != nil {
		return a.renderError(ctx, err)
	}

	a.setRefreshCookie(ctx, result.RefreshToken)

	return ctx.JSON(router.StatusOK, result.Response)
}

func (a *AuthController) SecondaryTokenPost(ctx router.Context) error {
	id, err := a.subjectFromRequest(ctx)
	if err != nil {
		return a.renderError(ctx, err)
	}

	res, err := a.Auther.IssueSecondaryToken(ctx.Context(), id)
	if err != nil {
		return a.renderError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, res)
}

package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// NotOwnerPolicy decides what logout does when the presented refresh token
// belongs to a different subject than the caller.
type NotOwnerPolicy int

const (
	// NotOwnerIgnore silently skips the deletion. A caller can not use
	// logout to probe or revoke another subject's session.
	NotOwnerIgnore NotOwnerPolicy = iota
	// NotOwnerError surfaces ErrRefreshTokenNotOwned instead of staying
	// silent, for deployments that want the mismatch observable.
	NotOwnerError
)

// Auther orchestrates signup, login, logout, reissue, and secondary token
// issuance over the credential store, the session store, and the signer.
// It holds no cross request state; all durable state lives in the stores.
type Auther struct {
	admins         Admins
	passwords      PasswordAuthenticator
	signer         TokenSigner
	sessions       SessionStore
	refreshTTL     time.Duration
	secondaryTTL   time.Duration
	notOwnerPolicy NotOwnerPolicy
	logger         Logger
}

// NewAuthenticator returns a new Auther
func NewAuthenticator(admins Admins, signer TokenSigner, sessions SessionStore, cfg Config) *Auther {
	return &Auther{
		admins:       admins,
		passwords:    BcryptAuthenticator{},
		signer:       signer,
		sessions:     sessions,
		refreshTTL:   cfg.GetRefreshTokenExpiration(),
		secondaryTTL: cfg.GetSecondaryTokenExpiration(),
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithPasswordAuthenticator overrides the default bcrypt comparator
func (s *Auther) WithPasswordAuthenticator(passwords PasswordAuthenticator) *Auther {
	if passwords != nil {
		s.passwords = passwords
	}
	return s
}

// WithNotOwnerPolicy overrides the logout owner mismatch handling
func (s *Auther) WithNotOwnerPolicy(policy NotOwnerPolicy) *Auther {
	s.notOwnerPolicy = policy
	return s
}

// Signup creates a new admin account. No token is issued at signup; login is
// a separate step.
func (s *Auther) Signup(ctx context.Context, username, password string) (SignupResponse, error) {
	if _, err := s.admins.GetByUsername(ctx, username); err == nil {
		return SignupResponse{}, ErrDuplicateUsername
	} else if !goerrors.Is(err, ErrIdentityNotFound) {
		s.logger.Error("Signup username lookup error", "error", err)
		return SignupResponse{}, err
	}

	hash, err := s.passwords.HashPassword(password)
	if err != nil {
		return SignupResponse{}, err
	}

	admin, err := s.admins.Create(ctx, &Admin{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		s.logger.Error("Signup create admin error", "error", err)
		return SignupResponse{}, err
	}

	return SignupResponse{
		ID:       admin.ID,
		Username: admin.Username,
	}, nil
}

// Login authenticates the credentials and establishes a session. The refresh
// token is registered in the session store with the configured TTL and
// returned through the result side channel, never bundled into the body.
func (s *Auther) Login(ctx context.Context, username, password string) (LoginResult, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if goerrors.Is(err, ErrIdentityNotFound) {
			return LoginResult{}, ErrIdentityNotFound
		}
		s.logger.Error("Login admin lookup error", "error", err)
		return LoginResult{}, err
	}

	if err := s.passwords.ComparePasswordAndHash(password, admin.PasswordHash); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			return LoginResult{}, ErrInvalidPassword
		}
		s.logger.Error("Login password comparison error", "error", err)
		return LoginResult{}, err
	}

	accessToken, refreshToken, err := s.mintTokenPair(admin.ID)
	if err != nil {
		return LoginResult{}, err
	}

	if err := s.sessions.SaveRefreshToken(ctx, admin.ID, refreshToken, s.refreshTTL); err != nil {
		s.logger.Error("Login refresh token registration error", "error", err)
		return LoginResult{}, err
	}

	return LoginResult{
		Response: LoginResponse{
			ID:          admin.ID,
			Username:    admin.Username,
			AccessToken: accessToken,
		},
		RefreshToken: refreshToken,
	}, nil
}

// Logout terminates the session owned by id. A missing refresh token is a
// no-op so clients that already lost their cookie can still log out. A token
// owned by another subject is handled per the configured NotOwnerPolicy.
func (s *Auther) Logout(ctx context.Context, id uuid.UUID, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	owner, err := s.sessions.FindRefreshTokenOwner(ctx, refreshToken)
	if err != nil {
		if goerrors.Is(err, ErrSessionTokenNotFound) {
			return nil
		}
		s.logger.Error("Logout refresh token lookup error", "error", err)
		return err
	}

	if owner != id {
		if s.notOwnerPolicy == NotOwnerError {
			return ErrRefreshTokenNotOwned
		}
		s.logger.Warn("Logout skipped for refresh token owned by another subject", "subject", id)
		return nil
	}

	if err := s.sessions.DeleteRefreshToken(ctx, refreshToken); err != nil {
		s.logger.Error("Logout refresh token delete error", "error", err)
		return err
	}

	return nil
}

// Reissue exchanges a valid refresh token for a new access/refresh pair.
// Each refresh token is good for exactly one reissue: the store entry is
// consumed atomically before the replacement pair is minted, so a replayed
// or concurrently raced token observes an absent entry and fails.
func (s *Auther) Reissue(ctx context.Context, refreshToken string) (ReissueResult, error) {
	if refreshToken == "" {
		return ReissueResult{}, ErrMissingRefreshToken
	}

	// Signature and expiry first: a forged token never reaches the store.
	if _, err := s.signer.ValidateRefreshToken(refreshToken); err != nil {
		return ReissueResult{}, err
	}

	id, err := s.sessions.ConsumeRefreshToken(ctx, refreshToken)
	if err != nil {
		if goerrors.Is(err, ErrSessionTokenNotFound) {
			return ReissueResult{}, ErrRefreshTokenNotFound
		}
		s.logger.Error("Reissue refresh token consume error", "error", err)
		return ReissueResult{}, err
	}

	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, ErrIdentityNotFound) {
			return ReissueResult{}, ErrIdentityNotFound
		}
		s.logger.Error("Reissue admin lookup error", "error", err)
		return ReissueResult{}, err
	}

	accessToken, newRefreshToken, err := s.mintTokenPair(admin.ID)
	if err != nil {
		return ReissueResult{}, err
	}

	// Sliding window renewal: the replacement gets the full refresh TTL.
	if err := s.sessions.SaveRefreshToken(ctx, admin.ID, newRefreshToken, s.refreshTTL); err != nil {
		s.logger.Error("Reissue refresh token registration error", "error", err)
		return ReissueResult{}, err
	}

	return ReissueResult{
		Response: ReissueResponse{
			ID:          admin.ID,
			Username:    admin.Username,
			AccessToken: accessToken,
		},
		RefreshToken: newRefreshToken,
	}, nil
}

// IssueSecondaryToken mints a short lived elevation token for an already
// authenticated subject. No credential re-check happens here; the caller is
// assumed authenticated by an upstream access token check.
func (s *Auther) IssueSecondaryToken(ctx context.Context, id uuid.UUID) (SecondaryTokenResponse, error) {
	secondaryToken, err := s.signer.CreateSecondaryToken(id)
	if err != nil {
		s.logger.Error("IssueSecondaryToken mint error", "error", err)
		return SecondaryTokenResponse{}, err
	}

	if err := s.sessions.SaveSecondaryToken(ctx, id, secondaryToken, s.secondaryTTL); err != nil {
		s.logger.Error("IssueSecondaryToken registration error", "error", err)
		return SecondaryTokenResponse{}, err
	}

	return SecondaryTokenResponse{
		ID:             id,
		SecondaryToken: secondaryToken,
	}, nil
}

func (s *Auther) mintTokenPair(id uuid.UUID) (accessToken, refreshToken string, err error) {
	if accessToken, err = s.signer.CreateAccessToken(id); err != nil {
		s.logger.Error("failed to mint access token", "error", err)
		return "", "", err
	}

	if refreshToken, err = s.signer.CreateRefreshToken(id); err != nil {
		s.logger.Error("failed to mint refresh token", "error", err)
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

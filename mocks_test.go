package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/aparttime/go-auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAdmins implements auth.Admins
type MockAdmins struct {
	mock.Mock
}

func (m *MockAdmins) Create(ctx context.Context, record *auth.Admin) (*auth.Admin, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Admin), args.Error(1)
}

func (m *MockAdmins) GetByID(ctx context.Context, id uuid.UUID) (*auth.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Admin), args.Error(1)
}

func (m *MockAdmins) GetByUsername(ctx context.Context, username string) (*auth.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Admin), args.Error(1)
}

// MockSessionStore implements auth.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) SaveRefreshToken(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) error {
	args := m.Called(ctx, id, token, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) FindRefreshTokenOwner(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSessionStore) ConsumeRefreshToken(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSessionStore) DeleteRefreshToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionStore) SaveSecondaryToken(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) error {
	args := m.Called(ctx, id, token, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) FindSecondaryTokenOwner(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSessionStore) DeleteSecondaryToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockTokenSigner implements auth.TokenSigner
type MockTokenSigner struct {
	mock.Mock
}

func (m *MockTokenSigner) CreateAccessToken(id uuid.UUID) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func (m *MockTokenSigner) CreateRefreshToken(id uuid.UUID) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func (m *MockTokenSigner) CreateSecondaryToken(id uuid.UUID) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func (m *MockTokenSigner) ValidateRefreshToken(token string) (*auth.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenClaims), args.Error(1)
}

// plaintextPasswords avoids bcrypt cost in scenario tests
type plaintextPasswords struct{}

func (plaintextPasswords) HashPassword(password string) (string, error) {
	if password == "" {
		return "", auth.ErrNoEmptyString
	}
	return "hashed:" + password, nil
}

func (plaintextPasswords) ComparePasswordAndHash(password, hash string) error {
	if "hashed:"+password != hash {
		return auth.ErrMismatchedHashAndPassword
	}
	return nil
}

// fakeAdmins is a stateful in-memory credential store for scenario tests
type fakeAdmins struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*auth.Admin
	creates int
}

func newFakeAdmins() *fakeAdmins {
	return &fakeAdmins{byID: map[uuid.UUID]*auth.Admin{}}
}

func (f *fakeAdmins) Create(ctx context.Context, record *auth.Admin) (*auth.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record.ID = uuid.New()
	f.byID[record.ID] = record
	f.creates++
	return record, nil
}

func (f *fakeAdmins) GetByID(ctx context.Context, id uuid.UUID) (*auth.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if record, ok := f.byID[id]; ok {
		return record, nil
	}
	return nil, auth.ErrIdentityNotFound
}

func (f *fakeAdmins) GetByUsername(ctx context.Context, username string) (*auth.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, record := range f.byID {
		if record.Username == username {
			return record, nil
		}
	}
	return nil, auth.ErrIdentityNotFound
}

type fakeEntry struct {
	owner   uuid.UUID
	ttl     time.Duration
	expires time.Time
}

// fakeSessionStore is a stateful in-memory session store for scenario tests
type fakeSessionStore struct {
	mu        sync.Mutex
	refresh   map[string]fakeEntry
	secondary map[string]fakeEntry
	saves     int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		refresh:   map[string]fakeEntry{},
		secondary: map[string]fakeEntry{},
	}
}

func (f *fakeSessionStore) SaveRefreshToken(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.refresh[token] = fakeEntry{owner: id, ttl: ttl, expires: time.Now().Add(ttl)}
	f.saves++
	return nil
}

func (f *fakeSessionStore) FindRefreshTokenOwner(ctx context.Context, token string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.refresh[token]
	if !ok || time.Now().After(entry.expires) {
		return uuid.Nil, auth.ErrSessionTokenNotFound
	}
	return entry.owner, nil
}

func (f *fakeSessionStore) ConsumeRefreshToken(ctx context.Context, token string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.refresh[token]
	if !ok || time.Now().After(entry.expires) {
		return uuid.Nil, auth.ErrSessionTokenNotFound
	}
	delete(f.refresh, token)
	return entry.owner, nil
}

func (f *fakeSessionStore) DeleteRefreshToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.refresh, token)
	return nil
}

func (f *fakeSessionStore) SaveSecondaryToken(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.secondary[token] = fakeEntry{owner: id, ttl: ttl, expires: time.Now().Add(ttl)}
	f.saves++
	return nil
}

func (f *fakeSessionStore) FindSecondaryTokenOwner(ctx context.Context, token string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.secondary[token]
	if !ok || time.Now().After(entry.expires) {
		return uuid.Nil, auth.ErrSessionTokenNotFound
	}
	return entry.owner, nil
}

func (f *fakeSessionStore) DeleteSecondaryToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.secondary, token)
	return nil
}

func (f *fakeSessionStore) refreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.refresh)
}

func (f *fakeSessionStore) secondaryTTL(token string) (time.Duration, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.secondary[token]
	return entry.ttl, ok
}

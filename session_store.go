package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	refreshTokenPrefix   = "auth:refresh_token:"
	secondaryTokenPrefix = "auth:secondary_token:"
)

// RedisSessionStore keeps token to subject mappings in Redis with per entry
// TTLs. Redis is authoritative for revocation: a token absent here is revoked
// no matter what its signature says.
type RedisSessionStore struct {
	client redis.UniversalClient
}

var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore creates a SessionStore backed by the given client
func NewRedisSessionStore(client redis.UniversalClient) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (r *RedisSessionStore) SaveRefreshToken(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) error {
	return r.save(ctx, refreshTokenPrefix+token, id, ttl)
}

func (r *RedisSessionStore) FindRefreshTokenOwner(ctx context.Context, token string) (uuid.UUID, error) {
	return r.find(ctx, refreshTokenPrefix+token)
}

// ConsumeRefreshToken removes the entry and returns its owner in one round
// trip. GETDEL guarantees that of two concurrent reissues presenting the same
// token exactly one observes the entry.
func (r *RedisSessionStore) ConsumeRefreshToken(ctx context.Context, token string) (uuid.UUID, error) {
	raw, err := r.client.GetDel(ctx, refreshTokenPrefix+token).Result()
	if err != nil {
		if goerrors.Is(err, redis.Nil) {
			return uuid.Nil, ErrSessionTokenNotFound
		}
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryInternal, "session store consume failed")
	}
	return parseOwner(raw)
}

func (r *RedisSessionStore) DeleteRefreshToken(ctx context.Context, token string) error {
	return r.delete(ctx, refreshTokenPrefix+token)
}

func (r *RedisSessionStore) SaveSecondaryToken(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) error {
	return r.save(ctx, secondaryTokenPrefix+token, id, ttl)
}

func (r *RedisSessionStore) FindSecondaryTokenOwner(ctx context.Context, token string) (uuid.UUID, error) {
	return r.find(ctx, secondaryTokenPrefix+token)
}

func (r *RedisSessionStore) DeleteSecondaryToken(ctx context.Context, token string) error {
	return r.delete(ctx, secondaryTokenPrefix+token)
}

func (r *RedisSessionStore) save(ctx context.Context, key string, id uuid.UUID, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, id.String(), ttl).Err(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "session store save failed")
	}
	return nil
}

func (r *RedisSessionStore) find(ctx context.Context, key string) (uuid.UUID, error) {
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if goerrors.Is(err, redis.Nil) {
			return uuid.Nil, ErrSessionTokenNotFound
		}
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryInternal, "session store lookup failed")
	}
	return parseOwner(raw)
}

func (r *RedisSessionStore) delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "session store delete failed")
	}
	return nil
}

func parseOwner(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryInternal, "session store entry is not a subject id")
	}
	return id, nil
}

package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockPrefix   = "LOCK:"
	resultPrefix = "RES:"
)

// IdemState is what an idempotency key currently holds.
type IdemState int

const (
	IdemAbsent IdemState = iota
	IdemInFlight
	IdemDone
)

// Deletes the key only while it still holds the caller's lock.
const luaReleaseLock = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`

// IdempotencyStore remembers the outcome of requests sent with an
// Idempotency-Key so a retry gets the first response instead of running
// twice.
type IdempotencyStore struct {
	rdb     *redis.Client
	ttl     time.Duration
	release *redis.Script
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		rdb:     rdb,
		ttl:     ttl,
		release: redis.NewScript(luaReleaseLock),
	}
}

// Acquire takes key for one request. The returned owner token is needed to
// release the lock.
func (s *IdempotencyStore) Acquire(ctx context.Context, key string, lockTTL time.Duration) (string, bool, error) {
	owner := uuid.NewString()

	ok, err := s.rdb.SetNX(ctx, key, lockPrefix+owner, lockTTL).Result()
	if err != nil || !ok {
		return "", false, err
	}

	return owner, true, nil
}

// SaveResult replaces the lock with the response, kept for the store TTL.
func (s *IdempotencyStore) SaveResult(ctx context.Context, key string, payload []byte) error {
	return s.rdb.Set(ctx, key, resultPrefix+string(payload), s.ttl).Err()
}

func (s *IdempotencyStore) Lookup(ctx context.Context, key string) ([]byte, IdemState, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, IdemAbsent, nil
	}
	if err != nil {
		return nil, IdemAbsent, err
	}

	if res, ok := strings.CutPrefix(v, resultPrefix); ok {
		return []byte(res), IdemDone, nil
	}

	return nil, IdemInFlight, nil
}

// Release drops the lock of a request that failed, so the key can be
// retried. It never removes a saved result or another owner's lock.
func (s *IdempotencyStore) Release(ctx context.Context, key, owner string) error {
	return s.release.Run(ctx, s.rdb, []string{key}, lockPrefix+owner).Err()
}

package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerline/ledgerline/internal/shared"
)

const tokenKeyPrefix = "ledgerline:token:"

// TokenStore keeps opaque bearer tokens in Redis. Only an HMAC of the token
// is used as the storage key, so a Redis dump does not expose live tokens.
type TokenStore struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client, secret string, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, secret: []byte(secret), ttl: ttl}
}

// Issue creates a new bearer token for the user.
func (ts *TokenStore) Issue(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	err := ts.client.Set(ctx, ts.key(token), strconv.FormatInt(userID, 10), ts.ttl).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user id a token belongs to, refreshing its TTL.
func (ts *TokenStore) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, shared.ErrTokenExpired
	}
	val, err := ts.client.Get(ctx, ts.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, shared.ErrTokenExpired
		}
		return 0, err
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, shared.ErrTokenExpired
	}
	_ = ts.client.Expire(ctx, ts.key(token), ts.ttl).Err()
	return userID, nil
}

// Revoke deletes a token. Revoking an unknown token is not an error.
func (ts *TokenStore) Revoke(ctx context.Context, token string) error {
	return ts.client.Del(ctx, ts.key(token)).Err()
}

// Count reports the number of live tokens.
func (ts *TokenStore) Count(ctx context.Context) (int64, error) {
	var cursor uint64
	var count int64
	for {
		keys, next, err := ts.client.Scan(ctx, cursor, tokenKeyPrefix+"*", 500).Result()
		if err != nil {
			return 0, err
		}
		count += int64(len(keys))
		if next == 0 {
			return count, nil
		}
		cursor = next
	}
}

func (ts *TokenStore) key(token string) string {
	mac := hmac.New(sha256.New, ts.secret)
	mac.Write([]byte(token))
	return tokenKeyPrefix + hex.EncodeToString(mac.Sum(nil))
}

// Package session implements the identity binding between a request and an
// authenticated username. Sessions live in redis under the SHA-256 of the
// opaque token handed to the client, so a dump of the store cannot be
// replayed as cookies.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arivald8/notehub/internal/utils"
)

// ErrNoSession is returned when a token does not resolve to a username:
// unknown, expired, or already destroyed.
var ErrNoSession = errors.New("no active session")

// Store binds session tokens to usernames.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewStore returns a redis-backed session store. Sessions expire after ttl.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl, prefix: "sess:"}
}

// Create mints a fresh token bound to username and returns the raw token
// for the cookie. Called after successful login or registration.
func (s *Store) Create(ctx context.Context, username string) (string, error) {
	raw, err := utils.NewSessionToken()
	if err != nil {
		return "", err
	}
	key := s.prefix + utils.HashSessionToken(raw)
	if err := s.rdb.Set(ctx, key, username, s.ttl).Err(); err != nil {
		return "", err
	}
	return raw, nil
}

// Resolve returns the username bound to a raw token, or ErrNoSession.
func (s *Store) Resolve(ctx context.Context, raw string) (string, error) {
	key := s.prefix + utils.HashSessionToken(raw)
	username, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return username, nil
}

// Destroy clears the binding for a raw token (logout). Destroying an
// already-gone session is not an error.
func (s *Store) Destroy(ctx context.Context, raw string) error {
	key := s.prefix + utils.HashSessionToken(raw)
	return s.rdb.Del(ctx, key).Err()
}

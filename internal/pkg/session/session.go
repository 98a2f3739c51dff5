// Package session keeps server-side login sessions in Redis.
//
// The client only ever holds the opaque token. Redis keys are the keyed
// hash of that token, so a leaked Redis dump cannot be replayed as cookies.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when the token names no live session.
var ErrNotFound = errors.New("session: not found")

const keyPrefix = "session:"

// Session is the state stored for one login.
type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id,string"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type store interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type tokenGenerator interface {
	Generate() string
}

type keyer interface {
	Sum(str string) string
}

type clocker interface {
	Now() time.Time
}

// Config wires the Redis store.
type Config struct {
	Client redis.Cmdable
	Tokens tokenGenerator
	Keyer  keyer
	Clock  clocker
	TTL    time.Duration
}

// Redis stores sessions as JSON values that expire after TTL.
type Redis struct {
	client store
	tokens tokenGenerator
	keyer  keyer
	clock  clocker
	ttl    time.Duration
}

// NewRedis builds the session store.
func NewRedis(cfg Config) *Redis {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}
	return &Redis{
		client: cfg.Client,
		tokens: cfg.Tokens,
		keyer:  cfg.Keyer,
		clock:  cfg.Clock,
		ttl:    ttl,
	}
}

// TTL is the lifetime given to new sessions.
func (r *Redis) TTL() time.Duration { return r.ttl }

// Create starts a session for the user and returns it with its token.
func (r *Redis) Create(ctx context.Context, userID int64, username string) (Session, error) {
	now := r.clock.Now()
	s := Session{
		Token:     r.tokens.Generate(),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}

	val, err := json.Marshal(s)
	if err != nil {
		return Session{}, err
	}

	if err := r.client.Set(ctx, r.key(s.Token), val, r.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("session: store: %w", err)
	}
	return s, nil
}

// Get resolves a token.
func (r *Redis) Get(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrNotFound
	}

	val, err := r.client.Get(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("session: load: %w", err)
	}

	var s Session
	if err := json.Unmarshal(val, &s); err != nil {
		return Session{}, fmt.Errorf("session: decode: %w", err)
	}
	s.Token = token

	return s, nil
}

// Destroy removes the session. Unknown tokens are not an error.
func (r *Redis) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

func (r *Redis) key(token string) string {
	return keyPrefix + r.keyer.Sum(token)
}

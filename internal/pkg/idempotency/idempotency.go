// Package idempotency guards side effects that may be triggered more than once,
// such as a broker redelivering an event, by recording per-key state in Redis.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("idempotency: operation already in progress")
	ErrAlreadyCompleted  = errors.New("idempotency: operation already completed")
	ErrInvalidState      = errors.New("idempotency: invalid state")
)

// State is the recorded progress of a keyed operation.
type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = time.Hour
	keyPrefix           = "idempotency:"
)

// Idempotency runs fn at most once per key within the state TTL.
type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

type store interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis tracks operation state in Redis keys prefixed with "idempotency:".
type Redis struct {
	client store
}

// New returns a Redis-backed tracker. Both *redis.Client and
// *redis.ClusterClient satisfy the client parameter.
func New(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

// Option tunes Exec.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration bounds how long an in-progress marker survives a crash.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) { o.lockDuration = d }
}

// WithStateTTL sets how long a completed marker suppresses repeats.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.stateTTL = d }
}

// Acquire marks key in progress. It reports StateNone when the caller now owns
// the key, otherwise the state someone else recorded.
func (r *Redis) Acquire(ctx context.Context, key string, lock time.Duration) (State, error) {
	k := keyPrefix + key

	ok, err := r.client.SetNX(ctx, k, string(StateInProgress), lock).Result()
	if err != nil {
		return "", err
	}
	if ok {
		return StateNone, nil
	}

	val, err := r.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; one more attempt.
		ok, err = r.client.SetNX(ctx, k, string(StateInProgress), lock).Result()
		if err != nil {
			return "", err
		}
		if ok {
			return StateNone, nil
		}
		return StateInProgress, nil
	}
	if err != nil {
		return "", err
	}

	switch State(val) {
	case StateInProgress, StateCompleted:
		return State(val), nil
	default:
		return "", ErrInvalidState
	}
}

// Exec runs fn once for key. A failed fn releases the key so a redelivery can
// retry; a successful fn marks the key completed for the state TTL.
func (r *Redis) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	o := execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.lockDuration <= 0 {
		o.lockDuration = defaultLockDuration
	}
	if o.stateTTL <= 0 {
		o.stateTTL = defaultStateTTL
	}

	state, err := r.Acquire(ctx, key, o.lockDuration)
	if err != nil {
		return err
	}
	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	}

	if err := fn(ctx); err != nil {
		if delErr := r.client.Del(ctx, keyPrefix+key).Err(); delErr != nil {
			return errors.Join(err, delErr)
		}
		return err
	}

	return r.client.Set(ctx, keyPrefix+key, string(StateCompleted), o.stateTTL).Err()
}

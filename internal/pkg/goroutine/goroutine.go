// Package goroutine runs background jobs, such as broker consumers, with a
// concurrency cap, panic recovery and a single Wait at shutdown.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/nvago/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 100

// ErrLimitReached is returned by Go when every slot is taken.
var ErrLimitReached = errors.New("goroutine: maximum goroutine limit reached")

// ErrClosed is returned by Go after Wait has been called.
var ErrClosed = errors.New("goroutine: manager is closed")

// Manager runs functions in goroutines and collects their errors.
type Manager struct {
	wg   sync.WaitGroup
	sema chan struct{}

	mu     sync.Mutex
	errs   []error
	closed bool
}

// NewManager creates a Manager allowing at most max concurrent jobs.
func NewManager(max int) *Manager {
	if max < 1 {
		max = DefaultMaxGoroutine
	}
	return &Manager{sema: make(chan struct{}, max)}
}

// Go starts f unless the manager is closed or full. A panic in f is logged and
// recorded as an error.
func (m *Manager) Go(ctx context.Context, f func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, skipping new goroutine")
		return ErrClosed
	}

	select {
	case m.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "maximum goroutine limit reached", "limit", cap(m.sema))
		return ErrLimitReached
	}

	m.wg.Go(func() {
		defer func() { <-m.sema }()

		if err := run(ctx, f); err != nil {
			m.mu.Lock()
			m.errs = append(m.errs, err)
			m.mu.Unlock()
		}
	})

	return nil
}

func run(ctx context.Context, f func(context.Context) error) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}

		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic occurred in goroutine", "panic", rvr, "stack", string(stack))
		}
		err = errors.New("goroutine: recovered panic")
	}()

	if ctx.Err() != nil {
		slog.WarnContext(ctx, "goroutine canceled before start", "because", ctx.Err())
		return nil
	}
	return f(ctx)
}

// Wait closes the manager to new jobs, blocks until running jobs return and
// joins their errors.
func (m *Manager) Wait() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Join(m.errs...)
}

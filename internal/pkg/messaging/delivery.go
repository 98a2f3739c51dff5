package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/shandysiswandi/nvago/internal/pkg/stacktrace"
)

// delivery adapts a broker message to Message. Ack and Nack are idempotent:
// only the first response reaches the broker.
type delivery struct {
	id      string
	source  string
	body    []byte
	key     []byte
	headers []Header
	ts      time.Time

	ack  func(ctx context.Context) error
	nack func(ctx context.Context) error

	responded atomic.Bool
}

func (d *delivery) ID() string           { return d.id }
func (d *delivery) Source() string       { return d.source }
func (d *delivery) Body() []byte         { return d.body }
func (d *delivery) Key() []byte          { return d.key }
func (d *delivery) Headers() []Header    { return d.headers }
func (d *delivery) Timestamp() time.Time { return d.ts }

func (d *delivery) Header(key string) string {
	for _, h := range d.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (d *delivery) Ack(ctx context.Context) error {
	return d.respond(ctx, d.ack)
}

func (d *delivery) Nack(ctx context.Context) error {
	return d.respond(ctx, d.nack)
}

func (d *delivery) respond(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.responded.Swap(true) || fn == nil {
		return nil
	}
	return fn(ctx)
}

// dispatch runs handler with panic recovery and settles the message when
// autoAck is on and the handler did not respond itself.
func dispatch(ctx context.Context, broker string, handler Handler, d *delivery, autoAck bool) error {
	herr := safeCall(ctx, broker, func() error { return handler(ctx, d) })

	if !autoAck || d.responded.Load() {
		return herr
	}
	if herr != nil {
		if err := d.Nack(ctx); err != nil {
			slog.WarnContext(ctx, "failed to nack message", "broker", broker, "source", d.source, "error", err)
		}
		return herr
	}
	return d.Ack(ctx)
}

func safeCall(ctx context.Context, broker string, fn func() error) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}

		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic in messaging handler", "broker", broker, "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic in messaging handler", "broker", broker, "panic", rvr, "stack", string(stack))
		}
		err = fmt.Errorf("messaging: panic in %s handler: %v", broker, rvr)
	}()

	return fn()
}

package app

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shandysiswandi/nvago/internal/pkg/goroutine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Stop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		ctx:        ctx,
		cancel:     cancel,
		goroutine:  goroutine.NewManager(1),
		httpServer: &http.Server{},
	}

	consumerStarted := make(chan struct{})
	consumerStopped := make(chan struct{})
	require.NoError(t, a.goroutine.Go(ctx, func(ctx context.Context) error {
		close(consumerStarted)
		<-ctx.Done()
		close(consumerStopped)
		return nil
	}))
	<-consumerStarted

	var order []string
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{name: "Messaging", fn: func(context.Context) error {
			select {
			case <-consumerStopped:
				order = append(order, "Messaging")
			default:
				order = append(order, "Messaging before consumer stopped")
			}
			return nil
		}},
		{name: "Redis", fn: func(context.Context) error {
			order = append(order, "Redis")
			return errors.New("already closed")
		}},
		{name: "Database", fn: func(context.Context) error {
			order = append(order, "Database")
			return nil
		}},
	}

	a.Stop(context.Background())

	assert.Equal(t, []string{"Messaging", "Redis", "Database"}, order)
	assert.ErrorIs(t, a.ctx.Err(), context.Canceled)
}

package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
	"github.com/shandysiswandi/nvago/internal/pkg/router"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct{}

func (healthResponse) Message() string { return "ok" }

var errUnhealthy = goerror.NewBusiness("Service unavailable.", goerror.CodeUnavailable)

// health pings PostgreSQL and Redis.
func (a *App) health(r *router.Request) (any, error) {
	return checkHealth(r.Context(), a.dbConn, pingFunc(func(ctx context.Context) error {
		return a.cacheConn.Ping(ctx).Err()
	}))
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func checkHealth(ctx context.Context, db, cache pinger) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "health check failed", "dependency", "database", "error", err)
		return nil, errUnhealthy
	}

	if err := cache.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "health check failed", "dependency", "redis", "error", err)
		return nil, errUnhealthy
	}

	return healthResponse{}, nil
}

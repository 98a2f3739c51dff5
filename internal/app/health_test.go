package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHealth(t *testing.T) {
	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name    string
		db      pinger
		cache   pinger
		wantErr bool
	}{
		{name: "all up", db: up, cache: up},
		{name: "database down", db: down, cache: up, wantErr: true},
		{name: "redis down", db: up, cache: down, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := checkHealth(context.Background(), tt.db, tt.cache)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "ok", resp.(healthResponse).Message())
				return
			}

			var gerr *goerror.Error
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, goerror.CodeUnavailable, gerr.Code())
		})
	}
}

func TestPublicEndpoints(t *testing.T) {
	public := publicEndpoints()

	assert.Contains(t, public["GET"], "/health")
	assert.Contains(t, public["POST"], "/api/login/")
	assert.NotContains(t, public["GET"], "/api/me/")
}

package app

import (
	"os"
	"testing"

	"github.com/shandysiswandi/nvago/internal/pkg/clock"
	"github.com/shandysiswandi/nvago/internal/pkg/config"
	"github.com/shandysiswandi/nvago/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWT_SampleConfig(t *testing.T) {
	data, err := os.ReadFile("../../config/config.yaml")
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", data)
	require.NoError(t, err)

	tokens, err := newJWT(cfg, clock.New(), uid.NewUUID())
	require.NoError(t, err)

	token, err := tokens.Generate(42, "alice")
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestNewJWT_ShortSecret(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte("jwt:\n  secret: short\n"))
	require.NoError(t, err)

	_, err = newJWT(cfg, clock.New(), uid.NewUUID())
	assert.Error(t, err)
}

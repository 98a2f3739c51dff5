//go:build integration

package accounts_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/nvago/internal/accounts"
	"github.com/shandysiswandi/nvago/internal/accounts/inbound"
	"github.com/shandysiswandi/nvago/internal/accounts/outbound/db"
	"github.com/shandysiswandi/nvago/internal/pkg/clock"
	"github.com/shandysiswandi/nvago/internal/pkg/config"
	"github.com/shandysiswandi/nvago/internal/pkg/dbmigrate"
	"github.com/shandysiswandi/nvago/internal/pkg/hash"
	"github.com/shandysiswandi/nvago/internal/pkg/instrument"
	"github.com/shandysiswandi/nvago/internal/pkg/jwt"
	"github.com/shandysiswandi/nvago/internal/pkg/mail"
	"github.com/shandysiswandi/nvago/internal/pkg/otp"
	"github.com/shandysiswandi/nvago/internal/pkg/router"
	"github.com/shandysiswandi/nvago/internal/pkg/session"
	"github.com/shandysiswandi/nvago/internal/pkg/uid"
	"github.com/shandysiswandi/nvago/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

var reOTP = regexp.MustCompile(`\d{6}`)

// inbox records every message and hands out the newest code per recipient.
type inbox struct {
	mu   sync.Mutex
	last map[string]string
}

func (b *inbox) Send(_ context.Context, msg mail.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, to := range msg.To {
		b.last[to] = reOTP.FindString(msg.TextBody)
	}
	return nil
}

func (b *inbox) Close() error { return nil }

func (b *inbox) code(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last[email]
}

func setupServer(t *testing.T) (*httptest.Server, *inbox) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrator, err := dbmigrate.New(db.Migrations, db.MigrationsDir, connStr)
	require.NoError(t, err)
	require.NoError(t, migrator.Up())
	require.NoError(t, migrator.Close())

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisContainer.Terminate(ctx) })

	redisURL, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err)
	opt, err := goredis.ParseURL(redisURL)
	require.NoError(t, err)
	rdb := goredis.NewClient(opt)
	t.Cleanup(func() { _ = rdb.Close() })

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  accounts:\n    otp_delivery: sync\n"))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)
	snow, err := uid.NewSnowflake()
	require.NoError(t, err)
	tokens, err := uid.NewObjectIDGenerator()
	require.NoError(t, err)

	clk := clock.New()
	ins := instrument.NewNoop()

	tokenJWT, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte("integration-secret-integration-secret-integration-secret-integration"),
		Issuer:    "nvago",
		Audiences: []string{"nvago-test"},
		TTL:       time.Hour,
		Clock:     clk,
		UUID:      uid.NewUUID(),
	})
	require.NoError(t, err)

	sessions := session.NewRedis(session.Config{
		Client: rdb,
		Tokens: tokens,
		Keyer:  hash.NewHMACSHA256("integration"),
		Clock:  clk,
		TTL:    time.Hour,
	})

	r := router.NewRouter(router.Config{
		Config:          cfg,
		UUID:            uid.NewUUID(),
		JWT:             tokenJWT,
		Sessions:        sessions,
		Instrument:      ins,
		PublicEndpoints: inbound.PublicEndpoints,
	})

	box := &inbox{last: map[string]string{}}
	require.NoError(t, accounts.New(accounts.Dependency{
		DBConn:     pool,
		Router:     r,
		Sessions:   sessions,
		Mail:       box,
		Config:     cfg,
		Instrument: ins,
		UID:        snow,
		UUID:       uid.NewUUID(),
		Password:   hash.NewBcrypt(4, ""),
		OTP:        otp.NewNumeric(),
		Clock:      clk,
		Validator:  v,
		JWT:        tokenJWT,
	}))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv, box
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, base string) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: base, http: &http.Client{Jar: jar, Timeout: 5 * time.Second}}
}

func (c *client) do(method, path string, payload any, bearer string) (int, map[string]any) {
	c.t.Helper()

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		require.NoError(c.t, err)
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.base+path, body)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestAccounts_Integration_Flow(t *testing.T) {
	srv, box := setupServer(t)
	c := newClient(t, srv.URL)

	const email = "alice@example.com"

	status, body := c.do(http.MethodPost, "/api/register/", map[string]string{
		"username": "alice", "email": email, "password": "Secret123!", "first_name": "Alice",
	}, "")
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "User registered. OTP sent to email.", body["message"])

	status, body = c.do(http.MethodPost, "/api/register/", map[string]string{
		"username": "alice", "email": email, "password": "Secret123!",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "A user with that username already exists.", body["username"])

	status, body = c.do(http.MethodPost, "/api/login/", map[string]string{"username": "alice", "password": "Secret123!"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid credentials or email not verified.", body["error"])

	status, _ = c.do(http.MethodPost, "/api/verify/", map[string]string{"email": email, "otp": "000000"}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	code := box.code(email)
	require.Len(t, code, 6)
	status, body = c.do(http.MethodPost, "/api/verify/", map[string]string{"email": email, "otp": code}, "")
	require.Equal(t, http.StatusOK, status, body)

	status, _ = c.do(http.MethodPost, "/api/verify/", map[string]string{"email": email, "otp": code}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = c.do(http.MethodPost, "/api/register/resend/", map[string]string{"email": email}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Email already verified.", body["error"])

	status, body = c.do(http.MethodPost, "/api/login/", map[string]string{"username": "alice", "password": "Secret123!"}, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Logged in.", body["message"])

	status, body = c.do(http.MethodGet, "/api/me/", nil, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "alice", body["username"])

	status, body = c.do(http.MethodPost, "/api/token/", map[string]string{"username": "alice", "password": "Secret123!"}, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Alice", body["first_name"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	status, _ = c.do(http.MethodPost, "/api/logout/", nil, "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodGet, "/api/me/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = c.do(http.MethodGet, "/api/me/", nil, token)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, email, body["email"])

	status, _ = c.do(http.MethodPost, "/api/send-reset-otp/", map[string]string{"email": email}, "")
	require.Equal(t, http.StatusOK, status)

	reset := box.code(email)
	status, _ = c.do(http.MethodPost, "/api/verify-reset-otp/", map[string]string{"email": email, "otp": reset}, "")
	require.Equal(t, http.StatusOK, status)

	status, body = c.do(http.MethodPost, "/api/reset-password/", map[string]string{
		"email": email, "otp": reset, "new_password": "Changed456!",
	}, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Password reset successful.", body["message"])

	status, _ = c.do(http.MethodPost, "/api/reset-password/", map[string]string{
		"email": email, "otp": reset, "new_password": "Again789!",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = c.do(http.MethodPost, "/api/login/", map[string]string{"username": "alice", "password": "Secret123!"}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = c.do(http.MethodPost, "/api/login/", map[string]string{"username": "alice", "password": "Changed456!"}, "")
	assert.Equal(t, http.StatusOK, status)
}

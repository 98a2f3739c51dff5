package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/nvago/internal/accounts/entity"
	"github.com/shandysiswandi/nvago/internal/pkg/clock"
	"github.com/shandysiswandi/nvago/internal/pkg/config"
	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
	"github.com/shandysiswandi/nvago/internal/pkg/instrument"
	"github.com/shandysiswandi/nvago/internal/pkg/jwt"
	"github.com/shandysiswandi/nvago/internal/pkg/session"
	"github.com/shandysiswandi/nvago/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepoDB struct{ mock.Mock }

func (m *mockRepoDB) user(args mock.Arguments) (*entity.User, error) {
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockRepoDB) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *mockRepoDB) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	return m.user(m.Called(ctx, username))
}

func (m *mockRepoDB) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *mockRepoDB) CreateUserWithProfile(ctx context.Context, user entity.NewUser, hash string) error {
	return m.Called(ctx, user, hash).Error(0)
}

func (m *mockRepoDB) AssignRegistrationOTP(ctx context.Context, userID int64, otp string) (bool, error) {
	args := m.Called(ctx, userID, otp)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepoDB) AssignResetOTP(ctx context.Context, userID int64, otp string) error {
	return m.Called(ctx, userID, otp).Error(0)
}

func (m *mockRepoDB) VerifyRegistrationOTP(ctx context.Context, userID int64, otp string) (bool, error) {
	args := m.Called(ctx, userID, otp)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepoDB) ResetPassword(ctx context.Context, userID int64, otp, hash string) (bool, error) {
	args := m.Called(ctx, userID, otp, hash)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepoDB) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendOTP(ctx context.Context, msg OTPMail) error {
	return m.Called(ctx, msg).Error(0)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Create(ctx context.Context, userID int64, username string) (session.Session, error) {
	args := m.Called(ctx, userID, username)
	return args.Get(0).(session.Session), args.Error(1)
}

func (m *mockSessions) Destroy(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessions) TTL() time.Duration { return 14 * 24 * time.Hour }

type mockJWT struct{ mock.Mock }

func (m *mockJWT) Generate(uid int64, username string) (string, error) {
	args := m.Called(uid, username)
	return args.String(0), args.Error(1)
}

func (m *mockJWT) Verify(tokenStr string) (jwt.Claims, error) {
	args := m.Called(tokenStr)
	return args.Get(0).(jwt.Claims), args.Error(1)
}

// fakeHash prefixes the plaintext so tests can assert what was stored.
type fakeHash struct{}

func (fakeHash) Hash(str string) ([]byte, error) { return []byte("hashed:" + str), nil }
func (fakeHash) Verify(hashed, str string) bool { return hashed == "hashed:"+str }

type fixedCode struct {
	code string
	err  error
}

func (f fixedCode) Generate() (string, error) { return f.code, f.err }

type fixedID int64

func (f fixedID) Generate() int64 { return int64(f) }

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type suite struct {
	uc       *Usecase
	db       *mockRepoDB
	notifier *mockNotifier
	sessions *mockSessions
	jwt      *mockJWT
}

func newSuite(t *testing.T, yaml string) *suite {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	s := &suite{
		db:       &mockRepoDB{},
		notifier: &mockNotifier{},
		sessions: &mockSessions{},
		jwt:      &mockJWT{},
	}
	s.uc = New(Dependency{
		RepoDB:       s.db,
		RepoNotifier: s.notifier,
		Validator:    v,
		Config:       cfg,
		Password:     fakeHash{},
		UID:          fixedID(1001),
		OTP:          fixedCode{code: "654321"},
		Clock:        clock.NewFixed(testNow),
		JWT:          s.jwt,
		Sessions:     s.sessions,
		Instrument:   instrument.NewNoop(),
	})

	t.Cleanup(func() {
		s.db.AssertExpectations(t)
		s.notifier.AssertExpectations(t)
		s.sessions.AssertExpectations(t)
		s.jwt.AssertExpectations(t)
	})

	return s
}

func verifiedUser() *entity.User {
	return &entity.User{
		ID:         7,
		Username:   "alice",
		Email:      "alice@example.com",
		Password:   "hashed:s3cret",
		FirstName:  "Alice",
		LastName:   "Liddell",
		IsActive:   true,
		IsVerified: true,
	}
}

func pendingUser() *entity.User {
	u := verifiedUser()
	u.IsVerified = false
	u.OTP = "123456"
	return u
}

const defaultYAML = "modules:\n  accounts:\n    otp_delivery: sync\n"

func assertCode(t *testing.T, err error, code goerror.Code, msg string) {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, code, gerr.Code())
	if msg != "" {
		assert.Equal(t, msg, gerr.Msg())
	}
}

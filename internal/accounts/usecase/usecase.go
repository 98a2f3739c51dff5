package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/nvago/internal/accounts/entity"
	"github.com/shandysiswandi/nvago/internal/pkg/clock"
	"github.com/shandysiswandi/nvago/internal/pkg/config"
	"github.com/shandysiswandi/nvago/internal/pkg/hash"
	"github.com/shandysiswandi/nvago/internal/pkg/instrument"
	"github.com/shandysiswandi/nvago/internal/pkg/jwt"
	"github.com/shandysiswandi/nvago/internal/pkg/otp"
	"github.com/shandysiswandi/nvago/internal/pkg/session"
	"github.com/shandysiswandi/nvago/internal/pkg/uid"
	"github.com/shandysiswandi/nvago/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// OTPMail is a one-time code ready to be delivered.
type OTPMail struct {
	UserID  int64
	Email   string
	Subject string
	Body    string
}

type repoNotifier interface {
	SendOTP(ctx context.Context, msg OTPMail) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)

	CreateUserWithProfile(ctx context.Context, user entity.NewUser, hash string) error

	AssignRegistrationOTP(ctx context.Context, userID int64, otp string) (bool, error)
	AssignResetOTP(ctx context.Context, userID int64, otp string) error
	VerifyRegistrationOTP(ctx context.Context, userID int64, otp string) (bool, error)
	ResetPassword(ctx context.Context, userID int64, otp, hash string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}

type sessionManager interface {
	Create(ctx context.Context, userID int64, username string) (session.Session, error)
	Destroy(ctx context.Context, token string) error
	TTL() time.Duration
}

type Usecase struct {
	repoDB       repoDB
	repoNotifier repoNotifier
	validator    validator.Validator
	cfg          config.Config
	password     hash.Hash
	uid          uid.NumberID
	otp          otp.Generator
	clock        clock.Clocker
	jwt          jwt.JWT
	sessions     sessionManager
	ins          instrument.Instrumentation
}

type Dependency struct {
	RepoDB       repoDB
	RepoNotifier repoNotifier
	Validator    validator.Validator
	Config       config.Config
	Password     hash.Hash
	UID          uid.NumberID
	OTP          otp.Generator
	Clock        clock.Clocker
	JWT          jwt.JWT
	Sessions     sessionManager
	Instrument   instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:       dep.RepoDB,
		repoNotifier: dep.RepoNotifier,
		validator:    dep.Validator,
		cfg:          dep.Config,
		password:     dep.Password,
		uid:          dep.UID,
		otp:          dep.OTP,
		clock:        dep.Clock,
		jwt:          dep.JWT,
		sessions:     dep.Sessions,
		ins:          dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("accounts.usecase").Start(ctx, name)
}

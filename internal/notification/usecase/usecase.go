package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/nvago/internal/pkg/config"
	"github.com/shandysiswandi/nvago/internal/pkg/idempotency"
	"github.com/shandysiswandi/nvago/internal/pkg/instrument"
	"github.com/shandysiswandi/nvago/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// OTPEmail is one code email carried by an accounts event.
type OTPEmail struct {
	EventID string
	UserID  int64
	Email   string
	Subject string
	Body    string
}

type repoMail interface {
	SendOTP(ctx context.Context, msg OTPEmail) error
}

type Usecase struct {
	repoMail    repoMail
	idempotency idempotency.Idempotency
	cfg         config.Config
	validator   validator.Validator
	ins         instrument.Instrumentation
}

type Dependency struct {
	RepoMail    repoMail
	Idempotency idempotency.Idempotency
	Config      config.Config
	Validator   validator.Validator
	Instrument  instrument.Instrumentation
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		repoMail:    dep.RepoMail,
		idempotency: dep.Idempotency,
		cfg:         dep.Config,
		validator:   dep.Validator,
		ins:         dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

func (s *Usecase) idempotencyTTL() time.Duration {
	if ttl := s.cfg.GetMinute("modules.notification.idempotency_ttl_minutes"); ttl > 0 {
		return ttl
	}
	return time.Hour
}

package notification

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/nvago/internal/notification/inbound"
	"github.com/shandysiswandi/nvago/internal/notification/outbound/email"
	"github.com/shandysiswandi/nvago/internal/notification/usecase"
	"github.com/shandysiswandi/nvago/internal/pkg/config"
	"github.com/shandysiswandi/nvago/internal/pkg/goroutine"
	"github.com/shandysiswandi/nvago/internal/pkg/idempotency"
	"github.com/shandysiswandi/nvago/internal/pkg/instrument"
	"github.com/shandysiswandi/nvago/internal/pkg/mail"
	"github.com/shandysiswandi/nvago/internal/pkg/messaging"
	"github.com/shandysiswandi/nvago/internal/pkg/uid"
	"github.com/shandysiswandi/nvago/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	Redis      redis.Cmdable              `validate:"required"`
	Messaging  messaging.Consumer         `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
}

// New wires the OTP email consumer. Consumers run until Ctx is cancelled.
func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.NewNotification(usecase.Dependency{
		RepoMail:    email.New(dep.Mail, dep.Instrument),
		Idempotency: idempotency.New(dep.Redis),
		Config:      dep.Config,
		Validator:   dep.Validator,
		Instrument:  dep.Instrument,
	})

	return inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
}

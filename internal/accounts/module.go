package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/nvago/internal/accounts/inbound"
	"github.com/shandysiswandi/nvago/internal/accounts/outbound/db"
	"github.com/shandysiswandi/nvago/internal/accounts/outbound/email"
	"github.com/shandysiswandi/nvago/internal/accounts/outbound/mq"
	"github.com/shandysiswandi/nvago/internal/accounts/usecase"
	"github.com/shandysiswandi/nvago/internal/pkg/clock"
	"github.com/shandysiswandi/nvago/internal/pkg/config"
	"github.com/shandysiswandi/nvago/internal/pkg/hash"
	"github.com/shandysiswandi/nvago/internal/pkg/instrument"
	"github.com/shandysiswandi/nvago/internal/pkg/jwt"
	"github.com/shandysiswandi/nvago/internal/pkg/mail"
	"github.com/shandysiswandi/nvago/internal/pkg/messaging"
	"github.com/shandysiswandi/nvago/internal/pkg/otp"
	"github.com/shandysiswandi/nvago/internal/pkg/router"
	"github.com/shandysiswandi/nvago/internal/pkg/session"
	"github.com/shandysiswandi/nvago/internal/pkg/uid"
	"github.com/shandysiswandi/nvago/internal/pkg/validator"
)

// ErrMessagingRequired is returned when async delivery is selected without a broker.
var ErrMessagingRequired = errors.New("accounts: messaging is required for async otp delivery")

const (
	DeliverySync  = "sync"
	DeliveryAsync = "async"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Sessions   *session.Redis             `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Messaging  messaging.Messaging        // required for async delivery only
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Password   hash.Hash                  `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	notifier, err := newNotifier(dep)
	if err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:       db.NewDB(dep.DBConn, dep.Instrument),
		RepoNotifier: notifier,
		Validator:    dep.Validator,
		Config:       dep.Config,
		Password:     dep.Password,
		UID:          dep.UID,
		OTP:          dep.OTP,
		Clock:        dep.Clock,
		JWT:          dep.JWT,
		Sessions:     dep.Sessions,
		Instrument:   dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.CookieConfig{
		Name:   dep.Config.GetString("session.cookie_name"),
		Secure: dep.Config.GetBool("session.secure"),
	})

	return nil
}

type notifier interface {
	SendOTP(ctx context.Context, msg usecase.OTPMail) error
}

func newNotifier(dep Dependency) (notifier, error) {
	switch mode := dep.Config.GetString("modules.accounts.otp_delivery"); mode {
	case "", DeliverySync:
		return email.New(dep.Mail, dep.Config.GetString("mail.from"), dep.Instrument), nil
	case DeliveryAsync:
		if dep.Messaging == nil {
			return nil, ErrMessagingRequired
		}
		return mq.NewMessaging(dep.Messaging, dep.UUID, dep.Instrument), nil
	default:
		return nil, fmt.Errorf("accounts: unknown otp delivery %q", mode)
	}
}

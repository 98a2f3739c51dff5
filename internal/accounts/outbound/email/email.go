package email

import (
	"context"

	"github.com/shandysiswandi/nvago/internal/accounts/usecase"
	"github.com/shandysiswandi/nvago/internal/pkg/instrument"
	"github.com/shandysiswandi/nvago/internal/pkg/mail"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Mail delivers one-time codes inline over SMTP.
type Mail struct {
	client mail.Mail
	from   string
	ins    instrument.Instrumentation
}

func New(client mail.Mail, from string, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, from: from, ins: ins}
}

func (m *Mail) SendOTP(ctx context.Context, msg usecase.OTPMail) error {
	ctx, span := m.ins.Tracer("accounts.outbound.email").Start(ctx, "SendOTP")
	defer span.End()

	span.SetAttributes(attribute.Int64("user_id", msg.UserID))

	if err := m.client.Send(ctx, mail.Message{
		From:     m.from,
		To:       []string{msg.Email},
		Subject:  msg.Subject,
		TextBody: msg.Body,
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

package email

import (
	"context"

	"github.com/shandysiswandi/nvago/internal/notification/usecase"
	"github.com/shandysiswandi/nvago/internal/pkg/instrument"
	"github.com/shandysiswandi/nvago/internal/pkg/mail"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Mail delivers OTP emails taken off the broker. The configured default
// sender is used.
type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
}

func New(client mail.Mail, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, ins: ins}
}

func (m *Mail) SendOTP(ctx context.Context, msg usecase.OTPEmail) error {
	ctx, span := m.ins.Tracer("notification.outbound.email").Start(ctx, "SendOTP")
	defer span.End()

	span.SetAttributes(
		attribute.String("event_id", msg.EventID),
		attribute.Int64("user_id", msg.UserID),
	)

	if err := m.client.Send(ctx, mail.Message{
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

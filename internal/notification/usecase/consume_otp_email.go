package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/nvago/internal/pkg/idempotency"
)

type ConsumeOTPEmailInput struct {
	EventID string `validate:"required"`
	UserID  int64  `validate:"required,gt=0"`
	Email   string `validate:"required,email"`
	Subject string `validate:"required"`
	Body    string `validate:"required"`
}

// ConsumeOTPEmail delivers a one-time code email at most once per event.
// Invalid payloads are dropped so the broker does not redeliver them.
func (s *Usecase) ConsumeOTPEmail(ctx context.Context, in ConsumeOTPEmailInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPEmail")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "event_id", in.EventID, "error", err)
		return nil
	}

	err := s.idempotency.Exec(ctx, "otp_email:"+in.EventID, func(ctx context.Context) error {
		return s.repoMail.SendOTP(ctx, OTPEmail(in))
	}, idempotency.WithStateTTL(s.idempotencyTTL()))

	switch {
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		slog.InfoContext(ctx, "otp email already delivered", "event_id", in.EventID)
		return nil
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		slog.WarnContext(ctx, "otp email delivery in progress elsewhere", "event_id", in.EventID)
		return err
	case err != nil:
		slog.ErrorContext(ctx, "failed to send otp email", "event_id", in.EventID, "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}

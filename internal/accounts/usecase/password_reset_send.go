package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/nvago/internal/accounts/entity"
	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
)

type PasswordResetSendInput struct {
	Email string `validate:"required,email"`
}

func (s *Usecase) PasswordResetSend(ctx context.Context, in PasswordResetSendInput) error {
	ctx, span := s.startSpan(ctx, "PasswordResetSend")
	defer span.End()

	in.Email = normalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.userByEmail(ctx, in.Email)
	if err != nil {
		return err
	}

	code, err := s.generateCode(ctx)
	if err != nil {
		return err
	}

	err = s.repoDB.AssignResetOTP(ctx, user.ID, code)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user profile not found", "user_id", user.ID)
		return errUserNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo assign reset otp", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return s.sendOTP(ctx, user, entity.OTPPurposePasswordReset, code)
}

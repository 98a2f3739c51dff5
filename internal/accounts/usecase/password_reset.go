package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
)

type PasswordResetInput struct {
	Email       string `validate:"required,email"`
	OTP         string `validate:"required,max=6"`
	NewPassword string `validate:"required,max=64"`
}

func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	in.OTP = strings.TrimSpace(in.OTP)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.userByEmail(ctx, in.Email)
	if err != nil {
		return err
	}

	passHash, err := s.password.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	ok, err := s.repoDB.ResetPassword(ctx, user.ID, in.OTP, string(passHash))
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo reset password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "reset otp not match", "user_id", user.ID)
		return errInvalidOTP
	}

	return nil
}

package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
	"github.com/shandysiswandi/nvago/internal/pkg/otp"
)

type PasswordResetVerifyInput struct {
	Email string `validate:"required,email"`
	OTP   string `validate:"required,max=6"`
}

// PasswordResetVerify checks the reset code without consuming it.
func (s *Usecase) PasswordResetVerify(ctx context.Context, in PasswordResetVerifyInput) error {
	ctx, span := s.startSpan(ctx, "PasswordResetVerify")
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

	if !user.HasPendingOTP() || !otp.Valid(in.OTP) {
		slog.WarnContext(ctx, "reset otp missing or malformed", "user_id", user.ID)
		return errInvalidOTP
	}

	if !otp.Equal(user.OTP, in.OTP) {
		slog.WarnContext(ctx, "reset otp not match", "user_id", user.ID)
		return errInvalidOTP
	}

	return nil
}

package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
)

type RegisterVerifyInput struct {
	Email string `validate:"required,email"`
	OTP   string `validate:"required,max=6"`
}

func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) error {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
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

	ok, err := s.repoDB.VerifyRegistrationOTP(ctx, user.ID, in.OTP)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo verify registration otp", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "registration otp not match", "user_id", user.ID)
		return errInvalidOTP
	}

	return nil
}

package usecase

import (
	"context"

	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
)

type RegisterResendInput struct {
	Email string `validate:"required,email"`
}

func (s *Usecase) RegisterResend(ctx context.Context, in RegisterResendInput) error {
	ctx, span := s.startSpan(ctx, "RegisterResend")
	defer span.End()

	in.Email = normalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.userByEmail(ctx, in.Email)
	if err != nil {
		return err
	}

	if user.IsVerified {
		return errEmailVerified
	}

	return s.assignForRegistration(ctx, user)
}

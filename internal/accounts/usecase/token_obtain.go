package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
)

type TokenObtainInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type TokenObtainOutput struct {
	Token     string
	FirstName string
	LastName  string
}

func (s *Usecase) TokenObtain(ctx context.Context, in TokenObtainInput) (*TokenObtainOutput, error) {
	ctx, span := s.startSpan(ctx, "TokenObtain")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.authenticate(ctx, in.Username, in.Password)
	if errors.Is(err, errRejected) {
		return nil, errTokenCredentials
	}
	if err != nil {
		return nil, err
	}

	if s.cfg.GetBool("modules.accounts.token_requires_verification") && !user.IsVerified {
		slog.WarnContext(ctx, "user account not verified", "user_id", user.ID)
		return nil, errTokenCredentials
	}

	token, err := s.jwt.Generate(user.ID, user.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &TokenObtainOutput{
		Token:     token,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
)

type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	SessionToken string
	ExpiresAt    time.Time
	MaxAge       time.Duration
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.authenticate(ctx, in.Username, in.Password)
	if errors.Is(err, errRejected) {
		return nil, errLoginFailed
	}
	if err != nil {
		return nil, err
	}

	if !user.IsVerified {
		slog.WarnContext(ctx, "user account not verified", "user_id", user.ID)
		return nil, errLoginFailed
	}

	if err := s.repoDB.UpdateLastLogin(ctx, user.ID, s.clock.Now()); err != nil {
		slog.ErrorContext(ctx, "failed to repo update last login", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	sess, err := s.sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create session", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{
		SessionToken: sess.Token,
		ExpiresAt:    sess.ExpiresAt,
		MaxAge:       s.sessions.TTL(),
	}, nil
}

package usecase

import (
	"context"
	"log/slog"
)

type LogoutInput struct {
	SessionToken string
}

// Logout ends the session, if any. It never fails: a session that cannot be
// removed still expires on its own.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if in.SessionToken == "" {
		return nil
	}

	if err := s.sessions.Destroy(ctx, in.SessionToken); err != nil {
		slog.ErrorContext(ctx, "failed to destroy session", "error", err)
	}

	return nil
}

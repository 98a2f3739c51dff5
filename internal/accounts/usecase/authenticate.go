package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/nvago/internal/accounts/entity"
	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
)

var errRejected = errors.New("credentials rejected")

// authenticate resolves the user by username and checks the password. Unknown
// users, inactive users and wrong passwords all yield errRejected.
func (s *Usecase) authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)

	user, err := s.repoDB.GetUserByUsername(ctx, username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "username", username)
		return nil, errRejected
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by username", "username", username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !user.IsActive {
		slog.WarnContext(ctx, "user account inactive", "user_id", user.ID)
		return nil, errRejected
	}

	if !s.password.Verify(user.Password, password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, errRejected
	}

	return user, nil
}

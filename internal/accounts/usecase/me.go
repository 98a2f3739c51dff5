package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
	"github.com/shandysiswandi/nvago/internal/pkg/jwt"
)

type MeOutput struct {
	ID         int64
	Username   string
	Email      string
	FirstName  string
	LastName   string
	IsVerified bool
}

func (s *Usecase) Me(ctx context.Context) (*MeOutput, error) {
	ctx, span := s.startSpan(ctx, "Me")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, errUnauthenticated
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "authenticated user not found", "user_id", clm.UserID)
		return nil, errUserNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MeOutput{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		IsVerified: user.IsVerified,
	}, nil
}

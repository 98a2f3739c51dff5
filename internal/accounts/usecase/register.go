package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/nvago/internal/accounts/entity"
	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
)

type RegisterInput struct {
	Username  string `validate:"required,username,max=150"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,max=64"`
	FirstName string `validate:"max=150"`
	LastName  string `validate:"max=150"`
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.ensureUnique(ctx, in.Username, in.Email); err != nil {
		return err
	}

	passHash, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	code, err := s.generateCode(ctx)
	if err != nil {
		return err
	}

	user := entity.NewUser{
		ID:        s.uid.Generate(),
		Username:  in.Username,
		Email:     in.Email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		OTP:       code,
	}

	err = s.repoDB.CreateUserWithProfile(ctx, user, string(passHash))
	if errors.Is(err, goerror.ErrConflict) {
		// lost a race with a concurrent registration
		slog.WarnContext(ctx, "user account already exists", "username", in.Username, "email", in.Email)
		if uErr := s.ensureUnique(ctx, in.Username, in.Email); uErr != nil {
			return uErr
		}
		return goerror.NewServer(err)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user with profile", "username", in.Username, "error", err)
		return goerror.NewServer(err)
	}

	return s.sendOTP(ctx, &entity.User{ID: user.ID, Email: user.Email}, entity.OTPPurposeRegistration, code)
}

// ensureUnique reports every identity field that is already taken.
func (s *Usecase) ensureUnique(ctx context.Context, username, email string) error {
	var kv []string

	if _, err := s.repoDB.GetUserByUsername(ctx, username); err == nil {
		kv = append(kv, "username", "A user with that username already exists.")
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by username", "username", username, "error", err)
		return goerror.NewServer(err)
	}

	if _, err := s.repoDB.GetUserByEmail(ctx, email); err == nil {
		kv = append(kv, "email", "A user with that email already exists.")
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if len(kv) > 0 {
		return goerror.NewInvalidInput(nil, kv...)
	}

	return nil
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/nvago/internal/accounts/entity"
	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
)

var (
	errUserNotFound     = goerror.NewBusiness("User not found.", goerror.CodeNotFound)
	errInvalidOTP       = goerror.NewBusiness("Invalid OTP.", goerror.CodeInvalidCode)
	errEmailVerified    = goerror.NewBusiness("Email already verified.", goerror.CodeConflict)
	errLoginFailed      = goerror.NewBusiness("Invalid credentials or email not verified.", goerror.CodeInvalidCredential)
	errTokenCredentials = goerror.NewBusinessFields(goerror.CodeInvalidCredential, "non_field_errors", "Unable to log in with provided credentials.")
	errUnauthenticated  = goerror.NewBusiness("Authentication credentials were not provided.", goerror.CodeUnauthorized)
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// userByEmail loads the user or returns the "User not found." business error.
func (s *Usecase) userByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", email)
		return nil, errUserNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}

func (s *Usecase) generateCode(ctx context.Context) (string, error) {
	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp", "error", err)
		return "", goerror.NewServer(err)
	}
	return code, nil
}

// sendOTP renders the mail for purpose and hands it to the notifier.
func (s *Usecase) sendOTP(ctx context.Context, user *entity.User, purpose entity.OTPPurpose, code string) error {
	if err := s.repoNotifier.SendOTP(ctx, OTPMail{
		UserID:  user.ID,
		Email:   user.Email,
		Subject: purpose.Subject(),
		Body:    purpose.Body(code),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo send otp", "user_id", user.ID, "purpose", purpose.String(), "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

// assignForRegistration replaces the pending registration code and mails it.
// A verified profile is never touched.
func (s *Usecase) assignForRegistration(ctx context.Context, user *entity.User) error {
	code, err := s.generateCode(ctx)
	if err != nil {
		return err
	}

	ok, err := s.repoDB.AssignRegistrationOTP(ctx, user.ID, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo assign registration otp", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "registration otp requested for verified user", "user_id", user.ID)
		return errEmailVerified
	}

	return s.sendOTP(ctx, user, entity.OTPPurposeRegistration, code)
}

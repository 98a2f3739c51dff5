package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shandysiswandi/nvago/internal/accounts/entity"
	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
	"github.com/shandysiswandi/nvago/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUsecase_PasswordResetSend(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *suite)
		ok    bool
		code  goerror.Code
	}{
		{
			name: "mails reset code without touching verification",
			setup: func(s *suite) {
				s.db.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(verifiedUser(), nil).Once()
				s.db.On("AssignResetOTP", mock.Anything, int64(7), "654321").Return(nil).Once()
				s.notifier.On("SendOTP", mock.Anything, OTPMail{
					UserID: 7, Email: "alice@example.com", Subject: "Password Reset OTP", Body: "Your password reset OTP is 654321",
				}).Return(nil).Once()
			},
			ok: true,
		},
		{
			name: "unknown email",
			setup: func(s *suite) {
				s.db.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(nil, goerror.ErrNotFound).Once()
			},
			code: goerror.CodeNotFound,
		},
		{
			name: "profile missing",
			setup: func(s *suite) {
				s.db.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(verifiedUser(), nil).Once()
				s.db.On("AssignResetOTP", mock.Anything, int64(7), "654321").Return(goerror.ErrNotFound).Once()
			},
			code: goerror.CodeNotFound,
		},
		{
			name: "mail failure",
			setup: func(s *suite) {
				s.db.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(verifiedUser(), nil).Once()
				s.db.On("AssignResetOTP", mock.Anything, int64(7), "654321").Return(nil).Once()
				s.notifier.On("SendOTP", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
			},
			code: goerror.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSuite(t, defaultYAML)
			tt.setup(s)

			err := s.uc.PasswordResetSend(context.Background(), PasswordResetSendInput{Email: "alice@example.com"})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assertCode(t, err, tt.code, "")
		})
	}

	t.Run("invalid email", func(t *testing.T) {
		s := newSuite(t, defaultYAML)

		err := s.uc.PasswordResetSend(context.Background(), PasswordResetSendInput{Email: "not-an-email"})
		assertCode(t, err, goerror.CodeInvalidInput, "")
	})
}

func TestUsecase_PasswordResetVerify(t *testing.T) {
	tests := []struct {
		name string
		otp  string
		user *entity.User
		ok   bool
		code goerror.Code
	}{
		{name: "matching code", otp: "123456", user: pendingUser(), ok: true},
		{name: "wrong code", otp: "123457", user: pendingUser(), code: goerror.CodeInvalidCode},
		{name: "no pending code", otp: "123456", user: verifiedUser(), code: goerror.CodeInvalidCode},
		{name: "malformed code", otp: "12a45", user: pendingUser(), code: goerror.CodeInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSuite(t, defaultYAML)
			s.db.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(tt.user, nil).Once()

			err := s.uc.PasswordResetVerify(context.Background(), PasswordResetVerifyInput{Email: "alice@example.com", OTP: tt.otp})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assertCode(t, err, tt.code, "Invalid OTP.")
		})
	}

	t.Run("unknown email", func(t *testing.T) {
		s := newSuite(t, defaultYAML)
		s.db.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, goerror.ErrNotFound).Once()

		err := s.uc.PasswordResetVerify(context.Background(), PasswordResetVerifyInput{Email: "ghost@example.com", OTP: "123456"})
		assertCode(t, err, goerror.CodeNotFound, "User not found.")
	})
}

func TestUsecase_PasswordReset(t *testing.T) {
	in := PasswordResetInput{Email: "alice@example.com", OTP: "123456", NewPassword: "n3w"}

	tests := []struct {
		name  string
		setup func(s *suite)
		ok    bool
		code  goerror.Code
	}{
		{
			name: "code consumed and password replaced",
			setup: func(s *suite) {
				s.db.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(pendingUser(), nil).Once()
				s.db.On("ResetPassword", mock.Anything, int64(7), "123456", "hashed:n3w").Return(true, nil).Once()
			},
			ok: true,
		},
		{
			name: "code mismatch",
			setup: func(s *suite) {
				s.db.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(pendingUser(), nil).Once()
				s.db.On("ResetPassword", mock.Anything, int64(7), "123456", "hashed:n3w").Return(false, nil).Once()
			},
			code: goerror.CodeInvalidCode,
		},
		{
			name: "unknown email",
			setup: func(s *suite) {
				s.db.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(nil, goerror.ErrNotFound).Once()
			},
			code: goerror.CodeNotFound,
		},
		{
			name: "repository failure",
			setup: func(s *suite) {
				s.db.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(pendingUser(), nil).Once()
				s.db.On("ResetPassword", mock.Anything, int64(7), "123456", "hashed:n3w").Return(false, errors.New("db down")).Once()
			},
			code: goerror.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSuite(t, defaultYAML)
			tt.setup(s)

			err := s.uc.PasswordReset(context.Background(), in)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assertCode(t, err, tt.code, "")
		})
	}

	t.Run("long multibyte password with bcrypt", func(t *testing.T) {
		s := newSuite(t, defaultYAML)
		bcrypter := hash.NewBcrypt(4, "change-me")
		s.uc.password = bcrypter
		password := strings.Repeat("é", 40)

		s.db.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(pendingUser(), nil).Once()
		s.db.On("ResetPassword", mock.Anything, int64(7), "123456", mock.MatchedBy(func(h string) bool {
			return bcrypter.Verify(h, password)
		})).Return(true, nil).Once()

		err := s.uc.PasswordReset(context.Background(), PasswordResetInput{
			Email: "alice@example.com", OTP: "123456", NewPassword: password,
		})
		assert.NoError(t, err)
	})

	t.Run("missing new password", func(t *testing.T) {
		s := newSuite(t, defaultYAML)

		err := s.uc.PasswordReset(context.Background(), PasswordResetInput{Email: "alice@example.com", OTP: "123456"})
		assertCode(t, err, goerror.CodeInvalidInput, "")
	})
}

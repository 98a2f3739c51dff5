package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/nvago/internal/pkg/goerror"
)

// AssignRegistrationOTP stores a new registration code. It only touches
// unverified profiles and reports false when the profile is already verified.
func (s *DB) AssignRegistrationOTP(ctx context.Context, userID int64, otp string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "AssignRegistrationOTP")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE accounts_profiles SET otp = $2, updated_at = NOW()
		WHERE user_id = $1 AND is_verified = FALSE`,
		userID, otp,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

// AssignResetOTP stores a password reset code without touching is_verified.
func (s *DB) AssignResetOTP(ctx context.Context, userID int64, otp string) (err error) {
	ctx, span := s.startSpan(ctx, "AssignResetOTP")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE accounts_profiles SET otp = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, otp,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// VerifyRegistrationOTP marks the profile verified and clears the code in a
// single statement. It reports false when the code does not match.
func (s *DB) VerifyRegistrationOTP(ctx context.Context, userID int64, otp string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "VerifyRegistrationOTP")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE accounts_profiles SET is_verified = TRUE, otp = NULL, updated_at = NOW()
		WHERE user_id = $1 AND otp = $2`,
		userID, otp,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

// ResetPassword consumes the reset code and replaces the password hash in one
// transaction. It reports false, and changes nothing, when the code does not match.
func (s *DB) ResetPassword(ctx context.Context, userID int64, otp, hash string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ResetPassword")
	defer func() { s.endSpan(span, err) }()

	err = s.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE accounts_profiles SET otp = NULL, updated_at = NOW()
			WHERE user_id = $1 AND otp = $2`,
			userID, otp,
		)
		if err != nil {
			return s.mapError(err)
		}
		if tag.RowsAffected() == 0 {
			return errCodeMismatch
		}

		tag, err = tx.Exec(ctx,
			`UPDATE accounts_users SET password = $2, updated_at = NOW() WHERE id = $1`,
			userID, hash,
		)
		if err != nil {
			return s.mapError(err)
		}
		if tag.RowsAffected() == 0 {
			return goerror.ErrNotFound
		}

		return nil
	})
	if errors.Is(err, errCodeMismatch) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *DB) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateLastLogin")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `UPDATE accounts_users SET last_login = $2 WHERE id = $1`, userID, at)
	return s.mapError(err)
}

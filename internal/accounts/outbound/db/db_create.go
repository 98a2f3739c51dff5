package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/nvago/internal/accounts/entity"
)

// CreateUserWithProfile inserts the user and its profile in one transaction.
// The profile starts unverified and holds the registration code.
func (s *DB) CreateUserWithProfile(ctx context.Context, user entity.NewUser, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUserWithProfile")
	defer func() { s.endSpan(span, err) }()

	err = s.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO accounts_users (id, username, email, password, first_name, last_name)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			user.ID, user.Username, user.Email, hash, user.FirstName, user.LastName,
		); err != nil {
			return s.mapError(err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO accounts_profiles (user_id, otp, is_verified) VALUES ($1, $2, FALSE)`,
			user.ID, nullable(user.OTP),
		); err != nil {
			return s.mapError(err)
		}

		return nil
	})
	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/nvago/internal/accounts/entity"
)

const selectUser = `SELECT u.id, u.username, u.email, u.password, u.first_name, u.last_name,
	u.is_active, u.date_joined, u.last_login, u.updated_at, p.otp, p.is_verified
FROM accounts_users u
JOIN accounts_profiles p ON p.user_id = u.id`

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	return s.getUser(ctx, selectUser+` WHERE u.email = $1`, email)
}

func (s *DB) GetUserByUsername(ctx context.Context, username string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByUsername")
	defer func() { s.endSpan(span, err) }()

	return s.getUser(ctx, selectUser+` WHERE u.username = $1`, username)
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	return s.getUser(ctx, selectUser+` WHERE u.id = $1`, id)
}

func (s *DB) getUser(ctx context.Context, query string, arg any) (*entity.User, error) {
	user, err := scanUser(s.conn.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u         entity.User
		lastLogin *time.Time
		otp       *string
	)

	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Password,
		&u.FirstName,
		&u.LastName,
		&u.IsActive,
		&u.DateJoined,
		&lastLogin,
		&u.UpdatedAt,
		&otp,
		&u.IsVerified,
	); err != nil {
		return nil, err
	}

	u.LastLogin = lastLogin
	if otp != nil {
		u.OTP = *otp
	}

	return &u, nil
}
